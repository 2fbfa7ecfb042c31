// Package textprep cleans Stack Exchange style post tables for downstream
// text work: it loads the file, lowercases the text, strips markup, math,
// mentions, numbers and bracketed tags, then adds a tokens column.
package textprep

import (
	"time"

	"go.uber.org/zap"

	"github.com/cognicore/textprep/pkg/textprep/clean"
	"github.com/cognicore/textprep/pkg/textprep/ingest"
	"github.com/cognicore/textprep/pkg/textprep/table"
	"github.com/cognicore/textprep/pkg/textprep/tokenize"
)

// Stage is one step of the pipeline. Stages return a new table and leave
// their input untouched.
type Stage struct {
	Name string
	Run  func(table.Table) (table.Table, error)
}

// Pure wraps a stage that cannot fail.
func Pure(name string, fn func(table.Table) table.Table) Stage {
	return Stage{
		Name: name,
		Run: func(t table.Table) (table.Table, error) {
			return fn(t), nil
		},
	}
}

// Built-in stages.
var (
	LowercaseStage      = Pure("lowercase", clean.Lowercase)
	StripNoiseStage     = Pure("strip_noise", clean.StripNoise)
	DecodeEntitiesStage = Pure("decode_entities", clean.DecodeEntities)
)

// TokenizeStage adds the tokens column with tk; nil uses tokenize.Default.
func TokenizeStage(tk tokenize.Tokenizer) Stage {
	return Stage{
		Name: "tokenize",
		Run: func(t table.Table) (table.Table, error) {
			return tokenize.Apply(t, tk)
		},
	}
}

// Stages returns the post-load stage list in execution order: lowercase,
// noise stripping, any extra stages, then tokenization.
func Stages(tk tokenize.Tokenizer, extra ...Stage) []Stage {
	stages := []Stage{LowercaseStage, StripNoiseStage}
	stages = append(stages, extra...)
	return append(stages, TokenizeStage(tk))
}

// Options configures a Preprocess call.
type Options struct {
	Tokenizer tokenize.Tokenizer
	RowLimit  int
	Extra     []Stage
	Logger    *zap.SugaredLogger
}

type Option func(*Options)

// WithTokenizer replaces the default Treebank tokenizer.
func WithTokenizer(tk tokenize.Tokenizer) Option {
	return func(o *Options) { o.Tokenizer = tk }
}

// WithRowLimit reads only the first n data rows.
func WithRowLimit(n int) Option {
	return func(o *Options) { o.RowLimit = n }
}

// WithStages inserts stages between noise stripping and tokenization.
func WithStages(stages ...Stage) Option {
	return func(o *Options) { o.Extra = append(o.Extra, stages...) }
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *Options) { o.Logger = log }
}

// Preprocess loads path and runs it through Stages. It returns the first
// error unchanged; there is no partial result.
func Preprocess(path string, opts ...Option) (table.Table, error) {
	o := Options{Logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop().Sugar()
	}

	start := time.Now()
	t, err := ingest.Load(path, ingest.WithRowLimit(o.RowLimit))
	if err != nil {
		return table.Table{}, err
	}
	o.Logger.Debugw("stage done",
		"stage", "load",
		"path", path,
		"rows", t.Len(),
		"elapsed", time.Since(start))

	return Run(t, Stages(o.Tokenizer, o.Extra...), o.Logger)
}

// Run applies stages to t in order.
func Run(t table.Table, stages []Stage, log *zap.SugaredLogger) (table.Table, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	for _, s := range stages {
		start := time.Now()
		next, err := s.Run(t)
		if err != nil {
			return table.Table{}, err
		}
		log.Debugw("stage done",
			"stage", s.Name,
			"rows", next.Len(),
			"elapsed", time.Since(start))
		t = next
	}
	return t, nil
}
