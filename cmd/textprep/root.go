package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/textprep/internal/logging"
	"github.com/cognicore/textprep/pkg/textprep"
	"github.com/cognicore/textprep/pkg/textprep/analytics"
	"github.com/cognicore/textprep/pkg/textprep/config"
	"github.com/cognicore/textprep/pkg/textprep/export"
	"github.com/cognicore/textprep/pkg/textprep/internalerr"
	"github.com/cognicore/textprep/pkg/textprep/table"
)

const reportTopN = 10

// app carries what PersistentPreRunE resolved to the subcommands.
type app struct {
	cfgFile string
	cfg     config.Config
	log     *zap.SugaredLogger
}

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()
	a := &app{log: logging.Nop()}

	cmd := &cobra.Command{
		Use:   "textprep",
		Short: "Clean and tokenize a Stack Exchange posts table",
		Long: "textprep loads a posts CSV, lowercases the text, strips markup, inline math,\n" +
			"mentions, numbers and bracketed tags, tokenizes it and writes the result\n" +
			"with a tokens column.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Flags:      cmd.Flags(),
				ConfigFile: a.cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			log, err := logging.New(logging.Options{
				Level:  loaded.Log.Level,
				JSON:   loaded.Log.JSON,
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			a.cfg = loaded
			a.log = log.With("run_id", logging.NewRunID())
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
		RunE: func(*cobra.Command, []string) error {
			return a.run()
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newStopwordsCmd(a))

	return cmd
}

// preprocess runs the pipeline configured in a.cfg.
func (a *app) preprocess() (table.Table, error) {
	tk, err := config.BuildTokenizer(a.cfg)
	if err != nil {
		return table.Table{}, err
	}

	opts := []textprep.Option{
		textprep.WithTokenizer(tk),
		textprep.WithRowLimit(a.cfg.RowLimit),
		textprep.WithLogger(a.log),
	}
	if a.cfg.DecodeEntities {
		opts = append(opts, textprep.WithStages(textprep.DecodeEntitiesStage))
	}

	a.log.Infow("preprocessing",
		"input", a.cfg.Input,
		"tokenizer", a.cfg.Tokenizer,
		"row_limit", a.cfg.RowLimit)
	return textprep.Preprocess(a.cfg.Input, opts...)
}

func (a *app) run() error {
	start := time.Now()

	t, err := a.preprocess()
	if err != nil {
		return err
	}
	if err := export.WriteFile(a.cfg.Output, t); err != nil {
		return internalerr.WrapWrite(err, "write %s", a.cfg.Output)
	}

	report := analytics.Summarize(t, reportTopN)
	fields := append([]interface{}{
		"output", a.cfg.Output,
		"elapsed", time.Since(start).Round(time.Millisecond),
	}, report.Fields()...)
	a.log.Infow("run complete", fields...)
	return nil
}
