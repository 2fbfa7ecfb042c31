package tokenize

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/textprep/pkg/textprep/internalerr"
	"github.com/cognicore/textprep/pkg/textprep/table"
)

// Tokenizer splits one text value into an ordered list of tokens.
// Implementations must accept the empty string.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// Func adapts a plain function to the Tokenizer interface.
type Func func(text string) ([]string, error)

// Tokenize calls f.
func (f Func) Tokenize(text string) ([]string, error) {
	return f(text)
}

// Default returns the word tokenizer used when none is configured.
func Default() Tokenizer {
	return Treebank{}
}

// Whitespace splits on runs of Unicode white space and nothing else.
type Whitespace struct{}

// Tokenize implements Tokenizer.
func (Whitespace) Tokenize(text string) ([]string, error) {
	return append([]string{}, strings.Fields(text)...), nil
}

// Apply returns a copy of t with the tokens field filled for every row.
// A null text is tokenized as "" and yields an empty token list. The first
// tokenizer failure aborts the whole table with a TokenizationError.
func Apply(t table.Table, tk Tokenizer) (table.Table, error) {
	if tk == nil {
		tk = Default()
	}

	out := t.Clone()
	for i := range out.Records {
		text := ""
		if p := out.Records[i].Text; p != nil {
			text = *p
		}
		tokens, err := safeTokenize(tk, text)
		if err != nil {
			return table.Table{}, internalerr.WrapTokenization(err, "row %d", i+1)
		}
		if tokens == nil {
			tokens = []string{}
		}
		out.Records[i].Tokens = tokens
	}
	out.Tokenized = true
	return out, nil
}

// safeTokenize turns a panicking tokenizer into an error.
func safeTokenize(tk Tokenizer, text string) (tokens []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			tokens = nil
			err = errors.Newf("tokenizer panicked: %v", r)
		}
	}()
	return tk.Tokenize(text)
}
