package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/textprep/pkg/textprep/internalerr"
	"github.com/cognicore/textprep/pkg/textprep/lexicon"
	"github.com/cognicore/textprep/pkg/textprep/tokenize"
)

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// BuildTokenizer constructs the tokenizer named by c.Tokenizer. The keyword
// tokenizer picks up the stoplist and lexicon files when they are set.
func BuildTokenizer(c Config) (tokenize.Tokenizer, error) {
	switch strings.ToLower(c.Tokenizer) {
	case "", TokenizerTreebank:
		return tokenize.Treebank{}, nil
	case TokenizerWhitespace:
		return tokenize.Whitespace{}, nil
	case TokenizerKeyword:
		var terms []string
		if c.Stoplist != "" {
			sl, err := LoadStoplist(c.Stoplist)
			if err != nil {
				return nil, internalerr.WrapInvalidConfig(err, "load stoplist")
			}
			terms = sl.Terms
		}
		var lex *lexicon.Lexicon
		if c.Lexicon != "" {
			loaded, err := lexicon.LoadFromYAML(c.Lexicon)
			if err != nil {
				return nil, internalerr.WrapInvalidConfig(err, "load lexicon")
			}
			lex = loaded
		}
		return tokenize.NewKeyword(terms, lex), nil
	default:
		return nil, internalerr.InvalidConfig(
			"expected treebank, whitespace or keyword",
			"unknown tokenizer %q", c.Tokenizer)
	}
}
