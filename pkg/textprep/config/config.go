package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cognicore/textprep/pkg/textprep/internalerr"
)

// Tokenizer names accepted in the configuration.
const (
	TokenizerTreebank   = "treebank"
	TokenizerWhitespace = "whitespace"
	TokenizerKeyword    = "keyword"
)

// Config holds everything a pipeline run needs.
type Config struct {
	Input          string    `mapstructure:"input"`
	Output         string    `mapstructure:"output"`
	RowLimit       int       `mapstructure:"row_limit"`
	Tokenizer      string    `mapstructure:"tokenizer"`
	Stoplist       string    `mapstructure:"stoplist"`
	Lexicon        string    `mapstructure:"lexicon"`
	DecodeEntities bool      `mapstructure:"decode_entities"`
	Log            LogConfig `mapstructure:"log"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// DefaultConfig reproduces a bare run: read the Stack Exchange dump in the
// working directory and write cleaned.csv next to it.
func DefaultConfig() Config {
	return Config{
		Input:     "stackexchange_812k.csv.gz",
		Output:    "cleaned.csv",
		RowLimit:  0,
		Tokenizer: TokenizerTreebank,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"input":           "input",
	"output":          "output",
	"nrows":           "row_limit",
	"tokenizer":       "tokenizer",
	"stoplist":        "stoplist",
	"lexicon":         "lexicon",
	"decode-entities": "decode_entities",
	"log-level":       "log.level",
	"log-json":        "log.json",
}

// RegisterFlags adds one flag per configuration key.
func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.StringP("input", "i", defaults.Input, "Input CSV file (.gz, .bz2, .zip, .xz, .zst are decompressed)")
	fs.StringP("output", "o", defaults.Output, "Output CSV file (.gz, .zip, .xz, .zst are compressed)")
	fs.Int("nrows", defaults.RowLimit, "Read only the first N data rows (0 reads all)")
	fs.String("tokenizer", defaults.Tokenizer, "Tokenizer: treebank|whitespace|keyword")
	fs.String("stoplist", defaults.Stoplist, "YAML stopword list for the keyword tokenizer")
	fs.String("lexicon", defaults.Lexicon, "YAML synonym lexicon for the keyword tokenizer")
	fs.Bool("decode-entities", defaults.DecodeEntities, "Decode HTML entities after noise stripping")
	fs.String("log-level", defaults.Log.Level, "Log level: debug|info|warn|error")
	fs.Bool("log-json", defaults.Log.JSON, "Emit JSON logs")
}

type LoadOptions struct {
	Flags      *pflag.FlagSet
	ConfigFile string
	Defaults   Config
}

// Load merges defaults, an optional config file, TEXTPREP_* environment
// variables and flags, in increasing order of precedence.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()
	setDefaults(v, opts.Defaults)

	if opts.Flags != nil {
		for name, key := range flagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, internalerr.WrapInvalidConfig(err, "bind flag %s", name)
			}
		}
	}

	v.SetEnvPrefix("TEXTPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, internalerr.WrapInvalidConfig(err, "read config file")
		}
	} else {
		v.SetConfigName("textprep")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, internalerr.WrapInvalidConfig(err, "read config file")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, internalerr.WrapInvalidConfig(err, "decode config")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("input", c.Input)
	v.SetDefault("output", c.Output)
	v.SetDefault("row_limit", c.RowLimit)
	v.SetDefault("tokenizer", c.Tokenizer)
	v.SetDefault("stoplist", c.Stoplist)
	v.SetDefault("lexicon", c.Lexicon)
	v.SetDefault("decode_entities", c.DecodeEntities)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.json", c.Log.JSON)
}

// Validate rejects values no run could use.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return internalerr.InvalidConfig("pass --input", "input path is required")
	}
	if strings.TrimSpace(c.Output) == "" {
		return internalerr.InvalidConfig("pass --output", "output path is required")
	}
	if c.RowLimit < 0 {
		return internalerr.InvalidConfig("use 0 to read every row", "row limit must not be negative, got %d", c.RowLimit)
	}
	switch strings.ToLower(c.Tokenizer) {
	case TokenizerTreebank, TokenizerWhitespace, TokenizerKeyword:
	default:
		return internalerr.InvalidConfig(
			"expected treebank, whitespace or keyword",
			"unknown tokenizer %q", c.Tokenizer)
	}
	if (c.Stoplist != "" || c.Lexicon != "") && !strings.EqualFold(c.Tokenizer, TokenizerKeyword) {
		return internalerr.InvalidConfig(
			"set --tokenizer keyword",
			"stoplist and lexicon only apply to the keyword tokenizer")
	}
	return nil
}
