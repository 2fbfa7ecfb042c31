package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/textprep/pkg/textprep/analytics"
	"github.com/cognicore/textprep/pkg/textprep/config"
	"github.com/cognicore/textprep/pkg/textprep/internalerr"
)

func newStopwordsCmd(a *app) *cobra.Command {
	var (
		minDF float64
		limit int
	)

	cmd := &cobra.Command{
		Use:   "stopwords",
		Short: "Print frequent tokens as a stoplist YAML",
		Long: "stopwords runs the pipeline without writing output and prints the tokens\n" +
			"found in at least --min-df percent of rows, in the format --stoplist reads.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if minDF < 0 || minDF > 100 {
				return internalerr.InvalidConfig("use a percentage between 0 and 100",
					"min-df out of range: %v", minDF)
			}

			t, err := a.preprocess()
			if err != nil {
				return err
			}

			an := analytics.NewAnalyzer()
			an.ProcessTable(t)
			candidates := an.Snapshot().StopwordCandidates(minDF, limit)

			sl := config.Stoplist{Terms: make([]string, len(candidates))}
			for i, c := range candidates {
				sl.Terms[i] = c.Token
				a.log.Debugw("stopword candidate",
					"token", c.Token,
					"df", c.DF,
					"df_percent", c.DFPercent,
					"cat_entropy", c.CatEntropy)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(sl); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().Float64Var(&minDF, "min-df", 30, "Minimum document frequency in percent")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of terms (0 prints all)")

	return cmd
}
