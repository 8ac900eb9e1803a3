package main

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/docsift/internal/config"
	"github.com/dgallion1/docsift/internal/pipeline"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the sections of a document collection for a persona",
	Long: `Read input.json (or input.yaml) from the input directory, extract every
listed document, rank their sections for the described persona and job,
and write <output-dir>/output.json.

A missing or invalid descriptor is an error and no output is written.
Listed documents that are missing are skipped.

Examples:
  docsift rank --input-dir ./collection --output-dir ./out
  docsift rank --top-sections 10 --top-subsections 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		_, report, err := pipeline.NewRunner(cfg, newStats(), log).RankCollection(cmd.Context())
		if err != nil {
			log.Error("rank run failed", "error", err)
			return err
		}
		log.Info("ranking written", "output", report.Output, "run_id", report.RunID)
		return nil
	},
}

func init() {
	batchFlags(rankCmd)
	d := config.Default()
	rankCmd.Flags().Int("top-sections", d.TopSections, "number of ranked sections to report")
	rankCmd.Flags().Int("top-subsections", d.TopSubsections, "number of top sections refined into excerpts")
	rankCmd.Flags().Int("min-section-chars", d.MinSectionChars, "drop sections whose body is shorter than this")
	rankCmd.Flags().Int("max-refined-chars", d.MaxRefinedChars, "truncate refined excerpts beyond this length")
	rankCmd.Flags().Bool("allow-negative-length", d.AllowNegativeLength, "let long sections receive a negative length score")
	rootCmd.AddCommand(rankCmd)
}
