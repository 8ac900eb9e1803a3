package main

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/docsift/internal/pipeline"
)

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Write the heading outline of every document in a directory",
	Long: `Extract the title and H1-H3 outline of every supported document in the
input directory, sorted by name, and write <output-dir>/<name>.json for each.

A document that cannot be decoded still gets an output file with an empty
title and outline.

Examples:
  docsift outline --input-dir ./in --output-dir ./out
  docsift outline --classifier ratio`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		report, err := pipeline.NewRunner(cfg, newStats(), log).OutlineDir(cmd.Context())
		if err != nil {
			log.Error("outline run failed", "error", err)
			return err
		}
		if n := report.Count(pipeline.StatusFailed); n > 0 {
			log.Warn("some documents fell back to an empty outline", "failed", n)
		}
		return nil
	},
}

func init() {
	batchFlags(outlineCmd)
	rootCmd.AddCommand(outlineCmd)
}
