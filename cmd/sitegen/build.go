package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sitegen/internal/pipeline"
)

func buildCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the site into the output directory",
		Long: `Builds every post, then writes page fragments, records.json, the search
index and script, feed.xml and manifest.json. The output directory is
cleaned first. Posts that fail are logged and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := pipeline.New(a.cfg, a.log)
			res, err := b.Build(cmd.Context())
			if err != nil {
				a.log.Error("build failed", "error", err)
				return err
			}
			m, err := b.Write(cmd.Context(), res)
			if err != nil {
				a.log.Error("write failed", "error", err)
				return err
			}

			counts := m.Report.Counts
			fmt.Fprintf(cmd.OutOrStdout(), "Built %d posts into %s (%d drafts skipped, %d failed)\n",
				counts[pipeline.StatusBuilt], a.cfg.OutputDir,
				counts[pipeline.StatusDraftSkipped], counts[pipeline.StatusFailed])
			if strict && counts[pipeline.StatusFailed] > 0 {
				return fmt.Errorf("%d posts failed", counts[pipeline.StatusFailed])
			}
			return nil
		},
	}
	bindBuildFlags(cmd.Flags(), &a.flags)
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any post fails")
	return cmd
}
