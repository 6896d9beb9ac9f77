package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sitegen/internal/pipeline"
	"github.com/dgallion1/sitegen/internal/stats"
)

type statsOutput struct {
	stats.Analysis
	Gaps []stats.MonthGap `json:"gaps,omitempty"`
}

func statsCmd(a *app) *cobra.Command {
	var (
		outputJSON bool
		gaps       bool
		target     int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the corpus",
		Long:  "Reports posts per category and difficulty, top tags, word-count spread and months below the posting target.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.cfg
			cfg.IncludeDrafts = true
			res, err := pipeline.New(&cfg, a.log).Build(cmd.Context())
			if err != nil {
				return err
			}

			out := statsOutput{Analysis: stats.Analyze(res.Records)}
			if gaps {
				out.Gaps = out.Analysis.Gaps(target, time.Now())
			}
			if outputJSON {
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return fmt.Errorf("encode stats: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			printStats(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&gaps, "gaps", false, "List months with fewer posts than --target")
	cmd.Flags().IntVar(&target, "target", stats.MonthlyTarget, "Posts wanted per month")
	return cmd
}

func printStats(w io.Writer, out statsOutput) {
	a := out.Analysis
	fmt.Fprintf(w, "Posts: %d (%d drafts)\n", a.Posts, a.Drafts)
	fmt.Fprintf(w, "Words: min %d, max %d, avg %.0f, p50 %.0f, p95 %.0f\n",
		a.Words.Min, a.Words.Max, a.Words.Avg, a.Words.P50, a.Words.P95)

	printCounts(w, "Categories", a.Categories)
	printCounts(w, "Difficulty", a.Difficulties)

	if len(a.TopTags) > 0 {
		fmt.Fprintln(w, "\nTop tags:")
		for _, t := range a.TopTags {
			fmt.Fprintf(w, "  %-24s %d\n", t.Tag, t.Count)
		}
	}
	if len(out.Gaps) > 0 {
		fmt.Fprintln(w, "\nMonths below target:")
		for _, g := range out.Gaps {
			fmt.Fprintf(w, "  %s  %d posts, %d needed\n", g.Month, g.Existing, g.Needed)
		}
	}
}

func printCounts(w io.Writer, title string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-24s %d\n", k, counts[k])
	}
}
