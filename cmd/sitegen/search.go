package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sitegen/internal/pipeline"
	"github.com/dgallion1/sitegen/internal/search"
)

func searchCmd(a *app) *cobra.Command {
	var (
		limit      int
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search published posts",
		Long:  "Ranks posts by how often the query occurs in title, description, category, tags and difficulty, using the same rule as the generated search script.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := pipeline.New(a.cfg, a.log).Build(cmd.Context())
			if err != nil {
				return err
			}
			hits := search.Search(res.Index, strings.Join(args, " "), limit)

			w := cmd.OutOrStdout()
			if outputJSON {
				if hits == nil {
					hits = []search.Hit{}
				}
				data, err := json.MarshalIndent(hits, "", "  ")
				if err != nil {
					return fmt.Errorf("encode results: %w", err)
				}
				fmt.Fprintln(w, string(data))
				return nil
			}
			if len(hits) == 0 {
				fmt.Fprintln(w, "No results found.")
				return nil
			}
			fmt.Fprintf(w, "Found %d results:\n\n", len(hits))
			for i, h := range hits {
				fmt.Fprintf(w, "%d. %s (%d)\n", i+1, h.Title, h.Score)
				fmt.Fprintf(w, "   %s\n", h.URL)
				if h.Description != "" {
					fmt.Fprintf(w, "   %s\n", h.Description)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", search.DefaultLimit, "Maximum number of results")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output as JSON")
	return cmd
}
