package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sitegen/internal/frontmatter"
	"github.com/dgallion1/sitegen/internal/pipeline"
)

func lintCmd(a *app) *cobra.Command {
	var yamlCheck bool

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check post headers and headings",
		Long: `Reports header fields with the wrong shape, unparseable dates, refused
headers and headings whose anchors did not render. With --yaml it also
reports keys a full YAML reader would see differently.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := pipeline.New(a.cfg, a.log)
			docs, err := b.Load(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			problems, posts := 0, 0
			for _, doc := range docs {
				_, found, err := b.BuildRecord(doc)
				if err != nil {
					found = append(found, err.Error())
				}
				if yamlCheck {
					for _, d := range frontmatter.Divergences(doc.Raw) {
						found = append(found, "yaml: "+d.String())
					}
				}
				for _, f := range found {
					fmt.Fprintf(w, "%s: %s\n", doc.Path, f)
				}
				if len(found) > 0 {
					problems += len(found)
					posts++
				}
			}
			if problems > 0 {
				return fmt.Errorf("%d problems in %d of %d posts", problems, posts, len(docs))
			}
			fmt.Fprintf(w, "%d posts clean\n", len(docs))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yamlCheck, "yaml", false, "Also compare headers against a full YAML reader")
	return cmd
}
