package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sitegen/internal/authoring"
	"github.com/dgallion1/sitegen/internal/importer"
	"github.com/dgallion1/sitegen/internal/pipeline"
)

func importCmd(a *app) *cobra.Command {
	var (
		opts  authoring.Options
		title string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Convert a document into a new post",
		Long: `Converts a .txt, .md, .csv, .html, .docx or .pdf file into a Markdown post.
Without --category the category is guessed from the file name using the
site categories, or the existing category directories.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			log := a.log.With("source", src)

			r, err := importer.ForFile(src, importer.Options{PDFFallbackPdftotext: a.cfg.PDFFallbackPdftotext})
			if err != nil {
				return err
			}
			f, err := os.Open(src)
			if err != nil {
				return fmt.Errorf("open source: %w", err)
			}
			defer f.Close()

			tree, err := r.Read(f, filepath.Base(src))
			if err != nil {
				return fmt.Errorf("import %s: %w", src, err)
			}
			log.Info("document read", "title", tree.Title, "sections", tree.Sections())

			if opts.Category == "" {
				cats := a.cfg.Site.Categories
				if len(cats) == 0 {
					cats, _ = pipeline.Categories(a.cfg.ContentDir)
				}
				c, ok := importer.DetectCategory(src, cats)
				if !ok {
					return fmt.Errorf("no category matches %s: pass --category", filepath.Base(src))
				}
				opts.Category = c
			}
			opts.Title = tree.Title
			if title != "" {
				opts.Title, tree.Title = title, title
			}
			opts.Description = ""
			opts.Body = importer.Markdown(tree)

			post, err := authoring.NewPost(opts)
			if err != nil {
				return err
			}
			path, err := authoring.Write(a.cfg.ContentDir, post, force)
			if err != nil {
				return err
			}
			log.Info("post created", "path", path, "category", post.Category)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	bindPostFlags(cmd, &opts)
	cmd.Flags().StringVar(&title, "title", "", "Post title (default: from the document)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing post")
	return cmd
}
