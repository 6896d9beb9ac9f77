package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sitegen/internal/authoring"
)

func newCmd(a *app) *cobra.Command {
	var (
		opts  authoring.Options
		force bool
	)

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Scaffold a new post",
		Long:  "Creates {content}/{category}/{slug}.md with a header block and an outline body.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Title = args[0]
			post, err := authoring.NewPost(opts)
			if err != nil {
				return err
			}
			path, err := authoring.Write(a.cfg.ContentDir, post, force)
			if err != nil {
				return err
			}
			a.log.Info("post created", "path", path, "slug", post.Slug)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	bindPostFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.Description, "description", "", "Post description (default: Deep dive into <title>)")
	cmd.Flags().StringVar(&opts.Author, "author", "", "Author name")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing post")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

// bindPostFlags registers the header flags shared by new and import.
func bindPostFlags(cmd *cobra.Command, opts *authoring.Options) {
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Category directory")
	cmd.Flags().StringSliceVarP(&opts.Tags, "tags", "t", nil, "Comma-separated tags (default: the category)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "Publish date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&opts.Difficulty, "difficulty", "",
		"Difficulty: "+strings.Join(authoring.Difficulties, ", ")+" (default: estimated)")
	cmd.Flags().BoolVar(&opts.Draft, "draft", false, "Mark the post as a draft")
}
