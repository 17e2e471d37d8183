package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/api"
	"github.com/Zachkp/portfolio/internal/app"
)

var blogFilters api.BlogFilters

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Query blog posts from the content API",
}

var blogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		featured, _ := cmd.Flags().GetBool("featured")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			var (
				posts []api.BlogPost
				err   error
			)
			if featured {
				posts, err = a.Blog.Featured(ctx)
			} else {
				posts, err = a.Blog.List(ctx, blogFilters)
			}
			if err != nil {
				return describe(err, "")
			}
			return printPosts(cmd, posts)
		})
	},
}

var blogSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search posts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			posts, err := a.Blog.Search(ctx, strings.Join(args, " "))
			if err != nil {
				return describe(err, "")
			}
			return printPosts(cmd, posts)
		})
	},
}

var blogShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show one post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			p, err := a.Blog.BySlug(ctx, args[0])
			if err != nil {
				return describe(err, "Post not found.")
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, headingStyle.Render(p.Title))
			fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%s  %s  %d min read", orNone(p.Author.Name), p.PublishedAt, p.ReadTime)))
			fmt.Fprintf(w, "\n%s\n", p.Content)
			return nil
		})
	},
}

var blogLabelsCmd = &cobra.Command{
	Use:   "categories",
	Short: "List post categories and tags with counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			cats, err := a.Blog.Categories(ctx)
			if err != nil {
				return describe(err, "")
			}
			tags, err := a.Blog.Tags(ctx)
			if err != nil {
				return describe(err, "")
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]any{"categories": cats, "tags": tags})
			}
			rows := make([][]string, 0, len(cats)+len(tags))
			for _, c := range cats {
				rows = append(rows, []string{"category", c.Name, strconv.Itoa(c.Count)})
			}
			for _, t := range tags {
				rows = append(rows, []string{"tag", t.Name, strconv.Itoa(t.Count)})
			}
			return table(cmd.OutOrStdout(), []string{"KIND", "NAME", "POSTS"}, rows)
		})
	},
}

func printPosts(cmd *cobra.Command, posts []api.BlogPost) error {
	if asJSON {
		return printJSON(cmd.OutOrStdout(), posts)
	}
	if len(posts) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No posts found matching this criteria."))
		return nil
	}
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{p.Slug, p.Title, orNone(p.PublishedAt), orNone(strings.Join(p.Tags, ", "))})
	}
	return table(cmd.OutOrStdout(), []string{"SLUG", "TITLE", "PUBLISHED", "TAGS"}, rows)
}

func init() {
	f := blogListCmd.Flags()
	f.StringVar(&blogFilters.Category, "category", "", "only this category")
	f.StringVar(&blogFilters.Tag, "tag", "", "only posts with this tag")
	f.StringVar(&blogFilters.Search, "search", "", "search title and excerpt")
	f.Bool("featured", false, "list featured posts only")

	blogCmd.AddCommand(blogListCmd, blogSearchCmd, blogShowCmd, blogLabelsCmd)
	rootCmd.AddCommand(blogCmd)
}
