package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/api"
	"github.com/Zachkp/portfolio/internal/app"
)

var projectFilters api.ProjectFilters

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Query projects from the content API",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		featured, _ := cmd.Flags().GetBool("featured")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			var (
				projects []api.Project
				err      error
			)
			if featured {
				projects, err = a.Projects.Featured(ctx)
			} else {
				projects, err = a.Projects.List(ctx, projectFilters)
			}
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), projects)
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No projects found matching your filters."))
				return nil
			}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{p.Slug, p.Title, orNone(p.Category), orNone(strings.Join(p.Technologies, ", "))})
			}
			return table(cmd.OutOrStdout(), []string{"SLUG", "TITLE", "CATEGORY", "TECHNOLOGIES"}, rows)
		})
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show one project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			p, err := a.Projects.BySlug(ctx, args[0])
			if err != nil {
				return describe(err, "Project not found")
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, headingStyle.Render(p.Title))
			fmt.Fprintf(w, "%s  %s\n", orNone(p.Category), mutedStyle.Render(strings.Join(p.Technologies, ", ")))
			if p.RepoURL != "" {
				fmt.Fprintln(w, "repo:", p.RepoURL)
			}
			if p.DemoURL != "" {
				fmt.Fprintln(w, "demo:", p.DemoURL)
			}
			fmt.Fprintf(w, "\n%s\n", p.Content)
			return nil
		})
	},
}

var projectsLabelsCmd = &cobra.Command{
	Use:   "categories",
	Short: "List project categories and technologies",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			cats, err := a.Projects.Categories(ctx)
			if err != nil {
				return err
			}
			techs, err := a.Projects.Technologies(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), map[string][]string{"categories": cats, "technologies": techs})
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, headingStyle.Render("Categories:"), strings.Join(cats, ", "))
			fmt.Fprintln(w, headingStyle.Render("Technologies:"), strings.Join(techs, ", "))
			return nil
		})
	},
}

func init() {
	f := projectsListCmd.Flags()
	f.StringVar(&projectFilters.Category, "category", "", "only this category")
	f.StringVar(&projectFilters.Technology, "technology", "", "only projects using this technology")
	f.StringVar(&projectFilters.Search, "search", "", "search title and description")
	f.Bool("featured", false, "list featured projects only")

	projectsCmd.AddCommand(projectsListCmd, projectsShowCmd, projectsLabelsCmd)
	rootCmd.AddCommand(projectsCmd)
}
