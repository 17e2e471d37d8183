package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/app"
	"github.com/Zachkp/portfolio/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the stored color theme",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current theme and its resolved style tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App) error {
			return printTheme(cmd, a.Theme.Read())
		})
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App) error {
			return printTheme(cmd, a.Theme.Toggle())
		})
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set <light|dark>",
	Short:     "Set the theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(theme.Light), string(theme.Dark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := theme.ParseMode(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(_ context.Context, a *app.App) error {
			if err := a.Theme.Set(m); err != nil {
				return err
			}
			return printTheme(cmd, a.Theme.Read())
		})
	},
}

func printTheme(cmd *cobra.Command, m theme.Mode) error {
	if asJSON {
		tokens := map[theme.Variant]theme.Tokens{}
		for _, v := range theme.Variants() {
			tokens[v] = theme.Resolve(m, v)
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{"mode": m, "tokens": tokens})
	}
	return renderTheme(cmd.OutOrStdout(), m)
}

func init() {
	themeCmd.AddCommand(themeShowCmd, themeToggleCmd, themeSetCmd)
	rootCmd.AddCommand(themeCmd)
}
