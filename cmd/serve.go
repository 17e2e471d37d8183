package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/app"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio site",
	Long: `serve renders the portfolio pages from the content API configured by
api.url, with the query cache, theme and contact form wired in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != "" {
			appCfg.Server.Port = servePort
		}
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		return withApp(cmd, func(_ context.Context, a *app.App) error {
			return a.Serve(ctx)
		})
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}
