package cmd

import (
	"log/slog"
	"net"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/devapi"
	"github.com/Zachkp/portfolio/internal/markdown"
)

var (
	devContentDir string
	devPort       string
	devNoWatch    bool
)

var devapiCmd = &cobra.Command{
	Use:   "devapi",
	Short: "Serve the content API from a directory of markdown files",
	Long: `devapi loads projects/*.md and blog/**/*.md from the content directory and
serves them over the same REST endpoints the site reads from. Changes are
picked up automatically unless --no-watch is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appCfg.DevAPI
		if devContentDir != "" {
			cfg.ContentDir = devContentDir
		}
		if devPort != "" {
			cfg.Port = devPort
		}
		logger := slog.Default()

		store := devapi.NewStore(nil)
		watcher := devapi.NewWatcher(cfg.ContentDir, store, markdown.New(), logger)
		if err := watcher.Reload(); err != nil {
			return err
		}

		var mailer devapi.Mailer = devapi.LogMailer{Logger: logger}
		if appCfg.SMTP.Enabled() {
			mailer = devapi.NewSMTPMailer(appCfg.SMTP, logger)
		}
		srv := devapi.NewServer(store, mailer, logger)

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		if cfg.Watch && !devNoWatch {
			g.Go(func() error { return watcher.Watch(ctx) })
		}
		g.Go(func() error { return srv.Run(ctx, net.JoinHostPort("", cfg.Port)) })
		return g.Wait()
	},
}

func init() {
	devapiCmd.Flags().StringVarP(&devContentDir, "content", "c", "", "content directory (overrides devapi.contentDir)")
	devapiCmd.Flags().StringVarP(&devPort, "port", "p", "", "port to listen on (overrides devapi.port)")
	devapiCmd.Flags().BoolVar(&devNoWatch, "no-watch", false, "do not reload on file changes")
	rootCmd.AddCommand(devapiCmd)
}
