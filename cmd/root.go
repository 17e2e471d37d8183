package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/app"
	"github.com/Zachkp/portfolio/internal/config"
)

var (
	cfgFile string
	verbose bool
	appCfg  *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site and content tools",
	Long: `portfolio serves the personal portfolio site, backed by the content API,
and exposes the same projects, blog, contact and theme operations on the
command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		appCfg = cfg
		return nil
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./portfolio.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print results as JSON")
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// withApp builds the services for one command and closes them when done.
func withApp(cmd *cobra.Command, fn func(context.Context, *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, appCfg, slog.Default())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
