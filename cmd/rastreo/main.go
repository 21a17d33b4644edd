package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/rastreo/internal/app"
	"github.com/five82/rastreo/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(app.Run).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "rastreo: %v\n", err)
		return 1
	}
	return 0
}

type runFunc func(ctx context.Context, opts app.Options) error

func newRootCmd(runApp runFunc) *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "rastreo",
		Short: "Package tracking terminal client",
		Long: `rastreo looks up package tracking numbers against a tracking API
and keeps a history of the queries made.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(cmd.Context(), opts)
		},
	}
	root.Flags().StringVar(&opts.ConfigPath, "config", "", fmt.Sprintf("config file (default: %s)", config.DefaultPath()))
	root.Flags().StringVar(&opts.APIURL, "api-url", "", "tracking API base URL (overrides config and RASTREO_API_URL)")
	root.Flags().StringVar(&opts.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rastreo version %s\n", Version)
		},
	})
	return root
}
