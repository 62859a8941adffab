package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxgio92/kprof/internal/settings"
	"github.com/maxgio92/kprof/pkg/cmd/fold"
	"github.com/maxgio92/kprof/pkg/cmd/options"
)

const logLevelInfo = "info"

func NewRootCmd(opts *options.CommonOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   settings.CmdName,
		Short: settings.CmdName + " is a sampling CPU profiler for emulated guest kernels",
		Long: settings.CmdName + ` works with the sample records captured from a guest kernel running
under an instrumented emulator, and turns them into folded stacks ready to
be rendered as a flamegraph.`,
		DisableAutoGenTag: true,
	}
	cmd.AddCommand(fold.NewCommand(opts))
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", logLevelInfo, "Log level (trace, debug, info, warn, error, fatal, panic)")

	return cmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := log.New(
		log.ConsoleWriter{Out: os.Stderr},
	).With().Timestamp().Logger()

	opts := options.NewCommonOptions(
		options.WithContext(ctx),
		options.WithLogger(logger),
	)

	if err := NewRootCmd(opts).Execute(); err != nil {
		os.Exit(1)
	}
}
