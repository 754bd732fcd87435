package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gkchan/HB-markov-twitter/pkg/markov"
	"github.com/gkchan/HB-markov-twitter/pkg/publish"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app carries the state shared by every subcommand once the config is loaded.
type app struct {
	configPath string
	config     *Config
	logger     *slog.Logger
	generator  *markov.Generator

	newPublisher func(platform string, lookup publish.LookupFunc) (publish.Publisher, error)
	confirm      func(prompt string) (bool, error)
}

func newRootCmd() *cobra.Command {
	return newAppCmd(&app{newPublisher: publish.New, confirm: confirm})
}

// newAppCmd builds the command tree around a.
func newAppCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "markov [corpus...]",
		Args:    cobra.ArbitraryArgs,
		Short:   "Generate text from n-gram Markov chains and optionally publish it",
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		SilenceUsage: true, // don't print help when subcommands return an error
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "./config.json", "path to the JSON config file")

	generateCmd := newGenerateCmd(a)
	rootCmd.RunE = generateCmd.RunE
	rootCmd.Flags().AddFlagSet(generateCmd.Flags())

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(newStatsCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))

	return rootCmd
}

// load loads the config and builds the logger and generator.
func (a *app) load(cmd *cobra.Command) error {
	config, err := LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.config = config

	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))
	a.generator = markov.NewGenerator(markov.NewWhitespaceTokenizer())
	a.generator.SetLogger(a.logger)

	a.logger.Debug("Configuration loaded", "path", a.configPath, "order", config.Markov.Order)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
