package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/contest-digest/internal/aggregator"
	"github.com/pfrederiksen/contest-digest/internal/cache"
	"github.com/pfrederiksen/contest-digest/internal/config"
	"github.com/pfrederiksen/contest-digest/internal/logger"
	"github.com/pfrederiksen/contest-digest/internal/scraper"
)

const (
	ExitSuccess  = 0
	ExitError    = 1
	ExitDegraded = 2 // schedule came from an expired cache entry
)

// exitError carries a process exit code out of a command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// rootOptions holds the persistent flags
type rootOptions struct {
	configPath string
	verbose    bool
}

// runtime is everything a subcommand needs after configuration is loaded
type runtime struct {
	cfg        *config.Config
	aggregator *aggregator.Aggregator
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "contest-digest",
		Short: "Upcoming Codeforces, AtCoder and Luogu contests in one place",
		Long: `contest-digest reads the contest calendar page, keeps the contests starting
within the next week, and prints, serves or posts them as a digest.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default ./config/config.yaml if present)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(
		newFetchCmd(opts),
		newServeCmd(opts),
		newNotifyCmd(opts),
	)

	return cmd
}

// setup loads configuration, installs the logger and builds the aggregator
func setup(opts *rootOptions) (*runtime, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	// logs go to stderr so command output on stdout stays clean
	logger.SetDefault(cfg.Logger(os.Stderr))

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	sc := scraper.New(
		scraper.WithURL(cfg.Source.URL),
		scraper.WithTimeout(cfg.Source.Timeout),
		scraper.WithUserAgent(cfg.Source.UserAgent),
	)

	agg := aggregator.New(sc, cache.New(),
		aggregator.WithTTL(cfg.Cache.TTL),
		aggregator.WithWindow(cfg.WindowSpan()),
		aggregator.WithLocation(loc),
		aggregator.WithPolicy(cfg.Format),
	)

	logger.Debug("Configuration loaded", logger.Fields{
		"source":   cfg.Source.URL,
		"location": loc.String(),
		"window":   cfg.WindowSpan().String(),
		"ttl":      cfg.Cache.TTL.String(),
	})

	return &runtime{cfg: cfg, aggregator: agg}, nil
}

// ExitCode maps an error returned by a command to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitError
}

// Execute runs the CLI
func Execute() {
	ctx := context.Background()
	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(ExitCode(err))
}
