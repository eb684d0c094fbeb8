package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/contest-digest/internal/filter"
)

type fetchOptions struct {
	format    string
	platforms []string
	match     string
	sort      string
}

func newFetchCmd(root *rootOptions) *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the page once and print the upcoming contests",
		Long: `Fetch the contest calendar, keep the contests starting within the window,
and print them. Exit status is 2 when the page could not be fetched and the
output came from an expired cache entry, and 1 on other errors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, json or ics")
	cmd.Flags().StringSliceVar(&opts.platforms, "platform", nil, "Only these platforms (codeforces, atcoder, luogu or cf, ac, lg)")
	cmd.Flags().StringVar(&opts.match, "match", "", `Filter expression, e.g. "name:div2 type:IOI weekends"`)
	cmd.Flags().StringVar(&opts.sort, "sort", string(SortBySource), "Order within each platform: source, start or name")

	return cmd
}

func buildFilter(platforms []string, match string) (*filter.Filter, error) {
	f, err := filter.Parse(match)
	if err != nil {
		return nil, fmt.Errorf("parsing --match: %w", err)
	}
	ps, err := filter.ParsePlatforms(platforms)
	if err != nil {
		return nil, fmt.Errorf("parsing --platform: %w", err)
	}
	f.Platforms = append(f.Platforms, ps...)
	return f, nil
}

func runFetch(cmd *cobra.Command, root *rootOptions, opts *fetchOptions) error {
	format, err := ParseOutputFormat(opts.format)
	if err != nil {
		return err
	}
	order, err := ParseSortOrder(opts.sort)
	if err != nil {
		return err
	}
	f, err := buildFilter(opts.platforms, opts.match)
	if err != nil {
		return err
	}

	rt, err := setup(root)
	if err != nil {
		return err
	}

	if root.verbose {
		fmt.Fprintf(os.Stderr, "Fetching contests from %s\n", rt.cfg.Source.URL)
		if !f.IsEmpty() {
			fmt.Fprintf(os.Stderr, "Filter: %s\n", f)
		}
	}

	loc, _ := rt.cfg.Location()

	sched, err := rt.aggregator.Current(cmd.Context())
	if err != nil {
		// JSON consumers still get the full shape, with the error field set
		if format == FormatJSON && sched != nil {
			if werr := WriteOutput(cmd.OutOrStdout(), sched, format, root.verbose, loc); werr != nil {
				return fmt.Errorf("writing output: %w", werr)
			}
		}
		return fmt.Errorf("fetching contests: %w", err)
	}

	out := sortSchedule(f.Apply(sched), order)
	if err := WriteOutput(cmd.OutOrStdout(), out, format, root.verbose, loc); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if sched.Error != "" {
		return &exitError{code: ExitDegraded, err: errors.New(sched.Error)}
	}
	return nil
}
