// Package cli implements the contest-digest command line.
//
// The root command loads configuration and wires the scraper, cache and aggregator
// together; its subcommands print the schedule once (fetch), serve it over HTTP with
// periodic revalidation (serve), or post the weekly digest to a chat or mailbox (notify).
package cli
