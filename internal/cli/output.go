package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/contest-digest/internal/calendar"
	"github.com/pfrederiksen/contest-digest/internal/contest"
	"github.com/pfrederiksen/contest-digest/internal/digest"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

// ParseOutputFormat validates a --format value
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatText, FormatJSON, FormatICS:
		return f, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'ics')", s)
}

// WriteOutput writes the schedule in the specified format. loc is only used by ics.
func WriteOutput(w io.Writer, s *contest.Schedule, format OutputFormat, verbose bool, loc *time.Location) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, s)
	case FormatText:
		return writeText(w, s, verbose)
	case FormatICS:
		_, err := io.WriteString(w, calendar.Generate(s, calendar.Options{Location: loc}))
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the schedule in its API shape, indented
func writeJSON(w io.Writer, s *contest.Schedule) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}

// writeText outputs the copy-as-text digest. Verbose adds IDs, links and a footer.
func writeText(w io.Writer, s *contest.Schedule, verbose bool) error {
	if !verbose {
		_, err := io.WriteString(w, digest.Format(s))
		return err
	}

	for _, p := range contest.Platforms {
		list := s.List(p)
		fmt.Fprintf(w, "\n%s (%d):\n", p, len(list))
		for _, c := range list {
			fmt.Fprintf(w, "  %s\n", digest.Line(c))
			fmt.Fprintf(w, "       ID: %s\n", c.ID)
			if c.URL != "" {
				fmt.Fprintf(w, "       URL: %s\n", c.URL)
			}
			if c.Start.Parsed() {
				fmt.Fprintf(w, "       Source start: %s\n", c.Start.Raw())
			}
		}
	}

	fmt.Fprintf(w, "\nTotal: %d contests, updated %s\n", s.Len(), s.LastUpdated.Format(time.RFC3339))
	if s.Error != "" {
		fmt.Fprintf(w, "Warning: %s\n", s.Error)
	}
	return nil
}
