package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pfrederiksen/contest-digest/internal/contest"
	"github.com/pfrederiksen/contest-digest/internal/digest"
)

// DryRunNotifier prints what would be sent without sending it
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to w, or stdout when w is nil
func NewDryRunNotifier(w io.Writer) *DryRunNotifier {
	if w == nil {
		w = os.Stdout
	}
	return &DryRunNotifier{out: w}
}

// Notify prints the digest and its length
func (n *DryRunNotifier) Notify(_ context.Context, s *contest.Schedule) error {
	text := digest.Format(s)
	fmt.Fprintln(n.out, "--- Digest ---")
	fmt.Fprint(n.out, text)
	fmt.Fprintf(n.out, "\n(Length: %d characters, %d contests)\n", utf8.RuneCountInString(text), s.Len())
	return nil
}
