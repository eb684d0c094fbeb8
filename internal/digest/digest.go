// Package digest renders a schedule as the plain-text weekly announcement that is pasted
// into chat groups.
package digest

import (
	"strings"
	"unicode/utf8"

	"github.com/pfrederiksen/contest-digest/internal/contest"
)

const (
	header = "本周赛事预告~"
	empty  = "暂无比赛"
)

// sectionTitle is the label printed above each platform's lines
func sectionTitle(p contest.Platform) string {
	switch p {
	case contest.AtCoder:
		return "Atcoder:"
	default:
		return string(p) + ":"
	}
}

// Line renders one contest the way its platform's section expects
func Line(c contest.Contest) string {
	switch c.Platform {
	case contest.Codeforces:
		when := c.StartTime
		if c.EndTime != "" {
			when += "-" + c.EndTime
		}
		return c.Name + "  " + when
	case contest.AtCoder:
		return c.Name + " " + c.StartTime
	case contest.Luogu:
		if c.Type != "" {
			return c.Name + "\t" + c.Type + "\t" + c.StartTime
		}
		return c.Name + "\t" + c.StartTime
	default:
		return c.Name + " " + c.StartTime
	}
}

// Format renders all three platforms. An empty platform still gets its section.
func Format(s *contest.Schedule) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	for i, p := range contest.Platforms {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionTitle(p))
		b.WriteString("\n")

		list := s.List(p)
		if len(list) == 0 {
			b.WriteString(empty)
			b.WriteString("\n")
			continue
		}
		for _, c := range list {
			b.WriteString(Line(c))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Truncate shortens text to at most limit runes, ending on a line boundary when one
// is available and marking the cut with an ellipsis.
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	const ellipsis = "…"
	runes := []rune(text)
	cut := string(runes[:limit-1])
	if i := strings.LastIndex(cut, "\n"); i > 0 {
		cut = cut[:i+1]
	}
	return cut + ellipsis
}
