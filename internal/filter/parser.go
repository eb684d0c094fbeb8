package filter

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/contest-digest/internal/contest"
)

// Parse builds a filter from a compact expression.
//
// Supported terms, separated by whitespace:
//   - "platform:cf,luogu" - platforms by name or prefix (also "p:")
//   - "name:div2" - name substring (also "n:"); repeat for OR
//   - "type:IOI" - Luogu contest tag (also "t:")
//   - "weekends" - Saturday/Sunday starts only
//
// A bare word with no prefix is treated as a name substring.
func Parse(expr string) (*Filter, error) {
	f := NewFilter()

	for _, term := range strings.Fields(expr) {
		key, value, hasKey := strings.Cut(term, ":")
		if !hasKey {
			if strings.EqualFold(term, "weekends") {
				f.WeekendsOnly = true
				continue
			}
			f.Names = append(f.Names, term)
			continue
		}

		if value == "" {
			return nil, fmt.Errorf("empty value for %q", key)
		}

		switch strings.ToLower(key) {
		case "platform", "p":
			platforms, err := ParsePlatforms(strings.Split(value, ","))
			if err != nil {
				return nil, err
			}
			f.Platforms = appendUnique(f.Platforms, platforms...)
		case "name", "n":
			f.Names = append(f.Names, value)
		case "type", "t":
			f.Types = append(f.Types, strings.Split(value, ",")...)
		default:
			return nil, fmt.Errorf("unknown filter key %q. Use platform:, name:, type: or weekends", key)
		}
	}

	return f, nil
}

// ParsePlatforms converts platform names or prefixes into platforms, skipping blanks.
func ParsePlatforms(values []string) ([]contest.Platform, error) {
	var out []contest.Platform
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		p, err := contest.ParsePlatform(v)
		if err != nil {
			return nil, err
		}
		out = appendUnique(out, p)
	}
	return out, nil
}

func appendUnique(list []contest.Platform, add ...contest.Platform) []contest.Platform {
	for _, p := range add {
		seen := false
		for _, q := range list {
			if p == q {
				seen = true
				break
			}
		}
		if !seen {
			list = append(list, p)
		}
	}
	return list
}
