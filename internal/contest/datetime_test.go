package contest

import (
	"testing"
	"time"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantParsed bool
		want       time.Time
		wantRaw    string
	}{
		{
			name:       "full canonical form",
			raw:        "2026-01-29 22:35:00",
			wantParsed: true,
			want:       time.Date(2026, 1, 29, 22, 35, 0, 0, time.UTC),
			wantRaw:    "2026-01-29 22:35:00",
		},
		{
			name:       "without seconds",
			raw:        "2026-01-29 22:35",
			wantParsed: true,
			want:       time.Date(2026, 1, 29, 22, 35, 0, 0, time.UTC),
			wantRaw:    "2026-01-29 22:35",
		},
		{
			name:       "surrounding whitespace is trimmed",
			raw:        "\n  2026-03-01 09:05:30 \t",
			wantParsed: true,
			want:       time.Date(2026, 3, 1, 9, 5, 30, 0, time.UTC),
			wantRaw:    "2026-03-01 09:05:30",
		},
		{
			name:    "not a date",
			raw:     "TBD",
			wantRaw: "TBD",
		},
		{
			name:    "impossible calendar date",
			raw:     "2026-02-30 10:00",
			wantRaw: "2026-02-30 10:00",
		},
		{
			name:    "impossible hour",
			raw:     "2026-02-10 24:30",
			wantRaw: "2026-02-10 24:30",
		},
		{
			name:    "empty",
			raw:     "",
			wantRaw: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDateTime(tt.raw)

			if got.Parsed() != tt.wantParsed {
				t.Fatalf("ParseDateTime(%q).Parsed() = %v, want %v", tt.raw, got.Parsed(), tt.wantParsed)
			}
			if got.Raw() != tt.wantRaw {
				t.Errorf("ParseDateTime(%q).Raw() = %q, want %q", tt.raw, got.Raw(), tt.wantRaw)
			}
			if tt.wantParsed && !got.Time().Equal(tt.want) {
				t.Errorf("ParseDateTime(%q).Time() = %v, want %v", tt.raw, got.Time(), tt.want)
			}
			if !tt.wantParsed && !got.Time().IsZero() {
				t.Errorf("ParseDateTime(%q).Time() = %v, want zero time", tt.raw, got.Time())
			}
		})
	}
}

func TestDateTime_AddHoursZeroIsIdentity(t *testing.T) {
	inputs := []string{
		"2026-01-29 22:35:00",
		"2026-12-31 23:59:59",
		"2024-02-29 00:00:00",
		"2026-07-04 08:15",
	}

	for _, raw := range inputs {
		d := ParseDateTime(raw)
		shifted := d.AddHours(0)

		if !shifted.Time().Equal(d.Time()) {
			t.Errorf("AddHours(%q, 0) = %v, want %v", raw, shifted.Time(), d.Time())
		}
		if shifted.String() != d.String() {
			t.Errorf("AddHours(%q, 0).String() = %q, want %q", raw, shifted.String(), d.String())
		}
	}
}

func TestDateTime_AddHours(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		hours float64
		want  string
	}{
		{"fractional hours cross midnight", "2026-01-29 22:35:00", 2.5, "2026-01-30 01:05:00"},
		{"whole hours", "2026-01-29 10:00:00", 2, "2026-01-29 12:00:00"},
		{"third of an hour", "2026-01-29 10:00:00", 1.0 / 3, "2026-01-29 10:20:00"},
		{"rounds to nearest minute", "2026-01-29 10:00:00", 0.01, "2026-01-29 10:01:00"},
		{"seconds are kept", "2026-01-29 10:00:30", 1.75, "2026-01-29 11:45:30"},
		{"crosses year end", "2026-12-31 23:00:00", 3, "2027-01-01 02:00:00"},
		{"missing seconds gain them", "2026-05-01 20:00", 0.5, "2026-05-01 20:30:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDateTime(tt.raw).AddHours(tt.hours)
			if !got.Parsed() {
				t.Fatalf("AddHours(%q, %v) is unparsed", tt.raw, tt.hours)
			}
			if got.String() != tt.want {
				t.Errorf("AddHours(%q, %v) = %q, want %q", tt.raw, tt.hours, got.String(), tt.want)
			}
		})
	}
}

func TestDateTime_UnparsedPassesThrough(t *testing.T) {
	d := ParseDateTime("coming soon")

	if got := d.AddHours(2).Raw(); got != "coming soon" {
		t.Errorf("AddHours on unparsed = %q, want raw text", got)
	}
	if got := d.Format("01-02 15:04"); got != "coming soon" {
		t.Errorf("Format on unparsed = %q, want raw text", got)
	}
	if got := d.String(); got != "coming soon" {
		t.Errorf("String on unparsed = %q, want raw text", got)
	}
	if got := d.In(time.UTC); !got.IsZero() {
		t.Errorf("In on unparsed = %v, want zero time", got)
	}
}

func TestDateTime_In(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*60*60)
	got := ParseDateTime("2026-01-29 22:35:00").In(shanghai)

	want := time.Date(2026, 1, 29, 14, 35, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("In(CST) = %v, want %v", got.UTC(), want)
	}
}

func TestWallClock(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*60*60)
	now := time.Date(2026, 1, 29, 20, 0, 0, 0, shanghai)

	got := WallClock(now)
	want := time.Date(2026, 1, 29, 20, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WallClock(%v) = %v, want %v", now, got, want)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		text   string
		want   float64
		wantOK bool
	}{
		{"2.5", 2.5, true},
		{" 2 ", 2, true},
		{"2 hours", 2, true},
		{".5", 0.5, true},
		{"3.", 3, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseDuration(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ParseDuration(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
