package timebucket

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"now", "now", now},
		{"today", "Today", time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)},
		{"yesterday", "yesterday", time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)},
		{"hours ago", "2h ago", now.Add(-2 * time.Hour)},
		{"days ago", "1d ago", now.Add(-24 * time.Hour)},
		{"weeks ago", "2 w ago", now.Add(-14 * 24 * time.Hour)},
		{"date", "2026-10-01", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
		{"date and hour", "2026-10-01 07", time.Date(2026, 10, 1, 7, 0, 0, 0, time.UTC)},
		{"date and minute", "2026-10-01T07:45", time.Date(2026, 10, 1, 7, 45, 0, 0, time.UTC)},
		{"rfc3339", "2026-10-01T07:45:00Z", time.Date(2026, 10, 1, 7, 45, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, now)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 4, 5, 0, time.UTC)
	for _, input := range []string{"", "   ", "0h ago", "someday", "2h from now", "3mo ago"} {
		if _, err := Parse(input, now); err == nil {
			t.Errorf("Parse(%q) expected error", input)
		}
	}
}

func TestBucket(t *testing.T) {
	now := time.Date(2026, 10, 18, 1, 30, 0, 0, time.UTC)
	shanghai := time.FixedZone("UTC+8", 8*60*60)

	tests := []struct {
		name  string
		input string
		loc   *time.Location
		want  string
	}{
		{"passthrough", "2026101812", time.UTC, "2026101812"},
		{"passthrough trims", " 2026101812 ", time.UTC, "2026101812"},
		{"relative utc", "2h ago", time.UTC, "2026101723"},
		{"relative zone", "2h ago", shanghai, "2026101807"},
		{"date hour in zone", "2026-10-18 09", shanghai, "2026101809"},
		{"yesterday in zone", "yesterday", shanghai, "2026101700"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bucket(tt.input, now, tt.loc)
			if err != nil {
				t.Fatalf("Bucket(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("Bucket(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBucket_InvalidDigits(t *testing.T) {
	if _, err := Bucket("2026139912", time.Now(), time.UTC); err == nil {
		t.Fatal("expected error for month 13")
	}
}
