// Package timebucket turns human time expressions into the hour buckets
// used to address chat history archives.
package timebucket

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is the archive bucket format, one bucket per hour.
const Layout = "2006010215"

var (
	bucketRegex = regexp.MustCompile(`^\d{10}$`)
	agoRegex    = regexp.MustCompile(`^(\d+)\s*(w|d|h)\s*ago$`)
)

// Parse resolves s to a past instant. Supported forms: "now", "today",
// "yesterday", "3h ago", "2d ago", "1w ago", "2006-01-02",
// "2006-01-02 15", "2006-01-02T15:04" and RFC3339.
func Parse(s string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty time expression")
	}

	switch input := strings.ToLower(raw); input {
	case "now":
		return now, nil
	case "today":
		return startOfDay(now), nil
	case "yesterday":
		return startOfDay(now).AddDate(0, 0, -1), nil
	default:
		if m := agoRegex.FindStringSubmatch(input); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 1 {
				return time.Time{}, fmt.Errorf("invalid relative time %q", raw)
			}
			return now.Add(-time.Duration(n) * unit(m[2])), nil
		}
	}

	for _, layout := range []string{"2006-01-02 15", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, now.Location()); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time expression %q", raw)
}

// Bucket returns the hour bucket for s. A ten-digit bucket is passed
// through unchanged; anything else goes through Parse and is formatted in
// loc.
func Bucket(s string, now time.Time, loc *time.Location) (string, error) {
	raw := strings.TrimSpace(s)
	if bucketRegex.MatchString(raw) {
		if _, err := time.Parse(Layout, raw); err != nil {
			return "", fmt.Errorf("invalid time bucket %q", raw)
		}
		return raw, nil
	}
	t, err := Parse(raw, now.In(loc))
	if err != nil {
		return "", err
	}
	return t.In(loc).Format(Layout), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func unit(u string) time.Duration {
	switch u {
	case "w":
		return 7 * 24 * time.Hour
	case "d":
		return 24 * time.Hour
	default:
		return time.Hour
	}
}
