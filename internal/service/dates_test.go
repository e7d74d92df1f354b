package service

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		d, err := parseDate("2026-08-20")
		if err != nil {
			t.Fatalf("parseDate: %v", err)
		}
		if dateKey(d) != "2026-08-20" {
			t.Fatalf("expected round-trip 2026-08-20, got %s", dateKey(d))
		}
	})

	for _, bad := range []string{"", "20-08-2026", "2026/08/20", "2026-13-01", "yesterday"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			if _, err := parseDate(bad); err == nil {
				t.Fatalf("expected error for %q, got nil", bad)
			}
		})
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 8, 20, 23, 59, 59, 0, time.UTC)
	got := dateOnly(in)
	want := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDateRange(t *testing.T) {
	from := time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	t.Run("inclusive on both ends", func(t *testing.T) {
		days := dateRange(from, to)
		if len(days) != 3 {
			t.Fatalf("expected 3 days, got %d", len(days))
		}
		if dateKey(days[0]) != "2026-08-18" || dateKey(days[2]) != "2026-08-20" {
			t.Fatalf("unexpected bounds: %s .. %s", dateKey(days[0]), dateKey(days[2]))
		}
	})

	t.Run("single day", func(t *testing.T) {
		days := dateRange(from, from)
		if len(days) != 1 {
			t.Fatalf("expected 1 day, got %d", len(days))
		}
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		if days := dateRange(to, from); days != nil {
			t.Fatalf("expected nil for inverted range, got %v", days)
		}
	})
}
