package service

import "time"

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD string into a UTC midnight time.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// dateKey formats a time as its YYYY-MM-DD valuation date key.
func dateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// dateOnly truncates a time to its UTC calendar day.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dateRange returns every calendar day from from to to, inclusive.
func dateRange(from, to time.Time) []time.Time {
	if to.Before(from) {
		return nil
	}
	days := int(to.Sub(from).Hours()/24) + 1
	out := make([]time.Time, 0, days)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}
