package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// NormalizeDateString reduces a DataCite date value to day precision. Values
// with a time-of-day part and period ranges keep only their first component.
func NormalizeDateString(dateStr string) (string, error) {
	switch {
	case strings.Contains(dateStr, " "):
		// date with time of day: 2025-07-15 09:46:15
		return normalizeDatePrecision(strings.SplitN(dateStr, " ", 2)[0])
	case strings.Contains(dateStr, "/"):
		// period: 2021-11-08/2021-11-23
		return normalizeDatePrecision(strings.SplitN(dateStr, "/", 2)[0])
	default:
		return normalizeDatePrecision(dateStr)
	}
}

// normalizeDatePrecision pads a bare year to Jan 1, a year-month to day 1 and
// zero-pads non-padded month/day components.
func normalizeDatePrecision(dateStr string) (string, error) {
	switch len(dateStr) {
	case 10:
		if _, err := time.Parse(dateLayout, dateStr); err != nil {
			return "", fmt.Errorf("invalid date %q: %w", dateStr, err)
		}
		return dateStr, nil
	case 7:
		return dateStr + "-01", nil
	case 4:
		return dateStr + "-01-01", nil
	default:
		parts := strings.Split(dateStr, "-")

		year, err := strconv.Atoi(parts[0])
		if err != nil {
			return "", fmt.Errorf("invalid date %q: %w", dateStr, err)
		}
		month, day := 1, 1
		if len(parts) > 1 {
			if month, err = strconv.Atoi(parts[1]); err != nil {
				return "", fmt.Errorf("invalid date %q: %w", dateStr, err)
			}
		}
		if len(parts) > 2 {
			if day, err = strconv.Atoi(parts[2]); err != nil {
				return "", fmt.Errorf("invalid date %q: %w", dateStr, err)
			}
		}

		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if t.Year() != year || int(t.Month()) != month || t.Day() != day {
			return "", fmt.Errorf("invalid date %q", dateStr)
		}
		return t.Format(dateLayout), nil
	}
}
