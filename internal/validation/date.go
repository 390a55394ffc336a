package validation

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// ParseMonth parses a YYYY-MM value into the first day of that month (UTC).
func ParseMonth(value string) (time.Time, error) {
	t, err := time.Parse(monthLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM", value)
	}
	return t, nil
}

// ValidateDateRange parses a start/end month pair for timeline entries.
// End is required unless the entry is marked current, and may not precede start.
func ValidateDateRange(startDate, endDate string, isCurrent bool) (time.Time, *time.Time, error) {
	start, err := ParseMonth(startDate)
	if err != nil {
		return time.Time{}, nil, err
	}

	if isCurrent {
		// Current entries carry no end date even if one was submitted.
		return start, nil, nil
	}

	if endDate == "" {
		return time.Time{}, nil, fmt.Errorf("end date is required unless the entry is current")
	}

	end, err := ParseMonth(endDate)
	if err != nil {
		return time.Time{}, nil, err
	}
	if end.Before(start) {
		return time.Time{}, nil, fmt.Errorf("end date %s precedes start date %s", endDate, startDate)
	}

	return start, &end, nil
}
