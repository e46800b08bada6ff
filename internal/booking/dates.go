package booking

import (
	"fmt"
	"time"

	"resource-hub-backend/internal/model"
)

// ValidateWindow parses a YYYY-MM-DD date pair and checks the shared date
// rules: start must not come after end, and neither date may lie before
// today. Used by both the offer flow and the booking engine.
func ValidateWindow(startDate, endDate string, now time.Time) (start, end time.Time, err error) {
	start, err = time.Parse(model.DateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad start date %q", ErrInvalidDateRange, startDate)
	}
	end, err = time.Parse(model.DateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad end date %q", ErrInvalidDateRange, endDate)
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}

	today := truncateToDay(now)
	if start.Before(today) || end.Before(today) {
		return time.Time{}, time.Time{}, ErrPastDate
	}
	return start, end, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
