package booking

import (
	"time"

	"resource-hub-backend/internal/model"
)

// Overlaps reports whether the closed intervals [s1,e1] and [s2,e2] intersect.
// Endpoints are inclusive, so ranges sharing only a boundary day do overlap,
// while adjacent ranges (e1 the day before s2) do not.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !e1.Before(s2)
}

// Available reports whether the candidate range [start,end] conflicts with no
// confirmed ledger entry for the given resource. Pure function of its inputs.
func Available(resourceID int64, start, end time.Time, ledger []model.BookingRequest) bool {
	for _, req := range ledger {
		if req.ResourceID != resourceID || req.Status != model.StatusConfirmed {
			continue
		}
		existingStart, err := time.Parse(model.DateLayout, req.StartDate)
		if err != nil {
			continue
		}
		existingEnd, err := time.Parse(model.DateLayout, req.EndDate)
		if err != nil {
			continue
		}
		if Overlaps(start, end, existingStart, existingEnd) {
			return false
		}
	}
	return true
}
