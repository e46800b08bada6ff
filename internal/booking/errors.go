package booking

import "errors"

// Validation failures of the booking flow. All of them are recovered at the
// HTTP boundary and reported to the user; none are fatal.
var (
	ErrInvalidDateRange = errors.New("start date must be before or equal to end date")
	ErrPastDate         = errors.New("dates cannot be in the past")
	ErrMissingUserName  = errors.New("user name is required")
	ErrResourceNotFound = errors.New("resource not found")
)
