package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"resource-hub-backend/internal/model"
	"resource-hub-backend/internal/store"
)

// Engine runs the booking flow: validation, availability check, ledger append
// and availability clearing. Steps that read and then write shared state run
// under a per-resource lock, so concurrent submissions for the same resource
// serialize instead of both confirming.
type Engine struct {
	store store.Store

	mu    sync.Mutex
	locks map[int64]*sync.Mutex

	// now is swapped out in tests.
	now func() time.Time
}

// NewEngine creates a booking engine backed by the given store.
func NewEngine(s store.Store) *Engine {
	return &Engine{
		store: s,
		locks: make(map[int64]*sync.Mutex),
		now:   time.Now,
	}
}

func (e *Engine) resourceLock(resourceID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[resourceID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[resourceID] = l
	}
	return l
}

// Submit processes one booking request. Validation short-circuits in a fixed
// order: date range, past dates, user name, resource existence. A valid
// request always produces exactly one ledger entry, Confirmed when the
// resource still has an availability window and no confirmed entry overlaps
// the candidate range, Waitlist otherwise. Confirmation also empties the
// resource's availability window, so a resource confirms at most once until
// it is re-offered.
func (e *Engine) Submit(ctx context.Context, userName string, resourceID int64, startDate, endDate string) (model.BookingRequest, error) {
	start, end, err := ValidateWindow(startDate, endDate, e.now())
	if err != nil {
		return model.BookingRequest{}, err
	}

	userName = strings.TrimSpace(userName)
	if userName == "" {
		return model.BookingRequest{}, ErrMissingUserName
	}

	lock := e.resourceLock(resourceID)
	lock.Lock()
	defer lock.Unlock()

	res, err := e.store.GetResource(ctx, resourceID)
	if errors.Is(err, store.ErrNotFound) {
		return model.BookingRequest{}, ErrResourceNotFound
	}
	if err != nil {
		return model.BookingRequest{}, err
	}

	confirmed, err := e.store.ListRequests(ctx, store.RequestFilter{
		Status:     model.StatusConfirmed,
		ResourceID: resourceID,
	})
	if err != nil {
		return model.BookingRequest{}, err
	}

	available := res.HasAvailabilityWindow() && Available(resourceID, start, end, confirmed)

	req := model.BookingRequest{
		UserName:      userName,
		ResourceID:    resourceID,
		ResourceTitle: res.Title,
		StartDate:     start.Format(model.DateLayout),
		EndDate:       end.Format(model.DateLayout),
		Status:        model.StatusWaitlist,
	}
	if available {
		req.Status = model.StatusConfirmed
	}

	if err := e.store.RecordBooking(ctx, &req, available); err != nil {
		return model.BookingRequest{}, err
	}
	return req, nil
}
