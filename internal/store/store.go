package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"gorm.io/gorm"

	"resource-hub-backend/internal/model"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// RequestFilter narrows ledger queries. Zero values mean "no filter".
type RequestFilter struct {
	Status     model.RequestStatus
	ResourceID int64
}

// Store defines the interface for all database operations.
type Store interface {
	// DB exposes the underlying handle for callers that need raw access
	// (subscription handlers, notification worker).
	DB() *gorm.DB

	CreateResource(ctx context.Context, res *model.Resource) (int64, error)
	GetResource(ctx context.Context, id int64) (model.Resource, error)
	ListResources(ctx context.Context) ([]model.Resource, error)
	AvailableResources(ctx context.Context) ([]model.Resource, error)

	ListRequests(ctx context.Context, filter RequestFilter) ([]model.BookingRequest, error)
	// RecordBooking appends one ledger entry, assigning request_id, and when
	// clearAvailability is set empties the resource's availability window in
	// the same transaction.
	RecordBooking(ctx context.Context, req *model.BookingRequest, clearAvailability bool) error

	Stats(ctx context.Context) (Stats, error)

	// ResourceVersion increases on every write to the resource set. The search
	// index compares it against the version it was built at.
	ResourceVersion() uint64
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db      *gorm.DB
	version atomic.Uint64
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	s := &gormStore{db: db}
	s.version.Store(1)
	return s
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) ResourceVersion() uint64 {
	return s.version.Load()
}

// CreateResource validates and inserts a new resource. IDs are assigned as
// max(existing)+1, 1 when the table is empty, matching the ledger scheme.
func (s *gormStore) CreateResource(ctx context.Context, res *model.Resource) (int64, error) {
	if err := res.Validate(); err != nil {
		return 0, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID int64
		if err := tx.Model(&model.Resource{}).
			Select("COALESCE(MAX(id), 0)").
			Scan(&maxID).Error; err != nil {
			return fmt.Errorf("failed to determine next resource id: %w", err)
		}
		res.ID = maxID + 1
		if err := tx.Create(res).Error; err != nil {
			return fmt.Errorf("failed to create resource: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.version.Add(1)
	return res.ID, nil
}

func (s *gormStore) GetResource(ctx context.Context, id int64) (model.Resource, error) {
	var res model.Resource
	err := s.db.WithContext(ctx).First(&res, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Resource{}, ErrNotFound
	}
	if err != nil {
		return model.Resource{}, fmt.Errorf("failed to fetch resource %d: %w", id, err)
	}
	return res, nil
}

func (s *gormStore) ListResources(ctx context.Context) ([]model.Resource, error) {
	var resources []model.Resource
	if err := s.db.WithContext(ctx).Order("id").Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

// AvailableResources returns resources whose availability window is still set.
func (s *gormStore) AvailableResources(ctx context.Context) ([]model.Resource, error) {
	var resources []model.Resource
	if err := s.db.WithContext(ctx).
		Where("availability_start <> '' AND availability_end <> ''").
		Order("id").
		Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("failed to list available resources: %w", err)
	}
	return resources, nil
}

func (s *gormStore) ListRequests(ctx context.Context, filter RequestFilter) ([]model.BookingRequest, error) {
	q := s.db.WithContext(ctx).Model(&model.BookingRequest{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ResourceID != 0 {
		q = q.Where("resource_id = ?", filter.ResourceID)
	}

	var requests []model.BookingRequest
	if err := q.Order("request_id").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list booking requests: %w", err)
	}
	return requests, nil
}

// RecordBooking is the single write path of the booking engine: exactly one
// ledger append, and at most one resource mutation, committed together.
func (s *gormStore) RecordBooking(ctx context.Context, req *model.BookingRequest, clearAvailability bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID int64
		if err := tx.Model(&model.BookingRequest{}).
			Select("COALESCE(MAX(request_id), 0)").
			Scan(&maxID).Error; err != nil {
			return fmt.Errorf("failed to determine next request id: %w", err)
		}
		req.RequestID = maxID + 1
		if err := tx.Create(req).Error; err != nil {
			return fmt.Errorf("failed to append booking request: %w", err)
		}

		if clearAvailability {
			result := tx.Model(&model.Resource{}).
				Where("id = ?", req.ResourceID).
				Updates(map[string]any{
					"availability_start": "",
					"availability_end":   "",
				})
			if result.Error != nil {
				return fmt.Errorf("failed to clear availability for resource %d: %w", req.ResourceID, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("resource %d vanished during booking: %w", req.ResourceID, ErrNotFound)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if clearAvailability {
		s.version.Add(1)
	}
	return nil
}
