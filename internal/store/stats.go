package store

import (
	"context"
	"fmt"

	"resource-hub-backend/internal/model"
)

// ResourceCount is one row of the popular-resources ranking.
type ResourceCount struct {
	ResourceTitle string `json:"resource_title"`
	Requests      int64  `json:"requests"`
}

// UserCount is one row of the active-users ranking.
type UserCount struct {
	UserName string `json:"user_name"`
	Requests int64  `json:"requests"`
}

// TrendPoint is one month of request volume, keyed by "YYYY-MM".
type TrendPoint struct {
	Month    string `json:"month"`
	Requests int64  `json:"requests"`
}

// Stats aggregates the dashboard metrics.
type Stats struct {
	TotalResources     int64           `json:"total_resources"`
	AvailableResources int64           `json:"available_resources"`
	BookedResources    int64           `json:"booked_resources"`
	TotalRequests      int64           `json:"total_requests"`
	ConfirmedRequests  int64           `json:"confirmed_requests"`
	WaitlistRequests   int64           `json:"waitlist_requests"`
	PopularResources   []ResourceCount `json:"popular_resources"`
	ActiveUsers        []UserCount     `json:"active_users"`
	MonthlyTrend       []TrendPoint    `json:"monthly_trend"`
}

const rankingLimit = 10

// Stats computes the dashboard aggregates in a handful of grouped queries.
func (s *gormStore) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	db := s.db.WithContext(ctx)

	if err := db.Model(&model.Resource{}).Count(&out.TotalResources).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to count resources: %w", err)
	}
	if err := db.Model(&model.Resource{}).
		Where("availability_start <> '' AND availability_end <> ''").
		Count(&out.AvailableResources).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to count available resources: %w", err)
	}
	out.BookedResources = out.TotalResources - out.AvailableResources

	if err := db.Model(&model.BookingRequest{}).Count(&out.TotalRequests).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to count requests: %w", err)
	}
	if err := db.Model(&model.BookingRequest{}).
		Where("status = ?", model.StatusConfirmed).
		Count(&out.ConfirmedRequests).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to count confirmed requests: %w", err)
	}
	if err := db.Model(&model.BookingRequest{}).
		Where("status = ?", model.StatusWaitlist).
		Count(&out.WaitlistRequests).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to count waitlist requests: %w", err)
	}

	if err := db.Model(&model.BookingRequest{}).
		Select("resource_title, COUNT(*) as requests").
		Group("resource_title").
		Order("requests DESC").
		Limit(rankingLimit).
		Scan(&out.PopularResources).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to rank popular resources: %w", err)
	}

	if err := db.Model(&model.BookingRequest{}).
		Select("user_name, COUNT(*) as requests").
		Group("user_name").
		Order("requests DESC").
		Limit(rankingLimit).
		Scan(&out.ActiveUsers).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to rank active users: %w", err)
	}

	// start_date is stored as YYYY-MM-DD, so the month key is a prefix.
	// substr() exists in both sqlite and postgres.
	if err := db.Model(&model.BookingRequest{}).
		Select("substr(start_date, 1, 7) as month, COUNT(*) as requests").
		Group("month").
		Order("month").
		Scan(&out.MonthlyTrend).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to compute monthly trend: %w", err)
	}

	return out, nil
}
