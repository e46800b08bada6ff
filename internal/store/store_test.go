package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resource-hub-backend/internal/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Resource{}, &model.BookingRequest{}))
	return NewGormStore(db)
}

func validResource(title string) model.Resource {
	return model.Resource{
		Title:             title,
		Category:          "Kitchen",
		Description:       "Stand mixer with dough hook",
		Location:          "Elm Street",
		AvailabilityStart: "2030-03-01",
		AvailabilityEnd:   "2030-04-01",
		Condition:         "Excellent",
		Rating:            5,
	}
}

func TestCreateResourceAssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := validResource("Stand Mixer")
	id, err := s.CreateResource(ctx, &first)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id, "first id in an empty store is 1")

	second := validResource("Food Processor")
	id, err = s.CreateResource(ctx, &second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
}

func TestCreateResourceRejectsInvalidRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*model.Resource)
		want   error
	}{
		{"blank title", func(r *model.Resource) { r.Title = "  " }, model.ErrMissingRequiredField},
		{"blank location", func(r *model.Resource) { r.Location = "" }, model.ErrMissingRequiredField},
		{"unknown category", func(r *model.Resource) { r.Category = "Starships" }, model.ErrInvalidCategory},
		{"unknown condition", func(r *model.Resource) { r.Condition = "Mint" }, model.ErrInvalidCondition},
		{"rating out of range", func(r *model.Resource) { r.Rating = 6 }, model.ErrInvalidRating},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := validResource("Candidate")
			tc.mutate(&res)

			_, err := s.CreateResource(ctx, &res)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	resources, err := s.ListResources(ctx)
	require.NoError(t, err)
	assert.Empty(t, resources, "rejected resources must not be stored")
}

func TestCreateResourceBumpsVersion(t *testing.T) {
	s := newTestStore(t)
	before := s.ResourceVersion()

	res := validResource("Ladder")
	_, err := s.CreateResource(context.Background(), &res)
	require.NoError(t, err)

	assert.Greater(t, s.ResourceVersion(), before)
}

func TestGetResourceNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetResource(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAvailableResourcesExcludesClearedWindows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	open := validResource("Tent")
	_, err := s.CreateResource(ctx, &open)
	require.NoError(t, err)

	booked := validResource("Kayak")
	booked.AvailabilityStart = ""
	booked.AvailabilityEnd = ""
	// Validate passes with empty dates; only title/location/enums are checked.
	_, err = s.CreateResource(ctx, &booked)
	require.NoError(t, err)

	available, err := s.AvailableResources(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Tent", available[0].Title)
}

func TestRecordBookingClearsAvailability(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res := validResource("Projector")
	_, err := s.CreateResource(ctx, &res)
	require.NoError(t, err)
	versionBefore := s.ResourceVersion()

	req := model.BookingRequest{
		UserName:      "Alice",
		ResourceID:    res.ID,
		ResourceTitle: res.Title,
		StartDate:     "2030-03-05",
		EndDate:       "2030-03-08",
		Status:        model.StatusConfirmed,
	}
	require.NoError(t, s.RecordBooking(ctx, &req, true))
	assert.Equal(t, int64(1), req.RequestID)

	got, err := s.GetResource(ctx, res.ID)
	require.NoError(t, err)
	assert.Empty(t, got.AvailabilityStart)
	assert.Empty(t, got.AvailabilityEnd)
	assert.Greater(t, s.ResourceVersion(), versionBefore, "clearing availability changes the resource set")
}

func TestRecordBookingWaitlistLeavesResourceAlone(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res := validResource("Telescope")
	_, err := s.CreateResource(ctx, &res)
	require.NoError(t, err)
	versionBefore := s.ResourceVersion()

	req := model.BookingRequest{
		UserName:      "Bob",
		ResourceID:    res.ID,
		ResourceTitle: res.Title,
		StartDate:     "2030-03-05",
		EndDate:       "2030-03-08",
		Status:        model.StatusWaitlist,
	}
	require.NoError(t, s.RecordBooking(ctx, &req, false))

	got, err := s.GetResource(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "2030-03-01", got.AvailabilityStart)
	assert.Equal(t, versionBefore, s.ResourceVersion())
}

func TestListRequestsFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res := validResource("Bike")
	_, err := s.CreateResource(ctx, &res)
	require.NoError(t, err)
	other := validResource("Scooter")
	_, err = s.CreateResource(ctx, &other)
	require.NoError(t, err)

	entries := []model.BookingRequest{
		{UserName: "Alice", ResourceID: res.ID, ResourceTitle: res.Title, StartDate: "2030-03-01", EndDate: "2030-03-02", Status: model.StatusConfirmed},
		{UserName: "Bob", ResourceID: res.ID, ResourceTitle: res.Title, StartDate: "2030-03-01", EndDate: "2030-03-02", Status: model.StatusWaitlist},
		{UserName: "Cara", ResourceID: other.ID, ResourceTitle: other.Title, StartDate: "2030-04-01", EndDate: "2030-04-02", Status: model.StatusConfirmed},
	}
	for i := range entries {
		require.NoError(t, s.RecordBooking(ctx, &entries[i], false))
	}

	confirmed, err := s.ListRequests(ctx, RequestFilter{Status: model.StatusConfirmed})
	require.NoError(t, err)
	assert.Len(t, confirmed, 2)

	forBike, err := s.ListRequests(ctx, RequestFilter{ResourceID: res.ID})
	require.NoError(t, err)
	assert.Len(t, forBike, 2)

	confirmedBike, err := s.ListRequests(ctx, RequestFilter{Status: model.StatusConfirmed, ResourceID: res.ID})
	require.NoError(t, err)
	require.Len(t, confirmedBike, 1)
	assert.Equal(t, "Alice", confirmedBike[0].UserName)

	all, err := s.ListRequests(ctx, RequestFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res := validResource("Guitar")
	_, err := s.CreateResource(ctx, &res)
	require.NoError(t, err)

	entries := []model.BookingRequest{
		{UserName: "Alice", ResourceID: res.ID, ResourceTitle: res.Title, StartDate: "2030-03-01", EndDate: "2030-03-02", Status: model.StatusConfirmed},
		{UserName: "Alice", ResourceID: res.ID, ResourceTitle: res.Title, StartDate: "2030-04-01", EndDate: "2030-04-02", Status: model.StatusWaitlist},
		{UserName: "Bob", ResourceID: res.ID, ResourceTitle: res.Title, StartDate: "2030-04-10", EndDate: "2030-04-12", Status: model.StatusWaitlist},
	}
	for i := range entries {
		require.NoError(t, s.RecordBooking(ctx, &entries[i], false))
	}

	stats, err := s.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.TotalResources)
	assert.Equal(t, int64(1), stats.AvailableResources)
	assert.Equal(t, int64(0), stats.BookedResources)
	assert.Equal(t, int64(3), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.ConfirmedRequests)
	assert.Equal(t, int64(2), stats.WaitlistRequests)

	require.Len(t, stats.PopularResources, 1)
	assert.Equal(t, "Guitar", stats.PopularResources[0].ResourceTitle)
	assert.Equal(t, int64(3), stats.PopularResources[0].Requests)

	require.Len(t, stats.ActiveUsers, 2)
	assert.Equal(t, "Alice", stats.ActiveUsers[0].UserName)
	assert.Equal(t, int64(2), stats.ActiveUsers[0].Requests)

	require.Len(t, stats.MonthlyTrend, 2)
	assert.Equal(t, "2030-03", stats.MonthlyTrend[0].Month)
	assert.Equal(t, int64(1), stats.MonthlyTrend[0].Requests)
	assert.Equal(t, "2030-04", stats.MonthlyTrend[1].Month)
	assert.Equal(t, int64(2), stats.MonthlyTrend[1].Requests)
}
