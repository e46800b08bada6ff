package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Categories is the closed set of resource categories accepted by the offer flow.
var Categories = []string{
	"Tools", "Sports", "Electronics", "Books", "Kitchen",
	"Furniture", "Vehicles", "Musical Instruments", "Clothing",
	"Gardening", "Toys", "Appliances", "Outdoor", "Other",
}

// Conditions is the closed set of physical conditions.
var Conditions = []string{"Excellent", "Good", "Fair", "Poor"}

// DateLayout is the wire and storage format for all calendar dates.
const DateLayout = "2006-01-02"

var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidCondition     = errors.New("invalid condition")
	ErrInvalidRating        = errors.New("rating must be between 0 and 5")
)

// Resource represents a physical item offered to the community pool.
// Availability dates are stored as YYYY-MM-DD strings; the empty string is the
// sentinel for "currently unavailable / fully booked".
type Resource struct {
	ID                int64  `gorm:"primaryKey" json:"id"`
	Title             string `gorm:"size:256;not null" json:"title"`
	Category          string `gorm:"size:64;not null;index" json:"category"`
	Description       string `json:"description"`
	Location          string `gorm:"size:256;not null" json:"location"`
	AvailabilityStart string `gorm:"size:10" json:"availability_start"`
	AvailabilityEnd   string `gorm:"size:10" json:"availability_end"`
	Condition         string `gorm:"size:16;not null" json:"condition"`
	Rating            int    `gorm:"not null" json:"rating"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasAvailabilityWindow reports whether the resource can still take a new
// confirmed booking. Both fields are emptied once any booking is confirmed.
func (r *Resource) HasAvailabilityWindow() bool {
	return r.AvailabilityStart != "" && r.AvailabilityEnd != ""
}

// SearchText joins the text fields indexed by semantic search, missing fields
// contributing an empty string.
func (r *Resource) SearchText() string {
	return strings.Join([]string{r.Title, r.Location, r.Condition, r.Description}, " ")
}

// Validate checks the offer-flow invariants on a new resource.
func (r *Resource) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title", ErrMissingRequiredField)
	}
	if strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("%w: location", ErrMissingRequiredField)
	}
	if !contains(Categories, r.Category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, r.Category)
	}
	if !contains(Conditions, r.Condition) {
		return fmt.Errorf("%w: %q", ErrInvalidCondition, r.Condition)
	}
	if r.Rating < 0 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
