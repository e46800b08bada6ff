package predict

import (
	"time"

	"resource-hub-backend/internal/model"
)

// FeatureRow is the feature tuple consumed by the popularity model, one row
// per resource. Field names match the model's training columns.
type FeatureRow struct {
	Category             string `json:"category"`
	Condition            string `json:"condition"`
	Rating               int    `json:"rating"`
	AvailabilityDuration int    `json:"availability_duration"`
	CategoryCondition    string `json:"category_condition"`
}

// BuildFeatures derives one feature row per resource. The availability
// duration is the window length in days, floored at zero; resources with an
// empty or unparseable window contribute zero.
func BuildFeatures(resources []model.Resource) []FeatureRow {
	rows := make([]FeatureRow, len(resources))
	for i, r := range resources {
		rating := r.Rating
		if rating < 0 {
			rating = 0
		}
		if rating > 5 {
			rating = 5
		}
		rows[i] = FeatureRow{
			Category:             r.Category,
			Condition:            r.Condition,
			Rating:               rating,
			AvailabilityDuration: availabilityDuration(r.AvailabilityStart, r.AvailabilityEnd),
			CategoryCondition:    r.Category + "_" + r.Condition,
		}
	}
	return rows
}

func availabilityDuration(startDate, endDate string) int {
	start, err := time.Parse(model.DateLayout, startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(model.DateLayout, endDate)
	if err != nil {
		return 0
	}
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
