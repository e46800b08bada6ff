package model

import "time"

// SubscribedCategory is a category a browser subscription wants push
// notifications for. Rows are created on demand from the closed category set.
type SubscribedCategory struct {
	Name      string `gorm:"primaryKey;size:64"`
	CreatedAt time.Time
}

// PushSubscription holds the information for a browser push subscription.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Categories []*SubscribedCategory `gorm:"many2many:subscription_category_mapping;"`
}
