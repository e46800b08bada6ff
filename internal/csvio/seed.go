package csvio

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"resource-hub-backend/config"
	"resource-hub-backend/internal/model"
)

// Seed imports the configured CSV files into empty tables. Non-empty tables
// are left alone so a restart never duplicates records.
func Seed(db *gorm.DB, cfg *config.SeedConfig) error {
	if cfg.ResourcesCSV != "" {
		if err := seedResources(db, cfg.ResourcesCSV); err != nil {
			return err
		}
	}
	if cfg.RequestsCSV != "" {
		if err := seedRequests(db, cfg.RequestsCSV); err != nil {
			return err
		}
	}
	return nil
}

func seedResources(db *gorm.DB, path string) error {
	var count int64
	if err := db.Model(&model.Resource{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count resources: %w", err)
	}
	if count > 0 {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open resources seed file: %w", err)
	}
	defer f.Close()

	resources, err := ReadResources(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(resources) == 0 {
		return nil
	}

	if err := db.Create(&resources).Error; err != nil {
		return fmt.Errorf("failed to insert seeded resources: %w", err)
	}
	log.Printf("seeded %d resources from %s", len(resources), path)
	return nil
}

func seedRequests(db *gorm.DB, path string) error {
	var count int64
	if err := db.Model(&model.BookingRequest{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count booking requests: %w", err)
	}
	if count > 0 {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open requests seed file: %w", err)
	}
	defer f.Close()

	requests, err := ReadRequests(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(requests) == 0 {
		return nil
	}

	if err := db.Create(&requests).Error; err != nil {
		return fmt.Errorf("failed to insert seeded booking requests: %w", err)
	}
	log.Printf("seeded %d booking requests from %s", len(requests), path)
	return nil
}
