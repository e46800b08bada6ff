package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"resource-hub-backend/internal/model"
)

// Column layouts of the interchange files. Availability fields carry the
// empty-string sentinel, not a null marker, when a resource is unavailable.
var (
	resourceColumns = []string{
		"id", "title", "category", "description", "location",
		"availability_start", "availability_end", "condition", "rating",
	}
	requestColumns = []string{
		"request_id", "user_name", "resource_id", "resource_title",
		"start_date", "end_date", "status",
	}
)

// ReadResources parses a resources CSV, header included.
func ReadResources(r io.Reader) ([]model.Resource, error) {
	records, err := readAll(r, resourceColumns)
	if err != nil {
		return nil, err
	}

	resources := make([]model.Resource, 0, len(records))
	for i, rec := range records {
		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad resource id %q: %w", i+2, rec[0], err)
		}
		rating, err := strconv.Atoi(rec[8])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad rating %q: %w", i+2, rec[8], err)
		}
		resources = append(resources, model.Resource{
			ID:                id,
			Title:             rec[1],
			Category:          rec[2],
			Description:       rec[3],
			Location:          rec[4],
			AvailabilityStart: rec[5],
			AvailabilityEnd:   rec[6],
			Condition:         rec[7],
			Rating:            rating,
		})
	}
	return resources, nil
}

// WriteResources writes a resources CSV, header included.
func WriteResources(w io.Writer, resources []model.Resource) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resourceColumns); err != nil {
		return err
	}
	for _, r := range resources {
		rec := []string{
			strconv.FormatInt(r.ID, 10),
			r.Title,
			r.Category,
			r.Description,
			r.Location,
			r.AvailabilityStart,
			r.AvailabilityEnd,
			r.Condition,
			strconv.Itoa(r.Rating),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRequests parses a booking requests CSV, header included.
func ReadRequests(r io.Reader) ([]model.BookingRequest, error) {
	records, err := readAll(r, requestColumns)
	if err != nil {
		return nil, err
	}

	requests := make([]model.BookingRequest, 0, len(records))
	for i, rec := range records {
		requestID, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad request id %q: %w", i+2, rec[0], err)
		}
		resourceID, err := strconv.ParseInt(rec[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad resource id %q: %w", i+2, rec[2], err)
		}
		requests = append(requests, model.BookingRequest{
			RequestID:     requestID,
			UserName:      rec[1],
			ResourceID:    resourceID,
			ResourceTitle: rec[3],
			StartDate:     rec[4],
			EndDate:       rec[5],
			Status:        model.RequestStatus(rec[6]),
		})
	}
	return requests, nil
}

// WriteRequests writes a booking requests CSV, header included.
func WriteRequests(w io.Writer, requests []model.BookingRequest) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(requestColumns); err != nil {
		return err
	}
	for _, r := range requests {
		rec := []string{
			strconv.FormatInt(r.RequestID, 10),
			r.UserName,
			strconv.FormatInt(r.ResourceID, 10),
			r.ResourceTitle,
			r.StartDate,
			r.EndDate,
			string(r.Status),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readAll(r io.Reader, columns []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(columns)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, col := range columns {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected header column %d: got %q, want %q", i, header[i], col)
		}
	}

	var records [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
