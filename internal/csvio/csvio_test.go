package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resource-hub-backend/internal/model"
)

const resourcesCSV = `id,title,category,description,location,availability_start,availability_end,condition,rating
1,Cordless Drill,Tools,18V with two batteries,Maple Street,2025-06-01,2025-08-31,Good,4
2,Stand Mixer,Kitchen,,Elm Street,,,Excellent,5
`

func TestReadResources(t *testing.T) {
	resources, err := ReadResources(strings.NewReader(resourcesCSV))
	require.NoError(t, err)
	require.Len(t, resources, 2)

	assert.Equal(t, model.Resource{
		ID:                1,
		Title:             "Cordless Drill",
		Category:          "Tools",
		Description:       "18V with two batteries",
		Location:          "Maple Street",
		AvailabilityStart: "2025-06-01",
		AvailabilityEnd:   "2025-08-31",
		Condition:         "Good",
		Rating:            4,
	}, resources[0])

	// Empty availability fields survive as the empty-string sentinel.
	assert.Empty(t, resources[1].AvailabilityStart)
	assert.Empty(t, resources[1].AvailabilityEnd)
}

func TestResourcesRoundTrip(t *testing.T) {
	resources, err := ReadResources(strings.NewReader(resourcesCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteResources(&buf, resources))

	again, err := ReadResources(&buf)
	require.NoError(t, err)
	assert.Equal(t, resources, again)
}

func TestReadRequests(t *testing.T) {
	input := `request_id,user_name,resource_id,resource_title,start_date,end_date,status
1,Alice,1,Cordless Drill,2025-06-01,2025-06-10,Confirmed
2,Bob,1,Cordless Drill,2025-06-05,2025-06-07,Waitlist
`
	requests, err := ReadRequests(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, requests, 2)

	assert.Equal(t, int64(1), requests[0].RequestID)
	assert.Equal(t, model.StatusConfirmed, requests[0].Status)
	assert.Equal(t, model.StatusWaitlist, requests[1].Status)
	assert.Equal(t, "2025-06-05", requests[1].StartDate)
}

func TestReadRejectsWrongHeader(t *testing.T) {
	_, err := ReadResources(strings.NewReader("id,name\n1,x\n"))
	assert.Error(t, err)

	_, err = ReadRequests(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadRejectsBadNumbers(t *testing.T) {
	input := `id,title,category,description,location,availability_start,availability_end,condition,rating
x,Drill,Tools,,Here,,,Good,4
`
	_, err := ReadResources(strings.NewReader(input))
	assert.Error(t, err)
}
