package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resource-hub-backend/internal/model"
	"resource-hub-backend/internal/store"
)

type submitBookingRequest struct {
	UserName   string `json:"user_name"`
	ResourceID int64  `json:"resource_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
}

// SubmitBooking handles POST /api/bookings. The response always carries the
// created ledger entry; its status tells the caller whether the booking was
// confirmed or waitlisted.
func (h *Handler) SubmitBooking(c *gin.Context) {
	var req submitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.engine.Submit(c.Request.Context(), req.UserName, req.ResourceID, req.StartDate, req.EndDate)
	if err != nil {
		abortWithError(c, err)
		return
	}

	// A confirmation mutated the resource's availability window.
	if entry.Status == model.StatusConfirmed {
		h.flushCache()
	}

	c.JSON(http.StatusCreated, entry)
}

// GetBookings handles GET /api/bookings with optional status and resource_id
// filters.
func (h *Handler) GetBookings(c *gin.Context) {
	var filter store.RequestFilter

	if status := c.Query("status"); status != "" {
		switch model.RequestStatus(status) {
		case model.StatusConfirmed, model.StatusWaitlist:
			filter.Status = model.RequestStatus(status)
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "status must be Confirmed or Waitlist"})
			return
		}
	}

	if raw := c.Query("resource_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid resource_id"})
			return
		}
		filter.ResourceID = id
	}

	requests, err := h.store.ListRequests(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}
