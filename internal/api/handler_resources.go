package api

import (
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"resource-hub-backend/internal/booking"
	"resource-hub-backend/internal/model"
	"resource-hub-backend/internal/notification"
)

// GetResources handles GET /api/resources.
func (h *Handler) GetResources(c *gin.Context) {
	resources, err := h.store.ListResources(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resources)
}

// GetResource handles GET /api/resources/:id.
func (h *Handler) GetResource(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid resource id"})
		return
	}

	res, err := h.store.GetResource(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

const featuredCount = 5

// GetFeaturedResources handles GET /api/featured: up to five random
// resources whose availability window is still open.
func (h *Handler) GetFeaturedResources(c *gin.Context) {
	available, err := h.store.AvailableResources(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	rand.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	if len(available) > featuredCount {
		available = available[:featuredCount]
	}
	c.JSON(http.StatusOK, available)
}

type offerResourceRequest struct {
	Title             string `json:"title"`
	Category          string `json:"category" binding:"required"`
	Description       string `json:"description"`
	Location          string `json:"location"`
	AvailabilityStart string `json:"availability_start" binding:"required"`
	AvailabilityEnd   string `json:"availability_end" binding:"required"`
	Condition         string `json:"condition" binding:"required"`
	Rating            int    `json:"rating"`
}

// OfferResource handles POST /api/resources, the offer flow.
func (h *Handler) OfferResource(c *gin.Context) {
	var req offerResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, end, err := booking.ValidateWindow(req.AvailabilityStart, req.AvailabilityEnd, time.Now())
	if err != nil {
		abortWithError(c, err)
		return
	}

	res := model.Resource{
		Title:             req.Title,
		Category:          req.Category,
		Description:       req.Description,
		Location:          req.Location,
		AvailabilityStart: start.Format(model.DateLayout),
		AvailabilityEnd:   end.Format(model.DateLayout),
		Condition:         req.Condition,
		Rating:            req.Rating,
	}

	if _, err := h.store.CreateResource(c.Request.Context(), &res); err != nil {
		abortWithError(c, err)
		return
	}

	h.flushCache()
	if h.pool != nil {
		h.pool.Dispatch(notification.Job{Category: res.Category, ResourceTitle: res.Title})
	}

	c.JSON(http.StatusCreated, res)
}
