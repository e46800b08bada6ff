package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"resource-hub-backend/internal/booking"
	"resource-hub-backend/internal/model"
	"resource-hub-backend/internal/notification"
	"resource-hub-backend/internal/predict"
	"resource-hub-backend/internal/search"
	"resource-hub-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	engine  *booking.Engine
	search  *search.Service
	scorer  predict.Scorer
	webpush *webpush.Options
	cache   *cache.Cache
	pool    *notification.WorkerPool
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, engine *booking.Engine, searchSvc *search.Service, scorer predict.Scorer, webpushOptions *webpush.Options, responseCache *cache.Cache, pool *notification.WorkerPool) *Handler {
	return &Handler{
		store:   s,
		engine:  engine,
		search:  searchSvc,
		scorer:  scorer,
		webpush: webpushOptions,
		cache:   responseCache,
		pool:    pool,
	}
}

// flushCache drops every cached GET response after a write.
func (h *Handler) flushCache() {
	if h.cache != nil {
		h.cache.Flush()
	}
}

// abortWithError maps the error taxonomy onto HTTP status codes and writes
// the user-facing message.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, booking.ErrInvalidDateRange),
		errors.Is(err, booking.ErrPastDate),
		errors.Is(err, booking.ErrMissingUserName),
		errors.Is(err, model.ErrMissingRequiredField),
		errors.Is(err, model.ErrInvalidCategory),
		errors.Is(err, model.ErrInvalidCondition),
		errors.Is(err, model.ErrInvalidRating):
		status = http.StatusBadRequest
	case errors.Is(err, booking.ErrResourceNotFound), errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, predict.ErrModelUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
