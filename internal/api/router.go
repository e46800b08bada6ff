package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"resource-hub-backend/config"
	"resource-hub-backend/internal/booking"
	"resource-hub-backend/internal/mw"
	"resource-hub-backend/internal/notification"
	"resource-hub-backend/internal/predict"
	"resource-hub-backend/internal/search"
	"resource-hub-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, s store.Store, engine *booking.Engine, searchSvc *search.Service, scorer predict.Scorer, webpushOptions *webpush.Options, pool *notification.WorkerPool) *gin.Engine {
	r := gin.Default()

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	handler := NewHandler(s, engine, searchSvc, scorer, webpushOptions, cacheStore, pool)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/resources", caching, handler.GetResources)
		api.GET("/resources/:id", caching, handler.GetResource)
		api.POST("/resources", handler.OfferResource)
		api.GET("/featured", handler.GetFeaturedResources)

		api.POST("/bookings", handler.SubmitBooking)
		api.GET("/bookings", handler.GetBookings)

		api.GET("/search", handler.SearchResources)
		api.GET("/stats", caching, handler.GetStats)
		api.GET("/predictions", handler.GetPredictions)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
