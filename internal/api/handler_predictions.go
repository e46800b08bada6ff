package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resource-hub-backend/internal/predict"
)

const predictionCount = 10

// GetPredictions handles GET /api/predictions: the resources most likely to
// be requested, ranked by the external popularity model. A missing model is
// reported as a message, never a crash.
func (h *Handler) GetPredictions(c *gin.Context) {
	if h.scorer == nil {
		abortWithError(c, predict.ErrModelUnavailable)
		return
	}

	resources, err := h.store.ListResources(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	predictions, err := predict.TopPredicted(c.Request.Context(), h.scorer, resources, predictionCount)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, predictions)
}
