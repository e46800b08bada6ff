package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxSearchK = 50

// SearchResources handles GET /api/search?q=...&k=5. An empty query is a
// zero-result query, not an error.
func (h *Handler) SearchResources(c *gin.Context) {
	query := c.Query("q")

	k := 5
	if raw := c.Query("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "k must be a positive integer"})
			return
		}
		k = parsed
	}
	if k > maxSearchK {
		k = maxSearchK
	}

	results, err := h.search.Search(c.Request.Context(), query, k)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
