package search

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	index *Index
}

func NewHandler(index *Index) *Handler {
	return &Handler{index: index}
}

// Products handles GET /api/search?q=...
func (h *Handler) Products(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return
	}

	results, err := h.index.Products(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search is not available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}
