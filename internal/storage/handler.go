package storage

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	images *Images
}

func NewHandler(images *Images) *Handler {
	return &Handler{images: images}
}

// Upload handles the multipart product image upload (admin only).
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required"})
		return
	}

	objectName, err := h.images.Upload(c.Request.Context(), file)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"object": objectName})
}

// Download redirects to a presigned URL for the object.
func (h *Handler) Download(c *gin.Context) {
	objectName := c.Param("object")

	u, err := h.images.PresignedURL(c.Request.Context(), objectName)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not available"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, u)
}
