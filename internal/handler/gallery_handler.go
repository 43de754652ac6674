package handler

import (
	"net/http"

	"github.com/coverpoint/clubhouse/internal/middleware"
	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/coverpoint/clubhouse/internal/service"
	"github.com/coverpoint/clubhouse/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Uploads larger than this are rejected before hitting the image host.
const maxUploadBytes = 10 << 20 // 10 MB

type GalleryHandler struct {
	gallery *service.GalleryService
}

func NewGalleryHandler(gallery *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

// List returns gallery items, optionally filtered by ?category=.
// GET /api/gallery
func (h *GalleryHandler) List(c *gin.Context) {
	items, err := h.gallery.List(c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Upload accepts a multipart form ("image" plus category/title fields),
// forwards the file to the image host and persists the secure URL.
// POST /api/gallery
func (h *GalleryHandler) Upload(c *gin.Context) {
	claims := middleware.Claims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "image file is required"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"message": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Log.Error("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}
	defer file.Close()

	item, err := h.gallery.Upload(
		c.Request.Context(),
		claims.Username,
		file,
		c.PostForm("category"),
		c.PostForm("title"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// Delete removes an item (owner or admin).
// DELETE /api/gallery/:id
func (h *GalleryHandler) Delete(c *gin.Context) {
	claims := middleware.Claims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.gallery.Delete(c.Request.Context(), id, claims.Username, claims.Role == models.RoleAdmin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// Like increments the item's like counter.
// POST /api/gallery/:id/like
func (h *GalleryHandler) Like(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.gallery.Like(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Liked"})
}
