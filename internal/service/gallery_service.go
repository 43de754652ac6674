package service

import (
	"context"
	"errors"
	"io"

	"github.com/coverpoint/clubhouse/internal/apperrors"
	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/coverpoint/clubhouse/internal/repository"
	"github.com/coverpoint/clubhouse/internal/uploads"
	"github.com/coverpoint/clubhouse/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const galleryFolder = "clubhouse/gallery"

type GalleryService struct {
	items    *repository.GalleryRepository
	uploader uploads.Uploader
}

func NewGalleryService(items *repository.GalleryRepository, uploader uploads.Uploader) *GalleryService {
	return &GalleryService{items: items, uploader: uploader}
}

// Upload forwards the file to the image host and persists the returned
// secure URL. The file itself is never stored locally.
func (s *GalleryService) Upload(ctx context.Context, owner string, file io.Reader, category, title string) (*models.GalleryItem, error) {
	if file == nil {
		return nil, apperrors.Validationf("image file is required")
	}

	res, err := s.uploader.Upload(ctx, file, galleryFolder)
	if err != nil {
		logger.Log.Error("Image upload failed",
			zap.String("owner", owner),
			zap.Error(err),
		)
		return nil, apperrors.ErrUpstream
	}

	item := &models.GalleryItem{
		ID:            uuid.New(),
		OwnerUsername: owner,
		ImageURL:      res.SecureURL,
		PublicID:      res.PublicID,
		Category:      category,
		Title:         title,
		LikeCount:     0,
	}

	if err := s.items.Create(item); err != nil {
		logger.Log.Error("Failed to persist gallery item",
			zap.String("owner", owner),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Gallery item uploaded",
		zap.String("item_id", item.ID.String()),
		zap.String("owner", owner),
	)

	return item, nil
}

func (s *GalleryService) List(category string) ([]*models.GalleryItem, error) {
	return s.items.List(category)
}

// Delete removes the item; only the owner or an admin may delete.
// The hosted image is removed best-effort after the record.
func (s *GalleryService) Delete(ctx context.Context, id uuid.UUID, requester string, isAdmin bool) error {
	item, err := s.items.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperrors.ErrNotFound
	}
	if !isAdmin && item.OwnerUsername != requester {
		return apperrors.ErrForbidden
	}

	if err := s.items.Delete(id); err != nil {
		return err
	}

	if item.PublicID != "" {
		if err := s.uploader.Destroy(ctx, item.PublicID); err != nil {
			logger.Log.Warn("Failed to remove hosted image",
				zap.String("public_id", item.PublicID),
				zap.Error(err),
			)
		}
	}

	logger.Log.Info("Gallery item deleted",
		zap.String("item_id", id.String()),
		zap.String("requester", requester),
	)

	return nil
}

// Like bumps the item's like counter via the store's atomic increment.
func (s *GalleryService) Like(id uuid.UUID) error {
	err := s.items.IncrementLikes(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
