package repository

import (
	"errors"

	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GalleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func (r *GalleryRepository) Create(item *models.GalleryItem) error {
	return r.db.Create(item).Error
}

func (r *GalleryRepository) GetByID(id uuid.UUID) (*models.GalleryItem, error) {
	var item models.GalleryItem
	err := r.db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// List returns items newest first, optionally filtered by category.
func (r *GalleryRepository) List(category string) ([]*models.GalleryItem, error) {
	q := r.db.Order("created_at DESC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var items []*models.GalleryItem
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// IncrementLikes bumps the like counter atomically in the store.
func (r *GalleryRepository) IncrementLikes(id uuid.UUID) error {
	res := r.db.Model(&models.GalleryItem{}).Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GalleryRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.GalleryItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
