package models

import (
	"time"

	"github.com/google/uuid"
)

type GalleryItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerUsername string    `gorm:"type:varchar(100);not null;index" json:"owner_username"`
	ImageURL      string    `gorm:"type:varchar(500);not null" json:"image_url"`
	PublicID      string    `gorm:"type:varchar(200)" json:"-"` // image-host handle, used for deletion only
	Category      string    `gorm:"type:varchar(50);index" json:"category,omitempty"`
	Title         string    `gorm:"type:varchar(200)" json:"title,omitempty"`
	LikeCount     int64     `gorm:"not null;default:0" json:"like_count"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}
