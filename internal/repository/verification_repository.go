package repository

import (
	"errors"
	"time"

	"github.com/coverpoint/clubhouse/internal/models"
	"gorm.io/gorm"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Replace stores a fresh code for the email, discarding any earlier
// codes for that address. Keeps at most one live code per email.
func (r *VerificationRepository) Replace(email, code string, expiresAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).Delete(&models.VerificationCode{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.VerificationCode{
			Email:     email,
			Code:      code,
			ExpiresAt: expiresAt,
		}).Error
	})
}

// GetActive returns the unexpired code for the email, or (nil, nil)
// when none exists. Expired rows are filtered here, never returned.
func (r *VerificationRepository) GetActive(email string, now time.Time) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	err := r.db.Where("email = ? AND expires_at > ?", email, now).
		Order("created_at DESC").First(&vc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vc, nil
}

// Consume deletes the code, making it unusable for replay.
func (r *VerificationRepository) Consume(id uint) error {
	return r.db.Delete(&models.VerificationCode{}, id).Error
}
