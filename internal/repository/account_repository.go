package repository

import (
	"errors"

	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

func (r *AccountRepository) GetByPhone(phone string) (*models.Account, error) {
	return r.getOne("phone = ?", phone)
}

func (r *AccountRepository) GetByEmail(email string) (*models.Account, error) {
	if email == "" {
		return nil, nil
	}
	return r.getOne("email = ?", email)
}

func (r *AccountRepository) GetByUsername(username string) (*models.Account, error) {
	return r.getOne("username = ?", username)
}

func (r *AccountRepository) GetByID(id uuid.UUID) (*models.Account, error) {
	return r.getOne("id = ?", id)
}

// getOne returns (nil, nil) when no row matches so callers can
// distinguish absence from a store failure.
func (r *AccountRepository) getOne(query string, arg any) (*models.Account, error) {
	var account models.Account
	err := r.db.Where(query, arg).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// ListApproved returns the public roster.
func (r *AccountRepository) ListApproved() ([]*models.Account, error) {
	var accounts []*models.Account
	err := r.db.Where("status = ? AND role = ?", models.StatusApproved, models.RolePlayer).
		Order("created_at DESC").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// ListAll returns every account, pending ones included.
func (r *AccountRepository) ListAll() ([]*models.Account, error) {
	var accounts []*models.Account
	err := r.db.Order("created_at DESC").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *AccountRepository) UpdateFields(id uuid.UUID, fields map[string]any) error {
	return r.db.Model(&models.Account{}).Where("id = ?", id).Updates(fields).Error
}

func (r *AccountRepository) SetStatus(id uuid.UUID, status models.ApprovalStatus) error {
	res := r.db.Model(&models.Account{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AccountRepository) UpdatePasswordHash(id uuid.UUID, hash string) error {
	return r.db.Model(&models.Account{}).Where("id = ?", id).Update("password_hash", hash).Error
}

// IncrementLikes bumps the like counter atomically in the store, so
// concurrent likes never lose updates.
func (r *AccountRepository) IncrementLikes(username string) error {
	res := r.db.Model(&models.Account{}).Where("username = ?", username).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft-deletes the account.
func (r *AccountRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.Account{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
