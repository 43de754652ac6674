package service

import (
	"errors"

	"github.com/coverpoint/clubhouse/internal/apperrors"
	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/coverpoint/clubhouse/internal/repository"
	"github.com/coverpoint/clubhouse/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RosterService covers the player-facing roster plus the admin
// moderation surface (approve / reject / delete).
type RosterService struct {
	accounts *repository.AccountRepository
}

func NewRosterService(accounts *repository.AccountRepository) *RosterService {
	return &RosterService{accounts: accounts}
}

func (s *RosterService) ListApproved() ([]*models.Account, error) {
	return s.accounts.ListApproved()
}

func (s *RosterService) GetByUsername(username string) (*models.Account, error) {
	account, err := s.accounts.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ProfileUpdate carries the self-service editable fields. Nil means
// "leave unchanged".
type ProfileUpdate struct {
	AvatarURL *string
	Age       *int
}

// UpdateProfile applies a self-service edit. Ownership is enforced by
// the route guard; this validates the fields themselves.
func (s *RosterService) UpdateProfile(username string, update ProfileUpdate) (*models.Account, error) {
	account, err := s.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if update.AvatarURL != nil {
		if *update.AvatarURL == "" {
			return nil, apperrors.Validationf("image is required")
		}
		fields["avatar_url"] = *update.AvatarURL
	}
	if update.Age != nil {
		if *update.Age < 15 || *update.Age > 50 {
			return nil, apperrors.Validationf("age must be between 15 and 50")
		}
		fields["age"] = *update.Age
	}
	if len(fields) == 0 {
		return account, nil
	}

	if err := s.accounts.UpdateFields(account.ID, fields); err != nil {
		logger.Log.Error("Failed to update profile",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}

	return s.GetByUsername(username)
}

// Like bumps the player's like counter. The increment happens in the
// store, so concurrent likes all count.
func (s *RosterService) Like(username string) error {
	err := s.accounts.IncrementLikes(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}

func (s *RosterService) ListAll() ([]*models.Account, error) {
	return s.accounts.ListAll()
}

func (s *RosterService) Approve(id uuid.UUID) error {
	err := s.accounts.SetStatus(id, models.StatusApproved)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return err
	}
	logger.Log.Info("Player approved", zap.String("account_id", id.String()))
	return nil
}

// Reject removes a pending registration entirely.
func (s *RosterService) Reject(id uuid.UUID) error {
	return s.Delete(id)
}

func (s *RosterService) Delete(id uuid.UUID) error {
	err := s.accounts.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return err
	}
	logger.Log.Info("Player removed", zap.String("account_id", id.String()))
	return nil
}
