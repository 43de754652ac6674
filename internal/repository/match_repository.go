package repository

import (
	"errors"
	"time"

	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(match *models.Match) error {
	return r.db.Create(match).Error
}

func (r *MatchRepository) GetByID(id uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := r.db.Where("id = ?", id).First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &match, nil
}

func (r *MatchRepository) List() ([]*models.Match, error) {
	var matches []*models.Match
	err := r.db.Order("scheduled_at DESC").Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *MatchRepository) UpdateFields(id uuid.UUID, fields map[string]any) error {
	res := r.db.Model(&models.Match{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PublishResult writes the result fields and flips the status to
// completed in one transaction, so a half-published result is never
// observable.
func (r *MatchRepository) PublishResult(id uuid.UUID, result models.Result, publishedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Match{}).Where("id = ?", id).Updates(map[string]any{
			"result_team1_runs":    result.Team1Runs,
			"result_team1_wickets": result.Team1Wickets,
			"result_team1_overs":   result.Team1Overs,
			"result_team2_runs":    result.Team2Runs,
			"result_team2_wickets": result.Team2Wickets,
			"result_team2_overs":   result.Team2Overs,
			"result_batted_first":  result.BattedFirst,
			"result_winner":        result.Winner,
			"result_summary":       result.Summary,
			"result_published_at":  publishedAt,
			"status":               models.MatchCompleted,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *MatchRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.Match{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
