package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/coverpoint/clubhouse/internal/apperrors"
	"github.com/coverpoint/clubhouse/internal/broker"
	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/coverpoint/clubhouse/internal/repository"
	"github.com/coverpoint/clubhouse/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MatchService struct {
	matches *repository.MatchRepository
	events  broker.EventBroker
}

func NewMatchService(matches *repository.MatchRepository, events broker.EventBroker) *MatchService {
	return &MatchService{matches: matches, events: events}
}

type MatchInput struct {
	Team1       string
	Team2       string
	Venue       string
	MatchType   string
	ScheduledAt time.Time
}

func (s *MatchService) Create(in MatchInput) (*models.Match, error) {
	if in.Team1 == "" || in.Team2 == "" {
		return nil, apperrors.Validationf("both team names are required")
	}
	if in.ScheduledAt.IsZero() {
		return nil, apperrors.Validationf("scheduled time is required")
	}

	match := &models.Match{
		ID:          uuid.New(),
		Team1:       in.Team1,
		Team2:       in.Team2,
		Venue:       in.Venue,
		MatchType:   in.MatchType,
		ScheduledAt: in.ScheduledAt,
		Status:      models.MatchUpcoming,
	}

	if err := s.matches.Create(match); err != nil {
		logger.Log.Error("Failed to create match", zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Match created",
		zap.String("match_id", match.ID.String()),
		zap.String("team1", match.Team1),
		zap.String("team2", match.Team2),
	)

	s.announce(broker.Event{
		Type:    broker.EventMatchCreated,
		MatchID: match.ID.String(),
		Team1:   match.Team1,
		Team2:   match.Team2,
		At:      time.Now(),
	})

	return match, nil
}

func (s *MatchService) List() ([]*models.Match, error) {
	return s.matches.List()
}

func (s *MatchService) Get(id uuid.UUID) (*models.Match, error) {
	match, err := s.matches.GetByID(id)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, apperrors.ErrNotFound
	}
	return match, nil
}

func (s *MatchService) Update(id uuid.UUID, in MatchInput) (*models.Match, error) {
	if in.Team1 == "" || in.Team2 == "" {
		return nil, apperrors.Validationf("both team names are required")
	}

	err := s.matches.UpdateFields(id, map[string]any{
		"team1":        in.Team1,
		"team2":        in.Team2,
		"venue":        in.Venue,
		"match_type":   in.MatchType,
		"scheduled_at": in.ScheduledAt,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

func (s *MatchService) Delete(id uuid.UUID) error {
	err := s.matches.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}

type ResultInput struct {
	Team1Runs    int
	Team1Wickets int
	Team1Overs   float64
	Team2Runs    int
	Team2Wickets int
	Team2Overs   float64
	BattedFirst  models.BattingOrder
}

// PublishResult attaches the result to a match, derives the winner and
// summary line, marks the match completed and announces it on the live
// feed. The match row is updated in a single transaction.
func (s *MatchService) PublishResult(id uuid.UUID, in ResultInput) (*models.Match, error) {
	match, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := validateResultInput(in); err != nil {
		return nil, err
	}

	result := models.Result{
		Team1Runs:    in.Team1Runs,
		Team1Wickets: in.Team1Wickets,
		Team1Overs:   in.Team1Overs,
		Team2Runs:    in.Team2Runs,
		Team2Wickets: in.Team2Wickets,
		Team2Overs:   in.Team2Overs,
		BattedFirst:  in.BattedFirst,
	}
	result.Winner, result.Summary = Summarize(match.Team1, match.Team2, in)

	now := time.Now()
	if err := s.matches.PublishResult(id, result, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		logger.Log.Error("Failed to publish result",
			zap.String("match_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Result published",
		zap.String("match_id", id.String()),
		zap.String("summary", result.Summary),
	)

	s.announce(broker.Event{
		Type:    broker.EventResultPublished,
		MatchID: id.String(),
		Team1:   match.Team1,
		Team2:   match.Team2,
		Summary: result.Summary,
		At:      now,
	})

	return s.Get(id)
}

// announce is best-effort: a broker outage must not fail the write
// that already happened.
func (s *MatchService) announce(event broker.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event); err != nil {
		logger.Log.Warn("Failed to publish live event",
			zap.String("type", event.Type),
			zap.Error(err),
		)
	}
}

// Summarize derives the winner and the conventional cricket summary:
// a side defending its total wins by runs, a chasing side wins by
// wickets in hand, equal totals tie.
func Summarize(team1, team2 string, in ResultInput) (winner, summary string) {
	firstName, firstRuns := team1, in.Team1Runs
	secondName, secondRuns, secondWickets := team2, in.Team2Runs, in.Team2Wickets
	if in.BattedFirst == models.BattedFirstTeam2 {
		firstName, firstRuns = team2, in.Team2Runs
		secondName, secondRuns, secondWickets = team1, in.Team1Runs, in.Team1Wickets
	}

	switch {
	case firstRuns > secondRuns:
		return firstName, fmt.Sprintf("%s won by %d runs", firstName, firstRuns-secondRuns)
	case secondRuns > firstRuns:
		return secondName, fmt.Sprintf("%s won by %d wickets", secondName, 10-secondWickets)
	default:
		return "", "Match tied"
	}
}

func validateResultInput(in ResultInput) error {
	if in.BattedFirst != models.BattedFirstTeam1 && in.BattedFirst != models.BattedFirstTeam2 {
		return apperrors.Validationf("batted_first must be team1 or team2")
	}
	if in.Team1Runs < 0 || in.Team2Runs < 0 {
		return apperrors.Validationf("runs cannot be negative")
	}
	if in.Team1Wickets < 0 || in.Team1Wickets > 10 || in.Team2Wickets < 0 || in.Team2Wickets > 10 {
		return apperrors.Validationf("wickets must be between 0 and 10")
	}
	if in.Team1Overs < 0 || in.Team2Overs < 0 {
		return apperrors.Validationf("overs cannot be negative")
	}
	return nil
}
