package service_test

import (
	"sync"
	"testing"
	"time"

	"github.com/coverpoint/clubhouse/internal/apperrors"
	"github.com/coverpoint/clubhouse/internal/broker"
	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/coverpoint/clubhouse/internal/repository"
	"github.com/coverpoint/clubhouse/internal/service"
	"github.com/coverpoint/clubhouse/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureBroker records published events in memory.
type captureBroker struct {
	mu     sync.Mutex
	events []broker.Event
}

func (b *captureBroker) Publish(event broker.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *captureBroker) Subscribe() (<-chan broker.Event, error) {
	ch := make(chan broker.Event)
	close(ch)
	return ch, nil
}

func (b *captureBroker) Close() error { return nil }

func (b *captureBroker) last() *broker.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.events) == 0 {
		return nil
	}
	return &b.events[len(b.events)-1]
}

func newMatchEnv(t *testing.T) (*service.MatchService, *captureBroker) {
	db := testutil.SetupTestDatabase(t)
	t.Cleanup(func() { db.Teardown(t) })

	events := &captureBroker{}
	return service.NewMatchService(repository.NewMatchRepository(db.DB), events), events
}

func matchInput(team1, team2 string) service.MatchInput {
	return service.MatchInput{
		Team1:       team1,
		Team2:       team2,
		Venue:       "Club Ground",
		MatchType:   "T20",
		ScheduledAt: time.Now().Add(48 * time.Hour),
	}
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		name            string
		input           service.ResultInput
		expectedWinner  string
		expectedSummary string
	}{
		{
			name: "defending side wins by runs",
			input: service.ResultInput{
				Team1Runs: 180, Team1Wickets: 6,
				Team2Runs: 150, Team2Wickets: 10,
				BattedFirst: models.BattedFirstTeam1,
			},
			expectedWinner:  "Titans",
			expectedSummary: "Titans won by 30 runs",
		},
		{
			name: "chasing side wins by wickets",
			input: service.ResultInput{
				Team1Runs: 150, Team1Wickets: 8,
				Team2Runs: 151, Team2Wickets: 6,
				BattedFirst: models.BattedFirstTeam1,
			},
			expectedWinner:  "Strikers",
			expectedSummary: "Strikers won by 4 wickets",
		},
		{
			name: "team2 batted first and defended",
			input: service.ResultInput{
				Team1Runs: 120, Team1Wickets: 10,
				Team2Runs: 145, Team2Wickets: 7,
				BattedFirst: models.BattedFirstTeam2,
			},
			expectedWinner:  "Strikers",
			expectedSummary: "Strikers won by 25 runs",
		},
		{
			name: "tie",
			input: service.ResultInput{
				Team1Runs: 160, Team1Wickets: 7,
				Team2Runs: 160, Team2Wickets: 9,
				BattedFirst: models.BattedFirstTeam1,
			},
			expectedWinner:  "",
			expectedSummary: "Match tied",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			winner, summary := service.Summarize("Titans", "Strikers", tc.input)
			assert.Equal(t, tc.expectedWinner, winner)
			assert.Equal(t, tc.expectedSummary, summary)
		})
	}
}

func TestCreateMatch(t *testing.T) {
	svc, events := newMatchEnv(t)

	match, err := svc.Create(matchInput("Titans", "Strikers"))
	require.NoError(t, err)

	assert.Equal(t, models.MatchUpcoming, match.Status)
	assert.Nil(t, match.Result.PublishedAt)

	event := events.last()
	require.NotNil(t, event)
	assert.Equal(t, broker.EventMatchCreated, event.Type)
	assert.Equal(t, match.ID.String(), event.MatchID)
}

func TestCreateMatch_Validation(t *testing.T) {
	svc, _ := newMatchEnv(t)

	_, err := svc.Create(service.MatchInput{Team2: "Strikers", ScheduledAt: time.Now()})
	var ve *apperrors.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Create(service.MatchInput{Team1: "Titans", Team2: "Strikers"})
	assert.ErrorAs(t, err, &ve)
}

func TestPublishResult(t *testing.T) {
	svc, events := newMatchEnv(t)

	match, err := svc.Create(matchInput("Titans", "Strikers"))
	require.NoError(t, err)

	updated, err := svc.PublishResult(match.ID, service.ResultInput{
		Team1Runs: 180, Team1Wickets: 6, Team1Overs: 20,
		Team2Runs: 150, Team2Wickets: 10, Team2Overs: 18.4,
		BattedFirst: models.BattedFirstTeam1,
	})
	require.NoError(t, err)

	assert.Equal(t, models.MatchCompleted, updated.Status)
	assert.Equal(t, "Titans", updated.Result.Winner)
	assert.Equal(t, "Titans won by 30 runs", updated.Result.Summary)
	require.NotNil(t, updated.Result.PublishedAt)

	event := events.last()
	require.NotNil(t, event)
	assert.Equal(t, broker.EventResultPublished, event.Type)
	assert.Equal(t, "Titans won by 30 runs", event.Summary)
}

func TestPublishResult_UnknownMatch(t *testing.T) {
	svc, _ := newMatchEnv(t)

	_, err := svc.PublishResult(uuid.New(), service.ResultInput{
		Team1Runs: 100, Team2Runs: 90, BattedFirst: models.BattedFirstTeam1,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPublishResult_Validation(t *testing.T) {
	svc, _ := newMatchEnv(t)

	match, err := svc.Create(matchInput("Titans", "Strikers"))
	require.NoError(t, err)

	var ve *apperrors.ValidationError

	_, err = svc.PublishResult(match.ID, service.ResultInput{Team1Runs: 100, Team2Runs: 90})
	assert.ErrorAs(t, err, &ve, "missing batting order")

	_, err = svc.PublishResult(match.ID, service.ResultInput{
		Team1Runs: 100, Team2Runs: 90, Team2Wickets: 12,
		BattedFirst: models.BattedFirstTeam1,
	})
	assert.ErrorAs(t, err, &ve, "impossible wicket count")
}

func TestUpdateAndDeleteMatch(t *testing.T) {
	svc, _ := newMatchEnv(t)

	match, err := svc.Create(matchInput("Titans", "Strikers"))
	require.NoError(t, err)

	in := matchInput("Titans", "Chargers")
	in.Venue = "Away Oval"
	updated, err := svc.Update(match.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Chargers", updated.Team2)
	assert.Equal(t, "Away Oval", updated.Venue)

	require.NoError(t, svc.Delete(match.ID))
	_, err = svc.Get(match.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(match.ID), apperrors.ErrNotFound)
}
