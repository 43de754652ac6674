package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchUpcoming  MatchStatus = "upcoming"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
)

// BattingOrder identifies which side batted first in a completed match.
type BattingOrder string

const (
	BattedFirstTeam1 BattingOrder = "team1"
	BattedFirstTeam2 BattingOrder = "team2"
)

// Result is attached to a Match by the publish-result step. PublishedAt
// is nil until then.
type Result struct {
	Team1Runs    int          `json:"team1_runs"`
	Team1Wickets int          `json:"team1_wickets"`
	Team1Overs   float64      `json:"team1_overs"`
	Team2Runs    int          `json:"team2_runs"`
	Team2Wickets int          `json:"team2_wickets"`
	Team2Overs   float64      `json:"team2_overs"`
	BattedFirst  BattingOrder `gorm:"type:varchar(10)" json:"batted_first,omitempty"`
	Winner       string       `gorm:"type:varchar(100)" json:"winner,omitempty"`
	Summary      string       `gorm:"type:text" json:"summary,omitempty"`
	PublishedAt  *time.Time   `json:"published_at,omitempty"`
}

type Match struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Team1       string      `gorm:"type:varchar(100);not null" json:"team1"`
	Team2       string      `gorm:"type:varchar(100);not null" json:"team2"`
	Venue       string      `gorm:"type:varchar(200)" json:"venue,omitempty"`
	MatchType   string      `gorm:"type:varchar(50)" json:"match_type,omitempty"`
	ScheduledAt time.Time   `gorm:"index" json:"scheduled_at"`
	Status      MatchStatus `gorm:"type:varchar(20);not null;default:'upcoming'" json:"status"`
	Result      Result      `gorm:"embedded;embeddedPrefix:result_" json:"result"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
