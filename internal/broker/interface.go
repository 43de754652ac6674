package broker

import "time"

const (
	EventMatchCreated    = "match_created"
	EventResultPublished = "result_published"
)

// Event is what the live feed pushes to connected clients when a match
// is created or its result is published.
type Event struct {
	Type    string    `json:"type"`
	MatchID string    `json:"match_id"`
	Team1   string    `json:"team1"`
	Team2   string    `json:"team2"`
	Summary string    `json:"summary,omitempty"`
	At      time.Time `json:"at"`
}

// EventBroker fans match events out across server nodes.
type EventBroker interface {
	Publish(event Event) error
	Subscribe() (<-chan Event, error)
	Close() error
}
