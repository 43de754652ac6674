package handler

import (
	"net/http"
	"time"

	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/coverpoint/clubhouse/internal/service"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matches *service.MatchService
}

func NewMatchHandler(matches *service.MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

type MatchRequest struct {
	Team1       string    `json:"team1" binding:"required"`
	Team2       string    `json:"team2" binding:"required"`
	Venue       string    `json:"venue"`
	MatchType   string    `json:"match_type"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

type ResultRequest struct {
	Team1Runs    int     `json:"team1_runs"`
	Team1Wickets int     `json:"team1_wickets"`
	Team1Overs   float64 `json:"team1_overs"`
	Team2Runs    int     `json:"team2_runs"`
	Team2Wickets int     `json:"team2_wickets"`
	Team2Overs   float64 `json:"team2_overs"`
	BattedFirst  string  `json:"batted_first" binding:"required"`
}

// List returns all matches, newest first.
// GET /api/matches
func (h *MatchHandler) List(c *gin.Context) {
	matches, err := h.matches.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// Get returns one match.
// GET /api/matches/:id
func (h *MatchHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	match, err := h.matches.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

// Create schedules a match.
// POST /api/admin/matches
func (h *MatchHandler) Create(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	match, err := h.matches.Create(service.MatchInput{
		Team1:       req.Team1,
		Team2:       req.Team2,
		Venue:       req.Venue,
		MatchType:   req.MatchType,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"match": match})
}

// Update edits match scheduling metadata.
// PUT /api/admin/matches/:id
func (h *MatchHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	match, err := h.matches.Update(id, service.MatchInput{
		Team1:       req.Team1,
		Team2:       req.Team2,
		Venue:       req.Venue,
		MatchType:   req.MatchType,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

// Delete removes a match.
// DELETE /api/admin/matches/:id
func (h *MatchHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.matches.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Match deleted"})
}

// PublishResult attaches a result and completes the match.
// POST /api/admin/matches/:id/result
func (h *MatchHandler) PublishResult(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	match, err := h.matches.PublishResult(id, service.ResultInput{
		Team1Runs:    req.Team1Runs,
		Team1Wickets: req.Team1Wickets,
		Team1Overs:   req.Team1Overs,
		Team2Runs:    req.Team2Runs,
		Team2Wickets: req.Team2Wickets,
		Team2Overs:   req.Team2Overs,
		BattedFirst:  models.BattingOrder(req.BattedFirst),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}
