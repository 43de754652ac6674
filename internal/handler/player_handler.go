package handler

import (
	"net/http"

	"github.com/coverpoint/clubhouse/internal/apperrors"
	"github.com/coverpoint/clubhouse/internal/service"
	"github.com/coverpoint/clubhouse/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PlayerHandler struct {
	roster *service.RosterService
}

func NewPlayerHandler(roster *service.RosterService) *PlayerHandler {
	return &PlayerHandler{roster: roster}
}

type UpdateProfileRequest struct {
	AvatarURL *string `json:"avatar_url"`
	Age       *int    `json:"age"`
}

// List returns approved players.
// GET /api/players
func (h *PlayerHandler) List(c *gin.Context) {
	players, err := h.roster.ListApproved()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

// Get returns one player by username.
// GET /api/players/:username
func (h *PlayerHandler) Get(c *gin.Context) {
	player, err := h.roster.GetByUsername(c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"player": player})
}

// Update applies a self-service profile edit (avatar, age). Ownership
// is enforced by the route guard.
// PATCH /api/players/:username
func (h *PlayerHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	player, err := h.roster.UpdateProfile(c.Param("username"), service.ProfileUpdate{
		AvatarURL: req.AvatarURL,
		Age:       req.Age,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"player": player})
}

// Like increments the player's like counter.
// POST /api/players/:username/like
func (h *PlayerHandler) Like(c *gin.Context) {
	if err := h.roster.Like(c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Liked"})
}

// ListAll returns every account, pending included.
// GET /api/admin/players
func (h *PlayerHandler) ListAll(c *gin.Context) {
	logger.Log.Info("Admin fetching all players",
		zap.String("admin", c.GetString("username")),
	)

	players, err := h.roster.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

// Approve flips a pending registration to approved.
// POST /api/admin/players/:id/approve
func (h *PlayerHandler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.roster.Approve(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Player approved"})
}

// Reject discards a pending registration.
// POST /api/admin/players/:id/reject
func (h *PlayerHandler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.roster.Reject(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Player rejected"})
}

// Delete removes an account.
// DELETE /api/admin/players/:id
func (h *PlayerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.roster.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Player deleted"})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// respondError converts a domain error at the handler boundary.
func respondError(c *gin.Context, err error) {
	status, message := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Log.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"message": message})
}
