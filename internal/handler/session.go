package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movigo/internal/repository"
)

// SessionHandler reads and writes the currentUser key. Authentication
// itself is an external collaborator: the caller tells us who signed
// in, we record the public profile.
type SessionHandler struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions repository.SessionRepository, users repository.UserRepository) *SessionHandler {
	return &SessionHandler{sessions: sessions, users: users}
}

// StartSessionRequest is the HTTP request body for starting a session.
type StartSessionRequest struct {
	UserID string `json:"userId"`
}

// Start handles POST /v1/session
func (h *SessionHandler) Start(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "userId is required"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.GetByID(ctx, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	profile := user.Profile()
	if err := h.sessions.SetCurrent(ctx, &profile); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Current handles GET /v1/session
func (h *SessionHandler) Current(c *gin.Context) {
	profile, err := h.sessions.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// End handles DELETE /v1/session
func (h *SessionHandler) End(c *gin.Context) {
	if err := h.sessions.Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
