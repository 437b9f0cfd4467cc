package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhub/progress/internal/service"
)

// SessionHandler opens anonymous progress sessions
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// OpenSession issues a token naming a fresh progress namespace
// POST /api/sessions
func (h *SessionHandler) OpenSession(c *gin.Context) {
	token, err := h.sessionService.Open(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to open session",
		})
		return
	}

	c.JSON(http.StatusCreated, token)
}
