package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyhub/progress/internal/domain"
	"github.com/studyhub/progress/internal/middleware"
	"github.com/studyhub/progress/internal/service"
)

// ContestHandler handles contest-related HTTP requests
type ContestHandler struct {
	catalogService    *service.CatalogService
	registry          *service.SessionRegistry
	clock             domain.Clock
	countdownInterval time.Duration
}

// NewContestHandler creates a new contest handler
func NewContestHandler(
	catalogService *service.CatalogService,
	registry *service.SessionRegistry,
	clock domain.Clock,
	countdownInterval time.Duration,
) *ContestHandler {
	return &ContestHandler{
		catalogService:    catalogService,
		registry:          registry,
		clock:             clock,
		countdownInterval: countdownInterval,
	}
}

// GetContests returns every contest with its current status
// GET /api/contests
func (h *ContestHandler) GetContests(c *gin.Context) {
	ctx := c.Request.Context()
	catalog := h.catalogService.Catalog()
	now := domain.NowFrom(h.clock)

	contests := h.catalogService.GetContests(ctx)
	responses := make([]domain.ContestResponse, len(contests))
	for i := range contests {
		responses[i] = contests[i].ToResponse(catalog.ContestProblems(contests[i]), now)
	}

	c.JSON(http.StatusOK, gin.H{
		"contests": responses,
	})
}

// GetContest returns a specific contest by ID
// GET /api/contests/:id
func (h *ContestHandler) GetContest(c *gin.Context) {
	contest, problems, err := h.catalogService.GetContest(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, contest.ToResponse(problems, domain.NowFrom(h.clock)))
}

// StreamCountdown streams the contest status as server-sent events until the
// client disconnects
// GET /api/contests/:id/countdown
func (h *ContestHandler) StreamCountdown(c *gin.Context) {
	contest, _, err := h.catalogService.GetContest(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	ticks := service.Countdown(c.Request.Context(), contest, h.clock, h.countdownInterval)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		tick, ok := <-ticks
		if !ok {
			return false
		}
		c.SSEvent("status", tick)
		return true
	})
}

// GetContestProgress returns the session's score and solves within a contest
// GET /api/contests/:id/progress
func (h *ContestHandler) GetContestProgress(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	contest, problems, err := h.catalogService.GetContest(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	contests := h.registry.Get(c.Request.Context(), sessionID).Contests
	score := contests.ContestScore(contest, problems)

	c.JSON(http.StatusOK, service.ContestOverview{
		ContestID:    contest.ID,
		Title:        contest.Title,
		Status:       contest.StatusAt(domain.NowFrom(h.clock)),
		ContestScore: score,
		Percent:      score.Percent(),
		Solved:       service.SolvedInOrder(contests.ContestProgress(contest.ID)),
	})
}

// SolveContestProblem marks a problem solved within a contest. Solves outside
// the active window are refused with 409 and change nothing.
// POST /api/contests/:id/problems/:problemId/solve
func (h *ContestHandler) SolveContestProblem(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	contest, problem, err := h.catalogService.GetContestProblem(c.Request.Context(), c.Param("id"), c.Param("problemId"))
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	contests := h.registry.Get(c.Request.Context(), sessionID).Contests
	accepted, status, err := contests.MarkContestProblemSolved(c.Request.Context(), contest, problem)
	if err != nil {
		respondFlushError(c, err)
		return
	}

	if !accepted {
		c.JSON(http.StatusConflict, gin.H{
			"accepted": false,
			"status":   status,
			"error":    "Contest is not active",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accepted": true,
		"score":    contests.ContestScore(contest, h.catalogService.Catalog().ContestProblems(contest)),
	})
}

func (h *ContestHandler) respondLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrContestNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Contest not found",
		})
	case errors.Is(err, domain.ErrProblemNotInContest):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Problem not found in this contest",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve contest",
		})
	}
}
