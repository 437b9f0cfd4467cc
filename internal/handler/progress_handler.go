package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhub/progress/internal/domain"
	"github.com/studyhub/progress/internal/middleware"
	"github.com/studyhub/progress/internal/service"
)

// ProgressHandler serves a session's practice progress and overview
type ProgressHandler struct {
	catalogService *service.CatalogService
	registry       *service.SessionRegistry
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(catalogService *service.CatalogService, registry *service.SessionRegistry) *ProgressHandler {
	return &ProgressHandler{
		catalogService: catalogService,
		registry:       registry,
	}
}

// GetProgress returns the practice and contest overview for the session
// GET /api/progress
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	progress := h.registry.Get(c.Request.Context(), sessionID)
	overview := service.BuildOverview(
		h.catalogService.Catalog(),
		progress.Practice,
		progress.Contests,
		h.catalogService.Now(),
	)

	c.JSON(http.StatusOK, overview)
}

// GetLanguageProgress returns practice stats and solved problems for one language
// GET /api/practice/languages/:language
func (h *ProgressHandler) GetLanguageProgress(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	language, err := domain.ParseLanguage(c.Param("language"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown language",
		})
		return
	}

	problems := h.catalogService.GetProblems(c.Request.Context(), &language)
	practice := h.registry.Get(c.Request.Context(), sessionID).Practice

	solved := make(map[string]domain.ProblemProgress)
	progress := practice.Progress()
	for _, p := range problems {
		if entry, ok := progress[p.ID]; ok && entry.Solved {
			solved[p.ID] = entry
		}
	}

	stats := practice.LanguageStats(language, problems)
	c.JSON(http.StatusOK, gin.H{
		"stats":   stats,
		"percent": stats.Percent(),
		"solved":  service.SolvedInOrder(solved),
	})
}

// SolvePracticeProblem marks a practice problem solved
// POST /api/practice/problems/:id/solve
func (h *ProgressHandler) SolvePracticeProblem(c *gin.Context) {
	sessionID, ok := middleware.RequireSession(c)
	if !ok {
		return
	}

	problem, err := h.catalogService.GetProblem(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProblemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Problem not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to retrieve problem",
			})
		}
		return
	}

	practice := h.registry.Get(c.Request.Context(), sessionID).Practice
	if err := practice.MarkSolved(c.Request.Context(), problem); err != nil {
		respondFlushError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"problem_id": problem.ID,
		"solved":     practice.IsSolved(problem.ID),
		"score":      practice.Score(problem.ID),
	})
}

// respondFlushError reports a solve that was recorded in memory but could
// not be written to the store
func respondFlushError(c *gin.Context, err error) {
	_ = c.Error(err)

	var domainErr *domain.DomainError
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable) && errors.As(err, &domainErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":  domainErr.Message,
			"solved": true,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update progress",
		})
	}
}
