package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhub/progress/internal/domain"
	"github.com/studyhub/progress/internal/service"
)

// ProblemHandler handles problem-related HTTP requests
type ProblemHandler struct {
	catalogService *service.CatalogService
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(catalogService *service.CatalogService) *ProblemHandler {
	return &ProblemHandler{
		catalogService: catalogService,
	}
}

// GetProblems returns all problems, optionally filtered by language
// GET /api/problems?language=
func (h *ProblemHandler) GetProblems(c *gin.Context) {
	var filter *domain.Language
	if raw := c.Query("language"); raw != "" {
		language, err := domain.ParseLanguage(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown language",
			})
			return
		}
		filter = &language
	}

	problems := h.catalogService.GetProblems(c.Request.Context(), filter)

	responses := make([]domain.ProblemResponse, len(problems))
	for i := range problems {
		responses[i] = problems[i].ToResponse()
	}

	c.JSON(http.StatusOK, gin.H{
		"problems": responses,
		"count":    len(responses),
	})
}

// GetProblem returns a specific problem by ID, description included
// GET /api/problems/:id
func (h *ProblemHandler) GetProblem(c *gin.Context) {
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

	c.JSON(http.StatusOK, problem)
}

// GetProblemStats returns statistics about the problem set
// GET /api/problems/stats
func (h *ProblemHandler) GetProblemStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.GetProblemStats(c.Request.Context()))
}
