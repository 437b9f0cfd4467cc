package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhub/progress/internal/middleware"
	"github.com/studyhub/progress/internal/service"
)

// Handlers groups the HTTP handlers mounted under /api
type Handlers struct {
	Session  *SessionHandler
	Problem  *ProblemHandler
	Contest  *ContestHandler
	Progress *ProgressHandler
}

// RegisterRoutes mounts the API on router. Catalog routes are public;
// progress routes require a session token.
func RegisterRoutes(router gin.IRouter, h Handlers, sessions *service.SessionService) {
	api := router.Group("/api")
	{
		api.POST("/sessions", h.Session.OpenSession)

		problems := api.Group("/problems")
		{
			problems.GET("", h.Problem.GetProblems)
			problems.GET("/stats", h.Problem.GetProblemStats)
			problems.GET("/:id", h.Problem.GetProblem)
		}

		contests := api.Group("/contests")
		{
			contests.GET("", h.Contest.GetContests)
			contests.GET("/:id", h.Contest.GetContest)
			contests.GET("/:id/countdown", h.Contest.StreamCountdown)
		}

		// Session routes
		protected := api.Group("")
		protected.Use(middleware.SessionMiddleware(sessions))
		{
			protected.GET("/progress", h.Progress.GetProgress)
			protected.GET("/practice/languages/:language", h.Progress.GetLanguageProgress)
			protected.POST("/practice/problems/:id/solve", h.Progress.SolvePracticeProblem)
			protected.GET("/contests/:id/progress", h.Contest.GetContestProgress)
			protected.POST("/contests/:id/problems/:problemId/solve", h.Contest.SolveContestProblem)
		}
	}
}
