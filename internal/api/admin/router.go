package admin

import (
	"github.com/HASGITH/Mathforces/internal/api"
	"github.com/HASGITH/Mathforces/internal/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewAdminRouter creates and configures the admin Gin engine. The admin
// server binds to its own listen address; on top of that every route
// requires a valid token for an account carrying the staff flag.
func NewAdminRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(api.CORSMiddleware(cfg.CORS))

	h := NewHandler(cfg, db)

	v1 := r.Group("/api/v1")
	v1.Use(api.AuthMiddleware(cfg.Auth.JWT.Secret), api.RequireStaff(db))
	{
		// User Management
		users := v1.Group("/users")
		{
			users.GET("", h.getAllUsers)
			users.GET("/:id", h.getUser)
			users.PATCH("/:id", h.updateUser)
		}

		// Problem Management
		problems := v1.Group("/problems")
		{
			problems.GET("", h.getAllProblems)
			problems.POST("", h.createProblem)
			problems.PUT("/:id", h.updateProblem)
			problems.DELETE("/:id", h.deleteProblem)
		}

		// Contest Management
		contests := v1.Group("/contests")
		{
			contests.GET("", h.getAllContests)
			contests.POST("", h.createContest)
			contests.PUT("/:id", h.updateContest)
			contests.DELETE("/:id", h.deleteContest)
			contests.PUT("/:id/problems", h.setContestProblems)
			contests.POST("/:id/rating", h.applyContestRating)
		}

		// Submission Management
		submissions := v1.Group("/submissions")
		{
			submissions.PATCH("/:id/correctness", h.updateSubmissionCorrectness)
		}
	}

	return r
}
