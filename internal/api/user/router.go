package user

import (
	"github.com/HASGITH/Mathforces/internal/api"
	"github.com/HASGITH/Mathforces/internal/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewUserRouter creates and configures the user Gin engine.
func NewUserRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(api.CORSMiddleware(cfg.CORS))

	h := NewHandler(cfg, db)

	v1 := r.Group("/api/v1")
	{
		// Auth
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", h.register)
			authGroup.POST("/login", h.login)
		}

		// Websocket for live standings, with its own token handling
		v1.GET("/ws/contests/:id/standings", h.handleStandingsWs)

		// Publicly accessible info
		v1.GET("/problems", h.getAllProblems)
		v1.GET("/problems/:id", h.getProblem)
		v1.GET("/contests", h.getAllContests)
		v1.GET("/contests/:id", h.getContest)
		v1.GET("/contests/:id/standings", h.getContestStandings)
		v1.GET("/submissions", h.getRecentSubmissions)
		v1.GET("/users/:username", h.getPublicUserProfile)
		v1.GET("/users/search", h.searchUsers)
		v1.GET("/ranking", h.getRanking)

		// Authenticated routes
		authed := v1.Group("/")
		authed.Use(api.AuthMiddleware(cfg.Auth.JWT.Secret))
		{
			// Own profile
			profile := authed.Group("/user")
			{
				profile.GET("/profile", h.getUserProfile)
				profile.PATCH("/profile", h.updateUserProfile)
				profile.GET("/friends", h.getFriends)
			}

			authed.POST("/users/:username/friend", h.toggleFriend)

			// Problems & Submissions
			authed.POST("/problems/:id/submit", h.submitToProblem)
			authed.GET("/user/submissions", h.getUserSubmissions)
			authed.GET("/submissions/:id", h.getSubmission)
		}
	}

	return r
}
