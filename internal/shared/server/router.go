package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "smartdoc-backend/internal/auth"
	"smartdoc-backend/internal/shared/config"
	"smartdoc-backend/internal/shared/server/middleware"
	"smartdoc-backend/internal/shared/server/respond"
	"smartdoc-backend/internal/summaries"
	"smartdoc-backend/internal/users"
)

// RouterDeps bundles the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	SummariesHandler *summaries.Handler
	GoogleAuth       *googleauth.GoogleService
	UsersService     *users.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"UPLOAD": {Rate: 0.5, Burst: 5},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/summaries" {
					return "UPLOAD"
				}
				return ""
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api, deps.UsersService)
	if deps.SummariesHandler != nil {
		deps.SummariesHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
