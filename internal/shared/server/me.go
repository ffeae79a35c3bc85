package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartdoc-backend/internal/shared/server/middleware"
	"smartdoc-backend/internal/shared/server/respond"
	"smartdoc-backend/internal/users"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup, userSvc *users.Service) {
	rg.GET("/me", meHandler(userSvc))
}

func meHandler(userSvc *users.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserIDFromContext(c)
		if userID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		response := gin.H{
			"userId": userID,
		}
		if email := middleware.UserEmailFromContext(c); email != "" {
			response["email"] = email
		}
		if name := middleware.UserNameFromContext(c); name != "" {
			response["name"] = name
		}

		// The stored profile wins over the token claims when present.
		if userSvc != nil {
			if user, err := userSvc.GetByID(c.Request.Context(), userID); err == nil {
				if user.Email != "" {
					response["email"] = user.Email
				}
				if user.FullName != "" {
					response["name"] = user.FullName
				}
				response["createdAt"] = user.CreatedAt
			}
		}

		respond.JSON(c, http.StatusOK, response)
	}
}
