package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscompanion/campusplus/internal/app/controllers"
	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	subjectController *controllers.SubjectController,
	noteController *controllers.NoteController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Health check (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authed := v1.Group("")
	authed.Use(authMiddleware.JWTAuth())
	{
		authed.GET("/auth/me", authController.Me)

		authed.GET("/subjects", subjectController.ListSubjects)

		notes := authed.Group("/notes")
		{
			notes.GET("", noteController.ListNotes)
			notes.POST("", noteController.Create)
			notes.POST("/uploads", noteController.Upload)
			notes.POST("/:noteId/access", noteController.RecordAccess)

			// Approval is restricted to moderators at the route as well as
			// inside the service.
			notes.PATCH("/:noteId/approval",
				authMiddleware.RoleRequired(models.RoleCR, models.RoleAdmin),
				noteController.SetApproval,
			)
		}
	}
}
