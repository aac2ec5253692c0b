package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"matcha-journal-backend/internal/shared/middleware"
	"matcha-journal-backend/internal/shared/response"
	"matcha-journal-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupTastingNoteRoutes(v1, c)
	}

	return router
}

// =====================================================
// AUTH ROUTES
// =====================================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	requireAuth := middleware.AuthMiddleware(c.JWTManager, c.Cache, c.Config.Session.CookieName)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/logout", requireAuth, c.UserHandler.Logout)
		auth.POST("/reset-password", c.UserHandler.ResetPassword)
		auth.POST("/reset-password-confirm", c.UserHandler.ResetPasswordConfirm)
		auth.GET("/me", requireAuth, c.UserHandler.Me)
	}
}

// =====================================================
// CATALOG ROUTES
// =====================================================
// Reads are public; creating a blend requires a session.
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	requireAuth := middleware.AuthMiddleware(c.JWTManager, c.Cache, c.Config.Session.CookieName)

	v1.GET("/brands", c.CatalogHandler.ListBrands)
	v1.GET("/regions", c.CatalogHandler.ListRegions)
	v1.GET("/blends", c.CatalogHandler.ListBlends)
	v1.POST("/blends", requireAuth, c.CatalogHandler.CreateBlend)
}

// =====================================================
// TASTING NOTE ROUTES
// =====================================================
func setupTastingNoteRoutes(v1 *gin.RouterGroup, c *container.Container) {
	notes := v1.Group("/tasting-notes")
	notes.Use(middleware.AuthMiddleware(c.JWTManager, c.Cache, c.Config.Session.CookieName))
	{
		notes.GET("", c.NoteHandler.ListNotes)
		notes.POST("", c.NoteHandler.CreateNote)
		notes.GET("/select", c.NoteHandler.SelectNotes)
		notes.GET("/:id", c.NoteHandler.GetNote)
		notes.PATCH("/:id", c.NoteHandler.UpdateNote)
		notes.DELETE("/:id", c.NoteHandler.DeleteNote)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "database unreachable")
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
			"time":    time.Now().UTC(),
		})
	}
}
