package router

import (
	"freeworldfirst/internal/handlers"
	"freeworldfirst/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	alternativeHandler := handlers.NewAlternativeHandler()
	commentHandler := handlers.NewCommentHandler()

	// Public routes
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	r.GET("/alternatives", alternativeHandler.List)
	r.GET("/alternatives/:id", alternativeHandler.Detail)
	r.GET("/categories", alternativeHandler.Categories)

	// Authenticated routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/auth/profile", authHandler.Profile)

		authorized.POST("/alternatives", alternativeHandler.Create)
		authorized.PATCH("/alternatives/:id", alternativeHandler.Update)
		authorized.DELETE("/alternatives/:id", alternativeHandler.Delete)
		authorized.POST("/alternatives/:id/vote", alternativeHandler.Vote)

		authorized.POST("/alternatives/:id/comments", commentHandler.Create)
		authorized.DELETE("/comments/:id", commentHandler.Delete)
	}

	// Admin routes (moderation)
	admin := r.Group("/")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/alternatives/pending", alternativeHandler.ListPending)
		admin.POST("/alternatives/:id/approve", alternativeHandler.Approve)
	}
}
