package routes

import (
	"time"

	"twinmind/handlers"
	"twinmind/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers owner session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.LoginHandler)

		// Revoking a session requires a valid session.
		api.Use(middleware.JWTAuthOwnerMiddleware())
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterScheduleRoutes registers planner and agenda endpoints.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.Use(middleware.JWTAuthOwnerMiddleware())
		api.POST("/plan", hb.PlanHandler)
		api.GET("/agenda", hb.AgendaHandler)
		api.DELETE("/events/:id", hb.CancelEventHandler)
		api.GET("/notifications", hb.NotificationsHandler)
	}
}

// RegisterAssistantRoutes registers the conversational endpoint.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/assistant")
	{
		api.Use(middleware.JWTAuthOwnerMiddleware())
		api.POST("/chat", hb.ChatHandler)
	}
}

// RegisterMailRoutes registers inbox endpoints.
func RegisterMailRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/mail")
	{
		api.Use(middleware.JWTAuthOwnerMiddleware())
		api.GET("/unread", hb.UnreadMailHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterAssistantRoutes(r, hb)
	RegisterMailRoutes(r, hb)
	RegisterHealthRoute(r)
}
