package routes

import (
	"net/http"
	"time"

	"innroutes/handlers"
	"innroutes/middleware"
	"innroutes/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the OTP login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.InitiateLoginHandler)
		api.POST("/verify", hb.VerifyLoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterUserRoutes registers current-user profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("/me", hb.GetCurrentUserHandler)
		api.PATCH("/me", hb.UpdateProfileHandler)
		api.PUT("/me/avatar", hb.UploadAvatarHandler)
		api.PUT("/me/fcm-token", hb.RegisterFCMTokenHandler)
	}
}

// RegisterIntelligenceRoutes registers the destination resolver endpoint.
func RegisterIntelligenceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/intelligence")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("/resolve", hb.ResolveDestinationHandler)
	}
}

// RegisterTripRoutes registers saved-trip and budget endpoints.
func RegisterTripRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/trips")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.CreateTripHandler)
		api.GET("", hb.ListTripsHandler)
		api.GET("/:id", hb.GetTripHandler)
		api.DELETE("/:id", hb.DeleteTripHandler)
		api.POST("/:id/expenses", hb.AddExpenseHandler)
		api.GET("/:id/budget", hb.BudgetSummaryHandler)
		api.GET("/:id/itinerary.pdf", hb.ExportItineraryHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// background dependency monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Device-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterIntelligenceRoutes(r, hb)
	RegisterTripRoutes(r, hb)
	RegisterHealthRoute(r)
}
