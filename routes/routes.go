package routes

import (
	"net/http"

	"github.com/jatenner/Snap2Healthmain-sub005/config"
	"github.com/jatenner/Snap2Healthmain-sub005/controllers"
	"github.com/jatenner/Snap2Healthmain-sub005/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter(ac *controllers.AnalyzeController, mc *controllers.MealController, rc *controllers.RealtimeController) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Locally stored uploads are served straight from disk in dev.
	r.Static("/uploads", config.App.UploadDir)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Intake + analysis: open endpoints, analysis personalizes when a
	// session is present.
	r.POST("/upload", controllers.UploadImage)
	r.POST("/upload-base64", controllers.UploadImageBase64)
	r.POST("/analyze", middlewares.OptionalAuthMiddleware(), ac.AnalyzeMeal)

	// Protected meal routes
	meals := r.Group("/")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("/save-meal", mc.SaveMeal)
		meals.DELETE("/meal", mc.DeleteMeal)
		meals.GET("/meals/recent", mc.RecentMeals)
		meals.GET("/meal/:id", mc.GetMeal)
		meals.GET("/ws/events", rc.EventsWS)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
	}

	return r
}
