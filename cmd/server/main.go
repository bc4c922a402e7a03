package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"saarthi/internal/auth"
	"saarthi/internal/database"
	"saarthi/internal/handlers"
	"saarthi/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// This is our main function - the entry point of our application
func main() {
	// Load .env in development; in production everything comes from the environment
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: no .env file found, relying on environment")
		}
	}

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Initialize refresh token encryption
	if err := auth.InitCrypto(); err != nil {
		log.Fatal("Failed to initialize crypto:", err)
	}

	// Initialize Google OAuth
	if err := auth.InitOAuth(); err != nil {
		log.Fatal("Failed to initialize OAuth:", err)
	}

	// Start the daily reminder digest worker
	services.NewReminderDigestWorker().Start()

	// Initialize Gin router
	router := gin.Default()

	// Configure trusted proxies
	router.SetTrustedProxies([]string{"127.0.0.1"})

	// CORS for the dashboard frontend
	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Basic routes
	router.GET("/", handlers.HomeHandler)
	router.GET("/health", handlers.HealthHandler)

	// Auth routes (no auth required)
	router.GET("/auth/google/login", handlers.LoginHandler)
	router.GET("/auth/google/callback", handlers.GoogleCallbackHandler)
	router.POST("/auth/logout", handlers.LogoutHandler)

	// Razorpay server-to-server events (signature-verified, no session)
	router.POST("/webhook/razorpay", handlers.RazorpayWebhook)

	// Protected routes (auth required)
	protected := router.Group("")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/auth/me", handlers.GetMe)
		protected.PUT("/auth/me", handlers.UpdateProfile)
		protected.POST("/auth/me/avatar", handlers.UploadAvatar)
		protected.GET("/auth/me/logins", handlers.GetLoginHistory)

		// Billing stays reachable for expired accounts so they can renew
		protected.GET("/api/payment/plans", handlers.GetPlans)
		protected.POST("/api/payment/create-order", handlers.CreateOrder)
		protected.POST("/api/payment/verify", handlers.VerifyPayment)
	}

	// CRM routes (auth + current subscription required)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware(), auth.SubscriptionGuard())
	{
		api.POST("/leads", handlers.CreateLead)
		api.GET("/leads", handlers.GetLeads)
		api.GET("/leads/search", handlers.SearchLeads)
		api.POST("/leads/bulk", handlers.BulkImportLeads)
		api.GET("/leads/:lead_id", handlers.GetLeadByID)
		api.PUT("/leads/:lead_id", handlers.UpdateLead)
		api.DELETE("/leads/:lead_id", handlers.DeleteLead)

		api.POST("/customers", handlers.CreateCustomer)
		api.GET("/customers", handlers.GetCustomers)
		api.GET("/customers/:customer_id", handlers.GetCustomerByID)
		api.PUT("/customers/:customer_id", handlers.UpdateCustomer)
		api.DELETE("/customers/:customer_id", handlers.DeleteCustomer)
		api.POST("/customers/convert/:lead_id", handlers.ConvertLeadToCustomer)

		api.POST("/followups", handlers.CreateFollowUp)
		api.GET("/followups", handlers.GetFollowUps)
		api.GET("/followups/summary", handlers.GetFollowUpSummary)
		api.PUT("/followups/:followup_id", handlers.UpdateFollowUp)
		api.DELETE("/followups/:followup_id", handlers.DeleteFollowUp)

		api.GET("/templates", handlers.GetTemplates)
		api.POST("/templates", handlers.UpsertTemplate)
		api.DELETE("/templates/:category", handlers.DeleteTemplate)

		api.GET("/reminders/leads", handlers.GetReminderLeads)
		api.GET("/reminders/customers", handlers.GetReminderCustomers)
		api.GET("/reminders/reminder_logs", handlers.GetReminderLogs)
		api.POST("/reminders/reminder_logs", handlers.CreateReminderLog)
		api.GET("/reminders/worklist", handlers.GetReminderWorklist)

		api.POST("/banners", handlers.UploadBanner)
		api.GET("/banners", handlers.GetBanners)
		api.DELETE("/banners/:banner_id", handlers.DeleteBanner)

		api.POST("/team", handlers.CreateTeamMember)
		api.GET("/team", handlers.GetTeamMembers)
		api.PUT("/team/:member_id", handlers.UpdateTeamMember)
		api.DELETE("/team/:member_id", handlers.DeleteTeamMember)
	}

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
