package main

import (
	"log"
	"os"
	"strings"
	"time"
	"travelmate/auth"
	"travelmate/database"
	"travelmate/handlers"
	"travelmate/services"
	"travelmate/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file (ignored in production where env vars are set directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found — using environment variables")
	}

	// Initialize database
	database.InitDB()

	// Local key-value store for users and the persisted session
	storePath := os.Getenv("TRAVELMATE_STORE")
	if storePath == "" {
		storePath = "./data/sessions"
	}
	kv, err := store.Open(storePath)
	if err != nil {
		log.Fatalf("❌ Failed to open session store: %v", err)
	}
	defer kv.Close()

	authSvc, err := auth.NewService(kv)
	if err != nil {
		log.Fatalf("❌ Failed to initialize auth: %v", err)
	}
	log.Printf("✅ Session store ready (%d registered users)", authSvc.UserCount())

	// Initialize external providers
	services.InitAviationstack()
	services.InitTravelAdvisor()
	services.InitAI()
	defer services.GetAIClient().Close()

	prefs := services.NewPreferenceStore()
	chatSvc := services.NewChatService(services.GetAIClient(), prefs)
	assistant := handlers.NewAssistantRegistry(chatSvc)

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// Trusted proxies (Railway sits behind a proxy)
	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	// CORS — allow configured frontend origins
	frontendURLs := os.Getenv("FRONTEND_URL")
	allowedOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	if frontendURLs != "" {
		for _, u := range strings.Split(frontendURLs, ",") {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthHandler)

		api.POST("/auth/login", handlers.LoginHandler(authSvc))
		api.POST("/auth/register", handlers.RegisterHandler(authSvc))
		api.POST("/auth/logout", handlers.LogoutHandler(authSvc))
		api.GET("/auth/session", handlers.SessionHandler(authSvc))

		api.GET("/flight-destinations", handlers.FlightDestinationsHandler)

		api.POST("/chat", handlers.ChatHandler(chatSvc))
		api.GET("/chat/:id/history", handlers.ChatHistoryHandler)

		api.POST("/budget-calculator", handlers.BudgetHandler(authSvc))
		api.POST("/destination-details", handlers.DestinationDetailsHandler(prefs))
		api.GET("/reports/:id/pdf", handlers.ReportPDFHandler)

		api.POST("/assistant/sessions", assistant.CreateSessionHandler)
		api.POST("/assistant/sessions/:id/messages", assistant.PostMessageHandler)
		api.POST("/assistant/sessions/:id/select", assistant.SelectCardHandler)
		api.POST("/assistant/sessions/:id/budget", assistant.BudgetHandler)
		api.DELETE("/assistant/sessions/:id", assistant.CloseSessionHandler)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 TravelMate backend starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
