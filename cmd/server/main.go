package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"revu-backend/internal/ai"
	"revu-backend/internal/database"
	"revu-backend/internal/handlers"
	customMiddleware "revu-backend/internal/middleware"
	"revu-backend/internal/notify"
	"revu-backend/internal/report"
	"revu-backend/internal/repository"
	"revu-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env (ignore error in production — env vars set directly)
	_ = godotenv.Load()

	// Required env vars
	mongoURI := getEnv("MONGODB_URI", "")
	dbName := getEnv("DB_NAME", "revu")
	port := getEnv("PORT", "8080")

	// Optional capabilities
	adminPassword := getEnv("ADMIN_PASSWORD", "")
	sessionSecret := getEnv("SESSION_SECRET", "")
	aiAPIKey := getEnv("AI_API_KEY", "")
	aiBaseURL := getEnv("AI_BASE_URL", "")
	aiModel := getEnv("AI_MODEL", "gpt-4o-mini")

	if mongoURI == "" {
		log.Fatal("❌ MONGODB_URI is required")
	}
	if adminPassword != "" && sessionSecret == "" {
		log.Fatal("❌ SESSION_SECRET is required when ADMIN_PASSWORD is set")
	}
	if adminPassword == "" {
		log.Println("⚠️  ADMIN_PASSWORD not set — admin dashboard is open without authentication")
	}

	// Connect to MongoDB
	if err := database.Connect(mongoURI, dbName); err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = database.Disconnect(ctx)
	}()

	// Initialize repository
	feedbackRepo := repository.NewFeedbackRepo()

	// Ensure indexes
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := feedbackRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create feedback indexes: %v", err)
	}

	// Choose the enrichment backend once at startup
	var enricher ai.Enricher
	if aiAPIKey != "" {
		enricher = ai.NewOpenAIEnricher(aiAPIKey, aiBaseURL, aiModel)
		log.Printf("✅ AI enrichment live (model: %s)", aiModel)
	} else {
		enricher = ai.StubEnricher{}
		log.Println("⚠️  AI_API_KEY not set — enrichment running in stub mode")
	}

	// Choose the escalation notifier
	var notifier notify.Notifier
	resendKey := getEnv("RESEND_API_KEY", "")
	alertEmail := getEnv("ALERT_EMAIL", "")
	alertFrom := getEnv("ALERT_FROM", "alerts@revu.local")
	if resendKey != "" && alertEmail != "" {
		notifier = notify.NewEmailNotifier(resendKey, alertFrom, alertEmail)
		log.Printf("✅ Escalation alerts delivered to %s", alertEmail)
	} else {
		notifier = notify.NewLogNotifier()
		log.Println("⚠️  RESEND_API_KEY/ALERT_EMAIL not set — escalation alerts logged only")
	}

	// Initialize services and handlers
	pipeline := service.NewPipeline(feedbackRepo, enricher, notifier)
	reports := report.NewService(feedbackRepo)

	feedbackHandler := handlers.NewFeedbackHandler(pipeline, feedbackRepo, enricher)
	adminHandler := handlers.NewAdminHandler(reports, adminPassword, sessionSecret)

	// Setup chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"revu-backend"}`))
	})

	// Public routes
	r.Get("/ai/status", feedbackHandler.AIStatus)
	r.Post("/feedback", feedbackHandler.SubmitFeedback)
	r.Get("/feedback/recent", feedbackHandler.RecentFeedback)

	// Admin routes (session required only when a password is configured)
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", adminHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.AdminAuth(sessionSecret, adminPassword != ""))

			r.Get("/feedback", adminHandler.ListFeedback)
			r.Get("/metrics", adminHandler.Metrics)
			r.Get("/trend", adminHandler.Trend)
			r.Get("/distribution", adminHandler.Distribution)
			r.Get("/export.csv", adminHandler.ExportCSV)
		})
	})

	// Start server
	log.Printf("🚀 Revu backend starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
