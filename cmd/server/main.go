package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/vocab-prep/backend/internal/auth"
	"github.com/vocab-prep/backend/internal/database"
	"github.com/vocab-prep/backend/internal/engine"
	"github.com/vocab-prep/backend/internal/gamification"
	"github.com/vocab-prep/backend/internal/generator"
	"github.com/vocab-prep/backend/internal/middleware"
	"github.com/vocab-prep/backend/internal/sessions"
	"github.com/vocab-prep/backend/internal/words"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	registry := engine.NewRegistry()

	// Initialize services and handlers
	authHandler := auth.NewHandler(db)

	gamService := gamification.NewService(gamification.NewStore(db))
	gamHandler := gamification.NewHandler(gamService)

	sessionService := sessions.NewService(sessions.NewStore(db), registry)
	sessionService.SetGamificationService(gamService)
	sessionHandler := sessions.NewHandler(sessionService)

	wordHandler := words.NewHandler(words.NewStore(db), registry, generator.NewGenerator())

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/tests/{code}", sessionHandler.GetTest).Methods("GET")

	// Authenticated routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/tests/{code}/start", sessionHandler.StartSession).Methods("POST")
	protected.HandleFunc("/sessions/{id}/batch", sessionHandler.GetBatch).Methods("GET")
	protected.HandleFunc("/sessions/{id}/answers", sessionHandler.SubmitAnswer).Methods("POST")
	protected.HandleFunc("/sessions/{id}/complete", sessionHandler.CompleteSession).Methods("POST")
	protected.HandleFunc("/review", sessionHandler.GetReviewQueue).Methods("GET")
	protected.HandleFunc("/stats/me", sessionHandler.GetMasteryStats).Methods("GET")
	protected.HandleFunc("/gamification", gamHandler.GetGamification).Methods("GET")

	// Teacher routes
	teacher := api.PathPrefix("").Subrouter()
	teacher.Use(middleware.AuthMiddleware, middleware.RequireTeacher)
	teacher.HandleFunc("/words", wordHandler.CreateWord).Methods("POST")
	teacher.HandleFunc("/words", wordHandler.ListWords).Methods("GET")
	teacher.HandleFunc("/words/import", wordHandler.ImportWords).Methods("POST")
	teacher.HandleFunc("/words/{id}", wordHandler.GetWord).Methods("GET")
	teacher.HandleFunc("/words/{id}", wordHandler.UpdateWord).Methods("PUT")
	teacher.HandleFunc("/words/{id}", wordHandler.DeleteWord).Methods("DELETE")
	teacher.HandleFunc("/words/{id}/enrich", wordHandler.EnrichWord).Methods("POST")
	teacher.HandleFunc("/assignments", sessionHandler.CreateAssignment).Methods("POST")
	teacher.HandleFunc("/assignments", sessionHandler.ListAssignments).Methods("GET")
	teacher.HandleFunc("/assignments/{id}/active", sessionHandler.SetAssignmentActive).Methods("PUT")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
