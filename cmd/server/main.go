package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/config"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/database"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/handlers"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/jobs"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/repository"
	cron "github.com/Dias221467/HealthMetrics_Tracker/internal/scheduler"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/services"
	"github.com/Dias221467/HealthMetrics_Tracker/pkg/logger"
	"github.com/Dias221467/HealthMetrics_Tracker/pkg/metrics"
	"github.com/Dias221467/HealthMetrics_Tracker/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	metrics.InitMetrics()

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	metricTypeRepo := repository.NewMetricTypeRepository(db)
	obsRepo := repository.NewObservationRepository(db)
	goalRepo := repository.NewGoalRepository(db)

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricTypeRepo.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Index creation error: %v", err)
	}
	if err := obsRepo.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Index creation error: %v", err)
	}
	if err := goalRepo.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Index creation error: %v", err)
	}

	// --- Services ---
	userService := services.NewUserService(userRepo)
	metricTypeService := services.NewMetricTypeService(metricTypeRepo)
	obsService := services.NewObservationService(obsRepo, metricTypeRepo)
	goalService := services.NewGoalService(goalRepo, obsRepo, metricTypeRepo, cfg.MaintainTolerance)
	dashboardService := services.NewDashboardService(goalService, obsRepo, metricTypeRepo, cfg.DashboardDays)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	metricTypeHandler := handlers.NewMetricTypeHandler(metricTypeService)
	obsHandler := handlers.NewObservationHandler(obsService, cfg.TrendWindow)
	goalHandler := handlers.NewGoalHandler(goalService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public user routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")

	// Protected user routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("/me", userHandler.MeHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/profile", userHandler.UpdateProfileHandler).Methods("PATCH")

	// Metric type routes: reads for every authenticated user
	metricTypeRoutes := router.PathPrefix("/metric-types").Subrouter()
	metricTypeRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	metricTypeRoutes.HandleFunc("", metricTypeHandler.ListMetricTypesHandler).Methods("GET")
	metricTypeRoutes.HandleFunc("/{id}", metricTypeHandler.GetMetricTypeHandler).Methods("GET")

	// Observation routes, including aggregated reads
	obsRoutes := router.PathPrefix("/metrics").Subrouter()
	obsRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	obsRoutes.HandleFunc("", obsHandler.CreateObservationHandler).Methods("POST")
	obsRoutes.HandleFunc("", obsHandler.ListObservationsHandler).Methods("GET")
	obsRoutes.HandleFunc("/summary", obsHandler.SummaryHandler).Methods("GET")
	obsRoutes.HandleFunc("/trends", obsHandler.TrendsHandler).Methods("GET")
	obsRoutes.HandleFunc("/{id}", obsHandler.GetObservationHandler).Methods("GET")
	obsRoutes.HandleFunc("/{id}", obsHandler.UpdateObservationHandler).Methods("PUT")
	obsRoutes.HandleFunc("/{id}", obsHandler.DeleteObservationHandler).Methods("DELETE")

	// Goal routes
	goalRoutes := router.PathPrefix("/goals").Subrouter()
	goalRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	goalRoutes.HandleFunc("", goalHandler.CreateGoalHandler).Methods("POST")
	goalRoutes.HandleFunc("", goalHandler.GetGoalsHandler).Methods("GET")
	goalRoutes.HandleFunc("/active", goalHandler.GetActiveGoalsHandler).Methods("GET")
	goalRoutes.HandleFunc("/{id}", goalHandler.GetGoalHandler).Methods("GET")
	goalRoutes.HandleFunc("/{id}", goalHandler.UpdateGoalHandler).Methods("PUT")
	goalRoutes.HandleFunc("/{id}", goalHandler.DeleteGoalHandler).Methods("DELETE")
	goalRoutes.HandleFunc("/{id}/deactivate", goalHandler.DeactivateGoalHandler).Methods("POST")
	goalRoutes.HandleFunc("/{id}/progress", goalHandler.GetGoalProgressHandler).Methods("GET")

	// Dashboard route
	dashboardRoutes := router.PathPrefix("/dashboard").Subrouter()
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	dashboardRoutes.HandleFunc("", dashboardHandler.GetDashboardHandler).Methods("GET")

	// Admin routes for managing metric type reference data
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/metric-types", metricTypeHandler.CreateMetricTypeHandler).Methods("POST")
	adminRoutes.HandleFunc("/metric-types/{id}", metricTypeHandler.UpdateMetricTypeHandler).Methods("PUT")
	adminRoutes.HandleFunc("/metric-types/{id}", metricTypeHandler.DeleteMetricTypeHandler).Methods("DELETE")

	// Prometheus scrape endpoint
	router.Handle("/metrics-exporter", promhttp.Handler()).Methods("GET")

	// Apply middleware for logging and request metrics
	router.Use(middleware.LoggingMiddleware)

	// Nightly observation integrity scan
	scanner := jobs.NewIntegrityScanner(obsRepo, metricTypeRepo)
	cron.StartIntegrityCronJobs(scanner)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
