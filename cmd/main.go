package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/vocabbook/backend/docs"
	"github.com/vocabbook/backend/internal/auth"
	"github.com/vocabbook/backend/internal/config"
	"github.com/vocabbook/backend/internal/handlers"
	"github.com/vocabbook/backend/internal/logger"
	"github.com/vocabbook/backend/internal/middlewares"
	"github.com/vocabbook/backend/internal/quiz"
	"github.com/vocabbook/backend/internal/repositories"
	"github.com/vocabbook/backend/internal/services"
	"go.uber.org/zap"
)

const maxRequestSize = 12 * 1024 * 1024 // 12MB, leaves room for OCR photo uploads

// @title VocabBook API
// @version 1.0
// @description API for the vocabulary learning backend: word catalog, quiz sessions and the wrong word book

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description JWT access token, format: "Bearer <token>"
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting VocabBook Service")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis (dictionary lookup cache)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// Initialize JWT token service (for auth middleware)
	tokenService := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize repositories
	gradeRepo := repositories.NewGradeRepository(db)
	unitRepo := repositories.NewUnitRepository(db)
	wordRepo := repositories.NewWordRepository(db)
	quizRecordRepo := repositories.NewQuizRecordRepository(db)
	wrongWordRepo := repositories.NewWrongWordRepository(db)

	// Initialize quiz session manager
	manager := quiz.NewManager(quiz.NopSpeaker{}, cfg.Quiz.SessionTTL, logger.Logger)
	manager.Start()
	defer manager.Stop()

	// Initialize services
	catalogService := services.NewCatalogService(gradeRepo, unitRepo, wordRepo)
	adminCatalogService := services.NewAdminCatalogService(gradeRepo, unitRepo, wordRepo)
	resultService := services.NewResultService(quizRecordRepo, wrongWordRepo, logger.Logger)
	quizService := services.NewQuizService(wordRepo, wrongWordRepo, resultService, manager)
	wrongWordService := services.NewWrongWordService(wrongWordRepo)
	statsService := services.NewStatsService(quizRecordRepo, wrongWordRepo, logger.Logger)
	dictionaryService := services.NewDictionaryService(rdb, cfg.Dictionary.LookupURL, cfg.Dictionary.TranslationURL, logger.Logger)
	ocrService := services.NewOCRService(cfg.OCR.Endpoint, cfg.OCR.AccessKeyID, cfg.OCR.AccessKeySecret, logger.Logger)

	// Initialize middleware
	authMw := auth.Middleware(tokenService)
	adminMw := auth.RoleMiddleware(tokenService, auth.RoleAdmin)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger.Logger)
	quizHandler := handlers.NewQuizHandler(quizService, logger.Logger)
	wrongWordHandler := handlers.NewWrongWordHandler(wrongWordService, logger.Logger)
	statsHandler := handlers.NewStatsHandler(statsService, logger.Logger)
	dictionaryHandler := handlers.NewDictionaryHandler(dictionaryService, logger.Logger)
	adminHandler := handlers.NewAdminHandler(adminCatalogService, ocrService, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(maxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		catalogHandler.RegisterRoutes(r, authMw)
		quizHandler.RegisterRoutes(r, authMw)
		wrongWordHandler.RegisterRoutes(r, authMw)
		statsHandler.RegisterRoutes(r, authMw)
		dictionaryHandler.RegisterRoutes(r, authMw)
		adminHandler.RegisterRoutes(r, adminMw)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "vocabbook_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
