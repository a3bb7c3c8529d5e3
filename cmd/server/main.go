// Package main initializes and starts the HTTP server, setting up
// configuration, logging, database connections, repositories, services
// and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/parshpawar/ezoCodingTask/internal/config"
	"github.com/parshpawar/ezoCodingTask/internal/db"
	"github.com/parshpawar/ezoCodingTask/internal/logger"
	"github.com/parshpawar/ezoCodingTask/internal/repository"
	"github.com/parshpawar/ezoCodingTask/internal/server/handler/http"
	"github.com/parshpawar/ezoCodingTask/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port
	dbName := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection, schema and roster seed.
	postgressDB, err := db.InitPostgres(dbName)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Purge expired sessions in the background.
	db.StartExpiredSessionCleaner(context.Background(), postgressDB,
		time.Hour, // interval
		zapLogger,
	)

	// Initialize repositories for users, sessions and roster records.
	userRepo := repository.NewPostgresUserRepository(postgressDB)
	sessionRepo := repository.NewPostgresSessionRepository(postgressDB)
	recordRepo := repository.NewPostgresRecordRepository(postgressDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, sessionRepo, options.JWTSecret)
	rosterService := service.NewRosterService(recordRepo)

	// Create HTTP handlers for auth and roster endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	recordsHandler := &http.RecordsHandler{RosterService: rosterService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, recordsHandler, authService, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
