package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/opengrade/gradebook/internal/api"
	"github.com/opengrade/gradebook/internal/auth"
	"github.com/opengrade/gradebook/internal/db"
	"github.com/opengrade/gradebook/internal/logger"
)

var version = "dev"

func main() {
	// Optional .env file for local development
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded environment from .env file")
	}

	config := loadConfig()

	database, err := db.Connect(config.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	ctx := context.Background()
	if err := auth.BootstrapAdmin(ctx, database, config.AdminBootstrapEmail, config.AdminBootstrapPassword); err != nil {
		logger.Fatal("failed to bootstrap admin user", "error", err)
	}

	tokens, err := auth.NewTokenIssuer(config.JWTSecret, config.TokenTTL)
	if err != nil {
		logger.Fatal("invalid token configuration", "error", err)
	}

	server := api.NewServer(database, tokens, config.AllowedOrigins, version)
	defer server.Stop()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Port),
		Handler:      server.SetupRoutes(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", config.Port, "version", version)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

type Config struct {
	Port                   int
	DatabaseURL            string
	ReadTimeout            time.Duration
	WriteTimeout           time.Duration
	JWTSecret              string
	TokenTTL               time.Duration
	AllowedOrigins         []string
	AdminBootstrapEmail    string
	AdminBootstrapPassword string
}

func loadConfig() Config {
	port := 8080
	if p := os.Getenv("PORT"); p != "" {
		fmt.Sscanf(p, "%d", &port)
	}

	// HTTP timeout configuration (defaults to 30s)
	readTimeout := 30 * time.Second
	if rt := os.Getenv("HTTP_READ_TIMEOUT"); rt != "" {
		if parsed, err := time.ParseDuration(rt); err == nil {
			readTimeout = parsed
		}
	}

	writeTimeout := 30 * time.Second
	if wt := os.Getenv("HTTP_WRITE_TIMEOUT"); wt != "" {
		if parsed, err := time.ParseDuration(wt); err == nil {
			writeTimeout = parsed
		}
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("missing required env var", "var", "DATABASE_URL")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("missing required env var", "var", "JWT_SECRET", "hint", "must be at least 32 characters")
	}

	tokenTTL := auth.DefaultTokenTTL
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			tokenTTL = parsed
		}
	}

	allowedOrigins := []string{"*"}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
		for i := range allowedOrigins {
			allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
		}
	}

	return Config{
		Port:                   port,
		DatabaseURL:            databaseURL,
		ReadTimeout:            readTimeout,
		WriteTimeout:           writeTimeout,
		JWTSecret:              jwtSecret,
		TokenTTL:               tokenTTL,
		AllowedOrigins:         allowedOrigins,
		AdminBootstrapEmail:    os.Getenv("ADMIN_BOOTSTRAP_EMAIL"),
		AdminBootstrapPassword: os.Getenv("ADMIN_BOOTSTRAP_PASSWORD"),
	}
}
