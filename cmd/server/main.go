/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the vacation tracker server. Handles
  configuration, dependency wiring, admin bootstrap, and graceful
  shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and environment configuration
  2. Apply command-line flag overrides
  3. Open the SQLite store
  4. Bootstrap the admin account
  5. Start the HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT)
  -db      SQLite database path (overrides STORE_PATH)
           Use ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - config/config.go: Configuration options
  - api/server.go: Router configuration
  - store/sqlite: Database implementation
*/
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/warp/vacation-tracker/api"
	"github.com/warp/vacation-tracker/auth"
	"github.com/warp/vacation-tracker/config"
	"github.com/warp/vacation-tracker/holiday"
	"github.com/warp/vacation-tracker/store/sqlite"
	"github.com/warp/vacation-tracker/vacation"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Flag overrides
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.StorePath, "SQLite database path")
	flag.Parse()
	cfg.Port = *port
	cfg.StorePath = *dbPath

	// Initialize store and domain service
	store, err := sqlite.New(cfg.StorePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	service := vacation.NewService(store, holiday.NewCalendar(), auth.BcryptHasher{})

	if err := config.Bootstrap(context.Background(), cfg, service); err != nil {
		log.Fatalf("Failed to bootstrap admin user: %v", err)
	}

	// Wire the HTTP surface
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	router := api.NewRouter(api.NewHandler(service, tokens))

	server := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Vacation tracker listening on http://localhost%s", cfg.HTTPAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
