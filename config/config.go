// Package config holds the explicit startup configuration. Nothing in the
// rest of the tree reads the environment; everything is passed this struct.
package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/warp/vacation-tracker/vacation"
)

// Config enumerates every runtime option. Defaults suit local development;
// the JWT secret is the only required value.
type Config struct {
	Port      int
	StorePath string // SQLite path, ":memory:" allowed

	AdminUsername string
	AdminPassword string
	AdminMail     string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration
}

// Load reads configuration from the environment with minimal validation.
// main applies flag overrides on top of the result.
func Load() (Config, error) {
	cfg := Config{
		StorePath:     fallback(os.Getenv("STORE_PATH"), "vacation.db"),
		AdminUsername: fallback(os.Getenv("ADMIN_USERNAME"), "admin"),
		AdminPassword: fallback(os.Getenv("ADMIN_PASSWORD"), "password"),
		AdminMail:     fallback(os.Getenv("ADMIN_MAIL"), "info@mail.com"),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:     fallback(os.Getenv("JWT_ISSUER"), "vacation-tracker"),
	}

	port := fallback(os.Getenv("PORT"), "8080")
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 {
		return Config{}, fmt.Errorf("invalid PORT %q", port)
	}
	cfg.Port = p

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "60")
	if ttl, err := strconv.Atoi(minutes); err == nil && ttl > 0 {
		cfg.JWTTTL = time.Duration(ttl) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Bootstrap ensures the configured admin account exists. Safe to run on
// every start.
func Bootstrap(ctx context.Context, cfg Config, svc *vacation.Service) error {
	if _, err := svc.GetUserByUsername(ctx, cfg.AdminUsername); err == nil {
		log.Printf("admin user %q already exists", cfg.AdminUsername)
		return nil
	} else if !vacation.IsNotFound(err) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	_, err := svc.CreateUser(ctx, vacation.NewUser{
		Username: cfg.AdminUsername,
		Mail:     cfg.AdminMail,
		Password: cfg.AdminPassword,
		IsAdmin:  true,
	})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.Printf("admin user %q created", cfg.AdminUsername)
	return nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
