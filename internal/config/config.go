package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Store drivers.
const (
	StoreAppwrite = "appwrite"
	StorePostgres = "postgres"
)

// Config holds all application configuration loaded from environment
// variables, built once at startup. Handlers never read the environment.
type Config struct {
	Port        int
	CORSOrigins []string

	Midtrans MidtransConfig
	Store    StoreConfig

	// AdminJWTSecret enables the admin simulate endpoint when set.
	AdminJWTSecret string
}

// MidtransConfig configures the Snap gateway.
type MidtransConfig struct {
	ServerKey  string
	Production bool
}

// StoreConfig selects and configures the profile store backend.
type StoreConfig struct {
	Driver      string
	DatabaseURL string // postgres

	// appwrite
	AppwriteEndpoint   string
	AppwriteProjectID  string
	AppwriteAPIKey     string
	AppwriteDatabaseID string
	ProfilesCollection string
}

// Load reads configuration from environment variables. Missing required
// settings fail here, before any network call is made.
func Load() (*Config, error) {
	port, _ := strconv.Atoi(getEnv("PORT", "4010"))

	serverKey := getEnv("MIDTRANS_SERVER_KEY", "")
	if serverKey == "" {
		return nil, fmt.Errorf("MIDTRANS_SERVER_KEY is required")
	}

	store := StoreConfig{
		Driver:             getEnv("STORE_DRIVER", StoreAppwrite),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		AppwriteEndpoint:   getEnv("APPWRITE_ENDPOINT", ""),
		AppwriteProjectID:  getEnv("APPWRITE_PROJECT_ID", ""),
		AppwriteAPIKey:     getEnv("APPWRITE_API_KEY", ""),
		AppwriteDatabaseID: getEnv("APPWRITE_DATABASE_ID", ""),
		ProfilesCollection: getEnv("APPWRITE_COLLECTION_USER_PROFILES", "user_profiles"),
	}

	switch store.Driver {
	case StoreAppwrite:
		if store.AppwriteEndpoint == "" {
			return nil, fmt.Errorf("APPWRITE_ENDPOINT is required")
		}
		if store.AppwriteProjectID == "" {
			return nil, fmt.Errorf("APPWRITE_PROJECT_ID is required")
		}
		if store.AppwriteAPIKey == "" {
			return nil, fmt.Errorf("APPWRITE_API_KEY is required")
		}
		if store.AppwriteDatabaseID == "" {
			return nil, fmt.Errorf("APPWRITE_DATABASE_ID is required")
		}
	case StorePostgres:
		if store.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", store.Driver)
	}

	origins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Port:        port,
		CORSOrigins: origins,
		Midtrans: MidtransConfig{
			ServerKey:  serverKey,
			Production: getEnv("MIDTRANS_ENV", "sandbox") == "production",
		},
		Store:          store,
		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
