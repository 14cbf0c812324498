package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backends.
const (
	StoreBadger   = "badger"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Addr            string
	Store           string
	DBPath          string
	DatabaseURL     string
	JWTKey          string
	StrictAuth      bool
	ScopeComments   bool
	BackupDir       string
	ShutdownTimeout time.Duration
}

func Load() Config {
	addr := envString("BLOG_ADDR", "")
	if addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		} else {
			addr = ":8080"
		}
	}
	return Config{
		Addr:            addr,
		Store:           envString("BLOG_STORE", StoreBadger),
		DBPath:          envString("BLOG_DB_PATH", "data/badger"),
		DatabaseURL:     envString("BLOG_DATABASE_URL", ""),
		JWTKey:          os.Getenv("JWT_KEY"),
		StrictAuth:      envBool("BLOG_STRICT_AUTH", false),
		ScopeComments:   envBool("BLOG_SCOPE_LISTING_COMMENTS", false),
		BackupDir:       envString("BLOG_BACKUP_DIR", "data/backups"),
		ShutdownTimeout: envDuration("BLOG_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Store {
	case StoreBadger:
		if c.DBPath == "" {
			return fmt.Errorf("BLOG_DB_PATH is required for the %s store", c.Store)
		}
	case StoreSQLite, StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("BLOG_DATABASE_URL is required for the %s store", c.Store)
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
