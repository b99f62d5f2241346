package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Store drivers for meal plan persistence.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Catalog  CatalogConfig
	S3       S3Config
	Store    StoreConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	CORS     CORSConfig
	Static   StaticConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// CatalogConfig lists the recipe catalogue sources, loaded in order.
type CatalogConfig struct {
	Paths []string
}

// S3Config holds AWS S3 configuration for catalogue files.
type S3Config struct {
	Enabled         bool
	Bucket          string
	Region          string
	Prefix          string // Key prefix within bucket (e.g., "catalog/")
	Endpoint        string // S3-compatible endpoint, empty for AWS
	AccessKeyID     string
	SecretAccessKey string
}

// StoreConfig selects the meal plan store backend.
type StoreConfig struct {
	Driver string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// MongoConfig holds MongoDB configuration.
type MongoConfig struct {
	URI      string
	Database string
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	AllowedOrigin string
}

// StaticConfig points at the built frontend, if it should be served.
type StaticConfig struct {
	Dir string
}

// Load loads configuration from environment variables and, when CONFIG_FILE is
// set, from that file. Environment variables take precedence.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Catalog: CatalogConfig{
			Paths: stringList(v, "catalog.paths"),
		},
		S3: S3Config{
			Enabled:         v.GetBool("s3.enabled"),
			Bucket:          v.GetString("s3.bucket"),
			Region:          v.GetString("s3.region"),
			Prefix:          v.GetString("s3.prefix"),
			Endpoint:        v.GetString("s3.endpoint"),
			AccessKeyID:     v.GetString("s3.access_key_id"),
			SecretAccessKey: v.GetString("s3.secret_access_key"),
		},
		Store: StoreConfig{
			Driver: v.GetString("store.driver"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			Database:        v.GetString("db.name"),
			MaxConnections:  v.GetInt("db.max_connections"),
			MinConnections:  v.GetInt("db.min_connections"),
			MaxConnLifetime: v.GetInt("db.max_conn_lifetime"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("mongo.uri"),
			Database: v.GetString("mongo.database"),
		},
		CORS: CORSConfig{
			AllowedOrigin: v.GetString("cors.allowed_origin"),
		},
		Static: StaticConfig{
			Dir: v.GetString("static.dir"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("catalog.paths", "data/recipes.json")

	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.prefix", "catalog/")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")

	v.SetDefault("store.driver", StoreMemory)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "quickbite")
	v.SetDefault("db.max_connections", 25)
	v.SetDefault("db.min_connections", 5)
	v.SetDefault("db.max_conn_lifetime", 300)

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "quickbite")

	v.SetDefault("cors.allowed_origin", "*")

	v.SetDefault("static.dir", "")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if len(c.Catalog.Paths) == 0 {
		return fmt.Errorf("at least one catalog path is required")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	case StoreMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo uri is required when store driver is mongo")
		}
		if c.Mongo.Database == "" {
			return fmt.Errorf("mongo database is required when store driver is mongo")
		}
	default:
		return fmt.Errorf("invalid store driver: %s (must be memory, postgres, or mongo)", c.Store.Driver)
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// stringList reads key either as a YAML list from the config file or as a
// comma-separated string from the environment.
func stringList(v *viper.Viper, key string) []string {
	if value, ok := v.Get(key).(string); ok {
		return splitList(value)
	}
	var out []string
	for _, item := range v.GetStringSlice(key) {
		out = append(out, splitList(item)...)
	}
	return out
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
