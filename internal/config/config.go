package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	S3       S3Config
	Log      LogConfig
	CORS     CORSConfig
	Pipeline PipelineConfig
	Remote   RemoteConfig
	Prompts  PromptsConfig
	Redis    RedisConfig
	Settings SettingsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        string        `mapstructure:"port"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	Environment string        `mapstructure:"environment"`
	// APIKeyHash is a bcrypt hash of the key required on mutating routes.
	// Empty disables the check.
	APIKeyHash string `mapstructure:"api_key_hash"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for uploaded documents.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UploadPrefix  string `mapstructure:"upload_prefix"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PipelineConfig holds document pipeline and status broadcast settings.
type PipelineConfig struct {
	// Concurrency bounds concurrently running pipelines; 0 means unbounded.
	Concurrency           int           `mapstructure:"concurrency"`
	CallTimeout           time.Duration `mapstructure:"call_timeout"`
	BroadcastInterval     time.Duration `mapstructure:"broadcast_interval"`
	BroadcastWriteTimeout time.Duration `mapstructure:"broadcast_write_timeout"`
	ShutdownGrace         time.Duration `mapstructure:"shutdown_grace"`
}

// RemoteConfig holds settings for the remote document understanding API.
type RemoteConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	APIVersion        string        `mapstructure:"api_version"`
	IdentityURL       string        `mapstructure:"identity_url"`
	ClientID          string        `mapstructure:"client_id"`
	ClientSecret      string        `mapstructure:"client_secret"`
	Scope             string        `mapstructure:"scope"`
	BearerToken       string        `mapstructure:"bearer_token"`
	HTTPTimeout       time.Duration `mapstructure:"http_timeout"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	OperationMaxWait  time.Duration `mapstructure:"operation_max_wait"`
	ValidationCatalog string        `mapstructure:"validation_catalog"`
}

// PromptsConfig holds prompt bundle settings.
type PromptsConfig struct {
	Dir      string        `mapstructure:"dir"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// RedisConfig holds Redis connection settings. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// SettingsConfig holds where processing settings are persisted.
type SettingsConfig struct {
	File string `mapstructure:"file"`
}

// Load reads configuration from environment variables with the DOCFLOW_ prefix.
// A .env file in the working directory, if present, is loaded first without
// overriding variables that are already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("DOCFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.api_key_hash", "")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docflow")
	v.SetDefault("db.password", "docflow_secret")
	v.SetDefault("db.name", "docflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docflow-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.upload_prefix", "uploads/")
	v.SetDefault("s3.max_file_size_mb", 50)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5500,http://127.0.0.1:5500")

	// Pipeline defaults
	v.SetDefault("pipeline.concurrency", 8)
	v.SetDefault("pipeline.call_timeout", "10m")
	v.SetDefault("pipeline.broadcast_interval", "2s")
	v.SetDefault("pipeline.broadcast_write_timeout", "5s")
	v.SetDefault("pipeline.shutdown_grace", "30s")

	// Remote API defaults
	v.SetDefault("remote.base_url", "")
	v.SetDefault("remote.api_version", "1.1")
	v.SetDefault("remote.identity_url", "")
	v.SetDefault("remote.client_id", "")
	v.SetDefault("remote.client_secret", "")
	v.SetDefault("remote.scope", "Du.Digitization.Api Du.Classification.Api Du.Extraction.Api Du.Validation.Api")
	v.SetDefault("remote.bearer_token", "")
	v.SetDefault("remote.http_timeout", "300s")
	v.SetDefault("remote.poll_interval", "2s")
	v.SetDefault("remote.operation_max_wait", "10m")
	v.SetDefault("remote.validation_catalog", "default_du_actions")

	v.SetDefault("prompts.dir", "generative_prompts")
	v.SetDefault("prompts.cache_ttl", "10m")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "docflow:")

	v.SetDefault("settings.file", "cache/settings.json")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                      "DOCFLOW_SERVER_PORT",
		"server.read_timeout":              "DOCFLOW_SERVER_READ_TIMEOUT",
		"server.environment":               "DOCFLOW_SERVER_ENVIRONMENT",
		"server.api_key_hash":              "DOCFLOW_SERVER_API_KEY_HASH",
		"db.host":                          "DOCFLOW_DB_HOST",
		"db.port":                          "DOCFLOW_DB_PORT",
		"db.user":                          "DOCFLOW_DB_USER",
		"db.password":                      "DOCFLOW_DB_PASSWORD",
		"db.name":                          "DOCFLOW_DB_NAME",
		"db.sslmode":                       "DOCFLOW_DB_SSLMODE",
		"db.max_open":                      "DOCFLOW_DB_MAX_OPEN",
		"db.max_idle":                      "DOCFLOW_DB_MAX_IDLE",
		"s3.region":                        "DOCFLOW_S3_REGION",
		"s3.bucket":                        "DOCFLOW_S3_BUCKET",
		"s3.endpoint":                      "DOCFLOW_S3_ENDPOINT",
		"s3.access_key":                    "DOCFLOW_S3_ACCESS_KEY",
		"s3.secret_key":                    "DOCFLOW_S3_SECRET_KEY",
		"s3.upload_prefix":                 "DOCFLOW_S3_UPLOAD_PREFIX",
		"s3.max_file_size_mb":              "DOCFLOW_S3_MAX_FILE_SIZE_MB",
		"log.level":                        "DOCFLOW_LOG_LEVEL",
		"log.format":                       "DOCFLOW_LOG_FORMAT",
		"cors.allowed_origins":             "DOCFLOW_CORS_ALLOWED_ORIGINS",
		"pipeline.concurrency":             "DOCFLOW_PIPELINE_CONCURRENCY",
		"pipeline.call_timeout":            "DOCFLOW_PIPELINE_CALL_TIMEOUT",
		"pipeline.broadcast_interval":      "DOCFLOW_PIPELINE_BROADCAST_INTERVAL",
		"pipeline.broadcast_write_timeout": "DOCFLOW_PIPELINE_BROADCAST_WRITE_TIMEOUT",
		"pipeline.shutdown_grace":          "DOCFLOW_PIPELINE_SHUTDOWN_GRACE",
		"remote.base_url":                  "DOCFLOW_REMOTE_BASE_URL",
		"remote.api_version":               "DOCFLOW_REMOTE_API_VERSION",
		"remote.identity_url":              "DOCFLOW_REMOTE_IDENTITY_URL",
		"remote.client_id":                 "DOCFLOW_REMOTE_CLIENT_ID",
		"remote.client_secret":             "DOCFLOW_REMOTE_CLIENT_SECRET",
		"remote.scope":                     "DOCFLOW_REMOTE_SCOPE",
		"remote.bearer_token":              "DOCFLOW_REMOTE_BEARER_TOKEN",
		"remote.http_timeout":              "DOCFLOW_REMOTE_HTTP_TIMEOUT",
		"remote.poll_interval":             "DOCFLOW_REMOTE_POLL_INTERVAL",
		"remote.operation_max_wait":        "DOCFLOW_REMOTE_OPERATION_MAX_WAIT",
		"remote.validation_catalog":        "DOCFLOW_REMOTE_VALIDATION_CATALOG",
		"prompts.dir":                      "DOCFLOW_PROMPTS_DIR",
		"prompts.cache_ttl":                "DOCFLOW_PROMPTS_CACHE_TTL",
		"redis.addr":                       "DOCFLOW_REDIS_ADDR",
		"redis.password":                   "DOCFLOW_REDIS_PASSWORD",
		"redis.db":                         "DOCFLOW_REDIS_DB",
		"redis.prefix":                     "DOCFLOW_REDIS_PREFIX",
		"settings.file":                    "DOCFLOW_SETTINGS_FILE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCFLOW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:        serverPort,
		ReadTimeout: v.GetDuration("server.read_timeout"),
		Environment: v.GetString("server.environment"),
		APIKeyHash:  v.GetString("server.api_key_hash"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		UploadPrefix:  v.GetString("s3.upload_prefix"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCSV(v.GetString("cors.allowed_origins")),
	}
	cfg.Pipeline = PipelineConfig{
		Concurrency:           v.GetInt("pipeline.concurrency"),
		CallTimeout:           v.GetDuration("pipeline.call_timeout"),
		BroadcastInterval:     v.GetDuration("pipeline.broadcast_interval"),
		BroadcastWriteTimeout: v.GetDuration("pipeline.broadcast_write_timeout"),
		ShutdownGrace:         v.GetDuration("pipeline.shutdown_grace"),
	}
	cfg.Remote = RemoteConfig{
		BaseURL:           strings.TrimRight(v.GetString("remote.base_url"), "/"),
		APIVersion:        v.GetString("remote.api_version"),
		IdentityURL:       v.GetString("remote.identity_url"),
		ClientID:          v.GetString("remote.client_id"),
		ClientSecret:      v.GetString("remote.client_secret"),
		Scope:             v.GetString("remote.scope"),
		BearerToken:       v.GetString("remote.bearer_token"),
		HTTPTimeout:       v.GetDuration("remote.http_timeout"),
		PollInterval:      v.GetDuration("remote.poll_interval"),
		OperationMaxWait:  v.GetDuration("remote.operation_max_wait"),
		ValidationCatalog: v.GetString("remote.validation_catalog"),
	}
	cfg.Prompts = PromptsConfig{
		Dir:      v.GetString("prompts.dir"),
		CacheTTL: v.GetDuration("prompts.cache_ttl"),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
		Prefix:   v.GetString("redis.prefix"),
	}
	cfg.Settings = SettingsConfig{
		File: v.GetString("settings.file"),
	}

	if cfg.Pipeline.Concurrency < 0 {
		return nil, fmt.Errorf("pipeline.concurrency must be >= 0, got %d", cfg.Pipeline.Concurrency)
	}
	if cfg.Pipeline.BroadcastInterval <= 0 {
		return nil, fmt.Errorf("pipeline.broadcast_interval must be positive, got %s", cfg.Pipeline.BroadcastInterval)
	}

	return cfg, nil
}

// splitCSV parses a comma-separated list, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
