package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	S3       S3Config
	LLM      LLMConfig
	Pipeline PipelineConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
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

// S3Config holds AWS S3 settings for the claim document archive.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LLMConfig holds settings for the chat-completion collaborator.
type LLMConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// PipelineConfig holds settings for the claim processing pipeline.
type PipelineConfig struct {
	ClassifyConcurrency int `mapstructure:"classify_concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the CLAIMPROC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLAIMPROC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "claimproc")
	v.SetDefault("db.password", "claimproc_secret")
	v.SetDefault("db.name", "claimproc_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "claimproc-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// LLM defaults
	v.SetDefault("llm.provider", "cerebras")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.default_model", "gpt-oss-120b")
	v.SetDefault("llm.timeout_secs", 60)

	// Pipeline defaults
	v.SetDefault("pipeline.classify_concurrency", 5)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "CLAIMPROC_SERVER_PORT",
		"server.read_timeout":           "CLAIMPROC_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "CLAIMPROC_SERVER_WRITE_TIMEOUT",
		"server.environment":            "CLAIMPROC_SERVER_ENVIRONMENT",
		"db.host":                       "CLAIMPROC_DB_HOST",
		"db.port":                       "CLAIMPROC_DB_PORT",
		"db.user":                       "CLAIMPROC_DB_USER",
		"db.password":                   "CLAIMPROC_DB_PASSWORD",
		"db.name":                       "CLAIMPROC_DB_NAME",
		"db.sslmode":                    "CLAIMPROC_DB_SSLMODE",
		"db.max_open":                   "CLAIMPROC_DB_MAX_OPEN",
		"db.max_idle":                   "CLAIMPROC_DB_MAX_IDLE",
		"s3.region":                     "CLAIMPROC_S3_REGION",
		"s3.bucket":                     "CLAIMPROC_S3_BUCKET",
		"s3.endpoint":                   "CLAIMPROC_S3_ENDPOINT",
		"s3.access_key":                 "CLAIMPROC_S3_ACCESS_KEY",
		"s3.secret_key":                 "CLAIMPROC_S3_SECRET_KEY",
		"s3.max_file_size_mb":           "CLAIMPROC_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":             "CLAIMPROC_S3_PRESIGN_EXPIRY",
		"llm.provider":                  "CLAIMPROC_LLM_PROVIDER",
		"llm.api_key":                   "CLAIMPROC_LLM_API_KEY",
		"llm.default_model":             "CLAIMPROC_LLM_DEFAULT_MODEL",
		"llm.timeout_secs":              "CLAIMPROC_LLM_TIMEOUT_SECS",
		"pipeline.classify_concurrency": "CLAIMPROC_PIPELINE_CLASSIFY_CONCURRENCY",
		"cors.allowed_origins":          "CLAIMPROC_CORS_ALLOWED_ORIGINS",
		"log.level":                     "CLAIMPROC_LOG_LEVEL",
		"log.format":                    "CLAIMPROC_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CLAIMPROC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CLAIMPROC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
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
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.LLM = LLMConfig{
		Provider:     v.GetString("llm.provider"),
		APIKey:       v.GetString("llm.api_key"),
		DefaultModel: v.GetString("llm.default_model"),
		TimeoutSecs:  v.GetInt("llm.timeout_secs"),
	}
	cfg.Pipeline = PipelineConfig{
		ClassifyConcurrency: v.GetInt("pipeline.classify_concurrency"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
