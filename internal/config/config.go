package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all worker configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Storage    StorageConfig
	Detector   DetectorConfig
	Recognizer RecognizerConfig
	Worker     WorkerConfig
	Log        LogConfig
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

// StorageConfig holds document store (S3) settings.
type StorageConfig struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// DetectorConfig holds settings for the primary (layout-model) table
// detection strategy.
type DetectorConfig struct {
	LayoutEndpoint string `mapstructure:"layout_endpoint"`
	TimeoutSecs    int    `mapstructure:"timeout_secs"`
}

// RecognizerConfig holds settings for the vision recognition model.
type RecognizerConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	Concurrency int    `mapstructure:"concurrency"`
}

// WorkerConfig holds pipeline-level settings. Secret, when set, is the shared
// X-Worker-Secret value required on POST /process.
type WorkerConfig struct {
	Secret              string `mapstructure:"secret"`
	PipelineTimeoutSecs int    `mapstructure:"pipeline_timeout_secs"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the POSYANDU_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POSYANDU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "posyandu")
	v.SetDefault("db.password", "posyandu_secret")
	v.SetDefault("db.name", "posyandu_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Storage defaults
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "ocr-documents")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")

	// Detector defaults
	v.SetDefault("detector.layout_endpoint", "")
	v.SetDefault("detector.timeout_secs", 60)

	// Recognizer defaults
	v.SetDefault("recognizer.api_key", "")
	v.SetDefault("recognizer.model", "gemini-2.5-flash-preview-04-17")
	v.SetDefault("recognizer.timeout_secs", 60)
	v.SetDefault("recognizer.concurrency", 5)

	// Worker defaults
	v.SetDefault("worker.secret", "")
	v.SetDefault("worker.pipeline_timeout_secs", 600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
