package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment `yaml:"-"`

	// Server configuration
	ServerHost      string        `yaml:"server_host"`
	ServerPort      string        `yaml:"server_port" validate:"required,numeric"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`

	// Database configuration
	DBHost     string `yaml:"db_host" validate:"required"`
	DBPort     string `yaml:"db_port" validate:"required,numeric"`
	DBUser     string `yaml:"db_user" validate:"required"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name" validate:"required"`
	DBSSLMode  string `yaml:"db_ssl_mode" validate:"oneof=disable allow prefer require verify-ca verify-full"`

	// Redis configuration, used for the logout revocation list. Optional.
	RedisURL      string `yaml:"redis_url"`
	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db" validate:"gte=0"`

	// JWT / session cookie configuration
	JWTSecret    string   `yaml:"jwt_secret" validate:"required"`
	CookieSecure bool     `yaml:"cookie_secure"`
	CORSOrigins  []string `yaml:"cors_origins" validate:"min=1,dive,url"`

	// Picture storage. Uploads are disabled when S3Bucket is empty.
	S3Bucket    string `yaml:"s3_bucket"`
	S3Region    string `yaml:"s3_region"`
	S3PublicURL string `yaml:"s3_public_url" validate:"omitempty,url"`

	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
}

// Default returns a configuration suitable for local development.
func Default() *Config {
	return &Config{
		Environment:     Development,
		ServerHost:      "0.0.0.0",
		ServerPort:      "8000",
		ShutdownTimeout: 10 * time.Second,
		DBHost:          "localhost",
		DBPort:          "5432",
		DBUser:          "postgres",
		DBName:          "recipeshare",
		DBSSLMode:       "disable",
		CORSOrigins:     []string{"http://localhost:3000"},
		LogLevel:        "info",
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// (CONFIG_FILE), environment variables and, outside CI, docker secrets.
func LoadConfig() (*Config, error) {
	cfg := Default()
	cfg.Environment = GetEnvironment()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment configuration: %w", err)
	}

	if cfg.Environment.UsesSecrets() {
		loadSecrets(cfg, secretsDir())
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether any redis endpoint has been configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// S3Enabled reports whether picture uploads are configured.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func loadEnv(cfg *Config) error {
	strs := map[string]*string{
		"SERVER_HOST":    &cfg.ServerHost,
		"SERVER_PORT":    &cfg.ServerPort,
		"DB_HOST":        &cfg.DBHost,
		"DB_PORT":        &cfg.DBPort,
		"DB_USER":        &cfg.DBUser,
		"DB_PASSWORD":    &cfg.DBPassword,
		"DB_NAME":        &cfg.DBName,
		"DB_SSL_MODE":    &cfg.DBSSLMode,
		"REDIS_URL":      &cfg.RedisURL,
		"REDIS_HOST":     &cfg.RedisHost,
		"REDIS_PORT":     &cfg.RedisPort,
		"REDIS_PASSWORD": &cfg.RedisPassword,
		"JWT_SECRET":     &cfg.JWTSecret,
		"S3_BUCKET_NAME": &cfg.S3Bucket,
		"AWS_REGION":     &cfg.S3Region,
		"S3_PUBLIC_URL":  &cfg.S3PublicURL,
		"LOG_LEVEL":      &cfg.LogLevel,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: "REDIS_DB", Message: "must be an integer"}
		}
		cfg.RedisDB = n
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ValidationError{Field: "SHUTDOWN_TIMEOUT", Message: "must be a duration"}
		}
		cfg.ShutdownTimeout = d
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return ValidationError{Field: "COOKIE_SECURE", Message: "must be a boolean"}
		}
		cfg.CookieSecure = b
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	return nil
}

// loadSecrets overrides sensitive values with docker secrets when the secret files exist.
func loadSecrets(cfg *Config, dir string) {
	secrets := map[string]*string{
		"db_user":        &cfg.DBUser,
		"db_password":    &cfg.DBPassword,
		"jwt_secret":     &cfg.JWTSecret,
		"redis_password": &cfg.RedisPassword,
	}
	for name, dst := range secrets {
		if v := readSecret(dir, name); v != "" {
			*dst = v
		}
	}
}

func secretsDir() string {
	if dir := os.Getenv("SECRETS_DIR"); dir != "" {
		return dir
	}
	return "/run/secrets"
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
