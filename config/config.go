package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Session tokens.
	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`

	// Verification codes. CodeStore is "redis" or "memory".
	CodeStore         string        `mapstructure:"CODE_STORE"`
	CodeTTL           time.Duration `mapstructure:"CODE_TTL"`
	CodeRetention     time.Duration `mapstructure:"CODE_RETENTION"`
	CodeSweepInterval time.Duration `mapstructure:"CODE_SWEEP_INTERVAL"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCodeDB   int    `mapstructure:"REDIS_CODE_DB"`

	// Outbound email. An empty SMTPHost logs messages instead of sending them.
	SMTPHost        string        `mapstructure:"SMTP_HOST"`
	SMTPPort        int           `mapstructure:"SMTP_PORT"`
	SMTPUser        string        `mapstructure:"SMTP_USER"`
	SMTPPassword    string        `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom        string        `mapstructure:"SMTP_FROM"`
	SMTPSendTimeout time.Duration `mapstructure:"SMTP_SEND_TIMEOUT"`
	VerifyLinkBase  string        `mapstructure:"VERIFY_LINK_BASE"`

	// File uploads. StorageProvider is "firebase" or "cloudinary".
	StorageProvider        string `mapstructure:"STORAGE_PROVIDER"`
	FirebaseServiceAccount string `mapstructure:"FIREBASE_SERVICE_ACCOUNT"`
	FirebaseBucket         string `mapstructure:"FIREBASE_BUCKET"`
	CloudinaryCloudName    string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey       string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret    string `mapstructure:"CLOUDINARY_API_SECRET"`
	UploadFolder           string `mapstructure:"UPLOAD_FOLDER"`
	MaxUploadMB            int64  `mapstructure:"MAX_UPLOAD_MB"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var AppConfig Config

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://localhost:5000",
	"http://localhost:5173",
	"http://localhost:5174",
}

// LoadConfig reads .env, config.yaml and the environment into AppConfig.
func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	v := viper.New()
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "portfolio")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "168h")
	v.SetDefault("CODE_STORE", "redis")
	v.SetDefault("CODE_TTL", "3m")
	v.SetDefault("CODE_RETENTION", "10m")
	v.SetDefault("CODE_SWEEP_INTERVAL", "1m")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CODE_DB", 2)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "")
	v.SetDefault("SMTP_SEND_TIMEOUT", "15s")
	v.SetDefault("VERIFY_LINK_BASE", "http://localhost:3000/verify-email")
	v.SetDefault("STORAGE_PROVIDER", "firebase")
	v.SetDefault("FIREBASE_SERVICE_ACCOUNT", "")
	v.SetDefault("FIREBASE_BUCKET", "")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("UPLOAD_FOLDER", "portfolio-website")
	v.SetDefault("MAX_UPLOAD_MB", 100)
	v.SetDefault("CORS_ALLOWED_ORIGINS", defaultOrigins)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.CodeStore {
	case "redis", "memory":
	default:
		return fmt.Errorf("CODE_STORE must be redis or memory, got %q", c.CodeStore)
	}
	switch c.StorageProvider {
	case "firebase", "cloudinary":
	default:
		return fmt.Errorf("STORAGE_PROVIDER must be firebase or cloudinary, got %q", c.StorageProvider)
	}
	if c.CodeTTL <= 0 {
		return fmt.Errorf("CODE_TTL must be positive")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if len(c.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	return nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
