package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	VideoTokenSecret          string
	Database                  DatabaseConfig
	Redis                     RedisConfig
	Mailer                    MailerConfig
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
	VerificationCodeExpiry    int
	VideoTokenExpiryMinutes   int
	VideoLinkExpiryMinutes    int
	AppURL                    string
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// RedisConfig holds connection details for the slot-lock Redis instance.
// An empty Addr disables distributed locking; the database uniqueness
// guard on the booking slot remains in force either way.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MailerConfig holds email service configuration
type MailerConfig struct {
	Transport   string
	DefaultFrom string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "mindflow"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	redisConfig := RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Load mailer configuration
	mailerConfig := MailerConfig{
		Transport:   getEnv("MAILER_TRANSPORT", "console"),
		DefaultFrom: getEnv("MAILER_DEFAULT_FROM", "no-reply@mindflow.health"),
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	verificationCodeExpiry, err := strconv.Atoi(getEnv("VERIFICATION_CODE_EXPIRY_MINUTES", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid VERIFICATION_CODE_EXPIRY_MINUTES: %w", err)
	}

	videoTokenExpiry, err := strconv.Atoi(getEnv("VIDEO_TOKEN_EXPIRY_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid VIDEO_TOKEN_EXPIRY_MINUTES: %w", err)
	}

	videoLinkExpiry, err := strconv.Atoi(getEnv("VIDEO_LINK_EXPIRY_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid VIDEO_LINK_EXPIRY_MINUTES: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:                      getEnv("PORT", "3001"),
		Origin:                    getEnv("ORIGIN", "http://localhost:3000"),
		Environment:               getEnv("APP_ENV", "development"),
		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		VideoTokenSecret:          getEnv("VIDEO_TOKEN_SECRET", "default_video_token_secret"),
		Database:                  dbConfig,
		Redis:                     redisConfig,
		Mailer:                    mailerConfig,
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
		VerificationCodeExpiry:    verificationCodeExpiry,
		VideoTokenExpiryMinutes:   videoTokenExpiry,
		VideoLinkExpiryMinutes:    videoLinkExpiry,
		AppURL:                    getEnv("APP_URL", "http://localhost:3001"),
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
