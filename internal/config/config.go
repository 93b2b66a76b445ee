package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Storage    StorageConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	AccessExpiration  string
	RefreshExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	FrontendURL string
}

// AttendanceConfig holds the attendance business rules: the geofence around
// the campus reference point, the working day boundaries, and the lateness /
// early-leave tolerances.
type AttendanceConfig struct {
	WorkStart                  WorkTime // wall-clock start of the working day
	WorkEnd                    WorkTime // wall-clock end of the working day
	LateToleranceMinutes       int
	EarlyLeaveToleranceMinutes int
	GeofenceLatitude           float64
	GeofenceLongitude          float64
	GeofenceRadiusMeters       float64
}

// StorageConfig holds file storage configuration
type StorageConfig struct {
	BasePath  string
	BaseURL   string
	ReportDir string
}

// WorkTime is a wall-clock hour:minute pair.
type WorkTime struct {
	Hour   int
	Minute int
}

// On anchors the work time to the calendar day of t, in t's location.
func (w WorkTime) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), w.Hour, w.Minute, 0, 0, t.Location())
}

func parseWorkTime(s string) (WorkTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return WorkTime{}, fmt.Errorf("invalid work time %q: %w", s, err)
	}
	return WorkTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "e_presensi"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3001"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
	}

	// Attendance configuration
	workStart, err := parseWorkTime(getEnv("WORK_START", "08:00"))
	if err != nil {
		return nil, err
	}
	workEnd, err := parseWorkTime(getEnv("WORK_END", "17:00"))
	if err != nil {
		return nil, err
	}
	lateTolerance, err := strconv.Atoi(getEnv("LATE_TOLERANCE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_TOLERANCE_MINUTES: %w", err)
	}
	earlyTolerance, err := strconv.Atoi(getEnv("EARLY_LEAVE_TOLERANCE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid EARLY_LEAVE_TOLERANCE_MINUTES: %w", err)
	}
	geofenceLat, err := strconv.ParseFloat(getEnv("GEOFENCE_LATITUDE", "-0.2316"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_LATITUDE: %w", err)
	}
	geofenceLon, err := strconv.ParseFloat(getEnv("GEOFENCE_LONGITUDE", "100.6328"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_LONGITUDE: %w", err)
	}
	geofenceRadius, err := strconv.ParseFloat(getEnv("GEOFENCE_RADIUS", "500"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_RADIUS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		WorkStart:                  workStart,
		WorkEnd:                    workEnd,
		LateToleranceMinutes:       lateTolerance,
		EarlyLeaveToleranceMinutes: earlyTolerance,
		GeofenceLatitude:           geofenceLat,
		GeofenceLongitude:          geofenceLon,
		GeofenceRadiusMeters:       geofenceRadius,
	}

	// Storage configuration
	config.Storage = StorageConfig{
		BasePath:  getEnv("STORAGE_BASE_PATH", "uploads"),
		BaseURL:   getEnv("STORAGE_BASE_URL", "http://localhost:3000/uploads"),
		ReportDir: getEnv("REPORT_DIR", "reports"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
