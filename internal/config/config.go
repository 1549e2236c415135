package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/screenbattle/internal/db"
)

const (
	WeekModeFixed = "fixed"
	WeekModeClock = "clock"
)

type Config struct {
	Port            string
	StoreDriver     string
	DataPath        string
	SQLitePath      string
	StaticDir       string
	WriteDelay      time.Duration
	WeekMode        string
	CurrentWeek     int
	Location        *time.Location
	DefaultLanguage string
	LogLevel        string
	Environment     string
	CORSOrigins     string
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	config := Config{
		Port:            getEnv("PORT", "3000"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", db.DriverFile)),
		DataPath:        getEnv("DATA_PATH", "db.json"),
		SQLitePath:      getEnv("SQLITE_PATH", "screenbattle.db"),
		StaticDir:       getEnv("STATIC_DIR", "public"),
		WeekMode:        strings.ToLower(getEnv("WEEK_MODE", WeekModeFixed)),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "pt"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Environment:     getEnv("APP_ENV", "production"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
	}

	switch config.StoreDriver {
	case db.DriverFile, db.DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", config.StoreDriver)
	}

	switch config.WeekMode {
	case WeekModeFixed, WeekModeClock:
	default:
		return Config{}, fmt.Errorf("unsupported WEEK_MODE %q", config.WeekMode)
	}

	port, err := strconv.Atoi(config.Port)
	if err != nil || port < 1 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q", config.Port)
	}

	delay, err := time.ParseDuration(getEnv("WRITE_DELAY", "10ms"))
	if err != nil || delay < 0 {
		return Config{}, fmt.Errorf("invalid WRITE_DELAY %q", os.Getenv("WRITE_DELAY"))
	}
	config.WriteDelay = delay

	currentWeek, err := strconv.Atoi(getEnv("CURRENT_WEEK", "1"))
	if err != nil || currentWeek < 1 {
		return Config{}, fmt.Errorf("invalid CURRENT_WEEK %q", os.Getenv("CURRENT_WEEK"))
	}
	config.CurrentWeek = currentWeek

	location, err := time.LoadLocation(getEnv("TZ", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TZ %q: %w", os.Getenv("TZ"), err)
	}
	config.Location = location

	return config, nil
}

func (config Config) IsDevelopment() bool {
	return strings.EqualFold(config.Environment, "development")
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
