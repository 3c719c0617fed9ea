package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// App
	AppEnv string
	Port   string

	// Persistence: sqlite by default, postgres when DatabaseURL is set.
	DBPath      string
	DatabaseURL string

	// External providers
	ViaCEPBaseURL      string
	NominatimBaseURL   string
	NominatimUserAgent string

	// Remote distance-calculation service; empty means compute in-process.
	DistanceServiceURL string

	// Per-provider call timeouts
	LookupTimeout   time.Duration
	GeocodeTimeout  time.Duration
	DistanceTimeout time.Duration
}

// Load reads configuration from the environment, falling back to defaults.
// A .env file is honored when present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8080"),

		DBPath:      getEnv("DB_PATH", "data/queries.db"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		ViaCEPBaseURL:      getEnv("VIACEP_BASE_URL", "https://viacep.com.br"),
		NominatimBaseURL:   getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: getEnv("NOMINATIM_USER_AGENT", "cep-distance-service/1.0"),

		DistanceServiceURL: getEnv("DISTANCE_SERVICE_URL", ""),

		LookupTimeout:   time.Duration(getEnvAsInt("LOOKUP_TIMEOUT_SECONDS", 10)) * time.Second,
		GeocodeTimeout:  time.Duration(getEnvAsInt("GEOCODE_TIMEOUT_SECONDS", 15)) * time.Second,
		DistanceTimeout: time.Duration(getEnvAsInt("DISTANCE_TIMEOUT_SECONDS", 15)) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
