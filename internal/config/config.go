package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/joho/godotenv"
)

// Config holds the configuration settings for a geocoding run.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - MetricsPort: The port of the monitoring server, zero disables it.
// - ProviderType: The geocoding provider to use (nominatim, mapquest, google, visicom).
// - APIKey: The API key of the provider (required for mapquest, google and visicom).
// - RateLimit: Requests per second sent to the provider, zero selects the provider default.
// - Timeout: Per request HTTP timeout.
// - AddrPrefix: Text prepended to every address before it is geocoded.
// - Fields: Normalized headers holding feature id and coordinates.
// - Columns: Header labels of the output columns.
// - Database: Configuration settings for the PostgreSQL table store.
type Config struct {
	Env          string                  `yaml:"env"`
	MetricsPort  int                     `yaml:"metrics.port"`
	ProviderType string                  `yaml:"provider.type"`
	APIKey       string                  `yaml:"provider.api_key"`
	RateLimit    int                     `yaml:"provider.rate_limit"`
	Timeout      time.Duration           `yaml:"provider.timeout"`
	AddrPrefix   string                  `yaml:"addr_prefix"`
	Fields       models.FieldMapping     `yaml:"fields"`
	Columns      models.CanonicalColumns `yaml:"columns"`
	Database     PostgresConfig          `yaml:"postgres"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`                        // Host is the database server address.
	Port     string `yaml:"port"     env-default:"5432"` // Port is the database server port.
	User     string `yaml:"user"`                        // User is the database user.
	Password string `yaml:"password"`                    // Password is the database user's password.
	Name     string `yaml:"db_name"`                     // Name is the name of the database.
}

// DSN builds a postgres connection URL from the configuration.
func (p PostgresConfig) DSN() string {
	port := p.Port
	if port == "" {
		port = "5432"
	}
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   net.JoinHostPort(p.Host, port),
		Path:   p.Name,
	}

	return dsn.String()
}

// MustLoad loads the configuration from the environment (and an optional .env file).
func MustLoad() *Config {
	_ = godotenv.Load()

	metricsPort, err := strconv.Atoi(setDefaultEnv("GEOSHEET_METRICS_PORT", "0"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	rateLimit, err := strconv.Atoi(setDefaultEnv("GEOSHEET_RATE_LIMIT", "0"))
	if err != nil || rateLimit < 0 {
		panic("failed to parse rate limit from configuration, must be a non-negative integer")
	}

	timeout, err := time.ParseDuration(setDefaultEnv("GEOSHEET_TIMEOUT", "10s"))
	if err != nil {
		panic("failed to parse request timeout from configuration")
	}

	return &Config{
		Env:          setDefaultEnv("GEOSHEET_ENV", "production"),
		MetricsPort:  metricsPort,
		ProviderType: setDefaultEnv("GEOSHEET_PROVIDER_TYPE", "nominatim"),
		APIKey:       os.Getenv("GEOSHEET_PROVIDER_KEY"),
		RateLimit:    rateLimit,
		Timeout:      timeout,
		AddrPrefix:   os.Getenv("GEOSHEET_ADDRESS_PREFIX"),
		Fields: models.FieldMapping{
			ID:        setDefaultEnv("GEOSHEET_FIELD_ID", "id"),
			Latitude:  setDefaultEnv("GEOSHEET_FIELD_LAT", "latitude"),
			Longitude: setDefaultEnv("GEOSHEET_FIELD_LON", "longitude"),
		},
		Columns: models.CanonicalColumns{
			Longitude: setDefaultEnv("GEOSHEET_COLUMN_LONGITUDE", models.DefaultLongitudeColumn),
			Latitude:  setDefaultEnv("GEOSHEET_COLUMN_LATITUDE", models.DefaultLatitudeColumn),
			Accuracy:  setDefaultEnv("GEOSHEET_COLUMN_ACCURACY", models.DefaultAccuracyColumn),
		},
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

// Validate checks the values MustLoad cannot reject on its own.
func (c *Config) Validate() error {
	if c.Columns.Longitude == "" || c.Columns.Latitude == "" || c.Columns.Accuracy == "" {
		return fmt.Errorf("output column labels must not be empty: %+v", c.Columns)
	}
	if c.Columns.Longitude == c.Columns.Latitude ||
		c.Columns.Longitude == c.Columns.Accuracy ||
		c.Columns.Latitude == c.Columns.Accuracy {
		return fmt.Errorf("output column labels must be distinct: %+v", c.Columns)
	}

	return nil
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
