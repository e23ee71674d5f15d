package geocoding

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeNominatim represents OpenStreetMap Nominatim geocoding provider.
	ProviderTypeNominatim ProviderType = "nominatim"
	// ProviderTypeMapQuest represents the Nominatim API hosted by MapQuest.
	ProviderTypeMapQuest ProviderType = "mapquest"
	// ProviderTypeGoogle represents Google Maps geocoding provider.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeVisicom represents Visicom Maps geocoding provider.
	ProviderTypeVisicom ProviderType = "visicom"
)

// ProviderConfig holds configuration for creating a geocoding adapter.
type ProviderConfig struct {
	Type      ProviderType // Type of provider to create
	APIKey    string       // API key (mapquest, google, visicom)
	BaseURL   string       // Endpoint override, e.g. a self-hosted Nominatim
	RateLimit int          // Requests per second, zero selects the provider default
	Logger    *slog.Logger // Logger for the provider
}

// NewAdapter creates a geocoding adapter based on the provided configuration.
// It applies the Factory pattern so the provider is resolved once, at startup.
//
// Supported provider types:
// - "nominatim": OpenStreetMap Nominatim API (free, no API key required)
// - "mapquest": MapQuest hosted Nominatim (requires API key)
// - "google": Google Maps Geocoding API (requires API key)
// - "visicom": Visicom Data API (requires API key)
//
// Returns an error if the provider type is unsupported or if a required API key is missing.
func NewAdapter(config ProviderConfig) (Adapter, error) {
	switch config.Type {
	case ProviderTypeNominatim:
		return NewNominatimAdapter(config.BaseURL), nil
	case ProviderTypeMapQuest:
		if config.APIKey == "" {
			return nil, errors.New("API key is required for MapQuest provider")
		}
		return NewMapQuestAdapter(config.BaseURL, config.APIKey), nil
	case ProviderTypeGoogle:
		if config.APIKey == "" {
			return nil, errors.New("API key is required for Google provider")
		}
		return NewGoogleAdapter(config.BaseURL, config.APIKey), nil
	case ProviderTypeVisicom:
		if config.APIKey == "" {
			return nil, errors.New("API key is required for Visicom provider")
		}
		return NewVisicomAdapter(config.BaseURL, config.APIKey), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// NewLimiter returns the request pacing for the configured provider. Nominatim's
// usage policy allows one request per second; Visicom and Google allow bursts.
func NewLimiter(config ProviderConfig) *rate.Limiter {
	limit := config.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit(config.Type)
		if config.Logger != nil {
			config.Logger.Debug("Rate limit not set, using provider default",
				"provider", config.Type, "value", limit)
		}
	}

	return rate.NewLimiter(rate.Limit(limit), limit)
}

func defaultRateLimit(providerType ProviderType) int {
	switch providerType {
	case ProviderTypeGoogle:
		return 50
	case ProviderTypeVisicom:
		return 5
	default:
		return 1
	}
}
