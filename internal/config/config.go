package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the barycentre service.
//
// Fields:
// - Env: The current environment (local, development, production).
// - Port: The port for the application server.
// - MonitoringPort: The port for the health/metrics server.
// - BaseURL: The absolute page URL used when building share links.
// - SessionTTL: How long an idle session's address book is kept.
// - Provider: Geocoding provider selection and credentials.
// - Map: Base-layer settings handed to the map renderer.
type Config struct {
	Env            string         `mapstructure:"env"`
	Port           int            `mapstructure:"port"`
	MonitoringPort int            `mapstructure:"monitoring_port"`
	BaseURL        string         `mapstructure:"base_url"`
	SessionTTL     time.Duration  `mapstructure:"session_ttl"`
	Provider       ProviderConfig `mapstructure:"provider"`
	Map            MapConfig      `mapstructure:"map"`
}

// ProviderConfig selects the geocoding provider.
type ProviderConfig struct {
	Type      string `mapstructure:"type"`       // nominatim (default), photon, google
	APIKey    string `mapstructure:"api_key"`    // The API key for accessing external services (Google only).
	RateLimit int    `mapstructure:"rate_limit"` // Requests per second towards the provider.
}

// MapConfig holds base-layer settings for the map renderer. The defaults
// point at the public OSM tile server with the view centred on Paris.
type MapConfig struct {
	TileURL     string  `mapstructure:"tile_url"`
	Attribution string  `mapstructure:"attribution"`
	CenterLat   float64 `mapstructure:"center_lat"`
	CenterLon   float64 `mapstructure:"center_lon"`
	Zoom        int     `mapstructure:"zoom"`
}

// MustLoad loads the configuration from the environment (prefix BARYCENTRE_,
// dots replaced by underscores, .env honoured) and an optional yaml file
// (./barycentre.yaml, or the path in BARYCENTRE_CONFIG). It panics when the
// configuration is malformed.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()

	vpr.SetDefault("env", "production")
	vpr.SetDefault("port", 8080)
	vpr.SetDefault("monitoring_port", 9090)
	vpr.SetDefault("base_url", "http://localhost:8080/")
	vpr.SetDefault("session_ttl", "2h")
	vpr.SetDefault("provider.type", "nominatim")
	vpr.SetDefault("provider.api_key", "")
	vpr.SetDefault("provider.rate_limit", 1)
	vpr.SetDefault("map.tile_url", "https://tile.openstreetmap.org/{z}/{x}/{y}.png")
	vpr.SetDefault("map.attribution", "&copy; OpenStreetMap contributors")
	vpr.SetDefault("map.center_lat", 48.8566) // Paris
	vpr.SetDefault("map.center_lon", 2.3522)
	vpr.SetDefault("map.zoom", 11)

	vpr.SetEnvPrefix("BARYCENTRE")
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	if path := os.Getenv("BARYCENTRE_CONFIG"); path != "" {
		vpr.SetConfigFile(path)
		if err := vpr.ReadInConfig(); err != nil {
			panic(fmt.Sprintf("failed to read config file %q: %v", path, err))
		}
	} else {
		vpr.SetConfigName("barycentre")
		vpr.SetConfigType("yaml")
		vpr.AddConfigPath(".")
		if err := vpr.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				panic(fmt.Sprintf("failed to read config file: %v", err))
			}
		}
	}

	var cfg Config
	if err := vpr.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to parse configuration: %v", err))
	}

	if cfg.SessionTTL <= 0 {
		panic("session TTL must be a positive duration")
	}
	if cfg.Provider.RateLimit < 0 {
		panic("provider rate limit must not be negative")
	}

	return &cfg
}
