package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultDateFormat is the moment-style format used for special-hours dates
	// when the form configuration does not supply one.
	DefaultDateFormat = "MMMM D, YYYY"

	// DefaultTimeFormat is the moment-style format used for business-hours time
	// slots when the form configuration does not supply one.
	DefaultTimeFormat = "h:mm a"

	// DefaultSlotStart and DefaultSlotEnd seed a freshly added time slot.
	DefaultSlotStart = "8:00 am"
	DefaultSlotEnd   = "8:00 pm"

	// DefaultGalleryLimit is the maximum number of gallery images per listing.
	DefaultGalleryLimit = 10

	// DefaultRateLimit is the default requests per minute per IP address.
	DefaultRateLimit = 100

	// DefaultGeocodeDebounce is how long address edits are coalesced before a
	// geocoding lookup fires.
	DefaultGeocodeDebounce = 500 * time.Millisecond

	// DefaultGeocoderURL is the public Nominatim endpoint.
	DefaultGeocoderURL = "https://nominatim.openstreetmap.org"
)

// Config holds the service configuration, merged from defaults and an optional
// TOML file.
type Config struct {
	Port        string      `toml:"port"`
	DatabaseURL string      `toml:"database_url"`
	RateLimit   int         `toml:"rate_limit"`
	Gallery     Gallery     `toml:"gallery"`
	DatetimeFmt DatetimeFmt `toml:"datetime_fmt"`
	Geocoder    Geocoder    `toml:"geocoder"`
}

// Gallery bounds the media collections accepted on a listing.
type Gallery struct {
	MaxImages int `toml:"max_images"`
}

// DatetimeFmt carries the moment-style format strings the schedule model uses
// verbatim.
type DatetimeFmt struct {
	Date string `toml:"date"`
	Time string `toml:"time"`
}

// Geocoder configures the injected address-resolution capability.
type Geocoder struct {
	URL        string `toml:"url"`
	DebounceMS int    `toml:"debounce_ms"`
}

// Default returns a Config populated with compiled defaults.
func Default() *Config {
	return &Config{
		Port:        DefaultPort,
		DatabaseURL: DefaultDatabaseURL,
		RateLimit:   DefaultRateLimit,
		Gallery:     Gallery{MaxImages: DefaultGalleryLimit},
		DatetimeFmt: DatetimeFmt{Date: DefaultDateFormat, Time: DefaultTimeFormat},
		Geocoder: Geocoder{
			URL:        DefaultGeocoderURL,
			DebounceMS: int(DefaultGeocodeDebounce / time.Millisecond),
		},
	}
}

// Load reads the TOML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if cfg.RateLimit <= 0 {
		return nil, fmt.Errorf("rate_limit must be positive, got %d", cfg.RateLimit)
	}
	if cfg.Gallery.MaxImages <= 0 {
		return nil, fmt.Errorf("gallery.max_images must be positive, got %d", cfg.Gallery.MaxImages)
	}
	return cfg, nil
}

// GeocodeDebounce returns the configured debounce window as a duration.
func (c *Config) GeocodeDebounce() time.Duration {
	if c.Geocoder.DebounceMS <= 0 {
		return DefaultGeocodeDebounce
	}
	return time.Duration(c.Geocoder.DebounceMS) * time.Millisecond
}
