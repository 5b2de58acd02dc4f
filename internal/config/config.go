// Package config provides centralized configuration for the CRM summary
// notes server. It loads configuration from CLI flags and environment
// variables, validates required fields, and provides sensible defaults.
//
// The --no-hubspot CLI flag swaps the real HubSpot gateway for an in-memory
// store. Environment variables provide the HubSpot credentials and the
// contact every note engagement is associated with.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHubSpotBaseURL = "https://api.hubapi.com"

	// DefaultPageLimit caps the single-page fetch used by all filter and
	// search operations. Only the most recent PageLimit records are ever
	// visible to filters; this is a known scale limitation of the design,
	// not something to paper over with pagination.
	DefaultPageLimit = 100
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	ListenAddr string

	// HubSpot record store
	HubSpotBaseURL     string        // HUBSPOT_BASE_URL
	HubSpotAccessToken string        // HUBSPOT_ACCESS_TOKEN (private app token)
	HubSpotContactID   string        // HUBSPOT_CONTACT_ID (association target for created notes)
	HubSpotTimeout     time.Duration // per-round-trip timeout, owned by the gateway
	PageLimit          int           // HUBSPOT_PAGE_LIMIT

	// Mock service flag (controlled by CLI flag, not env var)
	NoHubSpot bool // If true, use the in-memory store (--no-hubspot)
}

// ValidationError represents a configuration validation error with multiple issues.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// ParseFlags parses CLI flags and returns them. Call before LoadConfig.
func ParseFlags() (noHubSpot bool, addr string) {
	flag.BoolVar(&noHubSpot, "no-hubspot", false, "Use in-memory record store instead of HubSpot")
	flag.StringVar(&addr, "addr", "", "Listen address (default :8080, overrides LISTEN_ADDR env var)")
	flag.Parse()
	return noHubSpot, addr
}

// LoadConfig loads configuration from environment variables and CLI flag values.
// The noHubSpot flag controls whether the HubSpot gateway is mocked.
// The addr flag overrides the LISTEN_ADDR env var if non-empty.
func LoadConfig(noHubSpot bool, addr string) (*Config, error) {
	cfg := &Config{}

	cfg.NoHubSpot = noHubSpot

	cfg.ListenAddr = getEnvOrDefault("LISTEN_ADDR", ":8080")
	if addr != "" {
		cfg.ListenAddr = addr
	}

	cfg.HubSpotBaseURL = strings.TrimRight(getEnvOrDefault("HUBSPOT_BASE_URL", defaultHubSpotBaseURL), "/")
	cfg.HubSpotAccessToken = strings.TrimSpace(os.Getenv("HUBSPOT_ACCESS_TOKEN"))
	cfg.HubSpotContactID = strings.TrimSpace(os.Getenv("HUBSPOT_CONTACT_ID"))
	cfg.HubSpotTimeout = parseDurationOrDefault("HUBSPOT_TIMEOUT", 30*time.Second)
	cfg.PageLimit = parseIntOrDefault("HUBSPOT_PAGE_LIMIT", DefaultPageLimit)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
// HubSpot credentials are required unless --no-hubspot is active; this runs
// before any network call is attempted.
func (c *Config) Validate() error {
	var errs []string

	if !c.NoHubSpot {
		if c.HubSpotAccessToken == "" {
			errs = append(errs, "HUBSPOT_ACCESS_TOKEN is required (set env var or use --no-hubspot)")
		}
		if c.HubSpotContactID == "" {
			errs = append(errs, "HUBSPOT_CONTACT_ID is required (set env var or use --no-hubspot)")
		}
		if c.HubSpotBaseURL == "" {
			errs = append(errs, "HUBSPOT_BASE_URL must not be empty")
		}
	}

	if c.PageLimit <= 0 {
		errs = append(errs, "HUBSPOT_PAGE_LIMIT must be positive")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}

// PrintStartupSummary prints a human-readable summary of the configuration to stderr.
func (c *Config) PrintStartupSummary() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "crm-notes server starting...")

	if c.NoHubSpot {
		fmt.Fprintln(os.Stderr, "  Store:   In-memory (--no-hubspot)")
	} else {
		fmt.Fprintf(os.Stderr, "  Store:   HubSpot engagements (real, base: %s)\n", c.HubSpotBaseURL)
		fmt.Fprintf(os.Stderr, "  Contact: %s\n", c.HubSpotContactID)
	}
	fmt.Fprintf(os.Stderr, "  Page:    %d records per fetch\n", c.PageLimit)
	fmt.Fprintf(os.Stderr, "  Listen:  %s\n", c.ListenAddr)
	fmt.Fprintln(os.Stderr, "")
}

// Helper functions for parsing environment variables

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// MustLoadConfig loads configuration and panics if validation fails.
// Use this in main() when you want the application to fail fast on bad config.
func MustLoadConfig(noHubSpot bool, addr string) *Config {
	cfg, err := LoadConfig(noHubSpot, addr)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			panic(fmt.Sprintf("Configuration validation failed:\n  - %s", strings.Join(validationErr.Errors, "\n  - ")))
		}
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}
	return cfg
}
