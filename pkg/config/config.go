// Package config provides configuration management for bidlist.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Default values used when the environment does not set them.
const (
	DefaultCSVPath = "eBid_Monthly_Sales.csv"
	DefaultBidKey  = "98109"
	DefaultDataDir = ".bidlist"
)

// Config represents the application configuration.
type Config struct {
	CSV     CSVConfig
	History HistoryConfig
	BidKey  string
	Debug   bool // DEBUG=true, read after .env is loaded
}

// CSVConfig describes where bids are loaded from.
type CSVConfig struct {
	Path       string
	LayoutPath string
}

// HistoryConfig controls the timing history database.
type HistoryConfig struct {
	Enabled bool
	DataDir string
	DBPath  string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	historyEnabled, err := parseBoolEnv("BIDLIST_HISTORY", true)
	if err != nil {
		return nil, err
	}

	config := &Config{
		CSV: CSVConfig{
			Path:       getEnvOrDefault("BIDLIST_CSV_PATH", DefaultCSVPath),
			LayoutPath: os.Getenv("BIDLIST_LAYOUT_PATH"),
		},
		History: HistoryConfig{
			Enabled: historyEnabled,
			DataDir: getEnvOrDefault("BIDLIST_DATA_DIR", DefaultDataDir),
			DBPath:  os.Getenv("BIDLIST_DB_PATH"),
		},
		BidKey: getEnvOrDefault("BIDLIST_BID_KEY", DefaultBidKey),
		Debug:  os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate checks that the given dotted paths (e.g. "csv.path") are set.
func (c *Config) Validate(required ...string) error {
	var missing []string

	for _, path := range required {
		var value string
		switch path {
		case "csv.path":
			value = c.CSV.Path
		case "csv.layoutPath":
			value = c.CSV.LayoutPath
		case "history.dataDir":
			value = c.History.DataDir
		case "history.dbPath":
			value = c.History.DBPath
		case "bidKey":
			value = c.BidKey
		default:
			return fmt.Errorf("unknown configuration path: %s", path)
		}

		if value == "" {
			missing = append(missing, path)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s\nPlease check your .env file or environment variables", strings.Join(missing, ", "))
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseBoolEnv parses a bool from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s: %s", key, value)
	}

	return parsed, nil
}
