// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Data    DataConfig
	Catalog CatalogConfig
	Remote  RemoteConfig
	Sync    SyncConfig
	Server  ServerConfig
	Auth    AuthConfig
	Notify  NotifyConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds on-device storage configuration.
type DataConfig struct {
	BasePath string
}

// CatalogConfig holds bundled catalog configuration.
type CatalogConfig struct {
	// BundledPath points at the immutable catalog document shipped with the
	// app. It must exist and parse at startup.
	BundledPath string
	// WatchBundled reloads the index when the bundled document changes on
	// disk. Development convenience only.
	WatchBundled bool
}

// RemoteConfig holds remote store configuration.
type RemoteConfig struct {
	// BaseURL of the remote REST endpoint. Empty disables all remote calls;
	// the engine then runs fully offline.
	BaseURL string
	// AnonKey is the public API key sent with every request.
	AnonKey string
	// Timeout bounds each remote request (default: 15s).
	Timeout time.Duration
	// RequestsPerSecond caps outbound request rate (default: 10).
	RequestsPerSecond float64
}

// SyncConfig holds catalog sync configuration.
type SyncConfig struct {
	// Interval is the minimum time between automatic catalog syncs
	// (default: 24h).
	Interval time.Duration
	// CheckEvery is how often the background worker wakes to evaluate the
	// interval (default: 1h).
	CheckEvery time.Duration
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Name         string
	Host         string        // Bind address (default: 127.0.0.1)
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// AuthConfig holds device session configuration.
type AuthConfig struct {
	// PASETO v4 symmetric key for device tokens (32 bytes)
	DeviceTokenKey []byte
	// DeviceTokenDuration is the token lifetime (default: 720h)
	DeviceTokenDuration time.Duration
}

// NotifyConfig holds push notification configuration.
type NotifyConfig struct {
	// Enabled allows disabling match push delivery entirely (default: true)
	Enabled bool
	// FunctionURL is the push edge function endpoint. Empty disables push
	// even when Enabled is true.
	FunctionURL string
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for on-device storage")
	bundledCatalog := flag.String("bundled-catalog", "", "Path to the bundled catalog document")
	watchBundled := flag.String("watch-bundled", "", "Reload index on bundled catalog changes (default: false)")
	serverName := flag.String("server-name", "", "Name for the server")

	// Remote flags
	remoteURL := flag.String("remote-url", "", "Remote store base URL (empty runs offline)")
	remoteKey := flag.String("remote-key", "", "Remote store anon API key")
	remoteTimeout := flag.String("remote-timeout", "", "Remote request timeout (default: 15s)")

	// Sync flags
	syncInterval := flag.String("sync-interval", "", "Minimum time between catalog syncs (default: 24h)")
	syncCheckEvery := flag.String("sync-check-every", "", "Background sync check cadence (default: 1h)")

	// Auth flags
	deviceTokenDuration := flag.String("device-token-duration", "", "Device token lifetime (e.g., 720h)")

	// Server flags
	serverHost := flag.String("host", "", "Bind address (default: 127.0.0.1)")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	// Notify flags
	notifyEnabled := flag.String("notify-enabled", "", "Enable match push delivery (default: true)")
	notifyURL := flag.String("notify-url", "", "Push edge function URL")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	// Parse flags but don't exit on error - we want to handle it gracefully.
	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},

		Catalog: CatalogConfig{
			BundledPath:  getConfigValue(*bundledCatalog, "BUNDLED_CATALOG_PATH", ""),
			WatchBundled: getBoolConfigValue(*watchBundled, "WATCH_BUNDLED_CATALOG", false),
		},

		Remote: RemoteConfig{
			BaseURL:           getConfigValue(*remoteURL, "REMOTE_URL", ""),
			AnonKey:           getConfigValue(*remoteKey, "REMOTE_ANON_KEY", ""),
			RequestsPerSecond: getFloatConfigValue("", "REMOTE_REQUESTS_PER_SECOND", 10),
		},

		Server: ServerConfig{
			Name: getConfigValue(*serverName, "SERVER_NAME", "Petnames Engine"),
			Host: getConfigValue(*serverHost, "SERVER_HOST", "127.0.0.1"),
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},

		Auth: AuthConfig{
			DeviceTokenKey: nil, // Will be set by auth.LoadOrGenerateKey in main
		},

		Notify: NotifyConfig{
			Enabled:     getBoolConfigValue(*notifyEnabled, "NOTIFY_ENABLED", true),
			FunctionURL: getConfigValue(*notifyURL, "NOTIFY_FUNCTION_URL", ""),
		},
	}

	// Parse remote timeout.
	remoteTimeoutStr := getConfigValue(*remoteTimeout, "REMOTE_TIMEOUT", "15s")
	remoteTimeoutDuration, err := time.ParseDuration(remoteTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid remote timeout %q: %w", remoteTimeoutStr, err)
	}
	cfg.Remote.Timeout = remoteTimeoutDuration

	// Parse sync durations.
	syncIntervalStr := getConfigValue(*syncInterval, "SYNC_INTERVAL", "24h")
	syncIntervalDuration, err := time.ParseDuration(syncIntervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid sync interval %q: %w", syncIntervalStr, err)
	}
	cfg.Sync.Interval = syncIntervalDuration

	syncCheckStr := getConfigValue(*syncCheckEvery, "SYNC_CHECK_EVERY", "1h")
	syncCheckDuration, err := time.ParseDuration(syncCheckStr)
	if err != nil {
		return nil, fmt.Errorf("invalid sync check cadence %q: %w", syncCheckStr, err)
	}
	cfg.Sync.CheckEvery = syncCheckDuration

	// Parse auth duration.
	tokenDurationStr := getConfigValue(*deviceTokenDuration, "DEVICE_TOKEN_DURATION", "720h")
	tokenDuration, err := time.ParseDuration(tokenDurationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid device token duration %q: %w", tokenDurationStr, err)
	}
	cfg.Auth.DeviceTokenDuration = tokenDuration

	// Parse server timeouts.
	readTimeoutStr := getConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	readTimeoutDuration, err := time.ParseDuration(readTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout %q: %w", readTimeoutStr, err)
	}
	cfg.Server.ReadTimeout = readTimeoutDuration

	writeTimeoutStr := getConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	writeTimeoutDuration, err := time.ParseDuration(writeTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout %q: %w", writeTimeoutStr, err)
	}
	cfg.Server.WriteTimeout = writeTimeoutDuration

	idleTimeoutStr := getConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	idleTimeoutDuration, err := time.ParseDuration(idleTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout %q: %w", idleTimeoutStr, err)
	}
	cfg.Server.IdleTimeout = idleTimeoutDuration

	// Expand and validate data path.
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	// Expand the bundled catalog path (defaults to {data}/catalog/bundled.json).
	if err := cfg.expandBundledCatalogPath(); err != nil {
		return nil, fmt.Errorf("invalid bundled catalog path: %w", err)
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	if c.Remote.BaseURL != "" && c.Remote.AnonKey == "" {
		return errors.New("REMOTE_ANON_KEY is required when REMOTE_URL is set")
	}

	if c.Sync.Interval <= 0 {
		return errors.New("sync interval must be positive")
	}

	// Auth key is set by auth.LoadOrGenerateKey in main.

	return nil
}

// RemoteEnabled reports whether a remote store is configured.
func (c *Config) RemoteEnabled() bool {
	return c.Remote.BaseURL != ""
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "Petnames", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// expandBundledCatalogPath expands ~ and makes the path absolute.
// Defaults to {data}/catalog/bundled.json if not specified.
func (c *Config) expandBundledCatalogPath() error {
	defaultPath := filepath.Join(c.Data.BasePath, "catalog", "bundled.json")

	expanded, err := expandPath(c.Catalog.BundledPath, defaultPath)
	if err != nil {
		return err
	}
	c.Catalog.BundledPath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result float64
	if _, err := fmt.Sscanf(strValue, "%g", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
