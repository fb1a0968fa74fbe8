package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix shared by all environment overrides
const EnvPrefix = "IMGCOLLECT_"

// Config holds all configuration options for the image collector
type Config struct {
	// Search engine request settings
	Search SearchConfig `yaml:"search" json:"search"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Terminal output
	UI UIConfig `yaml:"ui" json:"ui"`
}

// SearchConfig holds HTTP settings shared by every provider
type SearchConfig struct {
	UserAgent      string        `yaml:"user_agent" json:"user_agent"`
	AcceptLanguage string        `yaml:"accept_language" json:"accept_language"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	BaseDirectory   string `yaml:"base_directory" json:"base_directory"`
	DirPermissions  string `yaml:"dir_permissions" json:"dir_permissions"`
	FilePermissions string `yaml:"file_permissions" json:"file_permissions"`
	SaveManifest    bool   `yaml:"save_manifest" json:"save_manifest"`
	ManifestFormat  string `yaml:"manifest_format" json:"manifest_format"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// UIConfig controls progress notices on stdout
type UIConfig struct {
	ColorEnabled bool `yaml:"color_enabled" json:"color_enabled"`
	Quiet        bool `yaml:"quiet" json:"quiet"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			UserAgent:      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
			AcceptLanguage: "en-US,en;q=0.9",
			Timeout:        10 * time.Second,
		},
		Output: OutputConfig{
			BaseDirectory:   "./",
			DirPermissions:  "0755",
			FilePermissions: "0644",
			SaveManifest:    false,
			ManifestFormat:  "json",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
		UI: UIConfig{
			ColorEnabled: true,
			Quiet:        false,
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if userAgent := os.Getenv(EnvPrefix + "USER_AGENT"); userAgent != "" {
		c.Search.UserAgent = userAgent
	}

	if timeout := os.Getenv(EnvPrefix + "TIMEOUT"); timeout != "" {
		d, err := parseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid %sTIMEOUT: %w", EnvPrefix, err)
		}
		c.Search.Timeout = d
	}

	if outputDir := os.Getenv(EnvPrefix + "OUTPUT_DIR"); outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}

	if manifest := os.Getenv(EnvPrefix + "SAVE_MANIFEST"); manifest != "" {
		c.Output.SaveManifest = strings.ToLower(manifest) == "true"
	}

	if logLevel := os.Getenv(EnvPrefix + "LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv(EnvPrefix + "LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	return nil
}

// parseDuration accepts Go durations ("15s") or a bare number of seconds
func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(s)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".imgcollect.yaml",
		".imgcollect.yml",
		"imgcollect.yaml",
		filepath.Join(home, ".config", "imgcollect", "config.yaml"),
		filepath.Join(home, ".config", "imgcollect", "config.yml"),
		filepath.Join(home, ".imgcollect.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Search.Timeout <= 0 {
		errs = append(errs, errors.New("search timeout must be positive"))
	}
	if c.Search.UserAgent == "" {
		errs = append(errs, errors.New("user agent is required"))
	}

	if c.Output.BaseDirectory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if _, err := ParseFileMode(c.Output.DirPermissions); err != nil {
		errs = append(errs, fmt.Errorf("dir_permissions: %w", err))
	}
	if _, err := ParseFileMode(c.Output.FilePermissions); err != nil {
		errs = append(errs, fmt.Errorf("file_permissions: %w", err))
	}
	switch strings.ToLower(c.Output.ManifestFormat) {
	case "json", "yaml", "yml":
	default:
		errs = append(errs, fmt.Errorf("invalid manifest format: %q", c.Output.ManifestFormat))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// ParseFileMode parses an octal permission string such as "0755"
func ParseFileMode(s string) (os.FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid permission %q: %w", s, err)
	}
	if v > 0o777 {
		return 0, fmt.Errorf("invalid permission %q: out of range", s)
	}
	return os.FileMode(v), nil
}

// DirMode returns the configured directory permissions, falling back to 0755
func (c *Config) DirMode() os.FileMode {
	if m, err := ParseFileMode(c.Output.DirPermissions); err == nil {
		return m
	}
	return 0o755
}

// FileMode returns the configured file permissions, falling back to 0644
func (c *Config) FileMode() os.FileMode {
	if m, err := ParseFileMode(c.Output.FilePermissions); err == nil {
		return m
	}
	return 0o644
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if timeout, ok := flags["timeout"].(time.Duration); ok && timeout > 0 {
		c.Search.Timeout = timeout
	}
	if userAgent, ok := flags["user-agent"].(string); ok && userAgent != "" {
		c.Search.UserAgent = userAgent
	}
	if manifest, ok := flags["manifest"].(bool); ok {
		c.Output.SaveManifest = manifest
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if noColor, ok := flags["no-color"].(bool); ok && noColor {
		c.UI.ColorEnabled = false
	}
	if quiet, ok := flags["quiet"].(bool); ok && quiet {
		c.UI.Quiet = true
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Missing .env files are fine
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".imgcollect.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
