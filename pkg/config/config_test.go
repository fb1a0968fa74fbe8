package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Search.Timeout != 10*time.Second {
		t.Errorf("Expected default timeout to be 10s, got %v", config.Search.Timeout)
	}

	if config.Output.BaseDirectory != "./" {
		t.Errorf("Expected default output directory to be ./, got %s", config.Output.BaseDirectory)
	}

	if config.Output.SaveManifest {
		t.Error("Expected manifests to be disabled by default")
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("IMGCOLLECT_USER_AGENT", "test-agent")
	t.Setenv("IMGCOLLECT_TIMEOUT", "15")
	t.Setenv("IMGCOLLECT_OUTPUT_DIR", "/tmp/test-images")
	t.Setenv("IMGCOLLECT_SAVE_MANIFEST", "true")
	t.Setenv("IMGCOLLECT_LOG_LEVEL", "debug")

	config := DefaultConfig()
	if err := config.LoadFromEnv(); err != nil {
		t.Fatalf("Failed to load from environment: %v", err)
	}

	if config.Search.UserAgent != "test-agent" {
		t.Errorf("Expected user agent to be test-agent, got %s", config.Search.UserAgent)
	}

	if config.Search.Timeout != 15*time.Second {
		t.Errorf("Expected timeout to be 15s, got %v", config.Search.Timeout)
	}

	if config.Output.BaseDirectory != "/tmp/test-images" {
		t.Errorf("Expected output directory to be /tmp/test-images, got %s", config.Output.BaseDirectory)
	}

	if !config.Output.SaveManifest {
		t.Error("Expected manifests to be enabled")
	}

	if config.Logging.Level != "debug" {
		t.Errorf("Expected log level to be debug, got %s", config.Logging.Level)
	}
}

func TestLoadFromEnvDurationString(t *testing.T) {
	t.Setenv("IMGCOLLECT_TIMEOUT", "1m30s")

	config := DefaultConfig()
	if err := config.LoadFromEnv(); err != nil {
		t.Fatalf("Failed to load from environment: %v", err)
	}
	if config.Search.Timeout != 90*time.Second {
		t.Errorf("Expected timeout to be 90s, got %v", config.Search.Timeout)
	}
}

func TestLoadFromEnvInvalidTimeout(t *testing.T) {
	t.Setenv("IMGCOLLECT_TIMEOUT", "soon")

	config := DefaultConfig()
	if err := config.LoadFromEnv(); err == nil {
		t.Error("Expected error for invalid timeout")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{
			name:      "valid config",
			mutate:    func(c *Config) {},
			wantError: false,
		},
		{
			name:      "zero timeout",
			mutate:    func(c *Config) { c.Search.Timeout = 0 },
			wantError: true,
		},
		{
			name:      "empty output directory",
			mutate:    func(c *Config) { c.Output.BaseDirectory = "" },
			wantError: true,
		},
		{
			name:      "bad dir permissions",
			mutate:    func(c *Config) { c.Output.DirPermissions = "rwx" },
			wantError: true,
		},
		{
			name:      "unknown manifest format",
			mutate:    func(c *Config) { c.Output.ManifestFormat = "xml" },
			wantError: true,
		},
		{
			name:      "invalid log level",
			mutate:    func(c *Config) { c.Logging.Level = "invalid" },
			wantError: true,
		},
		{
			name:      "yaml manifest",
			mutate:    func(c *Config) { c.Output.ManifestFormat = "YAML" },
			wantError: false,
		},
		{
			name:      "yml manifest",
			mutate:    func(c *Config) { c.Output.ManifestFormat = "yml" },
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestParseFileMode(t *testing.T) {
	mode, err := ParseFileMode("0750")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if mode != 0o750 {
		t.Errorf("Expected 0750, got %o", mode)
	}

	if _, err := ParseFileMode("1777"); err == nil {
		t.Error("Expected error for out of range mode")
	}

	config := DefaultConfig()
	config.Output.FilePermissions = "bogus"
	if config.FileMode() != 0o644 {
		t.Errorf("Expected fallback file mode 0644, got %o", config.FileMode())
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()

	flags := map[string]interface{}{
		"output":    "/flag/output",
		"timeout":   20 * time.Second,
		"manifest":  true,
		"log-level": "error",
		"no-color":  true,
	}

	config.MergeCommandLineFlags(flags)

	if config.Output.BaseDirectory != "/flag/output" {
		t.Errorf("Expected output directory to be /flag/output, got %s", config.Output.BaseDirectory)
	}

	if config.Search.Timeout != 20*time.Second {
		t.Errorf("Expected timeout to be 20s, got %v", config.Search.Timeout)
	}

	if !config.Output.SaveManifest {
		t.Error("Expected manifest flag to be merged")
	}

	if config.Logging.Level != "error" {
		t.Errorf("Expected log level to be error, got %s", config.Logging.Level)
	}

	if config.UI.ColorEnabled {
		t.Error("Expected color to be disabled")
	}
}

func TestSaveAndLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "test-config.yaml")

	config := DefaultConfig()
	config.Search.UserAgent = "saved-agent"
	config.Output.ManifestFormat = "yaml"

	if err := config.Save(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loadedConfig := DefaultConfig()
	if err := loadedConfig.LoadFromFile(configPath); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedConfig.Search.UserAgent != "saved-agent" {
		t.Errorf("Expected loaded user agent to be saved-agent, got %s", loadedConfig.Search.UserAgent)
	}

	if loadedConfig.Output.ManifestFormat != "yaml" {
		t.Errorf("Expected loaded manifest format to be yaml, got %s", loadedConfig.Output.ManifestFormat)
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(configPath, []byte("search: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(configPath); err == nil {
		t.Error("Expected parse error")
	}
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("output:\n  base_directory: /from/file\nlogging:\n  level: warn\n")
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	t.Setenv("IMGCOLLECT_LOG_LEVEL", "debug")

	config, err := Load(configPath, map[string]interface{}{"output": "/from/flag"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Output.BaseDirectory != "/from/flag" {
		t.Errorf("Expected flag to win, got %s", config.Output.BaseDirectory)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("Expected env to override file, got %s", config.Logging.Level)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("IMGCOLLECT_LOG_LEVEL", "loud")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("Expected error for missing explicit config file")
	}

	emptyPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(emptyPath, nil, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := Load(emptyPath, nil); err == nil {
		t.Error("Expected validation error for invalid log level")
	}
}
