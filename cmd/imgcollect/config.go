package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"imgcollect/pkg/config"
	"imgcollect/pkg/ui"
)

const defaultConfigPath = ".imgcollect.yaml"

const exampleConfig = `# imgcollect configuration file
#
# Every option can also be set with an environment variable prefixed with
# IMGCOLLECT_, for example IMGCOLLECT_TIMEOUT=15s or IMGCOLLECT_OUTPUT_DIR=./out

# Request settings shared by Bing and Google
search:
  # User-Agent header sent with every request
  user_agent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

  # Accept-Language header
  accept_language: "en-US,en;q=0.9"

  # Timeout for each results page and image request
  timeout: 10s

# Output settings
output:
  # Images are written to <base_directory>/<query>/
  base_directory: "./"

  # Permissions for created directories and files (octal)
  dir_permissions: "0755"
  file_permissions: "0644"

  # Write <engine>_manifest.<format> listing saved files and source URLs
  save_manifest: false

  # Manifest format: json, yaml (yml is accepted as yaml)
  manifest_format: "json"

# Logging configuration (logs go to stderr)
logging:
  # Log level: debug, info, warn, error, disabled
  level: "info"

  # Also write logs to this file (optional)
  file: ""

# Terminal output
ui:
  # Enable colored output when stdout is a terminal
  color_enabled: true

  # Suppress progress notices
  quiet: false
`

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
		Long: `Manage imgcollect configuration files.

Configuration is loaded from, highest priority first:
  - Command line flags
  - Environment variables (IMGCOLLECT_*)
  - .env files
  - Configuration file
  - Default values`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create an example configuration file",
			Long: `Create an example configuration file with all available options.

The file is created as '.imgcollect.yaml' in the current directory unless a
different path is given with --config.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigInit(cmd, root)
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigShow(cmd, root)
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate a configuration file",
			Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Value types and ranges
  - Output and log paths`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigValidate(cmd, root)
			},
		},
	)

	return cmd
}

func runConfigInit(cmd *cobra.Command, root *rootOptions) error {
	printer := ui.NewPrinter(cmd.OutOrStdout(), !root.noColor, false)

	configPath := root.configFile
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists: %s", configPath)
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	printer.Info("Configuration file created", configPath)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "1. Edit the configuration file")
	fmt.Fprintln(out, "2. Run 'imgcollect config validate' to check it")
	fmt.Fprintln(out, "3. Start collecting with 'imgcollect collect <query>'")
	return nil
}

func runConfigShow(cmd *cobra.Command, root *rootOptions) error {
	cfg, err := root.loadConfig(nil)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, string(data))

	fmt.Fprintln(out, "\nConfiguration sources (in order of priority):")
	fmt.Fprintln(out, "1. Command line flags")
	fmt.Fprintln(out, "2. Environment variables ("+config.EnvPrefix+"*)")
	fmt.Fprintln(out, "3. .env files")
	source := root.configFile
	if source == "" {
		source = config.FindConfigFile()
	}
	if source == "" {
		source = "(none found)"
	}
	fmt.Fprintf(out, "4. Configuration file: %s\n", source)
	fmt.Fprintln(out, "5. Default values")
	return nil
}

func runConfigValidate(cmd *cobra.Command, root *rootOptions) error {
	printer := ui.NewPrinter(cmd.OutOrStdout(), !root.noColor, false)

	configFile := root.configFile
	if configFile == "" {
		configFile = config.FindConfigFile()
	}
	if configFile == "" {
		return fmt.Errorf("no configuration file found, specify one with --config")
	}

	printer.Info("Validating configuration", configFile)

	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	var problems []string
	if info, err := os.Stat(cfg.Output.BaseDirectory); err == nil && !info.IsDir() {
		problems = append(problems, fmt.Sprintf("output directory is a file: %s", cfg.Output.BaseDirectory))
	}
	if cfg.Logging.File != "" {
		if info, err := os.Stat(filepath.Dir(cfg.Logging.File)); err == nil && !info.IsDir() {
			problems = append(problems, fmt.Sprintf("log directory is a file: %s", filepath.Dir(cfg.Logging.File)))
		}
	}

	out := cmd.OutOrStdout()
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		return fmt.Errorf("configuration has %d problem(s)", len(problems))
	}

	fmt.Fprintln(out, printer.Palette().Green("Configuration is valid"))
	fmt.Fprintln(out, "\nConfiguration summary:")
	fmt.Fprintf(out, "  Output directory: %s\n", cfg.Output.BaseDirectory)
	fmt.Fprintf(out, "  Request timeout: %s\n", cfg.Search.Timeout)
	fmt.Fprintf(out, "  Save manifest: %t (%s)\n", cfg.Output.SaveManifest, cfg.Output.ManifestFormat)
	fmt.Fprintf(out, "  Log level: %s\n", cfg.Logging.Level)
	return nil
}
