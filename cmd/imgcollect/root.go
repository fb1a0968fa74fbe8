package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"imgcollect/pkg/config"
)

var (
	// Version information, set with -ldflags at build time
	version   = "0.1.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// rootOptions holds the global flags shared by every subcommand
type rootOptions struct {
	configFile string
	logLevel   string
	noColor    bool
	quiet      bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "imgcollect",
		Short: "Download face image search results from Bing and Google",
		Long: `imgcollect queries image search engines for a keyword and saves every
result in a range to numbered files under <output>/<query>/.

Results are fetched page by page with face-only filters applied. Bing returns
28 results per page and Google 20. Files are named <engine>_<index>.jpg with
the index zero-padded to the width of --stop.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", "config file (default is ./.imgcollect.yaml or ~/.config/imgcollect/config.yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress output")
	pf.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")

	cmd.SetVersionTemplate(`imgcollect {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(
		newCollectCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// flags returns the global flags in the form config.MergeCommandLineFlags expects
func (o *rootOptions) flags() map[string]interface{} {
	flags := make(map[string]interface{})
	if o.logLevel != "" {
		flags["log-level"] = o.logLevel
	}
	if o.verbose {
		flags["log-level"] = "debug"
	}
	if o.noColor {
		flags["no-color"] = true
	}
	if o.quiet {
		flags["quiet"] = true
	}
	return flags
}

// loadConfig loads configuration with the global flags plus any command flags
func (o *rootOptions) loadConfig(extra map[string]interface{}) (*config.Config, error) {
	flags := o.flags()
	for k, v := range extra {
		flags[k] = v
	}
	return config.Load(o.configFile, flags)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imgcollect %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", gitCommit)
			fmt.Fprintf(out, "  built:   %s\n", buildDate)
			fmt.Fprintf(out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
