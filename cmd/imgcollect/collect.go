package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"imgcollect/pkg/collector"
	"imgcollect/pkg/logger"
	"imgcollect/pkg/search"
	"imgcollect/pkg/ui"
)

type collectOptions struct {
	from      string
	start     int
	stop      int
	output    string
	timeout   time.Duration
	userAgent string
	manifest  bool
}

func newCollectCmd(root *rootOptions) *cobra.Command {
	opts := &collectOptions{}

	cmd := &cobra.Command{
		Use:   "collect <query>",
		Short: "Download image search results for a query",
		Long: `Download image search results for a query into <output>/<query>/.

Pages are requested from --start in steps of the engine's page size while the
offset is below --stop. A page with no results ends that engine's run early.
With --from all, Bing runs first and Google only starts once Bing finished
without error.`,
		Example: `  # First page of Bing results for "cats" into ./cats/
  imgcollect collect cats --from bing --stop 28

  # Results 0-99 from both engines into ./faces/smiling/
  imgcollect collect smiling --stop 100 --output ./faces

  # Google only, with a manifest of source URLs
  imgcollect collect "red hair" --from google --stop 60 --manifest`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(cmd, root, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.from, "from", "f", "all", "search engine: "+strings.Join(search.SourceNames(), ", "))
	f.IntVar(&opts.start, "start", 0, "first result offset")
	f.IntVar(&opts.stop, "stop", 20, "stop before this result offset")
	f.StringVarP(&opts.output, "output", "o", "", "base directory for saved images (default: current directory)")
	f.DurationVar(&opts.timeout, "timeout", 0, "timeout for each request (default 10s)")
	f.StringVar(&opts.userAgent, "user-agent", "", "User-Agent header sent with every request")
	f.BoolVar(&opts.manifest, "manifest", false, "write a manifest of saved files next to the images")

	return cmd
}

func runCollect(cmd *cobra.Command, root *rootOptions, opts *collectOptions, query string) error {
	// An unknown engine fails before config, logging or the network are touched
	if _, err := search.ParseSource(opts.from); err != nil {
		return err
	}

	flags := map[string]interface{}{
		"output":     opts.output,
		"timeout":    opts.timeout,
		"user-agent": opts.userAgent,
	}
	if cmd.Flags().Changed("manifest") {
		flags["manifest"] = opts.manifest
	}

	cfg, err := root.loadConfig(flags)
	if err != nil {
		return err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.GetLogger().WithField("version", version)

	printer := ui.NewPrinter(cmd.OutOrStdout(), cfg.UI.ColorEnabled, cfg.UI.Quiet)
	c := collector.New(cfg,
		collector.WithLogger(log),
		collector.WithReporter(printer),
	)

	log.InfoWithFields("Starting collection", map[string]interface{}{
		"query":  query,
		"source": opts.from,
		"start":  opts.start,
		"stop":   opts.stop,
	})

	results, err := c.Collect(cmd.Context(), opts.from, query, opts.start, opts.stop, cfg.Output.BaseDirectory)
	for _, res := range results {
		printer.Summary(res.Provider, res.Saved, res.Bytes, res.Pages, res.Duration, string(res.StopReason))
		if res.StopReason == collector.StopUnrecognized {
			printer.Warning(unrecognizedWarning(res))
		}
	}
	if err != nil {
		log.WithError(err).WithField("query", query).Error("Collection failed")
		return err
	}

	log.WithField("query", query).Info("Collection completed")
	return nil
}

func unrecognizedWarning(res *collector.Result) string {
	return fmt.Sprintf("%s returned a page without a results list after %d images; its markup may have changed",
		res.Provider, res.Saved)
}
