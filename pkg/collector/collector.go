package collector

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"imgcollect/pkg/config"
	errs "imgcollect/pkg/errors"
	"imgcollect/pkg/logger"
	"imgcollect/pkg/metadata"
	"imgcollect/pkg/search"
	"imgcollect/pkg/storage"
	"imgcollect/pkg/ui"
)

// Collector runs the fetch, extract and save loop for one or more providers
type Collector struct {
	config   *config.Config
	client   Fetcher
	registry search.Registry
	logger   logger.Logger
	reporter ui.Reporter
}

// Option configures a Collector
type Option func(*Collector)

// WithClient sets the fetcher used for pages and images
func WithClient(client Fetcher) Option {
	return func(c *Collector) { c.client = client }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(c *Collector) { c.logger = l }
}

// WithReporter sets where progress notices go
func WithReporter(r ui.Reporter) Option {
	return func(c *Collector) { c.reporter = r }
}

// WithRegistry replaces the providers used for each source
func WithRegistry(r search.Registry) Option {
	return func(c *Collector) { c.registry = r }
}

// New creates a Collector. Without options it talks to the public search
// endpoints through a search.Client built from cfg and prints to stdout.
func New(cfg *config.Config, opts ...Option) *Collector {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	c := &Collector{
		config:   cfg,
		registry: search.DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.GetLogger()
	}
	if c.reporter == nil {
		c.reporter = ui.NewPrinter(nil, cfg.UI.ColorEnabled, cfg.UI.Quiet)
	}
	if c.client == nil {
		c.client = search.NewClientWithConfig(&cfg.Search, c.logger)
	}

	return c
}

// Collect runs the providers selected by source over [start, stop) in order.
// The selector and range are checked before any request is made. An empty
// range still prepares the output directory and completes each provider. The first
// failing provider ends the run; results of providers that already finished
// are returned alongside the error.
func (c *Collector) Collect(ctx context.Context, source, query string, start, stop int, saveDir string) ([]*Result, error) {
	src, err := search.ParseSource(source)
	if err != nil {
		return nil, err
	}
	if start < 0 {
		return nil, errs.InvalidArgument("start must not be negative, got %d", start)
	}
	if stop <= 0 {
		return nil, errs.InvalidArgument("stop must be positive, got %d", stop)
	}
	if err := storage.ValidateQuery(query); err != nil {
		return nil, err
	}

	providers := c.registry.Resolve(src)
	results := make([]*Result, 0, len(providers))
	for _, p := range providers {
		res, err := c.CollectProvider(ctx, p, query, start, stop, saveDir)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}

// CollectProvider pages through p's results for query from start until stop,
// saving every extracted image under {saveDir}/{query}. A page without links
// ends the run early and is not an error.
func (c *Collector) CollectProvider(ctx context.Context, p search.Provider, query string, start, stop int, saveDir string) (*Result, error) {
	began := time.Now()
	runID := xid.New().String()

	log := c.logger.WithFields(map[string]interface{}{
		"run_id":   runID,
		"provider": p.Name(),
		"query":    query,
	})

	mgr, err := storage.NewManager(saveDir, query, c.config.DirMode(),
		storage.WithFileMode(c.config.FileMode()))
	if err != nil {
		log.WithError(err).Error("Failed to prepare output directory")
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}

	logger.LogComponentStart(log, "collector", map[string]interface{}{
		"start":      start,
		"stop":       stop,
		"output_dir": mgr.OutputDir(),
	})

	res := &Result{
		RunID:      runID,
		Provider:   p.Name(),
		Query:      query,
		OutputDir:  mgr.OutputDir(),
		Files:      []string{},
		StopReason: StopReached,
	}

	var manifest *metadata.Manifest
	if c.config.Output.SaveManifest {
		manifest = metadata.New(runID, p.Name(), query, start, stop)
	}

	width := storage.PadWidth(stop)
	for n := start; n < stop; n += p.PageSize() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: offset %d: %w", p.Name(), n, err)
		}

		doc, err := c.client.FetchDocument(ctx, p.SearchURL(query, n))
		if err != nil {
			log.WithError(err).WithField("offset", n).Error("Failed to fetch results page")
			return nil, fmt.Errorf("%s: fetch results at offset %d: %w", p.Name(), n, err)
		}
		res.Pages++

		page := p.Extract(doc)
		logger.LogPage(log, n, len(page.Links), page.Status.String())

		if len(page.Links) == 0 {
			res.StopReason = stopReasonFor(page.Status)
			if page.Status == search.PageUnrecognized {
				log.WarnWithFields("Results page not recognized, stopping", map[string]interface{}{
					"offset": n,
				})
			}
			break
		}

		for i, link := range page.Links {
			index := n + i
			data, err := c.client.DownloadImage(ctx, link)
			if err != nil {
				log.WithError(err).WithField("index", index).Error("Failed to download image")
				return nil, fmt.Errorf("%s: download image %d at offset %d: %w", p.Name(), index, n, err)
			}

			name := storage.FileName(p.Name(), index, width)
			size, err := mgr.SaveImage(bytes.NewReader(data), name)
			if err != nil {
				log.WithError(err).WithField("file", name).Error("Failed to save image")
				return nil, fmt.Errorf("%s: save %s at offset %d: %w", p.Name(), name, n, err)
			}

			logger.LogImageSaved(log, index, name, size)
			res.Saved++
			res.Bytes += size
			res.Files = append(res.Files, name)
			if manifest != nil {
				manifest.AddFile(index, name, link, size)
			}
		}

		c.reporter.Saved(p.Name(), n+len(page.Links))
	}

	if manifest != nil {
		if err := c.writeManifest(mgr, manifest, res); err != nil {
			log.WithError(err).Error("Failed to write manifest")
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
	}

	res.Duration = time.Since(began)
	c.reporter.Complete(p.Name())
	logger.LogComponentStop(log, "collector", string(res.StopReason))

	return res, nil
}

func (c *Collector) writeManifest(mgr *storage.Manager, m *metadata.Manifest, res *Result) error {
	m.Finish(res.Pages, string(res.StopReason))

	data, err := m.Marshal(c.config.Output.ManifestFormat)
	if err != nil {
		return err
	}
	return mgr.WriteFile(metadata.FileName(res.Provider, c.config.Output.ManifestFormat), data)
}
