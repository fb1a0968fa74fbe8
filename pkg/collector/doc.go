// Package collector downloads image search results to disk.
//
// For each provider the collector walks result pages from start towards stop
// in steps of the provider's page size. Every page is fetched, its image links
// are extracted, and each image is downloaded and written as
// {provider}_{index}.jpg under {saveDir}/{query}. After a page the running
// count is reported ("Number of images saved is : N"), and "Complete!" is
// reported when the provider finishes.
//
// A page that yields no links ends the provider's run without an error. Any
// network, HTTP status or filesystem error aborts the run immediately, and
// nothing is retried.
//
// Collect is the entry point for a source selector:
//
//	c := collector.New(cfg)
//	results, err := c.Collect(ctx, "all", "cats", 0, 100, "./images")
//
// With "all", Bing runs to completion before Google starts, and a Bing
// failure means Google is never queried.
package collector
