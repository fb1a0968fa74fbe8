// Package search fetches image search result pages and extracts image links.
//
// A Provider describes one search engine: its page size, how to build the
// request URL for a given offset, the markup selector that yields image
// links, and the tag used for output filenames. Bing and Google are the two
// providers; Source selects one of them or both.
//
//	src, err := search.ParseSource("all")
//	client := search.NewClient(10*time.Second, logger.GetLogger())
//	for _, p := range search.DefaultRegistry().Resolve(src) {
//	    doc, err := client.FetchDocument(ctx, p.SearchURL("cats", 0))
//	    page := p.Extract(doc)
//	    // page.Links, page.Status
//	}
//
// An empty page is reported with a status rather than an error:
// PageExhausted when the result container is present but holds no links,
// PageUnrecognized when the container itself is missing.
package search
