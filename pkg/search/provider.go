package search

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageStatus describes what a results page yielded
type PageStatus int

const (
	// PageOK means the page produced at least one image link
	PageOK PageStatus = iota
	// PageExhausted means the result container was present but empty
	PageExhausted
	// PageUnrecognized means the result container was missing entirely,
	// usually because the provider changed its markup or served a block page
	PageUnrecognized
)

func (s PageStatus) String() string {
	switch s {
	case PageOK:
		return "ok"
	case PageExhausted:
		return "exhausted"
	case PageUnrecognized:
		return "unrecognized"
	default:
		return "unknown"
	}
}

// Page holds the image links extracted from one results page
type Page struct {
	Links  []string
	Status PageStatus
}

// Provider describes a single image search engine
type Provider interface {
	// Name is the provider tag used in output filenames
	Name() string
	// PageSize is the number of results requested per page and the offset step
	PageSize() int
	// SearchURL returns the results page URL for query at offset
	SearchURL(query string, offset int) string
	// Extract pulls image links out of a parsed results page
	Extract(doc *goquery.Document) Page
}

// selectorProvider implements Provider for engines whose result pages can be
// scraped with a single CSS selector and attribute
type selectorProvider struct {
	name      string
	baseURL   string
	pageSize  int
	params    func(query string, offset int) url.Values
	container string
	selector  string
	attr      string
}

func (p *selectorProvider) Name() string  { return p.name }
func (p *selectorProvider) PageSize() int { return p.pageSize }

func (p *selectorProvider) SearchURL(query string, offset int) string {
	return buildURL(p.baseURL, p.params(query, offset))
}

func (p *selectorProvider) Extract(doc *goquery.Document) Page {
	if doc == nil || doc.Find(p.container).Length() == 0 {
		return Page{Status: PageUnrecognized}
	}

	var links []string
	doc.Find(p.selector).Each(func(_ int, s *goquery.Selection) {
		link, ok := s.Attr(p.attr)
		link = strings.TrimSpace(link)
		if !ok || link == "" {
			return
		}
		links = append(links, resolveLink(doc.Url, link))
	})

	if len(links) == 0 {
		return Page{Status: PageExhausted}
	}
	return Page{Links: links, Status: PageOK}
}

// NewBing returns the Bing provider querying baseURL.
// An empty baseURL uses BingSearchURL.
func NewBing(baseURL string) Provider {
	if baseURL == "" {
		baseURL = BingSearchURL
	}
	return &selectorProvider{
		name:      "bing",
		baseURL:   baseURL,
		pageSize:  BingPageSize,
		params:    BingParams,
		container: "#main",
		selector:  "#main .row .item .thumb",
		attr:      "href",
	}
}

// NewGoogle returns the Google provider querying baseURL.
// An empty baseURL uses GoogleSearchURL.
func NewGoogle(baseURL string) Provider {
	if baseURL == "" {
		baseURL = GoogleSearchURL
	}
	return &selectorProvider{
		name:      "google",
		baseURL:   baseURL,
		pageSize:  GooglePageSize,
		params:    GoogleParams,
		container: "#ires",
		selector:  "#ires tr a img",
		attr:      "src",
	}
}
