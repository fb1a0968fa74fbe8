package search

import (
	"net/url"
	"strconv"
)

const (
	// BingSearchURL is the Bing image search endpoint
	BingSearchURL = "https://www.bing.com/images/search"

	// GoogleSearchURL is the Google search endpoint, used with tbm=isch
	GoogleSearchURL = "https://www.google.com/search"

	// BingPageSize is the number of results Bing returns per request
	BingPageSize = 28

	// GooglePageSize is the number of results Google returns per request
	GooglePageSize = 20
)

// BingParams builds the query parameters for one Bing results page.
// The qft filter restricts results to images containing faces.
func BingParams(query string, offset int) url.Values {
	params := url.Values{}
	params.Set("q", query)
	params.Set("form", "A")
	params.Set("qft", "+filterui:face-face")
	params.Set("first", strconv.Itoa(offset))
	params.Set("count", strconv.Itoa(BingPageSize))
	return params
}

// GoogleParams builds the query parameters for one Google image results page
func GoogleParams(query string, offset int) url.Values {
	params := url.Values{}
	params.Set("q", query)
	params.Set("tbm", "isch")
	params.Set("tbs", "itp:face")
	params.Set("start", strconv.Itoa(offset))
	return params
}

// buildURL joins base and params, keeping any query already present on base
func buildURL(base string, params url.Values) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + params.Encode()
	}
	q := u.Query()
	for k, vs := range params {
		q[k] = vs
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// resolveLink resolves a possibly relative link against the page URL
func resolveLink(pageURL *url.URL, link string) string {
	if pageURL == nil {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	return pageURL.ResolveReference(ref).String()
}
