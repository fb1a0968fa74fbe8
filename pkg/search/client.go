package search

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"imgcollect/pkg/config"
	errs "imgcollect/pkg/errors"
	"imgcollect/pkg/logger"
)

// Client performs search page and image requests. Every request uses the
// same timeout; nothing is retried.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	logger     logger.Logger
}

// NewClient creates a new search client
func NewClient(timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{
			"User-Agent":      config.DefaultConfig().Search.UserAgent,
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		},
		logger: log,
	}
}

// NewClientWithConfig creates a client from the search section of the config
func NewClientWithConfig(cfg *config.SearchConfig, log logger.Logger) *Client {
	c := NewClient(cfg.Timeout, log)
	if cfg.UserAgent != "" {
		c.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.AcceptLanguage != "" {
		c.SetHeader("Accept-Language", cfg.AcceptLanguage)
	}
	return c
}

// SetHeader sets a header sent with every request
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetHeaders sets multiple headers at once
func (c *Client) SetHeaders(headers map[string]string) {
	for key, value := range headers {
		c.headers[key] = value
	}
}

// Timeout returns the per-request timeout
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// get performs a GET request with the configured headers and checks the status.
// The caller must close the response body.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeInvalidArgument,
			Message: fmt.Sprintf("failed to create request: %v", err),
		}
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"url":      rawURL,
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
		}
	}

	logger.LogRequest(c.logger, req.Method, rawURL, resp.StatusCode, duration)

	if err := checkResponseStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp, nil
}

// checkResponseStatus maps non-2xx responses to typed errors
func checkResponseStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &errs.Error{
		Type:    errs.FromStatusCode(resp.StatusCode),
		Message: fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, resp.Request.URL.Redacted()),
		Code:    resp.StatusCode,
	}
}

// checkHTML rejects responses that declare a non-HTML content type. A
// missing Content-Type is accepted.
func checkHTML(resp *http.Response) error {
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil && (mediaType == "text/html" || mediaType == "application/xhtml+xml") {
		return nil
	}
	return &errs.Error{
		Type:    errs.ErrorTypeParsing,
		Message: fmt.Sprintf("expected HTML from %s, got %q", resp.Request.URL.Redacted(), contentType),
		Code:    resp.StatusCode,
	}
}

// FetchDocument downloads a results page and parses it as HTML
func (c *Client) FetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	resp, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkHTML(resp); err != nil {
		c.logger.WarnWithFields("Results page is not HTML", map[string]interface{}{
			"url":          pageURL,
			"content_type": resp.Header.Get("Content-Type"),
		})
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &errs.Error{
			Type:    errs.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse HTML: %v", err),
			Code:    resp.StatusCode,
		}
	}
	// Relative links resolve against the final URL after redirects
	doc.Url = resp.Request.URL

	return doc, nil
}

// DownloadImage fetches the raw bytes at imageURL. The body is not inspected.
func (c *Client) DownloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	resp, err := c.get(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read image body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	c.logger.DebugWithFields("image downloaded", map[string]interface{}{
		"url":  imageURL,
		"size": len(data),
	})

	return data, nil
}
