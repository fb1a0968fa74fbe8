package collector

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher performs the HTTP work of a collection run
type Fetcher interface {
	FetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error)
	DownloadImage(ctx context.Context, imageURL string) ([]byte, error)
}
