package provider

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
)

// ExcerptExtractor fills missing RSS descriptions from the article page.
type ExcerptExtractor struct {
	fetcher *fetcher
}

func (x *ExcerptExtractor) Run(data []byte, pageURL string) (string, string, error) {
	if len(data) == 0 {
		return "", "", fmt.Errorf("HTML data is empty")
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid page URL: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(data), u)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract content: %w", err)
	}

	excerpt := strings.TrimSpace(article.Excerpt)
	if excerpt == "" {
		return "", "", fmt.Errorf("no excerpt extracted from HTML data")
	}

	return excerpt, article.Image, nil
}

func (x *ExcerptExtractor) fill(ctx context.Context, entries []entry) {
	for i := range entries {
		e := &entries[i]
		if e.description != "" || e.url == "" {
			continue
		}

		data, err := x.fetcher.get(ctx, e.url, "text/html")
		if err != nil {
			slog.Debug("Excerpt fetch failed", "url", e.url, "error", err)
			continue
		}

		excerpt, image, err := x.Run(data, e.url)
		if err != nil {
			slog.Debug("Excerpt extraction failed", "url", e.url, "error", err)
			continue
		}

		e.description = plainText(excerpt)
		if e.image == "" {
			e.image = image
		}
	}
}
