// Copyright 2025 The fiszki Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package farlex looks up phrases in the Farlex dictionary of idioms.
package farlex

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/k3a/html2text"

	"github.com/pgorywoda/fiszki/internal/dict"
	"github.com/pgorywoda/fiszki/internal/folding"
)

const defaultBaseURL = "https://idioms.thefreedictionary.com"

// Client is the idioms dictionary adapter. Requests are one-shot; the
// origin showed no benefit from session reuse.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Client against the default host.
func New(logger *slog.Logger) *Client {
	return NewWithURL(defaultBaseURL, logger)
}

// NewWithURL creates a Client against a custom base URL (for testing).
func NewWithURL(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "farlex"),
	}
}

// Lookup implements [dict.Lookup].
func (c *Client) Lookup(ctx context.Context, phrase string) (*dict.Entry, error) {
	reqURL := c.baseURL + "/" + url.PathEscape(phrase)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("farlex: creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &dict.TransportError{Host: "Farlex Idioms", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, dict.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &dict.TransportError{
			Host: "Farlex Idioms",
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		// Parse failures on the idiom path degrade to a plain miss.
		c.log.DebugContext(ctx, "farlex parse failed", "phrase", phrase, "error", err)
		return nil, dict.ErrNotFound
	}

	entry := parseEntry(doc)
	if len(entry.Definitions) == 0 {
		return nil, dict.ErrNotFound
	}

	c.log.DebugContext(ctx, "farlex response",
		"phrase", phrase,
		"definitions", len(entry.Definitions),
		"illustrations", len(entry.Illustrations),
	)
	return entry, nil
}

// parseEntry normalizes the Farlex idioms section: the headword is the h2
// above it, definitions are .ds-list blocks and illustrative sentences are
// .illustration spans.
func parseEntry(doc *goquery.Document) *dict.Entry {
	entry := &dict.Entry{}

	section := doc.Find(`section[data-src="FarlexIdi"]`).First()

	var headers []string
	if head := folding.Fold(section.Find("h2").First().Text()); head != "" {
		headers = append(headers, head)
	}
	entry.Phrase = dict.CanonicalPhrase(headers)

	section.Find(".ds-list").Each(func(_ int, s *goquery.Selection) {
		// Illustrations are nested inside the definition block and get
		// collected separately.
		s.Find(".illustration").Each(func(_ int, il *goquery.Selection) {
			if text := folding.Fold(il.Text()); text != "" {
				entry.Illustrations = append(entry.Illustrations, text)
			}
		})

		clone := s.Clone()
		clone.Find(".illustration").Remove()
		h, err := clone.Html()
		if err != nil {
			return
		}
		if def := dict.CleanDefinition(html2text.HTML2Text(h)); def != "" {
			entry.Definitions = append(entry.Definitions, def)
		}
	})

	return entry
}
