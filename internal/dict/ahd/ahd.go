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

// Package ahd looks up phrases in the American Heritage Dictionary.
package ahd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/k3a/html2text"

	"github.com/pgorywoda/fiszki/internal/dict"
	"github.com/pgorywoda/fiszki/internal/folding"
)

const defaultBaseURL = "https://www.ahdictionary.com"

// Client is the general dictionary adapter.
type Client struct {
	baseURL string

	// httpClient is reused across lookups to benefit from keep-alive and
	// cookies.
	httpClient *http.Client

	log *slog.Logger
}

// New creates a Client against the default host.
func New(logger *slog.Logger) *Client {
	return NewWithURL(defaultBaseURL, logger)
}

// NewWithURL creates a Client against a custom base URL (for testing).
func NewWithURL(baseURL string, logger *slog.Logger) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
		log: logger.With("adapter", "ahd"),
	}
}

// Lookup implements [dict.Lookup].
func (c *Client) Lookup(ctx context.Context, phrase string) (*dict.Entry, error) {
	reqURL := c.baseURL + "/word/search.html?q=" + url.QueryEscape(phrase)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ahd: creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &dict.TransportError{Host: "AH Dictionary", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, dict.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &dict.TransportError{
			Host: "AH Dictionary",
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		c.log.DebugContext(ctx, "ahd parse failed", "phrase", phrase, "error", err)
		return nil, dict.ErrNotFound
	}

	entry := parseEntry(doc)
	if len(entry.Definitions) == 0 {
		return nil, dict.ErrNotFound
	}
	if entry.AudioRef != "" && strings.HasPrefix(entry.AudioRef, "/") {
		entry.AudioRef = c.baseURL + entry.AudioRef
	}

	c.log.DebugContext(ctx, "ahd response",
		"phrase", phrase,
		"definitions", len(entry.Definitions),
		"parts_of_speech", len(entry.PartsOfSpeech),
	)
	return entry, nil
}

// parseEntry normalizes the results markup into an Entry. The page lists
// one .rtseg block per headword variant; definitions live in .ds-list and
// .ds-single blocks, parts of speech in .pseg and etymology in .etyseg.
func parseEntry(doc *goquery.Document) *dict.Entry {
	entry := &dict.Entry{}

	results := doc.Find("#results")

	var headers []string
	results.Find(".rtseg").Each(func(_ int, s *goquery.Selection) {
		head := folding.Fold(s.Find("b").First().Text())
		if head != "" {
			headers = append(headers, head)
		}
	})
	entry.Phrase = dict.CanonicalPhrase(headers)

	results.Find(".ds-list, .ds-single").Each(func(_ int, s *goquery.Selection) {
		def := dict.CleanDefinition(nodeText(s))
		if def != "" {
			entry.Definitions = append(entry.Definitions, def)
		}
	})

	results.Find(".pseg").Each(func(_ int, s *goquery.Selection) {
		pos := folding.Fold(nodeText(s))
		if pos != "" {
			entry.PartsOfSpeech = append(entry.PartsOfSpeech, pos)
		}
	})

	results.Find(".etyseg").Each(func(_ int, s *goquery.Selection) {
		etym := folding.Fold(nodeText(s))
		if etym != "" {
			entry.Etymologies = append(entry.Etymologies, etym)
		}
	})

	if href, ok := results.Find(`a[href$=".wav"]`).First().Attr("href"); ok {
		entry.AudioRef = href
	}

	return entry
}

// nodeText flattens a node's inner HTML to plain text so nested markup and
// character entities survive intact.
func nodeText(s *goquery.Selection) string {
	h, err := s.Html()
	if err != nil {
		return s.Text()
	}
	return html2text.HTML2Text(h)
}
