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

// Package wordnet fetches synonym groups from the WordNet web interface.
package wordnet

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pgorywoda/fiszki/internal/dict"
	"github.com/pgorywoda/fiszki/internal/folding"
)

const defaultBaseURL = "http://wordnetweb.princeton.edu/perl/webwn"

// Client is the thesaurus adapter. Requests are one-shot.
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
		log:        logger.With("adapter", "wordnet"),
	}
}

// Groups implements [dict.Thesaurus].
func (c *Client) Groups(ctx context.Context, phrase string) ([]dict.SynonymGroup, error) {
	reqURL := c.baseURL + "?s=" + url.QueryEscape(phrase)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("wordnet: creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &dict.TransportError{Host: "WordNet", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &dict.TransportError{
			Host: "WordNet",
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil
	}

	if notFoundShape(doc) {
		return nil, nil
	}

	var groups []dict.SynonymGroup
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		if g, ok := parseGroup(folding.Fold(s.Text())); ok {
			groups = append(groups, g)
		}
	})

	c.log.DebugContext(ctx, "wordnet response", "phrase", phrase, "groups", len(groups))
	return groups, nil
}

// notFoundShape fingerprints the two known "no entries" page layouts by
// the length of the first h3 header. The heuristic is fragile against
// upstream layout changes, but a changed layout also yields zero parsed
// groups, so the worst case degrades to an empty result.
func notFoundShape(doc *goquery.Document) bool {
	h := doc.Find("h3").First().Text()
	return len(h) == 48 || len(h) == 117
}

var quoted = regexp.MustCompile(`"([^"]*)"`)

// parseGroup parses one result line of the shape
//
//	S: (n) fall, autumn (the season when leaves fall; "the fall of 1973")
//
// into a SynonymGroup.
func parseGroup(text string) (dict.SynonymGroup, bool) {
	var g dict.SynonymGroup

	text = strings.TrimSpace(strings.TrimPrefix(text, "S:"))
	if !strings.HasPrefix(text, "(") {
		return g, false
	}
	posEnd := strings.Index(text, ")")
	if posEnd < 0 {
		return g, false
	}
	g.POS = text[1:posEnd]

	rest := strings.TrimSpace(text[posEnd+1:])
	synPart := rest
	if open := strings.Index(rest, "("); open >= 0 {
		synPart = strings.TrimSpace(rest[:open])
		content := rest[open+1:]
		if end := strings.LastIndex(content, ")"); end >= 0 {
			content = content[:end]
		}
		for _, m := range quoted.FindAllStringSubmatch(content, -1) {
			if ex := strings.TrimSpace(m[1]); ex != "" {
				g.Examples = append(g.Examples, ex)
			}
		}
		gloss := quoted.ReplaceAllString(content, "")
		g.Gloss = strings.Trim(strings.TrimSpace(gloss), "; ")
	}

	for _, syn := range strings.Split(synPart, ",") {
		if syn = strings.TrimSpace(syn); syn != "" {
			g.Synonyms = append(g.Synonyms, syn)
		}
	}
	if len(g.Synonyms) == 0 {
		return g, false
	}
	return g, true
}
