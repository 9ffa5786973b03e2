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

// Package diki resolves pronunciation recordings from diki.pl.
package diki

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pgorywoda/fiszki/internal/dict"
)

const defaultBaseURL = "https://www.diki.pl"

// POS hints biasing the recording choice for single-word phrases.
const (
	HintNone         = ""
	HintNoun         = "n"
	HintVerb         = "v"
	HintAdjective    = "adj"
	HintAdverb       = "adv"
	HintAbbreviation = "abbr"
)

// Client is the audio adapter.
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
		log:        logger.With("adapter", "diki"),
	}
}

// RecordingURL resolves the recording URL for a phrase. The hint biases
// the choice between per-part-of-speech recordings of single words. The
// original phrase is attempted first; on a miss the lookup is retried with
// parenthetical portions stripped.
func (c *Client) RecordingURL(ctx context.Context, phrase, hint string) (string, error) {
	recording, err := c.lookup(ctx, phrase, hint)
	if errors.Is(err, dict.ErrNotFound) {
		if trimmed := dict.FlattenParens(phrase); trimmed != phrase && trimmed != "" {
			return c.lookup(ctx, trimmed, hint)
		}
	}
	return recording, err
}

func (c *Client) lookup(ctx context.Context, phrase, hint string) (string, error) {
	reqURL := c.baseURL + "/slownik-angielskiego?q=" + url.QueryEscape(phrase)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("diki: creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &dict.TransportError{Host: "Diki", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &dict.TransportError{
			Host: "Diki",
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", dict.ErrNotFound
	}

	var candidates []string
	doc.Find(".audioIcon[data-audio-url]").Each(func(_ int, s *goquery.Selection) {
		if u, ok := s.Attr("data-audio-url"); ok && u != "" {
			candidates = append(candidates, u)
		}
	})
	if len(candidates) == 0 {
		return "", dict.ErrNotFound
	}

	chosen := choose(candidates, phrase, hint)
	if strings.HasPrefix(chosen, "/") {
		chosen = c.baseURL + chosen
	}

	c.log.DebugContext(ctx, "diki recording", "phrase", phrase, "url", chosen)
	return chosen, nil
}

// choose picks the best recording among candidates. Single words may have
// one recording per part of speech named like "fall-n.mp3"; the hint
// selects among them, an exact basename match beats everything else and
// the first candidate is the fallback.
func choose(candidates []string, phrase, hint string) string {
	slug := strings.ReplaceAll(strings.TrimSpace(phrase), " ", "_")
	singleWord := !strings.Contains(strings.TrimSpace(phrase), " ")

	if hint != HintNone && singleWord {
		for _, u := range candidates {
			if strings.TrimSuffix(path.Base(u), path.Ext(u)) == slug+"-"+hint {
				return u
			}
		}
	}
	for _, u := range candidates {
		if strings.TrimSuffix(path.Base(u), path.Ext(u)) == slug {
			return u
		}
	}
	return candidates[0]
}
