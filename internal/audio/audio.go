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

// Package audio downloads pronunciation recordings to the card audio
// directory.
package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// Fetcher downloads recordings. The zero timeout of the default transport
// is kept; recordings are small and the dictionary lookup has already
// proven the network reachable.
type Fetcher struct {
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Fetcher.
func New(logger *slog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: http.DefaultClient,
		log:        logger.With("component", "audio"),
	}
}

// Token formats the saved filename the way the study tool expects.
func Token(name string) string {
	return "[sound:" + name + "]"
}

// Download fetches rawURL and writes it under dir, returning the saved
// filename. The directory must already exist; it is never created here. A
// basename without an extension is saved as .wav. The body is read in full
// before the file is written so a failed transfer never leaves a partial
// file behind.
func (f *Fetcher) Download(ctx context.Context, rawURL, dir string) (string, error) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("audio directory %q does not exist", dir)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("audio: bad url %q: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if path.Ext(name) == "" {
		name += ".wav"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("audio: creating request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("audio: fetching %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("audio: fetching %q: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("audio: reading %q: %w", rawURL, err)
	}

	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return "", fmt.Errorf("audio: writing %q: %w", target, err)
	}

	f.log.Debug("audio saved", "file", target, "bytes", len(body))
	return name, nil
}
