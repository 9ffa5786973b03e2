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

// Package file appends composed cards to the local tab-separated card
// log.
package file

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/pgorywoda/fiszki/internal/card"
)

// DefaultName is the card log filename.
const DefaultName = "karty.txt"

// Sink appends cards to a tab-separated UTF-8 file.
type Sink struct {
	path string
	log  *slog.Logger
}

// New creates a Sink writing to path.
func New(path string, logger *slog.Logger) *Sink {
	return &Sink{
		path: path,
		log:  logger.With("component", "file-sink"),
	}
}

// Path returns the card log path.
func (s *Sink) Path() string {
	return s.path
}

// Add appends one card in the given field order. The file is opened,
// appended, flushed and closed for every card so a crash never loses more
// than the line being written.
func (s *Sink) Add(c *card.Card, order card.Order) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %q: %w", s.path, err)
	}
	if _, err := f.WriteString(c.TSV(order)); err != nil {
		f.Close()
		return fmt.Errorf("writing %q: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", s.path, err)
	}
	s.log.Debug("card appended", "path", s.path)
	return nil
}

// DeleteLast removes the trailing line of the card log and returns it
// without its terminator. After appending a card, DeleteLast restores the
// file byte for byte to its pre-append state.
func (s *Sink) DeleteLast() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", s.path, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%q is empty", s.path)
	}

	trimmed := bytes.TrimSuffix(data, []byte("\n"))
	var removed []byte
	if i := bytes.LastIndexByte(trimmed, '\n'); i >= 0 {
		removed = trimmed[i+1:]
		trimmed = trimmed[:i+1]
	} else {
		removed = trimmed
		trimmed = nil
	}

	if err := os.WriteFile(s.path, trimmed, 0o644); err != nil {
		return "", fmt.Errorf("rewriting %q: %w", s.path, err)
	}
	return string(removed), nil
}
