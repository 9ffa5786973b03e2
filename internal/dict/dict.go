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

// Package dict defines the normalized dictionary data model and the
// adapter interface implemented by each remote source.
package dict

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by a lookup when the source has no entry for the
// phrase. A response that cannot be parsed into required fields also maps
// to ErrNotFound.
var ErrNotFound = errors.New("no entry found")

// TransportError wraps a network failure (timeout, DNS, TCP, unexpected
// status) against a dictionary source.
type TransportError struct {
	Host string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("connecting to %s: %v", e.Host, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Entry is the normalized result of a dictionary lookup.
type Entry struct {
	// Phrase is the canonical form of the searched phrase.
	Phrase string

	// Definitions is never empty for a successful lookup.
	Definitions []string

	PartsOfSpeech []string
	Etymologies   []string

	// Illustrations are idiom usage examples (idioms source only).
	Illustrations []string

	// AudioRef is an adapter-specific audio locator, or empty.
	AudioRef string
}

// SynonymGroup is one thesaurus result cluster.
type SynonymGroup struct {
	POS      string
	Gloss    string
	Synonyms []string
	Examples []string
}

// Lookup is implemented by dictionary source adapters.
type Lookup interface {
	// Lookup fetches the normalized entry for a phrase. It returns
	// ErrNotFound when the source has no entry and a *TransportError on
	// network failure.
	Lookup(ctx context.Context, phrase string) (*Entry, error)
}

// Thesaurus is implemented by synonym source adapters.
type Thesaurus interface {
	// Groups fetches synonym groups for a phrase. A missing phrase yields
	// an empty slice, not an error.
	Groups(ctx context.Context, phrase string) ([]SynonymGroup, error)
}
