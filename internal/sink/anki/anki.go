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

// Package anki submits composed cards to a running Anki instance through
// the AnkiConnect add-on's local HTTP service.
package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pgorywoda/fiszki/internal/card"
)

// DefaultServer is the AnkiConnect listen address.
const DefaultServer = "http://localhost:8765"

// CacheName is the per-note field mapping cache filename.
const CacheName = "ankiconnect.yml"

// Kind classifies an addNote failure for remediation messages.
type Kind int

const (
	// KindOther is any error not matched below. The raw message is shown.
	KindOther Kind = iota

	// KindNoNote means the configured note type does not exist.
	KindNoNote

	// KindEmpty means the note's first field ended up unmapped.
	KindEmpty

	// KindDuplicate means the collection already holds the card.
	KindDuplicate

	// KindUnavailable means Anki is running but the collection is not open.
	KindUnavailable

	// KindNoDeck means the configured deck does not exist.
	KindNoDeck
)

// NoteError is a classified error response from AnkiConnect.
type NoteError struct {
	Kind Kind
	Raw  string
}

func (e *NoteError) Error() string {
	return e.Raw
}

func classify(msg string) *NoteError {
	kind := KindOther
	switch {
	case strings.HasPrefix(msg, "model was not found"):
		kind = KindNoNote
	case strings.HasPrefix(msg, "cannot create note because it is empty"):
		kind = KindEmpty
	case strings.HasPrefix(msg, "cannot create note because it is a duplicate"):
		kind = KindDuplicate
	case strings.HasPrefix(msg, "collection is not available"):
		kind = KindUnavailable
	case strings.HasPrefix(msg, "deck was not found"):
		kind = KindNoDeck
	}
	return &NoteError{Kind: kind, Raw: msg}
}

// fieldKeywords maps lowercase substrings of a note's declared field names
// to card slots. Slots are probed in this order; the first match wins.
var fieldKeywords = []struct {
	slot     card.Slot
	keywords []string
}{
	{card.SlotPhrase, []string{"słowo", "slowo", "word"}},
	{card.SlotDefinition, []string{"defin", "gloss"}},
	{card.SlotSynonyms, []string{"disamb", "synon"}},
	{card.SlotSentence, []string{"zdanie", "sentence"}},
	{card.SlotPartsOfSpeech, []string{"części", "czesci", "part of speech", "parts of speech"}},
	{card.SlotEtymology, []string{"etym"}},
	{card.SlotAudio, []string{"audio", "sound", "pronunciation", "wymowa", "dźwięk", "dzwiek"}},
}

func slotFor(field string) (card.Slot, bool) {
	lower := strings.ToLower(field)
	for _, fk := range fieldKeywords {
		for _, kw := range fk.keywords {
			if strings.Contains(lower, kw) {
				return fk.slot, true
			}
		}
	}
	return "", false
}

// Client talks to one AnkiConnect endpoint. Field mappings resolved for a
// note name are cached on disk so later sessions skip the probe.
type Client struct {
	server    string
	cachePath string
	client    *http.Client
	log       *slog.Logger

	// cache maps note name to declared-field-name -> slot.
	cache map[string]map[string]string
}

// NewClient creates a Client for server, loading the mapping cache from
// cachePath if it exists.
func NewClient(server, cachePath string, logger *slog.Logger) *Client {
	c := &Client{
		server:    server,
		cachePath: cachePath,
		client:    &http.Client{},
		log:       logger.With("component", "anki-sink"),
		cache:     map[string]map[string]string{},
	}
	if data, err := os.ReadFile(cachePath); err == nil {
		if err := yaml.Unmarshal(data, &c.cache); err != nil {
			c.log.Warn("discarding unreadable mapping cache", "path", cachePath, "error", err)
			c.cache = map[string]map[string]string{}
		}
	}
	return c
}

type envelope struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

func (c *Client) invoke(ctx context.Context, action string, params any, result any) error {
	body, err := json.Marshal(envelope{Action: action, Version: 6, Params: params})
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", action, err)
	}
	defer resp.Body.Close()

	var env response
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding %s response: %w", action, err)
	}
	if env.Error != nil && *env.Error != "" {
		return classify(*env.Error)
	}
	if result != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, result); err != nil {
			return fmt.Errorf("decoding %s result: %w", action, err)
		}
	}
	return nil
}

// ModelNames returns the note type names known to Anki.
func (c *Client) ModelNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.invoke(ctx, "modelNames", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// fields resolves the declared-field-to-slot mapping for note, probing
// AnkiConnect on the first use of a note name and caching the result.
func (c *Client) fields(ctx context.Context, note string) (map[string]string, error) {
	if m, ok := c.cache[note]; ok {
		return m, nil
	}

	var declared []string
	params := map[string]string{"modelName": note}
	if err := c.invoke(ctx, "modelFieldNames", params, &declared); err != nil {
		return nil, err
	}

	m := map[string]string{}
	for _, field := range declared {
		if slot, ok := slotFor(field); ok {
			m[field] = string(slot)
		} else {
			c.log.Debug("declared field matches no slot", "note", note, "field", field)
		}
	}
	c.cache[note] = m
	if err := c.saveCache(); err != nil {
		c.log.Warn("cannot persist mapping cache", "path", c.cachePath, "error", err)
	}
	return m, nil
}

func (c *Client) saveCache() error {
	data, err := yaml.Marshal(c.cache)
	if err != nil {
		return fmt.Errorf("encoding mapping cache: %w", err)
	}
	if err := os.WriteFile(c.cachePath, data, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", c.cachePath, err)
	}
	return nil
}

// NoteParams carries the destination settings for AddNote.
type NoteParams struct {
	Deck            string
	Note            string
	Tags            string
	AllowDuplicates bool
	DupScope        string
}

type noteOptions struct {
	AllowDuplicate bool   `json:"allowDuplicate"`
	DuplicateScope string `json:"duplicateScope"`
}

type notePayload struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Tags      []string          `json:"tags"`
	Options   noteOptions       `json:"options"`
}

func splitTags(csv string) []string {
	var tags []string
	for _, t := range strings.Split(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	if tags == nil {
		tags = []string{}
	}
	return tags
}

// AddNote submits one card. Failures come back as *NoteError when
// AnkiConnect answered, or a plain error when it could not be reached.
func (c *Client) AddNote(ctx context.Context, crd *card.Card, p NoteParams) error {
	mapping, err := c.fields(ctx, p.Note)
	if err != nil {
		return err
	}

	fields := map[string]string{}
	for declared, slot := range mapping {
		fields[declared] = crd.Get(card.Slot(slot))
	}

	payload := map[string]notePayload{
		"note": {
			DeckName:  p.Deck,
			ModelName: p.Note,
			Fields:    fields,
			Tags:      splitTags(p.Tags),
			Options: noteOptions{
				AllowDuplicate: p.AllowDuplicates,
				DuplicateScope: p.DupScope,
			},
		},
	}
	if err := c.invoke(ctx, "addNote", payload, nil); err != nil {
		return err
	}
	c.log.Debug("note added", "deck", p.Deck, "note", p.Note)
	return nil
}

// modelCSS styles the bundled note type.
const modelCSS = `.card {
  font-family: arial;
  font-size: 20px;
  text-align: center;
  color: black;
  background-color: white;
}`

type cardTemplate struct {
	Name  string `json:"Name"`
	Front string `json:"Front"`
	Back  string `json:"Back"`
}

type createModelParams struct {
	ModelName     string         `json:"modelName"`
	InOrderFields []string       `json:"inOrderFields"`
	CSS           string         `json:"css"`
	CardTemplates []cardTemplate `json:"cardTemplates"`
}

// CreateModel registers a new note type with one front/back template over
// the seven card slots.
func (c *Client) CreateModel(ctx context.Context, name string) error {
	fields := make([]string, 0, len(card.DefaultOrder))
	for _, slot := range card.DefaultOrder {
		fields = append(fields, string(slot))
	}

	params := createModelParams{
		ModelName:     name,
		InOrderFields: fields,
		CSS:           modelCSS,
		CardTemplates: []cardTemplate{
			{
				Name:  "Card 1",
				Front: "{{definition}}<br>{{synonyms}}<br>{{sentence}}",
				Back:  "{{phrase}}<br>{{parts_of_speech}}<br>{{etymology}}<br>{{audio}}",
			},
		},
	}
	if err := c.invoke(ctx, "createModel", params, nil); err != nil {
		return err
	}
	c.log.Debug("note type created", "note", name)
	return nil
}
