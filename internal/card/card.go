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

// Package card defines the composed flashcard record and its seven
// semantic slots.
package card

import (
	"fmt"
	"strings"
)

// Slot names one of the seven semantic fields of a card.
type Slot string

// The seven card slots.
const (
	SlotDefinition    Slot = "definition"
	SlotSynonyms      Slot = "synonyms"
	SlotPhrase        Slot = "phrase"
	SlotSentence      Slot = "sentence"
	SlotPartsOfSpeech Slot = "parts_of_speech"
	SlotEtymology     Slot = "etymology"
	SlotAudio         Slot = "audio"
)

// Order is a permutation of the seven slots, indexed 0..6 for display
// positions 1..7.
type Order [7]Slot

// DefaultOrder is the documented default file-sink field order.
var DefaultOrder = Order{
	SlotDefinition,
	SlotSynonyms,
	SlotPhrase,
	SlotSentence,
	SlotPartsOfSpeech,
	SlotEtymology,
	SlotAudio,
}

// Slots lists all slots in default order.
var Slots = DefaultOrder[:]

// ParseSlot parses a user-supplied slot name.
func ParseSlot(s string) (Slot, error) {
	name := Slot(strings.ToLower(strings.TrimSpace(s)))
	for _, slot := range Slots {
		if name == slot {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown field: %q", s)
}

// Valid reports whether the order is a permutation of all seven slots.
func (o Order) Valid() bool {
	seen := map[Slot]bool{}
	for _, slot := range o {
		seen[slot] = true
	}
	return len(seen) == len(o)
}

// Card is one composed flashcard.
type Card struct {
	Definition    string
	Synonyms      string
	Phrase        string
	Sentence      string
	PartsOfSpeech string
	Etymology     string
	Audio         string
}

// Get returns the value of the given slot.
func (c *Card) Get(slot Slot) string {
	switch slot {
	case SlotDefinition:
		return c.Definition
	case SlotSynonyms:
		return c.Synonyms
	case SlotPhrase:
		return c.Phrase
	case SlotSentence:
		return c.Sentence
	case SlotPartsOfSpeech:
		return c.PartsOfSpeech
	case SlotEtymology:
		return c.Etymology
	case SlotAudio:
		return c.Audio
	}
	return ""
}

// Set assigns the value of the given slot.
func (c *Card) Set(slot Slot, value string) {
	switch slot {
	case SlotDefinition:
		c.Definition = value
	case SlotSynonyms:
		c.Synonyms = value
	case SlotPhrase:
		c.Phrase = value
	case SlotSentence:
		c.Sentence = value
	case SlotPartsOfSpeech:
		c.PartsOfSpeech = value
	case SlotEtymology:
		c.Etymology = value
	case SlotAudio:
		c.Audio = value
	}
}

// TSV renders the card as a single tab-separated line in the given field
// order, terminated by a line feed. Tabs and newlines inside field values
// are folded to spaces so the line stays a single record.
func (c *Card) TSV(order Order) string {
	fields := make([]string, 0, len(order))
	for _, slot := range order {
		fields = append(fields, sanitize(c.Get(slot)))
	}
	return strings.Join(fields, "\t") + "\n"
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
