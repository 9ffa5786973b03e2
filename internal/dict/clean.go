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

package dict

import (
	"regexp"
	"strings"

	"github.com/pgorywoda/fiszki/internal/folding"
)

// bulletPrefix matches the numeric and letter bullet prefixes that sources
// repeat inside definition text ("1.", "a.", "12.").
var bulletPrefix = regexp.MustCompile(`^(?:\d+\.|[a-z]\.)\s+`)

// editorialSuffixes are cut off a definition at their first occurrence.
var editorialSuffixes = []string{
	" See Usage Note at",
	" See Synonyms at",
}

// parenthetical matches a parenthesized segment with surrounding space.
var parenthetical = regexp.MustCompile(`\s*\([^()]*\)`)

// CanonicalPhrase derives the canonical search phrase from the entry
// headers of a source. The first header wins, except that an all-lowercase
// variant of it is preferred when the page lists both (disambiguation
// headers list capitalized and lowercase forms of the same word).
// Hyphenation marks are stripped and parenthetical variants flattened.
func CanonicalPhrase(headers []string) string {
	if len(headers) == 0 {
		return ""
	}
	head := headers[0]
	lower := strings.ToLower(head)
	for _, h := range headers[1:] {
		if h == lower && head != lower {
			head = h
			break
		}
	}
	head = folding.Fold(head)
	head = FlattenParens(head)
	return strings.ToLower(head)
}

// FlattenParens removes parenthetical variants from a header or phrase.
func FlattenParens(s string) string {
	return folding.Fold(parenthetical.ReplaceAllString(s, ""))
}

// CleanDefinition normalizes a scraped definition: whitespace folded,
// repeated bullet prefixes removed, editorial suffixes cut off.
func CleanDefinition(s string) string {
	s = folding.Fold(s)
	for {
		stripped := bulletPrefix.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}
	for _, suffix := range editorialSuffixes {
		if i := strings.Index(s, suffix); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
