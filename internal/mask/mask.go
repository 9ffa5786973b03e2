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

// Package mask hides a searched phrase and its inflected forms inside
// collected text so the resulting card does not give the answer away.
package mask

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ellipsis is the placeholder substituted for masked words.
const Ellipsis = "..."

// stopWords are never masked, regardless of policy.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "or": {}, "be": {},
	"do": {}, "does": {}, "not": {}, "if": {},
}

// prepositions are kept when the caller asks for them to be preserved
// (idiom illustrations with preposition hiding turned off).
var prepositions = map[string]struct{}{
	"about": {}, "above": {}, "across": {}, "after": {}, "against": {},
	"along": {}, "among": {}, "around": {}, "as": {}, "at": {},
	"before": {}, "behind": {}, "below": {}, "beneath": {}, "beside": {},
	"between": {}, "beyond": {}, "by": {}, "despite": {}, "down": {},
	"during": {}, "except": {}, "for": {}, "from": {}, "in": {},
	"inside": {}, "into": {}, "like": {}, "near": {}, "of": {},
	"off": {}, "on": {}, "onto": {}, "opposite": {}, "out": {},
	"outside": {}, "over": {}, "past": {}, "round": {}, "since": {},
	"than": {}, "through": {}, "to": {}, "towards": {}, "under": {},
	"underneath": {}, "unlike": {}, "until": {}, "up": {}, "upon": {},
	"via": {}, "with": {}, "within": {}, "without": {},
}

var titleCaser = cases.Title(language.English)

// IsPreposition reports whether the lowercase word is in the preposition set.
func IsPreposition(w string) bool {
	_, ok := prepositions[strings.ToLower(w)]
	return ok
}

// pattern is one substring substitution. Every replacement begins with the
// ellipsis placeholder and none of the generated patterns can match a
// literal ellipsis, which makes masking idempotent.
type pattern struct {
	match   string
	replace string
}

// wordPatterns generates the substitution patterns for a single word of the
// phrase: the word itself plus its deterministic inflected variants.
// Longer inflected patterns come first so they win over the bare word.
func wordPatterns(w string) []pattern {
	var pats []pattern
	if strings.HasSuffix(w, "ie") {
		pats = append(pats, pattern{w[:len(w)-2] + "ying", Ellipsis + "ying"})
	}
	if strings.HasSuffix(w, "y") {
		stem := w[:len(w)-1]
		pats = append(pats,
			pattern{stem + "ies", Ellipsis + "s"},
			pattern{stem + "ied", Ellipsis + "ed"},
		)
	}
	if strings.HasSuffix(w, "e") && !IsPreposition(w) {
		pats = append(pats, pattern{w[:len(w)-1] + "ing", Ellipsis + "ing"})
	}
	pats = append(pats, pattern{w, Ellipsis})
	return pats
}

// caseVariants returns the match string in every masked capitalization:
// as-is, lowercased, upper-cased and title-cased.
func caseVariants(s string) []string {
	variants := []string{s}
	for _, v := range []string{
		strings.ToLower(s),
		strings.ToUpper(s),
		titleCaser.String(s),
	} {
		if v != s {
			variants = append(variants, v)
		}
	}
	return variants
}

// Mask replaces occurrences of the phrase words and their inflected forms
// inside text with the ellipsis placeholder. Stop words are never masked.
// When keepPrepositions is true, words from the preposition set are kept
// as well.
func Mask(phrase, text string, keepPrepositions bool) string {
	for _, w := range strings.Fields(phrase) {
		lower := strings.ToLower(w)
		if _, ok := stopWords[lower]; ok {
			continue
		}
		if keepPrepositions {
			if _, ok := prepositions[lower]; ok {
				continue
			}
		}
		for _, p := range wordPatterns(w) {
			for _, m := range caseVariants(p.match) {
				// A match contained in its own replacement (degenerate
				// one-letter words) would break idempotence.
				if m == "" || strings.Contains(p.replace, m) {
					continue
				}
				text = strings.ReplaceAll(text, m, p.replace)
			}
		}
	}
	return text
}
