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

// Package folding normalizes text scraped from dictionary pages.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// ScrapeFolder folds text pulled out of dictionary HTML. It removes spaces
// from the beginning and end of the input, replaces all internal whitespace
// spans with a single ASCII space rune, and drops in-word hyphenation marks
// (soft hyphens, middle dots and zero-width characters) that upstream pages
// insert into headwords.
type ScrapeFolder struct {
	// notStart is true after encountering the first non-whitespace rune.
	notStart bool

	// wsSpan is true if the transformer is currently handling a whitespace span.
	wsSpan bool
}

// hyphenation marks stripped from headwords and definition text.
func isHyphenationMark(c rune) bool {
	switch c {
	case '\u00ad', '·', '‧', '\u200b', '\u200c', '\ufeff':
		return true
	}
	return false
}

// Transform implements [transform.Transformer.Transform].
func (w *ScrapeFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if isHyphenationMark(c) {
			nSrc += size
			continue
		}

		if unicode.IsSpace(c) {
			nSrc += size
			if !w.notStart {
				// Ignore leading whitespace.
				continue
			}
			// We are in an internal whitespace span.
			w.wsSpan = true
			continue
		}

		if w.wsSpan {
			// Emit a single space if we are coming out of a whitespace span.
			// NOTE: trailing whitespace is never emitted.
			spc := ' '
			if nDst+utf8.RuneLen(spc) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += utf8.EncodeRune(dst[nDst:], spc)
			w.wsSpan = false
		}
		w.notStart = true
		nSrc += size

		// Emit the character.
		// NOTE: we cannot use size here because c could be utf8.RuneError in
		// which case size would be 1 but the length of utf8.RuneError is 3.
		if nDst+utf8.RuneLen(c) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], c)
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *ScrapeFolder) Reset() {
	*w = ScrapeFolder{}
}

// Fold is a convenience wrapper that runs s through a [ScrapeFolder].
func Fold(s string) string {
	folded, _, err := transform.String(&ScrapeFolder{}, s)
	if err != nil {
		return s
	}
	return folded
}
