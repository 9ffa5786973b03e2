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

package render

import "strings"

// Wrapper is the word-greedy line wrapper used for all multi-line text.
type Wrapper struct {
	// TotalWidth is the full terminal width available.
	TotalWidth int

	// IndexWidth is the width consumed by the index prefix ("12. ").
	IndexWidth int

	// HangingIndent is added before continuation lines.
	HangingIndent int

	// RightGap is kept free at the right edge.
	RightGap int
}

// Wrap breaks text into lines. Words accumulate until the next one would
// exceed TotalWidth - IndexWidth - RightGap; continuation lines are
// prefixed with HangingIndent + IndexWidth spaces.
func (w Wrapper) Wrap(text string) string {
	usable := w.TotalWidth - w.IndexWidth - w.RightGap
	if usable < 1 {
		return text
	}

	indent := strings.Repeat(" ", w.HangingIndent+w.IndexWidth)

	var b strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		if lineLen == 0 {
			b.WriteString(word)
			lineLen = len([]rune(word))
			continue
		}
		if lineLen+1+len([]rune(word)) > usable {
			b.WriteString("\n")
			b.WriteString(indent)
			b.WriteString(word)
			lineLen = len([]rune(word))
			continue
		}
		b.WriteString(" ")
		b.WriteString(word)
		lineLen += 1 + len([]rune(word))
	}
	return b.String()
}
