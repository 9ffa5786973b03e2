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

// Package sel turns user answers into field selections and joined text
// fragments.
package sel

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pgorywoda/fiszki/internal/config"
)

// Field joiners, applied between picked fragments.
const (
	JoinBreak = "<br>"
	JoinPipe  = " | "
	JoinSpace = " "
)

// Kind discriminates the Selection variants.
type Kind int

// The five selection variants.
const (
	// None skips the field; it becomes an empty string.
	None Kind = iota

	// All picks every item.
	All

	// Indices picks the listed 1-based items.
	Indices

	// Literal carries user-supplied text.
	Literal

	// Cancel aborts the whole card.
	Cancel
)

// Selection is the parsed result of one user answer for one field.
type Selection struct {
	Kind    Kind
	Indices []int
	Text    string
}

// Parse maps an answer line onto exactly one Selection variant. It is
// total: every string parses.
func Parse(s string) Selection {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "-s":
		return Selection{Kind: None}
	case strings.EqualFold(s, "all"):
		return Selection{Kind: All}
	case strings.HasPrefix(s, "/"):
		return Selection{Kind: Literal, Text: s[1:]}
	}

	if n, err := strconv.Atoi(s); err == nil {
		return fromInt(n)
	}

	if strings.Contains(s, ",") {
		var picked []int
		for _, tok := range strings.Split(s, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(tok))
			if err != nil {
				// Non-integers are silently dropped.
				continue
			}
			picked = append(picked, n)
		}
		return Selection{Kind: Indices, Indices: picked}
	}

	return Selection{Kind: Cancel}
}

// FromBulkDefault maps a configured bulk default onto a Selection the same
// way a typed integer would parse.
func FromBulkDefault(n int) Selection {
	return fromInt(n)
}

func fromInt(n int) Selection {
	if n == -1 {
		return Selection{Kind: All}
	}
	return Selection{Kind: Indices, Indices: []int{n}}
}

// Pick joins the selected items with the field joiner. Out-of-range and
// repeated indices are silently dropped.
func (s Selection) Pick(items []string, joiner string) string {
	switch s.Kind {
	case All:
		return strings.Join(items, joiner)
	case Literal:
		return s.Text
	case Indices:
		var picked []string
		seen := map[int]bool{}
		for _, i := range s.Indices {
			if i < 1 || i > len(items) || seen[i] {
				continue
			}
			seen[i] = true
			picked = append(picked, items[i-1])
		}
		return strings.Join(picked, joiner)
	}
	return ""
}

// Selector prompts for fields and reads answers.
type Selector struct {
	in  *bufio.Scanner
	out io.Writer
	cfg *config.Config
}

// New creates a Selector reading answers from in.
func New(in io.Reader, out io.Writer, cfg *config.Config) *Selector {
	return &Selector{
		in:  bufio.NewScanner(in),
		out: out,
		cfg: cfg,
	}
}

// Ask prompts for one field and parses the answer. In bulk mode a field
// without the free flag is not prompted at all; the configured default
// answers for the user. io.EOF is returned when input runs out.
func (s *Selector) Ask(prompt, field string, free bool) (Selection, error) {
	if s.cfg.BulkAdd && !free {
		return FromBulkDefault(s.cfg.BulkDefault(field)), nil
	}

	fmt.Fprintf(s.out, "%s: ", prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return Selection{Kind: Cancel}, err
		}
		return Selection{Kind: Cancel}, io.EOF
	}
	return Parse(s.in.Text()), nil
}
