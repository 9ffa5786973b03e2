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

package sel

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pgorywoda/fiszki/internal/config"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Selection
	}{
		{"", Selection{Kind: None}},
		{"   ", Selection{Kind: None}},
		{"-s", Selection{Kind: None}},
		{"all", Selection{Kind: All}},
		{"ALL", Selection{Kind: All}},
		{"-1", Selection{Kind: All}},
		{"3", Selection{Kind: Indices, Indices: []int{3}}},
		{"0", Selection{Kind: Indices, Indices: []int{0}}},
		{"1,3", Selection{Kind: Indices, Indices: []int{1, 3}}},
		{"1, x, 3", Selection{Kind: Indices, Indices: []int{1, 3}}},
		{"/he took a fall", Selection{Kind: Literal, Text: "he took a fall"}},
		{"gibberish", Selection{Kind: Cancel}},
		{"1 3", Selection{Kind: Cancel}},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got := Parse(test.input)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("Parse(%q) (-want, +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestPick(t *testing.T) {
	items := []string{"one", "two", "three"}

	tests := []struct {
		name     string
		s        Selection
		joiner   string
		expected string
	}{
		{"all", Selection{Kind: All}, JoinBreak, "one<br>two<br>three"},
		{"none", Selection{Kind: None}, JoinBreak, ""},
		{"cancel", Selection{Kind: Cancel}, JoinBreak, ""},
		{"indices", Selection{Kind: Indices, Indices: []int{1, 3}}, JoinBreak, "one<br>three"},
		{"out of range dropped", Selection{Kind: Indices, Indices: []int{0, 2, 9}}, JoinPipe, "two"},
		{"duplicates dropped", Selection{Kind: Indices, Indices: []int{2, 2}}, JoinSpace, "two"},
		{"literal", Selection{Kind: Literal, Text: "własne zdanie"}, JoinBreak, "własne zdanie"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.s.Pick(items, test.joiner)
			if got != test.expected {
				t.Errorf("Pick = %q, want %q", got, test.expected)
			}
		})
	}
}

func TestAskBulkSuppressesPrompt(t *testing.T) {
	cfg := config.Default()
	cfg.BulkAdd = true
	cfg.BulkDefaults["pos"] = 1
	cfg.BulkDefaults["etym"] = 0
	cfg.BulkDefaults["def"] = -1

	var out strings.Builder
	s := New(strings.NewReader(""), &out, cfg)

	got, err := s.Ask("Dodaj części mowy", "pos", false)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if diff := cmp.Diff(Selection{Kind: Indices, Indices: []int{1}}, got); diff != "" {
		t.Errorf("Ask pos (-want, +got):\n%s", diff)
	}

	got, err = s.Ask("Dodaj definicje", "def", false)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got.Kind != All {
		t.Errorf("Ask def = %+v, want All", got)
	}

	if out.Len() != 0 {
		t.Errorf("no prompt should be written in bulk mode, got %q", out.String())
	}
}

func TestAskBulkFreeFlagPrompts(t *testing.T) {
	cfg := config.Default()
	cfg.BulkAdd = true
	cfg.BulkFreeDef = true

	var out strings.Builder
	s := New(strings.NewReader("2\n"), &out, cfg)

	got, err := s.Ask("Dodaj definicje", "def", cfg.BulkFreeDef)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if diff := cmp.Diff(Selection{Kind: Indices, Indices: []int{2}}, got); diff != "" {
		t.Errorf("Ask (-want, +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "Dodaj definicje") {
		t.Errorf("prompt missing, got %q", out.String())
	}
}

func TestAskEOF(t *testing.T) {
	cfg := config.Default()
	var out strings.Builder
	s := New(strings.NewReader(""), &out, cfg)

	sel, err := s.Ask("Dodaj definicje", "def", true)
	if err != io.EOF {
		t.Fatalf("Ask error = %v, want io.EOF", err)
	}
	if sel.Kind != Cancel {
		t.Errorf("Ask = %+v, want Cancel", sel)
	}
}
