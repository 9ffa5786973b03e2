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

package wordnet

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pgorywoda/fiszki/internal/dict"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const fallPage = `<html><body>
<h3>Noun</h3>
<ul>
<li>S: (n) fall, autumn (the season when the leaves fall from the trees; "in the fall of 1973")</li>
<li>S: (n) spill, tumble, fall (a sudden drop from an upright position; "he had a nasty spill"; "the fall broke his leg")</li>
</ul>
<h3>Verb</h3>
<ul>
<li>S: (v) fall (descend in free fall under the influence of gravity)</li>
</ul>
</body></html>`

func TestGroups(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("s"); got != "fall" {
			t.Errorf("query = %q, want %q", got, "fall")
		}
		io.WriteString(w, fallPage)
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL, newTestLogger())
	groups, err := c.Groups(context.Background(), "fall")
	if err != nil {
		t.Fatalf("Groups: %v", err)
	}

	want := []dict.SynonymGroup{
		{
			POS:      "n",
			Gloss:    "the season when the leaves fall from the trees",
			Synonyms: []string{"fall", "autumn"},
			Examples: []string{"in the fall of 1973"},
		},
		{
			POS:      "n",
			Gloss:    "a sudden drop from an upright position",
			Synonyms: []string{"spill", "tumble", "fall"},
			Examples: []string{"he had a nasty spill", "the fall broke his leg"},
		},
		{
			POS:      "v",
			Gloss:    "descend in free fall under the influence of gravity",
			Synonyms: []string{"fall"},
		},
	}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Errorf("Groups (-want, +got):\n%s", diff)
	}
}

func TestGroupsNotFoundFingerprint(t *testing.T) {
	// The "no entries" page is recognized by the length of its first h3.
	header := strings.Repeat("x", 48)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "<html><body><h3>"+header+"</h3></body></html>")
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL, newTestLogger())
	groups, err := c.Groups(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("Groups: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("Groups = %v, want empty", groups)
	}
}

func TestGroupsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL, newTestLogger())
	_, err := c.Groups(context.Background(), "fall")
	if !dict.IsTransport(err) {
		t.Fatalf("Groups error = %v, want transport error", err)
	}
}

func TestParseGroupRejectsJunk(t *testing.T) {
	if _, ok := parseGroup("Display Options: (Select your options)"); ok {
		t.Error("parseGroup should reject non-result lines")
	}
}
