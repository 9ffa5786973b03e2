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

package ahd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pgorywoda/fiszki/internal/dict"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const fallPage = `<html><body><div id="results">
<table><tr><td>
<div class="rtseg"><b>fall</b> <font>(fôl)</font>
<a href="/application/resources/wavs/F0011700.wav">audio</a></div>
<div class="pseg"><i>v.</i> <b>fell</b>, <b>fall·en</b>, <b>fall·ing</b></div>
<div class="ds-list"><b>1.</b> To drop or come down freely under the influence of gravity.</div>
<div class="ds-list"><b>2.</b> To drop oneself to a lower position. See Synonyms at <i>drop</i>.</div>
<div class="pseg"><i>n.</i></div>
<div class="ds-single">The act or an instance of falling.</div>
<div class="etyseg">[Middle English <i>fallen</i>, from Old English <i>feallan</i>.]</div>
</td></tr></table>
</div></body></html>`

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "fall" {
			t.Errorf("query = %q, want %q", got, "fall")
		}
		io.WriteString(w, fallPage)
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL, newTestLogger())
	entry, err := c.Lookup(context.Background(), "fall")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	want := &dict.Entry{
		Phrase: "fall",
		Definitions: []string{
			"To drop or come down freely under the influence of gravity.",
			"To drop oneself to a lower position.",
			"The act or an instance of falling.",
		},
		PartsOfSpeech: []string{
			"v. fell, fallen, falling",
			"n.",
		},
		Etymologies: []string{
			"[Middle English fallen, from Old English feallan.]",
		},
		AudioRef: srv.URL + "/application/resources/wavs/F0011700.wav",
	}
	if diff := cmp.Diff(want, entry); diff != "" {
		t.Errorf("Lookup (-want, +got):\n%s", diff)
	}
}

func TestLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `<html><body><div id="results"></div></body></html>`)
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL, newTestLogger())
	_, err := c.Lookup(context.Background(), "zzzz")
	if !errors.Is(err, dict.ErrNotFound) {
		t.Fatalf("Lookup error = %v, want ErrNotFound", err)
	}
}

func TestLookupTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL, newTestLogger())
	_, err := c.Lookup(context.Background(), "fall")
	if !dict.IsTransport(err) {
		t.Fatalf("Lookup error = %v, want transport error", err)
	}
}

func TestLookupConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := NewWithURL(srv.URL, newTestLogger())
	_, err := c.Lookup(context.Background(), "fall")
	if !dict.IsTransport(err) {
		t.Fatalf("Lookup error = %v, want transport error", err)
	}
}
