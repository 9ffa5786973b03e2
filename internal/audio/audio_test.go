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

package audio

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("RIFFdata"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := New(newTestLogger())

	name, err := f.Download(context.Background(), srv.URL+"/wavs/fall.wav", dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if name != "fall.wav" {
		t.Errorf("name = %q, want %q", name, "fall.wav")
	}

	data, err := os.ReadFile(filepath.Join(dir, "fall.wav"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "RIFFdata" {
		t.Errorf("file contents = %q", data)
	}

	if Token(name) != "[sound:fall.wav]" {
		t.Errorf("Token = %q", Token(name))
	}
}

func TestDownloadMissingExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("RIFFdata"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := New(newTestLogger())

	name, err := f.Download(context.Background(), srv.URL+"/audio/F0011700", dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if name != "F0011700.wav" {
		t.Errorf("name = %q, want %q", name, "F0011700.wav")
	}
}

func TestDownloadMissingDir(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("RIFFdata"))
	}))
	defer srv.Close()

	missing := filepath.Join(t.TempDir(), "nope")
	f := New(newTestLogger())

	if _, err := f.Download(context.Background(), srv.URL+"/fall.wav", missing); err == nil {
		t.Fatal("Download should fail when the directory does not exist")
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Error("Download must not create the directory")
	}
}

func TestDownloadBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := New(newTestLogger())

	if _, err := f.Download(context.Background(), srv.URL+"/fall.wav", dir); err == nil {
		t.Fatal("Download should fail on a bad status")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("no file should be written, got %v", entries)
	}
}
