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

package file

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgorywoda/fiszki/internal/card"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAdd(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultName)
	s := New(path, newTestLogger())

	c := &card.Card{Phrase: "fall", Definition: "To drop."}
	require.NoError(t, s.Add(c, card.DefaultOrder))
	require.NoError(t, s.Add(c, card.DefaultOrder))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "To drop.\t\tfall\t\t\t\t", lines[0])
}

func TestDeleteLastRestoresPreAppendState(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultName)
	s := New(path, newTestLogger())

	require.NoError(t, s.Add(&card.Card{Phrase: "one"}, card.DefaultOrder))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, s.Add(&card.Card{Phrase: "two"}, card.DefaultOrder))

	removed, err := s.DeleteLast()
	require.NoError(t, err)
	assert.Contains(t, removed, "two")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeleteLastSingleLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultName)
	s := New(path, newTestLogger())

	require.NoError(t, s.Add(&card.Card{Phrase: "one"}, card.DefaultOrder))

	_, err := s.DeleteLast()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestDeleteLastEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultName)
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s := New(path, newTestLogger())
	_, err := s.DeleteLast()
	assert.Error(t, err)
}

func TestDeleteLastMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), DefaultName), newTestLogger())
	_, err := s.DeleteLast()
	assert.Error(t, err)
}
