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

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgorywoda/fiszki/internal/card"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yml"))
	require.NoError(t, err)
	assert.True(t, cfg.CreateCards)
	assert.Equal(t, card.DefaultOrder, cfg.Order())
	assert.Equal(t, "collection", cfg.DupScope)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := Default()
	cfg.AnkiConnect = true
	cfg.Deck = "Angielski"
	cfg.TextWidth = Dim{Value: 100, Auto: true}
	cfg.BulkDefaults["pos"] = -1
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.AnkiConnect)
	assert.Equal(t, "Angielski", loaded.Deck)
	assert.Equal(t, Dim{Value: 100, Auto: true}, loaded.TextWidth)
	assert.Equal(t, -1, loaded.BulkDefault("pos"))
}

func TestSaveOverwritesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := Default()
	require.NoError(t, cfg.Save(path))
	cfg.Deck = "zmieniony"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "zmieniony", loaded.Deck)
}

func TestDimString(t *testing.T) {
	assert.Equal(t, "79", Dim{Value: 79}.String())
	assert.Equal(t, "100* auto", Dim{Value: 100, Auto: true}.String())
}

func TestOrderFallsBackWhenDamaged(t *testing.T) {
	cfg := Default()
	cfg.FieldOrder = []string{"definition", "definition", "phrase", "sentence", "parts_of_speech", "etymology", "audio"}
	assert.Equal(t, card.DefaultOrder, cfg.Order())

	cfg.FieldOrder = []string{"definition"}
	assert.Equal(t, card.DefaultOrder, cfg.Order())
}

func TestSetColor(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.SetColor("def1", "magenta"))
	assert.Equal(t, "magenta", cfg.Colors["def1"])

	assert.Error(t, cfg.SetColor("def1", "mauve"))
	assert.Error(t, cfg.SetColor("bogus", "red"))
}

func TestPaletteHas17Names(t *testing.T) {
	assert.Len(t, PaletteNames(), 17)
}
