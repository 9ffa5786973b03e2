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

// Package config holds the durable user settings. The command interpreter
// is the only writer; every other component reads.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/pgorywoda/fiszki/internal/card"
)

// MaxDim bounds the width-like integer settings.
const MaxDim = 382

// Dim is a bounded integer dimension that can track the terminal size.
// It serializes as a bare integer, or as "100* auto" when it was last set
// from a terminal-width probe.
type Dim struct {
	Value int
	Auto  bool
}

// String implements fmt.Stringer.
func (d Dim) String() string {
	if d.Auto {
		return fmt.Sprintf("%d* auto", d.Value)
	}
	return strconv.Itoa(d.Value)
}

// MarshalYAML implements yaml.Marshaler.
func (d Dim) MarshalYAML() (interface{}, error) {
	if d.Auto {
		return d.String(), nil
	}
	return d.Value, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Dim) UnmarshalYAML(value *yaml.Node) error {
	var n int
	if err := value.Decode(&n); err == nil {
		*d = Dim{Value: n}
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	num, _, _ := strings.Cut(s, "*")
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return fmt.Errorf("bad dimension %q: %w", s, err)
	}
	*d = Dim{Value: n, Auto: strings.Contains(s, "auto")}
	return nil
}

// Config is the full persisted settings record.
type Config struct {
	// Field prompts.
	Sentence      bool `yaml:"pz"`
	Definitions   bool `yaml:"def"`
	PartsOfSpeech bool `yaml:"pos"`
	Etymologies   bool `yaml:"etym"`
	Thesaurus     bool `yaml:"syn"`
	SynExamples   bool `yaml:"psyn"`
	Illustrations bool `yaml:"pidiom"`
	Audio         bool `yaml:"audio"`
	ShowThesaurus bool `yaml:"disamb"`
	CreateCards   bool `yaml:"karty"`

	// Masking policies.
	FilterSubdefs    bool `yaml:"fs"`
	HideInSentence   bool `yaml:"upz"`
	HideInDefinition bool `yaml:"udef"`
	HideInThesaurus  bool `yaml:"udisamb"`
	HideInIdiom      bool `yaml:"uidiom"`
	HidePrepositions bool `yaml:"upreps"`

	// Display.
	ShowCard    bool `yaml:"showcard"`
	ShowGloss   bool `yaml:"showdisamb"`
	WrapText    bool `yaml:"wraptext"`
	BreakDefs   bool `yaml:"break"`
	TextWidth   Dim  `yaml:"textwidth"`
	DelimSize   Dim  `yaml:"delimsize"`
	Center      Dim  `yaml:"center"`
	Indent      int  `yaml:"indent"`

	// Emission.
	AnkiConnect     bool   `yaml:"ankiconnect"`
	AllowDuplicates bool   `yaml:"duplicates"`
	DupScope        string `yaml:"dupscope"`
	Note            string `yaml:"note"`
	Deck            string `yaml:"deck"`
	Tags            string `yaml:"tags"`
	AudioPath       string `yaml:"audio_path" env:"FISZKI_AUDIO_PATH"`
	Server          string `yaml:"server"`

	// Bulk mode.
	BulkAdd      bool           `yaml:"bulk"`
	BulkFreeDef  bool           `yaml:"bulk_free_def"`
	BulkFreeSyn  bool           `yaml:"bulk_free_syn"`
	BulkDefaults map[string]int `yaml:"bulk_defaults"`

	FieldOrder []string          `yaml:"fieldorder"`
	Colors     map[string]string `yaml:"colors"`
}

// BulkFields are the selection fields with a configurable bulk default.
var BulkFields = []string{"def", "pos", "etym", "syn", "psyn", "pidiom"}

// Default returns the documented default configuration.
func Default() *Config {
	order := make([]string, len(card.DefaultOrder))
	for i, slot := range card.DefaultOrder {
		order[i] = string(slot)
	}

	bulk := make(map[string]int, len(BulkFields))
	for _, f := range BulkFields {
		bulk[f] = 0
	}
	bulk["def"] = 1

	return &Config{
		Sentence:      true,
		Definitions:   true,
		PartsOfSpeech: true,
		Etymologies:   true,
		Thesaurus:     true,
		SynExamples:   false,
		Illustrations: true,
		Audio:         true,
		ShowThesaurus: true,
		CreateCards:   true,

		HideInSentence:   true,
		HideInDefinition: false,
		HideInThesaurus:  true,
		HideInIdiom:      true,
		HidePrepositions: false,

		ShowCard:  true,
		ShowGloss: true,
		WrapText:  true,
		BreakDefs: false,
		TextWidth: Dim{Value: 79},
		DelimSize: Dim{Value: 79},
		Center:    Dim{Value: 0},
		Indent:    0,

		AnkiConnect:     false,
		AllowDuplicates: false,
		DupScope:        "collection",
		Note:            "fiszki",
		Deck:            "Default",
		Tags:            "fiszki",
		AudioPath:       "karty_audio",
		Server:          "diki",

		BulkAdd:      false,
		BulkFreeDef:  false,
		BulkFreeSyn:  false,
		BulkDefaults: bulk,

		FieldOrder: order,
		Colors:     defaultColors(),
	}
}

// Order returns the configured file-sink field order, falling back to the
// default when the stored permutation is damaged.
func (c *Config) Order() card.Order {
	if len(c.FieldOrder) != len(card.DefaultOrder) {
		return card.DefaultOrder
	}
	var order card.Order
	for i, name := range c.FieldOrder {
		slot, err := card.ParseSlot(name)
		if err != nil {
			return card.DefaultOrder
		}
		order[i] = slot
	}
	if !order.Valid() {
		return card.DefaultOrder
	}
	return order
}

// SetOrder stores a field order.
func (c *Config) SetOrder(order card.Order) {
	names := make([]string, len(order))
	for i, slot := range order {
		names[i] = string(slot)
	}
	c.FieldOrder = names
}

// BulkDefault returns the configured default answer for a bulk field.
func (c *Config) BulkDefault(field string) int {
	return c.BulkDefaults[field]
}

// Load reads the config file at path, filling gaps with defaults. A
// missing file yields the default configuration.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}
	if cfg.BulkDefaults == nil {
		cfg.BulkDefaults = Default().BulkDefaults
	}
	if cfg.Colors == nil {
		cfg.Colors = defaultColors()
	}
	return cfg, nil
}

// Save writes the config atomically: marshal, write a temp file in the
// same directory, rename over the target.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.yml")
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing config %q: %w", path, err)
	}
	return nil
}
