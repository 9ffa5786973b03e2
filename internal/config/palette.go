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
	"fmt"
	"sort"

	"github.com/fatih/color"
)

// palette is the closed set of 17 color names a user can assign to a
// display element. Values are parsed once here, never evaluated from
// config text.
var palette = map[string]*color.Color{
	"black":        color.New(color.FgBlack),
	"red":          color.New(color.FgRed),
	"green":        color.New(color.FgGreen),
	"yellow":       color.New(color.FgYellow),
	"blue":         color.New(color.FgBlue),
	"magenta":      color.New(color.FgMagenta),
	"cyan":         color.New(color.FgCyan),
	"white":        color.New(color.FgWhite),
	"lightblack":   color.New(color.FgHiBlack),
	"lightred":     color.New(color.FgHiRed),
	"lightgreen":   color.New(color.FgHiGreen),
	"lightyellow":  color.New(color.FgHiYellow),
	"lightblue":    color.New(color.FgHiBlue),
	"lightmagenta": color.New(color.FgHiMagenta),
	"lightcyan":    color.New(color.FgHiCyan),
	"lightwhite":   color.New(color.FgHiWhite),
	"reset":        color.New(color.Reset),
}

// Elements lists the display elements whose color can be changed.
var Elements = []string{
	"def1", "def2", "index", "phrase", "pos", "etym",
	"syn", "psyn", "gloss", "error", "attention", "success", "delimit",
}

func defaultColors() map[string]string {
	return map[string]string{
		"def1":      "lightgreen",
		"def2":      "green",
		"index":     "lightyellow",
		"phrase":    "lightcyan",
		"pos":       "yellow",
		"etym":      "white",
		"syn":       "lightyellow",
		"psyn":      "white",
		"gloss":     "lightblue",
		"error":     "lightred",
		"attention": "lightyellow",
		"success":   "lightgreen",
		"delimit":   "reset",
	}
}

// PaletteNames returns the sorted color names.
func PaletteNames() []string {
	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidColor reports whether name is a palette color.
func ValidColor(name string) bool {
	_, ok := palette[name]
	return ok
}

// ValidElement reports whether name is a colorable display element.
func ValidElement(name string) bool {
	for _, e := range Elements {
		if e == name {
			return true
		}
	}
	return false
}

// SetColor assigns a palette color to an element.
func (c *Config) SetColor(element, name string) error {
	if !ValidElement(element) {
		return fmt.Errorf("unknown element: %q", element)
	}
	if !ValidColor(name) {
		return fmt.Errorf("unknown color: %q", name)
	}
	if c.Colors == nil {
		c.Colors = defaultColors()
	}
	c.Colors[element] = name
	return nil
}

// ColorFor returns the parsed color for a display element. Unknown or
// unset elements render unstyled.
func (c *Config) ColorFor(element string) *color.Color {
	if name, ok := c.Colors[element]; ok {
		if col, ok := palette[name]; ok {
			return col
		}
	}
	return color.New(color.Reset)
}
