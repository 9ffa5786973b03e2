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

// Package render pretty-prints dictionary entries, synonym groups and the
// composed card preview.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/pgorywoda/fiszki/internal/card"
	"github.com/pgorywoda/fiszki/internal/config"
	"github.com/pgorywoda/fiszki/internal/dict"
)

// Renderer writes terminal views. All multi-line text passes through the
// word-greedy Wrapper.
type Renderer struct {
	out io.Writer
	cfg *config.Config
}

// New creates a Renderer.
func New(out io.Writer, cfg *config.Config) *Renderer {
	return &Renderer{out: out, cfg: cfg}
}

func (r *Renderer) wrap(text string, indexWidth int) string {
	if !r.cfg.WrapText {
		return text
	}
	w := Wrapper{
		TotalWidth:    r.cfg.TextWidth.Value,
		IndexWidth:    indexWidth,
		HangingIndent: r.cfg.Indent,
		RightGap:      1,
	}
	return w.Wrap(text)
}

func (r *Renderer) margin() string {
	if r.cfg.Center.Value > 0 {
		return strings.Repeat(" ", r.cfg.Center.Value)
	}
	return ""
}

// Rule prints a horizontal rule of the configured delimiter size.
func (r *Renderer) Rule() {
	if r.cfg.DelimSize.Value <= 0 {
		return
	}
	line := strings.Repeat("-", r.cfg.DelimSize.Value)
	fmt.Fprintln(r.out, r.cfg.ColorFor("delimit").Sprint(line))
}

// Entry prints the definitions with alternating odd/even colors, then the
// parts of speech and etymologies.
func (r *Renderer) Entry(e *dict.Entry) {
	r.Rule()
	margin := r.margin()
	indexColor := r.cfg.ColorFor("index")

	for i, def := range e.Definitions {
		defColor := r.cfg.ColorFor("def1")
		if i%2 == 1 {
			defColor = r.cfg.ColorFor("def2")
		}
		prefix := fmt.Sprintf("%d. ", i+1)
		wrapped := r.wrap(def, len(prefix))
		fmt.Fprintf(r.out, "%s%s%s\n", margin, indexColor.Sprint(prefix), defColor.Sprint(wrapped))
		if r.cfg.BreakDefs {
			fmt.Fprintln(r.out)
		}
	}

	if len(e.Illustrations) > 0 {
		fmt.Fprintln(r.out)
		for i, il := range e.Illustrations {
			prefix := fmt.Sprintf("%d. ", i+1)
			wrapped := r.wrap(il, len(prefix))
			fmt.Fprintf(r.out, "%s%s%s\n", margin, indexColor.Sprint(prefix), r.cfg.ColorFor("psyn").Sprint(wrapped))
		}
	}

	if len(e.PartsOfSpeech) > 0 {
		fmt.Fprintln(r.out)
		for _, pos := range e.PartsOfSpeech {
			fmt.Fprintf(r.out, "%s%s\n", margin, r.cfg.ColorFor("pos").Sprint(r.wrap(pos, 0)))
		}
	}

	if len(e.Etymologies) > 0 {
		fmt.Fprintln(r.out)
		for _, etym := range e.Etymologies {
			fmt.Fprintf(r.out, "%s%s\n", margin, r.cfg.ColorFor("etym").Sprint(r.wrap(etym, 0)))
		}
	}
}

// Groups prints one line per synonym group: index, part-of-speech tag,
// synonyms and gloss, with examples on an indented continuation.
func (r *Renderer) Groups(groups []dict.SynonymGroup) {
	r.Rule()
	margin := r.margin()
	indexColor := r.cfg.ColorFor("index")

	for i, g := range groups {
		prefix := fmt.Sprintf("%d. ", i+1)
		head := fmt.Sprintf("(%s) %s", g.POS, strings.Join(g.Synonyms, ", "))
		line := r.cfg.ColorFor("syn").Sprint(head)
		if r.cfg.ShowGloss && g.Gloss != "" {
			line += " " + r.cfg.ColorFor("gloss").Sprint(g.Gloss)
		}
		fmt.Fprintf(r.out, "%s%s%s\n", margin, indexColor.Sprint(prefix), line)

		for _, ex := range g.Examples {
			wrapped := r.wrap(ex, len(prefix))
			fmt.Fprintf(r.out, "%s%s%s\n", margin, strings.Repeat(" ", len(prefix)),
				r.cfg.ColorFor("psyn").Sprint(wrapped))
		}
	}
}

// Card prints the composed card preview in the configured field order.
func (r *Renderer) Card(c *card.Card) {
	r.Rule()
	for _, slot := range r.cfg.Order() {
		value := c.Get(slot)
		if value == "" {
			continue
		}
		name := r.cfg.ColorFor("index").Sprintf("%-16s", string(slot))
		fmt.Fprintf(r.out, "%s%s\n", name, r.wrap(value, 16))
	}
	r.Rule()
}

// Phrase prints the canonical phrase header.
func (r *Renderer) Phrase(phrase string) {
	fmt.Fprintf(r.out, "%s%s\n", r.margin(), r.cfg.ColorFor("phrase").Sprint(phrase))
}

// Error prints a user-facing error message with the error palette entry.
func (r *Renderer) Error(format string, args ...interface{}) {
	fmt.Fprintln(r.out, r.cfg.ColorFor("error").Sprintf(format, args...))
}

// Attention prints a user-facing warning message.
func (r *Renderer) Attention(format string, args ...interface{}) {
	fmt.Fprintln(r.out, r.cfg.ColorFor("attention").Sprintf(format, args...))
}

// Success prints a user-facing confirmation message.
func (r *Renderer) Success(format string, args ...interface{}) {
	fmt.Fprintln(r.out, r.cfg.ColorFor("success").Sprintf(format, args...))
}
