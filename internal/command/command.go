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

// Package command interprets the dash-prefixed settings commands typed at
// the search prompt. Every mutation is persisted immediately.
package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/rodaine/table"
	"golang.org/x/term"

	"github.com/pgorywoda/fiszki/internal/card"
	"github.com/pgorywoda/fiszki/internal/config"
	"github.com/pgorywoda/fiszki/internal/render"
)

// NoteCreator registers a new note type with the companion tool.
type NoteCreator interface {
	ModelNames(ctx context.Context) ([]string, error)
	CreateModel(ctx context.Context, name string) error
}

// Deleter removes the trailing line of the card log.
type Deleter interface {
	DeleteLast() (string, error)
}

// Interpreter dispatches dash commands against the live configuration.
type Interpreter struct {
	cfg     *config.Config
	cfgPath string
	out     io.Writer
	r       *render.Renderer
	in      *bufio.Scanner
	files   Deleter
	notes   NoteCreator
	log     *slog.Logger

	// Width probes the terminal for "auto" dimensions.
	Width func() int
}

// New creates an Interpreter. in feeds the guided setters; files and notes
// may be nil when the respective commands are unavailable.
func New(cfg *config.Config, cfgPath string, out io.Writer, in io.Reader, files Deleter, notes NoteCreator, logger *slog.Logger) *Interpreter {
	return &Interpreter{
		cfg:     cfg,
		cfgPath: cfgPath,
		out:     out,
		r:       render.New(out, cfg),
		in:      bufio.NewScanner(in),
		files:   files,
		notes:   notes,
		log:     logger.With("component", "command"),
		Width:   terminalWidth,
	}
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 79
	}
	return w
}

// boolSettings maps boolean commands to their config fields. The first
// nine entries of allFields are the ones "-all" sets.
var allFields = []string{"-pz", "-def", "-pos", "-etym", "-syn", "-psyn", "-pidiom", "-audio", "-disamb"}

func boolSetting(cfg *config.Config, name string) *bool {
	switch name {
	case "-pz":
		return &cfg.Sentence
	case "-def":
		return &cfg.Definitions
	case "-pos":
		return &cfg.PartsOfSpeech
	case "-etym":
		return &cfg.Etymologies
	case "-syn":
		return &cfg.Thesaurus
	case "-psyn":
		return &cfg.SynExamples
	case "-pidiom":
		return &cfg.Illustrations
	case "-audio":
		return &cfg.Audio
	case "-disamb":
		return &cfg.ShowThesaurus
	case "-karty":
		return &cfg.CreateCards
	case "-fs":
		return &cfg.FilterSubdefs
	case "-upz":
		return &cfg.HideInSentence
	case "-udef":
		return &cfg.HideInDefinition
	case "-udisamb":
		return &cfg.HideInThesaurus
	case "-uidiom":
		return &cfg.HideInIdiom
	case "-upreps":
		return &cfg.HidePrepositions
	case "-showcard":
		return &cfg.ShowCard
	case "-showdisamb":
		return &cfg.ShowGloss
	case "-wraptext":
		return &cfg.WrapText
	case "-break":
		return &cfg.BreakDefs
	case "-ankiconnect":
		return &cfg.AnkiConnect
	case "-duplicates":
		return &cfg.AllowDuplicates
	case "-bulk":
		return &cfg.BulkAdd
	case "-bulk-free-def":
		return &cfg.BulkFreeDef
	case "-bulk-free-syn":
		return &cfg.BulkFreeSyn
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes", "tak":
		return true, nil
	case "off", "false", "0", "no", "nie":
		return false, nil
	}
	return false, fmt.Errorf("oczekiwano on/off, tak/nie, 1/0, otrzymano %q", s)
}

// Handle runs line as a command. It returns false when line is not a
// recognized command and should be treated as a search phrase.
func (i *Interpreter) Handle(ctx context.Context, line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 || !strings.HasPrefix(args[0], "-") {
		return false
	}
	name := args[0]

	if boolSetting(i.cfg, name) != nil || name == "-all" {
		i.handleBool(name, args[1:])
		return true
	}

	switch name {
	case "-textwidth", "-delimsize", "-center":
		i.handleDim(name, args[1:])
	case "-indent":
		i.handleIndent(args[1:])
	case "-note", "-deck", "-tags", "-dupscope", "--audio-path", "-server":
		i.handleString(name, args[1:])
	case "-cd":
		i.handleBulkDefault(args[1:])
	case "--config-bulk":
		i.configBulk()
	case "--change-fieldorder", "--change-fo":
		i.changeFieldOrder(args[1:])
	case "-color":
		i.handleColor(args[1:])
	case "--delete-last", "--delete-recent":
		i.deleteLast()
	case "-config":
		i.printConfig()
	case "--help":
		fmt.Fprint(i.out, helpText)
	case "--help-colors":
		fmt.Fprint(i.out, helpColorsText)
	case "--help-bulk":
		fmt.Fprint(i.out, helpBulkText)
	case "--help-commands":
		fmt.Fprint(i.out, helpCommandsText)
	case "--add-note":
		i.addNote(ctx, args[1:])
	default:
		return false
	}
	return true
}

func (i *Interpreter) save() {
	if err := i.cfg.Save(i.cfgPath); err != nil {
		i.log.Error("cannot persist config", "path", i.cfgPath, "error", err)
		i.r.Error("Nie można zapisać konfiguracji: %v", err)
	}
}

func (i *Interpreter) handleBool(name string, args []string) {
	if len(args) != 1 {
		i.r.Error("Użycie: %s {on|off}", name)
		return
	}
	value, err := parseBool(args[0])
	if err != nil {
		i.r.Error("%v", err)
		return
	}

	if name == "-all" {
		for _, field := range allFields {
			*boolSetting(i.cfg, field) = value
		}
	} else {
		*boolSetting(i.cfg, name) = value
	}
	i.save()
	i.r.Success("Ustawiono %s = %t", strings.TrimLeft(name, "-"), value)
}

func (i *Interpreter) parseDim(arg string) (config.Dim, error) {
	if strings.EqualFold(arg, "auto") {
		return config.Dim{Value: i.Width(), Auto: true}, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return config.Dim{}, fmt.Errorf("oczekiwano liczby albo \"auto\", otrzymano %q", arg)
	}
	if n < 0 || n > config.MaxDim {
		return config.Dim{}, fmt.Errorf("wartość %d poza zakresem 0..%d", n, config.MaxDim)
	}
	return config.Dim{Value: n}, nil
}

func (i *Interpreter) handleDim(name string, args []string) {
	if len(args) != 1 {
		i.r.Error("Użycie: %s {0..%d|auto}", name, config.MaxDim)
		return
	}
	dim, err := i.parseDim(args[0])
	if err != nil {
		i.r.Error("%v", err)
		return
	}

	switch name {
	case "-textwidth":
		i.cfg.TextWidth = dim
	case "-delimsize":
		i.cfg.DelimSize = dim
	case "-center":
		i.cfg.Center = dim
	}
	i.save()
	i.r.Success("Ustawiono %s = %s", strings.TrimPrefix(name, "-"), dim)
}

func (i *Interpreter) handleIndent(args []string) {
	max := i.cfg.TextWidth.Value / 2
	if len(args) != 1 {
		i.r.Error("Użycie: -indent {0..%d}", max)
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n > max {
		i.r.Error("Wcięcie musi być liczbą z zakresu 0..%d", max)
		return
	}
	i.cfg.Indent = n
	i.save()
	i.r.Success("Ustawiono indent = %d", n)
}

func (i *Interpreter) handleString(name string, args []string) {
	if len(args) < 1 {
		i.r.Error("Użycie: %s {wartość}", name)
		return
	}
	value := strings.Join(args, " ")

	switch name {
	case "-note":
		i.cfg.Note = value
	case "-deck":
		i.cfg.Deck = value
	case "-tags":
		i.cfg.Tags = value
	case "-dupscope":
		if value != "deck" && value != "collection" {
			i.r.Error("Zakres duplikatów to \"deck\" albo \"collection\"")
			return
		}
		i.cfg.DupScope = value
	case "--audio-path":
		i.cfg.AudioPath = value
	case "-server":
		i.cfg.Server = value
	}
	i.save()
	i.r.Success("Ustawiono %s = %s", strings.TrimLeft(name, "-"), value)
}

func parseBulkValue(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < -1 || n > 999 {
		return 0, fmt.Errorf("domyślna odpowiedź musi być liczbą z zakresu -1..999")
	}
	return n, nil
}

func (i *Interpreter) handleBulkDefault(args []string) {
	if len(args) != 2 {
		i.r.Error("Użycie: -cd {%s|all} {-1..999}", strings.Join(config.BulkFields, "|"))
		return
	}
	n, err := parseBulkValue(args[1])
	if err != nil {
		i.r.Error("%v", err)
		return
	}

	field := strings.ToLower(args[0])
	if field == "all" {
		for _, f := range config.BulkFields {
			i.cfg.BulkDefaults[f] = n
		}
	} else {
		if _, ok := i.cfg.BulkDefaults[field]; !ok {
			i.r.Error("Nieznane pole: %q", field)
			return
		}
		i.cfg.BulkDefaults[field] = n
	}
	i.save()
	i.r.Success("Ustawiono domyślną odpowiedź %s = %d", field, n)
}

// configBulk walks the bulk fields, prompting for each default. An empty
// answer keeps the current value.
func (i *Interpreter) configBulk() {
	for _, field := range config.BulkFields {
		fmt.Fprintf(i.out, "%s [%d]: ", field, i.cfg.BulkDefaults[field])
		if !i.in.Scan() {
			break
		}
		answer := strings.TrimSpace(i.in.Text())
		if answer == "" {
			continue
		}
		n, err := parseBulkValue(answer)
		if err != nil {
			i.r.Error("%v", err)
			continue
		}
		i.cfg.BulkDefaults[field] = n
	}
	i.save()
	i.r.Success("Zapisano domyślne odpowiedzi trybu hurtowego")
}

func (i *Interpreter) changeFieldOrder(args []string) {
	switch {
	case len(args) == 1 && args[0] == "default":
		i.cfg.SetOrder(card.DefaultOrder)
	case len(args) == 2:
		pos, err := strconv.Atoi(args[0])
		if err != nil || pos < 1 || pos > len(card.DefaultOrder) {
			i.r.Error("Pozycja musi być liczbą z zakresu 1..%d", len(card.DefaultOrder))
			return
		}
		slot, err := card.ParseSlot(args[1])
		if err != nil {
			i.r.Error("Nieznane pole: %q", args[1])
			return
		}

		// Swap the named slot into the requested position so the order
		// stays a permutation.
		order := i.cfg.Order()
		for j, s := range order {
			if s == slot {
				order[j], order[pos-1] = order[pos-1], order[j]
				break
			}
		}
		i.cfg.SetOrder(order)
	default:
		i.r.Error("Użycie: --change-fieldorder {1..%d} {pole} albo --change-fieldorder default", len(card.DefaultOrder))
		return
	}
	i.save()
	i.r.Success("Kolejność pól: %s", strings.Join(i.cfg.FieldOrder, ", "))
}

func (i *Interpreter) handleColor(args []string) {
	if len(args) != 2 {
		i.r.Error("Użycie: -color {element} {kolor}. Zobacz --help-colors")
		return
	}
	element, name := strings.ToLower(args[0]), strings.ToLower(args[1])
	if !config.ValidElement(element) {
		i.r.Error("Nieznany element: %q. Elementy: %s", element, strings.Join(config.Elements, ", "))
		return
	}
	if !config.ValidColor(name) {
		i.r.Error("Nieznany kolor: %q. Paleta: %s", name, strings.Join(config.PaletteNames(), ", "))
		return
	}
	if err := i.cfg.SetColor(element, name); err != nil {
		i.r.Error("%v", err)
		return
	}
	i.save()
	i.r.Success("Ustawiono kolor %s = %s", element, name)
}

func (i *Interpreter) deleteLast() {
	if i.files == nil {
		i.r.Error("Plik kart jest niedostępny")
		return
	}
	removed, err := i.files.DeleteLast()
	if err != nil {
		i.r.Error("Nie można usunąć ostatniej karty: %v", err)
		return
	}
	i.r.Success("Usunięto: %s", removed)
}

func (i *Interpreter) printConfig() {
	tbl := table.New("Ustawienie", "Wartość").WithWriter(i.out)

	bools := []struct {
		name  string
		value bool
	}{
		{"pz", i.cfg.Sentence}, {"def", i.cfg.Definitions},
		{"pos", i.cfg.PartsOfSpeech}, {"etym", i.cfg.Etymologies},
		{"syn", i.cfg.Thesaurus}, {"psyn", i.cfg.SynExamples},
		{"pidiom", i.cfg.Illustrations}, {"audio", i.cfg.Audio},
		{"disamb", i.cfg.ShowThesaurus}, {"karty", i.cfg.CreateCards},
		{"fs", i.cfg.FilterSubdefs}, {"upz", i.cfg.HideInSentence},
		{"udef", i.cfg.HideInDefinition}, {"udisamb", i.cfg.HideInThesaurus},
		{"uidiom", i.cfg.HideInIdiom}, {"upreps", i.cfg.HidePrepositions},
		{"showcard", i.cfg.ShowCard}, {"showdisamb", i.cfg.ShowGloss},
		{"wraptext", i.cfg.WrapText}, {"break", i.cfg.BreakDefs},
		{"ankiconnect", i.cfg.AnkiConnect}, {"duplicates", i.cfg.AllowDuplicates},
		{"bulk", i.cfg.BulkAdd},
	}
	for _, b := range bools {
		tbl.AddRow(b.name, strconv.FormatBool(b.value))
	}

	tbl.AddRow("textwidth", i.cfg.TextWidth.String())
	tbl.AddRow("delimsize", i.cfg.DelimSize.String())
	tbl.AddRow("center", i.cfg.Center.String())
	tbl.AddRow("indent", strconv.Itoa(i.cfg.Indent))
	tbl.AddRow("note", i.cfg.Note)
	tbl.AddRow("deck", i.cfg.Deck)
	tbl.AddRow("tags", i.cfg.Tags)
	tbl.AddRow("dupscope", i.cfg.DupScope)
	tbl.AddRow("audio_path", i.cfg.AudioPath)
	tbl.AddRow("server", i.cfg.Server)
	tbl.AddRow("fieldorder", strings.Join(i.cfg.FieldOrder, ", "))
	for _, f := range config.BulkFields {
		tbl.AddRow("cd "+f, strconv.Itoa(i.cfg.BulkDefaults[f]))
	}

	tbl.Print()
}

func (i *Interpreter) addNote(ctx context.Context, args []string) {
	if i.notes == nil {
		i.r.Error("AnkiConnect jest niedostępny")
		return
	}
	name := i.cfg.Note
	if len(args) > 0 {
		name = strings.Join(args, " ")
	}

	existing, err := i.notes.ModelNames(ctx)
	if err != nil {
		i.r.Error("AnkiConnect nie odpowiada: %v", err)
		return
	}
	for _, n := range existing {
		if n == name {
			i.r.Attention("Notatka %q już istnieje w Anki", name)
			return
		}
	}

	if err := i.notes.CreateModel(ctx, name); err != nil {
		i.r.Error("Nie można utworzyć notatki %q: %v", name, err)
		return
	}
	i.r.Success("Utworzono notatkę %q", name)

	fmt.Fprintf(i.out, "Ustawić %q jako domyślną notatkę? [tak/nie]: ", name)
	if i.in.Scan() {
		if adopt, err := parseBool(strings.TrimSpace(i.in.Text())); err == nil && adopt {
			i.cfg.Note = name
			i.save()
			i.r.Success("Domyślna notatka: %s", name)
		}
	}
}
