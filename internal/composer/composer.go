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

// Package composer drives one card cycle: fetch, render, select, mask,
// compose, emit. All per-card state lives in a CardContext value; nothing
// carries over between cards except the configuration.
package composer

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pgorywoda/fiszki/internal/audio"
	"github.com/pgorywoda/fiszki/internal/card"
	"github.com/pgorywoda/fiszki/internal/config"
	"github.com/pgorywoda/fiszki/internal/dict"
	"github.com/pgorywoda/fiszki/internal/dict/diki"
	"github.com/pgorywoda/fiszki/internal/mask"
	"github.com/pgorywoda/fiszki/internal/render"
	"github.com/pgorywoda/fiszki/internal/sel"
	"github.com/pgorywoda/fiszki/internal/sink/anki"
)

// FileSink appends a composed card to the card log.
type FileSink interface {
	Add(c *card.Card, order card.Order) error
}

// NoteSink submits a composed card to the companion study tool.
type NoteSink interface {
	AddNote(ctx context.Context, c *card.Card, p anki.NoteParams) error
}

// Recordings resolves a pronunciation recording URL for a phrase.
type Recordings interface {
	RecordingURL(ctx context.Context, phrase, hint string) (string, error)
}

// Downloader saves a recording into the audio directory.
type Downloader interface {
	Download(ctx context.Context, rawURL, dir string) (string, error)
}

// Composer wires the dictionary adapters, the selector and the sinks into
// the card cycle.
type Composer struct {
	cfg        *config.Config
	baseDir    string
	r          *render.Renderer
	sel        *sel.Selector
	general    dict.Lookup
	idioms     dict.Lookup
	thesaurus  dict.Thesaurus
	recordings Recordings
	downloader Downloader
	files      FileSink
	notes      NoteSink
	log        *slog.Logger
}

// Options collects the composer collaborators.
type Options struct {
	Config *config.Config

	// BaseDir anchors the relative audio directory setting.
	BaseDir    string
	Renderer   *render.Renderer
	Selector   *sel.Selector
	General    dict.Lookup
	Idioms     dict.Lookup
	Thesaurus  dict.Thesaurus
	Recordings Recordings
	Downloader Downloader
	Files      FileSink
	Notes      NoteSink
	Logger     *slog.Logger
}

// New creates a Composer.
func New(opts Options) *Composer {
	return &Composer{
		cfg:        opts.Config,
		baseDir:    opts.BaseDir,
		r:          opts.Renderer,
		sel:        opts.Selector,
		general:    opts.General,
		idioms:     opts.Idioms,
		thesaurus:  opts.Thesaurus,
		recordings: opts.Recordings,
		downloader: opts.Downloader,
		files:      opts.Files,
		notes:      opts.Notes,
		log:        opts.Logger.With("component", "composer"),
	}
}

// CardContext is the per-card working state.
type CardContext struct {
	Phrase string
	Idiom  bool
	Hint   string
	Entry  *dict.Entry
	Card   card.Card
}

// errCancel aborts the cycle without touching either sink.
var errCancel = errors.New("card canceled")

// ParsePhrase splits phrase-adjacent flags off a search line: "-idi "
// prefix and -i/--idiom route to the idioms dictionary, part-of-speech
// flags bias the recording lookup.
func ParsePhrase(line string) (phrase string, idiom bool, hint string) {
	if rest, ok := strings.CutPrefix(line, "-idi "); ok {
		idiom = true
		line = rest
	}

	var words []string
	for _, tok := range strings.Fields(line) {
		switch tok {
		case "-i", "--idiom":
			idiom = true
		case "-n":
			hint = diki.HintNoun
		case "-v":
			hint = diki.HintVerb
		case "-adj":
			hint = diki.HintAdjective
		case "-adv":
			hint = diki.HintAdverb
		case "-abbr":
			hint = diki.HintAbbreviation
		default:
			words = append(words, tok)
		}
	}
	return strings.Join(words, " "), idiom, hint
}

// Do runs one full card cycle for a search line.
func (c *Composer) Do(ctx context.Context, line string) {
	phrase, idiom, hint := ParsePhrase(line)
	if phrase == "" {
		return
	}
	cc := &CardContext{Phrase: phrase, Idiom: idiom, Hint: hint}
	c.log.Debug("card cycle", "phrase", phrase, "idiom", idiom, "hint", hint)

	if !cc.Idiom {
		entry, err := c.general.Lookup(ctx, phrase)
		switch {
		case errors.Is(err, dict.ErrNotFound):
			cc.Idiom = true
		case dict.IsTransport(err):
			c.r.Error("Słownik nie odpowiada: %v", err)
			return
		case err != nil:
			c.r.Error("Błąd słownika: %v", err)
			return
		default:
			cc.Entry = entry
		}
	}

	if cc.Idiom && cc.Entry == nil {
		entry, err := c.idioms.Lookup(ctx, phrase)
		switch {
		case errors.Is(err, dict.ErrNotFound):
			c.r.Error("Nie znaleziono: %s", phrase)
			return
		case err != nil:
			c.r.Error("Słownik idiomów nie odpowiada: %v", err)
			return
		}
		cc.Entry = entry
	}

	cc.Card.Phrase = cc.Entry.Phrase
	if c.cfg.FilterSubdefs {
		for i, def := range cc.Entry.Definitions {
			cc.Entry.Definitions[i] = dict.FlattenParens(def)
		}
	}

	c.r.Phrase(cc.Entry.Phrase)
	c.r.Entry(cc.Entry)

	if !c.cfg.CreateCards {
		c.showThesaurus(ctx, cc)
		return
	}

	if err := c.fill(ctx, cc); err != nil {
		if errors.Is(err, errCancel) {
			c.r.Attention("Anulowano kartę: %s", cc.Phrase)
		}
		return
	}

	if c.cfg.ShowCard {
		c.r.Card(&cc.Card)
	}
	c.emit(ctx, cc)
}

// mask hides the phrase in text when the field's hiding policy says so.
func (c *Composer) mask(cc *CardContext, text string, hide bool) string {
	if !hide || text == "" {
		return text
	}
	return mask.Mask(cc.Card.Phrase, text, !c.cfg.HidePrepositions)
}

// fill runs the selection phases in order. Audio is fetched before any
// picker prompt so the recording is on disk by the time the card lands.
func (c *Composer) fill(ctx context.Context, cc *CardContext) error {
	if err := c.askSentence(cc); err != nil {
		return err
	}
	c.fetchAudio(ctx, cc)
	if err := c.askDefinitions(cc); err != nil {
		return err
	}
	if !cc.Idiom {
		if err := c.askPartsOfSpeech(cc); err != nil {
			return err
		}
		if err := c.askEtymology(cc); err != nil {
			return err
		}
	} else if err := c.askIllustrations(cc); err != nil {
		return err
	}
	return c.askSynonyms(ctx, cc)
}

func (c *Composer) askSentence(cc *CardContext) error {
	if !c.cfg.Sentence {
		return nil
	}
	s, err := c.sel.Ask("Zdanie", "pz", false)
	if err != nil || s.Kind == sel.Cancel {
		return errCancel
	}
	if s.Kind == sel.Literal {
		cc.Card.Sentence = c.mask(cc, s.Text, c.cfg.HideInSentence)
	}
	return nil
}

func (c *Composer) fetchAudio(ctx context.Context, cc *CardContext) {
	if !c.cfg.Audio {
		return
	}
	url, err := c.recordings.RecordingURL(ctx, cc.Phrase, cc.Hint)
	if err != nil {
		c.r.Attention("Brak nagrania dla %q: %v", cc.Phrase, err)
		return
	}
	dir := c.cfg.AudioPath
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.baseDir, dir)
	}
	name, err := c.downloader.Download(ctx, url, dir)
	if err != nil {
		c.r.Attention("Nie można pobrać nagrania: %v", err)
		return
	}
	cc.Card.Audio = audio.Token(name)
}

func (c *Composer) askDefinitions(cc *CardContext) error {
	if !c.cfg.Definitions {
		return nil
	}
	s, err := c.sel.Ask("Definicje", "def", c.cfg.BulkFreeDef)
	if err != nil || s.Kind == sel.Cancel {
		return errCancel
	}
	hide := c.cfg.HideInDefinition
	if cc.Idiom {
		hide = c.cfg.HideInIdiom
	}
	cc.Card.Definition = c.mask(cc, s.Pick(cc.Entry.Definitions, sel.JoinBreak), hide)
	return nil
}

func (c *Composer) askPartsOfSpeech(cc *CardContext) error {
	if !c.cfg.PartsOfSpeech || len(cc.Entry.PartsOfSpeech) == 0 {
		return nil
	}
	s, err := c.sel.Ask("Części mowy", "pos", false)
	if err != nil || s.Kind == sel.Cancel {
		return errCancel
	}
	cc.Card.PartsOfSpeech = s.Pick(cc.Entry.PartsOfSpeech, sel.JoinPipe)
	return nil
}

func (c *Composer) askEtymology(cc *CardContext) error {
	if !c.cfg.Etymologies || len(cc.Entry.Etymologies) == 0 {
		return nil
	}
	s, err := c.sel.Ask("Etymologia", "etym", false)
	if err != nil || s.Kind == sel.Cancel {
		return errCancel
	}
	cc.Card.Etymology = s.Pick(cc.Entry.Etymologies, sel.JoinBreak)
	return nil
}

// askIllustrations appends picked idiom illustrations to the definition
// slot, separated from the definition by a line break marker.
func (c *Composer) askIllustrations(cc *CardContext) error {
	if !c.cfg.Illustrations || len(cc.Entry.Illustrations) == 0 {
		return nil
	}
	s, err := c.sel.Ask("Przykłady", "pidiom", false)
	if err != nil || s.Kind == sel.Cancel {
		return errCancel
	}
	picked := c.mask(cc, s.Pick(cc.Entry.Illustrations, sel.JoinSpace), c.cfg.HideInIdiom)
	if picked == "" {
		return nil
	}
	if cc.Card.Definition != "" {
		cc.Card.Definition += sel.JoinBreak + picked
	} else {
		cc.Card.Definition = picked
	}
	return nil
}

// showThesaurus fetches and renders the synonym groups without composing a
// card. Used when card creation is off.
func (c *Composer) showThesaurus(ctx context.Context, cc *CardContext) {
	if !c.cfg.Thesaurus {
		return
	}
	groups, err := c.thesaurus.Groups(ctx, cc.Phrase)
	if err != nil {
		c.r.Attention("Tezaurus nie odpowiada: %v", err)
		return
	}
	if c.cfg.ShowThesaurus {
		c.r.Groups(groups)
	}
}

func (c *Composer) askSynonyms(ctx context.Context, cc *CardContext) error {
	if !c.cfg.Thesaurus {
		return nil
	}
	groups, err := c.thesaurus.Groups(ctx, cc.Phrase)
	if err != nil {
		// A missing thesaurus entry costs one field, not the card.
		c.r.Attention("Tezaurus nie odpowiada: %v", err)
		return nil
	}
	if len(groups) == 0 {
		return nil
	}
	if c.cfg.ShowThesaurus {
		c.r.Groups(groups)
	}

	items := make([]string, 0, len(groups))
	for _, g := range groups {
		items = append(items, strings.Join(g.Synonyms, ", "))
	}
	s, err := c.sel.Ask("Synonimy", "syn", c.cfg.BulkFreeSyn)
	if err != nil || s.Kind == sel.Cancel {
		return errCancel
	}
	text := s.Pick(items, sel.JoinSpace)

	if c.cfg.SynExamples {
		var examples []string
		for _, g := range groups {
			examples = append(examples, g.Examples...)
		}
		if len(examples) > 0 {
			s, err := c.sel.Ask("Przykłady synonimów", "psyn", false)
			if err != nil || s.Kind == sel.Cancel {
				return errCancel
			}
			if picked := s.Pick(examples, sel.JoinSpace); picked != "" {
				if text != "" {
					text += sel.JoinSpace
				}
				text += picked
			}
		}
	}
	cc.Card.Synonyms = c.mask(cc, text, c.cfg.HideInThesaurus)
	return nil
}

// emit writes the card to both sinks. The sinks are independent: a
// companion-service failure never blocks the file append.
func (c *Composer) emit(ctx context.Context, cc *CardContext) {
	if err := c.files.Add(&cc.Card, c.cfg.Order()); err != nil {
		c.r.Error("Nie można dopisać karty: %v", err)
	} else {
		c.r.Success("Dodano kartę: %s", cc.Card.Phrase)
	}

	if !c.cfg.AnkiConnect || c.notes == nil {
		return
	}
	err := c.notes.AddNote(ctx, &cc.Card, anki.NoteParams{
		Deck:            c.cfg.Deck,
		Note:            c.cfg.Note,
		Tags:            c.cfg.Tags,
		AllowDuplicates: c.cfg.AllowDuplicates,
		DupScope:        c.cfg.DupScope,
	})
	if err == nil {
		c.r.Success("Wysłano do Anki")
		return
	}

	var noteErr *anki.NoteError
	if !errors.As(err, &noteErr) {
		c.r.Attention("AnkiConnect nie odpowiada, karta trafiła tylko do pliku: %v", err)
		return
	}
	switch noteErr.Kind {
	case anki.KindNoNote:
		c.r.Error("Nie znaleziono notatki %q. Ustaw -note {nazwa} albo --add-note", c.cfg.Note)
	case anki.KindEmpty:
		c.r.Error("Anki odrzuciło pustą notatkę. Sprawdź pola notatki %q", c.cfg.Note)
	case anki.KindDuplicate:
		c.r.Error("Duplikat karty. Włącz -duplicates on albo zmień -dupscope")
	case anki.KindUnavailable:
		c.r.Error("Kolekcja Anki jest niedostępna. Otwórz okno Anki")
	case anki.KindNoDeck:
		c.r.Error("Nie znaleziono talii %q. Ustaw -deck {nazwa}", c.cfg.Deck)
	default:
		c.r.Error("AnkiConnect: %s", noteErr.Raw)
	}
}
