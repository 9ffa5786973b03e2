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

package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/pgorywoda/fiszki/internal/audio"
	"github.com/pgorywoda/fiszki/internal/command"
	"github.com/pgorywoda/fiszki/internal/composer"
	"github.com/pgorywoda/fiszki/internal/config"
	"github.com/pgorywoda/fiszki/internal/dict/ahd"
	"github.com/pgorywoda/fiszki/internal/dict/diki"
	"github.com/pgorywoda/fiszki/internal/dict/farlex"
	"github.com/pgorywoda/fiszki/internal/dict/wordnet"
	"github.com/pgorywoda/fiszki/internal/render"
	"github.com/pgorywoda/fiszki/internal/sel"
	"github.com/pgorywoda/fiszki/internal/sink/anki"
	"github.com/pgorywoda/fiszki/internal/sink/file"
)

const prompt = "Szukaj: "

// lineReader hands out standard input at most one line per Read call. The
// REPL, the field selector and the command interpreter each wrap standard
// input in their own scanner; without this no consumer could be sure
// another had not buffered its line ahead. A line longer than the caller's
// buffer is carried over to the following Read calls, never dropped.
type lineReader struct {
	r    *bufio.Reader
	rest []byte
	err  error
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.rest) == 0 {
		if l.err != nil {
			return 0, l.err
		}
		line, err := l.r.ReadSlice('\n')
		// ReadSlice's result is only valid until the next read.
		l.rest = append([]byte(nil), line...)
		if err != nil && err != bufio.ErrBufferFull {
			l.err = err
		}
	}
	if len(l.rest) == 0 {
		return 0, l.err
	}
	n := copy(p, l.rest)
	l.rest = l.rest[n:]
	return n, nil
}

func repl(ctx context.Context, dir string, logger *slog.Logger) error {
	cfgPath := filepath.Join(dir, "config.yml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFiszki, err)
	}

	audioDir := cfg.AudioPath
	if !filepath.IsAbs(audioDir) {
		audioDir = filepath.Join(dir, audioDir)
	}
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating audio directory: %w", ErrFiszki, err)
	}

	in := &lineReader{r: bufio.NewReader(os.Stdin)}
	out := os.Stdout
	renderer := render.New(out, cfg)

	files := file.New(filepath.Join(dir, file.DefaultName), logger)
	notes := anki.NewClient(anki.DefaultServer, filepath.Join(dir, anki.CacheName), logger)

	comp := composer.New(composer.Options{
		Config:     cfg,
		BaseDir:    dir,
		Renderer:   renderer,
		Selector:   sel.New(in, out, cfg),
		General:    ahd.New(logger),
		Idioms:     farlex.New(logger),
		Thesaurus:  wordnet.New(logger),
		Recordings: diki.New(logger),
		Downloader: audio.New(logger),
		Files:      files,
		Notes:      notes,
		Logger:     logger,
	})
	interp := command.New(cfg, cfgPath, out, in, files, notes, logger)

	// Ctrl+C ends the session cleanly: terminal colors are reset and the
	// exit code is zero.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		color.Unset()
		fmt.Fprintln(out)
		os.Exit(ExitCodeSuccess)
	}()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("%w: reading input: %w", ErrFiszki, err)
			}
			fmt.Fprintln(out)
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if interp.Handle(ctx, line) {
			continue
		}
		comp.Do(ctx, line)
	}
}
