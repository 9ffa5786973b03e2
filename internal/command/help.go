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

package command

const helpText = `fiszki - tworzenie kart Anki ze słowników angielskich

Wpisz szukaną frazę albo komendę zaczynającą się od "-".
Przy frazie można dodać flagi: -i/--idiom (słownik idiomów),
-n -v -adj -adv -abbr (część mowy dla nagrania audio).

Odpowiedzi na pytania o pola karty:
  pusta linia lub -s   pomiń pole
  all lub -1           wybierz wszystko
  1 albo 1,3,4         wybierz po numerach
  /tekst               wpisz własny tekst
  cokolwiek innego     anuluj całą kartę

Więcej: --help-commands, --help-bulk, --help-colors
`

const helpCommandsText = `Przełączniki (wartości: on/off, tak/nie, 1/0):
  -pz -def -pos -etym -syn -psyn -pidiom -audio -disamb -karty
  -all (ustawia dziewięć powyższych bez -karty)
  -fs -upz -udef -udisamb -uidiom -upreps
  -showcard -showdisamb -wraptext -break
  -ankiconnect -duplicates -bulk -bulk-free-def -bulk-free-syn

Liczby (0..382, także "auto" = szerokość terminala):
  -textwidth -delimsize -center
  -indent {0..textwidth/2}

Teksty:
  -note {nazwa} -deck {nazwa} -tags {csv}
  -dupscope {deck|collection} --audio-path {katalog} -server {nazwa}

Inne:
  -cd {pole|all} {-1..999}      domyślne odpowiedzi trybu hurtowego
  --config-bulk                 kreator domyślnych odpowiedzi
  --change-fieldorder {1..7} {pole} | default
  -color {element} {kolor}
  --delete-last / --delete-recent
  -config                       bieżące ustawienia
  --add-note [nazwa]            utwórz typ notatki w Anki
`

const helpBulkText = `Tryb hurtowy (-bulk on) nie zadaje pytań o pola, tylko używa
zapisanych domyślnych odpowiedzi (-cd, --config-bulk). Wartości:
  -1   wybierz wszystko
   0   pomiń pole
   n   wybierz pozycję n

Flagi -bulk-free-def i -bulk-free-syn przywracają pytanie dla
definicji i synonimów, nie wyłączając trybu hurtowego.
`

const helpColorsText = `-color {element} {kolor}

Elementy: def1 def2 index phrase pos etym syn psyn gloss
          error attention success delimit

Kolory: black red green yellow blue magenta cyan white
        lightblack lightred lightgreen lightyellow lightblue
        lightmagenta lightcyan lightwhite reset
`
