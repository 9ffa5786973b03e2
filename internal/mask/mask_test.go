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

package mask

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMask(t *testing.T) {
	tests := []struct {
		name      string
		phrase    string
		text      string
		keepPreps bool
		expected  string
	}{
		{
			name:     "stop words preserved",
			phrase:   "the fall",
			text:     "the fall of the empire",
			expected: "the ... of the empire",
		},
		{
			name:     "inflected forms",
			phrase:   "try",
			text:     "He tries trying tried",
			expected: "He ...s ...ing ...ed",
		},
		{
			name:     "e to ing",
			phrase:   "make",
			text:     "making a mistake",
			expected: "...ing a mistake",
		},
		{
			name:     "ie to ying",
			phrase:   "die",
			text:     "dying to know",
			expected: "...ying to know",
		},
		{
			name:     "capitalization variants",
			phrase:   "fall",
			text:     "Fall is when FALL leaves fall",
			expected: "... is when ... leaves ...",
		},
		{
			name:      "prepositions kept on request",
			phrase:    "a blot on the landscape",
			text:      "there was a blot on the landscape",
			keepPreps: true,
			expected:  "there was a ... on the ...",
		},
		{
			name:     "prepositions masked by default",
			phrase:   "blot on",
			text:     "a blot on a page",
			expected: "a ... ... a page",
		},
		{
			name:     "multi word phrase",
			phrase:   "take place",
			text:     "the event takes place in May",
			expected: "the event ...s ... in May",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Mask(test.phrase, test.text, test.keepPreps)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("Mask (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestMaskIdempotent(t *testing.T) {
	tests := []struct {
		phrase string
		text   string
	}{
		{"try", "He tries trying tried"},
		{"the fall", "the fall of the empire"},
		{"make", "making makes made"},
		{"a blot on the landscape", "a blot on the landscape"},
	}

	for _, test := range tests {
		t.Run(test.phrase, func(t *testing.T) {
			once := Mask(test.phrase, test.text, false)
			twice := Mask(test.phrase, once, false)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("Mask not idempotent (-once, +twice):\n%s", diff)
			}
		})
	}
}
