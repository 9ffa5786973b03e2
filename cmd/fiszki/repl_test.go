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
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReaderSharesInputBetweenScanners(t *testing.T) {
	lr := &lineReader{r: bufio.NewReader(strings.NewReader("first\nsecond\n"))}

	a := bufio.NewScanner(lr)
	b := bufio.NewScanner(lr)

	require.True(t, a.Scan())
	assert.Equal(t, "first", a.Text())

	// The second scanner sees the next line: the first one read exactly
	// one line and buffered nothing beyond it.
	require.True(t, b.Scan())
	assert.Equal(t, "second", b.Text())

	assert.False(t, a.Scan())
}

func TestLineReaderLongLineNotTruncated(t *testing.T) {
	// Longer than the bufio.Reader buffer and any single Read call.
	long := strings.Repeat("x", 9000)
	lr := &lineReader{r: bufio.NewReader(strings.NewReader(long + "\n"))}

	var got []byte
	buf := make([]byte, 7)
	for {
		n, err := lr.Read(buf)
		got = append(got, buf[:n]...)
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
	}
	assert.Equal(t, long+"\n", string(got))
}

func TestLineReaderEmptyInput(t *testing.T) {
	lr := &lineReader{r: bufio.NewReader(strings.NewReader(""))}
	n, err := lr.Read(make([]byte, 8))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}
