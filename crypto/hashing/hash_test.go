/*
   Copyright 2024-2026 The ERS authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package hashing

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		algorithm string
		bits      uint16
	}{
		{SHA256, 256},
		{SHA512, 512},
		{BLAKE2B, 256},
	}

	for _, c := range testCases {
		hasher, err := New(c.algorithm)
		require.NoError(t, err, "New should resolve %s", c.algorithm)
		assert.Equal(t, c.algorithm, hasher.Algorithm())
		assert.Equal(t, c.bits, hasher.Len())
		assert.Equalf(t, int(c.bits/8), len(hasher.Do([]byte("event"))),
			"Digest length mismatch for %s", c.algorithm)
	}

	_, err := New("MD5")
	require.Error(t, err, "Unknown algorithms must be rejected")
}

func TestSha256HasherMatchesStdlib(t *testing.T) {
	hasher := NewSha256Hasher()
	expected := sha256.Sum256([]byte("leftright"))
	assert.Equal(t, Digest(expected[:]), hasher.Do([]byte("left"), []byte("right")),
		"Combining must hash the simple concatenation of the operands")
}

func TestConcatHasher(t *testing.T) {
	hasher := NewConcatHasher("SHA256")
	assert.Equal(t, "SHA256", hasher.Algorithm())
	assert.Equal(t, Digest("h1+h2"), hasher.Do([]byte("h1"), []byte("h2")))
	assert.Equal(t, Digest("h1"), hasher.Do([]byte("h1")),
		"A single operand must pass through unchanged")

	bracket := NewBracketConcatHasher("SHA256")
	assert.Equal(t, Digest("(h1) + (h2)"), bracket.Do([]byte("h1"), []byte("h2")))
	assert.Equal(t, Digest("h1"), bracket.Do([]byte("h1")))
}

func TestDigestString(t *testing.T) {
	assert.Equal(t, "h1+h2", Digest("h1+h2").String())
	assert.Equal(t, "00ff", Digest{0x00, 0xff}.String())
}
