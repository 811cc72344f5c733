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

package ers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltans/evidence/crypto/hashing"
)

func sequenceOf(times ...Timestamp) []Chain {
	out := make([]Chain, 0, len(times))
	for _, ts := range times {
		out = append(out, Chain{Timestamp: ts})
	}
	return out
}

func TestConcatEncoder(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	seq := sequenceOf(
		Timestamp{Digest: hashing.Digest("h1+h2+h3"), Time: now, Algorithm: "SHA256"},
		Timestamp{Digest: hashing.Digest("r2"), Time: now.Add(time.Hour), Algorithm: "SHA512"},
	)

	encoded, err := ConcatEncoder{}.Encode(seq)
	require.NoError(t, err)
	assert.Equal(t, []byte("h1+h2+h3r2"), encoded)
}

func TestCodecEncoderDeterministic(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	seq := sequenceOf(
		Timestamp{Digest: hashing.Digest{0x01}, Time: now, Algorithm: "SHA256"},
		Timestamp{Digest: hashing.Digest{0x02}, Time: now.Add(time.Hour), Algorithm: "SHA512"},
	)

	first, err := CodecEncoder{}.Encode(seq)
	require.NoError(t, err)
	second, err := CodecEncoder{}.Encode(seq)
	require.NoError(t, err)
	assert.Equal(t, first, second, "Equal sequences must encode identically")
}

func TestCodecEncoderOrderSensitive(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a := Timestamp{Digest: hashing.Digest{0x01}, Time: now, Algorithm: "SHA256"}
	b := Timestamp{Digest: hashing.Digest{0x02}, Time: now.Add(time.Hour), Algorithm: "SHA512"}

	forward, err := CodecEncoder{}.Encode(sequenceOf(a, b))
	require.NoError(t, err)
	reversed, err := CodecEncoder{}.Encode(sequenceOf(b, a))
	require.NoError(t, err)
	assert.NotEqual(t, forward, reversed, "Reordering the sequence must change the encoding")
}

func TestHistoryDigest(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	seq := sequenceOf(Timestamp{Digest: hashing.Digest("h1+h2+h3"), Time: now, Algorithm: "SHA256"})

	// With a concatenating hasher the history digest of a single chain is
	// its timestamp digest itself.
	history, err := HistoryDigest(hashing.NewConcatHasher("SHA512"), ConcatEncoder{}, seq)
	require.NoError(t, err)
	assert.Equal(t, hashing.Digest("h1+h2+h3"), history)

	sha := hashing.NewSha256Hasher()
	encoded, err := CodecEncoder{}.Encode(seq)
	require.NoError(t, err)
	history, err = HistoryDigest(sha, CodecEncoder{}, seq)
	require.NoError(t, err)
	assert.Equal(t, sha.Do(encoded), history)
}
