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

	"github.com/stretchr/testify/require"

	"github.com/ltans/evidence/crypto/hashing"
	"github.com/ltans/evidence/merkle"
)

// fakeClock advances only when told to, so chains get deterministic,
// strictly ordered timestamps.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// pastClock timestamps everything one hour in the past, so wall-clock
// staleness checks pass immediately after creation.
type pastClock struct{}

func (pastClock) Now() time.Time { return time.Now().Add(-time.Hour) }

// concatHasherFor resolves every algorithm label to a concatenating
// hasher, so test digests stay readable.
func concatHasherFor(algorithm string) (hashing.Hasher, error) {
	return hashing.NewConcatHasher(algorithm), nil
}

func digests(values ...string) []hashing.Digest {
	out := make([]hashing.Digest, 0, len(values))
	for _, v := range values {
		out = append(out, hashing.Digest(v))
	}
	return out
}

// buildRecords creates one record per leaf over a single tree, the
// round-trip entry point of the whole lifecycle.
func buildRecords(t *testing.T, clock Clock, algorithm string, leaves ...string) ([]*Record, *merkle.Tree) {
	t.Helper()

	hasher := hashing.NewConcatHasher(algorithm)
	tree, err := merkle.New(hasher, digests(leaves...))
	require.NoError(t, err)

	records := make([]*Record, 0, len(leaves))
	for _, leaf := range leaves {
		path, err := tree.Reduce(hashing.Digest(leaf))
		require.NoError(t, err)
		record, err := NewRecord(tree, path, algorithm, clock)
		require.NoError(t, err)
		records = append(records, record)
	}
	return records, tree
}
