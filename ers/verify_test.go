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
	"github.com/ltans/evidence/merkle"
)

func newTestVerifier(clock Clock) *Verifier {
	return NewVerifier(concatHasherFor, ConcatEncoder{}, clock)
}

func TestVerifyRoundTrip(t *testing.T) {
	clock := newFakeClock()
	records, _ := buildRecords(t, clock, "SHA256", "h1", "h2", "h3")
	clock.advance(time.Minute)

	verifier := newTestVerifier(clock)
	for i, leaf := range []string{"h1", "h2", "h3"} {
		err := verifier.Verify(records[i], []DigestAlgorithm{{Digest: hashing.Digest(leaf), Algorithm: "SHA256"}})
		assert.NoErrorf(t, err, "Record for %s must verify against its own leaf", leaf)
	}
}

func TestVerifyInitialHashMismatch(t *testing.T) {
	clock := newFakeClock()
	records, _ := buildRecords(t, clock, "SHA256", "h1", "h2", "h3")
	clock.advance(time.Minute)

	err := newTestVerifier(clock).Verify(records[0],
		[]DigestAlgorithm{{Digest: hashing.Digest("h2"), Algorithm: "SHA256"}})
	require.ErrorIs(t, err, ErrInitialHashMismatch,
		"A record for h1 must not verify against h2")
}

func TestVerifyInvalidStructure(t *testing.T) {
	clock := newFakeClock()
	verifier := newTestVerifier(clock)

	err := verifier.Verify(nil, nil)
	require.ErrorIs(t, err, ErrInvalidRecord)

	err = verifier.Verify(&Record{FormatVersion: FormatVersion}, nil)
	require.ErrorIs(t, err, ErrInvalidRecord)

	records, _ := buildRecords(t, clock, "SHA256", "h1")
	err = verifier.Verify(records[0], nil)
	require.ErrorIs(t, err, ErrInvalidRecord, "One digest pair per chain is required")
}

func renewedRecords(t *testing.T, clock *fakeClock) []*Record {
	t.Helper()
	records, _ := buildRecords(t, clock, "SHA256", "h1", "h2", "h3")
	clock.advance(time.Hour)
	renewed, _, err := Renew([]RenewalRequest{
		{Record: records[0], Digests: digests("H1")},
		{Record: records[1], Digests: digests("H2")},
		{Record: records[2], Digests: digests("H3")},
	}, hashing.NewConcatHasher("SHA512"), ConcatEncoder{}, clock)
	require.NoError(t, err)
	return renewed
}

func TestVerifyRenewedRecords(t *testing.T) {
	clock := newFakeClock()
	renewed := renewedRecords(t, clock)
	clock.advance(time.Minute)

	verifier := newTestVerifier(clock)
	for i, record := range renewed {
		pairs := []DigestAlgorithm{
			{Digest: digests("h1", "h2", "h3")[i], Algorithm: "SHA256"},
			{Digest: digests("H1", "H2", "H3")[i], Algorithm: "SHA512"},
		}
		assert.NoErrorf(t, verifier.Verify(record, pairs), "Renewed record %d must verify", i)
	}
}

func TestVerifyAlgorithmNotRenewed(t *testing.T) {
	clock := newFakeClock()
	renewed := renewedRecords(t, clock)
	clock.advance(time.Minute)

	err := newTestVerifier(clock).Verify(renewed[0], []DigestAlgorithm{
		{Digest: hashing.Digest("h1"), Algorithm: "SHA256"},
		{Digest: hashing.Digest("H1"), Algorithm: "SHA256"},
	})
	require.ErrorIs(t, err, ErrAlgorithmNotRenewed,
		"A renewal must switch the digest algorithm")
}

func TestVerifyTimestampOrdering(t *testing.T) {
	clock := newFakeClock()
	renewed := renewedRecords(t, clock)
	clock.advance(time.Minute)

	// Push the renewal timestamp back before the initial attestation.
	renewed[0].Sequence[1].Timestamp.Time = renewed[0].Sequence[0].Timestamp.Time.Add(-time.Second)

	err := newTestVerifier(clock).Verify(renewed[0], []DigestAlgorithm{
		{Digest: hashing.Digest("h1"), Algorithm: "SHA256"},
		{Digest: hashing.Digest("H1"), Algorithm: "SHA512"},
	})
	require.ErrorIs(t, err, ErrTimestampOrdering)
}

func TestVerifyChainLinkageBroken(t *testing.T) {
	clock := newFakeClock()
	renewed := renewedRecords(t, clock)
	clock.advance(time.Minute)

	err := newTestVerifier(clock).Verify(renewed[0], []DigestAlgorithm{
		{Digest: hashing.Digest("h1"), Algorithm: "SHA256"},
		{Digest: hashing.Digest("H9"), Algorithm: "SHA512"},
	})
	require.ErrorIs(t, err, ErrChainLinkage,
		"A renewal digest the tree never covered must break linkage")
}

func TestVerifyStaleFinalTimestamp(t *testing.T) {
	clock := newFakeClock()
	records, _ := buildRecords(t, clock, "SHA256", "h1")

	// The clock never advances past the attestation, so the freshest
	// chain is not strictly in the past.
	err := newTestVerifier(clock).Verify(records[0],
		[]DigestAlgorithm{{Digest: hashing.Digest("h1"), Algorithm: "SHA256"}})
	require.ErrorIs(t, err, ErrStaleTimestamp)
}

func TestVerifyThreeChainHistory(t *testing.T) {
	clock := newFakeClock()
	renewed := renewedRecords(t, clock)

	clock.advance(time.Hour)
	_, _, err := Renew([]RenewalRequest{
		{Record: renewed[0], Digests: digests("G1")},
	}, hashing.NewConcatHasher("SHA256"), ConcatEncoder{}, clock)
	require.NoError(t, err)
	clock.advance(time.Minute)

	// The third chain links over the full two-chain history; SHA256 is
	// acceptable again because only consecutive chains must differ.
	err = newTestVerifier(clock).Verify(renewed[0], []DigestAlgorithm{
		{Digest: hashing.Digest("h1"), Algorithm: "SHA256"},
		{Digest: hashing.Digest("H1"), Algorithm: "SHA512"},
		{Digest: hashing.Digest("G1"), Algorithm: "SHA256"},
	})
	assert.NoError(t, err)
}

func TestVerifyDefaultCollaborators(t *testing.T) {
	hasher := hashing.NewSha256Hasher()
	leaves := []hashing.Digest{hasher.Do([]byte("doc1")), hasher.Do([]byte("doc2"))}

	tree, err := merkle.New(hasher, leaves)
	require.NoError(t, err)
	path, err := tree.Reduce(leaves[0])
	require.NoError(t, err)
	record, err := NewRecord(tree, path, hashing.SHA256, pastClock{})
	require.NoError(t, err)

	err = Verify(record, []DigestAlgorithm{{Digest: leaves[0], Algorithm: hashing.SHA256}})
	assert.NoError(t, err, "Package-level Verify must work with real hashers and the wall clock")
}
