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
	"errors"
	"fmt"
	"time"

	"github.com/ltans/evidence/crypto/hashing"
	"github.com/ltans/evidence/log"
)

// Verification failure kinds. Verify wraps these with positional
// diagnostics; callers branch with errors.Is and read the error text for
// the human-readable reason.
var (
	ErrInitialHashMismatch = errors.New("ers: initial hash verification failed")
	ErrAlgorithmNotRenewed = errors.New("ers: digest algorithm not renewed")
	ErrTimestampOrdering   = errors.New("ers: timestamp ordering violation")
	ErrChainLinkage        = errors.New("ers: chain linkage broken")
	ErrStaleTimestamp      = errors.New("ers: final timestamp is stale")
)

// DigestAlgorithm is one externally known (digest, algorithm) pair. A
// verification request supplies one per chain in the record.
type DigestAlgorithm struct {
	Digest    hashing.Digest
	Algorithm string
}

// HasherResolver maps an algorithm label to a hasher.
type HasherResolver func(algorithm string) (hashing.Hasher, error)

// Verifier validates evidence records. The hasher resolver, the canonical
// encoder and the clock are injected so verification agrees with the
// collaborators that produced the record.
type Verifier struct {
	hasherFor HasherResolver
	encoder   Encoder
	clock     Clock
}

func NewVerifier(hasherFor HasherResolver, encoder Encoder, clock Clock) *Verifier {
	return &Verifier{
		hasherFor: hasherFor,
		encoder:   encoder,
		clock:     clock,
	}
}

// Verify checks a full evidence record against the caller's independently
// known digests, one per chain: initial inclusion, algorithm transition
// on every renewal, strict timestamp ordering, inter-chain linkage, and
// freshness of the last attestation. A nil error means the record
// verifies; any failure reports the offending chain and its kind. Inputs
// are never mutated.
func (v *Verifier) Verify(record *Record, pairs []DigestAlgorithm) error {
	verificationsTotal.Inc()
	if err := v.verify(record, pairs); err != nil {
		verificationFailuresTotal.Inc()
		log.Debugf("Verification failed: %v", err)
		return err
	}
	return nil
}

func (v *Verifier) verify(record *Record, pairs []DigestAlgorithm) error {
	if record == nil || len(record.Sequence) == 0 {
		return fmt.Errorf("%w: empty archive timestamp sequence", ErrInvalidRecord)
	}
	if len(pairs) != len(record.Sequence) {
		return fmt.Errorf("%w: %d digest pairs for %d chains",
			ErrInvalidRecord, len(pairs), len(record.Sequence))
	}

	initial := record.Sequence[0]
	hasher, err := v.hasherFor(pairs[0].Algorithm)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if !initial.Path.Verify(hasher, pairs[0].Digest) {
		return fmt.Errorf("%w: chain 1 does not prove inclusion of [%v]",
			ErrInitialHashMismatch, pairs[0].Digest)
	}

	previous := initial.Timestamp
	previousAlgorithm := pairs[0].Algorithm

	for i := 1; i < len(record.Sequence); i++ {
		chain := record.Sequence[i]
		pair := pairs[i]

		if pair.Algorithm == previousAlgorithm {
			return fmt.Errorf("%w: chain %d keeps using %s",
				ErrAlgorithmNotRenewed, i+1, pair.Algorithm)
		}
		if !previous.Time.Before(chain.Timestamp.Time) {
			return fmt.Errorf("%w: chain %d is not strictly after chain %d",
				ErrTimestampOrdering, i+1, i)
		}

		hasher, err = v.hasherFor(pair.Algorithm)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		history, err := HistoryDigest(hasher, v.encoder, record.Sequence[:i])
		if err != nil {
			return err
		}
		combined := hasher.Do(pair.Digest, history)
		if !chain.Path.Verify(hasher, combined) {
			return fmt.Errorf("%w: chain %d does not prove inclusion of the combined digest [%v]",
				ErrChainLinkage, i+1, combined)
		}

		previous = chain.Timestamp
		previousAlgorithm = pair.Algorithm
	}

	if !previous.Time.Before(v.clock.Now()) {
		return fmt.Errorf("%w: last attestation at %s",
			ErrStaleTimestamp, previous.Time.UTC().Format(time.RFC3339Nano))
	}
	return nil
}

// Verify validates a record with the default collaborators: the built-in
// hashers, the msgpack canonical encoder and the wall clock.
func Verify(record *Record, pairs []DigestAlgorithm) error {
	return NewVerifier(hashing.New, CodecEncoder{}, WallClock{}).Verify(record, pairs)
}
