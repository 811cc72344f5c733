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

// Package ers implements the RFC 4998 evidence record lifecycle: record
// creation over hash tree inclusion paths, batch renewal across digest
// algorithms, and chain verification.
package ers

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/ltans/evidence/crypto/hashing"
	"github.com/ltans/evidence/log"
	"github.com/ltans/evidence/merkle"
)

// FormatVersion is the RFC 4998 syntax version emitted in every record.
const FormatVersion = 1

// ErrInvalidRecord reports a structurally malformed record or a malformed
// request against one.
var ErrInvalidRecord = errors.New("ers: invalid evidence record")

// Timestamp attests that a digest existed at a point in time under a
// given algorithm. Signature issuance belongs to an external timestamp
// authority; here the attestation carries only its logical content.
// Immutable once created.
type Timestamp struct {
	Digest    hashing.Digest
	Time      time.Time
	Algorithm string
}

// Chain is one archive timestamp chain: an inclusion path plus the
// timestamp covering the tree root it proves inclusion under.
type Chain struct {
	Path      *merkle.ReducedPath
	Timestamp Timestamp
}

// Record is an RFC 4998 evidence record. The sequence is ordered by
// creation time: index 0 is the original attestation, later chains are
// renewals, and DigestAlgorithm always reflects the most recent chain.
// CryptoInfos and EncryptionInfo are carried for format completeness and
// are not interpreted here.
type Record struct {
	FormatVersion   int
	DigestAlgorithm string
	CryptoInfos     [][]byte
	EncryptionInfo  []byte
	Sequence        []Chain
}

// Clock provides the notion of now for timestamp creation and staleness
// checks.
type Clock interface {
	Now() time.Time
}

// WallClock is the default Clock backed by the system time.
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

func newTimestamp(digest hashing.Digest, algorithm string, clock Clock) Timestamp {
	return Timestamp{
		Digest:    append(hashing.Digest{}, digest...),
		Time:      clock.Now(),
		Algorithm: algorithm,
	}
}

// NewRecord creates an evidence record holding a single chain: the given
// inclusion path plus a fresh timestamp over the tree root under the
// given algorithm.
func NewRecord(tree *merkle.Tree, path *merkle.ReducedPath, algorithm string, clock Clock) (*Record, error) {
	if tree == nil || path == nil {
		return nil, fmt.Errorf("%w: missing tree or reduced path", ErrInvalidRecord)
	}
	if !bytes.Equal(path.RootDigest(), tree.Root().Digest()) {
		return nil, fmt.Errorf("%w: reduced path does not reach the tree root", ErrInvalidRecord)
	}

	log.Debugf("Creating evidence record for leaf [%v] under %s", path.LeafDigest(), algorithm)
	recordsCreatedTotal.Inc()

	return &Record{
		FormatVersion:   FormatVersion,
		DigestAlgorithm: algorithm,
		Sequence: []Chain{
			{Path: path, Timestamp: newTimestamp(tree.Root().Digest(), algorithm, clock)},
		},
	}, nil
}
