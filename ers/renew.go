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
	"fmt"

	"github.com/ltans/evidence/crypto/hashing"
	"github.com/ltans/evidence/log"
	"github.com/ltans/evidence/merkle"
)

// RenewalRequest pairs a record with the digests that will represent its
// archived object under the new algorithm. Most requests carry a single
// digest; several fan the object out into multiple leaves, and the record
// gains one chain per leaf it contributed.
type RenewalRequest struct {
	Record  *Record
	Digests []hashing.Digest
}

// Renew re-timestamps a batch of records under a new algorithm. For each
// record the accumulated history is reduced to a digest, combined with
// each of its new document digests, and the combined leaves of the whole
// batch are gathered into one fresh tree covered by one timestamp: a
// single timestamp event secures every record in the batch. Each record
// appends its new chains and switches its digest algorithm.
//
// Callers are responsible for serializing concurrent renewals against the
// same record.
func Renew(requests []RenewalRequest, hasher hashing.Hasher, encoder Encoder, clock Clock) ([]*Record, *merkle.Tree, error) {
	if len(requests) == 0 {
		return nil, nil, fmt.Errorf("%w: empty renewal batch", ErrInvalidRecord)
	}

	type contribution struct {
		record   *Record
		combined hashing.Digest
	}

	leaves := make([]hashing.Digest, 0, len(requests))
	contributions := make([]contribution, 0, len(requests))

	for _, req := range requests {
		if req.Record == nil || len(req.Record.Sequence) == 0 {
			return nil, nil, fmt.Errorf("%w: renewal of a record with no chains", ErrInvalidRecord)
		}
		if len(req.Digests) == 0 {
			return nil, nil, fmt.Errorf("%w: renewal without new document digests", ErrInvalidRecord)
		}

		history, err := HistoryDigest(hasher, encoder, req.Record.Sequence)
		if err != nil {
			return nil, nil, err
		}

		for _, digest := range req.Digests {
			combined := hasher.Do(digest, history)
			leaves = append(leaves, combined)
			contributions = append(contributions, contribution{req.Record, combined})
		}
	}

	tree, err := merkle.New(hasher, leaves)
	if err != nil {
		return nil, nil, err
	}
	timestamp := newTimestamp(tree.Root().Digest(), hasher.Algorithm(), clock)

	for _, c := range contributions {
		path, err := tree.Reduce(c.combined)
		if err != nil {
			return nil, nil, err
		}
		c.record.Sequence = append(c.record.Sequence, Chain{Path: path, Timestamp: timestamp})
		c.record.DigestAlgorithm = hasher.Algorithm()
	}

	records := make([]*Record, 0, len(requests))
	for _, req := range requests {
		records = append(records, req.Record)
	}

	renewalsTotal.Inc()
	log.Debugf("Renewed %d records under %s over %d combined leaves",
		len(requests), hasher.Algorithm(), len(leaves))

	return records, tree, nil
}
