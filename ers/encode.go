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
	"bytes"

	"github.com/hashicorp/go-msgpack/codec"

	"github.com/ltans/evidence/crypto/hashing"
	"github.com/ltans/evidence/log"
)

// Encoder deterministically serializes an archive timestamp chain
// sequence. It stands in for the DER encoding of the sequence: two equal
// sequences encode identically, and reordering changes the encoding.
type Encoder interface {
	Encode(seq []Chain) ([]byte, error)
}

// CodecEncoder encodes the timestamps of a sequence with msgpack.
type CodecEncoder struct{}

// encodedTimestamp is the stable wire form of a Timestamp. Times travel
// as Unix nanoseconds so the encoding does not depend on time.Time
// internals.
type encodedTimestamp struct {
	Digest    []byte
	Time      int64
	Algorithm string
}

func (CodecEncoder) Encode(seq []Chain) ([]byte, error) {
	out := make([]encodedTimestamp, 0, len(seq))
	for _, chain := range seq {
		out = append(out, encodedTimestamp{
			Digest:    chain.Timestamp.Digest,
			Time:      chain.Timestamp.Time.UnixNano(),
			Algorithm: chain.Timestamp.Algorithm,
		})
	}

	var buf bytes.Buffer
	encoder := codec.NewEncoder(&buf, &codec.MsgpackHandle{})
	if err := encoder.Encode(out); err != nil {
		log.Errorf("Failed to encode timestamp sequence: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConcatEncoder concatenates the timestamp digests of the sequence.
// Byte-compatible with concatenating hashers, it keeps demo output
// readable; real deployments should prefer CodecEncoder.
type ConcatEncoder struct{}

func (ConcatEncoder) Encode(seq []Chain) ([]byte, error) {
	var buf bytes.Buffer
	for _, chain := range seq {
		buf.Write(chain.Timestamp.Digest)
	}
	return buf.Bytes(), nil
}

// HistoryDigest summarizes a record's accumulated proof history: the
// digest of the canonical encoding of the entire sequence so far. Renewal
// derives combined leaves from it and verification recomputes it, so both
// sides agree on what a renewal is a proof of.
func HistoryDigest(hasher hashing.Hasher, encoder Encoder, seq []Chain) (hashing.Digest, error) {
	encoded, err := encoder.Encode(seq)
	if err != nil {
		return nil, err
	}
	return hasher.Do(encoded), nil
}
