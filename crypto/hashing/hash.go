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

// Package hashing implements the digest providers used to build hash trees
// and to renew evidence records across algorithms.
package hashing

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Algorithm labels understood by New.
const (
	SHA256  = "SHA256"
	SHA512  = "SHA512"
	BLAKE2B = "BLAKE2B"
)

type Digest []byte

// String renders printable digests verbatim and everything else as hex.
func (d Digest) String() string {
	for _, b := range d {
		if b < 0x20 || b > 0x7e {
			return hex.EncodeToString(d)
		}
	}
	return string(d)
}

// Hasher combines one or more byte strings into a digest under a named
// algorithm. Combining two digests is Do(left, right); pass-through
// promotion in a hash tree never touches the hasher.
type Hasher interface {
	Do(...[]byte) Digest
	Algorithm() string
	Len() uint16
}

// New returns a hasher for the given algorithm label, or an error if the
// label is unknown.
func New(algorithm string) (Hasher, error) {
	switch algorithm {
	case SHA256:
		return NewSha256Hasher(), nil
	case SHA512:
		return NewSha512Hasher(), nil
	case BLAKE2B:
		return NewBlake2bHasher(), nil
	}
	return nil, fmt.Errorf("unknown digest algorithm %q", algorithm)
}

type KeyHasher struct {
	algorithm  string
	bits       uint16
	underlying hash.Hash
}

// NewSha256Hasher implements the Hasher interface and computes a 256 bit
// hash function using the SHA256 hashing algorithm.
func NewSha256Hasher() Hasher {
	return &KeyHasher{algorithm: SHA256, bits: 256, underlying: sha256.New()}
}

// NewSha512Hasher implements the Hasher interface and computes a 512 bit
// hash function using the SHA512 hashing algorithm.
func NewSha512Hasher() Hasher {
	return &KeyHasher{algorithm: SHA512, bits: 512, underlying: sha512.New()}
}

// NewBlake2bHasher implements the Hasher interface and computes a 256 bit
// hash function using the Blake2 hashing algorithm.
func NewBlake2bHasher() Hasher {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		panic(fmt.Sprintf("Error creating BLAKE2b hasher %v", err))
	}
	return &KeyHasher{algorithm: BLAKE2B, bits: 256, underlying: hasher}
}

// Do function hashes input data using the hashing function given by the KeyHasher.
func (s *KeyHasher) Do(data ...[]byte) Digest {
	s.underlying.Reset()
	for i := 0; i < len(data); i++ {
		_, _ = s.underlying.Write(data[i])
	}
	return s.underlying.Sum(nil)[:]
}

// Algorithm function returns the label of the hashing algorithm.
func (s *KeyHasher) Algorithm() string { return s.algorithm }

// Len function returns the size of the resulting hash.
func (s *KeyHasher) Len() uint16 { return s.bits }

// ConcatHasher implements the Hasher interface by joining its operands
// with a "+" separator, leaving a single operand untouched. Handy for
// testing hash tree implementations and for rendering readable trees: the
// resulting digests spell out the combinations that produced them. The
// bracket variant wraps each operand in parentheses; the notation is fixed
// at construction instead of living in process-wide state.
type ConcatHasher struct {
	algorithm string
	brackets  bool
}

func NewConcatHasher(algorithm string) Hasher {
	return &ConcatHasher{algorithm: algorithm}
}

func NewBracketConcatHasher(algorithm string) Hasher {
	return &ConcatHasher{algorithm: algorithm, brackets: true}
}

// Do function joins the input data with the configured notation.
func (c *ConcatHasher) Do(data ...[]byte) Digest {
	if len(data) == 1 {
		return append(Digest{}, data[0]...)
	}
	var out Digest
	for i, elem := range data {
		if i > 0 {
			if c.brackets {
				out = append(out, ' ', '+', ' ')
			} else {
				out = append(out, '+')
			}
		}
		if c.brackets {
			out = append(out, '(')
		}
		out = append(out, elem...)
		if c.brackets {
			out = append(out, ')')
		}
	}
	return out
}

// Algorithm function returns the label carried by the hasher.
func (c *ConcatHasher) Algorithm() string { return c.algorithm }

// Len function returns the size of the resulting hash, which is unbounded
// for a concatenating hasher.
func (c *ConcatHasher) Len() uint16 { return 0 }
