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

package merkle

import (
	"bytes"
	"errors"

	"github.com/ltans/evidence/crypto/hashing"
	"github.com/ltans/evidence/log"
)

// ErrLeafNotFound is returned when a reduction target is not a leaf of
// the tree.
var ErrLeafNotFound = errors.New("merkle: leaf not found")

// ReducedNode is one node of a reduced path. On the path toward the
// target the child recurses; the off-path sibling is a shallow stub
// carrying only its digest and leaf tags. A pass-through ancestor carries
// its single child with no sibling at all.
type ReducedNode struct {
	Digest    hashing.Digest
	Left      *ReducedNode
	Right     *ReducedNode
	Leaf      bool
	LeafIndex int
	Side      Side
}

// ReducedPath is the archival data object: the minimal subset of a hash
// tree proving inclusion of one leaf under the root. It pins the target
// leaf so that verification checks the claimed digest against the leaf
// the path was actually reduced for, not against any sibling stub that
// happens to be a leaf too.
type ReducedPath struct {
	root *ReducedNode
	leaf *ReducedNode
}

func (p *ReducedPath) Root() *ReducedNode { return p.root }

// RootDigest returns the digest held at the top of the path, captured at
// reduction time.
func (p *ReducedPath) RootDigest() hashing.Digest { return p.root.Digest }

// LeafDigest returns the digest of the target leaf the path proves
// inclusion of.
func (p *ReducedPath) LeafDigest() hashing.Digest { return p.leaf.Digest }

// Reduce extracts the minimal sibling path proving inclusion of the leaf
// matching the target digest. Each ancestor keeps the recursing child on
// the path side and a digest-only stub of the other child; single-child
// ancestors carry the child upward with no stub.
func (t *Tree) Reduce(target hashing.Digest) (*ReducedPath, error) {
	current := t.FindLeaf(target)
	if current == nil {
		return nil, ErrLeafNotFound
	}

	log.Debugf("Reducing tree to the inclusion path of leaf %d [%v]", current.LeafIndex(), target)

	leaf := &ReducedNode{
		Digest:    append(hashing.Digest{}, current.digest...),
		Leaf:      true,
		LeafIndex: current.leafIndex,
		Side:      current.side,
	}

	reduced := leaf
	for parent := current.Parent(); parent != nil; current, parent = parent, parent.Parent() {
		next := &ReducedNode{Digest: append(hashing.Digest{}, parent.digest...)}
		switch {
		case parent.Right() == nil:
			// pass-through level, nothing to keep besides the child
			next.Left = reduced
		case parent.Left() == current:
			next.Left = reduced
			next.Right = stub(parent.Right())
		default:
			next.Left = stub(parent.Left())
			next.Right = reduced
		}
		reduced = next
	}

	reduceTotal.Inc()
	return &ReducedPath{root: reduced, leaf: leaf}, nil
}

func stub(n *Node) *ReducedNode {
	return &ReducedNode{
		Digest:    append(hashing.Digest{}, n.digest...),
		Leaf:      n.leaf,
		LeafIndex: n.leafIndex,
		Side:      n.side,
	}
}

// Verify checks that the claimed digest is the path's target leaf and
// that recomputing every digest bottom-up, with the same combine and
// pass-through rules used at construction, reproduces the stored ancestor
// digests up to the root.
func (p *ReducedPath) Verify(hasher hashing.Hasher, leaf hashing.Digest) bool {
	if p == nil || p.root == nil || p.leaf == nil {
		return false
	}
	if !bytes.Equal(p.leaf.Digest, leaf) {
		return false
	}
	return consistent(p.root, hasher)
}

func consistent(n *ReducedNode, hasher hashing.Hasher) bool {
	switch {
	case n.Left == nil && n.Right == nil:
		return true
	case n.Left != nil && n.Right != nil:
		if !bytes.Equal(n.Digest, hasher.Do(n.Left.Digest, n.Right.Digest)) {
			return false
		}
		return consistent(n.Left, hasher) && consistent(n.Right, hasher)
	case n.Left != nil:
		if !bytes.Equal(n.Digest, n.Left.Digest) {
			return false
		}
		return consistent(n.Left, hasher)
	default:
		if !bytes.Equal(n.Digest, n.Right.Digest) {
			return false
		}
		return consistent(n.Right, hasher)
	}
}
