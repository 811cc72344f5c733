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

// Package merkle implements the binary hash tree evidence records are
// built on: level-by-level construction from an ordered leaf sequence,
// digest lookup, and reduction of a tree to the minimal inclusion path of
// a single leaf.
package merkle

import (
	"bytes"
	"errors"

	"github.com/ltans/evidence/crypto/hashing"
	"github.com/ltans/evidence/log"
)

// ErrNoLeaves is returned when a tree is built over an empty leaf sequence.
var ErrNoLeaves = errors.New("merkle: empty leaf sequence")

// Side tags the position of a node among its level. Display only, it
// carries no cryptographic meaning.
type Side uint8

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

const noNode = -1

// Node is one node of a hash tree. Nodes live in the arena owned by their
// tree and address relatives by index; the exported accessors give any
// consumer a read-only traversal surface. A node is immutable once its
// tree is built.
type Node struct {
	tree      *Tree
	digest    hashing.Digest
	left      int
	right     int
	parent    int
	level     int
	leafIndex int
	leaf      bool
	side      Side
}

func (n *Node) Digest() hashing.Digest { return n.digest }
func (n *Node) IsLeaf() bool           { return n.leaf }

// Level returns the height of the node, where leaves sit at level 0.
func (n *Node) Level() int { return n.level }

// LeafIndex returns the 1-based position among the original leaves, or
// zero for internal nodes.
func (n *Node) LeafIndex() int { return n.leafIndex }

func (n *Node) Side() Side { return n.side }

func (n *Node) Left() *Node   { return n.tree.node(n.left) }
func (n *Node) Right() *Node  { return n.tree.node(n.right) }
func (n *Node) Parent() *Node { return n.tree.node(n.parent) }

// Tree is a binary hash tree over an ordered sequence of leaf digests.
// The arena owns every node; the tree is never mutated after New returns.
type Tree struct {
	hasher hashing.Hasher
	nodes  []Node
	levels [][]int
	root   int
}

// New builds a hash tree over the given leaves. Adjacent nodes are paired
// left to right within each level; an unpaired trailing node is promoted
// through a single-child parent whose digest equals the child's, with no
// combination. A single leaf is its own root.
func New(hasher hashing.Hasher, leaves []hashing.Digest) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrNoLeaves
	}

	log.Debugf("Building hash tree over %d leaves with %s", len(leaves), hasher.Algorithm())

	t := &Tree{hasher: hasher, root: noNode}

	level := make([]int, 0, len(leaves))
	for i, digest := range leaves {
		side := Left
		if i%2 == 1 {
			side = Right
		}
		level = append(level, t.push(Node{
			digest:    append(hashing.Digest{}, digest...),
			left:      noNode,
			right:     noNode,
			parent:    noNode,
			leaf:      true,
			leafIndex: i + 1,
			side:      side,
		}))
	}
	t.levels = append(t.levels, level)

	for len(level) > 1 {
		next := make([]int, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			li := level[i]
			node := Node{
				left:   li,
				right:  noNode,
				parent: noNode,
				level:  t.nodes[li].level + 1,
			}
			if i+1 < len(level) {
				ri := level[i+1]
				node.right = ri
				node.digest = hasher.Do(t.nodes[li].digest, t.nodes[ri].digest)
				pi := t.push(node)
				t.nodes[li].parent = pi
				t.nodes[ri].parent = pi
				next = append(next, pi)
				continue
			}
			// Unpaired trailing node: promote the digest unchanged.
			node.digest = append(hashing.Digest{}, t.nodes[li].digest...)
			pi := t.push(node)
			t.nodes[li].parent = pi
			next = append(next, pi)
		}
		t.levels = append(t.levels, next)
		level = next
	}

	t.root = level[0]
	buildTotal.Inc()
	return t, nil
}

func (t *Tree) push(n Node) int {
	n.tree = t
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *Tree) node(i int) *Node {
	if i == noNode {
		return nil
	}
	return &t.nodes[i]
}

// Root returns the unique node with no parent.
func (t *Tree) Root() *Node { return t.node(t.root) }

// Height returns the level of the root.
func (t *Tree) Height() int { return len(t.levels) - 1 }

// NumLeaves returns the number of original leaves.
func (t *Tree) NumLeaves() int { return len(t.levels[0]) }

// FindLeaf returns the first leaf whose digest equals the target, or nil.
// Digests are not assumed unique; first match wins.
func (t *Tree) FindLeaf(digest hashing.Digest) *Node {
	for _, i := range t.levels[0] {
		if bytes.Equal(t.nodes[i].digest, digest) {
			return &t.nodes[i]
		}
	}
	return nil
}

// FindNode returns the first node at any level whose digest equals the
// target, or nil. Pass-through promotion can repeat a digest across
// levels, so this lookup is ambiguous for document-inclusion queries; use
// FindLeaf for those.
func (t *Tree) FindNode(digest hashing.Digest) *Node {
	for i := range t.nodes {
		if bytes.Equal(t.nodes[i].digest, digest) {
			return &t.nodes[i]
		}
	}
	return nil
}
