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
	"fmt"
	"strings"
)

// Sprint renders a tree top-down with one node per line, indented by
// depth. Intended for demo output and debugging.
func Sprint(t *Tree) string {
	p := &printer{height: t.Height()}
	p.visit(t.Root())
	return p.result()
}

// SprintPath renders a reduced path in the same layout, marking the
// target leaf and the off-path sibling stubs.
func SprintPath(path *ReducedPath) string {
	p := &printer{height: depth(path.Root()), target: path.leaf}
	p.visitReduced(path.Root(), 0)
	return p.result()
}

type printer struct {
	tokens []string
	height int
	target *ReducedNode
}

func (p *printer) result() string {
	return fmt.Sprintf("\n%s", strings.Join(p.tokens, "\n"))
}

func (p *printer) visit(n *Node) {
	if n == nil {
		return
	}
	label := "node"
	if n.IsLeaf() {
		label = fmt.Sprintf("leaf %d %s", n.LeafIndex(), n.Side())
	}
	p.tokens = append(p.tokens, fmt.Sprintf("%s%s [%v]", p.indent(n.Level()), label, n.Digest()))
	p.visit(n.Left())
	p.visit(n.Right())
}

func (p *printer) visitReduced(n *ReducedNode, level int) {
	if n == nil {
		return
	}
	label := "node"
	switch {
	case n == p.target:
		label = fmt.Sprintf("leaf %d %s", n.LeafIndex, n.Side)
	case n.Left == nil && n.Right == nil:
		label = "sibling"
	}
	p.tokens = append(p.tokens, fmt.Sprintf("%s%s [%v]", p.indent(p.height-level), label, n.Digest))
	p.visitReduced(n.Left, level+1)
	p.visitReduced(n.Right, level+1)
}

func (p *printer) indent(height int) string {
	indents := make([]string, 0)
	for i := height; i < p.height; i++ {
		indents = append(indents, "\t")
	}
	return strings.Join(indents, "")
}

func depth(n *ReducedNode) int {
	if n == nil {
		return -1
	}
	left, right := depth(n.Left), depth(n.Right)
	if right > left {
		left = right
	}
	return left + 1
}
