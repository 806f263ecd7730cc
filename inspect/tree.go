// This file is part of Zwalker.
//
// Zwalker is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zwalker is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zwalker.  If not, see <https://www.gnu.org/licenses/>.

package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/bradleyjkemp/memviz"
)

// Node is a single object in the object tree.
type Node struct {
	Object
	Children []*Node
}

// Tree returns the object tree. The roots of the tree are the objects
// without a parent. Unnamed objects without children are not included.
func (in *Inspector) Tree() []*Node {
	seen := make(map[uint16]bool)

	var build func(obj uint16) *Node
	build = func(obj uint16) *Node {
		seen[obj] = true
		n := &Node{Object: in.Object(obj)}
		for _, c := range in.objects.Children(obj) {
			if seen[c] {
				continue
			}
			n.Children = append(n.Children, build(c))
		}
		return n
	}

	var roots []*Node
	for obj := range uint16(in.objects.Count()) {
		obj++
		if seen[obj] || in.objects.Parent(obj) != 0 {
			continue
		}
		n := build(obj)
		if n.Name == "" && len(n.Children) == 0 {
			continue
		}
		roots = append(roots, n)
	}
	return roots
}

func (n *Node) write(w io.Writer, depth int) error {
	name := n.Name
	if name == "" {
		name = "(unnamed)"
	}
	if _, err := fmt.Fprintf(w, "%s[%d] %s\n", strings.Repeat("  ", depth), n.Number, name); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.write(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// WriteTree writes the object tree as indented text.
func (in *Inspector) WriteTree(w io.Writer) error {
	for _, n := range in.Tree() {
		if err := n.write(w, 0); err != nil {
			return err
		}
	}
	return nil
}

// Graph writes the object tree in graphviz dot format.
func (in *Inspector) Graph(w io.Writer) {
	memviz.Map(w, in.Tree())
}

// GraphState writes the state of the engine in graphviz dot format. The
// engine must be waiting for input or be between instructions.
func (in *Inspector) GraphState(w io.Writer) error {
	st, err := in.eng.Snapshot()
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	// dynamic memory makes the graph unreadable
	st.Dynamic = nil
	memviz.Map(w, st)
	return nil
}
