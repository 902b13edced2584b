/*
 * condex
 *
 * Copyright 2026 The condex Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import "fmt"

/*
NodeKind identifies the role of a Node in the semi-AST.
*/
type NodeKind int

/*
Node kinds, see the payload contract table in the node kind design notes.
*/
const (
	SEQ NodeKind = iota
	SCOPE
	RETURN
	ASSIGN
	LVALUE
	EXPR
	VALUE
	OP
	CYCLE
	CONDEX
	IF
	ELSE
	PREDICATE
)

var nodeKindNames = map[NodeKind]string{
	SEQ:       "SEQ",
	SCOPE:     "SCOPE",
	RETURN:    "RETURN",
	ASSIGN:    "ASSIGN",
	LVALUE:    "LVALUE",
	EXPR:      "EXPR",
	VALUE:     "VALUE",
	OP:        "OP",
	CYCLE:     "CYCLE",
	CONDEX:    "CONDEX",
	IF:        "IF",
	ELSE:      "ELSE",
	PREDICATE: "PREDICATE",
}

func (k NodeKind) String() string {
	if n, ok := nodeKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

/*
PredicateTest enumerates the finite set of tests a PREDICATE node can carry.
Closures are unnecessary here: the language needs a single test,
GreaterThanZero, whose taken/not-taken outcome on one integer value picks
the jump target.
*/
type PredicateTest int

const (
	/*
		GreaterThanZero is the test used by both cycle and if-arm predicates.
	*/
	GreaterThanZero PredicateTest = iota
)

/*
NoTarget marks the absence of a PREDICATE not-taken jump target.
*/
const NoTarget = -1

/*
Node is a single entry in the append-only node arena. Children are
referenced by index only; the arena is the sole owner.
*/
type Node struct {
	Index    int    // stable identity, equal to this node's position in the arena
	Parent   int    // parent node index, or -1 for the root
	Kind     NodeKind
	Line     int    // zero-based source line that produced this node
	ScopeSig string // dot-joined ancestor SCOPE indices, stable key into the scope map
	Children []int

	// Payload, interpretation depends on Kind:
	Token Token // RETURN (return name), LVALUE (GNAME/LNAME), VALUE (literal/name), OP (PLUS/MINUS)

	// PREDICATE payload.
	Test           PredicateTest
	TakenTarget    int // node index to jump to when the test succeeds
	NotTakenTarget int // node index to jump to when the test fails, or NoTarget
}

/*
Tree is the append-only node arena shared by the parser and the executor.
*/
type Tree struct {
	Nodes []*Node
}

/*
NewTree creates a Tree with a single root SEQ node at index 0.
*/
func NewTree() *Tree {
	t := &Tree{}
	t.Nodes = append(t.Nodes, &Node{Index: 0, Parent: -1, Kind: SEQ, ScopeSig: "0", NotTakenTarget: NoTarget})
	return t
}

/*
Root returns the program root (always index 0, a SEQ node).
*/
func (t *Tree) Root() *Node {
	return t.Nodes[0]
}

/*
Add appends a new node as a child of parent and returns it. The caller fills
in kind-specific payload fields after creation.
*/
func (t *Tree) Add(parent int, kind NodeKind, line int, scopeSig string) *Node {
	n := &Node{
		Index:          len(t.Nodes),
		Parent:         parent,
		Kind:           kind,
		Line:           line,
		ScopeSig:       scopeSig,
		NotTakenTarget: NoTarget,
	}
	t.Nodes = append(t.Nodes, n)
	if parent >= 0 {
		p := t.Nodes[parent]
		p.Children = append(p.Children, n.Index)
	}
	return n
}

/*
Node returns the node at the given index.
*/
func (t *Tree) Node(i int) *Node {
	return t.Nodes[i]
}

/*
PrettyPrint renders the tree as the debug AST dump format described for the
`ast` invocation flag: one line per node, indented by depth, in the form
"[KIND (index) payload]".
*/
func (t *Tree) PrettyPrint() string {
	var out []byte
	var walk func(idx, depth int)

	walk = func(idx, depth int) {
		n := t.Node(idx)
		for i := 0; i < depth; i++ {
			out = append(out, '\t')
		}
		out = append(out, []byte(fmt.Sprintf("[%v (%d) %s]\n", n.Kind, n.Index, payloadString(n)))...)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}

	walk(0, 0)
	return string(out)
}

func payloadString(n *Node) string {
	switch n.Kind {
	case RETURN, LVALUE, VALUE, OP:
		return n.Token.String()
	case PREDICATE:
		return fmt.Sprintf("taken=%d not-taken=%d", n.TakenTarget, n.NotTakenTarget)
	default:
		return ""
	}
}
