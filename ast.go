// Copyright 2026 The rowcalc Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rowcalc

import "github.com/google/uuid"

// NodeKind identifies the kind of an expression tree node.
type NodeKind int

// Expression tree node kinds enumeration. The set is closed: the traversal
// driver dispatches on it and anything else is a bug in the parser adapter.
const (
	NodeLiteral NodeKind = iota
	NodeBinary
	NodeComparison
	NodeUnary
	NodeFunction
	NodeCellRef
	NodeRangeRef
)

// String returns the name of a node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeLiteral:
		return "literal"
	case NodeBinary:
		return "binary"
	case NodeComparison:
		return "comparison"
	case NodeUnary:
		return "unary"
	case NodeFunction:
		return "function"
	case NodeCellRef:
		return "cellref"
	case NodeRangeRef:
		return "rangeref"
	}
	return "unknown"
}

// Node is one element of a parsed formula's expression tree. Which fields
// are meaningful depends on Kind:
//
//	NodeLiteral    Value
//	NodeBinary     Op, Children[0], Children[1]
//	NodeComparison Op, Children[0], Children[1]
//	NodeUnary      Op, Children[0]
//	NodeFunction   Name, Children (argument nodes)
//	NodeCellRef    Ref
//	NodeRangeRef   Start, End
//
// Every node carries a unique ID assigned at construction; the ResultCache
// is keyed by it. Nodes are immutable once the tree is built.
type Node struct {
	ID       uuid.UUID
	Kind     NodeKind
	Op       string
	Name     string
	Ref      string
	Start    string
	End      string
	Value    Result
	Children []*Node
}

// newNode constructs a node of the given kind with a fresh identity.
func newNode(kind NodeKind) *Node {
	return &Node{ID: uuid.New(), Kind: kind}
}

// newLiteralNode constructs a literal node holding a pre-computed result.
func newLiteralNode(v Result) *Node {
	n := newNode(NodeLiteral)
	n.Value = v
	return n
}
