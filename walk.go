// Copyright 2026 The rowcalc Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rowcalc

import "fmt"

// Evaluate walks an expression tree children-before-parents against one
// row, memoizing every node's result in a fresh ResultCache, and returns
// the root node's result. Each call is fully self-contained: nothing
// persists between calls and concurrent calls do not interfere.
func Evaluate(root *Node, row Row) Result {
	e := NewEvaluator(row)
	e.Walk(root)
	return e.cache.Get(root.ID)
}

// EvaluateString parses formula text and evaluates it against row. The
// returned error covers parse failures only; evaluation problems arrive as
// an error Result.
func EvaluateString(formula string, row Row) (Result, error) {
	root, err := ParseFormula(formula)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(root, row), nil
}

// Walk performs the post-order traversal for one node and its subtree,
// dispatching each node to the evaluator operation matching its kind and
// storing the result in the cache. All children are evaluated eagerly,
// including both branches of IF and IFERROR; those functions select among
// the cached branch results afterwards.
func (e *Evaluator) Walk(n *Node) {
	for _, child := range n.Children {
		e.Walk(child)
	}
	var r Result
	switch n.Kind {
	case NodeLiteral:
		r = n.Value
	case NodeBinary:
		r = e.EvalBinary(n.Op, e.cache.Get(n.Children[0].ID), e.cache.Get(n.Children[1].ID))
	case NodeComparison:
		r = e.EvalComparison(n.Op, e.cache.Get(n.Children[0].ID), e.cache.Get(n.Children[1].ID))
	case NodeUnary:
		r = e.EvalUnary(n.Op, e.cache.Get(n.Children[0].ID))
	case NodeFunction:
		r = e.EvalFunction(n.Name, n.Children)
	case NodeCellRef:
		r = e.ResolveColumnValue(n.Ref)
	case NodeRangeRef:
		r = e.ResolveRange(n.Start, n.End)
	default:
		panic(fmt.Sprintf("unknown node kind %d", n.Kind))
	}
	e.cache.Set(n.ID, r)
}
