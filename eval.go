// Copyright 2026 The rowcalc Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rowcalc

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Row is one ordered row of column values. Supported value types are
// numbers (any Go integer or float type), strings and booleans. The
// evaluator borrows the row read-only for the duration of one evaluation.
type Row []any

// columnRefPattern matches a column reference at the start of a token:
// the letter c (either case) followed by one or more digits. Trailing text
// is not rejected here; the digits alone decide the index.
var columnRefPattern = regexp.MustCompile(`^[cC]([0-9]+)`)

// Evaluator computes per-node results for one formula against one row.
// It holds the row and the evaluation's ResultCache; neither is shared
// across evaluations, so independent evaluations may run on separate
// goroutines with separate Evaluator instances.
type Evaluator struct {
	row   Row
	cache *ResultCache
}

// NewEvaluator creates an evaluator for one evaluation pass over row,
// with a fresh empty ResultCache.
func NewEvaluator(row Row) *Evaluator {
	return &Evaluator{row: row, cache: NewResultCache()}
}

// Cache returns the evaluation's result cache. The traversal driver stores
// each node's result here and reads the root's result back after the walk.
func (e *Evaluator) Cache() *ResultCache {
	return e.cache
}

// cellResult converts a raw column value into a Result.
func cellResult(v any) Result {
	switch value := v.(type) {
	case float64:
		return newNumberResult(value)
	case float32:
		return newNumberResult(float64(value))
	case int:
		return newNumberResult(float64(value))
	case int32:
		return newNumberResult(float64(value))
	case int64:
		return newNumberResult(float64(value))
	case uint:
		return newNumberResult(float64(value))
	case string:
		return newStringResult(value)
	case bool:
		return newBoolResult(value)
	case nil:
		return Result{}
	}
	return newErrorResult(fmt.Sprintf("unsupported column value type %T", v))
}

// ResolveColumnIndex resolves a reference token like "c3" to a 0-based
// column index, returned as a numeric result. Tokens that do not start
// with the reference pattern yield an invalid-reference error; references
// that resolve outside [0, columnCount) yield an out-of-range error.
func (e *Evaluator) ResolveColumnIndex(ref string) Result {
	match := columnRefPattern.FindStringSubmatch(ref)
	if match == nil {
		return newInvalidReferenceError(ref)
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return newInvalidReferenceError(ref)
	}
	idx := n - 1
	if idx < 0 || idx >= len(e.row) {
		return newIndexOutOfRangeError(ref, len(e.row))
	}
	return newNumberResult(float64(idx))
}

// ResolveColumnValue resolves a reference token to the row value it
// addresses, or propagates the reference error.
func (e *Evaluator) ResolveColumnValue(ref string) Result {
	idx := e.ResolveColumnIndex(ref)
	if idx.IsError() {
		return idx
	}
	return cellResult(e.row[int(idx.Number)])
}

// ResolveRange resolves an inclusive span of columns to a list result.
// Either endpoint failing to resolve propagates that error, start first.
// When the end column precedes the start column the span is empty.
func (e *Evaluator) ResolveRange(startRef, endRef string) Result {
	start := e.ResolveColumnIndex(startRef)
	if start.IsError() {
		return start
	}
	end := e.ResolveColumnIndex(endRef)
	if end.IsError() {
		return end
	}
	values := []Result{}
	for i := int(start.Number); i <= int(end.Number); i++ {
		values = append(values, cellResult(e.row[i]))
	}
	return newListResult(values)
}

// EvalBinary applies a binary arithmetic operator to two operand results.
// An error operand propagates unchanged, left before right. Only
// number-number pairs are supported; every other pairing (including
// string-string) is unimplemented. A computation that lands on ±Inf or NaN
// yields an arithmetic error whose message is that rendered value.
func (e *Evaluator) EvalBinary(op string, left, right Result) Result {
	if left.IsError() {
		return left
	}
	if right.IsError() {
		return right
	}
	if !left.isNumeric() || !right.isNumeric() {
		return newUnimplementedError(fmt.Sprintf("operator %q is not implemented for %s and %s", op, left.Type, right.Type))
	}
	var v float64
	switch op {
	case "+":
		v = left.Number + right.Number
	case "-":
		v = left.Number - right.Number
	case "*":
		v = left.Number * right.Number
	case "/":
		v = left.Number / right.Number
	case "^":
		v = math.Pow(left.Number, right.Number)
	case "%":
		v = math.Mod(left.Number, right.Number)
	default:
		return newUnimplementedError(fmt.Sprintf("operator %q is not implemented", op))
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return newArithmeticError(v)
	}
	return newNumberResult(v)
}

// EvalComparison applies a comparison operator to two operand results,
// yielding a boolean. Error propagation and the numeric-only restriction
// follow EvalBinary.
func (e *Evaluator) EvalComparison(op string, left, right Result) Result {
	if left.IsError() {
		return left
	}
	if right.IsError() {
		return right
	}
	if !left.isNumeric() || !right.isNumeric() {
		return newUnimplementedError(fmt.Sprintf("operator %q is not implemented for %s and %s", op, left.Type, right.Type))
	}
	switch op {
	case "=":
		return newBoolResult(left.Number == right.Number)
	case "<>":
		return newBoolResult(left.Number != right.Number)
	case ">":
		return newBoolResult(left.Number > right.Number)
	case "<":
		return newBoolResult(left.Number < right.Number)
	case ">=":
		return newBoolResult(left.Number >= right.Number)
	case "<=":
		return newBoolResult(left.Number <= right.Number)
	}
	return newUnimplementedError(fmt.Sprintf("operator %q is not implemented", op))
}

// EvalUnary applies a unary operator to one operand result. Unary plus is
// the identity, unary minus negates. Non-numeric operands are
// unimplemented.
func (e *Evaluator) EvalUnary(op string, operand Result) Result {
	if operand.IsError() {
		return operand
	}
	if !operand.isNumeric() {
		return newUnimplementedError(fmt.Sprintf("unary %q is not implemented for %s", op, operand.Type))
	}
	switch op {
	case "+":
		return operand
	case "-":
		return newNumberResult(-operand.Number)
	}
	return newUnimplementedError(fmt.Sprintf("unary %q is not implemented", op))
}
