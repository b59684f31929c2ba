// Copyright 2026 The rowcalc Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rowcalc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColumnIndex(t *testing.T) {
	e := NewEvaluator(Row{1.0, 2.0, 3.0, 4.0, 5.0})

	res := e.ResolveColumnIndex("c3")
	assert.Equal(t, newNumberResult(2), res)

	res = e.ResolveColumnIndex("C1")
	assert.Equal(t, newNumberResult(0), res)

	// References are matched as a prefix; trailing text does not change
	// the resolved index.
	res = e.ResolveColumnIndex("c2x")
	assert.Equal(t, newNumberResult(1), res)

	res = e.ResolveColumnIndex("z9")
	assert.True(t, res.IsError())
	assert.Equal(t, `invalid column reference "z9"`, res.Value())

	res = e.ResolveColumnIndex("")
	assert.True(t, res.IsError())

	res = e.ResolveColumnIndex("c")
	assert.True(t, res.IsError())

	res = e.ResolveColumnIndex("c99")
	assert.True(t, res.IsError())
	assert.Equal(t, `column reference "c99" is out of range for 5 columns`, res.Value())

	// c0 resolves to index -1, outside the row.
	res = e.ResolveColumnIndex("c0")
	assert.True(t, res.IsError())
}

func TestResolveColumnValue(t *testing.T) {
	e := NewEvaluator(Row{10.0, "label", true})

	assert.Equal(t, newNumberResult(10), e.ResolveColumnValue("c1"))
	assert.Equal(t, newStringResult("label"), e.ResolveColumnValue("c2"))
	assert.Equal(t, newBoolResult(true), e.ResolveColumnValue("c3"))
	assert.True(t, e.ResolveColumnValue("c4").IsError())
}

func TestResolveColumnValueIntegerCell(t *testing.T) {
	// Integer-typed cells read back as numbers.
	e := NewEvaluator(Row{int(7), int64(8), float32(1.5)})

	assert.Equal(t, newNumberResult(7), e.ResolveColumnValue("c1"))
	assert.Equal(t, newNumberResult(8), e.ResolveColumnValue("c2"))
	assert.Equal(t, newNumberResult(1.5), e.ResolveColumnValue("c3"))
}

func TestResolveRange(t *testing.T) {
	e := NewEvaluator(Row{1.0, 2.0, 3.0, 4.0, 5.0})

	res := e.ResolveRange("c2", "c4")
	assert.Equal(t, newListResult([]Result{
		newNumberResult(2), newNumberResult(3), newNumberResult(4),
	}), res)

	res = e.ResolveRange("c1", "c1")
	assert.Equal(t, newListResult([]Result{newNumberResult(1)}), res)

	// A reversed range is empty, not an error.
	res = e.ResolveRange("c4", "c2")
	assert.Equal(t, ResultList, res.Type)
	assert.Empty(t, res.List)

	// Endpoint errors propagate, start endpoint first.
	res = e.ResolveRange("x1", "c2")
	assert.Equal(t, `invalid column reference "x1"`, res.Value())
	res = e.ResolveRange("c1", "c9")
	assert.Equal(t, `column reference "c9" is out of range for 5 columns`, res.Value())
}

func TestEvalBinary(t *testing.T) {
	e := NewEvaluator(Row{})

	tests := []struct {
		op   string
		a, b float64
		want float64
	}{
		{"+", 1, 2, 3},
		{"-", 5, 3, 2},
		{"*", 4, 2.5, 10},
		{"/", 9, 3, 3},
		{"^", 2, 10, 1024},
		{"%", 7, 4, 3},
		{"%", -7, 4, -3},
	}
	for _, tt := range tests {
		res := e.EvalBinary(tt.op, newNumberResult(tt.a), newNumberResult(tt.b))
		assert.Equal(t, newNumberResult(tt.want), res, "op %q", tt.op)
	}
}

func TestEvalBinaryInvalidValues(t *testing.T) {
	e := NewEvaluator(Row{})

	// The error message is exactly the rendered invalid value.
	res := e.EvalBinary("/", newNumberResult(4), newNumberResult(0))
	assert.True(t, res.IsError())
	assert.Equal(t, "+Inf", res.Value())

	res = e.EvalBinary("/", newNumberResult(-4), newNumberResult(0))
	assert.Equal(t, "-Inf", res.Value())

	res = e.EvalBinary("/", newNumberResult(0), newNumberResult(0))
	assert.Equal(t, "NaN", res.Value())

	res = e.EvalBinary("%", newNumberResult(4), newNumberResult(0))
	assert.Equal(t, "NaN", res.Value())

	res = e.EvalBinary("^", newNumberResult(10), newNumberResult(500))
	assert.Equal(t, "+Inf", res.Value())

	res = e.EvalBinary("*", newNumberResult(math.MaxFloat64), newNumberResult(2))
	assert.Equal(t, "+Inf", res.Value())
}

func TestEvalBinaryTypeRestrictions(t *testing.T) {
	e := NewEvaluator(Row{})

	// Anything but number-number is unimplemented, string-string included.
	pairs := [][2]Result{
		{newStringResult("a"), newStringResult("b")},
		{newStringResult("a"), newNumberResult(1)},
		{newNumberResult(1), newBoolResult(true)},
		{newBoolResult(true), newBoolResult(false)},
	}
	for _, ops := range []string{"+", "-", "*", "/", "^", "%"} {
		for _, pair := range pairs {
			res := e.EvalBinary(ops, pair[0], pair[1])
			assert.True(t, res.IsError(), "op %q on %s/%s", ops, pair[0].Type, pair[1].Type)
			assert.Contains(t, res.Value(), "not implemented")
		}
	}
}

func TestEvalBinaryErrorPropagation(t *testing.T) {
	e := NewEvaluator(Row{})

	// An operand error propagates unchanged, left before right.
	for _, op := range []string{"+", "-", "*", "/", "^", "%"} {
		res := e.EvalBinary(op, newErrorResult("x"), newNumberResult(5))
		assert.Equal(t, newErrorResult("x"), res)

		res = e.EvalBinary(op, newNumberResult(5), newErrorResult("y"))
		assert.Equal(t, newErrorResult("y"), res)

		res = e.EvalBinary(op, newErrorResult("x"), newErrorResult("y"))
		assert.Equal(t, newErrorResult("x"), res)
	}
}

func TestEvalComparison(t *testing.T) {
	e := NewEvaluator(Row{})

	tests := []struct {
		op   string
		a, b float64
		want bool
	}{
		{"=", 2, 2, true},
		{"=", 2, 3, false},
		{"<>", 2, 3, true},
		{"<>", 2, 2, false},
		{">", 3, 2, true},
		{">", 2, 3, false},
		{"<", 2, 3, true},
		{">=", 2, 2, true},
		{">=", 1, 2, false},
		{"<=", 2, 2, true},
		{"<=", 3, 2, false},
	}
	for _, tt := range tests {
		res := e.EvalComparison(tt.op, newNumberResult(tt.a), newNumberResult(tt.b))
		assert.Equal(t, newBoolResult(tt.want), res, "op %q", tt.op)
	}

	res := e.EvalComparison("=", newStringResult("a"), newStringResult("a"))
	assert.True(t, res.IsError())
	assert.Contains(t, res.Value(), "not implemented")

	res = e.EvalComparison(">", newErrorResult("boom"), newNumberResult(1))
	assert.Equal(t, newErrorResult("boom"), res)
}

func TestEvalUnary(t *testing.T) {
	e := NewEvaluator(Row{})

	assert.Equal(t, newNumberResult(-5), e.EvalUnary("-", newNumberResult(5)))
	assert.Equal(t, newNumberResult(5), e.EvalUnary("-", newNumberResult(-5)))
	assert.Equal(t, newNumberResult(5), e.EvalUnary("+", newNumberResult(5)))

	res := e.EvalUnary("-", newStringResult("a"))
	assert.True(t, res.IsError())
	assert.Contains(t, res.Value(), "not implemented")

	res = e.EvalUnary("-", newErrorResult("boom"))
	assert.Equal(t, newErrorResult("boom"), res)
}

func TestResultValue(t *testing.T) {
	assert.Equal(t, "20", newNumberResult(20).Value())
	assert.Equal(t, "2.5", newNumberResult(2.5).Value())
	assert.Equal(t, "TRUE", newBoolResult(true).Value())
	assert.Equal(t, "FALSE", newBoolResult(false).Value())
	assert.Equal(t, "abc", newStringResult("abc").Value())
	assert.Equal(t, "boom", newErrorResult("boom").Value())
	assert.Equal(t, "1,2", newListResult([]Result{newNumberResult(1), newNumberResult(2)}).Value())
	assert.Equal(t, "", Result{}.Value())
}

func TestResultTruthy(t *testing.T) {
	assert.True(t, newBoolResult(true).truthy())
	assert.False(t, newBoolResult(false).truthy())
	assert.True(t, newNumberResult(1).truthy())
	assert.False(t, newNumberResult(0).truthy())
	assert.True(t, newStringResult("x").truthy())
	assert.False(t, newStringResult("").truthy())
	assert.False(t, Result{}.truthy())
}
