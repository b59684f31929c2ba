// Copyright 2026 The rowcalc Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rowcalc

import (
	"fmt"
	"math"
	"strings"
)

// EvalFunction applies a named function to its argument nodes. The argument
// nodes have already been evaluated by the driver; most functions consume
// their gathered results, while IF and IFERROR read branch results straight
// from the ResultCache so the un-taken branch's error status cannot leak
// into the outcome.
//
// The whole call runs inside a failure boundary: any panic raised while a
// function body coerces or indexes its arguments becomes an internal-error
// result instead of terminating the evaluation of sibling formulas.
func (e *Evaluator) EvalFunction(name string, args []*Node) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = newInternalError(r)
		}
	}()
	switch strings.ToUpper(name) {
	case "SUM":
		return e.fnSUM(e.gatherArgs(args))
	case "AVG":
		return e.fnAVG(e.gatherArgs(args))
	case "MOD":
		return e.fnMOD(e.gatherArgs(args))
	case "ABS":
		return e.fnABS(e.gatherArgs(args))
	case "MIN":
		return e.fnMIN(e.gatherArgs(args))
	case "MAX":
		return e.fnMAX(e.gatherArgs(args))
	case "COUNT":
		return e.fnCOUNT(e.gatherArgs(args))
	case "OR":
		return e.fnOR(e.gatherArgs(args))
	case "AND":
		return e.fnAND(e.gatherArgs(args))
	case "IF":
		return e.fnIF(args)
	case "IFERROR":
		return e.fnIFERROR(args)
	}
	return newUnimplementedError(fmt.Sprintf("function %s is not implemented", strings.ToUpper(name)))
}

// gatherArgs collects the cached results of the argument nodes, flattening
// resolved ranges into their element values. Encountering any error result
// yields an empty argument list; unlike the operator path the original
// error is not propagated, and the function decides what an empty list
// means (SUM of nothing is 0, AVG of nothing is an arity error).
func (e *Evaluator) gatherArgs(args []*Node) []Result {
	var gathered []Result
	for _, arg := range args {
		r := e.cache.Get(arg.ID)
		if r.IsError() {
			return nil
		}
		if r.Type == ResultList {
			gathered = append(gathered, r.List...)
			continue
		}
		gathered = append(gathered, r)
	}
	return gathered
}

// numericArgs filters the gathered arguments down to numbers.
func numericArgs(args []Result) []Result {
	var nums []Result
	for _, a := range args {
		if a.isNumeric() {
			nums = append(nums, a)
		}
	}
	return nums
}

// fnSUM sums the numeric arguments; non-numeric values are skipped and an
// empty list sums to 0.
func (e *Evaluator) fnSUM(args []Result) Result {
	sum := 0.0
	for _, a := range numericArgs(args) {
		sum += a.Number
	}
	return newNumberResult(sum)
}

// fnAVG returns the arithmetic mean of the numeric arguments.
func (e *Evaluator) fnAVG(args []Result) Result {
	nums := numericArgs(args)
	if len(nums) < 1 {
		return newArityError("AVG requires at least 1 numeric argument")
	}
	sum := 0.0
	for _, a := range nums {
		sum += a.Number
	}
	return newNumberResult(sum / float64(len(nums)))
}

// fnMOD returns the remainder of its two numeric arguments. Only the
// too-many case is checked explicitly; too few arguments trip the
// failure boundary when the second operand is indexed.
func (e *Evaluator) fnMOD(args []Result) Result {
	nums := numericArgs(args)
	if len(nums) > 2 {
		return newArityError("MOD accepts exactly 2 numeric arguments")
	}
	return newNumberResult(math.Mod(nums[0].mustNumber(), nums[1].mustNumber()))
}

// fnABS returns the absolute value of its first argument. The only
// explicit check rejects multiple arguments whose first is not numeric;
// a lone non-numeric argument instead trips the coercion panic inside the
// failure boundary.
func (e *Evaluator) fnABS(args []Result) Result {
	if len(args) > 1 && !args[0].isNumeric() {
		return newArityError("ABS requires 1 numeric argument")
	}
	return newNumberResult(math.Abs(args[0].mustNumber()))
}

// fnMIN returns the smallest numeric argument.
func (e *Evaluator) fnMIN(args []Result) Result {
	nums := numericArgs(args)
	if len(nums) < 1 {
		return newArityError("MIN requires at least 1 numeric argument")
	}
	min := nums[0].Number
	for _, a := range nums[1:] {
		if a.Number < min {
			min = a.Number
		}
	}
	return newNumberResult(min)
}

// fnMAX returns the largest numeric argument.
func (e *Evaluator) fnMAX(args []Result) Result {
	nums := numericArgs(args)
	if len(nums) < 1 {
		return newArityError("MAX requires at least 1 numeric argument")
	}
	max := nums[0].Number
	for _, a := range nums[1:] {
		if a.Number > max {
			max = a.Number
		}
	}
	return newNumberResult(max)
}

// fnCOUNT counts all gathered arguments, whatever their type.
func (e *Evaluator) fnCOUNT(args []Result) Result {
	return newNumberResult(float64(len(args)))
}

// fnOR is true when any argument is truthy.
func (e *Evaluator) fnOR(args []Result) Result {
	if len(args) < 1 {
		return newArityError("OR requires at least 1 argument")
	}
	for _, a := range args {
		if a.truthy() {
			return newBoolResult(true)
		}
	}
	return newBoolResult(false)
}

// fnAND is true when no argument is falsy.
func (e *Evaluator) fnAND(args []Result) Result {
	if len(args) < 1 {
		return newArityError("AND requires at least 1 argument")
	}
	for _, a := range args {
		if !a.truthy() {
			return newBoolResult(false)
		}
	}
	return newBoolResult(true)
}

// fnIF selects between two already-evaluated branches on the condition
// node's cached result. The selected branch's result is returned exactly
// as cached, errors included; the other branch's result never matters,
// even though the driver evaluated it.
func (e *Evaluator) fnIF(args []*Node) Result {
	if len(args) != 3 {
		return newArityError("IF requires 3 arguments")
	}
	cond := e.cache.Get(args[0].ID)
	if !cond.IsError() && cond.truthy() {
		return e.cache.Get(args[1].ID)
	}
	return e.cache.Get(args[2].ID)
}

// fnIFERROR returns the first argument's cached result unless it is an
// error, in which case the fallback node's cached result is returned.
func (e *Evaluator) fnIFERROR(args []*Node) Result {
	if len(args) != 2 {
		return newArityError("IFERROR requires 2 arguments")
	}
	value := e.cache.Get(args[0].ID)
	if value.IsError() {
		return e.cache.Get(args[1].ID)
	}
	return value
}
