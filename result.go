// Copyright 2026 The rowcalc Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rowcalc

import (
	"fmt"
	"strconv"
)

// ResultType is the type of an evaluation result.
type ResultType byte

// Evaluation result types enumeration.
const (
	ResultEmpty ResultType = iota
	ResultNumber
	ResultString
	ResultBool
	ResultList
	ResultError
)

// String returns the name of a result type.
func (t ResultType) String() string {
	switch t {
	case ResultNumber:
		return "number"
	case ResultString:
		return "string"
	case ResultBool:
		return "boolean"
	case ResultList:
		return "list"
	case ResultError:
		return "error"
	}
	return "empty"
}

// Result is the outcome of evaluating one expression tree node: a number,
// string or boolean value, a list of values (a resolved range), or an error.
// A Result is never both a value and an error. Error text lives in String
// when Type is ResultError.
type Result struct {
	Type    ResultType
	Number  float64
	String  string
	Boolean bool
	List    []Result
}

// newNumberResult constructs a numeric result.
func newNumberResult(n float64) Result {
	return Result{Type: ResultNumber, Number: n}
}

// newStringResult constructs a string result.
func newStringResult(s string) Result {
	return Result{Type: ResultString, String: s}
}

// newBoolResult constructs a boolean result.
func newBoolResult(b bool) Result {
	return Result{Type: ResultBool, Boolean: b}
}

// newListResult constructs a list result from resolved range values.
func newListResult(values []Result) Result {
	return Result{Type: ResultList, List: values}
}

// newErrorResult constructs an error result carrying a human-readable
// message.
func newErrorResult(msg string) Result {
	return Result{Type: ResultError, String: msg}
}

// IsError reports whether the result is an error.
func (r Result) IsError() bool {
	return r.Type == ResultError
}

// Value returns the result rendered as a display string. Numbers use the
// shortest representation that round-trips, booleans render as TRUE/FALSE,
// errors render their message.
func (r Result) Value() string {
	switch r.Type {
	case ResultNumber:
		return strconv.FormatFloat(r.Number, 'f', -1, 64)
	case ResultString, ResultError:
		return r.String
	case ResultBool:
		if r.Boolean {
			return "TRUE"
		}
		return "FALSE"
	case ResultList:
		s := ""
		for i, v := range r.List {
			if i > 0 {
				s += ","
			}
			s += v.Value()
		}
		return s
	}
	return ""
}

// isNumeric reports whether the result holds a number.
func (r Result) isNumeric() bool {
	return r.Type == ResultNumber
}

// mustNumber returns the numeric value, panicking when the result holds
// anything else. Callers inside the function-evaluation boundary rely on
// the panic being recovered into an error result.
func (r Result) mustNumber() float64 {
	if r.Type != ResultNumber {
		panic(fmt.Sprintf("cannot coerce %s %q to number", r.Type, r.Value()))
	}
	return r.Number
}

// truthy reports whether the result counts as true in a condition: a true
// boolean, a non-zero number, a non-empty string or a non-empty list.
func (r Result) truthy() bool {
	switch r.Type {
	case ResultBool:
		return r.Boolean
	case ResultNumber:
		return r.Number != 0
	case ResultString:
		return r.String != ""
	case ResultList:
		return len(r.List) > 0
	}
	return false
}
