// Copyright 2026 The rowcalc Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rowcalc

import "fmt"

// Error results carry stable, human-readable messages; they are surfaced to
// users as-is, never as numeric codes.

// newInvalidReferenceError reports a token that fails the column-reference
// pattern check.
func newInvalidReferenceError(ref string) Result {
	return newErrorResult(fmt.Sprintf("invalid column reference %q", ref))
}

// newIndexOutOfRangeError reports a syntactically valid reference that
// resolves outside the row.
func newIndexOutOfRangeError(ref string, columns int) Result {
	return newErrorResult(fmt.Sprintf("column reference %q is out of range for %d columns", ref, columns))
}

// newArithmeticError reports an operator that produced an invalid number.
// The message is exactly the rendered invalid value ("+Inf", "-Inf", "NaN");
// hosts display it verbatim.
func newArithmeticError(v float64) Result {
	return newErrorResult(fmt.Sprint(v))
}

// newArityError reports a function invoked with the wrong number of
// qualifying arguments.
func newArityError(msg string) Result {
	return newErrorResult(msg)
}

// newUnimplementedError reports an operator/type combination or function
// name with no defined behavior.
func newUnimplementedError(msg string) Result {
	return newErrorResult(msg)
}

// newInternalError converts a recovered panic at the function-evaluation
// boundary into an error result so one broken formula cannot take down its
// siblings.
func newInternalError(v any) Result {
	return newErrorResult(fmt.Sprintf("internal error: %v", v))
}
