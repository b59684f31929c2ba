// Copyright 2026 The rowcalc Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package rowcalc evaluates spreadsheet-style formulas against a single row
// of column values. A formula is parsed into an expression tree, the tree is
// walked children-before-parents, and every node's result is memoized in a
// per-evaluation ResultCache. The result of the root node is the result of
// the formula.
//
// Column values are addressed with references of the form c1, c2, ... cN
// (1-based). Errors are ordinary results, not panics: a division by zero or
// a reference outside the row yields an error Result for that formula only.
//
// Example:
//
//	row := rowcalc.Row{10.0, 20.0, 30.0}
//	res, err := rowcalc.EvaluateString("SUM(c1:c3)/3", row)
//	if err != nil {
//	    // formula text did not parse
//	}
//	fmt.Println(res.Value()) // "20"
package rowcalc
