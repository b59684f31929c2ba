// Copyright 2026 The rowcalc Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rowcalc

import (
	"fmt"

	"github.com/google/uuid"
)

// ResultCache maps expression tree nodes, by identity, to their computed
// results. The traversal driver populates it children-before-parents; the
// evaluator reads operand results back out when combining them. One cache
// lives exactly as long as one evaluation pass and is never shared between
// evaluations.
type ResultCache struct {
	results map[uuid.UUID]Result
}

// NewResultCache creates an empty cache for one evaluation pass.
func NewResultCache() *ResultCache {
	return &ResultCache{results: make(map[uuid.UUID]Result)}
}

// Get returns the cached result for a node. The driver guarantees
// children are evaluated before their parents, so looking up a node that
// has no result yet is a contract violation, not a recoverable condition.
func (c *ResultCache) Get(id uuid.UUID) Result {
	r, ok := c.results[id]
	if !ok {
		panic(fmt.Sprintf("result cache: node %s has not been evaluated", id))
	}
	return r
}

// Set stores the result for a node. Each node is written once per
// evaluation pass.
func (c *ResultCache) Set(id uuid.UUID, r Result) {
	c.results[id] = r
}

// Len returns the number of stored results.
func (c *ResultCache) Len() int {
	return len(c.results)
}

// Values returns all stored results, in no particular order. The driver
// uses Get on the root node to retrieve the final result; Values exists for
// inspection and diagnostics.
func (c *ResultCache) Values() []Result {
	values := make([]Result, 0, len(c.results))
	for _, r := range c.results {
		values = append(values, r)
	}
	return values
}
