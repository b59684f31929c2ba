// Copyright 2026 The rowcalc Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rowcalc

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResultCache(t *testing.T) {
	cache := NewResultCache()
	assert.Equal(t, 0, cache.Len())

	a := uuid.New()
	b := uuid.New()
	cache.Set(a, newNumberResult(1))
	cache.Set(b, newErrorResult("boom"))

	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, newNumberResult(1), cache.Get(a))
	assert.Equal(t, newErrorResult("boom"), cache.Get(b))
	assert.Len(t, cache.Values(), 2)
}

func TestResultCacheUnevaluatedNode(t *testing.T) {
	cache := NewResultCache()

	// Reading a node the driver never evaluated violates the post-order
	// contract and is fatal, not a recoverable error.
	assert.Panics(t, func() {
		cache.Get(uuid.New())
	})
}

func TestResultCacheDistinctNodesDistinctSlots(t *testing.T) {
	// Two nodes holding equal values still occupy separate cache slots.
	n1 := newLiteralNode(newNumberResult(5))
	n2 := newLiteralNode(newNumberResult(5))
	assert.NotEqual(t, n1.ID, n2.ID)

	cache := NewResultCache()
	cache.Set(n1.ID, newNumberResult(5))
	cache.Set(n2.ID, newErrorResult("x"))
	assert.Equal(t, newNumberResult(5), cache.Get(n1.ID))
	assert.Equal(t, newErrorResult("x"), cache.Get(n2.ID))
}
