// Copyright 2026 The Malloclab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignUp(t *testing.T) {
	cases := []struct{ n, m, want int }{
		{0, 16, 0},
		{1, 16, 16},
		{16, 16, 16},
		{17, 16, 32},
		{100, 16, 112},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, alignUp(c.n, c.m), "alignUp(%d, %d)", c.n, c.m)
	}
}

func TestReqSize(t *testing.T) {
	assert.Equal(t, minBlock, reqSize(1))
	assert.Equal(t, minBlock, reqSize(16))
	assert.Equal(t, 48, reqSize(17))
	assert.Equal(t, 128, reqSize(100))
}

func TestPackUnpack(t *testing.T) {
	w := packWord(128, 1)
	assert.Equal(t, 128, unpackSize(w))
	assert.Equal(t, 1, unpackAlloc(w))

	w = packWord(64, 0)
	assert.Equal(t, 64, unpackSize(w))
	assert.Equal(t, 0, unpackAlloc(w))
}

func TestSetBlockHeaderFooterMatch(t *testing.T) {
	a := newTestAllocator(t)
	p, err := a.Malloc(32)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, getWord(headerAddr(p)), getWord(footerAddr(p)))
	assert.True(t, isAllocated(p))
}

func TestNeighborAddressing(t *testing.T) {
	a := newTestAllocator(t)
	p1, err := a.Malloc(16)
	require.NoError(t, err)
	p2, err := a.Malloc(16)
	require.NoError(t, err)

	assert.Equal(t, p2, nextPhysical(p1))
	assert.Equal(t, p1, prevPhysical(p2))
}
