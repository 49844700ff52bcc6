// Copyright 2026 The Malloclab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "unsafe"

// place removes the free block b (physical size B) from the free list and
// allocates reqSize bytes of it. If the leftover is at least a minimum
// block, it is split off as a new free block and coalesced — defending
// against the case where extendHeap's split lands next to an
// already-free neighbor; in the ordinary allocate path the remainder is
// isolated and coalesce degenerates to a plain free-list insert.
// Otherwise the whole block is allocated, accepting up to minBlock-1
// bytes of internal fragmentation.
func (a *Allocator) place(b unsafe.Pointer, reqSize int) unsafe.Pointer {
	total := blockSize(b)
	a.flRemove(b)

	if total-reqSize >= minBlock {
		setBlock(b, reqSize, 1)
		rem := nextPhysical(b)
		setBlock(rem, total-reqSize, 0)
		a.coalesce(rem)
	} else {
		setBlock(b, total, 1)
	}

	return b
}
