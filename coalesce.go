// Copyright 2026 The Malloclab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "unsafe"

// coalesce merges a newly-freed block b (header and footer already
// rewritten with the allocation bit cleared, not yet on the free list)
// with its physically adjacent free neighbors, inserts the result at the
// head of the free list, and returns the (possibly shifted) block
// pointer. The prologue and epilogue both read as "allocated" through the
// ordinary boundary-tag check, so they terminate the merge without any
// special-casing here.
func (a *Allocator) coalesce(b unsafe.Pointer) unsafe.Pointer {
	prev := prevPhysical(b)
	next := nextPhysical(b)
	prevFree := !isAllocated(prev)
	nextFree := !isAllocated(next)
	size := blockSize(b)

	switch {
	case !prevFree && !nextFree:
		// no merge
	case !prevFree && nextFree:
		size += blockSize(next)
		a.flRemove(next)
	case prevFree && !nextFree:
		size += blockSize(prev)
		a.flRemove(prev)
		b = prev
	default: // prevFree && nextFree
		size += blockSize(prev) + blockSize(next)
		a.flRemove(prev)
		a.flRemove(next)
		b = prev
	}

	setBlock(b, size, 0)
	a.flInsert(b)
	return b
}
