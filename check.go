// Copyright 2026 The Malloclab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/cznic/mathutil"
)

// HeapError describes a single structural invariant violated by the heap,
// as reported by CheckHeap. It is never produced by correct use of the
// public API; its only source is caller-induced corruption (an overrun
// past a payload's requested size, a stray write through a stale
// pointer, a double free that slipped past Free's own heuristic).
type HeapError struct {
	Invariant string
	Detail    string
}

func (e *HeapError) Error() string {
	return fmt.Sprintf("malloc: heap invariant violated: %s: %s", e.Invariant, e.Detail)
}

// CheckHeap walks the managed region from the prologue to the epilogue
// and verifies every structural invariant in spec.md §8: block size and
// alignment, header/footer agreement, no two physically adjacent free
// blocks, free-list membership equality with the allocation-bit set, and
// free-list back-link consistency. It is side-effect-only — it never
// mutates the heap — and returns the first violation found, or nil.
//
// At verbosity > 0 it additionally prints a block-by-block trace and the
// Stats() histogram to stderr. This is strictly a diagnostic aid; nothing
// in the allocate/free/realloc paths depends on it ever being called.
func (a *Allocator) CheckHeap(verbosity int) error {
	if !a.inited {
		return errNotInitialized
	}

	free := map[unsafe.Pointer]bool{}
	prevWasFree := false
	for p := a.prologue; ; p = nextPhysical(p) {
		size := blockSize(p)
		alloc := isAllocated(p)

		if p == a.prologue {
			if size != minBlock || !alloc {
				return &HeapError{"prologue-shape", fmt.Sprintf("size=%d alloc=%v", size, alloc)}
			}
		} else if p == a.epilogue {
			if size != 0 || !alloc {
				return &HeapError{"epilogue-shape", fmt.Sprintf("size=%d alloc=%v", size, alloc)}
			}
			break
		} else {
			if size%alignTo != 0 || size < minBlock {
				return &HeapError{"block-size", fmt.Sprintf("p=%p size=%d", p, size)}
			}
			if getWord(headerAddr(p)) != getWord(footerAddr(p)) {
				return &HeapError{"header-footer-mismatch", fmt.Sprintf("p=%p", p)}
			}
			if !alloc {
				if prevWasFree {
					return &HeapError{"adjacent-free", fmt.Sprintf("p=%p", p)}
				}
				free[p] = true
			}
		}

		prevWasFree = !alloc
		if verbosity > 0 {
			fmt.Fprintf(os.Stderr, "check: p=%p size=%d alloc=%v\n", p, size, alloc)
		}
	}

	listed := map[unsafe.Pointer]bool{}
	for b := a.head; !isAllocated(b); b = linkAt(b).next {
		listed[b] = true
		if b != a.head {
			link := linkAt(b)
			if linkAt(link.prev).next != b {
				return &HeapError{"free-list-back-link", fmt.Sprintf("next(prev(%p)) != %p", b, b)}
			}
			if linkAt(link.next).prev != b {
				return &HeapError{"free-list-fwd-link", fmt.Sprintf("prev(next(%p)) != %p", b, b)}
			}
		}
	}
	if len(listed) != len(free) {
		return &HeapError{"free-list-membership", fmt.Sprintf("listed=%d physically-free=%d", len(listed), len(free))}
	}
	for p := range listed {
		if !free[p] {
			return &HeapError{"free-list-membership", fmt.Sprintf("p=%p listed but allocated", p)}
		}
	}

	if verbosity > 0 {
		fmt.Fprintf(os.Stderr, "check: stats=%+v\n", a.Stats())
	}
	return nil
}

// Stats is a side-effect-free snapshot of the heap's shape: total blocks,
// bytes allocated versus free, the region's high-water mark, and a
// histogram of free-block sizes bucketed by bit length (so a 144-byte and
// a 240-byte free block land in the same bucket, a 256-byte one in the
// next). It exists purely for diagnostics — nothing in the allocator
// consults it.
type Stats struct {
	Blocks      int
	AllocBytes  int
	FreeBytes   int
	HighWater   int
	FreeHistory map[int]int // bucket (mathutil.BitLen of size) -> count
}

func (a *Allocator) Stats() Stats {
	st := Stats{HighWater: a.reg.size(), FreeHistory: map[int]int{}}
	if !a.inited {
		return st
	}
	for p := a.prologue; ; p = nextPhysical(p) {
		if p == a.epilogue {
			break
		}
		size := blockSize(p)
		st.Blocks++
		if isAllocated(p) {
			st.AllocBytes += size
		} else {
			st.FreeBytes += size
			st.FreeHistory[mathutil.BitLen(size)]++
		}
	}
	return st
}
