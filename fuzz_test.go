// Copyright 2026 The Malloclab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"math"
	"testing"
	"unsafe"

	"github.com/cznic/mathutil"
)

// randomWorkload drives a mixed allocate/free workload against a fresh
// Allocator, checking the full structural invariants after every
// step. Shaped after cznic-memory/all_test.go's test1/test3, which drive
// its segregated allocator the same way with the same FC32 generator.
func randomWorkload(t *testing.T, n, maxSize int) {
	t.Helper()
	a := newTestAllocator(t)

	rng, err := mathutil.NewFC32(0, math.MaxInt32, true)
	if err != nil {
		t.Fatal(err)
	}
	rng.Seed(1)

	live := map[unsafe.Pointer]int{} // pointer -> requested size, for content checks
	for i := 0; i < n; i++ {
		if len(live) == 0 || rng.Next()%3 != 0 {
			size := int(rng.Next())%maxSize + 1
			p, err := a.Malloc(size)
			if err != nil {
				t.Fatalf("Malloc(%d) at step %d: %v", size, i, err)
			}
			memset(p, size, byte(i))
			live[p] = size
		} else {
			for p, size := range live {
				got := unsafe.Slice((*byte)(p), size)
				for j, b := range got {
					if b != got[0] {
						t.Fatalf("payload corrupted at step %d, byte %d: %#x != %#x", i, j, b, got[0])
					}
				}
				a.Free(p)
				delete(live, p)
				break
			}
		}
		if err := a.CheckHeap(0); err != nil {
			t.Fatalf("CheckHeap after step %d: %v", i, err)
		}
	}

	for p := range live {
		a.Free(p)
	}
	if err := a.CheckHeap(0); err != nil {
		t.Fatalf("CheckHeap after final drain: %v", err)
	}
	if isAllocated(a.head) {
		t.Fatal("free list should not be empty once every block is freed")
	}
}

func TestFuzzSmall(t *testing.T) { randomWorkload(t, 2000, 64) }
func TestFuzzLarge(t *testing.T) { randomWorkload(t, 500, 8192) }
