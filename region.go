// Copyright 2026 The Malloclab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"errors"
	"os"
	"unsafe"
)

var (
	osPageSize = os.Getpagesize()
	osPageMask = osPageSize - 1
)

// errOutOfMemory is returned when the region's backing reservation is
// exhausted. It is the allocator's one out-of-memory condition; existing
// state is left unchanged when it is returned.
var errOutOfMemory = errors.New("malloc: out of memory")

// region is the heap-extension primitive spec.md treats as an external
// collaborator: something that, given a byte count, grows the managed
// region and returns the base address of the new segment, or fails.
//
// Go has no sbrk and growing a []byte relocates it, which would invalidate
// every payload pointer already handed to callers. region sidesteps this
// by reserving one fixed-capacity virtual mapping up front; "growing" the
// region after that is just moving a high-water mark inside memory that is
// already mapped, so addresses never move and successive extensions are
// always contiguous.
type region struct {
	mem  []byte // the full reservation
	used int    // high-water mark: bytes [0, used) are part of the managed heap
}

// reserve obtains the backing mapping. It must be called exactly once,
// before any call to grow.
func (r *region) reserve(capacity int) error {
	b, err := mmapReserve(capacity)
	if err != nil {
		return err
	}
	r.mem = b
	r.used = 0
	return nil
}

// grow extends the managed region by n bytes and returns a pointer to the
// start of the new segment, or errOutOfMemory if the reservation cannot
// satisfy the request. The allocator's state is unchanged on failure.
func (r *region) grow(n int) (unsafe.Pointer, error) {
	if n < 0 || r.used+n > len(r.mem) {
		return nil, errOutOfMemory
	}
	p := unsafe.Pointer(&r.mem[r.used])
	r.used += n
	return p, nil
}

// size reports the current high-water mark, i.e. how many bytes of the
// reservation are part of the managed heap.
func (r *region) size() int { return r.used }

// close releases the backing reservation. It is not necessary to call
// this when a process exits.
func (r *region) close() error {
	if len(r.mem) == 0 {
		return nil
	}
	err := mmapUnreserve(r.mem)
	r.mem = nil
	r.used = 0
	return err
}
