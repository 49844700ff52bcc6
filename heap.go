// Copyright 2026 The Malloclab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"errors"
	"fmt"
	"os"
	"unsafe"
)

const (
	defaultArenaCapacity = 1 << 30 // 1 GiB of reserved virtual address space
	defaultChunkSize     = 1 << 12 // 4096 bytes, mirroring the classic CHUNKSIZE
)

// errNotInitialized is returned by Malloc/Realloc/CheckHeap when called
// before Init (or after Close); Free is a silent no-op in that state.
var errNotInitialized = errors.New("malloc: allocator not initialized")

// errCorruptBlock signals that a pointer's header and footer disagree,
// which should only happen if the caller has already corrupted the heap
// (e.g. writing past a payload's requested size). Callers that hit this
// have undefined-behavior-grade bugs elsewhere; returning an error instead
// of crashing or touching more memory is the defensive posture spec.md §7
// permits but does not require.
var errCorruptBlock = errors.New("malloc: corrupt block (header/footer mismatch)")

// Config configures an Allocator. The zero value is valid and fills in
// reasonable defaults, in the same spirit as cznic-memory's
// zero-value-ready Allocator.
type Config struct {
	// ArenaCapacity is the size, in bytes, of the virtual memory
	// reservation backing the managed region. It bounds total heap growth
	// for the allocator's lifetime; exceeding it is reported as
	// errOutOfMemory. Zero means defaultArenaCapacity.
	ArenaCapacity int

	// ChunkSize is the minimum number of bytes requested from the region
	// on a find-fit miss, mirroring the classic CHUNKSIZE constant. Zero
	// means defaultChunkSize.
	ChunkSize int
}

func (c Config) withDefaults() Config {
	if c.ArenaCapacity <= 0 {
		c.ArenaCapacity = defaultArenaCapacity
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = defaultChunkSize
	}
	return c
}

// Allocator manages a single contiguous, growable byte region: the
// boundary-tag block format, the LIFO explicit free list, immediate
// coalescing, first-fit placement, and in-place reallocation. It is not
// safe for concurrent use — every exported method must be serialized by
// the caller.
type Allocator struct {
	cfg      Config
	reg      region
	prologue unsafe.Pointer // permanent free-list tail sentinel
	epilogue unsafe.Pointer // zero-size header marking the current high end
	head     unsafe.Pointer // free-list head
	inited   bool
}

// New constructs an Allocator with the given configuration. Call Init
// before any other method.
func New(cfg Config) *Allocator {
	return &Allocator{cfg: cfg.withDefaults()}
}

// Init requests an initial region sufficient to place the prologue and
// epilogue with correct alignment, and must be called once before any
// other operation. It returns a non-nil error on failure, the idiomatic
// Go stand-in for spec.md's 0/-1 return convention.
func (a *Allocator) Init() error {
	if err := a.reg.reserve(a.cfg.ArenaCapacity); err != nil {
		return err
	}

	// 8-byte alignment pad, 32-byte allocated prologue, 8-byte epilogue
	// header: 48 bytes total, laid out against the (page-aligned, hence
	// 16-byte aligned) reservation base.
	base, err := a.reg.grow(wordSize + minBlock + wordSize)
	if err != nil {
		return err
	}

	prologue := offset(base, dwordSize)
	setBlock(prologue, minBlock, 1)
	link := linkAt(prologue)
	link.prev = nil
	link.next = nil

	epilogue := nextPhysical(prologue)
	setWord(headerAddr(epilogue), packWord(0, 1))

	a.prologue = prologue
	a.epilogue = epilogue
	a.head = prologue
	a.inited = true

	if trace {
		fmt.Fprintf(os.Stderr, "Init() prologue=%p epilogue=%p\n", prologue, epilogue)
	}
	return nil
}

// reqSize computes the adjusted block size for a size-n request: header
// and footer space added, rounded up to 16-byte alignment, floored at the
// minimum block size.
func reqSize(n int) int {
	s := alignUp(n+dwordSize, alignTo)
	return max(s, minBlock)
}

// extendHeap asks the region for n more bytes (rounded to an even number
// of words and at least a minimum block), frames them as one free block,
// rebuilds the epilogue, and coalesces — the new block may merge with
// whatever free block previously sat against the old epilogue.
func (a *Allocator) extendHeap(n int) (unsafe.Pointer, error) {
	n = alignUp(n, dwordSize)
	n = max(n, minBlock)

	if _, err := a.reg.grow(n); err != nil {
		return nil, err
	}

	newBlock := a.epilogue
	setBlock(newBlock, n, 0)

	newEpilogue := nextPhysical(newBlock)
	setWord(headerAddr(newEpilogue), packWord(0, 1))
	a.epilogue = newEpilogue

	return a.coalesce(newBlock), nil
}

// Malloc allocates a block of at least n bytes and returns its 16-byte
// aligned payload pointer, or nil for a zero-size request. Apart from
// errNotInitialized before Init, it returns an error only when the
// region's backing reservation is exhausted; the allocator's state is
// unchanged in that case.
func (a *Allocator) Malloc(n int) (r unsafe.Pointer, err error) {
	if trace {
		defer func() { fmt.Fprintf(os.Stderr, "Malloc(%#x) %p, %v\n", n, r, err) }()
	}
	if !a.inited {
		return nil, errNotInitialized
	}
	if n == 0 {
		return nil, nil
	}

	req := reqSize(n)
	b := a.findFit(req)
	if b == nil {
		if _, err := a.extendHeap(max(req, a.cfg.ChunkSize)); err != nil {
			return nil, err
		}
		b = a.findFit(req)
	}

	return a.place(b, req), nil
}

// Free releases a block previously returned by Malloc or Realloc. It is a
// no-op for a nil pointer. Calling it with a pointer that was not
// allocated by this allocator, or was already freed, is undefined
// behavior; Free detects a header/footer mismatch or a cleared allocation
// bit as a heuristic and declines silently rather than corrupting the
// heap further, but it is not required to catch every misuse.
func (a *Allocator) Free(p unsafe.Pointer) {
	if trace {
		defer func() { fmt.Fprintf(os.Stderr, "Free(%p)\n", p) }()
	}
	if p == nil || !a.inited {
		return
	}
	if !isAllocated(p) || getWord(headerAddr(p)) != getWord(footerAddr(p)) {
		return
	}

	setBlock(p, blockSize(p), 0)
	a.coalesce(p)
}

// Realloc changes the size of the block at p to n bytes. A nil p behaves
// as Malloc(n); n == 0 behaves as Free(p) followed by returning nil. When
// growing, Realloc first tries to absorb a physically-adjacent free
// block in place; otherwise it allocates a new block, copies the
// original payload, and frees the old block. If the new allocation
// fails, it returns nil and leaves the old block intact.
func (a *Allocator) Realloc(p unsafe.Pointer, n int) (r unsafe.Pointer, err error) {
	if trace {
		defer func() { fmt.Fprintf(os.Stderr, "Realloc(%p, %#x) %p, %v\n", p, n, r, err) }()
	}
	if !a.inited {
		return nil, errNotInitialized
	}
	if p == nil {
		return a.Malloc(n)
	}
	if n == 0 {
		a.Free(p)
		return nil, nil
	}
	if getWord(headerAddr(p)) != getWord(footerAddr(p)) {
		return nil, errCorruptBlock
	}

	req := reqSize(n)
	cur := blockSize(p)
	if req <= cur {
		return p, nil
	}

	next := nextPhysical(p)
	if !isAllocated(next) {
		merged := cur + blockSize(next)
		if merged >= req {
			a.flRemove(next)
			if merged-req >= minBlock {
				setBlock(p, req, 1)
				tail := nextPhysical(p)
				setBlock(tail, merged-req, 0)
				a.coalesce(tail)
			} else {
				setBlock(p, merged, 1)
			}
			return p, nil
		}
	}

	np, err := a.Malloc(n)
	if err != nil {
		return nil, err
	}
	copyPayload(np, p, cur-dwordSize)
	a.Free(p)
	return np, nil
}

// Close releases the region's backing reservation and resets the
// Allocator to an uninitialized state. It is not necessary to call Close
// when a process exits.
func (a *Allocator) Close() error {
	err := a.reg.close()
	*a = Allocator{cfg: a.cfg}
	return err
}

// copyPayload copies n bytes from src's payload to dst's payload.
func copyPayload(dst, src unsafe.Pointer, n int) {
	if n <= 0 {
		return
	}
	d := unsafe.Slice((*byte)(dst), n)
	s := unsafe.Slice((*byte)(src), n)
	copy(d, s)
}
