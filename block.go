// Copyright 2026 The Malloclab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "unsafe"

// Block layout primitives: pure address arithmetic over the region's byte
// arena. A block's identity is its position, not a language-level object —
// every function here takes (and most return) a payload unsafe.Pointer
// into the arena, per spec.md §9's re-architecture guidance.
//
// Layout, relative to a block's payload pointer p:
//
//	p-8            header, 8 bytes
//	p              free-list prev link (meaningful only while free)
//	p+8            free-list next link (meaningful only while free)
//	p..p+size-16   payload (when allocated)
//	p+size-16      footer, 8 bytes
const (
	wordSize  = 8
	dwordSize = 16
	alignTo   = 16 // payload alignment, in bytes
	minBlock  = 32 // header + prev + next + footer
)

const sizeMask = ^uint64(0xF)

// alignUp rounds n up to the next multiple of m. m must be a power of 2.
// This is the alignment helper spec.md §6 describes as an external
// collaborator; here it has no state worth abstracting behind an
// interface, so it is a plain function.
func alignUp(n, m int) int { return (n + m - 1) &^ (m - 1) }

func packWord(size, alloc int) uint64 {
	return uint64(size)&sizeMask | uint64(alloc&1)
}

func unpackSize(w uint64) int { return int(w & sizeMask) }
func unpackAlloc(w uint64) int { return int(w & 1) }

func getWord(p unsafe.Pointer) uint64    { return *(*uint64)(p) }
func setWord(p unsafe.Pointer, v uint64) { *(*uint64)(p) = v }

func offset(p unsafe.Pointer, n int) unsafe.Pointer {
	return unsafe.Pointer(uintptr(p) + uintptr(n))
}

// headerAddr returns the address of p's header word.
func headerAddr(p unsafe.Pointer) unsafe.Pointer { return offset(p, -wordSize) }

// blockSize reads the size encoded in p's header.
func blockSize(p unsafe.Pointer) int { return unpackSize(getWord(headerAddr(p))) }

// isAllocated reports p's allocation bit, read from its header.
func isAllocated(p unsafe.Pointer) bool { return unpackAlloc(getWord(headerAddr(p))) != 0 }

// footerAddr returns the address of p's footer word.
func footerAddr(p unsafe.Pointer) unsafe.Pointer {
	return offset(p, blockSize(p)-dwordSize)
}

// setBlock writes matching header and footer words for a block of the
// given size and allocation bit, starting at payload pointer p.
func setBlock(p unsafe.Pointer, size, alloc int) {
	w := packWord(size, alloc)
	setWord(headerAddr(p), w)
	setWord(offset(p, size-dwordSize), w)
}

// nextPhysical returns the payload pointer of the block physically
// following p, found purely from p's own header — no free-list traversal.
func nextPhysical(p unsafe.Pointer) unsafe.Pointer { return offset(p, blockSize(p)) }

// prevPhysical returns the payload pointer of the block physically
// preceding p, found via the boundary tag: the previous block's footer
// sits at p-16 and encodes that block's size.
func prevPhysical(p unsafe.Pointer) unsafe.Pointer {
	prevSize := unpackSize(getWord(offset(p, -dwordSize)))
	return offset(p, -prevSize)
}

// freeLink is the free-list prev/next pair overlapping a free block's
// payload area. It is only valid to dereference while the block is free —
// once allocated those bytes belong to the caller.
type freeLink struct {
	prev unsafe.Pointer
	next unsafe.Pointer
}

func linkAt(p unsafe.Pointer) *freeLink { return (*freeLink)(p) }
