// Copyright 2026 The Malloclab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "unsafe"

// The free list is a doubly-linked list of free blocks with LIFO
// insertion, terminated not by nil but by the permanently-allocated
// prologue: a scan stops on the first block whose allocation bit is set
// rather than on a null pointer, so the fit search and the list mutations
// below never need a nil check. flInsert/flRemove have no failure path —
// callers establish that the block is (or is not) already on the list.

// flInsert adds b to the head of the free list. b must be free.
func (a *Allocator) flInsert(b unsafe.Pointer) {
	link := linkAt(b)
	link.next = a.head
	linkAt(a.head).prev = b
	link.prev = nil
	a.head = b
}

// flRemove removes b from the free list. b must currently be in it.
func (a *Allocator) flRemove(b unsafe.Pointer) {
	link := linkAt(b)
	if b == a.head {
		a.head = link.next
	} else {
		linkAt(link.prev).next = link.next
	}
	linkAt(link.next).prev = link.prev
}
