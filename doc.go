// Copyright 2026 The Malloclab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package malloc implements a single-threaded dynamic memory allocator
// over a contiguous, monotonically-growable byte region.
//
// It provides the classic init/allocate/release/reallocate interface with
// 16-byte payload alignment and immediate coalescing of adjacent free
// storage. Blocks carry boundary tags (an 8-byte header and an identical
// 8-byte footer) so that the physically-previous block can be found in
// O(1) without a second linked structure; free blocks additionally carry
// prev/next pointers overlapping their payload area, forming a LIFO
// doubly-linked free list terminated by a permanently-allocated prologue.
//
// The package is not safe for concurrent use: all exported methods must
// be serialized by the caller.
package malloc
