// Copyright 2026 The Malloclab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "unsafe"

// findFit scans the free list from the head and returns the first block
// whose size is at least reqSize, or nil if none fits. First-fit is
// chosen over best-fit for simplicity and throughput; combined with
// immediate coalescing it produces acceptable utilization in practice.
func (a *Allocator) findFit(reqSize int) unsafe.Pointer {
	for b := a.head; !isAllocated(b); b = linkAt(b).next {
		if blockSize(b) >= reqSize {
			return b
		}
	}
	return nil
}
