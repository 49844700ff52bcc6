// Copyright 2026 The Malloclab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "testing"

// newTestAllocator returns a ready-to-use Allocator backed by a small
// arena, with cleanup registered so the reservation is always released.
func newTestAllocator(t testing.TB) *Allocator {
	t.Helper()
	a := New(Config{ArenaCapacity: 4 << 20, ChunkSize: 4096})
	if err := a.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}
