// Copyright 2026 The Malloclab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"testing"
	"unsafe"
)

func benchmarkMalloc(b *testing.B, size int) {
	a := newTestAllocator(b)
	ps := make([]unsafe.Pointer, 0, b.N)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := a.Malloc(size)
		if err != nil {
			b.Fatal(err)
		}
		ps = append(ps, p)
	}
	b.StopTimer()
	for _, p := range ps {
		a.Free(p)
	}
}

func BenchmarkMalloc16(b *testing.B)  { benchmarkMalloc(b, 1<<4) }
func BenchmarkMalloc32(b *testing.B)  { benchmarkMalloc(b, 1<<5) }
func BenchmarkMalloc64(b *testing.B)  { benchmarkMalloc(b, 1<<6) }
func BenchmarkMalloc128(b *testing.B) { benchmarkMalloc(b, 1<<7) }

func benchmarkFree(b *testing.B, size int) {
	a := newTestAllocator(b)
	ps := make([]unsafe.Pointer, b.N)
	for i := range ps {
		p, err := a.Malloc(size)
		if err != nil {
			b.Fatal(err)
		}
		ps[i] = p
	}
	b.ResetTimer()
	for _, p := range ps {
		a.Free(p)
	}
	b.StopTimer()
}

func BenchmarkFree16(b *testing.B) { benchmarkFree(b, 1<<4) }
func BenchmarkFree32(b *testing.B) { benchmarkFree(b, 1<<5) }
func BenchmarkFree64(b *testing.B) { benchmarkFree(b, 1<<6) }

func BenchmarkReallocGrowInPlace(b *testing.B) {
	a := newTestAllocator(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := a.Malloc(32)
		if err != nil {
			b.Fatal(err)
		}
		p, err = a.Realloc(p, 256)
		if err != nil {
			b.Fatal(err)
		}
		a.Free(p)
	}
}
