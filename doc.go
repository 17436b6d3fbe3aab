// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package hbuf provides a hybrid growable buffer: a small inline array that
// promotes to a heap block once it overflows.
//
// # Quick Start
//
// The inline capacity is part of the type, spelled as an array of T:
//
//	b := hbuf.NewBuffer[byte, [3]byte]()
//	b.Push('A')
//	b.Push('B')
//	b.Push('C') // size 3, cap 3, inline
//	b.Push('D') // growth event: cap 6, heap-backed
//
// Builder API for non-default options:
//
//	budget := hbuf.NewBudget(64 << 10)
//	b := hbuf.Build[int, [8]int](hbuf.New().Allocator(budget).ClampIndex())
//	defer b.Free()
//
// # Storage
//
// A Buffer[T, S] with N = len(S) is in exactly one of two states:
//
//	inline-backed: size <= N, elements in the embedded array, no heap block
//	heap-backed:   elements in a heap block of Cap() slots
//
// The push that finds the buffer full triggers a growth event. The first
// growth event copies the N inline elements into a new heap block and the
// buffer never returns to inline storage. Every growth event doubles the
// capacity by addition, so capacities follow N, 2N, 4N, 8N, ... There is
// no shrink operation.
//
// # Indexing
//
// At and Get take an explicit [IndexPolicy], fixed per buffer:
//
//	IndexChecked (default) → ErrOutOfRange for i outside [0, Size())
//	IndexClamp             → element 0 for i outside [0, Size())
//
// IndexClamp returns a wrong element instead of failing. An empty buffer
// reports ErrOutOfRange under both policies.
//
// # Allocation Failure
//
// Heap blocks are accounted through an [Allocator]. When it refuses a
// block, Push returns an [*AllocError] and leaves the buffer unchanged.
// A [Budget] refuses with ErrWouldBlock while exhausted, which is a
// control flow signal: other buffers sharing the budget may Free.
//
//	backoff := iox.Backoff{}
//	for {
//	    _, err := b.Push(v)
//	    if err == nil {
//	        break
//	    }
//	    if !hbuf.IsWouldBlock(err) {
//	        return err
//	    }
//	    backoff.Wait()
//	}
//
// MustPush panics instead, for callers with no recovery path.
//
// Allocators:
//
//	Heap()          → never refuses (default)
//	NewCounting(a)  → counts reservations, releases, live and peak bytes
//	NewBudget(n)    → shared byte budget, lock-free
//
// # Ownership
//
// A Buffer must not be copied after first use; go vet reports copies and
// any method called on a copy panics. Clone makes an explicit deep copy.
// Free releases the heap block of a heap-backed buffer back to its
// allocator; the garbage collector reclaims the memory itself.
//
// # Thread Safety
//
// A Buffer is not safe for concurrent use and must be confined to one
// goroutine at a time. Allocators are safe for concurrent use.
//
// # Dependencies
//
// This package uses:
//   - [code.hybscloud.com/atomix] for allocator counters with explicit memory ordering
//   - [code.hybscloud.com/spin] for the budget's CAS retry loop
//   - [code.hybscloud.com/iox] for semantic errors (ErrWouldBlock)
package hbuf
