// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hbuf

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Allocator accounts for the heap blocks of one or more buffers.
//
// The Go runtime performs the actual allocation. An Allocator decides
// whether a block of the given byte size may be created, and is told when
// a block is dropped. Reserve and Release are called in pairs with the same
// byte count.
//
// Allocators may be shared by buffers living on different goroutines, so
// implementations must be safe for concurrent use. A single [Buffer] is not.
type Allocator interface {
	// Reserve asks for bytes before a heap block is created.
	// A non-nil error aborts the growth event; the buffer is unchanged.
	Reserve(bytes int) error

	// Release returns bytes previously reserved.
	Release(bytes int)
}

// Heap returns the default allocator. It never refuses a reservation.
func Heap() Allocator {
	return heapAllocator{}
}

type heapAllocator struct{}

func (heapAllocator) Reserve(int) error { return nil }
func (heapAllocator) Release(int)       {}

// Stats is a point-in-time snapshot of a [Counting] allocator.
type Stats struct {
	Reserves  uint64 // successful reservations (heap blocks created)
	Releases  uint64 // heap blocks dropped
	Failures  uint64 // reservations refused by the wrapped allocator
	LiveBytes int64  // bytes reserved and not yet released
	PeakBytes uint64 // high-water mark of LiveBytes
}

// Counting wraps another allocator and counts its traffic.
//
// Every heap block a buffer creates shows up as one reservation, which
// makes Counting the observation point for "no heap allocation happened".
type Counting struct {
	_        pad
	reserves atomix.Uint64
	releases atomix.Uint64
	failures atomix.Uint64
	_        pad
	live     atomix.Int64
	peak     atomix.Uint64
	_        pad
	next     Allocator
}

// NewCounting creates a counting allocator on top of next.
// A nil next counts on top of [Heap].
func NewCounting(next Allocator) *Counting {
	if next == nil {
		next = Heap()
	}
	return &Counting{next: next}
}

// Reserve forwards to the wrapped allocator and records the outcome.
func (c *Counting) Reserve(bytes int) error {
	if err := c.next.Reserve(bytes); err != nil {
		c.failures.AddAcqRel(1)
		return err
	}
	c.reserves.AddAcqRel(1)
	live := c.live.AddAcqRel(int64(bytes))
	if live < 0 {
		return nil
	}
	for {
		peak := c.peak.LoadRelaxed()
		if uint64(live) <= peak || c.peak.CompareAndSwapRelaxed(peak, uint64(live)) {
			return nil
		}
	}
}

// Release forwards to the wrapped allocator.
// Each Release must pair with an earlier successful Reserve of the same
// size; an unpaired Release makes LiveBytes negative and stops PeakBytes
// from advancing until the balance recovers.
func (c *Counting) Release(bytes int) {
	c.releases.AddAcqRel(1)
	c.live.AddAcqRel(-int64(bytes))
	c.next.Release(bytes)
}

// Stats returns a snapshot of the counters.
// Fields are loaded independently; under concurrent traffic they may not
// describe one single instant.
func (c *Counting) Stats() Stats {
	return Stats{
		Reserves:  c.reserves.LoadAcquire(),
		Releases:  c.releases.LoadAcquire(),
		Failures:  c.failures.LoadAcquire(),
		LiveBytes: c.live.LoadAcquire(),
		PeakBytes: c.peak.LoadAcquire(),
	}
}

// Budget is a byte budget shared by many buffers.
//
// Reserve fails with ErrWouldBlock while the budget is exhausted and
// succeeds again once other buffers Free their heap blocks. A request
// larger than the whole limit fails with ErrTooLarge.
//
// Memory: two cache lines
type Budget struct {
	_     pad
	used  atomix.Uint64
	_     pad
	limit uint64
}

// NewBudget creates a budget of limit bytes.
func NewBudget(limit int) *Budget {
	if limit < 1 {
		panic("hbuf: budget limit must be >= 1")
	}
	return &Budget{limit: uint64(limit)}
}

// Reserve takes bytes from the budget.
// Returns ErrWouldBlock if the budget cannot hold the request right now.
func (b *Budget) Reserve(bytes int) error {
	if bytes < 0 {
		panic("hbuf: negative reservation")
	}
	req := uint64(bytes)
	if req > b.limit {
		return ErrTooLarge
	}

	sw := spin.Wait{}
	for {
		used := b.used.LoadAcquire()
		if used+req > b.limit {
			return ErrWouldBlock
		}
		if b.used.CompareAndSwapAcqRel(used, used+req) {
			return nil
		}
		sw.Once()
	}
}

// Release returns bytes to the budget.
// Panics if bytes is negative or exceeds the bytes currently reserved.
func (b *Budget) Release(bytes int) {
	if bytes < 0 {
		panic("hbuf: negative release")
	}
	req := uint64(bytes)

	sw := spin.Wait{}
	for {
		used := b.used.LoadAcquire()
		if req > used {
			panic("hbuf: budget release exceeds reserved bytes")
		}
		if b.used.CompareAndSwapAcqRel(used, used-req) {
			return
		}
		sw.Once()
	}
}

// Used returns the bytes currently reserved.
func (b *Budget) Used() int {
	return int(b.used.LoadAcquire())
}

// Limit returns the budget size in bytes.
func (b *Budget) Limit() int {
	return int(b.limit)
}
