// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hbuf

import (
	"math"
	"unsafe"
)

// Buffer is a growable sequence with N = len(S) inline slots.
//
// The first N elements live in an array embedded in the Buffer itself; no
// heap block exists. The push that would exceed N moves the elements into a
// heap block of 2N slots and the Buffer stays heap-backed for the rest of
// its life. Each later overflow doubles the capacity again: N, 2N, 4N, ...
//
// A Buffer must not be copied after first use. Copies are reported by
// go vet (copylocks) and any method called on a copy panics. Use Clone for
// an explicit deep copy; pass the *Buffer to move ownership.
//
// A Buffer is not safe for concurrent use. Its Allocator may be shared.
//
// The zero value is an empty inline-backed buffer using the Heap allocator
// and IndexChecked.
//
// Memory: N inline slots plus, once heap-backed, capacity heap slots
type Buffer[T any, S Inline[T]] struct {
	noCopy   noCopy
	addr     *Buffer[T, S] // self pointer for copy detection
	inline   S
	heap     []T // nil while inline-backed
	size     int
	capacity int
	alloc    Allocator
	policy   IndexPolicy
	freed    bool
}

var _ Sequence[int] = (*Buffer[int, [1]int])(nil)

// NewBuffer creates an empty, inline-backed buffer with default options.
func NewBuffer[T any, S Inline[T]]() *Buffer[T, S] {
	return newBuffer[T, S](Options{alloc: Heap(), policy: IndexChecked})
}

func newBuffer[T any, S Inline[T]](opts Options) *Buffer[T, S] {
	b := &Buffer[T, S]{alloc: opts.alloc, policy: opts.policy}
	b.capacity = len(b.inline)
	b.addr = (*Buffer[T, S])(noescape(unsafe.Pointer(b)))
	return b
}

// Push appends v and returns a pointer to the stored copy.
//
// The pointer stays valid until the next growth event. When the buffer is
// full, Push first grows it. If the allocator refuses the new block, Push
// returns an *AllocError and the buffer is unchanged; IsWouldBlock reports
// whether a retry may succeed.
func (b *Buffer[T, S]) Push(v T) (*T, error) {
	b.check()
	if b.size == b.capacity {
		if err := b.grow(); err != nil {
			return nil, err
		}
	}
	slot := &b.slots()[b.size]
	*slot = v
	b.size++
	return slot, nil
}

// MustPush is Push that panics with the *AllocError when growth fails.
func (b *Buffer[T, S]) MustPush(v T) *T {
	p, err := b.Push(v)
	if err != nil {
		panic(err)
	}
	return p
}

// grow performs one growth event: capacity doubles by addition.
func (b *Buffer[T, S]) grow() error {
	var zero T
	elem := int(unsafe.Sizeof(zero))
	if b.capacity > math.MaxInt/2 || (elem > 0 && b.capacity+b.capacity > math.MaxInt/elem) {
		return &AllocError{Size: b.size, Err: ErrCapacityOverflow}
	}
	capacity := b.capacity + b.capacity
	bytes := capacity * elem
	if err := b.alloc.Reserve(bytes); err != nil {
		return &AllocError{Size: b.size, Capacity: capacity, Bytes: bytes, Err: err}
	}

	heap := make([]T, capacity)
	copy(heap, b.slots()[:b.size])
	if b.heap != nil {
		b.alloc.Release(len(b.heap) * elem)
	} else {
		// Inline block is dead from here on; drop its references for the GC.
		clear(b.inlineSlots())
	}
	b.heap = heap
	b.capacity = capacity
	return nil
}

// At returns a pointer to the element at index i.
//
// For i outside [0, Size()) the result depends on the buffer's IndexPolicy:
// IndexChecked returns ErrOutOfRange, IndexClamp returns element 0.
// An empty buffer returns ErrOutOfRange under both policies.
// The pointer stays valid until the next growth event.
func (b *Buffer[T, S]) At(i int) (*T, error) {
	b.check()
	if b.size == 0 {
		return nil, ErrOutOfRange
	}
	if i < 0 || i >= b.size {
		if b.policy != IndexClamp {
			return nil, ErrOutOfRange
		}
		i = 0
	}
	return &b.slots()[i], nil
}

// Get returns a copy of the element at index i. See At for range handling.
func (b *Buffer[T, S]) Get(i int) (T, error) {
	p, err := b.At(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// Data returns a view of the elements in push order.
//
// The view aliases the active storage and must be treated as read-only.
// Its capacity is clipped to its length, so appending to it never writes
// into the buffer. It is invalidated by the next growth event.
func (b *Buffer[T, S]) Data() []T {
	b.check()
	return b.slots()[:b.size:b.size]
}

// Size returns the number of elements.
func (b *Buffer[T, S]) Size() int {
	b.check()
	return b.size
}

// Cap returns the number of slots in the active storage.
func (b *Buffer[T, S]) Cap() int {
	b.check()
	return b.capacity
}

// Inline returns N, the inline capacity.
func (b *Buffer[T, S]) Inline() int {
	return len(b.inline)
}

// HeapBacked reports whether the elements live in a heap block.
func (b *Buffer[T, S]) HeapBacked() bool {
	b.check()
	return b.heap != nil
}

// Policy returns the buffer's out-of-range index policy.
func (b *Buffer[T, S]) Policy() IndexPolicy {
	b.check()
	return b.policy
}

// Clone returns an independent deep copy with the same storage shape,
// capacity, allocator and policy.
//
// Cloning a heap-backed buffer reserves a block of the same size from the
// allocator and returns an *AllocError if it is refused.
func (b *Buffer[T, S]) Clone() (*Buffer[T, S], error) {
	b.check()
	c := &Buffer[T, S]{
		size:     b.size,
		capacity: b.capacity,
		alloc:    b.alloc,
		policy:   b.policy,
	}
	c.addr = c
	if b.heap == nil {
		c.inline = b.inline
		return c, nil
	}

	var zero T
	bytes := len(b.heap) * int(unsafe.Sizeof(zero))
	if err := b.alloc.Reserve(bytes); err != nil {
		return nil, &AllocError{Size: b.size, Capacity: b.capacity, Bytes: bytes, Err: err}
	}
	c.heap = make([]T, len(b.heap))
	copy(c.heap, b.heap[:b.size])
	return c, nil
}

// Free releases the heap block to the allocator if the buffer is
// heap-backed. An inline-backed buffer has nothing to release.
//
// The buffer is unusable afterwards: every method except Free panics.
// Free on a freed buffer is a no-op.
func (b *Buffer[T, S]) Free() {
	b.copyCheck()
	if b.freed {
		return
	}
	if b.heap != nil {
		var zero T
		b.alloc.Release(len(b.heap) * int(unsafe.Sizeof(zero)))
		b.heap = nil
	}
	clear(b.inlineSlots())
	b.size = 0
	b.freed = true
}

// slots returns every slot of the active storage.
func (b *Buffer[T, S]) slots() []T {
	if b.heap != nil {
		return b.heap
	}
	return b.inlineSlots()
}

// inlineSlots views the embedded array as a slice of length N.
func (b *Buffer[T, S]) inlineSlots() []T {
	return unsafe.Slice((*T)(unsafe.Pointer(&b.inline)), len(b.inline))
}

func (b *Buffer[T, S]) check() {
	b.copyCheck()
	if b.freed {
		panic("hbuf: use of freed Buffer")
	}
}

// copyCheck binds a zero-value Buffer to its address on first use and
// panics when called through a copy.
func (b *Buffer[T, S]) copyCheck() {
	if b.addr == nil {
		// Stored through noescape so a Buffer declared as a local stays
		// on the stack.
		b.addr = (*Buffer[T, S])(noescape(unsafe.Pointer(b)))
		b.capacity = len(b.inline)
		b.alloc = Heap()
		return
	}
	if b.addr != b {
		panic("hbuf: illegal use of non-zero Buffer copied by value")
	}
}

// noescape hides a pointer from escape analysis. The result must only be
// compared against the original, never dereferenced after the original's
// lifetime ends.
//
//go:nosplit
//go:nocheckptr
func noescape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}

// noCopy may be embedded into structs which must not be copied
// after the first use. It is recognized by go vet's copylocks checker.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
