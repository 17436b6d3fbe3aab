// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hbuf

// Options configures buffer creation.
type Options struct {
	// Heap block accounting
	alloc Allocator

	// Out-of-range behavior of At and Get
	policy IndexPolicy
}

// Builder creates buffers with fluent configuration.
//
// One Builder may create any number of buffers of any instantiation; each
// buffer copies the options at Build time.
//
// Example:
//
//	// Default: Heap allocator, checked indexing
//	b := hbuf.Build[byte, [16]byte](hbuf.New())
//
//	// Shared 1 MiB budget, original clamp-to-zero indexing
//	budget := hbuf.NewBudget(1 << 20)
//	b := hbuf.Build[int, [8]int](hbuf.New().Allocator(budget).ClampIndex())
type Builder struct {
	opts Options
}

// New creates a buffer builder with default options.
func New() *Builder {
	return &Builder{opts: Options{alloc: Heap(), policy: IndexChecked}}
}

// Allocator sets the allocator that accounts for heap blocks.
// Panics if a is nil.
func (b *Builder) Allocator(a Allocator) *Builder {
	if a == nil {
		panic("hbuf: nil allocator")
	}
	b.opts.alloc = a
	return b
}

// ClampIndex selects IndexClamp: out-of-range reads return element 0.
func (b *Builder) ClampIndex() *Builder {
	b.opts.policy = IndexClamp
	return b
}

// CheckIndex selects IndexChecked: out-of-range reads return ErrOutOfRange.
func (b *Builder) CheckIndex() *Builder {
	b.opts.policy = IndexChecked
	return b
}

// Build creates an empty, inline-backed buffer from the builder's options.
//
// Both type parameters are explicit:
//
//	b := hbuf.Build[rune, [4]rune](hbuf.New())
func Build[T any, S Inline[T]](b *Builder) *Buffer[T, S] {
	return newBuffer[T, S](b.opts)
}

// pad is cache line padding to prevent false sharing between the counters
// of shared allocators.
type pad [64]byte
