// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hbuf

import (
	"errors"
	"math"
	"testing"
)

// TestGrowCapacityOverflow drives grow past the int limits on the element
// count and on the block byte size.
func TestGrowCapacityOverflow(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
	}{
		// Doubling the element count overflows int.
		{"Count", math.MaxInt/2 + 1},
		// The count doubles cleanly but 8-byte elements overflow the byte size.
		{"BytesAtCountLimit", math.MaxInt / 2},
		{"Bytes", math.MaxInt/16 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := NewCounting(nil)
			b := Build[int64, [2]int64](New().Allocator(counter))
			b.size = tt.capacity
			b.capacity = tt.capacity

			p, err := b.Push(1)
			if p != nil {
				t.Fatal("Push on overflow: want nil pointer")
			}
			if !errors.Is(err, ErrCapacityOverflow) {
				t.Fatalf("Push: got %v, want ErrCapacityOverflow", err)
			}
			var ae *AllocError
			if !errors.As(err, &ae) {
				t.Fatalf("errors.As: got %T, want *AllocError", err)
			}
			if ae.Size != tt.capacity || ae.Capacity != 0 || ae.Bytes != 0 {
				t.Fatalf("AllocError: got %+v, want size %d cap 0 bytes 0", ae, tt.capacity)
			}

			if b.size != tt.capacity || b.capacity != tt.capacity || b.heap != nil {
				t.Fatalf("after overflow: got size %d cap %d heap %v", b.size, b.capacity, b.heap != nil)
			}
			if s := counter.Stats(); s.Reserves != 0 || s.Failures != 0 {
				t.Fatalf("Stats: got %+v, want allocator untouched", s)
			}
		})
	}
}

// TestGrowLastFittingDoubling verifies the largest capacity whose doubled
// byte size still fits passes the guard and reaches the allocator.
func TestGrowLastFittingDoubling(t *testing.T) {
	budget := NewBudget(1)
	b := Build[int64, [2]int64](New().Allocator(budget))
	b.size = math.MaxInt / 16
	b.capacity = math.MaxInt / 16

	_, err := b.Push(1)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Push: got %v, want ErrTooLarge from the allocator", err)
	}
	var ae *AllocError
	if !errors.As(err, &ae) || ae.Capacity != 2*(math.MaxInt/16) || ae.Bytes != 16*(math.MaxInt/16) {
		t.Fatalf("AllocError: got %+v", ae)
	}
}
