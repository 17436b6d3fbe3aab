// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hbuf

import (
	"errors"
	"strconv"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates a shared allocator budget is exhausted right now.
//
// ErrWouldBlock is a control flow signal, not a failure. Another buffer
// drawing from the same [Budget] may call Free and return bytes, so the
// caller can retry the Push later (with backoff or yield).
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    _, err := b.Push(v)
//	    if err == nil {
//	        break
//	    }
//	    if hbuf.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err
//	}
var ErrWouldBlock = iox.ErrWouldBlock

var (
	// ErrOutOfRange is returned by At and Get for an index outside [0, Size()).
	// Under IndexClamp it is returned only for an empty buffer.
	ErrOutOfRange = errors.New("hbuf: index out of range")

	// ErrTooLarge is returned by a Budget when a single reservation exceeds
	// its whole limit. Retrying cannot succeed.
	ErrTooLarge = errors.New("hbuf: reservation exceeds allocator limit")

	// ErrCapacityOverflow is returned when doubling the capacity would
	// overflow int or the byte size of the heap block.
	ErrCapacityOverflow = errors.New("hbuf: capacity overflow")
)

// AllocError reports a failed growth event.
//
// The buffer is left exactly as it was before the failing Push: same size,
// same capacity, same storage. Err is the allocator's error (or
// ErrCapacityOverflow) and is reachable through errors.Is / errors.As.
type AllocError struct {
	Size     int // element count at the time of the growth event
	Capacity int // requested capacity in elements (0 on overflow)
	Bytes    int // requested block size in bytes (0 on overflow)
	Err      error
}

func (e *AllocError) Error() string {
	return "hbuf: grow to " + strconv.Itoa(e.Capacity) + " elements (" +
		strconv.Itoa(e.Bytes) + " bytes) at size " + strconv.Itoa(e.Size) +
		": " + e.Err.Error()
}

func (e *AllocError) Unwrap() error {
	return e.Err
}

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support, so it sees
// through [AllocError].
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
