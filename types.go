// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hbuf

// Inline is the constraint on the inline storage type of a [Buffer].
//
// S is an array of T whose length is the inline capacity N. N is fixed at
// compile time by the instantiation, e.g. Buffer[byte, [3]byte] holds three
// bytes inline. Lengths from 1 to 32 are available, then a ladder of larger
// sizes up to 254.
//
// The element type T is unconstrained: a Go assignment is a bitwise copy
// that cannot fail, and Go types carry no destructor, so every T can be
// moved between the inline and the heap block by plain copy.
type Inline[T any] interface {
	~[1]T | ~[2]T | ~[3]T | ~[4]T | ~[5]T | ~[6]T | ~[7]T | ~[8]T |
		~[9]T | ~[10]T | ~[11]T | ~[12]T | ~[13]T | ~[14]T | ~[15]T | ~[16]T |
		~[17]T | ~[18]T | ~[19]T | ~[20]T | ~[21]T | ~[22]T | ~[23]T | ~[24]T |
		~[25]T | ~[26]T | ~[27]T | ~[28]T | ~[29]T | ~[30]T | ~[31]T | ~[32]T |
		~[48]T | ~[64]T | ~[96]T | ~[128]T | ~[192]T | ~[254]T
}

// IndexPolicy selects what At and Get do with an index outside [0, Size()).
//
// A buffer uses one policy for its whole life. An empty buffer has no slot
// to redirect to, so it reports ErrOutOfRange under every policy.
type IndexPolicy uint8

const (
	// IndexChecked returns ErrOutOfRange. This is the default.
	IndexChecked IndexPolicy = iota

	// IndexClamp redirects the access to index 0.
	//
	// The caller silently receives the first element instead of the one it
	// asked for. Only use it when the caller validates indices itself.
	IndexClamp
)

func (p IndexPolicy) String() string {
	switch p {
	case IndexChecked:
		return "checked"
	case IndexClamp:
		return "clamp"
	default:
		return "unknown"
	}
}

// Sequence is the read side of a [Buffer].
//
// Views returned by Data alias the buffer's active storage and are
// invalidated by the next growth event.
type Sequence[T any] interface {
	At(i int) (*T, error)
	Get(i int) (T, error)
	Data() []T
	Size() int
	Cap() int
}
