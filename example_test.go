// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hbuf_test

import (
	"errors"
	"fmt"

	"code.hybscloud.com/hbuf"
	"code.hybscloud.com/iox"
)

// ExampleNewBuffer demonstrates the inline to heap transition.
func ExampleNewBuffer() {
	b := hbuf.NewBuffer[byte, [3]byte]()

	for _, c := range []byte("ABCDEFG") {
		b.MustPush(c)
		fmt.Printf("%s size=%d cap=%d heap=%v\n", b.Data(), b.Size(), b.Cap(), b.HeapBacked())
	}

	// Output:
	// A size=1 cap=3 heap=false
	// AB size=2 cap=3 heap=false
	// ABC size=3 cap=3 heap=false
	// ABCD size=4 cap=6 heap=true
	// ABCDE size=5 cap=6 heap=true
	// ABCDEF size=6 cap=6 heap=true
	// ABCDEFG size=7 cap=12 heap=true
}

// ExampleBuild demonstrates the two index policies on the same contents.
func ExampleBuild() {
	checked := hbuf.Build[byte, [3]byte](hbuf.New())
	clamped := hbuf.Build[byte, [3]byte](hbuf.New().ClampIndex())

	for _, c := range []byte("ABC") {
		checked.MustPush(c)
		clamped.MustPush(c)
	}

	_, err := checked.Get(99)
	fmt.Println("checked:", errors.Is(err, hbuf.ErrOutOfRange))

	v, _ := clamped.Get(99)
	fmt.Printf("clamp: %c\n", v)

	// Output:
	// checked: true
	// clamp: A
}

// ExampleNewBudget demonstrates retrying growth against a shared budget.
func ExampleNewBudget() {
	budget := hbuf.NewBudget(96)
	a := hbuf.Build[int64, [2]int64](hbuf.New().Allocator(budget))
	b := hbuf.Build[int64, [2]int64](hbuf.New().Allocator(budget))

	for i := range 3 {
		a.MustPush(int64(i))
		b.MustPush(int64(i))
	}
	fmt.Println("used:", budget.Used())

	// a needs 64 more bytes to grow past 4 elements.
	a.MustPush(3)
	_, err := a.Push(4)
	fmt.Println("would block:", hbuf.IsWouldBlock(err))

	b.Free()
	backoff := iox.Backoff{}
	for {
		if _, err = a.Push(4); !hbuf.IsWouldBlock(err) {
			break
		}
		backoff.Wait()
	}
	fmt.Println("err:", err, "cap:", a.Cap(), "used:", budget.Used())

	// Output:
	// used: 64
	// would block: true
	// err: <nil> cap: 8 used: 64
}

// ExampleNewCounting demonstrates observing heap blocks.
func ExampleNewCounting() {
	counter := hbuf.NewCounting(nil)
	b := hbuf.Build[int32, [4]int32](hbuf.New().Allocator(counter))

	for i := range 20 {
		b.MustPush(int32(i))
	}
	s := counter.Stats()
	fmt.Println("blocks:", s.Reserves, "dropped:", s.Releases, "live:", s.LiveBytes)

	b.Free()
	fmt.Println("live after Free:", counter.Stats().LiveBytes)

	// Output:
	// blocks: 3 dropped: 2 live: 128
	// live after Free: 0
}
