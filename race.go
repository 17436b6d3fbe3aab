// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package hbuf

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent allocator tests, whose atomix counters
// trigger false positives in the detector.
const RaceEnabled = true
