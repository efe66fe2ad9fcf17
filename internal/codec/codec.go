// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package codec converts raw magnetometer register blocks to physical units
// and builds the control bytes each chip expects. Nothing here touches a bus.
//
// Buffers of the wrong length are a caller bug and cause a panic.
package codec

import "fmt"

func mustLen(chip string, buf []byte, n int) {
	if len(buf) != n {
		panic(fmt.Sprintf("codec: %s: buffer length %d, want %d", chip, len(buf), n))
	}
}
