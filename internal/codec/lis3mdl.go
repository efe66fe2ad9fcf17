// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package codec

import (
	"encoding/binary"

	"github.com/relabs-tech/magnetometer/internal/mag"
)

// LIS3MDL register map.
const (
	LIS3MDLRegWhoAmI = 0x0F
	LIS3MDLRegCtrl1  = 0x20
	LIS3MDLRegCtrl2  = 0x21
	LIS3MDLRegCtrl3  = 0x22
	LIS3MDLRegCtrl4  = 0x23
	LIS3MDLRegOutXL  = 0x28
)

const (
	LIS3MDLChipID    = 0x3D
	LIS3MDLFieldSize = 6

	// CTRL_REG2 REBOOT | SOFT_RST
	LIS3MDLSoftReset = 0x0C
	// CTRL_REG1: OM=ultra-high (6:5), DO+FAST_ODR=0b0001 (4:1) -> 155 Hz
	LIS3MDLCtrl1UltraHigh155 = 0b0110_0010
	// CTRL_REG3: MD=00 continuous conversion
	LIS3MDLCtrl3Continuous = 0x00
	// CTRL_REG4: OMZ=ultra-high (3:2)
	LIS3MDLCtrl4UltraHighZ = 0b0000_1100
)

// LSB per gauss for the ±4, ±8, ±12 and ±16 gauss ranges.
var lis3mdlLSBPerGauss = [...]float64{6842, 3421, 2281, 1711}

// LIS3MDLRanges returns the number of full-scale settings.
func LIS3MDLRanges() int { return len(lis3mdlLSBPerGauss) }

// LIS3MDLCtrl2 encodes a range index into CTRL_REG2 (FS bits 6:5).
func LIS3MDLCtrl2(rng int) byte {
	return byte(rng&0x03) << 5
}

// DecodeLIS3MDL converts the 6-byte OUT_X_L..OUT_Z_H block into µT for the
// given range index.
func DecodeLIS3MDL(buf []byte, rng int) mag.Reading {
	mustLen("lis3mdl", buf, LIS3MDLFieldSize)
	// gauss -> µT
	k := 100 / lis3mdlLSBPerGauss[rng]
	return mag.Reading{
		X: float64(int16(binary.LittleEndian.Uint16(buf[0:2]))) * k,
		Y: float64(int16(binary.LittleEndian.Uint16(buf[2:4]))) * k,
		Z: float64(int16(binary.LittleEndian.Uint16(buf[4:6]))) * k,
	}
}
