// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package codec

import (
	"encoding/binary"

	"github.com/relabs-tech/magnetometer/internal/mag"
)

// LIS2MDL register map.
const (
	LIS2MDLRegWhoAmI = 0x4F
	LIS2MDLRegCfgA   = 0x60
	LIS2MDLRegCfgB   = 0x61
	LIS2MDLRegCfgC   = 0x62
	LIS2MDLRegOutXL  = 0x68
)

const (
	LIS2MDLChipID    = 0x40
	LIS2MDLFieldSize = 6
)

// CFG_REG_A bits.
const (
	LIS2MDLCompTempEn = 1 << 7
	LIS2MDLReboot     = 1 << 6
	LIS2MDLSoftRst    = 1 << 5
	LIS2MDLLowPower   = 1 << 4
)

// CFG_REG_C bits.
const LIS2MDLBDU = 1 << 4

// LIS2MDL output data rates (CFG_REG_A bits 3:2).
const (
	LIS2MDLRate10Hz = iota
	LIS2MDLRate20Hz
	LIS2MDLRate50Hz
	LIS2MDLRate100Hz
)

// 1.5 mG per LSB.
const lis2mdlLSB = 0.15

// LIS2MDLConfig is the CFG_REG_A state applied after reset.
type LIS2MDLConfig struct {
	TempCompensation bool
	LowPower         bool
	Rate             int
}

// Encode returns CFG_REG_A with MD=00 (continuous).
func (c LIS2MDLConfig) Encode() byte {
	var a byte
	if c.TempCompensation {
		a |= LIS2MDLCompTempEn
	}
	if c.LowPower {
		a |= LIS2MDLLowPower
	}
	a |= byte(c.Rate&0x03) << 2
	return a
}

// DecodeLIS2MDL converts the 6-byte OUTX_L..OUTZ_H block into µT.
func DecodeLIS2MDL(buf []byte) mag.Reading {
	mustLen("lis2mdl", buf, LIS2MDLFieldSize)
	return mag.Reading{
		X: float64(int16(binary.LittleEndian.Uint16(buf[0:2]))) * lis2mdlLSB,
		Y: float64(int16(binary.LittleEndian.Uint16(buf[2:4]))) * lis2mdlLSB,
		Z: float64(int16(binary.LittleEndian.Uint16(buf[4:6]))) * lis2mdlLSB,
	}
}
