// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package codec

import "github.com/relabs-tech/magnetometer/internal/mag"

// MMC5603 register map.
const (
	MMC5603RegOutXL     = 0x00 // start of the 9-byte field block
	MMC5603RegOutTemp   = 0x09
	MMC5603RegStatus    = 0x18
	MMC5603RegODR       = 0x1A
	MMC5603RegCtrl0     = 0x1B
	MMC5603RegCtrl1     = 0x1C
	MMC5603RegCtrl2     = 0x1D
	MMC5603RegProductID = 0x39
)

const (
	MMC5603ChipID    = 0x10
	MMC5603FieldSize = 9
)

// CTRL0 command bits. CTRL0 is write-only and every write is a command.
const (
	MMC5603TakeMeas  = 0x01 // TM_M
	MMC5603TakeTemp  = 0x02 // TM_T
	MMC5603Set       = 0x08
	MMC5603Reset     = 0x10
	MMC5603CmmFreqEn = 0x80
)

const (
	MMC5603SoftReset  = 0x80 // CTRL1 SW_RESET
	MMC5603CmmEn      = 0x10 // CTRL2 continuous mode enable
	MMC5603HighPower  = 0x80 // CTRL2 hpower, required for 1000 Hz
	MMC5603MeasMDone  = 1 << 6
	MMC5603MeasTDone  = 1 << 7
	MMC5603MaxRateODR = 1000
)

const (
	mmc5603Center = 1 << 19
	mmc5603LSB    = 0.00625 // µT per count
)

// DecodeMMC5603 converts the 9-byte block starting at OUT_X_L into µT.
// Each axis is a 20-bit unsigned value centered on 2^19.
func DecodeMMC5603(buf []byte) mag.Reading {
	mustLen("mmc5603", buf, MMC5603FieldSize)
	return mag.Reading{
		X: mmc5603Axis(buf[0], buf[1], buf[6]),
		Y: mmc5603Axis(buf[2], buf[3], buf[7]),
		Z: mmc5603Axis(buf[4], buf[5], buf[8]),
	}
}

func mmc5603Axis(hi, mid, lo byte) float64 {
	raw := int32(hi)<<12 | int32(mid)<<4 | int32(lo)>>4
	return float64(raw-mmc5603Center) * mmc5603LSB
}

// DecodeMMC5603Temperature converts the OUT_TEMP byte into °C.
func DecodeMMC5603Temperature(raw byte) float64 {
	return float64(raw)*0.8 - 75
}

// MMC5603Control is the cached state behind the ODR and CTRL2 registers.
type MMC5603Control struct {
	DataRate   int // 0 for on-request, 1-255 Hz, or 1000 Hz
	Continuous bool
}

// ValidMMC5603DataRate reports whether the chip can run at rate.
func ValidMMC5603DataRate(rate int) bool {
	return rate == MMC5603MaxRateODR || (rate >= 0 && rate <= 255)
}

// Encode returns the ODR and CTRL2 register values for c.
// 1000 Hz is encoded as ODR=255 with the high-power bit set.
func (c MMC5603Control) Encode() (odr, ctrl2 byte) {
	if c.DataRate == MMC5603MaxRateODR {
		odr = 255
		ctrl2 |= MMC5603HighPower
	} else {
		odr = byte(c.DataRate)
	}
	if c.Continuous {
		ctrl2 |= MMC5603CmmEn
	}
	return odr, ctrl2
}
