// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package codec

import (
	"fmt"
	"strings"
)

// RegisterInfo describes one register for dumps.
type RegisterInfo struct {
	Address     byte        `json:"address"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Access      string      `json:"access"` // "R", "W", "RW"
	Default     *byte       `json:"default,omitempty"`
	Fields      []FieldInfo `json:"fields,omitempty"`
}

// Readable reports whether reading the register has no side effect
// beyond returning its value.
func (r RegisterInfo) Readable() bool { return strings.Contains(r.Access, "R") }

// FieldInfo names bits Hi..Lo of a register.
type FieldInfo struct {
	Hi, Lo      uint8
	Name        string
	Description string
}

// Bits renders the bit range as "7" or "6:5".
func (f FieldInfo) Bits() string {
	if f.Hi == f.Lo {
		return fmt.Sprint(f.Hi)
	}
	return fmt.Sprintf("%d:%d", f.Hi, f.Lo)
}

// Extract returns the field value from a register value.
func (f FieldInfo) Extract(v byte) byte {
	width := f.Hi - f.Lo + 1
	return (v >> f.Lo) & byte(1<<width-1)
}

func def(v byte) *byte { return &v }

func bit(n uint8, name, desc string) FieldInfo { return FieldInfo{n, n, name, desc} }

func bits(hi, lo uint8, name, desc string) FieldInfo { return FieldInfo{hi, lo, name, desc} }

func dataRegs(start byte, names ...string) []RegisterInfo {
	regs := make([]RegisterInfo, len(names))
	for i, n := range names {
		regs[i] = RegisterInfo{Address: start + byte(i), Name: n, Description: "Output data", Access: "R"}
	}
	return regs
}

// RegisterMap returns the documented registers of chip in address order.
// Chips without a register pointer, such as the TLV493D, have no map.
func RegisterMap(chip string) ([]RegisterInfo, bool) {
	m, ok := registerMaps[chip]
	return m, ok
}

var registerMaps = map[string][]RegisterInfo{
	"mmc5603": mmc5603Registers(),
	"lis3mdl": lis3mdlRegisters(),
	"lis2mdl": lis2mdlRegisters(),
}

func mmc5603Registers() []RegisterInfo {
	regs := dataRegs(MMC5603RegOutXL,
		"XOUT0", "XOUT1", "YOUT0", "YOUT1", "ZOUT0", "ZOUT1", "XOUT2", "YOUT2", "ZOUT2")
	return append(regs,
		RegisterInfo{Address: MMC5603RegOutTemp, Name: "TOUT", Description: "Temperature output, 0.8 °C/LSB from -75 °C", Access: "R"},
		RegisterInfo{Address: MMC5603RegStatus, Name: "STATUS1", Description: "Device status", Access: "R",
			Fields: []FieldInfo{
				bit(7, "MEAS_T_DONE", "Temperature measurement done"),
				bit(6, "MEAS_M_DONE", "Magnetic measurement done"),
				bit(5, "SAT_SENSOR", "Self-test signal saturated"),
				bit(4, "OTP_READ_DONE", "OTP memory read done"),
			}},
		RegisterInfo{Address: MMC5603RegODR, Name: "ODR", Description: "Output data rate, Hz (255 with HPOWER is 1000 Hz)", Access: "RW", Default: def(0)},
		RegisterInfo{Address: MMC5603RegCtrl0, Name: "CTRL0", Description: "Internal control 0 (commands)", Access: "W",
			Fields: []FieldInfo{
				bit(7, "CMM_FREQ_EN", "Latch ODR for continuous mode"),
				bit(5, "AUTO_SR_EN", "Automatic set/reset"),
				bit(4, "DO_RESET", "Reset pulse"),
				bit(3, "DO_SET", "Set pulse"),
				bit(1, "TAKE_MEAS_T", "Start temperature measurement"),
				bit(0, "TAKE_MEAS_M", "Start magnetic measurement"),
			}},
		RegisterInfo{Address: MMC5603RegCtrl1, Name: "CTRL1", Description: "Internal control 1", Access: "W",
			Fields: []FieldInfo{
				bit(7, "SW_RESET", "Software reset"),
				bits(1, 0, "BW", "Measurement bandwidth"),
			}},
		RegisterInfo{Address: MMC5603RegCtrl2, Name: "CTRL2", Description: "Internal control 2", Access: "W",
			Fields: []FieldInfo{
				bit(7, "HPOWER", "High power mode, needed for 1000 Hz"),
				bit(4, "CMM_EN", "Continuous measurement mode"),
				bits(2, 0, "PRD_SET", "Measurements between set pulses"),
			}},
		RegisterInfo{Address: MMC5603RegProductID, Name: "PRODUCT_ID", Description: "Product ID", Access: "R", Default: def(MMC5603ChipID)},
	)
}

func lis3mdlRegisters() []RegisterInfo {
	regs := []RegisterInfo{
		{Address: LIS3MDLRegWhoAmI, Name: "WHO_AM_I", Description: "Device identification", Access: "R", Default: def(LIS3MDLChipID)},
		{Address: LIS3MDLRegCtrl1, Name: "CTRL_REG1", Description: "Control register 1", Access: "RW", Default: def(0x10),
			Fields: []FieldInfo{
				bit(7, "TEMP_EN", "Temperature sensor enable"),
				bits(6, 5, "OM", "X/Y operating mode: 0=low power, 1=medium, 2=high, 3=ultra-high"),
				bits(4, 2, "DO", "Output data rate"),
				bit(1, "FAST_ODR", "Rates above 80 Hz"),
				bit(0, "ST", "Self-test"),
			}},
		{Address: LIS3MDLRegCtrl2, Name: "CTRL_REG2", Description: "Control register 2", Access: "RW", Default: def(0x00),
			Fields: []FieldInfo{
				bits(6, 5, "FS", "Full scale: 0=±4, 1=±8, 2=±12, 3=±16 gauss"),
				bit(3, "REBOOT", "Reboot memory content"),
				bit(2, "SOFT_RST", "Reset configuration registers"),
			}},
		{Address: LIS3MDLRegCtrl3, Name: "CTRL_REG3", Description: "Control register 3", Access: "RW", Default: def(0x03),
			Fields: []FieldInfo{
				bit(5, "LP", "Low power"),
				bit(2, "SIM", "SPI mode"),
				bits(1, 0, "MD", "Mode: 0=continuous, 1=single, 2-3=power down"),
			}},
		{Address: LIS3MDLRegCtrl4, Name: "CTRL_REG4", Description: "Control register 4", Access: "RW", Default: def(0x00),
			Fields: []FieldInfo{
				bits(3, 2, "OMZ", "Z operating mode"),
				bit(1, "BLE", "Big endian output"),
			}},
		{Address: 0x24, Name: "CTRL_REG5", Description: "Control register 5", Access: "RW", Default: def(0x00),
			Fields: []FieldInfo{
				bit(7, "FAST_READ", "Read high bytes only"),
				bit(6, "BDU", "Block data update"),
			}},
		{Address: 0x27, Name: "STATUS_REG", Description: "Data status", Access: "R",
			Fields: []FieldInfo{
				bit(7, "ZYXOR", "X, Y, Z overrun"),
				bit(3, "ZYXDA", "X, Y, Z data available"),
			}},
	}
	regs = append(regs, dataRegs(LIS3MDLRegOutXL, "OUT_X_L", "OUT_X_H", "OUT_Y_L", "OUT_Y_H", "OUT_Z_L", "OUT_Z_H")...)
	return append(regs,
		RegisterInfo{Address: 0x2E, Name: "TEMP_OUT_L", Description: "Temperature output", Access: "R"},
		RegisterInfo{Address: 0x2F, Name: "TEMP_OUT_H", Description: "Temperature output", Access: "R"},
		RegisterInfo{Address: 0x30, Name: "INT_CFG", Description: "Interrupt configuration", Access: "RW", Default: def(0xE8)},
		RegisterInfo{Address: 0x31, Name: "INT_SRC", Description: "Interrupt source", Access: "R"},
		RegisterInfo{Address: 0x32, Name: "INT_THS_L", Description: "Interrupt threshold", Access: "RW", Default: def(0x00)},
		RegisterInfo{Address: 0x33, Name: "INT_THS_H", Description: "Interrupt threshold", Access: "RW", Default: def(0x00)},
	)
}

func lis2mdlRegisters() []RegisterInfo {
	regs := []RegisterInfo{
		{Address: 0x45, Name: "OFFSET_X_REG_L", Description: "Hard-iron offset", Access: "RW", Default: def(0x00)},
		{Address: 0x46, Name: "OFFSET_X_REG_H", Description: "Hard-iron offset", Access: "RW", Default: def(0x00)},
		{Address: 0x47, Name: "OFFSET_Y_REG_L", Description: "Hard-iron offset", Access: "RW", Default: def(0x00)},
		{Address: 0x48, Name: "OFFSET_Y_REG_H", Description: "Hard-iron offset", Access: "RW", Default: def(0x00)},
		{Address: 0x49, Name: "OFFSET_Z_REG_L", Description: "Hard-iron offset", Access: "RW", Default: def(0x00)},
		{Address: 0x4A, Name: "OFFSET_Z_REG_H", Description: "Hard-iron offset", Access: "RW", Default: def(0x00)},
		{Address: LIS2MDLRegWhoAmI, Name: "WHO_AM_I", Description: "Device identification", Access: "R", Default: def(LIS2MDLChipID)},
		{Address: LIS2MDLRegCfgA, Name: "CFG_REG_A", Description: "Configuration register A", Access: "RW", Default: def(0x03),
			Fields: []FieldInfo{
				bit(7, "COMP_TEMP_EN", "Temperature compensation"),
				bit(6, "REBOOT", "Reboot memory content"),
				bit(5, "SOFT_RST", "Reset configuration registers"),
				bit(4, "LP", "Low power"),
				bits(3, 2, "ODR", "Output data rate: 0=10, 1=20, 2=50, 3=100 Hz"),
				bits(1, 0, "MD", "Mode: 0=continuous, 1=single, 2-3=idle"),
			}},
		{Address: LIS2MDLRegCfgB, Name: "CFG_REG_B", Description: "Configuration register B", Access: "RW", Default: def(0x00),
			Fields: []FieldInfo{
				bit(4, "OFF_CANC_ONE_SHOT", "Offset cancellation in single mode"),
				bit(3, "INT_ON_DATAOFF", "Interrupt on offset-corrected data"),
				bit(2, "SET_FREQ", "Set pulse frequency"),
				bit(1, "OFF_CANC", "Offset cancellation"),
				bit(0, "LPF", "Low-pass filter"),
			}},
		{Address: LIS2MDLRegCfgC, Name: "CFG_REG_C", Description: "Configuration register C", Access: "RW", Default: def(0x00),
			Fields: []FieldInfo{
				bit(6, "INT_ON_PIN", "Interrupt on INT pin"),
				bit(5, "I2C_DIS", "Disable I2C"),
				bit(4, "BDU", "Block data update"),
				bit(3, "BLE", "Big endian output"),
				bit(1, "SELF_TEST", "Self-test"),
				bit(0, "DRDY_ON_PIN", "Data ready on INT pin"),
			}},
		{Address: 0x63, Name: "INT_CTRL_REG", Description: "Interrupt control", Access: "RW", Default: def(0xE0)},
		{Address: 0x64, Name: "INT_SOURCE_REG", Description: "Interrupt source", Access: "R"},
		{Address: 0x65, Name: "INT_THS_L_REG", Description: "Interrupt threshold", Access: "RW", Default: def(0x00)},
		{Address: 0x66, Name: "INT_THS_H_REG", Description: "Interrupt threshold", Access: "RW", Default: def(0x00)},
		{Address: 0x67, Name: "STATUS_REG", Description: "Data status", Access: "R",
			Fields: []FieldInfo{
				bit(7, "ZYXOR", "X, Y, Z overrun"),
				bit(3, "ZYXDA", "X, Y, Z data available"),
			}},
	}
	regs = append(regs, dataRegs(LIS2MDLRegOutXL, "OUTX_L_REG", "OUTX_H_REG", "OUTY_L_REG", "OUTY_H_REG", "OUTZ_L_REG", "OUTZ_H_REG")...)
	return append(regs,
		RegisterInfo{Address: 0x6E, Name: "TEMP_OUT_L_REG", Description: "Temperature output", Access: "R"},
		RegisterInfo{Address: 0x6F, Name: "TEMP_OUT_H_REG", Description: "Temperature output", Access: "R"},
	)
}
