// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package codec

import "github.com/relabs-tech/magnetometer/internal/mag"

const (
	TLV493DReadSize  = 10
	TLV493DWriteSize = 4
)

// BitField locates a named field inside a register buffer.
type BitField struct {
	Byte  int
	Mask  byte
	Shift uint
}

// TLV493DReadField names a field of the 10-byte read buffer.
type TLV493DReadField int

const (
	TLVReadBX1 TLV493DReadField = iota
	TLVReadBX2
	TLVReadBY1
	TLVReadBY2
	TLVReadBZ1
	TLVReadBZ2
	TLVReadTemp1
	TLVReadTemp2
	TLVReadFrameCounter
	TLVReadChannel
	TLVReadPowerDownFlag
	TLVReadRes1
	TLVReadRes2
	TLVReadRes3
)

// TLV493DWriteField names a field of the 4-byte write buffer.
type TLV493DWriteField int

const (
	TLVWriteParity TLV493DWriteField = iota
	TLVWriteAddr
	TLVWriteInt
	TLVWriteFast
	TLVWriteLowPower
	TLVWriteTempDisable
	TLVWriteLPPeriod
	TLVWritePowerDown
	TLVWriteRes1
	TLVWriteRes2
	TLVWriteRes3
)

var tlvReadFields = [...]BitField{
	TLVReadBX1:           {0, 0xFF, 0},
	TLVReadBX2:           {4, 0xF0, 4},
	TLVReadBY1:           {1, 0xFF, 0},
	TLVReadBY2:           {4, 0x0F, 0},
	TLVReadBZ1:           {2, 0xFF, 0},
	TLVReadBZ2:           {5, 0x0F, 0},
	TLVReadTemp1:         {3, 0xF0, 4},
	TLVReadTemp2:         {6, 0xFF, 0},
	TLVReadFrameCounter:  {3, 0x0C, 2},
	TLVReadChannel:       {3, 0x03, 0},
	TLVReadPowerDownFlag: {5, 0x10, 4},
	TLVReadRes1:          {7, 0x18, 3},
	TLVReadRes2:          {8, 0xFF, 0},
	TLVReadRes3:          {9, 0x1F, 0},
}

var tlvWriteFields = [...]BitField{
	TLVWriteParity:      {1, 0x80, 7},
	TLVWriteAddr:        {1, 0x60, 5},
	TLVWriteInt:         {1, 0x04, 2},
	TLVWriteFast:        {1, 0x02, 1},
	TLVWriteLowPower:    {1, 0x01, 0},
	TLVWriteTempDisable: {3, 0x80, 7},
	TLVWriteLPPeriod:    {3, 0x40, 6},
	TLVWritePowerDown:   {3, 0x20, 5},
	TLVWriteRes1:        {1, 0x18, 3},
	TLVWriteRes2:        {2, 0xFF, 0},
	TLVWriteRes3:        {3, 0x1F, 0},
}

func (f BitField) get(buf []byte) byte {
	return (buf[f.Byte] & f.Mask) >> f.Shift
}

func (f BitField) set(buf []byte, v byte) {
	b := buf[f.Byte] &^ f.Mask
	buf[f.Byte] = b | (v<<f.Shift)&f.Mask
}

// TLV493DGet extracts a field from a read buffer.
func TLV493DGet(read []byte, f TLV493DReadField) byte {
	mustLen("tlv493d", read, TLV493DReadSize)
	return tlvReadFields[f].get(read)
}

// TLV493DSet stores v into a field of a write buffer, leaving the other
// bits of the target byte untouched.
func TLV493DSet(write []byte, f TLV493DWriteField, v byte) {
	mustLen("tlv493d", write, TLV493DWriteSize)
	tlvWriteFields[f].set(write, v)
}

// TLV493DCopyReserved copies the factory bits the chip expects to see
// echoed back on every write. Done once, right after the first read.
func TLV493DCopyReserved(read, write []byte) {
	TLV493DSet(write, TLVWriteRes1, TLV493DGet(read, TLVReadRes1))
	TLV493DSet(write, TLVWriteRes2, TLV493DGet(read, TLVReadRes2))
	TLV493DSet(write, TLVWriteRes3, TLV493DGet(read, TLVReadRes3))
}

// TLV493DInitWrite builds the write buffer that puts the chip into
// master-controlled mode: one conversion per read.
func TLV493DInitWrite(read []byte, addrBits byte) []byte {
	write := make([]byte, TLV493DWriteSize)
	TLV493DCopyReserved(read, write)
	TLV493DSet(write, TLVWriteAddr, addrBits)
	TLV493DSet(write, TLVWriteParity, 1)
	TLV493DSet(write, TLVWriteFast, 1)
	TLV493DSet(write, TLVWriteLowPower, 1)
	return write
}

// DecodeTLV493D converts a 10-byte read buffer into µT.
func DecodeTLV493D(read []byte) mag.Reading {
	mustLen("tlv493d", read, TLV493DReadSize)
	return mag.Reading{
		X: tlvAxis(TLV493DGet(read, TLVReadBX1), TLV493DGet(read, TLVReadBX2)),
		Y: tlvAxis(TLV493DGet(read, TLVReadBY1), TLV493DGet(read, TLVReadBY2)),
		Z: tlvAxis(TLV493DGet(read, TLVReadBZ1), TLV493DGet(read, TLVReadBZ2)),
	}
}

// tlvAxis joins the 8 high bits and 4 low bits into a signed 12-bit count.
// 0.098 mT per LSB.
func tlvAxis(top, nibble byte) float64 {
	bottom := (nibble << 4) & 0xFF
	v := int16(uint16(top)<<8|uint16(bottom)) >> 4
	return float64(v) * 0.098 * 1000
}
