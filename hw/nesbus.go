package hw

import (
	"nescore/hw/hwio"
)

// PPURegs is the window of the 8 graphics registers, mapped at 0x2000-0x3FFF
// with mirrors every 8 bytes. The registers are plain storage, their semantics
// belong to the graphics peripheral.
type PPURegs struct {
	PPUCTRL   hwio.Reg8 `hwio:"offset=0x0"`
	PPUMASK   hwio.Reg8 `hwio:"offset=0x1"`
	PPUSTATUS hwio.Reg8 `hwio:"offset=0x2"`
	OAMADDR   hwio.Reg8 `hwio:"offset=0x3"`
	OAMDATA   hwio.Reg8 `hwio:"offset=0x4"`
	PPUSCROLL hwio.Reg8 `hwio:"offset=0x5"`
	PPUADDR   hwio.Reg8 `hwio:"offset=0x6"`
	PPUDATA   hwio.Reg8 `hwio:"offset=0x7"`
}

// IORegs is the window of the audio and I/O registers, mapped at
// 0x4000-0x4017.
type IORegs struct {
	Regs hwio.Mem `hwio:"offset=0x0,size=0x20,vsize=0x18"`
}

// Mapper is the cartridge capability: it resolves CPU addresses in
// 0x4018-0xFFFF to cartridge storage, or nil when nothing answers.
type Mapper interface {
	Translate(addr uint16, write bool) *uint8
}

// PatternTableMapper is implemented by mappers giving access to the pattern
// tables (0x0000-0x1FFF of the graphics address space).
type PatternTableMapper interface {
	PatternTable(addr uint16) *uint8
}

const cartStart = 0x4018

// InitBus installs the NES memory map on the CPU bus.
func (c *CPU) InitBus(ppu *PPURegs, io *IORegs, m Mapper) {
	hwio.MustInitRegs(c)
	// CPU internal RAM, mirrored.
	c.Bus.Table.MapBank(0x0000, c, 0)

	// Map the 8 PPU registers from 0x2000 to 0x3FFF.
	hwio.MustInitRegs(ppu)
	for off := uint16(0x2000); off < 0x4000; off += 8 {
		c.Bus.Table.MapBank(off, ppu, 0)
	}

	hwio.MustInitRegs(io)
	c.Bus.Table.MapBank(0x4000, io, 0)

	c.Bus.Table.MapDevice(cartStart, &hwio.Device{
		Name:  "cartridge",
		Size:  0x10000 - cartStart,
		RefCb: m.Translate,
	})
}
