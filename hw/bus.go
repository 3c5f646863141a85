package hw

import (
	"nescore/emu/log"
	"nescore/hw/hwio"
)

// BusOp is the kind of transaction driven on the bus during a cycle.
type BusOp uint8

const (
	BusNone BusOp = iota
	BusRead
	BusWrite
)

func (op BusOp) String() string {
	switch op {
	case BusRead:
		return "read"
	case BusWrite:
		return "write"
	}
	return "none"
}

// Bus holds the state of the address and data lines, as driven by the last
// cycle. The Table decodes addresses to storage.
type Bus struct {
	Table *hwio.Table

	Addr uint16
	Data uint8
	Op   BusOp
}

// Read drives addr on the bus and latches the addressed byte into Data. When
// nothing answers at addr, Data keeps its previous value (open bus).
func (b *Bus) Read(addr uint16) uint8 {
	b.Addr = addr
	b.Op = BusRead
	if ref := b.Table.Decode(addr, false); ref != nil {
		b.Data = *ref
	} else {
		log.ModBus.DebugZ("open bus read").Hex16("addr", addr).Hex8("val", b.Data).End()
	}
	return b.Data
}

// Write drives addr and val on the bus and stores val at addr, if something
// accepts it.
func (b *Bus) Write(addr uint16, val uint8) {
	b.Addr = addr
	b.Data = val
	b.Op = BusWrite
	if ref := b.Table.Decode(addr, true); ref != nil {
		*ref = val
	} else {
		log.ModBus.DebugZ("unmapped write").Hex16("addr", addr).Hex8("val", val).End()
	}
}

// Peek returns the byte a read at addr would return, without modifying the
// bus state.
func (b *Bus) Peek(addr uint16) uint8 {
	if ref := b.Table.Decode(addr, false); ref != nil {
		return *ref
	}
	return b.Data
}

// Peek16 is a convenience function.
func (b *Bus) Peek16(addr uint16) uint16 {
	return uint16(b.Peek(addr+1))<<8 | uint16(b.Peek(addr))
}
