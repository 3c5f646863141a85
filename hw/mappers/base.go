package mappers

import (
	"github.com/go-faster/errors"

	"nescore/emu/log"
	"nescore/ines"
)

const (
	prgramStart = 0x6000
	prgromStart = 0x8000
	chrramSize  = 0x2000
)

// base holds the state common to all mappers.
type base struct {
	desc MapperDesc
	rom  *ines.Rom

	// 8KB PRG-RAM, at 0x6000-0x7FFF.
	PRGRAM [0x2000]uint8

	// Pattern tables: CHR-ROM, or 8KB of CHR-RAM if the cartridge has none.
	chr []byte

	hasBusConflicts bool
}

func ispow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func newbase(desc MapperDesc, rom *ines.Rom) (*base, error) {
	if !ispow2(len(rom.PRGROM)) {
		return nil, errors.Errorf("only support PRGROM with power of 2 size, got %d", len(rom.PRGROM))
	}

	b := &base{desc: desc, rom: rom}
	switch {
	case len(rom.CHRROM) == 0:
		b.chr = make([]byte, chrramSize)
	case !ispow2(len(rom.CHRROM)):
		return nil, errors.Errorf("only support CHRROM with power of 2 size, got %d", len(rom.CHRROM))
	default:
		b.chr = rom.CHRROM
	}
	if desc.HasBusConflicts != nil {
		b.hasBusConflicts = desc.HasBusConflicts(b)
	}
	return b, nil
}

func (b *base) prgram(addr uint16) *uint8 {
	return &b.PRGRAM[addr&0x1FFF]
}

// prgrom returns a reference to the PRGROM byte at off, mirrored over the
// rom size.
func (b *base) prgrom(off int) *uint8 {
	return &b.rom.PRGROM[off&(len(b.rom.PRGROM)-1)]
}

// chrAt returns a reference to the byte at addr in the pattern table bank
// number bank.
func (b *base) chrAt(bank int, addr uint16) *uint8 {
	banksz := b.desc.CHRROMbanksz
	off := bank*banksz + int(addr)&(banksz-1)
	return &b.chr[off&(len(b.chr)-1)]
}

func (b *base) PatternTable(addr uint16) *uint8 {
	return b.chrAt(0, addr)
}

// latch is a bank-select register. It is plain storage, written by the CPU
// through the reference returned by selectWrite. The selected bank is only
// computed when needed.
type latch struct {
	value uint8

	// In case of bus conflicts, the value written is ANDed with the rom byte
	// driven at the same time.
	mask uint8
}

func (b *base) selectWrite(l *latch, addr uint16, romByte uint8) *uint8 {
	l.mask = 0xFF
	if b.hasBusConflicts {
		l.mask = romByte
	}

	log.ModMapper.DebugZ("bank select").
		String("mapper", b.desc.Name).
		Hex16("addr", addr).
		End()
	return &l.value
}

func (l *latch) bank() int {
	return int(l.value & l.mask)
}
