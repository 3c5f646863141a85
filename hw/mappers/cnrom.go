package mappers

import (
	"github.com/go-faster/errors"

	"nescore/hw"
)

var CNROM = MapperDesc{
	Name:            "CNROM",
	Load:            loadCNROM,
	PRGROMbanksz:    0x8000,
	CHRROMbanksz:    0x2000,
	HasBusConflicts: func(b *base) bool { return b.rom.SubMapper() == 2 },
}

// cnrom has fixed PRGROM and switchable 8KB CHRROM banks.
type cnrom struct {
	*base

	// 7  bit  0
	// ---- ----
	// cccc ccCC
	// |||| ||||
	// ++++-++++- Select 8 KB CHR ROM bank for PPU $0000-$1FFF
	// CNROM only uses lowest 2 bits
	chrbank latch
}

func (m *cnrom) Translate(addr uint16, write bool) *uint8 {
	switch {
	case addr >= prgromStart:
		rom := m.prgrom(int(addr - prgromStart))
		if write {
			return m.selectWrite(&m.chrbank, addr, *rom)
		}
		return rom
	case addr >= prgramStart:
		return m.prgram(addr)
	}
	return nil
}

func (m *cnrom) PatternTable(addr uint16) *uint8 {
	return m.chrAt(m.chrbank.bank()&0b11, addr)
}

func loadCNROM(b *base) (hw.Mapper, error) {
	if n := len(b.rom.PRGROM); n != 0x4000 && n != 0x8000 {
		return nil, errors.Errorf("PRGROM must be 16KB or 32KB, got %d", n)
	}
	m := &cnrom{base: b}
	m.chrbank.mask = 0xFF
	return m, nil
}
