package mappers

import (
	"nescore/hw"
)

var UxROM = MapperDesc{
	Name:            "UxROM",
	Load:            loadUxROM,
	PRGROMbanksz:    0x4000,
	CHRROMbanksz:    0x2000,
	HasBusConflicts: func(b *base) bool { return b.rom.SubMapper() == 2 },
}

// uxrom has a switchable 16KB bank at 0x8000 and the last bank fixed at
// 0xC000.
type uxrom struct {
	*base

	// 7  bit  0
	// ---- ----
	// xxxx pPPP
	//      ||||
	//      ++++- Select 16 KB PRG ROM bank for CPU $8000-$BFFF
	//            (UNROM uses bits 2-0; UOROM uses bits 3-0)
	prgbank latch
	nbanks  int
}

func (m *uxrom) Translate(addr uint16, write bool) *uint8 {
	switch {
	case addr >= prgromStart:
		if write {
			return m.selectWrite(&m.prgbank, addr, *m.prg(addr))
		}
		return m.prg(addr)
	case addr >= prgramStart:
		return m.prgram(addr)
	}
	return nil
}

func (m *uxrom) prg(addr uint16) *uint8 {
	bank := m.nbanks - 1
	if addr < 0xC000 {
		bank = m.prgbank.bank() & (m.nbanks - 1)
	}
	banksz := m.desc.PRGROMbanksz
	return m.prgrom(bank*banksz + int(addr)&(banksz-1))
}

func loadUxROM(b *base) (hw.Mapper, error) {
	m := &uxrom{
		base:   b,
		nbanks: max(len(b.rom.PRGROM)/b.desc.PRGROMbanksz, 1),
	}
	m.prgbank.mask = 0xFF
	return m, nil
}
