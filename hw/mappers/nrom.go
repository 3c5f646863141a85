package mappers

import (
	"github.com/go-faster/errors"

	"nescore/hw"
)

var NROM = MapperDesc{
	Name:         "NROM",
	Load:         loadNROM,
	PRGROMbanksz: 0x4000,
	CHRROMbanksz: 0x2000,
}

// nrom has 16KB (mirrored) or 32KB of PRGROM and no bank switching.
type nrom struct {
	*base
}

func (m *nrom) Translate(addr uint16, write bool) *uint8 {
	switch {
	case addr >= prgromStart:
		if write {
			return nil
		}
		return m.prgrom(int(addr - prgromStart))
	case addr >= prgramStart:
		return m.prgram(addr)
	}
	return nil
}

func loadNROM(b *base) (hw.Mapper, error) {
	if n := len(b.rom.PRGROM); n != 0x4000 && n != 0x8000 {
		return nil, errors.Errorf("PRGROM must be 16KB or 32KB, got %d", n)
	}
	return &nrom{base: b}, nil
}
