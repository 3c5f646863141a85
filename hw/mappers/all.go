package mappers

import (
	"github.com/go-faster/errors"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/ines"
)

var ErrUnsupportedMapper = errors.New("unsupported mapper")

// Load creates the mapper for rom, as indicated by its header.
func Load(rom *ines.Rom) (hw.Mapper, error) {
	desc, ok := All[rom.Mapper()]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedMapper, "mapper %d", rom.Mapper())
	}
	base, err := newbase(desc, rom)
	if err != nil {
		return nil, errors.Wrap(err, "mapper initialization failed")
	}
	m, err := desc.Load(base)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load mapper %s", desc.Name)
	}

	log.ModMapper.InfoZ("mapper loaded").
		String("name", desc.Name).
		Int("prgrom", len(rom.PRGROM)).
		Int("chrrom", len(rom.CHRROM)).
		Bool("conflicts", base.hasBusConflicts).
		End()
	return m, nil
}

type MapperDesc struct {
	Name            string
	Load            func(*base) (hw.Mapper, error)
	PRGROMbanksz    int
	CHRROMbanksz    int
	HasBusConflicts func(*base) bool
}

// All maps the 12-bit mapper index to the supported mappers.
var All = map[uint16]MapperDesc{
	0: NROM,
	2: UxROM,
	3: CNROM,
}
