package hwio

import "nescore/emu/log"

// Device is a BankIO8 implementation that delegates the whole decoding of a
// range of addresses to a callback.
type Device struct {
	Name  string // name of the memory area (for debugging)
	Size  int    // size of the memory area
	Flags RWFlags

	RefCb func(addr uint16, write bool) *uint8
}

func (d *Device) Ref(addr uint16, write bool) *uint8 {
	switch {
	case write && d.Flags&ReadOnlyFlag != 0:
		log.ModHwIo.ErrorZ("invalid write to readonly device").
			String("name", d.Name).
			Hex16("addr", addr).
			End()
		return nil
	case !write && d.Flags&WriteOnlyFlag != 0:
		return nil
	case d.RefCb == nil:
		return nil
	}
	return d.RefCb(addr, write)
}
