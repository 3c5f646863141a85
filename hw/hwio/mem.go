package hwio

import (
	"nescore/emu/log"
)

// mem is the adaptor through which a Mem is mapped into a Table.
type mem struct {
	name string
	buf  []byte
	mask uint16
	ro   MemFlags
}

func newMem(name string, buf []byte, flags MemFlags) *mem {
	if len(buf) == 0 || len(buf)&(len(buf)-1) != 0 {
		panic("memory buffer size is not pow2")
	}
	return &mem{
		name: name,
		buf:  buf,
		mask: uint16(len(buf) - 1),
		ro:   flags,
	}
}

func (m *mem) Ref(addr uint16, write bool) *uint8 {
	if write && m.ro&MemFlagReadOnly != 0 {
		if m.ro&MemFlagNoROLog == 0 {
			log.ModHwIo.ErrorZ("write to read-only memory").
				String("name", m.name).
				Hex16("addr", addr).
				End()
		}
		return nil
	}
	return &m.buf[addr&m.mask]
}

type MemFlags int

const (
	MemFlagReadWrite MemFlags = 0
	MemFlagReadOnly  MemFlags = (1 << iota) // writes are discarded
	MemFlagNoROLog                          // do not log discarded writes
)

// Mem is a linear memory area that can be mapped into a Table. The physical
// buffer must have a power of 2 size, it is mirrored over the virtual size.
type Mem struct {
	Name  string   // name of the memory area (for debugging)
	Data  []byte   // actual memory buffer
	VSize int      // virtual size of the memory (can be bigger than physical size)
	Flags MemFlags // flags determining how the memory can be accessed
}

// BankIO8 creates the adaptor used to map m into a Table.
func (m *Mem) BankIO8() BankIO8 {
	return newMem(m.Name, m.Data, m.Flags)
}
