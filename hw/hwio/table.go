package hwio

import (
	"fmt"

	"nescore/emu/log"
)

// log unmapped accesses (useful for debugging but verbose on NES since many
// games read from open bus)
const logUnmapped = false

// BankIO8 is implemented by every region that can be mapped into a Table.
type BankIO8 interface {
	// Ref returns a reference to the byte backing addr. It returns nil when
	// the access is not possible, for example a write to read-only storage.
	// Ref must not have side effects other than logging.
	Ref(addr uint16, write bool) *uint8
}

// Table is an address decoder: it associates each address of a 16-bit bus
// with the region mapped there.
type Table struct {
	Name string

	table8 radixTree
}

func NewTable(name string) *Table {
	t := new(Table)
	t.Name = name
	t.Reset()
	return t
}

func (t *Table) Reset() {
	t.table8 = radixTree{}
}

// Map a register bank (that is, a structure containing mulitple Mem, Reg8 or
// Device fields). For this function to work, registers must have a struct tag
// "hwio", containing the following fields:
//
//	offset=0x12     Byte-offset within the register bank at which this
//	                register is mapped. There is no default value: if this
//	                option is missing, the register is assumed not to be
//	                part of the bank, and is ignored by this call.
//
//	bank=NN         Ordinal bank number (if not specified, default to zero).
//	                This option allows for a structure to expose multiple
//	                banks, as regs can be grouped by bank by specified the
//	                bank number.
//
// See InitRegs for the other options.
func (t *Table) MapBank(addr uint16, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		switch r := reg.regPtr.(type) {
		case *Mem:
			t.MapMem(addr+reg.offset, r)
		case *Reg8:
			t.MapReg8(addr+reg.offset, r)
		case *Device:
			t.MapDevice(addr+reg.offset, r)
		default:
			panic(fmt.Errorf("invalid reg type: %T", r))
		}
	}
}

func (t *Table) UnmapBank(addr uint16, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		switch r := reg.regPtr.(type) {
		case *Mem:
			t.Unmap(addr+reg.offset, addr+reg.offset+uint16(r.VSize-1))
		case *Reg8:
			t.Unmap(addr+reg.offset, addr+reg.offset)
		case *Device:
			t.Unmap(addr+reg.offset, addr+reg.offset+uint16(r.Size-1))
		default:
			panic(fmt.Errorf("invalid reg type: %T", r))
		}
	}
}

func (t *Table) mapBus8(addr uint16, size int, io BankIO8) {
	if size <= 0 || int(addr)+size > 0x10000 {
		panic(fmt.Errorf("%s: invalid mapping size %#x at %04X", t.Name, size, addr))
	}
	err := t.table8.InsertRange(addr, uint16(int(addr)+size-1), io)
	if err != nil {
		panic(fmt.Errorf("%s: %w", t.Name, err))
	}
}

func (t *Table) MapReg8(addr uint16, io *Reg8) {
	t.mapBus8(addr, 1, io)
}

func (t *Table) MapDevice(addr uint16, io *Device) {
	log.ModHwIo.DebugZ("mapping device").
		Hex16("addr", addr).
		Int("size", io.Size).
		String("area", io.Name).
		String("bus", t.Name).
		End()

	t.mapBus8(addr, io.Size, io)
}

func (t *Table) MapMem(addr uint16, mem *Mem) {
	log.ModHwIo.DebugZ("mapping mem").
		Hex16("addr", addr).
		Int("size", mem.VSize).
		String("area", mem.Name).
		String("bus", t.Name).
		End()

	t.mapBus8(addr, mem.VSize, mem.BankIO8())
}

// MapMemorySlice maps the buffer mem between addr and end (inclusive). The
// buffer is mirrored if the range is larger than it.
func (t *Table) MapMemorySlice(addr, end uint16, mem []uint8, readonly bool) {
	log.ModHwIo.DebugZ("mapping slice").
		Hex16("addr", addr).
		Hex16("end", end).
		String("bus", t.Name).
		Bool("ro", readonly).
		End()

	var flags MemFlags
	if readonly {
		flags |= MemFlagReadOnly
	}
	t.MapMem(addr, &Mem{
		Data:  mem,
		Flags: flags,
		VSize: int(end) - int(addr) + 1,
	})
}

func (t *Table) Unmap(begin, end uint16) {
	t.table8.RemoveRange(begin, end)
}

// Decode returns the storage referenced by addr, or nil if addr is unmapped
// or if the region does not accept this kind of access.
func (t *Table) Decode(addr uint16, write bool) *uint8 {
	io := t.table8.Search(addr)
	if io == nil {
		if logUnmapped {
			log.ModHwIo.DebugZ("unmapped access").
				String("name", t.Name).
				Hex16("addr", addr).
				Bool("write", write).
				End()
		}
		return nil
	}
	return io.Ref(addr, write)
}
