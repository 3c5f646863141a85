package hwio

import (
	"fmt"

	"nescore/emu/log"
)

type RWFlags uint8

const (
	ReadWriteFlag RWFlags = 0
	ReadOnlyFlag  RWFlags = (1 << iota)
	WriteOnlyFlag
)

// Reg8 is a single register byte.
type Reg8 struct {
	Name  string
	Value uint8
	Flags RWFlags
}

func (reg Reg8) String() string {
	return fmt.Sprintf("%s{%02x}", reg.Name, reg.Value)
}

func (reg *Reg8) Ref(addr uint16, write bool) *uint8 {
	switch {
	case write && reg.Flags&ReadOnlyFlag != 0:
		log.ModHwIo.ErrorZ("invalid write to readonly reg").
			String("name", reg.Name).
			Hex16("addr", addr).
			End()
		return nil
	case !write && reg.Flags&WriteOnlyFlag != 0:
		log.ModHwIo.DebugZ("read from writeonly reg").
			String("name", reg.Name).
			Hex16("addr", addr).
			End()
		return nil
	}
	return &reg.Value
}
