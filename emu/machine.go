package emu

import (
	"io"

	"github.com/go-faster/errors"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/hw/hwio"
	"nescore/hw/mappers"
	"nescore/ines"
)

// Machine is the part of a NES that drives the CPU: the CPU and its internal
// RAM, the register windows of the graphics and audio/IO peripherals and the
// cartridge mapper.
type Machine struct {
	CPU    *hw.CPU
	PPU    hw.PPURegs
	IO     hw.IORegs
	Mapper hw.Mapper
	Rom    *ines.Rom
}

// NewMachine powers up a machine with the given cartridge.
func NewMachine(rom *ines.Rom) (*Machine, error) {
	mapper, err := mappers.Load(rom)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		CPU:    hw.NewCPU(hwio.NewTable("cpu")),
		Mapper: mapper,
		Rom:    rom,
	}
	m.CPU.InitBus(&m.PPU, &m.IO, mapper)
	m.Reset()
	return m, nil
}

func (m *Machine) Reset() {
	m.CPU.Reset()
}

// SetTraceOutput enables the CPU execution trace, or disables it if w is nil.
func (m *Machine) SetTraceOutput(w io.Writer) {
	m.CPU.SetTraceOutput(w)
}

// Run runs ncycles CPU cycles. It stops at the first error, that is when the
// CPU halts on an invalid opcode.
func (m *Machine) Run(ncycles int64) error {
	log.AddContext(m.CPU)
	defer log.RemoveContext(m.CPU)

	start := m.CPU.Cycles
	if err := m.CPU.Run(ncycles); err != nil {
		ent := log.ModEmu.ErrorZ("emulation stopped").
			Int64("ran", m.CPU.Cycles-start).
			Error("err", err)
		var operr *hw.OpcodeError
		if errors.As(err, &operr) {
			ent.String("disasm", m.CPU.Disasm(operr.PC).String())
		}
		ent.End()
		return errors.Wrapf(err, "cycle %d", m.CPU.Cycles)
	}

	log.ModEmu.InfoZ("run complete").
		Int64("ran", m.CPU.Cycles-start).
		End()
	return nil
}
