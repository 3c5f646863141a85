package hw

import (
	"io"

	"nescore/emu/log"
	"nescore/hw/hwio"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

// CPU is a cycle-stepped 6502 core, as found in the NES 2A03. Each call to
// Step runs one cycle, that is one bus transaction.
type CPU struct {
	Bus Bus

	RAM hwio.Mem `hwio:"bank=0,offset=0x0,size=0x800,vsize=0x2000"`

	// Non-nil when execution tracing is enabled.
	tracer *tracer

	Cycles int64 // CPU cycles

	// cpu registers
	A, X, Y, SP uint8
	PC          uint16
	P           P

	// in-flight instruction
	state     cycleState
	opcode    uint8
	instr     Instr
	mode      AddrMode
	latch     uint16 // effective address
	ptr       uint8  // zero page pointer of indirect modes
	oper      uint8  // operand or data byte
	crossed   bool   // indexing crossed a page boundary
	taken     bool   // branch condition
	interrupt bool   // the BRK sequence serves a hardware interrupt

	// interrupt lines
	nmiLine, nmiPending bool
	irqLine             bool

	err error // non-nil when halted
}

// NewCPU creates a new CPU at power-up state, decoding addresses through bus.
func NewCPU(bus *hwio.Table) *CPU {
	return &CPU{
		Bus: Bus{Table: bus},
		A:   0x00,
		X:   0x00,
		Y:   0x00,
		SP:  0xFD,
		P:   Interrupt | Reserved,
		PC:  0x0000,
	}
}

// Reset loads PC from the reset vector and prepares the CPU to fetch an
// opcode. It clears the halted state and a latched NMI but leaves the other
// registers and the interrupt line levels untouched. Reset does not count as
// CPU cycles.
func (c *CPU) Reset() {
	lo := c.Bus.Read(ResetVector)
	hi := c.Bus.Read(ResetVector + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)

	c.state = stFetch
	c.err = nil
	c.interrupt = false
	c.nmiPending = false

	log.ModCPU.DebugZ("reset").Hex16("PC", c.PC).End()
}

// Step runs a single cycle. It returns a non-nil error, an *OpcodeError, once
// the CPU has halted; all further calls return the same error until Reset.
func (c *CPU) Step() error {
	if c.state == stHalted {
		c.Bus.Op = BusNone
		return c.err
	}
	microSteps[c.state](c)
	c.Cycles++
	if c.state == stHalted {
		return c.err
	}
	return nil
}

// Run runs ncycles cycles, or less if the CPU halts.
func (c *CPU) Run(ncycles int64) error {
	for range ncycles {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// AtInstructionBoundary reports whether the next call to Step fetches an
// opcode (or starts an interrupt sequence).
func (c *CPU) AtInstructionBoundary() bool {
	return c.state == stFetch
}

func (c *CPU) Halted() bool {
	return c.state == stHalted
}

func (c *CPU) halt(err *OpcodeError) {
	err.PC = c.PC
	c.err = err
	c.state = stHalted

	log.ModCPU.WarnZ("CPU halted").
		Hex16("PC", c.PC).
		Hex8("opcode", err.Opcode).
		Error("err", err.Err).
		End()
}

// AddLogContext adds the CPU location to log entries.
func (c *CPU) AddLogContext(e *log.EntryZ) {
	e.Hex16("pc", c.PC).Int64("cycles", c.Cycles)
}

/* stack operations */

func (c *CPU) stackAddr() uint16 {
	return 0x0100 | uint16(c.SP)
}

func (c *CPU) push8(val uint8) {
	c.Bus.Write(c.stackAddr(), val)
	c.SP--
}

/* tracing */

func (c *CPU) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w, d: c}
}

func (c *CPU) traceOp() {
	c.tracer.write(cpuState{
		A:     c.A,
		X:     c.X,
		Y:     c.Y,
		P:     c.P,
		SP:    c.SP,
		Clock: c.Cycles,
		PC:    c.PC,
	})
}
