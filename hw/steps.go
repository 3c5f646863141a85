package hw

//go:generate go tool stringer -type=cycleState -trimprefix=st -output=cyclestate_string.go

// cycleState identifies the next micro-step of the CPU. The in-flight
// instruction state (latch, ptr, oper, crossed) is kept in the CPU struct.
type cycleState uint8

const (
	stFetch cycleState = iota
	stHalted

	stImplied   // dummy read of PC, then register operation
	stImmediate // operand fetch

	stZeroPage      // fetch zp address
	stZeroPageIndex // dummy read of zp base, add index
	stAbsLo         // fetch address low byte
	stAbsHi         // fetch address high byte
	stAbsHiIndex    // fetch address high byte, add index to low byte
	stIndexedRead   // read the address before page fixup
	stPtr           // fetch zp pointer
	stPtrIndex      // dummy read of pointer, add X
	stPtrLo         // read effective address low byte
	stPtrHi         // read effective address high byte
	stIndLo         // JMP (ind) target low byte
	stIndHi         // JMP (ind) target high byte

	stRead     // read operand at effective address
	stWrite    // write at effective address
	stRMWRead  // read operand
	stRMWDummy // write back unmodified operand
	stRMWWrite // write modified operand

	stBranch      // fetch offset
	stBranchTaken // dummy read of PC, set PCL
	stBranchFix   // dummy read of unfixed PC, fix PCH

	stPushDummy  // dummy read of PC
	stPush       // push A or P
	stPullDummy  // dummy read of PC
	stPullStack  // dummy read of stack, increment SP
	stPull       // pull A or P
	stJsrStack   // dummy read of stack
	stJsrPushHi  // push PCH
	stJsrPushLo  // push PCL
	stJsrHi      // fetch target high byte
	stRetDummy   // dummy read of PC
	stRetStack   // dummy read of stack, increment SP
	stRtiPullP   // pull P
	stRetPullLo  // pull PCL
	stRetPullHi  // pull PCH
	stRtsIncPC   // dummy read of PC, increment PC
	stBrkPad     // read padding byte
	stBrkPushHi  // push PCH
	stBrkPushLo  // push PCL
	stBrkPushP   // push P, select vector
	stVectorLo   // read vector low byte
	stVectorHi   // read vector high byte
)

const numCycleStates = int(stVectorHi) + 1

var microSteps = [numCycleStates]func(*CPU){
	stFetch:  (*CPU).fetch,
	stHalted: func(*CPU) {},

	stImplied:   (*CPU).implied,
	stImmediate: (*CPU).immediate,

	stZeroPage:      (*CPU).zeroPage,
	stZeroPageIndex: (*CPU).zeroPageIndex,
	stAbsLo:         (*CPU).absLo,
	stAbsHi:         (*CPU).absHi,
	stAbsHiIndex:    (*CPU).absHiIndex,
	stIndexedRead:   (*CPU).indexedRead,
	stPtr:           (*CPU).pointer,
	stPtrIndex:      (*CPU).pointerIndex,
	stPtrLo:         (*CPU).pointerLo,
	stPtrHi:         (*CPU).pointerHi,
	stIndLo:         (*CPU).indirectLo,
	stIndHi:         (*CPU).indirectHi,

	stRead:     (*CPU).read,
	stWrite:    (*CPU).write,
	stRMWRead:  (*CPU).rmwRead,
	stRMWDummy: (*CPU).rmwDummy,
	stRMWWrite: (*CPU).rmwWrite,

	stBranch:      (*CPU).branch,
	stBranchTaken: (*CPU).branchTaken,
	stBranchFix:   (*CPU).branchFix,

	stPushDummy: (*CPU).pushDummy,
	stPush:      (*CPU).push,
	stPullDummy: (*CPU).pullDummy,
	stPullStack: (*CPU).pullStack,
	stPull:      (*CPU).pull,
	stJsrStack:  (*CPU).jsrStack,
	stJsrPushHi: (*CPU).jsrPushHi,
	stJsrPushLo: (*CPU).jsrPushLo,
	stJsrHi:     (*CPU).jsrHi,
	stRetDummy:  (*CPU).retDummy,
	stRetStack:  (*CPU).retStack,
	stRtiPullP:  (*CPU).rtiPullP,
	stRetPullLo: (*CPU).retPullLo,
	stRetPullHi: (*CPU).retPullHi,
	stRtsIncPC:  (*CPU).rtsIncPC,
	stBrkPad:    (*CPU).brkPad,
	stBrkPushHi: (*CPU).brkPushHi,
	stBrkPushLo: (*CPU).brkPushLo,
	stBrkPushP:  (*CPU).brkPushP,
	stVectorLo:  (*CPU).vectorLo,
	stVectorHi:  (*CPU).vectorHi,
}

func (c *CPU) def() *opDef {
	return &instrs[c.instr]
}

// fetchPC reads the byte at PC and increments it.
func (c *CPU) fetchPC() uint8 {
	v := c.Bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) index() uint8 {
	switch c.mode {
	case ZeroPageX, AbsoluteX, IndexedIndirect:
		return c.X
	}
	return c.Y
}

func (c *CPU) done() {
	c.state = stFetch
}

func (c *CPU) fetch() {
	if c.pollInterrupts() {
		// The opcode fetch still happens, but its result is discarded.
		c.Bus.Read(c.PC)
		c.instr, c.mode = BRK, Implied
		c.interrupt = true
		c.state = stBrkPad
		return
	}
	if c.tracer != nil {
		c.traceOp()
	}

	c.opcode = c.Bus.Read(c.PC)
	instr, mode, err := decode(c.opcode)
	if err != nil {
		c.halt(err)
		return
	}
	c.PC++
	c.instr, c.mode = instr, mode
	c.crossed = false

	switch c.instr {
	case BRK:
		c.state = stBrkPad
		return
	case JSR:
		c.state = stAbsLo
		return
	case RTS, RTI:
		c.state = stRetDummy
		return
	case PHA, PHP:
		c.state = stPushDummy
		return
	case PLA, PLP:
		c.state = stPullDummy
		return
	}

	switch c.mode {
	case Implied, Accumulator:
		c.state = stImplied
	case Immediate:
		c.state = stImmediate
	case ZeroPage, ZeroPageX, ZeroPageY:
		c.state = stZeroPage
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		c.state = stAbsLo
	case IndexedIndirect, IndirectIndexed:
		c.state = stPtr
	case Relative:
		def := c.def()
		c.taken = (c.P&def.flag != 0) == def.set
		c.state = stBranch
	}
}

// access moves to the cycles accessing the effective address.
func (c *CPU) access() {
	switch c.def().kind {
	case kindRead:
		c.state = stRead
	case kindWrite:
		c.state = stWrite
	case kindRMW:
		c.state = stRMWRead
	}
}

func (c *CPU) implied() {
	c.Bus.Read(c.PC)
	if c.mode == Accumulator {
		c.A = c.def().rmw(c, c.A)
	} else {
		c.def().impl(c)
	}
	c.done()
}

func (c *CPU) immediate() {
	c.def().read(c, c.fetchPC())
	c.done()
}

/* effective address computation */

func (c *CPU) zeroPage() {
	c.latch = uint16(c.fetchPC())
	if c.mode == ZeroPage {
		c.access()
		return
	}
	c.state = stZeroPageIndex
}

func (c *CPU) zeroPageIndex() {
	c.Bus.Read(c.latch)
	c.latch = uint16(uint8(c.latch) + c.index())
	c.access()
}

func (c *CPU) absLo() {
	c.latch = uint16(c.fetchPC())
	switch {
	case c.instr == JSR:
		c.state = stJsrStack
	case c.mode == AbsoluteX || c.mode == AbsoluteY:
		c.state = stAbsHiIndex
	default:
		c.state = stAbsHi
	}
}

func (c *CPU) absHi() {
	c.latch |= uint16(c.fetchPC()) << 8
	switch {
	case c.mode == Indirect:
		c.state = stIndLo
	case c.instr == JMP:
		c.PC = c.latch
		c.done()
	default:
		c.access()
	}
}

// addIndex adds the index register to the low byte of the latch, without
// carrying into the high byte.
func (c *CPU) addIndex(hi uint8) {
	lo := uint16(uint8(c.latch)) + uint16(c.index())
	c.crossed = lo > 0xFF
	c.latch = uint16(hi)<<8 | lo&0xFF
	c.state = stIndexedRead
}

func (c *CPU) absHiIndex() {
	c.addIndex(c.fetchPC())
}

// indexedRead reads the address before the high byte fixup. It is the final
// read for read instructions when no page boundary was crossed.
func (c *CPU) indexedRead() {
	v := c.Bus.Read(c.latch)
	if c.crossed {
		c.latch += 0x100
	} else if c.def().kind == kindRead {
		c.def().read(c, v)
		c.done()
		return
	}
	c.access()
}

func (c *CPU) pointer() {
	c.ptr = c.fetchPC()
	if c.mode == IndexedIndirect {
		c.state = stPtrIndex
		return
	}
	c.state = stPtrLo
}

func (c *CPU) pointerIndex() {
	c.Bus.Read(uint16(c.ptr))
	c.ptr += c.X
	c.state = stPtrLo
}

func (c *CPU) pointerLo() {
	c.latch = uint16(c.Bus.Read(uint16(c.ptr)))
	c.state = stPtrHi
}

func (c *CPU) pointerHi() {
	hi := c.Bus.Read(uint16(c.ptr + 1))
	if c.mode == IndirectIndexed {
		c.addIndex(hi)
		return
	}
	c.latch |= uint16(hi) << 8
	c.access()
}

func (c *CPU) indirectLo() {
	c.oper = c.Bus.Read(c.latch)
	c.state = stIndHi
}

// The high byte is read from the same page as the low byte: JMP ($10FF)
// reads $10FF and $1000.
func (c *CPU) indirectHi() {
	hi := c.Bus.Read(c.latch&0xFF00 | uint16(uint8(c.latch)+1))
	c.PC = uint16(hi)<<8 | uint16(c.oper)
	c.done()
}

/* memory access */

func (c *CPU) read() {
	c.def().read(c, c.Bus.Read(c.latch))
	c.done()
}

func (c *CPU) write() {
	c.Bus.Write(c.latch, c.def().write(c))
	c.done()
}

func (c *CPU) rmwRead() {
	c.oper = c.Bus.Read(c.latch)
	c.state = stRMWDummy
}

func (c *CPU) rmwDummy() {
	c.Bus.Write(c.latch, c.oper)
	c.state = stRMWWrite
}

func (c *CPU) rmwWrite() {
	c.oper = c.def().rmw(c, c.oper)
	c.Bus.Write(c.latch, c.oper)
	c.done()
}

/* branches */

func (c *CPU) branch() {
	c.oper = c.fetchPC()
	if !c.taken {
		c.done()
		return
	}
	c.state = stBranchTaken
}

func (c *CPU) branchTaken() {
	c.Bus.Read(c.PC)
	c.latch = c.PC + uint16(int8(c.oper))
	c.PC = c.PC&0xFF00 | c.latch&0x00FF
	if c.PC == c.latch {
		c.done()
		return
	}
	c.state = stBranchFix
}

func (c *CPU) branchFix() {
	c.Bus.Read(c.PC)
	c.PC = c.latch
	c.done()
}

/* stack */

func (c *CPU) pushDummy() {
	c.Bus.Read(c.PC)
	c.state = stPush
}

func (c *CPU) push() {
	if c.instr == PHP {
		c.push8(uint8(c.P | Break | Reserved))
	} else {
		c.push8(c.A)
	}
	c.done()
}

func (c *CPU) pullDummy() {
	c.Bus.Read(c.PC)
	c.state = stPullStack
}

func (c *CPU) pullStack() {
	c.Bus.Read(c.stackAddr())
	c.SP++
	c.state = stPull
}

func (c *CPU) pull() {
	v := c.Bus.Read(c.stackAddr())
	if c.instr == PLP {
		c.P.pull(v)
	} else {
		c.A = v
		c.P.checkNZ(c.A)
	}
	c.done()
}

/* subroutines */

func (c *CPU) jsrStack() {
	c.Bus.Read(c.stackAddr())
	c.state = stJsrPushHi
}

// JSR pushes the address of its last byte.
func (c *CPU) jsrPushHi() {
	c.push8(uint8(c.PC >> 8))
	c.state = stJsrPushLo
}

func (c *CPU) jsrPushLo() {
	c.push8(uint8(c.PC))
	c.state = stJsrHi
}

func (c *CPU) jsrHi() {
	hi := c.Bus.Read(c.PC)
	c.PC = uint16(hi)<<8 | c.latch&0xFF
	c.done()
}

func (c *CPU) retDummy() {
	c.Bus.Read(c.PC)
	c.state = stRetStack
}

func (c *CPU) retStack() {
	c.Bus.Read(c.stackAddr())
	c.SP++
	if c.instr == RTI {
		c.state = stRtiPullP
	} else {
		c.state = stRetPullLo
	}
}

func (c *CPU) rtiPullP() {
	c.P.pull(c.Bus.Read(c.stackAddr()))
	c.SP++
	c.state = stRetPullLo
}

func (c *CPU) retPullLo() {
	c.latch = uint16(c.Bus.Read(c.stackAddr()))
	c.SP++
	c.state = stRetPullHi
}

func (c *CPU) retPullHi() {
	c.latch |= uint16(c.Bus.Read(c.stackAddr())) << 8
	c.PC = c.latch
	if c.instr == RTI {
		c.done()
		return
	}
	c.state = stRtsIncPC
}

func (c *CPU) rtsIncPC() {
	c.fetchPC()
	c.done()
}

/* BRK and interrupts */

func (c *CPU) brkPad() {
	c.Bus.Read(c.PC)
	if !c.interrupt {
		c.PC++
	}
	c.state = stBrkPushHi
}

func (c *CPU) brkPushHi() {
	c.push8(uint8(c.PC >> 8))
	c.state = stBrkPushLo
}

func (c *CPU) brkPushLo() {
	c.push8(uint8(c.PC))
	c.state = stBrkPushP
}

func (c *CPU) brkPushP() {
	// An NMI occurring before this cycle hijacks the sequence.
	c.latch = IRQVector
	if c.nmiPending {
		c.nmiPending = false
		c.latch = NMIVector
	}

	p := c.P | Reserved
	if c.interrupt {
		p &^= Break
	} else {
		p |= Break
	}
	c.push8(uint8(p))
	c.state = stVectorLo
}

func (c *CPU) vectorLo() {
	c.oper = c.Bus.Read(c.latch)
	c.P.set(Interrupt, true)
	c.state = stVectorHi
}

func (c *CPU) vectorHi() {
	hi := c.Bus.Read(c.latch + 1)
	c.PC = uint16(hi)<<8 | uint16(c.oper)
	c.interrupt = false
	c.done()
}
