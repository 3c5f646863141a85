package hw

// opKind selects the family of cycle sequences an instruction runs.
type opKind uint8

const (
	kindImplied opKind = iota // register-only operation, 2 cycles
	kindRead                  // reads its operand
	kindWrite                 // writes a register to memory
	kindRMW                   // read-modify-write
	kindBranch                // conditional relative branch
	kindControl               // BRK JSR JMP RTI RTS and stack operations
)

type opDef struct {
	kind  opKind
	modes modeSet

	impl  func(*CPU)              // kindImplied
	read  func(*CPU, uint8)       // kindRead
	write func(*CPU) uint8        // kindWrite
	rmw   func(*CPU, uint8) uint8 // kindRMW, also on A for Accumulator mode

	// kindBranch: taken if (P&flag != 0) == set.
	flag P
	set  bool
}

var (
	aluModes   = modes(Immediate, ZeroPage, ZeroPageX, Absolute, AbsoluteX, AbsoluteY, IndexedIndirect, IndirectIndexed)
	staModes   = modes(ZeroPage, ZeroPageX, Absolute, AbsoluteX, AbsoluteY, IndexedIndirect, IndirectIndexed)
	shiftModes = modes(Accumulator, ZeroPage, ZeroPageX, Absolute, AbsoluteX)
	incModes   = modes(ZeroPage, ZeroPageX, Absolute, AbsoluteX)
	cmpXYModes = modes(Immediate, ZeroPage, Absolute)
	implied    = modes(Implied)
	relative   = modes(Relative)
)

func impliedOp(f func(*CPU)) opDef { return opDef{kind: kindImplied, modes: implied, impl: f} }
func branchOp(flag P, set bool) opDef {
	return opDef{kind: kindBranch, modes: relative, flag: flag, set: set}
}

var instrs = [numInstrs]opDef{
	ADC: {kind: kindRead, modes: aluModes, read: adc},
	AND: {kind: kindRead, modes: aluModes, read: and},
	ASL: {kind: kindRMW, modes: shiftModes, rmw: asl},
	BCC: branchOp(Carry, false),
	BCS: branchOp(Carry, true),
	BEQ: branchOp(Zero, true),
	BIT: {kind: kindRead, modes: modes(ZeroPage, Absolute), read: bit},
	BMI: branchOp(Negative, true),
	BNE: branchOp(Zero, false),
	BPL: branchOp(Negative, false),
	BRK: {kind: kindControl, modes: implied},
	BVC: branchOp(Overflow, false),
	BVS: branchOp(Overflow, true),
	CLC: impliedOp(func(c *CPU) { c.P.set(Carry, false) }),
	CLD: impliedOp(func(c *CPU) { c.P.set(Decimal, false) }),
	CLI: impliedOp(func(c *CPU) { c.P.set(Interrupt, false) }),
	CLV: impliedOp(func(c *CPU) { c.P.set(Overflow, false) }),
	CMP: {kind: kindRead, modes: aluModes, read: func(c *CPU, v uint8) { c.compare(c.A, v) }},
	CPX: {kind: kindRead, modes: cmpXYModes, read: func(c *CPU, v uint8) { c.compare(c.X, v) }},
	CPY: {kind: kindRead, modes: cmpXYModes, read: func(c *CPU, v uint8) { c.compare(c.Y, v) }},
	DEC: {kind: kindRMW, modes: incModes, rmw: dec},
	DEX: impliedOp(func(c *CPU) { c.X--; c.P.checkNZ(c.X) }),
	DEY: impliedOp(func(c *CPU) { c.Y--; c.P.checkNZ(c.Y) }),
	EOR: {kind: kindRead, modes: aluModes, read: eor},
	INC: {kind: kindRMW, modes: incModes, rmw: inc},
	INX: impliedOp(func(c *CPU) { c.X++; c.P.checkNZ(c.X) }),
	INY: impliedOp(func(c *CPU) { c.Y++; c.P.checkNZ(c.Y) }),
	JMP: {kind: kindControl, modes: modes(Absolute, Indirect)},
	JSR: {kind: kindControl, modes: modes(Absolute)},
	LDA: {kind: kindRead, modes: aluModes, read: func(c *CPU, v uint8) { c.A = v; c.P.checkNZ(v) }},
	LDX: {kind: kindRead, modes: modes(Immediate, ZeroPage, ZeroPageY, Absolute, AbsoluteY), read: func(c *CPU, v uint8) { c.X = v; c.P.checkNZ(v) }},
	LDY: {kind: kindRead, modes: modes(Immediate, ZeroPage, ZeroPageX, Absolute, AbsoluteX), read: func(c *CPU, v uint8) { c.Y = v; c.P.checkNZ(v) }},
	LSR: {kind: kindRMW, modes: shiftModes, rmw: lsr},
	NOP: impliedOp(func(*CPU) {}),
	ORA: {kind: kindRead, modes: aluModes, read: ora},
	PHA: {kind: kindControl, modes: implied},
	PHP: {kind: kindControl, modes: implied},
	PLA: {kind: kindControl, modes: implied},
	PLP: {kind: kindControl, modes: implied},
	ROL: {kind: kindRMW, modes: shiftModes, rmw: rol},
	ROR: {kind: kindRMW, modes: shiftModes, rmw: ror},
	RTI: {kind: kindControl, modes: implied},
	RTS: {kind: kindControl, modes: implied},
	SBC: {kind: kindRead, modes: aluModes, read: sbc},
	SEC: impliedOp(func(c *CPU) { c.P.set(Carry, true) }),
	SED: impliedOp(func(c *CPU) { c.P.set(Decimal, true) }),
	SEI: impliedOp(func(c *CPU) { c.P.set(Interrupt, true) }),
	STA: {kind: kindWrite, modes: staModes, write: func(c *CPU) uint8 { return c.A }},
	STX: {kind: kindWrite, modes: modes(ZeroPage, ZeroPageY, Absolute), write: func(c *CPU) uint8 { return c.X }},
	STY: {kind: kindWrite, modes: modes(ZeroPage, ZeroPageX, Absolute), write: func(c *CPU) uint8 { return c.Y }},
	TAX: impliedOp(func(c *CPU) { c.X = c.A; c.P.checkNZ(c.X) }),
	TAY: impliedOp(func(c *CPU) { c.Y = c.A; c.P.checkNZ(c.Y) }),
	TSX: impliedOp(func(c *CPU) { c.X = c.SP; c.P.checkNZ(c.X) }),
	TXA: impliedOp(func(c *CPU) { c.A = c.X; c.P.checkNZ(c.A) }),
	TXS: impliedOp(func(c *CPU) { c.SP = c.X }),
	TYA: impliedOp(func(c *CPU) { c.A = c.Y; c.P.checkNZ(c.A) }),
}

// add with carry. The 2A03 has no decimal mode.
func adc(c *CPU, val uint8) {
	sum := uint16(c.A) + uint16(val) + uint16(c.P.carry())
	c.P.checkCV(c.A, val, sum)
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
}

// subtract with borrow, that is, add the one's complement.
func sbc(c *CPU, val uint8) {
	adc(c, ^val)
}

func and(c *CPU, val uint8) {
	c.A &= val
	c.P.checkNZ(c.A)
}

func ora(c *CPU, val uint8) {
	c.A |= val
	c.P.checkNZ(c.A)
}

func eor(c *CPU, val uint8) {
	c.A ^= val
	c.P.checkNZ(c.A)
}

func bit(c *CPU, val uint8) {
	c.P.set(Zero, c.A&val == 0)
	c.P.set(Overflow, val&0x40 != 0)
	c.P.set(Negative, val&0x80 != 0)
}

func (c *CPU) compare(reg, val uint8) {
	c.P.set(Carry, reg >= val)
	c.P.checkNZ(reg - val)
}

func asl(c *CPU, val uint8) uint8 {
	c.P.set(Carry, val&0x80 != 0)
	val <<= 1
	c.P.checkNZ(val)
	return val
}

func lsr(c *CPU, val uint8) uint8 {
	c.P.set(Carry, val&0x01 != 0)
	val >>= 1
	c.P.checkNZ(val)
	return val
}

func rol(c *CPU, val uint8) uint8 {
	carry := c.P.carry()
	c.P.set(Carry, val&0x80 != 0)
	val = val<<1 | carry
	c.P.checkNZ(val)
	return val
}

func ror(c *CPU, val uint8) uint8 {
	carry := c.P.carry()
	c.P.set(Carry, val&0x01 != 0)
	val = val>>1 | carry<<7
	c.P.checkNZ(val)
	return val
}

func inc(c *CPU, val uint8) uint8 {
	val++
	c.P.checkNZ(val)
	return val
}

func dec(c *CPU, val uint8) uint8 {
	val--
	c.P.checkNZ(val)
	return val
}
