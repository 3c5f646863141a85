package hw

//go:generate go tool stringer -type=Instr,AddrMode -output=decode_string.go

// Instr is a documented 6502 instruction.
type Instr uint8

const (
	ADC Instr = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

const numInstrs = int(TYA) + 1

// AddrMode is the way an instruction computes its operand.
type AddrMode uint8

const (
	Implied AddrMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
	Indirect        // JMP only
	Relative        // branches only
)

const numAddrModes = int(Relative) + 1

// empty slots in the group tables.
const (
	noInstr = 0xFF
	noMode  = 0xFF
)

// modeSet is a set of addressing modes.
type modeSet uint16

func modes(ms ...AddrMode) modeSet {
	var s modeSet
	for _, m := range ms {
		s |= 1 << m
	}
	return s
}

func (s modeSet) has(m AddrMode) bool {
	return int(m) < numAddrModes && s&(1<<m) != 0
}

// Opcodes are laid out as aaabbbcc: cc selects a group, aaa the instruction
// within the group and bbb the addressing mode. Opcodes that do not follow the
// group layout are matched first against fixed patterns.
var (
	// 0aa00000
	ctrlInstrs = [4]Instr{BRK, JSR, RTI, RTS}
	// xxx01000
	stackInstrs = [8]Instr{PHP, PLP, PHA, PLA, DEY, TAY, INY, INX}
	// xxx11000
	flagInstrs = [8]Instr{CLC, SEC, CLI, SEI, TYA, CLV, CLD, SED}
	// xxy10000: xx selects the flag, y the expected value.
	branchInstrs = [8]Instr{BPL, BMI, BVC, BVS, BCC, BCS, BNE, BEQ}
	// 1aa01010
	regInstrs = [4]Instr{TXA, TAX, DEX, NOP}
	// 10a11010
	spInstrs = [2]Instr{TXS, TSX}

	// cc = 01
	group1Instrs = [8]Instr{ORA, AND, EOR, ADC, STA, LDA, CMP, SBC}
	group1Modes  = [8]AddrMode{IndexedIndirect, ZeroPage, Immediate, Absolute, IndirectIndexed, ZeroPageX, AbsoluteY, AbsoluteX}

	// cc = 10
	group2Instrs = [8]Instr{ASL, ROL, LSR, ROR, STX, LDX, DEC, INC}
	group2Modes  = [8]AddrMode{Immediate, ZeroPage, Accumulator, Absolute, noMode, ZeroPageX, noMode, AbsoluteX}

	// cc = 00
	group0Instrs = [8]Instr{noInstr, BIT, JMP, JMP, STY, LDY, CPY, CPX}
	group0Modes  = [8]AddrMode{Immediate, ZeroPage, noMode, Absolute, noMode, ZeroPageX, noMode, AbsoluteX}
)

// Decode classifies an opcode byte. The returned error, an *OpcodeError, is
// non-nil for undocumented opcodes.
func Decode(opcode uint8) (Instr, AddrMode, error) {
	instr, mode, err := decode(opcode)
	// A nil *OpcodeError must not become a non-nil error.
	if err != nil {
		return instr, mode, err
	}
	return instr, mode, nil
}

func decode(op uint8) (Instr, AddrMode, *OpcodeError) {
	aaa := op >> 5
	bbb := (op >> 2) & 0x07

	switch {
	case op&0x9F == 0x00:
		instr := ctrlInstrs[aaa&0x03]
		if instr == JSR {
			return instr, Absolute, nil
		}
		return instr, Implied, nil
	case op&0x1F == 0x08:
		return stackInstrs[aaa], Implied, nil
	case op&0x1F == 0x18:
		return flagInstrs[aaa], Implied, nil
	case op&0x1F == 0x10:
		return branchInstrs[aaa], Relative, nil
	case op&0x9F == 0x8A:
		return regInstrs[aaa&0x03], Implied, nil
	case op&0xDF == 0x9A:
		return spInstrs[aaa&0x01], Implied, nil
	}

	var (
		instr Instr
		mode  AddrMode
	)
	switch op & 0x03 {
	case 0x01:
		instr, mode = group1Instrs[aaa], group1Modes[bbb]
	case 0x02:
		instr, mode = group2Instrs[aaa], group2Modes[bbb]
		if instr == STX || instr == LDX {
			switch mode {
			case ZeroPageX:
				mode = ZeroPageY
			case AbsoluteX:
				mode = AbsoluteY
			}
		}
	case 0x00:
		instr, mode = group0Instrs[aaa], group0Modes[bbb]
		if op == 0x6C {
			mode = Indirect
		}
	default:
		return 0, 0, &OpcodeError{Opcode: op, Err: ErrUnknownOpcode}
	}

	if instr == noInstr || mode == noMode {
		return 0, 0, &OpcodeError{Opcode: op, Err: ErrUnknownOpcode}
	}
	if !instrs[instr].modes.has(mode) {
		return instr, mode, &OpcodeError{Opcode: op, Instr: instr, Mode: mode, Err: ErrModeMismatch}
	}
	return instr, mode, nil
}

// OperandSize returns the number of operand bytes following the opcode.
func (m AddrMode) OperandSize() int {
	switch m {
	case Implied, Accumulator:
		return 0
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	}
	return 1
}
