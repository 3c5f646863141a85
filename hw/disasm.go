package hw

import (
	"fmt"
)

type DisasmOp struct {
	Opcode string
	Oper   string
	Buf    []byte
	PC     uint16
}

func (d DisasmOp) String() string {
	return string(d.Bytes())
}

// Bytes returns the string representation of a DisasmOp, this is optimized
// version, suitable for the execution tracer.
func (d DisasmOp) Bytes() []byte {
	const totalLen = 48
	buf := make([]byte, totalLen)

	hexEncode(buf[0:], byte(d.PC>>8))
	hexEncode(buf[2:], byte(d.PC))
	buf[4] = ' '
	buf[5] = ' '

	off := 6
	for i := range d.Buf {
		hexEncode(buf[off:], d.Buf[i])
		buf[off+2] = ' '
		off += 3
	}

	for ; off < 16; off++ {
		buf[off] = ' '
	}

	off += copy(buf[off:], d.Opcode)
	buf[off] = ' '
	off++

	buf = append(buf[:off], d.Oper...)
	off += len(d.Oper)
	if len(buf) > totalLen {
		buf = append(buf, ' ')
	} else {
		buf = buf[:totalLen]
		for i := off; i < totalLen; i++ {
			buf[i] = ' '
		}
	}

	return buf
}

// Disasm disassembles the instruction at pc. It does not modify the bus
// state.
func (c *CPU) Disasm(pc uint16) DisasmOp {
	opcode := c.Bus.Peek(pc)
	instr, mode, err := decode(opcode)
	if err != nil {
		return DisasmOp{
			PC:     pc,
			Buf:    []byte{opcode},
			Opcode: "???",
			Oper:   fmt.Sprintf("$%02X", opcode),
		}
	}

	n := mode.OperandSize()
	op := DisasmOp{
		PC:     pc,
		Buf:    make([]byte, 1+n),
		Opcode: instr.String(),
	}
	op.Buf[0] = opcode
	for i := 1; i <= n; i++ {
		op.Buf[i] = c.Bus.Peek(pc + uint16(i))
	}

	var oper16 uint16
	if n == 2 {
		oper16 = uint16(op.Buf[2])<<8 | uint16(op.Buf[1])
	}

	switch mode {
	case Implied:
	case Accumulator:
		op.Oper = "A"
	case Immediate:
		op.Oper = fmt.Sprintf("#$%02X", op.Buf[1])
	case ZeroPage:
		op.Oper = fmt.Sprintf("$%02X", op.Buf[1])
	case ZeroPageX:
		op.Oper = fmt.Sprintf("$%02X,X", op.Buf[1])
	case ZeroPageY:
		op.Oper = fmt.Sprintf("$%02X,Y", op.Buf[1])
	case Absolute:
		op.Oper = formatAddr(oper16)
	case AbsoluteX:
		op.Oper = formatAddr(oper16) + ",X"
	case AbsoluteY:
		op.Oper = formatAddr(oper16) + ",Y"
	case IndexedIndirect:
		op.Oper = fmt.Sprintf("($%02X,X)", op.Buf[1])
	case IndirectIndexed:
		op.Oper = fmt.Sprintf("($%02X),Y", op.Buf[1])
	case Indirect:
		op.Oper = fmt.Sprintf("($%04X)", oper16)
	case Relative:
		op.Oper = fmt.Sprintf("$%04X", pc+2+uint16(int8(op.Buf[1])))
	}
	return op
}

var addressLabels = map[uint16]string{
	0x2000: "PpuControl_2000",
	0x2001: "PpuMask_2001",
	0x2002: "PpuStatus_2002",
	0x2003: "OamAddr_2003",
	0x2004: "OamData_2004",
	0x2005: "PpuScroll_2005",
	0x2006: "PpuAddr_2006",
	0x2007: "PpuData_2007",
	0x4014: "SpriteDma_4014",
	0x4015: "ApuStatus_4015",
	0x4016: "Ctrl1_4016",
	0x4017: "Ctrl2_FrameCtr_4017",
}

func formatAddr(addr uint16) string {
	if label, ok := addressLabels[addr]; ok {
		return label
	}
	return fmt.Sprintf("$%04X", addr)
}
