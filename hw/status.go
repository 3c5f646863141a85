package hw

// P is the processor status register. Flags are bits of the same byte, so
// the combined and per-flag views always agree.
type P uint8

const (
	Carry P = 1 << iota
	Zero
	Interrupt
	Decimal
	Break
	Reserved
	Overflow
	Negative
)

func (p P) C() bool { return p&Carry != 0 }
func (p P) Z() bool { return p&Zero != 0 }
func (p P) I() bool { return p&Interrupt != 0 }
func (p P) D() bool { return p&Decimal != 0 }
func (p P) B() bool { return p&Break != 0 }
func (p P) U() bool { return p&Reserved != 0 }
func (p P) V() bool { return p&Overflow != 0 }
func (p P) N() bool { return p&Negative != 0 }

func (p *P) set(flags P, v bool) {
	if v {
		*p |= flags
	} else {
		*p &^= flags
	}
}

// carry returns the carry flag as a number.
func (p P) carry() uint8 {
	return uint8(p & Carry)
}

func (p *P) checkNZ(v uint8) {
	p.set(Negative, v&0x80 != 0)
	p.set(Zero, v == 0)
}

func (p *P) checkCV(x, y uint8, sum uint16) {
	// forward carry or unsigned overflow.
	p.set(Carry, sum > 0xFF)

	// signed overflow, can only happen if the sign of the sum differs
	// from that of both operands.
	v := (uint16(x) ^ sum) & (uint16(y) ^ sum) & 0x80
	p.set(Overflow, v != 0)
}

// pull replaces p with a value pulled from the stack. The break and reserved
// bits do not exist in the register and are kept.
func (p *P) pull(v uint8) {
	const mask = Break | Reserved
	*p = (*p & mask) | (P(v) &^ mask)
}

func (p P) String() string {
	const bits = "nvubdizcNVUBDIZC"

	s := make([]byte, 8)
	for i := 0; i < 8; i++ {
		ibit := (uint8(p) & (1 << (7 - i))) >> (7 - i)
		s[i] = bits[i+int(8*ibit)]
	}
	return string(s)
}
