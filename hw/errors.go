package hw

import (
	"fmt"

	"github.com/go-faster/errors"
)

var (
	// ErrUnknownOpcode is returned for bytes matching no documented opcode.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrModeMismatch is returned when an opcode decodes to an instruction
	// that does not support the decoded addressing mode.
	ErrModeMismatch = errors.New("addressing mode not supported by instruction")
)

// OpcodeError is the fatal condition that halts the CPU.
type OpcodeError struct {
	Opcode uint8
	PC     uint16 // address of the opcode

	// Only meaningful for ErrModeMismatch.
	Instr Instr
	Mode  AddrMode

	Err error
}

func (e *OpcodeError) Error() string {
	if errors.Is(e.Err, ErrModeMismatch) {
		return fmt.Sprintf("%s %s at $%04X: opcode $%02X: %v", e.Instr, e.Mode, e.PC, e.Opcode, e.Err)
	}
	return fmt.Sprintf("opcode $%02X at $%04X: %v", e.Opcode, e.PC, e.Err)
}

func (e *OpcodeError) Unwrap() error { return e.Err }
