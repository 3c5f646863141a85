package hw

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nescore/hw/hwio"
)

/* cpu specific testing helpers */

func wantMem8(t *testing.T, cpu *CPU, addr uint16, want uint8) {
	t.Helper()

	if got := cpu.Bus.Peek(addr); got != want {
		t.Errorf("$%04X = %02X want %02X", addr, got, want)
	}
}

func wantMem(t *testing.T, cpu *CPU, dl dumpline) {
	t.Helper()

	mem := []byte{}
	for i := range dl.bytes {
		mem = append(mem, cpu.Bus.Peek(dl.off+uint16(i)))
	}

	if !bytes.Equal(mem, dl.bytes) {
		t.Errorf("mem mismatch at 0x%04x.\ngot: % x\nwant:% x", dl.off, mem, dl.bytes)
	}
}

func b2i(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// runAndCheckState runs the cpu for ncycles then checks its state. states is
// a list of name/value pairs, names being registers (A X Y SP PC P), flag
// combinations (Pnz, Pc...) or "mem" followed by a memory dump.
func runAndCheckState(t *testing.T, cpu *CPU, ncycles int64, states ...any) {
	t.Helper()

	if len(states)%2 != 0 {
		panic("odd number of states")
	}

	checkbool := func(name string, got, want uint8) {
		t.Helper()
		if got != want {
			t.Errorf("got %s=%d, want %d", name, got, want)
		}
	}
	checkuint8 := func(name string, got, want uint8) {
		t.Helper()
		if got != want {
			t.Errorf("got %s=$%02X, want $%02X", name, got, want)
		}
	}
	checkuint16 := func(name string, got, want uint16) {
		t.Helper()
		if got != want {
			t.Errorf("got %s=$%04X, want $%04X", name, got, want)
		}
	}

	if testing.Verbose() {
		cpu.SetTraceOutput(tbwriter{t})
		defer cpu.SetTraceOutput(nil)
	}

	if err := cpu.Run(ncycles); err != nil {
		t.Fatalf("Run(%d): %v", ncycles, err)
	}

	for i := 0; i < len(states); i += 2 {
		s := states[i].(string)
		switch {
		case s == "A":
			checkuint8("A", cpu.A, states[i+1].(uint8))
		case s == "X":
			checkuint8("X", cpu.X, states[i+1].(uint8))
		case s == "Y":
			checkuint8("Y", cpu.Y, states[i+1].(uint8))
		case s == "PC":
			checkuint16("PC", cpu.PC, states[i+1].(uint16))
		case s == "SP":
			checkuint8("SP", cpu.SP, states[i+1].(uint8))
		case s == "P":
			if got, want := uint8(cpu.P), states[i+1].(uint8); got != want {
				t.Errorf("got P=$%02X(%s), want $%02X(%s)", got, P(got), want, P(want))
			}
		case len(s) > 1 && s[0] == 'P':
			for j := 1; j < len(s); j++ {
				bit := states[i+1].(uint8)
				switch s[j] {
				case 'n':
					checkbool("Pn", b2i(cpu.P.N()), bit)
				case 'v':
					checkbool("Pv", b2i(cpu.P.V()), bit)
				case 'b':
					checkbool("Pb", b2i(cpu.P.B()), bit)
				case 'd':
					checkbool("Pd", b2i(cpu.P.D()), bit)
				case 'i':
					checkbool("Pi", b2i(cpu.P.I()), bit)
				case 'z':
					checkbool("Pz", b2i(cpu.P.Z()), bit)
				case 'c':
					checkbool("Pc", b2i(cpu.P.C()), bit)
				default:
					panic("unknown P bit: " + string(s[j]))
				}
			}
		case s == "mem":
			lines := loadDump(t, states[i+1].(string))
			for _, line := range lines {
				wantMem(t, cpu, line)
			}

		default:
			panic("unknown state: " + s)
		}
	}

	if t.Failed() {
		t.FailNow()
	}
}

type dumpline struct {
	off   uint16
	bytes []byte
}

// loadDump parses lines of the form "0600: a9 01 8d".
func loadDump(tb testing.TB, dump string) []dumpline {
	tb.Helper()

	var lines []dumpline
	scan := bufio.NewScanner(strings.NewReader(dump))
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		off, octets, ok := strings.Cut(line, ":")
		if !ok {
			tb.Fatalf("malformed line: %s", line)
		}

		ioff, err := strconv.ParseUint(off, 16, 16)
		if err != nil {
			tb.Fatalf("malformed offset %s: %s", off, err)
		}
		buf, err := hex.DecodeString(strings.ReplaceAll(octets, " ", ""))
		if err != nil {
			tb.Fatalf("hex decode: %s", err)
		}
		lines = append(lines, dumpline{off: uint16(ioff), bytes: buf})
	}
	if scan.Err() != nil {
		tb.Fatalf("scan error: %s", scan.Err())
	}

	return lines
}

// loadCPUWith loads a CPU with a memory dump, over a flat 64KB RAM, then
// resets it.
func loadCPUWith(tb testing.TB, dump string) *CPU {
	tb.Helper()

	ram := make([]byte, 0x10000)
	for _, line := range loadDump(tb, dump) {
		copy(ram[line.off:], line.bytes)
	}
	tbl := hwio.NewTable("cpu")
	tbl.MapMemorySlice(0x0000, 0xFFFF, ram, false)

	cpu := NewCPU(tbl)
	cpu.Reset()
	return cpu
}

type tbwriter struct {
	testing.TB
}

func (t tbwriter) Write(p []byte) (int, error) {
	t.TB.Helper()
	t.TB.Log(string(bytes.TrimSpace((p))))
	return len(p), nil
}

/* bus traces */

type busCycle struct {
	Addr uint16
	Data uint8
	Op   BusOp
}

func (bc busCycle) String() string {
	return fmt.Sprintf("%s %04X %02X", bc.Op, bc.Addr, bc.Data)
}

func rd(addr uint16, data uint8) busCycle { return busCycle{addr, data, BusRead} }
func wr(addr uint16, data uint8) busCycle { return busCycle{addr, data, BusWrite} }

// stepInstr runs the cpu until the next instruction boundary and returns the
// bus activity of each cycle.
func stepInstr(tb testing.TB, cpu *CPU) []busCycle {
	tb.Helper()

	var cycles []busCycle
	for {
		if err := cpu.Step(); err != nil {
			tb.Fatalf("Step: %v", err)
		}
		cycles = append(cycles, busCycle{cpu.Bus.Addr, cpu.Bus.Data, cpu.Bus.Op})
		if cpu.AtInstructionBoundary() {
			return cycles
		}
		if len(cycles) > 8 {
			tb.Fatalf("no instruction boundary after %d cycles (state %v)", len(cycles), cpu.state)
		}
	}
}

func wantBusCycles(t *testing.T, got, want []busCycle) {
	t.Helper()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bus cycles mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDump(t *testing.T) {
	tests := []struct {
		dump string
		want []dumpline
	}{
		{
			dump: `01f0: 0f 0e 0d`,
			want: []dumpline{
				{0x01f0, []byte{0x0f, 0x0e, 0x0d}},
			},
		},
		{
			dump: `
01f0: 0f 0e 0d 0c 0b 0a 09 08 07 06 05 04 03 02 01 00
# comment
0210: 0f 0e
`,
			want: []dumpline{
				{0x01f0, []byte{0x0f, 0x0e, 0x0d, 0x0c, 0x0b, 0x0a, 0x09, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, 0x00}},
				{0x0210, []byte{0x0f, 0x0e}},
			},
		},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			got := loadDump(t, tt.dump)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(dumpline{})); diff != "" {
				t.Fatalf("loadDump mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
