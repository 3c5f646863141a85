package cputest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/hw/hwio"
)

// The longest documented instruction (or interrupt sequence) takes 7 cycles.
const maxCycles = 8

// The B and U bits are not stored in the status register: they only exist
// on the stack.
const pMask = ^uint8(hw.Break | hw.Reserved)

// Mismatch is returned by Run when the CPU does not behave as expected.
type Mismatch struct {
	Name string
	Diff string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s: mismatch (-want +got):\n%s", m.Name, m.Diff)
}

// Run executes the single instruction of c on a CPU connected to a flat 64KB
// RAM. It returns a *Mismatch if the final state or the bus activity differ
// from the expectations.
func Run(c Case) error {
	ram := make([]byte, 0x10000)
	for _, cell := range c.Initial.RAM {
		ram[cell.Addr] = cell.Val
	}
	tbl := hwio.NewTable("cputest")
	tbl.MapMemorySlice(0x0000, 0xFFFF, ram, false)

	cpu := hw.NewCPU(tbl)
	cpu.PC = c.Initial.PC
	cpu.SP = c.Initial.S
	cpu.A = c.Initial.A
	cpu.X = c.Initial.X
	cpu.Y = c.Initial.Y
	cpu.P = hw.P(c.Initial.P)

	var cycles []Cycle
	for {
		if err := cpu.Step(); err != nil {
			return errors.Wrap(err, c.Name)
		}
		cycles = append(cycles, Cycle{cpu.Bus.Addr, cpu.Bus.Data, cpu.Bus.Op})
		if cpu.AtInstructionBoundary() {
			break
		}
		if len(cycles) > maxCycles {
			return errors.Errorf("%s: no instruction boundary after %d cycles", c.Name, len(cycles))
		}
	}

	got := State{
		PC:  cpu.PC,
		S:   cpu.SP,
		A:   cpu.A,
		X:   cpu.X,
		Y:   cpu.Y,
		P:   uint8(cpu.P) & pMask,
		RAM: make([]Cell, len(c.Final.RAM)),
	}
	for i, cell := range c.Final.RAM {
		got.RAM[i] = Cell{cell.Addr, ram[cell.Addr]}
	}
	want := c.Final
	want.P &= pMask

	diff := cmp.Diff(want, got)
	diff += cmp.Diff(c.Cycles, cycles)
	if diff != "" {
		return &Mismatch{Name: c.Name, Diff: diff}
	}
	return nil
}

// Report summarizes the results of a test vector file.
type Report struct {
	File   string
	Total  int
	Failed int
	Errors []error // first failures

	// Skipped is set when the file tests an opcode the CPU does not
	// implement.
	Skipped bool
}

const maxReportedErrors = 3

func (r *Report) String() string {
	switch {
	case r.Skipped:
		return fmt.Sprintf("%s: skipped", filepath.Base(r.File))
	case r.Failed == 0:
		return fmt.Sprintf("%s: ok (%d cases)", filepath.Base(r.File), r.Total)
	}
	return fmt.Sprintf("%s: FAIL (%d/%d failed)", filepath.Base(r.File), r.Failed, r.Total)
}

// RunFile runs all the test cases of a file.
func RunFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cases, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	r := &Report{File: path}
	for _, c := range cases {
		err := Run(c)
		if errors.Is(err, hw.ErrUnknownOpcode) || errors.Is(err, hw.ErrModeMismatch) {
			r.Skipped = true
			r.Total, r.Failed, r.Errors = 0, 0, nil
			break
		}
		r.Total++
		if err != nil {
			r.Failed++
			if len(r.Errors) < maxReportedErrors {
				r.Errors = append(r.Errors, err)
			}
		}
	}

	log.ModVerify.DebugZ("ran test file").
		String("file", filepath.Base(path)).
		Int("total", r.Total).
		Int("failed", r.Failed).
		Bool("skipped", r.Skipped).
		End()
	return r, nil
}

// RunDir runs all the JSON test files in dir, on at most jobs goroutines.
// Reports are in file name order.
func RunDir(ctx context.Context, dir string, jobs int) ([]*Report, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.Errorf("no test files in %s", dir)
	}

	reports := make([]*Report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := RunFile(path)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
