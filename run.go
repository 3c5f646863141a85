package main

import (
	"fmt"

	"nescore/emu"
	"nescore/ines"
)

// runMain runs the rom for the number of cycles given on the command line, or
// in the config file.
func runMain(args Run, cfg emu.Config) {
	rom, err := ines.ReadRom(args.RomPath)
	checkf(err, "failed to open rom")

	m, err := emu.NewMachine(rom)
	checkf(err, "failed to start emulator")

	trace := args.Trace
	if trace == nil && cfg.Run.Trace != "" {
		trace = &outfile{}
		checkf(trace.open(cfg.Run.Trace), "failed to open trace output")
	}
	if trace != nil {
		m.SetTraceOutput(trace)
	}

	ncycles := cfg.Run.Cycles
	if args.Cycles > 0 {
		ncycles = args.Cycles
	}

	err = m.Run(ncycles)
	if trace != nil {
		trace.Close()
	}
	checkf(err, "emulation failed")
	fmt.Printf("ran %d cycles, PC=%04X\n", m.CPU.Cycles, m.CPU.PC)
}
