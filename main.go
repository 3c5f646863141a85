package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"nescore/emu"
	"nescore/emu/log"
	"nescore/ines"
)

func main() {
	cfg := emu.LoadConfigOrDefault()
	log.EnableDebugModules(cfg.LogMask())

	args := parseArgs(os.Args[1:])

	switch args.mode {
	case runMode:
		runMain(args.Run, cfg)
	case romInfosMode:
		rom, err := ines.ReadRom(args.RomInfos.RomPath)
		checkf(err, "failed to open rom")
		rom.PrintInfos(os.Stdout)
	case verifyMode:
		verifyMain(args.Verify, cfg)
	case versionMode:
		printVersion()
	}
}

func printVersion() {
	version := "(devel)"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		version = bi.Main.Version
	}
	fmt.Println("nescore", version)
}
