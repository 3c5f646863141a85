package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"nescore/emu/log"
)

type mode byte

const (
	runMode      mode = iota // Run a ROM for some cycles
	romInfosMode             // Show ROM infos
	verifyMode               // Run processor test vectors
	versionMode              // Show nescore version
)

type (
	CLI struct {
		Run      Run      `cmd:"" help:"Run ROM for a number of CPU cycles."`
		RomInfos RomInfos `cmd:"" help:"Show ROM infos." name:"rom-infos"`
		Verify   Verify   `cmd:"" help:"Run processor test vectors."`
		Version  Version  `cmd:"" help:"Show nescore version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		RomPath string   `arg:"" name:"/path/to/rom" help:"ROM to run." type:"existingfile"`
		Cycles  int64    `name:"cycles" help:"${cycles_help}" placeholder:"N"`
		Trace   *outfile `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
	}

	RomInfos struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
	}

	Verify struct {
		Dir  string `arg:"" name:"/path/to/tests" help:"${verify_help}" type:"existingdir"`
		Jobs int    `name:"jobs" short:"j" help:"Number of test files run concurrently." placeholder:"N"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"cycles_help": "Number of CPU cycles to run (default from config file).",
	"verify_help": "Directory containing the JSON test files, one per opcode.",
	"log_help":    "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("nescore"),
		kong.Description("Cycle-stepped NES CPU core."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch strings.Fields(ctx.Command())[0] {
	case "rom-infos":
		cfg.mode = romInfosMode
	case "verify":
		cfg.mode = verifyMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
	var strs []string
	for _, m := range log.ModuleNames() {
		strs = append(strs, "    - "+m)
	}

	fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	mask, nolog, err := parseLogModules(tok.Value.(string))
	if err != nil {
		return err
	}
	if nolog {
		log.Disable()
		return nil
	}
	log.EnableDebugModules(mask)
	return nil
}

func parseLogModules(list string) (mask log.ModuleMask, nolog bool, err error) {
	allLogs := false
	for _, v := range strings.Split(list, ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return 0, false, fmt.Errorf("unknown log module %s", v)
			}
			mask |= mod.Mask()
		}
	}

	if nolog {
		if allLogs {
			return 0, false, fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if mask != 0 {
			return 0, false, fmt.Errorf("cannot combine 'no' with other log modules")
		}
		return 0, true, nil
	}
	if allLogs {
		mask = log.ModuleMaskAll
	}
	return mask, false, nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	return f.open(tok.Value.(string))
}

func (f *outfile) open(name string) error {
	f.name = name
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n\t"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
