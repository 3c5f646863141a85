package log

import (
	"bytes"
	"strings"
	"testing"
)

type cpuCtx struct{}

func (cpuCtx) AddLogContext(e *EntryZ) { e.Hex16("pc", 0xC000) }

func TestModuleMask(t *testing.T) {
	defer DisableDebugModules(ModuleMaskAll)

	if ModCPU.DebugZ("x") != nil {
		t.Fatal("debug entry should be nil when module is disabled")
	}
	if ModCPU.WarnZ("x") == nil {
		t.Fatal("warnings are always enabled")
	}

	EnableDebugModules(ModCPU.Mask())
	if !ModCPU.Enabled(DebugLevel) {
		t.Errorf("cpu debug should be enabled")
	}
	if ModBus.Enabled(DebugLevel) {
		t.Errorf("bus debug should be disabled")
	}
}

func TestModuleByName(t *testing.T) {
	mod, ok := ModuleByName("mapper")
	if !ok || mod != ModMapper {
		t.Errorf("ModuleByName(mapper) = %v, %t", mod, ok)
	}
	if _, ok := ModuleByName("<error>"); ok {
		t.Errorf("<error> must not resolve to a module")
	}

	mod = NewModule("extra")
	if got, ok := ModuleByName("extra"); !ok || got != mod {
		t.Errorf("ModuleByName(extra) = %v, %t, want %v", got, ok, mod)
	}
}

func TestEntryZ(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	AddContext(cpuCtx{})
	defer RemoveContext(cpuCtx{})

	ModCPU.WarnZ("halted").Hex8("opcode", 0x02).Bool("fatal", true).End()

	out := buf.String()
	for _, want := range []string{"halted", "opcode=02", "fatal=true", "pc=c000", "_mod=cpu"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q lacks %q", out, want)
		}
	}

	// nil entries must be usable.
	var e *EntryZ
	e.String("k", "v").Int("n", 1).End()
}

func TestDisable(t *testing.T) {
	defer func() { disabled = false }()

	EnableDebugModules(ModEmu.Mask())
	Disable()
	if ModEmu.Enabled(DebugLevel) || ModEmu.Enabled(ErrorLevel) {
		t.Errorf("logs should be disabled")
	}
	if !ModEmu.Enabled(FatalLevel) {
		t.Errorf("fatal logs should stay enabled")
	}
}
