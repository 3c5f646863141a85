package emu

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nescore/emu/log"
)

func writeFile(tb testing.TB, path, content string) {
	tb.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[run]
cycles = 1000
trace = "stdout"

[log]
modules = ["cpu", "nope", "mapper"]

[unknown]
key = 1
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	want := Config{
		Run:    RunConfig{Cycles: 1000, Trace: "stdout"},
		Log:    LogConfig{Modules: []string{"cpu", "mapper"}},
		Verify: VerifyConfig{Jobs: runtime.NumCPU()},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if got, want := cfg.LogMask(), log.ModCPU.Mask()|log.ModMapper.Mask(); got != want {
		t.Errorf("LogMask() = %b, want %b", got, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[run]\ncycles = \"many\"\n")

	if _, err := LoadConfig(path); err == nil {
		t.Errorf("got nil error for invalid cycles")
	}
}

func TestConfigCheck(t *testing.T) {
	cfg := Config{
		Run:    RunConfig{Cycles: -5},
		Verify: VerifyConfig{Jobs: 0},
	}
	cfg.Check()

	if cfg.Run.Cycles != DefaultCycles || cfg.Verify.Jobs != runtime.NumCPU() {
		t.Errorf("Check() = %+v", cfg)
	}
}

func TestSaveAndLoadConfigOrDefault(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("relies on XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if diff := cmp.Diff(DefaultConfig(), LoadConfigOrDefault()); diff != "" {
		t.Errorf("missing file should give the default config:\n%s", diff)
	}

	cfg := DefaultConfig()
	cfg.Run.Trace = "trace.log"
	cfg.Verify.Jobs = 3
	if err := SaveConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, LoadConfigOrDefault()); diff != "" {
		t.Errorf("config mismatch (-saved +loaded):\n%s", diff)
	}
}
