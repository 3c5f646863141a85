package cputest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/google/go-cmp/cmp"

	"nescore/hw"
)

func loadCases(t *testing.T, name string) []Case {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cases, err := Parse(f)
	if err != nil {
		t.Fatal(err)
	}
	return cases
}

func TestParse(t *testing.T) {
	cases := loadCases(t, "85.json")

	want := []Case{{
		Name: "85 10",
		Initial: State{
			PC: 0x0200, S: 0xFD, A: 0x5A, P: 0x24,
			RAM: []Cell{{0x0200, 0x85}, {0x0201, 0x10}, {0x0010, 0x00}},
		},
		Final: State{
			PC: 0x0202, S: 0xFD, A: 0x5A, P: 0x24,
			RAM: []Cell{{0x0200, 0x85}, {0x0201, 0x10}, {0x0010, 0x5A}},
		},
		Cycles: []Cycle{
			{0x0200, 0x85, hw.BusRead},
			{0x0201, 0x10, hw.BusRead},
			{0x0010, 0x5A, hw.BusWrite},
		},
	}}
	if diff := cmp.Diff(want, cases); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		`{}`,
		`[{"name": 12}]`,
		`[{"initial": {"a": 300}}]`,
		`[{"initial": {"pc": 70000}}]`,
		`[{"final": {"s": -1}}]`,
		`[{"initial": {"ram": [[65536, 0]]}}]`,
		`[{"cycles": [[16, 256, "read"]]}]`,
		`[{"initial": {"ram": [[1, 2, 3]]}}]`,
		`[{"cycles": [[1, 2, "fetch"]]}]`,
		`[{"cycles": [[1, 2, "read", 4]]}]`,
		`[{"name": "unterminated"`,
	}
	for _, tt := range tests {
		if _, err := Parse(strings.NewReader(tt)); err == nil {
			t.Errorf("Parse(%s): got nil error", tt)
		}
	}
}

func TestParseLimits(t *testing.T) {
	const in = `[{"name": "limits",
		"initial": {"pc": 65535, "s": 255, "a": 0, "x": 255, "y": 1, "p": 255, "ram": [[65535, 255]]},
		"final": {"pc": 0},
		"cycles": [[65535, 255, "write"]]}]`

	cases, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []Case{{
		Name: "limits",
		Initial: State{
			PC: 0xFFFF, S: 0xFF, X: 0xFF, Y: 1, P: 0xFF,
			RAM: []Cell{{0xFFFF, 0xFF}},
		},
		Cycles: []Cycle{{0xFFFF, 0xFF, hw.BusWrite}},
	}}
	if diff := cmp.Diff(want, cases); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestRun(t *testing.T) {
	for _, name := range []string{"a9.json", "85.json"} {
		for _, c := range loadCases(t, name) {
			t.Run(c.Name, func(t *testing.T) {
				if err := Run(c); err != nil {
					t.Error(err)
				}
			})
		}
	}
}

func TestRunMismatch(t *testing.T) {
	c := loadCases(t, "85.json")[0]
	c.Final.A = 0x43
	c.Cycles[2].Val = 0x43

	err := Run(c)
	var mismatch *Mismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("got %v, want a *Mismatch", err)
	}
	if mismatch.Name != "85 10" {
		t.Errorf("Name = %q", mismatch.Name)
	}
	for _, want := range []string{"A:", "Val:"} {
		if !strings.Contains(mismatch.Diff, want) {
			t.Errorf("diff lacks %q:\n%s", want, mismatch.Diff)
		}
	}
}

func TestRunUnknownOpcode(t *testing.T) {
	c := loadCases(t, "03.json")[0]
	if err := Run(c); !errors.Is(err, hw.ErrUnknownOpcode) {
		t.Errorf("got %v, want %v", err, hw.ErrUnknownOpcode)
	}
}

func TestRunDir(t *testing.T) {
	reports, err := RunDir(context.Background(), "testdata", 2)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, r := range reports {
		got = append(got, r.String())
	}
	want := []string{
		"03.json: skipped",
		"85.json: ok (1 cases)",
		"a9.json: ok (2 cases)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reports mismatch (-want +got):\n%s", diff)
	}

	if _, err := RunDir(context.Background(), t.TempDir(), 2); err == nil {
		t.Errorf("empty directory: got nil error")
	}
}

func TestRunFileFailures(t *testing.T) {
	c := `[` + strings.Repeat(`{"name": "bad", "initial": {"pc": 0, "ram": [[0, 234]]}, "final": {"pc": 0}, "cycles": []},`, 4)
	c = strings.TrimSuffix(c, ",") + `]`

	path := filepath.Join(t.TempDir(), "ea.json")
	if err := os.WriteFile(path, []byte(c), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := RunFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if r.Total != 4 || r.Failed != 4 || len(r.Errors) != maxReportedErrors {
		t.Errorf("got %d/%d failed, %d errors", r.Failed, r.Total, len(r.Errors))
	}
	if got := r.String(); got != "ea.json: FAIL (4/4 failed)" {
		t.Errorf("String() = %q", got)
	}
}
