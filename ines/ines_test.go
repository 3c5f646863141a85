package ines

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-faster/errors"

	"nescore/emu/log"
)

// buildRom returns an iNES image with the given header bytes 6 to 10.
func buildRom(prg, chr int, flags ...byte) []byte {
	hdr := make([]byte, headerSize)
	copy(hdr, Magic)
	hdr[4] = byte(prg)
	hdr[5] = byte(chr)
	copy(hdr[6:], flags)

	buf := bytes.NewBuffer(hdr)
	if len(flags) > 0 && flags[0]&0x04 != 0 {
		buf.Write(make([]byte, trainerSize))
	}
	p := make([]byte, prg*prgUnit)
	for i := range p {
		p[i] = byte(i / prgUnit)
	}
	buf.Write(p)
	buf.Write(bytes.Repeat([]byte{0xCC}, chr*chrUnit))
	return buf.Bytes()
}

func TestReadFrom(t *testing.T) {
	raw := buildRom(2, 1, 0x21, 0x00)

	var rom Rom
	n, err := rom.ReadFrom(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(raw)) {
		t.Errorf("read %d bytes, want %d", n, len(raw))
	}
	if len(rom.PRGROM) != 0x8000 || len(rom.CHRROM) != 0x2000 {
		t.Errorf("PRG=%d CHR=%d", len(rom.PRGROM), len(rom.CHRROM))
	}
	if rom.PRGROM[0x4000] != 1 || rom.CHRROM[0] != 0xCC {
		t.Errorf("wrong section content")
	}
	if got := rom.Mapper(); got != 2 {
		t.Errorf("Mapper() = %d, want 2", got)
	}
	if got := rom.Mirroring(); got != VertMirroring {
		t.Errorf("Mirroring() = %v, want %v", got, VertMirroring)
	}
	if rom.IsNES20() || rom.HasTrainer() {
		t.Errorf("unexpected header flags")
	}
	if got := rom.PRGRAMSize(); got != 0x2000 {
		t.Errorf("PRGRAMSize() = %d, want 8192", got)
	}
}

func TestReadFromTrainer(t *testing.T) {
	raw := buildRom(1, 0, 0x04)

	var rom Rom
	if _, err := rom.ReadFrom(bytes.NewReader(raw)); err != nil {
		t.Fatal(err)
	}
	if len(rom.Trainer) != trainerSize {
		t.Errorf("trainer size = %d", len(rom.Trainer))
	}
	if len(rom.PRGROM) != prgUnit || rom.PRGROM[0] != 0 {
		t.Errorf("PRG section misplaced")
	}
}

func TestNES20Header(t *testing.T) {
	// mapper 0x123, submapper 5, 8KiB PRG-RAM (64<<7).
	raw := buildRom(1, 1, 0x38, 0x28, 0x51, 0x00, 0x07)

	var rom Rom
	if _, err := rom.ReadFrom(bytes.NewReader(raw)); err != nil {
		t.Fatal(err)
	}
	if !rom.IsNES20() {
		t.Fatal("IsNES20() = false")
	}
	if got := rom.Mapper(); got != 0x123 {
		t.Errorf("Mapper() = %#x, want 0x123", got)
	}
	if got := rom.SubMapper(); got != 5 {
		t.Errorf("SubMapper() = %d, want 5", got)
	}
	if got := rom.PRGRAMSize(); got != 0x2000 {
		t.Errorf("PRGRAMSize() = %d, want 8192", got)
	}
	if got := rom.Mirroring(); got != FourScreen {
		t.Errorf("Mirroring() = %v, want %v", got, FourScreen)
	}
}

func TestReadFromErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{"short header", []byte("NES\x1a\x01"), ErrTruncated},
		{"bad magic", append([]byte("NEZ\x1a"), make([]byte, 12)...), ErrMagic},
		{"no PRG", buildRom(0, 1), ErrNoPRGBanks},
		{"truncated PRG", buildRom(2, 0)[:headerSize+0x5000], ErrTruncated},
		{"truncated CHR", buildRom(1, 1)[:headerSize+prgUnit+10], ErrTruncated},
		{"truncated trainer", buildRom(1, 0, 0x04)[:headerSize+100], ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rom Rom
			_, err := rom.ReadFrom(bytes.NewReader(tt.raw))
			if !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadRom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nes")
	if err := os.WriteFile(path, buildRom(1, 1), 0o644); err != nil {
		t.Fatal(err)
	}

	rom, err := ReadRom(path)
	if err != nil {
		t.Fatal(err)
	}

	buf := &strings.Builder{}
	rom.PrintInfos(buf)
	for _, want := range []string{"format     iNES", "mapper     0", "PRG-ROM    16 KiB", "mirroring  horizontal"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("PrintInfos output lacks %q:\n%s", want, buf)
		}
	}

	if _, err := ReadRom(filepath.Join(t.TempDir(), "missing.nes")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want a not exist error", err)
	}
}

func TestReadFromLog(t *testing.T) {
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.EnableDebugModules(log.ModRom.Mask())
	t.Cleanup(func() {
		log.DisableDebugModules(log.ModRom.Mask())
		log.SetOutput(os.Stderr)
	})

	var rom Rom
	if _, err := rom.ReadFrom(bytes.NewReader(buildRom(2, 1))); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"rom loaded", "_mod=rom", "prgrom=32768", "chrrom=8192"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q lacks %q", out, want)
		}
	}
}
