// package ines implements a reader for roms in the iNES file format, used for
// the distribution of NES binary programs. NES 2.0 headers are supported.
package ines

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/go-faster/errors"

	"nescore/emu/log"
)

const (
	headerSize  = 16
	trainerSize = 512
	prgUnit     = 0x4000 // 16 KiB
	chrUnit     = 0x2000 // 8 KiB
)

const Magic = "NES\x1a"

var (
	ErrMagic      = errors.New("invalid magic number")
	ErrTruncated  = errors.New("truncated rom")
	ErrNoPRGBanks = errors.New("rom has no PRG data")
)

type Rom struct {
	header
	Trainer []byte // Trainer, 512 bytes if present, or empty.
	PRGROM  []byte // PRGROM is PRG ROM data (length is multiple of 16 KiB)
	CHRROM  []byte // CHRROM is CHR ROM data (length is multiple of 8 KiB)
}

// ReadRom loads a rom from file.
func ReadRom(path string) (*Rom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rom := new(Rom)
	if _, err := rom.ReadFrom(f); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return rom, nil
}

// ReadFrom implements io.ReaderFrom interface
func (rom *Rom) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	// header
	if err := rom.decode(buf); err != nil {
		return 0, errors.Wrap(err, "failed to decode header")
	}
	off := headerSize

	// trainer
	if rom.HasTrainer() {
		if len(buf) < off+trainerSize {
			return 0, errors.Wrap(ErrTruncated, "incomplete TRAINER section")
		}
		rom.Trainer = buf[off : off+trainerSize]
		off += trainerSize
	}

	// PRG rom data
	if rom.prgsz == 0 {
		return 0, ErrNoPRGBanks
	}
	if len(buf) < off+rom.prgsz {
		return 0, errors.Wrap(ErrTruncated, "incomplete PRG section")
	}
	rom.PRGROM = buf[off : off+rom.prgsz]
	off += rom.prgsz

	// CHR rom data
	if len(buf) < off+rom.chrsz {
		return 0, errors.Wrap(ErrTruncated, "incomplete CHR section")
	}
	rom.CHRROM = buf[off : off+rom.chrsz]
	off += rom.chrsz

	log.ModRom.DebugZ("rom loaded").
		Bool("nes2.0", rom.IsNES20()).
		Uint("mapper", uint64(rom.Mapper())).
		Int("prgrom", len(rom.PRGROM)).
		Int("chrrom", len(rom.CHRROM)).
		Bool("trainer", rom.HasTrainer()).
		End()
	return int64(off), nil
}

func (hdr *header) decode(p []byte) error {
	if len(p) < headerSize {
		return errors.Wrapf(ErrTruncated, "header needs %d bytes, got %d", headerSize, len(p))
	}
	if string(p[:4]) != Magic {
		return ErrMagic
	}
	copy(hdr.raw[:], p[:headerSize])

	prg, chr := int(hdr.raw[4]), int(hdr.raw[5])
	if hdr.IsNES20() {
		// Upper bits of the bank counts. The exponent-multiplier notation
		// (nibble 0xF) is not supported.
		prg |= int(hdr.raw[9]&0x0F) << 8
		chr |= int(hdr.raw[9]>>4) << 8
	}
	hdr.prgsz = prg * prgUnit
	hdr.chrsz = chr * chrUnit
	return nil
}

type header struct {
	raw   [headerSize]byte
	prgsz int
	chrsz int
}

// HasTrainer indicates the presence of a trainer section in the rom.
func (hdr *header) HasTrainer() bool {
	return hdr.raw[6]&0x04 != 0
}

// HasPersistent indicates the presence of battery-backed memory in the rom.
func (hdr *header) HasPersistent() bool {
	return hdr.raw[6]&0x02 != 0
}

// IsNES20 reports whether the header uses the NES 2.0 format.
func (hdr *header) IsNES20() bool {
	return hdr.raw[7]&0x0C == 0x08
}

// Mapper returns the 12-bit mapper index. Only NES 2.0 headers carry the
// upper 4 bits.
func (hdr *header) Mapper() uint16 {
	m := uint16(hdr.raw[6]>>4) | uint16(hdr.raw[7]&0xF0)
	if hdr.IsNES20() {
		m |= uint16(hdr.raw[8]&0x0F) << 8
	}
	return m
}

// SubMapper returns the NES 2.0 submapper number, 0 for iNES roms.
func (hdr *header) SubMapper() uint8 {
	if !hdr.IsNES20() {
		return 0
	}
	return hdr.raw[8] >> 4
}

// Mirroring returns the nametable mirroring hardwired on the cartridge.
func (hdr *header) Mirroring() NTMirroring {
	switch {
	case hdr.raw[6]&0x08 != 0:
		return FourScreen
	case hdr.raw[6]&0x01 != 0:
		return VertMirroring
	}
	return HorzMirroring
}

// PRGRAMSize returns the size of PRG-RAM in bytes. iNES roms that do not
// specify it get 8 KiB.
func (hdr *header) PRGRAMSize() int {
	if hdr.IsNES20() {
		shift := hdr.raw[10] & 0x0F
		if shift == 0 {
			return 0
		}
		return 64 << shift
	}
	if hdr.raw[8] == 0 {
		return 0x2000
	}
	return int(hdr.raw[8]) * 0x2000
}

// PrintInfos writes a human readable summary of the rom header.
func (rom *Rom) PrintInfos(w io.Writer) {
	format := "iNES"
	if rom.IsNES20() {
		format = "NES 2.0"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "format\t%s\n", format)
	fmt.Fprintf(tw, "mapper\t%d\n", rom.Mapper())
	if rom.IsNES20() {
		fmt.Fprintf(tw, "submapper\t%d\n", rom.SubMapper())
	}
	fmt.Fprintf(tw, "PRG-ROM\t%d KiB\n", len(rom.PRGROM)/1024)
	fmt.Fprintf(tw, "CHR-ROM\t%d KiB\n", len(rom.CHRROM)/1024)
	fmt.Fprintf(tw, "PRG-RAM\t%d KiB\n", rom.PRGRAMSize()/1024)
	fmt.Fprintf(tw, "mirroring\t%s\n", rom.Mirroring())
	fmt.Fprintf(tw, "battery\t%t\n", rom.HasPersistent())
	fmt.Fprintf(tw, "trainer\t%t\n", rom.HasTrainer())
	tw.Flush()
}

// NTMirroring is the nametable arrangement.
type NTMirroring uint8

const (
	HorzMirroring NTMirroring = iota
	VertMirroring
	FourScreen
	OnlyAScreen
	OnlyBScreen
)

func (m NTMirroring) String() string {
	switch m {
	case HorzMirroring:
		return "horizontal"
	case VertMirroring:
		return "vertical"
	case FourScreen:
		return "four-screen"
	case OnlyAScreen:
		return "single-screen A"
	case OnlyBScreen:
		return "single-screen B"
	}
	return fmt.Sprintf("NTMirroring(%d)", uint8(m))
}
