package hwio

import (
	"testing"
)

type test1 struct {
	Reg1 Reg8   `hwio:"offset=0x111,reset=0x23"`
	Reg2 Reg8   `hwio:"offset=0x444,bank=1,readonly"`
	Ram  Mem    `hwio:"offset=0x0,size=0x100,vsize=0x400,readonly,noromlog"`
	Dev  Device `hwio:"bank=1,offset=0x500,size=0x10,cb=Cart"`

	untagged uint8
}

func (t *test1) Cart(addr uint16, write bool) *uint8 { return &t.untagged }

func TestReflect(t *testing.T) {
	ts := &test1{}

	if err := InitRegs(ts); err != nil {
		t.Fatal(err)
	}

	if ts.Reg1.Name != "Reg1" || ts.Reg2.Name != "Reg2" {
		t.Error("invalid names:", ts.Reg1, ts.Reg2)
	}
	if ts.Reg1.Value != 0x23 {
		t.Errorf("reset value = %02x, want 23", ts.Reg1.Value)
	}
	if ts.Reg2.Flags != ReadOnlyFlag {
		t.Errorf("Reg2 flags = %v, want readonly", ts.Reg2.Flags)
	}
	if len(ts.Ram.Data) != 0x100 || ts.Ram.VSize != 0x400 {
		t.Errorf("Ram size = %#x/%#x, want 0x100/0x400", len(ts.Ram.Data), ts.Ram.VSize)
	}
	if ts.Ram.Flags != MemFlagReadOnly|MemFlagNoROLog {
		t.Errorf("Ram flags = %v", ts.Ram.Flags)
	}
	if ts.Dev.Size != 0x10 || ts.Dev.RefCb == nil {
		t.Fatalf("Dev not initialized: %+v", ts.Dev)
	}
	if ts.Dev.Ref(0x500, true) != &ts.untagged {
		t.Errorf("Dev callback not bound to method")
	}
}

func TestReflectErrors(t *testing.T) {
	tests := []struct {
		name string
		data any
	}{
		{"not pointer", test1{}},
		{"missing size", &struct {
			M Mem `hwio:"offset=0"`
		}{}},
		{"not pow2", &struct {
			M Mem `hwio:"offset=0,size=0x300"`
		}{}},
		{"bad reset", &struct {
			R Reg8 `hwio:"offset=0,reset=0x100"`
		}{}},
		{"missing callback", &struct {
			D Device `hwio:"offset=0,size=1,cb"`
		}{}},
		{"duplicate option", &struct {
			R Reg8 `hwio:"offset=0,offset=1"`
		}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := InitRegs(tt.data); err == nil {
				t.Errorf("InitRegs should fail")
			}
		})
	}
}

func TestParseBank(t *testing.T) {
	ts := &test1{}
	info, err := bankGetRegs(ts, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(info) != 2 {
		t.Fatal("wrong number of regs in bank:", len(info))
	}
	if info[0].offset != 0x111 {
		t.Errorf("invalid reg offset: %x", info[0].offset)
	}
	if info[0].regPtr != &ts.Reg1 {
		t.Errorf("invalid reg pointer")
	}

	info, err = bankGetRegs(ts, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(info) != 2 || info[0].offset != 0x444 || info[1].offset != 0x500 {
		t.Errorf("invalid bank 1: %+v", info)
	}
}

func TestRadixTree(t *testing.T) {
	var tree radixTree
	r := &Reg8{Name: "r"}

	if err := tree.InsertRange(0x10FE, 0x1101, r); err != nil {
		t.Fatal(err)
	}
	for _, addr := range []uint16{0x10FE, 0x10FF, 0x1100, 0x1101} {
		if tree.Search(addr) != r {
			t.Errorf("Search(%04X) = nil", addr)
		}
	}
	if tree.Search(0x1102) != nil || tree.Search(0x10FD) != nil {
		t.Errorf("range leaked")
	}
	if err := tree.InsertRange(0x1101, 0x1200, r); err == nil {
		t.Errorf("overlap not detected")
	}
	if tree.Search(0x1102) != nil {
		t.Errorf("failed insert modified the tree")
	}
	if err := tree.InsertRange(0x2000, 0x1000, r); err == nil {
		t.Errorf("reversed range accepted")
	}

	tree.RemoveRange(0x0000, 0xFFFF)
	if tree.Search(0x10FF) != nil {
		t.Errorf("RemoveRange did not remove")
	}
}
