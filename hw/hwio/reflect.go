package hwio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

type bankReg struct {
	regPtr any
	offset uint16
}

// parseTag splits a hwio struct tag into its options. Flags without a value
// are mapped to the empty string.
func parseTag(tag string) (map[string]string, error) {
	opts := make(map[string]string)
	for _, item := range strings.Split(tag, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		k, v, _ := strings.Cut(item, "=")
		if _, dup := opts[k]; dup {
			return nil, fmt.Errorf("duplicate option %q", k)
		}
		opts[k] = v
	}
	return opts, nil
}

func parseUint(opts map[string]string, key string, bits int) (uint64, bool, error) {
	s, ok := opts[key]
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, true, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, true, nil
}

func rwFlags(opts map[string]string) RWFlags {
	var flags RWFlags
	if _, ok := opts["readonly"]; ok {
		flags |= ReadOnlyFlag
	}
	if _, ok := opts["writeonly"]; ok {
		flags |= WriteOnlyFlag
	}
	return flags
}

// bankGetRegs returns the registers of bank number bankNum in the structure
// pointed to by bank.
func bankGetRegs(bank any, bankNum int) ([]bankReg, error) {
	v := reflect.ValueOf(bank)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("bank must be a pointer to struct, got %T", bank)
	}
	v = v.Elem()
	typ := v.Type()

	var regs []bankReg
	for i := range typ.NumField() {
		field := typ.Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts, err := parseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typ.Name(), field.Name, err)
		}
		num, _, err := parseUint(opts, "bank", 8)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typ.Name(), field.Name, err)
		}
		if int(num) != bankNum {
			continue
		}
		off, ok, err := parseUint(opts, "offset", 16)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typ.Name(), field.Name, err)
		}
		if !ok {
			continue
		}
		regs = append(regs, bankReg{
			regPtr: v.Field(i).Addr().Interface(),
			offset: uint16(off),
		})
	}
	return regs, nil
}

// InitRegs initializes all the Mem, Reg8 and Device fields of the structure
// pointed to by data, using their hwio struct tags:
//
//	size=0x800      Mem: physical size (pow2). Device: size of the range.
//	vsize=0x2000    Mem: mapped size, the buffer is mirrored over it
//	                (defaults to size).
//	reset=0x12      Reg8: initial value.
//	readonly        Writes are discarded.
//	writeonly       Reg8, Device: reads are discarded (open bus).
//	noromlog        Mem: do not log discarded writes.
//	cb[=Method]     Device: method of data used as reference callback,
//	                defaults to "Ref" followed by the upper-cased field name.
func InitRegs(data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("InitRegs: expected pointer to struct, got %T", data)
	}
	val := v.Elem()
	typ := val.Type()

	for i := range typ.NumField() {
		field := typ.Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts, err := parseTag(tag)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", typ.Name(), field.Name, err)
		}

		var ierr error
		switch reg := val.Field(i).Addr().Interface().(type) {
		case *Mem:
			ierr = initMem(reg, field.Name, opts)
		case *Reg8:
			ierr = initReg8(reg, field.Name, opts)
		case *Device:
			ierr = initDevice(reg, field.Name, opts, v)
		default:
			ierr = fmt.Errorf("unsupported type %T", reg)
		}
		if ierr != nil {
			return fmt.Errorf("%s.%s: %w", typ.Name(), field.Name, ierr)
		}
	}
	return nil
}

// MustInitRegs is like InitRegs but panics on error.
func MustInitRegs(data any) {
	if err := InitRegs(data); err != nil {
		panic(err)
	}
}

func initMem(m *Mem, name string, opts map[string]string) error {
	size, ok, err := parseUint(opts, "size", 32)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("missing size")
	}
	if size == 0 || size&(size-1) != 0 {
		return fmt.Errorf("size %#x is not pow2", size)
	}
	vsize, ok, err := parseUint(opts, "vsize", 32)
	if err != nil {
		return err
	}
	if !ok {
		vsize = size
	}

	m.Name = name
	m.Data = make([]byte, size)
	m.VSize = int(vsize)
	m.Flags = MemFlagReadWrite
	if _, ok := opts["readonly"]; ok {
		m.Flags |= MemFlagReadOnly
	}
	if _, ok := opts["noromlog"]; ok {
		m.Flags |= MemFlagNoROLog
	}
	return nil
}

func initReg8(r *Reg8, name string, opts map[string]string) error {
	reset, _, err := parseUint(opts, "reset", 8)
	if err != nil {
		return err
	}
	r.Name = name
	r.Value = uint8(reset)
	r.Flags = rwFlags(opts)
	return nil
}

func initDevice(d *Device, name string, opts map[string]string, owner reflect.Value) error {
	size, ok, err := parseUint(opts, "size", 32)
	if err != nil {
		return err
	}
	if !ok || size == 0 {
		return fmt.Errorf("missing size")
	}
	d.Name = name
	d.Size = int(size)
	d.Flags = rwFlags(opts)

	cbname, ok := opts["cb"]
	if !ok {
		return nil
	}
	if cbname == "" {
		cbname = "Ref" + strings.ToUpper(name)
	}
	meth := owner.MethodByName(cbname)
	if !meth.IsValid() {
		return fmt.Errorf("missing method %s", cbname)
	}
	cb, ok := meth.Interface().(func(uint16, bool) *uint8)
	if !ok {
		return fmt.Errorf("method %s has wrong signature %s", cbname, meth.Type())
	}
	d.RefCb = cb
	return nil
}
