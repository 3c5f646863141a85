// Package cputest runs per-opcode processor test vectors, as published in the
// "ProcessorTests" project: each case gives the initial and final CPU and
// memory state of a single instruction, and the bus activity of every cycle.
package cputest

import (
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"nescore/hw"
)

type Case struct {
	Name    string
	Initial State
	Final   State
	Cycles  []Cycle
}

type State struct {
	PC            uint16
	S, A, X, Y, P uint8
	RAM           []Cell
}

// Cell is the content of a memory location.
type Cell struct {
	Addr uint16
	Val  uint8
}

// Cycle is the bus activity during one CPU cycle.
type Cycle struct {
	Addr uint16
	Val  uint8
	Op   hw.BusOp
}

// Parse decodes a JSON array of test cases.
func Parse(r io.Reader) ([]Case, error) {
	d := jx.Decode(r, 64*1024)

	var cases []Case
	err := d.Arr(func(d *jx.Decoder) error {
		var c Case
		if err := c.decode(d); err != nil {
			return errors.Wrapf(err, "case %d", len(cases))
		}
		cases = append(cases, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (c *Case) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			c.Name, err = d.Str()
		case "initial":
			err = c.Initial.decode(d)
		case "final":
			err = c.Final.decode(d)
		case "cycles":
			err = d.Arr(func(d *jx.Decoder) error {
				var cy Cycle
				if err := cy.decode(d); err != nil {
					return err
				}
				c.Cycles = append(c.Cycles, cy)
				return nil
			})
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, key)
		}
		return nil
	})
}

func (s *State) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "pc":
			s.PC, err = decodeUint16(d)
		case "s":
			s.S, err = decodeUint8(d)
		case "a":
			s.A, err = decodeUint8(d)
		case "x":
			s.X, err = decodeUint8(d)
		case "y":
			s.Y, err = decodeUint8(d)
		case "p":
			s.P, err = decodeUint8(d)
		case "ram":
			err = d.Arr(func(d *jx.Decoder) error {
				var cell Cell
				if err := cell.decode(d); err != nil {
					return err
				}
				s.RAM = append(s.RAM, cell)
				return nil
			})
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, key)
		}
		return nil
	})
}

// [addr, val]
func (c *Cell) decode(d *jx.Decoder) error {
	i := 0
	return d.Arr(func(d *jx.Decoder) error {
		var err error
		switch i {
		case 0:
			c.Addr, err = decodeUint16(d)
		case 1:
			c.Val, err = decodeUint8(d)
		default:
			return errors.Errorf("unexpected element %d in ram cell", i)
		}
		i++
		return err
	})
}

// [addr, val, "read"|"write"]
func (c *Cycle) decode(d *jx.Decoder) error {
	i := 0
	return d.Arr(func(d *jx.Decoder) error {
		var err error
		switch i {
		case 0:
			c.Addr, err = decodeUint16(d)
		case 1:
			c.Val, err = decodeUint8(d)
		case 2:
			var op string
			if op, err = d.Str(); err != nil {
				break
			}
			switch op {
			case "read":
				c.Op = hw.BusRead
			case "write":
				c.Op = hw.BusWrite
			default:
				err = errors.Errorf("unknown bus operation %q", op)
			}
		default:
			return errors.Errorf("unexpected element %d in cycle", i)
		}
		i++
		return err
	})
}

func decodeUint(d *jx.Decoder, limit int) (int, error) {
	v, err := d.Int()
	if err != nil {
		return 0, err
	}
	if v < 0 || v > limit {
		return 0, errors.Errorf("value %d out of range [0, %#x]", v, limit)
	}
	return v, nil
}

func decodeUint8(d *jx.Decoder) (uint8, error) {
	v, err := decodeUint(d, 0xFF)
	return uint8(v), err
}

func decodeUint16(d *jx.Decoder) (uint16, error) {
	v, err := decodeUint(d, 0xFFFF)
	return uint16(v), err
}
