package decoder

import (
	"github.com/pkg/errors"

	"github.com/anthropics/javaserial/internal/decodeerr"
)

// primitiveHandler reads one primitive value of a known field typecode.
type primitiveHandler func(d *Decoder) (interface{}, error)

// primitiveHandlers maps field typecodes to their wire semantics: B is an
// unsigned byte, C a single UTF-16 code unit surfaced as a one-rune string,
// D/F IEEE-754 bit patterns, I/J/S signed integers, Z a boolean whose wire
// byte must be 0 or 1.
var primitiveHandlers = map[byte]primitiveHandler{
	'B': func(d *Decoder) (interface{}, error) {
		b, err := d.r.ReadU8()
		if err != nil {
			return nil, errors.Wrap(err, "reading byte primitive")
		}
		return b, nil
	},
	'C': func(d *Decoder) (interface{}, error) {
		code, err := d.r.ReadU16()
		if err != nil {
			return nil, errors.Wrap(err, "reading char primitive")
		}
		return string(rune(code)), nil
	},
	'D': func(d *Decoder) (interface{}, error) {
		v, err := d.r.ReadF64()
		if err != nil {
			return nil, errors.Wrap(err, "reading double primitive")
		}
		return v, nil
	},
	'F': func(d *Decoder) (interface{}, error) {
		v, err := d.r.ReadF32()
		if err != nil {
			return nil, errors.Wrap(err, "reading float primitive")
		}
		return float64(v), nil
	},
	'I': func(d *Decoder) (interface{}, error) {
		v, err := d.r.ReadI32()
		if err != nil {
			return nil, errors.Wrap(err, "reading int primitive")
		}
		return v, nil
	},
	'J': func(d *Decoder) (interface{}, error) {
		v, err := d.r.ReadI64()
		if err != nil {
			return nil, errors.Wrap(err, "reading long primitive")
		}
		return v, nil
	},
	'S': func(d *Decoder) (interface{}, error) {
		v, err := d.r.ReadI16()
		if err != nil {
			return nil, errors.Wrap(err, "reading short primitive")
		}
		return v, nil
	},
	'Z': func(d *Decoder) (interface{}, error) {
		b, err := d.r.ReadU8()
		if err != nil {
			return nil, errors.Wrap(err, "reading boolean primitive")
		}
		if b != 0 && b != 1 {
			return nil, errors.Wrapf(decodeerr.ErrInvalidBoolean, "value %d at offset %d", b, d.r.Offset())
		}
		return b == 1, nil
	},
	'L': func(d *Decoder) (interface{}, error) {
		v, err := d.content(nil)
		if err != nil {
			return nil, errors.Wrap(err, "reading object field value")
		}
		return v, nil
	},
	'[': func(d *Decoder) (interface{}, error) {
		v, err := d.content(nil)
		if err != nil {
			return nil, errors.Wrap(err, "reading array field value")
		}
		return v, nil
	},
}
