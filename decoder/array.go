package decoder

import (
	"github.com/pkg/errors"

	"github.com/anthropics/javaserial/internal/handle"
)

// array reads a TC_ARRAY: a class reference whose name encodes the element
// type ("[" + element typecode, or "[L...;" / "[[..." for object/array
// elements), a 32-bit count, then that many elements -- inline primitive
// values for a primitive element type, full stream items otherwise. The
// handle is registered before elements are read.
func (d *Decoder) array() (interface{}, error) {
	cls, err := d.classRef()
	if err != nil {
		return nil, errors.Wrap(err, "reading array class")
	}
	if cls == nil || len(cls.Name) < 2 {
		return nil, errors.New("array with invalid class descriptor")
	}

	_, node := d.handles.Reserve(handle.KindArray)

	size, err := d.r.ReadI32()
	if err != nil {
		return nil, errors.Wrap(err, "reading array size")
	}
	if size < 0 {
		return nil, errors.Errorf("negative array size %d", size)
	}

	elemTC := cls.Name[1]

	// A byte array decodes to a raw []byte rather than a slice of boxed
	// bytes -- the "byte strings (for B)" output kind.
	if elemTC == 'B' {
		raw, err := d.r.ReadBytes(int(size))
		if err != nil {
			return nil, errors.Wrap(err, "reading byte array contents")
		}
		node.Value = raw
		return raw, nil
	}

	// 'L' and '[' entries in the table read full stream items, which may
	// themselves be objects, arrays, strings, nulls, or references.
	handler, known := primitiveHandlers[elemTC]
	if !known {
		return nil, errors.Errorf("unknown array element typecode %q", string(elemTC))
	}

	items := make([]interface{}, size)
	for i := 0; i < int(size); i++ {
		v, err := handler(d)
		if err != nil {
			return nil, errors.Wrapf(err, "reading array element %d", i)
		}
		items[i] = v
	}

	node.Value = items
	return items, nil
}
