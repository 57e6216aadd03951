package decoder

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/anthropics/javaserial/internal/decodeerr"
	"github.com/anthropics/javaserial/internal/handle"
)

// utf reads a class/field name inline: a 16-bit length followed by that many
// raw bytes. Unlike TC_STRING this is not itself a handle-bearing entity --
// it's embedded directly in the class descriptor or field descriptor token.
func (d *Decoder) utf() (string, error) {
	n, err := d.r.ReadU16()
	if err != nil {
		return "", errors.Wrap(err, "reading utf length")
	}
	s, err := d.r.ReadFixedString(int(n))
	if err != nil {
		return "", errors.Wrap(err, "reading utf bytes")
	}
	return s, nil
}

// classDesc reads a TC_CLASSDESC body: name, serialVersionUID, flags, fields,
// (required-empty) annotations, and the recursive super chain. The handle is
// registered before any fields are parsed so a self- or forward-referencing
// field resolves correctly.
func (d *Decoder) classDesc() (*handle.ClassDesc, error) {
	name, err := d.utf()
	if err != nil {
		return nil, errors.Wrap(err, "reading class name")
	}
	if len(name) < minClassNameLength {
		return nil, errors.Errorf("invalid class name %q", name)
	}

	uidBytes, err := d.r.ReadBytes(serialVersionUIDLen)
	if err != nil {
		return nil, errors.Wrap(err, "reading serialVersionUID")
	}

	cls := &handle.ClassDesc{Name: name, SerialVersionUID: hex.EncodeToString(uidBytes)}
	_, node := d.handles.Reserve(handle.KindClass)
	node.Class = cls

	if cls.Flags, err = d.r.ReadU8(); err != nil {
		return nil, errors.Wrap(err, "reading class flags")
	}

	fieldCount, err := d.r.ReadU16()
	if err != nil {
		return nil, errors.Wrap(err, "reading field count")
	}

	for i := 0; i < int(fieldCount); i++ {
		f, err := d.fieldDesc()
		if err != nil {
			return nil, errors.Wrapf(err, "reading field %d of class %s", i, name)
		}
		cls.Fields = append(cls.Fields, f)
	}

	anns, err := d.annotations()
	if err != nil {
		return nil, errors.Wrapf(err, "reading class annotations of %s", name)
	}
	if len(anns) != 0 {
		return nil, errors.Errorf("class %s: non-empty class annotations are not supported", name)
	}
	cls.Annotations = anns

	if cls.Super, err = d.classRef(); err != nil {
		return nil, errors.Wrapf(err, "reading super class of %s", name)
	}

	return cls, nil
}

// fieldDesc reads one field descriptor: typecode, name, and -- for object ('L')
// and array ('[') kinds -- the field type's class name as a handle-bearing
// stream-string (or a reference to a previously seen one).
func (d *Decoder) fieldDesc() (*handle.FieldDesc, error) {
	tc, err := d.r.ReadU8()
	if err != nil {
		return nil, errors.Wrap(err, "reading field typecode")
	}

	name, err := d.utf()
	if err != nil {
		return nil, errors.Wrap(err, "reading field name")
	}

	f := &handle.FieldDesc{TypeCode: tc, Name: name}

	if f.IsObjectType() {
		v, err := d.content(nil)
		if err != nil {
			return nil, errors.Wrap(err, "reading field class name")
		}
		className, ok := v.(string)
		if !ok {
			return nil, errors.Wrapf(decodeerr.ErrTypeMismatch, "field class name must be a string, got %T", v)
		}
		f.ClassName = className
	}

	return f, nil
}
