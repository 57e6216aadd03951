// Package decoder implements the Grammar Walker: a recursive reducer over
// Java Object Serialization Stream Protocol v5 typecodes that turns a byte
// stream into a tree of host values (nil, bool, integers, float64, []byte,
// string, []interface{}, map[string]interface{}, and sets modelled as
// []interface{}).
package decoder

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/anthropics/javaserial/internal/decodeerr"
	"github.com/anthropics/javaserial/internal/handle"
	"github.com/anthropics/javaserial/internal/wire"
)

const (
	streamMagic   uint16 = 0xACED
	streamVersion uint16 = 0x0005

	// defaultCycleValue is emitted for a TC_REFERENCE that resolves to an
	// object or array still under construction (the referenced entity's own
	// field graph refers back to it). Overridable via SetCycleValue.
	defaultCycleValue = "[CYCLE]"

	minClassNameLength = 2
	serialVersionUIDLen = 8
)

// Decoder walks one Java Object Serialization stream. It owns a byte reader
// and a handle table; neither is shared across decodes, so two concurrent
// decodes need two independent Decoders.
type Decoder struct {
	r          *wire.Reader
	handles    *handle.Table
	cycleValue interface{}
}

// New wraps r for decoding. The stream is read lazily, one token at a time.
func New(r io.Reader) *Decoder {
	return &Decoder{
		r:          wire.NewReader(r),
		handles:    handle.NewTable(),
		cycleValue: defaultCycleValue,
	}
}

// Decode parses a single serialized Java object from an in-memory buffer.
func Decode(buf []byte) (interface{}, error) {
	return New(bytes.NewReader(buf)).Decode()
}

// SetMaxBlockSize bounds the size of any single length-prefixed read
// (strings, block data), guarding against a corrupt or hostile length
// prefix forcing a huge allocation. Defaults to the internal buffer size.
func (d *Decoder) SetMaxBlockSize(n int) { d.r.SetMaxBlockSize(n) }

// SetCycleValue overrides the placeholder emitted for a reference to an
// entity that is still being constructed (a self-referential object graph).
func (d *Decoder) SetCycleValue(v interface{}) { d.cycleValue = v }

// Decode reads the stream header and the single object that follows,
// failing if there is trailing data after it.
func (d *Decoder) Decode() (interface{}, error) {
	if err := d.header(); err != nil {
		return nil, err
	}

	val, err := d.content(nil)
	if err != nil {
		if errors.Cause(err) == decodeerr.ErrShortRead {
			return nil, errors.Wrap(decodeerr.ErrShortRead, "premature end of input")
		}
		return nil, err
	}

	if !d.r.AtEOF() {
		return nil, errors.New("object already parsed but there is more data")
	}

	return val, nil
}

func (d *Decoder) header() error {
	magic, err := d.r.ReadU16()
	if err != nil {
		return err
	}
	if magic != streamMagic {
		return errors.Wrapf(decodeerr.ErrMalformedHeader, "want magic %#x got %#x", streamMagic, magic)
	}

	ver, err := d.r.ReadU16()
	if err != nil {
		return err
	}
	if ver != streamVersion {
		return errors.Wrapf(decodeerr.ErrMalformedHeader, "want version %#x got %#x", streamVersion, ver)
	}

	return nil
}

// content reads one typecode and reduces it to a host value, a *handle.ClassDesc,
// a []byte (raw block data), or the endBlock sentinel, depending on the
// typecode and context. allowed, when non-nil, restricts which typecodes may
// legally appear at this position (e.g. class-reference positions).
func (d *Decoder) content(allowed map[uint8]bool) (interface{}, error) {
	tc, err := d.r.ReadU8()
	if err != nil {
		return nil, err
	}

	if allowed != nil && !allowed[tc] {
		d.r.UnreadByte() //nolint:errcheck
		return nil, errors.Wrapf(decodeerr.ErrTypeMismatch, "typecode %#x not allowed at offset %d", tc, d.r.Offset())
	}

	if name, unsupported := unsupportedTypecodes[tc]; unsupported {
		return nil, errors.Wrapf(decodeerr.ErrUnsupportedTypecode, "%s at offset %d", name, d.r.Offset())
	}

	switch tc {
	case tcNull:
		return nil, nil
	case tcReference:
		return d.reference()
	case tcClassDesc:
		return d.classDesc()
	case tcObject:
		return d.object()
	case tcString:
		return d.readString(false)
	case tcArray:
		return d.array()
	case tcBlockData:
		return d.blockData()
	case tcEndBlockData:
		return endBlock{}, nil
	case tcLongString:
		return d.readString(true)
	default:
		d.r.UnreadByte() //nolint:errcheck
		return nil, errors.Wrapf(decodeerr.ErrUnknownTypecode, "%#x at offset %d", tc, d.r.Offset())
	}
}

// classRef reads a class reference: a class descriptor, a back-reference to
// one, or null. Used for TC_OBJECT's and TC_ARRAY's leading class token and
// for a class descriptor's super pointer.
func (d *Decoder) classRef() (*handle.ClassDesc, error) {
	v, err := d.content(classDescContext)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	cls, ok := v.(*handle.ClassDesc)
	if !ok {
		return nil, errors.Wrapf(decodeerr.ErrTypeMismatch, "expected class descriptor, got %T", v)
	}
	return cls, nil
}

func (d *Decoder) reference() (interface{}, error) {
	h, err := d.r.ReadI32()
	if err != nil {
		return nil, errors.Wrap(err, "reading reference handle")
	}

	if h < handle.BaseHandle {
		return nil, errors.Wrapf(decodeerr.ErrHandleNotFound, "handle %#x below base %#x", h, handle.BaseHandle)
	}

	node, err := d.handles.Find(h)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving reference at offset %d", d.r.Offset())
	}

	switch node.Kind {
	case handle.KindClass:
		return node.Class, nil
	case handle.KindString:
		return node.Str, nil
	case handle.KindObject, handle.KindArray:
		if node.Value == nil {
			// The referenced entity is still being built (its own field graph
			// cites it) -- a legitimate cycle, not a protocol violation.
			return d.cycleValue, nil
		}
		return node.Value, nil
	default:
		return nil, errors.Wrapf(decodeerr.ErrTypeMismatch, "unknown node kind %d", node.Kind)
	}
}

func (d *Decoder) readString(long bool) (string, error) {
	var n int
	if long {
		hi, err := d.r.ReadU32()
		if err != nil {
			return "", errors.Wrap(err, "reading long string length (high word)")
		}
		if hi != 0 {
			return "", errors.New("string longer than 2^32 bytes is not supported")
		}
		lo, err := d.r.ReadU32()
		if err != nil {
			return "", errors.Wrap(err, "reading long string length (low word)")
		}
		n = int(lo)
	} else {
		length, err := d.r.ReadU16()
		if err != nil {
			return "", errors.Wrap(err, "reading string length")
		}
		n = int(length)
	}

	s, err := d.r.ReadFixedString(n)
	if err != nil {
		return "", errors.Wrap(err, "reading string bytes")
	}

	_, node := d.handles.Reserve(handle.KindString)
	node.Str = s
	return s, nil
}

func (d *Decoder) blockData() ([]byte, error) {
	size, err := d.r.ReadU8()
	if err != nil {
		return nil, errors.Wrap(err, "reading block data length")
	}
	data, err := d.r.ReadBytes(int(size))
	if err != nil {
		return nil, errors.Wrap(err, "reading block data")
	}
	return data, nil
}

// annotations reads a sequence of stream items terminated by TC_ENDBLOCKDATA:
// used both for a class descriptor's (required-empty) annotation section and
// for an object's write-method annotation region, where TC_BLOCKDATA chunks
// interleave with arbitrary stream items.
func (d *Decoder) annotations() ([]interface{}, error) {
	var items []interface{}
	for {
		v, err := d.content(nil)
		if err != nil {
			if errors.Cause(err) == decodeerr.ErrShortRead {
				return nil, errors.Wrapf(decodeerr.ErrUnexpectedEndOfBlock, "at offset %d", d.r.Offset())
			}
			return nil, errors.Wrap(err, "reading annotation item")
		}
		if _, done := v.(endBlock); done {
			return items, nil
		}
		items = append(items, v)
	}
}
