package decoder

import (
	"github.com/pkg/errors"

	"github.com/anthropics/javaserial/decoder/specialise"
	"github.com/anthropics/javaserial/internal/decodeerr"
	"github.com/anthropics/javaserial/internal/handle"
)

// readClassChain walks a class descriptor's super chain from the top-most
// superclass down to cls, merging each level's field values into fields in
// declared order. If any level's class name matches a collection
// specialiser, that level's specialised value is returned. Every level is
// read regardless; where more than one level matches, the one nearest to
// the concrete class takes precedence, matching how a subclass's own write
// method runs last.
func (d *Decoder) readClassChain(cls *handle.ClassDesc, fields map[string]interface{}) (interface{}, bool, error) {
	if cls == nil {
		return nil, false, nil
	}

	superValue, superHandled, err := d.readClassChain(cls.Super, fields)
	if err != nil {
		return nil, false, err
	}

	value, handled, err := d.classLevelData(cls, fields)
	if err != nil {
		return nil, false, errors.Wrapf(err, "reading data for class %s", cls.Name)
	}

	if handled {
		return value, true, nil
	}
	return superValue, superHandled, nil
}

// classLevelData reads one class descriptor's own contribution: its
// declared fields (merged into fields), and -- for SC_SERIALIZABLE with
// SC_WRITE_METHOD, or SC_EXTERNALIZABLE with SC_BLOCK_DATA -- its
// object-annotation region, dispatched to a collection specialiser by exact
// class name. A level without an annotation region is still dispatched by
// class name, with no annotation items, so specialisers that work from
// declared fields alone (Arrays$ArrayList) apply to it. Which flag
// combinations carry an annotation region is decided
// here directly from flags, not from HasWriteMethod: SC_EXTERNALIZABLE|
// SC_BLOCK_DATA (0x0C) writes a block-data payload without the
// SC_WRITE_METHOD bit ever being set, and still has to be consumed from the
// wire or every later read in the stream desyncs.
func (d *Decoder) classLevelData(cls *handle.ClassDesc, fields map[string]interface{}) (value interface{}, handled bool, err error) {
	if cls.IsEnum() {
		return nil, false, errors.Wrapf(decodeerr.ErrUnsupportedTypecode, "class %s: enum class descriptors are not supported", cls.Name)
	}

	flags := cls.Flags & 0x0F
	var levelFields map[string]interface{}

	switch flags {
	case handle.SCSerializable, handle.SCSerializable | handle.SCWriteMethod:
		if levelFields, err = d.values(cls); err != nil {
			return nil, false, errors.Wrap(err, "reading field values")
		}
	case handle.SCExternalizable | handle.SCBlockData:
		levelFields = map[string]interface{}{}
	case handle.SCExternalizable:
		return nil, false, errors.Wrap(decodeerr.ErrUnsupportedTypecode, "externalizable version 1 content is not supported")
	default:
		return nil, false, errors.Wrapf(decodeerr.ErrUnsupportedTypecode, "class %s: unrecognised flags %#x", cls.Name, cls.Flags)
	}

	for k, v := range levelFields {
		fields[k] = v
	}

	hasAnnotations := flags == handle.SCSerializable|handle.SCWriteMethod || flags == handle.SCExternalizable|handle.SCBlockData
	if !hasAnnotations {
		return specialise.Apply(cls.Name, fields, nil)
	}

	items, err := d.annotations()
	if err != nil {
		return nil, false, errors.Wrap(err, "reading object annotation region")
	}

	specialValue, specialised, err := specialise.Apply(cls.Name, fields, items)
	if err != nil {
		return nil, false, err
	}
	return specialValue, specialised, nil
}
