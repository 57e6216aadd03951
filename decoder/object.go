package decoder

import (
	"github.com/pkg/errors"

	"github.com/anthropics/javaserial/internal/decodeerr"
	"github.com/anthropics/javaserial/internal/handle"
)

// boxedPrimitiveClasses names java.lang wrapper classes whose sole
// serializable field is "value" of the corresponding primitive type.
var boxedPrimitiveClasses = map[string]bool{
	"java.lang.Boolean":   true,
	"java.lang.Byte":      true,
	"java.lang.Character": true,
	"java.lang.Float":     true,
	"java.lang.Integer":   true,
	"java.lang.Long":      true,
	"java.lang.Short":     true,
	"java.lang.Double":    true,
}

// unboxPrimitive short-circuits a decoded boxed-primitive object to its
// unboxed value, per the Boxed primitives component.
func unboxPrimitive(cls *handle.ClassDesc, fields map[string]interface{}) (interface{}, bool) {
	if !boxedPrimitiveClasses[cls.Name] || len(fields) != 1 {
		return nil, false
	}
	v, ok := fields["value"]
	return v, ok
}

// object reads a TC_OBJECT: a class reference, then field values across the
// super chain from top-most ancestor down to the concrete class. The handle
// is registered before any value is read so a field may legally
// back-reference the containing object.
func (d *Decoder) object() (interface{}, error) {
	cls, err := d.classRef()
	if err != nil {
		return nil, errors.Wrap(err, "reading object class")
	}
	if cls == nil {
		return nil, errors.Wrap(decodeerr.ErrTypeMismatch, "object with null class descriptor")
	}

	_, node := d.handles.Reserve(handle.KindObject)

	fields := make(map[string]interface{})
	containerValue, handled, err := d.readClassChain(cls, fields)
	if err != nil {
		return nil, errors.Wrapf(err, "reading object of class %s", cls.Name)
	}

	var result interface{}
	switch {
	case handled:
		result = containerValue
	default:
		if v, ok := unboxPrimitive(cls, fields); ok {
			result = v
		} else {
			result = fields
		}
	}

	node.Value = result
	return result, nil
}
