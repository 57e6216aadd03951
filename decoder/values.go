package decoder

import (
	"github.com/pkg/errors"

	"github.com/anthropics/javaserial/internal/handle"
)

// values reads one class level's declared fields, in their declared order,
// via the primitive handler table (L and [ fields recurse into content()).
func (d *Decoder) values(cls *handle.ClassDesc) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(cls.Fields))
	for _, f := range cls.Fields {
		handler, ok := primitiveHandlers[f.TypeCode]
		if !ok {
			return nil, errors.Errorf("unknown field typecode %q", string(f.TypeCode))
		}
		v, err := handler(d)
		if err != nil {
			return nil, errors.Wrapf(err, "reading field %s", f.Name)
		}
		out[f.Name] = v
	}
	return out, nil
}
