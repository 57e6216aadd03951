package decoder

import "github.com/anthropics/javaserial/internal/decodeerr"

// Error kinds a decode can fail with. Most wrapped errors' Cause (via
// github.com/pkg/errors.Cause, or errors.Is) is one of these; a few internal
// sanity checks (an invalid class name, a negative array size, an unknown
// field typecode, a block over the size limit, trailing data after the
// object, among others) return plain errors instead. Decoding is uniform and
// non-recoverable: the first error aborts the whole decode.
var (
	ErrMalformedHeader      = decodeerr.ErrMalformedHeader
	ErrShortRead            = decodeerr.ErrShortRead
	ErrUnknownTypecode      = decodeerr.ErrUnknownTypecode
	ErrUnsupportedTypecode  = decodeerr.ErrUnsupportedTypecode
	ErrHandleNotFound       = decodeerr.ErrHandleNotFound
	ErrTypeMismatch         = decodeerr.ErrTypeMismatch
	ErrInvalidBoolean       = decodeerr.ErrInvalidBoolean
	ErrInvalidBlockData     = decodeerr.ErrInvalidBlockData
	ErrUnexpectedEndOfBlock = decodeerr.ErrUnexpectedEndOfBlock
)
