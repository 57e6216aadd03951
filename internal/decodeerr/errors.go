// Package decodeerr holds the sentinel error values shared across the
// decoder's layers. A single shared home avoids an import cycle between
// internal/wire, internal/handle, decoder, and decoder/specialise, each of
// which raises a subset of these kinds.
package decodeerr

import "github.com/pkg/errors"

var (
	// ErrMalformedHeader is returned when the stream magic or version doesn't match.
	ErrMalformedHeader = errors.New("malformed stream header")

	// ErrShortRead is returned when the byte source ends mid-token.
	ErrShortRead = errors.New("short read")

	// ErrUnknownTypecode is returned for a typecode byte outside the protocol's closed set.
	ErrUnknownTypecode = errors.New("unknown typecode")

	// ErrUnsupportedTypecode is returned for a recognised but unimplemented typecode
	// (TC_ENUM, TC_CLASS, TC_RESET, TC_EXCEPTION, TC_PROXYCLASSDESC).
	ErrUnsupportedTypecode = errors.New("unsupported typecode")

	// ErrHandleNotFound is returned for a reference to an unassigned or out-of-range handle.
	ErrHandleNotFound = errors.New("handle not found")

	// ErrTypeMismatch is returned when a referenced or parsed entity has the wrong kind for its context.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidBoolean is returned for a Z byte other than 0 or 1.
	ErrInvalidBoolean = errors.New("invalid boolean value")

	// ErrInvalidBlockData is returned when a specialiser's expected block layout doesn't match the wire.
	ErrInvalidBlockData = errors.New("invalid block data")

	// ErrUnexpectedEndOfBlock is returned when a block data region isn't closed by TC_ENDBLOCKDATA.
	ErrUnexpectedEndOfBlock = errors.New("missing end of block marker")
)
