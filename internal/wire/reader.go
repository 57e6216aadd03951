// Package wire pulls primitive values off a big-endian byte stream,
// tracking the stream offset so callers can attach it to error context.
package wire

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/anthropics/javaserial/internal/decodeerr"
)

// defaultBufferSize mirrors the teacher's default bufio sizing for a single object.
const defaultBufferSize = 1024

// Reader adapts an io.Reader into the fixed-width big-endian reads the
// Java Object Serialization wire format is built from.
type Reader struct {
	br       *bufio.Reader
	offset   int64
	maxBlock int
}

// NewReader wraps r with a buffered reader sized for typical single-object streams.
func NewReader(r io.Reader) *Reader {
	br := bufio.NewReaderSize(r, defaultBufferSize)
	return &Reader{br: br, maxBlock: br.Size()}
}

// Offset returns the number of bytes consumed so far, for error context.
func (r *Reader) Offset() int64 { return r.offset }

// MaxBlockSize returns the current ceiling on a single length-prefixed read.
func (r *Reader) MaxBlockSize() int { return r.maxBlock }

// SetMaxBlockSize bounds the size of any single length-prefixed read (strings,
// block data), preventing a corrupt or hostile length prefix from forcing a
// huge allocation.
func (r *Reader) SetMaxBlockSize(n int) { r.maxBlock = n }

// AtEOF reports whether the stream has no more buffered or readable bytes.
func (r *Reader) AtEOF() bool {
	if r.br.Buffered() > 0 {
		return false
	}
	_, err := r.br.Peek(1)
	return err != nil
}

func (r *Reader) readN(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r.br, buf)
	r.offset += int64(read)
	if err != nil {
		return nil, errors.Wrapf(decodeerr.ErrShortRead, "at offset %d: %s", r.offset, err.Error())
	}
	return buf, nil
}

// ReadU8 reads one unsigned byte, leaving it unreadable-back via UnreadByte
// so callers can peek a typecode and push it back on mismatch.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return 0, errors.Wrapf(decodeerr.ErrShortRead, "at offset %d: %s", r.offset, err.Error())
	}
	r.offset++
	return b, nil
}

// UnreadByte pushes the last byte read by ReadU8 back onto the stream.
func (r *Reader) UnreadByte() error {
	if err := r.br.UnreadByte(); err != nil {
		return err
	}
	r.offset--
	return nil
}

func (r *Reader) ReadI8() (int8, error) {
	b, err := r.ReadU8()
	return int8(b), err
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) ReadI16() (int16, error) {
	x, err := r.ReadU16()
	return int16(x), err
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) ReadI32() (int32, error) {
	x, err := r.ReadU32()
	return int32(x), err
}

func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.readN(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *Reader) ReadI64() (int64, error) {
	x, err := r.ReadU64()
	return int64(x), err
}

// ReadF32 reads 4 big-endian bytes and reinterprets the bit pattern as IEEE-754,
// never via arithmetic conversion of a byte-swapped float.
func (r *Reader) ReadF32() (float32, error) {
	x, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(x), nil
}

// ReadF64 reads 8 big-endian bytes and reinterprets the bit pattern as IEEE-754.
func (r *Reader) ReadF64() (float64, error) {
	x, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(x), nil
}

// ReadBytes reads exactly n bytes, rejecting n beyond the configured block ceiling.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n > r.maxBlock {
		return nil, errors.Errorf(
			"block of %d bytes exceeds the %d byte limit; raise it with SetMaxBlockSize", n, r.maxBlock)
	}
	if n == 0 {
		return []byte{}, nil
	}
	return r.readN(n)
}

// ReadFixedString reads n raw bytes and returns them as a string, unconverted.
func (r *Reader) ReadFixedString(n int) (string, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
