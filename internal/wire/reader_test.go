package wire

import (
	"bytes"
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/anthropics/javaserial/internal/decodeerr"
)

func TestReadIntegersBigEndian(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x00, 0x01, 0xFF, 0xFF, 0xFF, 0xFE}))

	u16, err := r.ReadU16()
	if err != nil || u16 != 1 {
		t.Fatalf("ReadU16: got (%d, %v)", u16, err)
	}

	i32, err := r.ReadI32()
	if err != nil || i32 != -2 {
		t.Fatalf("ReadI32: got (%d, %v)", i32, err)
	}
}

func TestReadFloatsReinterpretBits(t *testing.T) {
	bits := math.Float64bits(3.5)
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[7-i] = byte(bits >> (8 * i))
	}
	r := NewReader(bytes.NewReader(buf))

	v, err := r.ReadF64()
	if err != nil {
		t.Fatalf("ReadF64: %v", err)
	}
	if v != 3.5 {
		t.Fatalf("got %v, want 3.5", v)
	}
}

func TestShortReadIsErrShortRead(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x00}))
	_, err := r.ReadU16()
	if errors.Cause(err) != decodeerr.ErrShortRead {
		t.Fatalf("want ErrShortRead, got %v", err)
	}
}

func TestUnreadByteRestoresOffset(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x42, 0x43}))
	b, err := r.ReadU8()
	if err != nil || b != 0x42 {
		t.Fatalf("ReadU8: got (%x, %v)", b, err)
	}
	if off := r.Offset(); off != 1 {
		t.Fatalf("offset after read: got %d, want 1", off)
	}
	if err := r.UnreadByte(); err != nil {
		t.Fatalf("UnreadByte: %v", err)
	}
	if off := r.Offset(); off != 0 {
		t.Fatalf("offset after unread: got %d, want 0", off)
	}
	b, err = r.ReadU8()
	if err != nil || b != 0x42 {
		t.Fatalf("re-read: got (%x, %v)", b, err)
	}
}

func TestReadBytesRejectsOverMaxBlockSize(t *testing.T) {
	r := NewReader(bytes.NewReader(make([]byte, 100)))
	r.SetMaxBlockSize(10)
	if _, err := r.ReadBytes(11); err == nil {
		t.Fatal("expected an error for a block over the configured ceiling")
	}
}

func TestAtEOF(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01}))
	if r.AtEOF() {
		t.Fatal("reader should not report EOF before its one byte is consumed")
	}
	if _, err := r.ReadU8(); err != nil {
		t.Fatalf("ReadU8: %v", err)
	}
	if !r.AtEOF() {
		t.Fatal("reader should report EOF once its single byte is consumed")
	}
}
