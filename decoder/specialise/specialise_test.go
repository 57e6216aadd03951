package specialise

import (
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"

	"github.com/anthropics/javaserial/internal/decodeerr"
)

func u32Block(vals ...int32) []byte {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint32(b[4*i:], uint32(v))
	}
	return b
}

func TestHashMapEntryCountEqualsBucketCountRejected(t *testing.T) {
	items := []interface{}{u32Block(4, 4)}
	_, err := hashMap(nil, items)
	if errors.Cause(err) != decodeerr.ErrInvalidBlockData {
		t.Fatalf("want ErrInvalidBlockData, got %v", err)
	}
}

func TestHashMapEntryCountBelowBucketCountAccepted(t *testing.T) {
	items := []interface{}{u32Block(4, 3), "k1", "v1", "k2", "v2", "k3", "v3"}
	v, err := hashMap(nil, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := v.(map[string]interface{})
	if !ok || len(m) != 3 {
		t.Fatalf("got %#v", v)
	}
}

func TestPriorityQueueWireSizeArithmetic(t *testing.T) {
	// wire size 4 -> 3 elements.
	items := []interface{}{u32Block(4), "a", "b", "c"}
	v, err := priorityQueue(nil, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seq, ok := v.([]interface{})
	if !ok || len(seq) != 3 {
		t.Fatalf("got %#v", v)
	}
}

func TestPriorityQueueWireSizeBelowMinimumRejected(t *testing.T) {
	items := []interface{}{u32Block(1)}
	_, err := priorityQueue(nil, items)
	if errors.Cause(err) != decodeerr.ErrInvalidBlockData {
		t.Fatalf("want ErrInvalidBlockData, got %v", err)
	}
}

func TestBitSetCrossesWordBoundary(t *testing.T) {
	// word 0: bits 0 and 3 set. word 1: bit 0 set (global index 64).
	fields := map[string]interface{}{
		"bits": []interface{}{int64(0b1001), int64(0b1)},
	}
	v, err := bitSet(fields, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seq, ok := v.([]interface{})
	if !ok {
		t.Fatalf("got %#v", v)
	}
	want := []int64{0, 3, 64}
	if len(seq) != len(want) {
		t.Fatalf("got %v, want %v", seq, want)
	}
	for i, w := range want {
		if seq[i].(int64) != w {
			t.Errorf("index %d: got %v, want %d", i, seq[i], w)
		}
	}
}

func TestSizedSequenceLengthMismatchRejected(t *testing.T) {
	items := []interface{}{u32Block(3), "only-one"}
	_, err := sizedSequence(nil, items)
	if errors.Cause(err) != decodeerr.ErrInvalidBlockData {
		t.Fatalf("want ErrInvalidBlockData, got %v", err)
	}
}

func TestApplyUnknownClassNotHandled(t *testing.T) {
	v, handled, err := Apply("com.example.NotASpecialClass", nil, nil)
	if err != nil || handled || v != nil {
		t.Fatalf("got (%v, %v, %v), want (nil, false, nil)", v, handled, err)
	}
}
