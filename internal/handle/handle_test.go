package handle

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/anthropics/javaserial/internal/decodeerr"
)

func TestReserveAssignsSequentialHandlesFromBase(t *testing.T) {
	tbl := NewTable()

	h0, n0 := tbl.Reserve(KindClass)
	h1, n1 := tbl.Reserve(KindString)

	if h0 != BaseHandle {
		t.Fatalf("first handle: got %#x, want %#x", h0, BaseHandle)
	}
	if h1 != BaseHandle+1 {
		t.Fatalf("second handle: got %#x, want %#x", h1, BaseHandle+1)
	}
	if n0.Kind != KindClass || n1.Kind != KindString {
		t.Fatalf("unexpected kinds: %v, %v", n0.Kind, n1.Kind)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", tbl.Len())
	}
}

func TestFindResolvesReservedHandle(t *testing.T) {
	tbl := NewTable()
	h, node := tbl.Reserve(KindObject)
	node.Value = "built"

	got, err := tbl.Find(h)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Value != "built" {
		t.Fatalf("got %v, want %q", got.Value, "built")
	}
}

func TestFindUnassignedHandleErrors(t *testing.T) {
	tbl := NewTable()
	tbl.Reserve(KindClass)

	_, err := tbl.Find(BaseHandle + 5)
	if errors.Cause(err) != decodeerr.ErrHandleNotFound {
		t.Fatalf("want ErrHandleNotFound, got %v", err)
	}
}

func TestFindBelowBaseHandleErrors(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.Find(BaseHandle - 1)
	if errors.Cause(err) != decodeerr.ErrHandleNotFound {
		t.Fatalf("want ErrHandleNotFound, got %v", err)
	}
}

func TestReserveThenMutateSupportsCycles(t *testing.T) {
	tbl := NewTable()
	h, node := tbl.Reserve(KindObject)

	// A child reading back a handle to its still-under-construction parent
	// must see a Node with Value still nil -- the cycle-detection contract.
	mid, err := tbl.Find(h)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if mid.Value != nil {
		t.Fatalf("expected nil Value before construction completes, got %v", mid.Value)
	}

	node.Value = map[string]interface{}{"self": nil}
	final, err := tbl.Find(h)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if final.Value == nil {
		t.Fatal("expected Value to be populated after construction completes")
	}
}

func TestClassDescFlagHelpers(t *testing.T) {
	cd := &ClassDesc{Flags: SCSerializable | SCWriteMethod}
	if !cd.HasWriteMethod() {
		t.Fatal("expected HasWriteMethod to be true")
	}
	if cd.IsEnum() {
		t.Fatal("expected IsEnum to be false")
	}

	enumCD := &ClassDesc{Flags: SCSerializable | SCEnum}
	if !enumCD.IsEnum() {
		t.Fatal("expected IsEnum to be true")
	}
}

func TestFieldDescIsObjectType(t *testing.T) {
	cases := []struct {
		tc   byte
		want bool
	}{
		{'L', true},
		{'[', true},
		{'I', false},
		{'Z', false},
	}
	for _, c := range cases {
		f := &FieldDesc{TypeCode: c.tc}
		if got := f.IsObjectType(); got != c.want {
			t.Errorf("typecode %q: got %v, want %v", string(c.tc), got, c.want)
		}
	}
}
