// Package specialise holds the Collection Specialisers: handlers, dispatched
// by exact class name, that turn a Java container's writeObject block-data
// form (or, for BitSet, Calendar and Arrays$ArrayList, its plain declared
// fields) into a host sequence,
// mapping, or set.
package specialise

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/anthropics/javaserial/internal/decodeerr"
)

// Handler builds a container's host value from the default field values
// already decoded for its class level (fields) and the raw annotation items
// read from its write-method block (items, which starts with the opaque
// []byte size/header chunk for classes that use block data at all).
type Handler func(fields map[string]interface{}, items []interface{}) (interface{}, error)

var handlers = map[string]Handler{
	"java.util.ArrayList":                       sizedSequence,
	"java.util.LinkedList":                      sizedSequence,
	"java.util.ArrayDeque":                       sizedSequence,
	"java.util.concurrent.CopyOnWriteArrayList":  sizedSequence,
	"java.util.CollSer":                          sizedSequence,
	"java.util.HashMap":                          hashMap,
	"java.util.Hashtable":                        hashMap,
	"java.util.HashSet":                          hashSet,
	"java.util.PriorityQueue":                    priorityQueue,
	"java.util.BitSet":                           bitSet,
	"java.util.EnumMap":                          enumMap,
	"java.util.Date":                             date,
	"java.util.Calendar":                         calendar,
	"java.util.GregorianCalendar":                calendar,
	"java.util.Arrays$ArrayList":                 arraysArrayList,
}

// Apply dispatches to the specialiser registered for className, if any.
// handled is false when className has no specialiser, in which case the
// annotation region was still consumed by the caller but carries no
// specialised meaning here.
func Apply(className string, fields map[string]interface{}, items []interface{}) (value interface{}, handled bool, err error) {
	h, ok := handlers[className]
	if !ok {
		return nil, false, nil
	}
	v, err := h(fields, items)
	if err != nil {
		return nil, true, errors.Wrapf(err, "specialising %s", className)
	}
	return v, true, nil
}

// sizeBlock validates that items begins with a raw block-data chunk of
// exactly want bytes -- the "size byte" prefix each specialiser's layout is
// keyed on -- and returns it.
func sizeBlock(items []interface{}, want int, class string) ([]byte, error) {
	if len(items) == 0 {
		return nil, errors.Wrapf(decodeerr.ErrInvalidBlockData, "%s: missing size block", class)
	}
	b, ok := items[0].([]byte)
	if !ok {
		return nil, errors.Wrapf(decodeerr.ErrInvalidBlockData, "%s: expected raw block data, got %T", class, items[0])
	}
	if len(b) != want {
		return nil, errors.Wrapf(decodeerr.ErrInvalidBlockData, "%s: expected a %d-byte size block, got %d", class, want, len(b))
	}
	return b, nil
}

func i32At(b []byte, offset int) int32 {
	return int32(binary.BigEndian.Uint32(b[offset : offset+4]))
}

// sizedSequence handles ArrayList, LinkedList, ArrayDeque, CollSer, and
// CopyOnWriteArrayList: a 4-byte size block data then size stream-items.
func sizedSequence(_ map[string]interface{}, items []interface{}) (interface{}, error) {
	b, err := sizeBlock(items, 4, "list")
	if err != nil {
		return nil, err
	}
	size := int(i32At(b, 0))
	rest := items[1:]
	if len(rest) != size {
		return nil, errors.Wrapf(decodeerr.ErrInvalidBlockData, "list: expected %d elements, got %d", size, len(rest))
	}
	out := make([]interface{}, size)
	copy(out, rest)
	return out, nil
}

// hashMap handles HashMap and Hashtable: an 8-byte size block (bucket count,
// entry count) then entry_count (key, value) pairs. entry_count must be
// strictly less than bucket_count.
func hashMap(_ map[string]interface{}, items []interface{}) (interface{}, error) {
	b, err := sizeBlock(items, 8, "hashmap")
	if err != nil {
		return nil, err
	}
	bucketCount := i32At(b, 0)
	entryCount := i32At(b, 4)
	if entryCount >= bucketCount {
		return nil, errors.Wrapf(decodeerr.ErrInvalidBlockData,
			"hashmap: entry count %d must be less than bucket count %d", entryCount, bucketCount)
	}

	rest := items[1:]
	if len(rest) != int(entryCount)*2 {
		return nil, errors.Wrapf(decodeerr.ErrInvalidBlockData,
			"hashmap: expected %d key/value items, got %d", int(entryCount)*2, len(rest))
	}

	m := make(map[string]interface{}, entryCount)
	for i := 0; i < int(entryCount); i++ {
		m[fmt.Sprint(rest[2*i])] = rest[2*i+1]
	}
	return m, nil
}

// hashSet handles HashSet: a 12-byte size block (capacity, load factor,
// size) then size stream-items.
func hashSet(_ map[string]interface{}, items []interface{}) (interface{}, error) {
	b, err := sizeBlock(items, 12, "hashset")
	if err != nil {
		return nil, err
	}
	size := i32At(b, 8)
	rest := items[1:]
	if len(rest) != int(size) {
		return nil, errors.Wrapf(decodeerr.ErrInvalidBlockData, "hashset: expected %d elements, got %d", size, len(rest))
	}
	out := make([]interface{}, size)
	copy(out, rest)
	return out, nil
}

// priorityQueue handles PriorityQueue: a 4-byte size block carrying
// max(2, size+1), then size stream-items in heap-array order.
func priorityQueue(_ map[string]interface{}, items []interface{}) (interface{}, error) {
	b, err := sizeBlock(items, 4, "priorityqueue")
	if err != nil {
		return nil, err
	}
	wireSize := i32At(b, 0)
	if wireSize < 2 {
		return nil, errors.Wrapf(decodeerr.ErrInvalidBlockData, "priorityqueue: wire size %d below minimum of 2", wireSize)
	}
	size := int(wireSize) - 1
	rest := items[1:]
	// An empty queue also writes the minimum of 2, followed by no items.
	if wireSize == 2 && len(rest) == 0 {
		size = 0
	}
	if len(rest) != size {
		return nil, errors.Wrapf(decodeerr.ErrInvalidBlockData, "priorityqueue: expected %d elements, got %d", size, len(rest))
	}
	out := make([]interface{}, size)
	copy(out, rest)
	return out, nil
}

// enumMap handles EnumMap: a 4-byte size block then size (key, value) pairs,
// keys being the enum constants themselves.
func enumMap(_ map[string]interface{}, items []interface{}) (interface{}, error) {
	b, err := sizeBlock(items, 4, "enummap")
	if err != nil {
		return nil, err
	}
	size := i32At(b, 0)
	rest := items[1:]
	if len(rest) != int(size)*2 {
		return nil, errors.Wrapf(decodeerr.ErrInvalidBlockData, "enummap: expected %d key/value items, got %d", int(size)*2, len(rest))
	}
	m := make(map[string]interface{}, size)
	for i := 0; i < int(size); i++ {
		m[fmt.Sprint(rest[2*i])] = rest[2*i+1]
	}
	return m, nil
}

// bitSet reinterprets BitSet's declared "bits" field (a long[] already
// decoded into fields by the ordinary field-value pipeline) as a set of bit
// indices: for the long at word position i, bit j contributes index i*64+j.
func bitSet(fields map[string]interface{}, _ []interface{}) (interface{}, error) {
	raw, ok := fields["bits"]
	if !ok {
		raw, ok = fields["words"]
	}
	if !ok {
		return nil, errors.Wrap(decodeerr.ErrInvalidBlockData, "bitset: missing bits field")
	}

	words, ok := raw.([]interface{})
	if !ok {
		return nil, errors.Wrapf(decodeerr.ErrInvalidBlockData, "bitset: bits field has type %T", raw)
	}

	out := []interface{}{}
	for i, v := range words {
		word, ok := v.(int64)
		if !ok {
			return nil, errors.Wrapf(decodeerr.ErrInvalidBlockData, "bitset: word %d has type %T", i, v)
		}
		for j := 0; j < 64; j++ {
			if (word>>uint(j))&1 == 1 {
				out = append(out, int64(i)*64+int64(j))
			}
		}
	}
	return out, nil
}

// date handles java.util.Date: its writeObject writes the epoch-millisecond
// long directly as an 8-byte block, with no declared fields.
func date(_ map[string]interface{}, items []interface{}) (interface{}, error) {
	if len(items) == 0 {
		return nil, errors.Wrap(decodeerr.ErrInvalidBlockData, "date: missing timestamp block")
	}
	b, ok := items[0].([]byte)
	if !ok || len(b) < 8 {
		return nil, errors.Wrap(decodeerr.ErrInvalidBlockData, "date: malformed timestamp block")
	}
	millis := int64(binary.BigEndian.Uint64(b[:8]))
	return map[string]interface{}{"millis": millis}, nil
}

// calendar handles Calendar/GregorianCalendar by surfacing their declared
// "time" field (epoch milliseconds); Calendar's writeObject block data is
// consumed by the caller but not reflected here, and neither is
// GregorianCalendar's own declared gregorianCutover field.
func calendar(fields map[string]interface{}, _ []interface{}) (interface{}, error) {
	v, ok := fields["time"]
	if !ok {
		return nil, errors.Wrap(decodeerr.ErrInvalidBlockData, "calendar: missing time field")
	}
	millis, ok := v.(int64)
	if !ok {
		return nil, errors.Wrapf(decodeerr.ErrInvalidBlockData, "calendar: time field has type %T", v)
	}
	return map[string]interface{}{"millis": millis}, nil
}

// arraysArrayList handles java.util.Arrays$ArrayList, whose only declared
// field "a" is the backing Object[] -- promoted directly to the sequence.
func arraysArrayList(fields map[string]interface{}, _ []interface{}) (interface{}, error) {
	v, ok := fields["a"]
	if !ok {
		return nil, errors.Wrap(decodeerr.ErrInvalidBlockData, "Arrays$ArrayList: missing backing array field 'a'")
	}
	return v, nil
}
