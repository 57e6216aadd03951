// Package handle implements the protocol's handle (reference) table and the
// Type Node sum type every handle-bearing entity decodes into: a class
// descriptor, a string, an object, or an array. Field descriptors are their
// own type and are never handle-bearing themselves (only the stream-string
// carrying an L/[ field's class name is).
package handle

import (
	"github.com/pkg/errors"

	"github.com/anthropics/javaserial/internal/decodeerr"
)

// BaseHandle is the first handle assigned in any stream.
const BaseHandle int32 = 0x7E0000

// Class descriptor flag bits of the flags byte.
const (
	SCWriteMethod    uint8 = 0x01
	SCSerializable   uint8 = 0x02
	SCExternalizable uint8 = 0x04
	SCBlockData      uint8 = 0x08
	SCEnum           uint8 = 0x10
)

// Kind tags which variant a Node currently holds.
type Kind uint8

const (
	KindClass Kind = iota
	KindString
	KindObject
	KindArray
)

// FieldDesc describes one field of a class: its wire typecode, its name, and
// -- for object ('L') and array ('[') typecodes only -- the field type's raw
// class name exactly as it appeared on the wire (including the "L...;" or
// "[..." wrapping). Canonicalisation/stripping is left to consumers.
type FieldDesc struct {
	TypeCode  byte
	Name      string
	ClassName string
}

// IsObjectType reports whether the field holds an object or array reference
// (and therefore carries a ClassName read as a handle-bearing stream-string).
func (f *FieldDesc) IsObjectType() bool {
	return f.TypeCode == 'L' || f.TypeCode == '['
}

// ClassDesc is the decoded form of a TC_CLASSDESC: name, version UID, flags,
// ordered fields, and an optional super class descriptor. It is handle-bearing
// and is registered in the table before its fields are parsed (see Table.Reserve).
type ClassDesc struct {
	Name             string
	SerialVersionUID string // hex-encoded 8-byte UID
	Flags            uint8
	Fields           []*FieldDesc
	Super            *ClassDesc
	Annotations      []interface{}
}

func (c *ClassDesc) IsEnum() bool         { return c.Flags&SCEnum != 0 }
func (c *ClassDesc) HasWriteMethod() bool { return c.Flags&SCWriteMethod != 0 }

// Node is the tagged record every handle-bearing entity is represented as.
// Object and Array nodes are reserved (Kind set, Value nil) before their
// children are parsed, so a child can legally back-reference the still-under-
// construction parent; Value is filled in once the entity is fully decoded.
type Node struct {
	Kind  Kind
	Class *ClassDesc  // valid when Kind == KindClass
	Str   string       // valid when Kind == KindString
	Value interface{} // valid when Kind == KindObject or KindArray, once built
}

// Table is the append-only, indexed handle store. The first handle it hands
// out is BaseHandle; each subsequent one is the previous plus one.
type Table struct {
	nodes []*Node
}

// NewTable returns an empty handle table.
func NewTable() *Table {
	return &Table{}
}

func (t *Table) nextHandle() int32 {
	return BaseHandle + int32(len(t.nodes))
}

// Reserve registers a new entity of the given kind, returning its handle and
// the live Node the caller should mutate as parsing proceeds (Class/Str
// immediately, Value once construction completes). This is the "append
// returns a handle and a slot the walker later fills" shape called for by
// the handle-assignment-timing contract.
func (t *Table) Reserve(kind Kind) (int32, *Node) {
	h := t.nextHandle()
	n := &Node{Kind: kind}
	t.nodes = append(t.nodes, n)
	return h, n
}

// Find looks up the node bound to handle h.
func (t *Table) Find(h int32) (*Node, error) {
	idx := int(h - BaseHandle)
	if idx < 0 || idx >= len(t.nodes) {
		return nil, errors.Wrapf(decodeerr.ErrHandleNotFound, "handle %#x (have %d handles assigned)", h, len(t.nodes))
	}
	return t.nodes[idx], nil
}

// Len reports how many handles have been assigned so far.
func (t *Table) Len() int { return len(t.nodes) }
