package models

import (
	"encoding/json"
	"fmt"
)

// Kind is the semantic category of a JSON value.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:    "null",
	KindBoolean: "boolean",
	KindNumber:  "number",
	KindString:  "string",
	KindArray:   "array",
	KindObject:  "object",
}

// Kinds lists every kind in declaration order.
var Kinds = []Kind{KindNull, KindBoolean, KindNumber, KindString, KindArray, KindObject}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsContainer reports whether values of this kind can hold children.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return KindNull, false
}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value *Value
}

// Value is an immutable JSON value. The zero Value is a JSON null.
// Callers must not modify slices returned by Items or Members.
type Value struct {
	kind    Kind
	boolean bool
	number  json.Number
	str     string
	items   []*Value
	members []Member
}

// Null returns a JSON null.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool returns a JSON boolean.
func Bool(b bool) *Value {
	return &Value{kind: KindBoolean, boolean: b}
}

// Number returns a JSON number holding the literal text n.
func Number(n json.Number) *Value {
	return &Value{kind: KindNumber, number: n}
}

// String returns a JSON string.
func String(s string) *Value {
	return &Value{kind: KindString, str: s}
}

// Array returns a JSON array of the given elements in order.
func Array(items ...*Value) *Value {
	if items == nil {
		items = []*Value{}
	}
	return &Value{kind: KindArray, items: items}
}

// Object returns a JSON object with members in insertion order.
// A repeated key keeps the position of its first occurrence and the
// value of its last.
func Object(members ...Member) *Value {
	out := make([]Member, 0, len(members))
	seen := make(map[string]int, len(members))
	for _, m := range members {
		if i, ok := seen[m.Key]; ok {
			out[i].Value = m.Value
			continue
		}
		seen[m.Key] = len(out)
		out = append(out, m)
	}
	return &Value{kind: KindObject, members: out}
}

// Kind returns the kind of v. A nil *Value reports KindNull.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// Bool returns the boolean payload.
func (v *Value) Bool() bool { return v.boolean }

// Number returns the numeric literal.
func (v *Value) Number() json.Number { return v.number }

// Str returns the string payload.
func (v *Value) Str() string { return v.str }

// Items returns the elements of an array.
func (v *Value) Items() []*Value { return v.items }

// Members returns the members of an object in insertion order.
func (v *Value) Members() []Member { return v.members }

// Len returns the element count of an array or member count of an
// object, and 0 for scalars.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Get returns the member value for key.
func (v *Value) Get(key string) (*Value, bool) {
	if v.Kind() != KindObject {
		return nil, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Index returns the i-th array element.
func (v *Value) Index(i int) (*Value, bool) {
	if v.Kind() != KindArray || i < 0 || i >= len(v.items) {
		return nil, false
	}
	return v.items[i], true
}

// Document is the result of parsing raw input. A nil Root means no
// document was supplied, which is distinct from a JSON null.
type Document struct {
	Root *Value
}

// Empty reports whether the document holds no value.
func (d Document) Empty() bool {
	return d.Root == nil
}
