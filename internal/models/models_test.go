package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	names := make([]string, 0, len(Kinds))
	for _, k := range Kinds {
		names = append(names, k.String())
	}
	assert.Equal(t, []string{"null", "boolean", "number", "string", "array", "object"}, names)
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, ok := ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("integer")
	assert.False(t, ok)
}

func TestObject_DuplicateKeys(t *testing.T) {
	v := Object(
		Member{Key: "a", Value: Number("1")},
		Member{Key: "b", Value: Number("2")},
		Member{Key: "a", Value: Number("3")},
	)

	assert.Equal(t, 2, v.Len())
	assert.Equal(t, "a", v.Members()[0].Key)
	got, ok := v.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "3", got.Number().String())
}

func TestValue_Accessors(t *testing.T) {
	arr := Array(String("x"), Null())
	assert.Equal(t, KindArray, arr.Kind())
	assert.Equal(t, 2, arr.Len())

	item, ok := arr.Index(0)
	assert.True(t, ok)
	assert.Equal(t, "x", item.Str())
	_, ok = arr.Index(2)
	assert.False(t, ok)
	_, ok = arr.Get("x")
	assert.False(t, ok)

	assert.Equal(t, 0, String("abc").Len())
	assert.NotNil(t, Array().Items())

	var nilValue *Value
	assert.Equal(t, KindNull, nilValue.Kind())
	assert.Equal(t, 0, nilValue.Len())
}

func TestDocument_Empty(t *testing.T) {
	assert.True(t, Document{}.Empty())
	assert.False(t, Document{Root: Null()}.Empty())
}
