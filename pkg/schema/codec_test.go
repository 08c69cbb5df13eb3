package schema

import (
	"testing"

	"github.com/kgcyyds/miniob-2024/pkg/types"
)

func testMeta() *TableMeta {
	fields := []FieldMeta{
		NewFieldMeta("id", types.Int, 0, 4, false, 0),
		NewFieldMeta("name", types.Chars, 0, 10, true, 1),
		NewFieldMeta("active", types.Bool, 0, 1, false, 2),
	}
	return NewTableMeta("t", fields, "")
}

func TestEncodeDecodeRecord_RoundTrip(t *testing.T) {
	tm := testMeta()
	values := []types.Value{types.NewInt(7), types.NewChars("bob", 10), types.NewBool(true)}

	data, err := EncodeRecord(tm, values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != tm.RecordLength() {
		t.Fatalf("expected record length %d, got %d", tm.RecordLength(), len(data))
	}

	decoded, err := DecodeRecord(tm, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded[0].(types.IntValue).V != 7 {
		t.Errorf("expected id 7, got %v", decoded[0])
	}
	if decoded[1].(types.CharsValue).V != "bob" {
		t.Errorf("expected name 'bob', got %v", decoded[1])
	}
	if decoded[2].(types.BoolValue).V != true {
		t.Errorf("expected active true, got %v", decoded[2])
	}
}

func TestEncodeRecord_NullField(t *testing.T) {
	tm := testMeta()
	values := []types.Value{types.NewInt(1), types.Nil, types.NewBool(false)}

	data, err := EncodeRecord(tm, values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := DecodeRecord(tm, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded[1].IsNull() {
		t.Errorf("expected name to decode as NULL, got %v", decoded[1])
	}
}

func TestEncodeRecord_RejectsNullOnNonNullableField(t *testing.T) {
	tm := testMeta()
	values := []types.Value{types.Nil, types.NewChars("x", 10), types.NewBool(true)}

	if _, err := EncodeRecord(tm, values); err == nil {
		t.Fatalf("expected an error inserting NULL into a non-nullable field")
	}
}

func TestEncodeIndexKey_NullComponent(t *testing.T) {
	tm := testMeta()
	values := []types.Value{types.NewInt(1), types.Nil, types.NewBool(true)}

	key, err := EncodeIndexKey(tm, []int{1}, values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(key) != 1 || key[0] != 0 {
		t.Errorf("expected a single zero byte for a NULL key component, got %v", key)
	}
}
