package types

import "testing"

func TestIntValue_Equals(t *testing.T) {
	a := NewInt(42)
	b := NewInt(42)
	c := NewInt(7)

	if !a.Equals(b) {
		t.Errorf("expected %v to equal %v", a, b)
	}
	if a.Equals(c) {
		t.Errorf("expected %v to not equal %v", a, c)
	}
}

func TestCharsValue_String(t *testing.T) {
	v := NewChars("hello", 20)
	if v.String() != "hello" {
		t.Errorf("expected 'hello', got %q", v.String())
	}
	if v.Cap != 20 {
		t.Errorf("expected cap 20, got %d", v.Cap)
	}
}

func TestBoolValue_String(t *testing.T) {
	if NewBool(true).String() != "TRUE" {
		t.Errorf("expected TRUE")
	}
	if NewBool(false).String() != "FALSE" {
		t.Errorf("expected FALSE")
	}
}

func TestNullValue_NeverEqual(t *testing.T) {
	if Nil.Equals(Nil) {
		t.Errorf("NULL should never equal NULL under Equals")
	}
	if !Nil.IsNull() {
		t.Errorf("expected Nil.IsNull() to be true")
	}
}

func TestDateValue_String(t *testing.T) {
	d := NewDate(20240115)
	if d.String() != "2024-01-15" {
		t.Errorf("expected 2024-01-15, got %s", d.String())
	}
}
