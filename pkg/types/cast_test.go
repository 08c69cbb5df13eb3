package types

import "testing"

func TestCastTo_NullPassesThrough(t *testing.T) {
	v, err := CastTo(Nil, Int)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsNull() {
		t.Errorf("expected NULL to stay NULL, got %v", v)
	}
}

func TestCastTo_CharsToInt(t *testing.T) {
	v, err := CastTo(NewChars("42", 4), Int)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	iv, ok := v.(IntValue)
	if !ok || iv.V != 42 {
		t.Errorf("expected IntValue(42), got %v", v)
	}
}

func TestCastTo_CharsToIntInvalid(t *testing.T) {
	_, err := CastTo(NewChars("not-a-number", 20), Int)
	if err == nil {
		t.Fatalf("expected an error casting 'not-a-number' to INT")
	}
}

func TestCastTo_IntToFloat(t *testing.T) {
	v, err := CastTo(NewInt(3), Float)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fv, ok := v.(FloatValue)
	if !ok || fv.V != 3.0 {
		t.Errorf("expected FloatValue(3), got %v", v)
	}
}

func TestCastTo_AnyToChars(t *testing.T) {
	v, err := CastTo(NewInt(99), Chars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.String() != "99" {
		t.Errorf("expected '99', got %q", v.String())
	}
}

func TestCastTo_IntToBool(t *testing.T) {
	v, err := CastTo(NewInt(0), Bool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(BoolValue).V != false {
		t.Errorf("expected 0 to cast to false")
	}
}
