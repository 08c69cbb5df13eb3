package schema

import (
	"encoding/binary"
	"math"

	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// EncodeRecord packs one row of values into the fixed-width physical
// layout described by tm: a leading null bitmap followed by each field's
// slot at its computed Offset. len(values) must equal tm.FieldCount().
func EncodeRecord(tm *TableMeta, values []types.Value) ([]byte, error) {
	if len(values) != tm.FieldCount() {
		return nil, errkind.New(errkind.Internal, "INTERNAL", "value count does not match field count")
	}
	buf := make([]byte, tm.RecordLength())
	for i, f := range tm.Fields {
		v := values[i]
		if v == nil || v.IsNull() {
			if !f.Nullable && !f.System {
				return nil, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch, "field "+f.Name+" is not nullable")
			}
			setBit(buf, i, true)
			continue
		}
		if err := encodeField(buf, f, v); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// DecodeRecord unpacks a physical record produced by EncodeRecord back
// into one types.Value per field, honoring the null bitmap.
func DecodeRecord(tm *TableMeta, data []byte) ([]types.Value, error) {
	if len(data) != tm.RecordLength() {
		return nil, errkind.New(errkind.Internal, "INTERNAL", "record length mismatch on decode")
	}
	out := make([]types.Value, len(tm.Fields))
	for i, f := range tm.Fields {
		if isBitSet(data, i) {
			out[i] = types.Nil
			continue
		}
		v, err := decodeField(data, f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// EncodeIndexKey concatenates the encoded bytes of the fields named by
// fieldIDs (each an index into tm.Fields) in order, producing the byte
// key an Index stores/looks records up by. A NULL component encodes as
// a single zero byte, distinct from any fixed-width field encoding.
func EncodeIndexKey(tm *TableMeta, fieldIDs []int, values []types.Value) ([]byte, error) {
	var out []byte
	for _, id := range fieldIDs {
		if id < 0 || id >= len(tm.Fields) {
			return nil, errkind.New(errkind.Internal, "INTERNAL", "index field id out of range")
		}
		f := tm.Fields[id]
		v := values[id]
		if v == nil || v.IsNull() {
			out = append(out, 0)
			continue
		}
		buf := make([]byte, f.Length)
		shifted := f
		shifted.Offset = 0
		if err := encodeField(buf, shifted, v); err != nil {
			return nil, err
		}
		out = append(out, 1)
		out = append(out, buf...)
	}
	return out, nil
}

func setBit(buf []byte, idx int, v bool) {
	byteIdx, bit := idx/8, uint(idx%8)
	if v {
		buf[byteIdx] |= 1 << bit
	} else {
		buf[byteIdx] &^= 1 << bit
	}
}

func isBitSet(buf []byte, idx int) bool {
	byteIdx, bit := idx/8, uint(idx%8)
	return buf[byteIdx]&(1<<bit) != 0
}

func encodeField(buf []byte, f FieldMeta, v types.Value) error {
	slot := buf[f.Offset : f.Offset+f.Length]
	switch f.Type {
	case types.Int:
		iv, ok := v.(types.IntValue)
		if !ok {
			return errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch, "expected INT for field "+f.Name)
		}
		binary.BigEndian.PutUint32(slot, uint32(iv.V))
	case types.Float:
		fv, ok := v.(types.FloatValue)
		if !ok {
			return errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch, "expected FLOAT for field "+f.Name)
		}
		binary.BigEndian.PutUint32(slot, math.Float32bits(fv.V))
	case types.Date:
		dv, ok := v.(types.DateValue)
		if !ok {
			return errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch, "expected DATE for field "+f.Name)
		}
		binary.BigEndian.PutUint32(slot, uint32(dv.V))
	case types.Bool:
		bv, ok := v.(types.BoolValue)
		if !ok {
			return errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch, "expected BOOLEAN for field "+f.Name)
		}
		if bv.V {
			slot[0] = 1
		} else {
			slot[0] = 0
		}
	case types.Chars:
		cv, ok := v.(types.CharsValue)
		if !ok {
			return errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch, "expected CHARS for field "+f.Name)
		}
		for i := range slot {
			slot[i] = 0
		}
		copy(slot, cv.V)
	default:
		return errkind.New(errkind.Internal, "INTERNAL", "unsupported physical type for field "+f.Name)
	}
	return nil
}

func decodeField(data []byte, f FieldMeta) (types.Value, error) {
	slot := data[f.Offset : f.Offset+f.Length]
	switch f.Type {
	case types.Int:
		return types.NewInt(int32(binary.BigEndian.Uint32(slot))), nil
	case types.Float:
		return types.NewFloat(math.Float32frombits(binary.BigEndian.Uint32(slot))), nil
	case types.Date:
		return types.NewDate(int32(binary.BigEndian.Uint32(slot))), nil
	case types.Bool:
		return types.NewBool(slot[0] != 0), nil
	case types.Chars:
		end := 0
		for end < len(slot) && slot[end] != 0 {
			end++
		}
		return types.NewChars(string(slot[:end]), f.Length), nil
	default:
		return nil, errkind.New(errkind.Internal, "INTERNAL", "unsupported physical type for field "+f.Name)
	}
}
