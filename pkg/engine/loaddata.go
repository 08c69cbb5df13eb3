package engine

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/execution"
	"github.com/kgcyyds/miniob-2024/pkg/resolver"
	"github.com/kgcyyds/miniob-2024/pkg/schema"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// loadDataFile reads a local CSV file (one row per line, comma-separated,
// matching the table's user-visible column order) and inserts it row by
// row through the ordinary INSERT operator, reusing its index-maintenance
// logic instead of duplicating it. This is deliberately the simplest
// faithful reading of LOAD DATA rather than the streaming/batched
// ingestion a production loader would use -- one CSV parse, one Insert
// operator invocation over every row.
func (s *Session) loadDataFile(tx *txn.Transaction, st *resolver.ResolvedLoadData) (*Result, error) {
	f, err := os.Open(st.File)
	if err != nil {
		return nil, errkind.Wrap(err, errkind.Storage, "STORAGE_IO", "failed to open load file "+st.File)
	}
	defer f.Close()

	names := st.Table.Meta.UserFieldNames()
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(names)

	var rows [][]types.Value
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errkind.Wrap(err, errkind.Parse, "PARSE_ERROR", "malformed CSV row in "+st.File)
		}
		row, err := coerceLoadRow(st.Table.Meta, names, record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	op := execution.NewInsert(st.Table, rows)
	if err := op.Open(tx); err != nil {
		return nil, err
	}
	defer op.Close()

	if _, err := op.Next(); err != nil {
		return nil, err
	}
	return countResult(int64(len(rows))), nil
}

// coerceLoadRow converts one CSV record's string cells to the declared
// type of each column, in the table's user-visible column order. An
// empty cell coerces to NULL when the column allows it.
func coerceLoadRow(tm *schema.TableMeta, names []string, record []string) ([]types.Value, error) {
	values := make([]types.Value, len(names))
	for i, name := range names {
		fm, ok := tm.FieldByName(name)
		if !ok {
			return nil, errkind.New(errkind.Internal, "INTERNAL", "load column not found: "+name)
		}
		cell := record[i]
		if cell == "" {
			if !fm.Nullable {
				return nil, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch,
					"column "+fm.Name+" does not allow NULL")
			}
			values[i] = types.Nil
			continue
		}
		v, err := types.CastTo(types.NewChars(cell, len(cell)), fm.Type)
		if err != nil {
			return nil, err
		}
		if cv, ok := v.(types.CharsValue); ok {
			if len(cv.V) > fm.Length {
				return nil, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch,
					"value too long for column "+fm.Name)
			}
			v = types.NewChars(cv.V, fm.Length)
		}
		values[i] = v
	}
	return values, nil
}
