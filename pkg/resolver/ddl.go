package resolver

import (
	"github.com/kgcyyds/miniob-2024/pkg/ast"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/schema"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// resolveCreateTable turns each ast.ColumnDef into a schema.FieldMeta and
// lays the table out via schema.NewTableMeta. Column length defaults per
// declared type when the column definition left it at zero.
func (r *Resolver) resolveCreateTable(stmt *ast.CreateTableStmt) (*ResolvedCreateTable, error) {
	if _, err := r.db.Table(stmt.Table); err == nil {
		return nil, errkind.New(errkind.Schema, errkind.CodeSchemaTableExists, "table already exists: "+stmt.Table)
	}

	seen := make(map[string]bool, len(stmt.Columns))
	fields := make([]schema.FieldMeta, 0, len(stmt.Columns))
	for i, col := range stmt.Columns {
		if seen[col.Name] {
			return nil, errkind.New(errkind.Semantic, errkind.CodeInvalidArgument, "duplicate column name: "+col.Name)
		}
		seen[col.Name] = true
		length := col.Length
		if length <= 0 {
			length = defaultLength(col.Type)
		}
		fields = append(fields, schema.NewFieldMeta(col.Name, col.Type, 0, length, col.Nullable, i))
	}

	meta := schema.NewTableMeta(stmt.Table, fields, stmt.StorageFormat)
	return &ResolvedCreateTable{Meta: meta}, nil
}

func defaultLength(t types.Type) int {
	switch t {
	case types.Bool:
		return 1
	default:
		return 4
	}
}

func (r *Resolver) resolveCreateIndex(stmt *ast.CreateIndexStmt) (*ResolvedCreateIndex, error) {
	tbl, err := r.db.Table(stmt.Table)
	if err != nil {
		return nil, err
	}
	if _, ok := tbl.Index(stmt.Index); ok {
		return nil, errkind.New(errkind.Schema, errkind.CodeIndexExists, "index already exists: "+stmt.Index)
	}
	fieldIDs := make([]int, 0, len(stmt.Columns))
	for _, col := range stmt.Columns {
		fm, ok := tbl.Meta.FieldByName(col)
		if !ok {
			return nil, errFieldMissing(col)
		}
		fieldIDs = append(fieldIDs, fm.FieldID)
	}
	return &ResolvedCreateIndex{Table: tbl, IndexName: stmt.Index, FieldIDs: fieldIDs, Unique: stmt.Unique}, nil
}

func (r *Resolver) resolveDropIndex(stmt *ast.DropIndexStmt) (*ResolvedDropIndex, error) {
	tbl, err := r.db.Table(stmt.Table)
	if err != nil {
		return nil, err
	}
	if _, ok := tbl.Index(stmt.Index); !ok {
		return nil, errkind.New(errkind.Schema, errkind.CodeIndexNotExist, "index does not exist: "+stmt.Index)
	}
	return &ResolvedDropIndex{Table: tbl, IndexName: stmt.Index}, nil
}
