package ast

import "github.com/kgcyyds/miniob-2024/pkg/types"

// ColumnDef is one column of a CREATE TABLE, before the resolver turns
// it into a schema.FieldMeta.
type ColumnDef struct {
	Name     string
	Type     types.Type
	Length   int // declared capacity; 0 means "use the type's default width"
	Nullable bool
}

type CreateTableStmt struct {
	Table         string
	Columns       []ColumnDef
	StorageFormat string // empty unless STORAGE FORMAT = id was given
}

func (*CreateTableStmt) Kind() StatementKind { return KindCreateTable }

type DropTableStmt struct {
	Table string
}

func (*DropTableStmt) Kind() StatementKind { return KindDropTable }

// CreateIndexStmt is `CREATE [UNIQUE] INDEX name ON table(col, ...)`.
type CreateIndexStmt struct {
	Index   string
	Table   string
	Columns []string
	Unique  bool
}

func (*CreateIndexStmt) Kind() StatementKind { return KindCreateIndex }

type DropIndexStmt struct {
	Index string
	Table string
}

func (*DropIndexStmt) Kind() StatementKind { return KindDropIndex }
