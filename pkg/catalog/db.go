package catalog

import (
	"sync"

	"github.com/kgcyyds/miniob-2024/pkg/errkind"
)

// Db is the process-global catalog: a mapping from relation name to owned
// Table. Per §3, catalog mutation (CREATE/DROP) is single-writer and
// serialization of concurrent DDL is left to the surrounding server; Db
// itself only guarantees its own map is not corrupted by concurrent
// access, guarding it with a RWMutex the way the teacher's tableCache
// guards its name index.
type Db struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewDb creates an empty catalog.
func NewDb() *Db {
	return &Db{tables: make(map[string]*Table)}
}

// CreateTable registers a new table. Fails with a Schema error if a table
// of that name already exists.
func (db *Db) CreateTable(name string, t *Table) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.tables[name]; exists {
		return errkind.New(errkind.Schema, errkind.CodeSchemaTableExists, "table already exists: "+name)
	}
	db.tables[name] = t
	return nil
}

// DropTable removes a table. Fails with a Schema error if it does not
// exist.
func (db *Db) DropTable(name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.tables[name]; !exists {
		return errkind.New(errkind.Schema, errkind.CodeSchemaTableNotExist, "table does not exist: "+name)
	}
	delete(db.tables, name)
	return nil
}

// Table looks up a table by name.
func (db *Db) Table(name string) (*Table, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	t, ok := db.tables[name]
	if !ok {
		return nil, errkind.New(errkind.Schema, errkind.CodeSchemaTableNotExist, "table does not exist: "+name)
	}
	return t, nil
}

// TableNames returns every relation name currently in the catalog, used
// by SHOW TABLES.
func (db *Db) TableNames() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	return names
}
