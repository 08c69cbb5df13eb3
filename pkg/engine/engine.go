// Package engine is the statement-execution front door §6 names: given a
// SQL string it parses, resolves, plans (or dispatches straight to the
// catalog for DDL/session statements), runs the result, and reports back
// through a Result. It plays the same coordinating role as the teacher's
// pkg/database.Database, adapted from a single always-open instance to
// one *Engine shared by many independent *Session values, each owning
// its own transaction, matching §5's "multiple connections run
// independently" model rather than the teacher's single ambient
// transaction registry.
package engine

import (
	"sync"
	"sync/atomic"

	"github.com/kgcyyds/miniob-2024/pkg/catalog"
)

// Stats tracks aggregate execution counters across every session an
// Engine has served, grounded on the teacher's DatabaseStats.
type Stats struct {
	QueriesExecuted int64
	ErrorCount      int64
}

func (s *Stats) recordSuccess() { atomic.AddInt64(&s.QueriesExecuted, 1) }
func (s *Stats) recordError()   { atomic.AddInt64(&s.QueriesExecuted, 1); atomic.AddInt64(&s.ErrorCount, 1) }

func (s *Stats) snapshot() Stats {
	return Stats{
		QueriesExecuted: atomic.LoadInt64(&s.QueriesExecuted),
		ErrorCount:      atomic.LoadInt64(&s.ErrorCount),
	}
}

// Info reports engine-wide metadata, the fields the ui package's
// statistics view and SHOW TABLES draw from. Grounded on the teacher's
// DatabaseInfo.
type Info struct {
	Tables          []string
	TableCount      int
	QueriesExecuted int64
	ErrorCount      int64
}

// Engine owns the process-wide catalog and the data directory new tables
// are file-backed under. It is safe for concurrent use: every mutating
// operation goes through a *catalog.Db or *catalog.Table, both already
// internally synchronized, and Stats uses atomics.
type Engine struct {
	db      *catalog.Db
	dataDir string
	stats   Stats
	mu      sync.Mutex // serializes CREATE/DROP TABLE|INDEX across sessions
}

// New creates an Engine backed by an empty catalog. dataDir, when
// non-empty, makes every CREATE TABLE file-backed under it; when empty,
// tables live in memory only for the life of the process.
func New(dataDir string) *Engine {
	return &Engine{db: catalog.NewDb(), dataDir: dataDir}
}

// NewSession opens one independent statement-execution context against
// this engine's catalog.
func (e *Engine) NewSession() *Session {
	return &Session{engine: e, vars: make(map[string]string)}
}

// Catalog exposes the underlying catalog directly. Nothing in this module
// calls it; the ui package reads table names through Info.
func (e *Engine) Catalog() *catalog.Db { return e.db }

// Info reports the engine's current table list and cumulative stats.
func (e *Engine) Info() Info {
	names := e.db.TableNames()
	snap := e.stats.snapshot()
	return Info{
		Tables:          names,
		TableCount:      len(names),
		QueriesExecuted: snap.QueriesExecuted,
		ErrorCount:      snap.ErrorCount,
	}
}
