package engine

import (
	"path/filepath"
	"runtime"
	"sort"

	"github.com/kgcyyds/miniob-2024/pkg/catalog"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/physicalplan"
	"github.com/kgcyyds/miniob-2024/pkg/resolver"
	"github.com/kgcyyds/miniob-2024/pkg/schema"
	"github.com/kgcyyds/miniob-2024/pkg/storage/heap"
	"github.com/kgcyyds/miniob-2024/pkg/storage/index/hash"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// execDDL runs every Resolved* kind that pkg/logicalplan never sees:
// schema mutation (CREATE/DROP TABLE|INDEX), catalog introspection
// (DESC TABLE, SHOW TABLES), bulk load, and the session/misc no-op
// acknowledgements (SYNC, BEGIN/COMMIT/ROLLBACK, SET, EXIT, HELP).
func (s *Session) execDDL(tx *txn.Transaction, stmt resolver.Statement) (*Result, error) {
	switch st := stmt.(type) {
	case *resolver.ResolvedCreateTable:
		return s.createTable(st)
	case *resolver.ResolvedDropTable:
		return s.dropTable(st)
	case *resolver.ResolvedCreateIndex:
		return s.createIndex(tx, st)
	case *resolver.ResolvedDropIndex:
		s.engine.mu.Lock()
		st.Table.RemoveIndex(st.IndexName)
		s.engine.mu.Unlock()
		return message("index dropped"), nil
	case *resolver.ResolvedDescTable:
		return descTable(st), nil
	case *resolver.ResolvedShowTables:
		return showTables(st), nil
	case *resolver.ResolvedLoadData:
		return s.loadDataFile(tx, st)
	case *resolver.ResolvedSync:
		return message("sync ok"), nil
	case *resolver.ResolvedBegin:
		return message("transaction started"), nil
	case *resolver.ResolvedCommit:
		return message("transaction committed"), nil
	case *resolver.ResolvedRollback:
		return message("transaction rolled back"), nil
	case *resolver.ResolvedSetVariable:
		s.vars[st.Name] = st.Value
		return message("variable set"), nil
	case *resolver.ResolvedExit:
		r := message("bye")
		r.Exit = true
		return r, nil
	case *resolver.ResolvedHelp:
		return explainResult(helpText), nil
	default:
		return nil, errkind.New(errkind.Internal, "INTERNAL", "unhandled catalog statement kind")
	}
}

func message(text string) *Result { return explainResult(text) }

// createTable registers a new relation, choosing a heap record manager
// backed by an OS file under the engine's data directory when one was
// configured, or a pure in-memory heap table otherwise.
func (s *Session) createTable(st *resolver.ResolvedCreateTable) (*Result, error) {
	s.engine.mu.Lock()
	defer s.engine.mu.Unlock()

	rm, err := s.newRecordManager(st.Meta)
	if err != nil {
		return nil, err
	}
	table := catalog.NewTable(st.Meta, rm)
	if err := s.engine.db.CreateTable(st.Meta.RelationName, table); err != nil {
		return nil, err
	}
	return message("table created"), nil
}

func (s *Session) newRecordManager(meta *schema.TableMeta) (*heap.Table, error) {
	if s.engine.dataDir == "" {
		return heap.NewTable(meta.RecordLength()), nil
	}
	path := filepath.Join(s.engine.dataDir, meta.RelationName+".tbl")
	return heap.NewFileTable(path, meta.RecordLength())
}

func (s *Session) dropTable(st *resolver.ResolvedDropTable) (*Result, error) {
	s.engine.mu.Lock()
	defer s.engine.mu.Unlock()

	if err := s.engine.db.DropTable(st.Table); err != nil {
		return nil, err
	}
	return message("table dropped"), nil
}

// createIndex builds the new index from a full table scan fanned out
// across CPUs (pkg/physicalplan.ParallelTableScan) rather than the
// storage.Index.Build method's built-in serial scan, since the parallel
// path is available here and CREATE INDEX is the one place in the
// system that pays for a full scan up front. The index is only
// registered on the table once every record has been inserted into it,
// so a duplicate-key failure midway through never leaves a partially
// built index visible to later statements.
func (s *Session) createIndex(tx *txn.Transaction, st *resolver.ResolvedCreateIndex) (*Result, error) {
	s.engine.mu.Lock()
	defer s.engine.mu.Unlock()

	records, err := physicalplan.ParallelTableScan(tx, st.Table, runtime.NumCPU())
	if err != nil {
		return nil, err
	}

	idx := hash.New(st.IndexName, st.Unique, st.FieldIDs)
	for _, rec := range records {
		values, err := schema.DecodeRecord(st.Table.Meta, rec.Data)
		if err != nil {
			return nil, err
		}
		key, err := schema.EncodeIndexKey(st.Table.Meta, st.FieldIDs, values)
		if err != nil {
			return nil, err
		}
		if err := idx.Insert(key, rec.RID); err != nil {
			return nil, err
		}
	}

	st.Table.AddIndex(idx)
	return message("index created"), nil
}

var descSchema = []string{"Field", "Type", "Length", "Nullable"}

func descTable(st *resolver.ResolvedDescTable) *Result {
	var rows [][]types.Value
	for _, f := range st.Table.Meta.Fields {
		if f.System {
			continue
		}
		rows = append(rows, []types.Value{
			types.NewChars(f.Name, len(f.Name)),
			types.NewChars(f.Type.String(), len(f.Type.String())),
			types.NewInt(int32(f.Length)),
			types.NewBool(f.Nullable),
		})
	}
	return rowsResult(descSchema, rows)
}

func showTables(st *resolver.ResolvedShowTables) *Result {
	names := append([]string{}, st.Names...)
	sort.Strings(names)
	rows := make([][]types.Value, len(names))
	for i, n := range names {
		rows[i] = []types.Value{types.NewChars(n, len(n))}
	}
	return rowsResult([]string{"Table"}, rows)
}

const helpText = `Commands:
  SELECT ... FROM ... [WHERE ...] [GROUP BY ...] [HAVING ...] [ORDER BY ...]
  INSERT INTO t VALUES (...), ...
  DELETE FROM t [WHERE ...]
  UPDATE t SET c = v, ... [WHERE ...]
  CREATE TABLE t (col TYPE [NOT NULL|NULL], ...) [STORAGE FORMAT = fmt]
  DROP TABLE t
  CREATE [UNIQUE] INDEX idx ON t (col, ...)
  DROP INDEX idx ON t
  DESC t
  SHOW TABLES
  LOAD DATA INFILE 'path' INTO TABLE t
  EXPLAIN <statement>
  CALC expr, ...
  SYNC / TRX BEGIN|COMMIT|ROLLBACK / SET name = value
  HELP / EXIT`
