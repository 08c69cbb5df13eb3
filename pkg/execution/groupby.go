package execution

import (
	"strings"

	"github.com/kgcyyds/miniob-2024/pkg/aggregation"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// HashGroupBy keys a hash table by the tuple of group-by Values -- NULL
// is its own key -- and each bucket owns one Aggregator per aggregate
// expression. On child EOF it iterates buckets producing one GroupTuple
// each (§4.5). Grounded on the teacher's aggregation.GroupAggregator
// interface (group-keyed bucket + per-bucket aggregate value), adapted
// from a single aggregate field to an arbitrary list of AggregateExprs
// per group.
type HashGroupBy struct {
	baseIterator
	child      Operator
	groupExprs []expr.Expression
	aggExprs   []*expr.AggregateExpr

	buckets   map[string]*bucket
	order     []string
	emitIndex int
	computed  bool
}

type bucket struct {
	keys []types.Value
	aggs []aggregation.Aggregator
}

func NewHashGroupBy(child Operator, groupExprs []expr.Expression, aggExprs []*expr.AggregateExpr) *HashGroupBy {
	return &HashGroupBy{child: child, groupExprs: groupExprs, aggExprs: aggExprs}
}

func (g *HashGroupBy) Open(tx *txn.Transaction) error {
	if err := g.child.Open(tx); err != nil {
		return err
	}
	g.buckets = make(map[string]*bucket)
	g.order = nil
	g.emitIndex = 0
	g.computed = false
	g.markOpened()
	return nil
}

func (g *HashGroupBy) SetParentTuple(row tuple.Tuple) {
	g.baseIterator.SetParentTuple(row)
	g.child.SetParentTuple(row)
}

func (g *HashGroupBy) Next() (tuple.Tuple, error) {
	if !g.isOpen() {
		return nil, errkind.New(errkind.Internal, "INTERNAL", "HashGroupBy.Next called before Open")
	}
	if !g.computed {
		if err := g.consume(); err != nil {
			return nil, err
		}
		g.computed = true
	}
	if g.emitIndex >= len(g.order) {
		return nil, storage.ErrEOF
	}
	b := g.buckets[g.order[g.emitIndex]]
	g.emitIndex++
	return g.emit(b)
}

func (g *HashGroupBy) consume() error {
	for {
		row, err := g.child.Next()
		if err == storage.ErrEOF {
			return nil
		}
		if err != nil {
			return err
		}
		keys := make([]types.Value, len(g.groupExprs))
		for i, ge := range g.groupExprs {
			v, err := ge.GetValue(row)
			if err != nil {
				return err
			}
			keys[i] = v
		}
		hashKey := groupKey(keys)
		b, ok := g.buckets[hashKey]
		if !ok {
			b = &bucket{keys: keys, aggs: make([]aggregation.Aggregator, len(g.aggExprs))}
			for i, ae := range g.aggExprs {
				b.aggs[i] = ae.NewAggregator()
			}
			g.buckets[hashKey] = b
			g.order = append(g.order, hashKey)
		}
		for i, ae := range g.aggExprs {
			var argVal types.Value = types.Nil
			if ae.Arg != nil {
				v, err := ae.Arg.GetValue(row)
				if err != nil {
					return err
				}
				argVal = v
			}
			if err := b.aggs[i].Merge(argVal); err != nil {
				return err
			}
		}
	}
}

func (g *HashGroupBy) emit(b *bucket) (tuple.Tuple, error) {
	keyAliases := make([]string, len(g.groupExprs))
	for i, ge := range g.groupExprs {
		keyAliases[i] = ge.Alias()
	}
	aggValues := make([]types.Value, len(b.aggs))
	aggAliases := make([]string, len(b.aggs))
	for i, agg := range b.aggs {
		v, err := agg.Result()
		if err != nil {
			return nil, err
		}
		aggValues[i] = v
		aggAliases[i] = g.aggExprs[i].Alias()
	}
	return tuple.NewGroupTuple(b.keys, keyAliases, aggValues, aggAliases), nil
}

func (g *HashGroupBy) Close() error {
	g.markClosed()
	return g.child.Close()
}

// groupKey turns a slice of group-by values into a string bucket key.
// NULL is its own key: every NULL maps to the same "\x00" marker, so all
// NULL rows land in one group, per §4.5.
func groupKey(values []types.Value) string {
	var b strings.Builder
	for _, v := range values {
		if v.IsNull() {
			b.WriteByte(0)
		} else {
			b.WriteString(v.String())
			b.WriteByte(1)
		}
	}
	return b.String()
}
