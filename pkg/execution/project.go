package execution

import (
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// Project evaluates a fixed list of output expressions against each
// child row, producing a ProjectTuple whose cell_at(n) is the nth
// expression's value and whose find_cell resolves by output alias
// (§4.4). Grounded on the teacher's execution.Project, generalized from
// selecting existing fields to evaluating arbitrary expr.Expression
// trees.
type Project struct {
	baseIterator
	child Operator
	exprs []expr.Expression
}

func NewProject(child Operator, exprs []expr.Expression) *Project {
	return &Project{child: child, exprs: exprs}
}

func (p *Project) Open(tx *txn.Transaction) error {
	if err := p.child.Open(tx); err != nil {
		return err
	}
	p.markOpened()
	return nil
}

func (p *Project) SetParentTuple(row tuple.Tuple) {
	p.baseIterator.SetParentTuple(row)
	p.child.SetParentTuple(row)
}

func (p *Project) Next() (tuple.Tuple, error) {
	if !p.isOpen() {
		return nil, errkind.New(errkind.Internal, "INTERNAL", "Project.Next called before Open")
	}
	row, err := p.child.Next()
	if err != nil {
		return nil, err
	}
	values := make([]types.Value, len(p.exprs))
	aliases := make([]string, len(p.exprs))
	for i, e := range p.exprs {
		v, err := e.GetValue(row)
		if err != nil {
			return nil, err
		}
		values[i] = v
		aliases[i] = e.Alias()
	}
	return tuple.NewProjectTuple(values, aliases), nil
}

func (p *Project) Close() error {
	p.markClosed()
	return p.child.Close()
}
