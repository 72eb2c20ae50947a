package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewater-db/tidewater/internal/ir"
)

// nopPass lets the default reconstruction handle every node.
type nopPass struct{}

func (nopPass) Name() string { return "nop" }

func (nopPass) Preorder(r *Rewriter, e ir.Expression) (Decision, error) {
	return Continue, nil
}

// stopWithoutMapPass violates the protocol: it claims to have handled the
// node but records no replacement.
type stopWithoutMapPass struct{}

func (stopWithoutMapPass) Name() string { return "stop-without-map" }

func (stopWithoutMapPass) Preorder(r *Rewriter, e ir.Expression) (Decision, error) {
	return Stop, nil
}

// renamePass rewrites every path reference to a fixed name, exercising
// the replacement machinery on leaves.
type renamePass struct{}

func (renamePass) Name() string { return "rename" }

func (renamePass) Preorder(r *Rewriter, e ir.Expression) (Decision, error) {
	path, ok := e.(*ir.PathExpression)
	if !ok {
		return Continue, nil
	}
	r.Push(e)
	r.Pop(e)
	r.Map(e, ir.NewPath(path.Prov, path.Type, "renamed"))
	return Stop, nil
}

// contextProbePass records the ancestor chain seen at the probed leaf.
type contextProbePass struct {
	seen []ir.Expression
}

func (*contextProbePass) Name() string { return "context-probe" }

func (p *contextProbePass) Preorder(r *Rewriter, e ir.Expression) (Decision, error) {
	if _, ok := e.(*ir.Literal); ok {
		p.seen = r.Context()
	}
	return Continue, nil
}

func sampleTree() *ir.ApplyExpression {
	arg := ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "x")
	inner := ir.NewApply(ir.EmptyProvenance, "abs", ir.Int32(false), arg)
	return ir.NewApply(ir.EmptyProvenance, "negate", ir.Int32(false), inner)
}

func TestNopPassReturnsInputUnchanged(t *testing.T) {
	root := sampleTree()
	out, err := New(nopPass{}).Apply(root)
	require.NoError(t, err)
	// No child changed, so the engine reuses the very same nodes.
	assert.Same(t, ir.Expression(root), out)
}

func TestRenamePassRebuildsSpine(t *testing.T) {
	root := sampleTree()
	out, err := New(renamePass{}).Apply(root)
	require.NoError(t, err)

	outApply := out.(*ir.ApplyExpression)
	assert.NotSame(t, ir.Expression(root), out)
	assert.Equal(t, "renamed", outApply.Function.(*ir.PathExpression).Path)
	inner := outApply.Args[0].(*ir.ApplyExpression)
	assert.Equal(t, "renamed", inner.Args[0].(*ir.PathExpression).Path)

	// The input tree is untouched.
	assert.Equal(t, "negate", root.Function.(*ir.PathExpression).Path)
	assert.Equal(t, "x", root.Args[0].(*ir.ApplyExpression).Args[0].(*ir.PathExpression).Path)
}

func TestSharedSubtreeRewrittenOnce(t *testing.T) {
	// The same physical node appears under two parents; both occurrences
	// must receive the same replacement object.
	shared := ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "x")
	root := &ir.ApplyExpression{
		Prov:     ir.EmptyProvenance,
		Type:     ir.Int32(false),
		Function: ir.NewPath(ir.EmptyProvenance, ir.Unknown(), "plus"),
		Args:     []ir.Expression{shared, shared},
	}

	r := New(renamePass{})
	out, err := r.Apply(root)
	require.NoError(t, err)

	outApply := out.(*ir.ApplyExpression)
	assert.Same(t, outApply.Args[0], outApply.Args[1])

	replacement, ok := r.Rewritten(shared)
	require.True(t, ok)
	assert.Same(t, replacement, outApply.Args[0])
}

func TestStopWithoutMapIsInternalError(t *testing.T) {
	_, err := New(stopWithoutMapPass{}).Apply(sampleTree())
	require.Error(t, err)
	assert.True(t, IsInternal(err))
}

func TestContextStackRecordsAncestors(t *testing.T) {
	lit := ir.StringLiteral(ir.EmptyProvenance, "hi")
	inner := ir.NewApply(ir.EmptyProvenance, "print", ir.Void(), lit)
	block := ir.NewBlock(ir.EmptyProvenance, []ir.Statement{ir.NewExpressionStatement(inner)},
		ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "x"))

	pass := &contextProbePass{}
	_, err := New(pass).Apply(block)
	require.NoError(t, err)

	// Outermost first: the block, then the print application enclosing
	// the literal.
	require.Len(t, pass.seen, 2)
	assert.Same(t, ir.Expression(block), pass.seen[0])
	assert.Same(t, ir.Expression(inner), pass.seen[1])
}

func TestUnbalancedPopPanics(t *testing.T) {
	r := New(nopPass{})
	e := ir.StringLiteral(ir.EmptyProvenance, "x")

	assert.Panics(t, func() { r.Pop(e) })

	other := ir.StringLiteral(ir.EmptyProvenance, "y")
	r.Push(e)
	assert.Panics(t, func() { r.Pop(other) })
}

func TestBlockReconstruction(t *testing.T) {
	lit := ir.StringLiteral(ir.EmptyProvenance, "hi")
	stmt := ir.NewExpressionStatement(ir.NewApply(ir.EmptyProvenance, "print", ir.Void(), lit))
	block := ir.NewBlock(ir.EmptyProvenance, []ir.Statement{stmt},
		ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "x"))

	out, err := New(renamePass{}).Apply(block)
	require.NoError(t, err)

	outBlock := out.(*ir.BlockExpression)
	require.Len(t, outBlock.Statements, 1)
	// The statement was rebuilt because the print callee path changed.
	assert.NotSame(t, ir.Statement(stmt), outBlock.Statements[0])
	assert.Equal(t, "renamed", outBlock.Result.(*ir.PathExpression).Path)
}
