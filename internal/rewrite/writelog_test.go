package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewater-db/tidewater/internal/ir"
)

func writelogCall(format ir.Expression, argument ir.Expression, resultType ir.Type) *ir.ApplyExpression {
	prov := ir.Provenance{Object: "writelog(...)", Line: 1, Column: 1}
	return ir.NewApply(prov, "writelog", resultType, format, argument)
}

// printTarget unwraps a print statement and returns its single argument.
func printTarget(t *testing.T, s ir.Statement) ir.Expression {
	t.Helper()
	es, ok := s.(*ir.ExpressionStatement)
	require.True(t, ok)
	apply, ok := es.Expr.(*ir.ApplyExpression)
	require.True(t, ok)
	assert.Equal(t, PrintName, apply.Function.(*ir.PathExpression).Path)
	assert.True(t, apply.Type.SameType(ir.Void()))
	require.Len(t, apply.Args, 1)
	return apply.Args[0]
}

func TestExpandConcreteFormat(t *testing.T) {
	arg := ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "argument")
	call := writelogCall(ir.StringLiteral(ir.EmptyProvenance, "x=%%!"), arg, ir.Int32(false))

	out, err := New(ExpandWriteLog{}).Apply(call)
	require.NoError(t, err)

	block, ok := out.(*ir.BlockExpression)
	require.True(t, ok)
	require.Len(t, block.Statements, 3)

	// print("x=")
	first := printTarget(t, block.Statements[0]).(*ir.Literal)
	assert.Equal(t, ir.StringValue("x="), first.Value)

	// print((string)argument)
	cast, ok := printTarget(t, block.Statements[1]).(*ir.CastExpression)
	require.True(t, ok)
	assert.True(t, cast.Type.SameType(ir.String(ir.UnlimitedPrecision, false)))
	assert.Equal(t, "argument", cast.Source.(*ir.PathExpression).Path)

	// print("!")
	last := printTarget(t, block.Statements[2]).(*ir.Literal)
	assert.Equal(t, ir.StringValue("!"), last.Value)

	// The trailing value is a fresh copy of the argument.
	result, ok := block.Result.(*ir.PathExpression)
	require.True(t, ok)
	assert.Equal(t, "argument", result.Path)
	assert.NotSame(t, ir.Expression(arg), block.Result)
}

func TestExpandKeepsEmptySegments(t *testing.T) {
	// "%%abc%%" splits into "", "abc", "": the argument prints once per
	// delimiter and only the non-empty segment prints literally.
	arg := ir.NewPath(ir.EmptyProvenance, ir.Int64(false), "v")
	call := writelogCall(ir.StringLiteral(ir.EmptyProvenance, "%%abc%%"), arg, ir.Int64(false))

	out, err := New(ExpandWriteLog{}).Apply(call)
	require.NoError(t, err)

	block := out.(*ir.BlockExpression)
	require.Len(t, block.Statements, 3)

	_, isCast := printTarget(t, block.Statements[0]).(*ir.CastExpression)
	assert.True(t, isCast)
	lit := printTarget(t, block.Statements[1]).(*ir.Literal)
	assert.Equal(t, ir.StringValue("abc"), lit.Value)
	_, isCast = printTarget(t, block.Statements[2]).(*ir.CastExpression)
	assert.True(t, isCast)

	// Each cast use is independently owned.
	assert.NotSame(t, printTarget(t, block.Statements[0]), printTarget(t, block.Statements[2]))
}

func TestExpandNoDelimiter(t *testing.T) {
	arg := ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "v")
	call := writelogCall(ir.StringLiteral(ir.EmptyProvenance, "plain"), arg, ir.Int32(false))

	out, err := New(ExpandWriteLog{}).Apply(call)
	require.NoError(t, err)

	block := out.(*ir.BlockExpression)
	// One literal print, no argument prints.
	require.Len(t, block.Statements, 1)
	lit := printTarget(t, block.Statements[0]).(*ir.Literal)
	assert.Equal(t, ir.StringValue("plain"), lit.Value)
}

func TestExpandEmptyFormat(t *testing.T) {
	arg := ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "v")
	call := writelogCall(ir.StringLiteral(ir.EmptyProvenance, ""), arg, ir.Int32(false))

	out, err := New(ExpandWriteLog{}).Apply(call)
	require.NoError(t, err)

	block := out.(*ir.BlockExpression)
	// A single empty segment: nothing to print, value unchanged.
	assert.Empty(t, block.Statements)
	assert.Equal(t, "v", block.Result.(*ir.PathExpression).Path)
}

func TestExpandNullFormat(t *testing.T) {
	// A null format short-circuits to a null literal of the call's
	// declared result type, with no statements.
	arg := ir.NewPath(ir.EmptyProvenance, ir.Int32(true), "v")
	format := ir.NullLiteral(ir.EmptyProvenance, ir.String(ir.UnlimitedPrecision, true))
	call := writelogCall(format, arg, ir.Int32(true))

	out, err := New(ExpandWriteLog{}).Apply(call)
	require.NoError(t, err)

	lit, ok := out.(*ir.Literal)
	require.True(t, ok)
	assert.True(t, lit.IsNull)
	assert.True(t, lit.Type.SameType(ir.Int32(true)))
}

func TestExpandNonLiteralFormatFails(t *testing.T) {
	arg := ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "v")
	format := ir.NewPath(ir.EmptyProvenance, ir.String(ir.UnlimitedPrecision, false), "fmt")
	call := writelogCall(format, arg, ir.Int32(false))

	out, err := New(ExpandWriteLog{}).Apply(call)
	require.Error(t, err)
	assert.True(t, IsUnsupportedConstruct(err))
	assert.Contains(t, err.Error(), "expected a string literal for the format")
	// All-or-nothing: no output tree at all.
	assert.Nil(t, out)
}

func TestExpandNonStringLiteralFormatFails(t *testing.T) {
	arg := ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "v")
	format := ir.NewLiteral(ir.EmptyProvenance, ir.Int32(false), ir.IntValue(3))
	call := writelogCall(format, arg, ir.Int32(false))

	_, err := New(ExpandWriteLog{}).Apply(call)
	require.Error(t, err)
	assert.True(t, IsUnsupportedConstruct(err))
}

func TestExpandWrongArityFails(t *testing.T) {
	call := ir.NewApply(ir.EmptyProvenance, "writelog", ir.Int32(false),
		ir.StringLiteral(ir.EmptyProvenance, "x"))

	_, err := New(ExpandWriteLog{}).Apply(call)
	require.Error(t, err)
	assert.True(t, IsUnsupportedConstruct(err))
}

func TestExpandMatchesCaseInsensitively(t *testing.T) {
	arg := ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "v")
	for _, name := range []string{"WRITELOG", "WriteLog", "writelog"} {
		call := ir.NewApply(ir.EmptyProvenance, name, ir.Int32(false),
			ir.StringLiteral(ir.EmptyProvenance, "a%%b"), arg)
		out, err := New(ExpandWriteLog{}).Apply(call)
		require.NoError(t, err)
		assert.IsType(t, &ir.BlockExpression{}, out)
	}
}

func TestExpandLeavesOtherCallsAlone(t *testing.T) {
	arg := ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "v")
	call := ir.NewApply(ir.EmptyProvenance, "abs", ir.Int32(false), arg)

	out, err := New(ExpandWriteLog{}).Apply(call)
	require.NoError(t, err)

	outApply, ok := out.(*ir.ApplyExpression)
	require.True(t, ok)
	assert.Equal(t, "abs", outApply.Function.(*ir.PathExpression).Path)
	require.Len(t, outApply.Args, 1)
	assert.Same(t, ir.Expression(arg), outApply.Args[0])
}

func TestExpandNullabilityFollowsCallResult(t *testing.T) {
	// The cast-to-string nullability tracks the call's declared result
	// nullability, not the argument's.
	arg := ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "v")
	call := writelogCall(ir.StringLiteral(ir.EmptyProvenance, "%%"), arg, ir.Int32(true))

	out, err := New(ExpandWriteLog{}).Apply(call)
	require.NoError(t, err)

	block := out.(*ir.BlockExpression)
	require.Len(t, block.Statements, 1)
	cast := printTarget(t, block.Statements[0]).(*ir.CastExpression)
	assert.True(t, cast.Type.SameType(ir.String(ir.UnlimitedPrecision, true)))
}

func TestExpandInsideLargerTree(t *testing.T) {
	// The expansion splices into the enclosing tree; siblings are reused.
	arg := ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "v")
	logCall := writelogCall(ir.StringLiteral(ir.EmptyProvenance, "v=%%"), arg, ir.Int32(false))
	sibling := ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "w")
	root := ir.NewApply(ir.EmptyProvenance, "plus", ir.Int32(false), logCall, sibling)

	out, err := New(ExpandWriteLog{}).Apply(root)
	require.NoError(t, err)

	outApply := out.(*ir.ApplyExpression)
	require.Len(t, outApply.Args, 2)
	assert.IsType(t, &ir.BlockExpression{}, outApply.Args[0])
	assert.Same(t, ir.Expression(sibling), outApply.Args[1])
}
