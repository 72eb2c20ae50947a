package rewrite

import (
	"strings"

	"github.com/tidewater-db/tidewater/internal/ir"
)

// WriteLogName is the reserved compiler intrinsic for formatted logging.
// The name is matched case-insensitively and may not be redefined as a
// user function. The only supported call shape is
// writelog(format: string-literal, argument: any scalar).
const WriteLogName = "writelog"

// PrintName is the primitive print intrinsic the backend executes
// directly. It takes one argument and has void result type.
const PrintName = "print"

// ExpandWriteLog replaces calls to writelog(format, argument) with more
// primitive operations understood by the JIT. The format has the form
// prefix%%suffix (with zero or more occurrences of %%). For example, the
// pass may generate the following block expression:
//
//	{
//	   print(prefix);
//	   print((string)argument);
//	   print(suffix);
//	   argument
//	}
//
// The argument's string form is printed once per %% occurrence, between
// the split segments, never before the first segment. The block's value
// is the original argument, so the call's overall value is unchanged
// even though its evaluation now has printing side effects.
type ExpandWriteLog struct{}

// Name identifies the pass.
func (ExpandWriteLog) Name() string { return "expand-writelog" }

// Preorder handles applications; every other node kind uses the default
// reconstruction.
func (p ExpandWriteLog) Preorder(r *Rewriter, e ir.Expression) (Decision, error) {
	apply, ok := e.(*ir.ApplyExpression)
	if !ok {
		return Continue, nil
	}

	args, fn, typ, err := p.transformChildren(r, apply)
	if err != nil {
		return Stop, err
	}

	var result ir.Expression = &ir.ApplyExpression{Prov: apply.Prov, Type: typ, Function: fn, Args: args}
	if path, ok := fn.(*ir.PathExpression); ok && strings.EqualFold(path.Path, WriteLogName) {
		result, err = p.expand(apply, args, typ)
		if err != nil {
			return Stop, err
		}
	}

	r.Map(apply, result)
	return Stop, nil
}

// transformChildren rewrites the application's children in the engine's
// fixed order, keeping the context stack balanced on every exit path.
func (p ExpandWriteLog) transformChildren(r *Rewriter, apply *ir.ApplyExpression) (args []ir.Expression, fn ir.Expression, typ ir.Type, err error) {
	r.Push(apply)
	defer r.Pop(apply)

	args = make([]ir.Expression, len(apply.Args))
	for i, arg := range apply.Args {
		if args[i], err = r.Transform(arg); err != nil {
			return nil, nil, ir.Type{}, err
		}
	}
	if fn, err = r.Transform(apply.Function); err != nil {
		return nil, nil, ir.Type{}, err
	}
	if typ, err = r.TransformType(apply.Type); err != nil {
		return nil, nil, ir.Type{}, err
	}
	return args, fn, typ, nil
}

// expand lowers one writelog call whose children are already rewritten.
func (p ExpandWriteLog) expand(apply *ir.ApplyExpression, args []ir.Expression, typ ir.Type) (ir.Expression, error) {
	if len(args) != 2 {
		return nil, &UnsupportedConstructError{
			Message: "writelog takes exactly two arguments (format, argument)",
			Prov:    apply.Prov,
		}
	}

	format := args[0]
	formatLit, ok := format.(*ir.Literal)
	if !ok || formatLit.Type.Kind != ir.KindString {
		return nil, &UnsupportedConstructError{
			Message: "expected a string literal for the format",
			Prov:    format.Origin(),
		}
	}

	// A null format short-circuits to a null of the call's declared
	// result type, even when the argument's nullability differs.
	if formatLit.IsNull {
		return ir.NullLiteral(apply.Prov, typ), nil
	}

	argument := args[1]
	// Strict split keeping empty segments: segment count is always
	// delimiter count + 1.
	parts := strings.Split(string(formatLit.Value.(ir.StringValue)), "%%")

	var statements []ir.Statement
	var castToStr *ir.CastExpression
	for _, part := range parts {
		if castToStr == nil {
			// First segment: build the cached argument-to-string cast but
			// do not print the argument yet.
			stringType := ir.String(ir.UnlimitedPrecision, typ.Nullable)
			castToStr = ir.NewCast(apply.Prov, argument, stringType)
		} else {
			print := ir.NewApply(apply.Prov, PrintName, ir.Void(), castToStr.DeepCopy())
			statements = append(statements, ir.NewExpressionStatement(print))
		}
		if len(part) > 0 {
			print := ir.NewApply(apply.Prov, PrintName, ir.Void(), ir.StringLiteral(apply.Prov, part))
			statements = append(statements, ir.NewExpressionStatement(print))
		}
	}
	return ir.NewBlock(apply.Prov, statements, argument.DeepCopy()), nil
}
