package ir

import (
	"fmt"
	"strings"
)

// Expression is a sealed interface over the IR expression node kinds.
// Only *Literal, *PathExpression, *ApplyExpression, *CastExpression, and
// *BlockExpression implement it, so traversals can type-switch
// exhaustively.
//
// Expressions are immutable: built once by a producer (the planner or a
// rewrite pass) and never modified. Transformation always yields a new
// node; subtrees may be shared by reference between trees.
type Expression interface {
	exprNode() // Sealed - only the node types in this package implement it

	// ExprType returns the node's static type.
	ExprType() Type

	// Origin returns the provenance handle for diagnostics.
	Origin() Provenance

	// DeepCopy returns an independently owned copy of the whole subtree.
	// Downstream passes assume a node appears in exactly one position, so
	// reusing an expression in several places requires a copy per use.
	DeepCopy() Expression

	// String renders the expression for diagnostics.
	String() string
}

// Statement is a sealed interface over the IR statement kinds. Statements
// appear ordered inside a block; order is semantically significant since
// side effects execute in sequence.
type Statement interface {
	stmtNode() // Sealed

	// Origin returns the provenance handle for diagnostics.
	Origin() Provenance

	// DeepCopy returns an independently owned copy of the statement.
	DeepCopy() Statement

	// String renders the statement for diagnostics.
	String() string
}

// Literal is a typed constant. IsNull set means the literal is the null
// of its type and Value is nil; otherwise Value holds the constant and
// its variant agrees with the type's kind.
type Literal struct {
	Prov   Provenance
	Type   Type
	IsNull bool
	Value  Value
}

func (*Literal) exprNode() {}

// ExprType returns the literal's declared type.
func (l *Literal) ExprType() Type { return l.Type }

// Origin returns the literal's provenance.
func (l *Literal) Origin() Provenance { return l.Prov }

// DeepCopy returns an independently owned copy of the literal.
func (l *Literal) DeepCopy() Expression {
	c := *l
	return &c
}

func (l *Literal) String() string {
	if l.IsNull {
		return "null:" + l.Type.String()
	}
	return l.Value.render()
}

// NewLiteral builds a non-null literal of type t carrying v.
func NewLiteral(prov Provenance, t Type, v Value) *Literal {
	return &Literal{Prov: prov, Type: t, Value: v}
}

// NullLiteral builds the null literal of type t. The declared type is
// preserved exactly as given, including its nullability flag.
func NullLiteral(prov Provenance, t Type) *Literal {
	return &Literal{Prov: prov, Type: t, IsNull: true}
}

// StringLiteral builds a non-null literal of the unbounded string type.
func StringLiteral(prov Provenance, s string) *Literal {
	return NewLiteral(prov, String(UnlimitedPrecision, false), StringValue(s))
}

// newTypedLiteral builds a synthesized non-null literal of type t.
func newTypedLiteral(t Type, v Value) *Literal {
	return NewLiteral(EmptyProvenance, t, v)
}

// PathExpression references a variable or qualified name.
type PathExpression struct {
	Prov Provenance
	Type Type
	Path string
}

func (*PathExpression) exprNode() {}

// ExprType returns the referenced value's type.
func (p *PathExpression) ExprType() Type { return p.Type }

// Origin returns the reference's provenance.
func (p *PathExpression) Origin() Provenance { return p.Prov }

// DeepCopy returns an independently owned copy of the reference.
func (p *PathExpression) DeepCopy() Expression {
	c := *p
	return &c
}

func (p *PathExpression) String() string { return p.Path }

// NewPath builds a path reference of type t.
func NewPath(prov Provenance, t Type, path string) *PathExpression {
	return &PathExpression{Prov: prov, Type: t, Path: path}
}

// ApplyExpression applies a callee expression to an ordered argument
// list. The argument count and the callee's declared arity are consistent
// by construction; the model does not re-check it.
type ApplyExpression struct {
	Prov     Provenance
	Type     Type // result type
	Function Expression
	Args     []Expression
}

func (*ApplyExpression) exprNode() {}

// ExprType returns the application's declared result type.
func (a *ApplyExpression) ExprType() Type { return a.Type }

// Origin returns the application's provenance.
func (a *ApplyExpression) Origin() Provenance { return a.Prov }

// DeepCopy returns an independently owned copy of the application.
func (a *ApplyExpression) DeepCopy() Expression {
	args := make([]Expression, len(a.Args))
	for i, arg := range a.Args {
		args[i] = arg.DeepCopy()
	}
	return &ApplyExpression{Prov: a.Prov, Type: a.Type, Function: a.Function.DeepCopy(), Args: args}
}

func (a *ApplyExpression) String() string {
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", a.Function, strings.Join(parts, ", "))
}

// NewApply builds an application of the named function with the given
// result type and arguments. The callee becomes a path reference of
// unknown type, matching how the planner emits intrinsic calls.
func NewApply(prov Provenance, function string, resultType Type, args ...Expression) *ApplyExpression {
	return &ApplyExpression{
		Prov:     prov,
		Type:     resultType,
		Function: NewPath(prov, Unknown(), function),
		Args:     args,
	}
}

// CastExpression converts a source expression to a target type. Whether
// the target nullability is reachable from the source value is enforced
// by the pass introducing the cast, not by the model.
type CastExpression struct {
	Prov   Provenance
	Type   Type // target type
	Source Expression
}

func (*CastExpression) exprNode() {}

// ExprType returns the cast's target type.
func (c *CastExpression) ExprType() Type { return c.Type }

// Origin returns the cast's provenance.
func (c *CastExpression) Origin() Provenance { return c.Prov }

// DeepCopy returns an independently owned copy of the cast.
func (c *CastExpression) DeepCopy() Expression {
	return &CastExpression{Prov: c.Prov, Type: c.Type, Source: c.Source.DeepCopy()}
}

func (c *CastExpression) String() string {
	return fmt.Sprintf("(%s)%s", c.Type, c.Source)
}

// NewCast builds a cast of source to the target type.
func NewCast(prov Provenance, source Expression, target Type) *CastExpression {
	return &CastExpression{Prov: prov, Type: target, Source: source}
}

// BlockExpression is an ordered statement sequence terminated by a result
// expression. The block's type is its result expression's type.
type BlockExpression struct {
	Prov       Provenance
	Statements []Statement
	Result     Expression
}

func (*BlockExpression) exprNode() {}

// ExprType returns the trailing result expression's type.
func (b *BlockExpression) ExprType() Type { return b.Result.ExprType() }

// Origin returns the block's provenance.
func (b *BlockExpression) Origin() Provenance { return b.Prov }

// DeepCopy returns an independently owned copy of the block.
func (b *BlockExpression) DeepCopy() Expression {
	stmts := make([]Statement, len(b.Statements))
	for i, s := range b.Statements {
		stmts[i] = s.DeepCopy()
	}
	return &BlockExpression{Prov: b.Prov, Statements: stmts, Result: b.Result.DeepCopy()}
}

func (b *BlockExpression) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, s := range b.Statements {
		sb.WriteString(s.String())
		sb.WriteString("; ")
	}
	sb.WriteString(b.Result.String())
	sb.WriteString(" }")
	return sb.String()
}

// NewBlock builds a block from statements and a trailing result.
func NewBlock(prov Provenance, statements []Statement, result Expression) *BlockExpression {
	return &BlockExpression{Prov: prov, Statements: statements, Result: result}
}

// ExpressionStatement wraps an expression evaluated solely for its side
// effect; the value is discarded.
type ExpressionStatement struct {
	Prov Provenance
	Expr Expression
}

func (*ExpressionStatement) stmtNode() {}

// Origin returns the statement's provenance.
func (s *ExpressionStatement) Origin() Provenance { return s.Prov }

// DeepCopy returns an independently owned copy of the statement.
func (s *ExpressionStatement) DeepCopy() Statement {
	return &ExpressionStatement{Prov: s.Prov, Expr: s.Expr.DeepCopy()}
}

func (s *ExpressionStatement) String() string { return s.Expr.String() }

// NewExpressionStatement wraps expr as a side-effect statement.
func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{Prov: expr.Origin(), Expr: expr}
}
