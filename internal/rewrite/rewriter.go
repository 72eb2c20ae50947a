package rewrite

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/tidewater-db/tidewater/internal/ir"
)

// Decision is what a pass returns from its preorder hook.
type Decision int

const (
	// Continue lets the engine descend into the node's children and
	// assemble the rewritten node from the rewritten children.
	Continue Decision = iota

	// Stop means the pass already produced and recorded the rewritten
	// result for the node and its entire subtree; the engine must not
	// descend further.
	Stop
)

// String returns the decision name for tracing.
func (d Decision) String() string {
	if d == Stop {
		return "stop"
	}
	return "continue"
}

// Pass customizes rewriting for the node kinds it cares about.
//
// Preorder is invoked before the engine descends into a node. A pass that
// handles the node itself must push it on the context stack, transform
// every child field it needs via the Rewriter, pop the node, record the
// replacement with Map, and return Stop. Returning Continue delegates to
// the default recursive reconstruction.
type Pass interface {
	// Name identifies the pass in traces and error messages.
	Name() string

	// Preorder decides how the node is rewritten.
	Preorder(r *Rewriter, e ir.Expression) (Decision, error)
}

// Rewriter drives one pass over one tree. It owns the per-compilation
// context stack and node-replacement table; it must not be shared
// between concurrent compilations or reused across passes.
type Rewriter struct {
	pass   Pass
	logger log.Logger

	// stack records the ancestor chain of the node being visited.
	stack []ir.Expression

	// rewritten maps original node identity (pointer) to replacement.
	// Keyed by identity, not structural equality: two structurally
	// identical nodes rewritten independently may map to different
	// results, while the same physical node visited twice reuses its
	// cached result.
	rewritten map[ir.Expression]ir.Expression
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithLogger enables debug tracing of the pass through the given logger.
func WithLogger(logger log.Logger) Option {
	return func(r *Rewriter) { r.logger = logger }
}

// New builds a Rewriter running the given pass.
func New(pass Pass, opts ...Option) *Rewriter {
	r := &Rewriter{
		pass:      pass,
		logger:    log.NewNopLogger(),
		rewritten: make(map[ir.Expression]ir.Expression),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply rewrites the whole tree rooted at root and returns the fresh
// tree. The input tree is never mutated; untouched subtrees are reused
// by reference. On error no output tree is produced at all.
func (r *Rewriter) Apply(root ir.Expression) (ir.Expression, error) {
	level.Debug(r.logger).Log("msg", "pass start", "pass", r.pass.Name())
	out, err := r.Transform(root)
	if err != nil {
		level.Debug(r.logger).Log("msg", "pass failed", "pass", r.pass.Name(), "err", err)
		return nil, err
	}
	if len(r.stack) != 0 {
		panic(fmt.Sprintf("rewrite: pass %s left %d nodes on the context stack", r.pass.Name(), len(r.stack)))
	}
	level.Debug(r.logger).Log("msg", "pass done", "pass", r.pass.Name(), "rewritten", len(r.rewritten))
	return out, nil
}

// Transform rewrites one expression, consulting the side table first so
// a shared subtree is rewritten exactly once.
func (r *Rewriter) Transform(e ir.Expression) (ir.Expression, error) {
	if cached, ok := r.rewritten[e]; ok {
		return cached, nil
	}

	decision, err := r.pass.Preorder(r, e)
	if err != nil {
		return nil, err
	}
	if decision == Stop {
		res, ok := r.rewritten[e]
		if !ok {
			return nil, &InternalError{
				Message: fmt.Sprintf("pass %s returned stop for %s without recording a replacement", r.pass.Name(), e),
			}
		}
		return res, nil
	}

	res, err := r.rebuild(e)
	if err != nil {
		return nil, err
	}
	r.Map(e, res)
	return res, nil
}

// TransformStatement rewrites one statement by rewriting the expressions
// it contains. The original statement is reused when nothing changed.
func (r *Rewriter) TransformStatement(s ir.Statement) (ir.Statement, error) {
	switch stmt := s.(type) {
	case *ir.ExpressionStatement:
		expr, err := r.Transform(stmt.Expr)
		if err != nil {
			return nil, err
		}
		if expr == stmt.Expr {
			return stmt, nil
		}
		return &ir.ExpressionStatement{Prov: stmt.Prov, Expr: expr}, nil
	default:
		return nil, &InternalError{Message: fmt.Sprintf("unknown statement kind %T", s)}
	}
}

// TransformType rewrites a type annotation. The current passes rewrite
// only expressions, so types pass through unchanged; the hook exists so
// the per-node protocol covers every child field.
func (r *Rewriter) TransformType(t ir.Type) (ir.Type, error) {
	return t, nil
}

// rebuild is the default postorder reconstruction: descend into children
// in the fixed order arguments, callee, type, and reassemble the node
// from the rewritten children. Returns the original node when no child
// changed, preserving reference sharing.
func (r *Rewriter) rebuild(e ir.Expression) (ir.Expression, error) {
	r.Push(e)
	defer r.Pop(e)

	switch n := e.(type) {
	case *ir.Literal, *ir.PathExpression:
		return e, nil

	case *ir.ApplyExpression:
		args := make([]ir.Expression, len(n.Args))
		changed := false
		for i, arg := range n.Args {
			t, err := r.Transform(arg)
			if err != nil {
				return nil, err
			}
			args[i] = t
			changed = changed || t != arg
		}
		fn, err := r.Transform(n.Function)
		if err != nil {
			return nil, err
		}
		typ, err := r.TransformType(n.Type)
		if err != nil {
			return nil, err
		}
		if !changed && fn == n.Function && typ.SameType(n.Type) {
			return e, nil
		}
		return &ir.ApplyExpression{Prov: n.Prov, Type: typ, Function: fn, Args: args}, nil

	case *ir.CastExpression:
		src, err := r.Transform(n.Source)
		if err != nil {
			return nil, err
		}
		typ, err := r.TransformType(n.Type)
		if err != nil {
			return nil, err
		}
		if src == n.Source && typ.SameType(n.Type) {
			return e, nil
		}
		return &ir.CastExpression{Prov: n.Prov, Type: typ, Source: src}, nil

	case *ir.BlockExpression:
		stmts := make([]ir.Statement, len(n.Statements))
		changed := false
		for i, s := range n.Statements {
			t, err := r.TransformStatement(s)
			if err != nil {
				return nil, err
			}
			stmts[i] = t
			changed = changed || t != s
		}
		result, err := r.Transform(n.Result)
		if err != nil {
			return nil, err
		}
		if !changed && result == n.Result {
			return e, nil
		}
		return &ir.BlockExpression{Prov: n.Prov, Statements: stmts, Result: result}, nil

	default:
		return nil, &InternalError{Message: fmt.Sprintf("unknown expression kind %T", e)}
	}
}

// Push records e as the innermost ancestor of the nodes about to be
// transformed.
func (r *Rewriter) Push(e ir.Expression) {
	r.stack = append(r.stack, e)
}

// Pop removes e from the ancestor chain. Push and Pop must balance;
// an imbalance is a pass bug and panics.
func (r *Rewriter) Pop(e ir.Expression) {
	if len(r.stack) == 0 {
		panic(fmt.Sprintf("rewrite: pass %s popped an empty context stack", r.pass.Name()))
	}
	top := r.stack[len(r.stack)-1]
	if top != e {
		panic(fmt.Sprintf("rewrite: pass %s popped %s but the innermost ancestor is %s", r.pass.Name(), e, top))
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Context returns a copy of the current ancestor chain, outermost first.
// Used for diagnostics and for passes needing lexical-scope information.
func (r *Rewriter) Context() []ir.Expression {
	out := make([]ir.Expression, len(r.stack))
	copy(out, r.stack)
	return out
}

// Map records the replacement for original in the identity-keyed side
// table. Passes call this before returning Stop.
func (r *Rewriter) Map(original, replacement ir.Expression) {
	r.rewritten[original] = replacement
}

// Rewritten reports the recorded replacement for e, if any. Exposed so
// tests can observe cache hits on shared subtrees.
func (r *Rewriter) Rewritten(e ir.Expression) (ir.Expression, bool) {
	res, ok := r.rewritten[e]
	return res, ok
}
