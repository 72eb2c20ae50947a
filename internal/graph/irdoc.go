package graph

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tidewater-db/tidewater/internal/doc"
	"github.com/tidewater-db/tidewater/internal/ir"
)

// expressionDocument projects an IR expression into document form for
// the backend. The projection mirrors the node algebra one-to-one so the
// backend can rebuild the tree without type inference.
func expressionDocument(e ir.Expression) (doc.Value, error) {
	switch n := e.(type) {
	case *ir.Literal:
		o := doc.Object{
			"expr":    doc.String("literal"),
			"type":    typeDescription(n.Type),
			"is_null": doc.Bool(n.IsNull),
		}
		if !n.IsNull {
			v, err := valueDocument(n.Value)
			if err != nil {
				return nil, err
			}
			o["value"] = v
		}
		return o, nil

	case *ir.PathExpression:
		return doc.Object{
			"expr": doc.String("path"),
			"type": typeDescription(n.Type),
			"path": doc.String(n.Path),
		}, nil

	case *ir.ApplyExpression:
		fn, err := expressionDocument(n.Function)
		if err != nil {
			return nil, err
		}
		args := make(doc.Array, len(n.Args))
		for i, arg := range n.Args {
			if args[i], err = expressionDocument(arg); err != nil {
				return nil, err
			}
		}
		return doc.Object{
			"expr":     doc.String("apply"),
			"type":     typeDescription(n.Type),
			"function": fn,
			"args":     args,
		}, nil

	case *ir.CastExpression:
		src, err := expressionDocument(n.Source)
		if err != nil {
			return nil, err
		}
		return doc.Object{
			"expr":   doc.String("cast"),
			"type":   typeDescription(n.Type),
			"source": src,
		}, nil

	case *ir.BlockExpression:
		stmts := make(doc.Array, len(n.Statements))
		for i, s := range n.Statements {
			sd, err := statementDocument(s)
			if err != nil {
				return nil, err
			}
			stmts[i] = sd
		}
		result, err := expressionDocument(n.Result)
		if err != nil {
			return nil, err
		}
		return doc.Object{
			"expr":       doc.String("block"),
			"statements": stmts,
			"result":     result,
		}, nil

	default:
		return nil, fmt.Errorf("unknown expression kind %T", e)
	}
}

// statementDocument projects one IR statement into document form.
func statementDocument(s ir.Statement) (doc.Value, error) {
	switch n := s.(type) {
	case *ir.ExpressionStatement:
		expr, err := expressionDocument(n.Expr)
		if err != nil {
			return nil, err
		}
		return doc.Object{
			"stmt": doc.String("expression"),
			"expr": expr,
		}, nil
	default:
		return nil, fmt.Errorf("unknown statement kind %T", s)
	}
}

// valueDocument projects a literal payload. Temporal values serialize as
// their integral representation; decimals as their exact string form.
func valueDocument(v ir.Value) (doc.Value, error) {
	switch val := v.(type) {
	case ir.BoolValue:
		return doc.Bool(val), nil
	case ir.IntValue:
		return doc.Int(val), nil
	case ir.FloatValue:
		return doc.Float(val), nil
	case ir.DecimalValue:
		return doc.String(decimal.Decimal(val).String()), nil
	case ir.StringValue:
		return doc.String(val), nil
	case ir.DateValue:
		return doc.Int(val), nil
	case ir.TimeValue:
		return doc.Int(val), nil
	case ir.TimestampValue:
		return doc.Int(val), nil
	case ir.IntervalValue:
		return doc.Int(val), nil
	default:
		return nil, fmt.Errorf("unknown literal value kind %T", v)
	}
}
