package translate

import (
	"github.com/gomlx/exceptions"

	"github.com/gomlx/exprgraph/exprs"
	"github.com/gomlx/exprgraph/ir"
)

// ToIR recursively converts one expression to IR, bottom-up. It returns
// either a Reference (for values that already have a name or need none) or
// the ir.Def that was just allocated; use Ref to canonicalize.
//
// Repeated calls on the same Translator share all previously hash-consed
// definitions: converting the same subexpression twice returns the same
// symbol and allocates nothing new.
func (t *Translator) ToIR(x exprs.Expr) ir.Node {
	switch e := x.(type) {
	case *exprs.Variable:
		return ir.Param{Var: e}
	case *exprs.Constant:
		return ir.Const{Value: e.Value}
	case *exprs.Unary:
		return t.unary(t.Ref(t.ToIR(e.X)), e.Op)
	case *exprs.Cond:
		test := t.Ref(t.ToIR(e.Test))
		nonZero := t.Ref(t.ToIR(e.NonZero))
		zero := t.Ref(t.ToIR(e.Zero))
		return t.conditional(test, zero, nonZero)
	case *exprs.Line:
		f := exprs.FactorLine(e)
		return t.factoredLine(f.Terms, f.Intercept, f.Scale, sumRing)
	case *exprs.LogLine:
		f := exprs.FactorLogLine(e)
		return t.factoredLine(f.Terms, f.Factor, 1, productRing)
	default:
		exceptions.Panicf("translate: unknown expression type %T (%s)", x, x)
		return nil
	}
}
