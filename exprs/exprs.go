// Package exprs implements the symbolic expression layer: a small algebra of
// scalar real-valued computations that normalizes sums into affine
// combinations (Line) and products into log-affine combinations (LogLine).
//
// Expressions are immutable once built and identified by pointer: the same
// *Variable (or any other node) may appear many times in one tree, forming a
// DAG. Two distinct nodes are never considered the same subexpression, even
// if they are structurally equal.
//
// The normalized forms feed the translator (package translate) through
// FactorLine and FactorLogLine, which produce the coefficient mapping,
// intercept/factor, and scale the lowering pipeline consumes.
package exprs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gomlx/exprgraph/ops"
)

// Expr is a node of the symbolic expression tree.
//
// Concrete implementations: *Variable, *Constant, *Unary, *Line, *LogLine
// and *Cond.
type Expr interface {
	fmt.Stringer

	// exprNode restricts implementations to this package: the translator
	// dispatches on the closed set of variants above.
	exprNode()
}

// Variable is an opaque named input slot. Its value is only known when the
// compiled function is evaluated.
type Variable struct {
	Name string
}

// Var creates a new input variable. Two calls with the same name produce
// two distinct variables.
func Var(name string) *Variable { return &Variable{Name: name} }

func (v *Variable) exprNode()      {}
func (v *Variable) String() string { return v.Name }

// Constant is a literal scalar value.
type Constant struct {
	Value float64
}

// Const creates a constant expression.
func Const(value float64) *Constant { return &Constant{Value: value} }

func (c *Constant) exprNode() {}
func (c *Constant) String() string {
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}

// Unary applies one of the ops.UnaryOpType operators to an operand.
type Unary struct {
	X  Expr
	Op ops.UnaryOpType
}

func (u *Unary) exprNode()      {}
func (u *Unary) String() string { return fmt.Sprintf("%s(%s)", u.Op, u.X) }

func newUnary(op ops.UnaryOpType, x Expr) Expr { return &Unary{X: x, Op: op} }

// Abs returns |x|.
func Abs(x Expr) Expr { return newUnary(ops.UnaryOpAbs, x) }

// Ceil returns the smallest integer >= x.
func Ceil(x Expr) Expr { return newUnary(ops.UnaryOpCeil, x) }

// Cos returns cos(x).
func Cos(x Expr) Expr { return newUnary(ops.UnaryOpCos, x) }

// Exp returns e**x.
func Exp(x Expr) Expr { return newUnary(ops.UnaryOpExp, x) }

// Floor returns the largest integer <= x.
func Floor(x Expr) Expr { return newUnary(ops.UnaryOpFloor, x) }

// Log returns the natural logarithm of x.
func Log(x Expr) Expr { return newUnary(ops.UnaryOpLog, x) }

// Sigmoid returns 1/(1+e**-x).
func Sigmoid(x Expr) Expr { return newUnary(ops.UnaryOpSigmoid, x) }

// Sin returns sin(x).
func Sin(x Expr) Expr { return newUnary(ops.UnaryOpSin, x) }

// Sqrt returns the square root of x.
func Sqrt(x Expr) Expr { return newUnary(ops.UnaryOpSqrt, x) }

// Tanh returns the hyperbolic tangent of x.
func Tanh(x Expr) Expr { return newUnary(ops.UnaryOpTanh, x) }

// Cond selects between two expressions based on a test value: it evaluates
// to NonZero when Test != 0, and to Zero otherwise.
type Cond struct {
	Test, NonZero, Zero Expr
}

// Where builds a conditional: test != 0 ? nonZero : zero.
func Where(test, nonZero, zero Expr) *Cond {
	return &Cond{Test: test, NonZero: nonZero, Zero: zero}
}

func (c *Cond) exprNode() {}
func (c *Cond) String() string {
	return fmt.Sprintf("Where(%s, %s, %s)", c.Test, c.NonZero, c.Zero)
}

// Term is one weighted entry of a Line or LogLine coefficient mapping.
// For a Line it contributes Weight*X to the sum; for a LogLine it
// contributes Weight*log(X), i.e. the factor X**Weight.
type Term struct {
	X      Expr
	Weight float64
}

// termList is a coefficient mapping that preserves insertion order.
//
// Order is load-bearing: lowering the same Line twice must replay the exact
// same sequence of operations so every step hits the translator's
// hash-consing caches. A plain Go map would randomize that.
type termList struct {
	list  []Term
	index map[Expr]int
}

func (ts *termList) add(x Expr, weight float64) {
	if i, found := ts.index[x]; found {
		ts.list[i].Weight += weight
		return
	}
	if ts.index == nil {
		ts.index = make(map[Expr]int)
	}
	ts.index[x] = len(ts.list)
	ts.list = append(ts.list, Term{X: x, Weight: weight})
}

// compact drops entries whose weights canceled out to zero.
func (ts *termList) compact() {
	kept := ts.list[:0]
	for _, t := range ts.list {
		if t.Weight == 0 {
			delete(ts.index, t.X)
			continue
		}
		ts.index[t.X] = len(kept)
		kept = append(kept, t)
	}
	ts.list = kept
}

func (ts *termList) writeTerms(b *strings.Builder, sep, scaleOp string) {
	for i, t := range ts.list {
		if i > 0 {
			b.WriteString(sep)
		}
		if t.Weight == 1 {
			b.WriteString(t.X.String())
			continue
		}
		fmt.Fprintf(b, "%s%s%s", t.X, scaleOp, strconv.FormatFloat(t.Weight, 'g', -1, 64))
	}
}
