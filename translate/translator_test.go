package translate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomlx/exprgraph/exprs"
	"github.com/gomlx/exprgraph/ir"
	"github.com/gomlx/exprgraph/ops"
)

func TestToIRLeaves(t *testing.T) {
	tr := New()
	x := exprs.Var("x")

	require.Equal(t, ir.Param{Var: x}, tr.ToIR(x))
	require.Equal(t, ir.Const{Value: 2.5}, tr.ToIR(exprs.Const(2.5)))
	require.Empty(t, tr.Definitions(), "leaves must not allocate definitions")
}

func TestHashConsingIdempotence(t *testing.T) {
	tr := New()
	x := exprs.Var("x")
	y := exprs.Var("y")
	e := exprs.Sum(exprs.Exp(x), y, exprs.Const(1))

	first := tr.Ref(tr.ToIR(e))
	numDefs := len(tr.Definitions())
	second := tr.Ref(tr.ToIR(e))

	require.Equal(t, first, second)
	require.Len(t, tr.Definitions(), numDefs, "second translation must not allocate")
}

func TestSharedSubexpressionsCollapse(t *testing.T) {
	tr := New()
	x := exprs.Var("x")
	u := exprs.Exp(x)

	// Exp(x) appears twice (once bare, once under Sin) but is defined once.
	result := tr.Ref(tr.ToIR(exprs.Sum(u, exprs.Sin(u))))
	defs := tr.Definitions()
	require.Len(t, defs, 3)
	require.Equal(t, ir.Unary{X: ir.Param{Var: x}, Op: ops.UnaryOpExp}, defs[0].Body)
	require.Equal(t, ir.Unary{X: ir.VarRef{Sym: defs[0].Sym}, Op: ops.UnaryOpSin}, defs[1].Body)
	require.Equal(t, ir.VarRef{Sym: defs[2].Sym}, result)
}

func TestRefCanonicality(t *testing.T) {
	tr := New()
	x := ir.Param{Var: exprs.Var("x")}

	// References pass through unchanged.
	require.Equal(t, ir.Reference(x), tr.Ref(x))
	require.Equal(t, ir.Reference(ir.Const{Value: 3}), tr.Ref(ir.Const{Value: 3}))

	// A definition canonicalizes to a reference to its own symbol.
	node := tr.unary(x, ops.UnaryOpExp)
	def, ok := node.(ir.Def)
	require.True(t, ok)
	require.Equal(t, ir.Reference(ir.VarRef{Sym: def.Sym}), tr.Ref(node))

	// Anything else is an invariant violation.
	require.Panics(t, func() { tr.Ref(ir.Unary{X: x, Op: ops.UnaryOpExp}) })
}

func TestCommutativeKeyFolding(t *testing.T) {
	x := ir.Param{Var: exprs.Var("x")}
	y := ir.Param{Var: exprs.Var("y")}

	tests := []struct {
		op           ops.BinaryOpType
		wantCollapse bool
	}{
		{ops.BinaryOpAdd, true},
		{ops.BinaryOpMul, true},
		{ops.BinaryOpSub, false},
		{ops.BinaryOpDiv, false},
		{ops.BinaryOpPow, false},
	}
	for _, test := range tests {
		t.Run(test.op.String(), func(t *testing.T) {
			tr := New()
			forward := tr.Ref(tr.binary(x, y, test.op))
			reversed := tr.Ref(tr.binary(y, x, test.op))
			if test.wantCollapse {
				require.Equal(t, forward, reversed)
				require.Len(t, tr.Definitions(), 1)
			} else {
				require.NotEqual(t, forward, reversed)
				require.Len(t, tr.Definitions(), 2)
			}
		})
	}
}

func TestUnaryMemoization(t *testing.T) {
	tr := New()
	x := ir.Param{Var: exprs.Var("x")}

	def := tr.unary(x, ops.UnaryOpExp)
	hit := tr.unary(x, ops.UnaryOpExp)
	require.IsType(t, ir.Def{}, def)
	require.Equal(t, tr.Ref(def), hit, "second request must return the cached reference")

	// Different operator, different definition.
	other := tr.unary(x, ops.UnaryOpLog)
	require.IsType(t, ir.Def{}, other)
	require.Len(t, tr.Definitions(), 2)
}

func TestConditional(t *testing.T) {
	tr := New()
	x := exprs.Var("x")
	a := exprs.Var("a")
	b := exprs.Var("b")

	w := exprs.Where(x, a, b)
	def := tr.ToIR(w).(ir.Def)
	// Stored operand order is (test, zero, nonZero), independent of the
	// surface argument order.
	require.Equal(t, ir.Cond{
		Test:    ir.Param{Var: x},
		Zero:    ir.Param{Var: b},
		NonZero: ir.Param{Var: a},
	}, def.Body)

	// The same conditional object hash-conses.
	require.Equal(t, tr.Ref(def), tr.Ref(tr.ToIR(w)))
	require.Len(t, tr.Definitions(), 1)

	// Swapped branches are a different computation.
	other := tr.ToIR(exprs.Where(x, b, a))
	require.NotEqual(t, tr.Ref(def), tr.Ref(other))
}

func TestCompile(t *testing.T) {
	x := exprs.Var("x")
	y := exprs.Var("y")

	result, defs, err := Compile(exprs.Add(exprs.Mul(x, y), exprs.Const(1)))
	require.NoError(t, err)
	require.Len(t, defs, 2)
	require.Equal(t, ir.Binary{L: ir.Param{Var: x}, R: ir.Param{Var: y}, Op: ops.BinaryOpMul}, defs[0].Body)
	require.Equal(t, ir.Binary{
		L:  ir.Const{Value: 1},
		R:  ir.VarRef{Sym: defs[0].Sym},
		Op: ops.BinaryOpAdd,
	}, defs[1].Body)
	require.Equal(t, ir.Reference(ir.VarRef{Sym: defs[1].Sym}), result)

	// Leaf-only expressions compile to a bare reference.
	result, defs, err = Compile(exprs.Const(7))
	require.NoError(t, err)
	require.Empty(t, defs)
	require.Equal(t, ir.Reference(ir.Const{Value: 7}), result)
}

func TestTranslatorsAreIndependent(t *testing.T) {
	x := exprs.Var("x")
	e := exprs.Exp(x)

	tr1 := New()
	tr2 := New()
	d1 := tr1.ToIR(e).(ir.Def)
	d2 := tr2.ToIR(e).(ir.Def)
	require.NotEqual(t, d1.Sym, d2.Sym, "different compilations must not share symbols")
}
