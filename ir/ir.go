// Package ir defines the flattened intermediate representation produced by
// the translator (package translate) and consumed by code generation.
//
// The IR distinguishes two kinds of values:
//
//   - References (Param, Const, VarRef): lightweight handles with no nested
//     substructure. They are plain comparable values, cheap to hash and to
//     test for equality.
//   - Definitions (Unary, Binary, Cond wrapped in a Def): each introduces
//     exactly one new named value.
//
// Every operand inside a definition body is itself a Reference. This
// invariant is what keeps hash-consing keys O(1) to compare, and what lets a
// value be referenced many times without duplicating its defining
// computation. IR nodes are immutable after creation.
package ir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gomlx/exprgraph/exprs"
	"github.com/gomlx/exprgraph/ops"
)

// Node is any IR value: a Reference or a definition.
type Node interface {
	fmt.Stringer
	irNode()
}

// Reference is an IR value with no nested substructure: an input parameter,
// a literal constant, or a by-name reference to an earlier definition.
//
// All implementations are small comparable values, so References can be used
// directly as map keys.
type Reference interface {
	Node
	irReference()
}

// Param refers to an input variable of the compiled function.
type Param struct {
	Var *exprs.Variable
}

func (p Param) irNode()        {}
func (p Param) irReference()   {}
func (p Param) String() string { return p.Var.Name }

// Const is a literal scalar.
type Const struct {
	Value float64
}

func (c Const) irNode()      {}
func (c Const) irReference() {}
func (c Const) String() string {
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}

// VarRef refers by name to a previously defined value.
type VarRef struct {
	Sym Symbol
}

func (v VarRef) irNode()        {}
func (v VarRef) irReference()   {}
func (v VarRef) String() string { return v.Sym.String() }

// Unary is the body of a definition applying a unary operator.
type Unary struct {
	X  Reference
	Op ops.UnaryOpType
}

func (u Unary) irNode()        {}
func (u Unary) String() string { return fmt.Sprintf("%s(%s)", u.Op, u.X) }

// Binary is the body of a definition applying a binary operator.
type Binary struct {
	L, R Reference
	Op   ops.BinaryOpType
}

func (b Binary) irNode()        {}
func (b Binary) String() string { return fmt.Sprintf("%s(%s, %s)", b.Op, b.L, b.R) }

// Cond is the body of a definition selecting Zero when Test evaluates to 0
// and NonZero otherwise. Operands are stored in (Test, Zero, NonZero) order.
type Cond struct {
	Test, Zero, NonZero Reference
}

func (c Cond) irNode() {}
func (c Cond) String() string {
	return fmt.Sprintf("Cond(%s, zero=%s, nonZero=%s)", c.Test, c.Zero, c.NonZero)
}

// Def introduces one named value. Body is one of Unary, Binary or Cond.
type Def struct {
	Sym  Symbol
	Body Node
}

func (d Def) irNode()        {}
func (d Def) String() string { return fmt.Sprintf("%s = %s", d.Sym, d.Body) }

// DefsString renders one definition per line, in the given order. Useful for
// debugging and tests.
func DefsString(defs []Def) string {
	var b strings.Builder
	for _, def := range defs {
		b.WriteString(def.String())
		b.WriteString("\n")
	}
	return b.String()
}
