// Package ops enumerates the scalar operators shared by the expression layer
// (package exprs) and the IR layer (package ir).
//
// Operators are opaque identifiers from the point of view of the translator:
// the only metadata it queries is BinaryOpType.IsCommutative, which drives
// cache-key folding during common-subexpression elimination.
package ops

// UnaryOpType identifies a scalar operation with one operand.
type UnaryOpType int

const (
	UnaryOpInvalid UnaryOpType = iota
	UnaryOpAbs
	UnaryOpCeil
	UnaryOpCos
	UnaryOpExp
	UnaryOpFloor
	UnaryOpLog
	UnaryOpSigmoid
	UnaryOpSin
	UnaryOpSqrt
	UnaryOpTanh
)

var unaryOpNames = [...]string{
	UnaryOpInvalid: "InvalidUnaryOp",
	UnaryOpAbs:     "Abs",
	UnaryOpCeil:    "Ceil",
	UnaryOpCos:     "Cos",
	UnaryOpExp:     "Exp",
	UnaryOpFloor:   "Floor",
	UnaryOpLog:     "Log",
	UnaryOpSigmoid: "Sigmoid",
	UnaryOpSin:     "Sin",
	UnaryOpSqrt:    "Sqrt",
	UnaryOpTanh:    "Tanh",
}

// String implements fmt.Stringer.
func (op UnaryOpType) String() string {
	if op < 0 || int(op) >= len(unaryOpNames) {
		return "UnaryOpType(?)"
	}
	return unaryOpNames[op]
}

// BinaryOpType identifies a scalar operation with two operands.
type BinaryOpType int

const (
	BinaryOpInvalid BinaryOpType = iota
	BinaryOpAdd
	BinaryOpSub
	BinaryOpMul
	BinaryOpDiv
	BinaryOpPow
)

var binaryOpNames = [...]string{
	BinaryOpInvalid: "InvalidBinaryOp",
	BinaryOpAdd:     "Add",
	BinaryOpSub:     "Sub",
	BinaryOpMul:     "Mul",
	BinaryOpDiv:     "Div",
	BinaryOpPow:     "Pow",
}

// String implements fmt.Stringer.
func (op BinaryOpType) String() string {
	if op < 0 || int(op) >= len(binaryOpNames) {
		return "BinaryOpType(?)"
	}
	return binaryOpNames[op]
}

// IsCommutative reports whether op(a, b) == op(b, a) for all a, b.
// Commutative operations may share a single cached definition for both
// operand orders.
func (op BinaryOpType) IsCommutative() bool {
	return op == BinaryOpAdd || op == BinaryOpMul
}
