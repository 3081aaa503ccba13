package translate

import "github.com/gomlx/exprgraph/ops"

// ring describes the algebraic structure the factored-line pipeline is
// generic over: how two partial results combine, how a combination is
// undone, the identity element, and how a result is scaled by a constant
// (the repeated application of combine).
//
// Instantiated with sumRing a factored line lowers to an ordinary affine
// sum; with productRing the same code lowers a log-affine combination to a
// product of powers, where "scaling by k" means raising to the power k.
type ring struct {
	combine  ops.BinaryOpType
	inverse  ops.BinaryOpType
	scale    ops.BinaryOpType
	identity float64
}

var (
	sumRing     = ring{combine: ops.BinaryOpAdd, inverse: ops.BinaryOpSub, scale: ops.BinaryOpMul, identity: 0}
	productRing = ring{combine: ops.BinaryOpMul, inverse: ops.BinaryOpDiv, scale: ops.BinaryOpPow, identity: 1}
)

// isSum distinguishes the one place the pipeline must switch rings
// mid-recursion: a log-affine term weighted inside an ordinary sum.
func (r ring) isSum() bool { return r.combine == ops.BinaryOpAdd }
