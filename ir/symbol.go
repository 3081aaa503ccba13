package ir

import (
	"fmt"
	"sync/atomic"
)

// Symbol names one defined value. Symbols are globally unique and strictly
// increasing in allocation order; they are never reused, and symbols minted
// for different compilations never compare equal.
type Symbol int64

// symbolCounter is process-wide so that independent translations can never
// mint colliding symbols.
var symbolCounter atomic.Int64

// NewSymbol mints a fresh symbol. Safe for concurrent use.
func NewSymbol() Symbol {
	return Symbol(symbolCounter.Add(1))
}

// String implements fmt.Stringer.
func (s Symbol) String() string { return fmt.Sprintf("v%d", int64(s)) }
