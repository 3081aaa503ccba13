// Package translate lowers a symbolic expression tree (package exprs) into
// the flattened, common-subexpression-eliminated IR of package ir.
//
// A Translator walks the tree bottom-up. Primitive nodes (unary operations,
// binary combinations produced by the lowering pipeline, conditionals) are
// hash-consed: structurally identical operations are assigned one symbol the
// first time they are requested and returned as a by-name reference ever
// after. Affine (Line) and log-affine (LogLine) nodes go through a lowering
// pipeline, written once over a small ring descriptor so the same code
// serves ordinary sums and products of powers.
//
// All mutable state (the three hash-consing tables and the definition log)
// belongs to one Translator. Translating concurrently requires one
// Translator per goroutine; definitions are never shared across independent
// compilations.
package translate

import (
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"

	"github.com/gomlx/exprgraph/exprs"
	"github.com/gomlx/exprgraph/ir"
	"github.com/gomlx/exprgraph/ops"
)

// Translator holds the state of one compilation: the hash-consing tables and
// the log of definitions allocated so far, in allocation order.
//
// The zero value is not usable; create it with New.
type Translator struct {
	// One table per operation arity: their key shapes differ, and mixing
	// arities in one table buys nothing.
	unaryCache  map[ir.Unary]ir.Symbol
	binaryCache map[ir.Binary]ir.Symbol
	condCache   map[ir.Cond]ir.Symbol

	defs []ir.Def
}

// New creates an empty Translator. Each compilation (or each concurrent
// translation) needs its own.
func New() *Translator {
	return &Translator{
		unaryCache:  make(map[ir.Unary]ir.Symbol),
		binaryCache: make(map[ir.Binary]ir.Symbol),
		condCache:   make(map[ir.Cond]ir.Symbol),
	}
}

// Definitions returns the log of definitions allocated by this Translator in
// allocation order. The order is topological: every definition appears after
// the definitions it references.
//
// The returned slice is owned by the Translator; it grows on further
// translations.
func (t *Translator) Definitions() []ir.Def { return t.defs }

// Ref canonicalizes an IR value to its Reference form: References pass
// through unchanged, a definition yields a by-name reference to its own
// symbol. Any other shape means the pipeline leaked a bare definition body,
// which is a bug in this package; it panics with a diagnostic.
func (t *Translator) Ref(node ir.Node) ir.Reference {
	if ref, ok := node.(ir.Reference); ok {
		return ref
	}
	if def, ok := node.(ir.Def); ok {
		return ir.VarRef{Sym: def.Sym}
	}
	exceptions.Panicf("translate: lowering produced %T (%s) where a reference or definition was expected", node, node)
	return nil
}

// memoize probes cache with each candidate key in order and returns a
// reference to the existing definition on the first hit. On a miss it mints
// a fresh symbol, registers it under the first candidate key, and appends a
// new definition to the log.
//
// The candidate key doubles as the definition body: bodies are comparable
// value types whose operands were necessarily translated before the probe,
// so on a hit nothing is built beyond the key itself and no symbol is
// allocated.
func memoize[K interface {
	comparable
	ir.Node
}](t *Translator, cache map[K]ir.Symbol, keys ...K) ir.Node {
	for _, key := range keys {
		if sym, found := cache[key]; found {
			if klog.V(2).Enabled() {
				klog.Infof("translate: cache hit %s -> %s", key, sym)
			}
			return ir.VarRef{Sym: sym}
		}
	}
	sym := ir.NewSymbol()
	cache[keys[0]] = sym
	def := ir.Def{Sym: sym, Body: keys[0]}
	t.defs = append(t.defs, def)
	return def
}

// unary hash-conses op(x).
func (t *Translator) unary(x ir.Reference, op ops.UnaryOpType) ir.Node {
	return memoize(t, t.unaryCache, ir.Unary{X: x, Op: op})
}

// binary hash-conses op(l, r). For a commutative operator the reversed
// operand pair is a second candidate key, so that op(a, b) and op(b, a)
// collapse to one definition; only the forward key is ever registered.
// Non-commutative operators probe the forward order alone: op(a, b) and
// op(b, a) are different computations.
func (t *Translator) binary(l, r ir.Reference, op ops.BinaryOpType) ir.Node {
	forward := ir.Binary{L: l, R: r, Op: op}
	if op.IsCommutative() && l != r {
		return memoize(t, t.binaryCache, forward, ir.Binary{L: r, R: l, Op: op})
	}
	return memoize(t, t.binaryCache, forward)
}

// conditional hash-conses the (test, zero, nonZero) selection. No operand
// reordering: the three positions have distinct meanings.
func (t *Translator) conditional(test, zero, nonZero ir.Reference) ir.Node {
	return memoize(t, t.condCache, ir.Cond{Test: test, Zero: zero, NonZero: nonZero})
}

// Compile translates one expression tree with a fresh Translator and returns
// the result reference together with the definitions it depends on, in
// emission order. Building-time panics (invariant violations) are converted
// to an error return.
func Compile(x exprs.Expr) (result ir.Reference, defs []ir.Def, err error) {
	t := New()
	err = exceptions.TryCatch[error](func() {
		result = t.Ref(t.ToIR(x))
	})
	if err != nil {
		return nil, nil, err
	}
	return result, ir.Reachable(result, t.Definitions()), nil
}
