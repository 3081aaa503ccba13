package ir

import "github.com/gomlx/exprgraph/types"

// Operands returns the references a definition body depends on. It returns
// nil for References, whose dependencies are empty by construction.
func Operands(n Node) []Reference {
	switch b := n.(type) {
	case Unary:
		return []Reference{b.X}
	case Binary:
		return []Reference{b.L, b.R}
	case Cond:
		return []Reference{b.Test, b.Zero, b.NonZero}
	case Def:
		return Operands(b.Body)
	}
	return nil
}

// Reachable filters defs down to the definitions reachable from root,
// preserving their order. The translator emits defs in allocation order,
// which is already topological (operands are defined before their users), so
// the result can be emitted front to back by a code generator.
func Reachable(root Reference, defs []Def) []Def {
	bySym := make(map[Symbol]Def, len(defs))
	for _, def := range defs {
		bySym[def.Sym] = def
	}
	needed := types.MakeSet[Symbol](len(defs))
	var mark func(ref Reference)
	mark = func(ref Reference) {
		v, ok := ref.(VarRef)
		if !ok || needed.Has(v.Sym) {
			return
		}
		needed.Insert(v.Sym)
		for _, operand := range Operands(bySym[v.Sym]) {
			mark(operand)
		}
	}
	mark(root)

	kept := make([]Def, 0, len(needed))
	for _, def := range defs {
		if needed.Has(def.Sym) {
			kept = append(kept, def)
		}
	}
	return kept
}
