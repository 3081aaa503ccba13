package translate

import (
	"k8s.io/klog/v2"

	"github.com/gomlx/exprgraph/exprs"
	"github.com/gomlx/exprgraph/ir"
)

// factoredLine lowers scale*(sum(Weight*X) combined-with intercept) under
// the given ring, producing a depth-balanced subgraph.
//
// Terms are partitioned by weight sign and each partition reduced
// separately, so negative weights cost one inverse combination (a subtract,
// or a divide) instead of one scaling each. The intercept, when it differs
// from the ring identity, joins the positive partition as a weight-1
// constant term: "add the constant" under the sum ring, "multiply by
// constant**1" under the product ring.
func (t *Translator) factoredLine(terms []exprs.Term, intercept, scale float64, r ring) ir.Node {
	var pos, neg []exprs.Term
	if intercept != r.identity {
		pos = append(pos, exprs.Term{X: exprs.Const(intercept), Weight: 1})
	}
	for _, term := range terms {
		if term.Weight > 0 {
			pos = append(pos, term)
		} else {
			neg = append(neg, exprs.Term{X: term.X, Weight: -term.Weight})
		}
	}
	if klog.V(2).Enabled() {
		klog.Infof("translate: factoredLine scale=%g, %d positive and %d negative entries", scale, len(pos), len(neg))
	}

	posSum := t.combineTerms(pos, r)
	negSum := t.combineTerms(neg, r)

	var node ir.Node
	sign := 1.0
	switch {
	case posSum == nil && negSum == nil:
		node = ir.Const{Value: r.identity}
	case negSum == nil:
		node = posSum
	case posSum == nil:
		node = negSum
		sign = -1
	default:
		node = t.binary(posSum, negSum, r.inverse)
	}

	switch effective := scale * sign; effective {
	case 1:
		return node
	case -1:
		return t.binary(ir.Const{Value: r.identity}, t.Ref(node), r.inverse)
	case 2:
		ref := t.Ref(node)
		return t.binary(ref, ref, r.combine)
	default:
		return t.binary(t.Ref(node), ir.Const{Value: effective}, r.scale)
	}
}

// combineTerms lowers each weighted term and reduces the results to a single
// reference. Returns nil for an empty partition.
func (t *Translator) combineTerms(terms []exprs.Term, r ring) ir.Reference {
	if len(terms) == 0 {
		return nil
	}
	refs := make([]ir.Reference, 0, len(terms))
	for _, term := range terms {
		refs = append(refs, t.weightedTerm(term, r))
	}
	return t.combineTree(refs, r)
}

// weightedTerm lowers one Weight*X entry.
//
// A log-affine term inside a sum-ring lowering re-enters the pipeline under
// the product ring with its weight as the scale: a coefficient on a
// log-affine term is an exponent, and lowering it that way keeps the
// exponent on the product instead of scaling its flat translation. This
// check comes before the weight shortcuts for the same reason: weight 2 on a
// log-affine term must square it, not double it.
//
// Otherwise, unit weights cost nothing, a weight of 2 becomes a
// self-combination, and any other weight one scaling against a constant.
func (t *Translator) weightedTerm(term exprs.Term, r ring) ir.Reference {
	if logLine, ok := term.X.(*exprs.LogLine); ok && r.isSum() {
		f := exprs.FactorLogLine(logLine)
		return t.Ref(t.factoredLine(f.Terms, f.Factor, term.Weight, productRing))
	}
	x := t.Ref(t.ToIR(term.X))
	switch term.Weight {
	case 1:
		return x
	case 2:
		return t.Ref(t.binary(x, x, r.combine))
	default:
		return t.Ref(t.binary(x, ir.Const{Value: term.Weight}, r.scale))
	}
}

// combineTree reduces refs to one reference by combining adjacent pairs,
// halving the list each round. The resulting tree has depth O(log n),
// keeping both this recursion and the downstream consumer's stack shallow
// for large combinations, where a left-to-right fold would be O(n) deep.
func (t *Translator) combineTree(refs []ir.Reference, r ring) ir.Reference {
	for len(refs) > 1 {
		combined := make([]ir.Reference, 0, (len(refs)+1)/2)
		for i := 0; i+1 < len(refs); i += 2 {
			combined = append(combined, t.Ref(t.binary(refs[i], refs[i+1], r.combine)))
		}
		if len(refs)%2 == 1 {
			combined = append(combined, refs[len(refs)-1])
		}
		refs = combined
	}
	return refs[0]
}
