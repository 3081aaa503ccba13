package exprs

import (
	"math"

	"github.com/pkg/errors"
)

// Factored is the normalized form of a Line, ready for lowering:
// Scale * (sum(Weight*X) + Intercept). Constant terms have been folded into
// the intercept and zero weights dropped.
type Factored struct {
	Terms     []Term
	Intercept float64
	Scale     float64
}

// FactorLine normalizes a Line for the lowering pipeline.
//
// Beyond folding constants, it extracts a common scale: when every surviving
// coefficient shares the same value k and the intercept is zero, the
// coefficients are normalized to 1 and k is returned as the Scale. This
// turns k*x0+k*x1+... into one scaling of a unit-weight sum, which the
// pipeline can often lower without any multiplication at all (k in
// {1, -1, 2}).
func FactorLine(l *Line) Factored {
	f := Factored{Intercept: l.intercept, Scale: 1}
	for _, t := range l.terms.list {
		if t.Weight == 0 {
			continue
		}
		if c, ok := t.X.(*Constant); ok {
			f.Intercept += t.Weight * c.Value
			continue
		}
		f.Terms = append(f.Terms, t)
	}
	if len(f.Terms) == 0 || f.Intercept != 0 {
		return f
	}
	k := f.Terms[0].Weight
	if k == 1 {
		return f
	}
	for _, t := range f.Terms {
		if t.Weight != k {
			return f
		}
		// A weight on a log-affine term is an exponent, not a multiplier;
		// hoisting it into the line's scale would change its meaning.
		if _, ok := t.X.(*LogLine); ok {
			return f
		}
	}
	for i := range f.Terms {
		f.Terms[i].Weight = 1
	}
	f.Scale = k
	return f
}

// FactoredLog is the normalized form of a LogLine, ready for lowering:
// Factor * prod(X**Weight). Constant terms have been folded into the
// multiplicative factor and zero weights dropped.
type FactoredLog struct {
	Terms  []Term
	Factor float64
}

// FactorLogLine normalizes a LogLine for the lowering pipeline: a constant
// term c with weight w contributes c**w to the factor.
func FactorLogLine(ll *LogLine) FactoredLog {
	f := FactoredLog{Factor: 1}
	for _, t := range ll.terms.list {
		if t.Weight == 0 {
			continue
		}
		if c, ok := t.X.(*Constant); ok {
			f.Factor *= math.Pow(c.Value, t.Weight)
			continue
		}
		f.Terms = append(f.Terms, t)
	}
	return f
}

// Validate checks the input contract the translator relies on. Lines built
// through this package's constructors always pass; it is meant as a
// defensive boundary check for externally assembled trees.
func (l *Line) Validate() error {
	if math.IsNaN(l.intercept) {
		return errors.Errorf("line %s: intercept is NaN", l)
	}
	for _, t := range l.terms.list {
		if t.Weight == 0 {
			return errors.Errorf("line %s: zero-weight entry for %s should have been eliminated", l, t.X)
		}
		if math.IsNaN(t.Weight) {
			return errors.Errorf("line %s: NaN weight for %s", l, t.X)
		}
	}
	return nil
}

// Validate checks the input contract the translator relies on, like
// Line.Validate.
func (ll *LogLine) Validate() error {
	for _, t := range ll.terms.list {
		if t.Weight == 0 {
			return errors.Errorf("log-line %s: zero-weight entry for %s should have been eliminated", ll, t.X)
		}
		if math.IsNaN(t.Weight) {
			return errors.Errorf("log-line %s: NaN weight for %s", ll, t.X)
		}
		if _, ok := t.X.(*LogLine); ok {
			return errors.Errorf("log-line %s: nested log-line %s should have been flattened", ll, t.X)
		}
	}
	return nil
}
