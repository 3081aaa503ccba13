package exprs

import "strings"

// Line is an affine combination: sum(Weight*X for each term) + Intercept.
//
// Sums, differences and scalings of arbitrary expressions normalize into this
// form: like terms are merged by adding their weights, constants fold into
// the intercept, and nested Lines flatten. Terms are kept in first-insertion
// order.
type Line struct {
	terms     termList
	intercept float64
}

func (l *Line) exprNode() {}

// Terms returns the coefficient mapping in insertion order.
// The returned slice is owned by the Line and must not be modified.
func (l *Line) Terms() []Term { return l.terms.list }

// Intercept returns the constant part of the affine combination.
func (l *Line) Intercept() float64 { return l.intercept }

func (l *Line) String() string {
	var b strings.Builder
	b.WriteString("(")
	l.terms.writeTerms(&b, " + ", "*")
	if l.intercept != 0 || len(l.terms.list) == 0 {
		if len(l.terms.list) > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(Const(l.intercept).String())
	}
	b.WriteString(")")
	return b.String()
}

// absorb adds k*x into the line, flattening nested Lines and folding
// constants into the intercept.
func (l *Line) absorb(k float64, x Expr) {
	switch xT := x.(type) {
	case *Constant:
		l.intercept += k * xT.Value
	case *Line:
		l.intercept += k * xT.intercept
		for _, t := range xT.terms.list {
			l.terms.add(t.X, k*t.Weight)
		}
	default:
		l.terms.add(x, k)
	}
}

// simplify returns the cheapest equivalent expression: the line itself, a
// bare Constant when no terms survived, or the single unscaled term.
func (l *Line) simplify() Expr {
	l.terms.compact()
	if len(l.terms.list) == 0 {
		return Const(l.intercept)
	}
	if len(l.terms.list) == 1 && l.intercept == 0 && l.terms.list[0].Weight == 1 {
		return l.terms.list[0].X
	}
	return l
}

// Add returns a+b in Line form.
func Add(a, b Expr) Expr {
	l := &Line{}
	l.absorb(1, a)
	l.absorb(1, b)
	return l.simplify()
}

// Sub returns a-b in Line form.
func Sub(a, b Expr) Expr {
	l := &Line{}
	l.absorb(1, a)
	l.absorb(-1, b)
	return l.simplify()
}

// Sum returns x0+x1+...+xn in Line form.
func Sum(xs ...Expr) Expr {
	l := &Line{}
	for _, x := range xs {
		l.absorb(1, x)
	}
	return l.simplify()
}

// Scale returns k*x in Line form.
func Scale(k float64, x Expr) Expr {
	if k == 0 {
		return Const(0)
	}
	l := &Line{}
	l.absorb(k, x)
	return l.simplify()
}

// Neg returns -x.
func Neg(x Expr) Expr { return Scale(-1, x) }

// LogLine is a log-affine combination: sum(Weight*log(X) for each term),
// that is, the product of powers prod(X**Weight).
//
// Products, quotients and constant powers of arbitrary expressions normalize
// into this form; nested LogLines flatten, like factors merge by adding
// their exponents. Constant factors stay in the term list (as
// constant**weight entries) until FactorLogLine folds them out.
type LogLine struct {
	terms termList
}

func (ll *LogLine) exprNode() {}

// Terms returns the exponent mapping in insertion order.
// The returned slice is owned by the LogLine and must not be modified.
func (ll *LogLine) Terms() []Term { return ll.terms.list }

func (ll *LogLine) String() string {
	var b strings.Builder
	b.WriteString("(")
	ll.terms.writeTerms(&b, " * ", "^")
	b.WriteString(")")
	return b.String()
}

// absorb multiplies x**k into the product, flattening nested LogLines.
func (ll *LogLine) absorb(k float64, x Expr) {
	if xT, ok := x.(*LogLine); ok {
		for _, t := range xT.terms.list {
			ll.terms.add(t.X, k*t.Weight)
		}
		return
	}
	ll.terms.add(x, k)
}

func (ll *LogLine) simplify() Expr {
	ll.terms.compact()
	if len(ll.terms.list) == 0 {
		return Const(1)
	}
	if len(ll.terms.list) == 1 && ll.terms.list[0].Weight == 1 {
		return ll.terms.list[0].X
	}
	return ll
}

// Mul returns a*b in LogLine form.
func Mul(a, b Expr) Expr {
	ll := &LogLine{}
	ll.absorb(1, a)
	ll.absorb(1, b)
	return ll.simplify()
}

// Div returns a/b in LogLine form.
func Div(a, b Expr) Expr {
	ll := &LogLine{}
	ll.absorb(1, a)
	ll.absorb(-1, b)
	return ll.simplify()
}

// Prod returns x0*x1*...*xn in LogLine form.
func Prod(xs ...Expr) Expr {
	ll := &LogLine{}
	for _, x := range xs {
		ll.absorb(1, x)
	}
	return ll.simplify()
}

// PowConst returns x**k in LogLine form.
func PowConst(x Expr, k float64) Expr {
	if k == 0 {
		return Const(1)
	}
	ll := &LogLine{}
	ll.absorb(k, x)
	return ll.simplify()
}
