package sim

import "strconv"

// Rate is a nonnegative model quantity that may be unbounded. The flank
// density rho1 and the daily attrition rate delta_r degenerate to an
// effectively infinite value when their denominators collapse; Rate carries
// that as an explicit tag with defined comparison and arithmetic semantics
// instead of leaning on IEEE infinity propagation.
//
// Propagation rules: any sum with an unbounded operand is unbounded; a
// product of an unbounded rate and a positive factor is unbounded, while a
// non-positive factor collapses it to zero; any finite value compares
// smaller than an unbounded rate.
type Rate struct {
	value     float64
	unbounded bool
}

// FiniteRate returns a finite Rate floored at zero.
func FiniteRate(v float64) Rate {
	if v < 0 {
		v = 0
	}
	return Rate{value: v}
}

// UnboundedRate returns the unbounded sentinel.
func UnboundedRate() Rate {
	return Rate{unbounded: true}
}

// IsUnbounded reports whether r carries the unbounded tag.
func (r Rate) IsUnbounded() bool { return r.unbounded }

// Value returns the finite value. It is zero for the unbounded sentinel;
// callers must check IsUnbounded first when the distinction matters.
func (r Rate) Value() float64 {
	if r.unbounded {
		return 0
	}
	return r.value
}

// Mul scales the rate by f. Scaling an unbounded rate by a positive factor
// stays unbounded; by zero or a negative factor it collapses to zero.
func (r Rate) Mul(f float64) Rate {
	if r.unbounded {
		if f > 0 {
			return UnboundedRate()
		}
		return FiniteRate(0)
	}
	return FiniteRate(r.value * f)
}

// Plus adds two rates; unbounded absorbs.
func (r Rate) Plus(o Rate) Rate {
	if r.unbounded || o.unbounded {
		return UnboundedRate()
	}
	return FiniteRate(r.value + o.value)
}

// exceeds reports whether the rate is strictly greater than x. An unbounded
// rate exceeds every finite value.
func (r Rate) exceeds(x float64) bool {
	if r.unbounded {
		return true
	}
	return r.value > x
}

// SubtractFrom returns max(0, x - r). Subtracting an unbounded rate from any
// finite strength yields zero.
func (r Rate) SubtractFrom(x float64) float64 {
	if r.unbounded {
		return 0
	}
	if x < r.value {
		return 0
	}
	return x - r.value
}

// Quotient returns num divided by the rate. Division by an unbounded rate is
// zero; division of a positive numerator by a zero rate is unbounded in the
// model, so callers that need that case must branch on Value() < Epsilon
// themselves — Quotient panics on a zero divisor to keep the degenerate
// branches explicit.
func (r Rate) Quotient(num float64) float64 {
	if r.unbounded {
		return 0
	}
	if r.value < Epsilon {
		panic("sim: Quotient by zero rate; caller must handle the degenerate branch")
	}
	return num / r.value
}

// Format renders the rate with prec decimals, or "inf" when unbounded.
func (r Rate) Format(prec int) string {
	if r.unbounded {
		return "inf"
	}
	return strconv.FormatFloat(r.value, 'f', prec, 64)
}

func (r Rate) String() string {
	if r.unbounded {
		return "inf"
	}
	return strconv.FormatFloat(r.value, 'g', -1, 64)
}
