package sim

import "math"

// DerivedParameters are the per-scenario constants computed once from a
// ScenarioInput before the day loop starts. Immutable thereafter.
type DerivedParameters struct {
	TR   float64 // invader technology index, >= 0
	TB   float64 // defender technology index, >= 0
	TC   float64 // dyadic balance at the point of attack
	TRho float64 // dyadic balance on the flanks
	Ps   float64 // reserve survival fraction, in [0, 1]
	H    float64 // invaders one defender can halt, >= 0
	Rho1 Rate    // required flank defender linear density
	Rho2 float64 // pinning density, troops/km
	R0   float64 // invader strength at the point of attack, day 0
	B0   float64 // defender strength at the point of attack, day 0
	Ca   float64 // invader casualties per km gained, >= 0
	// DeltaR is the invader's daily strength loss while advancing. Unbounded
	// exactly when Rho1 is unbounded and the assault is moving.
	DeltaR Rate
}

// Derive computes the scenario constants. Pure: no side effects, never
// blocks, and numeric degeneracies are absorbed by clamping or the
// unbounded sentinel rather than returned as errors.
func Derive(in ScenarioInput) DerivedParameters {
	in = in.Normalized()

	var dp DerivedParameters
	if in.YR >= baseYear {
		dp.TR = (in.YR - baseYear) / 10.0
	}
	if in.YB >= baseYear {
		dp.TB = (in.YB - baseYear) / 10.0
	}

	// Indices are floored at zero above, so the Epsilon keeps both balances
	// finite when the opposing index is exactly zero: the balance comes out
	// large but finite rather than infinite.
	dp.TC = dp.TB * dp.TB / (dp.TR + Epsilon)
	dp.TRho = dp.TR * dp.TR / (dp.TB + Epsilon)

	dp.Ps = survivalFraction(dp.TR, in.K2, in.Vr)
	dp.H = in.K1 * (1 - in.Fe)

	dp.Rho1 = flankDensity(dp.TRho, in.K4, in.K9*in.B*in.Fr*dp.Ps)
	dp.Rho2 = in.K3 * in.B * (1 - in.Fr) / in.Wth

	dp.R0 = in.R - dp.Rho2*(in.Wth-in.Wa)
	dp.B0 = in.B * (1 - in.Fr) * in.Wa / (in.Wth * in.D)

	dp.Ca = in.K7 * (1 - in.Fe) * dp.TC * dp.B0 * (in.Va + in.K8)
	if dp.Ca < 0 {
		dp.Ca = 0
	}

	dp.DeltaR = dp.Rho1.Mul(2 * in.Va).Plus(FiniteRate(dp.Ca * in.Va))
	return dp
}

// survivalFraction computes Ps = TR^(-k2*Vr) clamped into [0, 1]. Zero
// technology means no reserves survive the move; a domain error or overflow
// during exponentiation is likewise absorbed as zero.
func survivalFraction(tr, k2, vr float64) float64 {
	if tr <= Epsilon {
		return 0
	}
	v := math.Pow(tr, -k2*vr)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	// 0 < TR < 1 with a negative exponent pushes the raw value above 1.
	return math.Min(1, math.Max(0, v))
}

// flankDensity computes rho1 = num / TRho^k4. When the denominator is not a
// valid real (negative base) or collapses below Epsilon, the density is
// unbounded if any flank force is actually required, else zero.
func flankDensity(tRho, k4, num float64) Rate {
	denom := math.NaN()
	if tRho >= 0 {
		denom = math.Pow(tRho, k4)
	}
	if math.IsNaN(denom) || math.Abs(denom) < Epsilon {
		if num > 0 {
			return UnboundedRate()
		}
		return FiniteRate(0)
	}
	return FiniteRate(num / denom)
}
