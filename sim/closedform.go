package sim

// ClosedFormResult is the analytic single-shot evaluation of a scenario: the
// two-piece campaign duration formula, net penetration, breakthrough, and
// total invader casualties. Unending campaigns are tagged rather than
// carrying IEEE infinities; Gain and InvaderCasualties are meaningful only
// when Unending is false.
type ClosedFormResult struct {
	TStar             float64 // campaign duration in days
	Unending          bool    // duration (and gain, casualties) diverge
	Gain              float64 // net penetration depth, km
	Breakthrough      bool
	InvaderCasualties float64 // Ca*G + k5
	ReinforcementRate float64 // defender strength gain per day inside the window
}

// ClosedForm evaluates the scenario analytically, without the day loop. The
// duration formula has two cases split at the reserve arrival window wth/Vr:
// while reserves still flow the defender gains strength at a constant rate,
// afterwards only attrition moves the balance.
func ClosedForm(in ScenarioInput) ClosedFormResult {
	in = in.Normalized()
	dp := Derive(in)

	db := 0.0
	reserveWindow := 0.0
	windowFinite := false
	if in.Vr > Epsilon {
		db = in.B * in.Fr * in.Vr * dp.Ps / in.Wth
		reserveWindow = in.Wth / in.Vr
		windowFinite = true
	}

	res := ClosedFormResult{ReinforcementRate: db}

	num1 := dp.R0 - dp.H*dp.B0
	den1 := dp.DeltaR.Plus(FiniteRate(dp.H * db))

	switch {
	case den1.IsUnbounded():
		// Infinite flank attrition stops the offensive immediately.
		res.TStar = 0
	case den1.Value() < Epsilon:
		if num1 > 0 {
			res.Unending = true
		}
	default:
		t1 := den1.Quotient(num1)
		switch {
		case t1 < 0:
			// Attacker starts below the halt threshold.
			res.TStar = 0
		case !windowFinite || t1 < reserveWindow:
			res.TStar = t1
		default:
			// Reserves are spent before the offensive stalls; only delta_r
			// drains the attacker from here on.
			num2 := dp.R0 - dp.H*dp.B0 - dp.H*in.B*in.Fr*dp.Ps
			switch {
			case dp.DeltaR.IsUnbounded():
				res.TStar = 0
			case dp.DeltaR.Value() < Epsilon:
				if num2 > 0 {
					res.Unending = true
				}
			default:
				t2 := dp.DeltaR.Quotient(num2)
				if t2 > 0 {
					res.TStar = t2
				}
			}
		}
	}

	if res.Unending {
		// Infinite penetration against a finite depth is a breakthrough.
		res.Breakthrough = true
		return res
	}

	res.Gain = res.TStar * in.Va
	res.Breakthrough = res.Gain > in.D
	res.InvaderCasualties = dp.Ca*res.Gain + in.K5
	return res
}
