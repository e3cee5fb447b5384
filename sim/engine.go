package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/jalalhussein1982/s.biddle.model/sim/trace"
)

// Phase classifies the engine's terminal state.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseHalted
	PhaseBreakthrough
	PhaseDayCapReached
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseHalted:
		return "halted"
	case PhaseBreakthrough:
		return "breakthrough"
	case PhaseDayCapReached:
		return "day-cap"
	default:
		return "unknown"
	}
}

// DailyState is the mutable state threaded through the day loop. It is owned
// by a single Simulate call and discarded once the records are emitted.
type DailyState struct {
	Rt float64 // invader strength at the point of attack, floored at 0
	Bt float64 // defender strength at the point of attack
	G  float64 // cumulative km gained, non-decreasing

	InvCasOnAxis    float64 // cumulative invader on-axis casualties
	DefCasNoOffAxis float64 // cumulative defender casualties without k6

	Phase Phase
}

// ScenarioResult bundles everything one scenario produces: its inputs, the
// derived constants, the ordered daily records, and the final outcome.
type ScenarioResult struct {
	ID      int
	Input   ScenarioInput
	Derived DerivedParameters
	Days    []trace.DailyRecord
	Outcome trace.FinalOutcome
}

// Engine advances one scenario a day at a time until the offensive halts,
// breaks through, or hits the day cap. Strictly sequential: each day's state
// depends on the previous day's end-of-day values.
type Engine struct {
	// DayCap bounds the loop. The default, MaxSimulationDays, is a safety
	// valve, not a model parameter.
	DayCap int
}

// NewEngine returns an Engine with the default day cap.
func NewEngine() *Engine {
	return &Engine{DayCap: MaxSimulationDays}
}

// Simulate runs the full campaign for one scenario with the default engine.
func Simulate(id int, in ScenarioInput) ScenarioResult {
	return NewEngine().Simulate(id, in)
}

// Simulate runs one scenario to termination and returns its records.
// Deterministic: the same input always yields bit-identical output.
func (e *Engine) Simulate(id int, in ScenarioInput) ScenarioResult {
	raw := in
	in = in.Normalized()
	dp := Derive(in)

	st := DailyState{
		Rt:    dp.R0,
		Bt:    dp.B0,
		Phase: PhaseRunning,
	}
	if st.Rt < 0 {
		st.Rt = 0
	}

	// Days of reinforcement flow before the reserve pool is spent.
	reserveWindow := 0.0
	windowFinite := false
	if in.Vr > Epsilon {
		reserveWindow = in.Wth / in.Vr
		windowFinite = true
	}

	days := make([]trace.DailyRecord, 0, 8)
	breakthrough := false
	halted := false
	finalDay := 0

	for day := 1; day <= e.DayCap; day++ {
		finalDay = day
		rtSOD := st.Rt
		btSOD := st.Bt

		var (
			reinforced    float64
			defCasReserve float64
			kmToday       float64
			invCasToday   float64
			defCasPoA     float64
		)

		haltCond := rtSOD <= dp.H*btSOD+Epsilon || rtSOD < Epsilon
		active := true

		if haltCond || in.Va <= Epsilon || dp.DeltaR.IsUnbounded() {
			// Frozen day: no advance, no reinforcement, strengths carry
			// over. A stalled assault (Va ~ 0) and an infinite attrition
			// rate classify as halts just like the strength inequality.
			active = false
			halted = true
		} else {
			if !windowFinite || float64(day-1) < reserveWindow {
				reinforced = in.B * in.Fr * in.Vr * dp.Ps / in.Wth
				if in.Vr > Epsilon {
					attempted := in.B * in.Fr * in.Vr / in.Wth
					defCasReserve = attempted * (1 - dp.Ps)
					if defCasReserve < 0 {
						defCasReserve = 0
					}
				}
			}

			// Advance is all-or-nothing: the halt test above either blocks
			// the day entirely or the full daily velocity is gained.
			kmToday = in.Va
			st.G += kmToday

			invCasToday = dp.Ca * kmToday
			if invCasToday < 0 {
				invCasToday = 0
			}
			st.InvCasOnAxis += invCasToday

			// Defender point-of-attack losses use the initial density b0
			// every day, not the reinforced bt. Deliberate model
			// simplification carried over from the published appendix.
			defCasPoA = dp.B0 * kmToday
			if defCasPoA < 0 {
				defCasPoA = 0
			}

			st.Rt = dp.DeltaR.SubtractFrom(rtSOD)
			st.Bt = btSOD + reinforced
		}

		st.DefCasNoOffAxis += defCasPoA + defCasReserve

		if st.G >= in.D-Epsilon {
			// Breakthrough overrides a halt recorded the same day.
			breakthrough = true
			halted = false
			active = false
		}

		logrus.Debugf("[scenario %d day %03d] rt=%.0f bt=%.0f G=%.2f halt=%v active=%v",
			id, day, st.Rt, st.Bt, st.G, haltCond, active)

		days = append(days, trace.DailyRecord{
			ScenarioID:             id,
			Day:                    day,
			RtSOD:                  rtSOD,
			BtSOD:                  btSOD,
			ReinforcementsSurvived: reinforced,
			KmGainedToday:          kmToday,
			KmGainedCum:            st.G,
			InvCasPoAToday:         invCasToday,
			InvCasCumOnAxis:        st.InvCasOnAxis,
			DefCasPoAToday:         defCasPoA,
			DefCasReservesToday:    defCasReserve,
			DefCasTotalToday:       defCasPoA + defCasReserve,
			DefCasCumNoOffAxis:     st.DefCasNoOffAxis,
			RtEOD:                  st.Rt,
			BtEOD:                  st.Bt,
			HaltConditionMet:       haltCond,
			SimulationContinues:    active,
		})

		if !active {
			break
		}
	}

	switch {
	case breakthrough:
		st.Phase = PhaseBreakthrough
	case halted:
		st.Phase = PhaseHalted
	default:
		// The loop exhausted the cap while still running. Classify as
		// halted post hoc when the halt inequality holds on the final
		// end-of-day strengths.
		st.Phase = PhaseDayCapReached
		if st.Rt <= dp.H*st.Bt+Epsilon || st.Rt < Epsilon {
			halted = true
		}
	}

	outcome := trace.FinalOutcome{
		ScenarioID:         id,
		DurationDays:       finalDay,
		KmGainedCum:        st.G,
		InvCasCumOnAxis:    st.InvCasOnAxis,
		DefCasCumNoOffAxis: st.DefCasNoOffAxis,
		InvCasCampaign:     st.InvCasOnAxis + in.K5,
		DefCasCampaign:     st.DefCasNoOffAxis + in.K6,
		Breakthrough:       breakthrough,
		Halted:             halted,
		DayCapReached:      st.Phase == PhaseDayCapReached,
	}

	return ScenarioResult{
		ID:      id,
		Input:   raw, // output rows echo the caller's values, not the normalized copy
		Derived: dp,
		Days:    days,
		Outcome: outcome,
	}
}
