package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_BaselineHaltsOnDayFour(t *testing.T) {
	res := Simulate(1, DefaultInput())
	o := res.Outcome

	// The attacker out-paces its attrition for three days, then the
	// reinforced defender crosses the halt threshold at the start of day 4.
	assert.Equal(t, 4, o.DurationDays)
	assert.InDelta(t, 13.5, o.KmGainedCum, 1e-9)
	assert.False(t, o.Breakthrough)
	assert.True(t, o.Halted)
	assert.False(t, o.DayCapReached)

	require.Len(t, res.Days, 4)
	last := res.Days[3]
	assert.True(t, last.HaltConditionMet)
	assert.False(t, last.SimulationContinues)
	assert.Equal(t, 0.0, last.KmGainedToday, "halt day records no advance")
	assert.Equal(t, last.RtSOD, last.RtEOD, "strengths freeze on the halt day")
	assert.Equal(t, last.BtSOD, last.BtEOD)

	// Three advancing days of on-axis casualties at Ca*Va each.
	assert.InDelta(t, 3*207000, o.InvCasCumOnAxis, 1.0)
	assert.InDelta(t, o.InvCasCumOnAxis+200000, o.InvCasCampaign, 1e-6)
	assert.InDelta(t, o.DefCasCumNoOffAxis+200000, o.DefCasCampaign, 1e-6)
}

func TestSimulate_DailyStateEvolution(t *testing.T) {
	res := Simulate(1, DefaultInput())
	require.Len(t, res.Days, 4)

	// Reinforcement flows at B*fr*Vr*Ps/wth = 80000 survivors per
	// advancing day; the attacker loses delta_r = 243000 per day.
	d1 := res.Days[0]
	assert.InDelta(t, 1022000, d1.RtSOD, 1e-6)
	assert.InDelta(t, 2000, d1.BtSOD, 1e-6)
	assert.InDelta(t, 80000, d1.ReinforcementsSurvived, 1e-3)
	assert.InDelta(t, 779000, d1.RtEOD, 1.0)
	assert.InDelta(t, 82000, d1.BtEOD, 1e-3)

	d3 := res.Days[2]
	assert.InDelta(t, 293000, d3.RtEOD, 2.0)
	assert.InDelta(t, 242000, d3.BtEOD, 1e-2)

	// G is non-decreasing, strengths never negative.
	prev := 0.0
	for _, d := range res.Days {
		assert.GreaterOrEqual(t, d.KmGainedCum, prev)
		prev = d.KmGainedCum
		assert.GreaterOrEqual(t, d.RtEOD, 0.0)
		assert.GreaterOrEqual(t, d.BtEOD, 0.0)
	}
}

func TestSimulate_BreakthroughOverridesSameDayHalt(t *testing.T) {
	in := DefaultInput()
	in.D = 13.5 // reached exactly at the end of day 3
	res := Simulate(1, in)
	o := res.Outcome

	assert.Equal(t, 3, o.DurationDays)
	assert.True(t, o.Breakthrough)
	assert.False(t, o.Halted, "breakthrough takes precedence in the final classification")
	assert.GreaterOrEqual(t, o.KmGainedCum, in.D-Epsilon)
}

func TestSimulate_BreakthroughNoEarlierThanDepthAllows(t *testing.T) {
	// Va=4.5 against d=15 cannot break through before day ceil(15/4.5)=4.
	// With fe=1 and fr=0 nothing halts the assault, so it reaches depth on
	// exactly that day.
	in := DefaultInput()
	in.Fe = 1
	in.Fr = 0
	res := Simulate(1, in)
	o := res.Outcome

	assert.True(t, o.Breakthrough)
	assert.Equal(t, 4, o.DurationDays)
	assert.InDelta(t, 18.0, o.KmGainedCum, 1e-9)
	assert.False(t, o.Halted)
}

func TestSimulate_ImmediateHaltAtDayOne(t *testing.T) {
	in := DefaultInput()
	in.R = 1000 // hopelessly outnumbered at the point of attack
	res := Simulate(1, in)
	o := res.Outcome

	assert.Equal(t, 1, o.DurationDays)
	assert.True(t, o.Halted)
	assert.False(t, o.Breakthrough)
	assert.Equal(t, 0.0, o.KmGainedCum)
	assert.Equal(t, 0.0, o.InvCasCumOnAxis, "no on-axis casualties when the assault never moves")
	assert.InDelta(t, in.K5, o.InvCasCampaign, 1e-9, "off-axis constant still added once")
}

func TestSimulate_ZeroAssaultVelocityHaltsAfterOneRecord(t *testing.T) {
	in := DefaultInput()
	in.Va = 0
	res := Simulate(1, in)

	require.Len(t, res.Days, 1)
	assert.True(t, res.Outcome.Halted)
	assert.False(t, res.Outcome.Breakthrough)
	assert.Equal(t, 0.0, res.Outcome.KmGainedCum)
}

func TestSimulate_UnboundedAttritionHaltsImmediately(t *testing.T) {
	in := DefaultInput()
	in.YR = 1901 // T_rho^k4 collapses, rho1 and delta_r unbounded
	in.K4 = 10
	res := Simulate(1, in)

	require.True(t, res.Derived.DeltaR.IsUnbounded())
	assert.Equal(t, 1, res.Outcome.DurationDays)
	assert.True(t, res.Outcome.Halted)
	assert.Equal(t, 0.0, res.Outcome.KmGainedCum)
}

func TestSimulate_DayCapReached(t *testing.T) {
	// fe=1 zeroes both H and Ca; fr=0 removes flank attrition. Nothing can
	// stop the assault, but the depth is unreachable within the cap.
	in := DefaultInput()
	in.Fe = 1
	in.Fr = 0
	in.D = 1e9
	e := &Engine{DayCap: 50}
	res := e.Simulate(1, in)
	o := res.Outcome

	assert.Equal(t, 50, o.DurationDays)
	assert.True(t, o.DayCapReached)
	assert.False(t, o.Breakthrough)
	assert.False(t, o.Halted, "attacker still above the halt threshold at the cap")
	assert.InDelta(t, 50*4.5, o.KmGainedCum, 1e-9)
	require.Len(t, res.Days, 50)
}

func TestSimulate_PostHocHaltAtDayCap(t *testing.T) {
	// The baseline halts on day 4; capping at 3 days means the loop ends
	// running, but the final strengths already satisfy the halt inequality.
	e := &Engine{DayCap: 3}
	res := e.Simulate(1, DefaultInput())
	o := res.Outcome

	assert.Equal(t, 3, o.DurationDays)
	assert.True(t, o.DayCapReached)
	assert.True(t, o.Halted, "halt inferred post hoc from end-of-day strengths")
	assert.False(t, o.Breakthrough)
}

func TestSimulate_TerminatesForDegenerateInputs(t *testing.T) {
	inputs := []ScenarioInput{
		DefaultInput(),
		func() ScenarioInput { in := DefaultInput(); in.Wth = 0; return in }(),
		func() ScenarioInput { in := DefaultInput(); in.D = 0; return in }(),
		func() ScenarioInput { in := DefaultInput(); in.Vr = 0; return in }(),
		func() ScenarioInput { in := DefaultInput(); in.YR = 1900; in.YB = 1900; return in }(),
		func() ScenarioInput { in := DefaultInput(); in.R = 0; in.B = 0; return in }(),
	}
	for i, in := range inputs {
		res := Simulate(i+1, in)
		assert.LessOrEqual(t, res.Outcome.DurationDays, MaxSimulationDays, "input %d", i)
		assert.NotEmpty(t, res.Days, "input %d records at least one day", i)
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	in := DefaultInput()
	a := Simulate(7, in)
	b := Simulate(7, in)
	require.Equal(t, a, b, "same input must yield bit-identical records")
}
