package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive_BaselineScenario(t *testing.T) {
	dp := Derive(DefaultInput())

	assert.InDelta(t, 1.0, dp.TR, 1e-12)
	assert.InDelta(t, 1.0, dp.TB, 1e-12)
	assert.InDelta(t, 1.0, dp.TC, 1e-6)
	assert.InDelta(t, 1.0, dp.TRho, 1e-6)
	assert.InDelta(t, 1.0, dp.Ps, 1e-6)
	assert.InDelta(t, 2.5, dp.H, 1e-12)

	require.False(t, dp.Rho1.IsUnbounded())
	assert.InDelta(t, 4000, dp.Rho1.Value(), 1e-3)
	assert.InDelta(t, 480, dp.Rho2, 1e-9)
	assert.InDelta(t, 1022000, dp.R0, 1e-6)
	assert.InDelta(t, 2000, dp.B0, 1e-6)
	assert.InDelta(t, 46000, dp.Ca, 1e-1)

	require.False(t, dp.DeltaR.IsUnbounded())
	assert.InDelta(t, 243000, dp.DeltaR.Value(), 1.0)
}

func TestDerive_TechIndicesFlooredAtBaseYear(t *testing.T) {
	in := DefaultInput()
	in.YR = 1850
	in.YB = 1899
	dp := Derive(in)
	assert.Equal(t, 0.0, dp.TR)
	assert.Equal(t, 0.0, dp.TB)
}

func TestDerive_ZeroTechMeansNoReserveSurvival(t *testing.T) {
	in := DefaultInput()
	in.YR = 1900 // TR = 0
	dp := Derive(in)
	assert.Equal(t, 0.0, dp.Ps)
}

func TestDerive_PsClampedToUnitInterval(t *testing.T) {
	// 0 < TR < 1 with a negative exponent pushes the raw power above 1.
	in := DefaultInput()
	in.YR = 1905 // TR = 0.5
	dp := Derive(in)
	assert.Equal(t, 1.0, dp.Ps)

	// Sweep a grid of inputs; Ps must stay a fraction throughout.
	for _, yr := range []float64{1900, 1901, 1905, 1910, 1950, 2020} {
		for _, vr := range []float64{0, 1, 50, 100, 1000} {
			in := DefaultInput()
			in.YR = yr
			in.Vr = vr
			dp := Derive(in)
			if dp.Ps < 0 || dp.Ps > 1 {
				t.Errorf("YR=%v Vr=%v: Ps = %v outside [0,1]", yr, vr, dp.Ps)
			}
		}
	}
}

func TestDerive_FlankDensityUnbounded(t *testing.T) {
	// TR=0.1, TB=1 gives T_rho=0.01; k4=10 collapses the denominator below
	// epsilon while the numerator stays positive.
	in := DefaultInput()
	in.YR = 1901
	in.K4 = 10
	dp := Derive(in)

	require.True(t, dp.Rho1.IsUnbounded())
	require.True(t, dp.DeltaR.IsUnbounded(), "moving assault propagates unbounded rho1 into delta_r")
}

func TestDerive_UnboundedDeltaRNeedsMovingAssault(t *testing.T) {
	in := DefaultInput()
	in.YR = 1901
	in.K4 = 10
	in.Va = 0
	dp := Derive(in)

	require.True(t, dp.Rho1.IsUnbounded())
	assert.False(t, dp.DeltaR.IsUnbounded(), "Va=0 collapses the flank attrition term")
	assert.Equal(t, 0.0, dp.DeltaR.Value())
}

func TestDerive_ZeroFlankForceIsZeroDensity(t *testing.T) {
	// Zero tech on both sides: T_rho = 0 but Ps = 0 zeroes the numerator.
	in := DefaultInput()
	in.YR = 1900
	in.YB = 1900
	dp := Derive(in)

	require.False(t, dp.Rho1.IsUnbounded())
	assert.Equal(t, 0.0, dp.Rho1.Value())
}

func TestDerive_NonNegativeInvariants(t *testing.T) {
	// H, rho2, Ca, delta_r stay >= 0 (or explicitly unbounded) across a
	// grid of degenerate inputs.
	years := []float64{1880, 1900, 1905, 1910, 2020}
	velocities := []float64{0, 4.5, 100}
	for _, yr := range years {
		for _, yb := range years {
			for _, va := range velocities {
				in := DefaultInput()
				in.YR = yr
				in.YB = yb
				in.Va = va
				dp := Derive(in)
				assert.GreaterOrEqual(t, dp.H, 0.0)
				assert.GreaterOrEqual(t, dp.Rho2, 0.0)
				assert.GreaterOrEqual(t, dp.Ca, 0.0)
				if !dp.DeltaR.IsUnbounded() {
					assert.GreaterOrEqual(t, dp.DeltaR.Value(), 0.0)
				}
				if !dp.Rho1.IsUnbounded() {
					assert.GreaterOrEqual(t, dp.Rho1.Value(), 0.0)
				}
			}
		}
	}
}

func TestNormalized_DegenerateFrontageAndDepth(t *testing.T) {
	in := DefaultInput()
	in.Wth = 0
	in.D = -3
	n := in.Normalized()
	assert.Equal(t, Epsilon, n.Wth)
	assert.Equal(t, Epsilon, n.D)
	assert.Positive(t, n.Wth)
}
