package sim

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jalalhussein1982/s.biddle.model/sim/trace"
)

// SweepSummary aggregates final outcomes across a sweep.
type SweepSummary struct {
	Scenarios     int
	Breakthroughs int
	Halts         int // halted without breakthrough, including post-hoc halts at the cap
	Stalemates    int // ran to the day cap unclassified

	MeanDurationDays float64
	P90DurationDays  float64
	MeanKmGained     float64
	MaxKmGained      float64

	MeanInvaderCasualties  float64
	MeanDefenderCasualties float64
}

// Summarize computes aggregate statistics over a sweep's final outcomes.
// Safe for an empty slice (returns zero-value fields).
func Summarize(outcomes []trace.FinalOutcome) SweepSummary {
	s := SweepSummary{Scenarios: len(outcomes)}
	if len(outcomes) == 0 {
		return s
	}

	durations := make([]float64, 0, len(outcomes))
	gains := make([]float64, 0, len(outcomes))
	invCas := make([]float64, 0, len(outcomes))
	defCas := make([]float64, 0, len(outcomes))

	for _, o := range outcomes {
		switch {
		case o.Breakthrough:
			s.Breakthroughs++
		case o.Halted:
			s.Halts++
		default:
			s.Stalemates++
		}
		durations = append(durations, float64(o.DurationDays))
		gains = append(gains, o.KmGainedCum)
		invCas = append(invCas, o.InvCasCampaign)
		defCas = append(defCas, o.DefCasCampaign)
	}

	s.MeanDurationDays = stat.Mean(durations, nil)
	s.MeanKmGained = stat.Mean(gains, nil)
	s.MaxKmGained = floats.Max(gains)
	s.MeanInvaderCasualties = stat.Mean(invCas, nil)
	s.MeanDefenderCasualties = stat.Mean(defCas, nil)

	sort.Float64s(durations)
	s.P90DurationDays = stat.Quantile(0.9, stat.Empirical, durations, nil)

	return s
}
