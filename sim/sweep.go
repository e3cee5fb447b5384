package sim

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/jalalhussein1982/s.biddle.model/sim/trace"
)

// rangeScale is the scale factor range expansion rounds at: values are
// rounded to six decimals to suppress floating accumulation drift across
// repeated step additions.
const rangeScale = 1e6

// ValueSet is the closed, ordered sequence of values one input variable
// takes across a sweep. A scalar variable has exactly one value; a range
// variable is expanded eagerly at construction so the core never sees an
// unparsed range.
type ValueSet struct {
	values []float64
}

// SingleValue returns a ValueSet holding one scalar.
func SingleValue(v float64) ValueSet {
	return ValueSet{values: []float64{v}}
}

// RangeValues expands (start, end, step) by repeated addition of step,
// inclusive of the endpoint within Epsilon, ascending for positive step and
// descending for negative. Each value is rounded to six decimals. An
// expansion that yields no values (endpoint on the wrong side of start)
// collapses to the single start value rather than emptying the sweep.
func RangeValues(start, end, step float64) (ValueSet, error) {
	if step == 0 {
		return ValueSet{}, errors.New("sim: range step must be non-zero")
	}
	var values []float64
	if step > 0 {
		for v := start; v <= end+Epsilon; v += step {
			values = append(values, roundValue(v))
		}
	} else {
		for v := start; v >= end-Epsilon; v += step {
			values = append(values, roundValue(v))
		}
	}
	if len(values) == 0 {
		values = []float64{roundValue(start)}
	}
	return ValueSet{values: values}, nil
}

func roundValue(v float64) float64 {
	return math.Round(v*rangeScale) / rangeScale
}

// Values returns the expanded sequence. Callers must not mutate it.
func (vs ValueSet) Values() []float64 { return vs.values }

// Len returns the number of values in the set.
func (vs ValueSet) Len() int { return len(vs.values) }

// ScenarioSet is the cartesian product of one ValueSet per input variable,
// in declared variable order. Scenario identifiers are consecutive integers
// from 1 in standard cartesian enumeration order: the last-declared
// variable varies fastest.
type ScenarioSet struct {
	sets [NumVariables]ValueSet
}

// NewScenarioSet builds a ScenarioSet from one ValueSet per variable in
// declared order. Zero-valued entries (no values at all) are rejected; the
// boundary always supplies at least a scalar per variable.
func NewScenarioSet(sets [NumVariables]ValueSet) (*ScenarioSet, error) {
	for i, vs := range sets {
		if vs.Len() == 0 {
			return nil, errors.New("sim: variable " + VariableNames[i] + " has no values")
		}
	}
	return &ScenarioSet{sets: sets}, nil
}

// Size returns the total number of scenarios in the product.
func (ss *ScenarioSet) Size() int {
	n := 1
	for _, vs := range ss.sets {
		n *= vs.Len()
	}
	return n
}

// Scenario returns the input combination for a 1-based scenario identifier
// by mixed-radix decomposition of id-1 over the per-variable set sizes.
func (ss *ScenarioSet) Scenario(id int) ScenarioInput {
	idx := id - 1
	vals := make([]float64, NumVariables)
	for i := NumVariables - 1; i >= 0; i-- {
		n := ss.sets[i].Len()
		vals[i] = ss.sets[i].values[idx%n]
		idx /= n
	}
	return InputFromValues(vals)
}

// Iter returns a lazy iterator over the product in identifier order.
func (ss *ScenarioSet) Iter() *ScenarioIter {
	return &ScenarioIter{set: ss, size: ss.Size()}
}

// ScenarioIter walks a ScenarioSet without materializing the product.
type ScenarioIter struct {
	set  *ScenarioSet
	size int
	next int
}

// Next returns the next scenario identifier and input combination, or
// ok=false when the product is exhausted.
func (it *ScenarioIter) Next() (id int, in ScenarioInput, ok bool) {
	if it.next >= it.size {
		return 0, ScenarioInput{}, false
	}
	it.next++
	return it.next, it.set.Scenario(it.next), true
}

// RunSweep simulates every scenario in the set sequentially in enumeration
// order. It returns the per-scenario results and a flat CampaignLog holding
// all daily records and outcomes in the same order, ready for the output
// collaborator. Each scenario owns its state; nothing mutable is shared
// across scenarios, so ordering is the only coupling.
func RunSweep(e *Engine, set *ScenarioSet) ([]ScenarioResult, *trace.CampaignLog) {
	total := set.Size()
	results := make([]ScenarioResult, 0, total)
	log := trace.NewCampaignLog()
	it := set.Iter()
	for {
		id, in, ok := it.Next()
		if !ok {
			break
		}
		logrus.Infof("simulating scenario %d/%d", id, total)
		r := e.Simulate(id, in)
		logrus.Infof("scenario %d complete: duration=%dd breakthrough=%v halt=%v",
			id, r.Outcome.DurationDays, r.Outcome.Breakthrough, r.Outcome.Halted)
		results = append(results, r)
		for _, d := range r.Days {
			log.RecordDay(d)
		}
		log.RecordOutcome(r.Outcome)
	}
	return results, log
}
