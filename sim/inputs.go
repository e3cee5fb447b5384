// Package sim implements Biddle's parametric model of offensive ground
// combat: per-scenario parameter derivation, the day-by-day campaign
// progression engine, the analytic closed-form outcome, and the cartesian
// scenario sweep over mixed scalar/range inputs.
package sim

// Epsilon guards divisions and float comparisons throughout the model.
// Degenerate denominators are replaced by it, never by zero.
const Epsilon = 1e-9

// MaxSimulationDays bounds every campaign; the engine always terminates in a
// classified state within this many days.
const MaxSimulationDays = 1000

// baseYear anchors the technology indices. Weapon introduction years below
// it are floored to it so the indices never go negative.
const baseYear = 1900.0

// NumVariables is the number of named scenario input variables.
const NumVariables = 20

// ScenarioInput holds the 20 static inputs of one scenario. Values are
// immutable once handed to the engine; Normalized returns a copy with
// degenerate frontage/depth replaced by Epsilon.
type ScenarioInput struct {
	R   float64 `yaml:"R"`   // invader troop strength
	B   float64 `yaml:"B"`   // defender troop strength
	YR  float64 `yaml:"YR"`  // invader mean weapon introduction year
	YB  float64 `yaml:"YB"`  // defender mean weapon introduction year
	D   float64 `yaml:"d"`   // depth of defender's forward positions (km)
	Fr  float64 `yaml:"fr"`  // fraction of defender troops in mobile reserve
	Fe  float64 `yaml:"fe"`  // fraction of forward garrison exposed
	Vr  float64 `yaml:"Vr"`  // reserve movement velocity (km/day)
	Va  float64 `yaml:"Va"`  // assault velocity (km/day)
	Wa  float64 `yaml:"wa"`  // assault frontage (km)
	Wth float64 `yaml:"wth"` // theater frontage (km)
	K1  float64 `yaml:"k1"`  // invaders one defender can halt
	K2  float64 `yaml:"k2"`  // fit parameter for Ps
	K3  float64 `yaml:"k3"`  // invaders to pin one defender
	K4  float64 `yaml:"k4"`  // fit parameter for rho1
	K5  float64 `yaml:"k5"`  // invader off-axis casualties, campaign total
	K6  float64 `yaml:"k6"`  // defender off-axis casualties, campaign total
	K7  float64 `yaml:"k7"`  // fit parameter for Ca
	K8  float64 `yaml:"k8"`  // invader casualties per defender/day at zero Va
	K9  float64 `yaml:"k9"`  // flank defenders required parameter
}

// VariableNames lists the input variables in declared order. This order is
// the sweep enumeration order: the last name varies fastest.
var VariableNames = [NumVariables]string{
	"R", "B", "YR", "YB", "d", "fr", "fe", "Vr", "Va", "wa", "wth",
	"k1", "k2", "k3", "k4", "k5", "k6", "k7", "k8", "k9",
}

// DefaultInput returns the published baseline scenario (Biddle Appendix
// Table A.1 values).
func DefaultInput() ScenarioInput {
	return ScenarioInput{
		R:   1250000,
		B:   1000000,
		YR:  1910,
		YB:  1910,
		D:   15,
		Fr:  0.4,
		Fe:  0.0,
		Vr:  100,
		Va:  4.5,
		Wa:  25,
		Wth: 500,
		K1:  2.5,
		K2:  0.01,
		K3:  0.4,
		K4:  0.5,
		K5:  200000,
		K6:  200000,
		K7:  5,
		K8:  0.1,
		K9:  0.01,
	}
}

// Normalized returns a copy with wth and d forced positive. Values at or
// below Epsilon are replaced by Epsilon so every derived denominator stays
// finite and breakthrough depth stays meaningful.
func (in ScenarioInput) Normalized() ScenarioInput {
	if in.Wth <= Epsilon {
		in.Wth = Epsilon
	}
	if in.D <= 0 {
		in.D = Epsilon
	}
	return in
}

// Values returns the inputs as a slice in declared variable order.
func (in ScenarioInput) Values() []float64 {
	return []float64{
		in.R, in.B, in.YR, in.YB, in.D, in.Fr, in.Fe, in.Vr, in.Va,
		in.Wa, in.Wth, in.K1, in.K2, in.K3, in.K4, in.K5, in.K6,
		in.K7, in.K8, in.K9,
	}
}

// InputFromValues builds a ScenarioInput from values in declared variable
// order. It panics if vals is not exactly NumVariables long; the enumerator
// is the only caller and always supplies a full combination.
func InputFromValues(vals []float64) ScenarioInput {
	if len(vals) != NumVariables {
		panic("sim: InputFromValues requires exactly NumVariables values")
	}
	return ScenarioInput{
		R: vals[0], B: vals[1], YR: vals[2], YB: vals[3], D: vals[4],
		Fr: vals[5], Fe: vals[6], Vr: vals[7], Va: vals[8], Wa: vals[9],
		Wth: vals[10], K1: vals[11], K2: vals[12], K3: vals[13],
		K4: vals[14], K5: vals[15], K6: vals[16], K7: vals[17],
		K8: vals[18], K9: vals[19],
	}
}
