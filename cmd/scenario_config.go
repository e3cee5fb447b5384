package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	sim "github.com/jalalhussein1982/s.biddle.model/sim"
)

// SweepConfig is the YAML sweep configuration: a mapping from variable name to
// either a scalar or a "start,end,step" range string.
//
//	variables:
//	  R: "1000000,1200000,100000"
//	  Va: "4.5"
type SweepConfig struct {
	Variables map[string]string `yaml:"variables"`
}

// LoadSweepConfig reads and parses a YAML sweep config file.
func LoadSweepConfig(path string) (*SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg SweepConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	known := make(map[string]bool, sim.NumVariables)
	for _, name := range sim.VariableNames {
		known[name] = true
	}
	for name := range cfg.Variables {
		if !known[name] {
			return nil, fmt.Errorf("unknown variable %q in %s", name, path)
		}
	}
	return &cfg, nil
}

// ParseValueExpr parses the "single value or start,end,step" mini-grammar
// into a fully expanded ValueSet. This is the only place the textual form
// exists; the core sees closed, typed sequences.
func ParseValueExpr(s string) (sim.ValueSet, error) {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return sim.ValueSet{}, fmt.Errorf("invalid number %q", parts[0])
		}
		return sim.SingleValue(v), nil
	case 3:
		var vals [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return sim.ValueSet{}, fmt.Errorf("invalid number %q in range %q", p, s)
			}
			vals[i] = v
		}
		return sim.RangeValues(vals[0], vals[1], vals[2])
	default:
		return sim.ValueSet{}, fmt.Errorf("expected a single number or start,end,step, got %q", s)
	}
}

// buildScenarioSet assembles the sweep's ScenarioSet from flag values and,
// when --config is given, the YAML file. An explicitly set flag wins over the
// file; the file wins over flag defaults.
func buildScenarioSet(flags *pflag.FlagSet) (*sim.ScenarioSet, error) {
	var cfg *SweepConfig
	if sweepConfig != "" {
		var err error
		cfg, err = LoadSweepConfig(sweepConfig)
		if err != nil {
			return nil, err
		}
	}

	var sets [sim.NumVariables]sim.ValueSet
	for i, name := range sim.VariableNames {
		raw := sweepValues[i]
		if cfg != nil && !flags.Changed(name) {
			if v, ok := cfg.Variables[name]; ok {
				raw = v
			}
		}
		vs, err := ParseValueExpr(raw)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		sets[i] = vs
	}
	return sim.NewScenarioSet(sets)
}
