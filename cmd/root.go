package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	sim "github.com/jalalhussein1982/s.biddle.model/sim"
)

var (
	logLevel string // Log verbosity level

	// calc/run scenario inputs, bound directly to flag values
	calcInput = sim.DefaultInput()
	runInput  = sim.DefaultInput()

	// run engine and output settings. Each subcommand binds its own
	// variables: StringVar assigns the default at registration time, so a
	// shared variable would take whichever command registered last.
	runMaxDays  int    // Maximum simulated days
	runDailyOut string // Daily log CSV path

	// sweep engine and output settings
	sweepMaxDays  int    // Maximum simulated days per scenario
	sweepDailyOut string // Daily log CSV path
	sweepFinalOut string // Final outcomes CSV path
	sweepConfig   string // YAML sweep config path
	maxScenarios  int    // Confirmation threshold for large sweeps
	assumeYes     bool   // Skip the large-sweep confirmation

	// sweep per-variable value expressions ("value" or "start,end,step"),
	// indexed by sim.VariableNames order
	sweepValues [sim.NumVariables]string
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "biddle",
	Short: "Parametric attrition model of offensive ground combat",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// calcCmd evaluates the closed-form outcome for a single scenario.
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute the closed-form campaign outcome for one scenario",
	Run: func(cmd *cobra.Command, args []string) {
		in := calcInput.Normalized()
		dp := sim.Derive(in)
		res := sim.ClosedForm(in)

		fmt.Printf("Invader tech index (TR): %.2f\n", dp.TR)
		fmt.Printf("Defender tech index (TB): %.2f\n", dp.TB)
		fmt.Printf("Dyadic balance at point of attack (TC): %.2f\n", dp.TC)
		fmt.Printf("Dyadic balance on flanks (T_rho): %.2f\n", dp.TRho)
		fmt.Printf("Reserve survival fraction (Ps): %.4f\n", dp.Ps)
		fmt.Printf("Invaders one defender can halt (H): %.2f\n", dp.H)
		fmt.Printf("Flank density required (rho1): %s troops/km\n", dp.Rho1.Format(2))
		fmt.Printf("Pinning density required (rho2): %.2f troops/km\n", dp.Rho2)
		fmt.Printf("Invader strength at point of attack (r0): %.0f\n", dp.R0)
		fmt.Printf("Defender strength at point of attack (b0): %.0f\n", dp.B0)
		fmt.Printf("Invader casualties per km (Ca): %.2f\n", dp.Ca)
		fmt.Printf("Daily invader attrition (delta_r): %s troops/day\n", dp.DeltaR.Format(2))
		fmt.Printf("Defender reinforcement rate: %.2f troops/day\n", res.ReinforcementRate)

		if res.Unending {
			fmt.Println("Campaign duration (t*): infinite")
			fmt.Println("Territorial gain (G): infinite")
			fmt.Println("Breakthrough: yes (infinite penetration)")
			fmt.Println("Total invader casualties (CR): infinite")
			return
		}
		fmt.Printf("Campaign duration (t*): %.2f days\n", res.TStar)
		fmt.Printf("Territorial gain (G): %.2f km\n", res.Gain)
		if res.Breakthrough {
			fmt.Println("Breakthrough: yes")
		} else {
			fmt.Println("Breakthrough: no")
		}
		fmt.Printf("Total invader casualties (CR): %.0f\n", res.InvaderCasualties)
	},
}

// runCmd simulates one scenario day by day and writes its daily log.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the day-by-day simulation for one scenario",
	Run: func(cmd *cobra.Command, args []string) {
		engine := &sim.Engine{DayCap: runMaxDays}
		result := engine.Simulate(1, runInput)

		if err := WriteDailyLogCSV(runDailyOut, []sim.ScenarioResult{result}); err != nil {
			logrus.Fatalf("could not write daily log: %v", err)
		}
		logrus.Infof("daily log saved to %s", runDailyOut)

		o := result.Outcome
		fmt.Printf("Duration: %d days\n", o.DurationDays)
		fmt.Printf("Distance gained: %.2f km\n", o.KmGainedCum)
		fmt.Printf("Breakthrough: %v, Halt: %v\n", o.Breakthrough, o.Halted)
		fmt.Printf("Campaign invader casualties (incl. k5): %.0f\n", o.InvCasCampaign)
		fmt.Printf("Campaign defender casualties (incl. k6): %.0f\n", o.DefCasCampaign)
	},
}

// sweepCmd enumerates the cartesian product of per-variable value expressions and
// simulates every combination.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep the scenario space over scalar or start,end,step variables",
	Run: func(cmd *cobra.Command, args []string) {
		set, err := buildScenarioSet(cmd.Flags())
		if err != nil {
			logrus.Fatalf("invalid sweep configuration: %v", err)
		}

		total := set.Size()
		logrus.Infof("total scenarios to simulate: %d", total)
		if total > maxScenarios && !assumeYes {
			logrus.Fatalf("%d scenarios exceeds the confirmation threshold (%d); re-run with --yes to proceed",
				total, maxScenarios)
		}

		engine := &sim.Engine{DayCap: sweepMaxDays}
		results, log := sim.RunSweep(engine, set)

		if err := WriteDailyLogCSV(sweepDailyOut, results); err != nil {
			logrus.Fatalf("could not write daily log: %v", err)
		}
		if err := WriteFinalOutcomesCSV(sweepFinalOut, results); err != nil {
			logrus.Fatalf("could not write final outcomes: %v", err)
		}
		logrus.Infof("daily logs saved to %s, final outcomes to %s", sweepDailyOut, sweepFinalOut)

		s := sim.Summarize(log.Outcomes)
		logrus.Infof("sweep summary: %d scenarios, %d breakthroughs, %d halts, %d stalemates",
			s.Scenarios, s.Breakthroughs, s.Halts, s.Stalemates)
		logrus.Infof("duration mean=%.1fd p90=%.1fd, gain mean=%.2fkm max=%.2fkm",
			s.MeanDurationDays, s.P90DurationDays, s.MeanKmGained, s.MaxKmGained)
		logrus.Infof("mean campaign casualties: invader=%.0f defender=%.0f",
			s.MeanInvaderCasualties, s.MeanDefenderCasualties)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerInputFlags binds the per-variable float flags for calc and run.
func registerInputFlags(fs *pflag.FlagSet, in *sim.ScenarioInput) {
	fs.Float64Var(&in.R, "R", in.R, "Invader troop strength")
	fs.Float64Var(&in.B, "B", in.B, "Defender troop strength")
	fs.Float64Var(&in.YR, "YR", in.YR, "Invader mean weapon introduction year")
	fs.Float64Var(&in.YB, "YB", in.YB, "Defender mean weapon introduction year")
	fs.Float64Var(&in.D, "d", in.D, "Depth of defender's forward positions (km)")
	fs.Float64Var(&in.Fr, "fr", in.Fr, "Fraction of defender troops in mobile reserve")
	fs.Float64Var(&in.Fe, "fe", in.Fe, "Fraction of forward garrison exposed")
	fs.Float64Var(&in.Vr, "Vr", in.Vr, "Reserve movement velocity (km/day)")
	fs.Float64Var(&in.Va, "Va", in.Va, "Assault velocity (km/day)")
	fs.Float64Var(&in.Wa, "wa", in.Wa, "Assault frontage (km)")
	fs.Float64Var(&in.Wth, "wth", in.Wth, "Theater frontage (km)")
	fs.Float64Var(&in.K1, "k1", in.K1, "Invaders one defender can halt")
	fs.Float64Var(&in.K2, "k2", in.K2, "Fit parameter for Ps")
	fs.Float64Var(&in.K3, "k3", in.K3, "Invaders to pin one defender")
	fs.Float64Var(&in.K4, "k4", in.K4, "Fit parameter for rho1")
	fs.Float64Var(&in.K5, "k5", in.K5, "Invader off-axis casualties (campaign total)")
	fs.Float64Var(&in.K6, "k6", in.K6, "Defender off-axis casualties (campaign total)")
	fs.Float64Var(&in.K7, "k7", in.K7, "Fit parameter for Ca")
	fs.Float64Var(&in.K8, "k8", in.K8, "Invader casualties per defender/day at zero Va")
	fs.Float64Var(&in.K9, "k9", in.K9, "Flank defenders required parameter")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	registerInputFlags(calcCmd.Flags(), &calcInput)

	registerInputFlags(runCmd.Flags(), &runInput)
	runCmd.Flags().IntVar(&runMaxDays, "max-days", sim.MaxSimulationDays, "Maximum simulated days")
	runCmd.Flags().StringVar(&runDailyOut, "daily-out", "battle_simulation_daily_log.csv", "Daily log CSV path")

	// Sweep variables take a scalar or "start,end,step"; defaults match the
	// baseline scenario.
	defaults := sim.DefaultInput().Values()
	for i, name := range sim.VariableNames {
		sweepValues[i] = strconv.FormatFloat(defaults[i], 'f', -1, 64)
		sweepCmd.Flags().StringVar(&sweepValues[i], name, sweepValues[i],
			"Value or start,end,step for "+name)
	}
	sweepCmd.Flags().IntVar(&sweepMaxDays, "max-days", sim.MaxSimulationDays, "Maximum simulated days per scenario")
	sweepCmd.Flags().StringVar(&sweepConfig, "config", "", "YAML sweep config file (per-variable value or range)")
	sweepCmd.Flags().StringVar(&sweepDailyOut, "daily-out", "battle_simulation_daily_log_SCENARIOS.csv", "Daily log CSV path")
	sweepCmd.Flags().StringVar(&sweepFinalOut, "final-out", "battle_simulation_final_outcomes_SCENARIOS.csv", "Final outcomes CSV path")
	sweepCmd.Flags().IntVar(&maxScenarios, "max-scenarios", 10000, "Confirmation threshold for large sweeps")
	sweepCmd.Flags().BoolVar(&assumeYes, "yes", false, "Proceed past the large-sweep confirmation threshold")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
