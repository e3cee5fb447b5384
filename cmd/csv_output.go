package cmd

import (
	"encoding/csv"
	"os"
	"strconv"

	sim "github.com/jalalhussein1982/s.biddle.model/sim"
)

// Column layouts match the original published artifacts: one row per
// simulated day across all scenarios, one row per scenario with final
// outcomes, both repeating the scenario inputs on every row.

var dailyHeader = []string{
	"Scenario_ID", "Day",
	"R_in", "B_in", "YR_in", "YB_in", "d_in", "fr_in", "fe_in", "Vr_in",
	"Va_in", "wa_in", "wth_in",
	"k1", "k2", "k3", "k4", "k5_Campaign", "k6_Campaign", "k7", "k8", "k9",
	"TR_calc", "TB_calc", "TC_calc", "T_rho_calc", "Ps_calc", "H_calc",
	"rho1_calc", "rho2_calc", "r0_initial_calc", "b0_initial_calc",
	"Ca_static_calc", "delta_r_daily_rate",
	"rt_SOD", "bt_SOD",
	"Reinforcements_Today_Survived",
	"Km_Gained_Today", "Km_Gained_Cumulative",
	"Inv_Cas_POA_Today", "Inv_Cas_POA_Cumulative_OnAxis",
	"Def_Cas_POA_Today", "Def_Cas_Reserves_Today", "Def_Cas_Total_Today",
	"Def_Cas_Cumulative_no_k6",
	"rt_EOD", "bt_EOD",
	"Halt_Condition_Met_SOD (0=No,1=Yes)",
	"Simulation_Continues_Next_Day (0=No,1=Yes)",
}

var finalHeader = []string{
	"Scenario_ID",
	"R_in", "B_in", "YR_in", "YB_in", "d_in", "fr_in", "fe_in", "Vr_in",
	"Va_in", "wa_in", "wth_in",
	"k1", "k2", "k3", "k4", "k5_Campaign", "k6_Campaign", "k7", "k8", "k9",
	"Final_Campaign_Duration_Days",
	"Final_Km_Gained_Cumulative",
	"Final_Inv_Cas_POA_Cumulative_OnAxis",
	"Final_Def_Cas_Cumulative_no_k6",
	"Final_Campaign_Inv_Cas_Total",
	"Final_Campaign_Def_Cas_Total",
	"Breakthrough_Occurred (0=No,1=Yes)",
	"Halt_Occurred (0=No,1=Yes)",
}

func fnum(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func fprec(v float64, prec int) string { return strconv.FormatFloat(v, 'f', prec, 64) }

func fflag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func inputColumns(in sim.ScenarioInput) []string {
	vals := in.Values()
	cols := make([]string, 0, len(vals))
	for _, v := range vals {
		cols = append(cols, fnum(v))
	}
	return cols
}

func derivedColumns(dp sim.DerivedParameters) []string {
	return []string{
		fprec(dp.TR, 2), fprec(dp.TB, 2), fprec(dp.TC, 2), fprec(dp.TRho, 2),
		fprec(dp.Ps, 4), fprec(dp.H, 2),
		dp.Rho1.Format(2), fprec(dp.Rho2, 2),
		fprec(dp.R0, 0), fprec(dp.B0, 0),
		fprec(dp.Ca, 2), dp.DeltaR.Format(2),
	}
}

// WriteDailyLogCSV writes one row per simulated day across all scenarios.
func WriteDailyLogCSV(path string, results []sim.ScenarioResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(dailyHeader); err != nil {
		return err
	}
	for _, r := range results {
		inputs := inputColumns(r.Input)
		derived := derivedColumns(r.Derived)
		for _, d := range r.Days {
			row := make([]string, 0, len(dailyHeader))
			row = append(row, strconv.Itoa(d.ScenarioID), strconv.Itoa(d.Day))
			row = append(row, inputs...)
			row = append(row, derived...)
			row = append(row,
				fprec(d.RtSOD, 0), fprec(d.BtSOD, 0),
				fprec(d.ReinforcementsSurvived, 0),
				fprec(d.KmGainedToday, 2), fprec(d.KmGainedCum, 2),
				fprec(d.InvCasPoAToday, 0), fprec(d.InvCasCumOnAxis, 0),
				fprec(d.DefCasPoAToday, 0), fprec(d.DefCasReservesToday, 0),
				fprec(d.DefCasTotalToday, 0), fprec(d.DefCasCumNoOffAxis, 0),
				fprec(d.RtEOD, 0), fprec(d.BtEOD, 0),
				fflag(d.HaltConditionMet), fflag(d.SimulationContinues),
			)
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// WriteFinalOutcomesCSV writes one row per scenario.
func WriteFinalOutcomesCSV(path string, results []sim.ScenarioResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(finalHeader); err != nil {
		return err
	}
	for _, r := range results {
		o := r.Outcome
		row := make([]string, 0, len(finalHeader))
		row = append(row, strconv.Itoa(o.ScenarioID))
		row = append(row, inputColumns(r.Input)...)
		row = append(row,
			strconv.Itoa(o.DurationDays),
			fprec(o.KmGainedCum, 2),
			fprec(o.InvCasCumOnAxis, 0),
			fprec(o.DefCasCumNoOffAxis, 0),
			fprec(o.InvCasCampaign, 0),
			fprec(o.DefCasCampaign, 0),
			fflag(o.Breakthrough), fflag(o.Halted),
		)
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
