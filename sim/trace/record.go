// Package trace holds the per-day and per-campaign output records emitted by
// the progression engine. It stores pure data types and has no dependencies
// on sim/ so output adapters can consume it freely.
package trace

// DailyRecord is one immutable snapshot per simulated day. Created at the
// end of an iteration, appended in order, never mutated afterward.
type DailyRecord struct {
	ScenarioID int
	Day        int

	RtSOD float64 // invader strength at start of day
	BtSOD float64 // defender strength at start of day

	ReinforcementsSurvived float64 // reserves that reached the point of attack today

	KmGainedToday float64
	KmGainedCum   float64

	InvCasPoAToday  float64 // invader point-of-attack casualties today
	InvCasCumOnAxis float64

	DefCasPoAToday      float64
	DefCasReservesToday float64
	DefCasTotalToday    float64
	DefCasCumNoOffAxis  float64

	RtEOD float64
	BtEOD float64

	HaltConditionMet    bool // halt inequality held on start-of-day strengths
	SimulationContinues bool // false on the terminal day
}

// FinalOutcome summarizes one scenario after its loop terminates. The
// off-axis constants are folded into the campaign totals exactly once.
type FinalOutcome struct {
	ScenarioID   int
	DurationDays int

	KmGainedCum        float64
	InvCasCumOnAxis    float64
	DefCasCumNoOffAxis float64
	InvCasCampaign     float64 // on-axis cumulative + k5
	DefCasCampaign     float64 // cumulative + k6

	Breakthrough  bool
	Halted        bool
	DayCapReached bool
}

// CampaignLog collects the ordered daily records and final outcomes of a
// run. Append-only.
type CampaignLog struct {
	Days     []DailyRecord
	Outcomes []FinalOutcome
}

// NewCampaignLog creates an empty log ready for recording.
func NewCampaignLog() *CampaignLog {
	return &CampaignLog{
		Days:     make([]DailyRecord, 0),
		Outcomes: make([]FinalOutcome, 0),
	}
}

// RecordDay appends a daily record.
func (l *CampaignLog) RecordDay(r DailyRecord) {
	l.Days = append(l.Days, r)
}

// RecordOutcome appends a final outcome.
func (l *CampaignLog) RecordOutcome(o FinalOutcome) {
	l.Outcomes = append(l.Outcomes, o)
}
