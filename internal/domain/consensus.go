package domain

// Consensus weights are expressed in tenths so boundary scores stay exact.
const (
	ClientWeightTenths = 6
	JuryWeightTenths   = 4
	UnlockThreshold    = 60

	MinScore = 0
	MaxScore = 100
)

// Status labels shown by the consensus widget.
const (
	ConsensusReached  = "CONSENSUS_REACHED"
	ConsensusAwaiting = "AWAITING_CONSENSUS"
)

// ConsensusInput holds the two live slider values, each in [0,100].
type ConsensusInput struct {
	ClientScore int `json:"client_score"`
	JuryScore   int `json:"jury_score"`
}

// ConsensusResult is derived from a ConsensusInput and never stored.
type ConsensusResult struct {
	ClientScore        int     `json:"client_score"`
	JuryScore          int     `json:"jury_score"`
	ClientContribution float64 `json:"client_contribution"`
	JuryContribution   float64 `json:"jury_contribution"`
	FinalScore         float64 `json:"final_score"`
	Unlocked           bool    `json:"unlocked"`
	Status             string  `json:"status"`
}

// EvaluateConsensus computes clientScore*0.6 + juryScore*0.4 and whether the
// sum reaches the inclusive unlock threshold.
func EvaluateConsensus(in ConsensusInput) ConsensusResult {
	client := in.ClientScore * ClientWeightTenths
	jury := in.JuryScore * JuryWeightTenths
	total := client + jury

	res := ConsensusResult{
		ClientScore:        in.ClientScore,
		JuryScore:          in.JuryScore,
		ClientContribution: float64(client) / 10,
		JuryContribution:   float64(jury) / 10,
		FinalScore:         float64(total) / 10,
		Unlocked:           total >= UnlockThreshold*10,
		Status:             ConsensusAwaiting,
	}
	if res.Unlocked {
		res.Status = ConsensusReached
	}
	return res
}

// ClampScore bounds a slider value to [MinScore, MaxScore].
func ClampScore(v int) int {
	switch {
	case v < MinScore:
		return MinScore
	case v > MaxScore:
		return MaxScore
	}
	return v
}
