package consensus

import "github.com/waitlist-api/internal/domain"

type Service interface {
	Evaluate(in domain.ConsensusInput) domain.ConsensusResult
}

type statusRecorder interface {
	Consensus(status string)
}

type service struct {
	metrics statusRecorder
}

// NewService returns a calculator. metrics may be nil.
func NewService(metrics statusRecorder) Service {
	return &service{metrics: metrics}
}

// Evaluate clamps both scores to the slider range and computes the result.
func (s *service) Evaluate(in domain.ConsensusInput) domain.ConsensusResult {
	res := domain.EvaluateConsensus(domain.ConsensusInput{
		ClientScore: domain.ClampScore(in.ClientScore),
		JuryScore:   domain.ClampScore(in.JuryScore),
	})
	if s.metrics != nil {
		s.metrics.Consensus(res.Status)
	}
	return res
}
