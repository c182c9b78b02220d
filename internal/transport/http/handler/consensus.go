package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/waitlist-api/internal/application/consensus"
	"github.com/waitlist-api/internal/domain"
)

// Slider positions the widget starts from.
const (
	DefaultClientScore = 80
	DefaultJuryScore   = 50
)

// ConsensusHandler exposes the dual-key consensus calculator.
type ConsensusHandler struct {
	svc consensus.Service
}

func NewConsensusHandler(svc consensus.Service) *ConsensusHandler {
	return &ConsensusHandler{svc: svc}
}

// Evaluate reads ?client= and ?jury= and returns the computed result.
func (h *ConsensusHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	client, err := scoreParam(r, "client", DefaultClientScore)
	if err != nil {
		writeError(w, http.StatusBadRequest, "client must be an integer")
		return
	}
	jury, err := scoreParam(r, "jury", DefaultJuryScore)
	if err != nil {
		writeError(w, http.StatusBadRequest, "jury must be an integer")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Evaluate(domain.ConsensusInput{ClientScore: client, JuryScore: jury}))
}

// scoreParam parses an integer query value. Integers too large for int come
// back saturated and are clamped by the service like any other out-of-range score.
func scoreParam(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if errors.Is(err, strconv.ErrRange) {
		return n, nil
	}
	return n, err
}
