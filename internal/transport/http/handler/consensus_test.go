package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waitlist-api/internal/application/consensus"
	"github.com/waitlist-api/internal/domain"
)

func getConsensus(t *testing.T, query string) (*httptest.ResponseRecorder, domain.ConsensusResult) {
	t.Helper()
	h := NewConsensusHandler(consensus.NewService(nil))
	rr := httptest.NewRecorder()
	h.Evaluate(rr, httptest.NewRequest(http.MethodGet, "/api/consensus"+query, nil))
	var res domain.ConsensusResult
	if rr.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	}
	return rr, res
}

func TestConsensus_Defaults(t *testing.T) {
	rr, res := getConsensus(t, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 80, res.ClientScore)
	assert.Equal(t, 50, res.JuryScore)
	assert.Equal(t, 68.0, res.FinalScore)
	assert.Equal(t, domain.ConsensusReached, res.Status)
}

func TestConsensus_Boundary(t *testing.T) {
	_, res := getConsensus(t, "?client=100&jury=0")
	assert.Equal(t, 60.0, res.FinalScore)
	assert.True(t, res.Unlocked)

	_, res = getConsensus(t, "?client=99&jury=0")
	assert.Equal(t, 59.4, res.FinalScore)
	assert.False(t, res.Unlocked)
	assert.Equal(t, domain.ConsensusAwaiting, res.Status)
}

func TestConsensus_ClampsOutOfRange(t *testing.T) {
	rr, res := getConsensus(t, "?client=250&jury=-3")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 100, res.ClientScore)
	assert.Equal(t, 0, res.JuryScore)
}

func TestConsensus_ClampsOverflowingIntegers(t *testing.T) {
	rr, res := getConsensus(t, "?client=99999999999999999999&jury=-99999999999999999999")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 100, res.ClientScore)
	assert.Equal(t, 0, res.JuryScore)
	assert.Equal(t, 60.0, res.FinalScore)
	assert.True(t, res.Unlocked)
}

func TestConsensus_RejectsNonInteger(t *testing.T) {
	rr, _ := getConsensus(t, "?client=abc")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"client must be an integer"}`, rr.Body.String())

	rr, _ = getConsensus(t, "?jury=12.5")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
