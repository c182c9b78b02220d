package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/waitlist-api/internal/application/subscription"
	"github.com/waitlist-api/internal/domain"
)

// Client-facing messages for the subscribe endpoint.
const (
	MsgSubscribed        = "Successfully subscribed to newsletter!"
	MsgMethodNotAllowed  = "Method not allowed"
	MsgInvalidBody       = "Invalid request body"
	MsgEmailRequired     = "Email is required"
	MsgInvalidEmail      = "Invalid email format"
	MsgAlreadySubscribed = "Email already subscribed"
	MsgSubscribeFailed   = "Failed to subscribe. Please try again later."
)

const maxSubscribeBody = 1 << 16

// SubscribeHandler is the signup intake endpoint.
type SubscribeHandler struct {
	svc subscription.Service
	log zerolog.Logger
}

func NewSubscribeHandler(svc subscription.Service, log zerolog.Logger) *SubscribeHandler {
	return &SubscribeHandler{svc: svc, log: log}
}

// Subscribe accepts every method so the method gate answers with the
// endpoint's own JSON errors.
func (h *SubscribeHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if v := recover(); v != nil {
			h.log.Error().Interface("panic", v).Msg("subscribe panicked")
			writeError(w, http.StatusInternalServerError, MsgSubscribeFailed)
		}
	}()

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		writeError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
		return
	}

	email, err := decodeEmail(http.MaxBytesReader(w, r.Body, maxSubscribeBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if err := h.svc.Subscribe(r.Context(), domain.SubscriptionRequest{Email: email}); err != nil {
		status, msg := subscribeError(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("subscription error")
		}
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, SubscribeEnvelope{Success: true, Message: MsgSubscribed})
}

// decodeEmail returns the "email" member of a JSON object body. Anything that
// is not a string, including an absent member or an empty body, yields "".
func decodeEmail(body io.Reader) (string, error) {
	var payload struct {
		Email interface{} `json:"email"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", err
	}
	email, _ := payload.Email.(string)
	return email, nil
}

func subscribeError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmailRequired):
		return http.StatusBadRequest, MsgEmailRequired
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest, MsgInvalidEmail
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, MsgAlreadySubscribed
	default:
		return http.StatusInternalServerError, MsgSubscribeFailed
	}
}
