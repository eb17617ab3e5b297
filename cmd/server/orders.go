package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Simplici0/octozek/internal/mail"
	"github.com/Simplici0/octozek/internal/order"
)

type orderResponse struct {
	OK          bool    `json:"ok"`
	Sent        bool    `json:"sent"`
	MessageID   *string `json:"messageId"`
	ResendError any     `json:"resendError"`
}

type testEmailResult struct {
	Data  *testEmailData `json:"data"`
	Error any            `json:"error"`
}

type testEmailData struct {
	ID string `json:"id"`
}

func (s *server) handleOrder(w http.ResponseWriter, r *http.Request) {
	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}

	var p order.Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "Request body too large."})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body."})
		return
	}

	s.requestLogger(r).Debug("order payload", zap.Any("payload", p))

	res, err := s.orders.Submit(r.Context(), p)
	if err != nil {
		if errors.Is(err, order.ErrMissingContact) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing name or email."})
			return
		}
		s.requestLogger(r).Error("order handling failed", zap.Error(err))
		s.writeServerError(w, err.Error())
		return
	}

	resp := orderResponse{
		OK:          true,
		Sent:        res.Sent,
		ResendError: res.ProviderError(),
	}
	if res.MessageID != "" {
		resp.MessageID = &res.MessageID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleTestEmail(w http.ResponseWriter, r *http.Request) {
	id, err := s.orders.SendTest(r.Context())
	if err == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":     true,
			"sent":   true,
			"result": testEmailResult{Data: &testEmailData{ID: id}},
		})
		return
	}

	if errors.Is(err, order.ErrMailNotConfigured) {
		writeJSON(w, http.StatusOK, errorResponse{Error: "No RESEND_API_KEY configured"})
		return
	}

	var rej *mail.RejectionError
	if errors.As(err, &rej) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":     true,
			"sent":   false,
			"result": testEmailResult{Error: rej},
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
