package main

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wattonenergy/enersim/internal/invoice"
	"github.com/wattonenergy/enersim/internal/market"
	"github.com/wattonenergy/enersim/internal/pricing"
	"github.com/wattonenergy/enersim/internal/store"
)

type ctxKey string

const ctxKeyConsultant ctxKey = "consultant"

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		c, err := s.auth.validateToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyConsultant, c.ConsultantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func consultantID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKeyConsultant).(string)
	return id
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !s.auth.validateCredentials(req.Email, req.Password) {
		writeError(w, http.StatusUnauthorized, "credenciais inválidas")
		return
	}

	token, err := s.auth.generateToken(req.Email)
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// simulateResponse returns the committed invoice alongside its simulation
// so the client always sees the sanitized numbers the engine used.
type simulateResponse struct {
	Data       invoice.InvoiceData      `json:"data"`
	Simulation pricing.SimulationResult `json:"simulation"`
}

func (s *server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var draft invoice.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inv := draft.Commit()
	sim := pricing.Simulate(inv)

	s.logger.Info("simulation computed",
		zap.String("nif", inv.NIF),
		zap.Float64("savings_annual", sim.SavingsAnnual))

	writeJSON(w, http.StatusOK, simulateResponse{Data: inv, Simulation: sim})
}

type recalculateRequest struct {
	Data  invoice.Draft            `json:"data"`
	Prior pricing.SimulationResult `json:"prior"`
	Edits map[string]string        `json:"edits"`
}

func (s *server) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	var req recalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inv := req.Data.Commit()
	overrides := pricing.BuildOverrides(req.Prior, req.Edits)
	sim := pricing.Recalculate(inv, req.Prior, overrides)

	writeJSON(w, http.StatusOK, simulateResponse{Data: inv, Simulation: sim})
}

type analysisRequest struct {
	Data       invoice.InvoiceData      `json:"data"`
	Simulation pricing.SimulationResult `json:"simulation"`
}

func (s *server) handlePrescriptive(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, pricing.Prescriptive(req.Data, req.Simulation))
}

func (s *server) handleInsights(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis := s.insights.Generate(r.Context(), req.Data, req.Simulation)
	writeJSON(w, http.StatusOK, analysis)
}

type marketResponse struct {
	Points []market.Point `json:"points"`
	Trend  string         `json:"trend"`
}

func (s *server) handleMarket(w http.ResponseWriter, _ *http.Request) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	points := market.Generate(time.Now(), r)

	writeJSON(w, http.StatusOK, marketResponse{
		Points: points,
		Trend:  market.AnalyzeTrend(points),
	})
}

func (s *server) handleClientSave(w http.ResponseWriter, r *http.Request) {
	var rec store.ClientRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.store.Save(consultantID(r), rec)
	if err != nil {
		s.logger.Error("failed to save client record", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save client record")
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusConflict
	}
	writeJSON(w, status, result)
}

func (s *server) handleClientList(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(consultantID(r))
	if err != nil {
		s.logger.Error("failed to list client records", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list client records")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *server) handleClientGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.store.Get(consultantID(r), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "client record not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to load client record", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load client record")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *server) handleClientDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing record id")
		return
	}

	if err := s.store.Delete(consultantID(r), id); err != nil {
		s.logger.Error("failed to delete client record", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete client record")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
