package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/point-service/internal/api/httpx"
	"github.com/baharkarakas/point-service/internal/api/validate"
	"github.com/baharkarakas/point-service/internal/config"
	"github.com/baharkarakas/point-service/internal/metrics"
	"github.com/baharkarakas/point-service/internal/middleware"
	"github.com/baharkarakas/point-service/internal/services"
)

type amountReq struct {
	Amount int64 `json:"amount"`
}

func NewRouter(cfg config.Config, points *services.PointService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1/points", func(r chi.Router) {
		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ef := validate.ID("id", chi.URLParam(r, "id"))
			if ef != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid user id", validate.Errs{*ef})
				return
			}
			p, err := points.GetPoint(r.Context(), id)
			if err != nil {
				writeEngineError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, p)
		})

		r.Get("/{id}/histories", func(w http.ResponseWriter, r *http.Request) {
			id, ef := validate.ID("id", chi.URLParam(r, "id"))
			if ef != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid user id", validate.Errs{*ef})
				return
			}
			hs, err := points.History(r.Context(), id)
			if err != nil {
				writeEngineError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, hs)
		})

		r.Patch("/{id}/charge", func(w http.ResponseWriter, r *http.Request) {
			id, req, ok := decodeMutation(w, r)
			if !ok {
				return
			}
			p, err := points.Charge(r.Context(), id, req.Amount)
			if err != nil {
				writeEngineError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, p)
		})

		r.Patch("/{id}/use", func(w http.ResponseWriter, r *http.Request) {
			id, req, ok := decodeMutation(w, r)
			if !ok {
				return
			}
			p, err := points.Use(r.Context(), id, req.Amount)
			if err != nil {
				writeEngineError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, p)
		})
	})

	return r
}

func decodeMutation(w http.ResponseWriter, r *http.Request) (int64, amountReq, bool) {
	id, ef := validate.ID("id", chi.URLParam(r, "id"))
	if ef != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid user id", validate.Errs{*ef})
		return 0, amountReq{}, false
	}
	var req amountReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return 0, amountReq{}, false
	}
	if ef := validate.MinInt("amount", req.Amount, 1); ef != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_amount", "invalid amount", validate.Errs{*ef})
		return 0, amountReq{}, false
	}
	return id, req, true
}

func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "no record for user", nil)
	case errors.Is(err, services.ErrUnknownUser):
		httpx.WriteError(w, http.StatusNotFound, "unknown_user", "user has no balance record", nil)
	case errors.Is(err, services.ErrLimitExceeded):
		httpx.WriteError(w, http.StatusBadRequest, "limit_exceeded", err.Error(), nil)
	case errors.Is(err, services.ErrInsufficientBalance):
		httpx.WriteError(w, http.StatusBadRequest, "insufficient_balance", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidAmount):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_amount", err.Error(), nil)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
