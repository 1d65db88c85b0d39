package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"
	"time"

	"github.com/DoyleJ11/dice-tracker/internal/hub"
	"github.com/DoyleJ11/dice-tracker/internal/table"
	"github.com/DoyleJ11/dice-tracker/internal/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const askTimeout = 2 * time.Second

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func CreateTable(h *hub.Hub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), askTimeout)
		defer cancel()

		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			if h.Lookup(ctx, c) == nil {
				code = c
				break
			}
			logger.Debug("collision on code, regenerating", zap.String("code", c))
		}

		if h.Ensure(ctx, code) == nil {
			http.Error(w, "failed to create table", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

// GetTable returns the current snapshot of one table.
func GetTable(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), askTimeout)
		defer cancel()

		tb := h.Lookup(ctx, chi.URLParam(r, "code"))
		if tb == nil {
			http.Error(w, "table not found", http.StatusNotFound)
			return
		}

		reply := make(chan table.View, 1)
		if err := tb.Send(ctx, table.GetState{Reply: reply}); err != nil {
			http.Error(w, "table not found", http.StatusNotFound)
			return
		}
		select {
		case view := <-reply:
			writeJSON(w, http.StatusOK, types.StateMessage(view.Version, view.State))
		case <-ctx.Done():
			http.Error(w, "table busy", http.StatusServiceUnavailable)
		}
	}
}

func Healthz(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), askTimeout)
		defer cancel()

		n, ok := h.Count(ctx)
		if !ok {
			http.Error(w, "hub unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Status string `json:"status"`
			Tables int    `json:"tables"`
		}{Status: "ok", Tables: n})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
