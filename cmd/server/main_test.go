package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/mmynk/fundplan/internal/config"
	"github.com/mmynk/fundplan/internal/middleware"
)

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := corsMiddleware().Handler(next)

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/fundplan.v1.PlannerService/Allocate", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", middleware.RequestIDHeader)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code == http.StatusTeapot {
			t.Error("preflight reached the handler")
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Allow-Origin = %q, want *", got)
		}
	})

	t.Run("rpc", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/fundplan.v1.PlannerService/Allocate", nil)
		req.Header.Set("Origin", "http://localhost:3000")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusTeapot {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Allow-Origin = %q, want *", got)
		}
	})
}

func TestOpenStoreSQLite(t *testing.T) {
	store, err := openStore(context.Background(), config.ServerConfig{
		DBPath: filepath.Join(t.TempDir(), "plans.db"),
	})
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer store.Close()

	n, err := store.PrunePlans(context.Background(), 0)
	if err != nil {
		t.Fatalf("PrunePlans failed: %v", err)
	}
	if n != 0 {
		t.Errorf("pruned %d plans from an empty cache", n)
	}
}
