package api

import (
	"math/rand"
	"net/http"
	"sync"
	"time"

	"log/slog"

	"github.com/talentflow/talentflow/internal/config"
)

// FaultInjector simulates an unreliable transport over the store: every
// request is delayed inside a uniform latency window, and write requests
// fail with a fixed probability. Reads are never failed, so listing screens
// stay usable while writers exercise their rollback paths.
type FaultInjector struct {
	rate     float64
	min, max time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewFaultInjector(cfg config.FaultsConfig) *FaultInjector {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	min, max := cfg.MinLatency, cfg.MaxLatency
	if max < min {
		max = min
	}
	return &FaultInjector{
		rate: cfg.ErrorRate,
		min:  min,
		max:  max,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (f *FaultInjector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if d := f.delay(); d > 0 {
			select {
			case <-time.After(d):
			case <-r.Context().Done():
				return
			}
		}

		if isWrite(r.Method) && f.shouldFail() {
			logger.Warn("injected transport failure",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			writeError(w, "simulated transport failure", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (f *FaultInjector) delay() time.Duration {
	if f.max <= 0 {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.max == f.min {
		return f.min
	}
	return f.min + time.Duration(f.rng.Int63n(int64(f.max-f.min)))
}

func (f *FaultInjector) shouldFail() bool {
	if f.rate <= 0 {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rng.Float64() < f.rate
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
