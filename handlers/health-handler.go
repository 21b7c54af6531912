package handlers

import (
	"context"
	"net/http"

	"todo-project/task-manager/logging"

	"github.com/sony/gobreaker"
)

// HealthHandler reports liveness of the database connection. The ping runs
// behind a circuit breaker so a flapping database does not get hammered by
// health probes.
type HealthHandler struct {
	breaker *gobreaker.CircuitBreaker
	ping    func(ctx context.Context) error
}

func NewHealthHandler(breaker *gobreaker.CircuitBreaker, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{breaker: breaker, ping: ping}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	_, err := h.breaker.Execute(func() (interface{}, error) {
		return nil, h.ping(r.Context())
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: HEALTH_CHECK_FAILED, Description: %v", err)
		respondMessage(w, http.StatusServiceUnavailable, "Database unreachable")
		return
	}
	respondMessage(w, http.StatusOK, "OK")
}
