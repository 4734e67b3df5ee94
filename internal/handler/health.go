package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const healthPingTimeout = 2 * time.Second

type healthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Database      string `json:"database"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Health reports whether the contact store is reachable. The database error
// itself is logged, never returned to the caller.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	resp := healthResponse{
		Status:        "ok",
		Service:       "rolodex",
		Database:      "ok",
		UptimeSeconds: int64(h.now().Sub(h.started).Seconds()),
	}
	status := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		slog.Error("health check: database unreachable", "error", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
