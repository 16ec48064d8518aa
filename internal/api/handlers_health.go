// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/headline/internal/recommend"
)

// HealthStatus is the liveness payload.
type HealthStatus struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadinessStatus is the readiness payload.
type ReadinessStatus struct {
	Ready     bool                       `json:"ready"`
	LoadedAt  *time.Time                 `json:"loaded_at,omitempty"`
	Artifacts []recommend.ArtifactStatus `json:"artifacts"`
}

// Health handles GET /api/v1/health. It reports 200 while the process is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{
		Status:        "healthy",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /api/v1/health/ready. It reports 503 until every
// artifact and the history loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status := ReadinessStatus{Artifacts: []recommend.ArtifactStatus{}}
	if h.status != nil {
		status.Ready = h.status.Ready()
		if len(h.status.Artifacts) > 0 {
			status.Artifacts = h.status.Artifacts
		}
		if !h.status.LoadedAt.IsZero() {
			loadedAt := h.status.LoadedAt
			status.LoadedAt = &loadedAt
		}
	}

	if !status.Ready {
		rw.ServiceUnavailable("Model registry is not ready", status)
		return
	}
	rw.Success(status)
}
