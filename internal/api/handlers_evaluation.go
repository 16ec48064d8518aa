// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/headline/internal/logging"
)

// EvaluationMetrics handles GET /api/v1/evaluation/metrics.
func (h *Handler) EvaluationMetrics(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.evaluation == nil {
		rw.ServiceUnavailable("Evaluation metrics are not available", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	rows, err := h.evaluation.EvaluationMetrics(ctx, h.models.EvaluationPath)
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Err(err).
			Str("path", h.models.EvaluationPath).
			Msg("failed to read evaluation metrics")
		rw.InternalError("Failed to read evaluation metrics")
		return
	}

	rw.Success(rows)
}
