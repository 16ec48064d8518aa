// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/tomtom215/headline/internal/logging"
	"github.com/tomtom215/headline/internal/recommend"
	"github.com/tomtom215/headline/internal/validation"
)

// RecommendationResponse is the data payload of GET /api/v1/recommendations.
type RecommendationResponse struct {
	UserID string             `json:"user_id"`
	Tier   recommend.Tier     `json:"tier"`
	Items  []recommend.ItemID `json:"items"`
	Count  int                `json:"count"`
}

// Recommendations handles GET /api/v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	res, req, ok := h.recommend(rw, r)
	if !ok {
		return
	}

	rw.Success(RecommendationResponse{
		UserID: req.UserID,
		Tier:   res.Tier,
		Items:  res.Items,
		Count:  len(res.Items),
	})
}

// LegacyRecommendations handles GET /recommendations and returns the ids as a
// bare JSON array. Errors still use the envelope.
func (h *Handler) LegacyRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	res, _, ok := h.recommend(rw, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res.Items)
}

// recommend parses and validates the query, calls the engine and writes the
// error response itself when it returns false.
func (h *Handler) recommend(rw *ResponseWriter, r *http.Request) (recommend.Result, validation.RecommendationRequest, bool) {
	req, ok := h.parseRecommendationRequest(rw, r)
	if !ok {
		return recommend.Result{}, req, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	res, err := h.recommender.Recommend(ctx, recommend.UserID(req.UserID), req.Count)
	if err != nil {
		h.respondRecommendError(rw, r, req, err)
		return recommend.Result{}, req, false
	}
	if res.Items == nil {
		res.Items = []recommend.ItemID{}
	}
	return res, req, true
}

func (h *Handler) parseRecommendationRequest(rw *ResponseWriter, r *http.Request) (validation.RecommendationRequest, bool) {
	query := r.URL.Query()
	req := validation.RecommendationRequest{
		UserID:   query.Get("user_id"),
		Count:    h.models.DefaultCount,
		MaxCount: h.models.MaxCount,
	}
	if req.MaxCount <= 0 {
		req.MaxCount = math.MaxInt
	}

	if raw := query.Get("num_recs"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			rw.ValidationError("num_recs must be an integer", map[string]interface{}{
				"field": "num_recs",
				"value": raw,
			})
			return req, false
		}
		req.Count = n
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return req, false
	}
	return req, true
}

func (h *Handler) respondRecommendError(rw *ResponseWriter, r *http.Request, req validation.RecommendationRequest, err error) {
	switch {
	case errors.Is(err, recommend.ErrModelUnavailable):
		rw.ServiceUnavailable("Recommendation models are not loaded", nil)
	case errors.Is(err, recommend.ErrInvalidCount):
		rw.ValidationError(err.Error(), map[string]interface{}{"field": "num_recs", "value": req.Count})
	default:
		logging.Ctx(r.Context()).Error().
			Err(err).
			Str("user_id", sanitizeLogValue(req.UserID)).
			Int("num_recs", req.Count).
			Msg("recommendation failed")
		rw.InternalError("Failed to generate recommendations")
	}
}
