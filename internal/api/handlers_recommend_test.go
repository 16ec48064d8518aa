// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/headline/internal/recommend"
)

func TestRecommendations_Tiers(t *testing.T) {
	t.Parallel()

	engine, status := newTestEngine(t)
	handler := NewHandler(engine, nil, status, testModels())

	tests := []struct {
		name      string
		query     string
		wantTier  recommend.Tier
		wantItems []recommend.ItemID
	}{
		{
			name:      "unknown user falls back to heuristic",
			query:     "user_id=unknown_user&num_recs=2",
			wantTier:  recommend.TierHeuristic,
			wantItems: []recommend.ItemID{"a", "b"},
		},
		{
			name:      "cluster user gets cluster items without padding",
			query:     "user_id=u1&num_recs=5",
			wantTier:  recommend.TierCluster,
			wantItems: []recommend.ItemID{"x", "y", "z"},
		},
		{
			name:      "default count",
			query:     "user_id=someone",
			wantTier:  recommend.TierHeuristic,
			wantItems: []recommend.ItemID{"a", "b", "c", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?"+tt.query, nil)
			w := httptest.NewRecorder()
			handler.Recommendations(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			resp := decodeEnvelope(t, w)
			if !resp.Success {
				t.Fatalf("Success = false: %+v", resp.Error)
			}
			var data RecommendationResponse
			decodeData(t, resp, &data)
			if data.Tier != tt.wantTier {
				t.Errorf("Tier = %s, want %s", data.Tier, tt.wantTier)
			}
			if !reflect.DeepEqual(data.Items, tt.wantItems) {
				t.Errorf("Items = %v, want %v", data.Items, tt.wantItems)
			}
			if data.Count != len(tt.wantItems) {
				t.Errorf("Count = %d, want %d", data.Count, len(tt.wantItems))
			}
		})
	}
}

func TestRecommendations_LatentUser(t *testing.T) {
	t.Parallel()

	engine, status := newTestEngine(t)
	handler := NewHandler(engine, nil, status, testModels())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?user_id=u2&num_recs=1", nil)
	w := httptest.NewRecorder()
	handler.Recommendations(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var data RecommendationResponse
	decodeData(t, decodeEnvelope(t, w), &data)
	if data.Tier != recommend.TierLatent || len(data.Items) != 1 {
		t.Fatalf("got %+v, want one latent item", data)
	}
	switch data.Items[0] {
	case "p1", "p2", "p3":
	default:
		t.Errorf("item %q is not in the item index", data.Items[0])
	}
}

func TestRecommendations_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
	}{
		{"missing user", "num_recs=3"},
		{"blank user", "user_id=%20%20"},
		{"zero count", "user_id=u1&num_recs=0"},
		{"negative count", "user_id=u1&num_recs=-2"},
		{"count over max", "user_id=u1&num_recs=101"},
		{"non-integer count", "user_id=u1&num_recs=ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &stubRecommender{}
			handler := NewHandler(rec, nil, nil, testModels())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?"+tt.query, nil)
			w := httptest.NewRecorder()
			handler.Recommendations(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			resp := decodeEnvelope(t, w)
			if resp.Success || resp.Error == nil || resp.Error.Code != ErrCodeValidation {
				t.Errorf("error = %+v, want %s", resp.Error, ErrCodeValidation)
			}
			if rec.calls != 0 {
				t.Error("engine called for an invalid request")
			}
		})
	}
}

func TestRecommendations_UnlimitedMax(t *testing.T) {
	t.Parallel()

	models := testModels()
	models.MaxCount = 0
	rec := &stubRecommender{res: recommend.Result{Tier: recommend.TierHeuristic}}
	handler := NewHandler(rec, nil, nil, models)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?user_id=u1&num_recs=5000", nil)
	w := httptest.NewRecorder()
	handler.Recommendations(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if rec.count != 5000 {
		t.Errorf("engine count = %d, want 5000", rec.count)
	}
}

func TestRecommendations_EngineErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"model unavailable", recommend.ErrModelUnavailable, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"wrapped unavailable", fmt.Errorf("load: %w", recommend.ErrModelUnavailable), http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"invalid count", recommend.ErrInvalidCount, http.StatusBadRequest, ErrCodeValidation},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewHandler(&stubRecommender{err: tt.err}, nil, nil, testModels())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?user_id=u1", nil)
			w := httptest.NewRecorder()
			handler.Recommendations(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if resp := decodeEnvelope(t, w); resp.Error == nil || resp.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want %s", resp.Error, tt.wantErr)
			}
		})
	}
}

func TestRecommendations_NilEngineRegistry(t *testing.T) {
	t.Parallel()

	engine, err := recommend.NewEngine(nil, nil, nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	handler := NewHandler(engine, nil, nil, testModels())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?user_id=u1", nil)
	w := httptest.NewRecorder()
	handler.Recommendations(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestRecommendations_EmptyResultIsArray(t *testing.T) {
	t.Parallel()

	rec := &stubRecommender{res: recommend.Result{Tier: recommend.TierCluster}}
	handler := NewHandler(rec, nil, nil, testModels())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?user_id=lonely&num_recs=7", nil)
	w := httptest.NewRecorder()
	handler.Recommendations(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var data RecommendationResponse
	decodeData(t, decodeEnvelope(t, w), &data)
	if data.Items == nil || len(data.Items) != 0 || data.Count != 0 {
		t.Errorf("got %+v, want empty non-nil items", data)
	}
	if rec.last != "lonely" || rec.count != 7 {
		t.Errorf("engine called with (%s, %d)", rec.last, rec.count)
	}
}

func TestLegacyRecommendations(t *testing.T) {
	t.Parallel()

	engine, status := newTestEngine(t)
	handler := NewHandler(engine, nil, status, testModels())

	req := httptest.NewRequest(http.MethodGet, "/recommendations?user_id=unknown_user&num_recs=2", nil)
	w := httptest.NewRecorder()
	handler.LegacyRecommendations(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var items []string
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("body is not a bare array: %s", w.Body.String())
	}
	if !reflect.DeepEqual(items, []string{"a", "b"}) {
		t.Errorf("items = %v, want [a b]", items)
	}
}

func TestLegacyRecommendations_EmptyIsArray(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&stubRecommender{res: recommend.Result{Tier: recommend.TierCluster}}, nil, nil, testModels())
	req := httptest.NewRequest(http.MethodGet, "/recommendations?user_id=x", nil)
	w := httptest.NewRecorder()
	handler.LegacyRecommendations(w, req)

	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestSanitizeLogValue(t *testing.T) {
	if got := sanitizeLogValue("u1\nforged"); got != `u1\x0aforged` {
		t.Errorf("sanitizeLogValue() = %q", got)
	}
}
