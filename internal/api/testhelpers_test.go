// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package api

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/headline/internal/config"
	"github.com/tomtom215/headline/internal/database"
	"github.com/tomtom215/headline/internal/recommend"
	"github.com/tomtom215/headline/internal/recommend/algorithms"
	"github.com/tomtom215/headline/internal/recommend/storage"
)

type stubRecommender struct {
	res   recommend.Result
	err   error
	calls int
	last  recommend.UserID
	count int
}

func (s *stubRecommender) Recommend(_ context.Context, userID recommend.UserID, count int) (recommend.Result, error) {
	s.calls++
	s.last = userID
	s.count = count
	return s.res, s.err
}

type stubEvaluation struct {
	rows []database.EvaluationMetric
	err  error
	path string
}

func (s *stubEvaluation) EvaluationMetrics(_ context.Context, path string) ([]database.EvaluationMetric, error) {
	s.path = path
	return s.rows, s.err
}

func testModels() config.ModelsConfig {
	return config.ModelsConfig{
		EvaluationPath: "/data/evaluation/evaluation_metrics.csv",
		DefaultCount:   5,
		MaxCount:       100,
	}
}

// newTestEngine builds a real engine over in-memory artifacts:
// heuristic [a b c d], cluster u1 -> 2 -> [x y z], latent user u2.
func newTestEngine(t *testing.T) (*recommend.Engine, *recommend.LoadResult) {
	t.Helper()

	src := recommend.Sources{
		Latent: func(context.Context) (recommend.LatentRecommender, error) {
			return algorithms.NewLatentFactor(&storage.LatentFactorState{
				UserIDs:     []string{"u2"},
				ItemIDs:     []string{"p1", "p2", "p3"},
				UserFactors: [][]float64{{0.1, 0.2}},
				ItemFactors: [][]float64{{1, 0}, {0, 1}, {0.5, 0.5}},
			}, algorithms.DefaultLatentConfig())
		},
		Cluster: func(context.Context) (recommend.ClusterRecommender, error) {
			return algorithms.NewCluster(&storage.ClusterState{
				UserClusters: map[string]int{"u1": 2},
				ClusterItems: map[int][]string{2: {"x", "y", "z"}},
			})
		},
		Heuristic: func(context.Context) (recommend.HeuristicRanker, error) {
			return algorithms.NewHeuristic(&storage.HeuristicState{Items: []string{"a", "b", "c", "d"}})
		},
		History: func(context.Context) ([]recommend.Interaction, error) {
			return []recommend.Interaction{{UserID: "u2", ItemID: "p1", Score: 5.0}}, nil
		},
	}

	reg, result := recommend.LoadRegistry(context.Background(), src, zerolog.Nop())
	if reg == nil {
		t.Fatalf("LoadRegistry() failed: %v", result.Err())
	}
	engine, err := recommend.NewEngine(nil, reg, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine, result
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

// decodeData re-marshals the envelope data into v.
func decodeData(t *testing.T, resp APIResponse, v interface{}) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatal(err)
	}
}

type panicRecommender struct{}

func (panicRecommender) Recommend(context.Context, recommend.UserID, int) (recommend.Result, error) {
	panic("recommender exploded")
}
