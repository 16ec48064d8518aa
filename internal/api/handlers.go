// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package api

import (
	"context"
	"time"

	"github.com/tomtom215/headline/internal/config"
	"github.com/tomtom215/headline/internal/database"
	"github.com/tomtom215/headline/internal/recommend"
)

// Recommender serves ranked items for a user. *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, userID recommend.UserID, count int) (recommend.Result, error)
}

// EvaluationReader reads offline evaluation results. *database.DB implements it.
type EvaluationReader interface {
	EvaluationMetrics(ctx context.Context, path string) ([]database.EvaluationMetric, error)
}

// DefaultRequestTimeout bounds a single recommendation or evaluation request.
const DefaultRequestTimeout = 10 * time.Second

// Handler contains dependencies for API handlers.
//
//   - handlers_recommend.go: recommendation endpoints
//   - handlers_evaluation.go: offline evaluation metrics
//   - handlers_health.go: liveness and readiness
type Handler struct {
	recommender    Recommender
	evaluation     EvaluationReader
	status         *recommend.LoadResult
	models         config.ModelsConfig
	startTime      time.Time
	requestTimeout time.Duration
}

// NewHandler creates a handler. status is the registry load outcome reported
// by the readiness probe; evaluation may be nil when no reader is available.
func NewHandler(rec Recommender, evaluation EvaluationReader, status *recommend.LoadResult, models config.ModelsConfig) *Handler {
	return &Handler{
		recommender:    rec,
		evaluation:     evaluation,
		status:         status,
		models:         models,
		startTime:      time.Now(),
		requestTimeout: DefaultRequestTimeout,
	}
}
