// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/headline/internal/logging"
	"github.com/tomtom215/headline/internal/metrics"
)

// Artifact names reported in LoadResult.
const (
	ArtifactLatent    = "latent"
	ArtifactCluster   = "cluster"
	ArtifactHeuristic = "heuristic"
	ArtifactHistory   = "history"
)

// Sources supplies each artifact to LoadRegistry. Every field is required.
type Sources struct {
	Latent    func(ctx context.Context) (LatentRecommender, error)
	Cluster   func(ctx context.Context) (ClusterRecommender, error)
	Heuristic func(ctx context.Context) (HeuristicRanker, error)
	History   func(ctx context.Context) ([]Interaction, error)
}

// ArtifactStatus is the load outcome of one artifact.
type ArtifactStatus struct {
	Name       string `json:"name"`
	Loaded     bool   `json:"loaded"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// LoadResult reports the outcome of LoadRegistry.
type LoadResult struct {
	Artifacts []ArtifactStatus `json:"artifacts"`
	Duration  time.Duration    `json:"-"`
	LoadedAt  time.Time        `json:"loaded_at"`

	// Fingerprint identifies the loaded artifact set. Empty until ready.
	Fingerprint string `json:"fingerprint,omitempty"`

	errs []error
}

// Ready reports whether every artifact loaded.
func (r *LoadResult) Ready() bool {
	if r == nil || len(r.errs) > 0 || len(r.Artifacts) == 0 {
		return false
	}
	for _, a := range r.Artifacts {
		if !a.Loaded {
			return false
		}
	}
	return true
}

// Err returns nil when ready, otherwise ErrModelUnavailable joined with
// every *LoadError.
func (r *LoadResult) Err() error {
	if r == nil {
		return ErrModelUnavailable
	}
	if len(r.errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrModelUnavailable, errors.Join(r.errs...))
}

// Registry holds the loaded artifacts. It is immutable and safe for
// concurrent use without locking.
type Registry struct {
	latent    LatentRecommender
	cluster   ClusterRecommender
	heuristic HeuristicRanker
	history   *History
	result    *LoadResult

	fingerprint string
}

// LoadRegistry loads all artifacts concurrently. It returns a nil Registry
// unless every artifact loaded and the history is non-empty; the LoadResult
// is always returned.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func LoadRegistry(ctx context.Context, src Sources, logger zerolog.Logger) (*Registry, *LoadResult) {
	log := logging.WithComponent(logger, "registry")
	start := time.Now()

	var (
		latent    LatentRecommender
		cluster   ClusterRecommender
		heuristic HeuristicRanker
		rows      []Interaction
	)

	steps := []struct {
		name string
		load func(ctx context.Context) error
	}{
		{ArtifactLatent, func(ctx context.Context) (err error) {
			if src.Latent == nil {
				return errNoSource
			}
			latent, err = src.Latent(ctx)
			if err == nil && latent == nil {
				err = errNilArtifact
			}
			return err
		}},
		{ArtifactCluster, func(ctx context.Context) (err error) {
			if src.Cluster == nil {
				return errNoSource
			}
			cluster, err = src.Cluster(ctx)
			if err == nil && cluster == nil {
				err = errNilArtifact
			}
			return err
		}},
		{ArtifactHeuristic, func(ctx context.Context) (err error) {
			if src.Heuristic == nil {
				return errNoSource
			}
			heuristic, err = src.Heuristic(ctx)
			if err == nil && heuristic == nil {
				err = errNilArtifact
			}
			return err
		}},
		{ArtifactHistory, func(ctx context.Context) (err error) {
			if src.History == nil {
				return errNoSource
			}
			rows, err = src.History(ctx)
			if err == nil && len(rows) == 0 {
				err = ErrEmptyHistory
			}
			return err
		}},
	}

	result := &LoadResult{Artifacts: make([]ArtifactStatus, len(steps))}
	loadErrs := make([]error, len(steps))

	// Every step runs to completion so the result names all failures, not
	// just the first.
	var g errgroup.Group
	for i, step := range steps {
		g.Go(func() error {
			stepStart := time.Now()
			err := step.load(ctx)

			status := ArtifactStatus{
				Name:       step.name,
				Loaded:     err == nil,
				DurationMS: time.Since(stepStart).Milliseconds(),
			}
			if err != nil {
				status.Error = err.Error()
				log.Error().Err(err).Str("artifact", step.name).Msg("Artifact failed to load")
			} else {
				log.Debug().Str("artifact", step.name).Int64("duration_ms", status.DurationMS).Msg("Artifact loaded")
			}
			result.Artifacts[i] = status
			metrics.RecordArtifactLoad(step.name, err == nil)

			if err != nil {
				loadErrs[i] = &LoadError{Artifact: step.name, Err: err}
			}
			return loadErrs[i]
		})
	}
	_ = g.Wait() //nolint:errcheck // per-step errors are collected below

	for _, err := range loadErrs {
		if err != nil {
			result.errs = append(result.errs, err)
		}
	}

	result.Duration = time.Since(start)
	result.LoadedAt = time.Now()
	metrics.RecordRegistryLoad(result.Ready(), result.Duration)

	if !result.Ready() {
		log.Error().Err(result.Err()).Dur("duration", result.Duration).Msg("Model registry not ready")
		return nil, result
	}

	result.Fingerprint = registryFingerprint([]any{latent, cluster, heuristic}, rows)
	reg := &Registry{
		latent:      latent,
		cluster:     cluster,
		heuristic:   heuristic,
		history:     NewHistory(rows),
		result:      result,
		fingerprint: result.Fingerprint,
	}

	log.Info().
		Int("history_rows", reg.history.Len()).
		Int("history_users", reg.history.Users()).
		Str("fingerprint", reg.fingerprint).
		Dur("duration", result.Duration).
		Msg("Model registry ready")

	return reg, result
}

var (
	errNoSource    = errors.New("no source configured")
	errNilArtifact = errors.New("source returned no artifact")
)

// Latent returns the latent-factor tier.
func (r *Registry) Latent() LatentRecommender { return r.latent }

// Cluster returns the cluster-profile tier.
func (r *Registry) Cluster() ClusterRecommender { return r.cluster }

// Heuristic returns the heuristic tier.
func (r *Registry) Heuristic() HeuristicRanker { return r.heuristic }

// History returns the indexed interaction history.
func (r *Registry) History() *History { return r.history }

// Fingerprint identifies the artifacts and history the registry serves.
// Registries built from the same data share a fingerprint.
func (r *Registry) Fingerprint() string { return r.fingerprint }

// Status returns the load result the registry was built from.
func (r *Registry) Status() *LoadResult { return r.result }
