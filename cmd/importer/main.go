// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

// Command importer converts the JSON exports of the offline training
// pipeline into the versioned artifact store read by the server.
//
// The input directory must contain latent.json, cluster.json and
// heuristic.json:
//
//	importer -in ./export -models /data/models -version 3
//
// Version 0 writes the next version after the latest one in the store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/headline/internal/logging"
	"github.com/tomtom215/headline/internal/recommend/storage"
)

// Artifact names written to the store.
const (
	latentName    = "latent"
	clusterName   = "cluster"
	heuristicName = "heuristic"
)

type options struct {
	in      string
	models  string
	version int
}

func main() {
	var opts options
	flag.StringVar(&opts.in, "in", ".", "directory holding latent.json, cluster.json and heuristic.json")
	flag.StringVar(&opts.models, "models", "/data/models", "artifact store directory")
	flag.IntVar(&opts.version, "version", 0, "artifact version to write (0 = next)")
	flag.Parse()

	logging.Init(logging.DefaultConfig())

	if err := run(context.Background(), opts); err != nil {
		logging.Fatal().Err(err).Msg("Import failed")
	}
}

func run(ctx context.Context, opts options) error {
	if opts.version < 0 {
		return fmt.Errorf("version must be >= 0, got %d", opts.version)
	}

	var (
		latent    storage.LatentFactorState
		cluster   storage.ClusterState
		heuristic storage.HeuristicState
	)
	if err := readJSON(filepath.Join(opts.in, latentName+".json"), &latent); err != nil {
		return err
	}
	if err := readJSON(filepath.Join(opts.in, clusterName+".json"), &cluster); err != nil {
		return err
	}
	if err := readJSON(filepath.Join(opts.in, heuristicName+".json"), &heuristic); err != nil {
		return err
	}

	// Nothing is written unless every artifact is valid, so a bad export
	// never leaves the store with a partial version.
	for _, a := range []struct {
		name  string
		check func() error
	}{
		{latentName, latent.Validate},
		{clusterName, cluster.Validate},
		{heuristicName, heuristic.Validate},
	} {
		if err := a.check(); err != nil {
			return fmt.Errorf("%s: %w", a.name, err)
		}
	}

	store, err := storage.NewStore(opts.models)
	if err != nil {
		return err
	}

	version := opts.version
	if version == 0 {
		version = nextVersion(store)
	}
	trainedAt := time.Now().UTC()

	if err := storage.SaveLatent(ctx, store, latentName, version, &latent, trainedAt); err != nil {
		return fmt.Errorf("save %s: %w", latentName, err)
	}
	if err := storage.SaveCluster(ctx, store, clusterName, version, &cluster, trainedAt); err != nil {
		return fmt.Errorf("save %s: %w", clusterName, err)
	}
	if err := storage.SaveHeuristic(ctx, store, heuristicName, version, &heuristic, trainedAt); err != nil {
		return fmt.Errorf("save %s: %w", heuristicName, err)
	}

	logging.Info().
		Str("models", opts.models).
		Int("version", version).
		Int("latent_items", len(latent.ItemIDs)).
		Int("latent_users", len(latent.UserIDs)).
		Int("cluster_users", len(cluster.UserClusters)).
		Int("heuristic_items", len(heuristic.Items)).
		Msg("Artifacts imported")
	return nil
}

// nextVersion is one past the highest version of any artifact.
func nextVersion(store *storage.Store) int {
	latest := 0
	for _, name := range []string{latentName, clusterName, heuristicName} {
		if v, ok := store.GetLatestVersion(name); ok && v > latest {
			latest = v
		}
	}
	return latest + 1
}

func readJSON(path string, target interface{}) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: not found", path)
		}
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
