// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

// Package storage persists the trained recommendation artifacts.
//
// The offline training pipeline produces three artifacts: the latent-factor
// model, the cluster profile model and the heuristic ranking. They are kept
// here in a versioned, checksummed store and loaded once by the serving
// process at startup.
//
// # Storage Format
//
// Each artifact version is one file:
//
//	filename: {artifact_name}_v{version}.gob.gz
//
//	structure:
//	  - Metadata (ModelMetadata, including the SHA-256 of the raw state)
//	  - CompressedData (gzip-compressed gob-encoded state)
//
// A file that fails to decode, decompress or match its checksum is reported
// as corrupt; the caller decides whether that is fatal (the serving process
// treats it as fatal).
//
// # Usage Example
//
//	store, err := storage.NewStore("/data/models")
//	if err != nil {
//	    return err
//	}
//
//	state := &storage.HeuristicState{Items: []string{"a", "b", "c"}}
//	if err := storage.SaveHeuristic(ctx, store, "heuristic", 1, state, time.Now()); err != nil {
//	    return err
//	}
//
//	loaded, meta, err := storage.LoadHeuristic(ctx, store, "heuristic", 0) // 0 = latest
//
// # Remote Artifacts
//
// RemoteSync mirrors artifact files from an S3-compatible bucket (MinIO,
// AWS S3) into the local store directory before the store is opened, so a
// fleet of servers can share one set of trained artifacts.
//
// # Thread Safety
//
// Store is safe for concurrent use. Writes are serialized and replace the
// target file atomically via rename.
package storage
