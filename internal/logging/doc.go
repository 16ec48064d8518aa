// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

// Package logging provides the zerolog-based structured logger used across Headline.
//
// A single global logger is configured once at startup from the logging section of
// the configuration and shared by every component. Components derive child loggers
// tagged with a component field, and request-scoped code logs through Ctx so the
// request id assigned by the API middleware travels with every line.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("artifact", "latent").Msg("Artifact loaded")
//	logging.Ctx(ctx).Debug().Str("tier", "cluster").Msg("Dispatched")
//
// # slog Bridge
//
// The supervisor tree reports through sutureslog, which expects a *slog.Logger.
// NewSlogLogger returns one whose records are written by the zerolog backend, so
// supervisor events share the format and level of the rest of the process.
package logging
