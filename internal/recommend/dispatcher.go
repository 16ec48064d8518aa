// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package recommend

// Dispatcher routes a user to exactly one tier. It holds no mutable state.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a dispatcher over reg. A nil registry yields a
// dispatcher that always reports ErrModelUnavailable.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{registry: reg}
}

// Resolve returns the tier that serves userID: latent factor if the user has
// a trained row, else cluster if the user has a cluster, else heuristic.
func (d *Dispatcher) Resolve(userID UserID) (Tier, error) {
	if d.registry == nil {
		return "", ErrModelUnavailable
	}
	switch {
	case d.registry.latent.HasUser(userID):
		return TierLatent, nil
	case d.registry.cluster.HasUser(userID):
		return TierCluster, nil
	default:
		return TierHeuristic, nil
	}
}

// Recommend returns up to count items for userID from the resolved tier.
// The selected tier's answer is final: an empty list is returned as is.
func (d *Dispatcher) Recommend(userID UserID, count int) (Result, error) {
	if count <= 0 {
		return Result{}, ErrInvalidCount
	}

	tier, err := d.Resolve(userID)
	if err != nil {
		return Result{}, err
	}

	var items []ItemID
	switch tier {
	case TierLatent:
		items = d.registry.latent.Recommend(userID, d.registry.history.ForUser(userID), count)
	case TierCluster:
		items = d.registry.cluster.Recommend(userID, count)
	default:
		items = d.registry.heuristic.TopK(count)
	}

	if items == nil {
		items = []ItemID{}
	}
	if len(items) > count {
		items = items[:count]
	}
	return Result{Tier: tier, Items: items}, nil
}
