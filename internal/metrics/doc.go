// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

/*
Package metrics provides Prometheus instrumentation for Headline.

Collectors are registered with the default registry through promauto when the
package is imported and are exposed by the API router at /metrics:

	curl http://localhost:8000/metrics

# Available Metrics

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests

Recommendation dispatch:
  - recommendations_total{tier}
  - recommendation_empty_total{tier}
  - recommendation_duration_seconds{tier}

Model registry:
  - registry_ready
  - registry_artifact_loaded{artifact}
  - registry_load_duration_seconds

Response cache:
  - cache_hits_total{backend}
  - cache_misses_total{backend}
  - cache_errors_total{backend,operation}
*/
package metrics
