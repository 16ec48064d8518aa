// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built once and shared; it caches struct
// reflection data and is safe for concurrent use. Field errors are translated
// into human-readable messages and can be converted into the API's
// VALIDATION_ERROR shape with ToAPIError.
//
// # Custom Tags
//
//   - userid: non-blank after trimming and free of control characters
//
// # Usage
//
//	type RecommendationRequest struct {
//	    UserID string `validate:"required,userid,max=256"`
//	    Count  int    `validate:"gt=0,lte=100"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
