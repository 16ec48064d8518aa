// Headline - Tiered News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/headline

package recommend

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"

	"github.com/google/uuid"
)

// fingerprintLen is the number of hex characters kept in a registry
// fingerprint.
const fingerprintLen = 16

// registryFingerprint identifies the artifact set and history a registry was
// built from. When an artifact cannot describe itself the result is unique
// to this load, so cached results are never shared with another registry.
func registryFingerprint(artifacts []any, rows []Interaction) string {
	h := sha256.New()
	for _, a := range artifacts {
		fp, ok := a.(Fingerprinter)
		if !ok || fp.Fingerprint() == "" {
			nonce := uuid.New()
			return hex.EncodeToString(nonce[:])[:fingerprintLen]
		}
		writeField(h, fp.Fingerprint())
	}

	var buf [8]byte
	for _, row := range rows {
		writeField(h, string(row.UserID))
		writeField(h, string(row.ItemID))
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(row.Score))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))[:fingerprintLen]
}

// writeField writes s length-prefixed so adjacent fields cannot run together.
func writeField(h hash.Hash, s string) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
	h.Write(buf[:])
	h.Write([]byte(s))
}
