package domain

import (
	"crypto/sha256"
	"encoding/hex"

	"natal_backend/internal/feature/chart/domain/entity"
)

// Hash domains keep chart hashes and input fingerprints from ever
// colliding with each other, and version the document layout.
const (
	chartHashDomain = "natal/chart/v1"
	inputHashDomain = "natal/input/v1"
)

func hashWithDomain(domain string, payload []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0})
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// ChartHash returns the identity hash of an encoded chart document.
func ChartHash(document []byte) string {
	return hashWithDomain(chartHashDomain, document)
}

// InputFingerprint returns a stable key for a birth input, independent
// of any computed chart. The cache layer uses it for memoization.
func InputFingerprint(in entity.BirthInput) (string, error) {
	raw, err := MarshalCanonical(birthDocument(in))
	if err != nil {
		return "", err
	}
	return hashWithDomain(inputHashDomain, raw), nil
}
