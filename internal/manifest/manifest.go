package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/fixtrig/internal/table"
)

// DomainTable separates table digests from any other hashed content.
// The version suffix leaves room for a future manifest layout.
const DomainTable = "fixtrig/table/v1"

// Manifest is the hashed description of a generated table.
type Manifest struct {
	AngleBits     int     `json:"angle_precision_bits"`
	ValueBits     int     `json:"value_precision_bits"`
	QuarterLength int     `json:"quarter_length"`
	Resolution    int     `json:"resolution"`
	Entries       []int64 `json:"entries"`
}

// New describes t.
func New(t *table.Table) *Manifest {
	return &Manifest{
		AngleBits:     t.AngleBits(),
		ValueBits:     t.ValueBits(),
		QuarterLength: t.QuarterLength(),
		Resolution:    t.Resolution(),
		Entries:       t.Entries(),
	}
}

func (m *Manifest) object() map[string]any {
	return map[string]any{
		"angle_precision_bits": m.AngleBits,
		"value_precision_bits": m.ValueBits,
		"quarter_length":       m.QuarterLength,
		"resolution":           m.Resolution,
		"entries":              m.Entries,
	}
}

// Canonical returns the canonical JSON encoding of m.
func (m *Manifest) Canonical() ([]byte, error) {
	return MarshalCanonical(m.object())
}

// Digest returns the hex SHA-256 of m's canonical encoding under DomainTable.
func (m *Manifest) Digest() (string, error) {
	canonical, err := m.Canonical()
	if err != nil {
		return "", fmt.Errorf("manifest digest: %w", err)
	}
	return hashWithDomain(DomainTable, canonical), nil
}

// Digest is a shorthand for New(t).Digest().
func Digest(t *table.Table) (string, error) {
	return New(t).Digest()
}

// hashWithDomain computes SHA256(domain || 0x00 || data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
