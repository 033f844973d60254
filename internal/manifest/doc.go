// Package manifest describes a generated table as canonical JSON and derives
// its content digest.
//
// The digest identifies the table contents only: the two precision
// parameters, the derived constants and every entry. Two generations with the
// same digest are byte-for-byte interchangeable for any consumer, which is
// what drift detection in the artifact store relies on.
//
// Canonical JSON follows RFC 8785 for the subset used here:
//   - object keys sorted by UTF-16 code units
//   - strings NFC normalized, no HTML escaping
//   - integers only, floats and null are rejected
package manifest
