// Package emit serializes a generated table as source-level constant data.
//
// Each target language implements Generator. Output is deterministic: the
// same table and Options always produce the same bytes, so emitted files can
// be checked in and compared by digest.
//
// Targets:
//   - rust: pub const items and a fixed-size [i64; N] array
//   - go:   a const block and a fixed-size [N]int64 array, gofmt-formatted
//   - c:    a header with #defines and a static const int64_t array
//   - csv:  one row per entry with the float reference, for inspection
//   - json: the table manifest plus its digest
//
// Every source target declares the angle precision, the value precision, the
// derived quarter length and resolution, and the quarter table itself.
package emit
