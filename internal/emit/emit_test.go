package emit

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fixtrig/internal/manifest"
	"github.com/roach88/fixtrig/internal/table"
)

const digestA4V16 = "2c9239379617e98f5b728b38f588b182279db214b4126021b0b10efc1f28a4cc"

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func emitString(t *testing.T, target string, p table.Params, opts Options) []byte {
	t.Helper()
	tbl, err := table.Generate(p)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, target, tbl, opts))
	return buf.Bytes()
}

func TestEmit_Golden(t *testing.T) {
	small := table.Params{AngleBits: 4, ValueBits: 16}
	medium := table.Params{AngleBits: 5, ValueBits: 16}

	tests := []struct {
		name   string
		target string
		params table.Params
		opts   Options
	}{
		{"rust_a4_v16", "rust", small, Options{}},
		{"c_a4_v16", "c", small, Options{}},
		{"go_a4_v16", "go", small, Options{}},
		{"json_a4_v16", "json", small, Options{}},
		{"rust_a5_v16_fast_sin", "rust", medium, Options{Prefix: "FAST_SIN"}},
		{"go_a5_v16_fast_sin", "go", medium, Options{Prefix: "FAST_SIN", Package: "trigtab"}},
	}

	g := newGoldie(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := emitString(t, tt.target, tt.params, tt.opts)
			g.Assert(t, tt.name, got)
		})
	}
}

func TestEmit_HeaderCarriesDigest(t *testing.T) {
	got := emitString(t, "rust", table.Params{AngleBits: 4, ValueBits: 16}, Options{})
	assert.Contains(t, string(got), "// digest: "+digestA4V16+"\n")
	assert.Contains(t, string(got), "DO NOT EDIT")
}

func TestEmit_ExplicitDigestIsKept(t *testing.T) {
	got := emitString(t, "c", table.Params{AngleBits: 4, ValueBits: 16}, Options{Digest: "pinned"})
	assert.Contains(t, string(got), "/* digest: pinned */")
}

func TestEmit_Deterministic(t *testing.T) {
	p := table.Params{AngleBits: 9, ValueBits: 20}
	for _, target := range Targets() {
		a := emitString(t, target, p, Options{})
		b := emitString(t, target, p, Options{})
		assert.Equal(t, a, b, "target %s", target)
	}
}

func TestEmit_JSONRoundTripsManifest(t *testing.T) {
	tbl := table.MustGenerate(table.Params{AngleBits: 6, ValueBits: 18})
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, "json", tbl, Options{}))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "fixtrig", doc.Generator)
	assert.Equal(t, tbl.Entries(), doc.Entries)
	assert.Equal(t, 16, doc.QuarterLength)
	assert.Equal(t, 64, doc.Resolution)

	digest, err := doc.Manifest.Digest()
	require.NoError(t, err)
	assert.Equal(t, doc.Digest, digest)
}

func TestEmit_CSV(t *testing.T) {
	tbl := table.MustGenerate(table.Params{AngleBits: 4, ValueBits: 16})
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, "csv", tbl, Options{}))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("index,radians,value,reference,error\n")))

	var rows []*Row
	require.NoError(t, gocsv.UnmarshalBytes(buf.Bytes(), &rows))
	require.Len(t, rows, 5)
	for i, row := range rows {
		assert.Equal(t, i, row.Index)
		assert.Equal(t, tbl.At(i), row.Value)
		assert.GreaterOrEqual(t, row.Error, 0.0)
		assert.Less(t, row.Error, 1.0)
	}
	assert.InDelta(t, math.Pi/2, rows[4].Radians, 1e-12)
}

func TestRows_ErrorIsReferenceMinusValue(t *testing.T) {
	tbl := table.MustGenerate(table.Params{AngleBits: 8, ValueBits: 16})
	for _, row := range Rows(tbl) {
		assert.InDelta(t, row.Reference-float64(row.Value), row.Error, 1e-9)
	}
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"c", "csv", "go", "json", "rust"}, Targets())

	g, err := Lookup("Rust")
	require.NoError(t, err)
	assert.Equal(t, "rust", g.Language())
	assert.Equal(t, "rs", g.FileExtension())

	g, err = Lookup("c")
	require.NoError(t, err)
	assert.Equal(t, "h", g.FileExtension())

	_, err = Lookup("fortran")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTarget))
	assert.Contains(t, err.Error(), "c, csv, go, json, rust")
}

func TestEmit_UnknownTarget(t *testing.T) {
	tbl := table.MustGenerate(table.DefaultParams())
	err := Emit(&bytes.Buffer{}, "cobol", tbl, Options{})
	assert.ErrorIs(t, err, ErrUnknownTarget)
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}.WithDefaults(), false},
		{"multi part prefix", Options{Prefix: "FAST_SIN_2", Package: "p"}, false},
		{"lower prefix", Options{Prefix: "sin", Package: "p"}, true},
		{"leading digit", Options{Prefix: "2SIN", Package: "p"}, true},
		{"trailing underscore", Options{Prefix: "SIN_", Package: "p"}, true},
		{"upper package", Options{Prefix: "SIN", Package: "Precalc"}, true},
		{"dashed package", Options{Prefix: "SIN", Package: "pre-calc"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOptions)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEmit_RejectsBadPrefix(t *testing.T) {
	tbl := table.MustGenerate(table.DefaultParams())
	var buf bytes.Buffer
	err := Emit(&buf, "rust", tbl, Options{Prefix: "bad name"})
	assert.ErrorIs(t, err, ErrInvalidOptions)
	assert.Zero(t, buf.Len())
}

func TestCamelName(t *testing.T) {
	assert.Equal(t, "Sin", camelName("SIN"))
	assert.Equal(t, "FastSin", camelName("FAST_SIN"))
	assert.Equal(t, "Sin2Q", camelName("SIN2_Q"))
}

func TestDocument_DigestMatchesManifest(t *testing.T) {
	tbl := table.MustGenerate(table.Params{AngleBits: 4, ValueBits: 16})
	digest, err := manifest.Digest(tbl)
	require.NoError(t, err)
	assert.Equal(t, digestA4V16, digest)
}
