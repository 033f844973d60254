package lookup

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fixtrig/internal/table"
)

func newProtocol(t *testing.T, angleBits, valueBits int) *Protocol {
	t.Helper()
	tbl, err := table.Generate(table.Params{AngleBits: angleBits, ValueBits: valueBits})
	require.NoError(t, err)
	return New(tbl)
}

// paramGrid covers small and realistic precisions, including the minimum.
var paramGrid = []table.Params{
	{AngleBits: 2, ValueBits: 1},
	{AngleBits: 3, ValueBits: 8},
	{AngleBits: 4, ValueBits: 16},
	{AngleBits: 6, ValueBits: 12},
	{AngleBits: 10, ValueBits: 16},
	{AngleBits: 12, ValueBits: 30},
}

func TestSin_ConcreteExample(t *testing.T) {
	p := newProtocol(t, 4, 16)

	assert.Equal(t, int64(0), p.Sin(0))
	assert.Equal(t, int64(25079), p.Sin(1))
	assert.Equal(t, int64(65536), p.Sin(4))
	assert.Equal(t, int64(60547), p.Sin(5))
	assert.Equal(t, int64(0), p.Sin(8))
	assert.Equal(t, int64(-25079), p.Sin(9))
	assert.Equal(t, int64(-65536), p.Sin(12))
	assert.Equal(t, int64(-25079), p.Sin(15))
}

func TestSin_FullPeriodMatchesReference(t *testing.T) {
	p := newProtocol(t, 10, 16)
	one := float64(p.One())

	for idx := 0; idx < p.Resolution(); idx++ {
		want := math.Sin(2*math.Pi*float64(idx)/float64(p.Resolution())) * one
		got := float64(p.Sin(idx))
		// one truncation step plus float noise at the quadrant boundaries
		assert.InDelta(t, want, got, 1.0+1e-6, "index %d", idx)
	}
}

func TestSin_HalfPeriodAntisymmetry(t *testing.T) {
	for _, params := range paramGrid {
		p := newProtocol(t, params.AngleBits, params.ValueBits)
		half := p.Resolution() / 2
		for idx := 0; idx < p.Resolution(); idx++ {
			assert.Equal(t, p.Sin(idx), -p.Sin((idx+half)%p.Resolution()),
				"params %+v index %d", params, idx)
		}
	}
}

func TestSin_ReflectionAboutQuarter(t *testing.T) {
	for _, params := range paramGrid {
		p := newProtocol(t, params.AngleBits, params.ValueBits)
		q := p.QuarterLength()
		for r := 0; r <= q; r++ {
			assert.Equal(t, p.Sin(q-r), p.Sin(q+r), "params %+v r %d", params, r)
		}
	}
}

func TestSin_PeakAtMirroredBoundary(t *testing.T) {
	for _, params := range paramGrid {
		p := newProtocol(t, params.AngleBits, params.ValueBits)
		q := p.QuarterLength()

		assert.Equal(t, p.One(), p.Sin(q), "params %+v", params)
		assert.Equal(t, -p.One(), p.Sin(3*q), "params %+v", params)
		assert.Equal(t, int64(0), p.Sin(2*q), "params %+v", params)
	}
}

func TestCos_AtZeroIsExactlyOne(t *testing.T) {
	for _, params := range paramGrid {
		p := newProtocol(t, params.AngleBits, params.ValueBits)
		assert.Equal(t, int64(1)<<params.ValueBits, p.Cos(0), "params %+v", params)
	}
}

func TestCos_IsShiftedSine(t *testing.T) {
	p := newProtocol(t, 6, 12)
	q := p.QuarterLength()
	for idx := 0; idx < p.Resolution(); idx++ {
		assert.Equal(t, p.Sin((idx+q)%p.Resolution()), p.Cos(idx), "index %d", idx)
	}
	assert.Equal(t, int64(0), p.Cos(q))
	assert.Equal(t, -p.One(), p.Cos(2*q))
	assert.Equal(t, int64(0), p.Cos(3*q))
	assert.Equal(t, p.Sin(0), p.Cos(p.Resolution()-q))
}

func TestSinCos(t *testing.T) {
	p := newProtocol(t, 4, 16)
	sin, cos := p.SinCos(2)
	assert.Equal(t, int64(46340), sin)
	assert.Equal(t, int64(46340), cos)
}

func TestQuadrantOf(t *testing.T) {
	p := newProtocol(t, 4, 16)

	tests := []struct {
		idx    int
		q      Quadrant
		offset int
	}{
		{0, Quadrant0, 0},
		{3, Quadrant0, 3},
		{4, Quadrant1, 0},
		{7, Quadrant1, 3},
		{8, Quadrant2, 0},
		{12, Quadrant3, 0},
		{15, Quadrant3, 3},
	}
	for _, tt := range tests {
		q, r := p.QuadrantOf(tt.idx)
		assert.Equal(t, tt.q, q, "index %d", tt.idx)
		assert.Equal(t, tt.offset, r, "index %d", tt.idx)
	}
}

func TestTableIndex(t *testing.T) {
	p := newProtocol(t, 4, 16)

	entry, neg := p.TableIndex(4)
	assert.Equal(t, 4, entry)
	assert.False(t, neg)

	entry, neg = p.TableIndex(12)
	assert.Equal(t, 4, entry)
	assert.True(t, neg)

	entry, neg = p.TableIndex(9)
	assert.Equal(t, 1, entry)
	assert.True(t, neg)
}

func TestQuadrantFlags(t *testing.T) {
	assert.False(t, Quadrant0.Mirrored())
	assert.True(t, Quadrant1.Mirrored())
	assert.False(t, Quadrant2.Mirrored())
	assert.True(t, Quadrant3.Mirrored())

	assert.False(t, Quadrant0.Negative())
	assert.False(t, Quadrant1.Negative())
	assert.True(t, Quadrant2.Negative())
	assert.True(t, Quadrant3.Negative())

	assert.Equal(t, "Q2", Quadrant2.String())
	assert.Equal(t, "Quadrant(7)", Quadrant(7).String())
}

func TestSin_PanicsOutOfRange(t *testing.T) {
	p := newProtocol(t, 4, 16)

	for _, idx := range []int{-1, 16, 100} {
		func() {
			defer func() {
				rec := recover()
				require.NotNil(t, rec, "index %d should panic", idx)
				err, ok := rec.(error)
				require.True(t, ok)
				assert.True(t, errors.Is(err, ErrAngleOutOfRange))

				var domErr *DomainError
				require.True(t, errors.As(err, &domErr))
				assert.Equal(t, idx, domErr.Index)
				assert.Equal(t, 16, domErr.Resolution)
			}()
			p.Sin(idx)
		}()
	}

	assert.Panics(t, func() { p.Cos(16) })
	assert.Panics(t, func() { p.Cos(-1) })
}

func TestChecked(t *testing.T) {
	p := newProtocol(t, 4, 16)

	v, err := p.SinChecked(4)
	require.NoError(t, err)
	assert.Equal(t, int64(65536), v)

	v, err = p.CosChecked(0)
	require.NoError(t, err)
	assert.Equal(t, int64(65536), v)

	_, err = p.SinChecked(16)
	assert.True(t, errors.Is(err, ErrAngleOutOfRange))

	_, err = p.CosChecked(-4)
	assert.True(t, errors.Is(err, ErrAngleOutOfRange))
}

func TestNormalize(t *testing.T) {
	p := newProtocol(t, 4, 16)

	assert.Equal(t, 0, p.Normalize(0))
	assert.Equal(t, 15, p.Normalize(15))
	assert.Equal(t, 0, p.Normalize(16))
	assert.Equal(t, 1, p.Normalize(33))
	assert.Equal(t, 15, p.Normalize(-1))
	assert.Equal(t, 12, p.Normalize(-4))
	assert.Equal(t, p.Sin(12), p.Sin(p.Normalize(-4)))
}

func TestFromEntries(t *testing.T) {
	params := table.Params{AngleBits: 4, ValueBits: 16}
	p, err := FromEntries(params, []int64{0, 25079, 46340, 60547, 65536})
	require.NoError(t, err)
	assert.Equal(t, int64(-65536), p.Sin(12))

	_, err = FromEntries(params, []int64{0, 25079, 46340, 60547})
	assert.True(t, errors.Is(err, table.ErrInvariant))
}

func TestProtocol_ConcurrentReaders(t *testing.T) {
	p := newProtocol(t, 10, 16)
	done := make(chan int64, 8)

	for g := 0; g < 8; g++ {
		go func() {
			var sum int64
			for idx := 0; idx < p.Resolution(); idx++ {
				sum += p.Sin(idx)
			}
			done <- sum
		}()
	}
	for g := 0; g < 8; g++ {
		// antisymmetry makes a full period sum to zero
		assert.Equal(t, int64(0), <-done)
	}
}
