package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/roach88/fixtrig/internal/lookup"
	"github.com/roach88/fixtrig/internal/table"
)

// Stats summarizes signed errors (value minus reference) in ULPs.
type Stats struct {
	Samples    int     `json:"samples"`
	MaxAbs     float64 `json:"max_abs_ulp"`
	MeanAbs    float64 `json:"mean_abs_ulp"`
	RMS        float64 `json:"rms_ulp"`
	StdDev     float64 `json:"stddev_ulp"`
	Bias       float64 `json:"bias_ulp"`
	WorstIndex int     `json:"worst_index"`
}

// Report is the accuracy of one table.
type Report struct {
	Params  table.Params `json:"params"`
	Quarter Stats        `json:"quarter"`
	Period  Stats        `json:"period"`
}

// Analyze measures the quarter table entries and every angle index of the
// reconstructed period.
func Analyze(t *table.Table) Report {
	q := float64(t.QuarterLength())
	quarter := make([]float64, t.Len())
	for i := range quarter {
		ref := math.Sin(float64(i)/q*(math.Pi/2)) * float64(t.One())
		quarter[i] = float64(t.At(i)) - ref
	}

	p := lookup.New(t)
	period := make([]float64, p.Resolution())
	for idx := range period {
		period[idx] = float64(p.Sin(idx)) - Reference(p, idx)
	}

	return Report{
		Params:  t.Params(),
		Quarter: summarize(quarter),
		Period:  summarize(period),
	}
}

// Reference returns the exact sine at angle index idx, scaled to p's
// fixed-point one.
func Reference(p *lookup.Protocol, idx int) float64 {
	rad := float64(idx) / float64(p.Resolution()) * 2 * math.Pi
	return math.Sin(rad) * float64(p.One())
}

func summarize(errs []float64) Stats {
	abs := make([]float64, len(errs))
	for i, e := range errs {
		abs[i] = math.Abs(e)
	}
	worst := floats.MaxIdx(abs)
	return Stats{
		Samples:    len(errs),
		MaxAbs:     abs[worst],
		MeanAbs:    stat.Mean(abs, nil),
		RMS:        math.Sqrt(floats.Dot(errs, errs) / float64(len(errs))),
		StdDev:     stat.StdDev(errs, nil),
		Bias:       stat.Mean(errs, nil),
		WorstIndex: worst,
	}
}

// Series samples one period of the reconstructed sine at n evenly spaced
// angle indices, as plain floats in [-1, 1]. n <= 0 or n above the
// resolution samples every index.
func Series(p *lookup.Protocol, n int) []float64 {
	res := p.Resolution()
	if n <= 0 || n > res {
		n = res
	}
	one := float64(p.One())
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(p.Sin(i*res/n)) / one
	}
	return out
}

// String renders the report as the text block printed by inspect.
func (r Report) String() string {
	return fmt.Sprintf(
		"angle_precision_bits=%d value_precision_bits=%d\n"+
			"quarter: samples=%d max=%.4f mean=%.4f rms=%.4f bias=%+.4f ulp\n"+
			"period:  samples=%d max=%.4f mean=%.4f rms=%.4f bias=%+.4f ulp\n",
		r.Params.AngleBits, r.Params.ValueBits,
		r.Quarter.Samples, r.Quarter.MaxAbs, r.Quarter.MeanAbs, r.Quarter.RMS, r.Quarter.Bias,
		r.Period.Samples, r.Period.MaxAbs, r.Period.MeanAbs, r.Period.RMS, r.Period.Bias,
	)
}
