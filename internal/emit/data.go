package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/gocarina/gocsv"

	"github.com/roach88/fixtrig/internal/manifest"
	"github.com/roach88/fixtrig/internal/table"
)

// Row is one table entry in the csv target.
type Row struct {
	Index     int     `csv:"index"`
	Radians   float64 `csv:"radians"`
	Value     int64   `csv:"value"`
	Reference float64 `csv:"reference"`
	Error     float64 `csv:"error"`
}

// Rows returns one Row per table entry. Reference is the untruncated
// scaled sine, Error is Reference minus Value.
func Rows(t *table.Table) []*Row {
	q := float64(t.QuarterLength())
	scale := float64(t.One())
	rows := make([]*Row, t.Len())
	for i := range rows {
		rad := float64(i) / q * (math.Pi / 2)
		ref := math.Sin(rad) * scale
		rows[i] = &Row{
			Index:     i,
			Radians:   rad,
			Value:     t.At(i),
			Reference: ref,
			Error:     ref - float64(t.At(i)),
		}
	}
	return rows
}

type csvGenerator struct{}

func (csvGenerator) Language() string      { return "csv" }
func (csvGenerator) FileExtension() string { return "csv" }

func (csvGenerator) Generate(w io.Writer, t *table.Table, _ Options) error {
	if err := gocsv.Marshal(Rows(t), w); err != nil {
		return fmt.Errorf("emit csv: %w", err)
	}
	return nil
}

// Document is the json target: the manifest plus provenance.
type Document struct {
	manifest.Manifest
	Generator string `json:"generator"`
	Digest    string `json:"digest"`
}

type jsonGenerator struct{}

func (jsonGenerator) Language() string      { return "json" }
func (jsonGenerator) FileExtension() string { return "json" }

func (jsonGenerator) Generate(w io.Writer, t *table.Table, opts Options) error {
	doc := Document{
		Manifest:  *manifest.New(t),
		Generator: "fixtrig",
		Digest:    opts.Digest,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
