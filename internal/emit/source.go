package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"text/template"

	"github.com/roach88/fixtrig/internal/table"
)

// sourceData is the template input shared by the source targets.
type sourceData struct {
	Header        []string
	Prefix        string
	GoName        string
	Package       string
	AngleBits     int
	ValueBits     int
	QuarterLength int
	Resolution    int
	Len           int
	Entries       []int64
}

func newSourceData(t *table.Table, opts Options) sourceData {
	return sourceData{
		Header:        headerLines(t, opts),
		Prefix:        opts.Prefix,
		GoName:        camelName(opts.Prefix),
		Package:       opts.Package,
		AngleBits:     t.AngleBits(),
		ValueBits:     t.ValueBits(),
		QuarterLength: t.QuarterLength(),
		Resolution:    t.Resolution(),
		Len:           t.Len(),
		Entries:       t.Entries(),
	}
}

var rustTemplate = template.Must(template.New("rust").Parse(
	`{{range .Header}}// {{.}}
{{end}}
pub const {{.Prefix}}_PRECISION: u64 = {{.AngleBits}};
pub const {{.Prefix}}_VALUE_PRECISION: u64 = {{.ValueBits}};
pub const {{.Prefix}}_QUARTER_RESOLUTION: i64 = {{.QuarterLength}};
pub const {{.Prefix}}_RESOLUTION: i64 = {{.Resolution}};

pub const {{.Prefix}}: [i64; {{.Len}}] = [
{{range .Entries}}    {{.}},
{{end}}];
`))

type rustGenerator struct{}

func (rustGenerator) Language() string      { return "rust" }
func (rustGenerator) FileExtension() string { return "rs" }

func (rustGenerator) Generate(w io.Writer, t *table.Table, opts Options) error {
	return rustTemplate.Execute(w, newSourceData(t, opts))
}

var cTemplate = template.Must(template.New("c").Parse(
	`{{range .Header}}/* {{.}} */
{{end}}
#ifndef {{.Prefix}}_TABLE_H
#define {{.Prefix}}_TABLE_H

#include <stdint.h>

#define {{.Prefix}}_PRECISION {{.AngleBits}}
#define {{.Prefix}}_VALUE_PRECISION {{.ValueBits}}
#define {{.Prefix}}_QUARTER_RESOLUTION {{.QuarterLength}}
#define {{.Prefix}}_RESOLUTION {{.Resolution}}

static const int64_t {{.Prefix}}[{{.Len}}] = {
{{range .Entries}}    INT64_C({{.}}),
{{end}}};

#endif /* {{.Prefix}}_TABLE_H */
`))

type cGenerator struct{}

func (cGenerator) Language() string      { return "c" }
func (cGenerator) FileExtension() string { return "h" }

func (cGenerator) Generate(w io.Writer, t *table.Table, opts Options) error {
	return cTemplate.Execute(w, newSourceData(t, opts))
}

var goTemplate = template.Must(template.New("go").Parse(
	`{{range .Header}}// {{.}}
{{end}}
package {{.Package}}

const (
	{{.GoName}}Precision = {{.AngleBits}}
	{{.GoName}}ValuePrecision = {{.ValueBits}}
	{{.GoName}}QuarterResolution = {{.QuarterLength}}
	{{.GoName}}Resolution = {{.Resolution}}
)

var {{.GoName}} = [{{.Len}}]int64{
{{range .Entries}}	{{.}},
{{end}}}
`))

type goGenerator struct{}

func (goGenerator) Language() string      { return "go" }
func (goGenerator) FileExtension() string { return "go" }

// Generate renders the Go target and runs it through gofmt, which also
// rejects anything that does not parse.
func (goGenerator) Generate(w io.Writer, t *table.Table, opts Options) error {
	var buf bytes.Buffer
	if err := goTemplate.Execute(&buf, newSourceData(t, opts)); err != nil {
		return err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("emit go: formatting generated source: %w", err)
	}
	_, err = w.Write(src)
	return err
}
