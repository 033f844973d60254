package emit

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/fixtrig/internal/manifest"
	"github.com/roach88/fixtrig/internal/table"
)

// Defaults for Options.
const (
	DefaultPrefix  = "SIN"
	DefaultPackage = "precalc"
	DefaultTarget  = "rust"
)

// ErrUnknownTarget is returned by Lookup for an unregistered target name.
var ErrUnknownTarget = errors.New("emit: unknown target")

// ErrInvalidOptions is returned for malformed identifiers in Options.
var ErrInvalidOptions = errors.New("emit: invalid options")

// Generator writes a table in one target format.
type Generator interface {
	// Language returns the target name, e.g. "rust".
	Language() string

	// FileExtension returns the conventional file extension without a dot.
	FileExtension() string

	// Generate writes t to w.
	Generate(w io.Writer, t *table.Table, opts Options) error
}

// Options control naming in the emitted text.
type Options struct {
	// Prefix names the constants, upper snake case. SIN yields SIN_PRECISION,
	// SIN_RESOLUTION and the SIN array.
	Prefix string

	// Package is the package clause for the go target.
	Package string

	// Digest is recorded in the generated header. Emit fills it in.
	Digest string
}

var (
	prefixPattern  = regexp.MustCompile(`^[A-Z][A-Z0-9]*(_[A-Z0-9]+)*$`)
	packagePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// WithDefaults returns o with empty fields set to their defaults.
func (o Options) WithDefaults() Options {
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.Package == "" {
		o.Package = DefaultPackage
	}
	return o
}

// Validate checks that the identifiers are usable in every target.
func (o Options) Validate() error {
	if !prefixPattern.MatchString(o.Prefix) {
		return fmt.Errorf("%w: prefix %q must be upper snake case", ErrInvalidOptions, o.Prefix)
	}
	if !packagePattern.MatchString(o.Package) {
		return fmt.Errorf("%w: package %q is not a valid Go package name", ErrInvalidOptions, o.Package)
	}
	return nil
}

var registry = map[string]Generator{}

func register(g Generator) {
	registry[g.Language()] = g
}

func init() {
	register(rustGenerator{})
	register(goGenerator{})
	register(cGenerator{})
	register(csvGenerator{})
	register(jsonGenerator{})
}

// Lookup returns the generator registered under name.
func Lookup(name string) (Generator, error) {
	g, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownTarget, name, strings.Join(Targets(), ", "))
	}
	return g, nil
}

// Targets lists the registered target names in sorted order.
func Targets() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Emit writes t in the named target, filling in defaults and the digest.
func Emit(w io.Writer, target string, t *table.Table, opts Options) error {
	g, err := Lookup(target)
	if err != nil {
		return err
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.Digest == "" {
		digest, err := manifest.Digest(t)
		if err != nil {
			return err
		}
		opts.Digest = digest
	}
	return g.Generate(w, t, opts)
}

// camelName turns an upper snake case prefix into an exported Go name:
// FAST_SIN becomes FastSin.
func camelName(prefix string) string {
	title := cases.Title(language.Und)
	var b strings.Builder
	for _, part := range strings.Split(prefix, "_") {
		b.WriteString(title.String(strings.ToLower(part)))
	}
	return b.String()
}

// headerLines is the provenance block shared by the source targets.
func headerLines(t *table.Table, opts Options) []string {
	return []string{
		"Code generated by fixtrig. DO NOT EDIT.",
		fmt.Sprintf("angle_precision_bits=%d value_precision_bits=%d", t.AngleBits(), t.ValueBits()),
		"digest: " + opts.Digest,
	}
}
