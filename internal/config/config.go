// Package config loads generator settings from YAML or CUE files and
// provides named presets.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/fixtrig/internal/emit"
	"github.com/roach88/fixtrig/internal/table"
)

// ErrUnknownPreset is returned by GetPreset for an unregistered name.
var ErrUnknownPreset = errors.New("config: unknown preset")

//go:embed schema.cue
var schemaSource []byte

// Config holds everything the gen command needs.
type Config struct {
	AngleBits int    `yaml:"angle_precision_bits" json:"angle_precision_bits"`
	ValueBits int    `yaml:"value_precision_bits" json:"value_precision_bits"`
	Target    string `yaml:"target" json:"target"`
	Prefix    string `yaml:"prefix" json:"prefix"`
	Package   string `yaml:"package" json:"package"`
	Output    string `yaml:"output,omitempty" json:"output,omitempty"`
	DB        string `yaml:"db,omitempty" json:"db,omitempty"`
}

// DefaultConfig returns the settings used when no file or preset is given.
func DefaultConfig() *Config {
	return &Config{
		AngleBits: table.DefaultAngleBits,
		ValueBits: table.DefaultValueBits,
		Target:    emit.DefaultTarget,
		Prefix:    emit.DefaultPrefix,
		Package:   emit.DefaultPackage,
	}
}

// Params returns the table parameters.
func (c *Config) Params() table.Params {
	return table.Params{AngleBits: c.AngleBits, ValueBits: c.ValueBits}
}

// EmitOptions returns the naming options for the emitter.
func (c *Config) EmitOptions() emit.Options {
	return emit.Options{Prefix: c.Prefix, Package: c.Package}
}

// Validate checks the parameters, target and identifiers.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if _, err := emit.Lookup(c.Target); err != nil {
		return err
	}
	return c.EmitOptions().WithDefaults().Validate()
}

// Load reads a configuration file. Files ending in .cue are checked
// against the embedded schema; anything else is parsed as YAML over the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		return ParseCUE(data, path)
	}
	return ParseYAML(data)
}

// ParseYAML decodes YAML over DefaultConfig. Unknown keys are rejected,
// as they are by the CUE schema. An empty document yields the defaults.
func ParseYAML(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parsing yaml: %w", err)
	}
	return cfg, nil
}

// ParseCUE unifies data with the #Config schema and decodes the result.
// Unknown fields and out-of-range values are rejected by the schema.
func ParseCUE(data []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("config: compiling schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("config: compiling %s: %w", filename, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}

	cfg := &Config{}
	if err := unified.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", filename, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
