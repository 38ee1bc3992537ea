// Package config loads the optional rpath CLI configuration file.
//
//	format: json
//	default_adapter: doc
//	adapters:
//	  - use: xml      # built-in adapter name
//	    id: doc       # registry id, defaults to the built-in name
//
// Every field is optional. Flags given on the command line take precedence
// over the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/roach88/rpath/pkg/adapters"
	"github.com/roach88/rpath/pkg/registry"
)

// Formats lists the accepted output formats.
var Formats = []string{"text", "json"}

// Config is the decoded configuration file.
type Config struct {
	Format         string    `yaml:"format"`
	DefaultAdapter string    `yaml:"default_adapter"`
	Adapters       []Adapter `yaml:"adapters"`
}

// Adapter registers the built-in adapter Use under ID.
type Adapter struct {
	Use string `yaml:"use"`
	ID  string `yaml:"id"`
}

// RegistryID returns the id the adapter is registered under.
func (a Adapter) RegistryID() registry.ID {
	if a.ID != "" {
		return registry.ID(a.ID)
	}
	return registry.ID(a.Use)
}

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Load reads and validates the configuration at path. A nil fs reads the
// host filesystem.
func Load(fs afero.Fs, path string) (*Config, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a configuration document. Unknown fields are
// rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the format, that every entry names a known built-in, and
// that the default adapter is declared or is a built-in name.
func (c *Config) Validate() error {
	if c.Format != "" && !slices.Contains(Formats, c.Format) {
		return &ValidationError{Field: "format", Message: fmt.Sprintf("%q is not one of %v", c.Format, Formats)}
	}

	builtins := adapters.Names()
	declared := make(map[registry.ID]bool, len(c.Adapters))
	for i, a := range c.Adapters {
		field := fmt.Sprintf("adapters[%d].use", i)
		if a.Use == "" {
			return &ValidationError{Field: field, Message: "is required"}
		}
		if !slices.Contains(builtins, a.Use) {
			return &ValidationError{Field: field, Message: fmt.Sprintf("unknown adapter %q (known: %v)", a.Use, builtins)}
		}
		declared[a.RegistryID()] = true
	}

	if c.DefaultAdapter != "" &&
		!declared[registry.ID(c.DefaultAdapter)] &&
		!slices.Contains(builtins, c.DefaultAdapter) {
		return &ValidationError{Field: "default_adapter", Message: fmt.Sprintf("%q is not declared", c.DefaultAdapter)}
	}
	return nil
}

// Apply registers the configured adapters in reg, in file order. It returns
// the ids registered.
func (c *Config) Apply(reg *registry.Registry) ([]registry.ID, error) {
	ids := make([]registry.ID, 0, len(c.Adapters))
	for _, entry := range c.Adapters {
		a, err := adapters.New(entry.Use)
		if err != nil {
			return ids, err
		}
		ids = append(ids, reg.Register(a, entry.RegistryID()))
	}
	return ids, nil
}
