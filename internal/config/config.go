// Package config handles vtxtool configuration loading and management.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Faultbox/vertexcodec/pkg/formats"
)

// Config holds all tool settings.
type Config struct {
	Logging   LoggingConfig             `yaml:"logging"`
	Layouts   map[string][]string       `yaml:"layouts"`   // "Name" or "Name:Format" per element, in stream order
	Materials map[string]MaterialConfig `yaml:"materials"` // Material presets by name
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MaterialConfig describes the material metadata used to pick an NVR vertex layout.
type MaterialConfig struct {
	Type     string   `yaml:"type"`
	Flags    []string `yaml:"flags"`
	Channels []string `yaml:"channels"` // Texture names, first one decides ground-ness
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Layouts: map[string][]string{
			"position":    {"Position"},
			"standard":    {"Position", "Normal", "DiffuseUV"},
			"lightmapped": {"Position", "Normal", "DiffuseUV", "LightmapUV"},
			"colored":     {"Position", "Normal", "DiffuseUV", "SecondaryColor"},
		},
		Materials: map[string]MaterialConfig{
			"default": {Type: "Default"},
		},
	}
}

// Layout resolves a named layout into its element list.
// An element without an explicit format gets the field's default format.
func (c *Config) Layout(name string) ([]formats.MGEOElement, error) {
	entries, ok := c.Layouts[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout %q", name)
	}

	elements := make([]formats.MGEOElement, len(entries))
	for i, s := range entries {
		e, err := parseElement(s)
		if err != nil {
			return nil, fmt.Errorf("layout %q element %d: %w", name, i, err)
		}
		elements[i] = e
	}
	return elements, nil
}

func parseElement(s string) (formats.MGEOElement, error) {
	nameStr, formatStr, hasFormat := strings.Cut(s, ":")
	n, err := formats.ParseMGEOElementName(strings.TrimSpace(nameStr))
	if err != nil {
		return formats.MGEOElement{}, err
	}
	e := formats.MGEOElement{Name: n, Format: n.DefaultFormat()}
	if hasFormat {
		if e.Format, err = formats.ParseMGEOElementFormat(strings.TrimSpace(formatStr)); err != nil {
			return formats.MGEOElement{}, err
		}
	}
	return e, nil
}

// Material resolves a named material preset.
func (c *Config) Material(name string) (formats.NVRMaterial, error) {
	mc, ok := c.Materials[name]
	if !ok {
		return formats.NVRMaterial{}, fmt.Errorf("unknown material %q", name)
	}

	typ, err := formats.ParseNVRMaterialType(mc.Type)
	if err != nil {
		return formats.NVRMaterial{}, fmt.Errorf("material %q: %w", name, err)
	}

	mat := formats.NVRMaterial{Name: name, Type: typ}
	for _, s := range mc.Flags {
		f, err := formats.ParseNVRMaterialFlag(s)
		if err != nil {
			return formats.NVRMaterial{}, fmt.Errorf("material %q: %w", name, err)
		}
		mat.Flags |= f
	}
	for _, ch := range mc.Channels {
		mat.Channels = append(mat.Channels, formats.NVRChannel{Name: ch})
	}
	return mat, nil
}

// LayoutNames returns the configured layout names in sorted order.
func (c *Config) LayoutNames() []string {
	return sortedKeys(c.Layouts)
}

// MaterialNames returns the configured material names in sorted order.
func (c *Config) MaterialNames() []string {
	return sortedKeys(c.Materials)
}

// Validate resolves every layout and material and reports the first failure.
// A layout must also be decodable, so only supported elements are accepted.
func (c *Config) Validate() error {
	for _, name := range c.LayoutNames() {
		elements, err := c.Layout(name)
		if err != nil {
			return err
		}
		if _, err := formats.MGEOStride(elements); err != nil {
			return fmt.Errorf("layout %q: %w", name, err)
		}
	}
	for _, name := range c.MaterialNames() {
		if _, err := c.Material(name); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
