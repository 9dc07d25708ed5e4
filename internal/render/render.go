// Package render writes decoded XFS containers as XML, JSON or YAML.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/xfsconv/pkg/xfs"
)

// Format selects an output document type.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultFormat is the format written when none is requested.
const DefaultFormat = FormatXML

// ParseFormat normalizes a format name. An empty name selects DefaultFormat.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xml":
		return FormatXML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want xml, json or yaml)", s)
	}
}

// Extension returns the file extension for f, without the dot.
func Extension(f Format) string {
	if f == "" {
		return string(DefaultFormat)
	}
	return string(f)
}

// ContentType returns the media type served for f.
func ContentType(f Format) string {
	switch f {
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	default:
		return "application/xml; charset=utf-8"
	}
}

// Render writes c to w in format f.
func Render(w io.Writer, c *xfs.Container, f Format) error {
	switch f {
	case FormatXML, "":
		return WriteXML(w, c)
	case FormatJSON:
		return WriteJSON(w, c)
	case FormatYAML:
		return WriteYAML(w, c)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteYAML writes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}
