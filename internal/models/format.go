package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a textual encoding of decoded values.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
	FormatCSV  Format = "csv"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatJSON, FormatYAML, FormatXML, FormatCSV}

// Label returns the upper-case name used in user-facing messages.
func (f Format) Label() string { return strings.ToUpper(string(f)) }

// ParseFormat resolves a user supplied format name. "yml" is accepted as
// an alias for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xml":
		return FormatXML, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown format %q", name)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", false
	}
	return f, true
}

// Discrepancy is one structural difference between a decoded value and the
// expected template. Path uses dots for object keys and [i] for array
// indices; the root has an empty path.
type Discrepancy struct {
	Path    string `json:"path" yaml:"path"`
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

func (d Discrepancy) String() string {
	if d.Path == "" {
		return d.Message
	}
	return d.Path + ": " + d.Message
}
