package formatter

import (
	"fmt"

	"github.com/mcncl/formatdrill/internal/errors"
	"github.com/mcncl/formatdrill/internal/models"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 2

// Options controls how values are rendered.
type Options struct {
	// Indent is the number of spaces per nesting level. Values below one
	// fall back to DefaultIndent.
	Indent int
}

// Formatter renders a Value as JSON, YAML or XML text.
type Formatter struct {
	indent int
}

// NewFormatter creates a new Formatter instance
func NewFormatter(opts Options) *Formatter {
	indent := opts.Indent
	if indent < 1 {
		indent = DefaultIndent
	}
	return &Formatter{indent: indent}
}

// Format renders v in the given format. The Undefined value renders as an
// empty string in every format.
func (f *Formatter) Format(v models.Value, format models.Format) (string, error) {
	switch format {
	case models.FormatJSON:
		return f.JSON(v)
	case models.FormatYAML:
		return f.YAML(v)
	case models.FormatXML:
		return f.XML(v)
	case models.FormatCSV:
		return "", errors.NewConversionError(
			"CSV output is not supported, convert to JSON, YAML or XML instead",
			errors.ErrUnsupported,
		)
	}
	return "", errors.NewConversionError(fmt.Sprintf("unsupported format %q", format), errors.ErrUnsupported)
}
