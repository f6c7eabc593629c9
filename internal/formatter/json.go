package formatter

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
	pkgerrors "github.com/pkg/errors"

	"github.com/mcncl/formatdrill/internal/errors"
	"github.com/mcncl/formatdrill/internal/models"
)

// JSON renders v as indented JSON without a trailing newline. Object
// members keep their order and members holding Undefined are omitted;
// Undefined array items and non-finite numbers render as null.
func (f *Formatter) JSON(v models.Value) (string, error) {
	if !v.Defined() {
		return "", nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", strings.Repeat(" ", f.indent))
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", errors.NewConversionError("failed to encode JSON", pkgerrors.Wrap(err, "json encode"))
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
