// Package converter translates documents between JSON, YAML and XML by
// decoding into a models.Value and encoding it again.
package converter

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/mcncl/formatdrill/internal/errors"
	"github.com/mcncl/formatdrill/internal/formatter"
	"github.com/mcncl/formatdrill/internal/i18n"
	"github.com/mcncl/formatdrill/internal/models"
	"github.com/mcncl/formatdrill/internal/parser"
)

// Options configures conversions.
type Options struct {
	Indent     int
	Translator i18n.Translator
}

func (o Options) translator() i18n.Translator {
	if o.Translator == nil {
		return i18n.Default()
	}
	return o.Translator
}

// Convert decodes text as from and encodes the result as to. A decode
// failure is returned as a syntax error carrying the decoder's message.
func Convert(text string, from, to models.Format, opts Options) (string, error) {
	v, err := parser.Parse(from, text)
	if err != nil {
		return "", err
	}
	out, err := formatter.NewFormatter(formatter.Options{Indent: opts.Indent}).Format(v, to)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "%s to %s", from, to)
	}
	return out, nil
}

// Message renders err the way a conversion pane shows it, for example
// "JSON error: unexpected end of JSON input". Syntax errors are attributed
// to the source format, everything else to the target format.
func Message(err error, from, to models.Format, t i18n.Translator) string {
	if err == nil {
		return ""
	}
	if t == nil {
		t = i18n.Default()
	}

	format, detail := to, err.Error()
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		detail = appErr.Message
		if appErr.Type == errors.ErrorTypeSyntax || appErr.Type == errors.ErrorTypeInput {
			format = from
		}
	}
	return t.Message(i18n.CodeDecodeError, map[string]string{
		"format": format.Label(),
		"detail": detail,
	})
}
