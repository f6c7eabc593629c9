package exercise

import (
	stderrors "errors"

	"github.com/mcncl/formatdrill/internal/errors"
	"github.com/mcncl/formatdrill/internal/i18n"
	"github.com/mcncl/formatdrill/internal/models"
	"github.com/mcncl/formatdrill/internal/parser"
	"github.com/mcncl/formatdrill/internal/validator"
)

// Outcome is the result of checking an answer.
type Outcome struct {
	Discrepancies []models.Discrepancy
	// Advance is true when the answer matches the template.
	Advance bool
	// Next is the id of the following exercise, empty after the last one.
	Next string
}

// Session is the editor state of one exercise. SyntaxError and
// Discrepancies are never both set.
type Session struct {
	Exercise      *Exercise
	Text          string
	SyntaxError   string
	Discrepancies []models.Discrepancy

	translator i18n.Translator
}

// NewSession starts an exercise with its starter text in the editor.
func NewSession(ex *Exercise, t i18n.Translator) *Session {
	if t == nil {
		t = i18n.Default()
	}
	s := &Session{Exercise: ex, translator: t}
	s.TextChanged(ex.Starter)
	return s
}

// TextChanged stores the editor content and re-checks its syntax. Any
// previous discrepancies are cleared; they are only shown after Validate.
func (s *Session) TextChanged(text string) {
	s.Text = text
	s.Discrepancies = nil

	if _, err := s.decode(); err != nil {
		s.SyntaxError = syntaxMessage(err)
		return
	}
	s.SyntaxError = ""
}

// CanValidate reports whether the answer can be checked.
func (s *Session) CanValidate() bool {
	return s.SyntaxError == ""
}

// Validate checks the current text against the exercise template. A text
// that does not decode sets SyntaxError and returns a syntax error without
// producing discrepancies.
func (s *Session) Validate() (Outcome, error) {
	actual, err := s.decode()
	if err != nil {
		s.SyntaxError = s.translator.Message(i18n.CodeInvalidInput, map[string]string{
			"format": s.Exercise.Format.Label(),
		})
		s.Discrepancies = nil
		return Outcome{}, errors.NewSyntaxError(s.SyntaxError, err)
	}

	s.SyntaxError = ""
	s.Discrepancies = validator.Validate(s.Exercise.Template, actual, "", validator.Options{
		Arrays:     s.Exercise.Arrays,
		Translator: s.translator,
	})

	out := Outcome{Discrepancies: s.Discrepancies}
	if len(s.Discrepancies) == 0 {
		out.Advance = true
		out.Next = s.Exercise.Next
	}
	return out, nil
}

func (s *Session) decode() (models.Value, error) {
	return parser.Parse(s.Exercise.Format, s.Text)
}

// syntaxMessage extracts the decoder's own message.
func syntaxMessage(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
