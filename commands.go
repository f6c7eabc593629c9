package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/formatdrill/internal/converter"
	"github.com/mcncl/formatdrill/internal/errors"
	"github.com/mcncl/formatdrill/internal/exercise"
	"github.com/mcncl/formatdrill/internal/formatter"
	"github.com/mcncl/formatdrill/internal/i18n"
	"github.com/mcncl/formatdrill/internal/models"
	"github.com/mcncl/formatdrill/internal/parser"
)

// ExercisesCmd lists the catalog
type ExercisesCmd struct{}

func (cmd *ExercisesCmd) Run(ctx *Context) error {
	cat, err := ctx.catalog()
	if err != nil {
		return err
	}

	rows := [][]string{{"ID", "FORMAT", "TITLE"}}
	for _, ex := range cat.All() {
		rows = append(rows, []string{ex.ID, ex.Format.Label(), ex.Title.In(ctx.Config.Language)})
	}
	return ctx.writeOutput("", formatter.Table(rows))
}

// ShowCmd prints one exercise
type ShowCmd struct {
	ID string `arg:"" help:"Exercise id, for example json-1."`
}

func (cmd *ShowCmd) Run(ctx *Context) error {
	ex, err := lookupExercise(ctx, cmd.ID)
	if err != nil {
		return err
	}

	lang := ctx.Config.Language
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, %s)\n\n", ex.Title.In(lang), ex.ID, ex.Format.Label())
	b.WriteString(strings.TrimRight(ex.Prompt.In(lang), "\n"))
	b.WriteString("\n\n")
	b.WriteString(ex.Starter)
	return ctx.writeOutput("", b.String())
}

// CheckCmd validates an answer against an exercise template
type CheckCmd struct {
	ID          string `arg:"" help:"Exercise id, for example json-1."`
	Input       string `help:"Path to the answer file. If not specified, reads from stdin." short:"i" type:"path"`
	Interactive bool   `help:"Paste the answer directly and press Ctrl+D to check it." short:"I"`
}

func (cmd *CheckCmd) Run(ctx *Context) error {
	ex, err := lookupExercise(ctx, cmd.ID)
	if err != nil {
		return err
	}

	text, _, err := readInput(cmd.Input, ex.Format, cmd.Interactive)
	if err != nil {
		return err
	}

	session := exercise.NewSession(ex, ctx.Translator)
	session.TextChanged(text)
	if !session.CanValidate() {
		ctx.Logger.Debug("answer does not decode", "exercise", ex.ID, "error", session.SyntaxError)
		return errors.NewSyntaxError(session.SyntaxError, errors.ErrInvalidSyntax)
	}

	if v, err := parser.Parse(ex.Format, text); err == nil {
		ctx.dump("decoded answer", v)
	}

	outcome, err := session.Validate()
	if err != nil {
		return err
	}

	if !outcome.Advance {
		lines := make([]string, len(outcome.Discrepancies))
		for i, d := range outcome.Discrepancies {
			lines[i] = d.String()
		}
		if err := ctx.writeOutput("", strings.Join(lines, "\n")); err != nil {
			return err
		}
		return errors.NewValidationError(
			ctx.Translator.Message(i18n.CodeProblems, map[string]string{"count": strconv.Itoa(len(lines))}),
			errors.ErrDiscrepancies,
		)
	}

	if outcome.Next == "" {
		return ctx.writeOutput("", ctx.Translator.Message(i18n.CodeFinished, nil))
	}
	return ctx.writeOutput("", ctx.Translator.Message(i18n.CodeAdvance, map[string]string{"next": outcome.Next}))
}

// ConvertCmd converts a document between formats
type ConvertCmd struct {
	From        string `help:"Source format (json, yaml, xml or csv). Inferred from --input when omitted." short:"f"`
	To          string `help:"Target format (json, yaml or xml). Inferred from --output when omitted." short:"t"`
	Input       string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Interactive bool   `help:"Paste the document directly and press Ctrl+D to convert it." short:"I"`
}

func (cmd *ConvertCmd) Run(ctx *Context) error {
	from, err := resolveFormat(cmd.From, cmd.Input, "--from")
	if err != nil {
		return err
	}
	to, err := resolveFormat(cmd.To, cmd.Output, "--to")
	if err != nil {
		return err
	}

	text, _, err := readInput(cmd.Input, from, cmd.Interactive)
	if err != nil {
		return err
	}

	if v, err := parser.Parse(from, text); err == nil {
		ctx.dump("decoded document", v)
	}

	out, err := converter.Convert(text, from, to, converter.Options{
		Indent:     ctx.Config.Formatting.Indent,
		Translator: ctx.Translator,
	})
	if err != nil {
		ctx.Logger.Debug("conversion failed", "from", from, "to", to, "error", err)
		return errors.NewConversionError(converter.Message(err, from, to, ctx.Translator), err)
	}

	ctx.Logger.Debug("converted document", "from", from, "to", to, "bytes", len(out))
	return ctx.writeOutput(cmd.Output, out)
}

// CSVCmd renders CSV data as a table
type CSVCmd struct {
	Input       string `help:"Path to the CSV file. If not specified, reads from stdin." short:"i" type:"path"`
	Interactive bool   `help:"Paste the CSV directly and press Ctrl+D to render it." short:"I"`
}

func (cmd *CSVCmd) Run(ctx *Context) error {
	text, _, err := readInput(cmd.Input, models.FormatCSV, cmd.Interactive)
	if err != nil {
		return err
	}

	rows, err := parser.ParseCSV(text)
	if err != nil {
		return err
	}
	ctx.Logger.Debug("parsed CSV", "rows", len(rows))
	return ctx.writeOutput("", formatter.Table(rows))
}

func lookupExercise(ctx *Context, id string) (*exercise.Exercise, error) {
	cat, err := ctx.catalog()
	if err != nil {
		return nil, err
	}
	return cat.Lookup(id)
}

// resolveFormat returns the format named by flag, or the one implied by
// the extension of path.
func resolveFormat(flag, path, name string) (models.Format, error) {
	if flag != "" {
		f, err := models.ParseFormat(flag)
		if err != nil {
			return "", errors.NewInputError(err.Error(), errors.ErrUnsupported)
		}
		return f, nil
	}
	if path != "" {
		if f, ok := models.FormatFromPath(path); ok {
			return f, nil
		}
	}
	return "", errors.NewInputError(
		fmt.Sprintf("cannot tell the format, please pass %s", name),
		errors.ErrUnsupported,
	)
}
