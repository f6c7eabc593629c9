package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/formatdrill/internal/errors"
	"github.com/mcncl/formatdrill/internal/models"
)

// Parse decodes text in the given format into a Value. Decode failures are
// returned as syntax errors carrying the decoder's message. CSV input is
// decoded as an array of rows, each an array of strings.
func Parse(format models.Format, text string) (models.Value, error) {
	switch format {
	case models.FormatJSON:
		return ParseJSON(text)
	case models.FormatYAML:
		return ParseYAML(text)
	case models.FormatXML:
		return ParseXML(text)
	case models.FormatCSV:
		rows, err := ParseCSV(text)
		if err != nil {
			return models.Value{}, err
		}
		return RowsValue(rows), nil
	}
	return models.Value{}, errors.NewInputError(fmt.Sprintf("unsupported format %q", format), errors.ErrUnsupported)
}

// ParseReader reads all of r and decodes it.
func ParseReader(format models.Format, r io.Reader) (models.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read input", err)
	}
	return ParseString(format, string(data))
}

// ParseString decodes a string, rejecting input that is empty or only
// whitespace with an input error rather than a syntax error.
func ParseString(format models.Format, text string) (models.Value, error) {
	if strings.TrimSpace(text) == "" {
		return models.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(format, text)
}

// ParseFile decodes a file. When format is empty it is inferred from the
// file extension.
func ParseFile(filePath string, format models.Format) (models.Value, error) {
	text, format, err := ReadFile(filePath, format)
	if err != nil {
		return models.Value{}, err
	}
	return Parse(format, text)
}

// ReadFile loads a non-empty input file and resolves its format.
func ReadFile(filePath string, format models.Format) (string, models.Format, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	if format == "" {
		inferred, ok := models.FormatFromPath(filePath)
		if !ok {
			return "", "", errors.NewInputError(
				fmt.Sprintf("cannot infer the format of '%s', please pass it explicitly", filePath),
				errors.ErrInvalidFilePath,
			)
		}
		format = inferred
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", "", errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return "", "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return string(data), format, nil
}

// RowsValue wraps parsed CSV rows as an array of string arrays.
func RowsValue(rows [][]string) models.Value {
	out := make([]models.Value, len(rows))
	for i, row := range rows {
		cells := make([]models.Value, len(row))
		for j, cell := range row {
			cells[j] = models.String(cell)
		}
		out[i] = models.Array(cells...)
	}
	return models.Array(out...)
}
