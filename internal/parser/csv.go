package parser

import (
	"strings"

	"github.com/mcncl/formatdrill/internal/errors"
)

// ParseCSV splits text into rows on newlines and into cells on commas,
// trimming whitespace around every cell. Quoting is not supported: a comma
// is always a delimiter. The first row is conventionally a header, which
// only matters to renderers.
func ParseCSV(text string) ([][]string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.NewInputError("CSV input is empty", errors.ErrEmptyInput)
	}

	lines := strings.Split(trimmed, "\n")
	rows := make([][]string, len(lines))
	for i, line := range lines {
		cells := strings.Split(line, ",")
		for j := range cells {
			cells[j] = strings.TrimSpace(cells[j])
		}
		rows[i] = cells
	}
	return rows, nil
}
