package formatter

import (
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

// Table renders CSV rows as aligned columns. The first row is treated as a
// header and underlined; short rows are padded with empty cells.
func Table(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	columns := 0
	for _, row := range rows {
		columns = max(columns, len(row))
	}
	widths := make([]int, columns)
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	writeRow := func(cells []string) {
		padded := make([]string, columns)
		copy(padded, cells)
		_, _ = tw.Write([]byte(strings.Join(padded, "\t") + "\n"))
	}

	writeRow(rows[0])
	rule := make([]string, columns)
	for i, w := range widths {
		rule[i] = strings.Repeat("-", max(w, 1))
	}
	writeRow(rule)
	for _, row := range rows[1:] {
		writeRow(row)
	}
	_ = tw.Flush()

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
