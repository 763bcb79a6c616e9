// Package survey loads skill survey responses and aggregates them per phase.
package survey

import (
	"regexp"
	"strings"
)

// Columns names the header fields carrying the skill lists.
type Columns struct {
	Teach string
	Learn string
}

// Row is one survey response. Teach and Learn hold the configured skill
// columns; absent cells are empty strings.
type Row struct {
	Teach string
	Learn string
	Cells map[string]string
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// ParseTSV reads a header line followed by records. Blank lines are
// skipped, short records get empty cells and every value is trimmed.
func ParseTSV(text string, cols Columns) []Row {
	var lines []string
	for _, l := range lineBreak.Split(text, -1) {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	headers := strings.Split(lines[0], "\t")
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := strings.Split(line, "\t")
		row := Row{Cells: make(map[string]string, len(headers))}
		for i, h := range headers {
			v := ""
			if i < len(cells) {
				v = strings.TrimSpace(cells[i])
			}
			row.Cells[h] = v
		}
		row.Teach = row.Cells[cols.Teach]
		row.Learn = row.Cells[cols.Learn]
		rows = append(rows, row)
	}
	return rows
}
