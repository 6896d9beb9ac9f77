package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/sitegen/internal/doctree"
)

// CSVRowsPerSection groups data rows into sections of this size.
const CSVRowsPerSection = 20

// CSVReader turns a CSV file into pipe tables, one per row batch. The first
// record is the header row and is repeated at the top of every table.
type CSVReader struct{}

func (p *CSVReader) Read(r io.Reader, filename string) (*doctree.DocTree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	tree := &doctree.DocTree{Title: baseTitle(filename)}
	if len(records) == 0 {
		return tree, nil
	}

	headers := records[0]
	dataRows := records[1:]
	if len(dataRows) == 0 {
		tree.Children = append(tree.Children, &doctree.DocNode{Text: tableRow(headers)})
		return tree, nil
	}

	for i := 0; i < len(dataRows); i += CSVRowsPerSection {
		end := min(i+CSVRowsPerSection, len(dataRows))

		var text strings.Builder
		text.WriteString(tableRow(headers))
		for _, row := range dataRows[i:end] {
			text.WriteString("\n" + tableRow(row))
		}
		tree.Children = append(tree.Children, &doctree.DocNode{
			Title: fmt.Sprintf("Rows %d-%d", i+2, end+1), // 1-indexed, skip header
			Text:  text.String(),
			Page:  i + 2,
		})
	}
	return tree, nil
}

var cellEscaper = strings.NewReplacer("|", "&#124;", "\r\n", " ", "\n", " ")

func tableRow(cells []string) string {
	var b strings.Builder
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" " + strings.TrimSpace(cellEscaper.Replace(c)) + " |")
	}
	return b.String()
}
