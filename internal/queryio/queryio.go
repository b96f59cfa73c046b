// Package queryio reads batch query files (CSV, XLSX, JSON, YAML) and writes
// batch results (JSON, CSV).
package queryio

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/profile-finder/internal/model"
)

// Format names an input or output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat infers the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", eris.Errorf("queryio: unsupported file extension %q", filepath.Ext(path))
	}
}

// ReadFile loads every query from path. The format comes from the extension.
func ReadFile(ctx context.Context, path string) ([]model.Query, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	if format == FormatXLSX {
		rows, err := ReadXLSX(path, XLSXOptions{})
		if err != nil {
			return nil, err
		}
		return QueriesFromRows(rows), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "queryio: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	switch format {
	case FormatCSV:
		return ReadCSV(ctx, f)
	case FormatJSON:
		return ReadJSON(ctx, f)
	default:
		return ReadYAML(f)
	}
}

// column indexes of the query fields in a tabular file; -1 when absent.
type columns struct {
	name, company, jobTitle, keywords int
}

var positional = columns{name: 0, company: 1, jobTitle: 2, keywords: 3}

var headerAliases = map[string]string{
	"name":      "name",
	"full_name": "name",
	"person":    "name",
	"company":   "company",
	"employer":  "company",
	"job_title": "job_title",
	"title":     "job_title",
	"role":      "job_title",
	"keywords":  "keywords",
	"keyword":   "keywords",
}

// headerColumns maps a header row to column indexes. ok is false when the
// row has no recognizable name column, meaning it is data, not a header.
func headerColumns(row []string) (columns, bool) {
	c := columns{name: -1, company: -1, jobTitle: -1, keywords: -1}
	for i, cell := range row {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cell)), " ", "_")
		switch headerAliases[key] {
		case "name":
			c.name = i
		case "company":
			c.company = i
		case "job_title":
			c.jobTitle = i
		case "keywords":
			c.keywords = i
		}
	}
	return c, c.name >= 0
}

func (c columns) query(row []string) model.Query {
	return model.Query{
		Name:     cell(row, c.name),
		Company:  cell(row, c.company),
		JobTitle: cell(row, c.jobTitle),
		Keywords: splitKeywords(cell(row, c.keywords)),
	}
}

// QueriesFromRows converts tabular rows into queries. A first row naming a
// name column is a header; otherwise columns are name, company, job title,
// keywords. Rows with every cell blank are skipped.
func QueriesFromRows(rows [][]string) []model.Query {
	if len(rows) == 0 {
		return nil
	}

	cols := positional
	if hc, ok := headerColumns(rows[0]); ok {
		cols = hc
		rows = rows[1:]
	}

	out := make([]model.Query, 0, len(rows))
	for _, row := range rows {
		if blank(row) {
			continue
		}
		out = append(out, cols.query(row))
	}
	return out
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// splitKeywords splits on semicolons or pipes.
func splitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' })
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
