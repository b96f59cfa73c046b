package queryio

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/profile-finder/internal/model"
)

// Row pairs an input query with its result.
type Row struct {
	Query  model.Query        `json:"query"`
	Result model.SearchResult `json:"result"`
}

// Pair zips queries and results. Both slices must have the same length.
func Pair(queries []model.Query, results []model.SearchResult) []Row {
	rows := make([]Row, len(results))
	for i := range results {
		rows[i] = Row{Query: queries[i], Result: results[i]}
	}
	return rows
}

var csvHeader = []string{
	"name", "company", "job_title", "keywords",
	"success", "profile_url", "title", "description",
	"job_title_extracted", "company_extracted", "name_extracted",
	"location", "connections", "query_used", "strategy_index", "error",
}

// WriteResults encodes rows as JSON or CSV.
func WriteResults(w io.Writer, format Format, rows []Row) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if rows == nil {
			rows = []Row{}
		}
		return eris.Wrap(enc.Encode(rows), "queryio: encode json")
	case FormatCSV:
		return writeCSV(w, rows)
	default:
		return eris.Errorf("queryio: unsupported output format %q", format)
	}
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return eris.Wrap(err, "queryio: write csv header")
	}
	for _, row := range rows {
		q, r := row.Query, row.Result
		strategy := ""
		if r.StrategyIndex > 0 {
			strategy = strconv.Itoa(r.StrategyIndex)
		}
		record := []string{
			q.Name, q.Company, q.JobTitle, strings.Join(q.Keywords, ";"),
			strconv.FormatBool(r.Success), r.ProfileURL, r.Title, r.Description,
			r.JobTitleExtracted, r.CompanyExtracted, r.NameExtracted,
			r.Location, r.Connections, r.QueryUsed, strategy, string(r.Error),
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrap(err, "queryio: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "queryio: flush csv")
}
