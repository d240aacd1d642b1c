package report

import (
	"strings"

	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/dataforseo"
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/input"
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/keywords"
)

// Row is one line of the final report. Keyword is the string the API
// returned; Original is the user's spelling, restored by matching the
// cleaned keyword exactly. Rows whose keyword no accepted record cleans to
// stay in the report with Resolved false and render an empty keyword cell.
type Row struct {
	Keyword  string
	Original string
	Resolved bool
	Metrics  dataforseo.Metrics
	Aux      []string
}

// Assemble concatenates per-batch metrics in batch order and joins each row
// back to the original keyword spelling. Every metrics row is kept.
func Assemble(accepted []keywords.Accepted, batches [][]dataforseo.Metrics) []Row {
	originals := make(map[string]string, len(accepted))
	for _, a := range accepted {
		originals[a.Cleaned] = a.Original
	}

	var rows []Row
	for _, batch := range batches {
		for _, m := range batch {
			row := Row{Keyword: m.Keyword, Metrics: m}
			if original, ok := originals[m.Keyword]; ok {
				row.Original = original
				row.Resolved = true
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// MergeCompetition overwrites each row's competition tier from a secondary
// metrics source, matching keywords case-insensitively. Keywords missing
// from the source get "N/A".
func MergeCompetition(rows []Row, source []dataforseo.Metrics) {
	competition := make(map[string]string, len(source))
	for _, m := range source {
		competition[strings.ToLower(m.Keyword)] = m.Competition
	}

	for i := range rows {
		tier, ok := competition[strings.ToLower(rows[i].Keyword)]
		if !ok || tier == "" {
			tier = "N/A"
		}
		rows[i].Metrics.Competition = tier
	}
}

// JoinAux attaches the dataset's auxiliary columns to each resolved row,
// matching the original keyword exactly.
func JoinAux(rows []Row, ds *input.Dataset) {
	if ds == nil || len(ds.AuxColumns) == 0 {
		return
	}
	for i := range rows {
		if !rows[i].Resolved {
			continue
		}
		if aux, ok := ds.AuxRows[rows[i].Original]; ok {
			rows[i].Aux = aux
		}
	}
}
