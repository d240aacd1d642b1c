package report

import (
	"strconv"
	"strings"
)

// Table is a serialized report: a header and stringly-typed data rows, ready
// for the CSV and spreadsheet writers.
type Table struct {
	Header []string
	Rows   [][]string
}

// SearchVolumeTable lays out the Google Ads column set.
func SearchVolumeTable(rows []Row) Table {
	t := Table{Header: []string{
		"Keyword", "Search Volume", "Competition", "Competition Index",
		"Low Top of Page Bid", "High Top of Page Bid", "CPC", "Monthly Searches",
	}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			keywordCell(r),
			strconv.Itoa(r.Metrics.SearchVolume),
			r.Metrics.Competition,
			strconv.Itoa(r.Metrics.CompetitionIndex),
			formatMoney(r.Metrics.LowTopOfPageBid),
			formatMoney(r.Metrics.HighTopOfPageBid),
			formatMoney(r.Metrics.CPC),
			r.Metrics.MonthlySearchesJSON,
		})
	}
	return t
}

// ClickstreamTable lays out global and US volume, plus the competition tier
// when a secondary source was merged in.
func ClickstreamTable(rows []Row, withCompetition bool) Table {
	t := Table{Header: []string{"Keyword", "Global Search Volume", "US Search Volume"}}
	if withCompetition {
		t.Header = append(t.Header, "Competition")
	}
	for _, r := range rows {
		cells := []string{
			keywordCell(r),
			strconv.Itoa(r.Metrics.GlobalSearchVolume),
			strconv.Itoa(r.Metrics.USSearchVolume),
		}
		if withCompetition {
			cells = append(cells, r.Metrics.Competition)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// PagesTable lays out rows joined onto an auxiliary dataset: the page column
// first, then query, volume and difficulty, then the remaining auxiliary
// columns in input order.
func PagesTable(rows []Row, auxColumns []string) Table {
	pageIdx := -1
	for i, col := range auxColumns {
		if strings.EqualFold(col, "page") {
			pageIdx = i
			break
		}
	}

	var t Table
	if pageIdx >= 0 {
		t.Header = append(t.Header, auxColumns[pageIdx])
	}
	t.Header = append(t.Header, "query", "volume", "difficulty")
	for i, col := range auxColumns {
		if i != pageIdx {
			t.Header = append(t.Header, col)
		}
	}

	for _, r := range rows {
		var cells []string
		if pageIdx >= 0 {
			cells = append(cells, auxCell(r.Aux, pageIdx))
		}
		cells = append(cells,
			keywordCell(r),
			strconv.Itoa(r.Metrics.SearchVolume),
			strconv.Itoa(r.Metrics.CompetitionIndex),
		)
		for i := range auxColumns {
			if i != pageIdx {
				cells = append(cells, auxCell(r.Aux, i))
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func keywordCell(r Row) string {
	if r.Resolved {
		return r.Original
	}
	return ""
}

func auxCell(aux []string, i int) string {
	if i < 0 || i >= len(aux) {
		return ""
	}
	return aux[i]
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
