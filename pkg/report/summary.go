package report

import (
	"sort"
	"strconv"
	"strings"
)

// PageStat aggregates report rows sharing the same page: volume, clicks and
// impressions are summed, position is averaged, CTR is clicks over
// impressions as a percentage.
type PageStat struct {
	Page         string
	SearchVolume int
	Clicks       int
	Impressions  int
	CTR          float64
	Position     float64
}

// SummarizePages groups rows by their page column and aggregates them,
// sorted by total search volume, highest first. Rows without a page value
// are left out.
func SummarizePages(rows []Row, auxColumns []string) []PageStat {
	pageIdx, clicksIdx, imprIdx, posIdx := -1, -1, -1, -1
	for i, col := range auxColumns {
		switch {
		case strings.EqualFold(col, "page"):
			pageIdx = i
		case strings.EqualFold(col, "clicks"):
			clicksIdx = i
		case strings.EqualFold(col, "impressions"):
			imprIdx = i
		case strings.EqualFold(col, "position"):
			posIdx = i
		}
	}
	if pageIdx < 0 {
		return nil
	}

	type acc struct {
		stat     PageStat
		posSum   float64
		posCount int
	}
	byPage := make(map[string]*acc)
	var order []string

	for _, r := range rows {
		page := auxCell(r.Aux, pageIdx)
		if page == "" {
			continue
		}
		a, ok := byPage[page]
		if !ok {
			a = &acc{stat: PageStat{Page: page}}
			byPage[page] = a
			order = append(order, page)
		}
		a.stat.SearchVolume += r.Metrics.SearchVolume
		a.stat.Clicks += atoiSafe(auxCell(r.Aux, clicksIdx))
		a.stat.Impressions += atoiSafe(auxCell(r.Aux, imprIdx))
		if pos, err := strconv.ParseFloat(auxCell(r.Aux, posIdx), 64); err == nil {
			a.posSum += pos
			a.posCount++
		}
	}

	stats := make([]PageStat, 0, len(order))
	for _, page := range order {
		a := byPage[page]
		if a.stat.Impressions > 0 {
			a.stat.CTR = float64(a.stat.Clicks) / float64(a.stat.Impressions) * 100
		}
		if a.posCount > 0 {
			a.stat.Position = a.posSum / float64(a.posCount)
		}
		stats = append(stats, a.stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].SearchVolume != stats[j].SearchVolume {
			return stats[i].SearchVolume > stats[j].SearchVolume
		}
		return stats[i].Page < stats[j].Page
	})
	return stats
}

// PagesSummaryTable serializes page aggregates for the writers.
func PagesSummaryTable(stats []PageStat) Table {
	t := Table{Header: []string{"Page", "Search Volume", "Clicks", "Impressions", "CTR", "Position"}}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{
			s.Page,
			strconv.Itoa(s.SearchVolume),
			strconv.Itoa(s.Clicks),
			strconv.Itoa(s.Impressions),
			strconv.FormatFloat(s.CTR, 'f', 2, 64),
			strconv.FormatFloat(s.Position, 'f', 2, 64),
		})
	}
	return t
}

// Stats are the headline numbers printed after a run.
type Stats struct {
	Keywords    int
	TotalVolume int
	AvgVolume   float64
	AvgCPC      float64
}

// ComputeStats totals the report. The two endpoints populate disjoint volume
// fields, so summing whichever is set works for both.
func ComputeStats(rows []Row) Stats {
	s := Stats{Keywords: len(rows)}
	var cpcSum float64
	for _, r := range rows {
		vol := r.Metrics.SearchVolume
		if vol == 0 {
			vol = r.Metrics.GlobalSearchVolume
		}
		s.TotalVolume += vol
		cpcSum += r.Metrics.CPC
	}
	if s.Keywords > 0 {
		s.AvgVolume = float64(s.TotalVolume) / float64(s.Keywords)
		s.AvgCPC = cpcSum / float64(s.Keywords)
	}
	return s
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
