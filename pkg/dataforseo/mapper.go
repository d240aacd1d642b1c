package dataforseo

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	statusSuccess = 20000
	// 40501 flags individual keywords the API refuses to process. Those are
	// already covered by the normalizer's rejection records, so the task is
	// dropped without a warning.
	statusKeywordInvalid = 40501
)

// MapSearchVolume flattens a Google Ads search volume response. Failed tasks
// (other than keyword-validation noise) produce warnings instead of metrics.
func MapSearchVolume(resp *Response) ([]Metrics, []string) {
	items, warnings := collectItems(resp)

	metrics := make([]Metrics, 0, len(items))
	for _, item := range items {
		metrics = append(metrics, Metrics{
			Keyword:             item.Keyword,
			SearchVolume:        volumeOf(item),
			Competition:         NormalizeCompetition(item.Competition),
			CompetitionIndex:    intOrZero(item.CompetitionIndex),
			CPC:                 floatOrZero(item.CPC),
			LowTopOfPageBid:     microsToCurrency(item.LowTopOfPageBidMicros),
			HighTopOfPageBid:    microsToCurrency(item.HighTopOfPageBidMicros),
			MonthlySearchesJSON: monthlyJSON(item.MonthlySearches),
		})
	}
	return metrics, warnings
}

// MapClickstream flattens a clickstream global volume response. The country
// volume is taken from the breakdown entry matching locationCode.
func MapClickstream(resp *Response, locationCode int) ([]Metrics, []string) {
	items, warnings := collectItems(resp)

	metrics := make([]Metrics, 0, len(items))
	for _, item := range items {
		metrics = append(metrics, Metrics{
			Keyword:            item.Keyword,
			GlobalSearchVolume: intOrZero(item.SearchVolume),
			USSearchVolume:     VolumeForLocation(item.Countries, locationCode),
		})
	}
	return metrics, warnings
}

func collectItems(resp *Response) ([]ResultItem, []string) {
	if resp == nil {
		return nil, nil
	}

	var items []ResultItem
	var warnings []string
	for _, task := range resp.Tasks {
		switch task.StatusCode {
		case statusSuccess:
			items = append(items, task.Result...)
		case statusKeywordInvalid:
			continue
		default:
			warnings = append(warnings, fmt.Sprintf("task failed with status code %d: %s", task.StatusCode, task.StatusMessage))
		}
	}
	return items, warnings
}

// volumeOf prefers the direct search_volume field and falls back to the most
// recent monthly figure when the API omits it.
func volumeOf(item ResultItem) int {
	if item.SearchVolume != nil {
		return *item.SearchVolume
	}
	return LatestMonthlyVolume(item.MonthlySearches)
}

// LatestMonthlyVolume returns the volume of the entry with the greatest
// (year, month) pair, or 0 for an empty history.
func LatestMonthlyVolume(monthly []MonthlySearch) int {
	best := -1
	for i, m := range monthly {
		if best < 0 || m.Year > monthly[best].Year ||
			(m.Year == monthly[best].Year && m.Month > monthly[best].Month) {
			best = i
		}
	}
	if best < 0 {
		return 0
	}
	return monthly[best].SearchVolume
}

// VolumeForLocation picks the breakdown entry for locationCode, or 0 when
// the location is absent.
func VolumeForLocation(countries []Country, locationCode int) int {
	for _, c := range countries {
		if c.LocationCode == locationCode {
			return c.SearchVolume
		}
	}
	return 0
}

// NormalizeCompetition maps the API's competition tier onto LOW, MEDIUM or
// HIGH; anything else becomes "N/A".
func NormalizeCompetition(competition string) string {
	switch strings.ToUpper(strings.TrimSpace(competition)) {
	case "LOW":
		return "LOW"
	case "MEDIUM":
		return "MEDIUM"
	case "HIGH":
		return "HIGH"
	default:
		return "N/A"
	}
}

func monthlyJSON(monthly []MonthlySearch) string {
	if len(monthly) == 0 {
		return "[]"
	}
	data, err := json.Marshal(monthly)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func microsToCurrency(micros *float64) float64 {
	if micros == nil {
		return 0
	}
	return *micros / 1_000_000
}
