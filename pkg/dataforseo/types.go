package dataforseo

// SearchVolumeTask is the request payload for the Google Ads search volume
// endpoint. The API expects an array with a single task object.
type SearchVolumeTask struct {
	LocationCode int      `json:"location_code"`
	LanguageCode string   `json:"language_code"`
	Keywords     []string `json:"keywords"`
}

// ClickstreamTask is the request payload for the clickstream global search
// volume endpoint.
type ClickstreamTask struct {
	Keywords []string `json:"keywords"`
}

// Response is the common envelope returned by both endpoints.
type Response struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Tasks         []Task `json:"tasks"`
}

// Task carries its own status, independent of sibling tasks in the same
// response.
type Task struct {
	StatusCode    int          `json:"status_code"`
	StatusMessage string       `json:"status_message"`
	Result        []ResultItem `json:"result"`
}

// ResultItem is one keyword's raw metrics. Optional fields are pointers so
// that absent values can be defaulted explicitly instead of silently reading
// zero. The ads endpoint fills the competition/bid fields, the clickstream
// endpoint fills Countries.
type ResultItem struct {
	Keyword                string          `json:"keyword"`
	SearchVolume           *int            `json:"search_volume"`
	Competition            string          `json:"competition"`
	CompetitionIndex       *int            `json:"competition_index"`
	CPC                    *float64        `json:"cpc"`
	LowTopOfPageBidMicros  *float64        `json:"low_top_of_page_bid_micros"`
	HighTopOfPageBidMicros *float64        `json:"high_top_of_page_bid_micros"`
	MonthlySearches        []MonthlySearch `json:"monthly_searches"`
	Countries              []Country       `json:"countries"`
}

// MonthlySearch is one month of search volume history.
type MonthlySearch struct {
	Year         int `json:"year"`
	Month        int `json:"month"`
	SearchVolume int `json:"search_volume"`
}

// Country is one entry of a per-country volume breakdown.
type Country struct {
	LocationCode int `json:"location_code"`
	SearchVolume int `json:"search_volume"`
}

// Metrics is the flat per-keyword record handed to the report layer. Which
// fields are populated depends on the endpoint that produced it.
type Metrics struct {
	Keyword             string
	SearchVolume        int
	GlobalSearchVolume  int
	USSearchVolume      int
	Competition         string
	CompetitionIndex    int
	CPC                 float64
	LowTopOfPageBid     float64
	HighTopOfPageBid    float64
	MonthlySearchesJSON string
}
