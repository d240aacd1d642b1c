package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/dataforseo"
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/keywords"
	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/report"
)

// Endpoint selects which live endpoint a run queries.
type Endpoint int

const (
	EndpointSearchVolume Endpoint = iota
	EndpointClickstream
)

// Fetcher is the slice of the API client the pipeline calls.
type Fetcher interface {
	SearchVolume(ctx context.Context, task dataforseo.SearchVolumeTask) (*dataforseo.Response, error)
	ClickstreamVolume(ctx context.Context, task dataforseo.ClickstreamTask) (*dataforseo.Response, error)
}

// Logger abstracts logging so callers can use logrus, stdlib log, or any
// other logger that satisfies this interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// nopLogger silently discards all messages.
type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}

// Config holds everything Run needs for a single research run.
type Config struct {
	Endpoint Endpoint
	Fetcher  Fetcher

	BatchSize    int           // defaults to dataforseo.DefaultBatchSize if <= 0
	MaxWords     int           // defaults to keywords.DefaultMaxWords if <= 0
	Dedupe       bool          // drop case-insensitive duplicates after cleaning
	LocationCode int           // defaults to dataforseo.DefaultLocationCode if 0
	LanguageCode string        // defaults to dataforseo.DefaultLanguageCode if empty
	BatchDelay   time.Duration // pause between consecutive batches

	// WithCompetition additionally queries the Google Ads endpoint on
	// clickstream runs and merges the competition tier into the rows.
	WithCompetition bool

	Log Logger // optional; nil = no logging
}

// Result holds the outcome of a research run.
type Result struct {
	Report   keywords.Report // validation outcome for every submitted keyword
	Rows     []report.Row
	Warnings []string
	Batches  int
}

// ErrNoResults is returned when every batch came back empty.
var ErrNoResults = errors.New("no results returned from the API")

// Run validates keywords, batches them and queries the API one batch at a
// time, then joins the returned metrics back onto the original spellings.
// A failed batch is logged and skipped, never retried. Once validation has
// run, the result is returned even on error so callers can still report
// what was rejected.
func Run(ctx context.Context, cfg Config, raw []string) (*Result, error) {
	log := cfg.Log
	if log == nil {
		log = nopLogger{}
	}
	if cfg.Fetcher == nil {
		return nil, errors.New("no API client configured")
	}
	if cfg.BatchSize > dataforseo.MaxKeywordsPerRequest {
		return nil, fmt.Errorf("batch size %d exceeds the API limit of %d keywords per request", cfg.BatchSize, dataforseo.MaxKeywordsPerRequest)
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = dataforseo.DefaultBatchSize
	}
	locationCode := cfg.LocationCode
	if locationCode == 0 {
		locationCode = dataforseo.DefaultLocationCode
	}
	languageCode := cfg.LanguageCode
	if languageCode == "" {
		languageCode = dataforseo.DefaultLanguageCode
	}

	validated := keywords.Normalize(raw, cfg.MaxWords, cfg.Dedupe)
	result := &Result{Report: validated}
	if len(validated.Accepted) == 0 {
		return result, errors.New("no valid keywords to process")
	}

	batches := keywords.PlanBatches(validated.Cleaned(), batchSize)
	result.Batches = len(batches)
	log.Infof("Processing %d keywords in %d batches", len(validated.Accepted), len(batches))

	var metricBatches [][]dataforseo.Metrics
	var competition []dataforseo.Metrics
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		log.Infof("Fetching batch %d/%d (%d keywords)", i+1, len(batches), len(batch))

		metrics, comp, warnings := fetchBatch(ctx, cfg, locationCode, languageCode, batch)
		for _, w := range warnings {
			log.Warnf("Batch %d/%d: %s", i+1, len(batches), w)
			result.Warnings = append(result.Warnings, w)
		}
		metricBatches = append(metricBatches, metrics)
		competition = append(competition, comp...)

		if cfg.BatchDelay > 0 && i < len(batches)-1 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(cfg.BatchDelay):
			}
		}
	}

	rows := report.Assemble(validated.Accepted, metricBatches)
	if len(rows) == 0 {
		return result, ErrNoResults
	}
	if cfg.Endpoint == EndpointClickstream && cfg.WithCompetition {
		report.MergeCompetition(rows, competition)
	}
	result.Rows = rows
	return result, nil
}

// fetchBatch queries one batch and maps the response. A transport or API
// error turns into a warning and an empty batch.
func fetchBatch(ctx context.Context, cfg Config, locationCode int, languageCode string, batch []string) ([]dataforseo.Metrics, []dataforseo.Metrics, []string) {
	if cfg.Endpoint == EndpointClickstream {
		resp, err := cfg.Fetcher.ClickstreamVolume(ctx, dataforseo.ClickstreamTask{Keywords: batch})
		if err != nil {
			return nil, nil, []string{err.Error()}
		}
		// Clickstream country breakdowns key the US column on its fixed
		// location code, independent of the configured location.
		metrics, warnings := dataforseo.MapClickstream(resp, dataforseo.DefaultLocationCode)

		if !cfg.WithCompetition {
			return metrics, nil, warnings
		}
		compResp, err := cfg.Fetcher.SearchVolume(ctx, dataforseo.SearchVolumeTask{
			LocationCode: locationCode,
			LanguageCode: languageCode,
			Keywords:     batch,
		})
		if err != nil {
			return metrics, nil, append(warnings, err.Error())
		}
		comp, compWarnings := dataforseo.MapSearchVolume(compResp)
		return metrics, comp, append(warnings, compWarnings...)
	}

	resp, err := cfg.Fetcher.SearchVolume(ctx, dataforseo.SearchVolumeTask{
		LocationCode: locationCode,
		LanguageCode: languageCode,
		Keywords:     batch,
	})
	if err != nil {
		return nil, nil, []string{err.Error()}
	}
	metrics, warnings := dataforseo.MapSearchVolume(resp)
	return metrics, nil, warnings
}
