package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/pkg/dataforseo"
)

// fakeFetcher records every task and answers with canned responses. The
// optional function fields override the default all-success answers.
type fakeFetcher struct {
	searchTasks []dataforseo.SearchVolumeTask
	clickTasks  []dataforseo.ClickstreamTask

	searchVolume func(call int, task dataforseo.SearchVolumeTask) (*dataforseo.Response, error)
	clickstream  func(call int, task dataforseo.ClickstreamTask) (*dataforseo.Response, error)
}

func (f *fakeFetcher) SearchVolume(_ context.Context, task dataforseo.SearchVolumeTask) (*dataforseo.Response, error) {
	call := len(f.searchTasks)
	f.searchTasks = append(f.searchTasks, task)
	if f.searchVolume == nil {
		return volumeResponse(task.Keywords), nil
	}
	return f.searchVolume(call, task)
}

func (f *fakeFetcher) ClickstreamVolume(_ context.Context, task dataforseo.ClickstreamTask) (*dataforseo.Response, error) {
	call := len(f.clickTasks)
	f.clickTasks = append(f.clickTasks, task)
	if f.clickstream == nil {
		return clickstreamResponse(task.Keywords), nil
	}
	return f.clickstream(call, task)
}

func volumeResponse(kws []string) *dataforseo.Response {
	task := dataforseo.Task{StatusCode: 20000, StatusMessage: "Ok."}
	for _, kw := range kws {
		volume := 100
		task.Result = append(task.Result, dataforseo.ResultItem{Keyword: kw, SearchVolume: &volume, Competition: "LOW"})
	}
	return &dataforseo.Response{StatusCode: 20000, StatusMessage: "Ok.", Tasks: []dataforseo.Task{task}}
}

func clickstreamResponse(kws []string) *dataforseo.Response {
	task := dataforseo.Task{StatusCode: 20000, StatusMessage: "Ok."}
	for _, kw := range kws {
		volume := 1000
		task.Result = append(task.Result, dataforseo.ResultItem{
			Keyword:      kw,
			SearchVolume: &volume,
			Countries:    []dataforseo.Country{{LocationCode: 2840, SearchVolume: 400}},
		})
	}
	return &dataforseo.Response{StatusCode: 20000, StatusMessage: "Ok.", Tasks: []dataforseo.Task{task}}
}

func TestRunBatchesSequentially(t *testing.T) {
	var raw []string
	for i := 0; i < 2500; i++ {
		raw = append(raw, fmt.Sprintf("keyword %d", i))
	}
	fetcher := &fakeFetcher{}

	result, err := Run(context.Background(), Config{Fetcher: fetcher}, raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(fetcher.searchTasks) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(fetcher.searchTasks))
	}
	wantSizes := []int{1000, 1000, 500}
	for i, task := range fetcher.searchTasks {
		if len(task.Keywords) != wantSizes[i] {
			t.Fatalf("batch %d: expected %d keywords, got %d", i, wantSizes[i], len(task.Keywords))
		}
		if task.LocationCode != 2840 || task.LanguageCode != "en" {
			t.Fatalf("batch %d: expected default location and language, got %+v", i, task)
		}
	}

	if result.Batches != 3 {
		t.Fatalf("expected 3 batches recorded, got %d", result.Batches)
	}
	if len(result.Rows) != 2500 {
		t.Fatalf("expected 2500 rows, got %d", len(result.Rows))
	}
	if result.Rows[0].Original != "keyword 0" || result.Rows[2499].Original != "keyword 2499" {
		t.Fatalf("rows out of order: first %q last %q", result.Rows[0].Original, result.Rows[2499].Original)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", result.Warnings)
	}
}

func TestRunTaskFailureBecomesWarning(t *testing.T) {
	fetcher := &fakeFetcher{
		searchVolume: func(int, dataforseo.SearchVolumeTask) (*dataforseo.Response, error) {
			return &dataforseo.Response{
				StatusCode: 20000,
				Tasks:      []dataforseo.Task{{StatusCode: 40400, StatusMessage: "Not Found."}},
			}, nil
		},
	}

	result, err := Run(context.Background(), Config{Fetcher: fetcher}, []string{"best vpn"})
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "40400") || !strings.Contains(result.Warnings[0], "Not Found.") {
		t.Fatalf("warning should carry the task status, got %q", result.Warnings[0])
	}
}

func TestRunTransportFailureSkipsBatch(t *testing.T) {
	var raw []string
	for i := 0; i < 1500; i++ {
		raw = append(raw, fmt.Sprintf("keyword %d", i))
	}
	fetcher := &fakeFetcher{
		searchVolume: func(call int, task dataforseo.SearchVolumeTask) (*dataforseo.Response, error) {
			if call == 0 {
				return nil, errors.New("API error: HTTP 502: upstream exploded")
			}
			return volumeResponse(task.Keywords), nil
		},
	}

	result, err := Run(context.Background(), Config{Fetcher: fetcher}, raw)
	if err != nil {
		t.Fatalf("expected the run to continue past the failed batch, got %v", err)
	}
	if len(result.Rows) != 500 {
		t.Fatalf("expected 500 rows from the surviving batch, got %d", len(result.Rows))
	}
	if result.Rows[0].Original != "keyword 1000" {
		t.Fatalf("expected rows from the second batch, got %q", result.Rows[0].Original)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "502") {
		t.Fatalf("expected the transport failure reported, got %v", result.Warnings)
	}
}

func TestRunValidationStopsBeforeFetch(t *testing.T) {
	fetcher := &fakeFetcher{}

	result, err := Run(context.Background(), Config{Fetcher: fetcher}, []string{"", "!!!", "??"})
	if err == nil || !strings.Contains(err.Error(), "no valid keywords") {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if len(result.Report.Skipped) != 3 {
		t.Fatalf("expected 3 skipped keywords, got %+v", result.Report.Skipped)
	}
	if len(fetcher.searchTasks) != 0 {
		t.Fatalf("the API should not be called without valid keywords")
	}
}

func TestRunBatchSizeCap(t *testing.T) {
	_, err := Run(context.Background(), Config{Fetcher: &fakeFetcher{}, BatchSize: 1001}, []string{"best vpn"})
	if err == nil || !strings.Contains(err.Error(), "exceeds the API limit") {
		t.Fatalf("expected the batch size cap enforced, got %v", err)
	}
}

func TestRunClickstream(t *testing.T) {
	fetcher := &fakeFetcher{}

	result, err := Run(context.Background(), Config{Fetcher: fetcher, Endpoint: EndpointClickstream}, []string{"best vpn"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(fetcher.clickTasks) != 1 || len(fetcher.searchTasks) != 0 {
		t.Fatalf("expected a single clickstream call, got %d clickstream and %d search volume", len(fetcher.clickTasks), len(fetcher.searchTasks))
	}
	row := result.Rows[0]
	if row.Metrics.GlobalSearchVolume != 1000 || row.Metrics.USSearchVolume != 400 {
		t.Fatalf("unexpected volumes: %+v", row.Metrics)
	}
}

func TestRunClickstreamWithCompetition(t *testing.T) {
	fetcher := &fakeFetcher{
		searchVolume: func(_ int, task dataforseo.SearchVolumeTask) (*dataforseo.Response, error) {
			volume := 100
			return &dataforseo.Response{
				StatusCode: 20000,
				Tasks: []dataforseo.Task{{
					StatusCode: 20000,
					Result: []dataforseo.ResultItem{
						{Keyword: "best vpn", SearchVolume: &volume, Competition: "HIGH"},
					},
				}},
			}, nil
		},
	}

	cfg := Config{Fetcher: fetcher, Endpoint: EndpointClickstream, WithCompetition: true}
	result, err := Run(context.Background(), cfg, []string{"best vpn", "cheap flights"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(fetcher.clickTasks) != 1 || len(fetcher.searchTasks) != 1 {
		t.Fatalf("expected both endpoints queried once, got %d and %d", len(fetcher.clickTasks), len(fetcher.searchTasks))
	}

	competition := map[string]string{}
	for _, row := range result.Rows {
		competition[row.Keyword] = row.Metrics.Competition
	}
	if competition["best vpn"] != "HIGH" || competition["cheap flights"] != "N/A" {
		t.Fatalf("unexpected competition merge: %v", competition)
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetcher := &fakeFetcher{}

	_, err := Run(ctx, Config{Fetcher: fetcher}, []string{"best vpn"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(fetcher.searchTasks) != 0 {
		t.Fatalf("the API should not be called after cancellation")
	}
}

func TestRunDedupe(t *testing.T) {
	fetcher := &fakeFetcher{}

	result, err := Run(context.Background(), Config{Fetcher: fetcher, Dedupe: true}, []string{"Car Insurance", "car insurance"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(fetcher.searchTasks) != 1 || len(fetcher.searchTasks[0].Keywords) != 1 {
		t.Fatalf("expected the duplicate dropped before the API call, got %+v", fetcher.searchTasks)
	}
	if len(result.Report.Duplicates) != 1 || len(result.Rows) != 1 {
		t.Fatalf("expected 1 duplicate and 1 row, got %d and %d", len(result.Report.Duplicates), len(result.Rows))
	}
}
