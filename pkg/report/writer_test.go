package report

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteCSV(t *testing.T) {
	table := Table{
		Header: []string{"Keyword", "Search Volume"},
		Rows:   [][]string{{"best vpn", "1000"}, {"cheap, flights", "500"}},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table, 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := "Keyword,Search Volume\nbest vpn,1000\n\"cheap, flights\",500\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestWriteCSVCustomDelimiter(t *testing.T) {
	table := Table{
		Header: []string{"Keyword", "Search Volume"},
		Rows:   [][]string{{"cheap, flights", "500"}},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table, ';'); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := "Keyword;Search Volume\ncheap, flights;500\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestWriteXLSX(t *testing.T) {
	monthly := `[{"year":2024,"month":1,"search_volume":800},{"year":2024,"month":2,"search_volume":810}]`
	table := Table{
		Header: []string{"Keyword", "Search Volume", "CPC", "Monthly Searches"},
		Rows:   [][]string{{"running shoes", "880", "1.37", monthly}},
	}
	pages := []PageStat{{Page: "/shoes", SearchVolume: 1500, Clicks: 150, Impressions: 2000, CTR: 7.5, Position: 4}}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteXLSX(path, table, pages); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("expected a readable workbook, got %v", err)
	}
	defer f.Close()

	if !reflect.DeepEqual(f.GetSheetList(), []string{"Keywords", "Pages"}) {
		t.Fatalf("unexpected sheets: %v", f.GetSheetList())
	}

	rows, err := f.GetRows("Keywords")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(rows[0], table.Header) {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if !reflect.DeepEqual(rows[1], []string{"running shoes", "880", "1.37", monthly}) {
		t.Fatalf("unexpected data row: %v", rows[1])
	}

	pageRows, err := f.GetRows("Pages")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(pageRows[1], []string{"/shoes", "1500", "150", "2000", "7.5", "4"}) {
		t.Fatalf("unexpected pages row: %v", pageRows[1])
	}

	width, err := f.GetColWidth("Keywords", "A")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if width != 15 {
		t.Fatalf("expected column sized to its longest cell, got %v", width)
	}
	width, err = f.GetColWidth("Keywords", "D")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if width != 50 {
		t.Fatalf("expected column width capped at 50, got %v", width)
	}
}

func TestWriteXLSXWithoutPages(t *testing.T) {
	table := Table{Header: []string{"Keyword"}, Rows: [][]string{{"best vpn"}}}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteXLSX(path, table, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("expected a readable workbook, got %v", err)
	}
	defer f.Close()

	if !reflect.DeepEqual(f.GetSheetList(), []string{"Keywords"}) {
		t.Fatalf("unexpected sheets: %v", f.GetSheetList())
	}
}
