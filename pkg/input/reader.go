package input

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// keywordColumnCandidates are the header names tried, in order, when no
// column is picked explicitly.
var keywordColumnCandidates = []string{
	"keyword", "keywords", "query", "queries", "search term", "search terms", "term",
}

// Dataset is a parsed input file: the keyword column plus whatever other
// columns came with it. Auxiliary cells are kept raw and keyed by the
// keyword exactly as it appears in the file; the first occurrence wins.
type Dataset struct {
	Keywords      []string
	KeywordColumn string
	AuxColumns    []string
	AuxRows       map[string][]string
}

// ReadFile loads keywords from a CSV, TSV, XLSX or plain text file. "-"
// reads a plain list from stdin. column selects the keyword column by
// header name or as a 1-based "#N" index; when empty, well-known header
// names are tried and a headerless single-column file is treated as a bare
// list.
func ReadFile(path, column string) (*Dataset, error) {
	if path == "-" {
		return readPlainList(os.Stdin)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".tsv":
		comma := ','
		if ext == ".tsv" {
			comma = '\t'
		}
		rows, err := readDelimited(path, comma)
		if err != nil {
			return nil, err
		}
		return fromRows(rows, column)
	case ".xlsx":
		rows, err := readExcel(path)
		if err != nil {
			return nil, err
		}
		return fromRows(rows, column)
	case ".txt", "":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
		}
		defer f.Close()
		return readPlainList(f)
	default:
		return nil, fmt.Errorf("unsupported file type %q (use csv, tsv, txt or xlsx)", ext)
	}
}

func readDelimited(path string, comma rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

func readPlainList(r io.Reader) (*Dataset, error) {
	ds := &Dataset{AuxRows: map[string][]string{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		if line == "" {
			continue
		}
		ds.Keywords = append(ds.Keywords, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(ds.Keywords) == 0 {
		return nil, errors.New("no keywords found in input")
	}
	return ds, nil
}

func fromRows(rows [][]string, column string) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, errors.New("empty file")
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = cleanCell(cell)
	}

	idx, hasHeader, err := resolveKeywordColumn(header, column)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{AuxRows: map[string][]string{}}
	if hasHeader {
		ds.KeywordColumn = header[idx]
	} else {
		ds.KeywordColumn = fmt.Sprintf("#%d", idx+1)
	}
	for i := range header {
		if i == idx {
			continue
		}
		if hasHeader {
			ds.AuxColumns = append(ds.AuxColumns, header[i])
		} else {
			ds.AuxColumns = append(ds.AuxColumns, fmt.Sprintf("#%d", i+1))
		}
	}

	start := 0
	if hasHeader {
		start = 1
	}
	for r, row := range rows[start:] {
		if idx >= len(row) {
			continue
		}
		kw := row[idx]
		if start == 0 && r == 0 {
			kw = strings.TrimPrefix(kw, "\uFEFF")
		}
		if kw == "" {
			continue
		}
		ds.Keywords = append(ds.Keywords, kw)

		if len(ds.AuxColumns) == 0 {
			continue
		}
		if _, ok := ds.AuxRows[kw]; ok {
			continue
		}
		aux := make([]string, 0, len(ds.AuxColumns))
		for i := range header {
			if i == idx {
				continue
			}
			if i < len(row) {
				aux = append(aux, row[i])
			} else {
				aux = append(aux, "")
			}
		}
		ds.AuxRows[kw] = aux
	}

	if len(ds.Keywords) == 0 {
		return nil, errors.New("no keywords found in input")
	}
	return ds, nil
}

// resolveKeywordColumn returns the keyword column index and whether the
// first row is a header. An explicit "#N" pick means the file has no header
// row.
func resolveKeywordColumn(header []string, explicit string) (int, bool, error) {
	explicit = strings.TrimSpace(explicit)

	if explicit != "" {
		for i, col := range header {
			if strings.EqualFold(col, explicit) {
				return i, true, nil
			}
		}
		if strings.HasPrefix(explicit, "#") {
			n, err := strconv.Atoi(strings.TrimPrefix(explicit, "#"))
			if err != nil || n <= 0 {
				return 0, false, fmt.Errorf("invalid column index %q", explicit)
			}
			if n > len(header) {
				return 0, false, fmt.Errorf("column index %s is out of range", explicit)
			}
			return n - 1, false, nil
		}
		return 0, false, fmt.Errorf("column %q not found; available columns: %s", explicit, strings.Join(header, ", "))
	}

	for i, col := range header {
		for _, cand := range keywordColumnCandidates {
			if strings.EqualFold(col, cand) {
				return i, true, nil
			}
		}
	}

	// A single unrecognized column is a bare keyword list without a header.
	if len(header) == 1 {
		return 0, false, nil
	}

	return 0, false, fmt.Errorf("no keyword column found; available columns: %s", strings.Join(header, ", "))
}

func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\uFEFF")
	return strings.TrimSpace(v)
}
