package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/oxydek/fin-stat/internal/apperr"
	"github.com/xuri/excelize/v2"
)

// ReadCSV reads a header-first CSV statement into header-keyed rows. Russian
// bank exports use ';' as often as ','; the delimiter is sniffed from the
// header line.
func ReadCSV(r io.Reader) ([]map[string]string, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, apperr.Validation("не удалось прочитать CSV файл")
	}
	line, _, _ := bytes.Cut(head, []byte("\n"))

	cr := csv.NewReader(br)
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		cr.Comma = ';'
	}
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, apperr.Validation("не удалось разобрать CSV файл: %v", err)
	}
	return keyRows(records), nil
}

// ReadXLSX reads the first sheet of an Excel statement into header-keyed rows.
func ReadXLSX(r io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Validation("не удалось открыть Excel файл: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.Validation("в Excel файле нет листов")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.Validation("не удалось разобрать Excel файл: %v", err)
	}
	return keyRows(records), nil
}

// ReadFile routes by filename extension. Only CSV and Excel are supported.
func ReadFile(name string, r io.Reader) ([]map[string]string, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".csv"):
		return ReadCSV(r)
	case strings.HasSuffix(strings.ToLower(name), ".xlsx"),
		strings.HasSuffix(strings.ToLower(name), ".xls"):
		return ReadXLSX(r)
	default:
		return nil, apperr.Validation("поддерживаются только файлы CSV и Excel (.xlsx, .xls)")
	}
}

func keyRows(records [][]string) []map[string]string {
	if len(records) == 0 {
		return nil
	}
	headers := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			h = strings.TrimSpace(h)
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows
}
