package importer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/oxydek/fin-stat/internal/models"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var sber = mustTemplate("sberbank")

func mustTemplate(id string) Template {
	t, ok := TemplateByID(id)
	if !ok {
		panic("unknown template " + id)
	}
	return t
}

func row(date, desc, amount string) map[string]string {
	return map[string]string{
		sber.DateColumn:        date,
		sber.DescriptionColumn: desc,
		sber.AmountColumn:      amount,
	}
}

func TestParseCommaDecimalAmount(t *testing.T) {
	out, err := Parse([]map[string]string{
		row("01.02.2025", "Зарплата", "1 234,56"),
	}, sber)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}
	got := out[0]
	if !got.Amount.Equal(dec("1234.56")) {
		t.Errorf("expected amount 1234.56, got %s", got.Amount)
	}
	if got.Type != models.TxIncome {
		t.Errorf("positive amount must be income, got %s", got.Type)
	}
	if got.Date != time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("unexpected date %s", got.Date)
	}
}

func TestParseNegativeAmountIsExpense(t *testing.T) {
	out, err := Parse([]map[string]string{
		row("01.02.2025", "Кафе", "-540,00"),
	}, sber)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := out[0]
	if got.Type != models.TxExpense {
		t.Errorf("negative amount must be expense, got %s", got.Type)
	}
	if !got.Amount.Equal(dec("540")) {
		t.Errorf("amount must be normalized absolute, got %s", got.Amount)
	}
}

func TestParseDateFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"dotted", "15.07.2025", time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)},
		{"iso", "2025-07-15", time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)},
		{"slashed", "15/07/2025", time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Parse([]map[string]string{row(tt.in, "x", "10,00")}, sber)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if out[0].Date != tt.want {
				t.Fatalf("got %s, want %s", out[0].Date, tt.want)
			}
		})
	}
}

func TestParseZeroAmountRowsDropped(t *testing.T) {
	out, err := Parse([]map[string]string{
		row("01.02.2025", "Пусто", "0,00"),
		row("02.02.2025", "Реальная", "100,00"),
	}, sber)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(out) != 1 || out[0].Description != "Реальная" {
		t.Fatalf("zero rows must be silently dropped, got %d rows", len(out))
	}
}

func TestParseAbortsOnFirstBadRow(t *testing.T) {
	_, err := Parse([]map[string]string{
		row("01.02.2025", "Ок", "10,00"),
		row("не дата", "Плохая", "20,00"),
		row("03.02.2025", "Не дойдет", "30,00"),
	}, sber)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Row != 2 {
		t.Fatalf("expected row 2, got %d", perr.Row)
	}
}

func TestParseMissingFields(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]string
	}{
		{"no date", row("", "x", "10,00")},
		{"no amount", row("01.02.2025", "x", "")},
		{"bad amount", row("01.02.2025", "x", "abc")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]map[string]string{tt.in}, sber)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if perr.Row != 1 {
				t.Fatalf("expected row 1, got %d", perr.Row)
			}
		})
	}
}

func TestParseDefaultsDescription(t *testing.T) {
	out, err := Parse([]map[string]string{
		row("01.02.2025", "", "10,00"),
	}, sber)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if out[0].Description != "Операция 1" {
		t.Fatalf("expected generated description, got %q", out[0].Description)
	}
}

func TestParseAmountConventions(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1 234,56", "1234.56"},
		{"1234.56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"-1 000,00", "-1000"},
		{"500 ₽", "500"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseAmount(tt.in)
			if !ok {
				t.Fatalf("parseAmount(%q) failed", tt.in)
			}
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("parseAmount(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestReadCSVSniffsSemicolon(t *testing.T) {
	csvData := "Дата операции;Описание операции;Сумма операции\n" +
		"01.02.2025;Зарплата;50 000,00\n" +
		"02.02.2025;Кафе;-540,50\n"

	rows, err := ReadCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	out, err := Parse(rows, sber)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !out[0].Amount.Equal(dec("50000")) || out[0].Type != models.TxIncome {
		t.Fatalf("unexpected first row: %+v", out[0])
	}
	if !out[1].Amount.Equal(dec("540.5")) || out[1].Type != models.TxExpense {
		t.Fatalf("unexpected second row: %+v", out[1])
	}
}

func TestReadCSVCommaDelimited(t *testing.T) {
	csvData := "Дата,Описание операции,Сумма\n" +
		"2025-02-01,Перевод,250.75\n"

	rows, err := ReadCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	alfa := mustTemplate("alfabank")
	out, err := Parse(rows, alfa)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !out[0].Amount.Equal(dec("250.75")) {
		t.Fatalf("unexpected amount %s", out[0].Amount)
	}
}

func TestReadFileRejectsUnknownExtension(t *testing.T) {
	if _, err := ReadFile("statement.pdf", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
