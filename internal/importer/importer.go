package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oxydek/fin-stat/internal/models"
	"github.com/shopspring/decimal"
)

// Template maps a bank's statement column names onto the fields we need.
type Template struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	DateColumn        string `json:"dateColumn"`
	DescriptionColumn string `json:"descriptionColumn"`
	AmountColumn      string `json:"amountColumn"`
}

// BankTemplates are the built-in statement layouts. A custom template with
// explicit column names can be supplied instead.
var BankTemplates = []Template{
	{ID: "sberbank", Name: "Сбербанк", DateColumn: "Дата операции", DescriptionColumn: "Описание операции", AmountColumn: "Сумма операции"},
	{ID: "tinkoff", Name: "Тинькофф", DateColumn: "Дата платежа", DescriptionColumn: "Описание", AmountColumn: "Сумма платежа"},
	{ID: "alfabank", Name: "Альфа-Банк", DateColumn: "Дата", DescriptionColumn: "Описание операции", AmountColumn: "Сумма"},
}

func TemplateByID(id string) (Template, bool) {
	for _, t := range BankTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// ParsedTransaction is one normalized statement row. Amount is always the
// absolute value; the sign goes into Type.
type ParsedTransaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
}

// ParseError identifies the first statement row that failed to parse. The whole
// batch is rejected; there is no partial-import mode.
type ParseError struct {
	Row int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("строка %d: %s", e.Row, e.Msg)
}

var (
	dateDotted  = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{4})`)
	dateISO     = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	dateSlashed = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)
	amountJunk  = regexp.MustCompile(`[^\d,.\-]`)
)

// Parse converts raw header-keyed rows into normalized transactions using the
// template's column mapping. Rows that net to zero are silently dropped; the
// first malformed row aborts with a ParseError carrying its 1-based index.
func Parse(rows []map[string]string, tpl Template) ([]ParsedTransaction, error) {
	out := make([]ParsedTransaction, 0, len(rows))
	for i, row := range rows {
		n := i + 1
		dateStr := row[tpl.DateColumn]
		amountStr := row[tpl.AmountColumn]
		if dateStr == "" || amountStr == "" {
			return nil, &ParseError{Row: n, Msg: "отсутствуют обязательные поля"}
		}
		description := row[tpl.DescriptionColumn]
		if description == "" {
			description = fmt.Sprintf("Операция %d", n)
		}

		date, ok := parseDate(dateStr)
		if !ok {
			return nil, &ParseError{Row: n, Msg: "неверный формат даты"}
		}
		amount, ok := parseAmount(amountStr)
		if !ok {
			return nil, &ParseError{Row: n, Msg: "неверный формат суммы"}
		}
		if amount.IsZero() {
			continue
		}

		txType := models.TxIncome
		if amount.IsNegative() {
			txType = models.TxExpense
		}
		out = append(out, ParsedTransaction{
			Date:        date,
			Description: description,
			Amount:      amount.Abs(),
			Type:        txType,
		})
	}
	return out, nil
}

func parseDate(s string) (time.Time, bool) {
	if m := dateDotted.FindStringSubmatch(s); m != nil {
		return civilDate(m[3], m[2], m[1])
	}
	if m := dateISO.FindStringSubmatch(s); m != nil {
		return civilDate(m[1], m[2], m[3])
	}
	if m := dateSlashed.FindStringSubmatch(s); m != nil {
		return civilDate(m[3], m[2], m[1])
	}
	return time.Time{}, false
}

func civilDate(y, m, d string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", fmt.Sprintf("%s-%s-%s", y, m, d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseAmount follows the comma-decimal bank convention: everything except
// digits, separators and the minus sign is stripped ("1 234,56" → 1234.56).
func parseAmount(s string) (decimal.Decimal, bool) {
	clean := amountJunk.ReplaceAllString(s, "")
	if strings.Contains(clean, ".") {
		// the source already used dot decimals; commas are thousands separators
		clean = strings.ReplaceAll(clean, ",", "")
	} else {
		clean = strings.ReplaceAll(clean, ",", ".")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
