package handlers

import (
	"net/http"

	"github.com/oxydek/fin-stat/internal/apperr"
	"github.com/oxydek/fin-stat/internal/httputil"
	"github.com/oxydek/fin-stat/internal/importer"
	"github.com/oxydek/fin-stat/internal/ledger"
)

const maxImportSize = 16 << 20

// ImportStatement accepts a multipart statement file plus a bank template and
// records every parsed row as a transaction on the target account. The batch is
// all-or-nothing: the first bad row rejects the whole file.
func (h *Handlers) ImportStatement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		httputil.WriteErr(w, apperr.Validation("invalid multipart form"))
		return
	}
	accountID := r.FormValue("accountId")
	if accountID == "" {
		httputil.WriteErr(w, apperr.Validation("accountId is required"))
		return
	}

	tpl, ok := importer.TemplateByID(r.FormValue("bank"))
	if !ok {
		tpl = importer.Template{
			ID:                "custom",
			DateColumn:        r.FormValue("dateColumn"),
			DescriptionColumn: r.FormValue("descriptionColumn"),
			AmountColumn:      r.FormValue("amountColumn"),
		}
		if tpl.DateColumn == "" || tpl.AmountColumn == "" {
			httputil.WriteErr(w, apperr.Validation("bank or custom column mapping is required"))
			return
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteErr(w, apperr.Validation("file is required"))
		return
	}
	defer file.Close()

	rows, err := importer.ReadFile(header.Filename, file)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	parsed, err := importer.Parse(rows, tpl)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	imported := 0
	for _, p := range parsed {
		date := p.Date
		_, err := h.Ledger.RecordTransaction(ledger.RecordTransactionInput{
			AccountID:   accountID,
			Amount:      p.Amount,
			Type:        p.Type,
			Description: p.Description,
			Date:        &date,
		})
		if err != nil {
			httputil.WriteErr(w, err)
			return
		}
		imported++
	}
	httputil.WriteData(w, map[string]int{"imported": imported})
}

// ImportTemplates lists the built-in bank statement layouts.
func (h *Handlers) ImportTemplates(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, importer.BankTemplates)
}
