package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oxydek/fin-stat/internal/goals"
	"github.com/oxydek/fin-stat/internal/handlers"
	"github.com/oxydek/fin-stat/internal/interest"
	"github.com/oxydek/fin-stat/internal/ledger"
	"github.com/oxydek/fin-stat/internal/ledger/ledgertest"
	"github.com/oxydek/fin-stat/internal/reminders"
	"github.com/oxydek/fin-stat/internal/routes"
)

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func newTestRouter() (http.Handler, *ledgertest.Store) {
	store := ledgertest.New()
	h := &handlers.Handlers{
		Store:     store,
		Ledger:    ledger.NewService(store),
		Interest:  interest.NewEngine(store),
		Goals:     goals.NewService(store),
		Reminders: reminders.NewService(store),
	}
	return routes.NewRoutes(h), store
}

func doJSON(t *testing.T, router http.Handler, method, path string, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return rec, env
}

func TestCreateAccountHappyPath(t *testing.T) {
	router, store := newTestRouter()

	rec, env := doJSON(t, router, http.MethodPost, "/api/accounts",
		`{"name":"Карта","type":"card","balance":"1000"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !env.OK || env.Error != "" {
		t.Fatalf("expected ok envelope, got %+v", env)
	}
	var got struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if got.Name != "Карта" || got.Currency != "RUB" || got.ID == "" {
		t.Fatalf("unexpected account payload: %+v", got)
	}
	if len(store.Accounts) != 1 {
		t.Fatalf("expected 1 stored account, got %d", len(store.Accounts))
	}
}

func TestCreateAccountValidationIs400(t *testing.T) {
	router, _ := newTestRouter()

	rec, env := doJSON(t, router, http.MethodPost, "/api/accounts", `{"type":"card"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.OK || env.Error == "" {
		t.Fatalf("expected error envelope, got %+v", env)
	}
}

func TestUnknownAccountIs404(t *testing.T) {
	router, _ := newTestRouter()

	rec, env := doJSON(t, router, http.MethodPatch, "/api/accounts/missing", `{"name":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if env.OK || env.Error == "" {
		t.Fatalf("expected error envelope, got %+v", env)
	}
}

func TestMalformedBodyIs400(t *testing.T) {
	router, _ := newTestRouter()

	rec, env := doJSON(t, router, http.MethodPost, "/api/accounts", `{`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.OK {
		t.Fatalf("expected error envelope, got %+v", env)
	}
}
