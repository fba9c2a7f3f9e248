package goals

import (
	"testing"
	"time"

	"github.com/oxydek/fin-stat/internal/apperr"
	"github.com/oxydek/fin-stat/internal/ledger/ledgertest"
	"github.com/oxydek/fin-stat/internal/models"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newService() (*Service, *ledgertest.Store) {
	store := ledgertest.New()
	s := NewService(store)
	s.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return s, store
}

func addAccount(t *testing.T, store *ledgertest.Store, id, balance string) {
	t.Helper()
	err := store.CreateAccount(&models.Account{
		ID: id, Name: "Карта", Type: models.AccountTypeCard,
		Balance: dec(balance), Currency: "RUB", IsActive: true,
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	s, _ := newService()
	if _, err := s.Create(CreateGoalInput{TargetAmount: dec("100")}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
	if _, err := s.Create(CreateGoalInput{Name: "Отпуск", TargetAmount: dec("0")}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for zero target, got %v", err)
	}
}

func TestContributeMovesMoney(t *testing.T) {
	s, store := newService()
	addAccount(t, store, "a1", "10000")
	g, _ := s.Create(CreateGoalInput{Name: "Отпуск", TargetAmount: dec("50000")})

	updated, err := s.Contribute(g.ID, dec("3000"), "a1")
	if err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	if !updated.CurrentAmount.Equal(dec("3000")) {
		t.Fatalf("expected currentAmount 3000, got %s", updated.CurrentAmount)
	}
	if updated.IsCompleted {
		t.Fatal("goal must not be completed yet")
	}

	a, _ := store.GetAccount("a1")
	if !a.Balance.Equal(dec("7000")) {
		t.Fatalf("expected account balance 7000, got %s", a.Balance)
	}

	txs, _ := store.ListTransactions("a1")
	if len(txs) != 1 {
		t.Fatalf("expected 1 expense transaction, got %d", len(txs))
	}
	if txs[0].Type != models.TxExpense || !txs[0].Amount.Equal(dec("-3000")) {
		t.Fatalf("unexpected contribution transaction: %+v", txs[0])
	}
}

func TestContributeCompletesGoalExactlyAtTarget(t *testing.T) {
	s, store := newService()
	addAccount(t, store, "a1", "100000")
	g, _ := s.Create(CreateGoalInput{Name: "Отпуск", TargetAmount: dec("5000")})

	s.Contribute(g.ID, dec("4999"), "a1")
	got, _ := store.GetGoal(g.ID)
	if got.IsCompleted {
		t.Fatal("completed below target")
	}

	s.Contribute(g.ID, dec("1"), "a1")
	got, _ = store.GetGoal(g.ID)
	if !got.IsCompleted {
		t.Fatal("goal must complete when currentAmount reaches targetAmount")
	}

	// overshooting keeps it completed
	s.Contribute(g.ID, dec("100"), "a1")
	got, _ = store.GetGoal(g.ID)
	if !got.IsCompleted {
		t.Fatal("goal must stay completed")
	}
}

func TestContributeValidation(t *testing.T) {
	s, store := newService()
	addAccount(t, store, "a1", "100")
	g, _ := s.Create(CreateGoalInput{Name: "Отпуск", TargetAmount: dec("500")})

	if _, err := s.Contribute(g.ID, dec("0"), "a1"); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
	if _, err := s.Contribute(g.ID, dec("10"), ""); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for missing account, got %v", err)
	}
	if _, err := s.Contribute("missing", dec("10"), "a1"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for unknown goal, got %v", err)
	}
	if _, err := s.Contribute(g.ID, dec("10"), "missing"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for unknown account, got %v", err)
	}
}

func TestUpdateDoesNotRevalidateCompletion(t *testing.T) {
	s, store := newService()
	addAccount(t, store, "a1", "10000")
	g, _ := s.Create(CreateGoalInput{Name: "Отпуск", TargetAmount: dec("10000")})
	s.Contribute(g.ID, dec("6000"), "a1")

	// lowering the target below currentAmount does not retroactively complete
	lower := dec("5000")
	updated, err := s.Update(g.ID, UpdateGoalInput{TargetAmount: &lower})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.IsCompleted {
		t.Fatal("completion is only evaluated on contribution")
	}

	// the next contribution picks it up
	s.Contribute(g.ID, dec("1"), "a1")
	got, _ := store.GetGoal(g.ID)
	if !got.IsCompleted {
		t.Fatal("contribution after target edit must complete the goal")
	}
}

func TestCloseKeepsContributedFunds(t *testing.T) {
	s, store := newService()
	addAccount(t, store, "a1", "10000")
	g, _ := s.Create(CreateGoalInput{Name: "Отпуск", TargetAmount: dec("10000")})
	s.Contribute(g.ID, dec("2500"), "a1")

	closed, err := s.Close(g.ID)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if closed.IsActive {
		t.Fatal("closed goal must be inactive")
	}
	if !closed.CurrentAmount.Equal(dec("2500")) {
		t.Fatalf("closing must not move funds, got %s", closed.CurrentAmount)
	}
	a, _ := store.GetAccount("a1")
	if !a.Balance.Equal(dec("7500")) {
		t.Fatalf("closing must not refund the account, got %s", a.Balance)
	}
}

func TestNoReopeningPath(t *testing.T) {
	s, store := newService()
	addAccount(t, store, "a1", "10000")
	g, _ := s.Create(CreateGoalInput{Name: "Отпуск", TargetAmount: dec("1000")})
	s.Contribute(g.ID, dec("1000"), "a1")

	// no patch field can clear the completion flag
	name := "Отпуск 2026"
	bigger := dec("99999")
	active := true
	s.Update(g.ID, UpdateGoalInput{Name: &name, TargetAmount: &bigger, IsActive: &active})

	got, _ := store.GetGoal(g.ID)
	if !got.IsCompleted {
		t.Fatal("there must be no reopening path for a completed goal")
	}
}
