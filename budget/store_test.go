package budget

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "budget.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewStore(db)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestAddExpenseAutoDetectsCategory(t *testing.T) {
	store := newTestStore(t)

	tx, err := store.AddExpense("Lunch at the restaurant", 12.50, "")
	if err != nil {
		t.Fatalf("add expense failed: %v", err)
	}

	if tx.Category != "Food & Dining" {
		t.Errorf("expected auto-detected category Food & Dining, got %s", tx.Category)
	}
	if tx.Amount != 12.50 {
		t.Errorf("expected amount 12.50, got %v", tx.Amount)
	}
	if tx.ID == 0 {
		t.Error("expected a persisted id")
	}
}

func TestAddExpenseKeepsExplicitCategory(t *testing.T) {
	store := newTestStore(t)

	tx, err := store.AddExpense("Lunch at the restaurant", 12.50, "Travel")
	if err != nil {
		t.Fatalf("add expense failed: %v", err)
	}
	if tx.Category != "Travel" {
		t.Errorf("explicit category must win, got %s", tx.Category)
	}
}

func TestAddExpenseValidation(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.AddExpense("", 5, ""); !errors.Is(err, ErrEmptyDescription) {
		t.Errorf("expected ErrEmptyDescription, got %v", err)
	}
	if _, err := store.AddExpense("coffee", 0, ""); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := store.AddIncome("", 100); !errors.Is(err, ErrEmptySource) {
		t.Errorf("expected ErrEmptySource, got %v", err)
	}
	if _, err := store.AddIncome("salary", -1); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestMonthlySummary(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.AddIncome("salary", 1000); err != nil {
		t.Fatalf("add income failed: %v", err)
	}
	if _, err := store.AddExpense("groceries at the market", 200, ""); err != nil {
		t.Fatalf("add expense failed: %v", err)
	}
	if _, err := store.AddExpense("taxi home", 30, ""); err != nil {
		t.Fatalf("add expense failed: %v", err)
	}

	// Rows default to the current timestamp, so the current month sees them.
	summary, err := store.MonthlySummary("")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	if summary.Month != time.Now().UTC().Format("2006-01") {
		t.Errorf("expected current month, got %s", summary.Month)
	}
	if summary.TotalIncome != 1000 {
		t.Errorf("expected income 1000, got %v", summary.TotalIncome)
	}
	if summary.TotalExpense != 230 {
		t.Errorf("expected expenses 230, got %v", summary.TotalExpense)
	}
	if summary.Remain != 770 {
		t.Errorf("expected remain 770, got %v", summary.Remain)
	}
	if summary.ByCategory["Groceries"] != 200 || summary.ByCategory["Transportation"] != 30 {
		t.Errorf("unexpected per-category totals: %v", summary.ByCategory)
	}
}

func TestMonthlySummaryEmptyMonth(t *testing.T) {
	store := newTestStore(t)

	summary, err := store.MonthlySummary("1999-01")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalIncome != 0 || summary.TotalExpense != 0 || summary.Remain != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}

func TestMonthlySummaryRejectsBadMonth(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.MonthlySummary("January 2026"); err == nil {
		t.Error("expected an error for a malformed month")
	}
}

func TestExportCSV(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.AddExpense("cinema tickets", 18, ""); err != nil {
		t.Fatalf("add expense failed: %v", err)
	}
	if _, err := store.AddIncome("freelance", 250); err != nil {
		t.Fatalf("add income failed: %v", err)
	}

	out, err := store.ExportCSV(0, 0, false)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines: %s", len(lines), out)
	}
	if lines[0] != "type,date,category,description,amount" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(out, "expense") || !strings.Contains(out, "cinema tickets") {
		t.Errorf("expected the expense row, got: %s", out)
	}
	if !strings.Contains(out, "income") || !strings.Contains(out, "250.00") {
		t.Errorf("expected the income row, got: %s", out)
	}
}

func TestExportCSVFiltersOtherMonths(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.AddExpense("coffee", 4, ""); err != nil {
		t.Fatalf("add expense failed: %v", err)
	}

	// A month guaranteed not to be the current one.
	month := int(time.Now().UTC().Month())%12 + 1
	out, err := store.ExportCSV(month, 1999, false)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 {
		t.Errorf("expected only the header, got: %s", out)
	}

	all, err := store.ExportCSV(0, 0, true)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(all, "coffee") {
		t.Errorf("expected all rows with all=true, got: %s", all)
	}
}

func TestExportCSVRejectsBadMonth(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.ExportCSV(13, 2026, false); err == nil {
		t.Error("expected an error for month 13")
	}
}
