package budget

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyDescription = errors.New("description is required")
	ErrEmptySource      = errors.New("source is required")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
)

// Store persists the ledger in SQLite, alongside whatever else lives in the
// handed-in database.
type Store struct {
	db *sql.DB
}

// NewStore creates the ledger tables if they do not exist yet.
func NewStore(db *sql.DB) (*Store, error) {
	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		amount REAL NOT NULL,
		category TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS incomes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		amount REAL NOT NULL,
		received_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_created ON transactions(created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to init budget tables: %w", err)
	}
	return &Store{db: db}, nil
}

// Transaction is one expense row of the ledger.
type Transaction struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// Income is one income row of the ledger.
type Income struct {
	ID         int64     `json:"id"`
	Source     string    `json:"source"`
	Amount     float64   `json:"amount"`
	ReceivedAt time.Time `json:"received_at"`
}

// Summary aggregates one month of the ledger.
type Summary struct {
	Month        string             `json:"month"`
	TotalIncome  float64            `json:"total_income"`
	TotalExpense float64            `json:"total_expense"`
	Remain       float64            `json:"remain"`
	ByCategory   map[string]float64 `json:"by_category"`
}

// AddExpense appends one expense. An empty category is auto-detected from
// the description.
func (s *Store) AddExpense(description string, amount float64, category string) (*Transaction, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if category == "" {
		category = DetectCategory(description)
	}

	res, err := s.db.Exec(
		`INSERT INTO transactions (description, amount, category) VALUES (?, ?, ?)`,
		description, amount, category)
	if err != nil {
		return nil, fmt.Errorf("failed to add expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to add expense: %w", err)
	}

	return s.transactionByID(id)
}

// AddIncome appends one income entry.
func (s *Store) AddIncome(source string, amount float64) (*Income, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptySource
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	res, err := s.db.Exec(`INSERT INTO incomes (source, amount) VALUES (?, ?)`, source, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to add income: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to add income: %w", err)
	}

	var inc Income
	row := s.db.QueryRow(`SELECT id, source, amount, received_at FROM incomes WHERE id = ?`, id)
	if err := row.Scan(&inc.ID, &inc.Source, &inc.Amount, &inc.ReceivedAt); err != nil {
		return nil, fmt.Errorf("failed to read income back: %w", err)
	}
	return &inc, nil
}

func (s *Store) transactionByID(id int64) (*Transaction, error) {
	var tx Transaction
	row := s.db.QueryRow(
		`SELECT id, description, amount, category, created_at FROM transactions WHERE id = ?`, id)
	if err := row.Scan(&tx.ID, &tx.Description, &tx.Amount, &tx.Category, &tx.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to read expense back: %w", err)
	}
	return &tx, nil
}

// Transactions returns every expense, oldest first.
func (s *Store) Transactions() ([]Transaction, error) {
	rows, err := s.db.Query(
		`SELECT id, description, amount, category, created_at FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var tx Transaction
		if err := rows.Scan(&tx.ID, &tx.Description, &tx.Amount, &tx.Category, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// Incomes returns every income entry, oldest first.
func (s *Store) Incomes() ([]Income, error) {
	rows, err := s.db.Query(`SELECT id, source, amount, received_at FROM incomes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes: %w", err)
	}
	defer rows.Close()

	var incs []Income
	for rows.Next() {
		var inc Income
		if err := rows.Scan(&inc.ID, &inc.Source, &inc.Amount, &inc.ReceivedAt); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incs = append(incs, inc)
	}
	return incs, rows.Err()
}

// MonthlySummary aggregates the given month. month is YYYY-MM; an empty
// month selects the current one.
func (s *Store) MonthlySummary(month string) (*Summary, error) {
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}

	summary := &Summary{Month: month, ByCategory: map[string]float64{}}

	row := s.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM incomes WHERE strftime('%Y-%m', received_at) = ?`, month)
	if err := row.Scan(&summary.TotalIncome); err != nil {
		return nil, fmt.Errorf("failed to sum incomes: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT category, SUM(amount) FROM transactions
		 WHERE strftime('%Y-%m', created_at) = ? GROUP BY category`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan expense total: %w", err)
		}
		summary.ByCategory[category] = total
		summary.TotalExpense += total
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summary.Remain = summary.TotalIncome - summary.TotalExpense
	return summary, nil
}

// ExportCSV renders expenses and incomes as one unified CSV document. With
// all set, every row is included; otherwise only the given month and year
// (zero values select the current ones).
func (s *Store) ExportCSV(month, year int, all bool) (string, error) {
	if !all {
		now := time.Now().UTC()
		if month == 0 {
			month = int(now.Month())
		}
		if year == 0 {
			year = now.Year()
		}
		if month < 1 || month > 12 {
			return "", fmt.Errorf("invalid month %d", month)
		}
	}
	prefix := fmt.Sprintf("%04d-%02d", year, month)

	txs, err := s.Transactions()
	if err != nil {
		return "", err
	}
	incs, err := s.Incomes()
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	w.Write([]string{"type", "date", "category", "description", "amount"})

	for _, tx := range txs {
		if !all && tx.CreatedAt.Format("2006-01") != prefix {
			continue
		}
		w.Write([]string{"expense", tx.CreatedAt.Format("2006-01-02"), tx.Category,
			tx.Description, formatAmount(tx.Amount)})
	}
	for _, inc := range incs {
		if !all && inc.ReceivedAt.Format("2006-01") != prefix {
			continue
		}
		w.Write([]string{"income", inc.ReceivedAt.Format("2006-01-02"), "",
			inc.Source, formatAmount(inc.Amount)})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.String(), nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
