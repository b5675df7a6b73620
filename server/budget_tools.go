package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/henry0hai/simple-mcp-server/budget"
)

type addExpenseArgs struct {
	Description string  `json:"description" jsonschema:"what the expense was for"`
	Amount      float64 `json:"amount" jsonschema:"expense amount"`
	Category    string  `json:"category,omitempty" jsonschema:"expense category, auto-detected when omitted"`
}

// handleAddExpense records one expense in the ledger, detecting the category
// from the description when none is given.
func (s *Server) handleAddExpense(ctx context.Context, req *mcp.CallToolRequest, args addExpenseArgs) (*mcp.CallToolResult, *budget.Transaction, error) {
	tx, err := s.budget.AddExpense(args.Description, args.Amount, args.Category)
	if err != nil {
		return nil, nil, fmt.Errorf("add_expense failed: %w", err)
	}
	s.logger.Info("added expense: %s - %.2f (%s)", tx.Description, tx.Amount, tx.Category)
	return nil, tx, nil
}

type addIncomeArgs struct {
	Source string  `json:"source" jsonschema:"where the income came from"`
	Amount float64 `json:"amount" jsonschema:"income amount"`
}

func (s *Server) handleAddIncome(ctx context.Context, req *mcp.CallToolRequest, args addIncomeArgs) (*mcp.CallToolResult, *budget.Income, error) {
	inc, err := s.budget.AddIncome(args.Source, args.Amount)
	if err != nil {
		return nil, nil, fmt.Errorf("add_income failed: %w", err)
	}
	s.logger.Info("added income: %s - %.2f", inc.Source, inc.Amount)
	return nil, inc, nil
}

type budgetSummaryArgs struct {
	Month string `json:"month,omitempty" jsonschema:"month as YYYY-MM, defaults to the current month"`
}

type budgetSummaryResult struct {
	Summary      *budget.Summary      `json:"summary"`
	Transactions []budget.Transaction `json:"transactions"`
	Incomes      []budget.Income      `json:"incomes"`
}

// handleBudgetSummary returns the month's aggregates together with the full
// ledger, mirroring what a budgeting client needs to render a dashboard.
func (s *Server) handleBudgetSummary(ctx context.Context, req *mcp.CallToolRequest, args budgetSummaryArgs) (*mcp.CallToolResult, budgetSummaryResult, error) {
	summary, err := s.budget.MonthlySummary(args.Month)
	if err != nil {
		return nil, budgetSummaryResult{}, fmt.Errorf("get_budget_summary failed: %w", err)
	}
	txs, err := s.budget.Transactions()
	if err != nil {
		return nil, budgetSummaryResult{}, fmt.Errorf("get_budget_summary failed: %w", err)
	}
	incs, err := s.budget.Incomes()
	if err != nil {
		return nil, budgetSummaryResult{}, fmt.Errorf("get_budget_summary failed: %w", err)
	}

	if txs == nil {
		txs = []budget.Transaction{}
	}
	if incs == nil {
		incs = []budget.Income{}
	}
	return nil, budgetSummaryResult{Summary: summary, Transactions: txs, Incomes: incs}, nil
}

type expenseReportArgs struct {
	Month   int  `json:"month,omitempty" jsonschema:"month number 1-12, defaults to the current month"`
	Year    int  `json:"year,omitempty" jsonschema:"four digit year, defaults to the current year"`
	AllData bool `json:"all_data,omitempty" jsonschema:"export every row regardless of month"`
}

func (s *Server) handleExpenseReport(ctx context.Context, req *mcp.CallToolRequest, args expenseReportArgs) (*mcp.CallToolResult, any, error) {
	csvData, err := s.budget.ExportCSV(args.Month, args.Year, args.AllData)
	if err != nil {
		return nil, nil, fmt.Errorf("get_expense_report failed: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: csvData}},
	}, nil, nil
}

type categoriesResult struct {
	Categories []string `json:"categories"`
	Total      int      `json:"total"`
}

func (s *Server) handleAvailableCategories(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, categoriesResult, error) {
	return nil, categoriesResult{Categories: budget.Categories, Total: len(budget.Categories)}, nil
}

type predictCategoryArgs struct {
	Description string `json:"description" jsonschema:"expense description to classify"`
}

type predictCategoryResult struct {
	Description       string `json:"description"`
	PredictedCategory string `json:"predicted_category"`
}

// handlePredictCategory classifies a description without recording anything.
func (s *Server) handlePredictCategory(ctx context.Context, req *mcp.CallToolRequest, args predictCategoryArgs) (*mcp.CallToolResult, predictCategoryResult, error) {
	return nil, predictCategoryResult{
		Description:       args.Description,
		PredictedCategory: budget.DetectCategory(args.Description),
	}, nil
}

func (s *Server) registerBudgetTools() error {
	if err := registerTool(s, &mcp.Tool{
		Name:        "add_expense",
		Description: "Add a new expense transaction to the budget system. Category will be auto-detected if not provided.",
	}, s.handleAddExpense); err != nil {
		return err
	}

	if err := registerTool(s, &mcp.Tool{
		Name:        "add_income",
		Description: "Add a new income entry to the budget system.",
	}, s.handleAddIncome); err != nil {
		return err
	}

	if err := registerTool(s, &mcp.Tool{
		Name:        "get_budget_summary",
		Description: "Get comprehensive budget summary including transactions, incomes, and monthly totals. Defaults to the current month (YYYY-MM format).",
	}, s.handleBudgetSummary); err != nil {
		return err
	}

	if err := registerTool(s, &mcp.Tool{
		Name:        "get_expense_report",
		Description: "Generate and export expense report in CSV format. Defaults to the current month and year unless all_data is set.",
	}, s.handleExpenseReport); err != nil {
		return err
	}

	if err := registerTool(s, &mcp.Tool{
		Name:        "get_available_categories",
		Description: "Get list of all available expense categories.",
	}, s.handleAvailableCategories); err != nil {
		return err
	}

	if err := registerTool(s, &mcp.Tool{
		Name:        "predict_category",
		Description: "Predict the most appropriate category for an expense description without adding it.",
	}, s.handlePredictCategory); err != nil {
		return err
	}

	return nil
}
