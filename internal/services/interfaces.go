package services

import (
	"time"

	"finbook/internal/models"
	"finbook/internal/money"
	"finbook/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// ExpenseServicer defines the contract for the expense ledger. Every
// operation takes the owning user's ID explicitly; reads, updates and
// deletes on records owned by someone else report not-found.
type ExpenseServicer interface {
	CreateExpense(userID uint, description string, amount money.Money, date time.Time, category models.Category) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	SearchExpenses(userID uint, fragment string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpensesByMonth(userID uint, year, month int, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, description string, amount money.Money, date time.Time, category models.Category) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
	TotalForMonth(userID uint, year, month int) (money.Money, error)
	TotalByCategoryForMonth(userID uint, category models.Category, year, month int) (money.Money, error)
}

// IncomeServicer defines the contract for the income ledger. It
// mirrors the expense ledger minus the category dimension.
type IncomeServicer interface {
	CreateIncome(userID uint, description string, amount money.Money, date time.Time) (*models.Income, error)
	GetUserIncomes(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	SearchIncomes(userID uint, fragment string, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	GetIncomesByMonth(userID uint, year, month int, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	GetIncomeByID(userID, incomeID uint) (*models.Income, error)
	UpdateIncome(userID, incomeID uint, description string, amount money.Money, date time.Time) (*models.Income, error)
	DeleteIncome(userID, incomeID uint) error
	TotalForMonth(userID uint, year, month int) (money.Money, error)
}

// CategoryTotal is one entry of the summary's per-category breakdown.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    money.Money     `json:"total"`
}

// MonthlySummary aggregates one user's incomes and expenses for a
// single month. ByCategory always holds one entry per category, in
// enumeration order, zeros included. It is derived on each request and
// never persisted.
type MonthlySummary struct {
	IncomeTotal  money.Money     `json:"income_total"`
	ExpenseTotal money.Money     `json:"expense_total"`
	FinalBalance money.Money     `json:"final_balance"`
	ByCategory   []CategoryTotal `json:"values_by_category"`
}

// SummaryServicer defines the contract for the monthly summary.
type SummaryServicer interface {
	MonthSummary(userID uint, year, month int) (*MonthlySummary, error)
}
