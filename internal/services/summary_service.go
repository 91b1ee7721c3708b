package services

import (
	"fmt"
	"strings"
	"time"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
)

// summaryService composes the two ledgers into the monthly summary.
type summaryService struct {
	expenseService ExpenseServicer
	incomeService  IncomeServicer
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(expenseService ExpenseServicer, incomeService IncomeServicer) SummaryServicer {
	return &summaryService{
		expenseService: expenseService,
		incomeService:  incomeService,
	}
}

// MonthSummary returns the user's income total, expense total, final
// balance and per-category expense breakdown for one month. The
// breakdown walks the fixed category enumeration, so it always has
// exactly eight entries in a stable order, zeros included. The only
// failure besides bad input is not-found, raised when the income and
// expense totals are both zero; a month with only incomes or only
// expenses is a valid summary.
func (s *summaryService) MonthSummary(userID uint, year, month int) (*MonthlySummary, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}

	incomeTotal, err := s.incomeService.TotalForMonth(userID, year, month)
	if err != nil {
		return nil, err
	}
	expenseTotal, err := s.expenseService.TotalForMonth(userID, year, month)
	if err != nil {
		return nil, err
	}

	if incomeTotal == 0 && expenseTotal == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrSummaryNotFound,
			fmt.Sprintf("No incomes and expenses for %s %d",
				strings.ToLower(time.Month(month).String()), year))
	}

	byCategory := make([]CategoryTotal, 0, len(models.Categories))
	for _, category := range models.Categories {
		total, err := s.expenseService.TotalByCategoryForMonth(userID, category, year, month)
		if err != nil {
			return nil, err
		}
		byCategory = append(byCategory, CategoryTotal{Category: category, Total: total})
	}

	return &MonthlySummary{
		IncomeTotal:  incomeTotal,
		ExpenseTotal: expenseTotal,
		FinalBalance: incomeTotal - expenseTotal,
		ByCategory:   byCategory,
	}, nil
}
