package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/money"
	"finbook/internal/pagination"
)

// expenseService handles the expense ledger business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense creates a new expense for the user. An absent category
// defaults to OTHER. Fails with a conflict when the user already has
// an expense with the same description in the same month.
func (s *expenseService) CreateExpense(
	userID uint,
	description string,
	amount money.Money,
	date time.Time,
	category models.Category,
) (*models.Expense, error) {
	if err := validateRecordInput(description, amount, date); err != nil {
		return nil, err
	}

	if category == "" {
		category = models.CategoryOther
	} else if !category.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown category %q", category))
	}

	expense := &models.Expense{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Date:        date,
		Category:    category,
	}

	// Guard and insert inside one transaction to narrow the
	// check-then-create window.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := descriptionExistsInMonth(tx, &models.Expense{}, userID, description, date, 0)
		if err != nil {
			return err
		}
		if exists {
			return duplicateDescriptionError("despesa", date, false)
		}

		if err := tx.Create(expense).Error; err != nil {
			// The per-month unique index catches concurrent duplicates
			// the guard raced with.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return duplicateDescriptionError("despesa", date, false)
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// GetUserExpenses returns a page of the user's expenses ordered by
// date descending. A user with no expenses at all gets not-found; an
// empty page past the end of existing data is a valid result.
func (s *expenseService) GetUserExpenses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	return s.listExpenses(base, page, "User has no expenses")
}

// SearchExpenses returns a page of the user's expenses whose
// description contains the fragment, case-insensitively.
func (s *expenseService) SearchExpenses(userID uint, fragment string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	base := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND LOWER(description) LIKE ?", userID, "%"+strings.ToLower(fragment)+"%")
	return s.listExpenses(base, page, fmt.Sprintf("No expenses matching %q", fragment))
}

// GetExpensesByMonth returns a page of the user's expenses dated in
// the given month.
func (s *expenseService) GetExpensesByMonth(userID uint, year, month int, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}

	start, end := monthWindow(year, time.Month(month))
	base := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end)
	return s.listExpenses(base, page, fmt.Sprintf("No expenses for year %d and month %d", year, month))
}

// listExpenses counts the matches of base, failing with not-found when
// there are none, and otherwise returns the requested page.
func (s *expenseService) listExpenses(base *gorm.DB, page pagination.PageRequest, notFoundMsg string) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if totalItems == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrExpenseNotFound, notFoundMsg)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID retrieves an expense by ID for a specific user. An
// expense owned by another user is reported exactly like a missing
// one.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrExpenseNotFound,
				fmt.Sprintf("No expense with id = %d for this user", expenseID))
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense replaces the expense's description, amount and date.
// An absent category keeps the stored one; re-saving the record's own
// description never conflicts, but taking over a different record's
// description within the same month does.
func (s *expenseService) UpdateExpense(
	userID, expenseID uint,
	description string,
	amount money.Money,
	date time.Time,
	category models.Category,
) (*models.Expense, error) {
	if err := validateRecordInput(description, amount, date); err != nil {
		return nil, err
	}
	if category != "" && !category.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown category %q", category))
	}

	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := descriptionExistsInMonth(tx, &models.Expense{}, userID, description, date, expense.ID)
		if err != nil {
			return err
		}
		if exists {
			return duplicateDescriptionError("despesa", date, true)
		}

		expense.Description = description
		expense.Amount = amount
		expense.Date = date
		if category != "" {
			expense.Category = category
		}

		if err := tx.Save(expense).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return duplicateDescriptionError("despesa", date, true)
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense permanently deletes an expense after resolving
// ownership the same way GetExpenseByID does.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// TotalForMonth sums the user's expenses for the month. No matching
// expenses is not an error: the sum is simply zero.
func (s *expenseService) TotalForMonth(userID uint, year, month int) (money.Money, error) {
	if err := validateYearMonth(year, month); err != nil {
		return 0, err
	}

	start, end := monthWindow(year, time.Month(month))
	var total int64
	err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return money.Money(total), nil
}

// TotalByCategoryForMonth sums the user's expenses of one category for
// the month, zero when none match.
func (s *expenseService) TotalByCategoryForMonth(userID uint, category models.Category, year, month int) (money.Money, error) {
	if err := validateYearMonth(year, month); err != nil {
		return 0, err
	}
	if !category.IsValid() {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown category %q", category))
	}

	start, end := monthWindow(year, time.Month(month))
	var total int64
	err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND category = ? AND date >= ? AND date < ?", userID, category, start, end).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return money.Money(total), nil
}

// validateRecordInput checks the preconditions shared by expense and
// income writes. The handler layer validates these too; the ledger
// still refuses invalid input rather than persisting it.
func validateRecordInput(description string, amount money.Money, date time.Time) error {
	if strings.TrimSpace(description) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description must not be blank")
	}
	if amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "value must be greater than zero")
	}
	if date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	return nil
}
