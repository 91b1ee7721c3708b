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

// incomeService handles the income ledger business logic. It mirrors
// the expense ledger; incomes carry no category.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// CreateIncome creates a new income for the user. Fails with a
// conflict when the user already has an income with the same
// description in the same month.
func (s *incomeService) CreateIncome(
	userID uint,
	description string,
	amount money.Money,
	date time.Time,
) (*models.Income, error) {
	if err := validateRecordInput(description, amount, date); err != nil {
		return nil, err
	}

	income := &models.Income{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Date:        date,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := descriptionExistsInMonth(tx, &models.Income{}, userID, description, date, 0)
		if err != nil {
			return err
		}
		if exists {
			return duplicateDescriptionError("receita", date, false)
		}

		if err := tx.Create(income).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return duplicateDescriptionError("receita", date, false)
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return income, nil
}

// GetUserIncomes returns a page of the user's incomes ordered by date
// descending, not-found only when the user has no incomes at all.
func (s *incomeService) GetUserIncomes(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	base := s.db.Model(&models.Income{}).Where("user_id = ?", userID)
	return s.listIncomes(base, page, "User has no incomes")
}

// SearchIncomes returns a page of the user's incomes whose description
// contains the fragment, case-insensitively.
func (s *incomeService) SearchIncomes(userID uint, fragment string, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	base := s.db.Model(&models.Income{}).
		Where("user_id = ? AND LOWER(description) LIKE ?", userID, "%"+strings.ToLower(fragment)+"%")
	return s.listIncomes(base, page, fmt.Sprintf("No incomes matching %q", fragment))
}

// GetIncomesByMonth returns a page of the user's incomes dated in the
// given month.
func (s *incomeService) GetIncomesByMonth(userID uint, year, month int, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}

	start, end := monthWindow(year, time.Month(month))
	base := s.db.Model(&models.Income{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end)
	return s.listIncomes(base, page, fmt.Sprintf("No incomes for year %d and month %d", year, month))
}

func (s *incomeService) listIncomes(base *gorm.DB, page pagination.PageRequest, notFoundMsg string) (*pagination.PageResponse[models.Income], error) {
	page.Defaults()

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if totalItems == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrIncomeNotFound, notFoundMsg)
	}

	var incomes []models.Income
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(incomes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetIncomeByID retrieves an income by ID for a specific user. An
// income owned by another user is reported exactly like a missing one.
func (s *incomeService) GetIncomeByID(userID, incomeID uint) (*models.Income, error) {
	var income models.Income
	if err := s.db.Where("id = ? AND user_id = ?", incomeID, userID).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrIncomeNotFound,
				fmt.Sprintf("No income with id = %d for this user", incomeID))
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}

// UpdateIncome replaces the income's description, amount and date.
func (s *incomeService) UpdateIncome(
	userID, incomeID uint,
	description string,
	amount money.Money,
	date time.Time,
) (*models.Income, error) {
	if err := validateRecordInput(description, amount, date); err != nil {
		return nil, err
	}

	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := descriptionExistsInMonth(tx, &models.Income{}, userID, description, date, income.ID)
		if err != nil {
			return err
		}
		if exists {
			return duplicateDescriptionError("receita", date, true)
		}

		income.Description = description
		income.Amount = amount
		income.Date = date

		if err := tx.Save(income).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return duplicateDescriptionError("receita", date, true)
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return income, nil
}

// DeleteIncome permanently deletes an income after resolving ownership
// the same way GetIncomeByID does.
func (s *incomeService) DeleteIncome(userID, incomeID uint) error {
	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(income).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// TotalForMonth sums the user's incomes for the month, zero when none
// match.
func (s *incomeService) TotalForMonth(userID uint, year, month int) (money.Money, error) {
	if err := validateYearMonth(year, month); err != nil {
		return 0, err
	}

	start, end := monthWindow(year, time.Month(month))
	var total int64
	err := s.db.Model(&models.Income{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return money.Money(total), nil
}
