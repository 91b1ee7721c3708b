package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "finbook/internal/errors"
)

// The duplicate-description rule: within one user's records of one
// kind, a description may appear at most once per calendar month.
// The check is keyed on (user, description, month, year) only — the
// day of the month and the expense category are irrelevant.
//
// The check-then-save sequence is optimistic: two concurrent creates
// can both pass it. The per-month unique indexes created by the
// migrations close that race; the services map the resulting
// gorm.ErrDuplicatedKey to the same conflict error.

// monthWindow returns the half-open interval [first of month, first of
// next month) in UTC. Querying on this window instead of SQL date
// functions keeps the query identical on PostgreSQL and SQLite.
func monthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// descriptionExistsInMonth reports whether the user already has a
// record of the given model type with a case-sensitive-equal
// description dated in the same month as date. A non-zero excludeID is
// left out of the search so an update never conflicts with the record
// being updated.
func descriptionExistsInMonth(db *gorm.DB, model interface{}, userID uint, description string, date time.Time, excludeID uint) (bool, error) {
	start, end := monthWindow(date.Year(), date.Month())

	q := db.Model(model).
		Where("user_id = ? AND description = ? AND date >= ? AND date < ?", userID, description, start, end)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// duplicateDescriptionError builds the conflict error for a duplicate
// description. The noun is the record kind in the message language
// ("despesa" or "receita"); onUpdate switches the article from "Uma"
// to "Outra" since on update the conflicting record is a different
// one. The month name is the lower-cased English month.
func duplicateDescriptionError(noun string, date time.Time, onUpdate bool) error {
	article := "Uma"
	if onUpdate {
		article = "Outra"
	}
	msg := fmt.Sprintf("%s %s com essa descrição já existe em %s %d",
		article, noun, strings.ToLower(date.Month().String()), date.Year())
	return apperrors.WithMessage(apperrors.ErrDuplicateDescription, msg)
}

// validateYearMonth enforces the plausible range for month/year
// queries. Out-of-range values are a caller error, never not-found.
func validateYearMonth(year, month int) error {
	if year < 1970 || year > 2099 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be between 1970 and 2099")
	}
	if month < 1 || month > 12 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	return nil
}
