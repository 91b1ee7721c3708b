package models

import (
	"time"

	"finbook/internal/money"
)

// Category is the closed set of expense categories. Incomes carry no
// category.
type Category string

const (
	CategoryHousing    Category = "HOUSING"
	CategoryFood       Category = "FOOD"
	CategoryHealth     Category = "HEALTH"
	CategoryTransport  Category = "TRANSPORT"
	CategoryEducation  Category = "EDUCATION"
	CategoryLeisure    Category = "LEISURE"
	CategoryUnforeseen Category = "UNFORESEEN"
	CategoryOther      Category = "OTHER"
)

// Categories lists every category in its fixed enumeration order. The
// monthly summary walks this slice so its per-category breakdown is
// always complete and stably ordered.
var Categories = []Category{
	CategoryHousing,
	CategoryFood,
	CategoryHealth,
	CategoryTransport,
	CategoryEducation,
	CategoryLeisure,
	CategoryUnforeseen,
	CategoryOther,
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense represents a single categorized expense belonging to a user.
type Expense struct {
	Base
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	Description string      `gorm:"not null" json:"description"`
	Amount      money.Money `gorm:"type:bigint;not null" json:"value"`
	Date        time.Time   `gorm:"not null" json:"date"`
	Category    Category    `gorm:"not null;default:OTHER" json:"category"`
}
