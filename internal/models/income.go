package models

import (
	"time"

	"finbook/internal/money"
)

// Income represents a single income belonging to a user.
type Income struct {
	Base
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	Description string      `gorm:"not null" json:"description"`
	Amount      money.Money `gorm:"type:bigint;not null" json:"value"`
	Date        time.Time   `gorm:"not null" json:"date"`
}
