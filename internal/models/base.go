package models

import "time"

// Base contains the common columns for all tables. Deletions are
// permanent: there is no soft-delete column, so GORM's Delete issues a
// hard DELETE.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
