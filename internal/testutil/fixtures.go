package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finbook/internal/models"
	"finbook/internal/money"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// Date builds a UTC date at midnight, the shape record dates take
// after parsing.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestExpense creates an expense with a unique description in
// the OTHER category.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, amount money.Money, date time.Time) *models.Expense {
	t.Helper()
	desc := fmt.Sprintf("Test Expense %d", nextID())
	return CreateTestExpenseWith(t, db, userID, desc, amount, date, models.CategoryOther)
}

// CreateTestExpenseWith creates an expense with the given description,
// amount, date and category.
func CreateTestExpenseWith(t *testing.T, db *gorm.DB, userID uint, description string, amount money.Money, date time.Time, category models.Category) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Date:        date,
		Category:    category,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestIncome creates an income with a unique description.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID uint, amount money.Money, date time.Time) *models.Income {
	t.Helper()
	desc := fmt.Sprintf("Test Income %d", nextID())
	return CreateTestIncomeWith(t, db, userID, desc, amount, date)
}

// CreateTestIncomeWith creates an income with the given description,
// amount and date.
func CreateTestIncomeWith(t *testing.T, db *gorm.DB, userID uint, description string, amount money.Money, date time.Time) *models.Income {
	t.Helper()

	income := &models.Income{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Date:        date,
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}
