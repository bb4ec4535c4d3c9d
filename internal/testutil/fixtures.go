package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Nanif/budget-api/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Amount converts a literal like "123.45" into a decimal, failing the
// test on malformed input.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad amount literal %q: %v", s, err)
	}
	return d
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

// CreateTestBudgetYear creates an active budget year spanning the current
// calendar year.
func CreateTestBudgetYear(t *testing.T, db *gorm.DB, userID string) *models.BudgetYear {
	t.Helper()
	now := time.Now()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	return CreateTestBudgetYearWithDates(t, db, userID, start, end, true)
}

// CreateTestBudgetYearWithDates creates a budget year with explicit bounds.
func CreateTestBudgetYearWithDates(t *testing.T, db *gorm.DB, userID string, start, end time.Time, active bool) *models.BudgetYear {
	t.Helper()

	year := &models.BudgetYear{
		UserID:    userID,
		Name:      fmt.Sprintf("Year %d", nextID()),
		StartDate: start,
		EndDate:   end,
		IsActive:  active,
	}
	if err := db.Create(year).Error; err != nil {
		t.Fatalf("failed to create test budget year: %v", err)
	}
	return year
}

// CreateTestFund creates an active fund of the given type.
func CreateTestFund(t *testing.T, db *gorm.DB, userID string, fundType models.FundType) *models.Fund {
	t.Helper()

	fund := &models.Fund{
		UserID:          userID,
		Name:            fmt.Sprintf("Test Fund %d", nextID()),
		Type:            fundType,
		Level:           1,
		IncludeInBudget: true,
		IsActive:        true,
	}
	if err := db.Create(fund).Error; err != nil {
		t.Fatalf("failed to create test fund: %v", err)
	}
	return fund
}

// CreateTestFundBudget links a fund to a budget year with the given amounts.
func CreateTestFundBudget(t *testing.T, db *gorm.DB, userID, fundID, yearID string, amount, amountGiven, spent string) *models.FundBudget {
	t.Helper()

	fb := &models.FundBudget{
		UserID:       userID,
		FundID:       fundID,
		BudgetYearID: yearID,
		Amount:       Amount(t, amount),
		AmountGiven:  Amount(t, amountGiven),
		Spent:        Amount(t, spent),
	}
	if err := db.Create(fb).Error; err != nil {
		t.Fatalf("failed to create test fund budget: %v", err)
	}
	return fb
}

// CreateTestCategory creates a category attached to the given fund.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID, fundID string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Category %d", nextID()),
		FundID:   fundID,
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestIncome creates an income dated to the given day.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID, yearID string, amount string, date time.Time) *models.Income {
	t.Helper()

	income := &models.Income{
		UserID:       userID,
		BudgetYearID: yearID,
		Name:         fmt.Sprintf("Test Income %d", nextID()),
		Amount:       Amount(t, amount),
		Source:       "salary",
		Date:         date,
	}
	income.StampPeriod()
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// CreateTestExpense creates an expense against the given category and fund.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, yearID, categoryID, fundID string, amount string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:       userID,
		BudgetYearID: yearID,
		CategoryID:   categoryID,
		FundID:       fundID,
		Name:         fmt.Sprintf("Test Expense %d", nextID()),
		Amount:       Amount(t, amount),
		Date:         date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestTithe creates a tithe entry dated to the given day.
func CreateTestTithe(t *testing.T, db *gorm.DB, userID string, amount string, date time.Time) *models.Tithe {
	t.Helper()

	tithe := &models.Tithe{
		UserID:      userID,
		Description: fmt.Sprintf("Test Tithe %d", nextID()),
		Amount:      Amount(t, amount),
		Date:        date,
	}
	if err := db.Create(tithe).Error; err != nil {
		t.Fatalf("failed to create test tithe: %v", err)
	}
	return tithe
}

// CreateTestDebt creates an unpaid debt of the given direction.
func CreateTestDebt(t *testing.T, db *gorm.DB, userID string, debtType models.DebtType, amount string) *models.Debt {
	t.Helper()

	debt := &models.Debt{
		UserID:      userID,
		Description: fmt.Sprintf("Test Debt %d", nextID()),
		Amount:      Amount(t, amount),
		Type:        debtType,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// CreateTestTask creates an open, unimportant task.
func CreateTestTask(t *testing.T, db *gorm.DB, userID string) *models.Task {
	t.Helper()

	task := &models.Task{
		UserID: userID,
		Title:  fmt.Sprintf("Test Task %d", nextID()),
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateTestNote creates an unpinned note.
func CreateTestNote(t *testing.T, db *gorm.DB, userID string) *models.Note {
	t.Helper()

	note := &models.Note{
		UserID:  userID,
		Title:   fmt.Sprintf("Test Note %d", nextID()),
		Content: "note body",
	}
	if err := db.Create(note).Error; err != nil {
		t.Fatalf("failed to create test note: %v", err)
	}
	return note
}

// SnapshotLine describes one detail row for CreateTestSnapshot.
type SnapshotLine struct {
	Type     string
	Amount   string
	Category models.AssetCategory
}

// CreateTestSnapshot creates an asset snapshot with the given detail lines.
func CreateTestSnapshot(t *testing.T, db *gorm.DB, userID string, date time.Time, lines []SnapshotLine) *models.AssetSnapshot {
	t.Helper()

	snap := &models.AssetSnapshot{
		UserID: userID,
		Date:   date,
	}
	if err := db.Create(snap).Error; err != nil {
		t.Fatalf("failed to create test snapshot: %v", err)
	}
	for _, line := range lines {
		detail := &models.AssetDetail{
			AssetSnapshotID: snap.ID,
			AssetType:       line.Type,
			AssetName:       line.Type,
			Amount:          Amount(t, line.Amount),
			Category:        line.Category,
		}
		if err := db.Create(detail).Error; err != nil {
			t.Fatalf("failed to create test asset detail: %v", err)
		}
		snap.Details = append(snap.Details, *detail)
	}
	return snap
}

// CreateTestSetting creates a string-typed system setting.
func CreateTestSetting(t *testing.T, db *gorm.DB, userID, key, value string) *models.SystemSetting {
	t.Helper()

	setting := &models.SystemSetting{
		UserID:       userID,
		SettingKey:   key,
		SettingValue: value,
		DataType:     models.SettingTypeString,
	}
	if err := db.Create(setting).Error; err != nil {
		t.Fatalf("failed to create test setting: %v", err)
	}
	return setting
}
