package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/testutil"
)

func newDashboardTestService(db *gorm.DB) DashboardServicer {
	return NewDashboardService(db, NewBudgetYearService(db))
}

func TestGetDashboard(t *testing.T) {
	t.Run("composes_active_year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newDashboardTestService(db)
		user := testutil.CreateTestUser(t, db)
		year := testutil.CreateTestBudgetYear(t, db, user.ID)
		fund := testutil.CreateTestFund(t, db, user.ID, models.FundTypeMonthly)
		category := testutil.CreateTestCategory(t, db, user.ID, fund.ID)
		mid := year.StartDate.AddDate(0, 3, 0)

		testutil.CreateTestIncome(t, db, user.ID, year.ID, "10000.00", mid)
		testutil.CreateTestExpense(t, db, user.ID, year.ID, category.ID, fund.ID, "2500.00", mid)
		testutil.CreateTestTithe(t, db, user.ID, "300.00", mid)
		testutil.CreateTestDebt(t, db, user.ID, models.DebtTypeOwedToMe, "400.00")
		testutil.CreateTestTask(t, db, user.ID)

		dash, err := svc.GetDashboard(user.ID, "")
		testutil.AssertNoError(t, err)

		if dash.BudgetYear == nil || dash.BudgetYear.ID != year.ID {
			t.Fatal("expected active budget year on dashboard")
		}
		testutil.AssertAmount(t, "10000.00", dash.Income.Total)
		testutil.AssertAmount(t, "2500.00", dash.Expenses.Total)
		testutil.AssertAmount(t, "7500.00", dash.Balance)
		testutil.AssertAmount(t, "300.00", dash.Tithe.Given)
		testutil.AssertAmount(t, "1000.00", dash.Tithe.Expected)
		testutil.AssertAmount(t, "400.00", dash.Debts.OwedToMe)
		if dash.Tasks.Pending != 1 {
			t.Errorf("expected 1 pending task, got %d", dash.Tasks.Pending)
		}
		if len(dash.Expenses.Recent) != 1 {
			t.Errorf("expected 1 recent expense, got %d", len(dash.Expenses.Recent))
		}
	})

	t.Run("no_active_year_tolerated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newDashboardTestService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestDebt(t, db, user.ID, models.DebtTypeIOwe, "150.00")

		dash, err := svc.GetDashboard(user.ID, "")
		testutil.AssertNoError(t, err)

		if dash.BudgetYear != nil {
			t.Error("expected nil budget year")
		}
		testutil.AssertAmount(t, "0", dash.Income.Total)
		testutil.AssertAmount(t, "150.00", dash.Debts.IOwe)
	})

	t.Run("explicit_year_overrides_active", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newDashboardTestService(db)
		user := testutil.CreateTestUser(t, db)
		active := testutil.CreateTestBudgetYear(t, db, user.ID)
		past := testutil.CreateTestBudgetYearWithDates(t, db, user.ID,
			active.StartDate.AddDate(-1, 0, 0), active.StartDate.AddDate(0, 0, -1), false)
		testutil.CreateTestIncome(t, db, user.ID, past.ID, "5000.00", past.StartDate.AddDate(0, 1, 0))

		dash, err := svc.GetDashboard(user.ID, past.ID)
		testutil.AssertNoError(t, err)
		if dash.BudgetYear.ID != past.ID {
			t.Fatalf("expected year %s, got %s", past.ID, dash.BudgetYear.ID)
		}
		testutil.AssertAmount(t, "5000.00", dash.Income.Total)
	})

	t.Run("unknown_year_fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newDashboardTestService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetDashboard(user.ID, "00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "BUDGET_YEAR_NOT_FOUND")
	})

	t.Run("budget_allocation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newDashboardTestService(db)
		user := testutil.CreateTestUser(t, db)
		year := testutil.CreateTestBudgetYear(t, db, user.ID)
		fund := testutil.CreateTestFund(t, db, user.ID, models.FundTypeAnnual)
		testutil.CreateTestFundBudget(t, db, user.ID, fund.ID, year.ID, "1200.00", "0", "400.00")

		dash, err := svc.GetDashboard(user.ID, "")
		testutil.AssertNoError(t, err)

		testutil.AssertAmount(t, "1200.00", dash.Budget.Total)
		testutil.AssertAmount(t, "400.00", dash.Budget.Spent)
		testutil.AssertAmount(t, "800.00", dash.Budget.Remaining)
	})

	t.Run("latest_snapshot_net_worth", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newDashboardTestService(db)
		user := testutil.CreateTestUser(t, db)
		year := testutil.CreateTestBudgetYear(t, db, user.ID)
		testutil.CreateTestSnapshot(t, db, user.ID, year.StartDate, []testutil.SnapshotLine{
			{Type: "bank", Amount: "9000.00", Category: models.AssetCategoryAsset},
			{Type: "loan", Amount: "4000.00", Category: models.AssetCategoryLiability},
		})

		dash, err := svc.GetDashboard(user.ID, "")
		testutil.AssertNoError(t, err)

		testutil.AssertAmount(t, "5000.00", dash.Assets.NetWorth)
		if dash.Assets.LastUpdated == nil {
			t.Error("expected snapshot date on assets corner")
		}
	})
}
