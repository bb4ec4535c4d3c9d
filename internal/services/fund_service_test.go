package services

import (
	"testing"

	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/testutil"
)

func TestCreateFund(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db)
		user := testutil.CreateTestUser(t, db)

		fund, err := svc.CreateFund(user.ID, "Household", models.FundTypeMonthly, 1, true, 0)
		testutil.AssertNoError(t, err)

		if fund.ID == "" {
			t.Fatal("expected non-empty fund ID")
		}
		if fund.Type != models.FundTypeMonthly {
			t.Errorf("expected monthly fund, got %s", fund.Type)
		}
		if !fund.IsActive {
			t.Error("expected new fund to be active")
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateFund(user.ID, "Household", models.FundTypeMonthly, 1, true, 0)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateFund(user.ID, "Household", models.FundTypeAnnual, 2, true, 1)
		testutil.AssertAppError(t, err, "DUPLICATE_FUND_NAME")
	})

	t.Run("same_name_other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.CreateFund(user1.ID, "Household", models.FundTypeMonthly, 1, true, 0)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateFund(user2.ID, "Household", models.FundTypeMonthly, 1, true, 0)
		testutil.AssertNoError(t, err)
	})

	t.Run("bad_level", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateFund(user.ID, "Deep", models.FundTypeMonthly, 4, true, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserFunds(t *testing.T) {
	t.Run("display_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateFund(user.ID, "Second", models.FundTypeMonthly, 1, true, 2)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateFund(user.ID, "First", models.FundTypeAnnual, 1, true, 1)
		testutil.AssertNoError(t, err)

		funds, err := svc.GetUserFunds(user.ID, "")
		testutil.AssertNoError(t, err)
		if len(funds) != 2 {
			t.Fatalf("expected 2 funds, got %d", len(funds))
		}
		if funds[0].Name != "First" {
			t.Errorf("expected First first, got %s", funds[0].Name)
		}
	})

	t.Run("nests_year_budgets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db)
		user := testutil.CreateTestUser(t, db)
		year := testutil.CreateTestBudgetYear(t, db, user.ID)
		other := testutil.CreateTestBudgetYearWithDates(t, db, user.ID,
			year.StartDate.AddDate(1, 0, 0), year.EndDate.AddDate(1, 0, 0), false)
		fund := testutil.CreateTestFund(t, db, user.ID, models.FundTypeMonthly)
		testutil.CreateTestFundBudget(t, db, user.ID, fund.ID, year.ID, "100.00", "0", "0")
		testutil.CreateTestFundBudget(t, db, user.ID, fund.ID, other.ID, "200.00", "0", "0")

		funds, err := svc.GetUserFunds(user.ID, year.ID)
		testutil.AssertNoError(t, err)
		if len(funds) != 1 {
			t.Fatalf("expected 1 fund, got %d", len(funds))
		}
		if len(funds[0].Budgets) != 1 {
			t.Fatalf("expected 1 nested budget row, got %d", len(funds[0].Budgets))
		}
		testutil.AssertAmount(t, "100.00", funds[0].Budgets[0].Amount)
	})
}

func TestUpdateFund(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db)
		user := testutil.CreateTestUser(t, db)
		fund := testutil.CreateTestFund(t, db, user.ID, models.FundTypeMonthly)

		exclude := false
		annual := models.FundTypeAnnual
		updated, err := svc.UpdateFund(user.ID, fund.ID, "", &annual, nil, &exclude, nil, nil)
		testutil.AssertNoError(t, err)

		var reloaded models.Fund
		if err := db.First(&reloaded, "id = ?", updated.ID).Error; err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if reloaded.Type != models.FundTypeAnnual {
			t.Errorf("expected annual, got %s", reloaded.Type)
		}
		if reloaded.IncludeInBudget {
			t.Error("expected fund to be excluded from budget")
		}
		if reloaded.Name != fund.Name {
			t.Error("expected name to be untouched")
		}
	})
}

func TestDeleteFund(t *testing.T) {
	t.Run("refuses_when_budgeted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db)
		user := testutil.CreateTestUser(t, db)
		year := testutil.CreateTestBudgetYear(t, db, user.ID)
		fund := testutil.CreateTestFund(t, db, user.ID, models.FundTypeMonthly)
		testutil.CreateTestFundBudget(t, db, user.ID, fund.ID, year.ID, "100.00", "0", "0")

		err := svc.DeleteFund(user.ID, fund.ID)
		testutil.AssertAppError(t, err, "FUND_IN_USE")
	})

	t.Run("deletes_unused", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db)
		user := testutil.CreateTestUser(t, db)
		fund := testutil.CreateTestFund(t, db, user.ID, models.FundTypeSavings)

		testutil.AssertNoError(t, svc.DeleteFund(user.ID, fund.ID))

		_, err := svc.GetFundByID(user.ID, fund.ID)
		testutil.AssertAppError(t, err, "FUND_NOT_FOUND")
	})
}

func TestUpsertFundBudget(t *testing.T) {
	t.Run("creates_then_updates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db)
		user := testutil.CreateTestUser(t, db)
		year := testutil.CreateTestBudgetYear(t, db, user.ID)
		fund := testutil.CreateTestFund(t, db, user.ID, models.FundTypeMonthly)

		amount := testutil.Amount(t, "500.00")
		fb, err := svc.UpsertFundBudget(user.ID, fund.ID, year.ID, &amount, nil, nil)
		testutil.AssertNoError(t, err)
		testutil.AssertAmount(t, "500.00", fb.Amount)
		testutil.AssertAmount(t, "0", fb.AmountGiven)

		given := testutil.Amount(t, "120.00")
		fb2, err := svc.UpsertFundBudget(user.ID, fund.ID, year.ID, nil, &given, nil)
		testutil.AssertNoError(t, err)
		if fb2.ID != fb.ID {
			t.Error("expected upsert to reuse the existing row")
		}

		var reloaded models.FundBudget
		if err := db.First(&reloaded, "id = ?", fb.ID).Error; err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		testutil.AssertAmount(t, "500.00", reloaded.Amount)
		testutil.AssertAmount(t, "120.00", reloaded.AmountGiven)
	})

	t.Run("rejects_negative", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db)
		user := testutil.CreateTestUser(t, db)
		year := testutil.CreateTestBudgetYear(t, db, user.ID)
		fund := testutil.CreateTestFund(t, db, user.ID, models.FundTypeMonthly)

		bad := testutil.Amount(t, "-1.00")
		_, err := svc.UpsertFundBudget(user.ID, fund.ID, year.ID, &bad, nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundService(db)
		user := testutil.CreateTestUser(t, db)
		fund := testutil.CreateTestFund(t, db, user.ID, models.FundTypeMonthly)

		amount := testutil.Amount(t, "10.00")
		_, err := svc.UpsertFundBudget(user.ID, fund.ID, "00000000-0000-0000-0000-000000000000", &amount, nil, nil)
		testutil.AssertAppError(t, err, "BUDGET_YEAR_NOT_FOUND")
	})
}
