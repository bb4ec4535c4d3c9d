package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/metrics"
	"github.com/Nanif/budget-api/internal/models"
)

// recentExpenseCount is how many of the newest expenses the dashboard lists.
const recentExpenseCount = 10

// dashboardService composes the per-user overview out of independent
// fetches across the finance tables.
type dashboardService struct {
	db    *gorm.DB
	years BudgetYearServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, years BudgetYearServicer) DashboardServicer {
	return &dashboardService{db: db, years: years}
}

// GetDashboard builds the overview for one user and one budget year. An
// explicit budgetYearID must exist; otherwise the active year is used.
// Having no active year is not an error: the year-scoped corners come
// back zeroed around a null budget year, while debts, tasks, and assets
// are still computed.
func (s *dashboardService) GetDashboard(userID, budgetYearID string) (*Dashboard, error) {
	var year *models.BudgetYear
	if budgetYearID != "" {
		resolved, err := s.years.GetBudgetYearByID(userID, budgetYearID)
		if err != nil {
			return nil, err
		}
		year = resolved
	} else {
		resolved, err := s.years.GetActiveBudgetYear(userID)
		if err != nil && !errors.Is(err, apperrors.ErrNoActiveBudgetYear) {
			return nil, err
		}
		year = resolved
	}

	var (
		incomes     []models.Income
		expenses    []models.Expense
		fundBudgets []models.FundBudget
		debts       []models.Debt
		tasks       []models.Task
		tithes      []models.Tithe
		snapshot    *models.AssetSnapshot
	)

	// The seven reads are independent; fire them together and wait.
	var g errgroup.Group

	if year != nil {
		g.Go(func() error {
			return s.db.Where("user_id = ? AND budget_year_id = ?", userID, year.ID).
				Find(&incomes).Error
		})
		g.Go(func() error {
			return s.db.Preload("Category").Preload("Fund").
				Where("user_id = ? AND budget_year_id = ?", userID, year.ID).
				Order("date DESC").
				Find(&expenses).Error
		})
		g.Go(func() error {
			return s.db.Preload("Fund").
				Where("user_id = ? AND budget_year_id = ?", userID, year.ID).
				Find(&fundBudgets).Error
		})
		g.Go(func() error {
			return s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, year.StartDate, year.EndDate).
				Find(&tithes).Error
		})
	}
	g.Go(func() error {
		return s.db.Where("user_id = ?", userID).Find(&debts).Error
	})
	g.Go(func() error {
		return s.db.Where("user_id = ?", userID).Find(&tasks).Error
	})
	g.Go(func() error {
		var snap models.AssetSnapshot
		err := s.db.Preload("Details").
			Where("user_id = ?", userID).
			Order("date DESC").
			First(&snap).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No snapshots yet; the assets corner stays zeroed.
			return nil
		}
		if err != nil {
			return err
		}
		snapshot = &snap
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	dashboard := &Dashboard{BudgetYear: year}

	incomeTotal := metrics.Total(incomes, func(i models.Income) decimal.Decimal { return i.Amount })
	dashboard.Income = DashboardIncome{Total: incomeTotal}

	expenseTotal := metrics.Total(expenses, func(e models.Expense) decimal.Decimal { return e.Amount })
	recent := expenses
	if len(recent) > recentExpenseCount {
		recent = recent[:recentExpenseCount]
	}
	if recent == nil {
		recent = []models.Expense{}
	}
	dashboard.Expenses = DashboardExpenses{Total: expenseTotal, Recent: recent}

	if year != nil {
		alloc := metrics.AllocateBudgets(year.StartDate, year.EndDate, fundBudgets)
		dashboard.Budget = DashboardBudget{
			Total:     alloc.TotalBudget,
			Allocated: alloc.TotalAllocated,
			Spent:     alloc.TotalSpent,
			Remaining: alloc.Remaining,
		}
	} else {
		dashboard.Budget = DashboardBudget{
			Total:     decimal.Zero,
			Allocated: decimal.Zero,
			Spent:     decimal.Zero,
			Remaining: decimal.Zero,
		}
	}

	dashboard.Balance = incomeTotal.Sub(expenseTotal)

	owedToMe, iOwe := decimal.Zero, decimal.Zero
	for _, d := range debts {
		if d.IsPaid {
			continue
		}
		if d.Type == models.DebtTypeOwedToMe {
			owedToMe = owedToMe.Add(d.Amount)
		} else {
			iOwe = iOwe.Add(d.Amount)
		}
	}
	dashboard.Debts = DashboardDebts{
		OwedToMe: owedToMe,
		IOwe:     iOwe,
		NetDebt:  owedToMe.Sub(iOwe),
	}

	taskSummary := TaskSummary{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			taskSummary.Completed++
			continue
		}
		taskSummary.Pending++
		if task.Important {
			taskSummary.Important++
		}
	}
	dashboard.Tasks = taskSummary

	given := metrics.Total(tithes, func(t models.Tithe) decimal.Decimal { return t.Amount })
	expected := incomeTotal.Mul(titheRate)
	dashboard.Tithe = DashboardTithe{
		Given:      given,
		Expected:   expected,
		Balance:    expected.Sub(given),
		Percentage: metrics.Percentage(given, incomeTotal),
	}

	assets := DashboardAssets{NetWorth: decimal.Zero}
	if snapshot != nil {
		assets.NetWorth = metrics.NetWorth(snapshot.Details)
		assets.LastUpdated = &snapshot.Date
	}
	dashboard.Assets = assets

	return dashboard, nil
}
