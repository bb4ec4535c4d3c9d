package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nanif/budget-api/internal/metrics"
	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/query"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID string, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// BudgetYearServicer defines the contract for budget-year business logic.
type BudgetYearServicer interface {
	CreateBudgetYear(userID, name string, startDate, endDate time.Time) (*models.BudgetYear, error)
	GetUserBudgetYears(userID string) ([]models.BudgetYear, error)
	GetBudgetYearByID(userID, yearID string) (*models.BudgetYear, error)
	GetActiveBudgetYear(userID string) (*models.BudgetYear, error)
	ResolveBudgetYearForDate(userID string, date time.Time) (*models.BudgetYear, error)
	UpdateBudgetYear(userID, yearID, name string, startDate, endDate *time.Time) (*models.BudgetYear, error)
	ActivateBudgetYear(userID, yearID string) (*models.BudgetYear, error)
	DeleteBudgetYear(userID, yearID string) error
}

// FundServicer defines the contract for fund and fund-budget business logic.
type FundServicer interface {
	CreateFund(userID, name string, fundType models.FundType, level int, includeInBudget bool, displayOrder int) (*models.Fund, error)
	GetUserFunds(userID string, budgetYearID string) ([]models.Fund, error)
	GetFundByID(userID, fundID string) (*models.Fund, error)
	UpdateFund(userID, fundID, name string, fundType *models.FundType, level *int, includeInBudget, isActive *bool, displayOrder *int) (*models.Fund, error)
	DeleteFund(userID, fundID string) error
	UpsertFundBudget(userID, fundID, yearID string, amount, amountGiven, spent *decimal.Decimal) (*models.FundBudget, error)
}

// CategoryServicer defines the contract for category business logic.
type CategoryServicer interface {
	CreateCategory(userID, name, fundID, colorClass string) (*models.Category, error)
	GetUserCategories(userID, fundID string) ([]models.Category, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name, fundID, colorClass string, isActive *bool) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// IncomeFilter holds optional filter parameters for listing incomes.
type IncomeFilter struct {
	StartDate    *time.Time
	EndDate      *time.Time
	Search       string
	Source       string
	BudgetYearID string
	Page         query.PageRequest
}

// IncomeSummary aggregates a user's filtered incomes.
type IncomeSummary struct {
	Total    decimal.Decimal          `json:"total"`
	Count    int                      `json:"count"`
	Average  decimal.Decimal          `json:"average"`
	BySource map[string]metrics.Group `json:"by_source"`
	ByMonth  map[string]metrics.Group `json:"by_month"`
}

// IncomeServicer defines the contract for income business logic.
type IncomeServicer interface {
	CreateIncome(userID, name string, amount decimal.Decimal, source string, date time.Time, note string) (*models.Income, error)
	GetUserIncomes(userID string, filter IncomeFilter) (*query.PageResponse[models.Income], error)
	GetIncomeByID(userID, incomeID string) (*models.Income, error)
	UpdateIncome(userID, incomeID, name string, amount *decimal.Decimal, source *string, date *time.Time, note *string) (*models.Income, error)
	DeleteIncome(userID, incomeID string) error
	GetIncomeSummary(userID string, filter IncomeFilter) (*IncomeSummary, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	StartDate    *time.Time
	EndDate      *time.Time
	Search       string
	CategoryID   string
	FundID       string
	BudgetYearID string
	Page         query.PageRequest
}

// ExpenseSummary aggregates a user's filtered expenses.
type ExpenseSummary struct {
	Total      decimal.Decimal          `json:"total"`
	Count      int                      `json:"count"`
	Average    decimal.Decimal          `json:"average"`
	ByCategory map[string]metrics.Group `json:"by_category"`
	ByFund     map[string]metrics.Group `json:"by_fund"`
	ByMonth    map[string]metrics.Group `json:"by_month"`
}

// ExpenseServicer defines the contract for expense business logic.
type ExpenseServicer interface {
	CreateExpense(userID, name string, amount decimal.Decimal, categoryID string, date time.Time, note string) (*models.Expense, error)
	GetUserExpenses(userID string, filter ExpenseFilter) (*query.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	UpdateExpense(userID, expenseID, name string, amount *decimal.Decimal, categoryID *string, date *time.Time, note *string) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
	GetExpenseSummary(userID string, filter ExpenseFilter) (*ExpenseSummary, error)
}

// TitheFilter holds optional filter parameters for listing tithes.
type TitheFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
	Page      query.PageRequest
}

// TitheSummary compares giving against a tenth of income over the same window.
type TitheSummary struct {
	TotalGiven    decimal.Decimal `json:"total_given"`
	ExpectedTithe decimal.Decimal `json:"expected_tithe"`
	Balance       decimal.Decimal `json:"balance"`
	Percentage    float64         `json:"percentage"`
	Count         int             `json:"count"`
}

// TitheServicer defines the contract for tithe business logic.
type TitheServicer interface {
	CreateTithe(userID, description string, amount decimal.Decimal, date time.Time, note string) (*models.Tithe, error)
	GetUserTithes(userID string, filter TitheFilter) (*query.PageResponse[models.Tithe], error)
	GetTitheByID(userID, titheID string) (*models.Tithe, error)
	UpdateTithe(userID, titheID, description string, amount *decimal.Decimal, date *time.Time, note *string) (*models.Tithe, error)
	DeleteTithe(userID, titheID string) error
	GetTitheSummary(userID string, startDate, endDate *time.Time) (*TitheSummary, error)
}

// DebtFilter holds optional filter parameters for listing debts.
type DebtFilter struct {
	Search string
	Type   *models.DebtType
	IsPaid *bool
	Page   query.PageRequest
}

// DebtSummary reduces unpaid debts into the two directions and their net.
type DebtSummary struct {
	OwedToMe    decimal.Decimal `json:"owed_to_me"`
	IOwe        decimal.Decimal `json:"i_owe"`
	NetDebt     decimal.Decimal `json:"net_debt"`
	UnpaidCount int             `json:"unpaid_count"`
	PaidCount   int             `json:"paid_count"`
}

// DebtServicer defines the contract for debt business logic.
type DebtServicer interface {
	CreateDebt(userID, description string, amount decimal.Decimal, debtType models.DebtType, note string) (*models.Debt, error)
	GetUserDebts(userID string, filter DebtFilter) (*query.PageResponse[models.Debt], error)
	GetDebtByID(userID, debtID string) (*models.Debt, error)
	UpdateDebt(userID, debtID, description string, amount *decimal.Decimal, debtType *models.DebtType, note *string) (*models.Debt, error)
	ToggleDebtPaid(userID, debtID string) (*models.Debt, error)
	DeleteDebt(userID, debtID string) error
	GetDebtSummary(userID string) (*DebtSummary, error)
}

// TaskFilter holds optional filter parameters for listing tasks.
type TaskFilter struct {
	Search    string
	Completed *bool
	Important *bool
	Page      query.PageRequest
}

// TaskSummary counts a user's tasks by state.
type TaskSummary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Important int `json:"important"`
}

// TaskServicer defines the contract for task business logic.
type TaskServicer interface {
	CreateTask(userID, title, description string, important bool) (*models.Task, error)
	GetUserTasks(userID string, filter TaskFilter) (*query.PageResponse[models.Task], error)
	GetTaskByID(userID, taskID string) (*models.Task, error)
	UpdateTask(userID, taskID, title string, description *string, important *bool) (*models.Task, error)
	ToggleTaskCompleted(userID, taskID string) (*models.Task, error)
	ToggleTaskImportant(userID, taskID string) (*models.Task, error)
	DeleteTask(userID, taskID string) error
	GetTaskSummary(userID string) (*TaskSummary, error)
}

// NoteFilter holds optional filter parameters for listing notes.
type NoteFilter struct {
	Search string
	Page   query.PageRequest
}

// NoteServicer defines the contract for note business logic.
type NoteServicer interface {
	CreateNote(userID, title, content string, isPinned bool) (*models.Note, error)
	GetUserNotes(userID string, filter NoteFilter) (*query.PageResponse[models.Note], error)
	GetNoteByID(userID, noteID string) (*models.Note, error)
	UpdateNote(userID, noteID, title string, content *string, isPinned *bool) (*models.Note, error)
	DeleteNote(userID, noteID string) error
}

// AssetDetailInput is one holding or liability line for a new snapshot.
type AssetDetailInput struct {
	AssetType string
	AssetName string
	Amount    decimal.Decimal
	Category  models.AssetCategory
}

// AssetServicer defines the contract for asset snapshot business logic.
type AssetServicer interface {
	CreateSnapshot(userID string, date time.Time, note string, details []AssetDetailInput) (*models.AssetSnapshot, error)
	GetUserSnapshots(userID string, startDate, endDate *time.Time, page query.PageRequest) (*query.PageResponse[models.AssetSnapshot], error)
	GetLatestSnapshot(userID string) (*models.AssetSnapshot, error)
	GetSnapshotByID(userID, snapshotID string) (*models.AssetSnapshot, error)
	DeleteSnapshot(userID, snapshotID string) error
	GetTrends(userID string, startDate, endDate *time.Time) (*metrics.TrendResult, error)
}

// SettingServicer defines the contract for per-user system settings.
type SettingServicer interface {
	GetUserSettings(userID string) ([]models.SystemSetting, error)
	GetSetting(userID, key string) (*models.SystemSetting, error)
	UpsertSetting(userID, key, value string, dataType models.SettingType) (*models.SystemSetting, error)
	DeleteSetting(userID, key string) error
}

// Dashboard is the composed overview for one user and budget year.
type Dashboard struct {
	BudgetYear *models.BudgetYear `json:"budget_year"`
	Income     DashboardIncome    `json:"income"`
	Expenses   DashboardExpenses  `json:"expenses"`
	Budget     DashboardBudget    `json:"budget"`
	Balance    decimal.Decimal    `json:"balance"`
	Debts      DashboardDebts     `json:"debts"`
	Tasks      TaskSummary        `json:"tasks"`
	Tithe      DashboardTithe     `json:"tithe"`
	Assets     DashboardAssets    `json:"assets"`
}

// DashboardIncome is the income corner of the dashboard.
type DashboardIncome struct {
	Total decimal.Decimal `json:"total"`
}

// DashboardExpenses is the expense corner of the dashboard.
type DashboardExpenses struct {
	Total  decimal.Decimal  `json:"total"`
	Recent []models.Expense `json:"recent"`
}

// DashboardBudget is the budget allocation corner of the dashboard.
type DashboardBudget struct {
	Total     decimal.Decimal `json:"total"`
	Allocated decimal.Decimal `json:"allocated"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
}

// DashboardDebts is the unpaid-debt corner of the dashboard.
type DashboardDebts struct {
	OwedToMe decimal.Decimal `json:"owed_to_me"`
	IOwe     decimal.Decimal `json:"i_owe"`
	NetDebt  decimal.Decimal `json:"net_debt"`
}

// DashboardTithe is the giving corner of the dashboard.
type DashboardTithe struct {
	Given      decimal.Decimal `json:"given"`
	Expected   decimal.Decimal `json:"expected"`
	Balance    decimal.Decimal `json:"balance"`
	Percentage float64         `json:"percentage"`
}

// DashboardAssets is the net-worth corner of the dashboard.
type DashboardAssets struct {
	NetWorth    decimal.Decimal `json:"net_worth"`
	LastUpdated *time.Time      `json:"last_updated"`
}

// DashboardServicer defines the contract for the dashboard composer.
type DashboardServicer interface {
	GetDashboard(userID, budgetYearID string) (*Dashboard, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
