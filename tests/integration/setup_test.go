package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Nanif/budget-api/internal/handlers"
	"github.com/Nanif/budget-api/internal/logger"
	"github.com/Nanif/budget-api/internal/middleware"
	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/services"
	"github.com/Nanif/budget-api/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.BudgetYear{},
		&models.Fund{},
		&models.FundBudget{},
		&models.Category{},
		&models.Income{},
		&models.Expense{},
		&models.Tithe{},
		&models.Debt{},
		&models.Task{},
		&models.Note{},
		&models.AssetSnapshot{},
		&models.AssetDetail{},
		&models.SystemSetting{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	yearService := services.NewBudgetYearService(db)
	fundService := services.NewFundService(db)
	categoryService := services.NewCategoryService(db)
	incomeService := services.NewIncomeService(db, yearService)
	expenseService := services.NewExpenseService(db, yearService, categoryService)
	titheService := services.NewTitheService(db)
	debtService := services.NewDebtService(db)
	taskService := services.NewTaskService(db)
	noteService := services.NewNoteService(db)
	assetService := services.NewAssetService(db)
	settingService := services.NewSettingService(db)
	dashboardService := services.NewDashboardService(db, yearService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	yearHandler := handlers.NewBudgetYearHandler(yearService, auditService)
	fundHandler := handlers.NewFundHandler(fundService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	titheHandler := handlers.NewTitheHandler(titheService, auditService)
	debtHandler := handlers.NewDebtHandler(debtService, auditService)
	taskHandler := handlers.NewTaskHandler(taskService, auditService)
	noteHandler := handlers.NewNoteHandler(noteService, auditService)
	assetHandler := handlers.NewAssetHandler(assetService, auditService)
	settingHandler := handlers.NewSettingHandler(settingService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	years := protected.Group("/budget-years")
	years.POST("", yearHandler.CreateBudgetYear)
	years.GET("", yearHandler.GetBudgetYears)
	years.GET("/active", yearHandler.GetActiveBudgetYear)
	years.GET("/:id", yearHandler.GetBudgetYear)
	years.PUT("/:id", yearHandler.UpdateBudgetYear)
	years.POST("/:id/activate", yearHandler.ActivateBudgetYear)
	years.DELETE("/:id", yearHandler.DeleteBudgetYear)

	funds := protected.Group("/funds")
	funds.POST("", fundHandler.CreateFund)
	funds.GET("", fundHandler.GetFunds)
	funds.GET("/:id", fundHandler.GetFund)
	funds.PUT("/:id", fundHandler.UpdateFund)
	funds.DELETE("/:id", fundHandler.DeleteFund)
	funds.PUT("/:id/budgets/:yearID", fundHandler.UpsertFundBudget)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	incomes := protected.Group("/incomes")
	incomes.POST("", incomeHandler.CreateIncome)
	incomes.GET("", incomeHandler.GetIncomes)
	incomes.GET("/summary", incomeHandler.GetIncomeSummary)
	incomes.GET("/:id", incomeHandler.GetIncome)
	incomes.PUT("/:id", incomeHandler.UpdateIncome)
	incomes.DELETE("/:id", incomeHandler.DeleteIncome)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/summary", expenseHandler.GetExpenseSummary)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	tithes := protected.Group("/tithes")
	tithes.POST("", titheHandler.CreateTithe)
	tithes.GET("", titheHandler.GetTithes)
	tithes.GET("/summary", titheHandler.GetTitheSummary)
	tithes.GET("/:id", titheHandler.GetTithe)
	tithes.PUT("/:id", titheHandler.UpdateTithe)
	tithes.DELETE("/:id", titheHandler.DeleteTithe)

	debts := protected.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.GetDebts)
	debts.GET("/summary", debtHandler.GetDebtSummary)
	debts.GET("/:id", debtHandler.GetDebt)
	debts.PUT("/:id", debtHandler.UpdateDebt)
	debts.PATCH("/:id/pay", debtHandler.ToggleDebtPaid)
	debts.DELETE("/:id", debtHandler.DeleteDebt)

	tasks := protected.Group("/tasks")
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("", taskHandler.GetTasks)
	tasks.GET("/summary", taskHandler.GetTaskSummary)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.PATCH("/:id/complete", taskHandler.ToggleTaskCompleted)
	tasks.PATCH("/:id/important", taskHandler.ToggleTaskImportant)
	tasks.DELETE("/:id", taskHandler.DeleteTask)

	notes := protected.Group("/notes")
	notes.POST("", noteHandler.CreateNote)
	notes.GET("", noteHandler.GetNotes)
	notes.GET("/:id", noteHandler.GetNote)
	notes.PUT("/:id", noteHandler.UpdateNote)
	notes.DELETE("/:id", noteHandler.DeleteNote)

	assets := protected.Group("/assets")
	assets.POST("/snapshots", assetHandler.CreateSnapshot)
	assets.GET("/snapshots", assetHandler.GetSnapshots)
	assets.GET("/snapshots/latest", assetHandler.GetLatestSnapshot)
	assets.GET("/snapshots/:id", assetHandler.GetSnapshot)
	assets.DELETE("/snapshots/:id", assetHandler.DeleteSnapshot)
	assets.GET("/trends", assetHandler.GetTrends)

	settings := protected.Group("/settings")
	settings.GET("", settingHandler.GetSettings)
	settings.GET("/:key", settingHandler.GetSetting)
	settings.PUT("/:key", settingHandler.UpsertSetting)
	settings.DELETE("/:key", settingHandler.DeleteSetting)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// assertAmount compares a JSON decimal value against an expected amount,
// ignoring exponent formatting differences like "1000" vs "1000.0".
func assertAmount(t *testing.T, got interface{}, want string) {
	t.Helper()
	s, ok := got.(string)
	if !ok {
		t.Fatalf("expected decimal string, got %T (%v)", got, got)
	}
	g, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	if !g.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected amount %s, got %s", want, s)
	}
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createBudgetYear creates a budget year over the given window and returns its ID.
func (app *testApp) createBudgetYear(t *testing.T, token, name, start, end string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"start_date":%q,"end_date":%q}`, name, start, end)
	rec := app.request("POST", "/api/v1/budget-years", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget year failed: %d %s", rec.Code, rec.Body.String())
	}
	year := parseJSON(t, rec)["budget_year"].(map[string]interface{})
	return year["id"].(string)
}
