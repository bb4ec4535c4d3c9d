package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/Nanif/budget-api/internal/config"
	"github.com/Nanif/budget-api/internal/database"
	"github.com/Nanif/budget-api/internal/handlers"
	"github.com/Nanif/budget-api/internal/logger"
	"github.com/Nanif/budget-api/internal/middleware"
	"github.com/Nanif/budget-api/internal/services"
	"github.com/Nanif/budget-api/internal/validator"

	_ "github.com/Nanif/budget-api/internal/docs" // Import swagger docs
)

// @title           Budget API
// @version         1.0
// @description     Personal and family finance API: budget years, envelope funds, expense tracking, tithes, debts, tasks, notes and asset snapshots.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	router := newRouter(dbManager.DB())

	log.Infof("Starting budget API server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

// newRouter wires the full service and handler graph onto a gin engine.
// Custom binding validators must be registered before any route binds input.
func newRouter(db *gorm.DB) *gin.Engine {
	validator.Register()

	// Initialize services
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

	// Initialize handlers
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

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Dashboard
	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	// Budget year routes
	years := protected.Group("/budget-years")
	years.POST("", yearHandler.CreateBudgetYear)
	years.GET("", yearHandler.GetBudgetYears)
	years.GET("/active", yearHandler.GetActiveBudgetYear)
	years.GET("/:id", yearHandler.GetBudgetYear)
	years.PUT("/:id", yearHandler.UpdateBudgetYear)
	years.POST("/:id/activate", yearHandler.ActivateBudgetYear)
	years.DELETE("/:id", yearHandler.DeleteBudgetYear)

	// Fund routes
	funds := protected.Group("/funds")
	funds.POST("", fundHandler.CreateFund)
	funds.GET("", fundHandler.GetFunds)
	funds.GET("/:id", fundHandler.GetFund)
	funds.PUT("/:id", fundHandler.UpdateFund)
	funds.DELETE("/:id", fundHandler.DeleteFund)
	funds.PUT("/:id/budgets/:yearID", fundHandler.UpsertFundBudget)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Income routes
	incomes := protected.Group("/incomes")
	incomes.POST("", incomeHandler.CreateIncome)
	incomes.GET("", incomeHandler.GetIncomes)
	incomes.GET("/summary", incomeHandler.GetIncomeSummary)
	incomes.GET("/:id", incomeHandler.GetIncome)
	incomes.PUT("/:id", incomeHandler.UpdateIncome)
	incomes.DELETE("/:id", incomeHandler.DeleteIncome)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/summary", expenseHandler.GetExpenseSummary)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Tithe routes
	tithes := protected.Group("/tithes")
	tithes.POST("", titheHandler.CreateTithe)
	tithes.GET("", titheHandler.GetTithes)
	tithes.GET("/summary", titheHandler.GetTitheSummary)
	tithes.GET("/:id", titheHandler.GetTithe)
	tithes.PUT("/:id", titheHandler.UpdateTithe)
	tithes.DELETE("/:id", titheHandler.DeleteTithe)

	// Debt routes
	debts := protected.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.GetDebts)
	debts.GET("/summary", debtHandler.GetDebtSummary)
	debts.GET("/:id", debtHandler.GetDebt)
	debts.PUT("/:id", debtHandler.UpdateDebt)
	debts.PATCH("/:id/pay", debtHandler.ToggleDebtPaid)
	debts.DELETE("/:id", debtHandler.DeleteDebt)

	// Task routes
	tasks := protected.Group("/tasks")
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("", taskHandler.GetTasks)
	tasks.GET("/summary", taskHandler.GetTaskSummary)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.PATCH("/:id/complete", taskHandler.ToggleTaskCompleted)
	tasks.PATCH("/:id/important", taskHandler.ToggleTaskImportant)
	tasks.DELETE("/:id", taskHandler.DeleteTask)

	// Note routes
	notes := protected.Group("/notes")
	notes.POST("", noteHandler.CreateNote)
	notes.GET("", noteHandler.GetNotes)
	notes.GET("/:id", noteHandler.GetNote)
	notes.PUT("/:id", noteHandler.UpdateNote)
	notes.DELETE("/:id", noteHandler.DeleteNote)

	// Asset snapshot routes
	assets := protected.Group("/assets")
	assets.POST("/snapshots", assetHandler.CreateSnapshot)
	assets.GET("/snapshots", assetHandler.GetSnapshots)
	assets.GET("/snapshots/latest", assetHandler.GetLatestSnapshot)
	assets.GET("/snapshots/:id", assetHandler.GetSnapshot)
	assets.DELETE("/snapshots/:id", assetHandler.DeleteSnapshot)
	assets.GET("/trends", assetHandler.GetTrends)

	// System setting routes
	settings := protected.Group("/settings")
	settings.GET("", settingHandler.GetSettings)
	settings.GET("/:key", settingHandler.GetSetting)
	settings.PUT("/:key", settingHandler.UpsertSetting)
	settings.DELETE("/:key", settingHandler.DeleteSetting)

	return router
}
