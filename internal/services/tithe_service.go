package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/metrics"
	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/query"
)

// titheRate is the expected share of income given, one tenth.
var titheRate = decimal.NewFromFloat(0.10)

// titheService handles tithe business logic.
type titheService struct {
	db *gorm.DB
}

// NewTitheService creates a new TitheServicer.
func NewTitheService(db *gorm.DB) TitheServicer {
	return &titheService{db: db}
}

// CreateTithe records a giving entry.
func (s *titheService) CreateTithe(userID, description string, amount decimal.Decimal, date time.Time, note string) (*models.Tithe, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Description is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}

	tithe := &models.Tithe{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Date:        date,
		Note:        note,
	}

	if err := s.db.Create(tithe).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return tithe, nil
}

// GetUserTithes returns a filtered, paginated list of tithes, newest first.
func (s *titheService) GetUserTithes(userID string, filter TitheFilter) (*query.PageResponse[models.Tithe], error) {
	page := filter.Page.OrDefaults()
	scope := query.Params{
		UserID:        userID,
		StartDate:     filter.StartDate,
		EndDate:       filter.EndDate,
		Search:        filter.Search,
		SearchColumns: []string{"description", "note"},
		Order:         "date DESC",
	}.Scope()

	var totalItems int64
	if err := s.db.Model(&models.Tithe{}).Scopes(scope).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var tithes []models.Tithe
	if err := s.db.Scopes(scope, query.Paginate(page)).Find(&tithes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := query.NewPageResponse(tithes, page, totalItems)
	return &result, nil
}

// GetTitheByID retrieves a tithe by ID for a specific user.
func (s *titheService) GetTitheByID(userID, titheID string) (*models.Tithe, error) {
	var tithe models.Tithe
	if err := s.db.Where("id = ? AND user_id = ?", titheID, userID).First(&tithe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTitheNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tithe, nil
}

// UpdateTithe updates the supplied fields of a tithe.
func (s *titheService) UpdateTithe(userID, titheID, description string, amount *decimal.Decimal, date *time.Time, note *string) (*models.Tithe, error) {
	tithe, err := s.GetTitheByID(userID, titheID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if description != "" {
		updates["description"] = description
	}
	if amount != nil {
		if !amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
		}
		updates["amount"] = *amount
	}
	if date != nil {
		updates["date"] = *date
	}
	if note != nil {
		updates["note"] = *note
	}

	if len(updates) == 0 {
		return tithe, nil
	}

	if err := s.db.Model(tithe).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return tithe, nil
}

// DeleteTithe removes a tithe.
func (s *titheService) DeleteTithe(userID, titheID string) error {
	tithe, err := s.GetTitheByID(userID, titheID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(tithe).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetTitheSummary compares giving against a tenth of income over the same
// optional date window. A window with no income yields zeroed expectations,
// never a division error.
func (s *titheService) GetTitheSummary(userID string, startDate, endDate *time.Time) (*TitheSummary, error) {
	titheScope := query.Params{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	}.Scope()

	var tithes []models.Tithe
	if err := s.db.Scopes(titheScope).Find(&tithes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	incomeScope := query.Params{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	}.Scope()

	var incomes []models.Income
	if err := s.db.Scopes(incomeScope).Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	given := metrics.Total(tithes, func(t models.Tithe) decimal.Decimal { return t.Amount })
	income := metrics.Total(incomes, func(i models.Income) decimal.Decimal { return i.Amount })
	expected := income.Mul(titheRate)

	return &TitheSummary{
		TotalGiven:    given,
		ExpectedTithe: expected,
		Balance:       expected.Sub(given),
		Percentage:    metrics.Percentage(given, income),
		Count:         len(tithes),
	}, nil
}
