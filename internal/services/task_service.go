package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/query"
)

// taskService handles task business logic.
type taskService struct {
	db *gorm.DB
}

// NewTaskService creates a new TaskServicer.
func NewTaskService(db *gorm.DB) TaskServicer {
	return &taskService{db: db}
}

// CreateTask creates a new open task.
func (s *taskService) CreateTask(userID, title, description string, important bool) (*models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Title is required")
	}

	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Important:   important,
	}

	if err := s.db.Create(task).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return task, nil
}

// GetUserTasks returns a filtered, paginated list of tasks, newest first.
func (s *taskService) GetUserTasks(userID string, filter TaskFilter) (*query.PageResponse[models.Task], error) {
	page := filter.Page.OrDefaults()

	equals := map[string]any{}
	if filter.Completed != nil {
		equals["completed"] = *filter.Completed
	}
	if filter.Important != nil {
		equals["important"] = *filter.Important
	}

	scope := query.Params{
		UserID:        userID,
		Search:        filter.Search,
		SearchColumns: []string{"title", "description"},
		Equals:        equals,
		Order:         "created_at DESC",
	}.Scope()

	var totalItems int64
	if err := s.db.Model(&models.Task{}).Scopes(scope).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var tasks []models.Task
	if err := s.db.Scopes(scope, query.Paginate(page)).Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := query.NewPageResponse(tasks, page, totalItems)
	return &result, nil
}

// GetTaskByID retrieves a task by ID for a specific user.
func (s *taskService) GetTaskByID(userID, taskID string) (*models.Task, error) {
	var task models.Task
	if err := s.db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &task, nil
}

// UpdateTask updates the supplied fields of a task.
func (s *taskService) UpdateTask(userID, taskID, title string, description *string, important *bool) (*models.Task, error) {
	task, err := s.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if title != "" {
		updates["title"] = title
	}
	if description != nil {
		updates["description"] = *description
	}
	if important != nil {
		updates["important"] = *important
	}

	if len(updates) == 0 {
		return task, nil
	}

	if err := s.db.Model(task).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return task, nil
}

// ToggleTaskCompleted flips a task between done and open, keeping the
// completion timestamp in step: set when completing, cleared on reopen.
func (s *taskService) ToggleTaskCompleted(userID, taskID string) (*models.Task, error) {
	task, err := s.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"completed": !task.Completed}
	if task.Completed {
		updates["completed_at"] = nil
	} else {
		updates["completed_at"] = time.Now()
	}

	if err := s.db.Model(task).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetTaskByID(userID, taskID)
}

// ToggleTaskImportant flips a task's importance flag.
func (s *taskService) ToggleTaskImportant(userID, taskID string) (*models.Task, error) {
	task, err := s.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(task).Update("important", !task.Important).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetTaskByID(userID, taskID)
}

// DeleteTask removes a task.
func (s *taskService) DeleteTask(userID, taskID string) error {
	task, err := s.GetTaskByID(userID, taskID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(task).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetTaskSummary counts a user's tasks by state. Important counts open
// important tasks only; completed ones no longer need attention.
func (s *taskService) GetTaskSummary(userID string) (*TaskSummary, error) {
	var tasks []models.Task
	if err := s.db.Where("user_id = ?", userID).Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &TaskSummary{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			summary.Completed++
			continue
		}
		summary.Pending++
		if task.Important {
			summary.Important++
		}
	}
	return summary, nil
}
