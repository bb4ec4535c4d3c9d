package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/query"
	"github.com/Nanif/budget-api/internal/services"
)

type mockTaskService struct {
	createTaskFn          func(userID, title, description string, important bool) (*models.Task, error)
	getUserTasksFn        func(userID string, filter services.TaskFilter) (*query.PageResponse[models.Task], error)
	getTaskByIDFn         func(userID, taskID string) (*models.Task, error)
	updateTaskFn          func(userID, taskID, title string, description *string, important *bool) (*models.Task, error)
	toggleTaskCompletedFn func(userID, taskID string) (*models.Task, error)
	toggleTaskImportantFn func(userID, taskID string) (*models.Task, error)
	deleteTaskFn          func(userID, taskID string) error
	getTaskSummaryFn      func(userID string) (*services.TaskSummary, error)
}

func (m *mockTaskService) CreateTask(userID, title, description string, important bool) (*models.Task, error) {
	if m.createTaskFn != nil {
		return m.createTaskFn(userID, title, description, important)
	}
	return &models.Task{}, nil
}

func (m *mockTaskService) GetUserTasks(userID string, filter services.TaskFilter) (*query.PageResponse[models.Task], error) {
	if m.getUserTasksFn != nil {
		return m.getUserTasksFn(userID, filter)
	}
	return &query.PageResponse[models.Task]{Data: []models.Task{}}, nil
}

func (m *mockTaskService) GetTaskByID(userID, taskID string) (*models.Task, error) {
	if m.getTaskByIDFn != nil {
		return m.getTaskByIDFn(userID, taskID)
	}
	return &models.Task{}, nil
}

func (m *mockTaskService) UpdateTask(userID, taskID, title string, description *string, important *bool) (*models.Task, error) {
	if m.updateTaskFn != nil {
		return m.updateTaskFn(userID, taskID, title, description, important)
	}
	return &models.Task{}, nil
}

func (m *mockTaskService) ToggleTaskCompleted(userID, taskID string) (*models.Task, error) {
	if m.toggleTaskCompletedFn != nil {
		return m.toggleTaskCompletedFn(userID, taskID)
	}
	return &models.Task{}, nil
}

func (m *mockTaskService) ToggleTaskImportant(userID, taskID string) (*models.Task, error) {
	if m.toggleTaskImportantFn != nil {
		return m.toggleTaskImportantFn(userID, taskID)
	}
	return &models.Task{}, nil
}

func (m *mockTaskService) DeleteTask(userID, taskID string) error {
	if m.deleteTaskFn != nil {
		return m.deleteTaskFn(userID, taskID)
	}
	return nil
}

func (m *mockTaskService) GetTaskSummary(userID string) (*services.TaskSummary, error) {
	if m.getTaskSummaryFn != nil {
		return m.getTaskSummaryFn(userID)
	}
	return &services.TaskSummary{}, nil
}

var _ services.TaskServicer = (*mockTaskService)(nil)

func setupTaskRouter(handler *TaskHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/tasks", handler.CreateTask)
	auth.GET("/tasks", handler.GetTasks)
	auth.GET("/tasks/summary", handler.GetTaskSummary)
	auth.GET("/tasks/:id", handler.GetTask)
	auth.PUT("/tasks/:id", handler.UpdateTask)
	auth.PATCH("/tasks/:id/complete", handler.ToggleTaskCompleted)
	auth.PATCH("/tasks/:id/important", handler.ToggleTaskImportant)
	auth.DELETE("/tasks/:id", handler.DeleteTask)
	return r
}

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockTaskService{
			createTaskFn: func(_, title, _ string, important bool) (*models.Task, error) {
				return &models.Task{
					Base:      models.Base{ID: testUserID},
					Title:     title,
					Important: important,
				}, nil
			},
		}
		handler := NewTaskHandler(svc, &mockAuditService{})
		r := setupTaskRouter(handler)

		rec := doRequest(r, "POST", "/tasks", `{"title":"Renew insurance","is_important":true}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		task := result["task"].(map[string]interface{})
		if task["important"] != true {
			t.Errorf("expected important true, got %v", task["important"])
		}
	})

	t.Run("returns 400 on missing title", func(t *testing.T) {
		handler := NewTaskHandler(&mockTaskService{}, &mockAuditService{})
		r := setupTaskRouter(handler)

		rec := doRequest(r, "POST", "/tasks", `{"description":"no title"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTaskHandler_GetTasks(t *testing.T) {
	t.Run("parses boolean filters", func(t *testing.T) {
		var gotFilter services.TaskFilter
		svc := &mockTaskService{
			getUserTasksFn: func(_ string, filter services.TaskFilter) (*query.PageResponse[models.Task], error) {
				gotFilter = filter
				return &query.PageResponse[models.Task]{Data: []models.Task{}}, nil
			},
		}
		handler := NewTaskHandler(svc, &mockAuditService{})
		r := setupTaskRouter(handler)

		rec := doRequest(r, "GET", "/tasks?is_completed=false&is_important=true", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.Completed == nil || *gotFilter.Completed {
			t.Error("expected completed filter false")
		}
		if gotFilter.Important == nil || !*gotFilter.Important {
			t.Error("expected important filter true")
		}
	})

	t.Run("returns 400 on non-boolean filter", func(t *testing.T) {
		handler := NewTaskHandler(&mockTaskService{}, &mockAuditService{})
		r := setupTaskRouter(handler)

		rec := doRequest(r, "GET", "/tasks?is_completed=maybe", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTaskHandler_ToggleTaskCompleted(t *testing.T) {
	t.Run("returns 200 with completion timestamp", func(t *testing.T) {
		done := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		svc := &mockTaskService{
			toggleTaskCompletedFn: func(_, taskID string) (*models.Task, error) {
				return &models.Task{
					Base:        models.Base{ID: taskID},
					Title:       "Renew insurance",
					Completed:   true,
					CompletedAt: &done,
				}, nil
			},
		}
		handler := NewTaskHandler(svc, &mockAuditService{})
		r := setupTaskRouter(handler)

		rec := doRequest(r, "PATCH", "/tasks/"+testUserID+"/complete", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		task := result["task"].(map[string]interface{})
		if task["completed"] != true {
			t.Errorf("expected completed true, got %v", task["completed"])
		}
		if task["completed_at"] == nil {
			t.Error("expected completed_at set")
		}
	})

	t.Run("returns 404 when task missing", func(t *testing.T) {
		svc := &mockTaskService{
			toggleTaskCompletedFn: func(_, _ string) (*models.Task, error) {
				return nil, apperrors.ErrTaskNotFound
			},
		}
		handler := NewTaskHandler(svc, &mockAuditService{})
		r := setupTaskRouter(handler)

		rec := doRequest(r, "PATCH", "/tasks/"+testUserID+"/complete", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TASK_NOT_FOUND")
	})
}

func TestTaskHandler_GetTaskSummary(t *testing.T) {
	t.Run("returns counts", func(t *testing.T) {
		svc := &mockTaskService{
			getTaskSummaryFn: func(string) (*services.TaskSummary, error) {
				return &services.TaskSummary{Total: 5, Completed: 2, Pending: 3, Important: 1}, nil
			},
		}
		handler := NewTaskHandler(svc, &mockAuditService{})
		r := setupTaskRouter(handler)

		rec := doRequest(r, "GET", "/tasks/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["pending"].(float64) != 3 {
			t.Errorf("expected pending 3, got %v", result["pending"])
		}
	})
}
