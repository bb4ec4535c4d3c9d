package services

import (
	"testing"

	"github.com/Nanif/budget-api/internal/testutil"
)

func TestCreateTask(t *testing.T) {
	t.Run("valid_task", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTaskService(db)
		user := testutil.CreateTestUser(t, db)

		task, err := svc.CreateTask(user.ID, "Renew insurance", "car policy expires", true)
		testutil.AssertNoError(t, err)
		if !task.Important {
			t.Error("expected important flag set")
		}
		if task.Completed || task.CompletedAt != nil {
			t.Error("new task should start open")
		}
	})

	t.Run("rejects_blank_title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTaskService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTask(user.ID, "   ", "", false)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestToggleTaskCompleted(t *testing.T) {
	t.Run("stamps_and_clears_completed_at", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTaskService(db)
		user := testutil.CreateTestUser(t, db)
		task := testutil.CreateTestTask(t, db, user.ID)

		done, err := svc.ToggleTaskCompleted(user.ID, task.ID)
		testutil.AssertNoError(t, err)
		if !done.Completed || done.CompletedAt == nil {
			t.Fatal("expected completed task with timestamp")
		}

		reopened, err := svc.ToggleTaskCompleted(user.ID, task.ID)
		testutil.AssertNoError(t, err)
		if reopened.Completed || reopened.CompletedAt != nil {
			t.Error("expected task reopened with timestamp cleared")
		}
	})
}

func TestGetUserTasks(t *testing.T) {
	t.Run("filters_by_completed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTaskService(db)
		user := testutil.CreateTestUser(t, db)
		open := testutil.CreateTestTask(t, db, user.ID)
		done := testutil.CreateTestTask(t, db, user.ID)
		_, err := svc.ToggleTaskCompleted(user.ID, done.ID)
		testutil.AssertNoError(t, err)

		pending := false
		result, err := svc.GetUserTasks(user.ID, TaskFilter{Completed: &pending})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Fatalf("expected 1 open task, got %d", result.TotalItems)
		}
		if result.Data[0].ID != open.ID {
			t.Errorf("expected task %s, got %s", open.ID, result.Data[0].ID)
		}
	})
}

func TestGetTaskSummary(t *testing.T) {
	t.Run("important_counts_open_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTaskService(db)
		user := testutil.CreateTestUser(t, db)

		openImportant := testutil.CreateTestTask(t, db, user.ID)
		_, err := svc.ToggleTaskImportant(user.ID, openImportant.ID)
		testutil.AssertNoError(t, err)

		doneImportant := testutil.CreateTestTask(t, db, user.ID)
		_, err = svc.ToggleTaskImportant(user.ID, doneImportant.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.ToggleTaskCompleted(user.ID, doneImportant.ID)
		testutil.AssertNoError(t, err)

		testutil.CreateTestTask(t, db, user.ID)

		summary, err := svc.GetTaskSummary(user.ID)
		testutil.AssertNoError(t, err)
		if summary.Total != 3 || summary.Completed != 1 || summary.Pending != 2 {
			t.Errorf("unexpected counts: %+v", summary)
		}
		if summary.Important != 1 {
			t.Errorf("expected 1 open important task, got %d", summary.Important)
		}
	})
}
