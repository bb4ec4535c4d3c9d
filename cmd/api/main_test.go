package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Nanif/budget-api/internal/logger"
	"github.com/Nanif/budget-api/internal/middleware"
	"github.com/Nanif/budget-api/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

// Binding tags like fund_type and debt_type are only known to gin after
// registration; the production router must do that itself or every request
// carrying one of those tags panics into a 500.
func TestNewRouter_RegistersBindingValidators(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	router := newRouter(db)

	user := testutil.CreateTestUser(t, db)
	token, err := middleware.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	do := func(method, path string, payload map[string]interface{}) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid fund type is accepted", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/v1/funds", map[string]interface{}{
			"name":  "Groceries",
			"type":  "monthly",
			"level": 1,
		})
		if rec.Code != http.StatusCreated {
			t.Errorf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("valid debt type is accepted", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/v1/debts", map[string]interface{}{
			"description": "Loan from Yossi",
			"amount":      "250",
			"type":        "i_owe",
		})
		if rec.Code != http.StatusCreated {
			t.Errorf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("valid setting data type is accepted", func(t *testing.T) {
		rec := do(http.MethodPut, "/api/v1/settings/tithe_percentage", map[string]interface{}{
			"value":     "10",
			"data_type": "number",
		})
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown fund type is rejected with 400", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/v1/funds", map[string]interface{}{
			"name":  "Weekly stuff",
			"type":  "weekly",
			"level": 1,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
