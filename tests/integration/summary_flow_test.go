package integration

import (
	"net/http"
	"testing"
)

func TestSummaryFlow(t *testing.T) {
	t.Run("aggregates the month across both ledgers", func(t *testing.T) {
		app := setupApp(t)
		token, _, _ := app.registerUser(t, "ana@example.com", "secret123")

		app.createIncome(t, token,
			`{"description":"Salário","value":2500.00,"date":"2023-01-05"}`)
		app.createExpense(t, token,
			`{"description":"Aluguel","value":1000.00,"date":"2023-01-05","category":"HOUSING"}`)
		app.createExpense(t, token,
			`{"description":"Supermercado","value":700.00,"date":"2023-01-08","category":"FOOD"}`)
		app.createExpense(t, token,
			`{"description":"Combustível","value":550.00,"date":"2023-01-15","category":"TRANSPORT"}`)

		rec := app.request("GET", "/api/v1/summaries/2023/1", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("summary failed: %d %s", rec.Code, rec.Body.String())
		}
		summary := parseJSON(t, rec)["summary"].(map[string]interface{})

		if summary["income_total"].(float64) != 2500.00 {
			t.Errorf("expected income_total 2500.00, got %v", summary["income_total"])
		}
		if summary["expense_total"].(float64) != 2250.00 {
			t.Errorf("expected expense_total 2250.00, got %v", summary["expense_total"])
		}
		if summary["final_balance"].(float64) != 250.00 {
			t.Errorf("expected final_balance 250.00, got %v", summary["final_balance"])
		}

		byCategory := summary["values_by_category"].([]interface{})
		if len(byCategory) != 8 {
			t.Fatalf("expected 8 category entries, got %d", len(byCategory))
		}
		totals := map[string]float64{}
		zeros := 0
		for _, raw := range byCategory {
			entry := raw.(map[string]interface{})
			total := entry["total"].(float64)
			totals[entry["category"].(string)] = total
			if total == 0 {
				zeros++
			}
		}
		if totals["HOUSING"] != 1000.00 || totals["FOOD"] != 700.00 || totals["TRANSPORT"] != 550.00 {
			t.Errorf("unexpected category totals: %v", totals)
		}
		if zeros != 5 {
			t.Errorf("expected 5 zero categories, got %d", zeros)
		}
	})

	t.Run("month with only incomes is valid", func(t *testing.T) {
		app := setupApp(t)
		token, _, _ := app.registerUser(t, "ana@example.com", "secret123")

		app.createIncome(t, token,
			`{"description":"Salário","value":2500.00,"date":"2023-01-05"}`)

		rec := app.request("GET", "/api/v1/summaries/2023/1", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("summary failed: %d %s", rec.Code, rec.Body.String())
		}
		summary := parseJSON(t, rec)["summary"].(map[string]interface{})
		if summary["final_balance"].(float64) != 2500.00 {
			t.Errorf("expected final_balance 2500.00, got %v", summary["final_balance"])
		}
	})

	t.Run("empty month is not found", func(t *testing.T) {
		app := setupApp(t)
		token, _, _ := app.registerUser(t, "ana@example.com", "secret123")

		rec := app.request("GET", "/api/v1/summaries/2023/1", "", token)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		errObj := parseJSON(t, rec)["error"].(map[string]interface{})
		if errObj["code"] != "SUMMARY_NOT_FOUND" {
			t.Errorf("expected SUMMARY_NOT_FOUND, got %v", errObj["code"])
		}
	})

	t.Run("rejects out of range year and month", func(t *testing.T) {
		app := setupApp(t)
		token, _, _ := app.registerUser(t, "ana@example.com", "secret123")

		rec := app.request("GET", "/api/v1/summaries/1969/1", "", token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for year 1969, got %d", rec.Code)
		}

		rec = app.request("GET", "/api/v1/summaries/2023/13", "", token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for month 13, got %d", rec.Code)
		}
	})

	t.Run("summary is scoped to the requesting user", func(t *testing.T) {
		app := setupApp(t)
		tokenA, _, _ := app.registerUser(t, "ana@example.com", "secret123")
		tokenB, _, _ := app.registerUser(t, "bia@example.com", "secret123")

		app.createIncome(t, tokenA,
			`{"description":"Salário","value":2500.00,"date":"2023-01-05"}`)

		rec := app.request("GET", "/api/v1/summaries/2023/1", "", tokenB)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 for user with no records, got %d", rec.Code)
		}
	})
}
