package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/services"
)

// --- mock summary service ---

type mockSummaryService struct {
	monthSummaryFn func(userID uint, year, month int) (*services.MonthlySummary, error)
}

func (m *mockSummaryService) MonthSummary(userID uint, year, month int) (*services.MonthlySummary, error) {
	if m.monthSummaryFn != nil {
		return m.monthSummaryFn(userID, year, month)
	}
	return &services.MonthlySummary{}, nil
}

var _ services.SummaryServicer = (*mockSummaryService)(nil)

func setupSummaryRouter(handler *SummaryHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/summaries/:year/:month", handler.GetMonthSummary)
	return r
}

func TestSummaryHandler_GetMonthSummary(t *testing.T) {
	t.Run("returns 200 with the summary", func(t *testing.T) {
		svc := &mockSummaryService{
			monthSummaryFn: func(_ uint, year, month int) (*services.MonthlySummary, error) {
				byCategory := make([]services.CategoryTotal, 0, len(models.Categories))
				for _, category := range models.Categories {
					byCategory = append(byCategory, services.CategoryTotal{Category: category})
				}
				byCategory[0].Total = 100000
				return &services.MonthlySummary{
					IncomeTotal:  250000,
					ExpenseTotal: 100000,
					FinalBalance: 150000,
					ByCategory:   byCategory,
				}, nil
			},
		}
		handler := NewSummaryHandler(svc)
		r := setupSummaryRouter(handler)

		rec := doRequest(r, "GET", "/summaries/2023/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		summary := result["summary"].(map[string]interface{})
		if summary["final_balance"].(float64) != 1500.00 {
			t.Errorf("expected final_balance 1500.00, got %v", summary["final_balance"])
		}
		byCategory := summary["values_by_category"].([]interface{})
		if len(byCategory) != len(models.Categories) {
			t.Errorf("expected %d category entries, got %d", len(models.Categories), len(byCategory))
		}
	})

	t.Run("passes path segments through to the service", func(t *testing.T) {
		var gotYear, gotMonth int
		svc := &mockSummaryService{
			monthSummaryFn: func(_ uint, year, month int) (*services.MonthlySummary, error) {
				gotYear, gotMonth = year, month
				return &services.MonthlySummary{IncomeTotal: 1}, nil
			},
		}
		handler := NewSummaryHandler(svc)
		r := setupSummaryRouter(handler)

		doRequest(r, "GET", "/summaries/2024/12", "")

		if gotYear != 2024 || gotMonth != 12 {
			t.Errorf("expected 2024/12, got %d/%d", gotYear, gotMonth)
		}
	})

	t.Run("returns 400 on non-numeric path segment", func(t *testing.T) {
		handler := NewSummaryHandler(&mockSummaryService{})
		r := setupSummaryRouter(handler)

		rec := doRequest(r, "GET", "/summaries/abc/1", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 on empty month", func(t *testing.T) {
		svc := &mockSummaryService{
			monthSummaryFn: func(uint, int, int) (*services.MonthlySummary, error) {
				return nil, apperrors.WithMessage(apperrors.ErrSummaryNotFound,
					"No incomes and expenses for january 2023")
			},
		}
		handler := NewSummaryHandler(svc)
		r := setupSummaryRouter(handler)

		rec := doRequest(r, "GET", "/summaries/2023/1", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SUMMARY_NOT_FOUND")
	})
}
