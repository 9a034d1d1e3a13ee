package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "pesafolio/internal/errors"
)

// --- mock insight service ---

type mockInsightService struct {
	generateInsightsFn func(ctx context.Context, holdings, transactions []map[string]any) (string, error)
}

func (m *mockInsightService) GenerateInsights(ctx context.Context, holdings, transactions []map[string]any) (string, error) {
	if m.generateInsightsFn != nil {
		return m.generateInsightsFn(ctx, holdings, transactions)
	}
	return "", nil
}

func setupInsightRouter(handler *InsightHandler) *gin.Engine {
	r := gin.New()
	r.POST("/insights", injectUserID(testUserID), handler.GenerateInsights)
	return r
}

func TestInsightHandler_GenerateInsights(t *testing.T) {
	t.Run("returns commentary verbatim", func(t *testing.T) {
		insightSvc := &mockInsightService{
			generateInsightsFn: func(_ context.Context, holdings, _ []map[string]any) (string, error) {
				if len(holdings) != 1 {
					t.Errorf("expected 1 holding passed through, got %d", len(holdings))
				}
				return "Consider diversifying beyond Safaricom.", nil
			},
		}
		handler := NewInsightHandler(insightSvc)
		r := setupInsightRouter(handler)

		rec := doRequest(r, "POST", "/insights",
			`{"portfolioData":[{"asset_name":"SCOM","current_value":2850}],"transactions":[]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["insights"] != "Consider diversifying beyond Safaricom." {
			t.Errorf("expected commentary passed through, got %v", result["insights"])
		}
	})

	t.Run("returns 400 on empty portfolio", func(t *testing.T) {
		handler := NewInsightHandler(&mockInsightService{})
		r := setupInsightRouter(handler)

		rec := doRequest(r, "POST", "/insights", `{"portfolioData":[]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INSIGHT_BAD_INPUT")
	})

	t.Run("returns 400 on oversized portfolio", func(t *testing.T) {
		handler := NewInsightHandler(&mockInsightService{})
		r := setupInsightRouter(handler)

		entries := make([]string, 101)
		for i := range entries {
			entries[i] = fmt.Sprintf(`{"asset_name":"A%d"}`, i)
		}
		body := `{"portfolioData":[` + strings.Join(entries, ",") + `]}`

		rec := doRequest(r, "POST", "/insights", body)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INSIGHT_BAD_INPUT")
	})

	t.Run("returns 500 on upstream failure", func(t *testing.T) {
		insightSvc := &mockInsightService{
			generateInsightsFn: func(_ context.Context, _, _ []map[string]any) (string, error) {
				return "", apperrors.ErrInsightUpstreamError
			},
		}
		handler := NewInsightHandler(insightSvc)
		r := setupInsightRouter(handler)

		rec := doRequest(r, "POST", "/insights",
			`{"portfolioData":[{"asset_name":"SCOM"}]}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INSIGHT_UPSTREAM_ERROR")
	})
}
