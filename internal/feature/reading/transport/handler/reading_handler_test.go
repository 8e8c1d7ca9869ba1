package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"natal_backend/internal/feature/reading/domain/entity"
	"natal_backend/internal/feature/reading/usecase"
)

// mockReadingUsecase is a mock implementation of the ReadingUsecase interface.
type mockReadingUsecase struct {
	BuildReadingFunc func(ctx context.Context, orderID string) (*entity.Reading, error)
}

func (m *mockReadingUsecase) BuildReading(ctx context.Context, orderID string) (*entity.Reading, error) {
	if m.BuildReadingFunc != nil {
		return m.BuildReadingFunc(ctx, orderID)
	}
	return testReading(orderID), nil
}

// testReading returns a compact reading with two sections.
func testReading(orderID string) *entity.Reading {
	return &entity.Reading{
		OrderID:   orderID,
		ChartHash: "ffab0123",
		Source:    entity.SourceLibrary,
		Sections: []entity.Section{
			{Key: "overview", Title: "Your Cosmic Overview", Body: "Welcome, Ada."},
			{Key: "sun", Title: "The Sun in Taurus: The Builder", Body: "Core identity."},
		},
	}
}

func getJSON(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReadingHandler_GetReading(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(uc ReadingUsecase) *gin.Engine {
		router := gin.New()
		router.GET("/api/orders/:id/reading", NewReadingHandler(uc).GetReading)
		return router
	}

	t.Run("success: reading is serialized with ordered sections", func(t *testing.T) {
		var gotID string
		uc := &mockReadingUsecase{
			BuildReadingFunc: func(ctx context.Context, orderID string) (*entity.Reading, error) {
				gotID = orderID
				return testReading(orderID), nil
			},
		}
		router := newRouter(uc)

		w := getJSON(t, router, "/api/orders/order-1/reading")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "order-1", gotID)
		assert.JSONEq(t, `{
			"order_id": "order-1",
			"chart_hash": "ffab0123",
			"source": "library",
			"sections": [
				{"key": "overview", "title": "Your Cosmic Overview", "body": "Welcome, Ada."},
				{"key": "sun", "title": "The Sun in Taurus: The Builder", "body": "Core identity."}
			]
		}`, w.Body.String())
	})

	t.Run("success: narrated reading reports its source", func(t *testing.T) {
		uc := &mockReadingUsecase{
			BuildReadingFunc: func(ctx context.Context, orderID string) (*entity.Reading, error) {
				reading := testReading(orderID)
				reading.Source = entity.SourceLibraryGemini
				reading.Sections = append(reading.Sections, entity.Section{
					Key: "cosmic_overview", Title: "A Note from the Cosmos", Body: "Much awaits.",
				})
				return reading, nil
			},
		}
		router := newRouter(uc)

		w := getJSON(t, router, "/api/orders/order-1/reading")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"source":"library+gemini"`)
		assert.Contains(t, w.Body.String(), `"key":"cosmic_overview"`)
	})

	t.Run("error cases", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
			wantError  string
		}{
			{
				name:       "unknown order returns 404",
				err:        usecase.ErrOrderNotFound,
				wantStatus: http.StatusNotFound,
				wantError:  "order not found",
			},
			{
				name:       "order without chart returns 404",
				err:        usecase.ErrChartNotAttached,
				wantStatus: http.StatusNotFound,
				wantError:  "no chart attached to this order",
			},
			{
				name:       "corrupted document returns 500 without details",
				err:        fmt.Errorf("%w: missing summary or positions", usecase.ErrMalformedDocument),
				wantStatus: http.StatusInternalServerError,
				wantError:  "internal server error",
			},
			{
				name:       "storage failure returns 500 without details",
				err:        errors.New("database error"),
				wantStatus: http.StatusInternalServerError,
				wantError:  "internal server error",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := &mockReadingUsecase{
					BuildReadingFunc: func(ctx context.Context, orderID string) (*entity.Reading, error) {
						return nil, tt.err
					},
				}
				router := newRouter(uc)

				w := getJSON(t, router, "/api/orders/order-1/reading")

				assert.Equal(t, tt.wantStatus, w.Code)
				assert.Contains(t, w.Body.String(), tt.wantError)
			})
		}
	})
}
