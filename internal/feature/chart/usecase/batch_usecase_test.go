package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"natal_backend/internal/feature/chart/domain"
	"natal_backend/internal/feature/chart/domain/entity"
)

var ErrGeocodeAPI = errors.New("geocode API error")

// mockChartPreviewer is a mock implementation of the ChartPreviewer interface.
type mockChartPreviewer struct {
	PreviewFunc  func(ctx context.Context, q BirthQuery) (entity.Chart, error)
	PreviewCalls int
	LastQuery    BirthQuery
}

func (m *mockChartPreviewer) Preview(ctx context.Context, q BirthQuery) (entity.Chart, error) {
	m.PreviewCalls++
	m.LastQuery = q
	if m.PreviewFunc != nil {
		return m.PreviewFunc(ctx, q)
	}
	return entity.Chart{}, errors.New("PreviewFunc is not implemented")
}

// mockWaitLimiter is a mock implementation of the RateLimiterInterface.
type mockWaitLimiter struct {
	WaitIfNeededCalls int
	WaitErr           error
}

func (m *mockWaitLimiter) WaitIfNeeded(ctx context.Context) error {
	m.WaitIfNeededCalls++
	// For testing purposes, return immediately without waiting
	return m.WaitErr
}

// batchChart builds a small but fully encodable chart fixture.
func batchChart(sunLongitude float64) entity.Chart {
	input := entity.BirthInput{
		Name:      "Ada",
		Year:      1990,
		Month:     5,
		Day:       15,
		Hour:      14,
		Minute:    30,
		Timezone:  "America/New_York",
		Latitude:  40.7128,
		Longitude: -74.0060,
	}
	c := entity.Chart{
		Input:     input,
		UTC:       time.Date(1990, 5, 15, 18, 30, 0, 0, time.UTC),
		JulianDay: 2448027.2708333335,
		Ascendant: 169.460856,
		Midheaven: 79.460856,
		Positions: []entity.Position{
			{Body: entity.Sun, Longitude: sunLongitude, Sign: entity.Taurus, SignDegree: sunLongitude - 30, House: 9},
		},
	}
	c.Houses[0] = entity.HouseCusp{House: 1, Longitude: 169.460856, Sign: entity.Virgo, SignDegree: 19.460856}
	return c
}

func floatPtr(v float64) *float64 { return &v }

func TestBatchUsecase_GenerateAll(t *testing.T) {
	ctx := context.Background()

	coordQuery := BirthQuery{
		Name:     "Ada",
		Date:     "1990-05-15",
		Time:     "14:30",
		Timezone: "America/New_York",
		Lat:      floatPtr(40.7128),
		Lon:      floatPtr(-74.0060),
	}
	placeQuery := BirthQuery{
		Name:     "Grace",
		Date:     "1906-12-09",
		Time:     "06:00",
		Timezone: "America/New_York",
		Place:    "New York",
	}

	testCases := []struct {
		name              string
		inputQueries      []BirthQuery
		mockPreviewFunc   func(ctx context.Context, q BirthQuery) (entity.Chart, error)
		expectedDocs      int
		expectedProcessed int
		expectedFailed    int
		expectedWaits     int
	}{
		{
			name:         "success: rows with explicit coordinates never wait",
			inputQueries: []BirthQuery{coordQuery, coordQuery},
			mockPreviewFunc: func(ctx context.Context, q BirthQuery) (entity.Chart, error) {
				return batchChart(54.663471), nil
			},
			expectedDocs:      2,
			expectedProcessed: 2,
			expectedFailed:    0,
			expectedWaits:     0,
		},
		{
			name:         "success: place-name rows wait before geocoding",
			inputQueries: []BirthQuery{placeQuery, coordQuery, placeQuery},
			mockPreviewFunc: func(ctx context.Context, q BirthQuery) (entity.Chart, error) {
				return batchChart(54.663471), nil
			},
			expectedDocs:      3,
			expectedProcessed: 3,
			expectedFailed:    0,
			expectedWaits:     2,
		},
		{
			name:         "success: continues processing even when a row fails",
			inputQueries: []BirthQuery{coordQuery, placeQuery, coordQuery},
			mockPreviewFunc: func(ctx context.Context, q BirthQuery) (entity.Chart, error) {
				if q.Place != "" {
					return entity.Chart{}, ErrGeocodeAPI
				}
				return batchChart(54.663471), nil
			},
			expectedDocs:      2,
			expectedProcessed: 2,
			expectedFailed:    1,
			expectedWaits:     1,
		},
		{
			name:         "success: empty input",
			inputQueries: []BirthQuery{},
			mockPreviewFunc: func(ctx context.Context, q BirthQuery) (entity.Chart, error) {
				t.Error("Preview should not be called")
				return entity.Chart{}, errors.New("should not be called")
			},
			expectedDocs:      0,
			expectedProcessed: 0,
			expectedFailed:    0,
			expectedWaits:     0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockPreview := &mockChartPreviewer{PreviewFunc: tc.mockPreviewFunc}
			mockRL := &mockWaitLimiter{}

			bu := NewBatchUsecase(mockPreview, mockRL)
			docs, out := bu.GenerateAll(ctx, tc.inputQueries)

			if len(docs) != tc.expectedDocs {
				t.Errorf("documents count mismatch: got %d, want %d", len(docs), tc.expectedDocs)
			}
			if out.Processed != tc.expectedProcessed {
				t.Errorf("Processed mismatch: got %d, want %d", out.Processed, tc.expectedProcessed)
			}
			if out.Failed != tc.expectedFailed {
				t.Errorf("Failed mismatch: got %d, want %d", out.Failed, tc.expectedFailed)
			}
			if mockRL.WaitIfNeededCalls != tc.expectedWaits {
				t.Errorf("WaitIfNeeded was called %d times, expected %d", mockRL.WaitIfNeededCalls, tc.expectedWaits)
			}
		})
	}
}

func TestBatchUsecase_GenerateAll_CanceledWhileRateLimited(t *testing.T) {
	ctx := context.Background()

	coordQuery := BirthQuery{
		Name:     "Ada",
		Date:     "1990-05-15",
		Time:     "14:30",
		Timezone: "America/New_York",
		Lat:      floatPtr(40.7128),
		Lon:      floatPtr(-74.0060),
	}
	placeQuery := BirthQuery{
		Name:     "Grace",
		Date:     "1906-12-09",
		Time:     "06:00",
		Timezone: "America/New_York",
		Place:    "New York",
	}

	mockPreview := &mockChartPreviewer{
		PreviewFunc: func(ctx context.Context, q BirthQuery) (entity.Chart, error) {
			return batchChart(54.663471), nil
		},
	}
	mockRL := &mockWaitLimiter{WaitErr: context.Canceled}

	bu := NewBatchUsecase(mockPreview, mockRL)
	docs, out := bu.GenerateAll(ctx, []BirthQuery{coordQuery, placeQuery, coordQuery})

	// The first row completes; the canceled wait abandons the rest of the batch
	if len(docs) != 1 {
		t.Errorf("documents count mismatch: got %d, want 1", len(docs))
	}
	if out.Processed != 1 {
		t.Errorf("Processed mismatch: got %d, want 1", out.Processed)
	}
	if out.Failed != 2 {
		t.Errorf("Failed mismatch: got %d, want 2", out.Failed)
	}
	if mockPreview.PreviewCalls != 1 {
		t.Errorf("Preview was called %d times, expected 1", mockPreview.PreviewCalls)
	}
}

func TestBatchUsecase_generateOne(t *testing.T) {
	ctx := context.Background()
	chart := batchChart(54.663471)

	mockPreview := &mockChartPreviewer{
		PreviewFunc: func(ctx context.Context, q BirthQuery) (entity.Chart, error) {
			return chart, nil
		},
	}
	bu := NewBatchUsecase(mockPreview, &mockWaitLimiter{})

	doc, err := bu.generateOne(ctx, BirthQuery{Name: "Ada", Date: "1990-05-15", Time: "14:30"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected, err := domain.EncodeDocument(chart)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	if string(doc) != string(expected) {
		t.Errorf("document mismatch:\ngot  %s\nwant %s", doc, expected)
	}
}

func TestBatchUsecase_VerifyAll(t *testing.T) {
	ctx := context.Background()

	chartA := batchChart(54.663471)
	chartB := batchChart(55.000000)

	docA, err := domain.EncodeDocument(chartA)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	testCases := []struct {
		name               string
		inputDocuments     [][]byte
		mockPreviewFunc    func(ctx context.Context, q BirthQuery) (entity.Chart, error)
		expectedProcessed  int
		expectedFailed     int
		expectedMismatched int
	}{
		{
			name:           "success: recomputed chart matches the stored document",
			inputDocuments: [][]byte{docA, docA},
			mockPreviewFunc: func(ctx context.Context, q BirthQuery) (entity.Chart, error) {
				return chartA, nil
			},
			expectedProcessed:  2,
			expectedFailed:     0,
			expectedMismatched: 0,
		},
		{
			name:           "mismatch: recomputed chart differs from the stored document",
			inputDocuments: [][]byte{docA},
			mockPreviewFunc: func(ctx context.Context, q BirthQuery) (entity.Chart, error) {
				return chartB, nil
			},
			expectedProcessed:  0,
			expectedFailed:     0,
			expectedMismatched: 1,
		},
		{
			name:           "error: malformed document is counted as failed",
			inputDocuments: [][]byte{[]byte(`{"birth":`), docA},
			mockPreviewFunc: func(ctx context.Context, q BirthQuery) (entity.Chart, error) {
				return chartA, nil
			},
			expectedProcessed:  1,
			expectedFailed:     1,
			expectedMismatched: 0,
		},
		{
			name:           "error: recomputation failure is counted as failed",
			inputDocuments: [][]byte{docA},
			mockPreviewFunc: func(ctx context.Context, q BirthQuery) (entity.Chart, error) {
				return entity.Chart{}, ErrGeocodeAPI
			},
			expectedProcessed:  0,
			expectedFailed:     1,
			expectedMismatched: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockPreview := &mockChartPreviewer{PreviewFunc: tc.mockPreviewFunc}

			bu := NewBatchUsecase(mockPreview, &mockWaitLimiter{})
			out := bu.VerifyAll(ctx, tc.inputDocuments)

			if out.Processed != tc.expectedProcessed {
				t.Errorf("Processed mismatch: got %d, want %d", out.Processed, tc.expectedProcessed)
			}
			if out.Failed != tc.expectedFailed {
				t.Errorf("Failed mismatch: got %d, want %d", out.Failed, tc.expectedFailed)
			}
			if out.Mismatched != tc.expectedMismatched {
				t.Errorf("Mismatched mismatch: got %d, want %d", out.Mismatched, tc.expectedMismatched)
			}
		})
	}
}

func TestBatchUsecase_verifyOne_RebuildsQueryFromDocument(t *testing.T) {
	ctx := context.Background()

	chart := batchChart(54.663471)
	doc, err := domain.EncodeDocument(chart)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	mockPreview := &mockChartPreviewer{
		PreviewFunc: func(ctx context.Context, q BirthQuery) (entity.Chart, error) {
			return chart, nil
		},
	}
	bu := NewBatchUsecase(mockPreview, &mockWaitLimiter{})

	match, err := bu.verifyOne(ctx, doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !match {
		t.Error("expected the recomputed document to match")
	}

	// The query must be rebuilt from the document's birth block
	q := mockPreview.LastQuery
	if q.Name != "Ada" {
		t.Errorf("expected name Ada, got %q", q.Name)
	}
	if q.Date != "1990-05-15" {
		t.Errorf("expected date 1990-05-15, got %q", q.Date)
	}
	if q.Time != "14:30" {
		t.Errorf("expected time 14:30, got %q", q.Time)
	}
	if q.Timezone != "America/New_York" {
		t.Errorf("expected timezone America/New_York, got %q", q.Timezone)
	}
	if q.Lat == nil || *q.Lat != 40.7128 {
		t.Errorf("expected latitude 40.7128, got %v", q.Lat)
	}
	if q.Lon == nil || *q.Lon != -74.0060 {
		t.Errorf("expected longitude -74.0060, got %v", q.Lon)
	}
}
