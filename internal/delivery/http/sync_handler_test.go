package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/pkg/logger"
	"github.com/rodomax/fleet/internal/usecase/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSyncService - mock для SyncService
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) SyncNow(ctx context.Context) (*sync.Result, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.Result), args.Error(1)
}

// TestSyncHandler_Sync тестирует ручной запуск синхронизации
func TestSyncHandler_Sync(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockSyncService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name: "успешный проход",
			mockSetup: func(m *MockSyncService) {
				m.On("SyncNow", mock.Anything).Return(&sync.Result{
					Rows:     42,
					Skipped:  false,
					Duration: 150 * time.Millisecond,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				if data, ok := resp["data"].(map[string]interface{}); ok {
					assert.Equal(t, float64(42), data["rows"])
				}
			},
		},
		{
			name: "синхронизация выключена",
			mockSetup: func(m *MockSyncService) {
				m.On("SyncNow", mock.Anything).Return(nil, domain.ErrSyncDisabled)
			},
			expectedStatus: http.StatusConflict,
			checkResponse:  func(t *testing.T, resp map[string]interface{}) {},
		},
		{
			name: "sink недоступен",
			mockSetup: func(m *MockSyncService) {
				m.On("SyncNow", mock.Anything).Return(nil, domain.ErrSinkUnavailable)
			},
			expectedStatus: http.StatusBadGateway,
			checkResponse:  func(t *testing.T, resp map[string]interface{}) {},
		},
		{
			name: "прочая ошибка прохода",
			mockSetup: func(m *MockSyncService) {
				m.On("SyncNow", mock.Anything).Return(nil, errors.New("network timeout"))
			},
			expectedStatus: http.StatusBadGateway,
			checkResponse:  func(t *testing.T, resp map[string]interface{}) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockSyncService)
			tt.mockSetup(mockService)

			log := logger.NewDevelopment()
			handler := NewSyncHandler(mockService, log)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
			w := httptest.NewRecorder()

			handler.Sync(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)
			tt.checkResponse(t, response)

			mockService.AssertExpectations(t)
		})
	}
}
