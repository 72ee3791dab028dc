package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Babyaovo/Yaouo-sub000/internal/api"
	"github.com/Babyaovo/Yaouo-sub000/internal/interfaces/mocks"
	"github.com/Babyaovo/Yaouo-sub000/internal/model"
)

func TestNewRouter(t *testing.T) {
	mockConvSvc := mocks.NewMockConversationService(t)
	router := api.NewRouter(
		api.NewConversationHandler(mockConvSvc, mocks.NewMockSettingsService(t)),
		api.NewModelHandler(mocks.NewMockModelService(t)),
		prometheus.NewRegistry(),
		"",
	)

	t.Run("healthz", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("path parameters reach the handler", func(t *testing.T) {
		mockConvSvc.On("Unstage", mock.Anything, "c1", 0).Return(&model.Conversation{ID: "c1"}, nil).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/v1/conversations/c1/pending/0", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("static frontend is off by default", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/index.html", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
