package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	app_errors "github.com/Babyaovo/Yaouo-sub000/internal/errors"
	"github.com/Babyaovo/Yaouo-sub000/internal/llm"
	"github.com/Babyaovo/Yaouo-sub000/internal/llm/mocks"
	"github.com/Babyaovo/Yaouo-sub000/internal/service"
)

func TestModelService_List(t *testing.T) {
	ctx := context.Background()
	creds := llm.Credentials{BaseURL: "http://llm.local/v1", APIKey: "sk-test"}

	expectedResponse := &llm.ListModelsResponse{
		Data: []llm.Model{{ID: "gpt-test"}},
	}
	providerErr := &llm.Fault{Kind: llm.FaultStatus, StatusCode: 401, Err: errors.New("unauthorized")}
	missingErr := &llm.Fault{Kind: llm.FaultConfigurationMissing, Err: llm.ErrMissingCredentials}

	testCases := []struct {
		name         string
		settings     *stubSettings
		setupMock    func(m *mocks.MockLLMProvider)
		expectedResp *llm.ListModelsResponse
		expectedErr  error
	}{
		{
			name:     "Success",
			settings: &stubSettings{settings: defaultTestSettings()},
			setupMock: func(m *mocks.MockLLMProvider) {
				m.On("ListModels", ctx, creds).Return(expectedResponse, nil).Once()
			},
			expectedResp: expectedResponse,
		},
		{
			name:     "Failure - Provider Error",
			settings: &stubSettings{settings: defaultTestSettings()},
			setupMock: func(m *mocks.MockLLMProvider) {
				m.On("ListModels", ctx, creds).Return(nil, providerErr).Once()
			},
			expectedErr: providerErr,
		},
		{
			name:     "Failure - Credentials missing",
			settings: &stubSettings{settings: defaultTestSettings()},
			setupMock: func(m *mocks.MockLLMProvider) {
				m.On("ListModels", ctx, creds).Return(nil, missingErr).Once()
			},
			expectedErr: app_errors.ErrValidation,
		},
		{
			name:        "Failure - Settings unavailable",
			settings:    &stubSettings{err: errors.New("db closed")},
			setupMock:   func(m *mocks.MockLLMProvider) {},
			expectedErr: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockLLMProvider := mocks.NewMockLLMProvider(t)
			tc.setupMock(mockLLMProvider)
			modelService := service.NewModelService(mockLLMProvider, tc.settings)

			resp, err := modelService.List(ctx)

			if tc.expectedResp != nil {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedResp, resp)
				return
			}
			assert.Error(t, err)
			assert.Nil(t, resp)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}
