package service

import (
	"context"
	"fmt"

	app_errors "github.com/Babyaovo/Yaouo-sub000/internal/errors"
	"github.com/Babyaovo/Yaouo-sub000/internal/llm"
)

// ModelService lists the models offered by the configured endpoint.
type ModelService struct {
	llm      llm.LLMProvider
	settings SettingsProvider
}

// NewModelService creates a new ModelService.
func NewModelService(llmProvider llm.LLMProvider, settings SettingsProvider) *ModelService {
	return &ModelService{llm: llmProvider, settings: settings}
}

// List returns the models available with the stored credentials.
func (s *ModelService) List(ctx context.Context) (*llm.ListModelsResponse, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load settings: %w", err)
	}
	models, err := s.llm.ListModels(ctx, settings.Credentials())
	if err != nil {
		if llm.IsConfigurationMissing(err) {
			return nil, fmt.Errorf("%w: %v", app_errors.ErrValidation, err)
		}
		return nil, err
	}
	return models, nil
}
