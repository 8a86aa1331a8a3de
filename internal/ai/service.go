package ai

import (
	"context"
	"fmt"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/score"
	"resumeforge/internal/types"
)

// Service handles AI operations for resume processing
type Service struct {
	Provider AIProvider // Exported for access from server package
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService creates a new AI service instance with configuration for a specific operation
func NewService(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*Service, error) {
	var provider AIProvider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// AnalyzeResume produces a full score report for a resume. The numeric
// sections always come from the deterministic scorer; the model only
// contributes strengths, weaknesses and suggestions. Any model failure
// degrades to the pure heuristic report instead of returning an error.
func (s *Service) AnalyzeResume(ctx context.Context, resume *types.Resume) (types.ScoreReport, *TokenUsage, error) {
	report := score.Score(resume)
	if resume == nil {
		report.Degraded = true
		return report, nil, nil
	}

	output, tokenUsage, err := s.Provider.AnalyzeResume(ctx, types.AnalyzeResumeInput{Resume: *resume})
	if err != nil {
		s.logger.Warn("AI analysis failed, returning heuristic report",
			"error", err.Error())
		report.Degraded = true
		return report, nil, nil
	}

	analysis := output.Analysis
	report.Analysis = &analysis
	report.Suggestions = output.Suggestions
	return report, tokenUsage, nil
}

// EnhanceContent asks the model for replacement content in one category.
// Unlike analysis there is no heuristic to fall back to, so failures are
// returned to the caller.
func (s *Service) EnhanceContent(ctx context.Context, input types.EnhanceContentInput) (types.EnhanceContentOutput, *TokenUsage, error) {
	return s.Provider.EnhanceContent(ctx, input)
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}
