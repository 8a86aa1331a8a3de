package ai

import (
	"context"

	"resumeforge/internal/types"
)

// AIProvider interface for different AI implementations
// All methods now return token usage information - callers can ignore it if not needed
type AIProvider interface {
	AnalyzeResume(ctx context.Context, input types.AnalyzeResumeInput) (types.AnalyzeResumeOutput, *TokenUsage, error)
	EnhanceContent(ctx context.Context, input types.EnhanceContentInput) (types.EnhanceContentOutput, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// SchemaBuilder interface for building AI request schemas
type SchemaBuilder interface {
	BuildAnalyzeSchema() any
	BuildEnhanceSchema() any
}

// PromptBuilder interface for building AI prompts
type PromptBuilder interface {
	BuildAnalyzePrompt(resumeJSON string) string
	BuildEnhancePrompt(jobTitle, category, existing string) string
}
