package cli

import (
	"fmt"
	"strings"

	"resumeforge/internal/ai"
	"resumeforge/internal/common"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance [job-title]",
	Short: "Suggest replacement content for one resume category",
	Long: `Ask the AI model for replacement content suggestions in a single
resume category: summary, skills or experience. Suggestions are seeded by
the target job title and, optionally, the existing text being replaced.

Unlike analyze there is no heuristic fallback; the command fails when the
model is unavailable.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if err := cfg.RequireAIKey(); err != nil {
			return err
		}
		switch enhanceCategory {
		case "summary", "skills", "experience":
		default:
			return fmt.Errorf("invalid category %q: must be summary, skills or experience", enhanceCategory)
		}
		if enhanceConfig.OutputFormat == "" {
			enhanceConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(enhanceConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runEnhance,
}

var (
	enhanceConfig       common.CommandConfig
	enhanceCategory     string
	enhanceExisting     string
	enhanceExistingFile string
)

func init() {
	enhanceCmd.Flags().StringVarP(&enhanceConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	enhanceCmd.Flags().StringVar(&enhanceConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	enhanceCmd.Flags().StringVarP(&enhanceCategory, "category", "c", "summary", "Content category: summary, skills or experience")
	enhanceCmd.Flags().StringVar(&enhanceExisting, "existing", "", "Existing text the suggestions should replace")
	enhanceCmd.Flags().StringVar(&enhanceExistingFile, "existing-file", "", "Read the existing text from a file")

	enhanceCmd.MarkFlagsMutuallyExclusive("existing", "existing-file")

	_ = enhanceCmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"summary", "skills", "experience"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runEnhance(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	jobTitle := strings.TrimSpace(args[0])
	if jobTitle == "" {
		return fmt.Errorf("job title must not be empty")
	}

	existing := enhanceExisting
	if enhanceExistingFile != "" {
		fileProcessor := common.NewFileProcessor(logger)
		content, err := fileProcessor.ReadFile(enhanceExistingFile)
		if err != nil {
			return err
		}
		existing = content
	}

	// Create AI service for enhance operation
	enhanceAIConfig := cfg.GetEnhanceConfig()
	aiService, err := ai.NewService(&enhanceAIConfig, "enhance", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	logger.Info("Requesting content suggestions",
		"job_title", jobTitle,
		"category", enhanceCategory,
		"existing_chars", len(existing))

	input := types.EnhanceContentInput{
		JobTitle: jobTitle,
		Category: enhanceCategory,
		Existing: existing,
	}

	result, tokenUsage, err := aiService.EnhanceContent(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("failed to generate suggestions: %w", err)
	}

	if tokenUsage != nil {
		logger.Info("AI token usage",
			"input_tokens", tokenUsage.InputTokens,
			"output_tokens", tokenUsage.OutputTokens,
			"total_tokens", tokenUsage.TotalTokens)
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(result, enhanceConfig); err != nil {
		return err
	}
	logger.Info("Content suggestions generated", "count", len(result.Suggestions))
	return nil
}
