package cli

import (
	"fmt"

	"resumeforge/internal/common"
	"resumeforge/internal/score"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [resume-file]",
	Short: "Compute the heuristic completeness score for a resume",
	Long: `Score a resume document for completeness. The score is fully
deterministic: per-section scores for personal details, summary, experience,
education, skills and projects are combined into a weighted total with
actionable feedback for weak sections.

Use --sort-education to reorder education entries by recency and degree
level before scoring.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if scoreConfig.OutputFormat == "" {
			scoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if scoreSortEducation != "" && scoreSortEducation != string(score.SortAscending) && scoreSortEducation != string(score.SortDescending) {
			return fmt.Errorf("invalid sort order %q: must be asc or desc", scoreSortEducation)
		}
		return common.ValidateOutputFormat(scoreConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScore,
}

var (
	scoreConfig        common.CommandConfig
	scoreSortEducation string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scoreCmd.Flags().StringVar(&scoreConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	scoreCmd.Flags().StringVar(&scoreSortEducation, "sort-education", "", "Sort education entries before scoring: asc or desc")

	_ = scoreCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScore(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	resume, err := fileProcessor.ReadResume(args[0])
	if err != nil {
		return err
	}

	if scoreSortEducation != "" {
		resume.Education = score.SortEducation(resume.Education, score.SortOrder(scoreSortEducation))
	}

	logger.Info("Scoring resume",
		"title", resume.Title,
		"output_format", scoreConfig.OutputFormat)

	report := score.Score(resume)

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(report, scoreConfig); err != nil {
		return err
	}
	logger.Info("Resume scored", "total_score", report.TotalScore)
	return nil
}
