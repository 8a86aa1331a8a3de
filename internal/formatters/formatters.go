package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumeforge/internal/types"
	"resumeforge/internal/utils"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ScoreReport", &ScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "ScoreReport", &ScoreMarkdownFormatter{})
	registry.RegisterFormatter("text", "EnhanceContentOutput", &EnhanceTextFormatter{})
	registry.RegisterFormatter("markdown", "EnhanceContentOutput", &EnhanceMarkdownFormatter{})
	registry.RegisterFormatter("text", "VisualDocument", &DocumentTextFormatter{})
	registry.RegisterFormatter("markdown", "VisualDocument", &DocumentMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ScoreReport:
		return "ScoreReport"
	case types.EnhanceContentOutput:
		return "EnhanceContentOutput"
	case types.VisualDocument:
		return "VisualDocument"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ScoreTextFormatter handles text formatting for score reports
type ScoreTextFormatter struct{}

func (stf *ScoreTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScoreReport)
	if !ok {
		return "", fmt.Errorf("expected ScoreReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Total Score: %d/100", result.TotalScore))
	if result.Degraded {
		output.WriteString(" (heuristic only, AI analysis unavailable)")
	}
	output.WriteString("\n\n")

	output.WriteString("=== SECTION SCORES ===\n")
	output.WriteString(fmt.Sprintf("Personal Details: %d/100\n", result.Sections.Personal))
	output.WriteString(fmt.Sprintf("Summary:          %d/100\n", result.Sections.Summary))
	output.WriteString(fmt.Sprintf("Experience:       %d/100\n", result.Sections.Experience))
	output.WriteString(fmt.Sprintf("Education:        %d/100\n", result.Sections.Education))
	output.WriteString(fmt.Sprintf("Skills:           %d/100\n", result.Sections.Skills))
	output.WriteString(fmt.Sprintf("Projects:         %d/100\n", result.Sections.Projects))
	output.WriteString("\n")

	if len(result.Feedback) > 0 {
		output.WriteString("=== FEEDBACK ===\n")
		for _, item := range result.Feedback {
			output.WriteString(fmt.Sprintf("- %s\n", item))
		}
		output.WriteString("\n")
	}

	if result.Analysis != nil {
		output.WriteString("=== ANALYSIS ===\n")
		if len(result.Analysis.Strengths) > 0 {
			output.WriteString("Strengths:\n")
			for _, strength := range result.Analysis.Strengths {
				output.WriteString(fmt.Sprintf("- %s\n", strength))
			}
			output.WriteString("\n")
		}
		if len(result.Analysis.Weaknesses) > 0 {
			output.WriteString("Weaknesses:\n")
			for _, weakness := range result.Analysis.Weaknesses {
				output.WriteString(fmt.Sprintf("- %s\n", weakness))
			}
			output.WriteString("\n")
		}
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("=== SUGGESTIONS ===\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
	}

	return output.String(), nil
}

func (stf *ScoreTextFormatter) SupportedType() string {
	return "ScoreReport"
}

// ScoreMarkdownFormatter handles markdown formatting for score reports
type ScoreMarkdownFormatter struct{}

func (smf *ScoreMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScoreReport)
	if !ok {
		return "", fmt.Errorf("expected ScoreReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Score\n\n")
	output.WriteString(fmt.Sprintf("**Total Score:** %d/100\n\n", result.TotalScore))
	if result.Degraded {
		output.WriteString("> AI analysis was unavailable; this report is heuristic only.\n\n")
	}

	output.WriteString("## Section Scores\n\n")
	output.WriteString("| Section | Score |\n")
	output.WriteString("|---------|-------|\n")
	output.WriteString(fmt.Sprintf("| Personal Details | %d/100 |\n", result.Sections.Personal))
	output.WriteString(fmt.Sprintf("| Summary | %d/100 |\n", result.Sections.Summary))
	output.WriteString(fmt.Sprintf("| Experience | %d/100 |\n", result.Sections.Experience))
	output.WriteString(fmt.Sprintf("| Education | %d/100 |\n", result.Sections.Education))
	output.WriteString(fmt.Sprintf("| Skills | %d/100 |\n", result.Sections.Skills))
	output.WriteString(fmt.Sprintf("| Projects | %d/100 |\n", result.Sections.Projects))
	output.WriteString("\n")

	if len(result.Feedback) > 0 {
		output.WriteString("## Feedback\n\n")
		for _, item := range result.Feedback {
			output.WriteString(fmt.Sprintf("- %s\n", item))
		}
		output.WriteString("\n")
	}

	if result.Analysis != nil {
		output.WriteString("## Analysis\n\n")
		if len(result.Analysis.Strengths) > 0 {
			output.WriteString("### Strengths\n")
			for _, strength := range result.Analysis.Strengths {
				output.WriteString(fmt.Sprintf("- %s\n", strength))
			}
			output.WriteString("\n")
		}
		if len(result.Analysis.Weaknesses) > 0 {
			output.WriteString("### Weaknesses\n")
			for _, weakness := range result.Analysis.Weaknesses {
				output.WriteString(fmt.Sprintf("- %s\n", weakness))
			}
			output.WriteString("\n")
		}
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
	}

	return output.String(), nil
}

func (smf *ScoreMarkdownFormatter) SupportedType() string {
	return "ScoreReport"
}

// EnhanceTextFormatter handles text formatting for content suggestions
type EnhanceTextFormatter struct{}

func (etf *EnhanceTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.EnhanceContentOutput)
	if !ok {
		return "", fmt.Errorf("expected EnhanceContentOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CONTENT SUGGESTIONS ===\n\n")
	output.WriteString(fmt.Sprintf("Category: %s\n\n", result.Category))

	if len(result.Suggestions) > 0 {
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n\n", i+1, suggestion))
		}
	} else {
		output.WriteString("No suggestions produced.\n")
	}

	return output.String(), nil
}

func (etf *EnhanceTextFormatter) SupportedType() string {
	return "EnhanceContentOutput"
}

// EnhanceMarkdownFormatter handles markdown formatting for content suggestions
type EnhanceMarkdownFormatter struct{}

func (emf *EnhanceMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.EnhanceContentOutput)
	if !ok {
		return "", fmt.Errorf("expected EnhanceContentOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Content Suggestions\n\n")
	output.WriteString(fmt.Sprintf("**Category:** %s\n\n", result.Category))

	if len(result.Suggestions) > 0 {
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("## Option %d\n\n%s\n\n", i+1, suggestion))
		}
	} else {
		output.WriteString("No suggestions produced.\n")
	}

	return output.String(), nil
}

func (emf *EnhanceMarkdownFormatter) SupportedType() string {
	return "EnhanceContentOutput"
}

// DocumentTextFormatter summarizes a rendered document; the HTML itself is
// written to a file, not a terminal.
type DocumentTextFormatter struct{}

func (dtf *DocumentTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.VisualDocument)
	if !ok {
		return "", fmt.Errorf("expected VisualDocument, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RENDERED RESUME ===\n\n")
	output.WriteString(fmt.Sprintf("Template: %s\n", result.Template))
	output.WriteString(fmt.Sprintf("Theme Color: %s\n", result.ThemeColor))
	output.WriteString(fmt.Sprintf("Document Size: %s\n\n", utils.FormatFileSize(int64(len(result.HTML)))))

	if len(result.Sections) > 0 {
		output.WriteString("Sections:\n")
		for _, section := range result.Sections {
			output.WriteString(fmt.Sprintf("- %s (%s)\n", section.Title, section.ID))
		}
	} else {
		output.WriteString("No sections rendered.\n")
	}

	return output.String(), nil
}

func (dtf *DocumentTextFormatter) SupportedType() string {
	return "VisualDocument"
}

// DocumentMarkdownFormatter handles markdown formatting for rendered documents
type DocumentMarkdownFormatter struct{}

func (dmf *DocumentMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.VisualDocument)
	if !ok {
		return "", fmt.Errorf("expected VisualDocument, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Rendered Resume\n\n")
	output.WriteString(fmt.Sprintf("**Template:** %s\n\n", result.Template))
	output.WriteString(fmt.Sprintf("**Theme Color:** %s\n\n", result.ThemeColor))
	output.WriteString(fmt.Sprintf("**Document Size:** %s\n\n", utils.FormatFileSize(int64(len(result.HTML)))))

	if len(result.Sections) > 0 {
		output.WriteString("## Sections\n\n")
		for _, section := range result.Sections {
			output.WriteString(fmt.Sprintf("- **%s** (`%s`)\n", section.Title, section.ID))
		}
	} else {
		output.WriteString("No sections rendered.\n")
	}

	return output.String(), nil
}

func (dmf *DocumentMarkdownFormatter) SupportedType() string {
	return "VisualDocument"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
