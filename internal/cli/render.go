package cli

import (
	"fmt"

	"resumeforge/internal/common"
	"resumeforge/internal/render"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [resume-file]",
	Short: "Render a resume document into a print-ready HTML template",
	Long: `Render a structured resume JSON document with one of the registered
template variants. The output is a self-contained HTML page suitable for
printing or export.

Use --template to pick a variant and --theme-color to override the accent
color. Unknown template ids fall back to the default variant.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if renderConfig.OutputFormat == "" {
			renderConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if renderHTMLOnly {
			return nil
		}
		return common.ValidateOutputFormat(renderConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runRender,
}

var (
	renderConfig     common.CommandConfig
	renderTemplate   string
	renderThemeColor string
	renderHTMLOnly   bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	renderCmd.Flags().StringVar(&renderConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template variant (default from config)")
	renderCmd.Flags().StringVar(&renderThemeColor, "theme-color", "", "Accent color override, e.g. #2563eb")
	renderCmd.Flags().BoolVar(&renderHTMLOnly, "html", false, "Write the raw HTML document instead of a formatted summary")

	_ = renderCmd.RegisterFlagCompletionFunc("template", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return render.TemplateIDs(), cobra.ShellCompDirectiveNoFileComp
	})
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	resume, err := fileProcessor.ReadResume(args[0])
	if err != nil {
		return err
	}

	if renderTemplate != "" {
		resume.Template = renderTemplate
	}
	if renderThemeColor != "" {
		resume.ThemeColor = renderThemeColor
	}
	if resume.Template == "" {
		resume.Template = cfg.App.DefaultTemplate
	}

	logger.Info("Rendering resume",
		"template", resume.Template,
		"output_format", renderConfig.OutputFormat)

	engine, err := render.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to initialize render engine: %w", err)
	}

	doc, err := engine.Render(resume)
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	if renderHTMLOnly {
		if renderConfig.OutputFile == "" {
			fmt.Println(doc.HTML)
			return nil
		}
		return fileProcessor.WriteFile(renderConfig.OutputFile, doc.HTML)
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(*doc, renderConfig); err != nil {
		return err
	}
	logger.Info("Resume rendered successfully", "sections", len(doc.Sections))
	return nil
}
