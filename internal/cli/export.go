package cli

import (
	"fmt"

	"resumeforge/internal/common"
	"resumeforge/internal/export"
	"resumeforge/internal/render"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [resume-file]",
	Short: "Export a rendered resume as PDF or PNG",
	Long: `Render a resume document with the selected template and capture it
with a headless Chrome instance as a PDF (A4, CSS page size honored) or a
full-page PNG screenshot.

A Chrome or Chromium binary must be available; set export.chromePath in
the config or the CHROME_PATH environment variable when it is not on PATH.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		switch exportFormat {
		case "pdf", "png":
		default:
			return fmt.Errorf("invalid export format %q: must be pdf or png", exportFormat)
		}
		return nil
	},
	RunE: runExport,
}

var (
	exportFormat     string
	exportOutput     string
	exportTemplate   string
	exportThemeColor string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Export format: pdf or png")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: resume.<format>)")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template variant (default from config)")
	exportCmd.Flags().StringVar(&exportThemeColor, "theme-color", "", "Accent color override, e.g. #2563eb")

	_ = exportCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"pdf", "png"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = exportCmd.RegisterFlagCompletionFunc("template", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return render.TemplateIDs(), cobra.ShellCompDirectiveNoFileComp
	})
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	resume, err := fileProcessor.ReadResume(args[0])
	if err != nil {
		return err
	}

	if exportTemplate != "" {
		resume.Template = exportTemplate
	}
	if exportThemeColor != "" {
		resume.ThemeColor = exportThemeColor
	}
	if resume.Template == "" {
		resume.Template = cfg.App.DefaultTemplate
	}

	outputFile := exportOutput
	if outputFile == "" {
		outputFile = "resume." + exportFormat
	}
	if err := fileProcessor.ValidateOutputFile(outputFile); err != nil {
		return err
	}

	logger.Info("Exporting resume",
		"template", resume.Template,
		"format", exportFormat,
		"output", outputFile)

	engine, err := render.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to initialize render engine: %w", err)
	}
	doc, err := engine.Render(resume)
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	exporter := export.NewExporter(cfg.Export, logger)

	var artifact []byte
	switch exportFormat {
	case "pdf":
		artifact, err = exporter.ExportPDF(cmd.Context(), doc.HTML)
	case "png":
		artifact, err = exporter.ExportPNG(cmd.Context(), doc.HTML)
	}
	if err != nil {
		return err
	}

	if err := fileProcessor.WriteBinaryFile(outputFile, artifact); err != nil {
		return err
	}

	logger.Info("Resume exported", "output", outputFile, "bytes", len(artifact))
	return nil
}
