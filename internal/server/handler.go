package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"resumeforge/internal/ai"
	"resumeforge/internal/common"
	"resumeforge/internal/observability"
	"resumeforge/internal/score"
	"resumeforge/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// analyzeFence issues a monotonic token per augmentation request. A
// response whose token is older than the latest issued is stale and its
// AI contribution is discarded, so only the newest request wins.
type analyzeFence struct {
	latest atomic.Uint64
}

func (f *analyzeFence) Issue() uint64 {
	return f.latest.Add(1)
}

func (f *analyzeFence) Stale(token uint64) bool {
	return token != f.latest.Load()
}

// decodeResumeField validates and decodes the raw resume document carried
// in a request body. Rich text fields are sanitized on the way in.
func decodeResumeField(raw json.RawMessage) (*types.Resume, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("resume field is required")
	}
	if err := common.ValidateResumeJSON(raw); err != nil {
		return nil, err
	}
	resume, err := common.DecodeResume(raw)
	if err != nil {
		return nil, err
	}
	common.SanitizeResume(resume)
	return resume, nil
}

// createRenderHandler wraps the render handler with observability
func (s *Server) createRenderHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.render")
		defer span.End()

		resume, ok := s.parseRenderInput(w, r, func(err error, errType string) {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", errType))
		})
		if !ok {
			return
		}

		span.SetAttributes(
			attribute.String("template", resume.Template),
			attribute.String("operation", "render"),
		)

		doc, err := s.Engine.Render(resume)
		metrics := om.GetMetrics()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "render"))
			metrics.RecordBusinessMetric(ctx, "resume_rendered", false, om)
			writeAppError(w, s.Logger, err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_rendered", true, om,
			attribute.String("template", doc.Template),
			attribute.Int("sections", len(doc.Sections)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.html_length", len(doc.HTML)),
		)

		writeJSONResponse(w, doc, span)
	}
}

// createScoreHandler wraps the heuristic score handler with observability
func (s *Server) createScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.score")
		defer span.End()

		var req ScoreRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		resume, err := decodeResumeField(req.Resume)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid resume", err.Error(), http.StatusBadRequest)
			return
		}

		if req.SortEducation != "" {
			resume.Education = score.SortEducation(resume.Education, score.SortOrder(req.SortEducation))
		}

		span.SetAttributes(attribute.String("operation", "score"))

		report := score.Score(resume)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "resume_scored", true, om,
			attribute.Int("total_score", report.TotalScore))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("total_score", report.TotalScore),
		)

		writeJSONResponse(w, report, span)
	}
}

// createAnalyzeHandler wraps the AI-augmented analyze handler with
// observability and request fencing.
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		var req ScoreRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		resume, err := decodeResumeField(req.Resume)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid resume", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(attribute.String("operation", "analyze"))

		// Create AI service for analyze operation
		analyzeConfig := s.AppConfig.GetAnalyzeConfig()
		aiService, err := ai.NewService(&analyzeConfig, "analyze", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		token := s.fence.Issue()
		span.SetAttributes(attribute.Int64("fence.token", int64(token)))

		// Track AI operation with observability and token usage
		metrics := om.GetMetrics()
		var report types.ScoreReport
		err = metrics.TrackAIOperationWithTokens(ctx, "analyze", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.AnalyzeResume(ctx, resume)
			report = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_scored", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to analyze resume", err.Error(), http.StatusBadGateway)
			return
		}

		// A newer analyze request was issued while this one was in
		// flight. Drop the stale AI contribution and fall back to the
		// heuristic report for this response.
		if s.fence.Stale(token) {
			s.Logger.Debug("Discarding stale analysis response",
				"token", token, "latest", s.fence.latest.Load())
			report = score.Score(resume)
			report.Degraded = true
			span.SetAttributes(attribute.Bool("fence.stale", true))
		}

		metrics.RecordBusinessMetric(ctx, "resume_scored", true, om,
			attribute.Int("total_score", report.TotalScore),
			attribute.Bool("degraded", report.Degraded))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("total_score", report.TotalScore),
			attribute.Bool("degraded", report.Degraded),
		)

		writeJSONResponse(w, report, span)
	}
}

// createEnhanceHandler wraps the content suggestion handler with observability
func (s *Server) createEnhanceHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.enhance")
		defer span.End()

		var req EnhanceRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.JobTitle) == "" {
			err := fmt.Errorf("missing job title")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job title", "jobTitle field is required", http.StatusBadRequest)
			return
		}
		if !validEnhanceCategory(req.Category) {
			err := fmt.Errorf("invalid category: %s", req.Category)
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid category", "category must be summary, skills or experience", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("category", req.Category),
			attribute.String("operation", "enhance"),
		)

		input := types.EnhanceContentInput{
			JobTitle: req.JobTitle,
			Category: req.Category,
			Existing: req.Existing,
		}

		// Create AI service for enhance operation
		enhanceConfig := s.AppConfig.GetEnhanceConfig()
		aiService, err := ai.NewService(&enhanceConfig, "enhance", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.EnhanceContentOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "enhance", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.EnhanceContent(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "suggestions_generated", false, om)
			writeErrorResponse(w, "Failed to generate suggestions", err.Error(), http.StatusBadGateway)
			return
		}

		metrics.RecordBusinessMetric(ctx, "suggestions_generated", true, om,
			attribute.String("category", result.Category),
			attribute.Int("suggestions_count", len(result.Suggestions)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("suggestions_count", len(result.Suggestions)),
		)

		writeJSONResponse(w, result, span)
	}
}

// createExportHandler renders the resume and captures it as PDF or PNG
func (s *Server) createExportHandler(om *observability.ObservabilityManager, format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.export."+format)
		defer span.End()

		resume, ok := s.parseRenderInput(w, r, func(err error, errType string) {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", errType))
		})
		if !ok {
			return
		}

		span.SetAttributes(
			attribute.String("template", resume.Template),
			attribute.String("format", format),
			attribute.String("operation", "export"),
		)

		metrics := om.GetMetrics()

		doc, err := s.Engine.Render(resume)
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "resume_exported", false, om,
				attribute.String("format", format))
			writeAppError(w, s.Logger, err)
			return
		}

		var artifact []byte
		switch format {
		case "pdf":
			artifact, err = s.Exporter.ExportPDF(ctx, doc.HTML)
		case "png":
			artifact, err = s.Exporter.ExportPNG(ctx, doc.HTML)
		default:
			err = fmt.Errorf("unsupported export format: %s", format)
		}
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "export"))
			metrics.RecordBusinessMetric(ctx, "resume_exported", false, om,
				attribute.String("format", format))
			writeAppError(w, s.Logger, err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_exported", true, om,
			attribute.String("format", format),
			attribute.Int("artifact_bytes", len(artifact)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("artifact_bytes", len(artifact)),
		)

		contentType := "application/pdf"
		filename := "resume.pdf"
		if format == "png" {
			contentType = "image/png"
			filename = "resume.png"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if _, err := w.Write(artifact); err != nil {
			s.Logger.Warn("Failed to write export response", "error", err.Error())
		}
	}
}

// parseRenderInput decodes a RenderRequest, applies template and theme
// overrides and falls back to the configured default template.
func (s *Server) parseRenderInput(w http.ResponseWriter, r *http.Request, onErr func(error, string)) (*types.Resume, bool) {
	var req RenderRequest
	if err := parseJSONRequest(r, &req); err != nil {
		onErr(err, "validation")
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return nil, false
	}

	resume, err := decodeResumeField(req.Resume)
	if err != nil {
		onErr(err, "validation")
		writeErrorResponse(w, "Invalid resume", err.Error(), http.StatusBadRequest)
		return nil, false
	}

	if req.Template != "" {
		resume.Template = req.Template
	}
	if req.ThemeColor != "" {
		resume.ThemeColor = req.ThemeColor
	}
	if resume.Template == "" {
		resume.Template = s.AppConfig.App.DefaultTemplate
	}

	return resume, true
}

func validEnhanceCategory(category string) bool {
	switch category {
	case "summary", "skills", "experience":
		return true
	}
	return false
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
