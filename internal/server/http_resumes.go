package server

import (
	"encoding/json"
	"net/http"

	"resumeforge/internal/common"
	"resumeforge/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// createResumeCreateHandler stores a new resume document. The body is the
// resume JSON itself, validated against the schema before it is accepted.
func (s *Server) createResumeCreateHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(r.Context(), "api.resumes.create")
		defer span.End()

		var raw json.RawMessage
		if err := parseJSONRequest(r, &raw); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := common.ValidateResumeJSON(raw); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeAppError(w, s.Logger, err)
			return
		}
		resume, err := common.DecodeResume(raw)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, s.Logger, err)
			return
		}

		created, err := s.Store.Create(ctx, resume)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, s.Logger, err)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("resume.id", created.ID),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			span.RecordError(err)
		}
	}
}

// createResumeGetHandler returns one stored resume by id
func (s *Server) createResumeGetHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(r.Context(), "api.resumes.get")
		defer span.End()

		id := r.PathValue("id")
		span.SetAttributes(attribute.String("resume.id", id))

		resume, err := s.Store.Get(ctx, id)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, s.Logger, err)
			return
		}

		span.SetAttributes(attribute.Bool("success", true))
		writeJSONResponse(w, resume, span)
	}
}

// createResumeListHandler lists every stored resume
func (s *Server) createResumeListHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(r.Context(), "api.resumes.list")
		defer span.End()

		resumes, err := s.Store.ListAll(ctx)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, s.Logger, err)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("resume.count", len(resumes)),
		)
		writeJSONResponse(w, resumes, span)
	}
}

// createResumeUpdateHandler applies a shallow field merge to a stored
// resume. Fields present in the body replace stored fields wholesale;
// absent fields are untouched and the id cannot be changed.
func (s *Server) createResumeUpdateHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(r.Context(), "api.resumes.update")
		defer span.End()

		id := r.PathValue("id")
		span.SetAttributes(attribute.String("resume.id", id))

		var patch map[string]json.RawMessage
		if err := parseJSONRequest(r, &patch); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := s.Store.Update(ctx, id, patch)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, s.Logger, err)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("patched_fields", len(patch)),
		)
		writeJSONResponse(w, updated, span)
	}
}

// createResumeDeleteHandler removes a stored resume
func (s *Server) createResumeDeleteHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(r.Context(), "api.resumes.delete")
		defer span.End()

		id := r.PathValue("id")
		span.SetAttributes(attribute.String("resume.id", id))

		if err := s.Store.Delete(ctx, id); err != nil {
			span.RecordError(err)
			writeAppError(w, s.Logger, err)
			return
		}

		span.SetAttributes(attribute.Bool("success", true))
		w.WriteHeader(http.StatusNoContent)
	}
}
