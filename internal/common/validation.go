package common

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"resumeforge/internal/errors"
	"resumeforge/internal/types"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateOutputFormat validates format against configured supported formats
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil // No restrictions configured
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// GetSupportedFormats returns the list of supported formats
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}

var resumeSchemaLoader = gojsonschema.NewStringLoader(resumeSchema)

// ValidateResumeJSON checks a raw resume document against the resume
// schema before it is decoded or stored.
func ValidateResumeJSON(raw []byte) error {
	result, err := gojsonschema.Validate(resumeSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidResume,
			"resume document is not valid JSON", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.NewValidationError(errors.ErrCodeInvalidResume,
		fmt.Sprintf("resume schema validation failed: %s", strings.Join(msgs, "; ")), nil)
}

// DecodeResume validates raw JSON against the schema and decodes it.
func DecodeResume(raw []byte) (*types.Resume, error) {
	if err := ValidateResumeJSON(raw); err != nil {
		return nil, err
	}
	var resume types.Resume
	if err := json.Unmarshal(raw, &resume); err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidResume,
			"failed to decode resume document", err)
	}
	return &resume, nil
}

// SanitizeResume applies the rich-text sanitizer to every HTML-bearing
// field in place. Stores call this on every write.
func SanitizeResume(resume *types.Resume) {
	if resume == nil {
		return
	}
	for i := range resume.Experience {
		resume.Experience[i].WorkSummary = SanitizeHTML(resume.Experience[i].WorkSummary)
	}
	for i := range resume.Projects {
		resume.Projects[i].ProjectSummary = SanitizeHTML(resume.Projects[i].ProjectSummary)
	}
}
