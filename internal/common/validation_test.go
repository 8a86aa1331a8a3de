package common

import (
	"strings"
	"testing"

	"resumeforge/internal/types"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name             string
		format           string
		supportedFormats []string
		expectError      bool
		expectedError    string
	}{
		{
			name:             "valid format - json",
			format:           "json",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      false,
		},
		{
			name:             "valid format - text",
			format:           "text",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      false,
		},
		{
			name:             "valid format - markdown",
			format:           "markdown",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      false,
		},
		{
			name:             "invalid format - xml",
			format:           "xml",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      true,
			expectedError:    "unsupported output format 'xml'. Supported formats: [json text markdown]",
		},
		{
			name:             "invalid format - csv",
			format:           "csv",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      true,
			expectedError:    "unsupported output format 'csv'. Supported formats: [json text markdown]",
		},
		{
			name:             "case sensitive - JSON uppercase",
			format:           "JSON",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      true,
			expectedError:    "unsupported output format 'JSON'. Supported formats: [json text markdown]",
		},
		{
			name:             "empty format string",
			format:           "",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      true,
			expectedError:    "unsupported output format ''. Supported formats: [json text markdown]",
		},
		{
			name:             "empty supported formats - should allow all",
			format:           "xml",
			supportedFormats: []string{},
			expectError:      false,
		},
		{
			name:             "single supported format - valid",
			format:           "json",
			supportedFormats: []string{"json"},
			expectError:      false,
		},
		{
			name:             "single supported format - invalid",
			format:           "text",
			supportedFormats: []string{"json"},
			expectError:      true,
			expectedError:    "unsupported output format 'text'. Supported formats: [json]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Run validation
			err := ValidateOutputFormat(tt.format, tt.supportedFormats)

			// Check results
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
					return
				}
				if tt.expectedError != "" && err.Error() != tt.expectedError {
					t.Errorf("Expected error '%s', got '%s'", tt.expectedError, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

func TestGetSupportedFormats(t *testing.T) {
	tests := []struct {
		name             string
		supportedFormats []string
		expected         []string
	}{
		{
			name:             "normal config with formats",
			supportedFormats: []string{"json", "text", "markdown"},
			expected:         []string{"json", "text", "markdown"},
		},
		{
			name:             "config with single format",
			supportedFormats: []string{"json"},
			expected:         []string{"json"},
		},
		{
			name:             "config with empty formats",
			supportedFormats: []string{},
			expected:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetSupportedFormats(tt.supportedFormats)

			if len(result) != len(tt.expected) {
				t.Errorf("Expected %d formats, got %d", len(tt.expected), len(result))
				return
			}

			for i, expected := range tt.expected {
				if i >= len(result) || result[i] != expected {
					t.Errorf("Expected format[%d] = '%s', got '%s'", i, expected, result[i])
				}
			}
		})
	}
}

func TestValidateResumeJSON(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expectError bool
	}{
		{"empty object", `{}`, false},
		{"minimal personal", `{"firstName":"Ada","email":"a@x.com"}`, false},
		{"full shape", `{
			"title": "My Resume",
			"template": "modern",
			"themeColor": "#2563eb",
			"experience": [{"title": "Engineer", "currentlyWorking": true}],
			"education": [{"degree": "BSc", "gradeType": "GPA"}],
			"skills": [{"name": "Go", "rating": 4}],
			"projects": [{"projectName": "Engine"}],
			"certifications": [{"name": "CKA", "issuer": "CNCF"}]
		}`, false},
		{"not json", `{"firstName":`, true},
		{"unknown top-level field", `{"nickname":"Ada"}`, true},
		{"wrong field type", `{"skills":"Go, SQL"}`, true},
		{"rating out of range", `{"skills":[{"name":"Go","rating":9}]}`, true},
		{"rating not integer", `{"skills":[{"name":"Go","rating":3.5}]}`, true},
		{"bad theme color", `{"themeColor":"blue"}`, true},
		{"empty theme color ok", `{"themeColor":""}`, false},
		{"bad grade type", `{"education":[{"gradeType":"Marks"}]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResumeJSON([]byte(tt.raw))
			if tt.expectError && err == nil {
				t.Error("Expected a validation error")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestDecodeResume(t *testing.T) {
	t.Run("valid document decodes", func(t *testing.T) {
		raw := `{"firstName":"Ada","skills":[{"name":"Math","rating":5}]}`
		resume, err := DecodeResume([]byte(raw))
		if err != nil {
			t.Fatalf("DecodeResume failed: %v", err)
		}
		if resume.FirstName != "Ada" {
			t.Errorf("Expected firstName Ada, got %q", resume.FirstName)
		}
		if len(resume.Skills) != 1 || resume.Skills[0].Rating != 5 {
			t.Errorf("Skills decoded wrong: %+v", resume.Skills)
		}
	})

	t.Run("invalid document rejected before decode", func(t *testing.T) {
		if _, err := DecodeResume([]byte(`{"skills":"oops"}`)); err == nil {
			t.Error("Expected schema rejection")
		}
	})
}

func TestSanitizeResume(t *testing.T) {
	resume := &types.Resume{
		Summary: "untouched plain summary",
		Experience: []types.Experience{{
			WorkSummary: `<p>Fine</p><script>bad()</script>`,
		}},
		Projects: []types.Project{{
			ProjectSummary: `<b onclick="x()">bold</b>`,
		}},
	}

	SanitizeResume(resume)

	if strings.Contains(resume.Experience[0].WorkSummary, "script") {
		t.Errorf("workSummary not sanitized: %q", resume.Experience[0].WorkSummary)
	}
	if !strings.Contains(resume.Experience[0].WorkSummary, "<p>Fine</p>") {
		t.Errorf("workSummary lost allowed markup: %q", resume.Experience[0].WorkSummary)
	}
	if strings.Contains(resume.Projects[0].ProjectSummary, "onclick") {
		t.Errorf("projectSummary kept an event handler: %q", resume.Projects[0].ProjectSummary)
	}
	if resume.Summary != "untouched plain summary" {
		t.Error("Summary should not be altered")
	}

	// Nil is tolerated.
	SanitizeResume(nil)
}

// Benchmark tests to ensure validation is fast
func BenchmarkValidateOutputFormat(b *testing.B) {
	supportedFormats := []string{"json", "text", "markdown"}

	b.Run("valid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("json", supportedFormats)
		}
	})

	b.Run("invalid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("xml", supportedFormats)
		}
	})
}

func BenchmarkValidateResumeJSON(b *testing.B) {
	raw := []byte(`{"firstName":"Ada","skills":[{"name":"Go","rating":4}]}`)
	for b.Loop() {
		_ = ValidateResumeJSON(raw)
	}
}
