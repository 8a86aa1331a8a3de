package render

import (
	"strings"
	"testing"

	"resumeforge/internal/types"
)

func newTestEngine(t testing.TB) *Engine {
	t.Helper()
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}

func fullResume() *types.Resume {
	return &types.Resume{
		Template:   "modern",
		ThemeColor: "#112233",
		FirstName:  "Ada", LastName: "Lovelace", JobTitle: "Engineer",
		Address: "London", Phone: "555-0100", Email: "ada@example.com",
		GithubURL: "github.com/ada", LinkedinURL: "linkedin.com/in/ada",
		Summary: "Analytical engine programmer.",
		Experience: []types.Experience{{
			Title: "Engineer", CompanyName: "Analytical Engines Ltd",
			City: "London", StartDate: "1842-01", EndDate: "1843-09",
			WorkSummary: "<ul><li>Wrote the first program</li></ul>",
		}},
		Education: []types.Education{{
			UniversityName: "Home Tutoring", Degree: "Mathematics",
			StartDate: "1830", EndDate: "1840",
		}},
		Skills:   []types.Skill{{Name: "Mathematics"}, {Name: "Notes"}},
		Projects: []types.Project{{ProjectName: "Note G", TechStack: "Punch cards", GithubLink: "github.com/ada/note-g"}},
		Certifications: []types.Certification{{
			Name: "Royal Society Fellow", Issuer: "Royal Society", Date: "1843",
		}},
	}
}

func TestRenderTotality(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name   string
		resume *types.Resume
	}{
		{"nil resume", nil},
		{"empty resume", &types.Resume{}},
		{"fully populated", fullResume()},
		{"unknown template", &types.Resume{Template: "nonexistent-xyz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := engine.Render(tt.resume)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if doc.HTML == "" {
				t.Error("Expected non-empty HTML output")
			}
			if !strings.Contains(doc.HTML, "<!DOCTYPE html>") {
				t.Error("Expected a complete HTML document")
			}
		})
	}
}

func TestRenderSectionPresence(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("empty resume has no sections", func(t *testing.T) {
		doc, err := engine.Render(&types.Resume{})
		if err != nil {
			t.Fatal(err)
		}
		if len(doc.Sections) != 0 {
			t.Errorf("Expected no sections, got %d", len(doc.Sections))
		}
	})

	t.Run("only populated sections render", func(t *testing.T) {
		doc, err := engine.Render(&types.Resume{
			Summary: "A summary.",
			Skills:  []types.Skill{{Name: "Go"}},
		})
		if err != nil {
			t.Fatal(err)
		}
		ids := make(map[string]bool)
		for _, s := range doc.Sections {
			ids[s.ID] = true
		}
		if !ids["summary"] || !ids["skills"] {
			t.Errorf("Expected summary and skills sections, got %v", ids)
		}
		if ids["experience"] || ids["education"] || ids["projects"] {
			t.Errorf("Unexpected empty sections rendered: %v", ids)
		}
	})

	t.Run("empty list equals missing list", func(t *testing.T) {
		withEmpty, err := engine.Render(&types.Resume{Skills: []types.Skill{}})
		if err != nil {
			t.Fatal(err)
		}
		missing, err := engine.Render(&types.Resume{})
		if err != nil {
			t.Fatal(err)
		}
		if withEmpty.HTML != missing.HTML {
			t.Error("Empty list and missing list rendered differently")
		}
	})
}

func TestRenderTemplateFallback(t *testing.T) {
	engine := newTestEngine(t)

	resume := fullResume()
	resume.Template = "nonexistent-xyz"
	fallback, err := engine.Render(resume)
	if err != nil {
		t.Fatal(err)
	}

	resume.Template = DefaultTemplate
	explicit, err := engine.Render(resume)
	if err != nil {
		t.Fatal(err)
	}

	if fallback.Template != DefaultTemplate {
		t.Errorf("Expected fallback template %q, got %q", DefaultTemplate, fallback.Template)
	}
	if fallback.HTML != explicit.HTML {
		t.Error("Fallback render differs from the explicit default render")
	}
}

func TestRenderAllVariants(t *testing.T) {
	engine := newTestEngine(t)
	resume := fullResume()

	for _, id := range TemplateIDs() {
		t.Run(id, func(t *testing.T) {
			resume.Template = id
			resume.ThemeColor = ""
			doc, err := engine.Render(resume)
			if err != nil {
				t.Fatalf("Render(%s) failed: %v", id, err)
			}
			if doc.Template != id {
				t.Errorf("Expected template %q, got %q", id, doc.Template)
			}
			desc := Resolve(id)
			if doc.ThemeColor != desc.DefaultColor {
				t.Errorf("Expected variant default color %q, got %q",
					desc.DefaultColor, doc.ThemeColor)
			}
			if !strings.Contains(doc.HTML, desc.DefaultColor) {
				t.Error("Variant default color missing from output")
			}
		})
	}
}

func TestRenderThemeColorOverride(t *testing.T) {
	engine := newTestEngine(t)
	resume := fullResume()
	resume.ThemeColor = "#ab12cd"

	doc, err := engine.Render(resume)
	if err != nil {
		t.Fatal(err)
	}
	if doc.ThemeColor != "#ab12cd" {
		t.Errorf("Expected explicit theme color, got %q", doc.ThemeColor)
	}
	if !strings.Contains(doc.HTML, "#ab12cd") {
		t.Error("Explicit theme color missing from output")
	}
}

func TestRenderCurrentlyWorkingPrecedence(t *testing.T) {
	engine := newTestEngine(t)
	doc, err := engine.Render(&types.Resume{
		Experience: []types.Experience{{
			Title: "Engineer", CompanyName: "Initech",
			StartDate: "2020-01", EndDate: "2021-12", CurrentlyWorking: true,
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(doc.HTML, "Present") {
		t.Error("Expected 'Present' for a current position")
	}
	if strings.Contains(doc.HTML, "Dec 2021") {
		t.Error("Stale endDate rendered despite currentlyWorking")
	}
}

func TestRenderURLHandling(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("bare domains get a scheme", func(t *testing.T) {
		doc, err := engine.Render(&types.Resume{GithubURL: "github.com/ada"})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(doc.HTML, `href="https://github.com/ada"`) {
			t.Error("Expected normalized GitHub link in output")
		}
	})

	t.Run("empty urls render no link", func(t *testing.T) {
		doc, err := engine.Render(&types.Resume{FirstName: "Ada"})
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(doc.HTML, "GitHub") || strings.Contains(doc.HTML, "LinkedIn") {
			t.Error("Link labels rendered for absent URLs")
		}
	})
}

func TestRenderSanitizesRichText(t *testing.T) {
	engine := newTestEngine(t)
	doc, err := engine.Render(&types.Resume{
		Experience: []types.Experience{{
			Title:       "Engineer",
			WorkSummary: `<p>Fine</p><script>alert("x")</script>`,
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(doc.HTML, "<script>") {
		t.Error("Script tag survived rendering")
	}
	if !strings.Contains(doc.HTML, "<p>Fine</p>") {
		t.Error("Allowed markup was stripped")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected string
	}{
		{"known template", "classic", "classic"},
		{"empty id", "", DefaultTemplate},
		{"unknown id", "nope", DefaultTemplate},
		{"case sensitive", "Modern", DefaultTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.id)
			if got.ID != tt.expected {
				t.Errorf("Resolve(%q).ID = %q, want %q", tt.id, got.ID, tt.expected)
			}
		})
	}
}

func TestRegistryDescriptors(t *testing.T) {
	ids := TemplateIDs()
	if len(ids) != 14 {
		t.Errorf("Expected 14 registered variants, got %d", len(ids))
	}
	for _, id := range ids {
		desc := Resolve(id)
		if desc.DefaultColor == "" || !strings.HasPrefix(desc.DefaultColor, "#") {
			t.Errorf("Variant %s has no default color", id)
		}
		if len(desc.SectionOrder) == 0 {
			t.Errorf("Variant %s has no section order", id)
		}
		if desc.BodyFont == "" {
			t.Errorf("Variant %s has no body font", id)
		}
	}
}

func BenchmarkRender(b *testing.B) {
	engine := newTestEngine(b)
	resume := fullResume()

	for b.Loop() {
		if _, err := engine.Render(resume); err != nil {
			b.Fatal(err)
		}
	}
}
