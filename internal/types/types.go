package types

// Resume is the canonical document model for one person's resume. Every
// field except ID is optional; list fields default to empty and renderers
// treat missing and empty identically.
type Resume struct {
	ID         string `json:"id,omitempty"`
	Title      string `json:"title,omitempty"`
	Template   string `json:"template,omitempty"`
	ThemeColor string `json:"themeColor,omitempty"`

	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	JobTitle  string `json:"jobTitle,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`

	GithubURL    string `json:"githubUrl,omitempty"`
	LinkedinURL  string `json:"linkedinUrl,omitempty"`
	PortfolioURL string `json:"portfolioUrl,omitempty"`

	Summary string `json:"summary,omitempty"`

	Experience     []Experience    `json:"experience,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Skills         []Skill         `json:"skills,omitempty"`
	Projects       []Project       `json:"projects,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
}

// Experience is a single work history entry. Dates are free-form strings;
// CurrentlyWorking takes precedence over a stale EndDate at display time.
type Experience struct {
	Title            string `json:"title,omitempty"`
	CompanyName      string `json:"companyName,omitempty"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	StartDate        string `json:"startDate,omitempty"`
	EndDate          string `json:"endDate,omitempty"`
	CurrentlyWorking bool   `json:"currentlyWorking,omitempty"`
	WorkSummary      string `json:"workSummary,omitempty"` // sanitized HTML fragment
}

// Education is a single education entry. Order is user-controlled but may
// be re-sorted on demand via score.SortEducation.
type Education struct {
	UniversityName string `json:"universityName,omitempty"`
	Degree         string `json:"degree,omitempty"`
	Major          string `json:"major,omitempty"`
	Grade          string `json:"grade,omitempty"`
	GradeType      string `json:"gradeType,omitempty"` // CGPA, GPA or Percentage
	StartDate      string `json:"startDate,omitempty"`
	EndDate        string `json:"endDate,omitempty"`
	Description    string `json:"description,omitempty"`
}

// Skill is a named skill. Rating is accepted on input and consumed by the
// scorer but stripped before persistence.
type Skill struct {
	Name   string `json:"name,omitempty"`
	Rating int    `json:"rating,omitempty"`
}

// Project is a single portfolio project entry.
type Project struct {
	ProjectName    string `json:"projectName,omitempty"`
	TechStack      string `json:"techStack,omitempty"`
	ProjectSummary string `json:"projectSummary,omitempty"` // sanitized HTML fragment
	GithubLink     string `json:"githubLink,omitempty"`
	DeployedLink   string `json:"deployedLink,omitempty"`
}

// Certification is only consumed by template variants that render a
// certifications section.
type Certification struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// SectionScores holds the per-section completeness scores, each 0-100.
type SectionScores struct {
	Personal   int `json:"personal"`
	Summary    int `json:"summary"`
	Experience int `json:"experience"`
	Education  int `json:"education"`
	Skills     int `json:"skills"`
	Projects   int `json:"projects"`
}

// Analysis carries qualitative findings, either heuristic or AI-supplied.
type Analysis struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// ScoreReport is the derived, ephemeral completeness assessment of a
// Resume. It is recomputed on demand and never persisted.
type ScoreReport struct {
	Sections    SectionScores `json:"sections"`
	TotalScore  int           `json:"totalScore"`
	Feedback    []string      `json:"feedback"`
	Analysis    *Analysis     `json:"analysis,omitempty"`
	Suggestions []string      `json:"suggestions,omitempty"`
	// Degraded is set when AI augmentation was requested but the report
	// fell back to the heuristic result.
	Degraded bool `json:"degraded,omitempty"`
}

// RenderedSection is one section of a rendered document, in layout order.
type RenderedSection struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// VisualDocument is the output of rendering a Resume with one template
// variant: a self-contained, print-ready HTML page plus its parts.
type VisualDocument struct {
	Template   string            `json:"template"`
	ThemeColor string            `json:"themeColor"`
	Sections   []RenderedSection `json:"sections"`
	HTML       string            `json:"html"`
}

// AnalyzeResumeInput is the input for AI-augmented resume analysis.
type AnalyzeResumeInput struct {
	Resume Resume `json:"resume"`
}

// AnalyzeResumeOutput is the structured shape the analysis model is asked
// to produce. Scores mirror the heuristic sections so the two results are
// interchangeable.
type AnalyzeResumeOutput struct {
	Scores      SectionScores `json:"scores"`
	Analysis    Analysis      `json:"analysis"`
	Suggestions []string      `json:"suggestions"`
}

// EnhanceContentInput asks for suggested content for one resume field
// category, seeded by the job title and any existing text.
type EnhanceContentInput struct {
	JobTitle string `json:"jobTitle"`
	Category string `json:"category"` // summary, skills or experience
	Existing string `json:"existing,omitempty"`
}

// EnhanceContentOutput carries category-keyed content suggestions.
type EnhanceContentOutput struct {
	Category    string   `json:"category"`
	Suggestions []string `json:"suggestions"`
}
