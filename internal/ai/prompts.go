package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	AnalyzeResume  string
	EnhanceContent string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	AnalyzeResume  string
	EnhanceContent string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	AnalyzeResume: `You are an expert resume reviewer and career coach with a strict commitment to honesty and accuracy. Your core principles are:

- NEVER invent facts about the candidate; base every observation on the resume content provided
- Be specific: cite the section a strength or weakness comes from
- Keep suggestions actionable and phrased as concrete edits the candidate can make
- Maintain a constructive, professional tone

Your expertise includes:
- Resume structure and impact writing
- ATS (Applicant Tracking System) friendliness
- Quantifying achievements and avoiding vague claims
- HR best practices and industry standards`,

	EnhanceContent: `You are an expert resume writer who produces short, polished resume content on request. Your core principles are:

- Write in the first person implied voice used on resumes (no "I")
- Prefer strong action verbs and measurable outcomes
- Keep each suggestion self-contained and ready to paste into a resume
- Never fabricate employers, credentials, or metrics; when a metric is needed, use a clearly generic placeholder the candidate must replace

You specialize in professional summaries, work experience bullet points, and project descriptions across industries.`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	AnalyzeResume: `Please review the resume below and produce a structured analysis.

**Tasks:**

1. **Strengths**:
   List the 3-5 strongest aspects of this resume. Reference the specific
   section each strength comes from.

2. **Weaknesses**:
   List the 3-5 most significant weaknesses or gaps. Reference the specific
   section each weakness applies to, and explain why it hurts the resume.

3. **Suggestions**:
   Provide 3-5 concrete, high-impact edits the candidate should make,
   ordered by expected impact.

**Resume (JSON):**
-----
%s
-----`,

	EnhanceContent: `Please write improved resume content for the request below.

**Target role:** %s
**Content category:** %s

**Existing content (may be empty):**
-----
%s
-----

Produce 3 alternative versions of the requested content. Each version must:
- Fit the target role
- Improve on the existing content where any was provided
- Be ready to paste into a resume without further editing

Return only the suggestions.`,
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `json:"systemPrompts"`
	UserPrompts   UserPrompts   `json:"userPrompts"`
}

// GetDefaultPromptConfig returns the default prompt configuration
func GetDefaultPromptConfig() PromptConfig {
	return PromptConfig{
		SystemPrompts: DefaultSystemPrompts,
		UserPrompts:   DefaultUserPrompts,
	}
}
