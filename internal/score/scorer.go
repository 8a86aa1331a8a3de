package score

import (
	"math"
	"strings"

	"resumeforge/internal/types"
)

// Section weights for the overall score. Sections scoring zero are
// excluded from both numerator and denominator, so a resume with one
// populated section scores exactly that section's value.
const (
	weightPersonal   = 0.15
	weightSummary    = 0.15
	weightExperience = 0.25
	weightEducation  = 0.15
	weightSkills     = 0.15
	weightProjects   = 0.15
)

// feedbackThreshold is the per-section score below which an advisory
// string is emitted.
const feedbackThreshold = 70

// Summary length breakpoints. Entry-level rich text (workSummary,
// projectSummary) uses the same breakpoints halved.
const (
	summaryLongLen   = 300
	summaryMediumLen = 200
	summaryShortLen  = 100
)

// Score computes the completeness report for a resume. It is pure and
// total: a nil resume or any combination of missing sections yields zero
// scores, never an error.
func Score(resume *types.Resume) types.ScoreReport {
	if resume == nil {
		resume = &types.Resume{}
	}

	sections := types.SectionScores{
		Personal:   scorePersonal(resume),
		Summary:    scoreSummary(resume.Summary),
		Experience: scoreExperience(resume.Experience),
		Education:  scoreEducation(resume.Education),
		Skills:     scoreSkills(resume.Skills),
		Projects:   scoreProjects(resume.Projects),
	}

	return types.ScoreReport{
		Sections:   sections,
		TotalScore: totalScore(sections),
		Feedback:   feedback(sections),
	}
}

func scorePersonal(resume *types.Resume) int {
	fields := []string{
		resume.FirstName, resume.LastName, resume.JobTitle,
		resume.Email, resume.Phone, resume.Address,
	}
	present := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			present++
		}
	}
	return roundRatio(present, len(fields))
}

func scoreSummary(summary string) int {
	length := len(strings.TrimSpace(summary))
	switch {
	case length == 0:
		return 0
	case length > summaryLongLen:
		return 95
	case length > summaryMediumLen:
		return 85
	case length > summaryShortLen:
		return 75
	default:
		return 60
	}
}

// richTextScore grades an entry-level rich-text field at 20/30/40 using
// the summary breakpoints halved.
func richTextScore(text string) int {
	length := len(strings.TrimSpace(text))
	switch {
	case length == 0:
		return 0
	case length > summaryLongLen/2:
		return 40
	case length > summaryMediumLen/2:
		return 30
	default:
		return 20
	}
}

func scoreExperience(entries []types.Experience) int {
	if len(entries) == 0 {
		return 0
	}
	total := 0
	for _, e := range entries {
		sub := 0
		if strings.TrimSpace(e.Title) != "" {
			sub += 20
		}
		if strings.TrimSpace(e.CompanyName) != "" {
			sub += 20
		}
		if strings.TrimSpace(e.StartDate) != "" {
			sub += 10
		}
		// A current position has a complete date range even though its
		// stored endDate is cleared.
		if e.CurrentlyWorking || strings.TrimSpace(e.EndDate) != "" {
			sub += 10
		}
		sub += richTextScore(e.WorkSummary)
		total += sub
	}
	return roundRatio(total, len(entries)*100)
}

func scoreEducation(entries []types.Education) int {
	if len(entries) == 0 {
		return 0
	}
	total := 0
	for _, e := range entries {
		sub := 0
		if strings.TrimSpace(e.UniversityName) != "" {
			sub += 30
		}
		if strings.TrimSpace(e.Degree) != "" {
			sub += 25
		}
		if strings.TrimSpace(e.Major) != "" {
			sub += 15
		}
		if strings.TrimSpace(e.StartDate) != "" {
			sub += 10
		}
		if strings.TrimSpace(e.EndDate) != "" {
			sub += 10
		}
		if strings.TrimSpace(e.Description) != "" {
			sub += 10
		}
		total += sub
	}
	return roundRatio(total, len(entries)*100)
}

func scoreSkills(skills []types.Skill) int {
	named := 0
	rated := false
	for _, s := range skills {
		if strings.TrimSpace(s.Name) != "" {
			named++
		}
		if s.Rating > 0 {
			rated = true
		}
	}
	if named == 0 {
		return 0
	}

	var base int
	switch {
	case named >= 10:
		base = 90
	case named >= 7:
		base = 80
	case named >= 5:
		base = 70
	case named >= 3:
		base = 60
	default:
		base = 50
	}
	if rated {
		base += 10
	}
	return min(base, 100)
}

func scoreProjects(projects []types.Project) int {
	if len(projects) == 0 {
		return 0
	}
	total := 0
	for _, p := range projects {
		sub := 0
		if strings.TrimSpace(p.ProjectName) != "" {
			sub += 30
		}
		if strings.TrimSpace(p.TechStack) != "" {
			sub += 30
		}
		sub += richTextScore(p.ProjectSummary)
		total += sub
	}
	return roundRatio(total, len(projects)*100)
}

// totalScore renormalizes the weighted average over the sections that
// actually scored. An entirely empty resume scores zero.
func totalScore(s types.SectionScores) int {
	weighted := []struct {
		score  int
		weight float64
	}{
		{s.Personal, weightPersonal},
		{s.Summary, weightSummary},
		{s.Experience, weightExperience},
		{s.Education, weightEducation},
		{s.Skills, weightSkills},
		{s.Projects, weightProjects},
	}

	var sum, weightSum float64
	for _, w := range weighted {
		if w.score > 0 {
			sum += float64(w.score) * w.weight
			weightSum += w.weight
		}
	}
	if weightSum == 0 {
		return 0
	}
	return clampScore(int(math.Round(sum / weightSum)))
}

// feedback emits one advisory per weak or missing section, in section
// declaration order.
func feedback(s types.SectionScores) []string {
	var out []string
	add := func(score int, missing, weak string) {
		if score == 0 {
			out = append(out, missing)
		} else if score < feedbackThreshold {
			out = append(out, weak)
		}
	}
	add(s.Personal,
		"Add your contact details so employers can reach you.",
		"Fill in the remaining contact fields (name, job title, email, phone, address).")
	add(s.Summary,
		"Add a professional summary introducing yourself.",
		"Expand your summary; two or three sentences about your experience work well.")
	add(s.Experience,
		"Add your work experience.",
		"Flesh out your work experience entries with dates and accomplishments.")
	add(s.Education,
		"Add your education history.",
		"Complete your education entries with degree, major and dates.")
	add(s.Skills,
		"List your key skills.",
		"List more skills; aim for at least five relevant ones.")
	add(s.Projects,
		"Showcase a project or two.",
		"Describe your projects in more detail, including the tech stack.")
	return out
}

func roundRatio(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	return clampScore(int(math.Round(float64(numerator) * 100 / float64(denominator))))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
