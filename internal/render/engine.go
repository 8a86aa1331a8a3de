package render

import (
	"bytes"
	"html/template"
	"strings"

	"resumeforge/internal/common"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// Engine renders a Resume into one of the registered template variants.
// Rendering is a pure function of the Resume value: the engine holds only
// parsed templates and is safe for concurrent use.
type Engine struct {
	page     *template.Template
	sections *template.Template
}

// NewEngine parses the built-in page and section templates.
func NewEngine() (*Engine, error) {
	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, errors.NewRenderError(errors.ErrCodeTemplateFailed, "failed to parse page template", err)
	}
	sections, err := template.New("sections").Parse(sectionTemplates)
	if err != nil {
		return nil, errors.NewRenderError(errors.ErrCodeTemplateFailed, "failed to parse section templates", err)
	}
	return &Engine{page: page, sections: sections}, nil
}

type linkView struct {
	Label string
	Href  string
}

type sectionView struct {
	ID    SectionID
	Title string
	HTML  template.HTML
}

type experienceView struct {
	Title       string
	CompanyName string
	Location    string
	DateRange   string
	WorkSummary template.HTML
}

type projectView struct {
	ProjectName    string
	TechStack      string
	ProjectSummary template.HTML
	GithubLink     string
	DeployedLink   string
}

type educationView struct {
	UniversityName string
	DegreeLine     string
	GradeLine      string
	DateRange      string
	Description    string
}

type certificationView struct {
	Name   string
	Issuer string
	Date   string
}

type pageView struct {
	Desc         Descriptor
	Color        string
	FullName     string
	Initials     string
	JobTitle     string
	Address      string
	Phone        string
	Email        string
	Links   []linkView
	Main    []sectionView
	Side    []sectionView
	HasSide bool
}

// Render maps the resume to a visual document using the variant named by
// resume.Template. Unknown variants fall back to the default; a missing
// or fully empty resume still renders a valid (mostly empty) page. The
// only error paths are internal template-execution faults.
func (e *Engine) Render(resume *types.Resume) (*types.VisualDocument, error) {
	if resume == nil {
		resume = &types.Resume{}
	}
	desc := Resolve(resume.Template)

	color := strings.TrimSpace(resume.ThemeColor)
	if color == "" {
		color = desc.DefaultColor
	}

	view := pageView{
		Desc:     desc,
		Color:    color,
		FullName: strings.TrimSpace(strings.TrimSpace(resume.FirstName) + " " + strings.TrimSpace(resume.LastName)),
		Initials: initials(resume.FirstName, resume.LastName),
		JobTitle: resume.JobTitle,
		Address:  resume.Address,
		Phone:    resume.Phone,
		Email:    resume.Email,
		Links:    socialLinks(resume),
	}

	rendered := make([]types.RenderedSection, 0, len(desc.SectionOrder))
	for _, id := range desc.SectionOrder {
		sv, ok, err := e.renderSection(id, desc, resume)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		rendered = append(rendered, types.RenderedSection{
			ID:    string(sv.ID),
			Title: sv.Title,
			HTML:  string(sv.HTML),
		})
		if desc.Layout == LayoutSidebar && sidebarSection(id) {
			view.Side = append(view.Side, sv)
		} else {
			view.Main = append(view.Main, sv)
		}
	}
	view.HasSide = desc.Layout == LayoutSidebar

	var buf bytes.Buffer
	if err := e.page.Execute(&buf, view); err != nil {
		return nil, errors.NewRenderError(errors.ErrCodeTemplateFailed, "failed to execute page template", err).
			WithContext("template", desc.ID)
	}

	return &types.VisualDocument{
		Template:   desc.ID,
		ThemeColor: color,
		Sections:   rendered,
		HTML:       buf.String(),
	}, nil
}

// renderSection builds one section. The second return value reports
// whether the section has any backing data; sections without data are
// omitted entirely, never rendered blank.
func (e *Engine) renderSection(id SectionID, desc Descriptor, resume *types.Resume) (sectionView, bool, error) {
	var (
		name  string
		title string
		data  any
	)

	switch id {
	case SectionSummary:
		if strings.TrimSpace(resume.Summary) == "" {
			return sectionView{}, false, nil
		}
		name, title = "summary", "Summary"
		data = resume.Summary
	case SectionExperience:
		if len(resume.Experience) == 0 {
			return sectionView{}, false, nil
		}
		name, title = "experience", "Professional Experience"
		entries := make([]experienceView, 0, len(resume.Experience))
		for _, exp := range resume.Experience {
			entries = append(entries, experienceView{
				Title:       exp.Title,
				CompanyName: exp.CompanyName,
				Location:    joinNonEmpty(", ", exp.City, exp.State),
				DateRange:   DateRange(exp.StartDate, exp.EndDate, exp.CurrentlyWorking),
				WorkSummary: richText(exp.WorkSummary),
			})
		}
		data = entries
	case SectionProjects:
		if len(resume.Projects) == 0 {
			return sectionView{}, false, nil
		}
		name, title = "projects", "Projects"
		entries := make([]projectView, 0, len(resume.Projects))
		for _, p := range resume.Projects {
			entries = append(entries, projectView{
				ProjectName:    p.ProjectName,
				TechStack:      p.TechStack,
				ProjectSummary: richText(p.ProjectSummary),
				GithubLink:     NormalizeURL(p.GithubLink),
				DeployedLink:   NormalizeURL(p.DeployedLink),
			})
		}
		data = entries
	case SectionEducation:
		if len(resume.Education) == 0 {
			return sectionView{}, false, nil
		}
		name, title = "education", "Education"
		entries := make([]educationView, 0, len(resume.Education))
		for _, edu := range resume.Education {
			entries = append(entries, educationView{
				UniversityName: edu.UniversityName,
				DegreeLine:     joinNonEmpty(" in ", edu.Degree, edu.Major),
				GradeLine:      gradeLine(edu),
				DateRange:      DateRange(edu.StartDate, edu.EndDate, false),
				Description:    edu.Description,
			})
		}
		data = entries
	case SectionSkills:
		if len(resume.Skills) == 0 {
			return sectionView{}, false, nil
		}
		name, title = "skills", "Skills"
		names := make([]string, 0, len(resume.Skills))
		for _, s := range resume.Skills {
			if strings.TrimSpace(s.Name) != "" {
				names = append(names, s.Name)
			}
		}
		if len(names) == 0 {
			return sectionView{}, false, nil
		}
		data = struct {
			Names []string
			Pills bool
		}{names, desc.SkillsAsPills}
	case SectionCertifications:
		if len(resume.Certifications) == 0 {
			return sectionView{}, false, nil
		}
		name, title = "certifications", "Certifications"
		entries := make([]certificationView, 0, len(resume.Certifications))
		for _, c := range resume.Certifications {
			entries = append(entries, certificationView{
				Name:   c.Name,
				Issuer: c.Issuer,
				Date:   DisplayDate(c.Date),
			})
		}
		data = entries
	default:
		return sectionView{}, false, nil
	}

	var buf bytes.Buffer
	if err := e.sections.ExecuteTemplate(&buf, name, data); err != nil {
		return sectionView{}, false, errors.NewRenderError(errors.ErrCodeTemplateFailed, "failed to execute section template", err).
			WithContext("section", string(id))
	}
	return sectionView{ID: id, Title: title, HTML: template.HTML(buf.String())}, true, nil
}

// richText admits a stored rich-text fragment into the page. Fragments
// are sanitized at write time; this second pass covers documents rendered
// straight from request bodies that never passed through the store.
func richText(fragment string) template.HTML {
	return template.HTML(common.SanitizeHTML(fragment))
}

func sidebarSection(id SectionID) bool {
	return id == SectionSkills || id == SectionCertifications || id == SectionEducation
}

func socialLinks(resume *types.Resume) []linkView {
	links := make([]linkView, 0, 3)
	add := func(label, raw string) {
		if href := NormalizeURL(strings.TrimSpace(raw)); href != "" {
			links = append(links, linkView{Label: label, Href: href})
		}
	}
	add("GitHub", resume.GithubURL)
	add("LinkedIn", resume.LinkedinURL)
	add("Portfolio", resume.PortfolioURL)
	return links
}

func gradeLine(edu types.Education) string {
	if strings.TrimSpace(edu.Grade) == "" {
		return ""
	}
	if strings.TrimSpace(edu.GradeType) == "" {
		return edu.Grade
	}
	return edu.GradeType + ": " + edu.Grade
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, sep)
}

func initials(first, last string) string {
	var b strings.Builder
	for _, s := range []string{strings.TrimSpace(first), strings.TrimSpace(last)} {
		if runes := []rune(s); len(runes) > 0 {
			b.WriteString(strings.ToUpper(string(runes[0])))
		}
	}
	return b.String()
}
