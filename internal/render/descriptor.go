package render

// DefaultTemplate is the variant every unknown or missing template id
// resolves to. Resolution is total: Resolve never fails.
const DefaultTemplate = "modern"

// LayoutKind selects the page skeleton a variant is rendered into.
type LayoutKind string

const (
	LayoutSingleColumn LayoutKind = "single"
	LayoutSidebar      LayoutKind = "sidebar"
	LayoutBanner       LayoutKind = "banner"
)

// AccentStyle controls how section headings are decorated.
type AccentStyle string

const (
	AccentUnderline AccentStyle = "underline"
	AccentBar       AccentStyle = "bar"
	AccentBorder    AccentStyle = "border"
	AccentPlain     AccentStyle = "plain"
)

// SectionID identifies one renderable resume section.
type SectionID string

const (
	SectionSummary        SectionID = "summary"
	SectionExperience     SectionID = "experience"
	SectionProjects       SectionID = "projects"
	SectionEducation      SectionID = "education"
	SectionSkills         SectionID = "skills"
	SectionCertifications SectionID = "certifications"
)

// Descriptor declares the visual identity of one template variant. All
// variants are rendered by the same engine; everything that differs
// between them lives here as data.
type Descriptor struct {
	ID           string
	Name         string
	DefaultColor string
	BodyFont     string
	HeadingFont  string
	Layout       LayoutKind
	Accent       AccentStyle
	SectionOrder []SectionID

	UppercaseHeadings bool
	ShowDividers      bool
	CompactSpacing    bool
	InitialsBadge     bool
	SkillsAsPills     bool
}

var standardOrder = []SectionID{
	SectionSummary, SectionExperience, SectionProjects,
	SectionEducation, SectionSkills,
}

// registry is the closed set of known variants. Order of variants here is
// alphabetical by ID and has no rendering significance.
var registry = map[string]Descriptor{
	"bold": {
		ID: "bold", Name: "Bold", DefaultColor: "#d62828",
		BodyFont: "'Arial Black', Arial, sans-serif", HeadingFont: "'Arial Black', Arial, sans-serif",
		Layout: LayoutBanner, Accent: AccentBar,
		SectionOrder:      standardOrder,
		UppercaseHeadings: true, SkillsAsPills: true,
	},
	"classic": {
		ID: "classic", Name: "Classic", DefaultColor: "#1f3a5f",
		BodyFont: "Georgia, 'Times New Roman', serif", HeadingFont: "Georgia, 'Times New Roman', serif",
		Layout: LayoutSingleColumn, Accent: AccentUnderline,
		SectionOrder: standardOrder,
		ShowDividers: true,
	},
	"compact": {
		ID: "compact", Name: "Compact", DefaultColor: "#374151",
		BodyFont: "Verdana, Geneva, sans-serif", HeadingFont: "Verdana, Geneva, sans-serif",
		Layout: LayoutSingleColumn, Accent: AccentPlain,
		SectionOrder:   standardOrder,
		CompactSpacing: true,
	},
	"corporate": {
		ID: "corporate", Name: "Corporate", DefaultColor: "#0b3d91",
		BodyFont: "Calibri, 'Segoe UI', sans-serif", HeadingFont: "Cambria, Georgia, serif",
		Layout: LayoutSingleColumn, Accent: AccentBorder,
		SectionOrder: []SectionID{
			SectionSummary, SectionExperience, SectionEducation,
			SectionProjects, SectionSkills, SectionCertifications,
		},
		ShowDividers: true,
	},
	"creative": {
		ID: "creative", Name: "Creative", DefaultColor: "#7c3aed",
		BodyFont: "'Trebuchet MS', Helvetica, sans-serif", HeadingFont: "'Trebuchet MS', Helvetica, sans-serif",
		Layout: LayoutBanner, Accent: AccentBar,
		SectionOrder: []SectionID{
			SectionSummary, SectionProjects, SectionExperience,
			SectionSkills, SectionEducation,
		},
		InitialsBadge: true, SkillsAsPills: true,
	},
	"elegant": {
		ID: "elegant", Name: "Elegant", DefaultColor: "#5b4636",
		BodyFont: "Garamond, 'Palatino Linotype', serif", HeadingFont: "Garamond, 'Palatino Linotype', serif",
		Layout: LayoutSingleColumn, Accent: AccentUnderline,
		SectionOrder: standardOrder,
		ShowDividers: true,
	},
	"executive": {
		ID: "executive", Name: "Executive", DefaultColor: "#111827",
		BodyFont: "'Times New Roman', Times, serif", HeadingFont: "'Times New Roman', Times, serif",
		Layout: LayoutSingleColumn, Accent: AccentBorder,
		SectionOrder: []SectionID{
			SectionSummary, SectionExperience, SectionEducation,
			SectionSkills, SectionProjects,
		},
		UppercaseHeadings: true, ShowDividers: true,
	},
	"ivy": {
		ID: "ivy", Name: "Ivy", DefaultColor: "#14532d",
		BodyFont: "'Book Antiqua', Palatino, serif", HeadingFont: "'Book Antiqua', Palatino, serif",
		Layout: LayoutSingleColumn, Accent: AccentUnderline,
		SectionOrder: []SectionID{
			SectionEducation, SectionExperience, SectionProjects,
			SectionSkills, SectionCertifications,
		},
		ShowDividers: true,
	},
	"minimal": {
		ID: "minimal", Name: "Minimal", DefaultColor: "#404040",
		BodyFont: "Helvetica, Arial, sans-serif", HeadingFont: "Helvetica, Arial, sans-serif",
		Layout: LayoutSingleColumn, Accent: AccentPlain,
		SectionOrder:   standardOrder,
		CompactSpacing: true,
	},
	"modern": {
		ID: "modern", Name: "Modern", DefaultColor: "#2563eb",
		BodyFont: "'Segoe UI', Helvetica, Arial, sans-serif", HeadingFont: "'Segoe UI', Helvetica, Arial, sans-serif",
		Layout: LayoutSingleColumn, Accent: AccentBar,
		SectionOrder:  standardOrder,
		SkillsAsPills: true,
	},
	"professional": {
		ID: "professional", Name: "Professional", DefaultColor: "#0f766e",
		BodyFont: "Tahoma, Geneva, sans-serif", HeadingFont: "Tahoma, Geneva, sans-serif",
		Layout: LayoutSingleColumn, Accent: AccentBorder,
		SectionOrder: standardOrder,
		ShowDividers: true,
	},
	"sidebar": {
		ID: "sidebar", Name: "Sidebar", DefaultColor: "#334155",
		BodyFont: "'Segoe UI', Helvetica, sans-serif", HeadingFont: "'Segoe UI', Helvetica, sans-serif",
		Layout: LayoutSidebar, Accent: AccentPlain,
		SectionOrder: []SectionID{
			SectionSummary, SectionExperience, SectionProjects,
			SectionEducation, SectionSkills, SectionCertifications,
		},
		SkillsAsPills: true,
	},
	"slate": {
		ID: "slate", Name: "Slate", DefaultColor: "#475569",
		BodyFont: "'Courier New', Courier, monospace", HeadingFont: "'Courier New', Courier, monospace",
		Layout: LayoutSingleColumn, Accent: AccentBar,
		SectionOrder: []SectionID{
			SectionSummary, SectionSkills, SectionExperience,
			SectionProjects, SectionEducation,
		},
		UppercaseHeadings: true,
	},
	"timeline": {
		ID: "timeline", Name: "Timeline", DefaultColor: "#9d174d",
		BodyFont: "'Segoe UI', Helvetica, sans-serif", HeadingFont: "Georgia, serif",
		Layout: LayoutSingleColumn, Accent: AccentBar,
		SectionOrder: []SectionID{
			SectionSummary, SectionExperience, SectionEducation,
			SectionProjects, SectionSkills,
		},
		ShowDividers: true,
	},
}

// Resolve maps a template id to its descriptor, falling back to the
// default variant for unknown or empty ids.
func Resolve(id string) Descriptor {
	if d, ok := registry[id]; ok {
		return d
	}
	return registry[DefaultTemplate]
}

// Known reports whether id names a registered variant.
func Known(id string) bool {
	_, ok := registry[id]
	return ok
}

// TemplateIDs returns the registered variant ids in no particular order.
func TemplateIDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}
