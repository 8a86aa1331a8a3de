package render

// pageTemplate is the single page skeleton all variants render through.
// Variant identity comes from the Descriptor fields referenced here.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .FullName}}{{.FullName}} - Resume{{else}}Resume{{end}}</title>
<style>
@page { size: A4; margin: 14mm; }
* { box-sizing: border-box; }
body {
  margin: 0;
  font-family: {{.Desc.BodyFont}};
  font-size: {{if .Desc.CompactSpacing}}12px{{else}}13px{{end}};
  line-height: {{if .Desc.CompactSpacing}}1.35{{else}}1.5{{end}};
  color: #1c1c1c;
}
a { color: {{.Color}}; text-decoration: none; }
h1, h2, h3 { font-family: {{.Desc.HeadingFont}}; margin: 0; }
.header {
  {{if eq .Desc.Layout "banner"}}background: {{.Color}}; color: #ffffff; padding: 22px 26px;{{else}}padding: 0 0 10px 0; border-bottom: 2px solid {{.Color}};{{end}}
  margin-bottom: {{if .Desc.CompactSpacing}}10px{{else}}16px{{end}};
}
.header .name { font-size: 26px; {{if .Desc.UppercaseHeadings}}text-transform: uppercase; letter-spacing: 1px;{{end}} }
.header .job-title { font-size: 15px; margin-top: 2px; {{if eq .Desc.Layout "banner"}}color: #f1f1f1;{{else}}color: {{.Color}};{{end}} }
.header .contact { margin-top: 6px; font-size: 12px; }
.header .contact span + span::before { content: "\2022"; margin: 0 6px; }
.badge {
  float: right; width: 48px; height: 48px; border-radius: 50%;
  background: #ffffff; color: {{.Color}}; font-weight: bold;
  text-align: center; line-height: 48px; font-size: 18px;
}
.section { margin-bottom: {{if .Desc.CompactSpacing}}10px{{else}}16px{{end}}; page-break-inside: avoid; }
.section > h2 {
  font-size: 14px;
  color: {{.Color}};
  margin-bottom: 6px;
  {{if .Desc.UppercaseHeadings}}text-transform: uppercase; letter-spacing: 1px;{{end}}
  {{if eq .Desc.Accent "underline"}}border-bottom: 1px solid {{.Color}}; padding-bottom: 2px;{{end}}
  {{if eq .Desc.Accent "bar"}}border-left: 4px solid {{.Color}}; padding-left: 8px;{{end}}
  {{if eq .Desc.Accent "border"}}border-top: 2px solid {{.Color}}; border-bottom: 2px solid {{.Color}}; padding: 2px 0;{{end}}
}
{{if .Desc.ShowDividers}}.section + .section { border-top: 1px solid #d9d9d9; padding-top: 10px; }{{end}}
.entry { margin-bottom: {{if .Desc.CompactSpacing}}6px{{else}}10px{{end}}; }
.entry .entry-head { display: flex; justify-content: space-between; }
.entry .entry-title { font-weight: bold; }
.entry .entry-sub { font-style: italic; color: #444444; }
.entry .entry-dates { color: #666666; font-size: 12px; white-space: nowrap; }
.entry .rich { margin-top: 3px; }
.entry .rich ul { margin: 3px 0 3px 18px; padding: 0; }
.skill-list { margin: 0; padding-left: 18px; column-count: 2; }
.pill {
  display: inline-block; border: 1px solid {{.Color}}; color: {{.Color}};
  border-radius: 10px; padding: 1px 9px; margin: 0 5px 5px 0; font-size: 12px;
}
{{if .HasSide}}
.columns { display: flex; gap: 18px; }
.col-main { flex: 2.2; }
.col-side { flex: 1; background: #f4f5f7; padding: 12px; border-top: 4px solid {{.Color}}; }
{{end}}
</style>
</head>
<body>
<div class="header">
  {{if .Desc.InitialsBadge}}{{if .Initials}}<div class="badge">{{.Initials}}</div>{{end}}{{end}}
  {{if .FullName}}<h1 class="name">{{.FullName}}</h1>{{end}}
  {{if .JobTitle}}<div class="job-title">{{.JobTitle}}</div>{{end}}
  {{if or .Address .Phone .Email}}<div class="contact">
    {{if .Address}}<span>{{.Address}}</span>{{end}}{{if .Phone}}<span>{{.Phone}}</span>{{end}}{{if .Email}}<span>{{.Email}}</span>{{end}}
  </div>{{end}}
  {{if .Links}}<div class="contact">
    {{range .Links}}<span><a href="{{.Href}}">{{.Label}}</a></span>{{end}}
  </div>{{end}}
</div>
{{if .HasSide}}
<div class="columns">
  <div class="col-main">
    {{range .Main}}<div class="section" id="{{.ID}}"><h2>{{.Title}}</h2>{{.HTML}}</div>{{end}}
  </div>
  <div class="col-side">
    {{range .Side}}<div class="section" id="{{.ID}}"><h2>{{.Title}}</h2>{{.HTML}}</div>{{end}}
  </div>
</div>
{{else}}
{{range .Main}}<div class="section" id="{{.ID}}"><h2>{{.Title}}</h2>{{.HTML}}</div>{{end}}
{{end}}
</body>
</html>
`

// sectionTemplates holds one named template per section body. Presence
// checks happen before execution; these templates assume data exists.
const sectionTemplates = `
{{define "summary"}}<p>{{.}}</p>{{end}}

{{define "experience"}}{{range .}}<div class="entry">
  <div class="entry-head">
    <span class="entry-title">{{.Title}}</span>
    {{if .DateRange}}<span class="entry-dates">{{.DateRange}}</span>{{end}}
  </div>
  {{if or .CompanyName .Location}}<div class="entry-sub">{{.CompanyName}}{{if and .CompanyName .Location}} &middot; {{end}}{{.Location}}</div>{{end}}
  {{if .WorkSummary}}<div class="rich">{{.WorkSummary}}</div>{{end}}
</div>{{end}}{{end}}

{{define "projects"}}{{range .}}<div class="entry">
  <div class="entry-head">
    <span class="entry-title">{{.ProjectName}}</span>
    <span class="entry-dates">
      {{if .GithubLink}}<a href="{{.GithubLink}}">Code</a>{{end}}
      {{if .DeployedLink}}{{if .GithubLink}} &middot; {{end}}<a href="{{.DeployedLink}}">Live</a>{{end}}
    </span>
  </div>
  {{if .TechStack}}<div class="entry-sub">{{.TechStack}}</div>{{end}}
  {{if .ProjectSummary}}<div class="rich">{{.ProjectSummary}}</div>{{end}}
</div>{{end}}{{end}}

{{define "education"}}{{range .}}<div class="entry">
  <div class="entry-head">
    <span class="entry-title">{{.UniversityName}}</span>
    {{if .DateRange}}<span class="entry-dates">{{.DateRange}}</span>{{end}}
  </div>
  {{if .DegreeLine}}<div class="entry-sub">{{.DegreeLine}}</div>{{end}}
  {{if .GradeLine}}<div class="entry-sub">{{.GradeLine}}</div>{{end}}
  {{if .Description}}<p>{{.Description}}</p>{{end}}
</div>{{end}}{{end}}

{{define "skills"}}{{if .Pills}}{{range .Names}}<span class="pill">{{.}}</span>{{end}}{{else}}<ul class="skill-list">{{range .Names}}<li>{{.}}</li>{{end}}</ul>{{end}}{{end}}

{{define "certifications"}}{{range .}}<div class="entry">
  <div class="entry-head">
    <span class="entry-title">{{.Name}}</span>
    {{if .Date}}<span class="entry-dates">{{.Date}}</span>{{end}}
  </div>
  {{if .Issuer}}<div class="entry-sub">{{.Issuer}}</div>{{end}}
</div>{{end}}{{end}}
`
