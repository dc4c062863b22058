package export

// docTemplateString 是导出文档的骨架。
// 样式全部内联在 <style> 中，文档不依赖任何外部资源，
// 固定 8.5in x 11in 纸面，打印时去掉页边距。
const docTemplateString = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{if .PersonalInfo.FullName}}{{.PersonalInfo.FullName}} - Resume{{else}}Resume{{end}}</title>
  <style>{{.Stylesheet}}</style>
</head>
<body>
  <div class="container {{.TemplateClass}}">
    <div class="header">
      <h1>{{if .PersonalInfo.FullName}}{{.PersonalInfo.FullName}}{{else}}Your Name{{end}}</h1>
      <div class="contact">
        {{if .PersonalInfo.Email}}<span>{{.PersonalInfo.Email}}</span>{{end}}
        {{if .PersonalInfo.Phone}}<span>{{.PersonalInfo.Phone}}</span>{{end}}
        {{if .PersonalInfo.Location}}<span>{{.PersonalInfo.Location}}</span>{{end}}
      </div>
    </div>
    {{if .PersonalInfo.Summary}}<p class="summary">{{.PersonalInfo.Summary}}</p>{{end}}
    {{if .Experience}}<div class="section">
      <h2>{{.ExperienceHead}}</h2>
      {{range .Experience}}<div class="entry">
        <div class="entry-title">{{.Position}}</div>
        <div class="entry-subtitle">{{.Company}}</div>
        <div class="entry-date">{{dateRange .StartDate .EndDate}}</div>
        {{if .Description}}<div class="entry-description">{{.Description}}</div>{{end}}
      </div>{{end}}
    </div>{{end}}
    {{if .Education}}<div class="section">
      <h2>Education</h2>
      {{range .Education}}<div class="entry">
        <div class="entry-title">{{degreeLine .Degree .Field}}</div>
        <div class="entry-subtitle">{{.School}}</div>
        <div class="entry-date">{{.GraduationDate}}</div>
      </div>{{end}}
    </div>{{end}}
    {{if .Skills}}<div class="section">
      <h2>Skills</h2>
      {{if .SkillSeparator}}<p class="skill-line">{{join .Skills .SkillSeparator}}</p>{{else}}<div class="skills">{{range .Skills}}<span class="skill-tag">{{.}}</span>{{end}}</div>{{end}}
    </div>{{end}}
  </div>
</body>
</html>
`

// baseCSS 是所有模板共用的打印样式。
const baseCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
body { line-height: 1.6; color: #333; }
.container { max-width: 8.5in; height: 11in; margin: 0 auto; padding: 0.5in; background: white; }
h1 { font-size: 28px; margin-bottom: 5px; }
h2 { font-size: 14px; font-weight: bold; margin-top: 15px; margin-bottom: 10px; padding-bottom: 5px; }
.header { margin-bottom: 15px; }
.contact { font-size: 12px; color: #666; margin-top: 5px; }
.contact span + span::before { content: " | "; }
.summary { font-size: 12px; margin-bottom: 10px; }
.section { margin-bottom: 15px; }
.entry { margin-bottom: 10px; }
.entry-title { font-weight: bold; }
.entry-subtitle { color: #666; font-size: 12px; }
.entry-date { float: right; color: #666; font-size: 12px; }
.entry-description { font-size: 12px; margin-top: 5px; }
.skills { display: flex; flex-wrap: wrap; gap: 8px; font-size: 12px; }
.skill-line { font-size: 12px; }
.skill-tag { padding: 4px 8px; border-radius: 4px; }
@media print { body { margin: 0; padding: 0; } .container { margin: 0; padding: 0.5in; } }
`

// variantCSS 按模板叠加各自的视觉风格。
var variantCSS = map[string]string{
	"modern": `
.doc-modern { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; }
.doc-modern .header { border-left: 4px solid #2563eb; padding-left: 16px; }
.doc-modern h2 { color: #2563eb; border-bottom: 2px solid #2563eb; }
.doc-modern .skill-tag { background: #dbeafe; color: #1e40af; }
`,
	"classic": `
.doc-classic { font-family: Georgia, 'Times New Roman', serif; }
.doc-classic .header { text-align: center; border-bottom: 2px solid #9ca3af; padding-bottom: 10px; }
.doc-classic h2 { text-transform: uppercase; letter-spacing: 1px; border-bottom: 1px solid #9ca3af; }
`,
	"minimal": `
.doc-minimal { font-family: 'Helvetica Neue', Arial, sans-serif; }
.doc-minimal h1 { font-weight: 300; }
.doc-minimal h2 { text-transform: uppercase; letter-spacing: 3px; font-size: 11px; color: #111; }
`,
	"creative": `
.doc-creative { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; }
.doc-creative .header { background: linear-gradient(90deg, #9333ea, #2563eb); color: white; padding: 16px; border-radius: 8px; }
.doc-creative .header .contact { color: #e9d5ff; }
.doc-creative h2 { font-size: 18px; }
.doc-creative .entry { border-left: 4px solid #9333ea; padding-left: 12px; }
.doc-creative .skill-tag { background: linear-gradient(90deg, #a855f7, #3b82f6); color: white; border-radius: 9999px; }
`,
}
