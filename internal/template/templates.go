package template

// 四种模板的 HTML 片段。
// 共同约定：
// - 某个板块的序列为空时整个板块（含标题）不输出；
// - Summary 为空时省略摘要段落；
// - 技能在进入模板前已过滤空白项；
// - 时间区间统一走 dateRange。

const modernTemplate = `<div class="resume resume-modern">
  <header class="resume-header">
    <h1>{{if .PersonalInfo.FullName}}{{.PersonalInfo.FullName}}{{else}}Your Name{{end}}</h1>
    <div class="contact">
      {{if .PersonalInfo.Email}}<span class="contact-item">{{.PersonalInfo.Email}}</span>{{end}}
      {{if .PersonalInfo.Phone}}<span class="contact-item">{{.PersonalInfo.Phone}}</span>{{end}}
      {{if .PersonalInfo.Location}}<span class="contact-item">{{.PersonalInfo.Location}}</span>{{end}}
    </div>
  </header>
  {{if .PersonalInfo.Summary}}<p class="summary">{{.PersonalInfo.Summary}}</p>{{end}}
  {{if .Experience}}<section class="experience">
    <h2>Work Experience</h2>
    {{range .Experience}}<div class="entry">
      <div class="entry-head">
        <div>
          <p class="entry-title">{{.Position}}</p>
          <p class="entry-subtitle">{{.Company}}</p>
        </div>
        <p class="entry-date">{{dateRange .StartDate .EndDate}}</p>
      </div>
      {{if .Description}}<p class="entry-description">{{.Description}}</p>{{end}}
    </div>{{end}}
  </section>{{end}}
  {{if .Education}}<section class="education">
    <h2>Education</h2>
    {{range .Education}}<div class="entry">
      <div class="entry-head">
        <div>
          <p class="entry-title">{{degreeLine .Degree .Field}}</p>
          <p class="entry-subtitle">{{.School}}</p>
        </div>
        <p class="entry-date">{{.GraduationDate}}</p>
      </div>
    </div>{{end}}
  </section>{{end}}
  {{if .Skills}}<section class="skills">
    <h2>Skills</h2>
    <div class="skill-chips">{{range .Skills}}<span class="skill-chip">{{.}}</span>{{end}}</div>
  </section>{{end}}
</div>
`

const classicTemplate = `<div class="resume resume-classic">
  <header class="resume-header">
    <h1>{{if .PersonalInfo.FullName}}{{.PersonalInfo.FullName}}{{else}}Your Name{{end}}</h1>
    <div class="contact">
      {{if .PersonalInfo.Email}}<span class="contact-item">{{.PersonalInfo.Email}}</span>{{end}}
      {{if .PersonalInfo.Phone}}<span class="contact-item">{{.PersonalInfo.Phone}}</span>{{end}}
      {{if .PersonalInfo.Location}}<span class="contact-item">{{.PersonalInfo.Location}}</span>{{end}}
    </div>
  </header>
  {{if .PersonalInfo.Summary}}<p class="summary">{{.PersonalInfo.Summary}}</p>{{end}}
  {{if .Experience}}<section class="experience">
    <h2>Professional Experience</h2>
    {{range .Experience}}<div class="entry">
      <div class="entry-head">
        <div>
          <p class="entry-title">{{.Position}}</p>
          <p class="entry-subtitle">{{.Company}}</p>
        </div>
        <p class="entry-date">{{dateRange .StartDate .EndDate}}</p>
      </div>
      {{if .Description}}<p class="entry-description">{{.Description}}</p>{{end}}
    </div>{{end}}
  </section>{{end}}
  {{if .Education}}<section class="education">
    <h2>Education</h2>
    {{range .Education}}<div class="entry">
      <div class="entry-head">
        <div>
          <p class="entry-title">{{degreeLine .Degree .Field}}</p>
          <p class="entry-subtitle">{{.School}}</p>
        </div>
        <p class="entry-date">{{.GraduationDate}}</p>
      </div>
    </div>{{end}}
  </section>{{end}}
  {{if .Skills}}<section class="skills">
    <h2>Skills</h2>
    <p class="skill-line">{{join .Skills " • "}}</p>
  </section>{{end}}
</div>
`

const minimalTemplate = `<div class="resume resume-minimal">
  <header class="resume-header">
    <h1>{{if .PersonalInfo.FullName}}{{.PersonalInfo.FullName}}{{else}}Your Name{{end}}</h1>
    <div class="contact">
      {{if .PersonalInfo.Email}}<span class="contact-item">{{.PersonalInfo.Email}}</span>{{end}}
      {{if .PersonalInfo.Phone}}<span class="contact-item">{{.PersonalInfo.Phone}}</span>{{end}}
      {{if .PersonalInfo.Location}}<span class="contact-item">{{.PersonalInfo.Location}}</span>{{end}}
    </div>
  </header>
  {{if .PersonalInfo.Summary}}<p class="summary">{{.PersonalInfo.Summary}}</p>{{end}}
  {{if .Experience}}<section class="experience">
    <h2>Experience</h2>
    {{range .Experience}}<div class="entry">
      <div class="entry-head">
        <span class="entry-title">{{.Position}}</span>
        <span class="entry-date">{{dateRange .StartDate .EndDate}}</span>
      </div>
      <p class="entry-subtitle">{{.Company}}</p>
      {{if .Description}}<p class="entry-description">{{.Description}}</p>{{end}}
    </div>{{end}}
  </section>{{end}}
  {{if .Education}}<section class="education">
    <h2>Education</h2>
    {{range .Education}}<div class="entry">
      <div class="entry-head">
        <span class="entry-title">{{degreeLine .Degree .Field}}</span>
        <span class="entry-date">{{.GraduationDate}}</span>
      </div>
      <p class="entry-subtitle">{{.School}}</p>
    </div>{{end}}
  </section>{{end}}
  {{if .Skills}}<section class="skills">
    <h2>Skills</h2>
    <p class="skill-line">{{join .Skills ", "}}</p>
  </section>{{end}}
</div>
`

const creativeTemplate = `<div class="resume resume-creative">
  <header class="resume-header accent-banner">
    <h1>{{if .PersonalInfo.FullName}}{{.PersonalInfo.FullName}}{{else}}Your Name{{end}}</h1>
    <div class="contact">
      {{if .PersonalInfo.Email}}<span class="contact-item">{{.PersonalInfo.Email}}</span>{{end}}
      {{if .PersonalInfo.Phone}}<span class="contact-item">{{.PersonalInfo.Phone}}</span>{{end}}
      {{if .PersonalInfo.Location}}<span class="contact-item">{{.PersonalInfo.Location}}</span>{{end}}
    </div>
  </header>
  {{if .PersonalInfo.Summary}}<div class="summary-card"><p class="summary">{{.PersonalInfo.Summary}}</p></div>{{end}}
  {{if .Experience}}<section class="experience">
    <h2>Experience</h2>
    {{range .Experience}}<div class="entry entry-card accent-left">
      <div class="entry-head">
        <div>
          <p class="entry-title">{{.Position}}</p>
          <p class="entry-subtitle">{{.Company}}</p>
        </div>
        <p class="entry-date">{{dateRange .StartDate .EndDate}}</p>
      </div>
      {{if .Description}}<p class="entry-description">{{.Description}}</p>{{end}}
    </div>{{end}}
  </section>{{end}}
  {{if .Education}}<section class="education">
    <h2>Education</h2>
    {{range .Education}}<div class="entry entry-card accent-left-alt">
      <div class="entry-head">
        <div>
          <p class="entry-title">{{degreeLine .Degree .Field}}</p>
          <p class="entry-subtitle">{{.School}}</p>
        </div>
        <p class="entry-date">{{.GraduationDate}}</p>
      </div>
    </div>{{end}}
  </section>{{end}}
  {{if .Skills}}<section class="skills">
    <h2>Skills</h2>
    <div class="skill-chips">{{range .Skills}}<span class="skill-chip skill-chip-gradient">{{.}}</span>{{end}}</div>
  </section>{{end}}
</div>
`
