package export

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"

	"craftfolio/internal/resume"
	"craftfolio/internal/template"
)

// Document 表示一份可直接下载/打印的独立文档。
type Document struct {
	HTML     []byte
	Filename string
	MIME     string
}

// MIMEType 是导出文档的内容类型。
const MIMEType = "text/html; charset=utf-8"

// Build 把简历渲染成自包含的打印文档（内联样式、A4 纸面、@media print 去边距）。
// 这是与实时预览独立的代码路径，但板块取舍规则与预览完全一致；
// 视觉样式按简历自己的 TemplateID 分派，而不是固定 modern。
func Build(title string, content resume.Content, id template.ID) (Document, error) {
	id = template.Parse(string(id))
	data := newDocData(title, content, id)

	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, data); err != nil {
		return Document{}, fmt.Errorf("build export document: %w", err)
	}

	return Document{
		HTML:     buf.Bytes(),
		Filename: suggestedFilename(title),
		MIME:     MIMEType,
	}, nil
}

// suggestedFilename 由标题派生文件名，空标题回落为 resume。
func suggestedFilename(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "resume"
	}
	// 路径分隔符会破坏 Content-Disposition，统一替换。
	title = strings.NewReplacer("/", "-", "\\", "-").Replace(title)
	return title + ".html"
}

type docData struct {
	Title          string
	TemplateClass  string
	Stylesheet     htmltemplate.CSS
	PersonalInfo   resume.PersonalInfo
	Experience     []resume.ExperienceEntry
	Education      []resume.EducationEntry
	Skills         []string
	SkillSeparator string // 为空表示以标签形式逐项渲染
	ExperienceHead string
}

func newDocData(title string, content resume.Content, id template.ID) docData {
	content = content.Normalize()

	skills := make([]string, 0, len(content.Skills))
	for _, s := range content.Skills {
		if strings.TrimSpace(s) != "" {
			skills = append(skills, s)
		}
	}

	data := docData{
		Title:          strings.TrimSpace(title),
		TemplateClass:  "doc-" + string(id),
		Stylesheet:     htmltemplate.CSS(baseCSS + variantCSS[string(id)]),
		PersonalInfo:   content.PersonalInfo,
		Experience:     content.Experience,
		Education:      content.Education,
		Skills:         skills,
		ExperienceHead: "Work Experience",
	}

	switch id {
	case template.Classic:
		data.SkillSeparator = " • "
		data.ExperienceHead = "Professional Experience"
	case template.Minimal:
		data.SkillSeparator = ", "
		data.ExperienceHead = "Experience"
	case template.Creative:
		data.ExperienceHead = "Experience"
	}
	return data
}

var docTemplate = htmltemplate.Must(htmltemplate.New("export").Funcs(htmltemplate.FuncMap{
	"dateRange": func(start, end string) string {
		start = strings.TrimSpace(start)
		end = strings.TrimSpace(end)
		switch {
		case start == "" && end == "":
			return ""
		case end == "":
			return start + " - Present"
		case start == "":
			return end
		default:
			return start + " - " + end
		}
	},
	"degreeLine": func(degree, field string) string {
		degree = strings.TrimSpace(degree)
		field = strings.TrimSpace(field)
		switch {
		case degree == "":
			return field
		case field == "":
			return degree
		default:
			return degree + " in " + field
		}
	},
	"join": strings.Join,
}).Parse(docTemplateString))
