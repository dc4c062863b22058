package template

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"

	"craftfolio/internal/resume"
)

// ID 标识四种固定的视觉模板。
// 这是一个封闭集合：新增模板意味着新增一个渲染分支，而不是数据驱动的配置。
type ID string

const (
	Modern   ID = "modern"
	Classic  ID = "classic"
	Minimal  ID = "minimal"
	Creative ID = "creative"
)

// Parse 把任意字符串解析为模板 ID，未知值回落到 modern。
func Parse(s string) ID {
	switch ID(strings.ToLower(strings.TrimSpace(s))) {
	case Classic:
		return Classic
	case Minimal:
		return Minimal
	case Creative:
		return Creative
	default:
		return Modern
	}
}

// Info 描述模板的展示元信息，供前端模板选择器使用。
type Info struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// All 返回全部模板的元信息，顺序固定。
func All() []Info {
	return []Info{
		{ID: Modern, Name: "Modern"},
		{ID: Classic, Name: "Classic"},
		{ID: Minimal, Name: "Minimal"},
		{ID: Creative, Name: "Creative"},
	}
}

// viewData 是模板执行时的数据视图。
// Skills 已过滤掉空白项，模板内不再做判断。
type viewData struct {
	PersonalInfo resume.PersonalInfo
	Experience   []resume.ExperienceEntry
	Education    []resume.EducationEntry
	Skills       []string
}

func newViewData(content resume.Content) viewData {
	content = content.Normalize()
	skills := make([]string, 0, len(content.Skills))
	for _, s := range content.Skills {
		if strings.TrimSpace(s) != "" {
			skills = append(skills, s)
		}
	}
	return viewData{
		PersonalInfo: content.PersonalInfo,
		Experience:   content.Experience,
		Education:    content.Education,
		Skills:       skills,
	}
}

// dateRange 统一经历条目的时间区间格式。
// EndDate 为空且 StartDate 非空时显示 Present，绝不渲染成空白。
func dateRange(start, end string) string {
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
}

// degreeLine 拼接学位与专业，任一为空时只显示另一个。
func degreeLine(degree, field string) string {
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
}

func joinSkills(skills []string, sep string) string {
	return strings.Join(skills, sep)
}

var funcMap = htmltemplate.FuncMap{
	"dateRange":  dateRange,
	"degreeLine": degreeLine,
	"join":       joinSkills,
}

var templates = map[ID]*htmltemplate.Template{
	Modern:   mustParse(Modern, modernTemplate),
	Classic:  mustParse(Classic, classicTemplate),
	Minimal:  mustParse(Minimal, minimalTemplate),
	Creative: mustParse(Creative, creativeTemplate),
}

func mustParse(id ID, text string) *htmltemplate.Template {
	return htmltemplate.Must(htmltemplate.New(string(id)).Funcs(funcMap).Parse(text))
}

// Render 是纯函数：同样的 (content, id) 输入总是产生同样的输出，
// 不持有任何状态，也不做 I/O。空内容是正常输入而不是错误。
func Render(content resume.Content, id ID) (htmltemplate.HTML, error) {
	tpl := templates[Parse(string(id))]
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, newViewData(content)); err != nil {
		return "", fmt.Errorf("render template %q: %w", id, err)
	}
	return htmltemplate.HTML(buf.String()), nil
}
