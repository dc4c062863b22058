package resume

import "encoding/json"

// Content 表示存储在简历 Content(JSONB) 中的结构化数据。
// 字段全部允许为空：空值是一种正常的渲染状态，而不是错误。
type Content struct {
	PersonalInfo PersonalInfo      `json:"personalInfo"`
	Experience   []ExperienceEntry `json:"experience"`
	Education    []EducationEntry  `json:"education"`
	Skills       []string          `json:"skills"`
}

// PersonalInfo 描述简历抬头的个人信息，全部为自由文本。
// 不校验邮箱/电话等格式。
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

// ExperienceEntry 表示一段工作经历。
// EndDate 为空表示“至今”，渲染时显示 Present。
type ExperienceEntry struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// EducationEntry 表示一段教育经历。
type EducationEntry struct {
	ID             string `json:"id"`
	School         string `json:"school"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationDate string `json:"graduationDate"`
}

// NewContent 返回全空但切片已初始化的聚合。
func NewContent() Content {
	return Content{
		Experience: []ExperienceEntry{},
		Education:  []EducationEntry{},
		Skills:     []string{},
	}
}

// Normalize 把 nil 切片替换为空切片，保证序列化后字段始终存在。
// 渲染层依赖“缺失即为空”的约定。
func (c Content) Normalize() Content {
	if c.Experience == nil {
		c.Experience = []ExperienceEntry{}
	}
	if c.Education == nil {
		c.Education = []EducationEntry{}
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
	return c
}

// Clone 返回深拷贝，任何后续编辑都不会影响原快照。
func (c Content) Clone() Content {
	out := c
	out.Experience = make([]ExperienceEntry, len(c.Experience))
	copy(out.Experience, c.Experience)
	out.Education = make([]EducationEntry, len(c.Education))
	copy(out.Education, c.Education)
	out.Skills = make([]string, len(c.Skills))
	copy(out.Skills, c.Skills)
	return out
}

// ParseContent 从 JSON 解析聚合并做归一化。
func ParseContent(data []byte) (Content, error) {
	var c Content
	if err := json.Unmarshal(data, &c); err != nil {
		return Content{}, err
	}
	return c.Normalize(), nil
}

// MarshalContent 把聚合序列化为 JSONB 可存储的字节。
func MarshalContent(c Content) ([]byte, error) {
	return json.Marshal(c.Normalize())
}
