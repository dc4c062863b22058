package resume

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// 所有编辑操作都返回新的聚合值，原值保持不变，便于撤销与预览对比。
// 删除不存在的条目是 no-op，不报错。

// PersonalInfo 的可更新字段名。
const (
	FieldFullName = "fullName"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldLocation = "location"
	FieldSummary  = "summary"
)

// SetPersonalField 更新个人信息中的单个字段，未知字段名为 no-op。
func (c Content) SetPersonalField(field, value string) Content {
	out := c.Clone()
	switch field {
	case FieldFullName:
		out.PersonalInfo.FullName = value
	case FieldEmail:
		out.PersonalInfo.Email = value
	case FieldPhone:
		out.PersonalInfo.Phone = value
	case FieldLocation:
		out.PersonalInfo.Location = value
	case FieldSummary:
		out.PersonalInfo.Summary = value
	}
	return out
}

// AddExperience 追加一段工作经历；ID 为空时自动分配聚合内唯一 ID。
func (c Content) AddExperience(entry ExperienceEntry) Content {
	out := c.Clone()
	if strings.TrimSpace(entry.ID) == "" {
		entry.ID = out.newEntryID()
	}
	out.Experience = append(out.Experience, entry)
	return out
}

// UpdateExperience 按 ID 覆盖对应经历；未命中为 no-op。
func (c Content) UpdateExperience(entry ExperienceEntry) Content {
	out := c.Clone()
	for i := range out.Experience {
		if out.Experience[i].ID == entry.ID {
			out.Experience[i] = entry
			break
		}
	}
	return out
}

// RemoveExperience 按 ID 删除经历；未命中为 no-op。
func (c Content) RemoveExperience(id string) Content {
	out := c.Clone()
	kept := out.Experience[:0]
	for _, e := range out.Experience {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	out.Experience = kept
	return out
}

// AddEducation 追加一段教育经历；ID 为空时自动分配聚合内唯一 ID。
func (c Content) AddEducation(entry EducationEntry) Content {
	out := c.Clone()
	if strings.TrimSpace(entry.ID) == "" {
		entry.ID = out.newEntryID()
	}
	out.Education = append(out.Education, entry)
	return out
}

// UpdateEducation 按 ID 覆盖对应教育经历；未命中为 no-op。
func (c Content) UpdateEducation(entry EducationEntry) Content {
	out := c.Clone()
	for i := range out.Education {
		if out.Education[i].ID == entry.ID {
			out.Education[i] = entry
			break
		}
	}
	return out
}

// RemoveEducation 按 ID 删除教育经历；未命中为 no-op。
func (c Content) RemoveEducation(id string) Content {
	out := c.Clone()
	kept := out.Education[:0]
	for _, e := range out.Education {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	out.Education = kept
	return out
}

// AddSkill 追加一项技能，允许为空字符串（渲染时再过滤）。
func (c Content) AddSkill(skill string) Content {
	out := c.Clone()
	out.Skills = append(out.Skills, skill)
	return out
}

// UpdateSkill 按位置覆盖技能；越界为 no-op。
func (c Content) UpdateSkill(index int, skill string) Content {
	out := c.Clone()
	if index >= 0 && index < len(out.Skills) {
		out.Skills[index] = skill
	}
	return out
}

// RemoveSkill 按位置删除技能；越界为 no-op。
func (c Content) RemoveSkill(index int) Content {
	out := c.Clone()
	if index < 0 || index >= len(out.Skills) {
		return out
	}
	out.Skills = append(out.Skills[:index], out.Skills[index+1:]...)
	return out
}

// newEntryID 生成聚合内唯一的条目 ID。
// 8 字节随机 hex，仅要求在单份简历内不重复，冲突时重试。
func (c Content) newEntryID() string {
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand 不可用属于环境级故障，保持简单直接 panic。
			panic("resume: read random entry id: " + err.Error())
		}
		id := hex.EncodeToString(buf)
		if !c.hasEntryID(id) {
			return id
		}
	}
}

func (c Content) hasEntryID(id string) bool {
	for _, e := range c.Experience {
		if e.ID == id {
			return true
		}
	}
	for _, e := range c.Education {
		if e.ID == id {
			return true
		}
	}
	return false
}
