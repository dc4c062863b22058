package export

import (
	"strings"
	"testing"

	"craftfolio/internal/resume"
	"craftfolio/internal/template"
)

func sampleContent() resume.Content {
	return resume.Content{
		PersonalInfo: resume.PersonalInfo{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Summary:  "Backend engineer.",
		},
		Experience: []resume.ExperienceEntry{
			{ID: "e1", Company: "ACME", Position: "Engineer", StartDate: "2020-01"},
		},
		Education: []resume.EducationEntry{
			{ID: "ed1", School: "MIT", Degree: "B.S.", Field: "CS", GraduationDate: "2019"},
		},
		Skills: []string{"Go", "", "Rust"},
	}
}

func TestBuildProducesSelfContainedDocument(t *testing.T) {
	doc, err := Build("My Resume", sampleContent(), template.Modern)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	out := string(doc.HTML)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<style>",
		"@media print",
		"8.5in",
		"Jane Doe",
		"2020-01 - Present",
		"B.S. in CS",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("document missing %q:\n%s", want, out)
		}
	}
	if doc.MIME != "text/html; charset=utf-8" {
		t.Fatalf("unexpected mime %q", doc.MIME)
	}
}

func TestSuggestedFilenameFromTitle(t *testing.T) {
	cases := map[string]string{
		"My Resume":   "My Resume.html",
		"":            "resume.html",
		"   ":         "resume.html",
		"a/b\\c":      "a-b-c.html",
		"Senior 2024": "Senior 2024.html",
	}
	for title, want := range cases {
		doc, err := Build(title, resume.NewContent(), template.Modern)
		if err != nil {
			t.Fatalf("build %q: %v", title, err)
		}
		if doc.Filename != want {
			t.Errorf("filename for %q = %q, want %q", title, doc.Filename, want)
		}
	}
}

func TestEmptySectionsOmitted(t *testing.T) {
	content := resume.NewContent().SetPersonalField(resume.FieldFullName, "Jane Doe")
	for _, id := range []template.ID{template.Modern, template.Classic, template.Minimal, template.Creative} {
		doc, err := Build("t", content, id)
		if err != nil {
			t.Fatalf("build %s: %v", id, err)
		}
		out := string(doc.HTML)
		if !strings.Contains(out, "Jane Doe") {
			t.Fatalf("%s: name missing", id)
		}
		for _, header := range []string{"Experience", "Education", ">Skills<", "class=\"summary\""} {
			if strings.Contains(out, header) {
				t.Fatalf("%s: empty section %q must be omitted", id, header)
			}
		}
	}
}

func TestExportFollowsTemplate(t *testing.T) {
	content := sampleContent()

	byID := map[template.ID]string{}
	for _, id := range []template.ID{template.Modern, template.Classic, template.Minimal, template.Creative} {
		doc, err := Build("t", content, id)
		if err != nil {
			t.Fatalf("build %s: %v", id, err)
		}
		byID[id] = string(doc.HTML)
		if !strings.Contains(byID[id], "doc-"+string(id)) {
			t.Fatalf("%s: document not tagged with its template class", id)
		}
	}

	if byID[template.Modern] == byID[template.Classic] {
		t.Fatalf("export must dispatch on template id, not always render modern")
	}
	if !strings.Contains(byID[template.Classic], "Professional Experience") {
		t.Fatalf("classic export must use its own section header")
	}
	if !strings.Contains(byID[template.Classic], "Go • Rust") {
		t.Fatalf("classic export skill separator changed")
	}
	if !strings.Contains(byID[template.Minimal], "Go, Rust") {
		t.Fatalf("minimal export skill separator changed")
	}

	// 未知模板与 modern 完全一致。
	unknown, err := Build("t", content, template.ID("gothic"))
	if err != nil {
		t.Fatalf("build unknown: %v", err)
	}
	if string(unknown.HTML) != byID[template.Modern] {
		t.Fatalf("unknown template id must export as modern")
	}
}

func TestBlankSkillsFiltered(t *testing.T) {
	doc, err := Build("t", resume.Content{Skills: []string{"Go", "", "Rust", ""}}, template.Modern)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	out := string(doc.HTML)
	if strings.Count(out, `<span class="skill-tag">`) != 2 {
		t.Fatalf("expected exactly 2 skill tags:\n%s", out)
	}
}
