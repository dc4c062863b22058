package ai

import "fmt"

func enhancePrompt(mode Mode, text string) string {
	switch mode {
	case ModeExpand:
		return fmt.Sprintf("Expand the following resume bullet point with more specific achievements and metrics:\n\n%s", text)
	case ModeTailor:
		return fmt.Sprintf("Tailor the following resume content to be more relevant for a job description. Make it more specific and impactful:\n\n%s", text)
	default:
		return fmt.Sprintf("Improve the following resume text to be more professional, impactful, and ATS-friendly. Keep it concise but compelling:\n\n%s", text)
	}
}

func bulletsPrompt(jobTitle, company, description string) string {
	context := ""
	if description != "" {
		context = fmt.Sprintf("Context: %s ", description)
	}
	return fmt.Sprintf("Generate 3-4 professional resume bullet points for someone who worked as a %s at %s. %sMake them specific, achievement-focused, and include metrics where possible. Format as a numbered list.",
		jobTitle, company, context)
}

func tailorPrompt(resumeJSON []byte, jobDescription string) string {
	return fmt.Sprintf(`You are an expert resume writer. Tailor the following resume to match the job description provided. Focus on highlighting relevant skills and experiences that match the job requirements. Keep the same structure but reorder and reword content to emphasize relevant qualifications.

Resume:
%s

Job Description:
%s

Provide the tailored resume content in the same JSON format as the input resume.`, resumeJSON, jobDescription)
}
