package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildMatchScoringPrompt embeds the job description and the resume verbatim.
func (pb *PromptBuilder) BuildMatchScoringPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`
You are an expert HR recruiter and resume screener.

You will be given a Job Description and a Resume.
Your job is to analyze how well the resume matches the job description.

Return your response in this EXACT JSON format and nothing else:
{
  "score": <number between 0 and 100>,
  "matchedSkills": [<list of skills from resume that match the job>],
  "missingSkills": [<list of important skills from job that are missing in resume>],
  "experienceMatch": "<Poor | Fair | Good | Excellent>",
  "summary": "<2-3 sentence summary of the candidate and how well they fit>"
}

JOB DESCRIPTION:
%s

RESUME:
%s

Respond with JSON only. No extra text.
`, jobDescription, resumeText)
}
