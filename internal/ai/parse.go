package ai

import (
	"encoding/json"
	"strings"
)

// CareerRecommendation is one entry of the recommendation list shape.
// Field names follow the JSON schema the career prompt asks the model for.
type CareerRecommendation struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"requiredSkills"`
	LearningPath   []string `json:"learningPath"`
}

// ProjectAnalysis is the strengths/weaknesses/suggestions triple shape.
type ProjectAnalysis struct {
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

// EmptyProjectAnalysis is the documented default when parsing fails: all
// three lists present and empty, never nil, so the JSON response always
// carries the full triple.
func EmptyProjectAnalysis() ProjectAnalysis {
	return ProjectAnalysis{
		Strengths:   []string{},
		Weaknesses:  []string{},
		Suggestions: []string{},
	}
}

// ParseCareerList decodes generated text as a recommendation list. Garbled
// output degrades to an empty list; this function never fails.
func ParseCareerList(raw string) []CareerRecommendation {
	clean := extractJSON(raw, "[", "]")
	var list []CareerRecommendation
	if err := json.Unmarshal([]byte(clean), &list); err != nil {
		return []CareerRecommendation{}
	}
	for i := range list {
		if list[i].RequiredSkills == nil {
			list[i].RequiredSkills = []string{}
		}
		if list[i].LearningPath == nil {
			list[i].LearningPath = []string{}
		}
	}
	return list
}

// ParseProjectAnalysis decodes generated text as an analysis triple,
// falling back to the empty triple on any decode failure.
func ParseProjectAnalysis(raw string) ProjectAnalysis {
	clean := extractJSON(raw, "{", "}")
	var analysis ProjectAnalysis
	if err := json.Unmarshal([]byte(clean), &analysis); err != nil {
		return EmptyProjectAnalysis()
	}
	if analysis.Strengths == nil {
		analysis.Strengths = []string{}
	}
	if analysis.Weaknesses == nil {
		analysis.Weaknesses = []string{}
	}
	if analysis.Suggestions == nil {
		analysis.Suggestions = []string{}
	}
	return analysis
}

// extractJSON strips markdown code fences and slices to the outermost
// open/close pair, since models often wrap JSON in prose or ```json blocks.
func extractJSON(raw, open, close string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)
	start := strings.Index(clean, open)
	end := strings.LastIndex(clean, close)
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}
	return clean
}
