package resume

import "strings"

var knownSkills = []string{"python", "javascript", "typescript", "go", "react", "node", "sql", "aws", "docker", "kubernetes", "git"}

var seniorMarkers = []string{"senior", "lead", "manager", "architect", "principal"}

var midMarkers = []string{"mid", "intermediate"}

// FallbackAnalysis builds a basic keyword-driven analysis when the external
// AI service fails. It degrades the result, never the request.
func FallbackAnalysis(text string) Analysis {
	words := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[strings.Trim(w, ".,;:()")] = true
	}

	var technical []string
	for _, skill := range knownSkills {
		if words[skill] {
			technical = append(technical, strings.ToUpper(skill[:1])+skill[1:])
		}
	}

	level := "Entry"
	for _, marker := range seniorMarkers {
		if words[marker] {
			level = "Senior"
			break
		}
	}
	if level == "Entry" {
		for _, marker := range midMarkers {
			if words[marker] {
				level = "Mid"
				break
			}
		}
	}

	return Analysis{
		Skills: map[string]interface{}{
			"technical": technical,
			"soft":      []string{"Communication", "Problem Solving"},
		},
		ExperienceLevel: level,
		FocusAreas:      []string{"Software Development"},
		OverallInsights: "Basic analysis completed. For detailed insights, ensure the AI service is configured.",
		Recommendations: []map[string]interface{}{
			{
				"category":       "Profile",
				"recommendation": "Add more specific technical skills and project details",
				"impact":         "Medium",
			},
		},
	}
}
