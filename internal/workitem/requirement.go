package workitem

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

var (
	// rolePattern captures the actor of an "as a/an <role>" story statement.
	// The capture stops at punctuation, at the "I want" continuation, or at
	// the end of the text.
	rolePattern = regexp.MustCompile(`(?i)\bas\s+an?\s+([a-z][a-z ]*?)(?:\s*[,.;:\n]|\s+i\s|$)`)

	// businessValuePatterns are ordered from most to least specific; the
	// first alternative that matches supplies the business value.
	businessValuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bso that\s+([^.!?\n]+)`),
		regexp.MustCompile(`(?i)\bin order to\s+([^.!?\n]+)`),
		regexp.MustCompile(`(?i)\bto\s+([^.!?\n]+)`),
	}

	gherkinKeywordPattern = regexp.MustCompile(`(?i)\b(given|when|then)\b`)

	roleKeywords = newKeywordSet(
		"user", "customer", "admin", "administrator",
		"manager", "developer", "analyst",
	)

	priorityTagKeywords = []string{"critical", "urgent", "mvp", "release-blocker"}
)

// requirementStrategy handles user-story-like items. The extraction centers
// on acceptance criteria: their structure decides both the criteria field
// shape and which functional requirements can be derived.
func requirementStrategy() *Strategy {
	return &Strategy{
		Name:         "requirement",
		Kind:         models.KindRequirement,
		Validate:     validateRequirement,
		Extract:      extractRequirement,
		Instructions: requirementInstructions,
	}
}

func validateRequirement(item models.WorkItem) []models.ValidationFinding {
	var findings []models.ValidationFinding

	criteria := strings.TrimSpace(item.AcceptanceCriteria)
	if criteria == "" {
		findings = append(findings, models.ValidationFinding{
			Field:    "acceptanceCriteria",
			Valid:    false,
			Message:  "acceptance criteria are missing; generation will rely on the description alone",
			Severity: models.SeverityWarning,
		})
	} else if !gherkinKeywordPattern.MatchString(criteria) && len(bulletItems(criteria)) == 0 {
		findings = append(findings, models.ValidationFinding{
			Field:    "acceptanceCriteria",
			Valid:    true,
			Message:  "acceptance criteria are unstructured; given/when/then or bullet points improve extraction",
			Severity: models.SeverityInfo,
		})
	}

	if !rolePattern.MatchString(item.Description) && !roleKeywords.any(item.Description) {
		findings = append(findings, models.ValidationFinding{
			Field:    "description",
			Valid:    true,
			Message:  "no user role found; consider phrasing the story as \"As a <role>, I want ...\"",
			Severity: models.SeverityInfo,
		})
	}

	return findings
}

func extractRequirement(item models.WorkItem) (map[string]any, error) {
	fields := commonFields(item)

	criteria := strings.TrimSpace(item.AcceptanceCriteria)
	requirements := []string{"Implement: " + item.Title}

	if criteria != "" {
		switch {
		case gherkinKeywordPattern.MatchString(criteria):
			segments := gherkinSegments(criteria)
			fields["acceptanceCriteria"] = map[string]any{
				"format":   "gherkin",
				"segments": segments,
			}
			for _, seg := range segments {
				if seg["keyword"] == "when" && seg["text"] != "" {
					requirements = append(requirements, seg["text"])
				}
			}
		case len(bulletItems(criteria)) > 0:
			items := bulletItems(criteria)
			fields["acceptanceCriteria"] = map[string]any{
				"format": "bulleted",
				"items":  items,
			}
			requirements = append(requirements, items...)
		default:
			fields["acceptanceCriteria"] = map[string]any{
				"format": "freeform",
				"text":   criteria,
			}
		}
	}

	if role, ok := extractUserRole(item.Description); ok {
		fields["userRole"] = role
	}
	if value, ok := firstSubmatch(item.Description, businessValuePatterns); ok {
		fields["businessValue"] = value
	}

	fields["functionalRequirements"] = requirements
	fields["businessPriority"] = requirementPriority(item)

	return fields, nil
}

// gherkinSegments cuts criteria text at each given/when/then keyword and
// pairs the lowercased keyword with the text that follows it, up to the
// next keyword.
func gherkinSegments(text string) []map[string]string {
	locs := gherkinKeywordPattern.FindAllStringSubmatchIndex(text, -1)
	segments := make([]map[string]string, 0, len(locs))
	for i, loc := range locs {
		keyword := strings.ToLower(text[loc[2]:loc[3]])
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(text[loc[3]:end])
		body = strings.TrimSpace(strings.TrimRight(body, ",;"))
		segments = append(segments, map[string]string{
			"keyword": keyword,
			"text":    body,
		})
	}
	return segments
}

// extractUserRole finds the story's actor, preferring an explicit
// "as a <role>" statement over the fixed role vocabulary.
func extractUserRole(description string) (string, bool) {
	if m := rolePattern.FindStringSubmatch(description); m != nil {
		return strings.ToLower(strings.TrimSpace(m[1])), true
	}
	if hits := roleKeywords.found(description); len(hits) > 0 {
		return hits[0], true
	}
	return "", false
}

// requirementPriority scores the item's urgency from its priority field,
// tags, and story points, then buckets the score into low/medium/high.
func requirementPriority(item models.WorkItem) string {
	score := 0

	switch {
	case item.Priority <= 1:
		score += 3
	case item.Priority <= 2:
		score += 2
	default:
		score++
	}

	for _, tag := range item.Tags {
		lower := strings.ToLower(tag)
		matched := false
		for _, kw := range priorityTagKeywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if matched {
			score += 2
			break
		}
	}

	if points, ok := item.CustomNumber(models.FieldStoryPoints); ok && points <= 3 {
		score++
	}

	switch {
	case score >= 5:
		return "high"
	case score >= 3:
		return "medium"
	default:
		return "low"
	}
}

func requirementInstructions(item models.WorkItem, fields map[string]any) models.PromptInstructions {
	instructions := models.PromptInstructions{}

	if reqs, ok := fields["functionalRequirements"].([]string); ok {
		instructions.Requirements = reqs
	}

	var style []string
	if role, ok := fields["userRole"].(string); ok {
		style = append(style, fmt.Sprintf("Build the feature from the perspective of a %s.", role))
	}
	if value, ok := fields["businessValue"].(string); ok {
		style = append(style, fmt.Sprintf("Business value: %s.", value))
	}
	if priority, ok := fields["businessPriority"].(string); ok {
		style = append(style, fmt.Sprintf("Business priority: %s.", priority))
	}
	if _, ok := fields["acceptanceCriteria"]; ok {
		style = append(style, "Satisfy every acceptance criterion exactly as written.")
	}
	instructions.StylePreferences = strings.Join(style, " ")

	return instructions
}
