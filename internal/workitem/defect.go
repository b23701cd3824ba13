package workitem

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

var (
	// expectedBehaviorPatterns capture what the reporter wanted to happen.
	// Each alternative consumes up to the opposing keyword or the end of
	// the sentence; alternatives run from most to least specific.
	expectedBehaviorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bexpected\s*:?\s*(.+?)(?:\s*\b(?:but|actual|instead)\b|[.!?\n]|$)`),
		regexp.MustCompile(`(?i)\bshould\s+(.+?)(?:\s*\b(?:but|actual|instead)\b|[.!?\n]|$)`),
	}

	// actualBehaviorPatterns capture what happened instead.
	actualBehaviorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bactual(?:\s+result)?(?:\s+is|\s*:)?\s*(.+?)(?:\s*\b(?:expected|should)\b|[.!?\n]|$)`),
		regexp.MustCompile(`(?i)\binstead\b,?\s*(.+?)(?:\s*\b(?:expected|should)\b|[.!?\n]|$)`),
		regexp.MustCompile(`(?i)\bbut\b\s*(.+?)(?:\s*\b(?:expected|should)\b|[.!?\n]|$)`),
	}

	errorLinePattern      = regexp.MustCompile(`(?i)\b(?:error|exception|fail(?:s|ed|ure)?)\b`)
	exceptionTokenPattern = regexp.MustCompile(`\b[A-Z][A-Za-z0-9]*(?:Error|Exception)\b`)

	componentKeywords = newKeywordSet(
		"api", "service", "controller", "component", "database", "ui",
	)

	defectCategories = []struct {
		name     string
		keywords keywordSet
	}{
		{"functional", newKeywordSet("function", "feature", "logic", "behavior", "workflow", "calculation", "validation")},
		{"ui", newKeywordSet("ui", "display", "layout", "render", "button", "screen", "style")},
		{"performance", newKeywordSet("slow", "performance", "timeout", "lag", "memory", "latency")},
		{"data", newKeywordSet("data", "corrupt", "missing", "duplicate", "inconsistent", "loss")},
	}
)

// defectStrategy handles bug reports. Reproduction steps are the one field
// generation cannot do without, so their absence blocks processing.
func defectStrategy() *Strategy {
	return &Strategy{
		Name:         "defect",
		Kind:         models.KindDefect,
		Validate:     validateDefect,
		Extract:      extractDefect,
		Instructions: defectInstructions,
	}
}

func validateDefect(item models.WorkItem) []models.ValidationFinding {
	var findings []models.ValidationFinding

	steps := strings.TrimSpace(item.ReproductionSteps)
	switch {
	case steps == "":
		findings = append(findings, models.ValidationFinding{
			Field:    "reproductionSteps",
			Valid:    false,
			Message:  "reproduction steps are required for defect processing",
			Severity: models.SeverityError,
		})
	case len(steps) < 30:
		findings = append(findings, models.ValidationFinding{
			Field:    "reproductionSteps",
			Valid:    true,
			Message:  "reproduction steps are very short; a numbered sequence improves the fix",
			Severity: models.SeverityWarning,
		})
	}

	if description := strings.TrimSpace(item.Description); description != "" && len(description) < 50 {
		findings = append(findings, models.ValidationFinding{
			Field:    "description",
			Valid:    true,
			Message:  "description is very short; include expected and actual behavior",
			Severity: models.SeverityWarning,
		})
	}

	return findings
}

func extractDefect(item models.WorkItem) (map[string]any, error) {
	fields := commonFields(item)

	fields["reproductionSteps"] = parseReproductionSteps(item.ReproductionSteps)
	fields["behaviorAnalysis"] = analyzeBehavior(item.Description)
	fields["errorMessages"] = extractErrorMessages(item.Description + "\n" + item.ReproductionSteps)
	fields["affectedComponents"] = componentKeywords.found(item.Description)
	fields["impactAssessment"] = assessImpact(item)
	fields["defectCategory"] = defectCategory(item.Description)

	return fields, nil
}

// parseReproductionSteps normalizes the steps text into an ordered list,
// recognizing numbered and bulleted lists before falling back to sentences.
func parseReproductionSteps(text string) map[string]any {
	if steps := numberedItems(text); len(steps) > 0 {
		return map[string]any{"format": "numbered", "steps": steps}
	}
	if steps := bulletItems(text); len(steps) > 0 {
		return map[string]any{"format": "bulleted", "steps": steps}
	}
	return map[string]any{"format": "freeform", "steps": splitSentences(text)}
}

// analyzeBehavior splits the description into expected and actual behavior.
// Either side is nil when no pattern matched.
func analyzeBehavior(description string) map[string]any {
	analysis := map[string]any{
		"expectedBehavior": nil,
		"actualBehavior":   nil,
	}
	if expected, ok := firstSubmatch(description, expectedBehaviorPatterns); ok {
		analysis["expectedBehavior"] = expected
	}
	if actual, ok := firstSubmatch(description, actualBehaviorPatterns); ok {
		analysis["actualBehavior"] = actual
	}
	return analysis
}

// extractErrorMessages collects every line of the combined description and
// reproduction steps that mentions an error, exception, or failure.
func extractErrorMessages(text string) []string {
	var messages []string
	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if errorLinePattern.MatchString(trimmed) || exceptionTokenPattern.MatchString(trimmed) {
			messages = append(messages, trimmed)
		}
	}
	return messages
}

// assessImpact derives impact and urgency from the severity custom field
// and the priority. Severity defaults to Medium when the tracker did not
// set one.
func assessImpact(item models.WorkItem) map[string]any {
	severity := "Medium"
	if s, ok := item.CustomString(models.FieldSeverity); ok && strings.TrimSpace(s) != "" {
		severity = s
	}
	lower := strings.ToLower(severity)

	impact, urgency := "medium", "medium"
	switch {
	case strings.Contains(lower, "critical") || item.Priority == 1:
		impact, urgency = "high", "immediate"
	case strings.Contains(lower, "high") || item.Priority == 2:
		impact, urgency = "high", "high"
	case strings.Contains(lower, "low") || item.Priority == 4:
		impact, urgency = "low", "low"
	}

	return map[string]any{
		"impact":   impact,
		"urgency":  urgency,
		"severity": severity,
	}
}

func defectCategory(description string) string {
	for _, category := range defectCategories {
		if category.keywords.any(description) {
			return category.name
		}
	}
	return "general"
}

func defectInstructions(item models.WorkItem, fields map[string]any) models.PromptInstructions {
	instructions := models.PromptInstructions{
		Requirements: []string{"Fix: " + item.Title},
	}

	analysis, _ := fields["behaviorAnalysis"].(map[string]any)
	if expected, ok := analysis["expectedBehavior"].(string); ok {
		instructions.Requirements = append(instructions.Requirements, "Restore expected behavior: "+expected)
	}
	if messages, ok := fields["errorMessages"].([]string); ok {
		for _, msg := range messages {
			instructions.Requirements = append(instructions.Requirements, "Resolve: "+msg)
		}
	}

	var style []string
	if category, ok := fields["defectCategory"].(string); ok {
		style = append(style, fmt.Sprintf("Defect category: %s.", category))
	}
	if impact, ok := fields["impactAssessment"].(map[string]any); ok {
		style = append(style, fmt.Sprintf("Impact: %s, urgency: %s.", impact["impact"], impact["urgency"]))
	}
	if actual, ok := analysis["actualBehavior"].(string); ok {
		style = append(style, fmt.Sprintf("Reported behavior to eliminate: %s.", actual))
	}
	if components, ok := fields["affectedComponents"].([]string); ok && len(components) > 0 {
		style = append(style, "Keep changes scoped to: "+strings.Join(components, ", ")+".")
	}
	instructions.StylePreferences = strings.Join(style, " ")

	return instructions
}
