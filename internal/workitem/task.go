package workitem

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

var (
	apiMarkerPattern       = regexp.MustCompile(`(?i)\b(?:RESTful|REST|GraphQL|SOAP|gRPC)\b`)
	httpEndpointPattern    = regexp.MustCompile(`(?i)\b(GET|POST|PUT|PATCH|DELETE)\s+(/[A-Za-z0-9/_.{}:-]*)`)
	endpointMentionPattern = regexp.MustCompile(`(?i)\bendpoints?\b`)

	stepMarkerPattern = regexp.MustCompile(`(?i)\bstep\s+\d+\b`)
	stepLeadPattern   = regexp.MustCompile(`(?i)^(?:first|second|third|then|next|finally)\b`)

	considerationLeadPattern = regexp.MustCompile(`(?i)^(?:consider|note|important|warning|caution|remember)\b`)

	technicalDependencyPattern = regexp.MustCompile(`(?i)\b(?:depends on|requires|needs)\s+([^.!?\n]+)`)

	workItemRefPatterns = []*regexp.Regexp{
		regexp.MustCompile(`#(\d+)`),
		regexp.MustCompile(`(?i)\b(?:work item|task|story)\s+(\d+)\b`),
	}

	requirementSentencePattern = regexp.MustCompile(`(?i)\b(?:must|should|need to|required to)\b`)

	deliverableVerbPattern   = regexp.MustCompile(`(?i)\b(?:deliver|create|implement|build|develop)\s+(?:(?:a|an|the)\s+)?([^.!?\n]+)`)
	deliverableLabelPattern  = regexp.MustCompile(`(?i)\b(?:output|result|deliverable)s?\s*:\s*([^\n]+)`)

	technicalKeywords = newKeywordSet(
		"api", "endpoint", "database", "service", "server", "class",
		"function", "method", "interface", "module", "library", "framework",
		"component", "algorithm", "architecture", "integration", "migration",
		"deployment",
	)

	databaseKeywords = newKeywordSet(
		"postgresql", "postgres", "mysql", "mongodb", "redis", "sqlite",
		"elasticsearch", "sql", "nosql", "database", "schema", "migration",
		"query", "table",
	)

	technologyKeywords = newKeywordSet(
		"docker", "kubernetes", "terraform", "react", "angular", "vue",
		"node.js", "typescript", "javascript", "python", "java", "kotlin",
		"spring", "django", "flask", "kafka", "rabbitmq", "aws", "azure",
	)

	designPatternKeywords = newKeywordSet(
		"singleton", "factory", "repository", "observer", "strategy",
		"adapter", "decorator", "facade", "builder", "mediator", "mvc",
		"mvvm", "cqrs", "dependency injection", "event sourcing",
		"event-driven",
	)

	externalDependencyKeywords = newKeywordSet(
		"stripe", "paypal", "twilio", "sendgrid", "salesforce", "slack",
		"auth0", "okta", "third-party", "external service", "vendor api",
	)

	complexityHighKeywords = newKeywordSet(
		"integration", "migration", "refactor", "architecture",
		"performance", "security", "scalability",
	)
	complexityMediumKeywords = newKeywordSet(
		"api", "database", "service", "component", "algorithm",
	)
	complexityLowKeywords = newKeywordSet(
		"fix", "update", "change", "add", "remove",
	)

	// taskCategories are checked in order; the first category with a
	// keyword hit wins, so broader buckets like refactoring only apply
	// when nothing more specific matched.
	taskCategories = []struct {
		name     string
		keywords keywordSet
	}{
		{"frontend", newKeywordSet("ui", "frontend", "css", "html", "react", "angular", "vue", "layout", "styling")},
		{"backend", newKeywordSet("api", "backend", "server", "service", "endpoint", "controller", "middleware")},
		{"database", newKeywordSet("database", "sql", "schema", "migration", "query", "table", "index")},
		{"infrastructure", newKeywordSet("deploy", "deployment", "docker", "kubernetes", "pipeline", "terraform", "infrastructure")},
		{"testing", newKeywordSet("test", "tests", "testing", "coverage", "unit test", "integration test", "qa")},
		{"documentation", newKeywordSet("document", "documentation", "readme", "docs", "guide")},
		{"bugfix", newKeywordSet("bug", "fix", "defect", "error", "crash", "broken")},
		{"refactoring", newKeywordSet("refactor", "refactoring", "cleanup", "restructure", "simplify", "technical debt")},
	}
)

// taskStrategy handles technical tasks. The description is the only real
// signal, so extraction leans on keyword vocabularies and light sentence
// analysis to recover structure from prose.
func taskStrategy() *Strategy {
	return &Strategy{
		Name:         "task",
		Kind:         models.KindTask,
		Validate:     validateTask,
		Extract:      extractTask,
		Instructions: taskInstructions,
	}
}

func validateTask(item models.WorkItem) []models.ValidationFinding {
	var findings []models.ValidationFinding

	description := strings.TrimSpace(item.Description)
	if description != "" && len(description) < 50 {
		findings = append(findings, models.ValidationFinding{
			Field:    "description",
			Valid:    true,
			Message:  "description is very short; extraction works better with concrete technical detail",
			Severity: models.SeverityWarning,
		})
	}

	if description != "" && !technicalKeywords.any(description) {
		findings = append(findings, models.ValidationFinding{
			Field:    "description",
			Valid:    true,
			Message:  "no technical keywords found; name the APIs, services, or components involved",
			Severity: models.SeverityInfo,
		})
	}

	if _, ok := item.CustomNumber(models.FieldEffort); !ok {
		findings = append(findings, models.ValidationFinding{
			Field:    "effort",
			Valid:    true,
			Message:  "no effort estimate; complexity scoring falls back to keywords alone",
			Severity: models.SeverityInfo,
		})
	}

	return findings
}

func extractTask(item models.WorkItem) (map[string]any, error) {
	fields := commonFields(item)
	description := item.Description

	fields["technicalDetails"] = map[string]any{
		"apis":         extractAPIMentions(description),
		"databases":    databaseKeywords.found(description),
		"technologies": technologyKeywords.found(description),
		"patterns":     designPatternKeywords.found(description),
	}
	fields["requirements"] = extractRequirementSentences(description)
	fields["implementationApproach"] = map[string]any{
		"approach": implementationApproach(description),
	}
	fields["steps"] = extractSteps(description)
	fields["considerations"] = extractConsiderations(description)
	fields["dependencies"] = map[string]any{
		"technical": extractTechnicalDependencies(description),
		"workItems": extractWorkItemRefs(description),
		"external":  externalDependencyKeywords.found(description),
	}
	fields["deliverables"] = extractDeliverables(description)
	fields["complexity"] = taskComplexity(item)
	fields["taskCategory"] = taskCategory(description)

	return fields, nil
}

// extractAPIMentions collects API style markers, concrete HTTP endpoints,
// and bare endpoint mentions, in that order.
func extractAPIMentions(description string) []string {
	apis := apiMarkerPattern.FindAllString(description, -1)
	for _, m := range httpEndpointPattern.FindAllStringSubmatch(description, -1) {
		apis = append(apis, strings.ToUpper(m[1])+" "+m[2])
	}
	apis = append(apis, endpointMentionPattern.FindAllString(description, -1)...)
	return apis
}

// extractRequirementSentences returns every sentence that states an
// obligation (must, should, need to, required to).
func extractRequirementSentences(description string) []string {
	var requirements []string
	for _, sentence := range splitSentences(description) {
		if requirementSentencePattern.MatchString(sentence) {
			requirements = append(requirements, sentence)
		}
	}
	return requirements
}

// implementationApproach classifies the task by its dominant verb. The
// checks run from most to least specific so "refactor and optimize" counts
// as refactoring.
func implementationApproach(description string) string {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "refactor"):
		return "refactoring"
	case strings.Contains(lower, "optimize"):
		return "optimization"
	case strings.Contains(lower, "integrate"):
		return "integration"
	case strings.Contains(lower, "create"), strings.Contains(lower, "implement"):
		return "new_development"
	default:
		return "standard"
	}
}

// extractSteps collects ordered work from list lines and from sentences led
// by a sequence marker.
func extractSteps(description string) []string {
	var steps []string
	for _, line := range splitLines(description) {
		if m := numberLinePattern.FindStringSubmatch(line); m != nil {
			steps = append(steps, strings.TrimSpace(m[1]))
			continue
		}
		if m := bulletLinePattern.FindStringSubmatch(line); m != nil {
			steps = append(steps, strings.TrimSpace(m[1]))
			continue
		}
		for _, sentence := range splitSentences(line) {
			if stepMarkerPattern.MatchString(sentence) || stepLeadPattern.MatchString(sentence) {
				steps = append(steps, sentence)
			}
		}
	}
	return steps
}

// extractConsiderations collects lines that open with a caution word,
// looking past a leading bullet.
func extractConsiderations(description string) []string {
	var considerations []string
	for _, line := range splitLines(description) {
		text := strings.TrimSpace(line)
		if m := bulletLinePattern.FindStringSubmatch(line); m != nil {
			text = strings.TrimSpace(m[1])
		}
		if text != "" && considerationLeadPattern.MatchString(text) {
			considerations = append(considerations, text)
		}
	}
	return considerations
}

// extractTechnicalDependencies keeps "depends on/requires/needs ..."
// clauses that actually name something technical.
func extractTechnicalDependencies(description string) []string {
	var deps []string
	for _, m := range technicalDependencyPattern.FindAllStringSubmatch(description, -1) {
		clause := strings.TrimSpace(m[1])
		if technicalKeywords.any(clause) || databaseKeywords.any(clause) || technologyKeywords.any(clause) {
			deps = append(deps, clause)
		}
	}
	return deps
}

// extractWorkItemRefs normalizes work item references to "#<id>" whether
// they were written as "#214" or "task 214".
func extractWorkItemRefs(description string) []string {
	var refs []string
	for _, p := range workItemRefPatterns {
		for _, m := range p.FindAllStringSubmatch(description, -1) {
			refs = append(refs, "#"+m[1])
		}
	}
	return refs
}

func extractDeliverables(description string) []string {
	var deliverables []string
	for _, m := range deliverableVerbPattern.FindAllStringSubmatch(description, -1) {
		deliverables = append(deliverables, strings.TrimSpace(m[1]))
	}
	for _, m := range deliverableLabelPattern.FindAllStringSubmatch(description, -1) {
		deliverables = append(deliverables, strings.TrimSpace(m[1]))
	}
	return deliverables
}

// taskComplexity scores the description with weighted keyword hits plus an
// effort bonus and buckets the total.
func taskComplexity(item models.WorkItem) string {
	description := item.Description

	score := 3*complexityHighKeywords.count(description) +
		2*complexityMediumKeywords.count(description) +
		complexityLowKeywords.count(description)

	if effort, ok := item.CustomNumber(models.FieldEffort); ok {
		switch {
		case effort > 16:
			score += 3
		case effort > 8:
			score += 2
		case effort > 4:
			score++
		}
	}

	switch {
	case score >= 8:
		return "high"
	case score >= 4:
		return "medium"
	default:
		return "low"
	}
}

func taskCategory(description string) string {
	for _, category := range taskCategories {
		if category.keywords.any(description) {
			return category.name
		}
	}
	return "general"
}

func taskInstructions(item models.WorkItem, fields map[string]any) models.PromptInstructions {
	instructions := models.PromptInstructions{
		Requirements: []string{"Implement: " + item.Title},
	}

	if reqs, ok := fields["requirements"].([]string); ok {
		instructions.Requirements = append(instructions.Requirements, reqs...)
	}
	if details, ok := fields["technicalDetails"].(map[string]any); ok {
		if patterns, ok := details["patterns"].([]string); ok {
			instructions.DesignPatterns = patterns
		}
		if technologies, ok := details["technologies"].([]string); ok {
			instructions.PreferredLibraries = technologies
		}
	}

	var style []string
	if approach, ok := fields["implementationApproach"].(map[string]any); ok {
		if a, ok := approach["approach"].(string); ok {
			style = append(style, fmt.Sprintf("Implementation approach: %s.", a))
		}
	}
	if complexity, ok := fields["complexity"].(string); ok {
		style = append(style, fmt.Sprintf("Estimated complexity: %s.", complexity))
	}
	if category, ok := fields["taskCategory"].(string); ok {
		style = append(style, fmt.Sprintf("Task category: %s.", category))
	}
	if considerations, ok := fields["considerations"].([]string); ok && len(considerations) > 0 {
		style = append(style, "Considerations: "+strings.Join(considerations, "; ")+".")
	}
	instructions.StylePreferences = strings.Join(style, " ")

	return instructions
}
