// Package workitem implements the work item classification and extraction
// pipeline: validation of an item's sufficiency for automated code
// generation, kind-specific heuristic extraction of structured fields from
// free-form prose, and deterministic assembly of a code generation prompt.
//
// The pipeline is pure: it performs no I/O, keeps no state across
// invocations, and yields identical results for identical inputs.
package workitem

import (
	"strings"

	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

// Strategy is the capability record for one work item kind. Each registered
// kind supplies its own validation, field extraction, and prompt instruction
// assembly; the shared orchestration in Process drives them. Strategies hold
// no state and are safe for concurrent use.
type Strategy struct {
	// Name identifies the strategy in result metadata.
	Name string

	// Kind is the work item kind the strategy handles.
	Kind models.Kind

	// Validate returns kind-specific findings layered on top of the common
	// checks. It must not mutate the item.
	Validate func(item models.WorkItem) []models.ValidationFinding

	// Extract derives the kind-specific field mapping from the item. The
	// mapping always includes the common fields.
	Extract func(item models.WorkItem) (map[string]any, error)

	// Instructions builds the prompt instruction bundle from the item and
	// its extracted fields.
	Instructions func(item models.WorkItem, fields map[string]any) models.PromptInstructions
}

// validateCommon applies the checks shared by every work item kind: a
// non-empty title and area path are required, a missing description is
// advisory.
func validateCommon(item models.WorkItem) []models.ValidationFinding {
	var findings []models.ValidationFinding

	if strings.TrimSpace(item.Title) == "" {
		findings = append(findings, models.ValidationFinding{
			Field:    "title",
			Valid:    false,
			Message:  "title must not be empty",
			Severity: models.SeverityError,
		})
	} else {
		findings = append(findings, models.ValidationFinding{
			Field:    "title",
			Valid:    true,
			Message:  "title present",
			Severity: models.SeverityInfo,
		})
	}

	if strings.TrimSpace(item.Description) == "" {
		findings = append(findings, models.ValidationFinding{
			Field:    "description",
			Valid:    false,
			Message:  "description is empty; extraction quality will suffer",
			Severity: models.SeverityWarning,
		})
	}

	if strings.TrimSpace(item.AreaPath) == "" {
		findings = append(findings, models.ValidationFinding{
			Field:    "areaPath",
			Valid:    false,
			Message:  "area path must not be empty; it determines the target repository",
			Severity: models.SeverityError,
		})
	}

	return findings
}

// commonFields returns the field mapping every strategy starts from.
func commonFields(item models.WorkItem) map[string]any {
	return map[string]any{
		"id":            item.ID,
		"kind":          string(item.Kind),
		"title":         item.Title,
		"description":   item.Description,
		"assignee":      item.Assignee,
		"areaPath":      item.AreaPath,
		"iterationPath": item.IterationPath,
		"state":         item.State,
		"priority":      item.Priority,
		"tags":          item.Tags,
	}
}
