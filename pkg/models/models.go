// Package models defines data structures shared across the application.
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the type tag of a work item. It drives which extraction strategy
// processes the item.
type Kind string

const (
	// KindRequirement is a user-story-like item describing desired behavior.
	KindRequirement Kind = "Requirement"

	// KindTask is a technical work item.
	KindTask Kind = "Task"

	// KindDefect is a bug report.
	KindDefect Kind = "Defect"

	// KindEpic is a container item. Not supported for code generation.
	KindEpic Kind = "Epic"

	// KindFeature is a container item. Not supported for code generation.
	KindFeature Kind = "Feature"
)

// KnownKinds returns every kind the model declares, supported or not.
func KnownKinds() []Kind {
	return []Kind{KindRequirement, KindTask, KindDefect, KindEpic, KindFeature}
}

// ParseKind converts user or config input into a Kind. Matching is
// case-insensitive. It returns an error for anything outside KnownKinds.
func ParseKind(s string) (Kind, error) {
	for _, k := range KnownKinds() {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown work item kind: %q", s)
}

// Names of the well-known custom fields tracker clients populate on
// WorkItem.CustomFields. Extraction strategies read them by these names.
const (
	FieldStoryPoints = "storyPoints"
	FieldEffort      = "effort"
	FieldSeverity    = "severity"
)

// WorkItem represents a tracker work item with the fields the generation
// pipeline reads. It is treated as read-only once constructed.
type WorkItem struct {
	// ID is the numeric work item identifier (e.g., 214)
	ID int

	// Key is the tracker-specific reference (e.g., "DEV-214")
	Key string

	// Kind is the declared work item type
	Kind Kind

	// Title is the item's summary line
	Title string

	// Description is the full body text of the item
	Description string

	// AcceptanceCriteria is the optional acceptance-criteria text
	AcceptanceCriteria string

	// ReproductionSteps is the optional steps-to-reproduce text (defects)
	ReproductionSteps string

	// Assignee is the display name of the assigned person, if any
	Assignee string

	// AreaPath locates the item in the project tree and determines the
	// target repository downstream
	AreaPath string

	// IterationPath is the sprint/iteration the item is planned for
	IterationPath string

	// State is the current workflow state (e.g., "Ready", "Active")
	State string

	// Priority ranges 1-4 with 1 as the highest
	Priority int

	// Tags is the set of labels attached to the item
	Tags []string

	// CustomFields carries vendor-specific fields by name, e.g. "severity",
	// "storyPoints", "effort"
	CustomFields map[string]any

	// URL links back to the item in the tracker
	URL string
}

// CustomString reads a custom field as a string. The second return value
// reports whether the field exists and holds a string.
func (w WorkItem) CustomString(name string) (string, bool) {
	v, ok := w.CustomFields[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// CustomNumber reads a custom field as a float64, converting from the
// numeric and string representations trackers produce.
func (w WorkItem) CustomNumber(name string) (float64, bool) {
	v, ok := w.CustomFields[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Severity classifies a validation finding.
type Severity string

const (
	// SeverityError blocks code generation.
	SeverityError Severity = "error"
	// SeverityWarning is advisory; generation proceeds.
	SeverityWarning Severity = "warning"
	// SeverityInfo is a suggestion for improving the work item.
	SeverityInfo Severity = "info"
)

// ValidationFinding is one validation outcome for a single work item field.
type ValidationFinding struct {
	// Field names the work item field the finding refers to
	Field string

	// Valid reports whether the field passed the check
	Valid bool

	// Message is the human-readable explanation
	Message string

	// Severity is error, warning, or info
	Severity Severity
}

// HasBlockingFindings reports whether any finding carries error severity.
func HasBlockingFindings(findings []ValidationFinding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ProcessingMetadata describes how a result was produced.
type ProcessingMetadata struct {
	// ExtractedFields is the structured field mapping recovered from the item
	ExtractedFields map[string]any

	// Strategy names the extraction strategy that handled the item
	Strategy string

	// Findings is the full validation outcome, blocking or not
	Findings []ValidationFinding
}

// ProcessingResult is the outcome of running the pipeline over one work item.
// Success is true iff validation produced no error-severity finding and both
// extraction and prompt assembly completed without a fault.
type ProcessingResult struct {
	// Success reports whether a prompt was produced
	Success bool

	// Prompt is the generated code generation prompt, nil on failure
	Prompt *CodeGenerationPrompt

	// Error holds the failure reason when Success is false
	Error string

	// Metadata carries extracted fields, strategy name, and findings
	Metadata ProcessingMetadata
}

// ProjectContext describes the target repository for prompt assembly.
type ProjectContext struct {
	Name            string   `yaml:"name"`
	PrimaryLanguage string   `yaml:"primary_language"`
	Dependencies    []string `yaml:"dependencies"`
	DevDependencies []string `yaml:"dev_dependencies"`
	DirectoryLayout []string `yaml:"directory_layout"`
}

// CodeTemplate is a reusable code scaffold the repository offers to the
// generator. AppliesTo restricts which work item kinds may use it.
type CodeTemplate struct {
	Name      string `yaml:"name"`
	Path      string `yaml:"path"`
	Content   string `yaml:"content"`
	AppliesTo []Kind `yaml:"applies_to"`
}

// AppliesToKind reports whether the template declares the given kind.
func (t CodeTemplate) AppliesToKind(kind Kind) bool {
	for _, k := range t.AppliesTo {
		if k == kind {
			return true
		}
	}
	return false
}

// CodingStandards lists the rules generated code must follow.
type CodingStandards struct {
	Linting    []string `yaml:"linting"`
	Formatting []string `yaml:"formatting"`
	Naming     []string `yaml:"naming"`
}

// RepositoryConfig is the caller-owned configuration for one target
// repository. It supplies the language, templates, and standards the prompt
// assembler folds into every generated prompt.
type RepositoryConfig struct {
	Name           string          `yaml:"name"`
	TargetLanguage string          `yaml:"target_language"`
	ProjectContext ProjectContext  `yaml:"project_context"`
	Templates      []CodeTemplate  `yaml:"templates"`
	Standards      CodingStandards `yaml:"standards"`
}

// TemplatesForKind returns the subset of templates applicable to a kind,
// preserving declaration order.
func (c RepositoryConfig) TemplatesForKind(kind Kind) []CodeTemplate {
	var out []CodeTemplate
	for _, t := range c.Templates {
		if t.AppliesToKind(kind) {
			out = append(out, t)
		}
	}
	return out
}
