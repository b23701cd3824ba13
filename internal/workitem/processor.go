package workitem

import (
	"fmt"

	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

// validationFailedMessage is the fixed error recorded on results that were
// gated by validation. Callers branch on Success and read the findings from
// the metadata, so the message stays constant.
const validationFailedMessage = "Work item validation failed"

// Process runs the full pipeline for a single work item: resolve the
// strategy for its kind, validate, extract, and assemble the code
// generation prompt. Per-item problems such as failed validation or an
// extraction fault are reported inside the ProcessingResult; the returned
// error is reserved for ErrUnsupportedKind, which indicates a
// misconfiguration rather than a deficient item.
func Process(item models.WorkItem, cfg models.RepositoryConfig) (models.ProcessingResult, error) {
	return defaultRegistry.Process(item, cfg)
}

// Validate runs the common and kind-specific checks for an item without
// extracting fields or assembling a prompt.
func Validate(item models.WorkItem) ([]models.ValidationFinding, error) {
	return defaultRegistry.Validate(item)
}

// Validate implements the check-only entry point over the registry.
func (r *Registry) Validate(item models.WorkItem) ([]models.ValidationFinding, error) {
	strategy, err := r.Resolve(item.Kind)
	if err != nil {
		return nil, err
	}
	return append(validateCommon(item), strategy.Validate(item)...), nil
}

// Process implements the shared orchestration over the registry's
// strategies. See the package-level Process for the error contract.
func (r *Registry) Process(item models.WorkItem, cfg models.RepositoryConfig) (models.ProcessingResult, error) {
	strategy, err := r.Resolve(item.Kind)
	if err != nil {
		return models.ProcessingResult{}, err
	}

	findings := validateCommon(item)
	findings = append(findings, strategy.Validate(item)...)

	if models.HasBlockingFindings(findings) {
		return failureResult(validationFailedMessage, strategy.Name, findings, nil), nil
	}

	return runStrategy(strategy, item, cfg, findings), nil
}

// runStrategy executes extraction and prompt assembly under a recover
// boundary so a faulty strategy yields a failed result instead of tearing
// down the caller.
func runStrategy(strategy *Strategy, item models.WorkItem, cfg models.RepositoryConfig, findings []models.ValidationFinding) (result models.ProcessingResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = failureResult(fmt.Sprintf("extraction failed: %v", rec), strategy.Name, findings, nil)
		}
	}()

	fields, err := strategy.Extract(item)
	if err != nil {
		return failureResult(fmt.Sprintf("extraction failed: %v", err), strategy.Name, findings, nil)
	}

	prompt := &models.CodeGenerationPrompt{
		WorkItem:       item,
		TargetLanguage: cfg.TargetLanguage,
		ProjectContext: cfg.ProjectContext,
		Templates:      cfg.TemplatesForKind(item.Kind),
		Standards:      cfg.Standards,
		Instructions:   strategy.Instructions(item, fields),
	}

	return models.ProcessingResult{
		Success: true,
		Prompt:  prompt,
		Metadata: models.ProcessingMetadata{
			ExtractedFields: fields,
			Strategy:        strategy.Name,
			Findings:        findings,
		},
	}
}

func failureResult(message, strategy string, findings []models.ValidationFinding, fields map[string]any) models.ProcessingResult {
	return models.ProcessingResult{
		Success: false,
		Error:   message,
		Metadata: models.ProcessingMetadata{
			ExtractedFields: fields,
			Strategy:        strategy,
			Findings:        findings,
		},
	}
}
