package models

import (
	"fmt"
	"strings"
)

// PromptInstructions is the instruction bundle a strategy derives from the
// extracted fields of a work item.
type PromptInstructions struct {
	// Requirements are imperative statements the generated code must satisfy
	Requirements []string

	// DesignPatterns are patterns the generator should favor
	DesignPatterns []string

	// PreferredLibraries are libraries the generator should reach for first
	PreferredLibraries []string

	// StylePreferences is free-text guidance on implementation style
	StylePreferences string
}

// CodeGenerationPrompt is the structured instruction bundle handed to the
// downstream code generation collaborator.
type CodeGenerationPrompt struct {
	// WorkItem is the item the prompt was generated for
	WorkItem WorkItem

	// TargetLanguage is the language the generated code must be written in
	TargetLanguage string

	// ProjectContext describes the repository receiving the change
	ProjectContext ProjectContext

	// Templates is the subset of repository templates applicable to the
	// item's kind
	Templates []CodeTemplate

	// Standards are the repository coding standards
	Standards CodingStandards

	// Instructions is the strategy-derived instruction bundle
	Instructions PromptInstructions
}

// Render produces the textual form of the prompt. Output is deterministic:
// identical prompts render to byte-identical text.
func (p *CodeGenerationPrompt) Render() string {
	var b strings.Builder

	item := p.WorkItem
	fmt.Fprintf(&b, "# Code Generation Request: %s #%d\n\n", item.Kind, item.ID)
	fmt.Fprintf(&b, "## Work Item\n\n")
	fmt.Fprintf(&b, "- Title: %s\n", item.Title)
	fmt.Fprintf(&b, "- Kind: %s\n", item.Kind)
	fmt.Fprintf(&b, "- Area: %s\n", item.AreaPath)
	if item.IterationPath != "" {
		fmt.Fprintf(&b, "- Iteration: %s\n", item.IterationPath)
	}
	fmt.Fprintf(&b, "- Priority: %d\n", item.Priority)
	if len(item.Tags) > 0 {
		fmt.Fprintf(&b, "- Tags: %s\n", strings.Join(item.Tags, ", "))
	}
	if item.Description != "" {
		fmt.Fprintf(&b, "\n### Description\n\n%s\n", strings.TrimSpace(item.Description))
	}
	if item.AcceptanceCriteria != "" {
		fmt.Fprintf(&b, "\n### Acceptance Criteria\n\n%s\n", strings.TrimSpace(item.AcceptanceCriteria))
	}
	if item.ReproductionSteps != "" {
		fmt.Fprintf(&b, "\n### Reproduction Steps\n\n%s\n", strings.TrimSpace(item.ReproductionSteps))
	}

	fmt.Fprintf(&b, "\n## Project\n\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.ProjectContext.Name)
	fmt.Fprintf(&b, "- Primary language: %s\n", p.ProjectContext.PrimaryLanguage)
	fmt.Fprintf(&b, "- Target language: %s\n", p.TargetLanguage)
	writeList(&b, "Dependencies", p.ProjectContext.Dependencies)
	writeList(&b, "Dev dependencies", p.ProjectContext.DevDependencies)
	writeList(&b, "Directory layout", p.ProjectContext.DirectoryLayout)

	fmt.Fprintf(&b, "\n## Requirements\n\n")
	if len(p.Instructions.Requirements) == 0 {
		b.WriteString("(none extracted)\n")
	}
	for i, r := range p.Instructions.Requirements {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}

	if len(p.Instructions.DesignPatterns) > 0 {
		fmt.Fprintf(&b, "\n## Recommended Design Patterns\n\n")
		for _, d := range p.Instructions.DesignPatterns {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}

	if len(p.Instructions.PreferredLibraries) > 0 {
		fmt.Fprintf(&b, "\n## Preferred Libraries\n\n")
		for _, l := range p.Instructions.PreferredLibraries {
			fmt.Fprintf(&b, "- %s\n", l)
		}
	}

	if p.Instructions.StylePreferences != "" {
		fmt.Fprintf(&b, "\n## Style Preferences\n\n%s\n", p.Instructions.StylePreferences)
	}

	if len(p.Standards.Linting)+len(p.Standards.Formatting)+len(p.Standards.Naming) > 0 {
		fmt.Fprintf(&b, "\n## Coding Standards\n")
		writeList(&b, "Linting", p.Standards.Linting)
		writeList(&b, "Formatting", p.Standards.Formatting)
		writeList(&b, "Naming", p.Standards.Naming)
	}

	if len(p.Templates) > 0 {
		fmt.Fprintf(&b, "\n## Applicable Templates\n")
		for _, t := range p.Templates {
			fmt.Fprintf(&b, "\n### %s", t.Name)
			if t.Path != "" {
				fmt.Fprintf(&b, " (%s)", t.Path)
			}
			b.WriteString("\n")
			if t.Content != "" {
				fmt.Fprintf(&b, "\n```\n%s\n```\n", strings.TrimRight(t.Content, "\n"))
			}
		}
	}

	return b.String()
}

// writeList writes a named sub-list, skipping empty lists entirely.
func writeList(b *strings.Builder, name string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", name)
	for _, it := range items {
		fmt.Fprintf(b, "  - %s\n", it)
	}
}
