// Package gitops derives git branch names and commit messages from work
// items. Both generators are pure functions so the same item always maps to
// the same branch and message.
package gitops

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

// maxBranchNameLength bounds the full branch name. Git itself allows more,
// but hosting providers and CI systems start misbehaving well before ref
// names reach pathological lengths.
const maxBranchNameLength = 250

// fallbackSlug stands in for titles that slugify to nothing.
const fallbackSlug = "work-item"

var (
	branchNamePattern = regexp.MustCompile(`^(feat|bugfix)/\d+_[a-z0-9][a-z0-9-_]*$`)

	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-_]+`)
	slugHyphenRuns   = regexp.MustCompile(`-{2,}`)
)

// BranchPrefix returns the branch namespace for a work item kind: bugfix
// for defects, feat for everything else.
func BranchPrefix(kind models.Kind) string {
	if kind == models.KindDefect {
		return "bugfix"
	}
	return "feat"
}

// BranchName builds the branch name for a work item: bugfix/<id>_<slug>
// for defects, feat/<id>_<slug> for everything else. The result always
// passes ValidateBranchName.
func BranchName(item models.WorkItem) string {
	base := fmt.Sprintf("%s/%d_", BranchPrefix(item.Kind), item.ID)
	slug := slugify(item.Title)
	if slug == "" {
		slug = fallbackSlug
	}

	if budget := maxBranchNameLength - len([]rune(base)); len([]rune(slug)) > budget {
		slug = strings.Trim(string([]rune(slug)[:budget]), "-_")
		if slug == "" {
			slug = fallbackSlug
		}
	}

	return base + slug
}

// ValidateBranchName reports whether name has the shape and length this
// package generates.
func ValidateBranchName(name string) error {
	if len([]rune(name)) > maxBranchNameLength {
		return fmt.Errorf("branch name exceeds %d characters: %q", maxBranchNameLength, name)
	}
	if !branchNamePattern.MatchString(name) {
		return fmt.Errorf("branch name %q does not match (feat|bugfix)/<id>_<slug>", name)
	}
	return nil
}

// slugify lowercases the title, replaces every run of characters outside
// [a-z0-9-_] with a hyphen, collapses hyphen runs, and trims the edges.
func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = slugHyphenRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-_")
}
