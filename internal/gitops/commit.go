package gitops

import (
	"fmt"
	"strings"

	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

// fallbackTitle replaces blank work item titles in commit headlines.
const fallbackTitle = "Untitled Work Item"

// fallbackScope is used when the area path yields no usable segment.
const fallbackScope = "general"

// CommitMessage builds a conventional-commits style message for the work
// item: a typed headline, the supplied body, and a trailer referencing the
// item. The body is typically the item description or a generation summary.
func CommitMessage(item models.WorkItem, body string) string {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = fallbackTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s(%s): %s\n", commitType(item.Kind), commitScope(item.AreaPath), title)

	if body = strings.TrimSpace(body); body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nWork Item: #%d (%s)\n", item.ID, title)

	return b.String()
}

// commitType maps work item kinds onto conventional commit types.
func commitType(kind models.Kind) string {
	switch kind {
	case models.KindDefect:
		return "fix"
	case models.KindTask:
		return "task"
	case models.KindRequirement, models.KindFeature, models.KindEpic:
		return "feat"
	default:
		return "chore"
	}
}

// commitScope slugifies the last segment of the area path. Both slash and
// backslash separators appear in the wild, so it splits on either.
func commitScope(areaPath string) string {
	segments := strings.FieldsFunc(areaPath, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(segments) == 0 {
		return fallbackScope
	}

	scope := slugify(segments[len(segments)-1])
	if scope == "" {
		return fallbackScope
	}
	return scope
}
