// Package jira fetches work items from the Jira API and maps them onto the
// vendor-neutral work item model the pipeline consumes.
package jira

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	jira "github.com/andygrunwald/go-jira"

	"github.com/wasilva/rendimento-code-generator/internal/config"
	"github.com/wasilva/rendimento-code-generator/internal/logging"
	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

// Client handles interactions with the Jira API.
type Client struct {
	client *jira.Client
	cfg    *config.Config
}

// NewClient creates a Jira API client from the environment configuration.
// It fails when the Jira credentials are incomplete.
func NewClient() (*Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}
	if err := cfg.ValidateJira(); err != nil {
		return nil, err
	}

	logging.Debug("creating jira client",
		"url", cfg.JiraURL,
		"username", cfg.JiraUsername,
		"token", logging.MaskSensitive(cfg.JiraToken))

	tp := jira.BasicAuthTransport{
		Username: cfg.JiraUsername,
		Password: cfg.JiraToken,
	}
	client, err := jira.NewClient(tp.Client(), cfg.JiraURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %v", err)
	}

	return &Client{client: client, cfg: cfg}, nil
}

// GetWorkItem fetches a Jira issue and converts it into a work item.
func (c *Client) GetWorkItem(key string) (*models.WorkItem, error) {
	logging.Debug("fetching jira issue", "key", key)

	issue, _, err := c.client.Issue.Get(key, nil)
	if err != nil {
		logging.Error("failed to fetch jira issue", "key", key, "error", err)
		return nil, fmt.Errorf("failed to fetch issue %s: %v", key, err)
	}
	if issue.Fields == nil {
		return nil, fmt.Errorf("issue %s has no fields", key)
	}

	item := buildWorkItem(issue, c.cfg)
	logging.Debug("fetched work item",
		"key", item.Key,
		"kind", string(item.Kind),
		"title", item.Title)
	return item, nil
}

// AddComment posts a comment on the issue, used to report generation
// results back to the ticket.
func (c *Client) AddComment(key, body string) error {
	logging.Debug("adding jira comment", "key", key)

	_, _, err := c.client.Issue.AddComment(key, &jira.Comment{Body: body})
	if err != nil {
		logging.Error("failed to add jira comment", "key", key, "error", err)
		return fmt.Errorf("failed to comment on issue %s: %v", key, err)
	}
	return nil
}

// buildWorkItem maps a Jira issue onto the pipeline's work item model. It
// is pure so the mapping can be tested without a server.
func buildWorkItem(issue *jira.Issue, cfg *config.Config) *models.WorkItem {
	fields := issue.Fields

	item := &models.WorkItem{
		ID:          itemID(issue),
		Key:         issue.Key,
		Kind:        mapIssueType(fields.Type.Name),
		Title:       fields.Summary,
		Description: fields.Description,
		Tags:        fields.Labels,
		AreaPath:    areaPath(fields),
		URL:         browseURL(cfg.JiraURL, issue.Key),
		Priority:    3,
	}

	if fields.Status != nil {
		item.State = fields.Status.Name
	}
	if fields.Assignee != nil {
		item.Assignee = fields.Assignee.DisplayName
	}
	if fields.Priority != nil {
		item.Priority = mapPriority(fields.Priority.Name)
	}
	if len(fields.FixVersions) > 0 && fields.FixVersions[0] != nil {
		item.IterationPath = fields.FixVersions[0].Name
	}

	item.AcceptanceCriteria = customString(fields.Unknowns, cfg.JiraFields.AcceptanceCriteria)
	if item.AcceptanceCriteria == "" {
		item.AcceptanceCriteria = extractSection(fields.Description, "acceptance criteria")
	}
	item.ReproductionSteps = customString(fields.Unknowns, cfg.JiraFields.ReproductionSteps)
	if item.ReproductionSteps == "" {
		item.ReproductionSteps = extractSection(fields.Description,
			"steps to reproduce", "reproduction steps", "repro steps")
	}

	custom := map[string]any{}
	if severity := customString(fields.Unknowns, cfg.JiraFields.Severity); severity != "" {
		custom[models.FieldSeverity] = severity
	}
	if points, ok := customNumber(fields.Unknowns, cfg.JiraFields.StoryPoints); ok {
		custom[models.FieldStoryPoints] = points
	}
	if effort, ok := customNumber(fields.Unknowns, cfg.JiraFields.Effort); ok {
		custom[models.FieldEffort] = effort
	}
	if len(custom) > 0 {
		item.CustomFields = custom
	}

	return item
}

// itemID prefers the numeric part of the issue key ("DEV-214" becomes 214)
// because that is the number people see in branch names and commit
// trailers, falling back to Jira's internal issue ID.
func itemID(issue *jira.Issue) int {
	if i := strings.LastIndex(issue.Key, "-"); i >= 0 {
		if id, err := strconv.Atoi(issue.Key[i+1:]); err == nil {
			return id
		}
	}
	if id, err := strconv.Atoi(issue.ID); err == nil {
		return id
	}
	return 0
}

// mapIssueType converts a Jira issue type name into a work item kind.
// Unrecognized names pass through unchanged so the strategy registry can
// reject them by name.
func mapIssueType(name string) models.Kind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "story", "user story":
		return models.KindRequirement
	case "task", "sub-task", "subtask", "technical task":
		return models.KindTask
	case "bug", "defect":
		return models.KindDefect
	case "epic":
		return models.KindEpic
	case "new feature", "feature":
		return models.KindFeature
	default:
		return models.Kind(name)
	}
}

// mapPriority converts a Jira priority name into the 1..4 scale the
// pipeline uses, with 1 as the most urgent.
func mapPriority(name string) int {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "highest", "blocker", "critical":
		return 1
	case "high", "major":
		return 2
	case "low", "minor", "lowest", "trivial":
		return 4
	default:
		return 3
	}
}

// areaPath approximates an area path from the project key and the first
// component, e.g. "SHOP/Catalog".
func areaPath(fields *jira.IssueFields) string {
	path := fields.Project.Key
	if len(fields.Components) > 0 && fields.Components[0] != nil && fields.Components[0].Name != "" {
		if path != "" {
			path += "/"
		}
		path += fields.Components[0].Name
	}
	return path
}

func browseURL(baseURL, key string) string {
	if baseURL == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/browse/" + key
}

// customString reads a custom field as text. Jira select fields arrive as
// objects with a "value" key, so those are unwrapped too.
func customString(unknowns map[string]any, fieldID string) string {
	if fieldID == "" {
		return ""
	}
	switch v := unknowns[fieldID].(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		if s, ok := v["value"].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// customNumber reads a numeric custom field, accepting the float and
// string encodings Jira produces.
func customNumber(unknowns map[string]any, fieldID string) (float64, bool) {
	if fieldID == "" {
		return 0, false
	}
	switch v := unknowns[fieldID].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

var headingMarkerPattern = regexp.MustCompile(`^\s*(?:#{1,6}|h[1-6]\.)\s*`)

// knownSectionHeadings are the headings that terminate a section during
// fallback extraction from the description.
var knownSectionHeadings = []string{
	"acceptance criteria",
	"steps to reproduce",
	"reproduction steps",
	"repro steps",
	"expected behavior",
	"actual behavior",
	"description",
	"notes",
}

// extractSection pulls the body of a named section out of the description.
// It recognizes markdown (#) and Jira wiki (h2.) heading markers as well as
// bare "Heading:" lines, and collects until the next known heading.
func extractSection(text string, names ...string) string {
	var collected []string
	inSection := false

	for _, line := range strings.Split(text, "\n") {
		normalized := normalizeHeading(line)

		if !inSection {
			for _, name := range names {
				if normalized == name {
					inSection = true
					break
				}
			}
			continue
		}

		if isSectionHeading(line, normalized) {
			break
		}
		collected = append(collected, line)
	}

	return strings.TrimSpace(strings.Join(collected, "\n"))
}

// normalizeHeading strips heading markup and a trailing colon and
// lowercases the rest, so "## Acceptance Criteria:" compares equal to
// "acceptance criteria".
func normalizeHeading(line string) string {
	s := headingMarkerPattern.ReplaceAllString(line, "")
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ":"))
	return strings.ToLower(s)
}

func isSectionHeading(line, normalized string) bool {
	if headingMarkerPattern.MatchString(line) && strings.TrimSpace(line) != "" {
		return true
	}
	for _, heading := range knownSectionHeadings {
		if normalized == heading {
			return true
		}
	}
	return false
}
