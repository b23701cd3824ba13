package jira

import (
	"testing"

	jira "github.com/andygrunwald/go-jira"

	"github.com/wasilva/rendimento-code-generator/internal/config"
	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JiraURL: "https://example.atlassian.net",
		JiraFields: config.JiraFieldIDs{
			StoryPoints:        "customfield_10016",
			Effort:             "customfield_10024",
			Severity:           "customfield_10034",
			AcceptanceCriteria: "customfield_10009",
			ReproductionSteps:  "customfield_10040",
		},
	}
}

func TestMapIssueType(t *testing.T) {
	tests := []struct {
		name string
		want models.Kind
	}{
		{"Story", models.KindRequirement},
		{"User Story", models.KindRequirement},
		{"Task", models.KindTask},
		{"Sub-task", models.KindTask},
		{"Technical Task", models.KindTask},
		{"Bug", models.KindDefect},
		{"Defect", models.KindDefect},
		{"Epic", models.KindEpic},
		{"New Feature", models.KindFeature},
		{"Feature", models.KindFeature},
		{"Incident", models.Kind("Incident")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapIssueType(tt.name); got != tt.want {
				t.Errorf("mapIssueType(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestMapPriority(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"Highest", 1},
		{"Blocker", 1},
		{"Critical", 1},
		{"High", 2},
		{"Major", 2},
		{"Medium", 3},
		{"Anything", 3},
		{"Low", 4},
		{"Minor", 4},
		{"Lowest", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapPriority(tt.name); got != tt.want {
				t.Errorf("mapPriority(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestBuildWorkItem(t *testing.T) {
	issue := &jira.Issue{
		ID:  "10002",
		Key: "DEV-214",
		Fields: &jira.IssueFields{
			Summary:     "Filter products by price",
			Description: "As a customer, I want price filters so that I can find affordable items.",
			Type:        jira.IssueType{Name: "Story"},
			Status:      &jira.Status{Name: "Ready"},
			Priority:    &jira.Priority{Name: "High"},
			Assignee:    &jira.User{DisplayName: "Dana Developer"},
			Labels:      []string{"mvp", "catalog"},
			Project:     jira.Project{Key: "SHOP"},
			Components:  []*jira.Component{{Name: "Catalog"}},
			FixVersions: []*jira.FixVersion{{Name: "2026.09"}},
			Unknowns: map[string]interface{}{
				"customfield_10016": 5.0,
				"customfield_10034": map[string]interface{}{"value": "High"},
				"customfield_10009": "Given a product list\nWhen a filter is applied\nThen results narrow",
			},
		},
	}

	item := buildWorkItem(issue, testConfig())

	if item.ID != 214 {
		t.Errorf("ID = %d, want 214", item.ID)
	}
	if item.Key != "DEV-214" {
		t.Errorf("Key = %q", item.Key)
	}
	if item.Kind != models.KindRequirement {
		t.Errorf("Kind = %q, want Requirement", item.Kind)
	}
	if item.Title != "Filter products by price" {
		t.Errorf("Title = %q", item.Title)
	}
	if item.State != "Ready" {
		t.Errorf("State = %q, want Ready", item.State)
	}
	if item.Assignee != "Dana Developer" {
		t.Errorf("Assignee = %q", item.Assignee)
	}
	if item.Priority != 2 {
		t.Errorf("Priority = %d, want 2", item.Priority)
	}
	if item.AreaPath != "SHOP/Catalog" {
		t.Errorf("AreaPath = %q, want SHOP/Catalog", item.AreaPath)
	}
	if item.IterationPath != "2026.09" {
		t.Errorf("IterationPath = %q, want 2026.09", item.IterationPath)
	}
	if item.URL != "https://example.atlassian.net/browse/DEV-214" {
		t.Errorf("URL = %q", item.URL)
	}

	if item.AcceptanceCriteria == "" || item.AcceptanceCriteria[:5] != "Given" {
		t.Errorf("AcceptanceCriteria = %q, want the gherkin text", item.AcceptanceCriteria)
	}

	if severity, _ := item.CustomString(models.FieldSeverity); severity != "High" {
		t.Errorf("severity = %q, want High from the select value", severity)
	}
	if points, ok := item.CustomNumber(models.FieldStoryPoints); !ok || points != 5 {
		t.Errorf("story points = %v (%v), want 5", points, ok)
	}
	if _, ok := item.CustomNumber(models.FieldEffort); ok {
		t.Error("effort should be absent when the field is not set")
	}
}

func TestBuildWorkItemMinimalIssue(t *testing.T) {
	issue := &jira.Issue{
		ID:  "777",
		Key: "OPS-9",
		Fields: &jira.IssueFields{
			Summary: "Restart the indexer",
			Type:    jira.IssueType{Name: "Task"},
			Project: jira.Project{Key: "OPS"},
		},
	}

	item := buildWorkItem(issue, testConfig())

	if item.ID != 9 {
		t.Errorf("ID = %d, want 9", item.ID)
	}
	if item.Kind != models.KindTask {
		t.Errorf("Kind = %q, want Task", item.Kind)
	}
	if item.Priority != 3 {
		t.Errorf("Priority = %d, want the default 3", item.Priority)
	}
	if item.AreaPath != "OPS" {
		t.Errorf("AreaPath = %q, want the bare project key", item.AreaPath)
	}
	if item.CustomFields != nil {
		t.Errorf("CustomFields = %v, want nil", item.CustomFields)
	}
}

func TestItemIDFallsBackToIssueID(t *testing.T) {
	issue := &jira.Issue{ID: "10002", Key: "weird"}
	if got := itemID(issue); got != 10002 {
		t.Errorf("itemID = %d, want 10002", got)
	}
}

func TestExtractSection(t *testing.T) {
	description := "The cart drops items on save.\n" +
		"\n" +
		"## Steps to Reproduce\n" +
		"1. Add an item\n" +
		"2. Press save\n" +
		"\n" +
		"## Expected Behavior\n" +
		"The cart keeps the item."

	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{
			name:  "markdown heading",
			names: []string{"steps to reproduce", "reproduction steps"},
			want:  "1. Add an item\n2. Press save",
		},
		{
			name:  "last section runs to the end",
			names: []string{"expected behavior"},
			want:  "The cart keeps the item.",
		},
		{
			name:  "absent section",
			names: []string{"acceptance criteria"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractSection(description, tt.names...); got != tt.want {
				t.Errorf("extractSection() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractSectionWikiAndColonHeadings(t *testing.T) {
	description := "h2. Acceptance Criteria\n" +
		"- filters by minimum price\n" +
		"- filters by maximum price\n" +
		"Notes:\n" +
		"Ships behind a flag."

	got := extractSection(description, "acceptance criteria")
	want := "- filters by minimum price\n- filters by maximum price"
	if got != want {
		t.Errorf("extractSection() = %q, want %q", got, want)
	}
}

func TestCustomNumberEncodings(t *testing.T) {
	unknowns := map[string]interface{}{
		"float":  8.0,
		"string": "13",
		"junk":   "not a number",
	}

	if n, ok := customNumber(unknowns, "float"); !ok || n != 8 {
		t.Errorf("float = %v (%v)", n, ok)
	}
	if n, ok := customNumber(unknowns, "string"); !ok || n != 13 {
		t.Errorf("string = %v (%v)", n, ok)
	}
	if _, ok := customNumber(unknowns, "junk"); ok {
		t.Error("junk parsed as a number")
	}
	if _, ok := customNumber(unknowns, "absent"); ok {
		t.Error("absent field parsed as a number")
	}
	if _, ok := customNumber(unknowns, ""); ok {
		t.Error("empty field id parsed as a number")
	}
}
