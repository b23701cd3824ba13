package workitem

import (
	"reflect"
	"strings"
	"testing"

	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

func TestExtractUserRole(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantRole    string
		wantFound   bool
	}{
		{
			name:        "as a role with comma",
			description: "As a customer, I want to filter products by price.",
			wantRole:    "customer",
			wantFound:   true,
		},
		{
			name:        "as an with I want continuation",
			description: "as an admin I want to suspend accounts",
			wantRole:    "admin",
			wantFound:   true,
		},
		{
			name:        "multi word role",
			description: "As a site administrator, I want audit logs.",
			wantRole:    "site administrator",
			wantFound:   true,
		},
		{
			name:        "keyword fallback",
			description: "The developer needs a sandbox environment.",
			wantRole:    "developer",
			wantFound:   true,
		},
		{
			name:        "administrator not shadowed by admin",
			description: "Give the administrator a bulk delete action.",
			wantRole:    "administrator",
			wantFound:   true,
		},
		{
			name:        "no role",
			description: "Add price filtering to the catalog page.",
			wantFound:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, found := extractUserRole(tt.description)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if found && role != tt.wantRole {
				t.Errorf("role = %q, want %q", role, tt.wantRole)
			}
		})
	}
}

func TestBusinessValueFirstMatchWins(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
		wantFound   bool
	}{
		{
			name:        "so that",
			description: "I want filters so that I can find affordable items quickly.",
			want:        "I can find affordable items quickly",
			wantFound:   true,
		},
		{
			name:        "in order to",
			description: "Add caching in order to reduce page load times.",
			want:        "reduce page load times",
			wantFound:   true,
		},
		{
			name:        "so that beats bare to",
			description: "I want to filter products so that I save time.",
			want:        "I save time",
			wantFound:   true,
		},
		{
			name:        "bare to as last resort",
			description: "We need this to keep customers happy.",
			want:        "keep customers happy",
			wantFound:   true,
		},
		{
			name:        "nothing",
			description: "Price filtering on the catalog page.",
			wantFound:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := firstSubmatch(tt.description, businessValuePatterns)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if found && got != tt.want {
				t.Errorf("value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGherkinSegments(t *testing.T) {
	criteria := "Given a product list\n" +
		"When the customer applies a price filter\n" +
		"Then only matching products remain"

	segments := gherkinSegments(criteria)
	want := []map[string]string{
		{"keyword": "given", "text": "a product list"},
		{"keyword": "when", "text": "the customer applies a price filter"},
		{"keyword": "then", "text": "only matching products remain"},
	}

	if !reflect.DeepEqual(segments, want) {
		t.Errorf("segments = %v, want %v", segments, want)
	}
}

func TestExtractRequirementAcceptanceCriteriaShapes(t *testing.T) {
	base := validRequirementItem()

	t.Run("gherkin", func(t *testing.T) {
		fields, err := extractRequirement(base)
		if err != nil {
			t.Fatal(err)
		}
		criteria := fields["acceptanceCriteria"].(map[string]any)
		if criteria["format"] != "gherkin" {
			t.Errorf("format = %v, want gherkin", criteria["format"])
		}
		if len(criteria["segments"].([]map[string]string)) != 3 {
			t.Errorf("want 3 gherkin segments, got %v", criteria["segments"])
		}
	})

	t.Run("bulleted", func(t *testing.T) {
		item := base
		item.AcceptanceCriteria = "- filter by minimum price\n- filter by maximum price"
		fields, err := extractRequirement(item)
		if err != nil {
			t.Fatal(err)
		}
		criteria := fields["acceptanceCriteria"].(map[string]any)
		if criteria["format"] != "bulleted" {
			t.Errorf("format = %v, want bulleted", criteria["format"])
		}
		items := criteria["items"].([]string)
		if len(items) != 2 || items[0] != "filter by minimum price" {
			t.Errorf("items = %v", items)
		}
	})

	t.Run("freeform", func(t *testing.T) {
		item := base
		item.AcceptanceCriteria = "Filtering works for every price range."
		fields, err := extractRequirement(item)
		if err != nil {
			t.Fatal(err)
		}
		criteria := fields["acceptanceCriteria"].(map[string]any)
		if criteria["format"] != "freeform" {
			t.Errorf("format = %v, want freeform", criteria["format"])
		}
		if criteria["text"] != "Filtering works for every price range." {
			t.Errorf("text = %v", criteria["text"])
		}
	})

	t.Run("absent", func(t *testing.T) {
		item := base
		item.AcceptanceCriteria = "   "
		fields, err := extractRequirement(item)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := fields["acceptanceCriteria"]; ok {
			t.Error("blank acceptance criteria still produced a field")
		}
	})
}

func TestFunctionalRequirementsSeededAndDerived(t *testing.T) {
	item := validRequirementItem()
	fields, err := extractRequirement(item)
	if err != nil {
		t.Fatal(err)
	}

	requirements := fields["functionalRequirements"].([]string)
	want := []string{
		"Implement: Filter products by price",
		"the customer applies a price filter",
	}
	if !reflect.DeepEqual(requirements, want) {
		t.Errorf("functionalRequirements = %v, want %v", requirements, want)
	}
}

func TestRequirementPriority(t *testing.T) {
	tests := []struct {
		name string
		item models.WorkItem
		want string
	}{
		{
			name: "top priority alone is medium",
			item: models.WorkItem{Priority: 1},
			want: "medium",
		},
		{
			name: "top priority with urgent tag is high",
			item: models.WorkItem{Priority: 1, Tags: []string{"urgent"}},
			want: "high",
		},
		{
			name: "tag matches as substring",
			item: models.WorkItem{Priority: 1, Tags: []string{"release-blocker-q3"}},
			want: "high",
		},
		{
			name: "small story bumps the score",
			item: models.WorkItem{
				Priority:     2,
				CustomFields: map[string]any{models.FieldStoryPoints: 2.0},
			},
			want: "medium",
		},
		{
			name: "low priority no signals",
			item: models.WorkItem{Priority: 4},
			want: "low",
		},
		{
			name: "large story does not bump",
			item: models.WorkItem{
				Priority:     3,
				CustomFields: map[string]any{models.FieldStoryPoints: 8.0},
			},
			want: "low",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := requirementPriority(tt.item); got != tt.want {
				t.Errorf("requirementPriority() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateRequirement(t *testing.T) {
	t.Run("missing criteria warns", func(t *testing.T) {
		item := validRequirementItem()
		item.AcceptanceCriteria = ""
		findings := validateRequirement(item)

		if len(findings) == 0 {
			t.Fatal("no findings for missing acceptance criteria")
		}
		if findings[0].Field != "acceptanceCriteria" || findings[0].Severity != models.SeverityWarning {
			t.Errorf("finding = %+v, want acceptanceCriteria warning", findings[0])
		}
	})

	t.Run("unstructured criteria is advisory", func(t *testing.T) {
		item := validRequirementItem()
		item.AcceptanceCriteria = "It just has to work for all prices."
		findings := validateRequirement(item)

		if len(findings) != 1 || findings[0].Severity != models.SeverityInfo {
			t.Errorf("findings = %+v, want a single info finding", findings)
		}
	})

	t.Run("missing role is advisory", func(t *testing.T) {
		item := validRequirementItem()
		item.Description = "Add price filtering to the catalog page."
		findings := validateRequirement(item)

		found := false
		for _, f := range findings {
			if f.Field == "description" && f.Severity == models.SeverityInfo {
				found = true
			}
		}
		if !found {
			t.Errorf("findings = %+v, want a role suggestion", findings)
		}
	})

	t.Run("well formed story has no advisories", func(t *testing.T) {
		if findings := validateRequirement(validRequirementItem()); len(findings) != 0 {
			t.Errorf("findings = %+v, want none", findings)
		}
	})
}

func TestRequirementInstructions(t *testing.T) {
	item := validRequirementItem()
	fields, err := extractRequirement(item)
	if err != nil {
		t.Fatal(err)
	}

	instructions := requirementInstructions(item, fields)

	if len(instructions.Requirements) != 2 {
		t.Errorf("requirements = %v, want 2 entries", instructions.Requirements)
	}
	for _, want := range []string{"customer", "Business priority:", "acceptance criterion"} {
		if !strings.Contains(instructions.StylePreferences, want) {
			t.Errorf("style preferences %q missing %q", instructions.StylePreferences, want)
		}
	}
}
