package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test123")
	t.Setenv("GITHUB_DOMAIN", "github.example.com")
	t.Setenv("JIRA_URL", "https://example.atlassian.net")
	t.Setenv("JIRA_USERNAME", "dev@example.com")
	t.Setenv("JIRA_TOKEN", "jira-api-token")
	t.Setenv("JIRA_FIELD_SEVERITY", "customfield_20001")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "ghp_test123", cfg.GitHubToken)
	assert.Equal(t, "github.example.com", cfg.GitHubDomain)
	assert.Equal(t, "https://example.atlassian.net", cfg.JiraURL)
	assert.Equal(t, "dev@example.com", cfg.JiraUsername)
	assert.Equal(t, "jira-api-token", cfg.JiraToken)
	assert.Equal(t, "customfield_20001", cfg.JiraFields.Severity)
}

func TestLoadConfigFieldDefaults(t *testing.T) {
	t.Setenv("JIRA_FIELD_STORY_POINTS", "")
	t.Setenv("JIRA_FIELD_EFFORT", "")
	t.Setenv("JIRA_FIELD_SEVERITY", "")
	t.Setenv("JIRA_FIELD_ACCEPTANCE_CRITERIA", "")
	t.Setenv("JIRA_FIELD_REPRODUCTION_STEPS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "customfield_10016", cfg.JiraFields.StoryPoints)
	assert.Equal(t, "customfield_10024", cfg.JiraFields.Effort)
	assert.Equal(t, "customfield_10034", cfg.JiraFields.Severity)
	assert.Equal(t, "customfield_10009", cfg.JiraFields.AcceptanceCriteria)
	assert.Equal(t, "customfield_10040", cfg.JiraFields.ReproductionSteps)
}

func TestValidateJira(t *testing.T) {
	valid := &Config{
		JiraURL:      "https://example.atlassian.net",
		JiraUsername: "dev@example.com",
		JiraToken:    "token",
	}
	assert.NoError(t, valid.ValidateJira())

	partial := &Config{JiraURL: "https://example.atlassian.net"}
	err := partial.ValidateJira()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JIRA_USERNAME")
	assert.Contains(t, err.Error(), "JIRA_TOKEN")
	assert.NotContains(t, err.Error(), "JIRA_URL")
}

func TestValidateGitHub(t *testing.T) {
	assert.NoError(t, (&Config{GitHubToken: "ghp_x"}).ValidateGitHub())

	err := (&Config{}).ValidateGitHub()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}
