// Package config loads tool configuration from environment variables and
// the per-repository YAML file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the environment-derived settings for the tracker and VCS
// clients. Per-repository settings are loaded separately; see
// LoadRepositoryConfig.
type Config struct {
	// GitHubToken is the personal access token for the GitHub API
	GitHubToken string

	// GitHubDomain selects a GitHub Enterprise host; empty means github.com
	GitHubDomain string

	// JiraURL is the base URL of the Jira instance
	JiraURL string

	// JiraUsername is the account email paired with the API token
	JiraUsername string

	// JiraToken is the Jira API token
	JiraToken string

	// JiraFields maps pipeline field names to Jira custom field IDs
	JiraFields JiraFieldIDs
}

// JiraFieldIDs names the Jira custom fields the work item mapper reads.
// The defaults match a stock Jira Cloud site; self-hosted instances
// override them through the JIRA_FIELD_* variables.
type JiraFieldIDs struct {
	StoryPoints        string
	Effort             string
	Severity           string
	AcceptanceCriteria string
	ReproductionSteps  string
}

// LoadConfig reads the environment into a Config. Missing variables are not
// an error here; each command validates the subset it actually needs.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.domain", "GITHUB_DOMAIN")
	v.BindEnv("jira.url", "JIRA_URL")
	v.BindEnv("jira.username", "JIRA_USERNAME")
	v.BindEnv("jira.token", "JIRA_TOKEN")
	v.BindEnv("jira.fields.story_points", "JIRA_FIELD_STORY_POINTS")
	v.BindEnv("jira.fields.effort", "JIRA_FIELD_EFFORT")
	v.BindEnv("jira.fields.severity", "JIRA_FIELD_SEVERITY")
	v.BindEnv("jira.fields.acceptance_criteria", "JIRA_FIELD_ACCEPTANCE_CRITERIA")
	v.BindEnv("jira.fields.reproduction_steps", "JIRA_FIELD_REPRODUCTION_STEPS")

	v.SetDefault("jira.fields.story_points", "customfield_10016")
	v.SetDefault("jira.fields.effort", "customfield_10024")
	v.SetDefault("jira.fields.severity", "customfield_10034")
	v.SetDefault("jira.fields.acceptance_criteria", "customfield_10009")
	v.SetDefault("jira.fields.reproduction_steps", "customfield_10040")

	cfg := &Config{
		GitHubToken:  v.GetString("github.token"),
		GitHubDomain: v.GetString("github.domain"),
		JiraURL:      v.GetString("jira.url"),
		JiraUsername: v.GetString("jira.username"),
		JiraToken:    v.GetString("jira.token"),
		JiraFields: JiraFieldIDs{
			StoryPoints:        v.GetString("jira.fields.story_points"),
			Effort:             v.GetString("jira.fields.effort"),
			Severity:           v.GetString("jira.fields.severity"),
			AcceptanceCriteria: v.GetString("jira.fields.acceptance_criteria"),
			ReproductionSteps:  v.GetString("jira.fields.reproduction_steps"),
		},
	}

	return cfg, nil
}

// ValidateJira checks that every setting the Jira client needs is present.
func (c *Config) ValidateJira() error {
	var missing []string
	if c.JiraURL == "" {
		missing = append(missing, "JIRA_URL")
	}
	if c.JiraUsername == "" {
		missing = append(missing, "JIRA_USERNAME")
	}
	if c.JiraToken == "" {
		missing = append(missing, "JIRA_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required Jira configuration: %v", missing)
	}
	return nil
}

// ValidateGitHub checks that every setting the GitHub client needs is
// present.
func (c *Config) ValidateGitHub() error {
	if c.GitHubToken == "" {
		return fmt.Errorf("missing required GitHub configuration: GITHUB_TOKEN")
	}
	return nil
}
