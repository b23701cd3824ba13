// Package cmd provides the command-line interface for the rendimento tool.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wasilva/rendimento-code-generator/internal/config"
	"github.com/wasilva/rendimento-code-generator/internal/logging"
	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

var rootCmd = &cobra.Command{
	Use:   "rendimento",
	Short: "Turn tracker work items into code generation prompts",
	Long: `rendimento fetches a work item from the issue tracker, validates that it
carries enough signal for automated code generation, extracts structured
fields with kind-specific strategies, and assembles a code generation
prompt enriched with the target repository's context, templates, and
coding standards.

It can also derive the branch name and commit message for the generated
change and open a draft pull request for review.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Persistent flags that are available to all commands
	rootCmd.PersistentFlags().StringP("repository", "r", "", "GitHub repository name (e.g., 'username/repo')")
	rootCmd.PersistentFlags().String("repo-config", "", "path to the repository configuration file")
}

// loadRepositoryConfig resolves the repository configuration: an explicit
// path must load, the conventional file is picked up when present, and
// otherwise generation runs with an empty configuration.
func loadRepositoryConfig(path string) (models.RepositoryConfig, error) {
	if path != "" {
		cfg, err := config.LoadRepositoryConfig(path)
		if err != nil {
			return models.RepositoryConfig{}, err
		}
		return *cfg, nil
	}

	if _, err := os.Stat(config.DefaultRepositoryConfigFile); err == nil {
		cfg, err := config.LoadRepositoryConfig(config.DefaultRepositoryConfigFile)
		if err != nil {
			return models.RepositoryConfig{}, err
		}
		return *cfg, nil
	}

	logging.Debug("no repository config found, continuing without one")
	return models.RepositoryConfig{}, nil
}
