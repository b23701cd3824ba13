package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

// DefaultRepositoryConfigFile is the conventional name of the
// per-repository configuration file at the target repository root.
const DefaultRepositoryConfigFile = "rendimento.yaml"

// LoadRepositoryConfig reads, defaults, and validates the per-repository
// YAML configuration that prompt assembly folds into every generated
// prompt.
func LoadRepositoryConfig(path string) (*models.RepositoryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading repository config: %w", err)
	}

	var cfg models.RepositoryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing repository config %s: %w", path, err)
	}

	applyRepositoryDefaults(&cfg)
	if err := ValidateRepositoryConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid repository config %s: %w", path, err)
	}

	return &cfg, nil
}

// applyRepositoryDefaults fills the fields that can be derived from the
// project context instead of being spelled out.
func applyRepositoryDefaults(cfg *models.RepositoryConfig) {
	if cfg.Name == "" {
		cfg.Name = cfg.ProjectContext.Name
	}
	if cfg.TargetLanguage == "" {
		cfg.TargetLanguage = cfg.ProjectContext.PrimaryLanguage
	}
}

// ValidateRepositoryConfig rejects configurations the pipeline cannot use:
// a missing name, a missing target language, or templates that are
// incomplete or scoped to unknown work item kinds.
func ValidateRepositoryConfig(cfg *models.RepositoryConfig) error {
	if cfg.Name == "" {
		return fmt.Errorf("name is required (or set project_context.name)")
	}
	if cfg.TargetLanguage == "" {
		return fmt.Errorf("target_language is required (or set project_context.primary_language)")
	}

	for i, tmpl := range cfg.Templates {
		if tmpl.Name == "" {
			return fmt.Errorf("templates[%d]: name is required", i)
		}
		if tmpl.Path == "" && tmpl.Content == "" {
			return fmt.Errorf("template %q: either path or content is required", tmpl.Name)
		}
		for _, kind := range tmpl.AppliesTo {
			if _, err := models.ParseKind(string(kind)); err != nil {
				return fmt.Errorf("template %q: %w", tmpl.Name, err)
			}
		}
	}

	return nil
}
