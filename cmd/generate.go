package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/wasilva/rendimento-code-generator/internal/github"
	"github.com/wasilva/rendimento-code-generator/internal/gitops"
	"github.com/wasilva/rendimento-code-generator/internal/jira"
	"github.com/wasilva/rendimento-code-generator/internal/logging"
	"github.com/wasilva/rendimento-code-generator/internal/workitem"
	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

// tracker is the slice of the Jira client the commands depend on.
type tracker interface {
	GetWorkItem(key string) (*models.WorkItem, error)
	AddComment(key, body string) error
}

// vcs is the slice of the GitHub client the generate command depends on.
type vcs interface {
	GetDefaultBranch(repository string) (string, error)
	CreateBranch(repository, branchName, baseBranch string) error
	CreatePullRequest(repository string, params github.PullRequestParams) (*github.PullRequest, error)
	AddLabels(repository string, number int, labels ...string) error
}

type generateOptions struct {
	Repository string
	Output     string
	BaseBranch string
	CreatePR   bool
	Comment    bool
	RunID      string
}

var generateCmd = &cobra.Command{
	Use:   "generate <work-item-key>",
	Short: "Generate a code generation prompt for a work item",
	Long: `Generate fetches the work item, validates it, runs the kind-specific
extraction strategy, and prints the assembled code generation prompt.

With --create-pr it also creates the work branch and opens a draft pull
request carrying the prompt as its body. With --comment it posts a run
summary back to the work item.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := collectGenerateOptions(cmd)
		if err != nil {
			return err
		}

		if opts.CreatePR && opts.Repository == "" {
			return fmt.Errorf("repository flag is required with --create-pr")
		}

		repoConfigPath, err := cmd.Flags().GetString("repo-config")
		if err != nil {
			return err
		}
		repoCfg, err := loadRepositoryConfig(repoConfigPath)
		if err != nil {
			return err
		}

		trk, err := jira.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %v", err)
		}

		var vc vcs
		if opts.CreatePR {
			client, err := github.NewClient()
			if err != nil {
				return fmt.Errorf("failed to initialize github client: %v", err)
			}
			vc = client
		}

		return runGeneration(cmd, trk, vc, args[0], opts, repoCfg)
	},
}

func collectGenerateOptions(cmd *cobra.Command) (generateOptions, error) {
	opts := generateOptions{RunID: uuid.NewString()}

	var err error
	if opts.Repository, err = cmd.Flags().GetString("repository"); err != nil {
		return opts, err
	}
	if opts.Output, err = cmd.Flags().GetString("output"); err != nil {
		return opts, err
	}
	if opts.BaseBranch, err = cmd.Flags().GetString("base"); err != nil {
		return opts, err
	}
	if opts.CreatePR, err = cmd.Flags().GetBool("create-pr"); err != nil {
		return opts, err
	}
	if opts.Comment, err = cmd.Flags().GetBool("comment"); err != nil {
		return opts, err
	}
	return opts, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("output", "o", "", "write the rendered prompt to a file instead of stdout")
	generateCmd.Flags().String("base", "", "base branch for --create-pr (defaults to the repository default branch)")
	generateCmd.Flags().Bool("create-pr", false, "create the work branch and open a draft pull request")
	generateCmd.Flags().Bool("comment", false, "post a run summary comment on the work item")
}

func runGeneration(cmd *cobra.Command, trk tracker, vc vcs, key string, opts generateOptions, repoCfg models.RepositoryConfig) error {
	log := logging.With("run_id", opts.RunID, "work_item", key)
	log.Info("starting generation run")

	item, err := trk.GetWorkItem(key)
	if err != nil {
		return fmt.Errorf("failed to fetch work item %s: %w", key, err)
	}

	result, err := workitem.Process(*item, repoCfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !result.Success {
		fmt.Fprintf(out, "Work item %s cannot be processed: %s\n", key, result.Error)
		renderFindings(out, result.Metadata.Findings)
		if opts.Comment {
			if cerr := trk.AddComment(key, failureComment(key, result, opts.RunID)); cerr != nil {
				log.Warn("failed to comment on work item", "error", cerr)
			}
		}
		return fmt.Errorf("work item %s failed validation", key)
	}

	prompt := result.Prompt.Render()
	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(prompt), 0o644); err != nil {
			return fmt.Errorf("failed to write prompt to %s: %v", opts.Output, err)
		}
		fmt.Fprintf(out, "Wrote prompt to %s\n", opts.Output)
	} else {
		fmt.Fprintln(out, prompt)
	}

	branch := gitops.BranchName(*item)
	message := gitops.CommitMessage(*item, item.Description)

	renderRunSummary(out, *item, result, branch, opts.RunID)
	fmt.Fprintf(out, "\nSuggested commit message:\n\n%s", message)

	var pr *github.PullRequest
	if opts.CreatePR {
		pr, err = openPullRequest(vc, opts, *item, branch, message, prompt)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nOpened draft pull request #%d: %s\n", pr.Number, pr.URL)
	}

	if opts.Comment {
		if err := trk.AddComment(key, successComment(opts.RunID, branch, pr)); err != nil {
			return fmt.Errorf("failed to comment on work item %s: %v", key, err)
		}
	}

	log.Info("generation run finished", "branch", branch)
	return nil
}

// openPullRequest creates the work branch and opens a draft pull request
// whose body is the rendered prompt.
func openPullRequest(vc vcs, opts generateOptions, item models.WorkItem, branch, message, prompt string) (*github.PullRequest, error) {
	base := opts.BaseBranch
	if base == "" {
		var err error
		base, err = vc.GetDefaultBranch(opts.Repository)
		if err != nil {
			return nil, err
		}
	}

	if err := vc.CreateBranch(opts.Repository, branch, base); err != nil {
		return nil, err
	}

	headline := strings.SplitN(message, "\n", 2)[0]
	pr, err := vc.CreatePullRequest(opts.Repository, github.PullRequestParams{
		Title: headline,
		Head:  branch,
		Base:  base,
		Body:  prompt,
		Draft: true,
	})
	if err != nil {
		return nil, err
	}

	if err := vc.AddLabels(opts.Repository, pr.Number, "rendimento", strings.ToLower(string(item.Kind))); err != nil {
		logging.Warn("failed to label pull request", "number", pr.Number, "error", err)
	}
	return pr, nil
}

func renderRunSummary(w io.Writer, item models.WorkItem, result models.ProcessingResult, branch, runID string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"WORK ITEM", "KIND", "STRATEGY", "BRANCH", "RUN ID"})
	tw.AppendRow(table.Row{item.Key, string(item.Kind), result.Metadata.Strategy, branch, runID})
	tw.Render()
}

func successComment(runID, branch string, pr *github.PullRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "rendimento run %s generated a prompt for this work item.\n", runID)
	fmt.Fprintf(&b, "Suggested branch: %s\n", branch)
	if pr != nil {
		fmt.Fprintf(&b, "Draft pull request: %s\n", pr.URL)
	}
	return b.String()
}

func failureComment(key string, result models.ProcessingResult, runID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "rendimento run %s could not process %s: %s\n", runID, key, result.Error)
	for _, f := range result.Metadata.Findings {
		if f.Severity == models.SeverityError {
			fmt.Fprintf(&b, "- %s: %s\n", f.Field, f.Message)
		}
	}
	return b.String()
}
