package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/wasilva/rendimento-code-generator/internal/jira"
	"github.com/wasilva/rendimento-code-generator/internal/workitem"
	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <work-item-key>",
	Short: "Validate a work item and preview its extracted fields",
	Long: `Analyze fetches the work item and reports every validation finding,
including the advisory ones that would not block generation. When the
item passes validation it also previews the fields the extraction
strategy would produce, without assembling a prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, err := cmd.Flags().GetBool("strict")
		if err != nil {
			return err
		}

		trk, err := jira.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %v", err)
		}
		return runAnalysis(cmd, trk, args[0], strict)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("strict", false, "fail when warnings are present")
}

func runAnalysis(cmd *cobra.Command, trk tracker, key string, strict bool) error {
	item, err := trk.GetWorkItem(key)
	if err != nil {
		return fmt.Errorf("failed to fetch work item %s: %w", key, err)
	}

	findings, err := workitem.Validate(*item)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Work item %s (%s): %s\n", item.Key, item.Kind, item.Title)
	renderFindings(out, findings)

	if models.HasBlockingFindings(findings) {
		return fmt.Errorf("work item %s is not ready for generation", key)
	}

	strategy, err := workitem.Resolve(item.Kind)
	if err != nil {
		return err
	}
	fields, err := strategy.Extract(*item)
	if err != nil {
		return fmt.Errorf("extraction preview failed for %s: %v", key, err)
	}
	fmt.Fprintf(out, "\nExtracted fields (%s strategy):\n", strategy.Name)
	renderFields(out, fields)

	if strict && hasWarnings(findings) {
		return fmt.Errorf("work item %s has warnings", key)
	}
	return nil
}

func hasWarnings(findings []models.ValidationFinding) bool {
	for _, f := range findings {
		if f.Severity == models.SeverityWarning {
			return true
		}
	}
	return false
}

func renderFindings(w io.Writer, findings []models.ValidationFinding) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"FIELD", "SEVERITY", "VALID", "MESSAGE"})
	for _, f := range findings {
		tw.AppendRow(table.Row{f.Field, string(f.Severity), f.Valid, f.Message})
	}
	tw.Render()
}

func renderFields(w io.Writer, fields map[string]any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"FIELD", "VALUE"})
	for _, k := range keys {
		tw.AppendRow(table.Row{k, fieldValue(fields[k])})
	}
	tw.Render()
}

// fieldValue renders an extracted value on a single table cell. Strings
// pass through; structured values use their JSON form, which is stable
// because encoding/json sorts map keys.
func fieldValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
