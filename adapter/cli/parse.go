package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chronosuggest/engine/internal/nlp"
)

var parseReferenceTime string

var parseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Parse free text into a structured scheduling intent",
	Long: `Parse runs C1: the deterministic NLP intent extractor.

Examples:
  chronosuggest parse "study for the exam tomorrow at 3pm for 2 hours"
  chronosuggest parse "high priority meeting next monday" --now 2025-11-27T10:00:00Z`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		if parseReferenceTime != "" {
			t, err := time.Parse(time.RFC3339, parseReferenceTime)
			if err != nil {
				return fmt.Errorf("invalid --now value, use RFC3339: %w", err)
			}
			now = t
		}

		intent := nlp.Parse(strings.Join(args, " "), now)
		printIntent(intent)
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseReferenceTime, "now", "", "reference clock for relative dates (RFC3339, default: system time)")
	AddCommand(parseCmd)
}

func printIntent(intent *nlp.Intent) {
	fmt.Printf("Title:        %s\n", intent.Title)
	fmt.Printf("Task type:    %s\n", intent.TaskType)
	fmt.Printf("Priority:     %s\n", intent.Priority)
	if intent.DueDateTime != nil {
		fmt.Printf("Due:          %s\n", intent.DueDateTime.Format(time.RFC3339))
	}
	if intent.DurationMinutes != nil {
		fmt.Printf("Duration:     %d minutes\n", *intent.DurationMinutes)
	}
	if intent.WindowStart != nil && intent.WindowEnd != nil {
		fmt.Printf("Window:       %s - %s\n", intent.WindowStart.Format(time.RFC3339), intent.WindowEnd.Format(time.RFC3339))
	}
	if intent.PreferredTimeOfDay != nil {
		fmt.Printf("Preferred time: %02d:%02d\n", intent.PreferredTimeOfDay.Hour, intent.PreferredTimeOfDay.Minute)
	}
	fmt.Printf("Critical fields: date=%v time=%v duration=%v (all present=%v)\n",
		intent.CriticalFields.HasDate, intent.CriticalFields.HasTime, intent.CriticalFields.HasDuration,
		intent.CriticalFields.AllPresent())
}
