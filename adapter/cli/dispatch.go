package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chronosuggest/engine/internal/nlp"
	"github.com/chronosuggest/engine/internal/scheduling/application/services"
)

var (
	dispatchWorkdayStart    string
	dispatchWorkdayEnd      string
	dispatchDaysOff         []int
	dispatchPage            int
	dispatchPageSize        int
	dispatchHorizonDays     int
	dispatchDefaultDuration int
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch <user-id> <text>",
	Short: "Parse text and route it through C9: direct creation, conflict, or suggestions",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		userID := args[0]
		text := strings.Join(args[1:], " ")
		now := time.Now()

		ub, err := c.Store.Load(cmd.Context(), userID)
		isTrained := err == nil && ub.IsTrained()
		if err != nil {
			ub = c.Store.New(userID)
		}

		intent := nlp.Parse(text, now)

		workdayStart, _ := parseNLPClock(dispatchWorkdayStart)
		workdayEnd, _ := parseNLPClock(dispatchWorkdayEnd)
		daysOff := map[int]bool{}
		for _, d := range dispatchDaysOff {
			daysOff[d] = true
		}

		dispatcher := c.BuildDispatcher(ub, workdayStart, workdayEnd, daysOff)
		result, err := dispatcher.Dispatch(cmd.Context(), userID, intent, isTrained, dispatchDefaultDuration, services.SuggestionParams{
			Page:        orDefault(dispatchPage, 1),
			PageSize:    orDefault(dispatchPageSize, c.Config.DefaultPageSize),
			HorizonDays: orDefault(dispatchHorizonDays, c.Config.DefaultHorizonDays),
		}, now)
		if err != nil {
			return fmt.Errorf("dispatch: %w", err)
		}

		printDispatchResult(result)
		return nil
	},
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func parseNLPClock(s string) (*nlp.ClockTime, error) {
	if s == "" {
		return nil, nil
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return nil, fmt.Errorf("invalid time %q, use HH:MM", s)
	}
	return &nlp.ClockTime{Hour: h, Minute: m}, nil
}

func printDispatchResult(r *services.DispatchResult) {
	fmt.Printf("Outcome: %s\n", r.Outcome)
	switch r.Outcome {
	case services.OutcomePreferencesRequired:
		fmt.Println("Run `chronosuggest bn init` for this user first.")
	case services.OutcomeCreated:
		fmt.Printf("Created: %s - %s\n", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
	case services.OutcomeConflict:
		fmt.Printf("Conflict at %s - %s against %d busy interval(s)\n", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339), len(r.Conflicts))
	case services.OutcomeSuggestions:
		fmt.Printf("%d suggestion(s):\n", len(r.Suggestions))
		for i, s := range r.Suggestions {
			fmt.Printf("  %d. %s - %s (score %.2f)\n", i+1, s.ScheduledStart.Format(time.RFC3339), s.ScheduledEnd.Format(time.RFC3339), s.Score)
		}
	}
}

func init() {
	dispatchCmd.Flags().StringVar(&dispatchWorkdayStart, "workday-start", "", "workday preferred start (HH:MM)")
	dispatchCmd.Flags().StringVar(&dispatchWorkdayEnd, "workday-end", "", "workday preferred end (HH:MM)")
	dispatchCmd.Flags().IntSliceVar(&dispatchDaysOff, "days-off", nil, "days off, 0=Sunday..6=Saturday")
	dispatchCmd.Flags().IntVar(&dispatchPage, "page", 1, "suggestion page number")
	dispatchCmd.Flags().IntVar(&dispatchPageSize, "page-size", 0, "suggestion page size (default from config)")
	dispatchCmd.Flags().IntVar(&dispatchHorizonDays, "horizon-days", 0, "suggestion search horizon in days (default from config)")
	dispatchCmd.Flags().IntVar(&dispatchDefaultDuration, "default-duration", 60, "fallback task duration in minutes when the parsed text omits one")
	AddCommand(dispatchCmd)
}
