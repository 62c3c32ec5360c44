package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chronosuggest/engine/internal/nlp"
	"github.com/chronosuggest/engine/internal/scheduling/application/services"
	schedulingdomain "github.com/chronosuggest/engine/internal/scheduling/domain"
)

var (
	suggestTaskType     string
	suggestDuration     int
	suggestPage         int
	suggestPageSize     int
	suggestHorizonDays  int
	suggestWorkdayStart string
	suggestWorkdayEnd   string
	suggestDaysOff      []int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <user-id>",
	Short: "Run C7 directly: rank candidate slots for a duration-only request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		userID := args[0]
		now := time.Now()

		ub, err := c.Store.Load(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("suggest requires a trained bn; run `chronosuggest bn init` first: %w", err)
		}
		if !ub.IsTrained() {
			return fmt.Errorf("bn for user %s is untrained", userID)
		}

		workdayStart, _ := parseNLPClock(suggestWorkdayStart)
		workdayEnd, _ := parseNLPClock(suggestWorkdayEnd)
		daysOff := map[int]bool{}
		for _, d := range suggestDaysOff {
			daysOff[d] = true
		}

		suggester := services.NewSlotSuggester(c.BusySource, ub.PredictSlotScore, workdayStart, workdayEnd, daysOff)
		req := schedulingdomain.SuggestionRequest{
			UserID:          userID,
			DurationMinutes: suggestDuration,
			TaskType:        nlp.TaskType(suggestTaskType),
			Page:            suggestPage,
			PageSize:        suggestPageSize,
			HorizonDays:     suggestHorizonDays,
		}

		slots, err := suggester.Suggest(cmd.Context(), req, now)
		if err != nil {
			return fmt.Errorf("suggest: %w", err)
		}

		if len(slots) == 0 {
			fmt.Println("No candidate slots found.")
			return nil
		}
		for i, s := range slots {
			fmt.Printf("%d. %s - %s (score %.2f)\n", i+1, s.ScheduledStart.Format(time.RFC3339), s.ScheduledEnd.Format(time.RFC3339), s.Score)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestTaskType, "task-type", "Meeting", "Meeting|Training|Studies")
	suggestCmd.Flags().IntVar(&suggestDuration, "duration", 60, "task duration in minutes")
	suggestCmd.Flags().IntVar(&suggestPage, "page", 1, "page number")
	suggestCmd.Flags().IntVar(&suggestPageSize, "page-size", 10, "page size")
	suggestCmd.Flags().IntVar(&suggestHorizonDays, "horizon-days", 14, "search horizon in days")
	suggestCmd.Flags().StringVar(&suggestWorkdayStart, "workday-start", "", "workday preferred start (HH:MM)")
	suggestCmd.Flags().StringVar(&suggestWorkdayEnd, "workday-end", "", "workday preferred end (HH:MM)")
	suggestCmd.Flags().IntSliceVar(&suggestDaysOff, "days-off", nil, "days off, 0=Sunday..6=Saturday")
	AddCommand(suggestCmd)
}
