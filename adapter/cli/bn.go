package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	bnapplication "github.com/chronosuggest/engine/internal/bayes/application"
	bnpersistence "github.com/chronosuggest/engine/internal/bayes/infrastructure/persistence"
)

var bnCmd = &cobra.Command{
	Use:   "bn",
	Short: "Inspect and initialize a user's Bayesian Network (C2-C5)",
}

var (
	bnWorkdayStart string
	bnWorkdayEnd   string
	bnFocusStart   string
	bnFocusEnd     string
	bnDaysOff      []int
	bnDefaultDur   int
	bnFlexibility  string
	bnDeadline     string
)

var bnInitCmd = &cobra.Command{
	Use:   "init <user-id>",
	Short: "Initialize a user's BN from preferences (C5)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		userID := args[0]

		prefs := bnapplication.UserPreferences{
			DefaultDurationMinutes: bnDefaultDur,
			Flexibility:            bnFlexibility,
			DeadlineBehavior:       bnDeadline,
			DaysOff:                map[int]bool{},
		}
		for _, d := range bnDaysOff {
			prefs.DaysOff[d] = true
		}
		if clk, err := parseClock(bnWorkdayStart); err == nil && clk != nil {
			prefs.WorkdayPrefStart = clk
		}
		if clk, err := parseClock(bnWorkdayEnd); err == nil && clk != nil {
			prefs.WorkdayPrefEnd = clk
		}
		if clk, err := parseClock(bnFocusStart); err == nil && clk != nil {
			prefs.FocusPeakStart = clk
		}
		if clk, err := parseClock(bnFocusEnd); err == nil && clk != nil {
			prefs.FocusPeakEnd = clk
		}

		ub := c.Store.New(userID)
		if err := ub.InitializeFromPreferences(prefs); err != nil {
			return fmt.Errorf("initialize bn: %w", err)
		}
		fmt.Printf("Initialized BN for user %s (trained=%v)\n", userID, ub.IsTrained())
		return nil
	},
}

var bnStatusCmd = &cobra.Command{
	Use:   "status <user-id>",
	Short: "Show whether a user's BN is trained",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		userID := args[0]

		ub, err := c.Store.Load(cmd.Context(), userID)
		if err != nil {
			if errors.Is(err, bnpersistence.ErrNoStoredBN) {
				fmt.Printf("No stored BN for user %s\n", userID)
				return nil
			}
			return fmt.Errorf("load bn: %w", err)
		}
		fmt.Printf("User %s: trained=%v observations=%d\n", userID, ub.IsTrained(), len(ub.Observations))
		return nil
	},
}

func init() {
	bnInitCmd.Flags().StringVar(&bnWorkdayStart, "workday-start", "", "workday preferred start (HH:MM)")
	bnInitCmd.Flags().StringVar(&bnWorkdayEnd, "workday-end", "", "workday preferred end (HH:MM)")
	bnInitCmd.Flags().StringVar(&bnFocusStart, "focus-start", "", "focus peak start (HH:MM)")
	bnInitCmd.Flags().StringVar(&bnFocusEnd, "focus-end", "", "focus peak end (HH:MM)")
	bnInitCmd.Flags().IntSliceVar(&bnDaysOff, "days-off", nil, "days off, 0=Sunday..6=Saturday")
	bnInitCmd.Flags().IntVar(&bnDefaultDur, "default-duration", 60, "default task duration in minutes")
	bnInitCmd.Flags().StringVar(&bnFlexibility, "flexibility", "", "LOW|MEDIUM|HIGH")
	bnInitCmd.Flags().StringVar(&bnDeadline, "deadline-behavior", "", "EARLY|ON_TIME|LAST_MINUTE")

	bnCmd.AddCommand(bnInitCmd)
	bnCmd.AddCommand(bnStatusCmd)
	AddCommand(bnCmd)
}

func parseClock(s string) (*bnapplication.ClockTime, error) {
	if s == "" {
		return nil, nil
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return nil, fmt.Errorf("invalid time %q, use HH:MM", s)
	}
	return &bnapplication.ClockTime{Hour: h, Minute: m}, nil
}
