package application

import (
	"github.com/chronosuggest/engine/internal/bayes/domain"
)

// TaskTypeStats accumulates the raw counts HistoricalStatistics derives its
// distributions from, for a single task type.
type TaskTypeStats struct {
	HourCounts     map[int]int            `json:"hour_counts"`
	WeekdayCounts  map[int]int            `json:"weekday_counts"`
	PriorityCounts map[string]int         `json:"priority_counts"`
	DurationSum    int                    `json:"duration_sum"`
	DurationCount  int                    `json:"duration_count"`
}

func newTaskTypeStats() *TaskTypeStats {
	return &TaskTypeStats{
		HourCounts:     make(map[int]int),
		WeekdayCounts:  make(map[int]int),
		PriorityCounts: make(map[string]int),
	}
}

// HistoricalStatistics maintains, per task type, the counts C3 derives its
// historical distributions from (see spec.md §4.3).
type HistoricalStatistics struct {
	TaskTypeCounts map[string]int            `json:"task_type_counts"`
	PerType        map[string]*TaskTypeStats `json:"per_type"`
}

// NewHistoricalStatistics constructs an empty accumulator.
func NewHistoricalStatistics() *HistoricalStatistics {
	return &HistoricalStatistics{
		TaskTypeCounts: make(map[string]int),
		PerType:        make(map[string]*TaskTypeStats),
	}
}

func (h *HistoricalStatistics) statsFor(taskType string) *TaskTypeStats {
	s, ok := h.PerType[taskType]
	if !ok {
		s = newTaskTypeStats()
		h.PerType[taskType] = s
	}
	return s
}

// AddObservation increments every count the observation contributes to.
func (h *HistoricalStatistics) AddObservation(obs Observation) {
	h.TaskTypeCounts[obs.TaskType]++
	s := h.statsFor(obs.TaskType)
	s.HourCounts[obs.ScheduledStart.Hour()]++
	s.WeekdayCounts[int(obs.ScheduledStart.Weekday())]++
	s.PriorityCounts[obs.Priority]++
	s.DurationSum += obs.DurationMinutes
	s.DurationCount++
}

// RemoveObservation decrements every count the observation contributed to,
// floored at zero (spec.md §4.3: "removing decrements, floor at zero").
func (h *HistoricalStatistics) RemoveObservation(obs Observation) {
	if h.TaskTypeCounts[obs.TaskType] > 0 {
		h.TaskTypeCounts[obs.TaskType]--
	}
	s, ok := h.PerType[obs.TaskType]
	if !ok {
		return
	}
	if s.HourCounts[obs.ScheduledStart.Hour()] > 0 {
		s.HourCounts[obs.ScheduledStart.Hour()]--
	}
	if s.WeekdayCounts[int(obs.ScheduledStart.Weekday())] > 0 {
		s.WeekdayCounts[int(obs.ScheduledStart.Weekday())]--
	}
	if s.PriorityCounts[obs.Priority] > 0 {
		s.PriorityCounts[obs.Priority]--
	}
	if s.DurationCount > 0 {
		s.DurationSum -= obs.DurationMinutes
		if s.DurationSum < 0 {
			s.DurationSum = 0
		}
		s.DurationCount--
	}
}

func timeOfDayBucket(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return "MORNING"
	case hour >= 12 && hour < 14:
		return "MIDDAY"
	case hour >= 14 && hour < 17:
		return "AFTERNOON"
	case hour >= 17 && hour < 21:
		return "EVENING"
	default:
		return "NIGHT"
	}
}

// dayTypeBucket maps a time.Weekday index (0=Sunday..6=Saturday) to its
// day type: Monday..Friday are WEEKDAY, Saturday and Sunday are WEEKEND.
func dayTypeBucket(weekday int) string {
	if weekday >= 1 && weekday <= 5 {
		return "WEEKDAY"
	}
	return "WEEKEND"
}

// TimeOfDayDistribution buckets hour counts into the five PreferredTimeOfDay_T
// states and normalizes. Returns nil if no observations exist for taskType.
func (h *HistoricalStatistics) TimeOfDayDistribution(taskType string) map[string]float64 {
	s, ok := h.PerType[taskType]
	if !ok {
		return nil
	}
	buckets := map[string]float64{"MORNING": 0, "MIDDAY": 0, "AFTERNOON": 0, "EVENING": 0, "NIGHT": 0}
	total := 0
	for hour, count := range s.HourCounts {
		buckets[timeOfDayBucket(hour)] += float64(count)
		total += count
	}
	if total == 0 {
		return nil
	}
	for k := range buckets {
		buckets[k] /= float64(total)
	}
	return buckets
}

// DayTypeDistribution buckets weekday counts into the WEEKDAY/WEEKEND/ANY
// states (ANY remains 0: it is a user-preference catch-all, never observed
// directly) and normalizes. Returns nil if no observations exist.
func (h *HistoricalStatistics) DayTypeDistribution(taskType string) map[string]float64 {
	s, ok := h.PerType[taskType]
	if !ok {
		return nil
	}
	buckets := map[string]float64{"WEEKDAY": 0, "WEEKEND": 0, "ANY": 0}
	total := 0
	for weekday, count := range s.WeekdayCounts {
		buckets[dayTypeBucket(weekday)] += float64(count)
		total += count
	}
	if total == 0 {
		return nil
	}
	for k := range buckets {
		buckets[k] /= float64(total)
	}
	return buckets
}

// AverageDuration returns Σ(duration·count)/Σcount, or 0 if no observations.
func (h *HistoricalStatistics) AverageDuration(taskType string) float64 {
	s, ok := h.PerType[taskType]
	if !ok || s.DurationCount == 0 {
		return 0
	}
	return float64(s.DurationSum) / float64(s.DurationCount)
}

// MostCommonPriority returns the argmax of priority counts, deterministically
// preferring LOW, then MEDIUM, then HIGH on ties. Returns "" if untrained.
func (h *HistoricalStatistics) MostCommonPriority(taskType string) string {
	s, ok := h.PerType[taskType]
	if !ok {
		return ""
	}
	order := []string{"LOW", "MEDIUM", "HIGH"}
	best, bestCount := "", 0
	for _, p := range order {
		if c := s.PriorityCounts[p]; c > bestCount {
			best, bestCount = p, c
		}
	}
	return best
}

// UpdateNetworkFromStatistics attaches the freshly derived time-of-day and
// day-type distributions (plus the scalar averages) to the Layer-3 nodes for
// taskType, so their functional CPTs pick up the learned blend on the next
// query (spec.md §4.3). When stats holds no observations for taskType the
// attached histograms are empty, which the CPTs treat as "no history", so a
// histogram from an earlier, larger observation set never lingers.
func UpdateNetworkFromStatistics(net *domain.Network, stats *HistoricalStatistics, taskType string) {
	timeNode := net.Node(domain.PreferredTimeOfDayNode(taskType))
	if timeNode != nil {
		timeNode.SetMetadata(domain.TimeDistMetadataKey, stats.TimeOfDayDistribution(taskType))
		timeNode.SetMetadata(domain.AverageDurationMetadataKey, stats.AverageDuration(taskType))
		timeNode.SetMetadata(domain.MostCommonPriorityMetadataKey, stats.MostCommonPriority(taskType))
	}
	dayNode := net.Node(domain.PreferredDayTypeNode(taskType))
	if dayNode != nil {
		dayNode.SetMetadata(domain.DayDistMetadataKey, stats.DayTypeDistribution(taskType))
	}
}
