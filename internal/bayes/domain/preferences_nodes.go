package domain

// Layer-1 evidence node names and their declared state sets.
const (
	NodeWorkdayWindow     = "WorkdayWindow"
	NodeFocusPeakState    = "FocusPeakState"
	NodeDaysOffPattern    = "DaysOffPattern"
	NodeFlexibilityLevel  = "FlexibilityLevel"
	NodeDeadlineBehavior  = "DeadlineBehavior"
	NodeDurationPreference = "DurationPreference"

	NodeUserPersona             = "UserPersona"
	NodeEnergyPattern           = "EnergyPattern"
	NodeTaskBatchingPreference  = "TaskBatchingPreference"
	NodePlanningHorizon         = "PlanningHorizon"
)

// PreferredTimeOfDayNode and PreferredDayTypeNode name the per-task-type
// Layer-3 prediction nodes.
func PreferredTimeOfDayNode(taskType string) string { return "PreferredTimeOfDay_" + taskType }
func PreferredDayTypeNode(taskType string) string   { return "PreferredDayType_" + taskType }

// TaskTypes enumerates the three task types Layer 3 maintains a pair of
// prediction nodes for.
var TaskTypes = []string{"Meeting", "Training", "Studies"}

var (
	workdayWindowStates     = []string{"NONE", "EARLY_BIRD", "STANDARD", "NIGHT_OWL", "FLEXIBLE"}
	focusPeakStates         = []string{"MORNING", "AFTERNOON", "EVENING", "NONE"}
	daysOffPatternStates    = []string{"NO_DAYS_OFF", "WEEKEND_ONLY", "MIXED", "HEAVY"}
	flexibilityLevelStates  = []string{"LOW", "MEDIUM", "HIGH", "UNKNOWN"}
	deadlineBehaviorStates  = []string{"EARLY", "ON_TIME", "LAST_MINUTE", "UNKNOWN"}
	durationPreferenceStates = []string{"SHORT", "MEDIUM", "LONG"}

	userPersonaStates            = []string{"STRUCTURED", "ADAPTIVE", "SPONTANEOUS", "WORKAHOLIC"}
	energyPatternStates          = []string{"FRONT_LOADED", "BALANCED", "BACK_LOADED"}
	taskBatchingPreferenceStates = []string{"PREFERS_SINGLE", "PREFERS_BATCHING"}
	planningHorizonStates        = []string{"SHORT_TERM", "MEDIUM_TERM", "LONG_TERM"}

	preferredTimeOfDayStates = []string{"MORNING", "MIDDAY", "AFTERNOON", "EVENING", "NIGHT"}
	preferredDayTypeStates   = []string{"WEEKDAY", "WEEKEND", "ANY"}
)

// BuildNetwork constructs the full three-layer network (all evidence nodes,
// all latent-trait nodes, and a PreferredTimeOfDay/PreferredDayType pair for
// every task type in TaskTypes) with uniform Layer-1 priors and the
// documented functional CPTs for Layers 2 and 3. Evidence is set separately
// by the caller (see bayes/application's evidence mappers in preferences.go).
func BuildNetwork() *Network {
	net := NewNetwork()

	mustAdd(net, NewNode(NodeWorkdayWindow, workdayWindowStates, nil, nil))
	mustAdd(net, NewNode(NodeFocusPeakState, focusPeakStates, nil, nil))
	mustAdd(net, NewNode(NodeDaysOffPattern, daysOffPatternStates, nil, nil))
	mustAdd(net, NewNode(NodeFlexibilityLevel, flexibilityLevelStates, nil, nil))
	mustAdd(net, NewNode(NodeDeadlineBehavior, deadlineBehaviorStates, nil, nil))
	mustAdd(net, NewNode(NodeDurationPreference, durationPreferenceStates, nil, nil))

	personaParents := []string{NodeFlexibilityLevel, NodeWorkdayWindow, NodeDaysOffPattern}
	personaCPT := NewFunctionalCPT(personaParents, userPersonaStates, userPersonaCPTFunc)
	mustAdd(net, NewNode(NodeUserPersona, userPersonaStates, personaParents, personaCPT))

	energyParents := []string{NodeFocusPeakState, NodeWorkdayWindow}
	energyCPT := NewFunctionalCPT(energyParents, energyPatternStates, energyPatternCPTFunc)
	mustAdd(net, NewNode(NodeEnergyPattern, energyPatternStates, energyParents, energyCPT))

	batchingParents := []string{NodeDurationPreference, NodeFlexibilityLevel}
	batchingCPT := NewFunctionalCPT(batchingParents, taskBatchingPreferenceStates, taskBatchingCPTFunc)
	mustAdd(net, NewNode(NodeTaskBatchingPreference, taskBatchingPreferenceStates, batchingParents, batchingCPT))

	horizonParents := []string{NodeDeadlineBehavior, NodeFlexibilityLevel}
	horizonCPT := NewFunctionalCPT(horizonParents, planningHorizonStates, planningHorizonCPTFunc)
	mustAdd(net, NewNode(NodePlanningHorizon, planningHorizonStates, horizonParents, horizonCPT))

	for _, taskType := range TaskTypes {
		timeParents := []string{NodeEnergyPattern, NodeUserPersona}
		timeNode := NewNode(PreferredTimeOfDayNode(taskType), preferredTimeOfDayStates, timeParents, nil)
		timeNode.CPT = NewFunctionalCPT(timeParents, preferredTimeOfDayStates, preferredTimeOfDayCPTFunc(timeNode))
		mustAdd(net, timeNode)

		dayParents := []string{NodeDaysOffPattern}
		dayNode := NewNode(PreferredDayTypeNode(taskType), preferredDayTypeStates, dayParents, nil)
		dayNode.CPT = NewFunctionalCPT(dayParents, preferredDayTypeStates, preferredDayTypeCPTFunc(dayNode))
		mustAdd(net, dayNode)
	}

	return net
}

func mustAdd(net *Network, n *Node) {
	if err := net.AddNode(n); err != nil {
		// Only reachable if BuildNetwork itself declares a duplicate name,
		// which is a programming error, not a runtime condition.
		panic(err)
	}
}

func bias(matched, state string, matchedProb float64, numStates int) float64 {
	if matched == "" {
		return 1.0 / float64(numStates)
	}
	if state == matched {
		return matchedProb
	}
	return (1 - matchedProb) / float64(numStates-1)
}

// userPersonaCPTFunc: see spec.md §4.2 "CPT contracts (functional, Layer 2)".
func userPersonaCPTFunc(state string, pv ParentValues) float64 {
	flex := pv[NodeFlexibilityLevel]
	workday := pv[NodeWorkdayWindow]
	daysOff := pv[NodeDaysOffPattern]

	matched := ""
	switch {
	case flex == "LOW" && workday == "STANDARD" && daysOff == "WEEKEND_ONLY":
		matched = "STRUCTURED"
	case flex == "MEDIUM":
		matched = "ADAPTIVE"
	case flex == "HIGH" && (workday == "FLEXIBLE" || workday == "NONE"):
		matched = "SPONTANEOUS"
	case workday == "FLEXIBLE" && daysOff == "NO_DAYS_OFF":
		matched = "WORKAHOLIC"
	}
	return bias(matched, state, 0.7, len(userPersonaStates))
}

func energyPatternCPTFunc(state string, pv ParentValues) float64 {
	focus := pv[NodeFocusPeakState]
	workday := pv[NodeWorkdayWindow]

	matched := "BALANCED"
	switch {
	case focus == "MORNING" && workday == "EARLY_BIRD":
		matched = "FRONT_LOADED"
	case focus == "EVENING" || workday == "NIGHT_OWL":
		matched = "BACK_LOADED"
	}
	return bias(matched, state, 0.7, len(energyPatternStates))
}

func taskBatchingCPTFunc(state string, pv ParentValues) float64 {
	duration := pv[NodeDurationPreference]
	flex := pv[NodeFlexibilityLevel]

	switch {
	case duration == "LONG" && flex == "LOW":
		if state == "PREFERS_BATCHING" {
			return 0.65
		}
		return 0.35
	case duration == "SHORT" && flex == "HIGH":
		if state == "PREFERS_SINGLE" {
			return 0.65
		}
		return 0.35
	default:
		return 0.5
	}
}

func planningHorizonCPTFunc(state string, pv ParentValues) float64 {
	deadline := pv[NodeDeadlineBehavior]
	flex := pv[NodeFlexibilityLevel]

	matched := "MEDIUM_TERM"
	switch {
	case deadline == "LAST_MINUTE" || flex == "HIGH":
		matched = "SHORT_TERM"
	case deadline == "EARLY" || flex == "LOW":
		matched = "LONG_TERM"
	}
	return bias(matched, state, 0.7, len(planningHorizonStates))
}

// energyPriors are the base PreferredTimeOfDay_T priors keyed on EnergyPattern.
var energyPriors = map[string]map[string]float64{
	"FRONT_LOADED": {"MORNING": 0.5, "MIDDAY": 0.2, "AFTERNOON": 0.2, "EVENING": 0.05, "NIGHT": 0.05},
	"BACK_LOADED":  {"MORNING": 0.1, "MIDDAY": 0.15, "AFTERNOON": 0.25, "EVENING": 0.4, "NIGHT": 0.1},
	"BALANCED":     {"MORNING": 0.2, "MIDDAY": 0.2, "AFTERNOON": 0.2, "EVENING": 0.2, "NIGHT": 0.2},
}

// personaTimeAdjustment is the "small persona adjustment" spec.md §4.2
// describes: a distribution over PreferredTimeOfDay_T states, contributing
// a minority weight alongside the energy-keyed base prior.
var personaTimeAdjustment = map[string]map[string]float64{
	"STRUCTURED":  {"MORNING": 0.35, "MIDDAY": 0.25, "AFTERNOON": 0.2, "EVENING": 0.15, "NIGHT": 0.05},
	"ADAPTIVE":    {"MORNING": 0.2, "MIDDAY": 0.2, "AFTERNOON": 0.2, "EVENING": 0.2, "NIGHT": 0.2},
	"SPONTANEOUS": {"MORNING": 0.1, "MIDDAY": 0.15, "AFTERNOON": 0.2, "EVENING": 0.3, "NIGHT": 0.25},
	"WORKAHOLIC":  {"MORNING": 0.3, "MIDDAY": 0.15, "AFTERNOON": 0.15, "EVENING": 0.3, "NIGHT": 0.1},
}

// TimeDistMetadataKey is the metadata key update_network_from_statistics
// attaches the learned per-task-type time-of-day histogram under.
const TimeDistMetadataKey = "time_dist"

// DayDistMetadataKey is the metadata key for the learned day-type histogram.
const DayDistMetadataKey = "day_dist"

// AverageDurationMetadataKey and MostCommonPriorityMetadataKey hold the
// scalar statistics C3 attaches alongside the two histograms; no functional
// CPT currently reads them, but they travel with the node for transparency
// and future scoring refinements.
const (
	AverageDurationMetadataKey     = "average_duration"
	MostCommonPriorityMetadataKey = "most_common_priority"
)

// preferredTimeOfDayCPTFunc blends history (when attached), the
// EnergyPattern-keyed base prior, and a persona adjustment per spec.md
// §4.2: 50/40/10 when a historical distribution is attached, 90/10
// (energy/persona) otherwise.
func preferredTimeOfDayCPTFunc(node *Node) CPTFunc {
	return func(state string, pv ParentValues) float64 {
		energy := energyPriors[pv[NodeEnergyPattern]]
		persona := personaTimeAdjustment[pv[NodeUserPersona]]
		if energy == nil {
			energy = energyPriors["BALANCED"]
		}
		if persona == nil {
			persona = personaTimeAdjustment["ADAPTIVE"]
		}
		if raw, ok := node.Metadata(TimeDistMetadataKey); ok {
			if hist, ok := raw.(map[string]float64); ok && len(hist) > 0 {
				return 0.5*hist[state] + 0.4*energy[state] + 0.1*persona[state]
			}
		}
		return 0.9*energy[state] + 0.1*persona[state]
	}
}

// dayPatternPriors are the base PreferredDayType_T priors keyed on DaysOffPattern.
var dayPatternPriors = map[string]map[string]float64{
	"NO_DAYS_OFF":  {"WEEKDAY": 0.5, "WEEKEND": 0.2, "ANY": 0.3},
	"WEEKEND_ONLY": {"WEEKDAY": 0.6, "WEEKEND": 0.1, "ANY": 0.3},
	"MIXED":        {"WEEKDAY": 0.4, "WEEKEND": 0.3, "ANY": 0.3},
	"HEAVY":        {"WEEKDAY": 0.3, "WEEKEND": 0.4, "ANY": 0.3},
}

// preferredDayTypeCPTFunc blends the DaysOffPattern-keyed prior with the
// learned day-type histogram 40/60 (prior/history) once history exists.
func preferredDayTypeCPTFunc(node *Node) CPTFunc {
	return func(state string, pv ParentValues) float64 {
		prior := dayPatternPriors[pv[NodeDaysOffPattern]]
		if prior == nil {
			prior = dayPatternPriors["MIXED"]
		}
		if raw, ok := node.Metadata(DayDistMetadataKey); ok {
			if hist, ok := raw.(map[string]float64); ok && len(hist) > 0 {
				return 0.6*hist[state] + 0.4*prior[state]
			}
		}
		return prior[state]
	}
}
