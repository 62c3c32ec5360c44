package application

import (
	"time"

	"github.com/chronosuggest/engine/internal/bayes/domain"
)

// Repository is the persistence port C5 calls after every mutation (C4).
// Implementations own atomicity; UserBN only calls Save at the right times.
type Repository interface {
	Save(ub *UserBN) error
}

// UserBN is the per-user BN facade (C5): one graph, one observation list,
// one statistics accumulator.
type UserBN struct {
	UserID       string
	Net          *domain.Network
	Evidence     map[string]string
	Observations []Observation
	Stats        *HistoricalStatistics
	trained      bool

	repo Repository
}

// NewUserBN constructs an untrained facade. repo may be nil (e.g. in tests);
// a nil repo makes every persist step a no-op.
func NewUserBN(userID string, repo Repository) *UserBN {
	return &UserBN{
		UserID: userID,
		Stats:  NewHistoricalStatistics(),
		repo:   repo,
	}
}

// IsTrained reports whether the graph has been initialized from preferences
// at least once (spec.md §4.5).
func (ub *UserBN) IsTrained() bool { return ub.trained }

// RehydrateUserBN reconstructs a trained facade from persisted state (C4
// load path): the network structure is rebuilt deterministically via
// domain.BuildNetwork, evidence is reapplied, and statistics are rebuilt by
// replaying every observation (spec.md §4.3: "the only recovery path from a
// corrupted statistics accumulator").
func RehydrateUserBN(userID string, evidence map[string]string, observations []Observation, repo Repository) *UserBN {
	net := domain.BuildNetwork()
	for node, state := range evidence {
		net.SetEvidence(node, state)
	}

	ub := &UserBN{
		UserID:       userID,
		Net:          net,
		Evidence:     evidence,
		Observations: observations,
		Stats:        NewHistoricalStatistics(),
		trained:      true,
		repo:         repo,
	}
	for _, obs := range observations {
		ub.Stats.AddObservation(obs)
	}
	for _, taskType := range domain.TaskTypes {
		UpdateNetworkFromStatistics(ub.Net, ub.Stats, taskType)
	}
	return ub
}

func (ub *UserBN) persist() error {
	if ub.repo == nil {
		return nil
	}
	return ub.repo.Save(ub)
}

// InitializeFromPreferences builds the full three-layer graph, sets Layer-1
// evidence from prefs via the deterministic mappers, and persists.
func (ub *UserBN) InitializeFromPreferences(prefs UserPreferences) error {
	ub.Net = domain.BuildNetwork()
	ub.Evidence = evidenceFromPreferences(prefs)
	for node, state := range ub.Evidence {
		ub.Net.SetEvidence(node, state)
	}
	ub.trained = true
	return ub.persist()
}

// UpdateFromTask appends obs, updates statistics, re-attaches Layer-3
// metadata for obs.TaskType, and persists. No-ops if the BN is untrained
// (spec.md §7: callers must not learn from an untrained BN).
func (ub *UserBN) UpdateFromTask(obs Observation) error {
	if !ub.trained {
		return nil
	}
	ub.Observations = append(ub.Observations, obs)
	ub.Stats.AddObservation(obs)
	UpdateNetworkFromStatistics(ub.Net, ub.Stats, obs.TaskType)
	return ub.persist()
}

// RemoveTask filters obs out of the observation list, rebuilds statistics
// and recomputes CPTs from scratch by replaying the remaining observations
// (selective decrement is unsafe once metadata blending is involved), then
// persists. No-ops if untrained.
func (ub *UserBN) RemoveTask(obs Observation) error {
	if !ub.trained {
		return nil
	}
	kept := ub.Observations[:0:0]
	for _, o := range ub.Observations {
		if o == obs {
			continue
		}
		kept = append(kept, o)
	}
	ub.Observations = kept

	ub.Stats = NewHistoricalStatistics()
	for _, o := range ub.Observations {
		ub.Stats.AddObservation(o)
	}
	for _, taskType := range domain.TaskTypes {
		UpdateNetworkFromStatistics(ub.Net, ub.Stats, taskType)
	}
	return ub.persist()
}

// neutralScore is returned by PredictSlotScore when the BN is untrained.
const neutralScore = 5.0

// PredictSlotScore returns a real in [0, 10] for scheduling taskType in
// [slotStart, slotStart+duration) (spec.md §4.5). The neutral score 5.0 is
// returned verbatim for an untrained BN.
func (ub *UserBN) PredictSlotScore(taskType string, slotStart, slotEnd time.Time) float64 {
	if !ub.trained {
		return neutralScore
	}

	running, err := domain.InferAllLatentNodes(ub.Net, ub.Evidence)
	if err != nil {
		return neutralScore
	}

	timeNode := ub.Net.Node(domain.PreferredTimeOfDayNode(taskType))
	dayNode := ub.Net.Node(domain.PreferredDayTypeNode(taskType))
	if timeNode == nil || dayNode == nil {
		return neutralScore
	}

	timeDist := domain.ComputeNodeDistribution(ub.Net, timeNode, running)
	dayDist := domain.ComputeNodeDistribution(ub.Net, dayNode, running)

	pTime := timeDist[timeOfDayBucket(slotStart.Hour())]
	pDay := dayDist[dayTypeBucket(int(slotStart.Weekday()))]

	score := (0.6*pTime + 0.4*pDay) * 10
	return clamp(score, 0, 10)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
