package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronosuggest/engine/internal/bayes/domain"
)

// buildCoinNetwork is a tiny two-node network (Weather -> Mood) used to
// exercise the generic inference algorithms independent of the domain's
// concrete preference network.
func buildCoinNetwork(t *testing.T) *domain.Network {
	t.Helper()
	net := domain.NewNetwork()
	require.NoError(t, net.AddNode(domain.NewNode("Weather", []string{"SUNNY", "RAINY"}, nil, nil)))

	table := map[string]map[string]float64{
		"SUNNY": {"HAPPY": 0.8, "SAD": 0.2},
		"RAINY": {"HAPPY": 0.3, "SAD": 0.7},
	}
	cpt := domain.NewTableCPT([]string{"Weather"}, []string{"HAPPY", "SAD"}, table)
	require.NoError(t, net.AddNode(domain.NewNode("Mood", []string{"HAPPY", "SAD"}, []string{"Weather"}, cpt)))
	return net
}

func TestComputePosteriorProbability_WithEvidence(t *testing.T) {
	net := buildCoinNetwork(t)
	evidence := map[string]string{"Weather": "RAINY"}
	p := domain.ComputePosteriorProbability(net, net.Node("Mood"), "SAD", evidence)
	assert.InDelta(t, 0.7, p, 1e-9)
}

func TestComputePosteriorProbability_ResolvesUnobservedParent(t *testing.T) {
	net := buildCoinNetwork(t)
	// Weather has no evidence and a uniform prior over {SUNNY, RAINY}: its
	// argmax (InferMostLikelyState ties go to the first state in tie order)
	// resolves to SUNNY, so Mood's posterior should match the SUNNY row.
	p := domain.ComputePosteriorProbability(net, net.Node("Mood"), "HAPPY", map[string]string{})
	assert.InDelta(t, 0.8, p, 1e-9)
}

func TestInferMostLikelyState_ReturnsEvidenceVerbatim(t *testing.T) {
	net := buildCoinNetwork(t)
	s := domain.InferMostLikelyState(net, net.Node("Weather"), map[string]string{"Weather": "RAINY"})
	assert.Equal(t, "RAINY", s)
}

func TestComputeNodeDistribution_EvidencedIsPointMass(t *testing.T) {
	net := buildCoinNetwork(t)
	dist := domain.ComputeNodeDistribution(net, net.Node("Weather"), map[string]string{"Weather": "SUNNY"})
	assert.InDelta(t, 1.0, dist["SUNNY"], 1e-9)
	assert.InDelta(t, 0.0, dist["RAINY"], 1e-9)
}

func TestComputeNodeDistribution_SumsToOne(t *testing.T) {
	net := buildCoinNetwork(t)
	dist := domain.ComputeNodeDistribution(net, net.Node("Mood"), map[string]string{"Weather": "RAINY"})
	total := 0.0
	for _, p := range dist {
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestInferAllLatentNodes_CommitsTopologically(t *testing.T) {
	net := buildCoinNetwork(t)
	result, err := domain.InferAllLatentNodes(net, map[string]string{})
	require.NoError(t, err)
	assert.Contains(t, result, "Weather")
	assert.Contains(t, result, "Mood")
}

func TestInferAllLatentNodes_RespectsBaseEvidence(t *testing.T) {
	net := buildCoinNetwork(t)
	result, err := domain.InferAllLatentNodes(net, map[string]string{"Weather": "RAINY"})
	require.NoError(t, err)
	assert.Equal(t, "RAINY", result["Weather"])
	assert.Equal(t, "SAD", result["Mood"])
}

func TestInferAllLatentNodes_CycleReturnsError(t *testing.T) {
	net := domain.NewNetwork()
	require.NoError(t, net.AddNode(domain.NewNode("A", []string{"X"}, []string{"B"}, nil)))
	require.NoError(t, net.AddNode(domain.NewNode("B", []string{"X"}, []string{"A"}, nil)))
	_, err := domain.InferAllLatentNodes(net, map[string]string{})
	assert.ErrorIs(t, err, domain.ErrCycle)
}
