package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronosuggest/engine/internal/bayes/domain"
)

func TestNetwork_AddNode_DuplicateRejected(t *testing.T) {
	net := domain.NewNetwork()
	require.NoError(t, net.AddNode(domain.NewNode("A", []string{"X", "Y"}, nil, nil)))
	err := net.AddNode(domain.NewNode("A", []string{"X", "Y"}, nil, nil))
	assert.ErrorIs(t, err, domain.ErrDuplicateNode)
}

func TestNetwork_TopologicalOrder_ParentsBeforeChildren(t *testing.T) {
	net := domain.NewNetwork()
	require.NoError(t, net.AddNode(domain.NewNode("Parent", []string{"A", "B"}, nil, nil)))
	require.NoError(t, net.AddNode(domain.NewNode("Child", []string{"A", "B"}, []string{"Parent"}, nil)))

	order, err := net.TopologicalOrder()
	require.NoError(t, err)

	parentIdx, childIdx := -1, -1
	for i, name := range order {
		if name == "Parent" {
			parentIdx = i
		}
		if name == "Child" {
			childIdx = i
		}
	}
	assert.True(t, parentIdx < childIdx)
}

func TestNetwork_TopologicalOrder_CycleDetected(t *testing.T) {
	net := domain.NewNetwork()
	// Build A -> B by construction, then smuggle a cycle in by hand: since
	// AddNode requires parents to be declared on the child, the only way to
	// force a cycle through the public API is two nodes each naming the
	// other as parent.
	require.NoError(t, net.AddNode(domain.NewNode("A", []string{"X"}, []string{"B"}, nil)))
	require.NoError(t, net.AddNode(domain.NewNode("B", []string{"X"}, []string{"A"}, nil)))

	_, err := net.TopologicalOrder()
	assert.ErrorIs(t, err, domain.ErrCycle)
}

func TestUniformCPT_FillsEveryParentCombination(t *testing.T) {
	net := domain.NewNetwork()
	require.NoError(t, net.AddNode(domain.NewNode("Parent", []string{"A", "B"}, nil, nil)))
	require.NoError(t, net.AddNode(domain.NewNode("Child", []string{"X", "Y", "Z"}, []string{"Parent"}, nil)))

	child := net.Node("Child")
	for _, pv := range []string{"A", "B"} {
		total := 0.0
		for _, s := range []string{"X", "Y", "Z"} {
			p := child.CPT.Query(s, domain.ParentValues{"Parent": pv})
			assert.InDelta(t, 1.0/3.0, p, 1e-9)
			total += p
		}
		assert.InDelta(t, 1.0, total, 1e-9)
	}
}

func TestCPT_TableQuery_FallsBackToUniformForUnknownTuple(t *testing.T) {
	table := map[string]map[string]float64{
		"A": {"X": 0.9, "Y": 0.1},
	}
	cpt := domain.NewTableCPT([]string{"Parent"}, []string{"X", "Y"}, table)
	p := cpt.Query("X", domain.ParentValues{"Parent": "UNSEEN"})
	assert.InDelta(t, 0.5, p, 1e-9)
}

func TestTupleKey_OrderSensitive(t *testing.T) {
	k1 := domain.TupleKey([]string{"A", "B"}, []string{"1", "2"})
	k2 := domain.TupleKey([]string{"A", "B"}, []string{"2", "1"})
	assert.NotEqual(t, k1, k2)
}
