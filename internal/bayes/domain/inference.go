package domain

// ComputePosteriorProbability returns P(node=state | evidence), resolving
// any of the node's parents not present in evidence via
// InferMostLikelyState (the greedy-MAP approximation the whole inference
// layer is built on).
func ComputePosteriorProbability(net *Network, node *Node, state string, evidence map[string]string) float64 {
	parentValues := make(ParentValues, len(node.Parents))
	for _, p := range node.Parents {
		if v, ok := evidence[p]; ok {
			parentValues[p] = v
			continue
		}
		pn := net.Node(p)
		if pn == nil {
			continue
		}
		parentValues[p] = InferMostLikelyState(net, pn, evidence)
	}
	return node.CPT.Query(state, parentValues)
}

// InferMostLikelyState returns the argmax state of node given evidence.
func InferMostLikelyState(net *Network, node *Node, evidence map[string]string) string {
	if v, ok := evidence[node.Name]; ok {
		return v
	}
	best := node.States[0]
	bestP := -1.0
	for _, s := range node.States {
		p := ComputePosteriorProbability(net, node, s, evidence)
		if p > bestP {
			bestP = p
			best = s
		}
	}
	return best
}

// ComputeNodeDistribution returns the full, normalized distribution over
// node's states given evidence: a point mass if node is evidenced, else the
// normalized vector of posterior probabilities.
func ComputeNodeDistribution(net *Network, node *Node, evidence map[string]string) map[string]float64 {
	dist := make(map[string]float64, len(node.States))
	if v, ok := evidence[node.Name]; ok {
		for _, s := range node.States {
			if s == v {
				dist[s] = 1.0
			} else {
				dist[s] = 0.0
			}
		}
		return dist
	}

	total := 0.0
	for _, s := range node.States {
		p := ComputePosteriorProbability(net, node, s, evidence)
		dist[s] = p
		total += p
	}
	if total <= 0 {
		uniform := 1.0 / float64(len(node.States))
		for _, s := range node.States {
			dist[s] = uniform
		}
		return dist
	}
	for s := range dist {
		dist[s] /= total
	}
	return dist
}

// InferAllLatentNodes walks the network in topological order, committing the
// argmax of every non-evidenced node into a running evidence map before
// processing its descendants. This is the approximate-MAP inference the
// whole package is built around: it is not exact joint inference, but it is
// deterministic, cheap, and sufficient for relative slot scoring.
func InferAllLatentNodes(net *Network, baseEvidence map[string]string) (map[string]string, error) {
	order, err := net.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	running := make(map[string]string, len(baseEvidence))
	for k, v := range baseEvidence {
		running[k] = v
	}
	for _, name := range order {
		if _, already := running[name]; already {
			continue
		}
		node := net.Node(name)
		running[name] = InferMostLikelyState(net, node, running)
	}
	return running, nil
}
