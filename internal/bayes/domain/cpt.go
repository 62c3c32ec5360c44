package domain

// ParentValues maps a parent node name to the state it is assigned.
type ParentValues map[string]string

// CPTFunc computes P(state | parentValues) for a functional CPT.
type CPTFunc func(state string, parentValues ParentValues) float64

// CPT is a node's conditional probability table. It owns either a table
// (tupleKey(parentValues) -> state -> probability) or a function; never both.
type CPT struct {
	table       map[string]map[string]float64
	fn          CPTFunc
	isFunctional bool

	parents []string
	states  []string
}

// NewTableCPT constructs a table-backed CPT. table keys are produced by
// TupleKey in the same parent order as parents.
func NewTableCPT(parents, states []string, table map[string]map[string]float64) *CPT {
	return &CPT{table: table, parents: parents, states: states}
}

// NewFunctionalCPT constructs a function-backed CPT.
func NewFunctionalCPT(parents, states []string, fn CPTFunc) *CPT {
	return &CPT{fn: fn, isFunctional: true, parents: parents, states: states}
}

// NewUniformCPT builds a table CPT with a uniform distribution over states
// for every combination of parentStates (a map from parent name to its
// ordered states), i.e. the default fill for a node built with neither a
// table nor a function.
func NewUniformCPT(parents []string, parentStates map[string][]string, states []string) *CPT {
	uniform := make(map[string]float64, len(states))
	p := 1.0 / float64(len(states))
	for _, s := range states {
		uniform[s] = p
	}
	table := make(map[string]map[string]float64)
	for _, tuple := range cartesianProduct(parents, parentStates) {
		key := TupleKey(parents, tuple)
		row := make(map[string]float64, len(states))
		for s, v := range uniform {
			row[s] = v
		}
		table[key] = row
	}
	return &CPT{table: table, parents: parents, states: states}
}

// IsFunctional reports whether the CPT is function-backed.
func (c *CPT) IsFunctional() bool { return c.isFunctional }

// Query returns P(state | parentValues), falling back to a uniform
// probability if the table has no entry for the given tuple.
func (c *CPT) Query(state string, parentValues ParentValues) float64 {
	if c.isFunctional {
		return c.fn(state, parentValues)
	}
	tuple := make([]string, len(c.parents))
	for i, p := range c.parents {
		tuple[i] = parentValues[p]
	}
	key := TupleKey(c.parents, tuple)
	row, ok := c.table[key]
	if !ok {
		return 1.0 / float64(len(c.states))
	}
	v, ok := row[state]
	if !ok {
		return 1.0 / float64(len(c.states))
	}
	return v
}

// Table exposes the underlying table for serialization; returns nil for a
// functional CPT (callers should serialize `is_functional: true, table: {}`).
func (c *CPT) Table() map[string]map[string]float64 {
	return c.table
}

// TupleKey builds the stable string key for a parent-value tuple, in the
// declared parent order, used both as the table's map key and for
// serialization to the per-user JSON file.
func TupleKey(parents []string, values []string) string {
	key := ""
	for i := range parents {
		if i > 0 {
			key += "|"
		}
		key += values[i]
	}
	return key
}

func cartesianProduct(parents []string, parentStates map[string][]string) [][]string {
	if len(parents) == 0 {
		return [][]string{{}}
	}
	rest := cartesianProduct(parents[1:], parentStates)
	var out [][]string
	for _, v := range parentStates[parents[0]] {
		for _, r := range rest {
			tuple := append([]string{v}, r...)
			out = append(out, tuple)
		}
	}
	return out
}
