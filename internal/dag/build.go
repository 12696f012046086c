package dag

import (
	"sort"

	"github.com/alexisbeaulieu97/dagflow/internal/dagerrors"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
	"github.com/alexisbeaulieu97/dagflow/internal/ir"
	"github.com/alexisbeaulieu97/dagflow/internal/registry"
)

// Build turns parsed IR into a validated Graph: every node resolved to a
// configured component, every dependency verified to exist, the graph
// checked acyclic, layered topologically (nodes within a layer ordered by
// their position in the source document), and every edge type-checked.
func Build(parsed *ir.IR, reg *registry.Registry, _ Config) (*Graph, error) {
	nodes := make(map[string]*Node, len(parsed.Nodes))
	byID := make(map[string]ir.Node, len(parsed.Nodes))

	for _, n := range parsed.Nodes {
		factory, ok := reg.Lookup(n.ComponentType)
		if !ok {
			return nil, &dagerrors.UnknownComponent{ComponentType: n.ComponentType}
		}

		c, err := factory(n.Config)
		if err != nil {
			return nil, &dagerrors.InvalidConfiguration{
				Message: "node " + n.ID + ": " + err.Error(),
				Err:     err,
			}
		}

		nodes[n.ID] = &Node{
			ID:         n.ID,
			Component:  c,
			DependsOn:  append([]string(nil), n.DependsOn...),
			inputOrder: n.InputOrder(),
		}
		byID[n.ID] = n
	}

	for _, node := range nodes {
		for _, dep := range node.DependsOn {
			if _, ok := nodes[dep]; !ok {
				return nil, &dagerrors.UnknownDependency{NodeID: node.ID, DependencyID: dep}
			}
		}
	}

	adjacency := make(map[string][]string, len(nodes))
	dependents := make(map[string][]string, len(nodes))
	for id, node := range nodes {
		adjacency[id] = node.DependsOn
		for _, dep := range node.DependsOn {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	if cycle := detectCycle(adjacency); len(cycle) > 0 {
		return nil, &dagerrors.CycleDetected{Path: cycle}
	}

	levels := layer(nodes, dependents)

	seeds := make(map[string]dagvalue.Value)
	for id, node := range nodes {
		n := byID[id]
		if len(node.DependsOn) == 0 {
			seeds[id] = n.SeedValue
			if err := checkEdgeType(id, dagvalue.TypeOf(n.SeedValue), node.Component.InputType()); err != nil {
				return nil, err
			}
			continue
		}

		if len(node.DependsOn) == 1 {
			upstream := nodes[node.DependsOn[0]]
			source := upstream.Component.OutputType()
			if err := checkEdgeType(node.DependsOn[0]+"->"+id, source, node.Component.InputType()); err != nil {
				return nil, err
			}
			continue
		}

		arms := make([]dagvalue.Type, len(node.DependsOn))
		for i, dep := range node.DependsOn {
			arms[i] = nodes[dep].Component.OutputType()
		}
		source := dagvalue.List(dagvalue.UnionOf(arms...))
		if err := checkEdgeType(id, source, node.Component.InputType()); err != nil {
			return nil, err
		}
	}

	return &Graph{Nodes: nodes, Levels: levels, SeedInputs: seeds}, nil
}

func checkEdgeType(edge string, source, target dagvalue.Type) error {
	if !dagvalue.IsCompatible(source, target) {
		return &dagerrors.TypeMismatch{Edge: edge, Expected: target, Got: source}
	}
	return nil
}

// layer computes Kahn's-algorithm topological levels, ordering each level
// by the node's position in the source IR document so layers are
// deterministic regardless of map iteration order.
func layer(nodes map[string]*Node, dependents map[string][]string) [][]string {
	indegree := make(map[string]int, len(nodes))
	for id, node := range nodes {
		indegree[id] = len(node.DependsOn)
	}

	var frontier []string
	for id, degree := range indegree {
		if degree == 0 {
			frontier = append(frontier, id)
		}
	}

	var levels [][]string
	for len(frontier) > 0 {
		sort.Slice(frontier, func(i, j int) bool {
			return nodes[frontier[i]].inputOrder < nodes[frontier[j]].inputOrder
		})
		levels = append(levels, append([]string(nil), frontier...))

		var next []string
		for _, id := range frontier {
			for _, dep := range dependents[id] {
				indegree[dep]--
				if indegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		frontier = next
	}

	return levels
}
