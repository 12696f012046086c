package dag

import "sort"

// detectCycle runs a three-color DFS over the depends_on adjacency and
// returns the path of node ids forming a cycle, or nil if the graph is
// acyclic. Visiting nodes in sorted id order makes the reported path
// deterministic across runs.
func detectCycle(adjacency map[string][]string) []string {
	visiting := make(map[string]bool, len(adjacency))
	visited := make(map[string]bool, len(adjacency))
	var stack []string
	var cycle []string

	var dfs func(string) bool
	dfs = func(node string) bool {
		visiting[node] = true
		stack = append(stack, node)

		for _, dep := range adjacency[node] {
			if visited[dep] {
				continue
			}
			if visiting[dep] {
				idx := indexOf(stack, dep)
				if idx >= 0 {
					cycle = append([]string{}, stack[idx:]...)
				}
				cycle = append(cycle, dep)
				return true
			}
			if dfs(dep) {
				return true
			}
		}

		visiting[node] = false
		visited[node] = true
		stack = stack[:len(stack)-1]
		return false
	}

	ids := make([]string, 0, len(adjacency))
	for id := range adjacency {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if visited[id] {
			continue
		}
		if dfs(id) {
			break
		}
	}

	return cycle
}

func indexOf(slice []string, target string) int {
	for i, v := range slice {
		if v == target {
			return i
		}
	}
	return -1
}
