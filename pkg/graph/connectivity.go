package graph

// IsConnected reports whether goal is reachable from start by following
// arcs breadth-first. Trivially true when start and goal share an ID.
func IsConnected(g *Graph, start, goal Node) bool {
	if start.ID == goal.ID {
		return true
	}

	visited := map[string]bool{start.ID: true}
	queue := []Node{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.ID == goal.ID {
			return true
		}

		for _, arc := range g.Neighbors(current) {
			if !visited[arc.To.ID] {
				visited[arc.To.ID] = true
				queue = append(queue, arc.To)
			}
		}
	}
	return false
}

// ConnectedComponents partitions all nodes into components via repeated BFS.
// Components are discovered in node insertion order, so the result is
// deterministic for a given construction sequence.
func ConnectedComponents(g *Graph) [][]Node {
	var components [][]Node
	visited := make(map[string]bool, g.NodeCount())

	for _, seed := range g.Nodes() {
		if visited[seed.ID] {
			continue
		}

		component := []Node{seed}
		visited[seed.ID] = true
		queue := []Node{seed}

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			for _, arc := range g.Neighbors(current) {
				if !visited[arc.To.ID] {
					visited[arc.To.ID] = true
					component = append(component, arc.To)
					queue = append(queue, arc.To)
				}
			}
		}

		components = append(components, component)
	}
	return components
}

// LargestConnectedComponent returns a new graph holding the largest
// component's nodes and exactly the directed arcs whose both endpoints lie
// in it. Arcs are re-added per original adjacency entry, so a graph built
// with bidirectional edges keeps both directed entries; nothing is deduplicated
// or re-symmetrized. Ties between equal-sized components go to the first one
// discovered.
func LargestConnectedComponent(g *Graph) *Graph {
	components := ConnectedComponents(g)
	if len(components) == 0 {
		return New()
	}

	largest := components[0]
	for _, component := range components[1:] {
		if len(component) > len(largest) {
			largest = component
		}
	}

	member := make(map[string]bool, len(largest))
	for _, n := range largest {
		member[n.ID] = true
	}

	out := New()
	for _, n := range g.Nodes() {
		if member[n.ID] {
			out.AddNode(n)
		}
	}
	for _, n := range g.Nodes() {
		if !member[n.ID] {
			continue
		}
		for _, arc := range g.Neighbors(n) {
			if member[arc.To.ID] {
				// weights were validated when the source graph was built
				_ = out.AddEdge(n, arc.To, arc.Weight, false)
			}
		}
	}
	return out
}
