package spreadsheet

// dependencyGraph tracks, for every position with at least one formula
// edge, the cells it depends on (precedents) and the cells that depend on
// it (dependents). Owned by Sheet, keyed directly by Position - no
// separate node handle type is needed since Position is already a plain,
// comparable, hashable value.
//
// There is no range-precedent tracking (no range operators) and no
// volatile-cell set (no volatile functions). Invalidation walks the
// dependents graph eagerly on every edit rather than tracking a dirty set
// for later resolution - see invalidate below. Nothing here recomputes in
// bulk; Cell.valueWith recomputes lazily on read, memoizing into its own
// cache.
type dependencyGraph struct {
	precedents map[Position]map[Position]struct{} // cell -> cells it reads
	dependents map[Position]map[Position]struct{} // cell -> cells that read it
}

func newDependencyGraph() *dependencyGraph {
	return &dependencyGraph{
		precedents: make(map[Position]map[Position]struct{}),
		dependents: make(map[Position]map[Position]struct{}),
	}
}

// setPrecedents replaces cell's outgoing edges with refs, updating the
// reverse (dependents) index to match - the edge sets always stay
// mutually consistent.
func (g *dependencyGraph) setPrecedents(cell Position, refs []Position) {
	g.clearPrecedents(cell)
	if len(refs) == 0 {
		return
	}
	set := make(map[Position]struct{}, len(refs))
	for _, ref := range refs {
		set[ref] = struct{}{}
		dependents, ok := g.dependents[ref]
		if !ok {
			dependents = make(map[Position]struct{})
			g.dependents[ref] = dependents
		}
		dependents[cell] = struct{}{}
	}
	g.precedents[cell] = set
}

// clearPrecedents removes cell's outgoing edges, tearing down the
// corresponding reverse edges too. Leaves no trace of cell in either map
// once it has neither precedents nor dependents.
func (g *dependencyGraph) clearPrecedents(cell Position) {
	for ref := range g.precedents[cell] {
		if dependents, ok := g.dependents[ref]; ok {
			delete(dependents, cell)
			if len(dependents) == 0 {
				delete(g.dependents, ref)
			}
		}
	}
	delete(g.precedents, cell)
}

// hasDependents reports whether any cell currently reads from pos.
// Backs Sheet.isReferenced.
func (g *dependencyGraph) hasDependents(pos Position) bool {
	return len(g.dependents[pos]) > 0
}

// wouldCycle reports whether adding edges cell -> refs would create a
// cycle reachable from cell, without mutating the graph - the candidate
// edge set is checked before any edge is actually installed. The existing
// graph is already acyclic (no edit ever commits one that isn't), so a
// plain visited-set DFS over real precedent edges, rooted at each
// candidate ref, is enough to find a path back to cell; no three-state
// back-edge tracking is needed since a revisit of an in-progress node
// can't happen. On a cycle, through reports the precedent whose own
// reference closes the loop back to cell - the last edge of the cycle,
// not cell itself (except for a direct self-reference, where the two
// coincide).
func (g *dependencyGraph) wouldCycle(cell Position, refs []Position) (cycles bool, through Position) {
	visited := make(map[Position]struct{})

	var closesAt Position
	var visit func(p Position) bool
	visit = func(p Position) bool {
		if _, ok := visited[p]; ok {
			return false
		}
		visited[p] = struct{}{}
		for precedent := range g.precedents[p] {
			if precedent == cell {
				closesAt = p
				return true
			}
			if visit(precedent) {
				return true
			}
		}
		return false
	}

	for _, ref := range refs {
		if ref == cell {
			return true, cell
		}
		if visit(ref) {
			return true, closesAt
		}
	}
	return false, Position{}
}

// invalidate clears the memoized cache of every transitive dependent of
// cell (cell's own cache is the edit's job, not the graph's - by the time
// Sheet calls this, setContent has already replaced cell's content).
// Descent short-circuits as soon as a dependent's cache turns out to
// already be clear: that cache was cleared by an earlier step of this
// same walk, or by a previous edit that has not been read since, so
// everything reachable below it is already clear too.
func (g *dependencyGraph) invalidate(cell Position, cells map[Position]*Cell) {
	visited := make(map[Position]struct{})
	var walk func(p Position)
	walk = func(p Position) {
		if _, ok := visited[p]; ok {
			return
		}
		visited[p] = struct{}{}
		c, ok := cells[p]
		if !ok {
			return
		}
		if !c.invalidateCache() {
			return
		}
		for dependent := range g.dependents[p] {
			walk(dependent)
		}
	}
	for dependent := range g.dependents[cell] {
		walk(dependent)
	}
}
