// Package diff computes structural differences between two versions of
// diagram source text.
//
// Both versions are parsed independently with [diagram.Parse]; the
// comparison then runs on the parsed graphs, never on the raw text. Node
// identity is the node id alone, so a node that moves between lanes is
// reported as updated (with a laneId field change), not as a remove/add
// pair. Edge identity is the ordered (from, to) pair: the synthetic edge id
// is positional and unstable, so it is never used for comparison. A known
// consequence is that an edge whose only change is its label or handles is
// indistinguishable from an unchanged edge, and multi-edges between the same
// pair collapse to one key.
package diff

import (
	"fmt"
	"strings"

	"github.com/laneweave/laneweave/pkg/diagram"
)

// FieldChange records one changed node field.
type FieldChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// NodeChange reports a node present in both versions with at least one
// differing field. Fields is keyed by "label", "shape", or "laneId".
type NodeChange struct {
	ID     string                 `json:"id"`
	Fields map[string]FieldChange `json:"fields"`
}

// EdgeRef identifies an edge by its ordered endpoints.
type EdgeRef struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Result is the structural delta between two diagram versions.
type Result struct {
	NodesAdded   []string     `json:"nodesAdded"`
	NodesRemoved []string     `json:"nodesRemoved"`
	NodesUpdated []NodeChange `json:"nodesUpdated"`
	EdgesAdded   []EdgeRef    `json:"edgesAdded"`
	EdgesRemoved []EdgeRef    `json:"edgesRemoved"`
	LanesAdded   []string     `json:"lanesAdded"`
	LanesRemoved []string     `json:"lanesRemoved"`
	Summary      string       `json:"summary"`
}

// Empty reports whether every category of the result is empty.
func (r *Result) Empty() bool {
	return len(r.NodesAdded) == 0 && len(r.NodesRemoved) == 0 && len(r.NodesUpdated) == 0 &&
		len(r.EdgesAdded) == 0 && len(r.EdgesRemoved) == 0 &&
		len(r.LanesAdded) == 0 && len(r.LanesRemoved) == 0
}

// noChanges is the summary for an empty result.
const noChanges = "No changes detected"

// Diff parses both texts and computes their structural delta. It is a pure
// function of its inputs with no side effects.
//
// Ordering is deterministic: added entries follow the new version's
// declaration order, removed and updated entries follow the old version's.
// Duplicate node ids resolve first-declaration-wins on both sides.
func Diff(oldText, newText string) *Result {
	oldGraph := diagram.Parse(oldText)
	newGraph := diagram.Parse(newText)

	r := &Result{
		NodesAdded:   []string{},
		NodesRemoved: []string{},
		NodesUpdated: []NodeChange{},
		EdgesAdded:   []EdgeRef{},
		EdgesRemoved: []EdgeRef{},
		LanesAdded:   []string{},
		LanesRemoved: []string{},
	}

	diffNodes(oldGraph, newGraph, r)
	diffEdges(oldGraph, newGraph, r)
	diffLanes(oldGraph, newGraph, r)
	r.Summary = summarize(r)
	return r
}

func diffNodes(oldGraph, newGraph *diagram.Graph, r *Result) {
	oldByID := nodeIndex(oldGraph)
	newByID := nodeIndex(newGraph)

	for i := range newGraph.Nodes {
		n := &newGraph.Nodes[i]
		if newByID[n.ID] != n {
			continue // duplicate declaration, first wins
		}
		old, ok := oldByID[n.ID]
		if !ok {
			r.NodesAdded = append(r.NodesAdded, n.ID)
			continue
		}
		if fields := compareNode(old, n); len(fields) > 0 {
			r.NodesUpdated = append(r.NodesUpdated, NodeChange{ID: n.ID, Fields: fields})
		}
	}

	for i := range oldGraph.Nodes {
		n := &oldGraph.Nodes[i]
		if oldByID[n.ID] != n {
			continue
		}
		if _, ok := newByID[n.ID]; !ok {
			r.NodesRemoved = append(r.NodesRemoved, n.ID)
		}
	}
}

// compareNode returns per-field {old,new} entries for label, shape, and
// laneId. A node with no differing fields yields an empty map and is not
// reported at all.
func compareNode(old, new *diagram.Node) map[string]FieldChange {
	fields := map[string]FieldChange{}
	if old.Label != new.Label {
		fields["label"] = FieldChange{Old: old.Label, New: new.Label}
	}
	if old.Shape != new.Shape {
		fields["shape"] = FieldChange{Old: string(old.Shape), New: string(new.Shape)}
	}
	if old.LaneID != new.LaneID {
		fields["laneId"] = FieldChange{Old: old.LaneID, New: new.LaneID}
	}
	return fields
}

func diffEdges(oldGraph, newGraph *diagram.Graph, r *Result) {
	oldKeys := edgeIndex(oldGraph)
	newKeys := edgeIndex(newGraph)

	for _, e := range newGraph.Edges {
		key := EdgeRef{From: e.From, To: e.To}
		if !oldKeys[key] {
			r.EdgesAdded = append(r.EdgesAdded, key)
			oldKeys[key] = true // report each (from,to) pair once
		}
	}
	for _, e := range oldGraph.Edges {
		key := EdgeRef{From: e.From, To: e.To}
		if !newKeys[key] {
			r.EdgesRemoved = append(r.EdgesRemoved, key)
			newKeys[key] = true
		}
	}
}

func diffLanes(oldGraph, newGraph *diagram.Graph, r *Result) {
	oldIDs := map[string]bool{}
	for _, l := range oldGraph.Lanes {
		oldIDs[l.ID] = true
	}
	newIDs := map[string]bool{}
	for _, l := range newGraph.Lanes {
		newIDs[l.ID] = true
	}

	for _, l := range newGraph.Lanes {
		if !oldIDs[l.ID] {
			r.LanesAdded = append(r.LanesAdded, l.ID)
		}
	}
	for _, l := range oldGraph.Lanes {
		if !newIDs[l.ID] {
			r.LanesRemoved = append(r.LanesRemoved, l.ID)
		}
	}
}

// summarize assembles the human-readable sentence from non-empty clauses in
// a fixed order: nodes added, nodes removed, nodes updated, edges added,
// edges removed, lanes added, lanes removed.
func summarize(r *Result) string {
	if r.Empty() {
		return noChanges
	}

	var clauses []string
	add := func(n int, noun, verb string) {
		if n > 0 {
			clauses = append(clauses, fmt.Sprintf("%d %s %s", n, pluralize(noun, n), verb))
		}
	}

	add(len(r.NodesAdded), "node", "added")
	add(len(r.NodesRemoved), "node", "removed")
	add(len(r.NodesUpdated), "node", "updated")
	add(len(r.EdgesAdded), "edge", "added")
	add(len(r.EdgesRemoved), "edge", "removed")
	add(len(r.LanesAdded), "lane", "added")
	add(len(r.LanesRemoved), "lane", "removed")

	return strings.Join(clauses, ", ")
}

func pluralize(noun string, n int) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

// nodeIndex maps node id to the first node declared with it.
func nodeIndex(g *diagram.Graph) map[string]*diagram.Node {
	idx := make(map[string]*diagram.Node, len(g.Nodes))
	for i := range g.Nodes {
		if _, ok := idx[g.Nodes[i].ID]; !ok {
			idx[g.Nodes[i].ID] = &g.Nodes[i]
		}
	}
	return idx
}

func edgeIndex(g *diagram.Graph) map[EdgeRef]bool {
	idx := make(map[EdgeRef]bool, len(g.Edges))
	for _, e := range g.Edges {
		idx[EdgeRef{From: e.From, To: e.To}] = true
	}
	return idx
}
