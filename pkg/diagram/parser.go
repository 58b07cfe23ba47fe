package diagram

import (
	"fmt"
	"strings"
)

// taskboxProperties are the extra attributes carried over into a taskbox
// node's Properties map.
var taskboxProperties = []string{"owner", "description", "system"}

// Parse converts diagram source text into a Graph.
//
// Parsing is a single top-to-bottom scan with one piece of mutable state:
// the current lane, set by lane-open lines and cleared by `}`. Lines that
// match no recognized pattern are silently skipped, so Parse never fails;
// malformed input yields a partial graph rather than an error.
//
// Reopening an already-seen lane id reuses the existing lane (its label is
// not reset) and only switches the current lane. Nodes declared outside any
// lane block land in the synthetic [DefaultLane]. Duplicate node ids are not
// deduplicated; both entries appear in the result and downstream consumers
// resolve the conflict first-declaration-wins.
//
// Edge lane endpoints resolve from an explicit `lane.node` prefix when
// present, otherwise from the lane that most recently declared the node id.
// Edge ids are assigned positionally ("e1", "e2", ...) and are not stable
// across re-parses.
//
// The surrounding system caps diagram text at [MaxDiagramBytes] before it
// reaches this function; Parse itself imposes no limit.
func Parse(text string) *Graph {
	g := &Graph{
		Lanes: []Lane{},
		Nodes: []Node{},
		Edges: []Edge{},
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	currentLane := ""
	laneSeen := map[string]bool{}
	nodeLane := map[string]string{} // node id -> most recently declaring lane
	edgeSeq := 0

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		m := MatchLine(line)
		switch m.Kind {
		case LineLaneOpen:
			if !laneSeen[m.Lane.ID] {
				laneSeen[m.Lane.ID] = true
				label := m.Lane.Label
				if label == "" {
					label = m.Lane.ID
				}
				g.Lanes = append(g.Lanes, Lane{
					ID:    m.Lane.ID,
					Label: label,
					Type:  ClassifyLane(m.Lane.ID, label),
				})
			}
			currentLane = m.Lane.ID

		case LineLaneClose:
			currentLane = ""

		case LineNode:
			laneID := currentLane
			if laneID == "" {
				laneID = DefaultLane
			}
			g.Nodes = append(g.Nodes, buildNode(m.Node, laneID))
			nodeLane[m.Node.ID] = laneID

		case LineEdge:
			edgeSeq++
			g.Edges = append(g.Edges, buildEdge(m.Edge, edgeSeq, nodeLane))
		}
	}

	g.Stats = computeStats(g)
	return g
}

func buildNode(d NodeDecl, laneID string) Node {
	label := d.Attrs["label"]
	if label == "" {
		label = d.Attrs["description"]
	}
	if label == "" {
		label = d.ID
	}

	n := Node{
		ID:     d.ID,
		LaneID: laneID,
		Label:  label,
		Kind:   ClassifyNode(d.Shape, label),
		Shape:  d.Shape,
	}

	if d.Shape == ShapeTaskbox {
		for _, key := range taskboxProperties {
			if v, ok := d.Attrs[key]; ok {
				if n.Properties == nil {
					n.Properties = map[string]string{}
				}
				n.Properties[key] = v
			}
		}
	}
	return n
}

func buildEdge(d EdgeDecl, seq int, nodeLane map[string]string) Edge {
	fromLane := d.FromLane
	if fromLane == "" {
		fromLane = nodeLane[d.From]
	}
	toLane := d.ToLane
	if toLane == "" {
		toLane = nodeLane[d.To]
	}

	return Edge{
		ID:           fmt.Sprintf("e%d", seq),
		From:         d.From,
		To:           d.To,
		FromLane:     fromLane,
		ToLane:       toLane,
		Label:        d.Label,
		SourceHandle: Handle(strings.ToLower(d.SourceHandle)),
		TargetHandle: Handle(strings.ToLower(d.TargetHandle)),
	}
}

func computeStats(g *Graph) Stats {
	s := Stats{
		LaneCount: len(g.Lanes),
		NodeCount: len(g.Nodes),
		EdgeCount: len(g.Edges),
	}
	for i := range g.Edges {
		if g.Edges[i].CrossLane() {
			s.CrossLaneEdges++
		}
	}
	return s
}
