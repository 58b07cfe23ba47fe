package diagram

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Shape is the visual form of a node. The set is closed: a declaration with
// any other shape token is not treated as a node at all.
type Shape string

// Node shapes.
const (
	ShapeCircle    Shape = "circle"
	ShapeRectangle Shape = "rectangle"
	ShapeDiamond   Shape = "diamond"
	ShapeTaskbox   Shape = "taskbox"
)

// ValidShape reports whether s is one of the four permitted shapes.
func ValidShape(s Shape) bool {
	switch s {
	case ShapeCircle, ShapeRectangle, ShapeDiamond, ShapeTaskbox:
		return true
	}
	return false
}

// Kind is the derived classification of a node, inferred from its shape and
// label keywords. It is advisory only and never affects parsing.
type Kind string

// Node kinds.
const (
	KindStart    Kind = "start"
	KindEnd      Kind = "end"
	KindStep     Kind = "step"
	KindDecision Kind = "decision"
	KindTask     Kind = "task"
)

// LaneType classifies a lane as an actor or a system based on keyword
// matching against its id and label. Advisory only.
type LaneType string

// Lane types.
const (
	LaneActor   LaneType = "actor"
	LaneSystem  LaneType = "system"
	LaneUnknown LaneType = "unknown"
)

// Handle is an edge attachment point on a node.
type Handle string

// Edge handles.
const (
	HandleLeft   Handle = "left"
	HandleRight  Handle = "right"
	HandleTop    Handle = "top"
	HandleBottom Handle = "bottom"
)

// DefaultLane is the synthetic lane id assigned to nodes declared outside
// any lane block.
const DefaultLane = "default"

// MaxDiagramBytes is the size ceiling the surrounding system enforces on
// diagram text before it reaches this package. The parser itself does not
// re-validate it; boundary surfaces (HTTP API) do.
const MaxDiagramBytes = 50000

// =============================================================================
// Graph Model
// =============================================================================

// Lane is a named horizontal grouping of nodes representing one actor,
// system, or participant. One Lane exists per unique id regardless of how
// many times the lane block is reopened.
type Lane struct {
	ID    string   `json:"id" bson:"id"`
	Label string   `json:"label" bson:"label"` // Display text; defaults to ID
	Type  LaneType `json:"type" bson:"type"`
}

// Node is a single shape in a lane. IDs are expected to be unique across the
// whole diagram; the parser does not deduplicate, so downstream consumers
// must tolerate repeated ids as a malformed-input condition.
type Node struct {
	ID         string            `json:"id" bson:"id"`
	LaneID     string            `json:"laneId" bson:"lane_id"`
	Label      string            `json:"label" bson:"label"`
	Kind       Kind              `json:"kind" bson:"kind"`
	Shape      Shape             `json:"shape" bson:"shape"`
	Properties map[string]string `json:"properties,omitempty" bson:"properties,omitempty"`
}

// Edge is a directed, handle-to-handle connection between two nodes.
//
// The ID is synthetic ("e1", "e2", ...) and purely positional: it is not
// stable across re-parses when edges are inserted, removed, or reordered.
// Use it as a display aid only, never as identity.
type Edge struct {
	ID           string `json:"id" bson:"id"`
	From         string `json:"from" bson:"from"`
	To           string `json:"to" bson:"to"`
	FromLane     string `json:"fromLane,omitempty" bson:"from_lane,omitempty"`
	ToLane       string `json:"toLane,omitempty" bson:"to_lane,omitempty"`
	Label        string `json:"label,omitempty" bson:"label,omitempty"`
	SourceHandle Handle `json:"sourceHandle" bson:"source_handle"`
	TargetHandle Handle `json:"targetHandle" bson:"target_handle"`
}

// CrossLane reports whether the edge connects two different, known lanes.
func (e *Edge) CrossLane() bool {
	return e.FromLane != "" && e.ToLane != "" && e.FromLane != e.ToLane
}

// Stats holds counts derived from a parsed graph.
type Stats struct {
	LaneCount      int `json:"laneCount" bson:"lane_count"`
	NodeCount      int `json:"nodeCount" bson:"node_count"`
	EdgeCount      int `json:"edgeCount" bson:"edge_count"`
	CrossLaneEdges int `json:"crossLaneEdges" bson:"cross_lane_edges"`
}

// Graph is the aggregate produced by [Parse]: lanes in first-seen order,
// nodes and edges in declaration order, and derived stats.
type Graph struct {
	Lanes []Lane `json:"lanes" bson:"lanes"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
	Stats Stats  `json:"stats" bson:"stats"`
}

// NodeByID returns the first node with the given id, or nil.
// With duplicate ids the first declaration wins, consistent with how the
// diff and patch packages resolve duplicates.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// LaneByID returns the lane with the given id, or nil.
func (g *Graph) LaneByID(id string) *Lane {
	for i := range g.Lanes {
		if g.Lanes[i].ID == id {
			return &g.Lanes[i]
		}
	}
	return nil
}
