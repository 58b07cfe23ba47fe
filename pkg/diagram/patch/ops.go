// Package patch applies structured edit operations to diagram source text.
//
// Unlike a parse/serialize round trip, patching edits the text line by line
// and preserves everything the operations do not touch: formatting,
// comments, ordering, and unparseable lines all survive verbatim.
//
// Operations are processed strictly in the order given, and each
// operation's effects are visible to the ones after it. An operation that
// cannot be applied (missing fields, unknown target, unsupported kind) is
// recorded as skipped with a reason and processing continues; [Apply] never
// aborts a batch.
package patch

import "github.com/laneweave/laneweave/pkg/diagram"

// Kind discriminates the patch operation variants.
type Kind string

// Operation kinds. KindUpdateEdge is reserved for a future revision and is
// currently always skipped.
const (
	KindInsertNode Kind = "insertNode"
	KindRemoveNode Kind = "removeNode"
	KindUpdateNode Kind = "updateNode"
	KindInsertEdge Kind = "insertEdge"
	KindRemoveEdge Kind = "removeEdge"
	KindUpdateEdge Kind = "updateEdge"
)

// NodeSpec describes the node created by an insertNode operation. The id is
// never given by the caller; Apply synthesizes the next sequential id.
type NodeSpec struct {
	Shape      diagram.Shape     `json:"shape,omitempty"` // Defaults to rectangle
	Label      string            `json:"label,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// EdgeSpec describes the edge referenced by an insertEdge or removeEdge
// operation. Handles default to right (source) and left (target) on insert;
// removal matches on the (From, To) pair only.
type EdgeSpec struct {
	From         string         `json:"from"`
	To           string         `json:"to"`
	SourceHandle diagram.Handle `json:"sourceHandle,omitempty"`
	TargetHandle diagram.Handle `json:"targetHandle,omitempty"`
	Label        string         `json:"label,omitempty"`
}

// Operation is one structured edit instruction. Only the fields relevant to
// its Kind are consulted:
//
//   - insertNode: LaneID, NewNode, optional AfterNodeID
//   - removeNode: NodeID
//   - updateNode: NodeID, Updates
//   - insertEdge: NewEdge (From/To required)
//   - removeEdge: NewEdge (From/To required)
type Operation struct {
	Kind        Kind              `json:"kind"`
	LaneID      string            `json:"laneId,omitempty"`
	NodeID      string            `json:"nodeId,omitempty"`
	AfterNodeID string            `json:"afterNodeId,omitempty"`
	NewNode     *NodeSpec         `json:"newNode,omitempty"`
	Updates     map[string]string `json:"updates,omitempty"`
	NewEdge     *EdgeSpec         `json:"newEdge,omitempty"`
}

// OpResult reports what happened to one operation. Skipped operations carry
// a human-readable Reason so a caller can explain every outcome of a batch
// without inspecting internals.
type OpResult struct {
	Index   int    `json:"index"`
	Kind    Kind   `json:"kind"`
	Applied bool   `json:"applied"`
	NodeID  string `json:"nodeId,omitempty"` // Synthesized id for insertNode
	Reason  string `json:"reason,omitempty"`
}
