package patch

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/laneweave/laneweave/pkg/diagram"
)

var nodeSeqRe = regexp.MustCompile(`^n(\d+)$`)

// Apply executes ops against text in order and returns the patched text
// along with one OpResult per operation.
//
// The text is treated as an ordered sequence of lines. A single forward
// scan of the input builds the index state (node id to declaration line,
// lane id to block span); every insertion or removal then shifts the
// recorded indexes past the edit point so later operations in the batch
// keep targeting the right lines.
//
// Duplicate node ids resolve first-declaration-wins: the index records the
// first line declaring an id. Removing a node does not cascade to edges
// referencing it; dangling edge lines are a possible post-condition the
// caller must handle.
func Apply(text string, ops []Operation) (string, []OpResult) {
	s := newEditState(text)

	results := make([]OpResult, 0, len(ops))
	for i, op := range ops {
		res := s.apply(op)
		res.Index = i
		res.Kind = op.Kind
		results = append(results, res)
	}
	return strings.Join(s.lines, "\n"), results
}

// =============================================================================
// Index State
// =============================================================================

// span is a lane block's line range; end is the index of its closing brace.
type span struct {
	start int
	end   int
}

type editState struct {
	lines    []string
	nodeLine map[string]int    // node id -> declaration line index (first wins)
	laneSpan map[string]span   // lane id -> block span (first closed block wins)
	nodeLane map[string]string // node id -> declaring lane (first wins)
	maxSeq   int               // highest numeric suffix among n<digits> ids
}

// newEditState scans the input text once and builds the line indexes. The
// scan reuses the parser's line matcher so the patcher and the parser agree
// on what counts as a node, lane, or edge line.
func newEditState(text string) *editState {
	s := &editState{
		lines:    strings.Split(text, "\n"),
		nodeLine: map[string]int{},
		laneSpan: map[string]span{},
		nodeLane: map[string]string{},
	}

	currentLane := ""
	openIdx := -1

	for i, raw := range s.lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		m := diagram.MatchLine(line)
		switch m.Kind {
		case diagram.LineLaneOpen:
			currentLane = m.Lane.ID
			openIdx = i

		case diagram.LineLaneClose:
			if currentLane != "" {
				if _, ok := s.laneSpan[currentLane]; !ok {
					s.laneSpan[currentLane] = span{start: openIdx, end: i}
				}
			}
			currentLane = ""

		case diagram.LineNode:
			if _, ok := s.nodeLine[m.Node.ID]; !ok {
				lane := currentLane
				if lane == "" {
					lane = diagram.DefaultLane
				}
				s.nodeLine[m.Node.ID] = i
				s.nodeLane[m.Node.ID] = lane
			}
			if sm := nodeSeqRe.FindStringSubmatch(m.Node.ID); sm != nil {
				if seq, err := strconv.Atoi(sm[1]); err == nil && seq > s.maxSeq {
					s.maxSeq = seq
				}
			}
		}
	}
	return s
}

// shift adjusts every stored line index at or past the edit point by delta.
// This bookkeeping is what keeps later operations in a batch correct; it
// runs after every structural change to the line slice.
func (s *editState) shift(at, delta int) {
	for id, idx := range s.nodeLine {
		if idx >= at {
			s.nodeLine[id] = idx + delta
		}
	}
	for id, sp := range s.laneSpan {
		if sp.start >= at {
			sp.start += delta
		}
		if sp.end >= at {
			sp.end += delta
		}
		s.laneSpan[id] = sp
	}
}

func (s *editState) insertLine(idx int, line string) {
	s.lines = slices.Insert(s.lines, idx, line)
	s.shift(idx, 1)
}

func (s *editState) removeLine(idx int) {
	s.lines = slices.Delete(s.lines, idx, idx+1)
	s.shift(idx+1, -1)
}

// =============================================================================
// Operations
// =============================================================================

func skip(format string, args ...any) OpResult {
	return OpResult{Reason: fmt.Sprintf(format, args...)}
}

func (s *editState) apply(op Operation) OpResult {
	switch op.Kind {
	case KindInsertNode:
		return s.insertNode(op)
	case KindRemoveNode:
		return s.removeNode(op)
	case KindUpdateNode:
		return s.updateNode(op)
	case KindInsertEdge:
		return s.insertEdge(op)
	case KindRemoveEdge:
		return s.removeEdge(op)
	case KindUpdateEdge:
		return skip("updateEdge is not supported yet")
	default:
		return skip("unknown operation kind %q", op.Kind)
	}
}

func (s *editState) insertNode(op Operation) OpResult {
	if op.NewNode == nil {
		return skip("insertNode requires newNode")
	}
	sp, ok := s.laneSpan[op.LaneID]
	if !ok {
		return skip("lane %q not found", op.LaneID)
	}

	shape := op.NewNode.Shape
	if shape == "" {
		shape = diagram.ShapeRectangle
	}
	if !diagram.ValidShape(shape) {
		return skip("invalid shape %q", shape)
	}

	// Sequential ids follow the DSL's n<digits> convention; this is not
	// enforced structurally, just continued.
	s.maxSeq++
	id := fmt.Sprintf("n%d", s.maxSeq)

	idx := sp.end // append as the lane's last node
	if op.AfterNodeID != "" {
		if after, ok := s.nodeLine[op.AfterNodeID]; ok {
			idx = after + 1
		}
	}

	s.insertLine(idx, renderNodeLine(id, shape, op.NewNode.Label, op.NewNode.Properties))
	s.nodeLine[id] = idx
	s.nodeLane[id] = op.LaneID

	return OpResult{Applied: true, NodeID: id}
}

func (s *editState) removeNode(op Operation) OpResult {
	if op.NodeID == "" {
		return skip("removeNode requires nodeId")
	}
	idx, ok := s.nodeLine[op.NodeID]
	if !ok {
		return skip("node %q not found", op.NodeID)
	}

	// Edges referencing the node are left dangling on purpose.
	s.removeLine(idx)
	delete(s.nodeLine, op.NodeID)
	delete(s.nodeLane, op.NodeID)

	return OpResult{Applied: true}
}

func (s *editState) updateNode(op Operation) OpResult {
	if op.NodeID == "" {
		return skip("updateNode requires nodeId")
	}
	if len(op.Updates) == 0 {
		return skip("updateNode requires updates")
	}
	idx, ok := s.nodeLine[op.NodeID]
	if !ok {
		return skip("node %q not found", op.NodeID)
	}

	line := s.lines[idx]
	for _, key := range sortedKeys(op.Updates) {
		line = upsertAttr(line, key, op.Updates[key])
	}
	s.lines[idx] = line

	return OpResult{Applied: true}
}

func (s *editState) insertEdge(op Operation) OpResult {
	if op.NewEdge == nil {
		return skip("insertEdge requires newEdge")
	}
	if op.NewEdge.From == "" || op.NewEdge.To == "" {
		return skip("insertEdge requires newEdge.from and newEdge.to")
	}

	srcLane, ok := s.nodeLane[op.NewEdge.From]
	if !ok {
		return skip("source node %q not found", op.NewEdge.From)
	}

	// The edge lands just before the source lane's closing brace. Nodes in
	// the synthetic default lane have no brace; those edges append at the
	// end of the document.
	idx := len(s.lines)
	if sp, ok := s.laneSpan[srcLane]; ok {
		idx = sp.end
	}

	s.insertLine(idx, renderEdgeLine(op.NewEdge, srcLane, s.nodeLane[op.NewEdge.To]))
	return OpResult{Applied: true}
}

func (s *editState) removeEdge(op Operation) OpResult {
	if op.NewEdge == nil {
		return skip("removeEdge requires newEdge")
	}
	if op.NewEdge.From == "" || op.NewEdge.To == "" {
		return skip("removeEdge requires newEdge.from and newEdge.to")
	}

	// First match in document order wins; duplicate edges between the same
	// endpoints need one removeEdge each.
	for i, raw := range s.lines {
		m := diagram.MatchLine(strings.TrimSpace(raw))
		if m.Kind == diagram.LineEdge && m.Edge.From == op.NewEdge.From && m.Edge.To == op.NewEdge.To {
			s.removeLine(i)
			return OpResult{Applied: true}
		}
	}
	return skip("edge %s -> %s not found", op.NewEdge.From, op.NewEdge.To)
}

// =============================================================================
// Line Rendering
// =============================================================================

func renderNodeLine(id string, shape diagram.Shape, label string, props map[string]string) string {
	var b strings.Builder
	b.WriteString(id)
	b.WriteString(": ")
	b.WriteString(string(shape))
	if label != "" {
		b.WriteString(` label:"` + diagram.EscapeLabel(label) + `"`)
	}
	for _, key := range sortedKeys(props) {
		b.WriteString(" " + key + `:"` + diagram.EscapeLabel(props[key]) + `"`)
	}
	return b.String()
}

func renderEdgeLine(e *EdgeSpec, srcLane, dstLane string) string {
	sh := e.SourceHandle
	if sh == "" {
		sh = diagram.HandleRight
	}
	th := e.TargetHandle
	if th == "" {
		th = diagram.HandleLeft
	}

	target := e.To
	if dstLane != "" && dstLane != srcLane {
		target = dstLane + "." + e.To
	}

	line := fmt.Sprintf("%s.handle(%s) -> %s.handle(%s)",
		e.From, strings.ToLower(string(sh)), target, strings.ToLower(string(th)))
	if e.Label != "" {
		line += ` [label="` + diagram.EscapeLabel(e.Label) + `"]`
	}
	return line
}

// upsertAttr replaces an existing key:"value" attribute on the line or
// appends it when absent. The existing separator (':' or '=') is preserved.
func upsertAttr(line, key, value string) string {
	re := regexp.MustCompile(`\b(` + regexp.QuoteMeta(key) + `\s*[:=]\s*)"(?:[^"\\]|\\.)*"`)
	escaped := diagram.EscapeLabel(value)
	if re.MatchString(line) {
		done := false
		return re.ReplaceAllStringFunc(line, func(m string) string {
			if done {
				return m
			}
			done = true
			sub := re.FindStringSubmatch(m)
			return sub[1] + `"` + escaped + `"`
		})
	}
	return line + ` ` + key + `:"` + escaped + `"`
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
