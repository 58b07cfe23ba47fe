package diagram

import (
	"regexp"
	"strings"
)

// =============================================================================
// Line Matching
// =============================================================================

// LineKind identifies which production a source line matched.
type LineKind int

// Line kinds. LineSkip marks a line matching no recognized pattern; the
// parser drops such lines silently.
const (
	LineSkip LineKind = iota
	LineLaneOpen
	LineLaneClose
	LineNode
	LineEdge
)

// LaneDecl holds the captured fields of a lane-open line `id { # label`.
type LaneDecl struct {
	ID    string
	Label string // Trailing comment text, empty if absent
}

// NodeDecl holds the captured fields of a node line `id: shape attr:"v"...`.
// Attribute values are unescaped.
type NodeDecl struct {
	ID    string
	Shape Shape
	Attrs map[string]string
}

// EdgeDecl holds the captured fields of an edge line
// `ref.handle(dir) -> ref.handle(dir) [label="text"]`. Lane prefixes are
// empty when the reference is a bare node id. Handles are as written; the
// parser lower-cases them on storage.
type EdgeDecl struct {
	FromLane     string
	From         string
	SourceHandle string
	ToLane       string
	To           string
	TargetHandle string
	Label        string
}

// LineMatch is the per-line result fed into the parse accumulator. Exactly
// one of Lane, Node, Edge is meaningful, selected by Kind.
type LineMatch struct {
	Kind LineKind
	Lane LaneDecl
	Node NodeDecl
	Edge EdgeDecl
}

var (
	laneOpenRe = regexp.MustCompile(`^([A-Za-z_][\w-]*)\s*\{\s*(?:#\s*(.*?)\s*)?$`)
	nodeRe     = regexp.MustCompile(`^([A-Za-z_][\w-]*)\s*:\s*(circle|rectangle|diamond|taskbox)\b(.*)$`)
	attrRe     = regexp.MustCompile(`(\w+)\s*[:=]\s*"((?:[^"\\]|\\.)*)"`)
	edgeRe     = regexp.MustCompile(`^(?:([A-Za-z_][\w-]*)\.)?([A-Za-z_][\w-]*)\.handle\(\s*(\w+)\s*\)\s*->\s*(?:([A-Za-z_][\w-]*)\.)?([A-Za-z_][\w-]*)\.handle\(\s*(\w+)\s*\)\s*(?:\[\s*label\s*=\s*"((?:[^"\\]|\\.)*)"\s*\])?$`)
)

// MatchLine classifies a single trimmed source line. Patterns are tried in a
// fixed order: lane open, lane close, node, edge. A node line must not
// contain "->" so edge lines embedding a colon cannot misfire as nodes.
// Lines matching nothing yield LineSkip.
func MatchLine(line string) LineMatch {
	if m := laneOpenRe.FindStringSubmatch(line); m != nil {
		return LineMatch{Kind: LineLaneOpen, Lane: LaneDecl{ID: m[1], Label: m[2]}}
	}

	// No nesting: a close always returns to the top level.
	if line == "}" {
		return LineMatch{Kind: LineLaneClose}
	}

	if !strings.Contains(line, "->") {
		if m := nodeRe.FindStringSubmatch(line); m != nil {
			return LineMatch{Kind: LineNode, Node: NodeDecl{
				ID:    m[1],
				Shape: Shape(m[2]),
				Attrs: parseAttrs(m[3]),
			}}
		}
	}

	if m := edgeRe.FindStringSubmatch(line); m != nil {
		return LineMatch{Kind: LineEdge, Edge: EdgeDecl{
			FromLane:     m[1],
			From:         m[2],
			SourceHandle: m[3],
			ToLane:       m[4],
			To:           m[5],
			TargetHandle: m[6],
			Label:        UnescapeLabel(m[7]),
		}}
	}

	return LineMatch{Kind: LineSkip}
}

// parseAttrs extracts quoted key:"value" pairs from the remainder of a node
// line. Both ':' and '=' separators are accepted even though the DSL
// convention mandates ':' for node attributes; the leniency is deliberate.
func parseAttrs(rest string) map[string]string {
	attrs := map[string]string{}
	for _, m := range attrRe.FindAllStringSubmatch(rest, -1) {
		attrs[m[1]] = UnescapeLabel(m[2])
	}
	return attrs
}
