// Package diagram defines the lane-diagram graph model and the parser that
// produces it from diagram source text.
//
// A diagram is plain UTF-8 text made of lane blocks, node declarations, and
// edge declarations:
//
//	sales { # Sales
//	n1: circle label:"Start"
//	n2: rectangle label:"Validate"
//	n1.handle(right) -> n2.handle(left)
//	}
//
// [Parse] converts such text into a [Graph]: an ordered list of lanes, nodes,
// and edges plus derived statistics. Parsing is best-effort by design: lines
// that match no recognized pattern are silently dropped, so partial or
// invalid diagrams still yield a usable partial graph.
//
// The sibling packages diff and patch build on this model: diff compares two
// parsed versions of a diagram, patch applies structured edit operations to
// diagram text while preserving untouched lines verbatim.
package diagram
