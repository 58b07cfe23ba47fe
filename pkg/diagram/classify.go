package diagram

import "strings"

// Keyword sets for heuristic classification. These are deliberately decoupled
// from structural parsing so they can be tuned without touching the scanner.
var (
	actorKeywords  = []string{"user", "customer", "client", "actor", "person", "human"}
	systemKeywords = []string{"api", "server", "database", "db", "service", "system", "backend", "frontend"}
	endKeywords    = []string{"end", "complete", "finish"}
)

// ClassifyLane infers a lane's type from its id and label using
// case-insensitive substring matching. The result is advisory: a lane named
// "Database" is typed as a system, but that never affects parsing.
func ClassifyLane(id, label string) LaneType {
	text := strings.ToLower(id + " " + label)
	if containsAny(text, actorKeywords) {
		return LaneActor
	}
	if containsAny(text, systemKeywords) {
		return LaneSystem
	}
	return LaneUnknown
}

// ClassifyNode infers a node's kind from its shape and label. Diamonds are
// always decisions, taskboxes always tasks, rectangles always steps. Circles
// default to start unless the label carries an end keyword.
func ClassifyNode(shape Shape, label string) Kind {
	switch shape {
	case ShapeDiamond:
		return KindDecision
	case ShapeTaskbox:
		return KindTask
	case ShapeCircle:
		if containsAny(strings.ToLower(label), endKeywords) {
			return KindEnd
		}
		return KindStart
	default:
		return KindStep
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
