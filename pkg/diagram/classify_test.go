package diagram

import "testing"

func TestClassifyLane(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		label string
		want  LaneType
	}{
		{"Actor", "customer", "", LaneActor},
		{"ActorFromLabel", "l1", "End User", LaneActor},
		{"System", "Database", "", LaneSystem},
		{"SystemFromLabel", "l2", "Payments API", LaneSystem},
		{"CaseInsensitive", "CUSTOMER", "", LaneActor},
		{"ActorBeatsSystem", "client", "backend", LaneActor},
		{"Unknown", "sales", "Sales", LaneUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyLane(tt.id, tt.label); got != tt.want {
				t.Errorf("ClassifyLane(%q, %q) = %q, want %q", tt.id, tt.label, got, tt.want)
			}
		})
	}
}

func TestClassifyNode(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		label string
		want  Kind
	}{
		{"CircleDefaultsToStart", ShapeCircle, "Anything", KindStart},
		{"CircleEnd", ShapeCircle, "End of flow", KindEnd},
		{"CircleComplete", ShapeCircle, "Order Complete", KindEnd},
		{"CircleFinish", ShapeCircle, "FINISH", KindEnd},
		{"DiamondAlwaysDecision", ShapeDiamond, "End", KindDecision},
		{"TaskboxAlwaysTask", ShapeTaskbox, "Finish line", KindTask},
		{"RectangleAlwaysStep", ShapeRectangle, "Complete payment", KindStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyNode(tt.shape, tt.label); got != tt.want {
				t.Errorf("ClassifyNode(%q, %q) = %q, want %q", tt.shape, tt.label, got, tt.want)
			}
		})
	}
}
