package diff

import (
	"reflect"
	"testing"
)

const baseDiagram = `sales { # Sales
n1: circle label:"Start"
n2: rectangle label:"Validate"
n1.handle(right) -> n2.handle(left)
}`

func TestDiffIdentical(t *testing.T) {
	texts := []string{
		"",
		baseDiagram,
		"not a diagram at all",
	}
	for _, text := range texts {
		r := Diff(text, text)
		if !r.Empty() {
			t.Errorf("Diff(X, X) not empty for %q: %+v", text, r)
		}
		if r.Summary != "No changes detected" {
			t.Errorf("summary = %q, want %q", r.Summary, "No changes detected")
		}
	}
}

func TestDiffCategories(t *testing.T) {
	tests := []struct {
		name    string
		old     string
		new     string
		check   func(t *testing.T, r *Result)
		summary string
	}{
		{
			name: "NodeAdded",
			old:  "n1: circle",
			new:  "n1: circle\nn2: rectangle",
			check: func(t *testing.T, r *Result) {
				if !reflect.DeepEqual(r.NodesAdded, []string{"n2"}) {
					t.Errorf("nodesAdded = %v, want [n2]", r.NodesAdded)
				}
			},
			summary: "1 node added",
		},
		{
			name: "NodeRemoved",
			old:  "n1: circle\nn2: rectangle",
			new:  "n1: circle",
			check: func(t *testing.T, r *Result) {
				if !reflect.DeepEqual(r.NodesRemoved, []string{"n2"}) {
					t.Errorf("nodesRemoved = %v, want [n2]", r.NodesRemoved)
				}
			},
			summary: "1 node removed",
		},
		{
			name: "NodeLabelUpdated",
			old:  `n1: rectangle label:"Old"`,
			new:  `n1: rectangle label:"New"`,
			check: func(t *testing.T, r *Result) {
				if len(r.NodesUpdated) != 1 {
					t.Fatalf("nodesUpdated = %v, want one entry", r.NodesUpdated)
				}
				want := map[string]FieldChange{"label": {Old: "Old", New: "New"}}
				if !reflect.DeepEqual(r.NodesUpdated[0].Fields, want) {
					t.Errorf("fields = %v, want %v", r.NodesUpdated[0].Fields, want)
				}
			},
			summary: "1 node updated",
		},
		{
			name: "LaneMoveIsUpdateNotAddRemove",
			old:  "a {\nn1: circle\n}\nb {\n}",
			new:  "a {\n}\nb {\nn1: circle\n}",
			check: func(t *testing.T, r *Result) {
				if len(r.NodesAdded) != 0 || len(r.NodesRemoved) != 0 {
					t.Errorf("lane move reported as add/remove: %+v", r)
				}
				if len(r.NodesUpdated) != 1 {
					t.Fatalf("nodesUpdated = %v, want one entry", r.NodesUpdated)
				}
				want := map[string]FieldChange{"laneId": {Old: "a", New: "b"}}
				if !reflect.DeepEqual(r.NodesUpdated[0].Fields, want) {
					t.Errorf("fields = %v, want %v", r.NodesUpdated[0].Fields, want)
				}
			},
			summary: "1 node updated",
		},
		{
			name: "ShapeAndLabelBothReported",
			old:  `n1: circle label:"Start"`,
			new:  `n1: diamond label:"Choose"`,
			check: func(t *testing.T, r *Result) {
				fields := r.NodesUpdated[0].Fields
				if len(fields) != 2 {
					t.Errorf("fields = %v, want shape and label", fields)
				}
			},
			summary: "1 node updated",
		},
		{
			name: "EdgeAdded",
			old:  "n1: circle\nn2: circle",
			new:  "n1: circle\nn2: circle\nn1.handle(right) -> n2.handle(left)",
			check: func(t *testing.T, r *Result) {
				if !reflect.DeepEqual(r.EdgesAdded, []EdgeRef{{From: "n1", To: "n2"}}) {
					t.Errorf("edgesAdded = %v", r.EdgesAdded)
				}
			},
			summary: "1 edge added",
		},
		{
			name:    "EdgeLabelOnlyChangeInvisible",
			old:     "n1: circle\nn2: circle\nn1.handle(right) -> n2.handle(left)",
			new:     "n1: circle\nn2: circle\nn1.handle(right) -> n2.handle(left) [label=\"yes\"]",
			summary: "No changes detected",
		},
		{
			name:    "EdgeReorderInvisible",
			old:     "n1: circle\nn2: circle\nn3: circle\nn1.handle(right) -> n2.handle(left)\nn2.handle(right) -> n3.handle(left)",
			new:     "n1: circle\nn2: circle\nn3: circle\nn2.handle(right) -> n3.handle(left)\nn1.handle(right) -> n2.handle(left)",
			summary: "No changes detected",
		},
		{
			name: "LaneAddedAndRemoved",
			old:  "a {\n}",
			new:  "b {\n}",
			check: func(t *testing.T, r *Result) {
				if !reflect.DeepEqual(r.LanesAdded, []string{"b"}) || !reflect.DeepEqual(r.LanesRemoved, []string{"a"}) {
					t.Errorf("lanes = +%v -%v, want +[b] -[a]", r.LanesAdded, r.LanesRemoved)
				}
			},
			summary: "1 lane added, 1 lane removed",
		},
		{
			name:    "PluralSummary",
			old:     "",
			new:     "n1: circle\nn2: circle\nn3: circle",
			summary: "3 nodes added",
		},
		{
			name:    "ClauseOrderFixed",
			old:     "a {\nn1: circle label:\"Start\"\nn2: circle\n}",
			new:     "a {\nn1: circle label:\"Begin\"\nn3: circle\n}\nb {\n}",
			summary: "1 node added, 1 node removed, 1 node updated, 1 lane added",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Diff(tt.old, tt.new)
			if tt.check != nil {
				tt.check(t, r)
			}
			if tt.summary != "" && r.Summary != tt.summary {
				t.Errorf("summary = %q, want %q", r.Summary, tt.summary)
			}
		})
	}
}

func TestDiffAntisymmetry(t *testing.T) {
	oldText := "a {\nn1: circle label:\"Start\"\nn2: rectangle\n}"
	newText := "a {\nn1: circle label:\"Begin\"\nn3: rectangle\n}"

	fwd := Diff(oldText, newText)
	rev := Diff(newText, oldText)

	if !reflect.DeepEqual(fwd.NodesAdded, rev.NodesRemoved) {
		t.Errorf("fwd added %v != rev removed %v", fwd.NodesAdded, rev.NodesRemoved)
	}
	if !reflect.DeepEqual(fwd.NodesRemoved, rev.NodesAdded) {
		t.Errorf("fwd removed %v != rev added %v", fwd.NodesRemoved, rev.NodesAdded)
	}

	if len(fwd.NodesUpdated) != 1 || len(rev.NodesUpdated) != 1 {
		t.Fatalf("updated = %v / %v, want one each", fwd.NodesUpdated, rev.NodesUpdated)
	}
	f := fwd.NodesUpdated[0].Fields["label"]
	b := rev.NodesUpdated[0].Fields["label"]
	if f.Old != b.New || f.New != b.Old {
		t.Errorf("field changes not mirrored: %+v vs %+v", f, b)
	}
}
