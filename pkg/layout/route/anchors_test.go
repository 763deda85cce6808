package route

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boxroute/pkg/layout"
)

func TestCoreConnectors(t *testing.T) {
	got := CoreConnectors(box("a", 23, 0, 5, 3))
	want := []layout.Position{{X: 23, Y: 1}, {X: 25, Y: 0}, {X: 27, Y: 1}, {X: 25, Y: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CoreConnectors mismatch (-want +got):\n%s", diff)
	}
}

func TestAlternates(t *testing.T) {
	b := box("a", 0, 0, 20, 9)
	tests := []struct {
		name string
		used layout.Position
		want []layout.Position
	}{
		{"left", layout.Pos(0, 4), []layout.Position{{X: 0, Y: 2}, {X: 0, Y: 6}}},
		{"right", layout.Pos(19, 4), []layout.Position{{X: 19, Y: 2}, {X: 19, Y: 6}}},
		{"top", layout.Pos(10, 0), []layout.Position{{X: 5, Y: 0}, {X: 15, Y: 0}}},
		{"bottom", layout.Pos(10, 8), []layout.Position{{X: 5, Y: 8}, {X: 15, Y: 8}}},
		{"near corner", layout.Pos(0, 2), []layout.Position{{X: 0, Y: 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Alternates(tt.used, b)); diff != "" {
				t.Errorf("Alternates mismatch (-want +got):\n%s", diff)
			}
		})
	}

	// Small boxes have no room between the corners.
	if got := Alternates(layout.Pos(0, 1), box("s", 0, 0, 5, 3)); len(got) != 0 {
		t.Errorf("Alternates on a 3-row edge = %v", got)
	}
}

func TestConnectionPoints(t *testing.T) {
	b := box("a", 0, 0, 20, 9)

	free := ConnectionPoints(b, nil)
	if diff := cmp.Diff(CoreConnectors(b), free); diff != "" {
		t.Errorf("unblocked points mismatch (-want +got):\n%s", diff)
	}

	// Left midpoint and its upper alternate are taken.
	blocked := (*layout.PositionSet)(nil).Extend([]layout.Position{{X: 0, Y: 4}, {X: 0, Y: 2}})
	got := ConnectionPoints(b, blocked)
	want := []layout.Position{{X: 0, Y: 6}, {X: 10, Y: 0}, {X: 19, Y: 4}, {X: 10, Y: 8}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ConnectionPoints mismatch (-want +got):\n%s", diff)
	}
	for _, p := range got {
		if blocked.Contains(p) {
			t.Errorf("returned taken point %v", p)
		}
	}
}
