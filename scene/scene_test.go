package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSelectionInvariant(t *testing.T) {
	s := NewScene()
	a := NewBrush("a", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	b := NewBrush("b", mgl32.Vec3{2, 2, 2}, mgl32.Vec3{3, 3, 3})
	s.AddNode(a)
	s.AddNode(b)

	s.Select(a)
	if !a.Selected || len(s.Selection()) != 1 {
		t.Error("Select: expected flag set and membership added")
	}

	// Selecting twice never duplicates membership.
	s.Select(a)
	if len(s.Selection()) != 1 {
		t.Errorf("Select: expected 1 entry after double select, got %d", len(s.Selection()))
	}

	s.Select(b)
	s.Deselect(a)
	if a.Selected {
		t.Error("Deselect: expected flag cleared")
	}
	if sel := s.Selection(); len(sel) != 1 || sel[0] != b {
		t.Errorf("Deselect: expected only b selected, got %d entries", len(sel))
	}

	// Deselecting an unselected node is a no-op.
	s.Deselect(a)
	if len(s.Selection()) != 1 {
		t.Error("Deselect: expected no-op on unselected node")
	}

	s.DeselectAll()
	if b.Selected || s.HasSelection() {
		t.Error("DeselectAll: expected empty selection and cleared flags")
	}
}

func TestSelectionBox(t *testing.T) {
	s := NewScene()
	a := NewBrush("a", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	b := NewBrush("b", mgl32.Vec3{2, 2, 2}, mgl32.Vec3{3, 3, 3})
	s.AddNode(a)
	s.AddNode(b)

	if _, ok := s.SelectionBox(); ok {
		t.Error("SelectionBox: expected none for empty selection")
	}

	s.Select(a)
	s.Select(b)
	box, ok := s.SelectionBox()
	if !ok {
		t.Fatal("SelectionBox: expected a box")
	}
	if box.Min != (mgl32.Vec3{0, 0, 0}) || box.Max != (mgl32.Vec3{3, 3, 3}) {
		t.Errorf("SelectionBox: expected union (0,0,0)..(3,3,3), got %v..%v", box.Min, box.Max)
	}
}

func TestSelectionObservers(t *testing.T) {
	s := NewScene()
	calls := 0
	s.OnSelectionChanged(func() { calls++ })
	s.OnSelectionChanged(func() { calls += 10 })

	s.NotifySelectionChanged()
	if calls != 11 {
		t.Errorf("NotifySelectionChanged: expected both observers invoked, got %d", calls)
	}
}

func TestPreviewLifecycle(t *testing.T) {
	s := NewScene()

	if _, active := s.Preview(); active {
		t.Error("Preview: expected inactive before BeginPreview")
	}

	s.BeginPreview()
	m, active := s.Preview()
	if !active {
		t.Error("Preview: expected active after BeginPreview")
	}
	if m != mgl32.Ident4() {
		t.Error("Preview: expected identity at start")
	}

	want := mgl32.Translate3D(1, 2, 3)
	s.SetPreview(want)
	if m, _ := s.Preview(); m != want {
		t.Errorf("Preview: expected set matrix, got %v", m)
	}

	s.EndPreview()
	if _, active := s.Preview(); active {
		t.Error("Preview: expected inactive after EndPreview")
	}
}

func TestRemoveNode(t *testing.T) {
	s := NewScene()
	a := NewBrush("a", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	s.AddNode(a)

	s.RemoveNode(a)
	if a.Parent != nil || len(s.Root.Children) != 0 {
		t.Error("RemoveNode: expected node detached from root")
	}

	// Removing a detached node is a no-op.
	s.RemoveNode(a)
}
