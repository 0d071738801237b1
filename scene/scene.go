package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Scene is the editor's document: the map hierarchy, the selection set,
// and the live transform preview consumed by the renderer.
//
// The selection invariant: membership of the selection slice is exactly
// the set of nodes whose Selected flag is true. Select and Deselect are
// the only mutators and keep both in sync.
type Scene struct {
	Root *Node

	selection []*Node
	observers []func()

	previewMatrix mgl32.Mat4
	previewActive bool
}

func NewScene() *Scene {
	return &Scene{
		Root: NewNode("worldspawn", ClassWorld),
	}
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) RemoveNode(node *Node) {
	if node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
}

// Select marks the node selected and adds it to the selection set.
// Selecting an already-selected node is a no-op.
func (s *Scene) Select(node *Node) {
	if node.Selected {
		return
	}
	node.Selected = true
	s.selection = append(s.selection, node)
}

// Deselect clears the node's flag and removes it from the selection set.
func (s *Scene) Deselect(node *Node) {
	if !node.Selected {
		return
	}
	node.Selected = false
	for i, n := range s.selection {
		if n == node {
			s.selection = append(s.selection[:i], s.selection[i+1:]...)
			return
		}
	}
}

func (s *Scene) DeselectAll() {
	for _, n := range s.selection {
		n.Selected = false
	}
	s.selection = s.selection[:0]
}

func (s *Scene) IsSelected(node *Node) bool {
	return node.Selected
}

// Selection returns a copy of the current selection set.
func (s *Scene) Selection() []*Node {
	out := make([]*Node, len(s.selection))
	copy(out, s.selection)
	return out
}

func (s *Scene) HasSelection() bool {
	return len(s.selection) > 0
}

// SelectionBox returns the union bounding box across the selection.
func (s *Scene) SelectionBox() (Box, bool) {
	if len(s.selection) == 0 {
		return Box{}, false
	}
	box := s.selection[0].Box
	for _, n := range s.selection[1:] {
		box = box.Union(n.Box)
	}
	return box, true
}

// OnSelectionChanged registers an observer. Observers are invoked by
// NotifySelectionChanged after each committed selection change; there is
// no global event bus.
func (s *Scene) OnSelectionChanged(fn func()) {
	s.observers = append(s.observers, fn)
}

func (s *Scene) NotifySelectionChanged() {
	for _, fn := range s.observers {
		fn()
	}
}

// BeginPreview starts a live transform preview. The preview never
// mutates geometry; it is a matrix the renderer applies on top of the
// selection until EndPreview or a committed transform replaces it.
func (s *Scene) BeginPreview() {
	s.previewActive = true
	s.previewMatrix = mgl32.Ident4()
}

func (s *Scene) SetPreview(m mgl32.Mat4) {
	s.previewMatrix = m
}

func (s *Scene) EndPreview() {
	s.previewActive = false
}

func (s *Scene) Preview() (mgl32.Mat4, bool) {
	return s.previewMatrix, s.previewActive
}
