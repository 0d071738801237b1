package editor

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"map-editor/scene"
)

// recordingCommand logs execute/undo calls for ordering checks.
type recordingCommand struct {
	name string
	log  *[]string
}

func (c *recordingCommand) Execute()            { *c.log = append(*c.log, "do:"+c.name) }
func (c *recordingCommand) Undo()               { *c.log = append(*c.log, "undo:"+c.name) }
func (c *recordingCommand) Description() string { return c.name }

func TestHistoryDoUndoRedo(t *testing.T) {
	var log []string
	h := NewHistory(10)

	h.Do(&recordingCommand{name: "a", log: &log})
	h.Do(&recordingCommand{name: "b", log: &log})

	if !h.CanUndo() || h.CanRedo() {
		t.Error("History: expected undo available, redo empty")
	}

	if !h.Undo() {
		t.Fatal("Undo: expected success")
	}
	if log[len(log)-1] != "undo:b" {
		t.Errorf("Undo: expected last action undone first, got %v", log[len(log)-1])
	}

	if !h.Redo() {
		t.Fatal("Redo: expected success")
	}
	if log[len(log)-1] != "do:b" {
		t.Errorf("Redo: expected replay of b, got %v", log[len(log)-1])
	}

	// Undo on an empty stack fails cleanly.
	h.Undo()
	h.Undo()
	if h.Undo() {
		t.Error("Undo: expected failure on empty stack")
	}
}

func TestHistoryNewActionClearsRedo(t *testing.T) {
	var log []string
	h := NewHistory(10)

	h.Do(&recordingCommand{name: "a", log: &log})
	h.Undo()
	if !h.CanRedo() {
		t.Fatal("History: expected redo after undo")
	}

	h.Do(&recordingCommand{name: "b", log: &log})
	if h.CanRedo() {
		t.Error("History: expected redo cleared by new action")
	}
}

func TestHistoryBoundedDepth(t *testing.T) {
	var log []string
	h := NewHistory(3)

	for i := 0; i < 5; i++ {
		h.Do(&recordingCommand{name: fmt.Sprintf("c%d", i), log: &log})
	}

	// Only the newest 3 remain undoable.
	undone := 0
	for h.Undo() {
		undone++
	}
	if undone != 3 {
		t.Errorf("History: expected depth bounded at 3, undid %d", undone)
	}
}

func TestCompositeUndoReversesChildren(t *testing.T) {
	var log []string
	c := &CompositeCommand{
		Name: "pair",
		Children: []Command{
			&recordingCommand{name: "first", log: &log},
			&recordingCommand{name: "second", log: &log},
		},
	}

	c.Execute()
	c.Undo()

	want := []string{"do:first", "do:second", "undo:second", "undo:first"}
	if len(log) != len(want) {
		t.Fatalf("Composite: expected %d entries, got %d", len(want), len(log))
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Composite: expected %v at %d, got %v", want[i], i, log[i])
		}
	}
}

func TestSelectDeselectCommands(t *testing.T) {
	s := scene.NewScene()
	a := scene.NewBrush("a", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	s.AddNode(a)

	sel := &SelectCommand{Scene: s, Nodes: []*scene.Node{a}}
	sel.Execute()
	if !a.Selected {
		t.Error("SelectCommand: expected node selected")
	}
	sel.Undo()
	if a.Selected {
		t.Error("SelectCommand: expected undo to deselect")
	}

	s.Select(a)
	des := &DeselectCommand{Scene: s, Nodes: []*scene.Node{a}}
	des.Execute()
	if a.Selected {
		t.Error("DeselectCommand: expected node deselected")
	}
	des.Undo()
	if !a.Selected {
		t.Error("DeselectCommand: expected undo to reselect")
	}
}

func TestTransformCommandRestores(t *testing.T) {
	group := scene.NewNode("group", scene.ClassGroup)
	brush := scene.NewBrush("brush", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2})
	group.AddChild(brush)
	group.RecomputeBox()

	targets := []*scene.Node{group}
	before := []*scene.Node{group.Clone()}
	origGroupBox := group.Box
	origBrushBox := brush.Box

	group.ApplyMatrix(mgl32.Translate3D(10, 0, 0))
	cmd := NewTransformCommand("Move", targets, before)

	movedGroupBox := group.Box
	movedBrushBox := brush.Box

	cmd.Undo()
	if group.Box != origGroupBox || brush.Box != origBrushBox {
		t.Error("TransformCommand: expected undo to restore subtree geometry")
	}

	cmd.Execute()
	if group.Box != movedGroupBox || brush.Box != movedBrushBox {
		t.Error("TransformCommand: expected redo to restore moved geometry")
	}

	// Execute is replay-safe on an already-applied state.
	cmd.Execute()
	if group.Box != movedGroupBox {
		t.Error("TransformCommand: expected repeated execute to be stable")
	}
}

func TestAddNodesCommand(t *testing.T) {
	s := scene.NewScene()
	clone := scene.NewBrush("clone", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	s.AddNode(clone)

	cmd := &AddNodesCommand{Scene: s, Nodes: []*scene.Node{clone}}

	// The clone is already in the scene at commit time; the first
	// execute must not add it twice.
	cmd.Execute()
	if len(s.Root.Children) != 1 {
		t.Errorf("AddNodesCommand: expected 1 child, got %d", len(s.Root.Children))
	}

	cmd.Undo()
	if len(s.Root.Children) != 0 || clone.Parent != nil {
		t.Error("AddNodesCommand: expected undo to detach the clone")
	}

	cmd.Execute()
	if len(s.Root.Children) != 1 || clone.Parent != s.Root {
		t.Error("AddNodesCommand: expected redo to reattach the clone")
	}
}
