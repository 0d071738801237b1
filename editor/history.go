package editor

import (
	"fmt"

	"map-editor/scene"
)

// Command represents an undoable editor action. Execute must be safe to
// call on an already-applied state (redo replays it verbatim).
type Command interface {
	Execute()
	Undo()
	Description() string
}

// History manages bounded undo/redo stacks of committed records.
type History struct {
	undoStack []Command
	redoStack []Command
	maxDepth  int
}

func NewHistory(maxDepth int) *History {
	return &History{
		undoStack: make([]Command, 0, maxDepth),
		redoStack: make([]Command, 0, maxDepth),
		maxDepth:  maxDepth,
	}
}

// Do executes a command and pushes it to the undo stack.
func (h *History) Do(cmd Command) {
	cmd.Execute()
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[1:]
	}
	// Clear redo stack on new action
	h.redoStack = h.redoStack[:0]
}

// Undo reverts the last action.
func (h *History) Undo() bool {
	if len(h.undoStack) == 0 {
		return false
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	cmd.Undo()
	h.redoStack = append(h.redoStack, cmd)
	return true
}

// Redo reapplies the last undone action.
func (h *History) Redo() bool {
	if len(h.redoStack) == 0 {
		return false
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	cmd.Execute()
	h.undoStack = append(h.undoStack, cmd)
	return true
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

func (h *History) Clear() {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
}

// --- Concrete Commands ---

// CompositeCommand groups sub-records under one logical action. Undo
// runs the children in reverse so intermediate states replay exactly.
type CompositeCommand struct {
	Name     string
	Children []Command
}

func (c *CompositeCommand) Execute() {
	for _, child := range c.Children {
		child.Execute()
	}
}

func (c *CompositeCommand) Undo() {
	for i := len(c.Children) - 1; i >= 0; i-- {
		c.Children[i].Undo()
	}
}

func (c *CompositeCommand) Description() string { return c.Name }

// SelectCommand adds a fixed list of nodes to the selection.
type SelectCommand struct {
	Scene *scene.Scene
	Nodes []*scene.Node
}

func (c *SelectCommand) Execute() {
	for _, n := range c.Nodes {
		c.Scene.Select(n)
	}
}

func (c *SelectCommand) Undo() {
	for _, n := range c.Nodes {
		c.Scene.Deselect(n)
	}
}

func (c *SelectCommand) Description() string { return fmt.Sprintf("Select %d objects", len(c.Nodes)) }

// DeselectCommand removes a fixed list of nodes from the selection.
type DeselectCommand struct {
	Scene *scene.Scene
	Nodes []*scene.Node
}

func (c *DeselectCommand) Execute() {
	for _, n := range c.Nodes {
		c.Scene.Deselect(n)
	}
}

func (c *DeselectCommand) Undo() {
	for _, n := range c.Nodes {
		c.Scene.Select(n)
	}
}

func (c *DeselectCommand) Description() string {
	return fmt.Sprintf("Deselect %d objects", len(c.Nodes))
}

// TransformCommand records a geometry change as before/after snapshot
// clones of each affected subtree. Execute restores the after state and
// Undo the before state, so replay needs nothing beyond the record and
// the live nodes.
type TransformCommand struct {
	Targets []*scene.Node
	Before  []*scene.Node
	After   []*scene.Node
	Name    string
}

// NewTransformCommand captures the after-snapshots from the live nodes;
// before-snapshots must have been cloned prior to applying the change.
func NewTransformCommand(name string, targets, before []*scene.Node) *TransformCommand {
	after := make([]*scene.Node, len(targets))
	for i, t := range targets {
		after[i] = t.Clone()
	}
	return &TransformCommand{Targets: targets, Before: before, After: after, Name: name}
}

func (c *TransformCommand) Execute() {
	for i, t := range c.Targets {
		restoreGeometry(t, c.After[i])
	}
}

func (c *TransformCommand) Undo() {
	for i, t := range c.Targets {
		restoreGeometry(t, c.Before[i])
	}
}

func (c *TransformCommand) Description() string { return c.Name }

// restoreGeometry copies box state from a snapshot subtree onto the
// structurally identical live subtree.
func restoreGeometry(dst, src *scene.Node) {
	dst.Box = src.Box
	for i := range dst.Children {
		if i < len(src.Children) {
			restoreGeometry(dst.Children[i], src.Children[i])
		}
	}
}

// AddNodesCommand records cloned objects entering the scene root, so a
// clone-on-move commit undoes cleanly.
type AddNodesCommand struct {
	Scene *scene.Scene
	Nodes []*scene.Node
}

func (c *AddNodesCommand) Execute() {
	for _, n := range c.Nodes {
		if n.Parent == nil {
			c.Scene.AddNode(n)
		}
	}
}

func (c *AddNodesCommand) Undo() {
	for _, n := range c.Nodes {
		c.Scene.RemoveNode(n)
	}
}

func (c *AddNodesCommand) Description() string { return fmt.Sprintf("Add %d objects", len(c.Nodes)) }
