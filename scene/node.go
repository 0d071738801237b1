package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Class describes what kind of map object a node is.
type Class int

const (
	ClassWorld Class = iota
	ClassBrush
	ClassGroup
	ClassEntity
)

// Node represents an object in the map hierarchy: a solid brush, a
// group, or an entity. Geometry is the node's axis-aligned bounding box.
type Node struct {
	ID       uuid.UUID
	Name     string
	Class    Class
	Box      Box
	Parent   *Node `copier:"-"` // back-pointer only, never an owning reference
	Children []*Node
	Selected bool
	Visible  bool
}

func NewNode(name string, class Class) *Node {
	return &Node{
		ID:       uuid.New(),
		Name:     name,
		Class:    class,
		Children: make([]*Node, 0),
		Visible:  true,
	}
}

// NewBrush creates a solid leaf node spanning the given corners.
func NewBrush(name string, min, max mgl32.Vec3) *Node {
	n := NewNode(name, ClassBrush)
	n.Box = BoxFromCorners(min, max)
	return n
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Traverse visits the node and every descendant.
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.Children {
		child.Traverse(callback)
	}
}

// Descendants returns the node itself plus all nodes below it.
func (n *Node) Descendants() []*Node {
	var out []*Node
	n.Traverse(func(d *Node) { out = append(out, d) })
	return out
}

// Find finds a node by name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// TopGroup returns the topmost group-or-entity ancestor of the node,
// falling back to the node itself. The world root never qualifies.
func (n *Node) TopGroup() *Node {
	top := n
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Class == ClassGroup || p.Class == ClassEntity {
			top = p
		}
	}
	return top
}

// Clone deep-copies the node and its subtree. Clones get fresh IDs, a
// nil parent, and cleared selection flags.
func (n *Node) Clone() *Node {
	c := &Node{}
	_ = copier.Copy(c, n)
	c.ID = uuid.New()
	c.Parent = nil
	c.Selected = false
	c.Children = make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		cc := child.Clone()
		cc.Parent = c
		c.Children = append(c.Children, cc)
	}
	return c
}

// ApplyMatrix transforms the node's box and every descendant's box.
func (n *Node) ApplyMatrix(m mgl32.Mat4) {
	n.Box = n.Box.Transformed(m)
	for _, child := range n.Children {
		child.ApplyMatrix(m)
	}
}

// RecomputeBox rebuilds container boxes bottom-up as the union of their
// children. Leaf boxes are authoritative and kept as-is.
func (n *Node) RecomputeBox() {
	if len(n.Children) == 0 {
		return
	}
	for _, child := range n.Children {
		child.RecomputeBox()
	}
	box := n.Children[0].Box
	for _, child := range n.Children[1:] {
		box = box.Union(child.Box)
	}
	n.Box = box
}
