package editor

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"map-editor/core"
	"map-editor/scene"
)

// Mode is the select tool's interaction state.
type Mode int

const (
	// ModeReadyToDraw: no box exists yet.
	ModeReadyToDraw Mode = iota
	// ModeDrawn: a box exists, confirmed, not yet grabbable.
	ModeDrawn
	// ModeReadyToResize: the cursor is over a handle, a drag may start.
	ModeReadyToResize
	// ModeResizing: a drag is in progress.
	ModeResizing
)

// HandleFeedback is one renderable handle: position in view-plane
// coordinates, drawn as a white-filled, black-outlined circle or square.
type HandleFeedback struct {
	Kind   HandleKind
	Pos    mgl32.Vec2
	Circle bool
	Cursor Cursor
}

// SelectTool is the selection/transform state machine. It dispatches
// pointer and keyboard events from 2D and 3D viewports to the selection
// set and the transformation strategies, and commits history records.
//
// All state lives on the tool and is mutated synchronously from the
// event callbacks; there is no background work.
type SelectTool struct {
	scene   *scene.Scene
	history *History
	cfg     core.EditorConfig

	mode   Mode
	hasBox bool
	box    scene.Box

	// resize drag state
	origBox      scene.Box // snapshot taken on the first drag frame
	activeHandle HandleKind
	hasHandle    bool
	dragStart    mgl32.Vec2
	dragStarted  bool
	liveMatrix   mgl32.Mat4
	hasMatrix    bool

	// box draw state
	drawing    bool
	drawAnchor mgl32.Vec2
	downScreen mgl32.Vec2
	dragged    bool

	// activeViewport is a weak reference (an index, never a pointer the
	// tool owns) to the viewport the current interaction started in.
	activeViewport int

	strategies []TransformStrategy
	active     int // index into strategies, -1 when none
	lastUsed   int

	// 3D pick-cycle state
	pickCandidates []scene.RayHit
	pickChosen     int

	activated bool
}

func NewSelectTool(s *scene.Scene, h *History, cfg core.EditorConfig) *SelectTool {
	t := &SelectTool{
		scene:   s,
		history: h,
		cfg:     cfg,
		strategies: []TransformStrategy{
			NewResizeStrategy(cfg),
			NewRotateStrategy(cfg),
			NewSkewStrategy(cfg),
		},
		active:         -1,
		activeViewport: -1,
	}
	s.OnSelectionChanged(func() {
		if t.activated {
			t.selectionChanged()
		}
	})
	return t
}

// Activate enters the tool and recomputes state from the current
// selection.
func (t *SelectTool) Activate() {
	t.activated = true
	t.selectionChanged()
}

// Deactivate leaves the tool, clearing any active strategy and all
// transient interaction state.
func (t *SelectTool) Deactivate() {
	if t.mode == ModeResizing && t.dragStarted {
		t.scene.EndPreview()
	}
	t.activated = false
	t.active = -1
	t.drawing = false
	t.dragStarted = false
	t.hasMatrix = false
	t.clearPick()
}

// HandleHotkey never swallows global hotkeys.
func (t *SelectTool) HandleHotkey(key int) bool { return false }

// Mode returns the current interaction mode.
func (t *SelectTool) Mode() Mode { return t.mode }

// Box returns the tool's current box, if any.
func (t *SelectTool) Box() (scene.Box, bool) { return t.box, t.hasBox }

// ActiveStrategy returns the active transformation strategy, if any.
func (t *SelectTool) ActiveStrategy() (TransformStrategy, bool) {
	if t.active < 0 {
		return nil, false
	}
	return t.strategies[t.active], true
}

// selectionChanged recomputes the box from the selection: empty
// selection resets to ReadyToDraw with no box; otherwise the union
// bounding box across all selected objects becomes grabbable.
func (t *SelectTool) selectionChanged() {
	box, ok := t.scene.SelectionBox()
	if !ok {
		t.mode = ModeReadyToDraw
		t.hasBox = false
		return
	}
	t.box = box
	t.hasBox = true
	t.mode = ModeReadyToResize

	if box.IsValid() {
		if t.active < 0 {
			t.active = t.lastUsed
		}
	} else {
		t.active = -1
	}
}

// ── 3D viewport interaction ──────────────────────────────────────────────────

// MouseDown3D casts a pick ray, ranks candidates by distance, and
// selects the nearest. With the toggle modifier an already-selected
// chosen object is deselected instead; without it the pick replaces the
// whole selection.
func (t *SelectTool) MouseDown3D(vp *Viewport3D, x, y float32, mods Modifiers) {
	ray := vp.PickRay(x, y)
	hits := t.scene.IntersectRay(ray)
	if len(hits) == 0 {
		t.clearPick()
		return
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })

	t.pickCandidates = hits
	t.pickChosen = 0
	chosen := hits[0].Node

	switch {
	case mods.Toggle && chosen.Selected:
		commitSelectionChange(t.scene, t.history, nil, []*scene.Node{chosen}, mods.IgnoreGroups)
	case mods.Toggle:
		commitSelectionChange(t.scene, t.history, []*scene.Node{chosen}, nil, mods.IgnoreGroups)
	default:
		replaceSelection(t.scene, t.history, []*scene.Node{chosen}, mods.IgnoreGroups)
	}
}

// MouseUp3D ends pick-cycle mode.
func (t *SelectTool) MouseUp3D(mods Modifiers) {
	t.clearPick()
}

// IsCapturingWheel tells the event router whether wheel events belong to
// the tool (true only while a pick is in progress).
func (t *SelectTool) IsCapturingWheel() bool {
	return len(t.pickCandidates) > 0
}

// MouseWheel cycles through the ranked pick candidates under the cursor.
// Each tick queues a deselect for the object being left, advances with
// wraparound, and queues a select or deselect for the newly chosen
// object depending on its prior state. The commit never clears unrelated
// selection.
func (t *SelectTool) MouseWheel(delta float32, mods Modifiers) {
	if len(t.pickCandidates) == 0 {
		return // cycle ended
	}
	if delta == 0 {
		return // a zero tick carries no direction
	}
	dir := 1
	if delta < 0 {
		dir = -1
	}

	var selList, desList []*scene.Node
	cur := t.pickCandidates[t.pickChosen].Node
	if cur.Selected {
		desList = append(desList, cur)
	}

	n := len(t.pickCandidates)
	idx := (t.pickChosen + dir) % n
	if idx < 0 {
		idx += n
	}
	t.pickChosen = idx

	next := t.pickCandidates[idx].Node
	if next.Selected {
		desList = append(desList, next)
	} else {
		selList = append(selList, next)
	}

	commitSelectionChange(t.scene, t.history, selList, desList, mods.IgnoreGroups)
}

func (t *SelectTool) clearPick() {
	t.pickCandidates = nil
	t.pickChosen = 0
}

// ── 2D viewport interaction ──────────────────────────────────────────────────

// MouseDown2D either grabs a handle of the existing box or starts a
// fresh box draw. Starting a draw without the toggle modifier first
// commits a deselect-all and deactivates the strategy.
func (t *SelectTool) MouseDown2D(vpIdx int, vp *Viewport2D, sx, sy float32, mods Modifiers) {
	p := vp.ScreenToPlane(sx, sy)
	t.downScreen = mgl32.Vec2{sx, sy}
	t.dragged = false

	if t.active >= 0 && t.hasBox && (t.mode == ModeDrawn || t.mode == ModeReadyToResize) {
		if h, ok := t.handleAt(vp, p); ok {
			if mods.Toggle && h.Kind != HandleCenter {
				// Toggle the object under the cursor; the strategy is
				// left untouched.
				t.clickToggle(vp, p, mods)
				return
			}
			t.activeHandle = h.Kind
			t.hasHandle = true
			t.activeViewport = vpIdx
			t.dragStart = p
			t.dragStarted = false
			t.mode = ModeResizing
			return
		}
	}

	if !mods.Toggle {
		commitSelectionChange(t.scene, t.history, nil, t.scene.Selection(), mods.IgnoreGroups)
	}
	t.active = -1
	t.drawing = true
	t.drawAnchor = p
	t.activeViewport = vpIdx
}

// MouseMove2D advances a drag (resize or draw) or resolves the hovered
// handle.
func (t *SelectTool) MouseMove2D(vpIdx int, vp *Viewport2D, sx, sy float32, mods Modifiers) {
	p := vp.ScreenToPlane(sx, sy)

	if t.drawing || t.mode == ModeResizing {
		if mgl32.Vec2{sx, sy}.Sub(t.downScreen).Len() > t.cfg.DragThresholdPx {
			t.dragged = true
		}
	}

	switch {
	case t.mode == ModeResizing && t.hasHandle:
		if !t.dragged {
			return
		}
		if !t.dragStarted {
			// First drag frame: snapshot the box and open the preview.
			t.origBox = t.box
			t.dragStarted = true
			t.scene.BeginPreview()
		}
		strat := t.strategyForHandle(t.activeHandle)
		m, ok := strat.Matrix(t.activeHandle, t.origBox, vp, t.dragStart, p)
		t.hasMatrix = ok
		if ok {
			t.liveMatrix = m
			t.scene.SetPreview(viewToWorld(vp, m))
		}

	case t.drawing:
		if !t.dragged {
			return
		}
		a := vp.PlaneToWorld(t.drawAnchor, 0)
		b := vp.PlaneToWorld(p, 0)
		t.box = scene.BoxFromCorners(a, b).Expanded(vp.Expand(t.cfg.DepthExtent))
		t.hasBox = true

	default:
		t.updateHover(vp, p)
	}
}

// MouseUp2D completes a click, a box draw, or a transform drag.
func (t *SelectTool) MouseUp2D(vpIdx int, vp *Viewport2D, sx, sy float32, mods Modifiers) {
	p := vp.ScreenToPlane(sx, sy)

	switch {
	case t.mode == ModeResizing:
		if !t.dragStarted {
			// A plain click on a handle cycles the active strategy.
			t.mode = ModeReadyToResize
			t.cycleStrategy()
			return
		}
		t.finishTransform(vp, p, mods)

	case t.drawing:
		t.drawing = false
		if !t.dragged {
			t.hasBox = false
			t.mode = ModeReadyToDraw
			t.clickToggle(vp, p, mods)
			return
		}
		t.mode = ModeDrawn
	}
}

// Confirm commits a drawn box as the new selection: objects fully
// contained when the modifier is held, merely intersecting otherwise.
// The previous selection is replaced entirely.
func (t *SelectTool) Confirm(mods Modifiers) {
	if !t.hasBox || t.mode != ModeDrawn || !t.box.IsValid() {
		return
	}
	var nodes []*scene.Node
	if mods.Contained {
		nodes = t.scene.ContainedInBox(t.box)
	} else {
		nodes = t.scene.IntersectBox(t.box)
	}
	replaceSelection(t.scene, t.history, nodes, mods.IgnoreGroups)
}

// Cancel discards the drawn box, or aborts an in-flight drag without
// committing anything.
func (t *SelectTool) Cancel() {
	if t.mode == ModeResizing {
		if t.dragStarted {
			t.scene.EndPreview()
		}
		t.dragStarted = false
		t.hasMatrix = false
		t.mode = ModeReadyToResize
		return
	}
	t.drawing = false
	t.hasBox = false
	t.mode = ModeReadyToDraw
}

// ── drag internals ───────────────────────────────────────────────────────────

// strategyForHandle routes the center handle to the resize strategy
// regardless of the active one: dragging the interior always moves.
func (t *SelectTool) strategyForHandle(k HandleKind) TransformStrategy {
	if k == HandleCenter || t.active < 0 {
		return t.strategies[0]
	}
	return t.strategies[t.active]
}

func (t *SelectTool) cycleStrategy() {
	if t.active < 0 {
		return
	}
	t.active = (t.active + 1) % len(t.strategies)
	t.lastUsed = t.active
}

// finishTransform applies the final matrix to every top-level selected
// object and commits one history record. With the clone modifier on a
// center-handle drag, the selection's hierarchy is cloned into the scene
// root first, so the clones stay behind and the originals move.
func (t *SelectTool) finishTransform(vp *Viewport2D, p mgl32.Vec2, mods Modifiers) {
	strat := t.strategyForHandle(t.activeHandle)
	m, ok := strat.Matrix(t.activeHandle, t.origBox, vp, t.dragStart, p)

	t.scene.EndPreview()
	t.dragStarted = false
	t.hasMatrix = false
	t.hasHandle = false
	t.mode = ModeDrawn

	if ok {
		t.applyTransform(strat, viewToWorld(vp, m), mods)
	}
	t.selectionChanged()
}

func (t *SelectTool) applyTransform(strat TransformStrategy, world mgl32.Mat4, mods Modifiers) {
	targets := topLevel(t.scene.Selection())
	if len(targets) == 0 {
		return
	}

	var children []Command
	if mods.Clone && t.activeHandle == HandleCenter {
		clones := make([]*scene.Node, 0, len(targets))
		for _, n := range targets {
			c := n.Clone()
			t.scene.Root.AddChild(c)
			c.RecomputeBox()
			clones = append(clones, c)
		}
		children = append(children, &AddNodesCommand{Scene: t.scene, Nodes: clones})
	}

	before := make([]*scene.Node, len(targets))
	for i, n := range targets {
		before[i] = n.Clone()
	}
	for _, n := range targets {
		n.ApplyMatrix(world)
	}

	name := fmt.Sprintf("%s (%d objects)", strat.Name(), len(targets))
	tc := NewTransformCommand(name, targets, before)
	if len(children) > 0 {
		t.history.Do(&CompositeCommand{Name: name, Children: append(children, tc)})
	} else {
		t.history.Do(tc)
	}
}

// topLevel filters a selection down to objects whose parent is not
// itself selected, so nested children are not transformed twice.
func topLevel(nodes []*scene.Node) []*scene.Node {
	var out []*scene.Node
	for _, n := range nodes {
		if n.Parent == nil || !n.Parent.Selected {
			out = append(out, n)
		}
	}
	return out
}

// ── hit testing ──────────────────────────────────────────────────────────────

// handleAt resolves which handle region the plane point falls in: a
// padded square around each strategy handle, or the large center region
// covering the box interior.
func (t *SelectTool) handleAt(vp *Viewport2D, p mgl32.Vec2) (Handle, bool) {
	strat := t.strategies[t.active]
	pad := vp.PixelsToWorld(t.cfg.HandlePaddingPx)

	for _, h := range strat.Handles(t.box, vp) {
		if h.Kind == HandleCenter || !strat.FilterHandle(h.Kind) {
			continue
		}
		if math32.Abs(p.X()-h.Pos.X()) <= pad && math32.Abs(p.Y()-h.Pos.Y()) <= pad {
			return h, true
		}
	}

	min, max := vp.PlaneBox(t.box)
	if p.X() >= min.X() && p.X() <= max.X() && p.Y() >= min.Y() && p.Y() <= max.Y() {
		return Handle{Kind: HandleCenter, Pos: min.Add(max).Mul(0.5)}, true
	}
	return Handle{}, false
}

func (t *SelectTool) updateHover(vp *Viewport2D, p mgl32.Vec2) {
	if t.active < 0 || !t.hasBox {
		return
	}
	if h, ok := t.handleAt(vp, p); ok {
		t.activeHandle = h.Kind
		t.hasHandle = true
		t.mode = ModeReadyToResize
	} else {
		t.hasHandle = false
		if t.mode == ModeReadyToResize {
			t.mode = ModeDrawn
		}
	}
}

// HoverCursor returns the cursor hint for the hovered handle.
func (t *SelectTool) HoverCursor() Cursor {
	if t.active < 0 || !t.hasHandle {
		return CursorDefault
	}
	return t.strategyForHandle(t.activeHandle).CursorFor(t.activeHandle)
}

// clickToggle hit-tests a small tolerance box around the click point,
// expanded along the viewport's depth axis, and toggles the first node
// found as a non-replacing commit. An empty hit is a normal no-op.
func (t *SelectTool) clickToggle(vp *Viewport2D, p mgl32.Vec2, mods Modifiers) {
	tol := vp.PixelsToWorld(t.cfg.PickTolerancePx)
	center := vp.PlaneToWorld(p, 0)
	testBox := scene.Box{Min: center, Max: center}.
		Expanded(vp.PlaneToWorld(mgl32.Vec2{tol, tol}, t.cfg.DepthExtent))

	nodes := t.scene.Intersect2DTestBox(testBox)
	if len(nodes) == 0 {
		return
	}
	n := nodes[0]
	if n.Selected {
		commitSelectionChange(t.scene, t.history, nil, []*scene.Node{n}, mods.IgnoreGroups)
	} else {
		commitSelectionChange(t.scene, t.history, []*scene.Node{n}, nil, mods.IgnoreGroups)
	}
}

// ── render feedback ──────────────────────────────────────────────────────────

// FeedbackBox returns the box to render and the matrix to render it
// under. While resizing, the pre-transform box is returned under the
// live transform carried through the viewport basis, so it visually
// follows the drag.
func (t *SelectTool) FeedbackBox(vp *Viewport2D) (scene.Box, mgl32.Mat4, bool) {
	if !t.hasBox {
		return scene.Box{}, mgl32.Ident4(), false
	}
	if t.mode == ModeResizing && t.dragStarted && t.hasMatrix {
		return t.origBox, viewToWorld(vp, t.liveMatrix), true
	}
	return t.box, mgl32.Ident4(), true
}

// FeedbackHandles returns the renderable handle layout: only while a
// strategy is active and no drag is in flight.
func (t *SelectTool) FeedbackHandles(vp *Viewport2D) []HandleFeedback {
	if t.active < 0 || !t.hasBox || t.mode == ModeResizing {
		return nil
	}
	strat := t.strategies[t.active]
	var out []HandleFeedback
	for _, h := range strat.Handles(t.box, vp) {
		if !strat.FilterHandle(h.Kind) {
			continue
		}
		out = append(out, HandleFeedback{
			Kind:   h.Kind,
			Pos:    h.Pos,
			Circle: strat.CircularHandles(),
			Cursor: strat.CursorFor(h.Kind),
		})
	}
	return out
}

// viewToWorld expresses a view-space transform in world space:
// invert the basis, apply the transform, reapply the basis.
func viewToWorld(vp *Viewport2D, m mgl32.Mat4) mgl32.Mat4 {
	basis := vp.Basis()
	return basis.Inv().Mul4(m).Mul4(basis)
}
