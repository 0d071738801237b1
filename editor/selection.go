package editor

import (
	"github.com/google/uuid"

	"map-editor/scene"
)

// NormalizeSelection applies grouping rules to a raw object list. When
// grouping is respected each object is replaced by its topmost
// group-or-entity ancestor and expanded to that ancestor's full
// descendant set, with duplicates removed. When grouping is ignored the
// raw list passes through unchanged.
func NormalizeSelection(nodes []*scene.Node, ignoreGroups bool) []*scene.Node {
	if ignoreGroups {
		return nodes
	}

	seen := make(map[uuid.UUID]bool, len(nodes))
	var out []*scene.Node
	for _, n := range nodes {
		top := n.TopGroup()
		if seen[top.ID] {
			continue
		}
		for _, d := range top.Descendants() {
			if !seen[d.ID] {
				seen[d.ID] = true
				out = append(out, d)
			}
		}
	}
	return out
}

// commitSelectionChange normalizes both lists, prunes the deselect list
// against the select list (an object never gets both records in one
// action), applies the deltas, and appends one composite "Selection
// changed" record. Returns whether anything changed.
func commitSelectionChange(s *scene.Scene, h *History, selectList, deselectList []*scene.Node, ignoreGroups bool) bool {
	sel := NormalizeSelection(selectList, ignoreGroups)
	des := NormalizeSelection(deselectList, ignoreGroups)

	inSel := make(map[uuid.UUID]bool, len(sel))
	for _, n := range sel {
		inSel[n.ID] = true
	}

	// Only real deltas go into the record, so undo is exact.
	added := make(map[uuid.UUID]bool)
	var toDeselect []*scene.Node
	for _, n := range des {
		if n.Selected && !inSel[n.ID] && !added[n.ID] {
			added[n.ID] = true
			toDeselect = append(toDeselect, n)
		}
	}
	added = make(map[uuid.UUID]bool)
	var toSelect []*scene.Node
	for _, n := range sel {
		if !n.Selected && !added[n.ID] {
			added[n.ID] = true
			toSelect = append(toSelect, n)
		}
	}

	if len(toDeselect) == 0 && len(toSelect) == 0 {
		return false
	}

	h.Do(&CompositeCommand{
		Name: "Selection changed",
		Children: []Command{
			&DeselectCommand{Scene: s, Nodes: toDeselect},
			&SelectCommand{Scene: s, Nodes: toSelect},
		},
	})
	s.NotifySelectionChanged()
	return true
}

// replaceSelection commits a selection that wholly replaces the current
// one.
func replaceSelection(s *scene.Scene, h *History, selectList []*scene.Node, ignoreGroups bool) bool {
	return commitSelectionChange(s, h, selectList, s.Selection(), ignoreGroups)
}
