package arspaint

import (
	"strings"

	"golang.org/x/text/cases"
)

// Action is a document operation a host binds to a key or menu entry.
type Action uint8

const (
	ActionUndo Action = iota
	ActionRedo
	ActionBrush
	ActionEraser
	ActionLine
	ActionRectangle
	ActionEllipse
	ActionRectSelect
	ActionLassoSelect
	ActionTransform
	ActionDeselect
	ActionCommitTransform
	ActionAddLayer
	ActionSwapColors

	actionCount
)

var actionNames = [actionCount]string{
	ActionUndo:            "undo",
	ActionRedo:            "redo",
	ActionBrush:           "brush",
	ActionEraser:          "eraser",
	ActionLine:            "line",
	ActionRectangle:       "rectangle",
	ActionEllipse:         "ellipse",
	ActionRectSelect:      "rect-select",
	ActionLassoSelect:     "lasso-select",
	ActionTransform:       "transform",
	ActionDeselect:        "deselect",
	ActionCommitTransform: "commit-transform",
	ActionAddLayer:        "add-layer",
	ActionSwapColors:      "swap-colors",
}

// String returns the action name.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction looks an action up by name, ignoring case.
func ParseAction(name string) (Action, bool) {
	key := cases.Fold().String(strings.TrimSpace(name))
	for a := range actionCount {
		if actionNames[a] == key {
			return a, true
		}
	}
	return 0, false
}

// Do performs a. Reports whether it changed anything.
func (d *Document) Do(a Action) bool {
	switch a {
	case ActionUndo:
		return d.Undo()
	case ActionRedo:
		return d.Redo()
	case ActionBrush, ActionEraser, ActionLine, ActionRectangle, ActionEllipse,
		ActionRectSelect, ActionLassoSelect, ActionTransform:
		k := ToolKind(a - ActionBrush)
		changed := d.active != k
		d.SelectTool(k)
		return changed
	case ActionDeselect:
		had := d.selection.Active()
		d.Deselect()
		return had
	case ActionCommitTransform:
		return d.CommitTransform() != nil
	case ActionAddLayer:
		return d.AddLayer() >= 0
	case ActionSwapColors:
		d.SwapColors()
		return true
	default:
		return false
	}
}
