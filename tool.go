package arspaint

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/text/cases"
)

// ToolKind identifies one of the editor tools.
type ToolKind uint8

const (
	ToolBrush ToolKind = iota
	ToolEraser
	ToolLine
	ToolRectangle
	ToolEllipse
	ToolRectSelect
	ToolLassoSelect
	ToolTransform

	toolKindCount
)

var toolNames = [toolKindCount]string{
	ToolBrush:       "Brush",
	ToolEraser:      "Eraser",
	ToolLine:        "Line",
	ToolRectangle:   "Rectangle",
	ToolEllipse:     "Ellipse",
	ToolRectSelect:  "Rect Selection",
	ToolLassoSelect: "Lasso Selection",
	ToolTransform:   "Transform",
}

// String returns the display name of the tool.
func (k ToolKind) String() string {
	if k < toolKindCount {
		return toolNames[k]
	}
	return "Unknown"
}

// IsValid reports whether k names a tool.
func (k ToolKind) IsValid() bool { return k < toolKindCount }

// ParseToolKind looks a tool up by display name, ignoring case. Spaces may
// be omitted, so "rectselection" and "Rect Selection" both match.
func ParseToolKind(name string) (ToolKind, bool) {
	fold := cases.Fold()
	key := strings.ReplaceAll(fold.String(strings.TrimSpace(name)), " ", "")
	for k := range toolKindCount {
		if strings.ReplaceAll(fold.String(toolNames[k]), " ", "") == key {
			return k, true
		}
	}
	return ToolBrush, false
}

// Input is one tick of pointer state in image space.
type Input struct {
	// Pos is the pointer position; valid only when HasPos is set.
	Pos    image.Point
	HasPos bool
	// Pressed is true while the primary or secondary button is held.
	Pressed bool
	// Released is true on the tick the button goes up.
	Released bool
	// Secondary selects the secondary draw color.
	Secondary bool
}

// Press returns an input with the button held at (x, y).
func Press(x, y int) Input {
	return Input{Pos: image.Pt(x, y), HasPos: true, Pressed: true}
}

// ReleaseAt returns an input with the button going up at (x, y).
func ReleaseAt(x, y int) Input {
	return Input{Pos: image.Pt(x, y), HasPos: true, Released: true}
}

// Release returns an input with the button going up and no position.
func Release() Input {
	return Input{Released: true}
}

// Hover returns an input with the pointer at (x, y) and no button held.
func Hover(x, y int) Input {
	return Input{Pos: image.Pt(x, y), HasPos: true}
}

func (in Input) point() (Point, bool) {
	if !in.HasPos {
		return Point{}, false
	}
	return PointOf(in.Pos), true
}

// ToolContext is the state a tool may read and modify during one Update.
type ToolContext struct {
	Layers    *LayerStack
	Selection *Selection
	Settings  ToolSettings
	Color     color.NRGBA
}

// Tool is one interactive editing tool.
//
// Update is called once per tick. It may modify the scratch state of the
// tool, the active layer and the selection, and returns the command for a
// completed gesture or nil. The returned command has already been applied.
type Tool interface {
	Name() string
	Kind() ToolKind
	Update(ctx *ToolContext, in Input) Command
	// Preview returns the live stroke overlay while a gesture has touched
	// pixels, nil otherwise. The image is canvas sized.
	Preview() *image.NRGBA
	// Cursor returns the guides to draw around the pointer at pos.
	Cursor(pos Point, s ToolSettings) []Guide
	// Configure clamps the settings the tool uses to their allowed range.
	Configure(s *ToolSettings)
	// Abort drops any gesture in progress without producing a command.
	Abort(s *LayerStack)
}

// NewTool creates a tool of the given kind for a width x height canvas.
// Returns nil for an unknown kind.
func NewTool(k ToolKind, width, height int) Tool {
	switch k {
	case ToolBrush:
		return NewBrushTool(width, height)
	case ToolEraser:
		return NewEraserTool(width, height)
	case ToolLine:
		return NewLineTool(width, height)
	case ToolRectangle:
		return NewRectangleTool(width, height)
	case ToolEllipse:
		return NewEllipseTool(width, height)
	case ToolRectSelect:
		return NewRectSelectTool()
	case ToolLassoSelect:
		return NewLassoSelectTool()
	case ToolTransform:
		return NewTransformTool()
	default:
		return nil
	}
}

// GuideKind is the shape of a cursor guide.
type GuideKind uint8

const (
	// GuideCircle is a circle outline of Radius around Center.
	GuideCircle GuideKind = iota
	// GuideDot is a filled circle of Radius around Center.
	GuideDot
	// GuideRect is the outline of Rect.
	GuideRect
	// GuidePolyline connects Points in order.
	GuidePolyline
)

// Guide is a piece of cursor decoration in canvas coordinates.
// The host draws guides; the core never renders UI chrome.
type Guide struct {
	Kind   GuideKind
	Center Point
	Radius float64
	Rect   Rect
	Points []Point
	Color  color.NRGBA
}

// Guide colors.
var (
	guideWhite     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	guideRed       = color.NRGBA{R: 255, A: 255}
	guideLightBlue = color.NRGBA{R: 173, G: 216, B: 230, A: 255}
)
