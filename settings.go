package arspaint

import "github.com/gogpu/arspaint/internal/num"

// Ranges enforced by ToolSettings.Clamp.
const (
	MinBrushSize          = 1.0
	MaxBrushSize          = 500.0
	MaxBrushStabilization = 0.95
	MinBrushSpacing       = 0.01
	MaxBrushSpacing       = 2.0
	MinEraserSize         = 1.0
	MaxEraserSize         = 100.0
	MinLineWidth          = 1.0
	MaxLineWidth          = 20.0
)

// ToolSettings holds the parameters shared by the tools.
type ToolSettings struct {
	// BrushSize is the brush radius in pixels.
	BrushSize float64
	// BrushStabilization is the weight of the previous smoothed position,
	// in [0, 0.95]. Higher values lag more and smooth more.
	BrushStabilization float64
	// BrushSpacing is the distance between stamps as a fraction of BrushSize.
	BrushSpacing float64
	// EraserSize is the eraser radius in pixels.
	EraserSize float64
	// LineWidth is the stamp radius used by the line, rectangle and ellipse tools.
	LineWidth float64
}

// DefaultToolSettings returns the settings a new document starts with.
func DefaultToolSettings() ToolSettings {
	return ToolSettings{
		BrushSize:          5,
		BrushStabilization: 0.5,
		BrushSpacing:       0.1,
		EraserSize:         10,
		LineWidth:          2,
	}
}

// Clamp limits every field to its allowed range.
func (s *ToolSettings) Clamp() {
	s.clampBrush()
	s.clampEraser()
	s.clampLine()
}

func (s *ToolSettings) clampBrush() {
	s.BrushSize = num.Clamp(s.BrushSize, MinBrushSize, MaxBrushSize)
	s.BrushStabilization = num.Clamp(s.BrushStabilization, 0, MaxBrushStabilization)
	s.BrushSpacing = num.Clamp(s.BrushSpacing, MinBrushSpacing, MaxBrushSpacing)
}

func (s *ToolSettings) clampEraser() {
	s.EraserSize = num.Clamp(s.EraserSize, MinEraserSize, MaxEraserSize)
}

func (s *ToolSettings) clampLine() {
	s.LineWidth = num.Clamp(s.LineWidth, MinLineWidth, MaxLineWidth)
}
