package arspaint

import "image/color"

// DocumentOption configures a Document during creation.
//
// Example:
//
//	doc, err := arspaint.NewDocument(800, 600,
//	    arspaint.WithBackground(color.NRGBA{A: 0}),
//	    arspaint.WithInitialTool(arspaint.ToolLine),
//	)
type DocumentOption func(*documentOptions)

// documentOptions holds optional configuration for Document creation.
type documentOptions struct {
	background color.NRGBA
	codec      Codec
	settings   ToolSettings
	primary    color.NRGBA
	secondary  color.NRGBA
	tool       ToolKind
}

// defaultOptions returns the default document options.
func defaultOptions() documentOptions {
	return documentOptions{
		background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		codec:      DefaultCodec(),
		settings:   DefaultToolSettings(),
		primary:    color.NRGBA{A: 255},
		secondary:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		tool:       ToolBrush,
	}
}

// WithBackground sets the fill color of the background layer of a new
// canvas. Ignored when the document is opened from a file.
func WithBackground(c color.NRGBA) DocumentOption {
	return func(o *documentOptions) {
		o.background = c
	}
}

// WithCodec replaces the image codec used by Open and Save.
// A nil codec is ignored.
func WithCodec(c Codec) DocumentOption {
	return func(o *documentOptions) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithToolSettings sets the initial tool settings. Out-of-range values are
// clamped.
func WithToolSettings(s ToolSettings) DocumentOption {
	return func(o *documentOptions) {
		s.Clamp()
		o.settings = s
	}
}

// WithColors sets the primary and secondary draw colors.
func WithColors(primary, secondary color.NRGBA) DocumentOption {
	return func(o *documentOptions) {
		o.primary = primary
		o.secondary = secondary
	}
}

// WithInitialTool selects the tool active after creation.
// An unknown kind is ignored.
func WithInitialTool(k ToolKind) DocumentOption {
	return func(o *documentOptions) {
		if k.IsValid() {
			o.tool = k
		}
	}
}
