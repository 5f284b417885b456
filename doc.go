// Package arspaint is the editing core of a layered raster image editor.
//
// # Overview
//
// arspaint owns everything between a host's input sampling and its display
// surface: an ordered layer stack with straight-alpha compositing, a linear
// undo/redo history of rectangular pixel patches, and the tools that turn
// pointer gestures into those patches. Windowing, GPU upload and dialogs are
// left to the host.
//
// # Quick Start
//
//	doc, err := arspaint.NewDocument(640, 480)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc.SelectTool(arspaint.ToolBrush)
//	doc.Dispatch(arspaint.Press(100, 100))
//	doc.Dispatch(arspaint.Press(200, 120))
//	doc.Dispatch(arspaint.Release())
//
//	doc.Undo()
//	doc.Redo()
//
//	if err := doc.Save("out.png"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Ticks
//
// The host calls [Document.Dispatch] once per frame with an [Input] that
// carries an optional image-space position and the pressed/released state
// of the pointer. The active [Tool] updates its private scratch buffer and,
// when a gesture is released, writes it into the active layer and returns a
// [Command]. Dispatch pushes that command onto the [History] and marks the
// composite dirty. The host then pulls [Document.Composite],
// [Document.Preview] and [Document.SelectionOverlay] for display.
//
// # Layers
//
// Layers are ordered bottom (index 0) to top. Raster and tone layers hold an
// RGBA8 buffer the size of the canvas. Vector layers hold a list of [Shape]
// records that are neither composited nor restored by undo.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Errors
//
// Decode and encode failures are returned to the caller and leave the
// document untouched. Out-of-bounds pixel access and invalid layer indices
// are silent no-ops.
//
// # Concurrency
//
// A Document is single-writer: call it from one goroutine. Only [SetLogger]
// and [Logger] are safe for concurrent use.
package arspaint
