package arspaint

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	intImage "github.com/gogpu/arspaint/internal/image"
)

// Document is the editor state one host window drives: the layer stack, the
// history, the selection, tool settings, draw colors and the tools.
//
// Each tool kind has a single instance for the lifetime of the document,
// so a loaded brush texture survives tool switches.
//
// Document is not safe for concurrent use.
type Document struct {
	layers    *LayerStack
	history   *History
	selection Selection

	settings  ToolSettings
	primary   color.NRGBA
	secondary color.NRGBA

	tools  [toolKindCount]Tool
	active ToolKind

	codec Codec
}

// NewDocument creates a width x height canvas with a single background
// layer, white unless WithBackground says otherwise.
// Returns ErrInvalidDimensions if width or height is non-positive.
func NewDocument(width, height int, opts ...DocumentOption) (*Document, error) {
	o := applyOptions(opts)
	layers, err := NewLayerStack(width, height, o.background)
	if err != nil {
		return nil, fmt.Errorf("arspaint: new document: %w", err)
	}
	d := newDocument(layers, o)
	Logger().Info("document created", "width", width, "height", height)
	return d, nil
}

// OpenDocument creates a document whose background layer is the image at
// path.
func OpenDocument(path string, opts ...DocumentOption) (*Document, error) {
	o := applyOptions(opts)
	buf, err := readImage(o.codec, path)
	if err != nil {
		Logger().Warn("open failed", "path", path, "err", err)
		return nil, err
	}
	d := newDocument(newStackFromBuffer(buf), o)
	Logger().Info("document opened", "path", path, "width", buf.Width(), "height", buf.Height())
	return d, nil
}

func applyOptions(opts []DocumentOption) documentOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newDocument(layers *LayerStack, o documentOptions) *Document {
	d := &Document{
		layers:    layers,
		history:   NewHistory(),
		settings:  o.settings,
		primary:   o.primary,
		secondary: o.secondary,
		active:    o.tool,
		codec:     o.codec,
	}
	for k := range toolKindCount {
		d.tools[k] = NewTool(k, layers.Width(), layers.Height())
	}
	return d
}

func readImage(codec Codec, path string) (*intImage.ImageBuf, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("arspaint: open %s: %w", path, err)
	}
	buf, err := decode(codec, data)
	if err != nil {
		return nil, fmt.Errorf("arspaint: open %s: %w", path, err)
	}
	return buf, nil
}

func decode(codec Codec, data []byte) (*intImage.ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	img, err := codec.Decode(data)
	if err != nil {
		return nil, err
	}
	buf := intImage.FromNRGBA(img)
	if buf == nil {
		return nil, ErrInvalidDimensions
	}
	return buf, nil
}

// Open replaces the document with the image at path. On failure the
// document is left untouched. On success history and selection are reset.
func (d *Document) Open(path string) error {
	buf, err := readImage(d.codec, path)
	if err != nil {
		Logger().Warn("open failed", "path", path, "err", err)
		return err
	}
	d.replace(buf)
	Logger().Info("document opened", "path", path, "width", buf.Width(), "height", buf.Height())
	return nil
}

// OpenBytes replaces the document with an encoded image held in memory.
// On failure the document is left untouched.
func (d *Document) OpenBytes(data []byte) error {
	buf, err := decode(d.codec, data)
	if err != nil {
		err = fmt.Errorf("arspaint: open: %w", err)
		Logger().Warn("open failed", "err", err)
		return err
	}
	d.replace(buf)
	Logger().Info("document opened", "width", buf.Width(), "height", buf.Height())
	return nil
}

func (d *Document) replace(buf *intImage.ImageBuf) {
	d.abortGesture()
	d.layers = newStackFromBuffer(buf)
	d.history.Clear()
	d.selection.Clear()
}

// Save encodes the composite to path. The format follows the extension.
func (d *Document) Save(path string) error {
	if err := d.codec.Encode(d.layers.Composite(), path); err != nil {
		err = fmt.Errorf("arspaint: save %s: %w", path, err)
		Logger().Warn("save failed", "path", path, "err", err)
		return err
	}
	Logger().Info("document saved", "path", path)
	return nil
}

// SaveLayer encodes the pixels of layer i alone.
// Returns ErrNoRasterLayer for a vector layer or an invalid index.
func (d *Document) SaveLayer(i int, path string) error {
	buf := d.layers.buffer(i)
	if buf == nil {
		return fmt.Errorf("arspaint: save layer %d: %w", i, ErrNoRasterLayer)
	}
	if err := d.codec.Encode(buf.NRGBA(), path); err != nil {
		err = fmt.Errorf("arspaint: save layer %d to %s: %w", i, path, err)
		Logger().Warn("save failed", "path", path, "err", err)
		return err
	}
	Logger().Info("layer saved", "layer", i, "path", path)
	return nil
}

// Layers returns the layer stack for direct property edits.
func (d *Document) Layers() *LayerStack { return d.layers }

// History returns the undo log.
func (d *Document) History() *History { return d.history }

// Width returns the canvas width.
func (d *Document) Width() int { return d.layers.Width() }

// Height returns the canvas height.
func (d *Document) Height() int { return d.layers.Height() }

// Dispatch routes one tick of input to the active tool. A command produced
// by the tool is pushed onto the history and returned.
func (d *Document) Dispatch(in Input) Command {
	col := d.primary
	if in.Secondary {
		col = d.secondary
	}
	ctx := &ToolContext{
		Layers:    d.layers,
		Selection: &d.selection,
		Settings:  d.settings,
		Color:     col,
	}
	cmd := d.tools[d.active].Update(ctx, in)
	d.push(cmd)
	return cmd
}

func (d *Document) push(cmd Command) {
	if cmd == nil {
		return
	}
	d.history.Push(cmd)
	Logger().Debug("command pushed", "name", cmd.Name(), "depth", d.history.Len())
}

// ActiveTool returns the tool receiving input.
func (d *Document) ActiveTool() Tool { return d.tools[d.active] }

// Tool returns the instance of the given kind, nil for an unknown kind.
func (d *Document) Tool(k ToolKind) Tool {
	if !k.IsValid() {
		return nil
	}
	return d.tools[k]
}

// SelectTool switches the active tool. The gesture in progress is dropped;
// a floating transform is put back where it was lifted from.
func (d *Document) SelectTool(k ToolKind) bool {
	if !k.IsValid() {
		return false
	}
	if k != d.active {
		d.abortGesture()
		d.active = k
	}
	return true
}

func (d *Document) abortGesture() {
	d.tools[d.active].Abort(d.layers)
}

// ToolSettings returns the current tool settings.
func (d *Document) ToolSettings() ToolSettings { return d.settings }

// SetToolSettings replaces the tool settings after each tool clamps the
// fields it uses.
func (d *Document) SetToolSettings(s ToolSettings) {
	for _, t := range d.tools {
		t.Configure(&s)
	}
	d.settings = s
}

// Colors returns the primary and secondary draw colors.
func (d *Document) Colors() (primary, secondary color.NRGBA) {
	return d.primary, d.secondary
}

// SetColors sets the primary and secondary draw colors.
func (d *Document) SetColors(primary, secondary color.NRGBA) {
	d.primary, d.secondary = primary, secondary
}

// SwapColors exchanges the primary and secondary colors.
func (d *Document) SwapColors() {
	d.primary, d.secondary = d.secondary, d.primary
}

// Undo reverts the latest command. A gesture in progress is dropped first.
func (d *Document) Undo() bool {
	d.abortGesture()
	name, _ := d.history.UndoName()
	if !d.history.Undo(d.layers) {
		return false
	}
	Logger().Debug("undo", "name", name, "cursor", d.history.Cursor())
	return true
}

// Redo reapplies the next command. A gesture in progress is dropped first.
func (d *Document) Redo() bool {
	d.abortGesture()
	name, _ := d.history.RedoName()
	if !d.history.Redo(d.layers) {
		return false
	}
	Logger().Debug("redo", "name", name, "cursor", d.history.Cursor())
	return true
}

// CanUndo reports whether Undo would do anything.
func (d *Document) CanUndo() bool { return d.history.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (d *Document) CanRedo() bool { return d.history.CanRedo() }

// Selection returns the selection mask, nil when nothing is selected.
func (d *Document) Selection() *Mask { return d.selection.Mask() }

// Deselect clears the selection. A transform already floating is kept.
func (d *Document) Deselect() { d.selection.Clear() }

// CommitTransform drops the floating selection of the Transform tool and
// pushes the resulting command. Returns nil when nothing is floating.
func (d *Document) CommitTransform() Command {
	t, ok := d.tools[ToolTransform].(*TransformTool)
	if !ok {
		return nil
	}
	cmd := t.Commit(d.layers)
	d.push(cmd)
	return cmd
}

// Floating returns the pixels floating in the Transform tool.
func (d *Document) Floating() (*image.NRGBA, Rect, bool) {
	t, ok := d.tools[ToolTransform].(*TransformTool)
	if !ok {
		return nil, Rect{}, false
	}
	return t.Floating()
}

// AddLayer puts a new transparent raster layer named "Layer N" on top of
// the stack, makes it active and returns its index. N counts the layers
// including the new one.
func (d *Document) AddLayer() int {
	l, err := NewRasterLayer(fmt.Sprintf("Layer %d", d.layers.Len()+1), d.layers.Width(), d.layers.Height())
	if err != nil || !d.layers.AddLayer(l) {
		return -1
	}
	return d.layers.Len() - 1
}

// InsertLayer places l at index i (0 = bottom) and makes it active.
// Commands address layers by index, so the gesture in progress is dropped
// and the history is cleared when the insert shifts existing layers.
func (d *Document) InsertLayer(i int, l *Layer) bool {
	if l == nil || i < 0 || i > d.layers.Len() {
		return false
	}
	shifts := i < d.layers.Len()
	if shifts {
		d.abortGesture()
	}
	if !d.layers.insertLayer(i, l) {
		return false
	}
	if shifts {
		d.history.Clear()
	}
	return true
}

// MoveLayer reorders the stack. Commands address layers by index, so the
// gesture in progress is dropped before anything moves and the history is
// cleared afterwards.
func (d *Document) MoveLayer(from, to int) bool {
	if !d.layers.valid(from) || !d.layers.valid(to) {
		return false
	}
	if from == to {
		return true
	}
	d.abortGesture()
	d.layers.moveLayer(from, to)
	d.history.Clear()
	return true
}

// Resize changes the canvas size, keeping the overlapping top-left pixels
// of every layer. History, selection and any gesture in progress are
// dropped.
func (d *Document) Resize(width, height int) error {
	d.abortGesture()
	if err := d.layers.Resize(width, height); err != nil {
		return fmt.Errorf("arspaint: resize: %w", err)
	}
	d.history.Clear()
	d.selection.Clear()
	Logger().Info("document resized", "width", width, "height", height)
	return nil
}

// LoadBrushTexture loads the image at path as the brush dab.
func (d *Document) LoadBrushTexture(path string) error {
	buf, err := readImage(d.codec, path)
	if err != nil {
		Logger().Warn("brush texture load failed", "path", path, "err", err)
		return err
	}
	d.brush().SetTexture(buf.NRGBA())
	return nil
}

// ClearBrushTexture restores the round brush dab.
func (d *Document) ClearBrushTexture() {
	d.brush().SetTexture(nil)
}

func (d *Document) brush() *BrushTool {
	return d.tools[ToolBrush].(*BrushTool)
}

// Composite returns the flattened image. See LayerStack.Composite.
func (d *Document) Composite() *image.NRGBA { return d.layers.Composite() }

// Preview returns the live overlay of the active tool, nil when there is none.
func (d *Document) Preview() *image.NRGBA { return d.ActiveTool().Preview() }

// SelectionOverlay renders the selection tinted for display, nil when
// nothing is selected.
func (d *Document) SelectionOverlay(tint color.NRGBA) *image.NRGBA {
	m := d.selection.Mask()
	if m == nil {
		return nil
	}
	return m.Overlay(tint)
}

// Cursor returns the guides of the active tool for the pointer at pos.
func (d *Document) Cursor(pos Point) []Guide {
	return d.ActiveTool().Cursor(pos, d.settings)
}
