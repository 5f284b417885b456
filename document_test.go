package arspaint

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestNewDocumentDefaults(t *testing.T) {
	d := newTestDocument(t, 30, 20)
	if d.Width() != 30 || d.Height() != 20 {
		t.Errorf("size = %dx%d, want 30x20", d.Width(), d.Height())
	}
	if d.Layers().Len() != 1 || d.Layers().Layer(0).Name() != BackgroundName {
		t.Errorf("layers = %d, bottom %q", d.Layers().Len(), d.Layers().Layer(0).Name())
	}
	if got := d.Composite().NRGBAAt(0, 0); got != white {
		t.Errorf("background = %v, want white", got)
	}
	if d.ActiveTool().Kind() != ToolBrush {
		t.Errorf("ActiveTool() = %v, want Brush", d.ActiveTool().Kind())
	}
	if d.ToolSettings() != DefaultToolSettings() {
		t.Errorf("ToolSettings() = %+v", d.ToolSettings())
	}
	p, s := d.Colors()
	if p != black || s != white {
		t.Errorf("Colors() = %v, %v", p, s)
	}
	if d.CanUndo() || d.CanRedo() || d.Selection() != nil {
		t.Error("new document should have no history and no selection")
	}

	if _, err := NewDocument(0, 10); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("NewDocument(0, 10) error = %v, want ErrInvalidDimensions", err)
	}
}

func TestDocumentOptions(t *testing.T) {
	d := newTestDocument(t, 8, 8,
		WithBackground(transparent),
		WithColors(red, green),
		WithInitialTool(ToolEllipse),
		WithToolSettings(ToolSettings{BrushSize: 0, BrushSpacing: 5, EraserSize: 500, LineWidth: 3}),
		WithCodec(nil),
	)
	if got := d.Composite().NRGBAAt(4, 4); got != transparent {
		t.Errorf("background = %v, want transparent", got)
	}
	if p, s := d.Colors(); p != red || s != green {
		t.Errorf("Colors() = %v, %v", p, s)
	}
	if d.ActiveTool().Kind() != ToolEllipse {
		t.Errorf("ActiveTool() = %v", d.ActiveTool().Kind())
	}
	want := ToolSettings{BrushSize: MinBrushSize, BrushSpacing: MaxBrushSpacing, EraserSize: MaxEraserSize, LineWidth: 3}
	if d.ToolSettings() != want {
		t.Errorf("ToolSettings() = %+v, want %+v", d.ToolSettings(), want)
	}

	d = newTestDocument(t, 8, 8, WithInitialTool(toolKindCount))
	if d.ActiveTool().Kind() != ToolBrush {
		t.Errorf("invalid initial tool selected %v", d.ActiveTool().Kind())
	}
}

func TestSetToolSettingsClamps(t *testing.T) {
	d := newTestDocument(t, 8, 8)
	d.SetToolSettings(ToolSettings{BrushSize: 1000, BrushStabilization: -1, BrushSpacing: 1, EraserSize: 0, LineWidth: 0.5})
	got := d.ToolSettings()
	want := ToolSettings{BrushSize: MaxBrushSize, BrushStabilization: 0, BrushSpacing: 1, EraserSize: MinEraserSize, LineWidth: MinLineWidth}
	if got != want {
		t.Errorf("ToolSettings() = %+v, want %+v", got, want)
	}
}

func TestSaveAndOpenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	d := newTestDocument(t, 24, 16)
	drag(d, image.Pt(5, 5), image.Pt(18, 10))
	if err := d.Save(path); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	opened, err := OpenDocument(path)
	if err != nil {
		t.Fatalf("OpenDocument() = %v", err)
	}
	if opened.Width() != 24 || opened.Height() != 16 {
		t.Errorf("opened size = %dx%d", opened.Width(), opened.Height())
	}
	if !bytes.Equal(opened.Composite().Pix, d.Composite().Pix) {
		t.Error("reopened pixels differ from the saved composite")
	}
}

func TestOpenReplacesDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.png")
	src := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	fillRect(src, src.Rect, green)
	writePNG(t, path, src)

	d := newTestDocument(t, 40, 40, WithInitialTool(ToolRectSelect))
	drag(d, image.Pt(1, 1), image.Pt(5, 5))
	d.SelectTool(ToolBrush)
	drag(d, image.Pt(20, 20))
	d.AddLayer()

	if err := d.Open(path); err != nil {
		t.Fatalf("Open() = %v", err)
	}
	if d.Width() != 8 || d.Height() != 6 || d.Layers().Len() != 1 {
		t.Errorf("after Open: %dx%d, %d layers", d.Width(), d.Height(), d.Layers().Len())
	}
	if d.CanUndo() || d.Selection() != nil {
		t.Error("Open should reset history and selection")
	}
	if got := d.Composite().NRGBAAt(3, 3); got != green {
		t.Errorf("opened pixel = %v, want green", got)
	}

	// Tools follow the new canvas size.
	if cmd := drag(d, image.Pt(4, 3)); cmd == nil {
		t.Fatal("stroke on the opened canvas produced no command")
	}
	if got := d.Composite().NRGBAAt(4, 3); got != black {
		t.Errorf("stroke pixel = %v, want black", got)
	}
}

func TestOpenFailureLeavesDocument(t *testing.T) {
	d := newTestDocument(t, 20, 20)
	drag(d, image.Pt(10, 10))
	before := snapshot(t, d, 0)

	if err := d.Open(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("Open(missing) = nil error")
	}
	if !bytes.Equal(snapshot(t, d, 0), before) || !d.CanUndo() {
		t.Error("failed Open modified the document")
	}

	if err := d.OpenBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("OpenBytes(nil) error = %v, want ErrEmptyData", err)
	}
	if err := d.OpenBytes([]byte("not an image")); err == nil {
		t.Error("OpenBytes(garbage) = nil error")
	}
	if d.Width() != 20 || !d.CanUndo() {
		t.Error("failed OpenBytes modified the document")
	}

	if _, err := OpenDocument(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("OpenDocument(missing) = nil error")
	}
}

func TestSaveUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xyz")
	d := newTestDocument(t, 4, 4)
	if err := d.Save(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.xyz) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("unsupported save created a file")
	}
}

func TestSaveLayer(t *testing.T) {
	dir := t.TempDir()
	d := newTestDocument(t, 10, 10)
	i := d.AddLayer()
	fillRect(d.Layers().Layer(i).Image(), image.Rect(0, 0, 5, 5), red)

	path := filepath.Join(dir, "layer.png")
	if err := d.SaveLayer(i, path); err != nil {
		t.Fatalf("SaveLayer() = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got := color.NRGBAModel.Convert(img.At(7, 7)).(color.NRGBA); got != transparent {
		t.Errorf("saved layer pixel = %v, want transparent", got)
	}

	d.Layers().AddLayer(NewVectorLayer("Vec"))
	if err := d.SaveLayer(d.Layers().Len()-1, path); !errors.Is(err, ErrNoRasterLayer) {
		t.Errorf("SaveLayer(vector) error = %v, want ErrNoRasterLayer", err)
	}
	if err := d.SaveLayer(99, path); !errors.Is(err, ErrNoRasterLayer) {
		t.Errorf("SaveLayer(99) error = %v, want ErrNoRasterLayer", err)
	}
}

type recordingCodec struct {
	img   *image.NRGBA
	saved string
}

func (c *recordingCodec) Decode([]byte) (*image.NRGBA, error) { return c.img, nil }

func (c *recordingCodec) Encode(_ *image.NRGBA, path string) error {
	c.saved = path
	return nil
}

func TestWithCodec(t *testing.T) {
	c := &recordingCodec{img: image.NewNRGBA(image.Rect(0, 0, 3, 2))}
	d := newTestDocument(t, 10, 10, WithCodec(c))

	if err := d.OpenBytes([]byte{1}); err != nil {
		t.Fatalf("OpenBytes() = %v", err)
	}
	if d.Width() != 3 || d.Height() != 2 {
		t.Errorf("size = %dx%d, want 3x2", d.Width(), d.Height())
	}
	if err := d.Save("anything"); err != nil || c.saved != "anything" {
		t.Errorf("Save() = %v, codec saw %q", err, c.saved)
	}
}

func TestLoadBrushTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dab.png")
	tex := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	fillRect(tex, tex.Rect, black)
	writePNG(t, path, tex)

	d := newTestDocument(t, 20, 20)
	if err := d.LoadBrushTexture(path); err != nil {
		t.Fatalf("LoadBrushTexture() = %v", err)
	}
	d.SelectTool(ToolLine)
	d.SelectTool(ToolBrush)
	if !d.brush().HasTexture() {
		t.Error("texture lost on tool switch")
	}
	if err := d.LoadBrushTexture(filepath.Join(t.TempDir(), "none.png")); err == nil {
		t.Error("LoadBrushTexture(missing) = nil error")
	}
	if !d.brush().HasTexture() {
		t.Error("failed load dropped the current texture")
	}
}

func TestDocumentAddAndMoveLayer(t *testing.T) {
	d := newTestDocument(t, 10, 10)
	i := d.AddLayer()
	if i != 1 || d.Layers().Layer(i).Name() != "Layer 2" || d.Layers().ActiveIndex() != 1 {
		t.Fatalf("AddLayer() = %d, name %q", i, d.Layers().Layer(i).Name())
	}
	if j := d.AddLayer(); j != 2 || d.Layers().Layer(j).Name() != "Layer 3" {
		t.Fatalf("second AddLayer() = %d, name %q", j, d.Layers().Layer(j).Name())
	}
	d.Layers().SetActive(1)

	drag(d, image.Pt(5, 5))
	if !d.CanUndo() {
		t.Fatal("stroke not recorded")
	}
	if !d.MoveLayer(1, 0) {
		t.Fatal("MoveLayer(1, 0) = false")
	}
	if d.CanUndo() {
		t.Error("MoveLayer should clear the history")
	}
	if d.MoveLayer(0, 5) {
		t.Error("MoveLayer to an invalid index succeeded")
	}
}

// A floating selection goes back to the layer it was lifted from before
// the stack is reordered.
func TestMoveLayerDropsFloatingTransformFirst(t *testing.T) {
	d := newTransformDocument(t, image.Rect(10, 10, 40, 40))
	top := d.AddLayer()
	fillRect(d.Layers().Layer(top).Image(), d.Layers().Bounds(), green)
	d.Layers().MarkDirty()
	d.Layers().SetActive(0)

	d.Dispatch(Press(25, 25))
	if _, _, ok := d.Floating(); !ok {
		t.Fatal("nothing floating after press")
	}
	if !d.MoveLayer(0, 1) {
		t.Fatal("MoveLayer(0, 1) = false")
	}
	if _, _, ok := d.Floating(); ok {
		t.Error("still floating after MoveLayer")
	}
	if got := d.Layers().Layer(0).At(0, 0); got != green {
		t.Errorf("moved green layer (0,0) = %v, want green", got)
	}
	if got := d.Layers().Layer(1).At(25, 25); got != black {
		t.Errorf("background (25,25) = %v, want black", got)
	}
	if got := d.Layers().Layer(1).At(0, 0); got != white {
		t.Errorf("background (0,0) = %v, want white", got)
	}
}

func TestDocumentInsertLayer(t *testing.T) {
	d := newTestDocument(t, 40, 40)
	drag(d, image.Pt(20, 20))
	if !d.CanUndo() {
		t.Fatal("stroke not recorded")
	}

	top, err := NewRasterLayer("top", 40, 40)
	if err != nil {
		t.Fatal(err)
	}
	if !d.InsertLayer(d.Layers().Len(), top) {
		t.Fatal("InsertLayer(top) = false")
	}
	if !d.CanUndo() {
		t.Error("appending a layer should keep the history")
	}

	bottom, err := NewRasterLayer("bottom", 40, 40)
	if err != nil {
		t.Fatal(err)
	}
	if !d.InsertLayer(0, bottom) {
		t.Fatal("InsertLayer(0) = false")
	}
	if d.CanUndo() || d.Undo() {
		t.Error("inserting below existing layers should clear the history")
	}
	if got := d.Layers().Layer(0).At(20, 20); got != transparent {
		t.Errorf("inserted layer (20,20) = %v, want transparent", got)
	}
	if got := d.Layers().Layer(1).At(20, 20); got != black {
		t.Errorf("stroked layer (20,20) = %v, want black", got)
	}

	tests := []struct {
		name string
		i    int
		l    *Layer
	}{
		{"nil layer", 0, nil},
		{"negative index", -1, top},
		{"past top", d.Layers().Len() + 1, top},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d.InsertLayer(tt.i, tt.l) {
				t.Errorf("InsertLayer(%d) = true, want false", tt.i)
			}
		})
	}
}

func TestDocumentResize(t *testing.T) {
	d := newTestDocument(t, 20, 20, WithInitialTool(ToolRectSelect))
	drag(d, image.Pt(1, 1), image.Pt(5, 5))
	d.SelectTool(ToolBrush)
	drag(d, image.Pt(10, 10))

	if err := d.Resize(30, 10); err != nil {
		t.Fatalf("Resize() = %v", err)
	}
	if d.Width() != 30 || d.Height() != 10 {
		t.Errorf("size = %dx%d", d.Width(), d.Height())
	}
	if d.CanUndo() || d.Selection() != nil {
		t.Error("Resize should reset history and selection")
	}
	if got := d.Composite().NRGBAAt(10, 9); got != black {
		t.Errorf("kept stroke pixel = %v, want black", got)
	}
	if err := d.Resize(0, 10); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Resize(0, 10) error = %v", err)
	}
}

func TestDocumentActions(t *testing.T) {
	d := newTestDocument(t, 16, 16)

	if !d.Do(ActionLine) || d.ActiveTool().Kind() != ToolLine {
		t.Error("Do(line) did not switch tools")
	}
	if d.Do(ActionLine) {
		t.Error("Do(line) twice reported a change")
	}
	if d.Do(ActionUndo) {
		t.Error("Do(undo) with empty history reported a change")
	}

	drag(d, image.Pt(2, 2), image.Pt(12, 2))
	if !d.Do(ActionUndo) || !d.Do(ActionRedo) {
		t.Error("Do(undo/redo) failed")
	}

	d.Do(ActionSwapColors)
	if p, s := d.Colors(); p != white || s != black {
		t.Errorf("after swap Colors() = %v, %v", p, s)
	}

	d.Do(ActionRectSelect)
	drag(d, image.Pt(1, 1), image.Pt(4, 4))
	if !d.Do(ActionDeselect) || d.Selection() != nil {
		t.Error("Do(deselect) did not clear the selection")
	}
	if d.Do(ActionDeselect) {
		t.Error("Do(deselect) without a selection reported a change")
	}

	if !d.Do(ActionAddLayer) || d.Layers().Len() != 2 {
		t.Error("Do(add-layer) failed")
	}
	if d.Do(actionCount) {
		t.Error("unknown action reported a change")
	}
}

func TestParseAction(t *testing.T) {
	for a := range actionCount {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if a, ok := ParseAction("  Commit-Transform "); !ok || a != ActionCommitTransform {
		t.Errorf("ParseAction(Commit-Transform) = %v, %v", a, ok)
	}
	if _, ok := ParseAction("fill"); ok {
		t.Error("ParseAction(fill) succeeded")
	}
}

func TestSelectionOverlay(t *testing.T) {
	d := newTestDocument(t, 16, 16, WithInitialTool(ToolRectSelect))
	if d.SelectionOverlay(red) != nil {
		t.Error("overlay without a selection")
	}
	drag(d, image.Pt(2, 2), image.Pt(6, 6))
	img := d.SelectionOverlay(red)
	if img == nil || img.NRGBAAt(3, 3) != red || img.NRGBAAt(8, 8).A != 0 {
		t.Error("overlay does not match the selection")
	}
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}
