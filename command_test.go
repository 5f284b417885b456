package arspaint

import (
	"image"
	"testing"

	intImage "github.com/gogpu/arspaint/internal/image"
	"github.com/gogpu/arspaint/internal/stroke"
)

// fakeCommand records how often it was undone and redone.
type fakeCommand struct {
	name       string
	undo, redo int
}

func (c *fakeCommand) Name() string     { return c.name }
func (c *fakeCommand) Undo(*LayerStack) { c.undo++ }
func (c *fakeCommand) Redo(*LayerStack) { c.redo++ }

func TestHistoryUndoRedo(t *testing.T) {
	s := newTestStack(t, 2, 2)
	h := NewHistory()

	if h.CanUndo() || h.CanRedo() {
		t.Fatal("empty history reports undo/redo")
	}
	if h.Undo(s) || h.Redo(s) {
		t.Fatal("Undo/Redo on empty history = true")
	}

	a, b := &fakeCommand{name: "a"}, &fakeCommand{name: "b"}
	h.Push(a)
	h.Push(b)
	h.Push(nil)
	if h.Len() != 2 || h.Cursor() != 2 {
		t.Fatalf("Len() = %d, Cursor() = %d", h.Len(), h.Cursor())
	}
	if name, _ := h.UndoName(); name != "b" {
		t.Errorf("UndoName() = %q, want b", name)
	}

	s.Composite()
	if !h.Undo(s) || b.undo != 1 || h.Cursor() != 1 {
		t.Fatalf("Undo(): b.undo = %d, cursor %d", b.undo, h.Cursor())
	}
	if !s.Dirty() {
		t.Error("Undo() did not mark the stack dirty")
	}
	if name, _ := h.RedoName(); name != "b" {
		t.Errorf("RedoName() = %q, want b", name)
	}
	if !h.Redo(s) || b.redo != 1 || h.Cursor() != 2 {
		t.Fatalf("Redo(): b.redo = %d, cursor %d", b.redo, h.Cursor())
	}
	if h.Redo(s) {
		t.Error("Redo() at the end = true")
	}
}

func TestHistoryPushTruncates(t *testing.T) {
	s := newTestStack(t, 2, 2)
	h := NewHistory()
	a, b, c := &fakeCommand{name: "a"}, &fakeCommand{name: "b"}, &fakeCommand{name: "c"}
	h.Push(a)
	h.Push(b)
	h.Undo(s)
	h.Push(c)

	if h.CanRedo() {
		t.Error("CanRedo() after push = true")
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
	h.Undo(s)
	h.Undo(s)
	if b.undo != 1 {
		t.Errorf("discarded command was undone again: %d", b.undo)
	}
	if c.undo != 1 || a.undo != 1 {
		t.Errorf("undo counts a=%d c=%d, want 1, 1", a.undo, c.undo)
	}

	h.Clear()
	if h.Len() != 0 || h.Cursor() != 0 || h.CanUndo() {
		t.Error("Clear() left entries")
	}
}

func newPatch(t *testing.T, s *LayerStack, layer int, r image.Rectangle, fill func(*intImage.ImageBuf)) *PatchCommand {
	t.Helper()
	buf := s.buffer(layer)
	before := buf.Crop(r)
	fill(buf)
	after := buf.Crop(r)
	return newPatchCommand("Test", layer, stroke.Patch{Rect: r, Before: before, After: after})
}

func TestPatchCommandRoundTrip(t *testing.T) {
	s := newTestStack(t, 8, 8)
	orig := s.Layer(0).Image().Pix
	origCopy := append([]byte(nil), orig...)
	r := image.Rect(2, 3, 6, 5)

	cmd := newPatch(t, s, 0, r, func(b *intImage.ImageBuf) {
		b.Set(2, 3, red)
		b.Set(5, 4, green)
	})
	if cmd.Rect() != r || cmd.LayerIndex() != 0 || cmd.Name() != "Test" {
		t.Errorf("Rect() = %v, LayerIndex() = %d, Name() = %q", cmd.Rect(), cmd.LayerIndex(), cmd.Name())
	}
	if cmd.Before().Rect.Size() != r.Size() || cmd.After().Rect.Size() != r.Size() {
		t.Error("before/after blocks do not match the rectangle")
	}
	edited := append([]byte(nil), s.Layer(0).Image().Pix...)

	cmd.Undo(s)
	if got := s.Layer(0).Image().Pix; string(got) != string(origCopy) {
		t.Error("Undo() did not restore the original pixels")
	}
	cmd.Redo(s)
	if got := s.Layer(0).Image().Pix; string(got) != string(edited) {
		t.Error("Redo() did not restore the edited pixels")
	}
}

func TestPatchCommandGuards(t *testing.T) {
	s := newTestStack(t, 4, 4)
	cmd := newPatch(t, s, 0, image.Rect(0, 0, 2, 2), func(b *intImage.ImageBuf) { b.Set(0, 0, red) })

	// Retarget at indices that have no pixels.
	cmd.layer = 7
	cmd.Undo(s)
	cmd.layer = -1
	cmd.Redo(s)

	s.insertLayer(0, NewVectorLayer("Vec"))
	cmd.layer = 0
	cmd.Undo(s)
	if got := s.Layer(1).At(0, 0); got != red {
		t.Errorf("patch leaked into another layer: %v", got)
	}
}
