package arspaint

import (
	"image"

	intImage "github.com/gogpu/arspaint/internal/image"
	"github.com/gogpu/arspaint/internal/stroke"
)

// Command is an undoable edit.
type Command interface {
	// Name is the display name, e.g. "Brush Stroke".
	Name() string
	// Undo restores the state before the edit.
	Undo(s *LayerStack)
	// Redo reapplies the edit.
	Redo(s *LayerStack)
}

// PatchCommand restores a rectangular block of one layer.
//
// Before and after blocks have the same size and were read from the target
// layer when the command was created. Applying a patch to an index that no
// longer exists, or to a vector layer, does nothing.
type PatchCommand struct {
	name   string
	layer  int
	origin image.Point
	before *intImage.ImageBuf
	after  *intImage.ImageBuf
}

func newPatchCommand(name string, layer int, p stroke.Patch) *PatchCommand {
	return &PatchCommand{
		name:   name,
		layer:  layer,
		origin: p.Rect.Min,
		before: p.Before,
		after:  p.After,
	}
}

// Name returns the display name.
func (c *PatchCommand) Name() string { return c.name }

// LayerIndex returns the index of the target layer.
func (c *PatchCommand) LayerIndex() int { return c.layer }

// Rect returns the patched rectangle in canvas coordinates.
func (c *PatchCommand) Rect() image.Rectangle {
	return c.before.Bounds().Add(c.origin)
}

// Before returns a copy of the pixels the patch restores on undo.
func (c *PatchCommand) Before() *image.NRGBA { return c.before.Clone().NRGBA() }

// After returns a copy of the pixels the patch writes on redo.
func (c *PatchCommand) After() *image.NRGBA { return c.after.Clone().NRGBA() }

// Undo copies the before block back into the layer.
func (c *PatchCommand) Undo(s *LayerStack) { c.apply(s, c.before) }

// Redo copies the after block into the layer.
func (c *PatchCommand) Redo(s *LayerStack) { c.apply(s, c.after) }

func (c *PatchCommand) apply(s *LayerStack, block *intImage.ImageBuf) {
	buf := s.buffer(c.layer)
	if buf == nil {
		return
	}
	buf.Paste(block, c.origin)
	s.MarkDirty()
}

// History is a linear undo/redo log.
//
// The cursor counts the applied commands. Commands at or after the cursor
// are redo entries; pushing while any exist discards them.
type History struct {
	commands []Command
	cursor   int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Push records an already-applied command, discarding the redo entries.
// A nil command is ignored.
func (h *History) Push(cmd Command) {
	if cmd == nil {
		return
	}
	clear(h.commands[h.cursor:])
	h.commands = append(h.commands[:h.cursor], cmd)
	h.cursor++
}

// Undo reverts the most recent applied command and marks s dirty.
// Reports whether anything was undone.
func (h *History) Undo(s *LayerStack) bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	h.commands[h.cursor].Undo(s)
	s.MarkDirty()
	return true
}

// Redo reapplies the next command and marks s dirty.
// Reports whether anything was redone.
func (h *History) Redo(s *LayerStack) bool {
	if h.cursor == len(h.commands) {
		return false
	}
	h.commands[h.cursor].Redo(s)
	h.cursor++
	s.MarkDirty()
	return true
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return h.cursor < len(h.commands) }

// Len returns the number of recorded commands, applied or not.
func (h *History) Len() int { return len(h.commands) }

// Cursor returns the number of applied commands.
func (h *History) Cursor() int { return h.cursor }

// UndoName returns the name of the command Undo would revert.
func (h *History) UndoName() (string, bool) {
	if !h.CanUndo() {
		return "", false
	}
	return h.commands[h.cursor-1].Name(), true
}

// RedoName returns the name of the command Redo would reapply.
func (h *History) RedoName() (string, bool) {
	if !h.CanRedo() {
		return "", false
	}
	return h.commands[h.cursor].Name(), true
}

// Clear drops every command.
func (h *History) Clear() {
	clear(h.commands)
	h.commands = h.commands[:0]
	h.cursor = 0
}
