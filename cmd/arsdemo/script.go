package main

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/arspaint"
)

// A script is one command per line. Blank lines and lines starting with #
// are skipped.
//
//	tool <name>                   select a tool ("brush", "rect selection", ...)
//	color <r,g,b[,a]>             set the primary color
//	size brush|eraser|line <v>    change a tool setting
//	drag <x,y> [<x,y> ...]        press at each point, then release
//	select <x,y> <x,y>            rectangular selection
//	lasso <x,y> <x,y> <x,y> ...   polygon selection
//	move <x,y> <x,y>              grab the floating selection and drag it
//	commit                        drop the floating transform
//	deselect | undo | redo        document actions
//	layer add                     add a raster layer
//	layer opacity <v>             set the active layer's opacity
//	layer blend <mode>            set the active layer's blend mode
//	save <path>                   save the composite
type command struct {
	line int
	name string
	args []string
}

var errSyntax = errors.New("syntax error")

func parseScript(r io.Reader) ([]command, error) {
	var cmds []command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		cmds = append(cmds, command{line: line, name: strings.ToLower(fields[0]), args: fields[1:]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

func run(doc *arspaint.Document, cmds []command) error {
	for _, c := range cmds {
		if err := exec(doc, c); err != nil {
			return fmt.Errorf("line %d (%s): %w", c.line, c.name, err)
		}
	}
	return nil
}

func exec(doc *arspaint.Document, c command) error {
	switch c.name {
	case "tool":
		k, ok := arspaint.ParseToolKind(strings.Join(c.args, " "))
		if !ok {
			return fmt.Errorf("%w: unknown tool %q", errSyntax, strings.Join(c.args, " "))
		}
		doc.SelectTool(k)
	case "color":
		col, err := parseColor(c.args)
		if err != nil {
			return err
		}
		_, secondary := doc.Colors()
		doc.SetColors(col, secondary)
	case "size":
		return setSize(doc, c.args)
	case "drag":
		pts, err := parsePoints(c.args, 1)
		if err != nil {
			return err
		}
		for _, p := range pts {
			doc.Dispatch(arspaint.Press(p.X, p.Y))
		}
		doc.Dispatch(arspaint.Release())
	case "select":
		return selectWith(doc, arspaint.ToolRectSelect, c.args, 2)
	case "lasso":
		return selectWith(doc, arspaint.ToolLassoSelect, c.args, 3)
	case "move":
		pts, err := parsePoints(c.args, 2)
		if err != nil {
			return err
		}
		doc.SelectTool(arspaint.ToolTransform)
		for _, p := range pts {
			doc.Dispatch(arspaint.Press(p.X, p.Y))
		}
		doc.Dispatch(arspaint.Release())
		if _, _, ok := doc.Floating(); !ok {
			return errors.New("nothing selected to move")
		}
	case "commit":
		if doc.CommitTransform() == nil {
			return errors.New("nothing floating")
		}
	case "deselect", "undo", "redo":
		a, _ := arspaint.ParseAction(c.name)
		doc.Do(a)
	case "layer":
		return layer(doc, c.args)
	case "save":
		if len(c.args) != 1 {
			return fmt.Errorf("%w: save needs a path", errSyntax)
		}
		return doc.Save(c.args[0])
	default:
		return fmt.Errorf("%w: unknown command", errSyntax)
	}
	return nil
}

// selectWith replays a selection gesture with tool k and restores the
// previously active tool.
func selectWith(doc *arspaint.Document, k arspaint.ToolKind, args []string, minPoints int) error {
	pts, err := parsePoints(args, minPoints)
	if err != nil {
		return err
	}
	prev := doc.ActiveTool().Kind()
	doc.SelectTool(k)
	for _, p := range pts {
		doc.Dispatch(arspaint.Press(p.X, p.Y))
	}
	doc.Dispatch(arspaint.Release())
	doc.SelectTool(prev)
	return nil
}

func setSize(doc *arspaint.Document, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: size needs a setting and a value", errSyntax)
	}
	v, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("%w: %v", errSyntax, err)
	}
	s := doc.ToolSettings()
	switch strings.ToLower(args[0]) {
	case "brush":
		s.BrushSize = v
	case "eraser":
		s.EraserSize = v
	case "line":
		s.LineWidth = v
	case "stabilization":
		s.BrushStabilization = v
	case "spacing":
		s.BrushSpacing = v
	default:
		return fmt.Errorf("%w: unknown setting %q", errSyntax, args[0])
	}
	doc.SetToolSettings(s)
	return nil
}

func layer(doc *arspaint.Document, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: layer needs a subcommand", errSyntax)
	}
	stack := doc.Layers()
	active := stack.ActiveIndex()
	switch strings.ToLower(args[0]) {
	case "add":
		if doc.AddLayer() < 0 {
			return errors.New("cannot add layer")
		}
	case "opacity":
		if len(args) != 2 {
			return fmt.Errorf("%w: layer opacity needs a value", errSyntax)
		}
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("%w: %v", errSyntax, err)
		}
		stack.SetOpacity(active, v)
	case "blend":
		if len(args) != 2 {
			return fmt.Errorf("%w: layer blend needs a mode", errSyntax)
		}
		m, ok := arspaint.ParseBlendMode(args[1])
		if !ok {
			return fmt.Errorf("%w: unknown blend mode %q", errSyntax, args[1])
		}
		stack.SetBlendMode(active, m)
	default:
		return fmt.Errorf("%w: unknown layer subcommand %q", errSyntax, args[0])
	}
	return nil
}

func parsePoints(args []string, minPoints int) ([]image.Point, error) {
	if len(args) < minPoints {
		return nil, fmt.Errorf("%w: need at least %d points", errSyntax, minPoints)
	}
	pts := make([]image.Point, 0, len(args))
	for _, a := range args {
		v, err := parseInts(a, 2, 2)
		if err != nil {
			return nil, err
		}
		pts = append(pts, image.Pt(v[0], v[1]))
	}
	return pts, nil
}

func parseColor(args []string) (color.NRGBA, error) {
	if len(args) != 1 {
		return color.NRGBA{}, fmt.Errorf("%w: color needs r,g,b[,a]", errSyntax)
	}
	v, err := parseInts(args[0], 3, 4)
	if err != nil {
		return color.NRGBA{}, err
	}
	if len(v) == 3 {
		v = append(v, 255)
	}
	for _, c := range v {
		if c < 0 || c > 255 {
			return color.NRGBA{}, fmt.Errorf("%w: channel %d out of range", errSyntax, c)
		}
	}
	return color.NRGBA{R: uint8(v[0]), G: uint8(v[1]), B: uint8(v[2]), A: uint8(v[3])}, nil
}

func parseInts(s string, minN, maxN int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) < minN || len(parts) > maxN {
		return nil, fmt.Errorf("%w: %q", errSyntax, s)
	}
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errSyntax, s)
		}
		out[i] = v
	}
	return out, nil
}
