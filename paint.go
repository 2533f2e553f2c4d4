package pixfill

import (
	"fmt"
	"image"

	"github.com/esimov/pixfill/utils"
)

// Tool is the active paint tool.
type Tool string

// The supported paint tools.
const (
	ToolLine        Tool = "line"
	ToolRectangle   Tool = "rectangle"
	ToolCircle      Tool = "circle"
	ToolTriangle    Tool = "triangle"
	ToolPaintBucket Tool = "paint-bucket"
	ToolPencil      Tool = "pencil"
	ToolBrush       Tool = "brush"
	ToolEraser      Tool = "eraser"
)

var tools = []Tool{
	ToolLine,
	ToolRectangle,
	ToolCircle,
	ToolTriangle,
	ToolPaintBucket,
	ToolPencil,
	ToolBrush,
	ToolEraser,
}

// ParseTool returns the tool with the given name.
func ParseTool(name string) (Tool, error) {
	t := Tool(name)
	if !utils.Contains(tools, t) {
		return "", fmt.Errorf("unsupported tool: %q", name)
	}
	return t, nil
}

// shape returns the shape drawn by the tool, if it is a shape tool.
func (t Tool) shape() (ShapeType, bool) {
	switch t {
	case ToolLine:
		return Line, true
	case ToolRectangle:
		return Rectangle, true
	case ToolCircle:
		return Circle, true
	case ToolTriangle:
		return Triangle, true
	}
	return "", false
}

// Default paint settings.
const (
	DefaultTool      = ToolLine
	DefaultLineWidth = 1
	DefaultBrushSize = 4
	DefaultColor     = "#000000"
)

// Paint routes pointer gestures to the active tool.
// Every gesture starts with Press, continues with any number of Drag calls and ends with Release.
// A snapshot of the canvas is pushed to the history on each Press, so Undo reverts
// the canvas to the state preceding the gesture.
type Paint struct {
	canvas  *Canvas
	history *History

	tool      Tool
	lineWidth int
	brushSize int
	color     Color

	saved  *Buffer
	start  image.Point
	last   image.Point
	active bool
}

// NewPaint creates a paint session over the canvas keeping at most undoLimit snapshots.
func NewPaint(c *Canvas, undoLimit int) *Paint {
	return &Paint{
		canvas:    c,
		history:   NewHistory(undoLimit),
		tool:      DefaultTool,
		lineWidth: DefaultLineWidth,
		brushSize: DefaultBrushSize,
		color:     MustParseColor(DefaultColor),
	}
}

// Canvas returns the canvas the session paints on.
func (pa *Paint) Canvas() *Canvas { return pa.canvas }

// History returns the undo history.
func (pa *Paint) History() *History { return pa.history }

// Tool returns the active tool.
func (pa *Paint) Tool() Tool { return pa.tool }

// Color returns the selected color.
func (pa *Paint) Color() Color { return pa.color }

// LineWidth returns the line width used by the pencil and the shape tools.
func (pa *Paint) LineWidth() int { return pa.lineWidth }

// BrushSize returns the size of the brush and the eraser.
func (pa *Paint) BrushSize() int { return pa.brushSize }

// SetTool activates a tool.
func (pa *Paint) SetTool(t Tool) error {
	if !utils.Contains(tools, t) {
		return fmt.Errorf("unsupported tool: %q", t)
	}
	pa.tool = t
	return nil
}

// SetColor selects the color given in #RRGGBB notation.
// On error the previously selected color is kept.
func (pa *Paint) SetColor(hex string) error {
	c, err := ParseColor(hex)
	if err != nil {
		return err
	}
	pa.color = c
	return nil
}

// SetLineWidth sets the line width of the pencil and of the shape tools.
func (pa *Paint) SetLineWidth(w int) error {
	if w <= 0 {
		return fmt.Errorf("invalid line width: %d", w)
	}
	pa.lineWidth = w
	return nil
}

// SetBrushSize sets the size of the brush and of the eraser.
func (pa *Paint) SetBrushSize(s int) error {
	if s <= 0 {
		return fmt.Errorf("invalid brush size: %d", s)
	}
	pa.brushSize = s
	return nil
}

// Press starts a gesture at p.
func (pa *Paint) Press(p image.Point) error {
	pa.saved = pa.canvas.Snapshot()
	pa.history.Push(pa.saved)
	pa.start, pa.last, pa.active = p, p, true

	Logger().Debug("press", "tool", string(pa.tool), "point", p)

	switch pa.tool {
	case ToolPaintBucket:
		return pa.fill(p)
	case ToolEraser:
		pa.erase(p)
	}
	return nil
}

// Drag continues the gesture to p. It is ignored when no gesture is in progress.
func (pa *Paint) Drag(p image.Point) error {
	if !pa.active {
		return nil
	}
	defer func() { pa.last = p }()

	if shape, ok := pa.tool.shape(); ok {
		// Shapes are previewed: the canvas is restored to the state
		// it had when the gesture started before drawing the new outline.
		if err := pa.canvas.Commit(pa.saved); err != nil {
			return err
		}
		return pa.canvas.DrawShape(shape, pa.start, p, float32(pa.lineWidth), pa.color)
	}

	switch pa.tool {
	case ToolPencil:
		pa.canvas.StrokePath([]image.Point{pa.last, p}, false, float32(pa.lineWidth), pa.color)
	case ToolBrush:
		pa.canvas.StrokePath([]image.Point{pa.last, p}, false, float32(pa.brushSize), pa.color)
	case ToolEraser:
		pa.erase(p)
	}
	return nil
}

// Release ends the current gesture.
func (pa *Paint) Release() {
	pa.active = false
	pa.saved = nil
}

// Bucket flood fills the region at p with the selected color, regardless of the active tool.
// It is recorded in the history like any other gesture.
func (pa *Paint) Bucket(p image.Point) error {
	pa.history.Push(pa.canvas.Snapshot())
	return pa.fill(p)
}

// Undo reverts the canvas to the most recent snapshot.
func (pa *Paint) Undo() error {
	b, err := pa.history.Undo()
	if err != nil {
		Logger().Warn("undo failed", "error", err)
		return err
	}
	pa.Release()
	return pa.canvas.Commit(b)
}

// fill runs the flood fill over a snapshot of the canvas and commits the result.
func (pa *Paint) fill(p image.Point) error {
	buf := pa.canvas.Snapshot()
	if n := Fill(buf, p, pa.color); n == 0 {
		return nil
	}
	return pa.canvas.Commit(buf)
}

// erase clears a brush sized square with the top-left corner at p.
func (pa *Paint) erase(p image.Point) {
	pa.canvas.Clear(image.Rect(p.X, p.Y, p.X+pa.brushSize, p.Y+pa.brushSize))
}
