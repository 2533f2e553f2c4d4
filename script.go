package pixfill

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"
)

// ErrScriptSyntax is returned when a paint script can't be parsed.
var ErrScriptSyntax = errors.New("invalid script")

// command is a single parsed line of a paint script.
type command struct {
	line  int
	name  string
	arg   string
	num   int
	point image.Point
}

// Script is a sequence of paint commands replayed against a paint session.
//
// Each line holds one command, blank lines are skipped and the # character starts a comment
// (except in the argument of the color command). The recognized commands are:
//
//	tool NAME     activate a tool
//	color #RRGGBB select the color
//	width N       set the line width
//	brush N       set the brush size
//	down X Y      press the pointer at X,Y
//	move X Y      drag the pointer to X,Y
//	up            release the pointer
//	undo          revert the last gesture
//	fill X Y      flood fill the region at X,Y regardless of the active tool
type Script struct {
	cmds []command
}

// ParseScript reads and validates a paint script.
func ParseScript(r io.Reader) (*Script, error) {
	s := &Script{}
	sc := bufio.NewScanner(r)

	for n := 1; sc.Scan(); n++ {
		fields := stripComment(strings.Fields(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		cmd, err := parseCommand(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		cmd.line = n
		s.cmds = append(s.cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return s, nil
}

// stripComment drops the fields from the first one starting with #,
// except for the argument of the color command.
func stripComment(fields []string) []string {
	for i, f := range fields {
		if !strings.HasPrefix(f, "#") {
			continue
		}
		if i == 1 && strings.EqualFold(fields[0], "color") {
			continue
		}
		return fields[:i]
	}
	return fields
}

func parseCommand(fields []string) (command, error) {
	cmd := command{name: strings.ToLower(fields[0])}
	args := fields[1:]

	switch cmd.name {
	case "tool":
		if len(args) != 1 {
			return cmd, syntaxErr(cmd.name, "expects a tool name")
		}
		if _, err := ParseTool(args[0]); err != nil {
			return cmd, fmt.Errorf("%w: %v", ErrScriptSyntax, err)
		}
		cmd.arg = args[0]
	case "color":
		if len(args) != 1 {
			return cmd, syntaxErr(cmd.name, "expects a #RRGGBB color")
		}
		if _, err := ParseColor(args[0]); err != nil {
			return cmd, err
		}
		cmd.arg = args[0]
	case "width", "brush":
		if len(args) != 1 {
			return cmd, syntaxErr(cmd.name, "expects a size")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return cmd, syntaxErr(cmd.name, fmt.Sprintf("invalid size %q", args[0]))
		}
		cmd.num = n
	case "down", "move", "fill":
		if len(args) != 2 {
			return cmd, syntaxErr(cmd.name, "expects X and Y coordinates")
		}
		x, errx := strconv.Atoi(args[0])
		y, erry := strconv.Atoi(args[1])
		if errx != nil || erry != nil {
			return cmd, syntaxErr(cmd.name, fmt.Sprintf("invalid coordinates %q %q", args[0], args[1]))
		}
		cmd.point = image.Pt(x, y)
	case "up", "undo":
		if len(args) != 0 {
			return cmd, syntaxErr(cmd.name, "takes no arguments")
		}
	default:
		return cmd, fmt.Errorf("%w: unknown command %q", ErrScriptSyntax, fields[0])
	}
	return cmd, nil
}

func syntaxErr(name, msg string) error {
	return fmt.Errorf("%w: %s %s", ErrScriptSyntax, name, msg)
}

// Len returns the number of commands in the script.
func (s *Script) Len() int {
	return len(s.cmds)
}

// Run replays the script against the paint session.
// An undo with an empty history is skipped, every other failure stops the replay.
func (s *Script) Run(pa *Paint) error {
	for _, cmd := range s.cmds {
		var err error

		switch cmd.name {
		case "tool":
			err = pa.SetTool(Tool(cmd.arg))
		case "color":
			err = pa.SetColor(cmd.arg)
		case "width":
			err = pa.SetLineWidth(cmd.num)
		case "brush":
			err = pa.SetBrushSize(cmd.num)
		case "down":
			err = pa.Press(cmd.point)
		case "move":
			err = pa.Drag(cmd.point)
		case "up":
			pa.Release()
		case "undo":
			if err = pa.Undo(); errors.Is(err, ErrNothingToUndo) {
				err = nil
			}
		case "fill":
			err = pa.Bucket(cmd.point)
		}
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", cmd.line, cmd.name, err)
		}
	}
	return nil
}
