package encode

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Colors maps rendered elements to sprintf-style colorizers.
type Colors struct {
	Key    func(string, ...any) string
	String func(string, ...any) string
	Number func(string, ...any) string
	Bool   func(string, ...any) string
	Null   func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Key:    color.RGB(196, 96, 16).SprintfFunc(),
		String: color.GreenString,
		Number: color.RGB(128, 216, 236).SprintfFunc(),
		Bool:   color.MagentaString,
		Null:   color.New(color.Faint).SprintfFunc(),
	}
}

// AutoColors returns NewColors when w is a terminal, nil otherwise.
func AutoColors(w io.Writer) *Colors {
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return nil
	}
	return NewColors()
}

func (c *Colors) scalar(v any) func(string, ...any) string {
	switch v.(type) {
	case nil:
		return c.Null
	case bool:
		return c.Bool
	case string:
		return c.String
	default:
		return c.Number
	}
}
