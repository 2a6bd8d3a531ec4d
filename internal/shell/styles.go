package shell

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan = lipgloss.Color("36")
	colorRed  = lipgloss.Color("167")
	colorDim  = lipgloss.Color("240")
)

// styles are bound to the shell's writer, so output that is not a
// terminal stays plain text.
type styles struct {
	prompt lipgloss.Style
	info   lipgloss.Style
	err    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		prompt: r.NewStyle().Foreground(colorDim),
		info:   r.NewStyle().Foreground(colorCyan),
		err:    r.NewStyle().Foreground(colorRed),
	}
}

func (st styles) printError(w io.Writer, msg string) {
	fmt.Fprintln(w, st.err.Render(msg))
}
