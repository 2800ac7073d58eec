// Package render prints watch events as human-readable console lines.
package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/d8barcelos/file-watcher/internal/watch"
)

const timeFormat = "2006-01-02 15:04:05"

// Console writes one line per event, optionally prefixed with the
// observation time. Kinds are colored when color is enabled; with color off
// the output is plain text suitable for pipes and files.
type Console struct {
	w          io.Writer
	timestamps bool
	kindStyles map[watch.Kind]lipgloss.Style
}

var _ watch.Sink = (*Console)(nil)

// NewConsole writes events to w. Pass color=false when w is not a terminal.
func NewConsole(w io.Writer, timestamps, color bool) *Console {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI
	}
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	return &Console{
		w:          w,
		timestamps: timestamps,
		kindStyles: map[watch.Kind]lipgloss.Style{
			watch.Created:  renderer.NewStyle().Foreground(lipgloss.Color("2")),
			watch.Modified: renderer.NewStyle().Foreground(lipgloss.Color("3")),
			watch.Deleted:  renderer.NewStyle().Foreground(lipgloss.Color("1")),
		},
	}
}

func (c *Console) Emit(event watch.Event) error {
	kind := fmt.Sprintf("[%s]", event.Kind)
	if style, ok := c.kindStyles[event.Kind]; ok {
		kind = style.Render(kind)
	}

	var err error
	if c.timestamps {
		_, err = fmt.Fprintf(c.w, "[%s] %s %s\n", event.Time.Format(timeFormat), kind, event.Name)
	} else {
		_, err = fmt.Fprintf(c.w, "%s %s\n", kind, event.Name)
	}
	if err != nil {
		return fmt.Errorf("writing console line: %w", err)
	}
	return nil
}
