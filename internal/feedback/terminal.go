package feedback

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gocv.io/x/gocv"
)

var (
	labelStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4DD0E1"))
	counterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D"))
	countdownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	capturingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA940"))
	warningStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4D4F"))
)

// Terminal writes a styled status line whenever the overlay text changes.
// Frames arrive much faster than the text changes, so unchanged lines are skipped.
type Terminal struct {
	mu   sync.Mutex
	out  io.Writer
	last string
}

// NewTerminal creates a Terminal writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// Render writes the status line if it differs from the previous one.
func (t *Terminal) Render(_ *gocv.Mat, o Overlay) error {
	lines := Lines(o)

	plain := make([]string, len(lines))
	styled := make([]string, len(lines))
	for i, line := range lines {
		plain[i] = line.Text
		styled[i] = styleFor(line.Kind).Render(line.Text)
	}

	key := strings.Join(plain, " | ")

	t.mu.Lock()
	defer t.mu.Unlock()

	if key == t.last {
		return nil
	}
	t.last = key

	_, err := fmt.Fprintln(t.out, strings.Join(styled, "  "))
	return err
}

func styleFor(k Kind) lipgloss.Style {
	switch k {
	case KindCounter:
		return counterStyle
	case KindCountdown:
		return countdownStyle
	case KindCapturing:
		return capturingStyle
	case KindWarning:
		return warningStyle
	default:
		return labelStyle
	}
}
