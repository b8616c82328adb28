package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/coursekeeper/internal/client/state"
)

var (
	colorComplete = lipgloss.Color("#2ecc71")
	colorBorder   = lipgloss.Color("#bdc3c7")
	colorAccent   = lipgloss.Color("#3498db")
	colorMuted    = lipgloss.Color("#7f8c8d")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	titleStyle  = lipgloss.NewStyle().Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(66)
	completedCardStyle = cardStyle.BorderForeground(colorComplete)

	buttonStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 2)
	doneButtonStyle = buttonStyle.Foreground(colorComplete).BorderForeground(colorComplete)
)

const (
	labelCompleted = "Completed"
	labelMark      = "Mark as Completed"
)

// TextRenderer draws snapshots as styled text. It implements state.Renderer.
type TextRenderer struct {
	w io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(_ context.Context, s state.Snapshot) {
	fmt.Fprintln(r.w, Draw(s))
}

// Draw returns the screen for s.
func Draw(s state.Snapshot) string {
	switch s.View {
	case state.ViewDashboard:
		return drawDashboard(s)
	case state.ViewCourseDetail:
		return drawDetail(s)
	default:
		return drawAuth()
	}
}

func drawAuth() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Course Catalog"),
		mutedStyle.Render("Log in or sign up to continue: login, signup"),
	)
}

func drawDashboard(s state.Snapshot) string {
	blocks := []string{
		headerStyle.Render(fmt.Sprintf("Welcome, %s!", s.User)),
		mutedStyle.Render(fmt.Sprintf("%d of %d courses completed", len(s.Completed), len(s.Courses))),
	}
	for _, c := range s.Courses {
		style := cardStyle
		status := ""
		if s.IsComplete(c.ID) {
			style = completedCardStyle
			status = "  " + lipgloss.NewStyle().Foreground(colorComplete).Render("✓ "+labelCompleted)
		}
		body := titleStyle.Render(fmt.Sprintf("[%d] %s", c.ID, c.Title)) + status + "\n" + c.Description
		blocks = append(blocks, style.Render(body))
	}
	blocks = append(blocks, mutedStyle.Render("view <id> to open a course, logout to leave"))
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func drawDetail(s state.Snapshot) string {
	if s.Selected == nil {
		return drawDashboard(s)
	}
	c := s.Selected

	lessons := make([]string, 0, len(c.Lessons))
	for i, l := range c.Lessons {
		lessons = append(lessons, fmt.Sprintf("  %d. %s", i+1, l))
	}

	button := buttonStyle.Render(labelMark)
	if s.IsComplete(c.ID) {
		button = doneButtonStyle.Render(labelCompleted)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(c.Title),
		c.Description,
		"",
		titleStyle.Render("Lessons"),
		strings.Join(lessons, "\n"),
		"",
		button,
		mutedStyle.Render("toggle to change, back to return"),
	)
}
