package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	FilePath lipgloss.Style
	RuleID   lipgloss.Style

	DiffAdd    lipgloss.Style
	DiffRemove lipgloss.Style
	DiffHunk   lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
}

// Palette.
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#5FD068"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#F2C94C"}
	colorError   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF6B6B"}
	colorInfo    = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#56CCF2"}
)

// NewStyles builds the style set for a lipgloss renderer.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: lr.NewStyle().Bold(true).Foreground(colorPrimary),
		Header2: lr.NewStyle().Bold(true).Underline(true),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(colorMuted),

		Success: lr.NewStyle().Foreground(colorSuccess),
		Warning: lr.NewStyle().Foreground(colorWarning),
		Error:   lr.NewStyle().Foreground(colorError).Bold(true),
		Info:    lr.NewStyle().Foreground(colorInfo),

		FilePath: lr.NewStyle().Bold(true).Underline(true),
		RuleID:   lr.NewStyle().Bold(true).Foreground(colorPrimary),

		DiffAdd:    lr.NewStyle().Foreground(colorSuccess),
		DiffRemove: lr.NewStyle().Foreground(colorError),
		DiffHunk:   lr.NewStyle().Foreground(colorInfo),

		StatusSuccess: lr.NewStyle().Foreground(colorSuccess).SetString("✓"),
		StatusFailed:  lr.NewStyle().Foreground(colorError).SetString("✗"),
	}
}
