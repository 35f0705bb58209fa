// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jpaulson/cartful/internal/model"
)

var (
	// PrimaryColor is the main theme color (market-stall green).
	PrimaryColor = lipgloss.Color("#7BC96F")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// ItemStyle formats suggested item names.
	ItemStyle = lipgloss.NewStyle().
			Bold(true)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	CartIcon    = "🛒"
	RobotIcon   = "🤖"
	ReceiptIcon = "🧾"
)

// FormatTitle formats a section title with the cart icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(CartIcon + " " + title)
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatSuggestion renders one suggestion line: name, confidence,
// reason, and the related items that motivated it.
func FormatSuggestion(s model.ItemSuggestion) string {
	line := fmt.Sprintf("%s  %s",
		ItemStyle.Render(s.ItemName),
		SubtleStyle.Render(fmt.Sprintf("(%.0f%%)", s.Confidence*100)))

	detail := s.Reason.Description()
	if s.RemoteRationale != "" {
		detail = s.RemoteRationale
	}
	if len(s.RelatedItems) > 0 {
		detail += fmt.Sprintf(" · goes with %s", s.RelatedItems[0])
	}
	if s.EstimatedPrice != nil {
		detail += fmt.Sprintf(" · ~$%.2f", *s.EstimatedPrice)
	}

	return line + "\n  " + SubtleStyle.Render(detail)
}
