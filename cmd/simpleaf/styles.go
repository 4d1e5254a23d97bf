// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by every styled line simpleaf prints.
const (
	// ColorPrimary is used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is used for subtitles and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess marks resolved programs and completed workflows.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError marks failures.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning marks adjusted values such as clamped thread counts.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is used for commands and paths.
	ColorHighlight = lipgloss.Color("#3B82F6")

	// ColorVerbose is used for supplementary details.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages and caution indicators.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for command lines, config keys and paths.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// VerboseStyle is for supplementary information.
	VerboseStyle = lipgloss.NewStyle().
			Foreground(ColorVerbose)

	// VerboseHighlightStyle is for labels within dry-run and verbose output.
	VerboseHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight)

	// Stage failure card styles (used by renderStageFailure).
	renderHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorError).
				MarginBottom(1)

	renderCommandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHighlight)

	renderLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorWarning)

	renderValueStyle = lipgloss.NewStyle().
				Foreground(ColorVerbose)

	renderHintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			MarginTop(1)

	// Programs table styles.
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				PaddingRight(2)

	tableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)
