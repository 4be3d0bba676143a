package ui

import "charm.land/lipgloss/v2"

// Color palette - regenerated from the active theme by ApplyTheme
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#7C3AED") // Purple when focused
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#B0B8C4") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorUser        = lipgloss.Color("#A78BFA") // Light purple for user messages
	ColorAssistant   = lipgloss.Color("#22D3EE") // Bright cyan for assistant messages
	ColorSystem      = lipgloss.Color("#9CA3AF") // Gray for system notices
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber for confirmation prompts
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     = lipgloss.Color("#10B981") // Green for connected state
	ColorCodeBg      = lipgloss.Color("#1E1E2E") // Code span background
	ColorLink        = lipgloss.Color("#67E8F9") // Links
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	HeaderModelStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)
)

// Chat styles
var (
	ChatUserStyle = lipgloss.NewStyle().
			Foreground(ColorUser).
			Bold(true)

	ChatAssistantStyle = lipgloss.NewStyle().
				Foreground(ColorAssistant).
				Bold(true)

	ChatToolStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	ChatSystemStyle = lipgloss.NewStyle().
			Foreground(ColorSystem).
			Italic(true)

	ChatErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	ChatMessageStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	ChatInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)
)

// Inline text styles for rendered message spans
var (
	SpanBoldStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	SpanItalicStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorText)

	SpanCodeStyle = lipgloss.NewStyle().
			Foreground(ColorLink).
			Background(ColorCodeBg)

	SpanLinkStyle = lipgloss.NewStyle().
			Foreground(ColorLink).
			Underline(true)

	ImageRefStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	FieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	ListBulletStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	ListTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	ToolErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1)
)

// Status styles
var (
	StatusLoadingStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

// Confirmation prompt styles
var (
	ConfirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(0, 1)

	ConfirmTitleStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	ConfirmToolStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Bold(true)

	ConfirmDescStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	ConfirmHintStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true)
)
