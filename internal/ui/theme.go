package ui

import "charm.land/lipgloss/v2"

// Theme defines a complete color palette for the application.
// Each theme provides colors for all UI elements, ensuring visual consistency.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color (used for tool output, info)
	Secondary string

	// Text colors
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	User      string // User message labels
	Assistant string // Assistant message labels
	System    string // System notices
	Warning   string // Confirmation prompts, warnings
	Error     string // Error messages
	Success   string // Connected indicator

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)

	// Code and link colors
	Code   string // Inline code and links
	CodeBg string // Code background
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:        "Dark Purple",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#1F2937",
		User:        "#A78BFA",
		Assistant:   "#22D3EE",
		System:      "#9CA3AF",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Success:     "#10B981",
		Border:      "#374151",
		Code:        "#67E8F9",
		CodeBg:      "#1E1E2E",
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		User:        "#A3BE8C",
		Assistant:   "#88C0D0",
		System:      "#D8DEE9",
		Warning:     "#EBCB8B",
		Error:       "#BF616A",
		Success:     "#A3BE8C",
		Border:      "#4C566A",
		Code:        "#A3BE8C",
		CodeBg:      "#242933",
	},
	ThemeDracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		TextInverse: "#282A36",
		User:        "#FF79C6",
		Assistant:   "#8BE9FD",
		System:      "#6272A4",
		Warning:     "#FFB86C",
		Error:       "#FF5555",
		Success:     "#50FA7B",
		Border:      "#44475A",
		Code:        "#50FA7B",
		CodeBg:      "#21222C",
	},
	ThemeLight: {
		Name:        "Light",
		Primary:     "#7C3AED",
		Secondary:   "#0891B2",
		Text:        "#111827",
		TextMuted:   "#6B7280",
		TextInverse: "#F9FAFB",
		User:        "#6D28D9",
		Assistant:   "#0E7490",
		System:      "#6B7280",
		Warning:     "#D97706",
		Error:       "#DC2626",
		Success:     "#059669",
		Border:      "#D1D5DB",
		Code:        "#0E7490",
		CodeBg:      "#F3F4F6",
	},
}

// CurrentTheme is the active theme, changed by ApplyTheme
var CurrentTheme = BuiltinThemes[DefaultTheme]

// ApplyTheme switches the active theme and regenerates all styles.
// Returns false if the theme name is unknown.
func ApplyTheme(name ThemeName) bool {
	theme, ok := BuiltinThemes[name]
	if !ok {
		return false
	}
	CurrentTheme = theme
	regenerateStyles()
	return true
}

// regenerateStyles rebuilds the package style variables from CurrentTheme.
// Styles capture colors at construction, so every dependent style has to be
// rebuilt when the palette changes.
func regenerateStyles() {
	t := CurrentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorUser = lipgloss.Color(t.User)
	ColorAssistant = lipgloss.Color(t.Assistant)
	ColorSystem = lipgloss.Color(t.System)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)
	ColorCodeBg = lipgloss.Color(t.CodeBg)
	ColorLink = lipgloss.Color(t.Code)

	HeaderStyle = HeaderStyle.Foreground(ColorText).Background(ColorPrimary)
	HeaderModelStyle = HeaderModelStyle.Foreground(ColorTextMuted)

	FooterStyle = FooterStyle.Foreground(ColorTextMuted)
	FooterKeyStyle = FooterKeyStyle.Foreground(ColorSecondary)
	FooterDescStyle = FooterDescStyle.Foreground(ColorTextMuted)

	PanelStyle = PanelStyle.BorderForeground(ColorBorder)
	PanelFocusedStyle = PanelFocusedStyle.BorderForeground(ColorBorderFocus)

	ChatUserStyle = ChatUserStyle.Foreground(ColorUser)
	ChatAssistantStyle = ChatAssistantStyle.Foreground(ColorAssistant)
	ChatToolStyle = ChatToolStyle.Foreground(ColorSecondary)
	ChatSystemStyle = ChatSystemStyle.Foreground(ColorSystem)
	ChatErrorStyle = ChatErrorStyle.Foreground(ColorError)
	ChatMessageStyle = ChatMessageStyle.Foreground(ColorText)
	ChatInputStyle = ChatInputStyle.BorderForeground(ColorBorder)
	ChatInputFocusedStyle = ChatInputFocusedStyle.BorderForeground(ColorBorderFocus)

	SpanBoldStyle = SpanBoldStyle.Foreground(ColorText)
	SpanItalicStyle = SpanItalicStyle.Foreground(ColorText)
	SpanCodeStyle = SpanCodeStyle.Foreground(ColorLink).Background(ColorCodeBg)
	SpanLinkStyle = SpanLinkStyle.Foreground(ColorLink)
	ImageRefStyle = ImageRefStyle.Foreground(ColorSecondary)
	TableHeaderStyle = TableHeaderStyle.Foreground(ColorSecondary)
	TableCellStyle = TableCellStyle.Foreground(ColorText)
	FieldLabelStyle = FieldLabelStyle.Foreground(ColorSecondary)
	ListBulletStyle = ListBulletStyle.Foreground(ColorSecondary)
	ListTitleStyle = ListTitleStyle.Foreground(ColorText)
	ToolErrorStyle = ToolErrorStyle.Foreground(ColorError)

	ModalStyle = ModalStyle.BorderForeground(ColorPrimary)
	ModalTitleStyle = ModalTitleStyle.Foreground(ColorPrimary)
	ModalHelpStyle = ModalHelpStyle.Foreground(ColorTextMuted)

	StatusLoadingStyle = StatusLoadingStyle.Foreground(ColorSecondary)
	StatusErrorStyle = StatusErrorStyle.Foreground(ColorError)

	ConfirmBoxStyle = ConfirmBoxStyle.BorderForeground(ColorWarning)
	ConfirmTitleStyle = ConfirmTitleStyle.Foreground(ColorWarning)
	ConfirmToolStyle = ConfirmToolStyle.Foreground(ColorText)
	ConfirmDescStyle = ConfirmDescStyle.Foreground(ColorTextMuted)
	ConfirmHintStyle = ConfirmHintStyle.Foreground(ColorTextMuted)
}
