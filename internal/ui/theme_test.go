package ui

import "testing"

func TestApplyTheme(t *testing.T) {
	t.Cleanup(func() { ApplyTheme(DefaultTheme) })

	tests := []struct {
		name  string
		theme ThemeName
		want  bool
	}{
		{"dark purple", ThemeDarkPurple, true},
		{"nord", ThemeNord, true},
		{"dracula", ThemeDracula, true},
		{"light", ThemeLight, true},
		{"unknown", "solarized-ultra", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyTheme(tt.theme); got != tt.want {
				t.Errorf("ApplyTheme(%q) = %v, want %v", tt.theme, got, tt.want)
			}
		})
	}
}

func TestApplyTheme_UnknownKeepsCurrent(t *testing.T) {
	t.Cleanup(func() { ApplyTheme(DefaultTheme) })

	ApplyTheme(ThemeNord)
	before := CurrentTheme.Name
	ApplyTheme("no-such-theme")
	if CurrentTheme.Name != before {
		t.Errorf("unknown theme replaced current: %q -> %q", before, CurrentTheme.Name)
	}
}

func TestBuiltinThemes_Complete(t *testing.T) {
	for name, theme := range BuiltinThemes {
		if theme.Name == "" {
			t.Errorf("theme %q has no display name", name)
		}
		if theme.Primary == "" || theme.Text == "" || theme.Error == "" {
			t.Errorf("theme %q missing core colors", name)
		}
		if theme.GetBorderFocus() == "" {
			t.Errorf("theme %q has no focus border color", name)
		}
	}
}
