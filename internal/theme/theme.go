// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/gitlapse/gitlapse/internal/logger"
)

// Theme maps style names to tcell styles. Syntax token styles use the
// highlighter's style names ("keyword", "string", ...); UI chrome uses the
// capitalized keys defined by the built-in theme.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves a style name, falling back from "name.sub" to "name"
// and finally to the theme's Default style.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.Debugf("Theme '%s': style '%s' not found, using Default", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': style '%s' and Default both missing", t.Name, name)
	return tcell.StyleDefault
}

// MidnightReplay is the built-in dark theme.
var MidnightReplay Theme

func init() {
	background := tcell.NewHexColor(0x1e222a)
	foreground := tcell.NewHexColor(0xc5cdd9)
	grey := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)
	magenta := tcell.NewHexColor(0xc678dd)
	red := tcell.NewHexColor(0xe06c75)

	base := tcell.StyleDefault.Background(background).Foreground(foreground)

	MidnightReplay = Theme{
		Name:   "Midnight Replay",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default": base,

			// Chrome
			"Border":           base.Foreground(grey),
			"BorderActive":     base.Foreground(green),
			"Title":            base.Foreground(foreground).Bold(true),
			"LineNumber":       base.Foreground(grey),
			"LineNumberActive": base.Foreground(yellow).Bold(true),
			"Cursor":           tcell.StyleDefault.Background(foreground).Foreground(background).Bold(true),
			"StatusBar":        tcell.StyleDefault.Background(tcell.NewHexColor(0x2a2f38)).Foreground(foreground),
			"StatusBarHash":    tcell.StyleDefault.Background(tcell.NewHexColor(0x2a2f38)).Foreground(yellow).Bold(true),
			"StatusBarAuthor":  tcell.StyleDefault.Background(tcell.NewHexColor(0x2a2f38)).Foreground(cyan),

			// Terminal pane
			"TerminalPrompt":  base.Foreground(green).Bold(true),
			"TerminalCommand": base.Foreground(foreground).Bold(true),
			"TerminalOutput":  base.Foreground(grey),

			// File tree
			"FileTree":         base.Foreground(foreground),
			"FileTreeCurrent":  base.Foreground(yellow).Bold(true),
			"FileTreeDir":      base.Foreground(blue),
			"FileStatusAdded":  base.Foreground(green),
			"FileStatusDelete": base.Foreground(red),
			"FileStatusModify": base.Foreground(orange),

			// Dialog overlay
			"Dialog":      tcell.StyleDefault.Background(tcell.NewHexColor(0x2a2f38)).Foreground(foreground),
			"DialogTitle": tcell.StyleDefault.Background(tcell.NewHexColor(0x2a2f38)).Foreground(blue).Bold(true),

			// Syntax
			"keyword":     base.Foreground(blue).Bold(true),
			"string":      base.Foreground(green),
			"comment":     base.Foreground(grey).Italic(true),
			"number":      base.Foreground(orange),
			"type":        base.Foreground(cyan),
			"function":    base.Foreground(yellow),
			"constant":    base.Foreground(orange),
			"variable":    base.Foreground(foreground),
			"operator":    base.Foreground(foreground),
			"punctuation": base.Foreground(grey),
			"parameter":   base.Foreground(foreground).Italic(true),
			"property":    base.Foreground(red),
			"label":       base.Foreground(magenta),
		},
	}

	CurrentTheme = &MidnightReplay
}

// CurrentTheme is the active theme used by all panes.
var CurrentTheme *Theme

func GetCurrentTheme() *Theme {
	if CurrentTheme == nil {
		CurrentTheme = &MidnightReplay
	}
	return CurrentTheme
}

func SetCurrentTheme(t *Theme) {
	if t != nil {
		CurrentTheme = t
		logger.Infof("Theme switched to: %s", t.Name)
	}
}

// WithTransparentBackground derives a copy of a theme whose styles use the
// terminal's own background instead of the theme's.
func WithTransparentBackground(t *Theme) *Theme {
	out := &Theme{
		Name:   t.Name + " (transparent)",
		IsDark: t.IsDark,
		Styles: make(map[string]tcell.Style, len(t.Styles)),
	}
	for name, style := range t.Styles {
		// Chrome with intentional backgrounds (status bar, dialog, cursor)
		// keeps them.
		switch name {
		case "Cursor", "StatusBar", "StatusBarHash", "StatusBarAuthor", "Dialog", "DialogTitle":
			out.Styles[name] = style
		default:
			out.Styles[name] = style.Background(tcell.ColorReset)
		}
	}
	return out
}
