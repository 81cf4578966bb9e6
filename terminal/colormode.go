package terminal

import (
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// trueColorHints are variables set only by terminals known to support 24-bit color
var trueColorHints = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"ALACRITTY_LOG",
	"WEZTERM_PANE",
}

// DetectColorMode determines color capability from the environment
func DetectColorMode(getenv func(string) string) ColorMode {
	colorterm := strings.ToLower(getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	for _, key := range trueColorHints {
		if getenv(key) != "" {
			return ColorModeTrueColor
		}
	}

	term := strings.ToLower(getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}
	return ColorMode256
}

// ResolveColorMode maps a configured name to a mode, "auto" and unknown names detect
func ResolveColorMode(name string, getenv func(string) string) ColorMode {
	switch strings.ToLower(name) {
	case "256":
		return ColorMode256
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor
	default:
		return DetectColorMode(getenv)
	}
}

// Configure sets the variables tcell reads at screen creation so it honours mode
func Configure(mode ColorMode, setenv func(key, value string) error) error {
	if mode == ColorModeTrueColor {
		if err := setenv("TCELL_TRUECOLOR", ""); err != nil {
			return err
		}
		return setenv("COLORTERM", "truecolor")
	}
	return setenv("TCELL_TRUECOLOR", "disable")
}
