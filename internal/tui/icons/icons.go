// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"

	"github.com/DAVEMANUJ/skill-genome-2/internal/route"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("SKILLGENOME_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	if os.Getenv("NERD_FONTS") == "1" {
		return true
	}

	// Default to Unicode fallback for maximum compatibility
	return false
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Dashboard screens
	Home            = Icon{"󰋜", "⌂"} // nf-md-home
	Upload          = Icon{"󰕒", "↑"} // nf-md-upload
	Skills          = Icon{"󰓎", "★"} // nf-md-star
	Recommendations = Icon{"󰌵", "◆"} // nf-md-lightbulb
	GitHub          = Icon{"", "◎"} // nf-oct-mark_github
	Pathways        = Icon{"󰑪", "➜"} // nf-md-routes
	Profile         = Icon{"󰀄", "●"} // nf-md-account

	// Session
	Lock   = Icon{"󰌾", "▣"} // nf-md-lock
	Unlock = Icon{"󰿆", "□"} // nf-md-lock_open_variant

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Actions
	Logout = Icon{"󰍃", "←"} // nf-md-logout
	Quit   = Icon{"󰗼", "×"} // nf-md-exit_to_app

	// Application
	App = Icon{"󰧑", "◈"} // nf-md-brain
)

// ForScreen returns the tab icon for a dashboard screen
func ForScreen(s route.Screen) Icon {
	switch s {
	case route.ScreenHome:
		return Home
	case route.ScreenUpload:
		return Upload
	case route.ScreenSkills:
		return Skills
	case route.ScreenRecommendations:
		return Recommendations
	case route.ScreenGitHub:
		return GitHub
	case route.ScreenPathways:
		return Pathways
	case route.ScreenProfile:
		return Profile
	case route.ScreenLogin:
		return Lock
	default:
		return Info
	}
}
