// ABOUTME: Static navigation table mapping paths to screens
// ABOUTME: Declares the public landing page, the protected dashboard subtree and aliases

package route

import (
	"path"
	"strings"
)

// Well-known paths
const (
	LandingPath   = "/"
	DashboardPath = "/dashboard"
)

// Screen identifies what a path renders
type Screen int

const (
	ScreenNone Screen = iota
	ScreenLogin
	ScreenHome
	ScreenUpload
	ScreenSkills
	ScreenRecommendations
	ScreenGitHub
	ScreenPathways
	ScreenProfile
)

// String returns the string representation of a Screen
func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenHome:
		return "home"
	case ScreenUpload:
		return "upload"
	case ScreenSkills:
		return "skills"
	case ScreenRecommendations:
		return "recommendations"
	case ScreenGitHub:
		return "github"
	case ScreenPathways:
		return "pathways"
	case ScreenProfile:
		return "profile"
	default:
		return "none"
	}
}

// Entry is one declared route
type Entry struct {
	Path      string
	Screen    Screen
	Title     string
	Protected bool
}

// Table is the full navigation map
type Table struct {
	entries []Entry
	byPath  map[string]Entry
	aliases map[string]string
}

// NewTable builds a table from entries and alias -> target pairs
func NewTable(entries []Entry, aliases map[string]string) *Table {
	t := &Table{
		entries: entries,
		byPath:  make(map[string]Entry, len(entries)),
		aliases: make(map[string]string, len(aliases)),
	}
	for _, e := range entries {
		t.byPath[Normalize(e.Path)] = e
	}
	for from, to := range aliases {
		t.aliases[Normalize(from)] = Normalize(to)
	}
	return t
}

// Default returns the application's navigation map
func Default() *Table {
	return NewTable([]Entry{
		{Path: LandingPath, Screen: ScreenLogin, Title: "Login"},
		{Path: DashboardPath, Screen: ScreenHome, Title: "Home", Protected: true},
		{Path: DashboardPath + "/upload", Screen: ScreenUpload, Title: "Resume Upload", Protected: true},
		{Path: DashboardPath + "/skills", Screen: ScreenSkills, Title: "Skills", Protected: true},
		{Path: DashboardPath + "/recommendations", Screen: ScreenRecommendations, Title: "Recommendations", Protected: true},
		{Path: DashboardPath + "/github", Screen: ScreenGitHub, Title: "GitHub", Protected: true},
		{Path: DashboardPath + "/pathways", Screen: ScreenPathways, Title: "Career Pathways", Protected: true},
		{Path: DashboardPath + "/profile", Screen: ScreenProfile, Title: "Profile", Protected: true},
	}, map[string]string{
		// courses was renamed to github
		DashboardPath + "/courses": DashboardPath + "/github",
	})
}

// Lookup returns the entry declared for a path
func (t *Table) Lookup(p string) (Entry, bool) {
	e, ok := t.byPath[Normalize(p)]
	return e, ok
}

// Alias returns the target of a redirect-only path
func (t *Table) Alias(p string) (string, bool) {
	to, ok := t.aliases[Normalize(p)]
	return to, ok
}

// Tabs returns the protected screens in declaration order
func (t *Table) Tabs() []Entry {
	var tabs []Entry
	for _, e := range t.entries {
		if e.Protected {
			tabs = append(tabs, e)
		}
	}
	return tabs
}

// Normalize cleans a path: leading slash, no trailing slash, no dot segments
func Normalize(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return LandingPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
